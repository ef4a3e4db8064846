package entity

import "time"

// Player is the ship. The session owns it; input handling moves it, combat damages it and
// the power-up manager changes its charges and cooldown.
type Player struct {
	Pos       Vec
	Health    int
	MaxHealth int
	Shields   int
	MultiShot int
	Cooldown  time.Duration
	Alive     bool
}

func NewPlayer(pos Vec, health int, cooldown time.Duration) Player {
	return Player{
		Pos:       pos,
		Health:    health,
		MaxHealth: health,
		Cooldown:  cooldown,
		Alive:     true,
	}
}

func (p *Player) Box() Rect { return BoxAt(p.Pos, PlayerSize) }

// MoveTo places the ship at pos, kept inside a playfield of the given size.
func (p *Player) MoveTo(pos Vec, field Size) {
	p.Pos = Vec{clamp(pos.X, 0, field.W), clamp(pos.Y, 0, field.H)}
}

// Hit removes one point of health and reports whether the ship is destroyed.
func (p *Player) Hit() bool {
	if p.Health > 0 {
		p.Health--
	}
	if p.Health == 0 {
		p.Alive = false
	}
	return !p.Alive
}
