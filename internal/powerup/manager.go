package powerup

import (
	"time"

	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

// Manager applies power-up effects to the player and owns the firing logic they modify.
// Rapid fire is a deadline, shields and multi-shot are charge counters on the player.
type Manager struct {
	cfg          config.PowerUp
	baseCooldown time.Duration
	sink         event.Sink

	rapid      bool
	rapidUntil time.Duration

	shot     bool
	lastShot time.Duration
}

func NewManager(cfg config.Config, sink event.Sink) *Manager {
	return &Manager{
		cfg:          cfg.PowerUp,
		baseCooldown: cfg.Player.FireCooldown,
		sink:         sink,
	}
}

func (m *Manager) Reset() {
	m.rapid = false
	m.rapidUntil = 0
	m.shot = false
	m.lastShot = 0
}

// Apply grants the effect of kind and returns bonus points, which is non-zero only when a
// shield arrives at full charge.
func (m *Manager) Apply(kind entity.PowerUpKind, now time.Duration, p *entity.Player) int {
	m.sink.Emit(event.Event{Kind: event.PowerUpCollected, X: p.Pos.X, Y: p.Pos.Y, Value: int(kind)})

	switch kind {
	case entity.RapidFire:
		// Re-collecting restarts the window rather than extending it.
		m.rapid = true
		m.rapidUntil = now + m.cfg.RapidWindow
		p.Cooldown = m.cfg.RapidCooldown
	case entity.Shield:
		if p.Shields >= m.cfg.ShieldCap {
			p.Shields = m.cfg.ShieldCap
			m.sink.Emit(event.Event{Kind: event.ShieldOverflow, Value: m.cfg.ShieldOverflow})
			return m.cfg.ShieldOverflow
		}
		p.Shields++
	case entity.MultiShot:
		p.MultiShot += m.cfg.MultiShot
	}
	return 0
}

// Update ends rapid fire once its window has passed.
func (m *Manager) Update(now time.Duration, p *entity.Player) {
	if m.rapid && now >= m.rapidUntil {
		m.rapid = false
		p.Cooldown = m.baseCooldown
		m.sink.Emit(event.Event{Kind: event.RapidFireEnded})
	}
}

// RapidFire reports whether rapid fire is on and when it ends.
func (m *Manager) RapidFire() (bool, time.Duration) {
	return m.rapid, m.rapidUntil
}

// Fire shoots from the player's position when the cooldown allows and returns the number
// of bullets spawned. A multi-shot charge turns one shot into a three-bullet spread.
func (m *Manager) Fire(now time.Duration, p *entity.Player, reg *entity.Registry) int {
	if !p.Alive {
		return 0
	}
	if m.shot && now-m.lastShot <= p.Cooldown {
		return 0
	}
	m.shot = true
	m.lastShot = now

	n := 1
	reg.SpawnBullet(p.Pos, now)
	if p.MultiShot > 0 {
		p.MultiShot--
		reg.SpawnBullet(entity.Vec{X: p.Pos.X - m.cfg.Spread, Y: p.Pos.Y}, now)
		reg.SpawnBullet(entity.Vec{X: p.Pos.X + m.cfg.Spread, Y: p.Pos.Y}, now)
		n = 3
	}
	m.sink.Emit(event.Event{Kind: event.Fire, X: p.Pos.X, Y: p.Pos.Y, Value: n})
	return n
}
