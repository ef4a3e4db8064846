package session

import (
	"slices"
	"time"

	"nexusstrike/internal/combat"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

// Snapshot is a copy of the session after a tick. Renderers may keep it; later ticks do
// not change it.
type Snapshot struct {
	State State
	RunID string
	Time  time.Duration

	Score       int
	HighScore   int
	Level       int
	Kills       int
	KillsNeeded int
	Difficulty  float64

	Player      entity.Player
	RapidFire   bool
	BossActive  bool
	BossWarning bool
	Boss        *BossView

	Bullets  []entity.Bullet
	Enemies  []entity.Enemy
	PowerUps []entity.PowerUp

	// Events emitted during the tick that produced this snapshot.
	Events []event.Event
}

type BossView struct {
	ID        entity.ID
	Pos       entity.Vec
	Health    int
	MaxHealth int
	Fraction  float64
	Band      combat.Band
}

func (s *Session) Snapshot() Snapshot { return s.snapshot() }

func (s *Session) snapshot() Snapshot {
	rapid, _ := s.power.RapidFire()
	snap := Snapshot{
		State:       s.state,
		RunID:       s.runID,
		Time:        s.now,
		Score:       s.tracker.Score,
		HighScore:   s.highScore,
		Level:       s.tracker.Level,
		Kills:       s.tracker.Kills,
		KillsNeeded: s.tracker.KillsNeeded,
		Difficulty:  s.difficulty,
		Player:      s.player,
		RapidFire:   rapid,
		BossActive:  s.tracker.BossActive,
		BossWarning: s.spawner.BossPending(),
		Bullets:     deref(s.reg.Bullets()),
		Enemies:     deref(s.reg.Enemies()),
		PowerUps:    deref(s.reg.PowerUps()),
		Events:      slices.Clone(s.tick.Events),
	}
	if boss, ok := s.reg.Boss(); ok {
		f := boss.HealthFraction()
		snap.Boss = &BossView{
			ID:        boss.ID,
			Pos:       boss.Pos,
			Health:    boss.Health,
			MaxHealth: boss.MaxHealth,
			Fraction:  f,
			Band:      combat.BandFor(f),
		}
	}
	return snap
}

func deref[T any](in []*T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = *v
	}
	return out
}
