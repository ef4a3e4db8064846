// Package event carries the fire-and-forget notifications the simulation sends to the
// presentation layer: sounds, explosions, screen shake, banners.
package event

import "fmt"

type Kind int

const (
	Fire Kind = iota
	Explosion
	ScreenShake
	DamageFlash
	BossDamaged
	ShieldAbsorb
	PlayerHit
	PowerUpCollected
	ShieldOverflow
	RapidFireEnded
	LevelUp
	BossWarning
	BossSpawned
	BossDefeated
	GameOver
	NewHighScore
)

var kindNames = [...]string{
	Fire:             "fire",
	Explosion:        "explosion",
	ScreenShake:      "screen_shake",
	DamageFlash:      "damage_flash",
	BossDamaged:      "boss_damaged",
	ShieldAbsorb:     "shield_absorb",
	PlayerHit:        "player_hit",
	PowerUpCollected: "powerup_collected",
	ShieldOverflow:   "shield_overflow",
	RapidFireEnded:   "rapid_fire_ended",
	LevelUp:          "level_up",
	BossWarning:      "boss_warning",
	BossSpawned:      "boss_spawned",
	BossDefeated:     "boss_defeated",
	GameOver:         "game_over",
	NewHighScore:     "new_high_score",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single notification. Which fields are meaningful depends on Kind:
// X/Y locate explosions and flashes, Target is an entity id, Value carries a level,
// score, or count, and Fraction carries the boss health percentage.
type Event struct {
	Kind     Kind
	X, Y     float64
	Target   uint64
	Value    int
	Fraction float64
}

// Sink receives events. Implementations must not block.
type Sink interface {
	Emit(Event)
}

type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

// Multi fans an event out to several sinks in order.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Recorder keeps every emitted event. Used by frontends to collect one tick's events
// and by tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Last returns the most recent event of the given kind.
func (r *Recorder) Last(k Kind) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == k {
			return r.Events[i], true
		}
	}
	return Event{}, false
}
