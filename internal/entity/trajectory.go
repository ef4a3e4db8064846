package entity

import "time"

// Trajectory positions an entity as a function of play time.
type Trajectory interface {
	At(t time.Duration) Vec
	// Expiry reports when the entity leaves the playfield; ok is false for entities that
	// never leave on their own.
	Expiry() (at time.Duration, ok bool)
}

// Linear moves from From by Delta over Duration starting at Start, then expires.
type Linear struct {
	From     Vec
	Delta    Vec
	Start    time.Duration
	Duration time.Duration
}

func (l Linear) At(t time.Duration) Vec {
	return l.From.Add(l.Delta.Scale(progress(t-l.Start, l.Duration)))
}

func (l Linear) Expiry() (time.Duration, bool) { return l.Start + l.Duration, true }

// BossPath drops the boss from Spawn to EntryY, then patrols between Left and Right,
// one leg per Leg. The first leg heads left from the spawn column.
type BossPath struct {
	Spawn       Vec
	EntryY      float64
	Left, Right float64
	Start       time.Duration
	Entry       time.Duration
	Leg         time.Duration
}

func (b BossPath) At(t time.Duration) Vec {
	el := t - b.Start
	if el < b.Entry {
		f := progress(el, b.Entry)
		return Vec{b.Spawn.X, b.Spawn.Y + (b.EntryY-b.Spawn.Y)*f}
	}
	if b.Leg <= 0 {
		return Vec{b.Spawn.X, b.EntryY}
	}

	patrol := el - b.Entry
	leg := int(patrol / b.Leg)
	f := progress(patrol%b.Leg, b.Leg)

	var from, to float64
	switch {
	case leg == 0:
		from, to = b.Spawn.X, b.Left
	case leg%2 == 1:
		from, to = b.Left, b.Right
	default:
		from, to = b.Right, b.Left
	}
	return Vec{from + (to-from)*f, b.EntryY}
}

func (BossPath) Expiry() (time.Duration, bool) { return 0, false }

func progress(el, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return clamp(float64(el)/float64(total), 0, 1)
}
