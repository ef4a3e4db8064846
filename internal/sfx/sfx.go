// Package sfx synthesizes the game's sound effects as mono samples, shared by the ebiten
// and terminal frontends.
package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"nexusstrike/internal/event"
)

type Sound int

const (
	Laser Sound = iota
	Boom
	Hit
	Pickup
	Warning
)

var All = [...]Sound{Laser, Boom, Hit, Pickup, Warning}

type voice struct {
	from, to float64 // Hz, swept linearly
	dur      time.Duration
	noise    bool
	square   bool
	vol      float64
}

var voices = map[Sound]voice{
	Laser:   {from: 1200, to: 400, dur: 90 * time.Millisecond, square: true, vol: 0.15},
	Boom:    {dur: 350 * time.Millisecond, noise: true, vol: 0.3},
	Hit:     {from: 180, to: 60, dur: 250 * time.Millisecond, square: true, vol: 0.3},
	Pickup:  {from: 520, to: 1040, dur: 150 * time.Millisecond, vol: 0.25},
	Warning: {from: 330, to: 330, dur: 400 * time.Millisecond, square: true, vol: 0.2},
}

// For picks the sound an event makes, if any.
func For(k event.Kind) (Sound, bool) {
	switch k {
	case event.Fire:
		return Laser, true
	case event.Explosion:
		return Boom, true
	case event.PlayerHit, event.ShieldAbsorb:
		return Hit, true
	case event.PowerUpCollected:
		return Pickup, true
	case event.BossWarning:
		return Warning, true
	}
	return 0, false
}

// Samples renders s at sampleRate as values in [-1, 1], fading out linearly.
func Samples(s Sound, sampleRate int) []float64 {
	v, ok := voices[s]
	if !ok || sampleRate <= 0 {
		return nil
	}
	n := int(int64(v.dur) * int64(sampleRate) / int64(time.Second))
	out := make([]float64, n)
	rng := rand.New(rand.NewPCG(uint64(s), 0x5eed))

	phase := 0.0
	for i := range out {
		f := float64(i) / float64(n)
		phase += (v.from + (v.to-v.from)*f) / float64(sampleRate)

		var val float64
		switch {
		case v.noise:
			val = rng.Float64()*2 - 1
		case v.square:
			if math.Mod(phase, 1) < 0.5 {
				val = 1
			} else {
				val = -1
			}
		default:
			val = math.Sin(2 * math.Pi * phase)
		}
		out[i] = val * v.vol * (1 - f)
	}
	return out
}
