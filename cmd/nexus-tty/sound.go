package main

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"nexusstrike/internal/event"
	"nexusstrike/internal/sfx"
)

const sampleRate = beep.SampleRate(44100)

// clip streams pre-rendered mono samples to both channels.
type clip struct {
	samples []float64
	pos     int
}

func (c *clip) Stream(buf [][2]float64) (int, bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	n := 0
	for n < len(buf) && c.pos < len(c.samples) {
		buf[n][0] = c.samples[c.pos]
		buf[n][1] = c.samples[c.pos]
		n++
		c.pos++
	}
	return n, true
}

func (c *clip) Err() error { return nil }

// sounds plays effect clips through the speaker. With sound off it only drops events.
type sounds struct {
	on    bool
	clips map[sfx.Sound][]float64
	log   *slog.Logger
}

func newSounds(enabled bool, log *slog.Logger) *sounds {
	s := &sounds{log: log}
	if !enabled {
		return s
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, game can run without sound
		log.Warn("audio init failed", "err", err)
		return s
	}
	s.on = true
	s.clips = make(map[sfx.Sound][]float64, len(sfx.All))
	for _, snd := range sfx.All {
		s.clips[snd] = sfx.Samples(snd, int(sampleRate))
	}
	return s
}

func (s *sounds) Emit(ev event.Event) {
	if !s.on {
		return
	}
	if snd, ok := sfx.For(ev.Kind); ok {
		speaker.Play(&clip{samples: s.clips[snd]})
		return
	}
	switch ev.Kind {
	case event.LevelUp, event.BossDefeated, event.NewHighScore:
		s.chime(880)
	}
}

func (s *sounds) chime(freq float64) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		s.log.Debug("sine tone", "freq", freq, "err", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(120*time.Millisecond), sine))
}

func (s *sounds) close() {
	if s.on {
		speaker.Close()
	}
}
