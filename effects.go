package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nexusstrike/internal/assets"
	"nexusstrike/internal/event"
	"nexusstrike/internal/gamemode"
	"nexusstrike/internal/sfx"
)

const (
	shakeLength = 250 * time.Millisecond
	shakeAmp    = 5.0
	flashLength = 120 * time.Millisecond
	hitLength   = 200 * time.Millisecond
	burstLength = 350 * time.Millisecond
	burstRadius = 30.0
)

var (
	ColBurst = color.NRGBA{0xff, 0xa0, 0x20, 0xff}
	ColHit   = color.NRGBA{0xff, 0x00, 0x00, 0x50}
	ColGold  = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	ColWarn  = color.RGBA{0xff, 0x40, 0x40, 0xff}
)

type burst struct {
	x, y  float64
	start time.Duration
}

// effects turns simulation events into sound, shake, flashes and banners. Times are
// frontend clock readings, so effects keep fading while the game is paused.
type effects struct {
	ctx     *audio.Context
	pack    func() *assets.Pack
	log     *slog.Logger
	now     time.Duration
	players []*audio.Player

	shakeUntil time.Duration
	hitUntil   time.Duration
	flashes    map[uint64]time.Duration
	bursts     []burst
	banners    gamemode.Banners
}

func newEffects(ctx *audio.Context, pack func() *assets.Pack, log *slog.Logger) *effects {
	return &effects{
		ctx:     ctx,
		pack:    pack,
		log:     log,
		flashes: make(map[uint64]time.Duration),
	}
}

func (e *effects) Emit(ev event.Event) {
	if s, ok := sfx.For(ev.Kind); ok {
		e.play(s)
	}

	switch ev.Kind {
	case event.Explosion:
		e.bursts = append(e.bursts, burst{x: ev.X, y: ev.Y, start: e.now})
	case event.ScreenShake:
		e.shakeUntil = e.now + shakeLength
	case event.DamageFlash:
		e.flashes[ev.Target] = e.now + flashLength
	case event.PlayerHit:
		e.hitUntil = e.now + hitLength
	case event.ShieldOverflow:
		e.banner(fmt.Sprintf("+%d", ev.Value), time.Second, 0, ColGold)
	case event.LevelUp:
		e.banner(fmt.Sprintf("LEVEL %d", ev.Value), 1500*time.Millisecond, 0, nil)
	case event.BossWarning:
		e.banner("BOSS INCOMING", 1200*time.Millisecond, 3, ColWarn)
	case event.BossDefeated:
		e.banner("BOSS DEFEATED", 2*time.Second, 0, ColGold)
	case event.NewHighScore:
		e.banner("NEW HIGH SCORE", 3*time.Second, 0, ColGold)
	case event.GameOver:
		e.log.Debug("game over effect", "score", ev.Value)
	}
}

func (e *effects) banner(text string, length time.Duration, flashes int, clr color.Color) {
	e.banners.Show(gamemode.Banner{Text: text, Start: e.now, Length: length, Flashes: flashes, Color: clr})
}

func (e *effects) play(s sfx.Sound) {
	p := e.pack()
	if p == nil {
		return
	}
	pl := e.ctx.NewPlayerFromBytes(p.Sounds[s])
	pl.Play()
	e.players = append(e.players, pl)
}

// Update advances effect time and drops what has finished.
func (e *effects) Update(now time.Duration) {
	e.now = now
	e.players = slices.DeleteFunc(e.players, func(p *audio.Player) bool {
		if p.IsPlaying() {
			return false
		}
		if err := p.Close(); err != nil {
			e.log.Debug("close sound", "err", err)
		}
		return true
	})
	e.bursts = slices.DeleteFunc(e.bursts, func(b burst) bool { return now-b.start >= burstLength })
	for id, until := range e.flashes {
		if now >= until {
			delete(e.flashes, id)
		}
	}
	e.banners.Update(now)
}

func (e *effects) Reset() {
	e.shakeUntil, e.hitUntil = 0, 0
	clear(e.flashes)
	e.bursts = e.bursts[:0]
	e.banners.Clear()
}

func (e *effects) Flashing(id uint64) bool {
	_, ok := e.flashes[id]
	return ok
}

// Shake returns this frame's camera offset.
func (e *effects) Shake() (float64, float64) {
	if e.now >= e.shakeUntil {
		return 0, 0
	}
	return (rand.Float64()*2 - 1) * shakeAmp, (rand.Float64()*2 - 1) * shakeAmp
}

func (e *effects) DrawBursts(dst *ebiten.Image) {
	for _, b := range e.bursts {
		f := float64(e.now-b.start) / float64(burstLength)
		clr := ColBurst
		clr.A = uint8(float64(0xff) * (1 - f))
		vector.DrawFilledCircle(dst, float32(b.x), float32(b.y), float32(burstRadius*f+4), clr, true)
	}
}

func (e *effects) DrawHitTint(dst *ebiten.Image) {
	if e.now >= e.hitUntil {
		return
	}
	b := dst.Bounds()
	vector.DrawFilledRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), ColHit, false)
}
