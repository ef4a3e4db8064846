package main

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nexusstrike/internal/assets"
	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/gamemode"
	"nexusstrike/internal/observability"
	"nexusstrike/internal/session"
)

const SampleRate = 44100

// Define Screens
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlay
)

// Game adapts a session to ebiten. Ebiten calls Update and Draw from one goroutine, so
// the session is only touched there; the preload goroutine hands over the asset pack
// through an atomic pointer.
type Game struct {
	cfg   config.Config
	log   *slog.Logger
	clock *session.SystemClock
	store session.HighScoreStore
	pack  atomic.Pointer[assets.Pack]

	Screen Screen
	sess   *session.Session
	snap   session.Snapshot
	fx     *effects
	best   int

	world    *ebiten.Image
	pauseBtn gamemode.Button
	startBtn gamemode.Button
	topBtn   gamemode.Button // Resume on pause
	menuBtn  gamemode.Button
}

func NewGame(cfg config.Config, store session.HighScoreStore) *Game {
	w, h := cfg.Playfield.Width, cfg.Playfield.Height
	g := &Game{
		cfg:      cfg,
		log:      observability.NewLogger("frontend"),
		clock:    session.NewSystemClock(),
		store:    store,
		Screen:   ScreenMenu,
		world:    ebiten.NewImage(int(w), int(h)),
		pauseBtn: gamemode.Button{Label: "II", X: w - 54, Y: 10, W: 44, H: 44},
		startBtn: gamemode.Button{Label: "TAP TO PLAY", X: w/2 - 90, Y: h / 2, W: 180, H: 56},
		topBtn:   gamemode.Button{Label: "RESUME", X: w/2 - 90, Y: h/2 - 20, W: 180, H: 56},
		menuBtn:  gamemode.Button{Label: "MAIN MENU", X: w/2 - 90, Y: h/2 + 60, W: 180, H: 56},
	}
	g.fx = newEffects(audio.NewContext(SampleRate), g.pack.Load, g.log)
	g.best = g.loadBest()

	go g.preload()
	return g
}

func (g *Game) preload() {
	start := time.Now()
	g.pack.Store(assets.Load(SampleRate))
	g.log.Info("assets ready", "took", time.Since(start))
}

func (g *Game) loadBest() int {
	best, err := g.store.Load()
	if err != nil {
		g.log.Warn("load high score", "err", err)
	}
	return best
}

func (g *Game) startRun() {
	g.fx.Reset()
	g.sess = session.New(g.cfg, session.Deps{
		Clock:  g.clock,
		Store:  g.store,
		Sink:   g.fx,
		Logger: observability.NewLogger("session"),
	})
	g.snap = g.sess.Snapshot()
	g.Screen = ScreenPlay
	g.log.Info("run started", "run", g.sess.RunID())
}

func (g *Game) toMenu() {
	g.fx.Reset()
	g.sess = nil
	g.best = g.loadBest()
	g.Screen = ScreenMenu
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	now := g.clock.Now()
	g.fx.Update(now)

	if g.Screen == ScreenMenu {
		if len(g.taps()) > 0 || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.startRun()
		}
		return nil
	}

	if g.sess.State() == session.Loading && g.pack.Load() != nil {
		g.sess.OnPreloadComplete()
	}
	g.handleInput()
	if g.Screen == ScreenMenu {
		return nil
	}

	g.snap = g.sess.Tick(now)
	return nil
}

func (g *Game) handleInput() {
	s := g.sess
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.OnPauseToggle()
	}

	taps := g.taps()
	for _, p := range taps {
		switch s.State() {
		case session.Playing:
			if g.pauseBtn.Contains(p.X, p.Y) {
				s.OnPauseToggle()
				continue
			}
			s.OnFireIntent(vec(p))
		case session.Paused:
			if g.topBtn.Contains(p.X, p.Y) {
				s.OnResume()
			} else if g.menuBtn.Contains(p.X, p.Y) {
				s.OnQuitToMenu()
			}
		case session.GameOver:
			if g.menuBtn.Contains(p.X, p.Y) {
				s.OnQuitToMenu()
			} else {
				g.fx.Reset()
				s.OnRestart()
			}
		}
	}

	switch s.State() {
	case session.Playing:
		if p, ok := g.held(); ok && len(taps) == 0 {
			s.OnAimUpdate(vec(p))
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.OnFireIntent(g.snap.Player.Pos)
		}
	case session.GameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.fx.Reset()
			s.OnRestart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.OnQuitToMenu()
	}

	if s.State() == session.Menu {
		g.toMenu()
	}
}

// taps returns the presses that started this frame, mouse first.
func (g *Game) taps() []image.Point {
	var out []image.Point
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, image.Pt(x, y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		out = append(out, image.Pt(x, y))
	}
	return out
}

// held returns where a finger or the mouse button is down, if anywhere.
func (g *Game) held() (image.Point, bool) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return image.Pt(x, y), true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return image.Pt(x, y), true
	}
	return image.Point{}, false
}

func vec(p image.Point) entity.Vec {
	return entity.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Layout: the playfield is rendered at its logical size and scaled to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Playfield.Width), int(g.cfg.Playfield.Height)
}
