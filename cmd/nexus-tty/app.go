package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"nexusstrike/internal/combat"
	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
	"nexusstrike/internal/session"
)

const (
	frame       = 16 * time.Millisecond // ~60 FPS
	aimStep     = 15.0
	bannerTime  = 1500 * time.Millisecond
	flashLength = 120 * time.Millisecond
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShip   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleShield = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
)

type banner struct {
	text  string
	until time.Duration
}

// app runs one terminal session at a time. Everything but PollEvent runs on the loop
// goroutine.
type app struct {
	cfg    config.Config
	store  session.HighScoreStore
	log    *slog.Logger
	screen tcell.Screen
	sound  *sounds
	clock  *session.SystemClock

	sess   *session.Session
	snap   session.Snapshot
	view   viewport
	best   int
	banner banner
	flash  map[uint64]time.Duration
}

func newApp(cfg config.Config, store session.HighScoreStore, log *slog.Logger, sound bool) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	a := &app{
		cfg:    cfg,
		store:  store,
		log:    log,
		screen: screen,
		sound:  newSounds(sound, log),
		clock:  session.NewSystemClock(),
		flash:  make(map[uint64]time.Duration),
	}
	a.resize()
	a.best = a.loadBest()
	return a, nil
}

func (a *app) loadBest() int {
	best, err := a.store.Load()
	if err != nil {
		a.log.Warn("load high score", "err", err)
	}
	return best
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	a.view = viewport{cols: cols, rows: rows, field: entity.Size{W: a.cfg.Playfield.Width, H: a.cfg.Playfield.Height}}
}

// Emit keeps the terminal's own effects: banners and damage flashes.
func (a *app) Emit(ev event.Event) {
	now := a.clock.Now()
	switch ev.Kind {
	case event.DamageFlash:
		a.flash[ev.Target] = now + flashLength
	case event.LevelUp:
		a.banner = banner{fmt.Sprintf("LEVEL %d", ev.Value), now + bannerTime}
	case event.BossWarning:
		a.banner = banner{"BOSS INCOMING", now + 1200*time.Millisecond}
	case event.BossDefeated:
		a.banner = banner{"BOSS DEFEATED", now + 2*time.Second}
	case event.ShieldOverflow:
		a.banner = banner{fmt.Sprintf("+%d", ev.Value), now + time.Second}
	case event.NewHighScore:
		a.banner = banner{"NEW HIGH SCORE", now + 3*time.Second}
	}
}

func (a *app) start() {
	a.banner = banner{}
	clear(a.flash)
	a.sess = session.New(a.cfg, session.Deps{
		Clock:  a.clock,
		Store:  a.store,
		Sink:   event.Multi{a, a.sound},
		Logger: a.log,
	})
	// Nothing to preload in a terminal.
	a.sess.OnPreloadComplete()
	a.snap = a.sess.Snapshot()
}

func (a *app) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(a.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if a.sess != nil {
				a.snap = a.sess.Tick(a.clock.Now())
			}
			a.draw()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleInput returns false when the player quits the program.
func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if a.sess == nil {
			return a.menuKey(ev)
		}
		a.playKey(ev)

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 || a.sess == nil {
			break
		}
		x, y := ev.Position()
		switch a.sess.State() {
		case session.Playing:
			a.sess.OnFireIntent(a.view.toField(x, y))
		case session.GameOver:
			a.sess.OnRestart()
			a.sess.OnPreloadComplete()
		}
	}
	return true
}

func (a *app) menuKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		return false
	case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		a.start()
	}
	return true
}

func (a *app) playKey(ev *tcell.EventKey) {
	s := a.sess
	pos := a.snap.Player.Pos

	switch ev.Key() {
	case tcell.KeyLeft:
		s.OnAimUpdate(entity.Vec{X: pos.X - aimStep, Y: pos.Y})
	case tcell.KeyRight:
		s.OnAimUpdate(entity.Vec{X: pos.X + aimStep, Y: pos.Y})
	case tcell.KeyUp:
		s.OnAimUpdate(entity.Vec{X: pos.X, Y: pos.Y - aimStep})
	case tcell.KeyDown:
		s.OnAimUpdate(entity.Vec{X: pos.X, Y: pos.Y + aimStep})
	case tcell.KeyEscape:
		s.OnPauseToggle()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			s.OnFireIntent(pos)
		case 'p':
			s.OnPauseToggle()
		case 'r':
			if s.State() == session.GameOver {
				s.OnRestart()
				s.OnPreloadComplete()
			}
		case 'm':
			s.OnQuitToMenu()
		}
	}

	if s.State() == session.Menu {
		a.sess = nil
		a.best = a.loadBest()
	}
}

func (a *app) draw() {
	a.screen.Clear()
	if a.sess == nil {
		a.drawMenu()
		a.screen.Show()
		return
	}

	now := a.clock.Now()
	s := &a.snap
	for _, p := range s.PowerUps {
		a.put(p.Pos, powerUpRune(p.Kind), powerUpStyle(p.Kind))
	}
	for _, e := range s.Enemies {
		st := enemyStyle(e.Kind)
		if until, ok := a.flash[uint64(e.ID)]; ok {
			if now < until {
				st = st.Reverse(true)
			} else {
				delete(a.flash, uint64(e.ID))
			}
		}
		if e.Kind == entity.BossKind {
			a.box(e.Pos, e.Kind.Size(), '#', st)
			continue
		}
		a.put(e.Pos, enemyRune(e.Kind), st)
	}
	for _, b := range s.Bullets {
		a.put(b.Pos, '|', styleBullet)
	}
	if s.Player.Alive {
		st := styleShip
		if s.Player.Shields > 0 {
			st = st.Background(tcell.ColorNavy)
		}
		a.put(s.Player.Pos, 'A', st)
	}

	a.drawHUD(now)
	switch s.State {
	case session.Paused:
		a.center(a.view.rows/2, "PAUSED  p: resume  m: main menu", styleBanner)
	case session.GameOver:
		a.center(a.view.rows/2-1, "GAME OVER", styleBanner)
		a.center(a.view.rows/2, fmt.Sprintf("score %d  best %d", s.Score, max(s.HighScore, a.best)), styleHUD)
		a.center(a.view.rows/2+1, "r or click: restart  m: main menu", styleHUD)
	}
	a.screen.Show()
}

func (a *app) drawHUD(now time.Duration) {
	s := &a.snap
	hearts := strings.Repeat("♥", s.Player.Health) + strings.Repeat("·", max(s.Player.MaxHealth-s.Player.Health, 0))
	line := fmt.Sprintf("SCORE %d  LEVEL %d  %s  Difficulty: %d%%", s.Score, s.Level, hearts, int(s.Difficulty*100))
	if s.Player.Shields > 0 {
		line += fmt.Sprintf("  SHIELD x%d", s.Player.Shields)
	}
	if s.Player.MultiShot > 0 {
		line += fmt.Sprintf("  MULTI x%d", s.Player.MultiShot)
	}
	if s.RapidFire {
		line += "  RAPID"
	}
	a.text(0, 0, line, styleHUD)

	switch {
	case now < a.banner.until:
		a.center(1, a.banner.text, styleBanner)
	case s.Boss != nil:
		a.bossBar(s.Boss)
	}
}

func (a *app) bossBar(b *session.BossView) {
	const width = 20
	filled := int(b.Fraction * width)
	st := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	switch b.Band {
	case combat.Yellow:
		st = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case combat.Red:
		st = tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	a.text(0, 1, fmt.Sprintf("BOSS %s %d%%", bar, int(b.Fraction*100)), st)
}

func (a *app) drawMenu() {
	mid := a.view.rows / 2
	a.center(mid-2, "NEXUS STRIKE", styleBanner)
	a.center(mid, fmt.Sprintf("High Score: %d", a.best), styleHUD)
	a.center(mid+2, "space: play   q: quit", styleHUD)
}

func (a *app) put(pos entity.Vec, r rune, st tcell.Style) {
	if x, y, ok := a.view.toCell(pos); ok {
		a.screen.SetContent(x, y, r, nil, st)
	}
}

// box fills the cells under a sprite of size sz centred on pos.
func (a *app) box(pos entity.Vec, sz entity.Size, r rune, st tcell.Style) {
	w, h := a.view.span(sz)
	cx, cy, ok := a.view.toCell(pos)
	if !ok {
		return
	}
	for dy := range h {
		for dx := range w {
			x, y := cx-w/2+dx, cy-h/2+dy
			if x >= 0 && x < a.view.cols && y >= hudRows && y < a.view.rows {
				a.screen.SetContent(x, y, r, nil, st)
			}
		}
	}
}

func (a *app) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (a *app) center(y int, s string, st tcell.Style) {
	a.text(max((a.view.cols-len([]rune(s)))/2, 0), y, s, st)
}

func (a *app) cleanup() {
	a.sound.close()
	a.screen.Fini()
}

func enemyRune(k entity.EnemyKind) rune {
	switch k {
	case entity.Fast:
		return 'v'
	case entity.Tank:
		return 'W'
	}
	return 'V'
}

func enemyStyle(k entity.EnemyKind) tcell.Style {
	switch k {
	case entity.Fast:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case entity.Tank:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple)
	case entity.BossKind:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorRed)
}

func powerUpRune(k entity.PowerUpKind) rune {
	switch k {
	case entity.Shield:
		return 'S'
	case entity.MultiShot:
		return 'M'
	}
	return 'R'
}

func powerUpStyle(k entity.PowerUpKind) tcell.Style {
	if k == entity.Shield {
		return styleShield
	}
	return tcell.StyleDefault.Foreground(tcell.ColorGreen)
}
