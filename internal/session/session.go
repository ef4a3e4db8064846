package session

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"nexusstrike/internal/combat"
	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
	"nexusstrike/internal/observability"
	"nexusstrike/internal/powerup"
	"nexusstrike/internal/progression"
	"nexusstrike/internal/spawn"
)

type State int

const (
	Loading  State = iota // Waiting for the frontend's preload
	Playing               // Simulation running
	Paused                // Frozen, play time not counted
	GameOver              // Ship destroyed, waiting for restart or quit
	Menu                  // Handed back to the frontend's menu
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case Menu:
		return "menu"
	}
	return "unknown"
}

// Deps are the collaborators a session talks to. Only Clock is required.
type Deps struct {
	Clock  Clock
	Store  HighScoreStore
	Sink   event.Sink
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Session is one run of the game. It is not safe for concurrent use: the frontend calls
// Tick and the input methods from a single goroutine.
type Session struct {
	cfg   config.Config
	clock Clock
	store HighScoreStore
	base  *slog.Logger
	log   *slog.Logger
	tick  *event.Recorder
	emit  event.Sink

	runID string
	state State

	startedAt   time.Duration
	pausedAt    time.Duration
	pausedTotal time.Duration
	now         time.Duration

	player     entity.Player
	reg        *entity.Registry
	spawner    *spawn.Spawner
	resolver   *combat.Resolver
	tracker    *progression.Tracker
	power      *powerup.Manager
	difficulty float64
	highScore  int

	aim    entity.Vec
	hasAim bool
	fire   bool
}

func New(cfg config.Config, deps Deps) *Session {
	rng := deps.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	sink := deps.Sink
	if sink == nil {
		sink = event.Discard
	}
	logger := deps.Logger
	if logger == nil {
		logger = observability.Discard()
	}

	rec := &event.Recorder{}
	emit := event.Multi{rec, sink}
	s := &Session{
		cfg:      cfg,
		clock:    deps.Clock,
		store:    deps.Store,
		base:     logger,
		tick:     rec,
		emit:     emit,
		reg:      entity.NewRegistry(cfg),
		spawner:  spawn.New(cfg, rng, emit),
		resolver: combat.NewResolver(emit),
		tracker:  progression.NewTracker(cfg, emit),
		power:    powerup.NewManager(cfg, emit),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.runID = uuid.NewString()
	s.log = s.base.With("run", s.runID)
	s.state = Loading
	s.startedAt, s.pausedAt, s.pausedTotal, s.now = 0, 0, 0, 0
	s.player = entity.NewPlayer(
		entity.Vec{X: s.cfg.Playfield.Width / 2, Y: s.cfg.Playfield.Height - s.cfg.Player.StartOffset},
		s.cfg.Player.Health,
		s.cfg.Player.FireCooldown,
	)
	s.reg.Reset()
	s.spawner.Reset()
	s.tracker.Reset()
	s.power.Reset()
	s.difficulty = 1
	s.hasAim, s.fire = false, false
}

func (s *Session) setState(next State) {
	s.log.Info("session state", "from", s.state, "to", next)
	s.state = next
}

// OnPreloadComplete starts play. The run clock starts here.
func (s *Session) OnPreloadComplete() {
	if s.state != Loading {
		return
	}
	s.startedAt = s.clock.Now()
	s.loadHighScore()
	s.setState(Playing)
}

func (s *Session) loadHighScore() {
	if s.store == nil {
		return
	}
	best, err := s.store.Load()
	if err != nil {
		s.log.Warn("load high score", "err", err)
		return
	}
	s.highScore = max(best, s.highScore)
}

// OnAimUpdate moves the ship at the next tick. Only the latest aim is kept.
func (s *Session) OnAimUpdate(pos entity.Vec) {
	if s.state != Playing {
		return
	}
	s.aim, s.hasAim = pos, true
}

// OnFireIntent fires from the ship's current position at the next tick, then steers the
// ship toward pos.
func (s *Session) OnFireIntent(pos entity.Vec) {
	if s.state != Playing {
		return
	}
	s.fire = true
	s.aim, s.hasAim = pos, true
}

func (s *Session) OnPauseToggle() {
	switch s.state {
	case Playing:
		s.pausedAt = s.clock.Now()
		s.setState(Paused)
	case Paused:
		s.OnResume()
	}
}

func (s *Session) OnResume() {
	if s.state != Paused {
		return
	}
	s.pausedTotal += s.clock.Now() - s.pausedAt
	s.setState(Playing)
}

// OnRestart begins a fresh run. The frontend signals preload again to start it.
func (s *Session) OnRestart() {
	if s.state != GameOver {
		return
	}
	prev := s.runID
	s.reset()
	s.log.Info("session restarted", "previous", prev)
}

func (s *Session) OnQuitToMenu() {
	if s.state != Paused && s.state != GameOver {
		return
	}
	s.setState(Menu)
}

// playTime converts a clock reading into unpaused time since the run started. It never
// goes backwards.
func (s *Session) playTime(now time.Duration) time.Duration {
	return max(now-s.startedAt-s.pausedTotal, s.now)
}

// Tick advances the simulation to now and returns the state for rendering. Outside
// Playing it only reports.
func (s *Session) Tick(now time.Duration) Snapshot {
	s.tick.Reset()
	if s.state != Playing {
		return s.snapshot()
	}

	t := s.playTime(now)
	s.now = t
	s.difficulty = max(s.difficulty, spawn.Difficulty(t, s.cfg.Spawn))

	s.applyInput(t)
	s.spawner.Update(t, s.difficulty, s.tracker.BossActive, s.reg)
	s.reg.Advance(t)
	rep := s.resolver.Resolve(s.reg, &s.player)
	s.progress(rep, t)
	if rep.Collected != nil {
		s.tracker.AddBonus(s.power.Apply(rep.Collected.Kind, t, &s.player))
	}
	s.power.Update(t, &s.player)

	if rep.Died {
		s.gameOver()
	}
	return s.snapshot()
}

func (s *Session) applyInput(t time.Duration) {
	if s.fire {
		s.power.Fire(t, &s.player, s.reg)
		s.fire = false
	}
	if s.hasAim {
		s.player.MoveTo(s.aim, s.reg.Field())
		s.hasAim = false
	}
}

func (s *Session) progress(rep combat.Report, t time.Duration) {
	for _, k := range rep.Kills {
		if k.Kind == entity.BossKind {
			pts := s.tracker.DefeatBoss()
			s.log.Info("boss defeated", "boss_level", s.tracker.BossLevel, "points", pts)
			continue
		}
		s.tracker.RecordKill(k.Kind)
	}

	switch s.tracker.CheckLevelUp() {
	case progression.BossLevel:
		s.spawner.ScheduleBoss(s.tracker.BossLevel, t)
		s.log.Info("boss incoming", "level", s.tracker.Level)
	case progression.LevelUp:
		s.log.Info("level up", "level", s.tracker.Level, "kills_needed", s.tracker.KillsNeeded)
	}

	// A boss that rammed the ship is gone without a payout; spawning resumes.
	if s.tracker.BossActive && !s.spawner.BossPending() {
		if _, ok := s.reg.Boss(); !ok {
			s.tracker.EndBoss()
			s.log.Info("boss lost", "rammed", rep.Rammed)
		}
	}

	if lvl, ok := s.tracker.PendingBoss(); ok {
		s.spawner.ScheduleBoss(lvl, t)
		s.log.Info("queued boss incoming", "boss_level", lvl, "level", s.tracker.Level)
	}
}

func (s *Session) gameOver() {
	s.setState(GameOver)
	score := s.tracker.Score
	s.emit.Emit(event.Event{Kind: event.GameOver, Value: score})
	s.log.Info("game over", "score", score, "level", s.tracker.Level, "play_time", s.now)

	if s.store == nil {
		return
	}
	best, err := s.store.Load()
	if err != nil {
		s.log.Error("load high score", "err", err)
		return
	}
	s.highScore = max(best, s.highScore)
	if score <= best {
		return
	}
	if err := s.store.Save(score); err != nil {
		s.log.Error("save high score", "score", score, "err", err)
		return
	}
	s.highScore = score
	s.emit.Emit(event.Event{Kind: event.NewHighScore, Value: score})
	s.log.Info("new high score", "score", score, "previous", best)
}

func (s *Session) State() State        { return s.state }
func (s *Session) RunID() string       { return s.runID }
func (s *Session) Score() int          { return s.tracker.Score }
func (s *Session) Level() int          { return s.tracker.Level }
func (s *Session) Health() int         { return s.player.Health }
func (s *Session) Shields() int        { return s.player.Shields }
func (s *Session) MultiShot() int      { return s.player.MultiShot }
func (s *Session) Difficulty() float64 { return s.difficulty }
func (s *Session) HighScore() int      { return s.highScore }

// BossHealth reports the live boss's health fraction in [0,1].
func (s *Session) BossHealth() (float64, bool) {
	boss, ok := s.reg.Boss()
	if !ok {
		return 0, false
	}
	return boss.HealthFraction(), true
}
