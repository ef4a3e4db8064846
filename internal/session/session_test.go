package session

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"nexusstrike/internal/combat"
	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
	"nexusstrike/internal/session/mocks"
)

type manualClock struct {
	t time.Duration
}

func (c *manualClock) Now() time.Duration { return c.t }

const frame = 16 * time.Millisecond

// started returns a session in Playing whose play time equals the clock reading.
func started(t *testing.T, store HighScoreStore) (*Session, *manualClock, *event.Recorder) {
	t.Helper()
	clock := &manualClock{}
	rec := &event.Recorder{}
	s := New(config.Default(), Deps{
		Clock: clock,
		Store: store,
		Sink:  rec,
		Rand:  rand.New(rand.NewPCG(7, 11)),
	})
	s.OnPreloadComplete()
	if s.State() != Playing {
		t.Fatalf("state after preload = %v, want playing", s.State())
	}
	return s, clock, rec
}

func (s *Session) tickAt(c *manualClock, at time.Duration) Snapshot {
	c.t = at
	return s.Tick(at)
}

func TestLoadingIsInert(t *testing.T) {
	s := New(config.Default(), Deps{Clock: &manualClock{}})

	s.OnFireIntent(entity.Vec{X: 10, Y: 10})
	snap := s.Tick(5 * time.Second)

	if snap.State != Loading {
		t.Errorf("state = %v, want loading", snap.State)
	}
	if len(snap.Bullets) != 0 || len(snap.Enemies) != 0 {
		t.Errorf("simulation ran while loading")
	}
}

func TestTankScenario(t *testing.T) {
	s, clock, rec := started(t, nil)
	at := 100 * time.Millisecond
	tank := s.reg.SpawnEnemy(entity.Tank, entity.Vec{X: 100, Y: 300}, at)
	s.reg.SpawnBullet(entity.Vec{X: 100, Y: 300}, at)

	snap := s.tickAt(clock, at)

	if hp, _ := s.reg.Health(tank.ID); hp != 1 {
		t.Fatalf("tank health = %d, want 1", hp)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if rec.Count(event.DamageFlash) != 1 {
		t.Errorf("damage flash events = %d, want 1", rec.Count(event.DamageFlash))
	}
	if snap.Player.Health != 3 {
		t.Errorf("player health = %d, want 3", snap.Player.Health)
	}

	at += frame
	s.reg.SpawnBullet(tank.Path.At(at), at)
	snap = s.tickAt(clock, at)

	if _, ok := s.reg.Enemy(tank.ID); ok {
		t.Errorf("tank survived the second bullet")
	}
	if snap.Score != 30 || snap.Kills != 1 {
		t.Errorf("score %d kills %d, want 30 and 1", snap.Score, snap.Kills)
	}
}

func TestEnemyContactCostsHealth(t *testing.T) {
	s, clock, _ := started(t, nil)
	at := 200 * time.Millisecond
	s.reg.SpawnEnemy(entity.Normal, s.player.Pos, at)

	snap := s.tickAt(clock, at)

	if snap.Player.Health != 2 {
		t.Errorf("player health = %d, want 2", snap.Player.Health)
	}
	if len(snap.Enemies) != 0 {
		t.Errorf("enemy survived contact")
	}
	if snap.State != Playing {
		t.Errorf("state = %v, want playing", snap.State)
	}
}

func TestShieldOverflowScores(t *testing.T) {
	s, clock, _ := started(t, nil)
	s.player.Shields = 5
	at := 300 * time.Millisecond
	s.reg.SpawnPowerUp(entity.Shield, s.player.Pos, at)

	snap := s.tickAt(clock, at)

	if snap.Player.Shields != 5 {
		t.Errorf("shields = %d, want 5", snap.Player.Shields)
	}
	if snap.Score != 50 {
		t.Errorf("score = %d, want 50", snap.Score)
	}
}

func TestMultiShotFireIntent(t *testing.T) {
	s, clock, _ := started(t, nil)
	s.player.MultiShot = 1
	x := s.player.Pos.X

	s.OnFireIntent(s.player.Pos)
	snap := s.tickAt(clock, 100*time.Millisecond)

	if len(snap.Bullets) != 3 {
		t.Fatalf("bullets = %d, want 3", len(snap.Bullets))
	}
	for i, want := range []float64{x, x - 15, x + 15} {
		if snap.Bullets[i].Pos.X != want {
			t.Errorf("bullet %d x = %v, want %v", i, snap.Bullets[i].Pos.X, want)
		}
	}
	if snap.Player.MultiShot != 0 {
		t.Errorf("multi-shot charges = %d, want 0", snap.Player.MultiShot)
	}
}

func TestGameOverHighScore(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		stored int
		save   bool
	}{
		{name: "beats stored", score: 150, stored: 100, save: true},
		{name: "ties stored", score: 100, stored: 100},
		{name: "below stored", score: 40, stored: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockHighScoreStore(ctrl)
			store.EXPECT().Load().Return(tt.stored, nil).Times(2)
			if tt.save {
				store.EXPECT().Save(tt.score).Return(nil)
			}

			s, clock, rec := started(t, store)
			s.tracker.Score = tt.score
			s.player.Health = 1
			at := 250 * time.Millisecond
			s.reg.SpawnEnemy(entity.Fast, s.player.Pos, at)

			snap := s.tickAt(clock, at)

			if snap.State != GameOver {
				t.Fatalf("state = %v, want game over", snap.State)
			}
			if snap.Player.Health != 0 {
				t.Errorf("health = %d, want 0", snap.Player.Health)
			}
			wantHigh := max(tt.score, tt.stored)
			if snap.HighScore != wantHigh {
				t.Errorf("high score = %d, want %d", snap.HighScore, wantHigh)
			}
			if got := rec.Count(event.NewHighScore); (got == 1) != tt.save {
				t.Errorf("NewHighScore events = %d, save = %v", got, tt.save)
			}
		})
	}
}

func TestGameOverStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().Load().Return(0, errors.New("disk gone")).Times(2)

	s, clock, _ := started(t, store)
	s.tracker.Score = 500
	s.player.Health = 1
	s.reg.SpawnEnemy(entity.Normal, s.player.Pos, 0)

	if snap := s.tickAt(clock, 0); snap.State != GameOver {
		t.Errorf("state = %v, want game over despite store failure", snap.State)
	}
}

func TestHighScoreSeededAtStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().Load().Return(420, nil)

	s, clock, _ := started(t, store)
	snap := s.tickAt(clock, frame)

	if snap.HighScore != 420 {
		t.Errorf("high score = %d, want 420 before any game over", snap.HighScore)
	}
	if s.HighScore() != 420 {
		t.Errorf("HighScore() = %d, want 420", s.HighScore())
	}
}

func TestHighScoreSeedFailureKeepsPlaying(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockHighScoreStore(ctrl)
	store.EXPECT().Load().Return(0, errors.New("disk gone"))

	s, clock, _ := started(t, store)

	if snap := s.tickAt(clock, frame); snap.HighScore != 0 || snap.State != Playing {
		t.Errorf("high score %d state %v, want 0 and playing", snap.HighScore, snap.State)
	}
}

func TestGameOverAcceptsOnlyRestartOrQuit(t *testing.T) {
	s, clock, _ := started(t, nil)
	s.player.Health = 1
	s.reg.SpawnEnemy(entity.Normal, s.player.Pos, 0)
	s.tickAt(clock, 0)
	firstRun := s.RunID()

	s.OnFireIntent(entity.Vec{X: 100, Y: 100})
	s.OnPauseToggle()
	if s.State() != GameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}

	s.OnRestart()
	if s.State() != Loading {
		t.Fatalf("state after restart = %v, want loading", s.State())
	}
	if s.RunID() == firstRun {
		t.Errorf("restart kept the run id")
	}
	if s.Health() != 3 || s.Score() != 0 || s.Level() != 1 {
		t.Errorf("restart kept state: health %d score %d level %d", s.Health(), s.Score(), s.Level())
	}

	clock.t = 20 * time.Second
	s.OnPreloadComplete()
	if snap := s.tickAt(clock, 20*time.Second+frame); snap.Time != frame {
		t.Errorf("play time after restart = %v, want %v", snap.Time, frame)
	}
}

func TestPauseFreezesDeadlines(t *testing.T) {
	s, clock, _ := started(t, nil)
	at := time.Second
	s.reg.SpawnPowerUp(entity.RapidFire, s.player.Pos, at)
	s.tickAt(clock, at)
	if s.player.Cooldown != 100*time.Millisecond {
		t.Fatalf("rapid fire not active")
	}

	s.OnPauseToggle()
	s.OnFireIntent(s.player.Pos)
	if snap := s.tickAt(clock, 50*time.Second); snap.State != Paused || snap.Time != time.Second {
		t.Fatalf("paused tick = %v at %v, want paused at 1s", snap.State, snap.Time)
	}

	clock.t = 100 * time.Second
	s.OnResume()
	snap := s.tickAt(clock, 100*time.Second+4900*time.Millisecond)
	if snap.Time != 5900*time.Millisecond {
		t.Errorf("play time = %v, want 5.9s", snap.Time)
	}
	if !snap.RapidFire {
		t.Errorf("rapid fire expired during the pause")
	}
	if len(snap.Bullets) != 0 {
		t.Errorf("fire intent given while paused was applied")
	}

	snap = s.tickAt(clock, 100*time.Second+5*time.Second)
	if snap.RapidFire {
		t.Errorf("rapid fire still on at play time 6s")
	}
}

func TestPauseReadsClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	gomock.InOrder(
		clock.EXPECT().Now().Return(time.Duration(0)),
		clock.EXPECT().Now().Return(2*time.Second),
		clock.EXPECT().Now().Return(9*time.Second),
	)

	s := New(config.Default(), Deps{Clock: clock})
	s.OnPreloadComplete()
	s.OnPauseToggle()
	s.OnPauseToggle()

	if snap := s.Tick(10 * time.Second); snap.Time != 3*time.Second {
		t.Errorf("play time = %v, want 3s", snap.Time)
	}
}

func TestQuitToMenu(t *testing.T) {
	s, _, _ := started(t, nil)

	s.OnQuitToMenu()
	if s.State() != Playing {
		t.Fatalf("quit accepted while playing")
	}
	s.OnPauseToggle()
	s.OnQuitToMenu()
	if s.State() != Menu {
		t.Errorf("state = %v, want menu", s.State())
	}
}

func TestBossSequence(t *testing.T) {
	s, clock, rec := started(t, nil)
	s.tracker.Level = 2
	s.tracker.KillsNeeded = 15
	s.tracker.Kills = 14

	at := 100 * time.Millisecond
	s.reg.SpawnEnemy(entity.Normal, entity.Vec{X: 100, Y: 300}, at)
	s.reg.SpawnBullet(entity.Vec{X: 100, Y: 300}, at)
	snap := s.tickAt(clock, at)

	if snap.Level != 3 || !snap.BossActive || !snap.BossWarning {
		t.Fatalf("level %d boss active %v warning %v, want 3 true true", snap.Level, snap.BossActive, snap.BossWarning)
	}
	if rec.Count(event.BossWarning) != 1 {
		t.Errorf("BossWarning events = %d, want 1", rec.Count(event.BossWarning))
	}

	at += 1200 * time.Millisecond
	snap = s.tickAt(clock, at)
	if snap.Boss == nil {
		t.Fatalf("boss not spawned after the telegraph")
	}
	if snap.Boss.Health != 30 || snap.Boss.Band != combat.Green {
		t.Errorf("boss = %+v, want 30 health and green band", snap.Boss)
	}
	if len(snap.Enemies) != 1 {
		t.Errorf("enemies = %d, want only the boss", len(snap.Enemies))
	}

	boss, _ := s.reg.Boss()
	s.reg.Damage(boss.ID, 29)
	at += frame
	s.reg.SpawnBullet(boss.Path.At(at), at)
	snap = s.tickAt(clock, at)

	if snap.Boss != nil || snap.BossActive {
		t.Errorf("boss still up after its last hit")
	}
	if snap.Score != 10+300 {
		t.Errorf("score = %d, want 310", snap.Score)
	}
	if snap.Kills != 0 {
		t.Errorf("boss counted toward kills: %d", snap.Kills)
	}
	if _, ok := s.BossHealth(); ok {
		t.Errorf("BossHealth reports a boss after defeat")
	}
}

func TestBulletInsideBossHitsSameTick(t *testing.T) {
	s, clock, rec := started(t, nil)
	s.tracker.BossActive = true
	s.tracker.BossLevel = 2
	boss, _ := s.reg.SpawnBoss(2, 0)

	at := 2 * time.Second
	s.reg.SpawnBullet(boss.Path.At(at), at)
	snap := s.tickAt(clock, at)

	if snap.Boss == nil || snap.Boss.Health != boss.MaxHealth-1 {
		t.Fatalf("boss = %+v, want one hit taken", snap.Boss)
	}
	if len(snap.Bullets) != 0 {
		t.Errorf("bullets = %d, want the bullet consumed", len(snap.Bullets))
	}
	if rec.Count(event.BossDamaged) != 1 {
		t.Errorf("BossDamaged events = %d, want 1", rec.Count(event.BossDamaged))
	}
}

func TestQueuedBossFollowsDefeat(t *testing.T) {
	s, clock, rec := started(t, nil)
	s.tracker.Level = 5
	s.tracker.BossActive = true
	s.tracker.BossLevel = 3
	s.tracker.Kills = s.tracker.KillsNeeded - 1
	boss, _ := s.reg.SpawnBoss(3, 0)

	at := 100 * time.Millisecond
	s.reg.SpawnEnemy(entity.Normal, entity.Vec{X: 100, Y: 300}, at)
	s.reg.SpawnBullet(entity.Vec{X: 100, Y: 300}, at)
	snap := s.tickAt(clock, at)

	if snap.Level != 6 || rec.Count(event.BossWarning) != 0 {
		t.Fatalf("level %d warnings %d, want 6 and no warning while the boss is up", snap.Level, rec.Count(event.BossWarning))
	}

	s.reg.Damage(boss.ID, boss.MaxHealth-1)
	at += frame
	s.reg.SpawnBullet(boss.Path.At(at), at)
	snap = s.tickAt(clock, at)

	if snap.Score != 10+300 {
		t.Errorf("score = %d, want 310 for the level 3 boss", snap.Score)
	}
	if !snap.BossActive || rec.Count(event.BossWarning) != 1 {
		t.Fatalf("boss active %v warnings %d, want the queued boss telegraphed", snap.BossActive, rec.Count(event.BossWarning))
	}
	if warn, _ := rec.Last(event.BossWarning); warn.Value != 6 {
		t.Errorf("warning for level %d, want 6", warn.Value)
	}

	at += s.cfg.Boss.Telegraph
	snap = s.tickAt(clock, at)
	if snap.Boss == nil || snap.Boss.Health != 6*s.cfg.Boss.HealthFactor {
		t.Errorf("boss = %+v, want the level 6 boss", snap.Boss)
	}
}

func TestBossRamClearsBossFlag(t *testing.T) {
	s, clock, _ := started(t, nil)
	s.tracker.BossActive = true
	boss, _ := s.reg.SpawnBoss(3, 0)
	boss.Path = entity.Linear{From: s.player.Pos, Duration: time.Hour}

	snap := s.tickAt(clock, frame)

	if snap.BossActive || snap.Boss != nil {
		t.Errorf("boss flag kept after the boss rammed the ship")
	}
	if snap.Player.Health != 2 {
		t.Errorf("health = %d, want 2", snap.Player.Health)
	}
	if snap.Score != 0 {
		t.Errorf("ramming boss paid %d points", snap.Score)
	}
}

func TestLongRunInvariants(t *testing.T) {
	s, clock, _ := started(t, nil)
	rng := rand.New(rand.NewPCG(3, 5))

	prevDifficulty := 1.0
	for at := time.Duration(0); at < 3*time.Minute; at += frame {
		if rng.IntN(4) == 0 {
			s.OnFireIntent(entity.Vec{X: rng.Float64() * 390, Y: 600 + rng.Float64()*244})
		}
		if rng.IntN(50) == 0 {
			s.reg.SpawnPowerUp(entity.Shield, s.player.Pos, s.now)
		}
		snap := s.tickAt(clock, at)

		if snap.Player.Health < 0 || snap.Player.Health > 3 {
			t.Fatalf("health %d out of range at %v", snap.Player.Health, at)
		}
		if snap.Player.Shields < 0 || snap.Player.Shields > 5 {
			t.Fatalf("shields %d out of range at %v", snap.Player.Shields, at)
		}
		if snap.Difficulty < prevDifficulty || snap.Difficulty > 3 {
			t.Fatalf("difficulty %v after %v at %v", snap.Difficulty, prevDifficulty, at)
		}
		prevDifficulty = snap.Difficulty
		if snap.Boss != nil && (snap.Boss.Fraction < 0 || snap.Boss.Fraction > 1) {
			t.Fatalf("boss fraction %v out of range", snap.Boss.Fraction)
		}
		if snap.State != Playing {
			break
		}
	}
}
