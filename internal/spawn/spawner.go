package spawn

import (
	"math/rand/v2"
	"time"

	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

// Kind roll cut points out of 100.
const (
	normalCeil = 70
	fastCeil   = 90
)

// Difficulty grows linearly with play time and is capped.
func Difficulty(elapsed time.Duration, cfg config.Spawn) float64 {
	d := 1 + float64(elapsed)/float64(cfg.DifficultyRamp)
	return min(max(d, 1), cfg.MaxDifficulty)
}

// EnemyInterval is the gap between enemy spawns at the given difficulty.
func EnemyInterval(difficulty float64, cfg config.Spawn) time.Duration {
	if difficulty < 1 {
		difficulty = 1
	}
	return max(time.Duration(float64(cfg.BaseInterval)/difficulty), cfg.MinInterval)
}

// KindForRoll maps a roll in [1,100] to an enemy kind: 70% normal, 20% fast, 10% tank.
func KindForRoll(roll int) entity.EnemyKind {
	switch {
	case roll <= normalCeil:
		return entity.Normal
	case roll <= fastCeil:
		return entity.Fast
	default:
		return entity.Tank
	}
}

type Spawner struct {
	cfg   config.Spawn
	width float64
	rng   *rand.Rand
	sink  event.Sink

	lastEnemy   time.Duration
	lastPowerUp time.Duration

	bossPending bool
	bossLevel   int
	bossDue     time.Duration
	telegraph   time.Duration
}

func New(cfg config.Config, rng *rand.Rand, sink event.Sink) *Spawner {
	return &Spawner{
		cfg:       cfg.Spawn,
		width:     cfg.Playfield.Width,
		rng:       rng,
		sink:      sink,
		telegraph: cfg.Boss.Telegraph,
	}
}

// Reset forgets spawn history and any pending boss.
func (s *Spawner) Reset() {
	s.lastEnemy = 0
	s.lastPowerUp = 0
	s.bossPending = false
}

func (s *Spawner) EnemyKind() entity.EnemyKind {
	return KindForRoll(s.rng.IntN(100) + 1)
}

func (s *Spawner) PowerUpKind() entity.PowerUpKind {
	return entity.PowerUpKinds[s.rng.IntN(len(entity.PowerUpKinds))]
}

// X picks a spawn column inside the side margins, or the centre when the playfield is
// narrower than both margins.
func (s *Spawner) X() float64 {
	lo, hi := s.cfg.Margin, s.width-s.cfg.Margin
	if hi <= lo {
		return s.width / 2
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// ScheduleBoss starts the warning telegraph; the boss appears once it elapses.
func (s *Spawner) ScheduleBoss(level int, now time.Duration) {
	s.bossPending = true
	s.bossLevel = level
	s.bossDue = now + s.telegraph
	s.sink.Emit(event.Event{Kind: event.BossWarning, Value: level})
}

func (s *Spawner) BossPending() bool { return s.bossPending }

// Update spawns whatever is due at now. Regular enemies are held back while bossActive.
func (s *Spawner) Update(now time.Duration, difficulty float64, bossActive bool, reg *entity.Registry) {
	if s.bossPending && now >= s.bossDue {
		s.bossPending = false
		if boss, ok := reg.SpawnBoss(s.bossLevel, now); ok {
			s.sink.Emit(event.Event{
				Kind:   event.BossSpawned,
				X:      boss.Pos.X,
				Y:      boss.Pos.Y,
				Target: uint64(boss.ID),
				Value:  boss.MaxHealth,
			})
		}
	}

	if !bossActive && now-s.lastEnemy > EnemyInterval(difficulty, s.cfg) {
		reg.SpawnEnemy(s.EnemyKind(), entity.Vec{X: s.X(), Y: entity.SpawnY}, now)
		s.lastEnemy = now
	}

	if now-s.lastPowerUp > s.cfg.PowerUpInterval {
		reg.SpawnPowerUp(s.PowerUpKind(), entity.Vec{X: s.X(), Y: entity.SpawnY}, now)
		s.lastPowerUp = now
	}
}
