package progression

import (
	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

const bossPointsPerLevel = 100

// Points awarded for destroying an enemy of the given kind. The boss is paid through
// DefeatBoss instead.
func Points(kind entity.EnemyKind) int {
	switch kind {
	case entity.Fast:
		return 20
	case entity.Tank:
		return 30
	case entity.BossKind:
		return 0
	}
	return 10
}

// Outcome of a level check.
type Outcome int

const (
	NoChange Outcome = iota
	LevelUp
	BossLevel
)

// Tracker holds score, level and kill progress for one run.
type Tracker struct {
	cfg   config.Progress
	every int
	sink  event.Sink

	Score       int
	Level       int
	Kills       int
	KillsNeeded int
	BossActive  bool
	BossLevel   int // level the current or last boss was raised at

	queuedBoss int
}

func NewTracker(cfg config.Config, sink event.Sink) *Tracker {
	t := &Tracker{cfg: cfg.Progress, every: cfg.Boss.Every, sink: sink}
	t.Reset()
	return t
}

func (t *Tracker) Reset() {
	t.Score = 0
	t.Level = 1
	t.Kills = 0
	t.KillsNeeded = t.cfg.KillsNeeded
	t.BossActive = false
	t.BossLevel = 0
	t.queuedBoss = 0
}

// RecordKill pays for a destroyed regular enemy and counts it toward the level.
func (t *Tracker) RecordKill(kind entity.EnemyKind) int {
	if kind == entity.BossKind {
		return 0
	}
	pts := Points(kind)
	t.Score += pts
	t.Kills++
	return pts
}

// DefeatBoss pays the boss bonus for the level the boss was raised at and lets regular
// spawning resume. The boss does not count toward the level's kill threshold.
func (t *Tracker) DefeatBoss() int {
	pts := bossPointsPerLevel * t.BossLevel
	t.Score += pts
	t.BossActive = false
	t.sink.Emit(event.Event{Kind: event.BossDefeated, Value: pts})
	return pts
}

// EndBoss clears the boss flag without paying, used when the boss leaves play some
// other way than being shot down.
func (t *Tracker) EndBoss() {
	t.BossActive = false
}

func (t *Tracker) AddBonus(points int) {
	if points > 0 {
		t.Score += points
	}
}

// IsBossLevel reports whether reaching level starts a boss fight.
func (t *Tracker) IsBossLevel(level int) bool {
	return level > 0 && level%t.every == 0
}

// CheckLevelUp advances at most one level. A boss level marks the boss active; the caller
// starts the telegraph. A boss level reached while a boss is still up is reported as a
// level-up and its boss is queued for PendingBoss.
func (t *Tracker) CheckLevelUp() Outcome {
	if t.Kills < t.KillsNeeded {
		return NoChange
	}

	t.Level++
	t.Kills = 0
	t.KillsNeeded += t.cfg.KillsStep

	if t.IsBossLevel(t.Level) {
		if !t.BossActive {
			t.BossActive = true
			t.BossLevel = t.Level
			return BossLevel
		}
		t.queuedBoss = t.Level
	}
	t.sink.Emit(event.Event{Kind: event.LevelUp, Value: t.Level})
	return LevelUp
}

// PendingBoss raises the queued boss once the previous one is gone. The caller starts
// the telegraph for the returned level.
func (t *Tracker) PendingBoss() (int, bool) {
	if t.BossActive || t.queuedBoss == 0 {
		return 0, false
	}
	t.BossActive = true
	t.BossLevel = t.queuedBoss
	t.queuedBoss = 0
	return t.BossLevel, true
}
