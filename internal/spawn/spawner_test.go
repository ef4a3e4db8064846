package spawn

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"nexusstrike/internal/config"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestKindForRoll(t *testing.T) {
	tests := []struct {
		roll int
		want entity.EnemyKind
	}{
		{1, entity.Normal},
		{70, entity.Normal},
		{71, entity.Fast},
		{90, entity.Fast},
		{91, entity.Tank},
		{100, entity.Tank},
	}
	for _, tt := range tests {
		if got := KindForRoll(tt.roll); got != tt.want {
			t.Errorf("KindForRoll(%d) = %v, want %v", tt.roll, got, tt.want)
		}
	}
}

func TestEnemyKindDistribution(t *testing.T) {
	s := New(config.Default(), seeded(), event.Discard)

	const n = 10000
	counts := map[entity.EnemyKind]int{}
	for i := 0; i < n; i++ {
		counts[s.EnemyKind()]++
	}

	want := map[entity.EnemyKind]float64{entity.Normal: 0.70, entity.Fast: 0.20, entity.Tank: 0.10}
	for kind, share := range want {
		got := float64(counts[kind]) / n
		if math.Abs(got-share) > 0.02 {
			t.Errorf("%v share = %.3f, want %.2f ± 0.02", kind, got, share)
		}
	}
}

func TestDifficulty(t *testing.T) {
	cfg := config.Default().Spawn
	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 1},
		{15 * time.Second, 1.5},
		{30 * time.Second, 2},
		{60 * time.Second, 3},
		{10 * time.Minute, 3},
	}

	prev := 0.0
	for _, tt := range tests {
		got := Difficulty(tt.at, cfg)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Difficulty(%v) = %v, want %v", tt.at, got, tt.want)
		}
		if got < prev {
			t.Errorf("Difficulty decreased at %v: %v < %v", tt.at, got, prev)
		}
		prev = got
	}
}

func TestDifficultyIsMonotonicAndBounded(t *testing.T) {
	cfg := config.Default().Spawn
	prev := Difficulty(0, cfg)
	for at := time.Duration(0); at <= 3*time.Minute; at += 250 * time.Millisecond {
		d := Difficulty(at, cfg)
		if d < 1 || d > 3 {
			t.Fatalf("Difficulty(%v) = %v out of [1,3]", at, d)
		}
		if d < prev {
			t.Fatalf("Difficulty(%v) = %v below previous %v", at, d, prev)
		}
		prev = d
	}
}

func TestEnemyInterval(t *testing.T) {
	cfg := config.Default().Spawn
	if got := EnemyInterval(1, cfg); got != 1500*time.Millisecond {
		t.Errorf("EnemyInterval(1) = %v, want 1.5s", got)
	}
	if got := EnemyInterval(3, cfg); got != 500*time.Millisecond {
		t.Errorf("EnemyInterval(3) = %v, want 500ms", got)
	}

	cfg.MinInterval = 800 * time.Millisecond
	if got := EnemyInterval(3, cfg); got != 800*time.Millisecond {
		t.Errorf("EnemyInterval with floor = %v, want 800ms", got)
	}
}

func TestXClampsOnNarrowPlayfield(t *testing.T) {
	cfg := config.Default()
	cfg.Playfield.Width = 50
	s := New(cfg, seeded(), event.Discard)
	for i := 0; i < 10; i++ {
		if got := s.X(); got != 25 {
			t.Fatalf("X() = %v, want 25", got)
		}
	}

	s = New(config.Default(), seeded(), event.Discard)
	for i := 0; i < 1000; i++ {
		if x := s.X(); x < 30 || x > 360 {
			t.Fatalf("X() = %v outside [30,360]", x)
		}
	}
}

func TestUpdateCadence(t *testing.T) {
	cfg := config.Default()
	reg := entity.NewRegistry(cfg)
	s := New(cfg, seeded(), event.Discard)

	s.Update(time.Second, 1, false, reg)
	if len(reg.Enemies()) != 0 {
		t.Fatalf("enemy spawned before the interval elapsed")
	}
	s.Update(1600*time.Millisecond, 1, false, reg)
	if len(reg.Enemies()) != 1 {
		t.Fatalf("want 1 enemy after 1.6s, got %d", len(reg.Enemies()))
	}
	s.Update(2*time.Second, 1, false, reg)
	if len(reg.Enemies()) != 1 {
		t.Errorf("second enemy spawned too soon")
	}

	s.Update(10*time.Second, 1, true, reg)
	if len(reg.Enemies()) != 1 {
		t.Errorf("enemy spawned while a boss is active")
	}
	if len(reg.PowerUps()) != 0 {
		t.Errorf("power-up spawned before 10s")
	}
	s.Update(10100*time.Millisecond, 1, true, reg)
	if len(reg.PowerUps()) != 1 {
		t.Errorf("want 1 power-up after 10.1s, got %d", len(reg.PowerUps()))
	}
}

func TestScheduleBossTelegraph(t *testing.T) {
	cfg := config.Default()
	reg := entity.NewRegistry(cfg)
	rec := &event.Recorder{}
	s := New(cfg, seeded(), rec)

	s.ScheduleBoss(3, 5*time.Second)
	if rec.Count(event.BossWarning) != 1 {
		t.Fatalf("no boss warning emitted")
	}

	s.Update(6*time.Second, 1, true, reg)
	if _, ok := reg.Boss(); ok {
		t.Fatalf("boss spawned during the telegraph")
	}

	s.Update(6200*time.Millisecond, 1, true, reg)
	boss, ok := reg.Boss()
	if !ok {
		t.Fatalf("boss not spawned after the telegraph")
	}
	if boss.Health != 30 {
		t.Errorf("boss health = %d, want 30", boss.Health)
	}
	if rec.Count(event.BossSpawned) != 1 {
		t.Errorf("BossSpawned events = %d, want 1", rec.Count(event.BossSpawned))
	}
	if s.BossPending() {
		t.Errorf("boss still pending after spawning")
	}
}
