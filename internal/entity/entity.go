package entity

import (
	"fmt"
	"time"
)

// ID identifies a live entity. Ids are never reused within a registry.
type ID uint64

type EnemyKind int

const (
	Normal EnemyKind = iota
	Fast
	Tank
	BossKind
)

func (k EnemyKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	case Tank:
		return "tank"
	case BossKind:
		return "boss"
	}
	return fmt.Sprintf("enemy(%d)", int(k))
}

// Size of the kind's hit box.
func (k EnemyKind) Size() Size {
	switch k {
	case Fast:
		return Size{20, 20}
	case Tank:
		return Size{35, 35}
	case BossKind:
		return Size{80, 80}
	}
	return Size{25, 25}
}

// Health a freshly spawned enemy of this kind starts with. Boss health depends on the
// level and is set by SpawnBoss.
func (k EnemyKind) Health() int {
	if k == Tank {
		return 2
	}
	return 1
}

// Crossing is how long the kind takes to fall through the playfield.
func (k EnemyKind) Crossing() time.Duration {
	switch k {
	case Fast:
		return 2500 * time.Millisecond
	case Tank:
		return 5 * time.Second
	}
	return 4 * time.Second
}

type PowerUpKind int

const (
	RapidFire PowerUpKind = iota
	Shield
	MultiShot
)

// PowerUpKinds lists every kind in a fixed order for uniform selection.
var PowerUpKinds = [...]PowerUpKind{RapidFire, Shield, MultiShot}

func (k PowerUpKind) String() string {
	switch k {
	case RapidFire:
		return "rapid_fire"
	case Shield:
		return "shield"
	case MultiShot:
		return "multi_shot"
	}
	return fmt.Sprintf("powerup(%d)", int(k))
}

var (
	BulletSize  = Size{4, 10}
	PowerUpSize = Size{20, 20}
	PlayerSize  = Size{30, 30}
)

const (
	bulletFlight    = 2 * time.Second
	powerUpFall     = 6 * time.Second
	spawnAbove      = 25.0 // entities appear this far above the top edge
	bulletOvershoot = 50.0
	fallOvershoot   = 100.0
)

type Bullet struct {
	ID    ID
	Pos   Vec
	Spawn time.Duration
	Path  Linear
}

func (b *Bullet) Box() Rect { return BoxAt(b.Pos, BulletSize) }

type Enemy struct {
	ID        ID
	Kind      EnemyKind
	Pos       Vec
	Health    int
	MaxHealth int
	Path      Trajectory
}

func (e *Enemy) Box() Rect { return BoxAt(e.Pos, e.Kind.Size()) }

// HealthFraction is Health/MaxHealth clamped to [0,1]; 0 when MaxHealth is not positive.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return clamp(float64(e.Health)/float64(e.MaxHealth), 0, 1)
}

type PowerUp struct {
	ID   ID
	Kind PowerUpKind
	Pos  Vec
	Path Linear
}

func (p *PowerUp) Box() Rect { return BoxAt(p.Pos, PowerUpSize) }
