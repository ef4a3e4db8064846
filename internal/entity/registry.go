package entity

import (
	"slices"
	"time"

	"nexusstrike/internal/config"
)

// SpawnY is the height at which enemies and power-ups enter, just above the top edge.
const SpawnY = -spawnAbove

const bossSpawnY = -100.0

// Registry owns every live bullet, enemy and power-up. Slices keep insertion order so
// iteration is deterministic; enemies are also indexed by id for health lookups.
type Registry struct {
	field Size
	boss  config.Boss

	nextID   ID
	bullets  []*Bullet
	enemies  []*Enemy
	powerUps []*PowerUp
	byID     map[ID]*Enemy
	bossID   ID
}

func NewRegistry(cfg config.Config) *Registry {
	return &Registry{
		field: Size{cfg.Playfield.Width, cfg.Playfield.Height},
		boss:  cfg.Boss,
		byID:  make(map[ID]*Enemy),
	}
}

func (r *Registry) Field() Size { return r.field }

func (r *Registry) id() ID {
	r.nextID++
	return r.nextID
}

func (r *Registry) SpawnBullet(pos Vec, now time.Duration) *Bullet {
	b := &Bullet{
		ID:    r.id(),
		Pos:   pos,
		Spawn: now,
		Path: Linear{
			From:     pos,
			Delta:    Vec{0, -(r.field.H + bulletOvershoot)},
			Start:    now,
			Duration: bulletFlight,
		},
	}
	r.bullets = append(r.bullets, b)
	return b
}

func (r *Registry) SpawnEnemy(kind EnemyKind, pos Vec, now time.Duration) *Enemy {
	e := &Enemy{
		ID:        r.id(),
		Kind:      kind,
		Pos:       pos,
		Health:    kind.Health(),
		MaxHealth: kind.Health(),
		Path: Linear{
			From:     pos,
			Delta:    Vec{0, r.field.H + fallOvershoot},
			Start:    now,
			Duration: kind.Crossing(),
		},
	}
	r.addEnemy(e)
	return e
}

// SpawnBoss places the level's boss above the playfield. It refuses while a boss is live.
func (r *Registry) SpawnBoss(level int, now time.Duration) (*Enemy, bool) {
	if r.bossID != 0 {
		return nil, false
	}

	health := level * r.boss.HealthFactor
	spawn := Vec{r.field.W / 2, bossSpawnY}
	e := &Enemy{
		ID:        r.id(),
		Kind:      BossKind,
		Pos:       spawn,
		Health:    health,
		MaxHealth: health,
		Path: BossPath{
			Spawn:  spawn,
			EntryY: r.boss.EntryY,
			Left:   r.boss.PatrolInset,
			Right:  r.field.W - r.boss.PatrolInset,
			Start:  now,
			Entry:  r.boss.Entry,
			Leg:    r.boss.PatrolLeg,
		},
	}
	r.addEnemy(e)
	r.bossID = e.ID
	return e, true
}

func (r *Registry) addEnemy(e *Enemy) {
	r.enemies = append(r.enemies, e)
	r.byID[e.ID] = e
}

func (r *Registry) SpawnPowerUp(kind PowerUpKind, pos Vec, now time.Duration) *PowerUp {
	p := &PowerUp{
		ID:   r.id(),
		Kind: kind,
		Pos:  pos,
		Path: Linear{
			From:     pos,
			Delta:    Vec{0, r.field.H + fallOvershoot},
			Start:    now,
			Duration: powerUpFall,
		},
	}
	r.powerUps = append(r.powerUps, p)
	return p
}

// RemoveBullet is a no-op for unknown ids.
func (r *Registry) RemoveBullet(id ID) bool {
	i := slices.IndexFunc(r.bullets, func(b *Bullet) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	r.bullets = slices.Delete(r.bullets, i, i+1)
	return true
}

// RemoveEnemy drops the enemy and its health entry. Removing the boss frees the boss slot.
// It is a no-op for unknown ids.
func (r *Registry) RemoveEnemy(id ID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	if r.bossID == id {
		r.bossID = 0
	}
	i := slices.IndexFunc(r.enemies, func(e *Enemy) bool { return e.ID == id })
	r.enemies = slices.Delete(r.enemies, i, i+1)
	return true
}

func (r *Registry) RemovePowerUp(id ID) bool {
	i := slices.IndexFunc(r.powerUps, func(p *PowerUp) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	r.powerUps = slices.Delete(r.powerUps, i, i+1)
	return true
}

// Damage lowers the enemy's health by n, never below zero, and returns what remains.
func (r *Registry) Damage(id ID, n int) (int, bool) {
	e, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	e.Health = max(e.Health-n, 0)
	return e.Health, true
}

func (r *Registry) Health(id ID) (int, bool) {
	e, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	return e.Health, true
}

func (r *Registry) Enemy(id ID) (*Enemy, bool) {
	e, ok := r.byID[id]
	return e, ok
}

func (r *Registry) Boss() (*Enemy, bool) {
	if r.bossID == 0 {
		return nil, false
	}
	return r.byID[r.bossID], true
}

// Bullets, Enemies and PowerUps return the live collections. Callers that remove entities
// while iterating must iterate over a copy.
func (r *Registry) Bullets() []*Bullet   { return r.bullets }
func (r *Registry) Enemies() []*Enemy    { return r.enemies }
func (r *Registry) PowerUps() []*PowerUp { return r.powerUps }

// Advance moves everything to its position at now and drops what has left the playfield.
func (r *Registry) Advance(now time.Duration) {
	r.bullets = slices.DeleteFunc(r.bullets, func(b *Bullet) bool {
		b.Pos = b.Path.At(now)
		return expired(b.Path, now)
	})
	r.powerUps = slices.DeleteFunc(r.powerUps, func(p *PowerUp) bool {
		p.Pos = p.Path.At(now)
		return expired(p.Path, now)
	})
	r.enemies = slices.DeleteFunc(r.enemies, func(e *Enemy) bool {
		e.Pos = e.Path.At(now)
		if !expired(e.Path, now) {
			return false
		}
		delete(r.byID, e.ID)
		if r.bossID == e.ID {
			r.bossID = 0
		}
		return true
	})
}

func expired(t Trajectory, now time.Duration) bool {
	at, ok := t.Expiry()
	return ok && now >= at
}

// Reset empties the registry. Ids keep increasing so stale references stay invalid.
func (r *Registry) Reset() {
	r.bullets = nil
	r.enemies = nil
	r.powerUps = nil
	r.byID = make(map[ID]*Enemy)
	r.bossID = 0
}
