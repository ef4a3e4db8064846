// Package combat resolves the collisions of one tick and applies their damage.
//
// Every pass stops at the first match: a bullet hits at most one enemy, the player
// resolves at most one enemy contact and collects at most one power-up per tick. This
// keeps the arcade balance of the game and must not be widened to "resolve every overlap".
package combat

import (
	"slices"

	"github.com/solarlune/resolv"

	"nexusstrike/internal/entity"
	"nexusstrike/internal/event"
)

// Band is the colour band of the boss health bar.
type Band int

const (
	Green Band = iota
	Yellow
	Red
)

func (b Band) String() string {
	switch b {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	}
	return "red"
}

// BandFor maps a health fraction to its band: above 60% green, 30–60% yellow, below red.
func BandFor(fraction float64) Band {
	switch {
	case fraction > 0.6:
		return Green
	case fraction >= 0.3:
		return Yellow
	default:
		return Red
	}
}

// Kill records an enemy destroyed by player fire.
type Kill struct {
	ID   entity.ID
	Kind entity.EnemyKind
	Pos  entity.Vec
}

// Report is what one Resolve pass did.
type Report struct {
	Kills     []Kill
	BossKill  bool
	Absorbed  bool // a shield charge took an enemy contact
	PlayerHit bool
	Died      bool
	Rammed    bool // the enemy that touched the player was the boss
	Collected *entity.PowerUp
}

type Resolver struct {
	sink event.Sink
}

func NewResolver(sink event.Sink) *Resolver {
	return &Resolver{sink: sink}
}

// Overlaps reports whether two boxes intersect. Edges are inclusive and a box inside
// another counts as overlapping.
func Overlaps(a, b entity.Rect) bool {
	return bounds(a).IsIntersecting(bounds(b))
}

func bounds(r entity.Rect) resolv.Bounds {
	return resolv.NewRectangleTopLeft(r.X, r.Y, r.W, r.H).Bounds()
}

// Resolve runs the three collision passes in order: bullets against enemies, enemies
// against the player, then the player against power-ups.
func (r *Resolver) Resolve(reg *entity.Registry, p *entity.Player) Report {
	var rep Report
	r.bullets(reg, &rep)
	r.contact(reg, p, &rep)
	if !rep.Died {
		r.collect(reg, p, &rep)
	}
	return rep
}

func (r *Resolver) bullets(reg *entity.Registry, rep *Report) {
	for _, b := range slices.Clone(reg.Bullets()) {
		bb := bounds(b.Box())
		for _, e := range reg.Enemies() {
			if !bb.IsIntersecting(bounds(e.Box())) {
				continue
			}
			r.hit(reg, e, rep)
			reg.RemoveBullet(b.ID)
			break
		}
	}
}

func (r *Resolver) hit(reg *entity.Registry, e *entity.Enemy, rep *Report) {
	left, ok := reg.Damage(e.ID, 1)
	if !ok {
		return
	}

	if left > 0 {
		r.sink.Emit(event.Event{Kind: event.DamageFlash, X: e.Pos.X, Y: e.Pos.Y, Target: uint64(e.ID)})
		if e.Kind == entity.BossKind {
			r.sink.Emit(event.Event{
				Kind:     event.BossDamaged,
				Target:   uint64(e.ID),
				Value:    int(BandFor(e.HealthFraction())),
				Fraction: e.HealthFraction(),
			})
		}
		return
	}

	reg.RemoveEnemy(e.ID)
	r.sink.Emit(event.Event{Kind: event.Explosion, X: e.Pos.X, Y: e.Pos.Y, Target: uint64(e.ID)})
	r.sink.Emit(event.Event{Kind: event.ScreenShake})
	rep.Kills = append(rep.Kills, Kill{ID: e.ID, Kind: e.Kind, Pos: e.Pos})
	if e.Kind == entity.BossKind {
		rep.BossKill = true
	}
}

func (r *Resolver) contact(reg *entity.Registry, p *entity.Player, rep *Report) {
	pb := bounds(p.Box())
	for _, e := range reg.Enemies() {
		if !pb.IsIntersecting(bounds(e.Box())) {
			continue
		}

		pos, id := e.Pos, e.ID
		rep.Rammed = e.Kind == entity.BossKind
		reg.RemoveEnemy(id)
		r.sink.Emit(event.Event{Kind: event.Explosion, X: pos.X, Y: pos.Y, Target: uint64(id)})

		if p.Shields > 0 {
			p.Shields--
			rep.Absorbed = true
			r.sink.Emit(event.Event{Kind: event.ShieldAbsorb, X: p.Pos.X, Y: p.Pos.Y, Value: p.Shields})
			return
		}

		rep.PlayerHit = true
		rep.Died = p.Hit()
		r.sink.Emit(event.Event{Kind: event.PlayerHit, X: p.Pos.X, Y: p.Pos.Y, Value: p.Health})
		r.sink.Emit(event.Event{Kind: event.ScreenShake})
		return
	}
}

func (r *Resolver) collect(reg *entity.Registry, p *entity.Player, rep *Report) {
	pb := bounds(p.Box())
	for _, pu := range reg.PowerUps() {
		if !pb.IsIntersecting(bounds(pu.Box())) {
			continue
		}
		collected := *pu
		reg.RemovePowerUp(pu.ID)
		rep.Collected = &collected
		return
	}
}
