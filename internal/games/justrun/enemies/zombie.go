// Package enemies implements the zombie variants and their targeting rules.
//
// Every variant shares one Character substrate and differs only in its
// Profile (acceleration, chase acceleration, velocity cap, chase radius)
// and in how it picks a target. The variant set is closed, so a Kind tag
// with a switch stands in for per-type dispatch.
package enemies

import (
	"time"

	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/rng"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
)

// Kind is the zombie variant. Values match the wire ids 1..4.
type Kind uint8

const (
	Slow Kind = iota + 1
	Crazy
	Random
	Cloud
)

// Kinds lists every variant in id order.
var Kinds = []Kind{Slow, Crazy, Random, Cloud}

func (k Kind) String() string {
	switch k {
	case Slow:
		return "slow"
	case Crazy:
		return "crazy"
	case Random:
		return "random"
	case Cloud:
		return "cloud"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the four variants.
func (k Kind) Valid() bool {
	return k >= Slow && k <= Cloud
}

// ReacquireRadius is the distance to the current target below which a new
// target may be chosen.
const ReacquireRadius = 20.0

// Profile is the per-variant tuning.
type Profile struct {
	Accel       float64 // units/ms² while wandering (or always, for Slow and Random)
	ChaseAccel  float64 // units/ms² while chasing
	MaxVelocity float64 // units/ms
	ChaseRadius float64 // player distance that starts a chase; 0 never chases
	WalkFrames  int
	FPS         int
}

// DefaultProfile returns the stock tuning for k.
func DefaultProfile(k Kind) Profile {
	switch k {
	case Crazy:
		return Profile{Accel: 0.00063007812, ChaseAccel: 0.00183007812, MaxVelocity: 0.15859375, ChaseRadius: 100, WalkFrames: 1, FPS: 20}
	case Random:
		return Profile{Accel: 0.00183007812, MaxVelocity: 0.20859375, WalkFrames: 1, FPS: 20}
	case Cloud:
		return Profile{Accel: 0.00083007812, ChaseAccel: 0.00083007812, MaxVelocity: 0.05859375, ChaseRadius: 50, WalkFrames: 2, FPS: 20}
	default:
		return Profile{Accel: 0.00003007812, MaxVelocity: 0.15859375, WalkFrames: 1, FPS: 20}
	}
}

// Field is what a zombie knows about the level: its size in tiles and the
// world's random source.
type Field struct {
	Rows, Cols int
	Rand       *rng.Source
}

// Zombie is one enemy.
type Zombie struct {
	kind    Kind
	profile Profile
	field   Field
	char    physics.Character
	chasing bool
	death   physics.Countdown
	anim    sprite.Animator
}

// New creates a zombie of kind k at map-space (x, y).
func New(k Kind, x, y float64, p Profile, f Field) *Zombie {
	return &Zombie{
		kind:    k,
		profile: p,
		field:   f,
		char:    physics.NewCharacter(x, y),
		anim:    sprite.NewAnimator(p.WalkFrames, p.FPS),
	}
}

// Kind returns the variant tag.
func (z *Zombie) Kind() Kind { return z.kind }

// Profile returns the zombie's tuning.
func (z *Zombie) Profile() Profile { return z.profile }

// Character exposes the physics state for read access.
func (z *Zombie) Character() physics.Character { return z.char }

// Position returns the map-space top-left corner.
func (z *Zombie) Position() (x, y float64) { return z.char.X, z.char.Y }

// Center returns the map-space center.
func (z *Zombie) Center() (x, y float64) { return z.char.CenterX(), z.char.CenterY() }

// Target returns the point the zombie is walking toward.
func (z *Zombie) Target() (x, y float64) { return z.char.TargetX, z.char.TargetY }

// SetTarget overrides the current target.
func (z *Zombie) SetTarget(x, y float64) {
	z.char.TargetX, z.char.TargetY = x, y
}

// Chasing reports whether a Crazy or Cloud zombie is pursuing the player.
func (z *Zombie) Chasing() bool { return z.chasing }

// Distance returns the distance from the zombie's center to (x, y).
func (z *Zombie) Distance(x, y float64) float64 { return z.char.Distance(x, y) }

// DamageRect returns the contact rectangle.
func (z *Zombie) DamageRect() geom.Rect { return z.char.DamageRect() }

// Advance runs one frame of animation and physics.
func (z *Zombie) Advance(elapsed time.Duration, m *tilemap.Map) {
	z.char.SetElapsed(elapsed)
	z.char.UpdateMotion()
	z.anim.Update(z.char.Movement, z.char.Elapsed)

	accel := z.profile.Accel
	if z.chasing {
		accel = z.profile.ChaseAccel
	}
	z.char.Advance(m, physics.Profile{Accel: accel, MaxVelocity: z.profile.MaxVelocity})
}

// Become turns the zombie into kind k with profile p, keeping its position
// and velocity. The chase latch starts released.
func (z *Zombie) Become(k Kind, p Profile) {
	z.kind = k
	z.profile = p
	z.chasing = false
	z.anim = sprite.NewAnimator(p.WalkFrames, p.FPS)
}

// Kill starts the death animation of n frames.
func (z *Zombie) Kill(n int) {
	z.death.Start(n)
	z.char.VelocityX, z.char.VelocityY = 0, 0
	z.char.AccelX, z.char.AccelY = 0, 0
}

// Killed reports whether Kill has been called.
func (z *Zombie) Killed() bool { return z.death.Armed() }

// Tick consumes one frame of the death animation.
func (z *Zombie) Tick() { z.death.Tick() }

// IsExpired reports whether the death animation has finished.
func (z *Zombie) IsExpired() bool { return z.death.IsExpired() }

// Sprite describes the zombie for renderers.
func (z *Zombie) Sprite() sprite.Sprite {
	s := sprite.Sprite{
		Kind:     sprite.KindZombie,
		Variant:  int(z.kind),
		Frame:    z.anim.Frame(z.char.Movement),
		Movement: z.char.Movement,
		W:        geom.TileSize,
		H:        geom.TileSize,
	}
	if z.Killed() {
		s.Kind = sprite.KindKilled
		s.Frame = z.death.Remaining()
	}
	return s
}
