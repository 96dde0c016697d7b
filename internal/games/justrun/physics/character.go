// Package physics advances actors through the tile map: ternary
// acceleration, velocity clamping and the per-axis near/far probe collision
// policy that every mobile entity shares.
package physics

import (
	"time"

	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
)

// Motion is whether an actor is moving.
type Motion uint8

const (
	Standing Motion = iota
	Walking
)

func (m Motion) String() string {
	if m == Walking {
		return "walking"
	}
	return "standing"
}

// Facing is the horizontal direction an actor looks.
type Facing uint8

const (
	West Facing = iota
	East
)

func (f Facing) String() string {
	if f == East {
		return "east"
	}
	return "west"
}

// Movement is the (motion, facing) pair that selects an animation.
type Movement struct {
	Motion Motion
	Facing Facing
}

// Hit boxes relative to a character's top-left corner. X_BOX is the wide,
// short box used for horizontal probes; Y_BOX the narrow, tall one used for
// vertical probes.
var (
	XBox = geom.R(6, 10, 20, 12)
	YBox = geom.R(10, 6, 12, 30)
)

// Character is the state every mobile actor is built from.
// Position is map-space; screen-space is derived by the map's projection.
type Character struct {
	X, Y      float64
	VelocityX float64 // game units per millisecond
	VelocityY float64
	AccelX    int // -1, 0 or 1
	AccelY    int
	Movement  Movement
	TargetX   float64
	TargetY   float64
	// Elapsed is the duration of the current frame in milliseconds.
	Elapsed float64
}

// NewCharacter creates a standing character facing east at (x, y), with its
// target set to its own position.
func NewCharacter(x, y float64) Character {
	return Character{
		X:        x,
		Y:        y,
		Movement: Movement{Motion: Standing, Facing: East},
		TargetX:  x,
		TargetY:  y,
	}
}

// SetElapsed stores the frame duration used by the next axis updates.
func (c *Character) SetElapsed(d time.Duration) {
	c.Elapsed = float64(d) / float64(time.Millisecond)
}

// CenterX returns the horizontal center of the one-tile sprite.
func (c *Character) CenterX() float64 { return c.X + geom.HalfTile }

// CenterY returns the vertical center of the one-tile sprite.
func (c *Character) CenterY() float64 { return c.Y + geom.HalfTile }

// DamageRect spans both hit boxes: X_BOX horizontally, Y_BOX vertically.
func (c *Character) DamageRect() geom.Rect {
	return geom.R(c.X+XBox.Left(), c.Y+YBox.Top(), XBox.W, YBox.H)
}

// Distance returns the distance from the character's center to (x, y).
func (c *Character) Distance(x, y float64) float64 {
	return geom.Distance(c.CenterX(), c.CenterY(), x, y)
}

// UpdateMotion derives Movement from the current acceleration intent.
func (c *Character) UpdateMotion() {
	switch {
	case c.AccelX < 0:
		c.Movement = Movement{Motion: Walking, Facing: West}
	case c.AccelX > 0:
		c.Movement = Movement{Motion: Walking, Facing: East}
	case c.AccelY != 0:
		c.Movement.Motion = Walking
	default:
		c.Movement.Motion = Standing
	}
}

// Profile is the per-class physics tuning.
type Profile struct {
	Accel       float64 // game units per ms²
	MaxVelocity float64 // game units per ms
	// Sticky jumps straight to MaxVelocity while accelerating.
	Sticky bool
}

// Advance runs both axis updates with the given profile.
func (c *Character) Advance(m *tilemap.Map, p Profile) {
	c.UpdateX(m, p.Accel, p.MaxVelocity, p.Sticky)
	c.UpdateY(m, p.Accel, p.MaxVelocity, p.Sticky)
}
