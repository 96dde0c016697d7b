package pickups

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
)

// TrapKind is the trap variant. There is only the bear trap.
type TrapKind uint8

const BearTrap TrapKind = 1

func (k TrapKind) String() string {
	if k == BearTrap {
		return "bear trap"
	}
	return "unknown"
}

// Trap is a static hazard. Once tripped it plays a short closing animation,
// then stays sprung until its countdown runs out.
type Trap struct {
	kind    TrapKind
	x, y    float64
	state   State
	closing int
	sprung  physics.Countdown
}

// NewTrap places an armed trap at map-space (x, y).
func NewTrap(k TrapKind, x, y float64) *Trap {
	return &Trap{kind: k, x: x, y: y}
}

// Kind returns the variant tag.
func (t *Trap) Kind() TrapKind { return t.kind }

// Position returns the map-space top-left corner.
func (t *Trap) Position() (x, y float64) { return t.x, t.y }

// State returns the lifecycle stage.
func (t *Trap) State() State { return t.state }

// DamageRect is the contact rectangle, the same shape as a character's.
func (t *Trap) DamageRect() geom.Rect {
	return geom.R(t.x+physics.XBox.Left(), t.y+physics.YBox.Top(), physics.XBox.W, physics.YBox.H)
}

// Trip springs the trap. closing frames of animation play before it shows
// as sprung; the whole lifetime after tripping is closing + hold frames.
// Tripping an already tripped trap does nothing.
func (t *Trap) Trip(closing, hold int) {
	if t.state != Idle {
		return
	}
	t.state = Triggered
	t.closing = max(closing, 0)
	t.sprung.Start(t.closing + hold)
}

// Tick consumes one frame after the trap was tripped.
func (t *Trap) Tick() {
	if t.state != Triggered {
		return
	}
	t.sprung.Tick()
	if t.closing > 0 {
		t.closing--
	}
	if t.sprung.IsExpired() {
		t.state = Finished
	}
}

// Closing reports whether the closing animation is still playing.
func (t *Trap) Closing() bool { return t.state == Triggered && t.closing > 0 }

// IsExpired reports whether the trap can be dropped from the world.
func (t *Trap) IsExpired() bool { return t.state == Finished }

// Sprite describes the trap for renderers.
func (t *Trap) Sprite() sprite.Sprite {
	s := sprite.Sprite{
		Kind:    sprite.KindTrap,
		Variant: int(t.kind),
		W:       geom.TileSize,
		H:       geom.TileSize,
	}
	switch {
	case t.Closing():
		s.Frame = t.closing % 2
	case t.state != Idle:
		s.Flags |= sprite.FlagSprung
	}
	return s
}
