// Package pickups holds the timed-effect entities lying in the world:
// powerups the player collects and traps that snap shut on whoever steps
// in them. Both move Idle -> Triggered -> Finished on explicit countdowns.
package pickups

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
)

// Kind is the powerup variant. Values match the wire ids 1..6.
type Kind uint8

const (
	CricketBat Kind = iota + 1
	KillZombie
	WipeOut
	Freeze
	Teleport
	Nuke
)

// Kinds lists every powerup in id order.
var Kinds = []Kind{CricketBat, KillZombie, WipeOut, Freeze, Teleport, Nuke}

var kindNames = map[Kind]string{
	CricketBat: "cricket bat",
	KillZombie: "kill zombie",
	WipeOut:    "wipe out",
	Freeze:     "freeze",
	Teleport:   "teleport",
	Nuke:       "nuke",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is a known powerup.
func (k Kind) Valid() bool {
	return k >= CricketBat && k <= Nuke
}

// State is the lifecycle stage of a powerup or trap.
type State uint8

const (
	Idle State = iota
	Triggered
	Finished
)

func (s State) String() string {
	switch s {
	case Triggered:
		return "triggered"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// DebuffCadence is how many updates pass between debuff flips.
const DebuffCadence = 20

// Powerup is a collectible lying in the world.
type Powerup struct {
	kind    Kind
	x, y    float64
	debuff  bool
	age     int
	cadence int
	state   State
	effect  physics.Countdown
	anim    sprite.Animation
}

// NewPowerup places an idle powerup at map-space (x, y).
func NewPowerup(k Kind, x, y float64) *Powerup {
	return &Powerup{
		kind:    k,
		x:       x,
		y:       y,
		cadence: DebuffCadence,
		anim:    sprite.NewAnimation(2, 20),
	}
}

// SetCadence changes the debuff flip period. Values below 1 disable flipping.
func (p *Powerup) SetCadence(n int) { p.cadence = n }

// Kind returns the variant tag.
func (p *Powerup) Kind() Kind { return p.kind }

// Position returns the map-space top-left corner.
func (p *Powerup) Position() (x, y float64) { return p.x, p.y }

// IsDebuff reports whether the powerup currently carries its bad variant.
func (p *Powerup) IsDebuff() bool { return p.debuff }

// Age returns the number of updates spent uncollected.
func (p *Powerup) Age() int { return p.age }

// State returns the lifecycle stage.
func (p *Powerup) State() State { return p.state }

// DamageRect is the pickup rectangle: X_BOX horizontally, Y_BOX vertically.
func (p *Powerup) DamageRect() geom.Rect {
	return geom.R(p.x+physics.XBox.Left(), p.y+physics.YBox.Top(), physics.XBox.W, physics.YBox.H)
}

// Update ages an idle powerup by one update and flips debuff whenever the
// age is a multiple of the cadence. It reports whether a flip happened.
func (p *Powerup) Update(elapsed float64) bool {
	p.anim.Update(elapsed)
	if p.state != Idle {
		return false
	}
	p.age++
	if p.cadence > 0 && p.age%p.cadence == 0 {
		p.debuff = !p.debuff
		return true
	}
	return false
}

// Trigger collects the powerup. A positive ticks keeps it in the world as an
// effect animation anchored at (x, y) for that many frames; otherwise it is
// finished immediately.
func (p *Powerup) Trigger(ticks int, x, y float64) {
	if ticks <= 0 {
		p.state = Finished
		return
	}
	p.state = Triggered
	p.x, p.y = x, y
	p.effect.Start(ticks)
	p.anim.Reset()
}

// Tick consumes one frame of the effect animation.
func (p *Powerup) Tick() {
	if p.state != Triggered {
		return
	}
	p.effect.Tick()
	if p.effect.IsExpired() {
		p.state = Finished
	}
}

// IsExpired reports whether the powerup can be dropped from the world.
func (p *Powerup) IsExpired() bool { return p.state == Finished }

// Sprite describes the powerup for renderers.
func (p *Powerup) Sprite() sprite.Sprite {
	s := sprite.Sprite{
		Kind:    sprite.KindPowerup,
		Variant: int(p.kind),
		Frame:   p.anim.Frame(),
		W:       geom.TileSize,
		H:       geom.TileSize,
	}
	if p.debuff {
		s.Flags |= sprite.FlagDebuff
	}
	if p.state == Triggered {
		s.Flags |= sprite.FlagSprung
	}
	return s
}
