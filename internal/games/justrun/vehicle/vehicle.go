// Package vehicle implements the escape vehicle the player assembles each
// level: a helicopter or a car, three part kinds each, and the fixed table
// that maps the installed subset to one of eight looks.
package vehicle

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
)

// Kind is the vehicle variant.
type Kind uint8

const (
	Helicopter Kind = iota + 1
	Car
)

func (k Kind) String() string {
	switch k {
	case Helicopter:
		return "helicopter"
	case Car:
		return "car"
	default:
		return "unknown"
	}
}

// ForLevel alternates vehicles: odd levels fly, even levels drive.
func ForLevel(level int) Kind {
	if level%2 == 1 {
		return Helicopter
	}
	return Car
}

// Configurations is the number of distinct looks.
const Configurations = 8

const (
	// Scrapped is the configuration with nothing installed.
	Scrapped = 0
	// Complete is the configuration with every part installed.
	Complete = 7
)

// Configuration lookup by installed-set bitmask (bit 0 = part 1,
// bit 1 = part 2, bit 2 = part 3).
var configTables = map[Kind][8]int{
	//          {}  {1} {2} {1,2} {3} {1,3} {2,3} all
	Helicopter: {0, 5, 4, 6, 3, 1, 2, 7},
	Car:        {0, 1, 3, 6, 5, 2, 4, 7},
}

// Footprint sizes in game units.
var footprints = map[Kind][2]float64{
	Helicopter: {5 * geom.TileSize, 3 * geom.TileSize},
	Car:        {8 * geom.TileSize, 2 * geom.TileSize},
}

// Vehicle is the escape vehicle for one level.
type Vehicle struct {
	kind      Kind
	x, y      float64
	installed uint8
	anim      sprite.Animation
}

// New places a scrapped vehicle of kind k at map-space (x, y).
func New(k Kind, x, y float64) *Vehicle {
	return &Vehicle{kind: k, x: x, y: y, anim: sprite.NewAnimation(4, 20)}
}

// Kind returns the vehicle variant.
func (v *Vehicle) Kind() Kind { return v.kind }

// Position returns the map-space top-left corner.
func (v *Vehicle) Position() (x, y float64) { return v.x, v.y }

// Footprint returns the drawn size of kind k.
func Footprint(k Kind) (w, h float64) {
	f := footprints[k]
	return f[0], f[1]
}

// Bounds returns the whole footprint rectangle.
func (v *Vehicle) Bounds() geom.Rect {
	w, h := Footprint(v.kind)
	return geom.R(v.x, v.y, w, h)
}

// DamageRect is where a held part must touch to be installed. For the
// helicopter it is the cabin, for the car the hood.
func (v *Vehicle) DamageRect() geom.Rect {
	if v.kind == Car {
		return geom.R(v.x+96, v.y+32, 64, 16)
	}
	return geom.R(v.x+64, v.y+48, 32, 16)
}

// AddPart installs part p. Parts for the other vehicle kind and parts
// already installed are ignored. It reports whether the set changed.
func (v *Vehicle) AddPart(p *Part) bool {
	if p == nil || p.vehicle != v.kind || !p.kind.Valid() {
		return false
	}
	bit := uint8(1) << (p.kind - 1)
	if v.installed&bit != 0 {
		return false
	}
	v.installed |= bit
	return true
}

// Installed reports whether part kind k is installed.
func (v *Vehicle) Installed(k PartKind) bool {
	return k.Valid() && v.installed&(1<<(k-1)) != 0
}

// InstalledCount returns how many parts are installed.
func (v *Vehicle) InstalledCount() int {
	n := 0
	for m := v.installed; m != 0; m >>= 1 {
		n += int(m & 1)
	}
	return n
}

// IsBuilt reports whether all three parts are installed.
func (v *Vehicle) IsBuilt() bool {
	return v.installed == 0b111
}

// Config returns the configuration index derived from the installed set.
func (v *Vehicle) Config() int {
	return configTables[v.kind][v.installed]
}

// Update advances the completed vehicle's looping animation.
func (v *Vehicle) Update(elapsed float64) {
	if v.IsBuilt() {
		v.anim.Update(elapsed)
	}
}

// UpdateCinematic moves the built vehicle one frame of its escape: the
// helicopter lifts off, the car drives east.
func (v *Vehicle) UpdateCinematic() {
	switch v.kind {
	case Helicopter:
		v.y--
	case Car:
		v.x += 4
	}
}

// Sprite describes the vehicle for renderers.
func (v *Vehicle) Sprite() sprite.Sprite {
	w, h := Footprint(v.kind)
	s := sprite.Sprite{
		Kind:    sprite.KindVehicle,
		Variant: v.Config(),
		W:       w,
		H:       h,
	}
	if v.IsBuilt() {
		s.Flags |= sprite.FlagBuilt
		s.Frame = v.anim.Frame()
	}
	return s
}
