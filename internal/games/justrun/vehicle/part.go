package vehicle

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
)

// PartKind is the slot a part fills, 1..3. Its name depends on the vehicle.
type PartKind uint8

const (
	Part1 PartKind = iota + 1
	Part2
	Part3
)

// Named part kinds.
const (
	Prop       = Part1
	Windshield = Part2
	Bar        = Part3

	Tire   = Part1
	Door   = Part2
	Engine = Part3
)

// PartKinds lists the three slots.
var PartKinds = []PartKind{Part1, Part2, Part3}

// Valid reports whether k is one of the three slots.
func (k PartKind) Valid() bool {
	return k >= Part1 && k <= Part3
}

var partNames = map[Kind][3]string{
	Helicopter: {"prop", "windshield", "bar"},
	Car:        {"tire", "door", "engine"},
}

// partBoxes are offsets {x, y, w, h} of each part's pickup rectangle.
var partBoxes = map[Kind][3]geom.Rect{
	Helicopter: {
		geom.R(48, 16, 64, 16), // prop
		geom.R(16, 16, 16, 16), // windshield
		geom.R(32, 16, 32, 16), // bar
	},
	Car: {
		geom.R(32, 16, 32, 16), // tire
		geom.R(16, 16, 16, 16), // door
		geom.R(32, 32, 32, 16), // engine
	},
}

// partSizes are drawn sizes in tiles.
var partSizes = map[Kind][3][2]int{
	Helicopter: {{4, 1}, {1, 1}, {2, 1}},
	Car:        {{2, 1}, {1, 1}, {2, 2}},
}

// Part is a free-standing vehicle part.
type Part struct {
	vehicle Kind
	kind    PartKind
	x, y    float64
}

// NewPart places part k of vehicle v at map-space (x, y).
func NewPart(v Kind, k PartKind, x, y float64) *Part {
	return &Part{vehicle: v, kind: k, x: x, y: y}
}

// Vehicle returns the vehicle kind the part belongs to.
func (p *Part) Vehicle() Kind { return p.vehicle }

// Kind returns the part slot.
func (p *Part) Kind() PartKind { return p.kind }

// Name returns the part's display name.
func (p *Part) Name() string {
	if !p.kind.Valid() {
		return "unknown"
	}
	return partNames[p.vehicle][p.kind-1]
}

// Position returns the map-space top-left corner.
func (p *Part) Position() (x, y float64) { return p.x, p.y }

// MoveTo relocates the part, used while the player carries it.
func (p *Part) MoveTo(x, y float64) { p.x, p.y = x, y }

// PartFootprint returns the drawn size of a part.
func PartFootprint(v Kind, k PartKind) (w, h float64) {
	if !k.Valid() {
		return geom.TileSize, geom.TileSize
	}
	s := partSizes[v][k-1]
	return geom.FromTile(s[0]), geom.FromTile(s[1])
}

// Bounds returns the whole footprint rectangle.
func (p *Part) Bounds() geom.Rect {
	w, h := PartFootprint(p.vehicle, p.kind)
	return geom.R(p.x, p.y, w, h)
}

// DamageRect is the pickup rectangle.
func (p *Part) DamageRect() geom.Rect {
	if !p.kind.Valid() {
		return geom.R(p.x, p.y, geom.TileSize, geom.TileSize)
	}
	return partBoxes[p.vehicle][p.kind-1].Offset(p.x, p.y)
}

// Sprite describes the part for renderers.
func (p *Part) Sprite() sprite.Sprite {
	w, h := PartFootprint(p.vehicle, p.kind)
	return sprite.Sprite{
		Kind:    sprite.KindPart,
		Variant: int(p.vehicle)*10 + int(p.kind),
		W:       w,
		H:       h,
	}
}
