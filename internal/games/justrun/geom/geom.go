// Package geom holds the continuous game-space geometry shared by the map,
// the physics resolver and every entity: game units, tile conversion and
// axis-aligned rectangles.
package geom

import "math"

// TileSize is the edge length of one map tile in game units.
const TileSize = 32.0

// HalfTile is half a tile, the offset from an actor's corner to its center.
const HalfTile = TileSize / 2

// ToTile converts a game-space coordinate to a tile index (floor).
func ToTile(v float64) int {
	return int(math.Floor(v / TileSize))
}

// FromTile converts a tile index to the game-space coordinate of its top/left edge.
func FromTile(t int) float64 {
	return float64(t) * TileSize
}

// Rect is an axis-aligned bounding box in game units.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is shorthand for building a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// CollidesWith reports whether the two rectangles overlap with positive area.
// Rectangles that only share an edge do not collide.
func (r Rect) CollidesWith(o Rect) bool {
	return r.Left() < o.Right() &&
		r.Right() > o.Left() &&
		r.Top() < o.Bottom() &&
		r.Bottom() > o.Top()
}

// CollidesWithPlayer is the overlap test used for player contacts.
// It is the same test as CollidesWith; call sites that involve the player
// use it so player-specific tuning stays in one place.
func (r Rect) CollidesWithPlayer(player Rect) bool {
	return r.CollidesWith(player)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
