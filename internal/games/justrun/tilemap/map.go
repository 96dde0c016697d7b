// Package tilemap owns the level grid: Air and Wall tiles, the visible page
// window that follows the player, and the rectangle queries the physics
// resolver and spawner run against it.
package tilemap

import (
	"fmt"

	"github.com/nprice1/just-run/internal/games/justrun/geom"
)

// Kind is the type of a single tile.
type Kind uint8

const (
	Air Kind = iota
	Wall
)

func (k Kind) String() string {
	if k == Wall {
		return "wall"
	}
	return "air"
}

// CollisionTile is one tile touched by a rectangle query.
type CollisionTile struct {
	Row  int
	Col  int
	Kind Kind
}

// Map is a row-major tile grid plus the active page.
// Tiles never change after construction.
type Map struct {
	rows, cols int
	tiles      []Kind
	pageSize   int
	pageRow    int
	pageCol    int
}

// New creates a map of Air tiles. pageSize is the page edge in tiles and
// is clamped to the grid size.
func New(rows, cols, pageSize int) *Map {
	if pageSize <= 0 || pageSize > max(rows, cols) {
		pageSize = max(rows, cols)
	}
	return &Map{
		rows:     rows,
		cols:     cols,
		tiles:    make([]Kind, rows*cols),
		pageSize: pageSize,
	}
}

// Rows returns the grid height in tiles.
func (m *Map) Rows() int { return m.rows }

// Cols returns the grid width in tiles.
func (m *Map) Cols() int { return m.cols }

// PageSize returns the page edge length in tiles.
func (m *Map) PageSize() int { return m.pageSize }

// Width returns the map width in game units.
func (m *Map) Width() float64 { return geom.FromTile(m.cols) }

// Height returns the map height in game units.
func (m *Map) Height() float64 { return geom.FromTile(m.rows) }

// Kind returns the tile at (row, col). Out-of-range positions read as Wall.
func (m *Map) Kind(row, col int) Kind {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return Wall
	}
	return m.tiles[row*m.cols+col]
}

// SetKind changes a tile. Only loaders and generators call this, before the
// map is handed to a world.
func (m *Map) SetKind(row, col int, k Kind) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return
	}
	m.tiles[row*m.cols+col] = k
}

// Update is the per-frame hook for the map. Tiles are static.
func (m *Map) Update() {}

// bounds converts a rectangle to inclusive tile bounds.
// Panics when the rectangle reaches outside the grid: that is a placement bug.
func (m *Map) bounds(r geom.Rect) (top, left, bottom, right int) {
	top, left = geom.ToTile(r.Top()), geom.ToTile(r.Left())
	bottom, right = geom.ToTile(r.Bottom()), geom.ToTile(r.Right())
	if top < 0 || left < 0 || bottom >= m.rows || right >= m.cols {
		panic(fmt.Sprintf("tilemap: rect %+v outside %dx%d grid (tiles %d..%d, %d..%d)",
			r, m.cols, m.rows, left, right, top, bottom))
	}
	return top, left, bottom, right
}

// CollidingTiles returns every tile in the inclusive tile range covered by r,
// row-major. The rectangle must lie within the grid.
func (m *Map) CollidingTiles(r geom.Rect) []CollisionTile {
	top, left, bottom, right := m.bounds(r)
	tiles := make([]CollisionTile, 0, (bottom-top+1)*(right-left+1))
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			tiles = append(tiles, CollisionTile{Row: row, Col: col, Kind: m.tiles[row*m.cols+col]})
		}
	}
	return tiles
}

// FirstWall returns the first Wall tile, in CollidingTiles order, covered by r.
func (m *Map) FirstWall(r geom.Rect) (CollisionTile, bool) {
	top, left, bottom, right := m.bounds(r)
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			if m.tiles[row*m.cols+col] == Wall {
				return CollisionTile{Row: row, Col: col, Kind: Wall}, true
			}
		}
	}
	return CollisionTile{}, false
}

// Contains reports whether a query for r stays inside the grid.
func (m *Map) Contains(r geom.Rect) bool {
	if r.Left() < 0 || r.Top() < 0 {
		return false
	}
	return geom.ToTile(r.Right()) < m.cols && geom.ToTile(r.Bottom()) < m.rows
}

// Blocked reports whether r is unusable for placement: outside the grid or
// touching any Wall tile.
func (m *Map) Blocked(r geom.Rect) bool {
	if !m.Contains(r) {
		return true
	}
	_, hit := m.FirstWall(r)
	return hit
}

// FindOpenArea scans tile corners row-major and returns the first position
// whose w×h footprint is not Blocked.
func (m *Map) FindOpenArea(w, h float64) (x, y float64, ok bool) {
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			x, y = geom.FromTile(col), geom.FromTile(row)
			if !m.Blocked(geom.R(x, y, w, h)) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
