package tilemap

import (
	"math"

	"github.com/nprice1/just-run/internal/games/justrun/geom"
)

// pageSpan is the page edge in game units.
func (m *Map) pageSpan() float64 {
	return geom.FromTile(m.pageSize)
}

func (m *Map) pageIndex(v float64, tiles int) int {
	last := (tiles - 1) / m.pageSize
	idx := geom.ToTile(v) / m.pageSize
	return min(max(idx, 0), last)
}

// SetPage selects the page that contains the map-space point (x, y),
// usually the player's center.
func (m *Map) SetPage(x, y float64) {
	m.pageCol = m.pageIndex(x, m.cols)
	m.pageRow = m.pageIndex(y, m.rows)
}

// Page returns the active page as (row, col) page indices.
func (m *Map) Page() (row, col int) {
	return m.pageRow, m.pageCol
}

// PageOrigin returns the map-space top-left corner of the active page.
func (m *Map) PageOrigin() (x, y float64) {
	span := m.pageSpan()
	return float64(m.pageCol) * span, float64(m.pageRow) * span
}

// OnScreen reports whether the map-space point lies inside the active page.
func (m *Map) OnScreen(x, y float64) bool {
	ox, oy := m.PageOrigin()
	span := m.pageSpan()
	return x >= ox && x < ox+span && y >= oy && y < oy+span
}

// Project converts a map-space point to screen space: the position inside
// its page, in game units.
func (m *Map) Project(x, y float64) (sx, sy float64) {
	span := m.pageSpan()
	return wrap(x, span), wrap(y, span)
}

// ProjectActive converts a map-space point to coordinates relative to the
// active page. Unlike Project it does not wrap, so entities straddling the
// page edge keep a continuous position.
func (m *Map) ProjectActive(x, y float64) (sx, sy float64) {
	ox, oy := m.PageOrigin()
	return x - ox, y - oy
}

func wrap(v, span float64) float64 {
	r := math.Mod(v, span)
	if r < 0 {
		r += span
	}
	return r
}
