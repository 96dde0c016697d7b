package tilemap

import (
	"github.com/nprice1/just-run/internal/games/justrun/rng"
)

// GenerateOptions controls procedural level generation.
type GenerateOptions struct {
	Rows     int
	Cols     int
	PageSize int
	// Blocks is how many wall clusters to attempt inside the border.
	Blocks int
	// MaxBlock is the largest cluster edge in tiles.
	MaxBlock int
}

// Generate builds a bordered map with scattered wall clusters. A cluster is
// only kept when every Air tile stays reachable from every other one, so
// actors can never be sealed into a pocket.
func Generate(opts GenerateOptions, src *rng.Source) *Map {
	m := New(opts.Rows, opts.Cols, opts.PageSize)
	m.addBorder()

	maxBlock := max(opts.MaxBlock, 1)
	for i := 0; i < opts.Blocks; i++ {
		w := src.Range(1, maxBlock+1)
		h := src.Range(1, maxBlock+1)
		// Keep a one tile corridor inside the border.
		col := src.Range(2, opts.Cols-2-w)
		row := src.Range(2, opts.Rows-2-h)
		m.tryBlock(row, col, w, h)
	}
	return m
}

func (m *Map) addBorder() {
	for col := 0; col < m.cols; col++ {
		m.SetKind(0, col, Wall)
		m.SetKind(m.rows-1, col, Wall)
	}
	for row := 0; row < m.rows; row++ {
		m.SetKind(row, 0, Wall)
		m.SetKind(row, m.cols-1, Wall)
	}
}

// tryBlock walls in a w×h cluster and reverts it if it splits the open area.
func (m *Map) tryBlock(row, col, w, h int) bool {
	var placed [][2]int
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			if m.Kind(r, c) == Air {
				m.SetKind(r, c, Wall)
				placed = append(placed, [2]int{r, c})
			}
		}
	}
	if m.Connected() {
		return true
	}
	for _, p := range placed {
		m.SetKind(p[0], p[1], Air)
	}
	return false
}

// Connected reports whether all Air tiles form a single 4-connected region.
func (m *Map) Connected() bool {
	start := -1
	open := 0
	for i, k := range m.tiles {
		if k == Air {
			open++
			if start < 0 {
				start = i
			}
		}
	}
	if open == 0 {
		return true
	}

	seen := make([]bool, len(m.tiles))
	queue := []int{start}
	seen[start] = true
	reached := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		reached++
		row, col := i/m.cols, i%m.cols
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := row+d[0], col+d[1]
			if m.Kind(nr, nc) != Air {
				continue
			}
			j := nr*m.cols + nc
			if !seen[j] {
				seen[j] = true
				queue = append(queue, j)
			}
		}
	}
	return reached == open
}
