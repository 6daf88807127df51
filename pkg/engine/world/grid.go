package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Grid is a fixed-size row-major cell buffer.
// Cells are addressed by index; callers keep indices, never pointers,
// across calls to Reset.
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid creates a new grid with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build (re)allocates the grid with the given dimensions
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.height = height
	g.cells = make([]Cell, width*height)
	g.Reset()
}

// Reset returns every cell to the empty state without reallocating
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].reset()
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Len returns the total number of cells
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds checks if an x/y position is within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index converts a coordinate to a buffer index. The coordinate must be in bounds.
func (g *Grid) Index(x, y int) int {
	return x + y*g.width
}

// Coord converts a buffer index to its x/y coordinate
func (g *Grid) Coord(i int) (x, y int) {
	return i % g.width, i / g.width
}

// Cell returns the cell at the given index, or nil if out of range
func (g *Grid) Cell(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// CellAt returns the cell at the given position, or nil if out of bounds
func (g *Grid) CellAt(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.Index(x, y)]
}

// Neighbor returns the index of the adjacent cell in the given direction.
// The second result is false at the grid edge.
func (g *Grid) Neighbor(i int, dir Direction) (int, bool) {
	if !dir.IsValid() || i < 0 || i >= len(g.cells) {
		return -1, false
	}
	x, y := g.Coord(i)
	dx, dy := dir.Delta()
	nx, ny := x+dx, y+dy
	if !g.InBounds(nx, ny) {
		return -1, false
	}
	return g.Index(nx, ny), true
}

// Open carves a passage between cell i and its neighbor in dir, setting the
// mirrored flag on both sides. Returns the neighbor index, or false at the edge.
func (g *Grid) Open(i int, dir Direction) (int, bool) {
	n, ok := g.Neighbor(i, dir)
	if !ok {
		return -1, false
	}
	g.cells[i].Openings[dir] = true
	g.cells[n].Openings[dir.Opposite()] = true
	return n, true
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(i, x, y int, cell *Cell)) {
	for i := range g.cells {
		x, y := g.Coord(i)
		fn(i, x, y, &g.cells[i])
	}
}

// VisitedCount returns the number of carved cells
func (g *Grid) VisitedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Visited {
			n++
		}
	}
	return n
}

// Reachable returns the set of cell indices reachable from start by
// following carved openings only.
func (g *Grid) Reachable(start int) mapset.Set[int] {
	seen := mapset.New[int]()
	if g.Cell(start) == nil || !g.cells[start].Visited {
		return seen
	}

	queue := []int{start}
	seen.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range AllDirections() {
			if !g.cells[current].Openings[dir] {
				continue
			}
			n, ok := g.Neighbor(current, dir)
			if !ok || seen.Has(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}

// OpeningsSymmetric reports whether every opening is mirrored by its
// neighbor and no opening points off the grid.
func (g *Grid) OpeningsSymmetric() bool {
	for i := range g.cells {
		for _, dir := range AllDirections() {
			n, ok := g.Neighbor(i, dir)
			if !ok {
				if g.cells[i].Openings[dir] {
					return false
				}
				continue
			}
			if g.cells[i].Openings[dir] != g.cells[n].Openings[dir.Opposite()] {
				return false
			}
		}
	}
	return true
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}

	if len(g.cells) != g.width*g.height {
		return "Grid buffer does not match its dimensions"
	}

	if !g.OpeningsSymmetric() {
		return "Grid has asymmetric openings"
	}

	for i := range g.cells {
		c := &g.cells[i]
		if c.IsAnchor() && !c.Occupied {
			return "Grid has an anchor cell that is not occupied"
		}
	}

	return ""
}
