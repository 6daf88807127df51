// Package world provides generic 2D grid primitives for cell-based layouts.
// These are engine-level constructs with no placement rules of their own.
package world

// Size is a rectangular extent measured in cells.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// UnitSize is the default single-cell footprint
var UnitSize = Size{W: 1, H: 1}

// Normalize returns the size with every non-positive axis replaced by 1
func (s Size) Normalize() Size {
	if s.W < 1 {
		s.W = 1
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}

// Area returns the number of cells covered by the size
func (s Size) Area() int {
	n := s.Normalize()
	return n.W * n.H
}

// Cell represents a single unit of the grid.
type Cell struct {
	// Carving state
	Visited  bool
	Openings [DirectionCount]bool

	// Occupied is set on every cell inside a placed room's footprint,
	// including the anchor itself.
	Occupied bool

	// Anchor-only fields. RoomID is empty on non-anchor cells.
	RoomID    string
	Footprint Size
	Sockets   [DirectionCount]int
}

// IsAnchor returns true if a room has been assigned to this cell
func (c *Cell) IsAnchor() bool {
	return c != nil && c.RoomID != ""
}

// HasOpenings returns true if any side of the cell has a carved passage
func (c *Cell) HasOpenings() bool {
	return c.Openings[North] || c.Openings[South] || c.Openings[East] || c.Openings[West]
}

// OpenCount returns the number of carved passages leaving this cell
func (c *Cell) OpenCount() int {
	n := 0
	for _, open := range c.Openings {
		if open {
			n++
		}
	}
	return n
}

// reset returns the cell to its empty state
func (c *Cell) reset() {
	*c = Cell{Footprint: UnitSize}
}
