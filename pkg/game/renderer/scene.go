// Package renderer builds a backend-neutral view of a generated layout.
// The tui and ebiten packages draw the same Scene.
package renderer

import (
	"sort"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

// Rect is a rectangle of cells
type Rect struct {
	X, Y, W, H int
}

// Room is one placed room as drawn
type Room struct {
	generator.Placement
	Rect  Rect
	Glyph rune
}

// Door is an open socket on a room's anchor side
type Door struct {
	X, Y   int
	Side   world.Direction
	Socket int
}

// LegendEntry maps a glyph to a room id
type LegendEntry struct {
	Glyph rune
	Room  catalog.RoomID
	Kind  catalog.Kind
	Count int
}

// Scene is the drawable form of a Result
type Scene struct {
	Width  int
	Height int
	Start  generator.Point
	Rooms  []Room
	Doors  []Door
	Legend []LegendEntry

	owner      []int
	unassigned []bool
	corridors  [][world.DirectionCount]bool
}

// NewScene lays out a result for drawing. A failed result yields an empty scene
// of the right size.
func NewScene(res *generator.Result) *Scene {
	s := &Scene{
		Width:      res.Width,
		Height:     res.Height,
		Start:      res.Start,
		owner:      make([]int, res.Width*res.Height),
		unassigned: make([]bool, res.Width*res.Height),
		corridors:  make([][world.DirectionCount]bool, res.Width*res.Height),
	}
	for i := range s.owner {
		s.owner[i] = -1
	}

	glyphs := assignGlyphs(res.Placements)
	counts := make(map[catalog.RoomID]int)
	kinds := make(map[catalog.RoomID]catalog.Kind)

	for _, p := range res.Placements {
		fp := p.Footprint.Normalize()
		idx := len(s.Rooms)
		s.Rooms = append(s.Rooms, Room{
			Placement: p,
			Rect:      Rect{X: p.X, Y: p.Y, W: fp.W, H: fp.H},
			Glyph:     glyphs[p.Room],
		})
		counts[p.Room]++
		kinds[p.Room] = p.Kind

		for dy := 0; dy < fp.H; dy++ {
			for dx := 0; dx < fp.W; dx++ {
				if s.inBounds(p.X+dx, p.Y+dy) {
					s.owner[s.index(p.X+dx, p.Y+dy)] = idx
				}
			}
		}
		for _, dir := range world.AllDirections() {
			if p.Openings[dir] {
				s.Doors = append(s.Doors, Door{X: p.X, Y: p.Y, Side: dir, Socket: p.Sockets[dir]})
			}
		}
	}

	for _, c := range res.Unassigned {
		if s.inBounds(c.X, c.Y) {
			s.unassigned[s.index(c.X, c.Y)] = true
			s.corridors[s.index(c.X, c.Y)] = c.Openings
		}
	}

	for id, glyph := range glyphs {
		s.Legend = append(s.Legend, LegendEntry{Glyph: glyph, Room: id, Kind: kinds[id], Count: counts[id]})
	}
	sort.Slice(s.Legend, func(i, j int) bool { return s.Legend[i].Glyph < s.Legend[j].Glyph })
	return s
}

// assignGlyphs gives each distinct room id a letter, in id order
func assignGlyphs(placements []generator.Placement) map[catalog.RoomID]rune {
	var ids []catalog.RoomID
	seen := make(map[catalog.RoomID]bool)
	for _, p := range placements {
		if !seen[p.Room] {
			seen[p.Room] = true
			ids = append(ids, p.Room)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	glyphs := make(map[catalog.RoomID]rune, len(ids))
	for i, id := range ids {
		switch {
		case i < 26:
			glyphs[id] = rune('A' + i)
		case i < 52:
			glyphs[id] = rune('a' + i - 26)
		default:
			glyphs[id] = '#'
		}
	}
	return glyphs
}

func (s *Scene) inBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

func (s *Scene) index(x, y int) int {
	return x + y*s.Width
}

// RoomAt returns the room covering the cell, if any
func (s *Scene) RoomAt(x, y int) (*Room, bool) {
	if !s.inBounds(x, y) {
		return nil, false
	}
	idx := s.owner[s.index(x, y)]
	if idx < 0 {
		return nil, false
	}
	return &s.Rooms[idx], true
}

// IsAnchor returns true if the cell is the anchor of its room
func (s *Scene) IsAnchor(x, y int) bool {
	r, ok := s.RoomAt(x, y)
	return ok && r.X == x && r.Y == y
}

// IsUnassigned returns true for carved cells that received no room
func (s *Scene) IsUnassigned(x, y int) bool {
	return s.inBounds(x, y) && s.unassigned[s.index(x, y)]
}

// IsEmpty returns true for cells that were never carved or covered
func (s *Scene) IsEmpty(x, y int) bool {
	_, covered := s.RoomAt(x, y)
	return !covered && !s.IsUnassigned(x, y)
}

// IsStart returns true for the carve start cell
func (s *Scene) IsStart(x, y int) bool {
	return s.Start.X == x && s.Start.Y == y
}

// Passable returns true if nothing separates the cell from its neighbour in
// dir: either both cells belong to the same room or one of them has an
// opening towards the other. Grid edges are never passable.
func (s *Scene) Passable(x, y int, dir world.Direction) bool {
	dx, dy := dir.Delta()
	nx, ny := x+dx, y+dy
	if !s.inBounds(x, y) || !s.inBounds(nx, ny) {
		return false
	}

	a, aok := s.RoomAt(x, y)
	b, bok := s.RoomAt(nx, ny)
	if aok && bok && a == b {
		return true
	}
	if aok && a.X == x && a.Y == y && a.Openings[dir] {
		return true
	}
	if bok && b.X == nx && b.Y == ny && b.Openings[dir.Opposite()] {
		return true
	}
	if s.IsUnassigned(x, y) && s.corridors[s.index(x, y)][dir] {
		return true
	}
	return s.IsUnassigned(nx, ny) && s.corridors[s.index(nx, ny)][dir.Opposite()]
}
