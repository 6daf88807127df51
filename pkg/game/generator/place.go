package generator

import (
	"gallerymaze/pkg/engine/random"
	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
)

// placer assigns rooms to carved cells for a single attempt.
// counts is indexed like cat.Rooms.
type placer struct {
	grid   *world.Grid
	cat    *catalog.Catalog
	src    random.Source
	counts []int
}

func newPlacer(grid *world.Grid, cat *catalog.Catalog, src random.Source) *placer {
	return &placer{
		grid:   grid,
		cat:    cat,
		src:    src,
		counts: make([]int, cat.Len()),
	}
}

// candidates returns the shuffled indices of carved, unoccupied cells
func (p *placer) candidates() []int {
	var anchors []int
	p.grid.ForEachCell(func(i, x, y int, cell *world.Cell) {
		if cell.Visited && !cell.Occupied {
			anchors = append(anchors, i)
		}
	})
	random.Shuffle(p.src, anchors)
	return anchors
}

// fits reports whether def can be anchored at the given cell: every open
// side of the anchor has a socket, the footprint stays on the grid, covers
// no occupied cell, and covers no carved passage other than the anchor.
func (p *placer) fits(def *catalog.RoomDefinition, anchor int) bool {
	cell := p.grid.Cell(anchor)
	if cell == nil || cell.Occupied {
		return false
	}
	for _, dir := range world.AllDirections() {
		if cell.Openings[dir] && !def.Supports(dir) {
			return false
		}
	}

	fp := def.Size()
	x, y := p.grid.Coord(anchor)
	if !p.grid.InBounds(x+fp.W-1, y+fp.H-1) {
		return false
	}

	for dy := 0; dy < fp.H; dy++ {
		for dx := 0; dx < fp.W; dx++ {
			c := p.grid.CellAt(x+dx, y+dy)
			if c.Occupied {
				return false
			}
			if (dx != 0 || dy != 0) && c.HasOpenings() {
				return false
			}
		}
	}
	return true
}

// place anchors the room at index defIdx on the given cell and reserves its footprint
func (p *placer) place(defIdx, anchor int) {
	def := &p.cat.Rooms[defIdx]
	fp := def.Size()

	cell := p.grid.Cell(anchor)
	cell.RoomID = string(def.ID)
	cell.Footprint = fp

	x, y := p.grid.Coord(anchor)
	for dy := 0; dy < fp.H; dy++ {
		for dx := 0; dx < fp.W; dx++ {
			p.grid.CellAt(x+dx, y+dy).Occupied = true
		}
	}
	p.counts[defIdx]++
}

// placeRequired greedily places every required room, in catalog order, at
// the first fitting candidate. Returns false as soon as one requirement
// cannot be met.
func (p *placer) placeRequired() bool {
	anchors := p.candidates()

	for i := range p.cat.Rooms {
		def := &p.cat.Rooms[i]
		if !def.IsRequired() {
			continue
		}

		need := def.RequiredCount - p.counts[i]
		for _, anchor := range anchors {
			if need == 0 {
				break
			}
			if !p.fits(def, anchor) {
				continue
			}
			p.place(i, anchor)
			need--
		}

		if need > 0 {
			return false
		}
	}
	return true
}

// placeFillers fills the remaining candidates with weighted random fillers.
// Rooms with an exact requirement never act as fillers. Cells where no
// filler fits stay unassigned.
func (p *placer) placeFillers() {
	anchors := p.candidates()
	pool := make([]int, 0, p.cat.Len())

	for _, anchor := range anchors {
		if p.grid.Cell(anchor).Occupied {
			continue
		}

		pool = pool[:0]
		for i := range p.cat.Rooms {
			def := &p.cat.Rooms[i]
			if !def.AllowAsFiller || def.IsRequired() {
				continue
			}
			if p.fits(def, anchor) {
				pool = append(pool, i)
			}
		}
		if len(pool) == 0 {
			continue
		}

		p.place(p.pickWeighted(pool), anchor)
	}
}

// pickWeighted draws one catalog index from pool in proportion to its weight
func (p *placer) pickWeighted(pool []int) int {
	sum := 0.0
	for _, i := range pool {
		sum += p.cat.Rooms[i].EffectiveWeight()
	}

	v := p.src.Float64() * sum
	pick := pool[len(pool)-1]
	for _, i := range pool {
		v -= p.cat.Rooms[i].EffectiveWeight()
		if v <= 0 {
			pick = i
			break
		}
	}
	return pick
}

// satisfied reports whether every required room was placed exactly RequiredCount times
func (p *placer) satisfied() bool {
	for i := range p.cat.Rooms {
		def := &p.cat.Rooms[i]
		if def.IsRequired() && p.counts[i] != def.RequiredCount {
			return false
		}
	}
	return true
}
