package devtools

import (
	"strings"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

// showcaseMargin is the empty gap between rooms on the showcase layout
const showcaseMargin = 1

// ContainsSubstring checks if s contains substr (case-insensitive)
func ContainsSubstring(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Showcase builds a hard-coded layout with one of every catalog room whose id
// contains filter (all rooms if filter is empty), laid out left to right with
// a margin between them. Every supported side is opened on socket 0 so the
// rooms can be inspected in the renderers without running the generator.
func Showcase(cat *catalog.Catalog, filter string) *generator.Result {
	res := &generator.Result{
		Success: true,
		Counts:  make(map[catalog.RoomID]int),
	}

	x := showcaseMargin
	for i := range cat.Rooms {
		def := &cat.Rooms[i]
		if filter != "" && !ContainsSubstring(string(def.ID), filter) {
			continue
		}

		fp := def.Size()
		p := generator.Placement{
			Room:      def.ID,
			Kind:      def.Kind,
			X:         x,
			Y:         showcaseMargin,
			Footprint: fp,
		}
		for _, dir := range world.AllDirections() {
			p.Openings[dir] = def.Supports(dir)
		}
		res.Placements = append(res.Placements, p)
		res.Counts[def.ID]++

		x += fp.W + showcaseMargin
		if fp.H+2*showcaseMargin > res.Height {
			res.Height = fp.H + 2*showcaseMargin
		}
	}

	res.Width = x
	if res.Height == 0 {
		res.Height = 1
	}
	res.Start = generator.Point{X: showcaseMargin, Y: showcaseMargin}
	return res
}
