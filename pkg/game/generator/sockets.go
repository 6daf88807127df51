package generator

import (
	"gallerymaze/pkg/engine/random"
	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
)

// resolveSockets picks one socket index per shared opening between adjacent
// anchors and writes it to both facing sides. Each pair is visited once,
// from its northern or western member. A side with no sockets leaves the
// pair untouched.
func resolveSockets(grid *world.Grid, defs map[catalog.RoomID]*catalog.RoomDefinition, src random.Source) {
	grid.ForEachCell(func(i, x, y int, a *world.Cell) {
		defA := defs[catalog.RoomID(a.RoomID)]
		if !a.IsAnchor() || defA == nil {
			return
		}

		for _, side := range []world.Direction{world.South, world.East} {
			if !a.Openings[side] {
				continue
			}
			n, ok := grid.Neighbor(i, side)
			if !ok {
				continue
			}
			b := grid.Cell(n)
			defB := defs[catalog.RoomID(b.RoomID)]
			if !b.IsAnchor() || defB == nil || !b.Openings[side.Opposite()] {
				continue
			}

			countA := defA.SocketCount(side)
			countB := defB.SocketCount(side.Opposite())
			if countA <= 0 || countB <= 0 {
				continue
			}

			idx := src.Intn(min(countA, countB))
			a.Sockets[side] = idx
			b.Sockets[side.Opposite()] = idx
		}
	})
}
