package generator

import (
	"math"

	"gallerymaze/pkg/engine/random"
	"gallerymaze/pkg/engine/world"
)

// guardFactor bounds carving at guardFactor × total cells iterations
const guardFactor = 10

// carveTarget returns the number of cells a fill fraction asks for,
// clamped to [1, total]. Halves round to even.
func carveTarget(total int, fill float64) int {
	target := int(math.RoundToEven(float64(total) * fill))
	if target < 1 {
		target = 1
	}
	if target > total {
		target = total
	}
	return target
}

// Carve runs a randomized depth-first traversal from start, marking cells
// visited and opening mirrored passages between each cell and the neighbor
// it steps into. It stops once the target count derived from fill is
// reached, when the reachable region is exhausted, or when the iteration
// guard trips. Returns the number of cells carved.
func Carve(grid *world.Grid, start int, fill float64, src random.Source) int {
	total := grid.Len()
	if grid.Cell(start) == nil {
		return 0
	}
	target := carveTarget(total, fill)

	current := start
	path := make([]int, 0, total)
	candidates := make([]world.Direction, 0, world.DirectionCount)
	carved := 0

	for guard := 0; guard < guardFactor*total; guard++ {
		cell := grid.Cell(current)
		if !cell.Visited {
			cell.Visited = true
			carved++
			if carved >= target {
				break
			}
		}

		candidates = candidates[:0]
		for _, dir := range world.AllDirections() {
			n, ok := grid.Neighbor(current, dir)
			if ok && !grid.Cell(n).Visited {
				candidates = append(candidates, dir)
			}
		}

		if len(candidates) == 0 {
			if len(path) == 0 {
				break
			}
			current = path[len(path)-1]
			path = path[:len(path)-1]
			continue
		}

		path = append(path, current)
		dir := random.Pick(src, candidates)
		current, _ = grid.Open(current, dir)
	}

	return carved
}
