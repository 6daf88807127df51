// Package analysis inspects generated layouts as a graph of rooms and
// corridor cells joined by openings.
package analysis

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/renderer"
)

// Graph has one node per placement followed by one node per corridor cell.
// Node i < Rooms is res.Placements[i].
type Graph struct {
	Rooms     int
	Corridors []generator.Point
	Start     int // Node holding the start cell, or -1

	edges []mapset.Set[int]
}

// Report summarises how a layout hangs together
type Report struct {
	Connected bool
	// Distance is the number of openings crossed from the start node to
	// each placement, or -1 if the placement cannot be reached.
	Distance    []int
	Unreachable []generator.Placement
	// Chokepoints are placements whose removal splits the layout
	Chokepoints []generator.Placement
	DeadEnds    []generator.Point
}

// NewGraph builds the node graph for a result
func NewGraph(res *generator.Result) *Graph {
	s := renderer.NewScene(res)
	g := &Graph{Rooms: len(res.Placements), Start: -1}

	corridor := make(map[generator.Point]int, len(res.Unassigned))
	for _, c := range res.Unassigned {
		corridor[c.Point] = g.Rooms + len(g.Corridors)
		g.Corridors = append(g.Corridors, c.Point)
	}

	node := func(x, y int) int {
		if _, ok := s.RoomAt(x, y); ok {
			return roomIndex(res, x, y)
		}
		if n, ok := corridor[generator.Point{X: x, Y: y}]; ok {
			return n
		}
		return -1
	}

	g.edges = make([]mapset.Set[int], g.Len())
	for i := range g.edges {
		g.edges[i] = mapset.New[int]()
	}
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			a := node(x, y)
			if a < 0 {
				continue
			}
			for _, dir := range []world.Direction{world.South, world.East} {
				if !s.Passable(x, y, dir) {
					continue
				}
				dx, dy := dir.Delta()
				b := node(x+dx, y+dy)
				if b < 0 || b == a {
					continue
				}
				g.edges[a].Put(b)
				g.edges[b].Put(a)
			}
		}
	}
	g.Start = node(res.Start.X, res.Start.Y)
	return g
}

// roomIndex returns the placement covering the cell. The cell must be covered.
func roomIndex(res *generator.Result, x, y int) int {
	for i, p := range res.Placements {
		if p.Covers(x, y) {
			return i
		}
	}
	return -1
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return g.Rooms + len(g.Corridors)
}

// Neighbors returns the nodes joined to n by an opening, in ascending order
func (g *Graph) Neighbors(n int) []int {
	if n < 0 || n >= len(g.edges) {
		return nil
	}
	var out []int
	g.edges[n].Each(func(m int) {
		out = append(out, m)
	})
	sort.Ints(out)
	return out
}

// Distances runs a breadth-first search from start, skipping blocked.
// Unreached nodes get -1.
func (g *Graph) Distances(start int, blocked mapset.Set[int]) []int {
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	if start < 0 || start >= g.Len() || blocked.Has(start) {
		return dist
	}

	dist[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		g.edges[current].Each(func(n int) {
			if dist[n] >= 0 || blocked.Has(n) {
				return
			}
			dist[n] = dist[current] + 1
			queue = append(queue, n)
		})
	}
	return dist
}

// StillConnectedIfBlocked returns true if every node other than n stays
// mutually reachable once n is treated as impassable.
func (g *Graph) StillConnectedIfBlocked(n int) bool {
	blocked := mapset.New[int]()
	blocked.Put(n)

	from := -1
	for i := 0; i < g.Len(); i++ {
		if i != n {
			from = i
			break
		}
	}
	if from < 0 {
		return true
	}
	for i, d := range g.Distances(from, blocked) {
		if i != n && d < 0 {
			return false
		}
	}
	return true
}

// Analyze builds the graph for res and reports on it
func Analyze(res *generator.Result) *Report {
	rep := &Report{}
	if !res.Success {
		return rep
	}

	g := NewGraph(res)
	dist := g.Distances(g.Start, mapset.New[int]())

	rep.Connected = true
	for _, d := range dist {
		if d < 0 {
			rep.Connected = false
			break
		}
	}

	rep.Distance = dist[:g.Rooms]
	for i, p := range res.Placements {
		if dist[i] < 0 {
			rep.Unreachable = append(rep.Unreachable, p)
		}
		if rep.Connected && !g.StillConnectedIfBlocked(i) {
			rep.Chokepoints = append(rep.Chokepoints, p)
		}
	}
	for _, c := range res.Unassigned {
		if open := countOpen(c.Openings); open == 1 {
			rep.DeadEnds = append(rep.DeadEnds, c.Point)
		}
	}
	return rep
}

func countOpen(openings [world.DirectionCount]bool) int {
	n := 0
	for _, o := range openings {
		if o {
			n++
		}
	}
	return n
}
