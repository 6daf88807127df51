package generator

import (
	"errors"
	"fmt"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
)

// ErrExhausted is matched by the error returned when every attempt failed
var ErrExhausted = errors.New("generation attempts exhausted")

// ExhaustedError reports that no attempt satisfied the required room counts
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to satisfy all required room counts after %d attempt(s)", e.Attempts)
}

// Is lets errors.Is match ErrExhausted
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Point is a grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Corridor is a carved cell that received no room
type Corridor struct {
	Point
	Openings [world.DirectionCount]bool `json:"openings"`
}

// Placement is one placed room, keyed by its anchor cell
type Placement struct {
	Room      catalog.RoomID             `json:"room"`
	Kind      catalog.Kind               `json:"kind"`
	X         int                        `json:"x"`
	Y         int                        `json:"y"`
	Footprint world.Size                 `json:"footprint"`
	Openings  [world.DirectionCount]bool `json:"openings"`
	Sockets   [world.DirectionCount]int  `json:"sockets"`
}

// Covers returns true if the placement's footprint contains the coordinate
func (p Placement) Covers(x, y int) bool {
	fp := p.Footprint.Normalize()
	return x >= p.X && x < p.X+fp.W && y >= p.Y && y < p.Y+fp.H
}

// Result is the outcome of a generation request.
// Placements are ordered row-major by anchor cell.
type Result struct {
	Success    bool                   `json:"success"`
	Attempts   int                    `json:"attempts"`
	Seed       int64                  `json:"seed,omitempty"`
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Start      Point                  `json:"start"`
	Target     int                    `json:"target"`
	Carved     int                    `json:"carved"`
	Placements []Placement            `json:"placements"`
	Unassigned []Corridor             `json:"unassigned,omitempty"`
	Counts     map[catalog.RoomID]int `json:"counts"`
}

// ByKind returns the placements of rooms of the given kind
func (r *Result) ByKind(kind catalog.Kind) []Placement {
	var out []Placement
	for _, p := range r.Placements {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// ByRoom returns the placements of the given room id
func (r *Result) ByRoom(id catalog.RoomID) []Placement {
	var out []Placement
	for _, p := range r.Placements {
		if p.Room == id {
			out = append(out, p)
		}
	}
	return out
}

// StartRoom returns the placement covering the carve start cell
func (r *Result) StartRoom() (Placement, bool) {
	for _, p := range r.Placements {
		if p.Covers(r.Start.X, r.Start.Y) {
			return p, true
		}
	}
	return Placement{}, false
}

// snapshot converts a successful attempt's grid into a Result
func snapshot(grid *world.Grid, cat *catalog.Catalog, defs map[catalog.RoomID]*catalog.RoomDefinition, counts []int) *Result {
	res := &Result{
		Success: true,
		Width:   grid.Width(),
		Height:  grid.Height(),
		Counts:  make(map[catalog.RoomID]int, cat.Len()),
	}
	for i := range cat.Rooms {
		res.Counts[cat.Rooms[i].ID] = counts[i]
	}

	grid.ForEachCell(func(i, x, y int, cell *world.Cell) {
		if cell.Visited {
			res.Carved++
		}
		if cell.IsAnchor() {
			p := Placement{
				Room:      catalog.RoomID(cell.RoomID),
				X:         x,
				Y:         y,
				Footprint: cell.Footprint,
				Openings:  cell.Openings,
				Sockets:   cell.Sockets,
			}
			if def := defs[p.Room]; def != nil {
				p.Kind = def.Kind
			}
			res.Placements = append(res.Placements, p)
			return
		}
		if cell.Visited && !cell.Occupied {
			res.Unassigned = append(res.Unassigned, Corridor{Point: Point{X: x, Y: y}, Openings: cell.Openings})
		}
	})
	return res
}
