package renderer

import (
	"testing"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

// sampleResult is a 3×2 layout: a 2×1 gallery at (0,0) opening south into a
// hall at (0,1), which opens east into an unassigned corridor cell.
func sampleResult() *generator.Result {
	return &generator.Result{
		Success: true,
		Width:   3,
		Height:  2,
		Start:   generator.Point{X: 0, Y: 1},
		Placements: []generator.Placement{
			{
				Room: "gallery", Kind: catalog.Normal, X: 0, Y: 0,
				Footprint: world.Size{W: 2, H: 1},
				Openings:  [4]bool{false, true, false, false},
				Sockets:   [4]int{0, 1, 0, 0},
			},
			{
				Room: "hall", Kind: catalog.Safe, X: 0, Y: 1,
				Footprint: world.UnitSize,
				Openings:  [4]bool{true, false, true, false},
				Sockets:   [4]int{1, 0, 0, 0},
			},
		},
		Unassigned: []generator.Corridor{{Point: generator.Point{X: 1, Y: 1}, Openings: [4]bool{false, false, false, true}}},
	}
}

func TestNewScene_Ownership(t *testing.T) {
	s := NewScene(sampleResult())

	if r, ok := s.RoomAt(1, 0); !ok || r.Room != "gallery" {
		t.Errorf("RoomAt(1,0) = %v, %v; want gallery", r, ok)
	}
	if !s.IsAnchor(0, 0) || s.IsAnchor(1, 0) {
		t.Error("only (0,0) anchors the gallery")
	}
	if !s.IsUnassigned(1, 1) {
		t.Error("(1,1) should be an unassigned corridor")
	}
	if !s.IsEmpty(2, 0) || !s.IsEmpty(2, 1) {
		t.Error("column 2 should be empty")
	}
	if !s.IsStart(0, 1) {
		t.Error("start not at (0,1)")
	}
	if _, ok := s.RoomAt(-1, 0); ok {
		t.Error("RoomAt out of bounds returned a room")
	}
}

func TestNewScene_LegendAndDoors(t *testing.T) {
	s := NewScene(sampleResult())

	if len(s.Legend) != 2 {
		t.Fatalf("legend has %d entries, want 2", len(s.Legend))
	}
	if s.Legend[0].Glyph != 'A' || s.Legend[0].Room != "gallery" || s.Legend[1].Glyph != 'B' || s.Legend[1].Room != "hall" {
		t.Errorf("legend = %+v", s.Legend)
	}
	if s.Legend[1].Kind != catalog.Safe || s.Legend[1].Count != 1 {
		t.Errorf("hall legend entry = %+v", s.Legend[1])
	}
	if len(s.Doors) != 3 {
		t.Errorf("%d doors, want 3", len(s.Doors))
	}
}

func TestScene_Passable(t *testing.T) {
	s := NewScene(sampleResult())
	tests := []struct {
		name string
		x, y int
		dir  world.Direction
		want bool
	}{
		{"inside gallery footprint", 0, 0, world.East, true},
		{"gallery to hall", 0, 0, world.South, true},
		{"hall to gallery", 0, 1, world.North, true},
		{"hall to corridor", 0, 1, world.East, true},
		{"corridor back to hall", 1, 1, world.West, true},
		{"corridor to empty", 1, 1, world.East, false},
		{"gallery non-anchor to corridor", 1, 0, world.South, false},
		{"grid edge", 0, 0, world.North, false},
		{"gallery to empty", 1, 0, world.East, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Passable(tt.x, tt.y, tt.dir); got != tt.want {
				t.Errorf("Passable(%d,%d,%v) = %v, want %v", tt.x, tt.y, tt.dir, got, tt.want)
			}
		})
	}
}
