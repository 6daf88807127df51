package renderer

import (
	"testing"

	"gallerymaze/pkg/engine/world"
)

func TestGeometry_CellAndRoom(t *testing.T) {
	g := Geometry{Tile: 10, Margin: 2, Header: 20, Door: 4}
	s := NewScene(sampleResult())

	if w, h := g.ScreenSize(s); w != 34 || h != 44 {
		t.Errorf("ScreenSize() = %d x %d, want 34 x 44", w, h)
	}
	if got := g.Cell(1, 1); got != (Bounds{X: 12, Y: 32, W: 10, H: 10}) {
		t.Errorf("Cell(1,1) = %+v", got)
	}
	if got := g.Room(s.Rooms[0].Rect); got != (Bounds{X: 2, Y: 22, W: 20, H: 10}) {
		t.Errorf("Room(gallery) = %+v", got)
	}
}

func TestGeometry_DoorMarker(t *testing.T) {
	g := Geometry{Tile: 20, Margin: 0, Header: 0, Door: 4}
	tests := []struct {
		side world.Direction
		want Bounds
	}{
		{world.North, Bounds{X: 5, Y: -2, W: 10, H: 4}},
		{world.South, Bounds{X: 5, Y: 18, W: 10, H: 4}},
		{world.East, Bounds{X: 18, Y: 5, W: 4, H: 10}},
		{world.West, Bounds{X: -2, Y: 5, W: 4, H: 10}},
	}
	for _, tt := range tests {
		if got := g.DoorMarker(Door{Side: tt.side}); got != tt.want {
			t.Errorf("DoorMarker(%v) = %+v, want %+v", tt.side, got, tt.want)
		}
	}
}

func TestGeometry_CellAt(t *testing.T) {
	g := Geometry{Tile: 10, Margin: 2, Header: 20}
	s := NewScene(sampleResult())

	if x, y, ok := g.CellAt(s, 13, 33); !ok || x != 1 || y != 1 {
		t.Errorf("CellAt(13,33) = %d,%d,%v; want 1,1,true", x, y, ok)
	}
	for _, p := range [][2]int{{0, 0}, {40, 25}, {5, 50}} {
		if _, _, ok := g.CellAt(s, p[0], p[1]); ok {
			t.Errorf("CellAt(%d,%d) should be outside the map", p[0], p[1])
		}
	}
}
