package renderer

import "gallerymaze/pkg/engine/world"

// Bounds is a pixel rectangle
type Bounds struct {
	X, Y, W, H float32
}

// Geometry maps scene cells to pixels for graphical backends
type Geometry struct {
	Tile   int // Pixel size of one cell
	Margin int // Border around the map
	Header int // Space reserved above the map for status text
	Door   int // Door marker thickness
}

// DefaultGeometry is used by the window viewer
var DefaultGeometry = Geometry{Tile: 48, Margin: 16, Header: 64, Door: 6}

// ScreenSize returns the pixel size needed to draw the scene
func (g Geometry) ScreenSize(s *Scene) (width, height int) {
	return s.Width*g.Tile + 2*g.Margin, s.Height*g.Tile + 2*g.Margin + g.Header
}

// Cell returns the pixel bounds of one cell
func (g Geometry) Cell(x, y int) Bounds {
	return Bounds{
		X: float32(g.Margin + x*g.Tile),
		Y: float32(g.Margin + g.Header + y*g.Tile),
		W: float32(g.Tile),
		H: float32(g.Tile),
	}
}

// Room returns the pixel bounds of a room's full footprint
func (g Geometry) Room(r Rect) Bounds {
	b := g.Cell(r.X, r.Y)
	b.W = float32(r.W * g.Tile)
	b.H = float32(r.H * g.Tile)
	return b
}

// DoorMarker returns a bar centred on the given side of the door's cell
func (g Geometry) DoorMarker(d Door) Bounds {
	c := g.Cell(d.X, d.Y)
	half := float32(g.Tile) / 4
	t := float32(g.Door)
	switch d.Side {
	case world.North:
		return Bounds{X: c.X + c.W/2 - half, Y: c.Y - t/2, W: 2 * half, H: t}
	case world.South:
		return Bounds{X: c.X + c.W/2 - half, Y: c.Y + c.H - t/2, W: 2 * half, H: t}
	case world.East:
		return Bounds{X: c.X + c.W - t/2, Y: c.Y + c.H/2 - half, W: t, H: 2 * half}
	case world.West:
		return Bounds{X: c.X - t/2, Y: c.Y + c.H/2 - half, W: t, H: 2 * half}
	default:
		return Bounds{}
	}
}

// CellAt converts a pixel position back to a cell, or false if outside the map
func (g Geometry) CellAt(s *Scene, px, py int) (x, y int, ok bool) {
	px -= g.Margin
	py -= g.Margin + g.Header
	if px < 0 || py < 0 || g.Tile <= 0 {
		return 0, 0, false
	}
	x, y = px/g.Tile, py/g.Tile
	if x >= s.Width || y >= s.Height {
		return 0, 0, false
	}
	return x, y, true
}
