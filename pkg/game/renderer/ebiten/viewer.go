// Package ebiten provides a window viewer for generated layouts.
package ebiten

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gallerymaze/pkg/engine/input"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/devtools"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/locale"
	"gallerymaze/pkg/game/renderer"
)

// Colour palette
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorCorridor      = color.RGBA{60, 60, 80, 255}    // Unassigned carved cells
	colorWall          = color.RGBA{180, 180, 200, 255} // Room outlines
	colorNormal        = color.RGBA{70, 90, 160, 255}
	colorAggro         = color.RGBA{160, 60, 60, 255}
	colorSafe          = color.RGBA{50, 140, 80, 255}
	colorDoor          = color.RGBA{255, 220, 100, 255}
	colorStart         = color.RGBA{0, 255, 0, 255}
	colorHover         = color.RGBA{200, 210, 245, 80}
)

// keyCodes maps keys whose lowercase name differs from their binding code
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyR:              "r",
	ebiten.KeySpace:          "space",
	ebiten.KeyS:              "s",
	ebiten.KeyP:              "p",
	ebiten.KeyF2:             "f2",
	ebiten.KeyD:              "d",
	ebiten.KeyEqual:          "=",
	ebiten.KeyNumpadAdd:      "numpad_add",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadSubtract: "numpad_subtract",
	ebiten.KeyQ:              "q",
	ebiten.KeyEscape:         "escape",
}

const (
	minTile  = 16
	maxTile  = 96
	tileStep = 8

	// HTMLFilename is where the screenshot action saves the layout
	HTMLFilename = "layout.html"
)

// Regenerator produces a fresh layout when the viewer asks for one
type Regenerator func() (*generator.Result, error)

// Viewer implements ebiten.Game for a single layout
type Viewer struct {
	result     *generator.Result
	scene      *renderer.Scene
	geometry   renderer.Geometry
	regenerate Regenerator
	status     string

	bindings  *input.Bindings
	debouncer *input.Debouncer

	showSockets  bool
	openedLogged bool
}

// NewViewer creates a viewer for res. regenerate may be nil; binds override
// the default keys.
func NewViewer(res *generator.Result, regenerate Regenerator, binds ...input.Binding) *Viewer {
	v := &Viewer{
		geometry:    renderer.DefaultGeometry,
		regenerate:  regenerate,
		showSockets: true,
		bindings:    input.DefaultBindings(),
		debouncer:   input.NewDebouncer(150 * time.Millisecond),
	}
	v.bindings.Apply(binds...)
	v.show(res)
	return v
}

func (v *Viewer) show(res *generator.Result) {
	v.result = res
	v.scene = renderer.NewScene(res)
	if res.Success {
		v.status = fmt.Sprintf(locale.Get("LAYOUT_GENERATED"), res.Attempts, res.Seed)
	} else {
		v.status = fmt.Sprintf(locale.Get("LAYOUT_FAILED"), res.Attempts, res.Seed)
	}
}

// Update handles input (Ebiten interface)
func (v *Viewer) Update() error {
	if !v.openedLogged {
		v.openedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Layout window opened (%dx%d)", w, h)
	}

	for _, raw := range v.pollInput() {
		ev, ok := v.debouncer.Accept(raw)
		if !ok {
			continue
		}
		if err := v.apply(v.bindings.MapToIntent(ev)); err != nil {
			return err
		}
	}
	return nil
}

// pollInput collects this frame's key presses and wheel movement
func (v *Viewer) pollInput() []input.RawInput {
	now := time.Now()
	var raw []input.RawInput
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		code, ok := keyCodes[key]
		if !ok {
			code = strings.ToLower(key.String())
		}
		raw = append(raw, input.RawInput{Device: input.DeviceKeyboard, Code: code, Timestamp: now})
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		raw = append(raw, input.RawInput{Device: input.DeviceMouse, Code: "wheel_up", Timestamp: now})
	} else if dy < 0 {
		raw = append(raw, input.RawInput{Device: input.DeviceMouse, Code: "wheel_down", Timestamp: now})
	}
	return raw
}

// apply performs an intent. Only ActionQuit returns a non-nil error.
func (v *Viewer) apply(intent input.Intent) error {
	switch intent.Action {
	case input.ActionQuit:
		return ebiten.Termination
	case input.ActionToggleSockets:
		v.showSockets = !v.showSockets
	case input.ActionRegenerate:
		if v.regenerate == nil {
			return nil
		}
		res, err := v.regenerate()
		if res != nil {
			v.show(res)
		}
		if err != nil {
			v.status = err.Error()
		}
	case input.ActionScreenshot:
		if path, err := devtools.SaveLayoutHTML(v.result, HTMLFilename); err != nil {
			v.status = err.Error()
		} else {
			v.status = fmt.Sprintf(locale.Get("DUMP_WRITTEN"), path)
		}
	case input.ActionDump:
		if path, err := devtools.DumpLayoutToFile(v.result, devtools.DefaultDumpFilename); err != nil {
			v.status = err.Error()
		} else {
			v.status = fmt.Sprintf(locale.Get("DUMP_WRITTEN"), path)
		}
	case input.ActionZoomIn:
		v.zoom(tileStep)
	case input.ActionZoomOut:
		v.zoom(-tileStep)
	}
	return nil
}

func (v *Viewer) zoom(delta int) {
	tile := v.geometry.Tile + delta
	if tile < minTile || tile > maxTile {
		return
	}
	v.geometry.Tile = tile
	ebiten.SetWindowSize(v.geometry.ScreenSize(v.scene))
}

// help lists the bound keys for the on-screen hint line
func (v *Viewer) help() string {
	var parts []string
	for _, a := range []input.Action{input.ActionRegenerate, input.ActionToggleSockets, input.ActionScreenshot, input.ActionDump, input.ActionQuit} {
		codes := v.bindings.Codes(a)
		if len(codes) == 0 {
			continue
		}
		parts = append(parts, codes[0]+": "+input.ActionName(a))
	}
	return strings.Join(parts, "  ")
}

// Draw renders the layout (Ebiten interface)
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s := v.scene
	g := v.geometry
	mapBounds := g.Room(renderer.Rect{W: s.Width, H: s.Height})
	vector.DrawFilledRect(screen, mapBounds.X, mapBounds.Y, mapBounds.W, mapBounds.H, colorMapBackground, false)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if s.IsUnassigned(x, y) {
				c := g.Cell(x, y)
				vector.DrawFilledRect(screen, c.X+4, c.Y+4, c.W-8, c.H-8, colorCorridor, false)
			}
		}
	}

	for _, room := range s.Rooms {
		b := g.Room(room.Rect)
		vector.DrawFilledRect(screen, b.X+2, b.Y+2, b.W-4, b.H-4, kindColor(room.Kind), false)
		vector.StrokeRect(screen, b.X+2, b.Y+2, b.W-4, b.H-4, 2, colorWall, false)
		ebitenutil.DebugPrintAt(screen, string(room.Glyph), int(b.X)+6, int(b.Y)+4)
	}

	for _, d := range s.Doors {
		m := g.DoorMarker(d)
		vector.DrawFilledRect(screen, m.X, m.Y, m.W, m.H, colorDoor, false)
		if v.showSockets {
			ebitenutil.DebugPrintAt(screen, fmt.Sprint(d.Socket), int(m.X+m.W/2)-3, int(m.Y+m.H/2)-8)
		}
	}

	if s.Width > 0 && s.Height > 0 {
		start := g.Cell(s.Start.X, s.Start.Y)
		vector.StrokeRect(screen, start.X+6, start.Y+6, start.W-12, start.H-12, 2, colorStart, false)
	}

	ebitenutil.DebugPrintAt(screen, v.status, g.Margin, g.Margin)
	ebitenutil.DebugPrintAt(screen, v.help(), g.Margin, g.Margin+16)

	mx, my := ebiten.CursorPosition()
	if x, y, ok := g.CellAt(s, mx, my); ok {
		c := g.Cell(x, y)
		vector.DrawFilledRect(screen, c.X, c.Y, c.W, c.H, colorHover, false)
		ebitenutil.DebugPrintAt(screen, v.describe(x, y), g.Margin, g.Margin+32)
	}
}

// describe returns the hover text for a cell
func (v *Viewer) describe(x, y int) string {
	if room, ok := v.scene.RoomAt(x, y); ok {
		return fmt.Sprintf("(%d,%d) %s [%s] anchor (%d,%d)", x, y, room.Room, room.Kind, room.X, room.Y)
	}
	if v.scene.IsUnassigned(x, y) {
		return fmt.Sprintf("(%d,%d) %s", x, y, locale.Get("CORRIDOR"))
	}
	return fmt.Sprintf("(%d,%d)", x, y)
}

// Layout returns the logical screen size (Ebiten interface)
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.geometry.ScreenSize(v.scene)
}

func kindColor(kind catalog.Kind) color.Color {
	switch kind {
	case catalog.Aggro:
		return colorAggro
	case catalog.Safe:
		return colorSafe
	default:
		return colorNormal
	}
}

// Run opens a window showing the viewer and blocks until it is closed
func Run(v *Viewer) error {
	w, h := v.geometry.ScreenSize(v.scene)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Gallery layout")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
