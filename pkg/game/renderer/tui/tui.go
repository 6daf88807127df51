// Package tui draws generated layouts as text for the terminal.
package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"

	"gallerymaze/pkg/engine/terminal"
	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/locale"
	"gallerymaze/pkg/game/renderer"
)

// Map glyphs
const (
	IconCorridor = "."
	IconStart    = "@"
	IconVoid     = " "
	IconCorner   = "+"
	IconWallH    = "---"
	IconWallV    = "|"
)

// cellWidth is the number of columns one framed cell takes, excluding its left wall
const cellWidth = 3

// dynamicGet is used for runtime translation key lookups.
// Keeps go vet's printf check away from keys read out of markup.
var dynamicGet = locale.Get

// TUIRenderer draws a Scene as a framed or compact character map
type TUIRenderer struct {
	colorWall     color.Style
	colorCorridor color.Style
	colorStart    color.Style
	colorNormal   color.Style
	colorAggro    color.Style
	colorSafe     color.Style
	colorTitle    color.Style
	colorSubtle   color.Style

	plain bool
	width int

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer sized to the current terminal
func New() *TUIRenderer {
	t := &TUIRenderer{width: terminal.GetWidth()}
	t.Init()
	return t
}

// Init initializes the colour styles and markup parser
func (t *TUIRenderer) Init() {
	t.colorWall = color.Style{color.FgGray}
	t.colorCorridor = color.Style{color.FgGray, color.OpBold}
	t.colorStart = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorNormal = color.Style{color.FgBlue, color.OpBold}
	t.colorAggro = color.Style{color.FgRed, color.OpBold}
	t.colorSafe = color.Style{color.FgGreen}
	t.colorTitle = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// SetPlain disables colour output
func (t *TUIRenderer) SetPlain(plain bool) {
	t.plain = plain
}

// SetWidth overrides the detected terminal width. 0 means unlimited.
func (t *TUIRenderer) SetWidth(width int) {
	t.width = width
}

func (t *TUIRenderer) style(s color.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Sprint(text)
}

func (t *TUIRenderer) kindStyle(kind catalog.Kind) color.Style {
	switch kind {
	case catalog.Aggro:
		return t.colorAggro
	case catalog.Safe:
		return t.colorSafe
	default:
		return t.colorNormal
	}
}

// FormatText formats a message with the markup system:
// GT{key} translates, ROOM{id} highlights a room id, KIND{name} a room kind.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ROOM":
			val = t.style(t.colorTitle, operand)
		case "KIND":
			var kind catalog.Kind
			if err := kind.UnmarshalText([]byte(operand)); err != nil {
				val = operand
				break
			}
			val = t.style(t.kindStyle(kind), dynamicGet("KIND_"+kind.String()))
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// Render writes the summary, map, legend and placement table for a result
func (t *TUIRenderer) Render(w io.Writer, res *generator.Result) {
	t.RenderSummary(w, res)
	if !res.Success {
		return
	}
	fmt.Fprintln(w)

	scene := renderer.NewScene(res)
	t.RenderMap(w, scene)
	fmt.Fprintln(w)
	t.RenderLegend(w, scene)
	fmt.Fprintln(w)
	t.RenderPlacements(w, res)
}

// RenderSummary writes the outcome line and grid statistics
func (t *TUIRenderer) RenderSummary(w io.Writer, res *generator.Result) {
	if !res.Success {
		fmt.Fprintln(w, t.style(t.colorAggro, fmt.Sprintf(locale.Get("LAYOUT_FAILED"), res.Attempts, res.Seed)))
		return
	}
	fmt.Fprintln(w, t.style(t.colorTitle, fmt.Sprintf(locale.Get("LAYOUT_GENERATED"), res.Attempts, res.Seed)))
	fmt.Fprintf(w, locale.Get("GRID_SUMMARY")+"\n", res.Width, res.Height, res.Carved, res.Width*res.Height, len(res.Placements))
	if n := len(res.Unassigned); n > 0 {
		fmt.Fprintln(w, t.style(t.colorSubtle, fmt.Sprintf(locale.Get("UNASSIGNED_CELLS"), n)))
	}
}

// RenderMap draws the framed map, or the compact map if the framed one does
// not fit the renderer width.
func (t *TUIRenderer) RenderMap(w io.Writer, s *renderer.Scene) {
	if terminal.Fits(FramedWidth(s), t.width) {
		t.RenderFramed(w, s)
		return
	}
	fmt.Fprintln(w, t.style(t.colorSubtle, locale.Get("MAP_TOO_WIDE")))
	t.RenderCompact(w, s)
}

// FramedWidth returns the number of columns the framed map needs
func FramedWidth(s *renderer.Scene) int {
	return s.Width*(cellWidth+1) + 1
}

func covered(s *renderer.Scene, x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height && !s.IsEmpty(x, y)
}

// RenderFramed draws each cell three columns wide with walls between cells
// that are not joined by an opening or a shared room.
func (t *TUIRenderer) RenderFramed(w io.Writer, s *renderer.Scene) {
	for y := 0; y <= s.Height; y++ {
		var line strings.Builder
		for x := 0; x <= s.Width; x++ {
			if covered(s, x-1, y-1) || covered(s, x, y-1) || covered(s, x-1, y) || covered(s, x, y) {
				line.WriteString(t.style(t.colorWall, IconCorner))
			} else {
				line.WriteString(IconVoid)
			}
			if x == s.Width {
				break
			}
			if !s.Passable(x, y, world.North) && (covered(s, x, y) || covered(s, x, y-1)) {
				line.WriteString(t.style(t.colorWall, IconWallH))
			} else {
				line.WriteString(strings.Repeat(IconVoid, cellWidth))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), IconVoid))

		if y == s.Height {
			break
		}

		line.Reset()
		for x := 0; x <= s.Width; x++ {
			if !s.Passable(x, y, world.West) && (covered(s, x-1, y) || covered(s, x, y)) {
				line.WriteString(t.style(t.colorWall, IconWallV))
			} else {
				line.WriteString(IconVoid)
			}
			if x == s.Width {
				break
			}
			line.WriteString(t.framedCell(s, x, y))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), IconVoid))
	}
}

// framedCell returns the three-column content of one cell
func (t *TUIRenderer) framedCell(s *renderer.Scene, x, y int) string {
	if room, ok := s.RoomAt(x, y); ok {
		glyph := t.style(t.kindStyle(room.Kind), string(room.Glyph))
		if s.IsStart(x, y) {
			return t.style(t.colorStart, "[") + glyph + t.style(t.colorStart, "]")
		}
		return IconVoid + glyph + IconVoid
	}
	if s.IsUnassigned(x, y) {
		icon := IconCorridor
		if s.IsStart(x, y) {
			icon = t.style(t.colorStart, IconStart)
		} else {
			icon = t.style(t.colorCorridor, icon)
		}
		return IconVoid + icon + IconVoid
	}
	return strings.Repeat(IconVoid, cellWidth)
}

// RenderCompact draws one character per cell
func (t *TUIRenderer) RenderCompact(w io.Writer, s *renderer.Scene) {
	for y := 0; y < s.Height; y++ {
		var line strings.Builder
		for x := 0; x < s.Width; x++ {
			switch room, ok := s.RoomAt(x, y); {
			case s.IsStart(x, y) && !s.IsEmpty(x, y):
				line.WriteString(t.style(t.colorStart, IconStart))
			case ok:
				line.WriteString(t.style(t.kindStyle(room.Kind), string(room.Glyph)))
			case s.IsUnassigned(x, y):
				line.WriteString(t.style(t.colorCorridor, IconCorridor))
			default:
				line.WriteString(IconVoid)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), IconVoid))
	}
}

// RenderLegend lists each glyph with its room id, kind and count
func (t *TUIRenderer) RenderLegend(w io.Writer, s *renderer.Scene) {
	fmt.Fprintln(w, t.FormatText("ROOM{%s}", locale.Get("LEGEND")))
	for _, e := range s.Legend {
		glyph := t.style(t.kindStyle(e.Kind), string(e.Glyph))
		fmt.Fprintf(w, "  %s  %s\n", glyph, t.FormatText("%s (KIND{%s}) x%d", e.Room, e.Kind, e.Count))
	}
	fmt.Fprintf(w, "  %s  %s\n", t.style(t.colorStart, IconStart+"/[]"), locale.Get("START_ROOM"))
	fmt.Fprintf(w, "  %s  %s\n", t.style(t.colorCorridor, IconCorridor), locale.Get("CORRIDOR"))
}

// RenderPlacements writes one line per placement with its open sides and sockets
func (t *TUIRenderer) RenderPlacements(w io.Writer, res *generator.Result) {
	fmt.Fprintln(w, t.FormatText("ROOM{%s}", locale.Get("PLACEMENTS")))
	for _, p := range res.Placements {
		fmt.Fprintf(w, "  %-20s (%d,%d) %dx%d  %s\n", p.Room, p.X, p.Y, p.Footprint.Normalize().W, p.Footprint.Normalize().H, SocketSummary(p))
	}
}

// SocketSummary describes a placement's sides as e.g. "N1 S- E0 W-"
func SocketSummary(p generator.Placement) string {
	parts := make([]string, 0, world.DirectionCount)
	for _, dir := range world.AllDirections() {
		if p.Openings[dir] {
			parts = append(parts, fmt.Sprintf("%c%d", dir.String()[0], p.Sockets[dir]))
		} else {
			parts = append(parts, fmt.Sprintf("%c-", dir.String()[0]))
		}
	}
	return strings.Join(parts, " ")
}
