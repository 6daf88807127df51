// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/analysis"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/instantiate"
	"gallerymaze/pkg/game/renderer"
)

// DefaultDumpFilename is used when no dump path is given
const DefaultDumpFilename = "layout.txt"

// cellSymbol returns the single-character symbol for a cell
func cellSymbol(s *renderer.Scene, x, y int) rune {
	if room, ok := s.RoomAt(x, y); ok {
		return room.Glyph
	}
	if s.IsUnassigned(x, y) {
		return '.'
	}
	return '#'
}

// writeMapGrid writes one symbol per cell, with the start cell marked '@'
func writeMapGrid(w io.Writer, s *renderer.Scene, markStart bool) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if markStart && s.IsStart(x, y) {
				fmt.Fprint(w, "@")
				continue
			}
			fmt.Fprintf(w, "%c", cellSymbol(s, x, y))
		}
		fmt.Fprintln(w)
	}
}

// DumpLayoutToFile writes a full debug dump of res to path (DefaultDumpFilename
// if empty) and returns the absolute path written.
func DumpLayoutToFile(res *generator.Result, path string) (string, error) {
	if res == nil {
		return "", fmt.Errorf("no layout")
	}
	if path == "" {
		path = DefaultDumpFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteLayoutDump(f, res); err != nil {
		return "", err
	}
	return absPath, nil
}

// WriteLayoutDump writes the dump sections: metadata, legend, maps,
// placements, counts and unassigned cells. The format is line-oriented
// key: value so it diffs cleanly between seeds.
func WriteLayoutDump(w io.Writer, res *generator.Result) error {
	s := renderer.NewScene(res)

	// --- Metadata ---
	fmt.Fprintln(w, "=== LAYOUT DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "success: %v\n", res.Success)
	fmt.Fprintf(w, "attempts: %d\n", res.Attempts)
	fmt.Fprintf(w, "seed: %d\n", res.Seed)
	fmt.Fprintf(w, "grid_width: %d\n", res.Width)
	fmt.Fprintf(w, "grid_height: %d\n", res.Height)
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=column, y=row, north is y-1)\n")
	fmt.Fprintf(w, "start_cell: %d,%d\n", res.Start.X, res.Start.Y)
	fmt.Fprintf(w, "target_cells: %d\n", res.Target)
	fmt.Fprintf(w, "carved_cells: %d\n", res.Carved)
	fmt.Fprintf(w, "placements: %d\n", len(res.Placements))
	fmt.Fprintln(w, "")

	if !res.Success {
		return nil
	}

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, "# = not carved  . = carved without room  @ = start cell")
	for _, e := range s.Legend {
		fmt.Fprintf(w, "%c = %s (%s) x%d\n", e.Glyph, e.Room, e.Kind, e.Count)
	}
	fmt.Fprintln(w, "")

	// --- Maps ---
	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, s, true)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Map (no start overlay) ---")
	writeMapGrid(w, s, false)
	fmt.Fprintln(w, "")

	// --- Placements ---
	fmt.Fprintln(w, "--- Placements (anchor x,y; row-major) ---")
	for _, p := range res.Placements {
		fp := p.Footprint.Normalize()
		pos := instantiate.DefaultSpacing.WorldPosition(p.X, p.Y)
		fmt.Fprintf(w, "  x: %d y: %d room: %q kind: %s footprint: %dx%d world: %g,%g,%g sides: %s\n",
			p.X, p.Y, p.Room, p.Kind, fp.W, fp.H, pos.X, pos.Y, pos.Z, sides(p))
	}
	fmt.Fprintln(w, "")

	// --- Counts ---
	fmt.Fprintln(w, "--- Counts ---")
	ids := make([]catalog.RoomID, 0, len(res.Counts))
	for id := range res.Counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "  %s: %d\n", id, res.Counts[id])
	}
	fmt.Fprintln(w, "")

	// --- Connectivity ---
	rep := analysis.Analyze(res)
	fmt.Fprintln(w, "--- Connectivity ---")
	fmt.Fprintf(w, "connected: %v\n", rep.Connected)
	for i, p := range res.Placements {
		fmt.Fprintf(w, "  %s (%d,%d) distance_from_start: %d\n", p.Room, p.X, p.Y, rep.Distance[i])
	}
	for _, p := range rep.Chokepoints {
		fmt.Fprintf(w, "  chokepoint: %s (%d,%d)\n", p.Room, p.X, p.Y)
	}
	for _, pt := range rep.DeadEnds {
		fmt.Fprintf(w, "  dead_end: %d,%d\n", pt.X, pt.Y)
	}
	fmt.Fprintln(w, "")

	// --- Unassigned ---
	fmt.Fprintln(w, "--- Unassigned carved cells ---")
	for _, pt := range res.Unassigned {
		fmt.Fprintf(w, "  x: %d y: %d\n", pt.X, pt.Y)
	}
	return nil
}

// sides formats the open sides of a placement as e.g. "north=1 east=0"
func sides(p generator.Placement) string {
	out := ""
	for _, dir := range world.AllDirections() {
		if !p.Openings[dir] {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", dir, p.Sockets[dir])
	}
	if out == "" {
		return "none"
	}
	return out
}
