package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

func sampleResult() *generator.Result {
	return &generator.Result{
		Success:  true,
		Attempts: 1,
		Seed:     5,
		Width:    3,
		Height:   2,
		Target:   4,
		Carved:   4,
		Start:    generator.Point{X: 0, Y: 1},
		Placements: []generator.Placement{
			{Room: "gallery", X: 0, Y: 0, Footprint: world.Size{W: 2, H: 1}, Openings: [4]bool{false, true, false, false}, Sockets: [4]int{0, 1, 0, 0}},
			{Room: "hall", Kind: catalog.Safe, X: 0, Y: 1, Footprint: world.UnitSize, Openings: [4]bool{true, false, true, false}, Sockets: [4]int{1, 0, 0, 0}},
		},
		Unassigned: []generator.Corridor{{Point: generator.Point{X: 1, Y: 1}, Openings: [4]bool{false, false, false, true}}},
		Counts:     map[catalog.RoomID]int{"gallery": 1, "hall": 1},
	}
}

func TestWriteLayoutDump(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLayoutDump(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"seed: 5",
		"start_cell: 0,1",
		"target_cells: 4\ncarved_cells: 4\n",
		"A = gallery (normal) x1",
		"B = hall (safe) x1",
		"--- Map ---\nAA#\n@.#\n",
		"--- Map (no start overlay) ---\nAA#\nB.#\n",
		`x: 0 y: 1 room: "hall" kind: safe footprint: 1x1 world: 0,0,-12 sides: North=1 East=0`,
		"  gallery: 1\n  hall: 1\n",
		"connected: true\n  gallery (0,0) distance_from_start: 1\n  hall (0,1) distance_from_start: 0\n",
		"  chokepoint: hall (0,1)\n  dead_end: 1,1\n",
		"--- Unassigned carved cells ---\n  x: 1 y: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestWriteLayoutDump_Failure(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLayoutDump(&buf, &generator.Result{Attempts: 4, Width: 2, Height: 2}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "success: false") || strings.Contains(buf.String(), "--- Map ---") {
		t.Errorf("failure dump =\n%s", buf.String())
	}
}

func TestDumpLayoutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	written, err := DumpLayoutToFile(sampleResult(), path)
	if err != nil {
		t.Fatalf("DumpLayoutToFile() = %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== LAYOUT DUMP ===") {
		t.Errorf("dump file starts with %q", string(data[:20]))
	}

	if _, err := DumpLayoutToFile(nil, path); err == nil {
		t.Error("DumpLayoutToFile(nil) should error")
	}
}

func TestLayoutHTML(t *testing.T) {
	page := LayoutHTML(sampleResult())
	for _, want := range []string{
		`<span class="normal">A</span><span class="normal">A</span><span class="void">#</span>`,
		`<span class="start">B</span><span class="corridor">.</span>`,
		`<span class="safe">B</span> hall x1`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	path := filepath.Join(t.TempDir(), "layout.html")
	if written, err := SaveLayoutHTML(sampleResult(), path); err != nil || written != path {
		t.Errorf("SaveLayoutHTML() = %q, %v", written, err)
	}
}

func TestShowcase(t *testing.T) {
	cat := catalog.Default()
	res := Showcase(cat, "")
	if len(res.Placements) != cat.Len() {
		t.Fatalf("%d placements, want %d", len(res.Placements), cat.Len())
	}
	for _, p := range res.Placements {
		def, err := cat.Lookup(p.Room)
		if err != nil {
			t.Fatal(err)
		}
		for _, dir := range world.AllDirections() {
			if p.Openings[dir] != def.Supports(dir) {
				t.Errorf("%s %v open = %v", p.Room, dir, p.Openings[dir])
			}
		}
		if p.Y+p.Footprint.H > res.Height-1 || p.X+p.Footprint.W > res.Width-1 {
			t.Errorf("%s at (%d,%d) touches the border of %dx%d", p.Room, p.X, p.Y, res.Width, res.Height)
		}
	}

	filtered := Showcase(cat, "GALLERY")
	if len(filtered.Placements) != 1 || filtered.Placements[0].Room != "long_gallery" {
		t.Errorf("filtered showcase = %+v", filtered.Placements)
	}
}
