package tui

import (
	"bytes"
	"strings"
	"testing"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/renderer"
)

func plainRenderer(width int) *TUIRenderer {
	t := &TUIRenderer{}
	t.Init()
	t.SetPlain(true)
	t.SetWidth(width)
	return t
}

func sampleResult() *generator.Result {
	return &generator.Result{
		Success:  true,
		Attempts: 2,
		Seed:     7,
		Width:    3,
		Height:   2,
		Carved:   4,
		Start:    generator.Point{X: 0, Y: 1},
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

func TestRenderFramed(t *testing.T) {
	var buf bytes.Buffer
	plainRenderer(0).RenderFramed(&buf, renderer.NewScene(sampleResult()))

	want := strings.Join([]string{
		"+---+---+",
		"| A   A |",
		"+   +---+",
		"|[B]  . |",
		"+---+---+",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("framed map =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRenderCompact(t *testing.T) {
	var buf bytes.Buffer
	plainRenderer(0).RenderCompact(&buf, renderer.NewScene(sampleResult()))

	if buf.String() != "AA\n@.\n" {
		t.Errorf("compact map = %q", buf.String())
	}
}

func TestRenderMap_FallsBackToCompact(t *testing.T) {
	scene := renderer.NewScene(sampleResult())
	if FramedWidth(scene) != 13 {
		t.Fatalf("FramedWidth() = %d, want 13", FramedWidth(scene))
	}

	var buf bytes.Buffer
	plainRenderer(10).RenderMap(&buf, scene)
	if strings.Contains(buf.String(), "+---") {
		t.Errorf("narrow terminal still drew the framed map:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "AA\n@.\n") {
		t.Errorf("compact map missing:\n%s", buf.String())
	}
}

func TestRender_PlainSummaryAndLegend(t *testing.T) {
	var buf bytes.Buffer
	plainRenderer(0).Render(&buf, sampleResult())
	out := buf.String()

	for _, want := range []string{
		"Layout generated after 2 attempt(s) (seed 7)",
		"3x2 grid, 4 of 6 cells carved, 2 room(s) placed",
		"1 carved cell(s) left without a room",
		"A  gallery (normal) x1",
		"B  hall (safe) x1",
		"N- S1 E- W-",
		"N1 S- E0 W-",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains escape codes")
	}
}

func TestRender_Failure(t *testing.T) {
	var buf bytes.Buffer
	plainRenderer(0).Render(&buf, &generator.Result{Attempts: 20, Seed: 3, Width: 4, Height: 4})

	if got := strings.TrimSpace(buf.String()); got != "No layout found after 20 attempt(s) (seed 3)" {
		t.Errorf("failure output = %q", got)
	}
}

func TestFormatText_Markup(t *testing.T) {
	r := plainRenderer(0)
	tests := []struct {
		msg  string
		args []any
		want string
	}{
		{"GT{LEGEND}:", nil, "Legend:"},
		{"ROOM{%s} here", []any{"vault"}, "vault here"},
		{"KIND{aggro}", nil, "aggro"},
		{"KIND{bogus}", nil, "bogus"},
	}
	for _, tt := range tests {
		if got := r.FormatText(tt.msg, tt.args...); got != tt.want {
			t.Errorf("FormatText(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
