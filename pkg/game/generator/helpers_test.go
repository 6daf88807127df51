package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
)

// recordingLogger collects formatted log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// stubSource returns fixed draws: Intn yields n-1 when high is set, else 0
type stubSource struct {
	high  bool
	float float64
	calls []int
}

func (s *stubSource) Intn(n int) int {
	s.calls = append(s.calls, n)
	if s.high {
		return n - 1
	}
	return 0
}

func (s *stubSource) Float64() float64 {
	return s.float
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// exampleCatalog is the 4×4 scenario: two required vaults plus a filler hall
func exampleCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.RoomDefinition{ID: "vault", Footprint: world.UnitSize, Sockets: catalog.Uniform(3), RequiredCount: 2},
		catalog.RoomDefinition{ID: "hall", Footprint: world.UnitSize, Sockets: catalog.Uniform(2), AllowAsFiller: true, Weight: 1},
	)
}

func newTestGenerator(t *testing.T, cfg Config, cat *catalog.Catalog, seed int64) (*Generator, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	g, err := New(cfg, cat, WithSource(seeded(seed)), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return g, logger
}

// carvedLine returns a w×1 grid with every cell carved and opened east-west
func carvedLine(w int) *world.Grid {
	g := world.NewGrid(w, 1)
	for i := 0; i < w; i++ {
		g.Cell(i).Visited = true
		if i > 0 {
			g.Open(i-1, world.East)
		}
	}
	return g
}

// assertNoOverlap fails if any cell is covered by more than one footprint
func assertNoOverlap(t *testing.T, res *Result) {
	t.Helper()
	cover := make([]int, res.Width*res.Height)
	for _, p := range res.Placements {
		fp := p.Footprint.Normalize()
		for dy := 0; dy < fp.H; dy++ {
			for dx := 0; dx < fp.W; dx++ {
				x, y := p.X+dx, p.Y+dy
				if x >= res.Width || y >= res.Height {
					t.Fatalf("%s at (%d,%d) footprint %v leaves the grid", p.Room, p.X, p.Y, fp)
				}
				cover[x+y*res.Width]++
				if cover[x+y*res.Width] > 1 {
					t.Fatalf("cell (%d,%d) covered more than once", x, y)
				}
			}
		}
	}
}

// assertSocketsPaired fails if two adjacent anchors sharing an opening disagree on the socket index
func assertSocketsPaired(t *testing.T, res *Result) {
	t.Helper()
	at := make(map[Point]Placement, len(res.Placements))
	for _, p := range res.Placements {
		at[Point{X: p.X, Y: p.Y}] = p
	}
	for _, a := range res.Placements {
		for _, side := range world.AllDirections() {
			dx, dy := side.Delta()
			b, ok := at[Point{X: a.X + dx, Y: a.Y + dy}]
			if !ok || !a.Openings[side] || !b.Openings[side.Opposite()] {
				continue
			}
			if a.Sockets[side] != b.Sockets[side.Opposite()] {
				t.Errorf("%s(%d,%d) %v socket %d != %s(%d,%d) %v socket %d",
					a.Room, a.X, a.Y, side, a.Sockets[side], b.Room, b.X, b.Y, side.Opposite(), b.Sockets[side.Opposite()])
			}
		}
	}
}
