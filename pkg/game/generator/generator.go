// Package generator builds grid layouts: it carves a connected corridor maze,
// places catalog rooms on the carved cells honouring exact required counts,
// footprints and socket support, then pairs door sockets between neighbours.
// A failed attempt is discarded and the whole pipeline re-run, up to a
// configured number of attempts.
package generator

import (
	"context"
	"fmt"
	"log"

	"gallerymaze/pkg/engine/random"
	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
)

// Logger receives generator progress messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Option customises a Generator
type Option func(*Generator)

// WithSource injects the random source. Config.Seed is then only reported,
// so results carry seed 0 unless Config.Seed is set as well.
func WithSource(src random.Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// WithLogger replaces the default standard logger
func WithLogger(l Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator runs the attempt loop. It owns its grid, which is reset between
// attempts. A Generator is not safe for concurrent use.
type Generator struct {
	cfg    Config
	cat    *catalog.Catalog
	defs   map[catalog.RoomID]*catalog.RoomDefinition
	src    random.Source
	seed   int64
	logger Logger
	grid   *world.Grid
}

// Outcome is delivered once by GenerateAsync
type Outcome struct {
	Result *Result
	Err    error
}

// New validates the config and catalog and creates a Generator.
// The catalog is copied; later changes to cat do not affect the Generator.
func New(cfg Config, cat *catalog.Catalog, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	owned := catalog.New(cat.Rooms...)
	g := &Generator{
		cfg:    cfg,
		cat:    owned,
		defs:   owned.ByID(),
		seed:   cfg.Seed,
		logger: log.Default(),
		grid:   world.NewGrid(cfg.Width, cfg.Height),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src, g.seed = random.New(cfg.Seed)
	}
	return g, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// Catalog returns the generator's private catalog copy
func (g *Generator) Catalog() *catalog.Catalog {
	return g.cat
}

// Seed returns the seed reported in results
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate runs attempts until one satisfies every required count
func (g *Generator) Generate() (*Result, error) {
	return g.GenerateContext(context.Background())
}

// GenerateContext is Generate with cancellation checked between attempts.
// An attempt that has started always runs to completion.
//
// On exhaustion the returned Result has Success false and Attempts equal to
// MaxAttempts, and the error matches ErrExhausted.
func (g *Generator) GenerateContext(ctx context.Context) (*Result, error) {
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return g.failure(attempt - 1), fmt.Errorf("generation stopped before attempt %d: %w", attempt, err)
		}

		if res, ok := g.attempt(); ok {
			res.Attempts = attempt
			res.Seed = g.seed
			res.Start = Point{X: g.cfg.StartX, Y: g.cfg.StartY}
			res.Target = g.cfg.TargetCells()
			g.logger.Printf("layout generated: %d rooms on %d carved cells after %d attempt(s)", len(res.Placements), res.Carved, attempt)
			return res, nil
		}
		g.logger.Printf("attempt %d/%d failed: required room counts not met", attempt, g.cfg.MaxAttempts)
	}

	err := &ExhaustedError{Attempts: g.cfg.MaxAttempts}
	g.logger.Printf("layout generation failed: %v", err)
	return g.failure(g.cfg.MaxAttempts), err
}

// GenerateAsync runs GenerateContext on its own goroutine and delivers the
// outcome on the returned channel, which is closed afterwards.
func (g *Generator) GenerateAsync(ctx context.Context) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		res, err := g.GenerateContext(ctx)
		done <- Outcome{Result: res, Err: err}
	}()
	return done
}

// attempt runs one carve → required → filler → resolve → verify pipeline on a fresh grid
func (g *Generator) attempt() (*Result, bool) {
	g.grid.Reset()

	start := g.grid.Index(g.cfg.StartX, g.cfg.StartY)
	Carve(g.grid, start, g.cfg.Fill, g.src)

	p := newPlacer(g.grid, g.cat, g.src)
	if !p.placeRequired() {
		return nil, false
	}
	p.placeFillers()

	resolveSockets(g.grid, g.defs, g.src)

	if !p.satisfied() {
		return nil, false
	}
	return snapshot(g.grid, g.cat, g.defs, p.counts), true
}

func (g *Generator) failure(attempts int) *Result {
	return &Result{
		Success:  false,
		Attempts: attempts,
		Seed:     g.seed,
		Width:    g.cfg.Width,
		Height:   g.cfg.Height,
		Start:    Point{X: g.cfg.StartX, Y: g.cfg.StartY},
		Target:   g.cfg.TargetCells(),
	}
}
