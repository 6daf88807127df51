package generator

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig is wrapped by every configuration validation failure
var ErrConfig = errors.New("invalid generator config")

// Config holds the layout parameters for a Generator
type Config struct {
	Width  int // Grid columns
	Height int // Grid rows

	// StartX, StartY is the cell the maze carving starts from
	StartX int
	StartY int

	// Fill is the fraction of grid cells to carve, in (0, 1]
	Fill float64

	// MaxAttempts bounds the number of full carve/place/resolve runs
	MaxAttempts int

	// Seed seeds the random source when none is injected; 0 seeds from the clock
	Seed int64
}

// DefaultConfig returns a 10×10 layout carved to 55% from the top-left cell
func DefaultConfig() Config {
	return Config{
		Width:       10,
		Height:      10,
		Fill:        0.55,
		MaxAttempts: 20,
	}
}

// Validate checks the config for misuse that must fail before any attempt runs
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid size %dx%d must be positive", ErrConfig, c.Width, c.Height)
	}
	if c.StartX < 0 || c.StartX >= c.Width || c.StartY < 0 || c.StartY >= c.Height {
		return fmt.Errorf("%w: start cell (%d,%d) outside %dx%d grid", ErrConfig, c.StartX, c.StartY, c.Width, c.Height)
	}
	if math.IsNaN(c.Fill) || c.Fill <= 0 || c.Fill > 1 {
		return fmt.Errorf("%w: fill %v must be in (0, 1]", ErrConfig, c.Fill)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts %d must be positive", ErrConfig, c.MaxAttempts)
	}
	return nil
}

// TargetCells returns the number of cells the carver aims for
func (c Config) TargetCells() int {
	return carveTarget(c.Width*c.Height, c.Fill)
}
