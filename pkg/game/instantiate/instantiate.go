// Package instantiate turns a generated layout into room instances placed in
// world space, and configures each instance's door openings.
package instantiate

import (
	"fmt"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/generator"
)

// Spacing is the world-space size of one grid cell
type Spacing struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// DefaultSpacing is the 12×12 cell size used by the gallery room prefabs
var DefaultSpacing = Spacing{X: 12, Z: 12}

// Vec3 is a world-space position. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// WorldPosition converts a grid coordinate to world space.
// Grid rows grow southwards, which is the negative Z axis.
func (s Spacing) WorldPosition(x, y int) Vec3 {
	return Vec3{X: float64(x) * s.X, Y: 0, Z: -float64(y) * s.Z}
}

// Instance is a spawned room whose door meshes can be configured
type Instance interface {
	Name() string
	ApplyOpenings(open [world.DirectionCount]bool, sockets [world.DirectionCount]int)
}

// Spawner creates a room instance for one placement at the given world position
type Spawner interface {
	Spawn(p generator.Placement, pos Vec3) (Instance, error)
}

// InstanceName returns the conventional name for a room placed at x, y
func InstanceName(p generator.Placement) string {
	return fmt.Sprintf("%s %d-%d", p.Room, p.X, p.Y)
}

// Build spawns every placement of a successful result and applies its openings.
// Nothing is spawned for a failed result.
func Build(res *generator.Result, spawner Spawner, spacing Spacing) ([]Instance, error) {
	if res == nil || !res.Success {
		return nil, fmt.Errorf("cannot instantiate an unsuccessful layout")
	}

	instances := make([]Instance, 0, len(res.Placements))
	for _, p := range res.Placements {
		inst, err := spawner.Spawn(p, spacing.WorldPosition(p.X, p.Y))
		if err != nil {
			return instances, fmt.Errorf("spawn %s: %w", InstanceName(p), err)
		}
		inst.ApplyOpenings(p.Openings, p.Sockets)
		instances = append(instances, inst)
	}
	return instances, nil
}
