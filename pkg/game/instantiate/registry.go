package instantiate

import (
	"fmt"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

// SideState is the door configuration of one side of a room instance.
// Open lists one flag per socket variant; at most one is true.
type SideState struct {
	Open []bool `json:"open"`
}

// OpenIndex returns the open socket, or -1 if the side is closed
func (s SideState) OpenIndex() int {
	for i, open := range s.Open {
		if open {
			return i
		}
	}
	return -1
}

// RoomInstance is an in-memory room presence
type RoomInstance struct {
	InstanceName string                          `json:"name"`
	Room         catalog.RoomID                  `json:"room"`
	Kind         catalog.Kind                    `json:"kind"`
	Position     Vec3                            `json:"position"`
	Footprint    world.Size                      `json:"footprint"`
	Sides        [world.DirectionCount]SideState `json:"sides"`
}

// Name returns the instance name
func (r *RoomInstance) Name() string {
	return r.InstanceName
}

// ApplyOpenings opens exactly one socket on every open side, clamping the
// index into range, and closes every socket on the other sides.
func (r *RoomInstance) ApplyOpenings(open [world.DirectionCount]bool, sockets [world.DirectionCount]int) {
	for _, dir := range world.AllDirections() {
		side := &r.Sides[dir]
		for i := range side.Open {
			side.Open[i] = false
		}
		if !open[dir] || len(side.Open) == 0 {
			continue
		}
		idx := sockets[dir]
		if idx < 0 {
			idx = 0
		}
		if idx > len(side.Open)-1 {
			idx = len(side.Open) - 1
		}
		side.Open[idx] = true
	}
}

// Registry spawns RoomInstances sized from a catalog and remembers them
type Registry struct {
	defs      map[catalog.RoomID]*catalog.RoomDefinition
	instances []*RoomInstance
}

// NewRegistry creates a registry for the rooms of cat
func NewRegistry(cat *catalog.Catalog) *Registry {
	return &Registry{defs: cat.ByID()}
}

// Spawn creates a RoomInstance with one socket slot per variant on each side
func (r *Registry) Spawn(p generator.Placement, pos Vec3) (Instance, error) {
	def, ok := r.defs[p.Room]
	if !ok {
		return nil, fmt.Errorf("%w %q", catalog.ErrUnknownRoom, p.Room)
	}

	inst := &RoomInstance{
		InstanceName: InstanceName(p),
		Room:         p.Room,
		Kind:         def.Kind,
		Position:     pos,
		Footprint:    def.Size(),
	}
	for _, dir := range world.AllDirections() {
		inst.Sides[dir].Open = make([]bool, def.SocketCount(dir))
	}
	r.instances = append(r.instances, inst)
	return inst, nil
}

// Instances returns every room spawned so far, in spawn order
func (r *Registry) Instances() []*RoomInstance {
	return r.instances
}

// Clear forgets every spawned room
func (r *Registry) Clear() {
	r.instances = nil
}
