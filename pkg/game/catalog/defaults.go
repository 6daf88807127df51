package catalog

import "gallerymaze/pkg/engine/world"

// Default returns the built-in gallery catalog used when no catalog file is given
func Default() *Catalog {
	return New(
		RoomDefinition{
			ID:            "entrance_hall",
			Footprint:     world.UnitSize,
			Sockets:       Uniform(2),
			Kind:          Safe,
			RequiredCount: 1,
		},
		RoomDefinition{
			ID:            "exit_lift",
			Footprint:     world.UnitSize,
			Sockets:       Uniform(1),
			Kind:          Safe,
			RequiredCount: 1,
		},
		RoomDefinition{
			ID:            "guard_post",
			Footprint:     world.UnitSize,
			Sockets:       Uniform(1),
			Kind:          Aggro,
			RequiredCount: 2,
		},
		RoomDefinition{
			ID:            "exhibit_room",
			Footprint:     world.UnitSize,
			Sockets:       Uniform(3),
			AllowAsFiller: true,
			Weight:        3,
		},
		RoomDefinition{
			ID:            "long_gallery",
			Footprint:     world.Size{W: 2, H: 1},
			Sockets:       SocketCounts{1, 1, 0, 2},
			AllowAsFiller: true,
			Weight:        1,
		},
		RoomDefinition{
			ID:            "sculpture_court",
			Footprint:     world.Size{W: 2, H: 2},
			Sockets:       SocketCounts{2, 0, 0, 2},
			AllowAsFiller: true,
			Weight:        0.5,
		},
		RoomDefinition{
			ID:            "storage",
			Footprint:     world.UnitSize,
			Sockets:       Uniform(1),
			Kind:          Aggro,
			AllowAsFiller: true,
			Weight:        1,
		},
	)
}
