// Package catalog defines the room definitions the generator places:
// footprint, exact-count requirements, filler weighting and per-side socket support.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gallerymaze/pkg/engine/world"
)

// RoomID identifies a room definition within a catalog
type RoomID string

// MinWeight is the smallest effective filler weight. Lower weights are raised to it.
const MinWeight = 0.0001

// Kind is the gameplay designation of a room
type Kind int

const (
	Normal Kind = iota // Regular exhibit space
	Aggro              // Rooms where hostile actors are seeded
	Safe               // Spawn points and refuges
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Aggro:
		return "aggro"
	case Safe:
		return "safe"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	if k < Normal || k > Safe {
		return nil, fmt.Errorf("invalid room kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; the empty string means Normal
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "normal":
		*k = Normal
	case "aggro":
		*k = Aggro
	case "safe":
		*k = Safe
	default:
		return fmt.Errorf("unknown room kind %q", string(text))
	}
	return nil
}

// SocketCounts holds the number of door variants available on each side,
// indexed by world.Direction. Zero means the side cannot open at all.
type SocketCounts [world.DirectionCount]int

// Uniform returns socket counts with n variants on every side
func Uniform(n int) SocketCounts {
	return SocketCounts{n, n, n, n}
}

type socketCountsJSON struct {
	North int `json:"north"`
	South int `json:"south"`
	East  int `json:"east"`
	West  int `json:"west"`
}

// MarshalJSON encodes the counts as a {"north","south","east","west"} object
func (s SocketCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(socketCountsJSON{
		North: s[world.North],
		South: s[world.South],
		East:  s[world.East],
		West:  s[world.West],
	})
}

// UnmarshalJSON decodes a {"north","south","east","west"} object
func (s *SocketCounts) UnmarshalJSON(data []byte) error {
	var raw socketCountsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s[world.North] = raw.North
	s[world.South] = raw.South
	s[world.East] = raw.East
	s[world.West] = raw.West
	return nil
}

// RoomDefinition is one catalog entry.
type RoomDefinition struct {
	ID        RoomID       `json:"id"`
	Footprint world.Size   `json:"footprint"`
	Sockets   SocketCounts `json:"sockets"`
	Kind      Kind         `json:"kind"`

	// RequiredCount is the exact number of placements a successful layout
	// must contain. Zero means no requirement.
	RequiredCount int `json:"required_count"`

	// AllowAsFiller lets the room fill leftover carved cells, chosen in
	// proportion to Weight.
	AllowAsFiller bool    `json:"allow_as_filler"`
	Weight        float64 `json:"weight"`
}

// Size returns the normalised footprint
func (d *RoomDefinition) Size() world.Size {
	return d.Footprint.Normalize()
}

// EffectiveWeight returns the filler weight clamped to MinWeight
func (d *RoomDefinition) EffectiveWeight() float64 {
	if d.Weight < MinWeight {
		return MinWeight
	}
	return d.Weight
}

// Supports returns true if the room has at least one socket on the given side
func (d *RoomDefinition) Supports(dir world.Direction) bool {
	return dir.IsValid() && d.Sockets[dir] > 0
}

// SocketCount returns the number of door variants on the given side
func (d *RoomDefinition) SocketCount(dir world.Direction) int {
	if !dir.IsValid() {
		return 0
	}
	return d.Sockets[dir]
}

// IsRequired returns true if the room has an exact placement requirement
func (d *RoomDefinition) IsRequired() bool {
	return d.RequiredCount > 0
}
