package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrEmpty is returned when a catalog has no room definitions
	ErrEmpty = errors.New("catalog has no room definitions")
	// ErrInvalid is wrapped by every definition-level validation failure
	ErrInvalid = errors.New("invalid room definition")
	// ErrUnknownRoom is returned by Lookup for ids not in the catalog
	ErrUnknownRoom = errors.New("unknown room")
)

// Catalog is the ordered list of room definitions available to the generator.
// Required rooms are placed in catalog order.
type Catalog struct {
	Rooms []RoomDefinition `json:"rooms"`
}

// New creates a catalog from the given definitions
func New(defs ...RoomDefinition) *Catalog {
	return &Catalog{Rooms: append([]RoomDefinition(nil), defs...)}
}

// Load reads and validates a JSON catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a JSON catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Rooms)
}

// Validate checks the catalog for configuration mistakes that must fail
// before any generation attempt runs.
func (c *Catalog) Validate() error {
	if c.Len() == 0 {
		return ErrEmpty
	}

	seen := make(map[RoomID]bool, len(c.Rooms))
	for i := range c.Rooms {
		d := &c.Rooms[i]
		if strings.TrimSpace(string(d.ID)) == "" {
			return fmt.Errorf("%w: entry %d has an empty id", ErrInvalid, i)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalid, d.ID)
		}
		seen[d.ID] = true

		if d.RequiredCount < 0 {
			return fmt.Errorf("%w: %q has negative required_count %d", ErrInvalid, d.ID, d.RequiredCount)
		}
		if math.IsNaN(d.Weight) || math.IsInf(d.Weight, 0) || d.Weight < 0 {
			return fmt.Errorf("%w: %q has weight %v, want a finite value >= 0", ErrInvalid, d.ID, d.Weight)
		}
		for dir, n := range d.Sockets {
			if n < 0 {
				return fmt.Errorf("%w: %q has %d sockets on side %d", ErrInvalid, d.ID, n, dir)
			}
		}
	}
	return nil
}

// Lookup returns the definition with the given id. Unknown ids produce an
// error naming the closest known id, if one is near enough.
func (c *Catalog) Lookup(id RoomID) (*RoomDefinition, error) {
	for i := range c.Rooms {
		if c.Rooms[i].ID == id {
			return &c.Rooms[i], nil
		}
	}
	if suggestion := c.suggest(id); suggestion != "" {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownRoom, id, suggestion)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownRoom, id)
}

// ByID returns the definitions keyed by id
func (c *Catalog) ByID() map[RoomID]*RoomDefinition {
	defs := make(map[RoomID]*RoomDefinition, c.Len())
	for i := range c.Rooms {
		defs[c.Rooms[i].ID] = &c.Rooms[i]
	}
	return defs
}

// IndexOf returns the position of the definition with the given id, or -1
func (c *Catalog) IndexOf(id RoomID) int {
	for i := range c.Rooms {
		if c.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// SetRequired overrides the exact required count of a room
func (c *Catalog) SetRequired(id RoomID, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: required count for %q must not be negative", ErrInvalid, id)
	}
	d, err := c.Lookup(id)
	if err != nil {
		return err
	}
	d.RequiredCount = count
	return nil
}

// RequiredTotal returns the number of placements demanded by all requirements
func (c *Catalog) RequiredTotal() int {
	total := 0
	for i := range c.Rooms {
		total += c.Rooms[i].RequiredCount
	}
	return total
}

// IDs returns the sorted room ids
func (c *Catalog) IDs() []RoomID {
	ids := make([]RoomID, 0, len(c.Rooms))
	for i := range c.Rooms {
		ids = append(ids, c.Rooms[i].ID)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

func (c *Catalog) suggest(id RoomID) RoomID {
	in := strings.ToLower(string(id))
	best := RoomID("")
	bestDist := -1
	for i := range c.Rooms {
		cand := strings.ToLower(string(c.Rooms[i].ID))
		dist := levenshtein.ComputeDistance(in, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c.Rooms[i].ID, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
