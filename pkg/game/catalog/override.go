package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Override replaces the required count of one room
type Override struct {
	ID    RoomID
	Count int
}

// ParseOverride parses "id=N"
func ParseOverride(s string) (Override, error) {
	id, n, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return Override{}, fmt.Errorf("%w: want id=N, got %q", ErrInvalid, s)
	}
	count, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil || count < 0 {
		return Override{}, fmt.Errorf("%w: count for %q must be a non-negative integer", ErrInvalid, id)
	}
	return Override{ID: RoomID(id), Count: count}, nil
}

// Apply sets the required counts in order, stopping at the first unknown room
func (c *Catalog) Apply(overrides ...Override) error {
	for _, o := range overrides {
		if err := c.SetRequired(o.ID, o.Count); err != nil {
			return err
		}
	}
	return nil
}
