package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gallerymaze/pkg/engine/world"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.RequiredTotal() == 0 {
		t.Error("default catalog should carry at least one required room")
	}
	fillers := 0
	for i := range c.Rooms {
		if c.Rooms[i].AllowAsFiller {
			fillers++
		}
	}
	if fillers == 0 {
		t.Error("default catalog has no filler rooms")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
		want    error
	}{
		{"nil catalog", nil, ErrEmpty},
		{"empty catalog", New(), ErrEmpty},
		{"empty id", New(RoomDefinition{ID: " "}), ErrInvalid},
		{"duplicate id", New(RoomDefinition{ID: "a"}, RoomDefinition{ID: "a"}), ErrInvalid},
		{"negative required", New(RoomDefinition{ID: "a", RequiredCount: -1}), ErrInvalid},
		{"negative weight", New(RoomDefinition{ID: "a", Weight: -1}), ErrInvalid},
		{"negative sockets", New(RoomDefinition{ID: "a", Sockets: SocketCounts{0, -1, 0, 0}}), ErrInvalid},
		{"valid", New(RoomDefinition{ID: "a", Weight: 0}, RoomDefinition{ID: "b", RequiredCount: 3}), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEffectiveWeight_ClampsToMinimum(t *testing.T) {
	d := RoomDefinition{ID: "a"}
	if got := d.EffectiveWeight(); got != MinWeight {
		t.Errorf("EffectiveWeight() = %v, want %v", got, MinWeight)
	}
	d.Weight = 2.5
	if got := d.EffectiveWeight(); got != 2.5 {
		t.Errorf("EffectiveWeight() = %v, want 2.5", got)
	}
}

func TestLookup_SuggestsClosestID(t *testing.T) {
	c := Default()
	if _, err := c.Lookup("guard_post"); err != nil {
		t.Fatalf("Lookup(guard_post) = %v", err)
	}

	_, err := c.Lookup("gaurd_post")
	if !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("Lookup(gaurd_post) error = %v, want ErrUnknownRoom", err)
	}
	if !strings.Contains(err.Error(), `"guard_post"`) {
		t.Errorf("error %q does not suggest guard_post", err)
	}

	_, err = c.Lookup("zzzzzzzzzzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Lookup of a distant id = %v, want an error without suggestion", err)
	}
}

func TestSetRequired(t *testing.T) {
	c := Default()
	if err := c.SetRequired("exhibit_room", 4); err != nil {
		t.Fatalf("SetRequired = %v", err)
	}
	d, _ := c.Lookup("exhibit_room")
	if d.RequiredCount != 4 {
		t.Errorf("RequiredCount = %d, want 4", d.RequiredCount)
	}
	if err := c.SetRequired("exhibit_room", -1); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetRequired(-1) = %v, want ErrInvalid", err)
	}
	if err := c.SetRequired("nope", 1); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("SetRequired(nope) = %v, want ErrUnknownRoom", err)
	}
}

func TestParse_RoundTripsSocketsAndKind(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal = %v", err)
	}
	if !strings.Contains(string(data), `"north":`) || !strings.Contains(string(data), `"kind":"safe"`) {
		t.Errorf("encoded catalog missing named sockets or kind: %s", data)
	}

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	d, err := c.Lookup("long_gallery")
	if err != nil {
		t.Fatal(err)
	}
	if d.Sockets[world.West] != 2 || d.Sockets[world.East] != 0 {
		t.Errorf("long_gallery sockets = %v", d.Sockets)
	}
	if d.Size() != (world.Size{W: 2, H: 1}) {
		t.Errorf("long_gallery size = %v", d.Size())
	}
}

func TestParse_RejectsUnknownFieldsAndKinds(t *testing.T) {
	if _, err := Parse([]byte(`{"rooms":[{"id":"a","colour":"red"}]}`)); err == nil {
		t.Error("Parse accepted an unknown field")
	}
	if _, err := Parse([]byte(`{"rooms":[{"id":"a","kind":"boss"}]}`)); err == nil {
		t.Error("Parse accepted an unknown kind")
	}
	if _, err := Parse([]byte(`{"rooms":[]}`)); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(empty) = %v, want ErrEmpty", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	body := `{"rooms":[{"id":"hall","footprint":{"w":1,"h":1},"sockets":{"north":1,"south":1,"east":1,"west":1},"required_count":2}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if c.Len() != 1 || c.Rooms[0].RequiredCount != 2 {
		t.Errorf("Load = %+v", c.Rooms)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) = nil error")
	}
}
