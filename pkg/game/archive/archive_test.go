package archive

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gallerymaze/pkg/engine/world"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/generator"
)

type discard struct{}

func (discard) Printf(string, ...any) {}

func openTemp(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "layouts.db"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func generate(t *testing.T, seed int64) *generator.Result {
	t.Helper()
	cat := catalog.New(
		catalog.RoomDefinition{ID: "vault", Footprint: world.UnitSize, Sockets: catalog.Uniform(3), Kind: catalog.Aggro, RequiredCount: 2},
		catalog.RoomDefinition{ID: "hall", Footprint: world.UnitSize, Sockets: catalog.Uniform(2), AllowAsFiller: true, Weight: 1},
	)
	cfg := generator.Config{Width: 4, Height: 4, Fill: 0.6, MaxAttempts: 5, Seed: seed}
	g, err := generator.New(cfg, cat, generator.WithLogger(discard{}))
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestArchive_SaveLoad(t *testing.T) {
	a := openTemp(t)
	res := generate(t, 42)

	if err := a.Save(res); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := a.Load(42)
	if err != nil {
		t.Fatalf("Load(42) = %v", err)
	}
	if !reflect.DeepEqual(got, res) {
		t.Errorf("Load(42) = %+v, want %+v", got, res)
	}
}

func TestArchive_LoadMissing(t *testing.T) {
	a := openTemp(t)
	_, err := a.Load(7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(7) error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "archived: none") {
		t.Errorf("Load(7) error = %q, want it to say nothing is archived", err)
	}

	for _, seed := range []int64{12, 4} {
		if err := a.Save(generate(t, seed)); err != nil {
			t.Fatal(err)
		}
	}
	_, err = a.Load(7)
	if !errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), "(archived: 4, 12)") {
		t.Errorf("Load(7) error = %v, want the archived seeds listed", err)
	}
}

func TestArchive_RejectsUnseededLayouts(t *testing.T) {
	a := openTemp(t)
	for _, seed := range []int64{0, -3} {
		res := generate(t, 9)
		res.Seed = seed
		if err := a.Save(res); !errors.Is(err, ErrUnseeded) {
			t.Errorf("Save(seed %d) error = %v, want ErrUnseeded", seed, err)
		}
	}
	if seeds, err := a.Seeds(); err != nil || len(seeds) != 0 {
		t.Errorf("Seeds() = %v, %v; want nothing stored", seeds, err)
	}
}

func TestArchive_RejectsFailedLayouts(t *testing.T) {
	a := openTemp(t)
	for _, res := range []*generator.Result{nil, {Attempts: 3, Seed: 1}} {
		if err := a.Save(res); !errors.Is(err, ErrFailedLayout) {
			t.Errorf("Save(%v) error = %v, want ErrFailedLayout", res, err)
		}
	}
}

func TestArchive_SeedsInOrder(t *testing.T) {
	a := openTemp(t)
	for _, seed := range []int64{30, 5, 12} {
		if err := a.Save(generate(t, seed)); err != nil {
			t.Fatal(err)
		}
	}
	// saving the same seed again replaces the entry
	if err := a.Save(generate(t, 5)); err != nil {
		t.Fatal(err)
	}

	seeds, err := a.Seeds()
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{5, 12, 30}; !reflect.DeepEqual(seeds, want) {
		t.Errorf("Seeds() = %v, want %v", seeds, want)
	}
}

func TestArchive_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")
	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Save(generate(t, 3)); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if _, err := b.Load(3); err != nil {
		t.Errorf("Load(3) after reopen = %v", err)
	}
}
