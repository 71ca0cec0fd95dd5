package bookmarks

import (
	"context"
	"errors"
	"testing"

	"github.com/draco-astrodb/astrodb/internal/geom"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	obs := Observer{
		Position:    geom.Vec3f{X: 1, Y: 2, Z: 3},
		Orientation: geom.Identity(),
		FOVY:        0.8,
		Aspect:      1.77,
		LimitMag:    8,
	}
	if err := store.Set(ctx, "home", obs); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, "home")
	if err != nil {
		t.Fatalf("Get(home) error = %v", err)
	}
	if got != obs {
		t.Errorf("Get(home) = %+v, want %+v", got, obs)
	}

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "home" {
		t.Errorf("List() = %v, want [home]", names)
	}

	if err := store.Delete(ctx, "home"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "home"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(home) after Delete error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewInMemoryStore()
	if err := store.Set(ctx, "x", Observer{}); err == nil {
		t.Error("Set() with cancelled context: want error, got nil")
	}
	if _, err := store.Get(ctx, "x"); err == nil {
		t.Error("Get() with cancelled context: want error, got nil")
	}
}
