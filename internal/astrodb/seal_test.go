package astrodb

import (
	"context"
	"testing"

	"github.com/draco-astrodb/astrodb/internal/astrodb/mockeventbus"
	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"go.uber.org/mock/gomock"
)

func TestSealPublishesCatalogSealed(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := mockeventbus.NewMockEventBus(ctrl)

	bus.EXPECT().
		Publish(gomock.Any(), "catalog.sealed", gomock.Any()).
		Return(nil).
		Times(1)

	b := NewBuilder(bus)
	if _, err := b.LoadStarsBinary([]catfmt.BinaryStarRecord{
		{CatalogNumber: 1, X: 0, Y: 0, Z: 0, AbsMagQ8: 0, SpectralCode: catfmt.PackSpectralCode(0, 6, 2, 6)},
	}); err != nil {
		t.Fatalf("LoadStarsBinary() error = %v", err)
	}

	if _, err := b.Seal(context.Background()); err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
}

func TestSealWithNilBusSucceeds(t *testing.T) {
	b := NewBuilder(nil)
	if _, err := b.LoadStarsBinary([]catfmt.BinaryStarRecord{
		{CatalogNumber: 1, X: 0, Y: 0, Z: 0, AbsMagQ8: 0, SpectralCode: catfmt.PackSpectralCode(0, 6, 2, 6)},
	}); err != nil {
		t.Fatalf("LoadStarsBinary() error = %v", err)
	}

	if _, err := b.Seal(context.Background()); err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
}

func TestSealTwiceFails(t *testing.T) {
	b := NewBuilder(nil)
	if _, err := b.Seal(context.Background()); err != nil {
		t.Fatalf("first Seal() error = %v", err)
	}
	if _, err := b.Seal(context.Background()); err != ErrAlreadySealed {
		t.Fatalf("second Seal() error = %v, want ErrAlreadySealed", err)
	}
}
