package xindex

import (
	"testing"

	"github.com/draco-astrodb/astrodb/internal/catnum"
)

func TestGetEmpty(t *testing.T) {
	x := New()
	if got := x.Get(42); got != catnum.Invalid {
		t.Fatalf("Get on empty index = %d, want Invalid", got)
	}
}

func TestInsertAndGet(t *testing.T) {
	x := New()
	if err := x.Insert(1000, 500, 100, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	tests := []struct {
		external uint32
		want     catnum.Number
	}{
		{999, catnum.Invalid},
		{1000, 1500},
		{1050, 1550},
		{1099, 1599},
		{1100, catnum.Invalid},
	}
	for _, tt := range tests {
		if got := x.Get(tt.external); got != tt.want {
			t.Errorf("Get(%d) = %d, want %d", tt.external, got, tt.want)
		}
	}
}

func TestInsertOverlapRejected(t *testing.T) {
	x := New()
	if err := x.Insert(1000, 0, 100, false); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := x.Insert(1050, 0, 100, false); err == nil {
		t.Fatal("expected overlap error without overwrite")
	}
}

func TestInsertOverwriteTruncatesFrontAndBack(t *testing.T) {
	x := New()
	if err := x.Insert(0, 0, 100, false); err != nil {
		t.Fatalf("base Insert: %v", err)
	}
	// overlapping range in the middle, overwrite true: existing [0,99]
	// should be truncated to [0,39] and a tail [70,99] re-inserted with
	// the original shift, while [40,69] takes the new mapping.
	if err := x.Insert(40, 1000, 30, true); err != nil {
		t.Fatalf("overwrite Insert: %v", err)
	}

	if got := x.Get(10); got != 10 {
		t.Errorf("Get(10) = %d, want 10 (untouched front)", got)
	}
	if got := x.Get(39); got != 39 {
		t.Errorf("Get(39) = %d, want 39", got)
	}
	if got := x.Get(40); got != 1040 {
		t.Errorf("Get(40) = %d, want 1040 (new range)", got)
	}
	if got := x.Get(69); got != 1069 {
		t.Errorf("Get(69) = %d, want 1069", got)
	}
	if got := x.Get(70); got != 70 {
		t.Errorf("Get(70) = %d, want 70 (tail re-inserted with original shift)", got)
	}
	if got := x.Get(99); got != 99 {
		t.Errorf("Get(99) = %d, want 99", got)
	}
}

func TestInsertOverwriteSwallowsWhollyContainedRange(t *testing.T) {
	x := New()
	if err := x.Insert(10, 0, 5, false); err != nil { // [10,14]
		t.Fatalf("Insert: %v", err)
	}
	if err := x.Insert(0, 100, 100, true); err != nil { // [0,99] swallows it
		t.Fatalf("Insert: %v", err)
	}
	if got := x.Get(12); got != 112 {
		t.Errorf("Get(12) = %d, want 112", got)
	}
	if x.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (contained range erased)", x.Len())
	}
}

func TestGetReverse(t *testing.T) {
	x := New()
	if err := x.Insert(1000, 500, 100, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok := x.GetReverse(1550)
	if !ok || got != 1050 {
		t.Fatalf("GetReverse(1550) = %d, %v, want 1050, true", got, ok)
	}

	if _, ok := x.GetReverse(9999); ok {
		t.Fatal("expected miss for unmapped internal number")
	}
}

func TestInsertZeroLengthNoop(t *testing.T) {
	x := New()
	if err := x.Insert(10, 5, 0, false); err != nil {
		t.Fatalf("Insert zero-length: %v", err)
	}
	if x.Len() != 0 {
		t.Errorf("Len() = %d, want 0", x.Len())
	}
}
