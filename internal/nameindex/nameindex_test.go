package nameindex

import (
	"reflect"
	"sort"
	"testing"

	"github.com/draco-astrodb/astrodb/internal/catnum"
)

func TestAddAndFindNumberByName(t *testing.T) {
	d := New()
	d.Add(71683, "Rigil Kentaurus", "")
	d.Add(71683, "Alpha Centauri", "")

	n, ok := d.FindNumberByName("Rigil Kentaurus", false)
	if !ok || n != 71683 {
		t.Fatalf("FindNumberByName(Rigil Kentaurus) = %d, %v", n, ok)
	}

	n, ok = d.FindNumberByName("rigil kentaurus", false)
	if !ok || n != 71683 {
		t.Fatalf("case-insensitive lookup failed: %d, %v", n, ok)
	}
}

func TestFindNumberByNameGreekFallback(t *testing.T) {
	d := New()
	d.Add(91262, "ALF Lyr", "")

	n, ok := d.FindNumberByName("Alpha Lyr", false)
	if !ok || n != 91262 {
		t.Fatalf("Greek-normalized lookup failed: %d, %v", n, ok)
	}

	if _, ok := d.FindNumberByName("Nonexistent Star", false); ok {
		t.Fatal("expected lookup miss for unrecognized name")
	}
}

func TestFindNumberByNameLocalized(t *testing.T) {
	d := New()
	d.Add(677, "Alpheratz", "Sirrah")

	if _, ok := d.FindNumberByName("Sirrah", false); ok {
		t.Fatal("localized name should not resolve when i18n is false")
	}
	n, ok := d.FindNumberByName("Sirrah", true)
	if !ok || n != 677 {
		t.Fatalf("localized lookup failed: %d, %v", n, ok)
	}
}

func TestFirstNameOfPreservesInsertionOrder(t *testing.T) {
	d := New()
	d.Add(32349, "Sirius", "")
	d.Add(32349, "Alpha Canis Majoris", "")

	first, ok := d.FirstNameOf(32349)
	if !ok || first != "Sirius" {
		t.Fatalf("FirstNameOf = %q, %v, want \"Sirius\"", first, ok)
	}

	names := d.NamesOf(32349)
	want := []string{"Sirius", "Alpha Canis Majoris"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("NamesOf = %v, want %v", names, want)
	}
}

func TestFirstNameOfEmpty(t *testing.T) {
	d := New()
	if _, ok := d.FirstNameOf(42); ok {
		t.Fatal("expected no name for unknown catalog number")
	}
}

func TestErase(t *testing.T) {
	d := New()
	d.Add(1, "Polaris", "")
	d.Erase(1)

	if _, ok := d.FindNumberByName("Polaris", false); ok {
		t.Fatal("expected Polaris to be removed")
	}
	if names := d.NamesOf(1); len(names) != 0 {
		t.Fatalf("NamesOf after erase = %v, want empty", names)
	}
}

func TestCompletion(t *testing.T) {
	d := New()
	d.Add(1, "Vega", "")
	d.Add(2, "Vela", "")
	d.Add(3, "Deneb", "")

	got := d.Completion("Ve", false)
	sort.Strings(got)
	want := []string{"Vega", "Vela"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Completion(Ve) = %v, want %v", got, want)
	}
}

func TestCompletionCaseInsensitive(t *testing.T) {
	d := New()
	d.Add(1, "Betelgeuse", "")

	got := d.Completion("bet", false)
	if len(got) != 1 || got[0] != "Betelgeuse" {
		t.Fatalf("Completion(bet) = %v", got)
	}
}

func TestCompletionLocalized(t *testing.T) {
	d := New()
	d.Add(1, "Alpheratz", "Sirrah")

	if got := d.Completion("Sir", false); len(got) != 0 {
		t.Fatalf("Completion(Sir) without i18n = %v, want empty", got)
	}
	got := d.Completion("Sir", true)
	if len(got) != 1 || got[0] != "Sirrah" {
		t.Fatalf("Completion(Sir, i18n) = %v", got)
	}
}

func TestNormalizeGreek(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Alpha Centauri", "ALF Centauri"},
		{"alpha Centauri", "ALF Centauri"},
		{"Omega", "OME"},
		{"ALF Cen", "ALF Cen"},
		{"Not A Greek Letter", "Not A Greek Letter"},
	}
	for _, tt := range tests {
		if got := NormalizeGreek(tt.in); got != tt.want {
			t.Errorf("NormalizeGreek(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalAbbreviation(t *testing.T) {
	abbrev, ok := CanonicalAbbreviation("Beta")
	if !ok || abbrev != "BET" {
		t.Fatalf("CanonicalAbbreviation(Beta) = %q, %v", abbrev, ok)
	}
	if _, ok := CanonicalAbbreviation("Zzz"); ok {
		t.Fatal("expected false for unrecognized letter")
	}
}

func TestInvalidNumberUnaffected(t *testing.T) {
	d := New()
	if _, ok := d.FindNumberByName("Anything", false); ok {
		t.Fatal("expected miss on empty directory")
	}
	_ = catnum.Invalid
}
