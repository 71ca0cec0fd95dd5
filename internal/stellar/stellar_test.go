package stellar

import (
	"math"
	"testing"
)

func TestDecodeDefaultSubclass(t *testing.T) {
	p := Decode(SpectralG, -1, LumV)
	want := Decode(SpectralG, 5, LumV)
	if p != want {
		t.Errorf("Decode with subclass -1 = %+v, want default-subclass result %+v", p, want)
	}
}

func TestDecodeOSubclassDefault(t *testing.T) {
	p := Decode(SpectralO, -1, LumV)
	want := Decode(SpectralO, 9, LumV)
	if p != want {
		t.Errorf("Decode(O, -1) = %+v, want subclass-9 default %+v", p, want)
	}
}

func TestDecodeUnknownClassZeroValue(t *testing.T) {
	p := Decode(SpectralUnknown, 5, LumV)
	if p != (SpectralParams{}) {
		t.Errorf("Decode(Unknown) = %+v, want zero value", p)
	}
}

func TestBolometricCorrectionForTemperatureSunlike(t *testing.T) {
	bc := BolometricCorrectionForTemperature(5778)
	if bc > 0.2 || bc < -0.5 {
		t.Errorf("BC for solar temperature = %f, want roughly near 0", bc)
	}
}

func TestAbsToAppMagRoundTrip(t *testing.T) {
	absMag := float32(4.83)
	distanceLy := float32(10.0)

	appMag := AbsToAppMag(absMag, distanceLy)
	back := AppToAbsMag(appMag, distanceLy)

	if math.Abs(float64(back-absMag)) > 1e-3 {
		t.Errorf("round trip = %f, want %f", back, absMag)
	}
}

func TestAbsToAppMagZeroDistance(t *testing.T) {
	if got := AbsToAppMag(1.0, 0); got != 1.0 {
		t.Errorf("AbsToAppMag with zero distance = %f, want unchanged absMag", got)
	}
}

func TestStarDecayHalvesLuminosityReach(t *testing.T) {
	absMag := float32(0.0)
	decayed := StarDecay(absMag)
	if decayed <= absMag {
		t.Errorf("StarDecay(%f) = %f, want dimmer (larger) threshold", absMag, decayed)
	}
}

func TestDSODecayAddsHalfMagnitude(t *testing.T) {
	got := DSODecay(10.0)
	if got != 10.5 {
		t.Errorf("DSODecay(10.0) = %f, want 10.5", got)
	}
}

func TestDeepSkyObjectHasMagnitude(t *testing.T) {
	d := DeepSkyObject{AbsMag: UnknownAbsMag}
	if d.HasMagnitude() {
		t.Error("expected HasMagnitude false for sentinel")
	}
	d.AbsMag = -5.0
	if !d.HasMagnitude() {
		t.Error("expected HasMagnitude true for real magnitude")
	}
}

func TestRegistryNormalStarDetailsSharedUntilCustomized(t *testing.T) {
	reg := NewRegistry()
	a := reg.NormalStarDetails(SpectralG, 2, LumV)
	b := reg.NormalStarDetails(SpectralG, 2, LumV)

	if a != b {
		t.Fatal("expected the same shared instance for identical classification")
	}
	if !a.Shared() {
		t.Fatal("expected freshly constructed details to be shared")
	}

	c := Customize(a)
	c.SetRadius(2.5)

	if c.Details() == a {
		t.Fatal("expected customization to clone before mutating")
	}
	if a.Radius == 2.5 {
		t.Fatal("shared instance was mutated in place")
	}
	if c.Details().Shared() {
		t.Fatal("cloned details should no longer be shared")
	}
}

func TestRegistryWellKnownSpecials(t *testing.T) {
	reg := NewRegistry()

	bh := reg.BlackHoleDetails()
	if bh.Visible {
		t.Error("black hole should be invisible")
	}
	if reg.BlackHoleDetails() != bh {
		t.Error("expected a single shared black hole instance")
	}

	bary := reg.BarycenterDetails()
	if bary.Visible {
		t.Error("barycenter should be invisible")
	}
	if bary.Radius <= 0 {
		t.Error("barycenter should have a nominal nonzero radius")
	}

	ns := reg.NeutronStarDetails()
	if !ns.Visible {
		t.Error("neutron star should be visible")
	}
}

func TestStarApparentMagnitudeIncludesExtinction(t *testing.T) {
	s := Star{AbsMag: 0, Extinction: 0.5}
	withExt := s.ApparentMagnitude(10)

	s2 := Star{AbsMag: 0, Extinction: 0}
	withoutExt := s2.ApparentMagnitude(10)

	if withExt-withoutExt != 0.5 {
		t.Errorf("extinction delta = %f, want 0.5", withExt-withoutExt)
	}
}
