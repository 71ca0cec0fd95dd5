package catnum

import "testing"

func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"HIP min", "HIP 0"},
		{"HIP typical", "HIP 71683"},
		{"HIP max", "HIP 999999"},
		{"HIP lowercase prefix", "hip 42"},
		{"HIP extra whitespace", "HIP   42"},
		{"HIP no whitespace", "HIP71683"},
		{"TYC basic", "TYC 1-2-3"},
		{"TYC max components", "TYC 9999-99999-3"},
		{"TYC no whitespace", "TYC1-2-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if n == Invalid {
				t.Fatalf("Parse(%q) returned Invalid", tt.in)
			}

			formatted := Format(n)
			n2, err := Parse(formatted)
			if err != nil {
				t.Fatalf("Parse(Format(n)) = %v, want nil (formatted %q)", err, formatted)
			}
			if n2 != n {
				t.Errorf("round trip mismatch: %d -> %q -> %d", n, formatted, n2)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"HIP",
		"HIP abc",
		"HIP 1000000",  // out of HIP range
		"HIP -1",
		"TYC 1-2",      // missing component
		"TYC 1-2-3-4",  // extra component
		"TYC 10000-2-3", // a out of range
		"TYC 1-100000-3", // b out of range
		"TYC a-b-c",
		"XYZ 123",
		"HIP 42 extra garbage",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			if _, err := Parse(s); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", s)
			}
		})
	}
}

func TestTYCEncodingFormula(t *testing.T) {
	n, err := ParseTYC(5, 7, 2)
	if err != nil {
		t.Fatalf("ParseTYC: %v", err)
	}
	want := Number(2*tycC + 7*tycB + 5*tycA)
	if n != want {
		t.Errorf("ParseTYC(5,7,2) = %d, want %d", n, want)
	}

	a, b, c := DecodeTYC(n)
	if a != 5 || b != 7 || c != 2 {
		t.Errorf("DecodeTYC(%d) = (%d,%d,%d), want (5,7,2)", n, a, b, c)
	}
}

func TestInvalidSentinel(t *testing.T) {
	if Format(Invalid) != "(invalid)" {
		t.Errorf("Format(Invalid) = %q, want \"(invalid)\"", Format(Invalid))
	}
}

func TestIsAutoAssigned(t *testing.T) {
	if IsAutoAssigned(42) {
		t.Error("HIP-range number should not be auto-assigned")
	}
	if !IsAutoAssigned(Watermark) {
		t.Error("Watermark should be considered auto-assigned")
	}
	if IsAutoAssigned(Invalid) {
		t.Error("Invalid sentinel should not be considered auto-assigned")
	}
}
