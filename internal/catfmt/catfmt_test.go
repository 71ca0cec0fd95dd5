package catfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCELSTARSRoundTrip(t *testing.T) {
	records := []BinaryStarRecord{
		{CatalogNumber: 1, X: 1.5, Y: -2.25, Z: 0, AbsMagQ8: int16(483 * 256 / 100), SpectralCode: PackSpectralCode(0, 6, 2, 6)},
		{CatalogNumber: 2, X: 10, Y: 0, Z: 0, AbsMagQ8: -100, SpectralCode: PackSpectralCode(0, 1, 0, 6)},
	}

	var buf bytes.Buffer
	if err := WriteCELSTARS(&buf, records); err != nil {
		t.Fatalf("WriteCELSTARS: %v", err)
	}

	got, err := ReadCELSTARS(&buf)
	if err != nil {
		t.Fatalf("ReadCELSTARS: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i, rec := range got {
		if rec != records[i] {
			t.Fatalf("record %d = %+v, want %+v", i, rec, records[i])
		}
	}
}

func TestCELSTARSBadHeader(t *testing.T) {
	_, err := ReadCELSTARS(strings.NewReader("NOTACELSTARSFILE"))
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestCELSTARSTruncated(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteCELSTARS(&buf, []BinaryStarRecord{{CatalogNumber: 1}})
	truncated := buf.Bytes()[:buf.Len()-4]

	_, err := ReadCELSTARS(bytes.NewReader(truncated))
	if !errors.Is(err, ErrTruncatedFile) {
		t.Fatalf("err = %v, want ErrTruncatedFile", err)
	}
}

func TestSpectralCodeRoundTrip(t *testing.T) {
	code := PackSpectralCode(1, 6, 3, 5)
	starType, class, subclass, lum := UnpackSpectralCode(code)
	if starType != 1 || class != 6 || subclass != 3 || lum != 5 {
		t.Fatalf("unpacked (%d,%d,%d,%d), want (1,6,3,5)", starType, class, subclass, lum)
	}
}

func TestCELINDEXRoundTrip(t *testing.T) {
	pairs := []CrossIndexPair{
		{External: 100, Internal: 200},
		{External: 101, Internal: 205},
	}

	var buf bytes.Buffer
	if err := WriteCELINDEX(&buf, pairs); err != nil {
		t.Fatalf("WriteCELINDEX: %v", err)
	}

	got, err := ReadCELINDEX(&buf)
	if err != nil {
		t.Fatalf("ReadCELINDEX: %v", err)
	}
	if len(got) != len(pairs) {
		t.Fatalf("got %d pairs, want %d", len(got), len(pairs))
	}
	for i, p := range got {
		if p != pairs[i] {
			t.Fatalf("pair %d = %+v, want %+v", i, p, pairs[i])
		}
	}
}

func TestCELINDEXBadHeader(t *testing.T) {
	_, err := ReadCELINDEX(strings.NewReader("GARBAGE!"))
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestReadNames(t *testing.T) {
	src := "71683 Alpha Centauri A:Rigil Kentaurus\n" +
		"# a comment\n" +
		"\n" +
		"32349 Sirius\n"

	records, err := ReadNames(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].CatalogNumber != 71683 {
		t.Fatalf("CatalogNumber = %d, want 71683", records[0].CatalogNumber)
	}
	if len(records[0].Names) != 2 || records[0].Names[0] != "Alpha Centauri A" {
		t.Fatalf("Names = %v", records[0].Names)
	}
	if records[1].Names[0] != "Sirius" {
		t.Fatalf("Names = %v", records[1].Names)
	}
}

func TestReadNamesSkipsBadLines(t *testing.T) {
	src := "notanumber Foo\n64 Bar\n"
	var skipped []int
	records, err := ReadNames(strings.NewReader(src), func(line int, err error) {
		skipped = append(skipped, line)
	})
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != 1 {
		t.Fatalf("skipped = %v, want [1]", skipped)
	}
	if len(records) != 1 || records[0].CatalogNumber != 64 {
		t.Fatalf("records = %+v", records)
	}
}

func TestParseSTCAddStar(t *testing.T) {
	src := `Add Star 71683 "Alpha Centauri A" { SpectralType "G2V" AppMag 0.01 Distance 4.3 }`
	tok := NewTokenizer(strings.NewReader(src))
	records := ParseSTC(tok, nil)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Disposition != Add || rec.IsBarycenter {
		t.Fatalf("rec = %+v", rec)
	}
	if !rec.HasNumber || rec.CatalogNumber != 71683 {
		t.Fatalf("CatalogNumber = %d HasNumber=%v", rec.CatalogNumber, rec.HasNumber)
	}
	if len(rec.Names) != 1 || rec.Names[0] != "Alpha Centauri A" {
		t.Fatalf("Names = %v", rec.Names)
	}

	spectral, ok := rec.Properties.GetString("SpectralType")
	if !ok || spectral != "G2V" {
		t.Fatalf("SpectralType = %q ok=%v", spectral, ok)
	}
	appMag, ok := rec.Properties.GetNumber("AppMag")
	if !ok || appMag != 0.01 {
		t.Fatalf("AppMag = %v ok=%v", appMag, ok)
	}
}

func TestParseSTCDefaultsDispositionAndType(t *testing.T) {
	src := `"Sirius" { Position [ 1 2 3 ] }`
	tok := NewTokenizer(strings.NewReader(src))
	records := ParseSTC(tok, nil)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Disposition != Add || rec.IsBarycenter || rec.HasNumber {
		t.Fatalf("rec = %+v", rec)
	}
	x, y, z, ok := rec.Properties.GetVector3("Position")
	if !ok || x != 1 || y != 2 || z != 3 {
		t.Fatalf("Position = (%v,%v,%v) ok=%v", x, y, z, ok)
	}
}

func TestParseSTCModifyWithoutReferenceIsMalformed(t *testing.T) {
	src := `Modify { Radius 5 }`
	tok := NewTokenizer(strings.NewReader(src))
	var errs []error
	records := ParseSTC(tok, func(line int, err error) { errs = append(errs, err) })

	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrMalformedRecord) {
		t.Fatalf("errs = %v", errs)
	}
}

func TestParseDSCGalaxy(t *testing.T) {
	src := `Galaxy 5000 "NGC 4321:M100" { Radius 50000 AbsMag -21.5 }`
	tok := NewTokenizer(strings.NewReader(src))
	records := ParseDSC(tok, nil)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ObjectType != "Galaxy" || !rec.HasNumber || rec.CatalogNumber != 5000 {
		t.Fatalf("rec = %+v", rec)
	}
	if len(rec.Names) != 2 || rec.Names[0] != "NGC 4321" || rec.Names[1] != "M100" {
		t.Fatalf("Names = %v", rec.Names)
	}
	radius, ok := rec.Properties.GetNumber("Radius")
	if !ok || radius != 50000 {
		t.Fatalf("Radius = %v ok=%v", radius, ok)
	}
}

func TestParseDSCMultipleRecords(t *testing.T) {
	src := `Globular 1 "NGC 104" { Radius 1 }
Nebula "NGC 7000" { Radius 2 }`
	tok := NewTokenizer(strings.NewReader(src))
	records := ParseDSC(tok, nil)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ObjectType != "Globular" || records[1].ObjectType != "Nebula" {
		t.Fatalf("records = %+v", records)
	}
	if records[1].HasNumber {
		t.Fatalf("second record should have no catalog number: %+v", records[1])
	}
}
