package catfmt

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	celstarsMagic   = "CELSTARS"
	celstarsVersion = 0x0100
)

// BinaryStarRecord is one fixed-width record from a CELSTARS file.
// AbsMagQ8 is the absolute magnitude packed as value*256, matching the
// original on-disk fixed-point encoding; SpectralCode is the packed
// (star_type:2, spectral_class:4, subclass:4, luminosity_class:4) value
// decoded by UnpackSpectralCode.
type BinaryStarRecord struct {
	CatalogNumber uint32
	X, Y, Z       float32
	AbsMagQ8      int16
	SpectralCode  uint16
}

// AbsMag returns the record's absolute magnitude as a float.
func (r BinaryStarRecord) AbsMag() float32 {
	return float32(r.AbsMagQ8) / 256.0
}

// ReadCELSTARS parses a CELSTARS binary star database, returning every
// well-formed record. It returns ErrInvalidHeader if the magic or
// version doesn't match, and ErrTruncatedFile if the stream ends before
// the declared record count is satisfied.
func ReadCELSTARS(r io.Reader) ([]BinaryStarRecord, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFile, err)
	}
	if string(magic[:]) != celstarsMagic {
		return nil, fmt.Errorf("%w: got magic %q", ErrInvalidHeader, magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFile, err)
	}
	if version != celstarsVersion {
		return nil, fmt.Errorf("%w: got version 0x%04x", ErrInvalidHeader, version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFile, err)
	}

	records := make([]BinaryStarRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		var rec BinaryStarRecord
		if err := binary.Read(r, binary.LittleEndian, &rec.CatalogNumber); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.X); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.Y); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.Z); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.AbsMagQ8); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &rec.SpectralCode); err != nil {
			return records, fmt.Errorf("%w: record %d: %v", ErrTruncatedFile, i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// WriteCELSTARS serializes records into the CELSTARS binary format.
func WriteCELSTARS(w io.Writer, records []BinaryStarRecord) error {
	if _, err := io.WriteString(w, celstarsMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(celstarsVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := binary.Write(w, binary.LittleEndian, rec.CatalogNumber); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rec.X); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rec.Y); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rec.Z); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rec.AbsMagQ8); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rec.SpectralCode); err != nil {
			return err
		}
	}
	return nil
}

// PackSpectralCode packs (starType, class, subclass, luminosity) into
// the on-disk spectral code word: 2 bits of star type, 4 bits of
// spectral class, 4 bits of subclass, 4 bits of luminosity class, from
// most to least significant.
func PackSpectralCode(starType, class, subclass, luminosity uint16) uint16 {
	return (starType&0x3)<<14 | (class&0xF)<<10 | (subclass&0xF)<<6 | (luminosity & 0xF)
}

// UnpackSpectralCode reverses PackSpectralCode.
func UnpackSpectralCode(code uint16) (starType, class, subclass, luminosity uint16) {
	starType = (code >> 14) & 0x3
	class = (code >> 10) & 0xF
	subclass = (code >> 6) & 0xF
	luminosity = code & 0xF
	return
}
