package astrodb

import (
	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/stellar"
)

// ObjectKind distinguishes which of the two per-kind static trees an
// ObjectRef's catalog number was resolved against.
type ObjectKind int

const (
	KindStar ObjectKind = iota
	KindDSO
)

// ObjectRef is the façade's answer to "what object has this catalog
// number": a tagged union over the two object kinds the database
// knows about. Exactly one of Star/DSO is non-nil, selected by Kind.
type ObjectRef struct {
	Kind ObjectKind
	Star *stellar.Star
	DSO  *stellar.DeepSkyObject
}

// Number returns the catalog number of the referenced object.
func (o ObjectRef) Number() catnum.Number {
	if o.Kind == KindStar {
		return o.Star.Number
	}
	return o.DSO.Number
}

// AbsoluteMagnitude returns the referenced object's absolute magnitude.
func (o ObjectRef) AbsoluteMagnitude() float32 {
	if o.Kind == KindStar {
		return o.Star.AbsMag
	}
	return o.DSO.AbsMag
}
