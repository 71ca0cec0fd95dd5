// Package astrodb implements the sealed database façade and two-phase
// builder that tie catnum, nameindex, xindex, stellar, octree, and
// catfmt together into the complete celestial-object catalog: ingest
// star and deep-sky-object sources during accumulate, then seal into an
// immutable, query-only database.
package astrodb

import "errors"

// Sentinel errors surfaced by the builder's accumulate and seal phases.
var (
	ErrUnresolvedReference = errors.New("astrodb: unresolved reference")
	ErrOverlappingRange    = errors.New("astrodb: overlapping cross-index range")
	ErrInvalidHeader       = errors.New("astrodb: invalid file header")
	ErrTruncatedFile       = errors.New("astrodb: truncated file")
	ErrMalformedRecord     = errors.New("astrodb: malformed record")
	ErrExceededCapacity    = errors.New("astrodb: auto catalog number watermark exhausted")
	ErrNotSealed           = errors.New("astrodb: database not sealed")
	ErrAlreadySealed       = errors.New("astrodb: builder already sealed")
)
