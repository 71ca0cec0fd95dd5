// Package catfmt implements the on-disk and wire formats the catalog
// builder reads from: the CELSTARS/CELINDEX little-endian binary
// formats and the stc/dsc text formats, plus the plain name-file
// format. Every reader here is record-oriented and forgiving: a single
// malformed record is reported but does not abort the rest of the file,
// matching the accumulate-phase error policy the builder expects.
package catfmt

import "errors"

// Sentinel errors surfaced by the readers in this package, mirroring
// the error kinds enumerated for the accumulate phase.
var (
	ErrInvalidHeader   = errors.New("catfmt: invalid file header")
	ErrTruncatedFile   = errors.New("catfmt: truncated file")
	ErrMalformedRecord = errors.New("catfmt: malformed record")
)
