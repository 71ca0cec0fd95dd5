// Package xindex implements the cross-index: a range-compressed sparse
// map from an external catalog's index numbers to this database's
// internal catalog numbers, used to resolve designations (such as HD
// numbers) that are not directly encoded by internal/catnum.
package xindex

import (
	"errors"
	"sort"

	"github.com/draco-astrodb/astrodb/internal/catnum"
)

// ErrOverlap is returned by Insert when the new range overlaps an
// existing one and overwrite was not requested.
var ErrOverlap = errors.New("xindex: overlapping range")

// rangeEntry covers external keys [start, start+length-1], mapping each
// external key e to the internal number e + shift.
type rangeEntry struct {
	start  uint32
	shift  int64
	length uint32
}

func (r rangeEntry) lastKey() uint32 {
	return r.start + r.length - 1
}

// CrossIndex holds an ordered set of non-overlapping key ranges.
type CrossIndex struct {
	ranges []rangeEntry
}

// New creates an empty cross-index.
func New() *CrossIndex {
	return &CrossIndex{}
}

// lowerBound mimics std::map::lower_bound: the index of the first range
// whose start is >= key, or len(ranges) if none.
func (x *CrossIndex) lowerBound(key uint32) int {
	return sort.Search(len(x.ranges), func(i int) bool { return x.ranges[i].start >= key })
}

// Insert records that external keys [start, start+length-1] map to
// internal numbers [start+shift, start+length-1+shift]. Any existing
// range that overlaps the new one is either rejected (overwrite false,
// returns ErrOverlap) or truncated/removed to make room (overwrite
// true): a range extending past the new range's end is split, keeping
// its tail with its original shift; a range wholly or partially before
// the new range's end is truncated or erased.
func (x *CrossIndex) Insert(start uint32, shift int64, length uint32, overwrite bool) error {
	if length == 0 {
		return nil
	}
	last := start + length - 1

	idx := x.lowerBound(start)
	if idx != 0 && (idx == len(x.ranges) || x.ranges[idx].start > start) {
		idx--
	}

	var tail *rangeEntry

	i := idx
	for i < len(x.ranges) && x.ranges[i].start <= last {
		r := x.ranges[i]
		rLast := r.lastKey()

		if rLast > last {
			if !overwrite {
				return ErrOverlap
			}
			tail = &rangeEntry{start: last + 1, shift: r.shift, length: rLast - last}
		}

		if rLast < start {
			i++
			continue
		}

		if !overwrite {
			return ErrOverlap
		}
		if r.start < start {
			x.ranges[i].length = start - r.start
			i++
		} else {
			x.ranges = append(x.ranges[:i], x.ranges[i+1:]...)
		}
	}

	x.insert(rangeEntry{start: start, shift: shift, length: length})
	if tail != nil && tail.length > 0 {
		x.insert(*tail)
	}
	return nil
}

func (x *CrossIndex) insert(r rangeEntry) {
	pos := x.lowerBound(r.start)
	x.ranges = append(x.ranges, rangeEntry{})
	copy(x.ranges[pos+1:], x.ranges[pos:])
	x.ranges[pos] = r
}

// Get resolves an external key to an internal catalog number, or
// catnum.Invalid if the key is not covered by any recorded range.
func (x *CrossIndex) Get(external uint32) catnum.Number {
	if len(x.ranges) == 0 {
		return catnum.Invalid
	}

	idx := x.lowerBound(external)
	if idx != 0 && (idx == len(x.ranges) || x.ranges[idx].start > external) {
		idx--
	}
	if idx >= len(x.ranges) {
		return catnum.Invalid
	}

	r := x.ranges[idx]
	if r.start <= external && r.lastKey() >= external {
		return catnum.Number(int64(external) + r.shift)
	}
	return catnum.Invalid
}

// GetReverse resolves an internal catalog number back to its external
// key, if any recorded range maps to it. Unlike Get, this is not backed
// by an ordered index on the internal side (ranges are kept sorted by
// external start only, and distinct ranges may shift into
// non-monotonic internal positions), so it scans the recorded ranges
// linearly.
func (x *CrossIndex) GetReverse(internal catnum.Number) (uint32, bool) {
	for _, r := range x.ranges {
		lo := int64(r.start) + r.shift
		hi := int64(r.lastKey()) + r.shift
		v := int64(internal)
		if v >= lo && v <= hi {
			return uint32(v - r.shift), true
		}
	}
	return 0, false
}

// Len reports the number of disjoint ranges currently recorded.
func (x *CrossIndex) Len() int {
	return len(x.ranges)
}
