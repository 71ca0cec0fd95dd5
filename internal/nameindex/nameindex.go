// Package nameindex implements the bidirectional name/catalog-number
// directory: a case-insensitive string lookup table with a secondary
// localized table, preserving insertion order of names per catalog
// number so a "primary" name can be recovered.
package nameindex

import (
	"sort"
	"strings"
	"sync"

	"github.com/draco-astrodb/astrodb/internal/catnum"
)

// Directory is a bidirectional name <-> catalog-number map. The zero
// value is not usable; construct with New.
type Directory struct {
	mu sync.RWMutex

	// byName maps a case-folded canonical name to a catalog number. The
	// last addition wins on collision, matching the source's multimap
	// insertion-order semantics for lookups.
	byName map[string]catnum.Number

	// byNameLocalized mirrors byName for the localized name table.
	byNameLocalized map[string]catnum.Number

	// namesOf preserves insertion order of every name (canonical and
	// localized) recorded against a catalog number.
	namesOf map[catnum.Number][]string
}

// New creates an empty name directory.
func New() *Directory {
	return &Directory{
		byName:          make(map[string]catnum.Number),
		byNameLocalized: make(map[string]catnum.Number),
		namesOf:         make(map[catnum.Number][]string),
	}
}

func fold(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Add records name (and, if localized is non-empty, its localized
// variant) as associated with number, preserving insertion order.
// Adding a name that already exists for a different number is
// permitted -- the caller is expected to log the collision -- and the
// last addition wins in the string-to-number direction.
func (d *Directory) Add(number catnum.Number, name string, localized string) {
	if name == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.byName[fold(name)] = number
	d.namesOf[number] = append(d.namesOf[number], name)

	if localized != "" {
		d.byNameLocalized[fold(localized)] = number
		d.namesOf[number] = append(d.namesOf[number], localized)
	}
}

// Erase removes every name (primary and localized) associated with number.
func (d *Directory) Erase(number catnum.Number) {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := d.namesOf[number]
	for _, n := range names {
		key := fold(n)
		if d.byName[key] == number {
			delete(d.byName, key)
		}
		if d.byNameLocalized[key] == number {
			delete(d.byNameLocalized, key)
		}
	}
	delete(d.namesOf, number)
}

// FindNumberByName resolves name to a catalog number. It first checks
// the canonical table; on a miss, if i18n is true, it checks the
// localized table; failing that, it normalizes Greek-letter
// abbreviations in name (see NormalizeGreek) and retries the canonical
// table once.
func (d *Directory) FindNumberByName(name string, i18n bool) (catnum.Number, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	key := fold(name)
	if n, ok := d.byName[key]; ok {
		return n, true
	}

	if i18n {
		if n, ok := d.byNameLocalized[key]; ok {
			return n, true
		}
	}

	normalized := NormalizeGreek(name)
	if normalized != name {
		if n, ok := d.byName[fold(normalized)]; ok {
			return n, true
		}
	}

	return catnum.Invalid, false
}

// FirstNameOf returns the first name inserted under number, the
// closest analogue to a "proper name", if any name is recorded.
func (d *Directory) FirstNameOf(number catnum.Number) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := d.namesOf[number]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// NamesOf returns every name recorded against number in insertion order.
func (d *Directory) NamesOf(number catnum.Number) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := d.namesOf[number]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Completion returns every stored name whose prefix (compared by UTF-8
// code point, case-insensitive) matches prefix. Canonical names are
// always searched; localized names are included when i18n is true.
// Results are returned sorted in ascending byte order.
func (d *Directory) Completion(prefix string, i18n bool) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	foldedPrefix := fold(prefix)
	seen := make(map[string]bool)
	var out []string

	collect := func(table map[string]catnum.Number) {
		for key, number := range table {
			if !strings.HasPrefix(key, foldedPrefix) {
				continue
			}
			for _, name := range d.namesOf[number] {
				if fold(name) == key && !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		}
	}

	collect(d.byName)
	if i18n {
		collect(d.byNameLocalized)
	}

	sort.Strings(out)
	return out
}
