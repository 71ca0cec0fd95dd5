// Package catalogload wires internal/config's source paths into an
// astrodb.Builder's accumulate phase, shared by cmd/astrodb-gen and
// cmd/astrodb-server so the two binaries load sources identically.
package catalogload

import (
	"fmt"
	"os"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"github.com/draco-astrodb/astrodb/internal/config"
)

// Stats totals what FromConfig loaded, for callers that want to log or
// report it.
type Stats struct {
	Stars  int
	DSOs   int
	Names  int
	XIndex int
}

// FromConfig opens and accumulates every source listed in sources into
// builder, logging progress through report (nil is a valid no-op).
func FromConfig(builder *astrodb.Builder, sources config.Sources, report func(string)) (Stats, error) {
	if report == nil {
		report = func(string) {}
	}
	var stats Stats

	if sources.StarsBin != "" {
		n, err := loadBinary(builder, sources.StarsBin)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", sources.StarsBin, err)
		}
		stats.Stars += n
		report(fmt.Sprintf("loaded %d stars from %s", n, sources.StarsBin))
	}

	for _, path := range sources.StarsSTC {
		n, err := loadText(builder.LoadStarsText, path)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.Stars += n
		report(fmt.Sprintf("loaded %d star records from %s", n, path))
	}

	for _, path := range sources.DSODSC {
		n, err := loadText(builder.LoadDSOsText, path)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.DSOs += n
		report(fmt.Sprintf("loaded %d DSO records from %s", n, path))
	}

	for _, path := range sources.NamesTxt {
		n, err := loadNames(builder, path)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.Names += n
		report(fmt.Sprintf("loaded %d names from %s", n, path))
	}

	for prefix, path := range sources.XIndex {
		n, err := loadXIndex(builder, prefix, path)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.XIndex += n
		report(fmt.Sprintf("loaded %d %s cross-index entries from %s", n, prefix, path))
	}

	return stats, nil
}

func loadBinary(builder *astrodb.Builder, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := catfmt.ReadCELSTARS(f)
	if err != nil {
		return 0, err
	}
	return builder.LoadStarsBinary(records)
}

func loadText(load func(*catfmt.Tokenizer) (int, error), path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return load(catfmt.NewTokenizer(f))
}

func loadNames(builder *astrodb.Builder, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := catfmt.ReadNames(f, func(line int, err error) {})
	if err != nil {
		return 0, err
	}
	return builder.LoadNames(records), nil
}

func loadXIndex(builder *astrodb.Builder, prefix, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	pairs, err := catfmt.ReadCELINDEX(f)
	if err != nil {
		return 0, err
	}
	return builder.LoadCrossIndex(prefix, pairs, false)
}
