// astrodb-gen reads a configured set of local stc/dsc/binary catalog
// sources, builds and seals a Database, prints load statistics, and
// optionally writes the sealed star catalog back out as a CELSTARS
// snapshot -- a round trip through the same builder->static pipeline
// astrodb-server runs at startup, without the download step the
// teacher's cmd/catalog-gen performs against CDS Strasbourg.
//
// Usage:
//
//	go run cmd/astrodb-gen/main.go -config astrodb.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/catalogload"
	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"github.com/draco-astrodb/astrodb/internal/config"
	"github.com/draco-astrodb/astrodb/internal/eventbus"
)

func main() {
	configPath := flag.String("config", "astrodb.yaml", "path to YAML configuration")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("warning: %v; using defaults\n", err)
		cfg = config.Default()
	}

	builder := astrodb.NewBuilder(eventbus.NewInMemoryBus())

	if _, err := catalogload.FromConfig(builder, cfg.Sources, func(msg string) {
		fmt.Println(msg)
	}); err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	db, err := builder.Seal(context.Background())
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}

	stars, dsos := db.Count()
	fmt.Println("--- Catalog Build Complete ---")
	fmt.Printf("Stars: %d\n", stars)
	fmt.Printf("DSOs:  %d\n", dsos)
	fmt.Printf("Average DSO absolute magnitude: %.2f\n", db.AverageDSOAbsoluteMagnitude())

	if cfg.SnapshotOut != "" {
		if err := writeSnapshot(db, cfg.SnapshotOut); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Printf("Snapshot written to %s\n", cfg.SnapshotOut)
	}

	return nil
}

// writeSnapshot re-serializes every star in the sealed database back
// into CELSTARS form. Catalog number, position and absolute magnitude
// are written; SpectralCode is left zero, so spectral types do not
// survive the round trip.
func writeSnapshot(db *astrodb.Database, path string) error {
	refs := db.Objects()
	records := make([]catfmt.BinaryStarRecord, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind != astrodb.KindStar {
			continue
		}
		s := ref.Star
		records = append(records, catfmt.BinaryStarRecord{
			CatalogNumber: uint32(s.Number),
			X:             s.Position.X,
			Y:             s.Position.Y,
			Z:             s.Position.Z,
			AbsMagQ8:      int16(s.AbsMag * 256),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return catfmt.WriteCELSTARS(f, records)
}
