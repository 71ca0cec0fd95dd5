package astrodb

import (
	"fmt"
	"log"
	"math"

	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/eventbus"
	"github.com/draco-astrodb/astrodb/internal/geom"
	"github.com/draco-astrodb/astrodb/internal/nameindex"
	"github.com/draco-astrodb/astrodb/internal/stellar"
	"github.com/draco-astrodb/astrodb/internal/xindex"
)

// Binary star-type tags packed into the two high bits of a CELSTARS
// spectral code, selecting which StarDetails registry method supplies
// the shared details record.
const (
	starTypeNormal = iota
	starTypeWhiteDwarf
	starTypeNeutronStar
	starTypeBlackHole
)

// barycenterEdge is a deferred (child, parent) orbit reference awaiting
// resolution at seal time, since the parent's star record may not have
// been loaded yet when the child's OrbitBarycenter property is parsed.
type barycenterEdge struct {
	child  catnum.Number
	parent catnum.Number
	line   int
}

// Builder accumulates stars, deep-sky objects, names, and cross-index
// entries from any mix of binary and text sources, then seals them
// into an immutable Database. A Builder is not safe for concurrent use.
type Builder struct {
	bus      eventbus.EventBus
	registry *stellar.Registry

	stars map[catnum.Number]*stellar.Star
	dsos  map[catnum.Number]*stellar.DeepSkyObject

	names    *nameindex.Directory
	xindexes map[string]*xindex.CrossIndex

	nextAuto catnum.Number

	edges []barycenterEdge

	sealed bool
}

// NewBuilder creates an empty builder. bus may be nil, in which case
// seal-time events are silently dropped.
func NewBuilder(bus eventbus.EventBus) *Builder {
	return &Builder{
		bus:      bus,
		registry: stellar.NewRegistry(),
		stars:    make(map[catnum.Number]*stellar.Star),
		dsos:     make(map[catnum.Number]*stellar.DeepSkyObject),
		names:    nameindex.New(),
		xindexes: make(map[string]*xindex.CrossIndex),
		nextAuto: catnum.Watermark,
	}
}

func (b *Builder) autoAssign() (catnum.Number, error) {
	if b.nextAuto < catnum.AutoAssignFloor {
		return catnum.Invalid, ErrExceededCapacity
	}
	n := b.nextAuto
	b.nextAuto--
	return n, nil
}

// LoadStarsBinary ingests a CELSTARS binary star database. Records
// always create-or-replace, matching the source's "dump straight into
// the pile" loader behavior for binary data: a record whose catalog
// number is already present replaces the earlier star.
func (b *Builder) LoadStarsBinary(records []catfmt.BinaryStarRecord) (int, error) {
	if b.sealed {
		return 0, ErrAlreadySealed
	}

	count := 0
	for _, rec := range records {
		starType, class, subclass, lum := catfmt.UnpackSpectralCode(rec.SpectralCode)

		var details *stellar.StarDetails
		switch starType {
		case starTypeWhiteDwarf:
			details = b.registry.WhiteDwarfDetails(stellar.SpectralClass(class), int(subclass))
		case starTypeNeutronStar:
			details = b.registry.NeutronStarDetails()
		case starTypeBlackHole:
			details = b.registry.BlackHoleDetails()
		default:
			details = b.registry.NormalStarDetails(stellar.SpectralClass(class), int(subclass), stellar.LuminosityClass(lum))
		}

		number := catnum.Number(rec.CatalogNumber)
		b.stars[number] = &stellar.Star{
			Number:   number,
			Position: geom.Vec3f{X: rec.X, Y: rec.Y, Z: rec.Z},
			AbsMag:   rec.AbsMag(),
			Details:  details,
		}
		count++
	}

	return count, nil
}

// resolveStarTarget finds the catalog number an incoming text record
// should be applied to, following the disposition rules from the
// builder's accumulate phase: an explicit number is authoritative;
// otherwise each listed name is looked up in the name directory in
// order, and the first one that resolves wins.
func (b *Builder) resolveStarTarget(rec catfmt.StarTextRecord) (catnum.Number, bool) {
	if rec.HasNumber {
		number := catnum.Number(rec.CatalogNumber)
		_, exists := b.stars[number]
		return number, exists
	}
	for _, name := range rec.Names {
		if n, ok := b.names.FindNumberByName(name, false); ok {
			return n, true
		}
	}
	return catnum.Invalid, false
}

// LoadStarsText ingests an stc-format token stream, applying each
// record's disposition (Add/Replace/Modify) in turn. Malformed records
// are already filtered out by ParseSTC; this only handles the
// existing/not-existing resolution and field application.
func (b *Builder) LoadStarsText(tok *catfmt.Tokenizer) (int, error) {
	if b.sealed {
		return 0, ErrAlreadySealed
	}

	var skipped []string
	records := catfmt.ParseSTC(tok, func(line int, err error) {
		skipped = append(skipped, fmt.Sprintf("line %d: %v", line, err))
	})
	for _, msg := range skipped {
		log.Printf("astrodb: skipping stc record: %s", msg)
	}

	count := 0
	for _, rec := range records {
		if err := b.applyStarRecord(rec); err != nil {
			log.Printf("astrodb: skipping stc record at line %d: %v", rec.Line, err)
			continue
		}
		count++
	}
	return count, nil
}

func (b *Builder) applyStarRecord(rec catfmt.StarTextRecord) error {
	target, exists := b.resolveStarTarget(rec)

	switch rec.Disposition {
	case catfmt.Modify:
		if !exists {
			return fmt.Errorf("%w: no existing star for Modify", ErrUnresolvedReference)
		}
	case catfmt.Replace, catfmt.Add:
		if !exists {
			if rec.HasNumber {
				target = catnum.Number(rec.CatalogNumber)
			} else {
				n, err := b.autoAssign()
				if err != nil {
					return err
				}
				target = n
			}
		}
	}

	star, ok := b.stars[target]
	if !ok {
		details := b.registry.BarycenterDetails()
		if !rec.IsBarycenter {
			details = b.registry.NormalStarDetails(stellar.SpectralG, 5, stellar.LumV)
		}
		star = &stellar.Star{Number: target, Details: details, AbsMag: stellar.UnknownAbsMag}
	}

	if err := b.applyStarProperties(star, rec.Properties, target); err != nil {
		return err
	}

	b.stars[target] = star
	for _, name := range rec.Names {
		b.names.Add(target, name, "")
	}
	return nil
}

func (b *Builder) applyStarProperties(star *stellar.Star, props *catfmt.Hash, target catnum.Number) error {
	if props == nil {
		return nil
	}

	var distance float64
	var hasDistance bool
	if d, ok := props.GetNumber("Distance"); ok {
		distance, hasDistance = d, true
	}

	if x, y, z, ok := props.GetVector3("Position"); ok {
		star.Position = geom.Vec3f{X: float32(x), Y: float32(y), Z: float32(z)}
	} else if ra, okRA := props.GetNumber("RA"); okRA {
		dec, _ := props.GetNumber("Dec")
		if hasDistance {
			star.Position = sphericalToCartesian(ra, dec, distance)
		}
	}

	if v, ok := props.GetNumber("AbsMag"); ok {
		star.AbsMag = float32(v)
	} else if v, ok := props.GetNumber("AppMag"); ok && hasDistance {
		star.AbsMag = stellar.AppToAbsMag(float32(v), float32(distance))
	}

	if v, ok := props.GetNumber("Extinction"); ok {
		star.Extinction = float32(v)
	}

	custom := stellar.Customize(star.Details)
	customized := false

	if v, ok := props.GetString("SpectralType"); ok {
		if class, subclass, lum, isWD, parsed := ParseSpectralType(v); parsed {
			var base *stellar.StarDetails
			if isWD {
				base = b.registry.WhiteDwarfDetails(class, subclass)
			} else {
				base = b.registry.NormalStarDetails(class, subclass, lum)
			}
			custom = stellar.Customize(base)
		}
		custom.SetSpectralType(v)
		customized = true
	}

	if v, ok := props.GetNumber("Radius"); ok {
		custom.SetRadius(float32(v))
		customized = true
	}

	temperature, hasTemperature := props.GetNumber("Temperature")
	bc, hasBC := props.GetNumber("BoloCorrection")
	if hasTemperature {
		custom.SetTemperature(float32(temperature))
		customized = true
		if hasBC {
			custom.SetBolometricCorrection(float32(bc))
		} else {
			custom.SetBolometricCorrection(float32(stellar.BolometricCorrectionForTemperature(temperature)))
		}
	} else if hasBC {
		custom.SetBolometricCorrection(float32(bc))
		customized = true
	}

	if v, ok := props.GetString("InfoURL"); ok {
		custom.SetInfoURL(v)
		customized = true
	}

	if v, ok := props.GetNumber("OrbitBarycenter"); ok {
		custom.SetOrbitBarycenter(uint32(v))
		customized = true
		b.edges = append(b.edges, barycenterEdge{child: target, parent: catnum.Number(uint32(v))})
	}

	if customized {
		star.Details = custom.Details()
	}

	return nil
}

// sphericalToCartesian converts right ascension (hours), declination
// (degrees), and distance (light-years) into the Cartesian light-year
// position used throughout the database, matching the source's
// equatorial-to-rectangular convention: +Y toward the celestial pole,
// +X toward the vernal equinox, +Z completing a right-handed frame.
func sphericalToCartesian(raHours, decDegrees, distanceLy float64) geom.Vec3f {
	ra := raHours * (math.Pi / 12)
	dec := decDegrees * (math.Pi / 180)
	x := distanceLy * math.Cos(dec) * math.Cos(ra)
	y := distanceLy * math.Sin(dec)
	z := -distanceLy * math.Cos(dec) * math.Sin(ra)
	return geom.Vec3f{X: float32(x), Y: float32(y), Z: float32(z)}
}

// dsoTypeByName maps an stc/dsc object-type keyword to its ObjectType.
var dsoTypeByName = map[string]stellar.ObjectType{
	"Galaxy":      stellar.Galaxy,
	"Globular":    stellar.Globular,
	"OpenCluster": stellar.OpenCluster,
	"Nebula":      stellar.Nebula,
}

// LoadDSOsText ingests a dsc-format token stream.
func (b *Builder) LoadDSOsText(tok *catfmt.Tokenizer) (int, error) {
	if b.sealed {
		return 0, ErrAlreadySealed
	}

	var skipped []string
	records := catfmt.ParseDSC(tok, func(line int, err error) {
		skipped = append(skipped, fmt.Sprintf("line %d: %v", line, err))
	})
	for _, msg := range skipped {
		log.Printf("astrodb: skipping dsc record: %s", msg)
	}

	count := 0
	for _, rec := range records {
		if err := b.applyDSORecord(rec); err != nil {
			log.Printf("astrodb: skipping dsc record at line %d: %v", rec.Line, err)
			continue
		}
		count++
	}
	return count, nil
}

func (b *Builder) applyDSORecord(rec catfmt.DSOTextRecord) error {
	objType, ok := dsoTypeByName[rec.ObjectType]
	if !ok {
		return fmt.Errorf("%w: unknown object type %q", ErrMalformedRecord, rec.ObjectType)
	}

	target := catnum.Number(rec.CatalogNumber)
	if !rec.HasNumber {
		n, err := b.autoAssign()
		if err != nil {
			return err
		}
		target = n
	}

	dso := &stellar.DeepSkyObject{
		Number:      target,
		Type:        objType,
		AbsMag:      stellar.UnknownAbsMag,
		Orientation: geom.Identity(),
	}
	if existing, ok := b.dsos[target]; ok {
		dso = existing
	}

	props := rec.Properties
	if props != nil {
		if x, y, z, ok := props.GetVector3("Position"); ok {
			dso.Position = geom.Vec3d{X: x, Y: y, Z: z}
		} else if ra, okRA := props.GetNumber("RA"); okRA {
			if distance, okD := props.GetNumber("Distance"); okD {
				dec, _ := props.GetNumber("Dec")
				v := sphericalToCartesian(ra, dec, distance)
				dso.Position = geom.Vec3d{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
			}
		}
		if v, ok := props.GetNumber("AbsMag"); ok {
			dso.AbsMag = float32(v)
		}
		if v, ok := props.GetNumber("Radius"); ok {
			dso.Radius = float32(v)
		}
	}

	b.dsos[target] = dso
	for _, name := range rec.Names {
		b.names.Add(target, name, "")
	}
	return nil
}

// LoadNames ingests parsed name-file records into the name directory.
func (b *Builder) LoadNames(records []catfmt.NameRecord) int {
	count := 0
	for _, rec := range records {
		number := catnum.Number(rec.CatalogNumber)
		for _, name := range rec.Names {
			b.names.Add(number, name, "")
			count++
		}
	}
	return count
}

// LoadCrossIndex ingests cross-index pairs for the given external
// catalog prefix (e.g. "HD"), compressing consecutive pairs that share
// a constant (internal - external) shift into a single range insert.
func (b *Builder) LoadCrossIndex(prefix string, pairs []catfmt.CrossIndexPair, overwrite bool) (int, error) {
	if b.sealed {
		return 0, ErrAlreadySealed
	}

	idx, ok := b.xindexes[prefix]
	if !ok {
		idx = xindex.New()
		b.xindexes[prefix] = idx
	}

	count := 0
	i := 0
	for i < len(pairs) {
		start := pairs[i].External
		shift := int64(pairs[i].Internal) - int64(pairs[i].External)
		length := uint32(1)
		j := i + 1
		for j < len(pairs) &&
			pairs[j].External == pairs[j-1].External+1 &&
			int64(pairs[j].Internal)-int64(pairs[j].External) == shift {
			length++
			j++
		}

		if err := idx.Insert(start, shift, length, overwrite); err != nil {
			log.Printf("astrodb: skipping cross-index range [%d,+%d): %v", start, length, err)
		} else {
			count += int(length)
		}
		i = j
	}

	return count, nil
}
