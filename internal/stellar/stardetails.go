package stellar

import "sync"

// StarDetails holds the physical attributes a star shares with every
// other star of the same spectral classification: radius, temperature,
// bolometric correction, spectral type string, info URL, visibility, and
// (when set) an orbit barycenter reference. The nominal rotation period
// computed by Decode is not stored here. A Registry hands out one shared
// instance per classification triple; customizing a shared instance
// (SetRadius, SetInfoURL, SetOrbitBarycenter, ...) clones it first so
// the shared copy other stars point to is never mutated.
type StarDetails struct {
	Radius               float32
	Temperature          float32
	BolometricCorrection float32
	SpectralType         string
	InfoURL              string
	OrbitBarycenter      catalogNumberRef
	Visible              bool

	shared bool
}

// catalogNumberRef defers resolution of an orbit barycenter to a
// catalog number rather than a live pointer, since the referenced star
// may not be loaded yet when this detail is constructed; the builder's
// seal phase resolves it (see internal/astrodb).
type catalogNumberRef struct {
	Number uint32
	Set    bool
}

// clone returns a private, mutable copy of d suitable for
// customization; it is a programming error to call this on an
// already-private instance, matching the source's assert(isShared).
func (d *StarDetails) clone() *StarDetails {
	cp := *d
	cp.shared = false
	return &cp
}

// Shared reports whether d is still the registry's canonical shared
// instance for its classification.
func (d *StarDetails) Shared() bool {
	return d.shared
}

// classKey identifies one normal-star classification triple.
type classKey struct {
	class    SpectralClass
	subclass int
	lum      LuminosityClass
}

// Registry is a lazily populated cache of shared StarDetails, one per
// classification triple plus the well-known specials (neutron star,
// black hole, barycenter).
type Registry struct {
	mu          sync.Mutex
	normal      map[classKey]*StarDetails
	whiteDwarf  map[classKey]*StarDetails
	neutronStar *StarDetails
	blackHole   *StarDetails
	barycenter  *StarDetails
}

// NewRegistry creates an empty, ready-to-use details registry.
func NewRegistry() *Registry {
	return &Registry{
		normal:     make(map[classKey]*StarDetails),
		whiteDwarf: make(map[classKey]*StarDetails),
	}
}

// NormalStarDetails returns the shared StarDetails for a main-sequence
// classification, constructing and caching it on first request.
func (r *Registry) NormalStarDetails(class SpectralClass, subclass int, lum LuminosityClass) *StarDetails {
	key := classKey{class, subclass, lum}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.normal[key]; ok {
		return d
	}

	params := Decode(class, subclass, lum)
	d := &StarDetails{
		Temperature:          float32(params.Temperature),
		BolometricCorrection: float32(params.BolometricCorrection),
		Visible:              true,
		shared:               true,
	}
	r.normal[key] = d
	return d
}

// WhiteDwarfDetails returns the shared StarDetails for a white dwarf
// classification. White dwarfs have no luminosity class of their own;
// they are tabulated by spectral subtype and subclass only.
func (r *Registry) WhiteDwarfDetails(class SpectralClass, subclass int) *StarDetails {
	key := classKey{class: class, subclass: subclass, lum: LumUnknown}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.whiteDwarf[key]; ok {
		return d
	}

	// White dwarfs are hot and compact regardless of nominal spectral
	// subtype; approximate with the dwarf-row temperature for the
	// requested class, left uncorrected.
	params := Decode(class, subclass, LumV)
	d := &StarDetails{
		Temperature: float32(params.Temperature),
		Visible:     true,
		shared:      true,
	}
	r.whiteDwarf[key] = d
	return d
}

// NeutronStarDetails returns the single shared instance describing a
// neutron star: no meaningful temperature or bolometric correction in
// the visible band, present chiefly for positional bookkeeping.
func (r *Registry) NeutronStarDetails() *StarDetails {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.neutronStar == nil {
		r.neutronStar = &StarDetails{Radius: 10e-3, Visible: true, shared: true}
	}
	return r.neutronStar
}

// BlackHoleDetails returns the single shared instance describing a
// black hole: invisible, radius nominally zero.
func (r *Registry) BlackHoleDetails() *StarDetails {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.blackHole == nil {
		r.blackHole = &StarDetails{Visible: false, shared: true}
	}
	return r.blackHole
}

// BarycenterDetails returns the single shared instance describing an
// invisible orbital barycenter placeholder, radius approximately one
// meter (expressed in light-years, effectively a point).
func (r *Registry) BarycenterDetails() *StarDetails {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.barycenter == nil {
		r.barycenter = &StarDetails{Radius: 1.06e-16, Visible: false, shared: true}
	}
	return r.barycenter
}

// Customizer is returned by Customize; every setter clones the shared
// instance on first use and mutates the private copy from then on.
type Customizer struct {
	details *StarDetails
}

// Customize begins a customization of details, cloning it lazily (on
// the first Set call) rather than up front, so a customization block
// that ends up setting nothing leaves a shared instance untouched.
func Customize(details *StarDetails) *Customizer {
	return &Customizer{details: details}
}

// SetRadius sets the star's radius in solar radii, cloning the shared
// details instance on first customization.
func (c *Customizer) SetRadius(r float32) {
	c.ensurePrivate()
	c.details.Radius = r
}

// SetInfoURL sets an auxiliary info URL, cloning on first customization.
func (c *Customizer) SetInfoURL(url string) {
	c.ensurePrivate()
	c.details.InfoURL = url
}

// SetSpectralType overrides the human-readable spectral type string
// attached to the details record (distinct from the tabulated
// class/subclass/luminosity used to select the shared instance).
func (c *Customizer) SetSpectralType(spectralType string) {
	c.ensurePrivate()
	c.details.SpectralType = spectralType
}

// SetTemperature overrides the effective temperature, as when an stc
// record supplies an explicit "Temperature" property.
func (c *Customizer) SetTemperature(kelvin float32) {
	c.ensurePrivate()
	c.details.Temperature = kelvin
}

// SetBolometricCorrection overrides the bolometric correction
// directly, bypassing the temperature-derived polynomial fit.
func (c *Customizer) SetBolometricCorrection(bc float32) {
	c.ensurePrivate()
	c.details.BolometricCorrection = bc
}

// SetOrbitBarycenter records a deferred reference (by catalog number,
// resolved during seal) to this star's orbit barycenter.
func (c *Customizer) SetOrbitBarycenter(number uint32) {
	c.ensurePrivate()
	c.details.OrbitBarycenter = catalogNumberRef{Number: number, Set: true}
}

func (c *Customizer) ensurePrivate() {
	if c.details.shared {
		c.details = c.details.clone()
	}
}

// Details returns the (possibly just-cloned) details instance backing
// this customizer, for reattaching to the owning Star.
func (c *Customizer) Details() *StarDetails {
	return c.details
}
