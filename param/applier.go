// Package param mirrors a trial parameter vector into the constitutive
// collaborator's backing store (spec.md §4.5). Grounded on msolid/
// elasticity.go's Init-time name resolution, split here into a
// one-time resolution in NewApplier (caches writable locations) and a
// per-call Apply
// (writes only), since this system re-applies the same parameter names
// on every residual evaluation rather than once at model construction.
package param

import "github.com/cpmech/gosl/chk"

// Spec is one parameter's identity and box-bound configuration (spec.md
// §3's Parameter entity, the {name, init, lo, hi, scale} record).
type Spec struct {
	Name  string
	Init  float64
	Lo    float64
	Hi    float64
	Scale float64
}

// Validate checks the Parameter invariants from spec.md §3: lo <= init
// <= hi, scale != 0, name non-empty.
func (s Spec) Validate() error {
	if s.Name == "" {
		return chk.Err("param: parameter name must not be empty")
	}
	if s.Scale == 0 {
		return chk.Err("param: parameter %q: scale must not be zero", s.Name)
	}
	if !(s.Lo <= s.Init && s.Init <= s.Hi) {
		return chk.Err("param: parameter %q: bounds violated (lo=%g init=%g hi=%g)", s.Name, s.Lo, s.Init, s.Hi)
	}
	return nil
}

// Locator is the subset of material.Collaborator this package depends
// on: resolving a parameter name to a writable scalar location. Kept
// as a narrow interface so param never imports package material's full
// surface (constitutive-model evaluation is none of its business).
type Locator interface {
	Location(name string) (*float64, bool)
}

// Applier resolves every parameter name once against a Locator, caching
// a writable location per name, then mirrors a trial vector into those
// locations on every Apply call (spec.md §4.5).
type Applier struct {
	specs []Spec
	locs  []*float64
}

// NewApplier resolves every spec's name against loc. Resolution failure
// for any name is fatal (spec.md §3: "the constitutive collaborator
// resolves name to a writable scalar location... or fails").
func NewApplier(specs []Spec, loc Locator) (*Applier, error) {
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	locs := make([]*float64, len(specs))
	for i, s := range specs {
		l, ok := loc.Location(s.Name)
		if !ok {
			return nil, chk.Err("param: cannot resolve parameter %q against the constitutive collaborator", s.Name)
		}
		locs[i] = l
	}
	return &Applier{specs: specs, locs: locs}, nil
}

// NParams returns the parameter count.
func (a *Applier) NParams() int { return len(a.specs) }

// Specs returns the underlying parameter specs (read-only).
func (a *Applier) Specs() []Spec { return a.specs }

// Apply writes theta into every cached location and mirrors each value
// into the parameter spec's own Init field (spec.md §3's "value"),
// after verifying |theta| == nParams. No location is written if the
// length check fails, so a failed Apply is never partially visible
// (spec.md §4.5: "without partial commit visible to callers").
func (a *Applier) Apply(theta []float64) error {
	if len(theta) != len(a.specs) {
		return chk.Err("param: expected %d parameters, got %d", len(a.specs), len(theta))
	}
	for i, l := range a.locs {
		if l == nil {
			return chk.Err("param: parameter %q has no cached location", a.specs[i].Name)
		}
	}
	for i, l := range a.locs {
		*l = theta[i]
		a.specs[i].Init = theta[i]
	}
	return nil
}

// Values returns the current cached-location values, in parameter
// order.
func (a *Applier) Values() []float64 {
	out := make([]float64, len(a.locs))
	for i, l := range a.locs {
		out[i] = *l
	}
	return out
}
