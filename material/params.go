package material

import "github.com/cpmech/gosl/fun"

// Params is a named parameter record, generalized from msolid/
// elasticity.go's loop-over-Prms pattern (there: E, Nu -> K, G). Every
// concrete model in this package declares the parameter names it reads
// in its Init method; Location exposes a stable pointer into the
// backing fun.Prms slice so the parameter applier (package param) can
// write identified values in place without re-parsing names on every
// residual evaluation (spec.md §4.5).
type Params struct {
	prms fun.Prms
}

// NewParams wraps a fun.Prms record.
func NewParams(prms fun.Prms) *Params { return &Params{prms: prms} }

// Find returns the index of the named parameter, or -1.
func (p *Params) Find(name string) int {
	for i := range p.prms {
		if p.prms[i].N == name {
			return i
		}
	}
	return -1
}

// Value returns a named parameter's current value and whether it was found.
func (p *Params) Value(name string) (float64, bool) {
	i := p.Find(name)
	if i < 0 {
		return 0, false
	}
	return p.prms[i].V, true
}

// Location returns a writable pointer to a named parameter's value, the
// mechanism the parameter applier uses to mirror identified values back
// into the live model (spec.md §4.5: "resolves each name to a writable
// location once, then... writes values directly").
func (p *Params) Location(name string) (*float64, bool) {
	i := p.Find(name)
	if i < 0 {
		return nil, false
	}
	return &p.prms[i].V, true
}
