package problem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/andresutrera/vfmident/constitutive"
	"github.com/andresutrera/vfmident/identify"
	"github.com/andresutrera/vfmident/vwork"
)

// StressStore holds the last-computed stresses per measured time frame,
// rewritten on every residual evaluation (spec.md §3's Lifecycle).
type StressStore struct {
	Frames [][]constitutive.Stresses // [t][offset(e)+g]
}

// Residual returns the identify.Residual closure composing §4.5 → §4.2
// → §4.3, then subtracting the precomputed EVW (spec.md §4.6). store is
// rewritten in place on every call so callers (and the final commit
// path) can inspect the last-evaluated stress state.
func (p *VFMProblem) Residual(store *StressStore) identify.Residual {
	return func(theta []float64) ([]float64, error) {
		if err := p.Applier.Apply(theta); err != nil {
			return nil, err
		}

		frames := make([][]constitutive.Stresses, p.T)
		for t := 0; t < p.T; t++ {
			s, err := p.Driver.Evaluate(p.Facts, p.measuredF[t])
			if err != nil {
				return nil, chk.Err("problem: residual: stress evaluation at t=%d: %v", t, err)
			}
			frames[t] = s
		}
		store.Frames = frames

		iwv, err := vwork.Internal(p.Facts, frames, p.virtualF)
		if err != nil {
			return nil, err
		}
		if len(iwv) != len(p.EVW) {
			return nil, chk.Err("problem: residual: internal-work vector length %d differs from external-work vector length %d", len(iwv), len(p.EVW))
		}

		r := make([]float64, len(iwv))
		for i := range iwv {
			r[i] = iwv[i] - p.EVW[i]
		}
		return r, nil
	}
}

// NResiduals returns the fixed residual-vector length nVF*T, used to
// size the LM driver (identify.New).
func (p *VFMProblem) NResiduals() int { return len(p.EVW) }

// InternalWork recomputes the internal-work vector from an
// already-evaluated StressStore, for callers (package out's CSV
// exporter) that need W_int independently of the residual subtraction.
func (p *VFMProblem) InternalWork(store *StressStore) ([]float64, error) {
	return vwork.Internal(p.Facts, store.Frames, p.virtualF)
}

// ExternalWork returns the precomputed, theta-independent external-work
// vector (spec.md §4.4), laid out [v*T+t] like InternalWork.
func (p *VFMProblem) ExternalWork() []float64 { return p.EVW }
