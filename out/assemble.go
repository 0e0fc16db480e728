package out

import "github.com/andresutrera/vfmident/problem"

// Assemble builds one Frame per time index of p's canonical timeline
// (spec.md §6: "one frame per time index in the longest of {measured,
// virtual, stress} timelines"). In this system every virtual field's
// frame count is already resolved to either 1 or T at Build time (the
// shared "1 or T" rule in vwork), so T is always that longest timeline;
// there is no separate "missing data" case to substitute identity/zero
// for here — every time index has a resolved measured, virtual and
// stress entry by construction.
func Assemble(p *problem.VFMProblem, store *problem.StressStore) ([]Frame, error) {
	T := p.NFrames()
	nVF := p.NVirtualFields()
	frames := make([]Frame, T)
	for t := 0; t < T; t++ {
		sigma, piola, err := p.AverageStress(store, t)
		if err != nil {
			return nil, err
		}
		f := Frame{
			MeasuredU: p.MeasuredDisplacement(t),
			MeasuredF: p.AverageMeasuredF(t),
			Sigma:     sigma,
			P:         piola,
			VirtualU:  make([][][3]float64, nVF),
			VirtualF:  make([][][3][3]float64, nVF),
		}
		for v := 0; v < nVF; v++ {
			vu, err := p.VirtualDisplacement(v, t)
			if err != nil {
				return nil, err
			}
			vF, err := p.AverageVirtualF(v, t)
			if err != nil {
				return nil, err
			}
			f.VirtualU[v] = vu
			f.VirtualF[v] = vF
		}
		frames[t] = f
	}
	return frames, nil
}
