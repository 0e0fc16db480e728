// Package vwork assembles internal and external virtual work (spec.md
// §4.3, §4.4). Grounded on fem/e_u.go's AddToRhs pattern of summing
// P:G·jw contributions over an element's integration points (there, a
// residual vector assembly; here, a pair of scalar virtual-work sums),
// generalized across virtual fields and time frames.
package vwork

import (
	"github.com/cpmech/gosl/chk"

	"github.com/andresutrera/vfmident/constitutive"
	"github.com/andresutrera/vfmident/kinematics"
	"github.com/andresutrera/vfmident/mesh"
)

// resolveFrame applies the "single frame vs T frames" rule shared by
// §4.3 and §4.4: a virtual field with exactly one frame is time-
// invariant (t'=0); one with exactly T frames tracks t (t'=t). Any
// other frame count is fatal.
func resolveFrame(nFrames, T, t int) (int, error) {
	switch nFrames {
	case 1:
		return 0, nil
	case T:
		return t, nil
	default:
		return 0, chk.Err("vwork: virtual field has %d frames, expected 1 or T=%d", nFrames, T)
	}
}

// ResolveFrame exposes the same "1 or T" frame dispatch rule to callers
// outside this package (package problem's export accessors), so the
// rule is defined in exactly one place.
func ResolveFrame(nFrames, T, t int) (int, error) {
	return resolveFrame(nFrames, T, t)
}

// Internal computes W_int[v*T+t] = Σ_{e,g} P(t,e,g) : G(v,t,e,g) · jw,
// with G = F*(v,t',e,g) - I (spec.md §4.3). stresses[t] is the stress
// store's t-th frame, indexed [offset(e)+g]; virtualF[v] holds one
// Tensor per virtual frame.
//
// If T == 0 or nVF == 0, the result is an empty vector.
func Internal(facts *mesh.Facts, stresses [][]constitutive.Stresses, virtualF [][]*kinematics.Tensor) ([]float64, error) {
	T := len(stresses)
	nVF := len(virtualF)
	if T == 0 || nVF == 0 {
		return []float64{}, nil
	}

	out := make([]float64, nVF*T)
	for v := 0; v < nVF; v++ {
		nFrames := len(virtualF[v])
		for t := 0; t < T; t++ {
			tp, err := resolveFrame(nFrames, T, t)
			if err != nil {
				return nil, err
			}
			vf := virtualF[v][tp]
			sum := 0.0
			for e := 0; e < facts.NElems; e++ {
				for g := 0; g < facts.GPPerElem[e]; g++ {
					idx := facts.Offset[e] + g
					P := stressAt(stresses, t, idx)
					Fstar, _ := vf.At(e, g)
					sum += frobeniusOfGradTerm(P, Fstar) * facts.JW[idx]
				}
			}
			out[v*T+t] = sum
		}
	}
	return out, nil
}

// stressAt reads the first Piola stress at a given time frame and
// ragged index; t is already validated in range by the caller's loop
// bound (len(stresses) == T).
func stressAt(stresses [][]constitutive.Stresses, t, idx int) [][]float64 {
	return stresses[t][idx].P
}

// frobeniusOfGradTerm returns P : (Fstar - I), the full (possibly
// non-symmetric) 3x3 double contraction (spec.md §4.3's edge policy).
func frobeniusOfGradTerm(P, Fstar [][]float64) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g := Fstar[i][j]
			if i == j {
				g -= 1.0
			}
			sum += P[i][j] * g
		}
	}
	return sum
}
