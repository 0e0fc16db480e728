// Package constitutive re-evaluates Cauchy and first Piola stresses at
// every integration point for a trial parameter vector, through a
// pluggable material.Collaborator, without ever disturbing the mesh's
// own material-point history (spec.md §4.2). Grounded on fem/e_u.go's
// BackupIvs/RestoreIvs + msolid.State.GetCopy/Set isolation discipline,
// generalized from "update in place with rollback" to "always evaluate
// on a disposable clone" since this driver is called once per residual
// evaluation rather than once per converged load step.
package constitutive

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/andresutrera/vfmident/kinematics"
	"github.com/andresutrera/vfmident/material"
	"github.com/andresutrera/vfmident/mesh"
)

// Stresses holds one (e,g) point's Cauchy and first Piola stress,
// sharing the ragged element×GP layout of the deformation field it was
// derived from (spec.md §3's StressStore, one time-slice of it).
type Stresses struct {
	Sigma [][]float64 // Cauchy stress, symmetric 3x3
	P     [][]float64 // first Piola, 3x3
}

// Driver evaluates stresses at every integration point of a Tensor
// field, given one material.Collaborator shared by every element (a
// single region in this system's scope; spec.md never requires
// per-element material variation beyond what the collaborator already
// encodes).
type Driver struct {
	mat material.Collaborator
}

// New wraps a constitutive collaborator. The same Collaborator instance
// is shared across every integration point; Evaluate clones it
// per-point so concurrent/repeated evaluation never mutates shared
// state (spec.md §4.2's isolation guarantee).
func New(mat material.Collaborator) *Driver {
	return &Driver{mat: mat}
}

// Evaluate computes σ and P at every (e,g) of F, returning one Stresses
// slice indexed the same way as the Tensor field (offset(e)+g). It
// fails without returning partial garbage if det(F) <= 0 anywhere, or
// if the collaborator's stress evaluation fails at any point (spec.md
// §4.2's output invariants).
func (d *Driver) Evaluate(facts *mesh.Facts, tf *kinematics.Tensor) ([]Stresses, error) {
	n := facts.Offset[facts.NElems]
	out := make([]Stresses, n)
	idx := 0
	for e := 0; e < facts.NElems; e++ {
		for g := 0; g < facts.GPPerElem[e]; g++ {
			F, J := tf.At(e, g)
			s, err := d.evalPoint(F, J)
			if err != nil {
				return nil, chk.Err("constitutive: element idx=%d gauss pt=%d: %v", e, g, err)
			}
			out[idx] = s
			idx++
		}
	}
	return out, nil
}

// EvaluateAt evaluates stress at a single, caller-supplied (F, J) pair
// with no mesh/Tensor context, for callers that synthesize a uniform
// deformation directly (package ana's forward-evaluated fixtures,
// spec.md §10).
func (d *Driver) EvaluateAt(F [][]float64, J float64) (Stresses, error) {
	return d.evalPoint(F, J)
}

// evalPoint clones the collaborator, allocates a fresh material.Point
// (never the mesh's own point), injects F and J, reads stress according
// to the clone's Kind, and derives P = J σ F⁻ᵀ.
func (d *Driver) evalPoint(F [][]float64, J float64) (Stresses, error) {
	if J <= 0 {
		return Stresses{}, chk.Err("det(F)=%g is non-positive", J)
	}

	clone := d.mat.Clone()
	pt := material.NewPoint()
	pt.SetF(F, J)

	var sigma [][]float64
	switch clone.Kind() {
	case material.KindGeneral:
		s, err := clone.Stress(pt)
		if err != nil {
			return Stresses{}, err
		}
		sigma = s
	case material.KindUncoupled:
		dev, err := clone.DevStress(pt)
		if err != nil {
			return Stresses{}, err
		}
		sigma = reconstructFromDeviatoric(dev)
	default:
		return Stresses{}, chk.Err("unrecognised material kind %d", clone.Kind())
	}

	p, err := firstPiola(sigma, F, J)
	if err != nil {
		return Stresses{}, err
	}
	return Stresses{Sigma: sigma, P: p}, nil
}

// reconstructFromDeviatoric recovers a total Cauchy stress from an
// uncoupled model's deviatoric part under the σ_zz=0 plane-stress
// identification convention: σ = dev − dev.zz · I (spec.md §4.2).
func reconstructFromDeviatoric(dev [][]float64) [][]float64 {
	sigma := la.MatAlloc(3, 3)
	zz := dev[2][2]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			iden := 0.0
			if i == j {
				iden = 1.0
			}
			sigma[i][j] = dev[i][j] - zz*iden
		}
	}
	return sigma
}

// firstPiola computes P = J σ F⁻ᵀ. la.MatInv yields F's inverse the
// same way mesh.Shape.CalcAtIp inverts the reference Jacobian; the
// determinant it also returns is discarded, and the caller-supplied J
// is used as is.
func firstPiola(sigma, F [][]float64, J float64) ([][]float64, error) {
	Finv := la.MatAlloc(3, 3)
	if _, err := la.MatInv(Finv, F, mesh.MinDet); err != nil {
		return nil, chk.Err("constitutive: F inversion failed: %v", err)
	}
	P := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += sigma[i][k] * Finv[j][k] // Finv transposed: F⁻ᵀ[k][j] = Finv[j][k]
			}
			P[i][j] = J * s
		}
	}
	return P, nil
}
