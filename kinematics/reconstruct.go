// Package kinematics assembles the reference-configuration deformation
// gradient field from sparse nodal displacement samples (spec.md §4.1).
// It depends only on package mesh (frozen topology/quadrature),
// mirroring fem/e_u.go's ElemU.Update IpStrainsAndInc* pattern,
// generalized from small-strain ε to the large-deformation gradient F
// since this system never solves equilibrium (no Non-goal forward
// simulation).
package kinematics

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/andresutrera/vfmident/mesh"
)

// Tensor is one reference-tensor-field entry: a ragged element×GP store
// of 3x3 matrices sharing mesh.Facts' offset/jw layout (spec.md §3's
// ReferenceTensorField).
type Tensor struct {
	facts *mesh.Facts
	F     [][][]float64 // [offset(e)+g] -> [3][3]
	J     []float64     // [offset(e)+g] -> det(F)
}

// NDim returns the field's backing mesh dimension.
func (t *Tensor) NDim() int { return t.facts.NDim() }

// At returns the deformation gradient and its determinant at (e,g).
// The returned matrix is owned by Tensor and must not be mutated.
func (t *Tensor) At(e, g int) ([][]float64, float64) {
	idx := t.facts.Offset[e] + g
	return t.F[idx], t.J[idx]
}

// Reconstruct builds a Tensor field F(e,g) = I + Σₐ u(nodeOf(e,a)) ⊗
// ∇ₓNₐ(e,g) for every integration point in facts, from a dense nodal
// displacement field u (length facts.NNodes, each a 3-vector; the
// z-component is 0 for 2D meshes).
//
// planeDeformation, when true, post-processes every F by clearing its
// out-of-plane shears and setting F[2][2] = 1/(F[0][0]·F[1][1]) (spec.md
// §4.1's "plane deformation" mode). guardPositiveJ, when true, fails the
// whole reconstruction the first time det(F) <= 0 is encountered.
//
// Node iteration is always in facts.ElemNodes[e] order, so the result is
// deterministic for identical inputs (spec.md §4.1's determinism
// requirement).
func Reconstruct(facts *mesh.Facts, u [][]float64, planeDeformation, guardPositiveJ bool) (*Tensor, error) {
	if len(u) != facts.NNodes {
		return nil, chk.Err("kinematics: displacement field has %d nodes, mesh has %d", len(u), facts.NNodes)
	}
	n := facts.Offset[facts.NElems]
	t := &Tensor{facts: facts, F: make([][][]float64, n), J: make([]float64, n)}
	finv := la.MatAlloc(3, 3)

	for e := 0; e < facts.NElems; e++ {
		nodes := facts.ElemNodes[e]
		for g := 0; g < facts.GPPerElem[e]; g++ {
			idx := facts.Offset[e] + g
			F := identity3()
			for a, nidx := range nodes {
				grad := facts.GradNAt(e, g, a)
				ua := u[nidx]
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						F[i][j] += ua[i] * grad[j]
					}
				}
			}
			if planeDeformation {
				applyPlaneDeformation(F)
			}
			J, invErr := la.MatInv(finv, F, mesh.MinDet)
			if invErr != nil {
				J = 0
			}
			if guardPositiveJ && J <= 0 {
				return nil, chk.Err("kinematics: det(F)=%g is non-positive at element idx=%d, gauss pt=%d", J, e, g)
			}
			t.F[idx] = F
			t.J[idx] = J
		}
	}
	return t, nil
}

// applyPlaneDeformation clears F's out-of-plane shears and enforces
// incompressibility in the out-of-plane axis, idempotently: applying it
// twice yields the same F as applying it once (spec.md §8, property 6),
// since F[2][2] is computed from F[0][0] and F[1][1], which it never
// writes, and clearing an already-zero entry is a no-op.
func applyPlaneDeformation(F [][]float64) {
	F[0][2], F[1][2] = 0, 0
	F[2][0], F[2][1] = 0, 0
	F[2][2] = 1.0 / (F[0][0] * F[1][1])
}

func identity3() [][]float64 {
	F := make([][]float64, 3)
	for i := range F {
		F[i] = make([]float64, 3)
	}
	F[0][0], F[1][1], F[2][2] = 1, 1, 1
	return F
}
