package kinematics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/andresutrera/vfmident/mesh"
)

func unitCube() *mesh.Mesh {
	verts := []*mesh.Vert{
		{Id: 0, C: []float64{0, 0, 0}},
		{Id: 1, C: []float64{1, 0, 0}},
		{Id: 2, C: []float64{1, 1, 0}},
		{Id: 3, C: []float64{0, 1, 0}},
		{Id: 4, C: []float64{0, 0, 1}},
		{Id: 5, C: []float64{1, 0, 1}},
		{Id: 6, C: []float64{1, 1, 1}},
		{Id: 7, C: []float64{0, 1, 1}},
	}
	cell := &mesh.Cell{
		Id: 0, Tag: -1, Type: "hex8",
		Verts:    []int{0, 1, 2, 3, 4, 5, 6, 7},
		FaceTags: []int{-10, -11, -12, -13, -14, -15},
	}
	return &mesh.Mesh{Verts: verts, Cells: []*mesh.Cell{cell}}
}

// Test_zeroDisplacementIdentity checks spec.md §8 property 1's
// kinematic half: u=0 everywhere must reconstruct F=I at every point.
func Test_zeroDisplacementIdentity(tst *testing.T) {
	chk.PrintTitle("zeroDisplacementIdentity")
	m := unitCube()
	facts, err := mesh.Build(m, nil)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	u := make([][]float64, facts.NNodes)
	for i := range u {
		u[i] = []float64{0, 0, 0}
	}
	tf, err := Reconstruct(facts, u, false, true)
	if err != nil {
		tst.Fatalf("Reconstruct: %v", err)
	}
	for g := 0; g < facts.GPPerElem[0]; g++ {
		F, J := tf.At(0, g)
		chk.Scalar(tst, "J", 1e-12, J, 1.0)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				chk.Scalar(tst, "F_ij", 1e-12, F[i][j], want)
			}
		}
	}
}

// Test_uniaxialStretch applies u_x = (λ-1)·x to every node (a uniform
// stretch along x) and checks F = diag(λ,1,1).
func Test_uniaxialStretch(tst *testing.T) {
	chk.PrintTitle("uniaxialStretch")
	m := unitCube()
	facts, err := mesh.Build(m, nil)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	lam := 1.2
	u := make([][]float64, facts.NNodes)
	for _, v := range m.Verts {
		idx := facts.NodeId2idx[v.Id]
		u[idx] = []float64{(lam - 1.0) * v.C[0], 0, 0}
	}
	tf, err := Reconstruct(facts, u, false, true)
	if err != nil {
		tst.Fatalf("Reconstruct: %v", err)
	}
	F, J := tf.At(0, 0)
	chk.Scalar(tst, "F00", 1e-9, F[0][0], lam)
	chk.Scalar(tst, "F11", 1e-9, F[1][1], 1.0)
	chk.Scalar(tst, "F22", 1e-9, F[2][2], 1.0)
	chk.Scalar(tst, "J", 1e-9, J, lam)
}

// Test_planeDeformationIdempotent checks spec.md §8 property 6.
func Test_planeDeformationIdempotent(tst *testing.T) {
	chk.PrintTitle("planeDeformationIdempotent")
	F := [][]float64{
		{1.1, 0.05, 0.02},
		{0.03, 0.9, 0.01},
		{0.04, 0.02, 1.0},
	}
	applyPlaneDeformation(F)
	once := cloneMat(F)
	applyPlaneDeformation(F)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, "F_ij idempotent", 1e-15, F[i][j], once[i][j])
		}
	}
}

// Test_nonPositiveJacobianFails checks the determinant guard: a wildly
// inverted displacement field must fail reconstruction.
func Test_nonPositiveJacobianFails(tst *testing.T) {
	chk.PrintTitle("nonPositiveJacobianFails")
	m := unitCube()
	facts, err := mesh.Build(m, nil)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	u := make([][]float64, facts.NNodes)
	for _, v := range m.Verts {
		idx := facts.NodeId2idx[v.Id]
		u[idx] = []float64{-2.0 * v.C[0], 0, 0} // F00 = 1 - 2 = -1
	}
	_, err = Reconstruct(facts, u, false, true)
	if err == nil {
		tst.Fatalf("expected Reconstruct to fail for an inverted deformation")
	}
}

func cloneMat(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = append([]float64{}, a[i]...)
	}
	return out
}
