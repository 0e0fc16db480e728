package vwork

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/andresutrera/vfmident/constitutive"
	"github.com/andresutrera/vfmident/kinematics"
	"github.com/andresutrera/vfmident/material"
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

// Test_zeroEverythingGivesZeroInternalWork checks spec.md §8 property 1
// at the assembler level: P=0 everywhere must give W_int=0.
func Test_zeroEverythingGivesZeroInternalWork(tst *testing.T) {
	chk.PrintTitle("zeroEverythingGivesZeroInternalWork")
	m := unitCube()
	facts, err := mesh.Build(m, nil)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	zeroU := make([][]float64, facts.NNodes)
	for i := range zeroU {
		zeroU[i] = []float64{0, 0, 0}
	}
	mat, err := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0e6}, &fun.Prm{N: "K", V: 1.0e6},
	})
	if err != nil {
		tst.Fatalf("material.New: %v", err)
	}
	measF, err := kinematics.Reconstruct(facts, zeroU, false, true)
	if err != nil {
		tst.Fatalf("Reconstruct: %v", err)
	}
	drv := constitutive.New(mat)
	stresses, err := drv.Evaluate(facts, measF)
	if err != nil {
		tst.Fatalf("Evaluate: %v", err)
	}
	virtF, err := kinematics.Reconstruct(facts, zeroU, false, true)
	if err != nil {
		tst.Fatalf("Reconstruct: %v", err)
	}
	w, err := Internal(facts, [][]constitutive.Stresses{stresses}, [][]*kinematics.Tensor{{virtF}})
	if err != nil {
		tst.Fatalf("Internal: %v", err)
	}
	chk.Scalar(tst, "W_int", 1e-9, w[0], 0.0)
}

// Test_emptyStoresGiveEmptyVector checks the T=0/nVF=0 edge policy.
func Test_emptyStoresGiveEmptyVector(tst *testing.T) {
	chk.PrintTitle("emptyStoresGiveEmptyVector")
	facts, _ := mesh.Build(unitCube(), nil)
	w, err := Internal(facts, nil, nil)
	if err != nil {
		tst.Fatalf("Internal: %v", err)
	}
	if len(w) != 0 {
		tst.Fatalf("expected empty vector, got len=%d", len(w))
	}
}

// Test_badFrameCountFails checks the "1 or T frames" fatal rule.
func Test_badFrameCountFails(tst *testing.T) {
	chk.PrintTitle("badFrameCountFails")
	facts, _ := mesh.Build(unitCube(), nil)
	zeroU := make([][]float64, facts.NNodes)
	for i := range zeroU {
		zeroU[i] = []float64{0, 0, 0}
	}
	tf1, _ := kinematics.Reconstruct(facts, zeroU, false, true)
	tf2, _ := kinematics.Reconstruct(facts, zeroU, false, true)
	mat, _ := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0}, &fun.Prm{N: "K", V: 1.0},
	})
	drv := constitutive.New(mat)
	s1, _ := drv.Evaluate(facts, tf1)
	s2, _ := drv.Evaluate(facts, tf2)
	stresses := [][]constitutive.Stresses{s1, s2} // T=2
	// virtual field with 3 frames: neither 1 nor T=2
	_, err := Internal(facts, stresses, [][]*kinematics.Tensor{{tf1, tf1, tf1}})
	if err == nil {
		tst.Fatalf("expected Internal to fail for a bad virtual-field frame count")
	}
}

// Test_externalWorkUsesRepresentativeNode checks spec.md §4.4's core
// arithmetic against a hand-computed value.
func Test_externalWorkUsesRepresentativeNode(tst *testing.T) {
	chk.PrintTitle("externalWorkUsesRepresentativeNode")
	m := unitCube()
	facts, err := mesh.Build(m, nil)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	names := mesh.SurfaceNames{-11: "right"}
	surfaces, err := mesh.ResolveSurfaces(m, facts, names)
	if err != nil {
		tst.Fatalf("ResolveSurfaces: %v", err)
	}
	node, err := surfaces.RepresentativeNode("right")
	if err != nil {
		tst.Fatalf("RepresentativeNode: %v", err)
	}

	uStarFrame := make(VirtualNodalField, facts.NNodes)
	uStarFrame[node] = [3]float64{0.01, 0, 0}

	loads := []LoadFrame{{Loads: []SurfaceLoad{{Surface: "right", Force: [3]float64{100, 0, 0}}}}}
	w, err := External(surfaces, loads, [][]VirtualNodalField{{uStarFrame}})
	if err != nil {
		tst.Fatalf("External: %v", err)
	}
	chk.Scalar(tst, "W_ext", 1e-12, w[0], 1.0)
}

// Test_unknownSurfaceFails checks the fatal-validation requirement.
func Test_unknownSurfaceFails(tst *testing.T) {
	chk.PrintTitle("unknownSurfaceFails")
	m := unitCube()
	facts, _ := mesh.Build(m, nil)
	surfaces, _ := mesh.ResolveSurfaces(m, facts, mesh.SurfaceNames{})
	loads := []LoadFrame{{Loads: []SurfaceLoad{{Surface: "ghost", Force: [3]float64{1, 0, 0}}}}}
	uStarFrame := make(VirtualNodalField, facts.NNodes)
	_, err := External(surfaces, loads, [][]VirtualNodalField{{uStarFrame}})
	if err == nil {
		tst.Fatalf("expected External to fail for an unknown surface")
	}
}
