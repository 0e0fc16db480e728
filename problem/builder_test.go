package problem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/andresutrera/vfmident/identify"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/param"
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

func zeroFrame() Frame {
	return Frame{Entries: []NodalDisplacement{
		{NodeID: 0}, {NodeID: 1}, {NodeID: 2}, {NodeID: 3},
		{NodeID: 4}, {NodeID: 5}, {NodeID: 6}, {NodeID: 7},
	}}
}

// Test_buildAndZeroResidual exercises the full pipeline end to end:
// zero measured displacement, zero virtual displacement, and a zero
// load must give a zero residual for any admissible theta (spec.md §8
// property 1, composed all the way up through the residual).
func Test_buildAndZeroResidual(tst *testing.T) {
	chk.PrintTitle("buildAndZeroResidual")
	cfg := Config{
		Mesh:         unitCube(),
		SurfaceNames: mesh.SurfaceNames{-11: "right"},
		ModelName:    "neo-hookean-compressible",
		Params: []param.Spec{
			{Name: "mu", Init: 1.0e6, Lo: 1.0e3, Hi: 1.0e9, Scale: 1.0},
			{Name: "K", Init: 2.0e6, Lo: 1.0e3, Hi: 1.0e9, Scale: 1.0},
		},
		Measured: []Frame{zeroFrame()},
		Virtual: []VirtualField{
			{Name: "vf1", Frames: []Frame{zeroFrame()}},
		},
		Loads: []LoadFrame{
			{Entries: []LoadEntry{{Surface: "right", Fx: 0, Fy: 0, Fz: 0}}},
		},
		Options: identify.DefaultOptions(),
	}
	p, err := Build(cfg)
	if err != nil {
		tst.Fatalf("Build: %v", err)
	}
	if p.NResiduals() != 1 {
		tst.Fatalf("expected 1 residual (nVF=1, T=1), got %d", p.NResiduals())
	}
	store := &StressStore{}
	r, err := p.Residual(store)([]float64{1.0e6, 2.0e6})
	if err != nil {
		tst.Fatalf("residual: %v", err)
	}
	chk.Scalar(tst, "residual", 1e-6, r[0], 0.0)
}

// Test_buildRejectsMismatchedFrameCounts checks the measured/load frame
// count validation.
func Test_buildRejectsMismatchedFrameCounts(tst *testing.T) {
	chk.PrintTitle("buildRejectsMismatchedFrameCounts")
	cfg := Config{
		Mesh:         unitCube(),
		SurfaceNames: mesh.SurfaceNames{-11: "right"},
		ModelName:    "neo-hookean-compressible",
		Params: []param.Spec{
			{Name: "mu", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
			{Name: "K", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
		},
		Measured: []Frame{zeroFrame(), zeroFrame()},
		Loads:    []LoadFrame{{}},
	}
	_, err := Build(cfg)
	if err == nil {
		tst.Fatalf("expected Build to fail for mismatched measured/load frame counts")
	}
}

// Test_buildRejectsBadVirtualFrameCount checks the "1 or T" rule at
// builder time.
func Test_buildRejectsBadVirtualFrameCount(tst *testing.T) {
	chk.PrintTitle("buildRejectsBadVirtualFrameCount")
	cfg := Config{
		Mesh:         unitCube(),
		SurfaceNames: mesh.SurfaceNames{-11: "right"},
		ModelName:    "neo-hookean-compressible",
		Params: []param.Spec{
			{Name: "mu", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
			{Name: "K", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
		},
		Measured: []Frame{zeroFrame(), zeroFrame()}, // T=2
		Virtual:  []VirtualField{{Frames: []Frame{zeroFrame(), zeroFrame(), zeroFrame()}}}, // 3 frames
		Loads:    []LoadFrame{{}, {}},
	}
	_, err := Build(cfg)
	if err == nil {
		tst.Fatalf("expected Build to fail for a bad virtual-field frame count")
	}
}

// Test_buildRejectsBadSaveVirtualWorkExtension checks the
// save_virtual_work extension validation.
func Test_buildRejectsBadSaveVirtualWorkExtension(tst *testing.T) {
	chk.PrintTitle("buildRejectsBadSaveVirtualWorkExtension")
	cfg := Config{
		Mesh:            unitCube(),
		ModelName:       "neo-hookean-compressible",
		Params:          []param.Spec{{Name: "mu", Init: 1, Lo: 0.1, Hi: 10, Scale: 1}},
		Measured:        []Frame{zeroFrame()},
		Loads:           []LoadFrame{{}},
		SaveVirtualWork: "out.csv",
	}
	_, err := Build(cfg)
	if err == nil {
		tst.Fatalf("expected Build to fail for a non-.txt save_virtual_work path")
	}
}
