package param

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/andresutrera/vfmident/material"
)

func TestApplyMirrorsValues(tst *testing.T) {
	chk.PrintTitle("applyMirrorsValues")
	mat, err := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0},
		&fun.Prm{N: "K", V: 1.0},
	})
	if err != nil {
		tst.Fatalf("material.New: %v", err)
	}
	specs := []Spec{
		{Name: "mu", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
		{Name: "K", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0},
	}
	app, err := NewApplier(specs, mat.Params())
	if err != nil {
		tst.Fatalf("NewApplier: %v", err)
	}
	if err := app.Apply([]float64{2.5, 7.0}); err != nil {
		tst.Fatalf("Apply: %v", err)
	}
	v, _ := mat.Params().Value("mu")
	chk.Scalar(tst, "mu", 1e-15, v, 2.5)
	v, _ = mat.Params().Value("K")
	chk.Scalar(tst, "K", 1e-15, v, 7.0)
}

func TestApplyWrongLengthFails(tst *testing.T) {
	chk.PrintTitle("applyWrongLengthFails")
	mat, _ := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0}, &fun.Prm{N: "K", V: 1.0},
	})
	specs := []Spec{{Name: "mu", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0}}
	app, err := NewApplier(specs, mat.Params())
	if err != nil {
		tst.Fatalf("NewApplier: %v", err)
	}
	if err := app.Apply([]float64{1, 2}); err == nil {
		tst.Fatalf("expected Apply to fail on length mismatch")
	}
}

func TestUnresolvableNameFails(tst *testing.T) {
	chk.PrintTitle("unresolvableNameFails")
	mat, _ := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0}, &fun.Prm{N: "K", V: 1.0},
	})
	specs := []Spec{{Name: "does-not-exist", Init: 1.0, Lo: 0.1, Hi: 10, Scale: 1.0}}
	_, err := NewApplier(specs, mat.Params())
	if err == nil {
		tst.Fatalf("expected NewApplier to fail for an unresolvable name")
	}
}

func TestInvalidSpecFails(tst *testing.T) {
	chk.PrintTitle("invalidSpecFails")
	mat, _ := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: 1.0}, &fun.Prm{N: "K", V: 1.0},
	})
	specs := []Spec{{Name: "mu", Init: 20.0, Lo: 0.1, Hi: 10, Scale: 1.0}} // init > hi
	_, err := NewApplier(specs, mat.Params())
	if err == nil {
		tst.Fatalf("expected NewApplier to fail for an out-of-bounds init")
	}
}
