package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"

	"github.com/andresutrera/vfmident/constitutive"
	"github.com/andresutrera/vfmident/material"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/problem"
)

// ForwardStress evaluates mat's Cauchy and first Piola stress at a
// single uniform deformation gradient F, with no mesh/Tensor context —
// the same per-point evaluation constitutive.Driver performs at every
// integration point, used here to synthesize a known θ_true's
// resultant load (spec.md §10).
func ForwardStress(mat material.Collaborator, F [3][3]float64) (sigma, piola [3][3]float64, err error) {
	Fm := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Fm[i][j] = F[i][j]
		}
	}
	Finv := la.MatAlloc(3, 3)
	J, invErr := la.MatInv(Finv, Fm, mesh.MinDet)
	if invErr != nil {
		return sigma, piola, chk.Err("ana: deformation gradient inversion failed: %v", invErr)
	}
	s, err := constitutive.New(mat).EvaluateAt(Fm, J)
	if err != nil {
		return sigma, piola, err
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sigma[i][j] = s.Sigma[i][j]
			piola[i][j] = s.P[i][j]
		}
	}
	return sigma, piola, nil
}

// ResultantForce integrates a uniform first Piola traction over a unit
// reference-area, axis-aligned face with outward reference normal
// (Nanson's relation is already carried by P, so the traction is simply
// P·N): spec.md §8 scenario S2's "measured resultant on the +x face".
func ResultantForce(piola [3][3]float64, normal [3]float64) [3]float64 {
	var f [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f[i] += piola[i][j] * normal[j]
		}
	}
	return f
}

// SolveUniaxialStretchForResultantFx inverts ResultantForce/ForwardStress:
// given a target resultant on the +x face, it finds the stretch lambda
// that produces it under a uniaxial field, via gosl/num.NlSolver with a
// numerical Jacobian (mirroring ana.PressCylin.Calc_c's use of NlSolver
// to find the elastic/plastic transition radius from a target pressure).
// Used to synthesize scenarios where θ_true is known but the stretch
// that realizes a desired load level is not (spec.md §8 scenario S2's
// "measured resultant on the +x face", run in reverse).
func SolveUniaxialStretchForResultantFx(mat material.Collaborator, targetFx, lambda0 float64) (lambda float64, err error) {
	var nls num.NlSolver
	defer nls.Clean()
	ffcn := func(fx, x []float64) error {
		_, piola, ferr := ForwardStress(mat, Uniaxial(x[0]).F())
		if ferr != nil {
			return ferr
		}
		force := ResultantForce(piola, [3]float64{1, 0, 0})
		fx[0] = force[0] - targetFx
		return nil
	}
	nls.Init(1, ffcn, nil, nil, false, true, nil)
	Res := []float64{lambda0}
	if serr := nls.Solve(Res, true); serr != nil {
		return 0, chk.Err("ana: stretch inversion for resultant Fx=%g failed: %v", targetFx, serr)
	}
	return Res[0], nil
}

// displacer is the minimal contract NodalDisplacements needs from a
// synthetic field (UniformField and Translation both satisfy it).
type displacer interface {
	Displacement(X [3]float64) [3]float64
}

// NodalDisplacements evaluates field at every node's reference
// coordinate, building a problem.Frame ready for problem.Config
// (spec.md §10). coords[i] is node i's reference position; node ids are
// assigned densely as 0..len(coords)-1, matching the unit-cube fixture
// convention shared by every package's tests.
func NodalDisplacements(coords [][3]float64, field displacer) problem.Frame {
	entries := make([]problem.NodalDisplacement, len(coords))
	for i, X := range coords {
		u := field.Displacement(X)
		entries[i] = problem.NodalDisplacement{NodeID: i, Ux: u[0], Uy: u[1], Uz: u[2]}
	}
	return problem.Frame{Entries: entries}
}
