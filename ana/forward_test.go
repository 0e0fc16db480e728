package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/andresutrera/vfmident/material"
)

func neoHookean(mu, K float64) material.Collaborator {
	mat, err := material.New("neo-hookean-compressible", fun.Prms{
		&fun.Prm{N: "mu", V: mu},
		&fun.Prm{N: "K", V: K},
	})
	if err != nil {
		panic(err)
	}
	return mat
}

// Test_forwardStressZeroAtIdentity exercises spec.md §8 property 1
// through ana's forward path: F=I gives zero stress for any θ.
func Test_forwardStressZeroAtIdentity(tst *testing.T) {
	chk.PrintTitle("forwardStressZeroAtIdentity")
	mat := neoHookean(1.0, 1000.0)
	id := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	sigma, piola, err := ForwardStress(mat, id)
	if err != nil {
		tst.Fatalf("ForwardStress: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, "sigma", 1e-12, sigma[i][j], 0.0)
			chk.Scalar(tst, "piola", 1e-12, piola[i][j], 0.0)
		}
	}
}

// Test_resultantForceOnPlusXFace exercises spec.md §8 scenario S2's
// synthetic-load construction: the resultant on the +x face is the
// first Piola stress's first column.
func Test_resultantForceOnPlusXFace(tst *testing.T) {
	chk.PrintTitle("resultantForceOnPlusXFace")
	mat := neoHookean(1.0, 1000.0)
	field := Uniaxial(1.10)
	_, piola, err := ForwardStress(mat, field.F())
	if err != nil {
		tst.Fatalf("ForwardStress: %v", err)
	}
	force := ResultantForce(piola, [3]float64{1, 0, 0})
	chk.Scalar(tst, "Fx", 1e-12, force[0], piola[0][0])
	chk.Scalar(tst, "Fy", 1e-12, force[1], piola[1][0])
	chk.Scalar(tst, "Fz", 1e-12, force[2], piola[2][0])
}

// Test_solveUniaxialStretchForResultantFxInvertsForwardStress checks
// that SolveUniaxialStretchForResultantFx recovers the lambda a forward
// evaluation was generated from, round-tripping through gosl/num.
func Test_solveUniaxialStretchForResultantFxInvertsForwardStress(tst *testing.T) {
	chk.PrintTitle("solveUniaxialStretchForResultantFxInvertsForwardStress")
	mat := neoHookean(1.0, 1000.0)
	lambdaTrue := 1.10
	_, piola, err := ForwardStress(mat, Uniaxial(lambdaTrue).F())
	if err != nil {
		tst.Fatalf("ForwardStress: %v", err)
	}
	targetFx := ResultantForce(piola, [3]float64{1, 0, 0})[0]

	lambda, err := SolveUniaxialStretchForResultantFx(mat, targetFx, 1.0)
	if err != nil {
		tst.Fatalf("SolveUniaxialStretchForResultantFx: %v", err)
	}
	chk.Scalar(tst, "lambda", 1e-6, lambda, lambdaTrue)
}
