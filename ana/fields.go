// Package ana synthesizes analytic fixtures for the testable properties
// of spec.md §8: measured displacement fields, virtual displacement
// fields, and resultant surface loads for a known θ_true, generated by
// forward-evaluating a constitutive.Driver at a prescribed uniform
// deformation gradient instead of running a finite-element solve.
//
// Grounded on the teacher's own ana package (PressCylin, PlateHole):
// a struct that Init()s from a fun.Prms-free, directly-assigned set of
// physical inputs and exposes Displacement/Stress query methods, the
// same "closed-form solution as a reusable fixture" idiom — repurposed
// here to drive this system's virtual-work identification rather than
// to verify gofem's own FE solve (spec.md §10 records this decision;
// the original FEBioVFM source that spec.md was distilled from is
// unavailable in this retrieval pack).
package ana

// UniformField is a constant deformation gradient F = I + H, applied
// about the reference origin: u(X) = H·X (spec.md §10's "uniaxial
// extension"/"biaxial stretch" measured fields).
type UniformField struct {
	H [3][3]float64
}

// Uniaxial returns the uniform field for a pure x-stretch of lambda
// (spec.md §8 scenario S2).
func Uniaxial(lambda float64) UniformField {
	return UniformField{H: [3][3]float64{
		{lambda - 1, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}}
}

// Biaxial returns the uniform field for independent x/y stretches
// (spec.md §8 scenario S3).
func Biaxial(lambdaX, lambdaY float64) UniformField {
	return UniformField{H: [3][3]float64{
		{lambdaX - 1, 0, 0},
		{0, lambdaY - 1, 0},
		{0, 0, 0},
	}}
}

// Displacement evaluates u(X) = H·X.
func (f UniformField) Displacement(X [3]float64) [3]float64 {
	var u [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			u[i] += f.H[i][j] * X[j]
		}
	}
	return u
}

// F returns the deformation gradient I + H.
func (f UniformField) F() [3][3]float64 {
	Fm := f.H
	for i := 0; i < 3; i++ {
		Fm[i][i] += 1
	}
	return Fm
}

// Translation is a rigid, position-independent virtual displacement
// field (spec.md §8 scenario S2's "rigid translation in x by 1").
type Translation struct {
	Dx, Dy, Dz float64
}

// Displacement returns the constant (Dx, Dy, Dz) regardless of X.
func (t Translation) Displacement(_ [3]float64) [3]float64 {
	return [3]float64{t.Dx, t.Dy, t.Dz}
}
