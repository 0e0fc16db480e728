// Package material adapts the msolid half of the gofem ecosystem (the
// Model interface and its State) into the constitutive collaborator
// this system treats as an external, pluggable dependency (spec.md §6):
// a parameter-resolution mechanism plus a per-integration-point clone/
// stress-evaluation contract, restricted to laws whose stress is a
// function of the current deformation gradient and parameter vector
// only (no history, no rate type) — spec.md's Non-goals rule out
// plasticity/history-dependent laws outright.
package material

import "github.com/cpmech/gosl/la"

// Point is an owned, disposable material point: a clone of whatever
// state the mesh's own material point carries, with F and J
// overwritten and all stateful scratch fields zeroed. Mirrors
// msolid.State, trimmed to the large-deformation, history-free fields
// this system actually reads/writes (msolid.State.F, generalized: the
// teacher's rate-type fields EpsE/Alp/Dgam/Loading have no home here
// since history-dependent models are out of scope).
type Point struct {
	F [][]float64 // [3][3] deformation gradient
	J float64     // det(F)
}

// NewPoint allocates a zeroed Point with F = I, J = 1.
func NewPoint() *Point {
	p := &Point{F: la.MatAlloc(3, 3)}
	p.F[0][0], p.F[1][1], p.F[2][2] = 1, 1, 1
	p.J = 1
	return p
}

// SetF injects a deformation gradient and its determinant, as if the
// driver had just overwritten a cloned mesh material point's F (spec.md
// §4.2's "clones... injects F"). It does not validate det(F) > 0; that
// guard belongs to the kinematic reconstructor (spec.md §4.1) and is
// re-checked by the constitutive driver before evaluating stress.
func (p *Point) SetF(F [][]float64, J float64) {
	la.MatCopy(p.F, 1, F)
	p.J = J
}

// Set copies another point's F and J into this one, mirroring
// msolid.State.Set's copy-in-place contract (both points must already
// be allocated).
func (p *Point) Set(other *Point) {
	la.MatCopy(p.F, 1, other.F)
	p.J = other.J
}

// GetCopy returns an independent copy of this point, mirroring
// msolid.State.GetCopy. The constitutive driver does not call it: it
// isolates every integration-point evaluation by allocating a fresh
// point with NewPoint and injecting F with SetF.
func (p *Point) GetCopy() *Point {
	other := NewPoint()
	other.Set(p)
	return other
}
