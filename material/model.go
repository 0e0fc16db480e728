package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Kind tags a Collaborator's stress representation. Rather than type-
// switching or downcasting a Collaborator to decide whether it is
// uncoupled, the constitutive driver dispatches on Kind once per model
// (spec.md §9: "expose it as an enum at the provider interface, not as
// a downcast inside the driver").
type Kind int

const (
	// KindGeneral models expose the full Cauchy stress directly.
	KindGeneral Kind = iota
	// KindUncoupled models expose only the deviatoric Cauchy stress; the
	// driver reconstructs a full stress tensor under the σ_zz=0
	// pressure-recovery convention (spec.md §4.2).
	KindUncoupled
)

// Collaborator is the constitutive-model contract this system treats as
// an external, pluggable dependency (spec.md §6). It is generalized
// from msolid.Model, trimmed to laws whose stress depends only on the
// current deformation gradient and a fixed parameter vector (no
// history, no rate form — plasticity and other history-dependent laws
// are out of scope).
type Collaborator interface {
	// Init resolves parameter names into the model's internal fields,
	// mirroring msolid.Solid.Init's switch-over-prms.N pattern.
	Init(prms fun.Prms) error

	// Kind reports whether Stress or DevStress is the valid read.
	Kind() Kind

	// Params returns the model's resolvable parameter record.
	Params() *Params

	// Stress returns the full Cauchy stress at the point's current F.
	// Valid only when Kind() == KindGeneral.
	Stress(pt *Point) ([][]float64, error)

	// DevStress returns the deviatoric Cauchy stress at the point's
	// current F. Valid only when Kind() == KindUncoupled.
	DevStress(pt *Point) ([][]float64, error)

	// Clone returns an independent copy carrying the same parameters,
	// for the constitutive driver's per-integration-point isolation
	// guarantee (spec.md §4.2: never mutate the mesh's own material
	// point).
	Clone() Collaborator
}

// errNotGeneral/errNotUncoupled are the sentinel shapes returned by a
// model's unsupported stress method, kept as functions rather than
// static errors so the message carries the model name.
func errNotGeneral(name string) error {
	return chk.Err("material: %q is an uncoupled model; read DevStress, not Stress", name)
}

func errNotUncoupled(name string) error {
	return chk.Err("material: %q is a general model; read Stress, not DevStress", name)
}
