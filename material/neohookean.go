package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// NeoHookeanCompressible implements σ = (μ/J)(b - I) + K(J-1)I, the
// standard compressible Neo-Hookean law, as a KindGeneral Collaborator.
// Grounded on msolid/hyperelast1.go and msolid/ogden.go's parameter-
// loop Init pattern and tsr.Alloc2-style auxiliary tensor storage,
// generalized from their small-strain/principal-stretch formulations to
// a direct function of the full deformation gradient (spec.md §4.8).
type NeoHookeanCompressible struct {
	prms fun.Prms
	mu   float64
	bulk float64
	b    [][]float64 // auxiliary left Cauchy-Green tensor, reused per Stress call
}

func init() {
	allocators["neo-hookean-compressible"] = func() Collaborator { return newNeoHookeanCompressible() }
}

func newNeoHookeanCompressible() *NeoHookeanCompressible {
	return &NeoHookeanCompressible{
		prms: fun.Prms{
			&fun.Prm{N: "mu", V: 1.0},
			&fun.Prm{N: "K", V: 1.0},
		},
		b: la.MatAlloc(3, 3),
	}
}

// Init resolves the mu/K parameters from a prms record, generalizing
// msolid/elasticity.go's switch-over-prms.N Init loop.
func (o *NeoHookeanCompressible) Init(prms fun.Prms) error {
	o.prms = prms
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.mu = p.V
		case "K":
			o.bulk = p.V
		}
	}
	return nil
}

func (o *NeoHookeanCompressible) Kind() Kind      { return KindGeneral }
func (o *NeoHookeanCompressible) Params() *Params { return NewParams(o.prms) }

func (o *NeoHookeanCompressible) Clone() Collaborator {
	c := newNeoHookeanCompressible()
	c.prms = make(fun.Prms, len(o.prms))
	for i, p := range o.prms {
		pc := *p
		c.prms[i] = &pc
	}
	c.Init(c.prms)
	return c
}

// Stress computes σ = (μ/J)(b - I) + K(J-1)I with b = F Fᵀ.
func (o *NeoHookeanCompressible) Stress(pt *Point) ([][]float64, error) {
	if pt.J <= 0 {
		return nil, chk.Err("material: neo-hookean-compressible: det(F)=%g is non-positive", pt.J)
	}
	leftCauchyGreen(o.b, pt.F)
	sig := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			iden := 0.0
			if i == j {
				iden = 1.0
			}
			sig[i][j] = (o.mu/pt.J)*(o.b[i][j]-iden) + o.bulk*(pt.J-1.0)*iden
		}
	}
	return sig, nil
}

func (o *NeoHookeanCompressible) DevStress(pt *Point) ([][]float64, error) {
	return nil, errNotUncoupled("neo-hookean-compressible")
}

// NeoHookeanUncoupled implements the deviatoric-only branch of an
// uncoupled hyperelastic law: dev(σ) = μ J^(-2/3) dev(b̄), b̄ = F Fᵀ.
// The volumetric response is intentionally not modelled here; this
// system reconstructs a full stress tensor from DevStress alone under
// the σ_zz=0 pressure-recovery convention (spec.md §4.2, a documented
// limitation carried over unchanged from spec.md).
type NeoHookeanUncoupled struct {
	prms fun.Prms
	mu   float64
	b    [][]float64
}

func init() {
	allocators["neo-hookean-uncoupled"] = func() Collaborator { return newNeoHookeanUncoupled() }
}

func newNeoHookeanUncoupled() *NeoHookeanUncoupled {
	return &NeoHookeanUncoupled{
		prms: fun.Prms{&fun.Prm{N: "mu", V: 1.0}},
		b:    la.MatAlloc(3, 3),
	}
}

func (o *NeoHookeanUncoupled) Init(prms fun.Prms) error {
	o.prms = prms
	for _, p := range prms {
		if p.N == "mu" {
			o.mu = p.V
		}
	}
	return nil
}

func (o *NeoHookeanUncoupled) Kind() Kind      { return KindUncoupled }
func (o *NeoHookeanUncoupled) Params() *Params { return NewParams(o.prms) }

func (o *NeoHookeanUncoupled) Clone() Collaborator {
	c := newNeoHookeanUncoupled()
	c.prms = make(fun.Prms, len(o.prms))
	for i, p := range o.prms {
		pc := *p
		c.prms[i] = &pc
	}
	c.Init(c.prms)
	return c
}

func (o *NeoHookeanUncoupled) Stress(pt *Point) ([][]float64, error) {
	return nil, errNotGeneral("neo-hookean-uncoupled")
}

func (o *NeoHookeanUncoupled) DevStress(pt *Point) ([][]float64, error) {
	if pt.J <= 0 {
		return nil, chk.Err("material: neo-hookean-uncoupled: det(F)=%g is non-positive", pt.J)
	}
	leftCauchyGreen(o.b, pt.F)
	jbar := math.Pow(pt.J, -2.0/3.0)
	tr := (o.b[0][0] + o.b[1][1] + o.b[2][2]) / 3.0
	dev := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := o.b[i][j]
			if i == j {
				d -= tr
			}
			dev[i][j] = o.mu * jbar * d
		}
	}
	return dev, nil
}

// leftCauchyGreen computes b = F Fᵀ into the caller-owned 3x3 out.
func leftCauchyGreen(out, F [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += F[i][k] * F[j][k]
			}
			out[i][j] = s
		}
	}
}
