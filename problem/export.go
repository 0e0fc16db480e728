package problem

import (
	"github.com/andresutrera/vfmident/kinematics"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/vwork"
)

// NNodes and NElems expose the dense mesh sizes package out needs to
// shape its fixed binary layout without reaching into Facts itself.
func (p *VFMProblem) NNodes() int { return p.Facts.NNodes }
func (p *VFMProblem) NElems() int { return p.Facts.NElems }

// MeasuredDisplacement returns the dense measured nodal displacement at
// frame t, shaped [NNodes][3] (spec.md §6's "measured nodal
// displacement" plot variable).
func (p *VFMProblem) MeasuredDisplacement(t int) [][3]float64 {
	return toVec3Array3(p.measuredU[t])
}

// VirtualDisplacement returns virtual field v's dense nodal displacement
// at measured/load frame t, resolving the "1 or T" frame rule the same
// way vwork.Internal/External do (spec.md §4.3/§4.4).
func (p *VFMProblem) VirtualDisplacement(v, t int) ([][3]float64, error) {
	tp, err := vwork.ResolveFrame(len(p.virtualU[v]), p.T, t)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(p.virtualU[v][tp]))
	copy(out, p.virtualU[v][tp])
	return out, nil
}

// AverageMeasuredF returns the element-averaged measured deformation
// gradient at frame t, one 3x3 matrix per element (spec.md §6).
func (p *VFMProblem) AverageMeasuredF(t int) [][3][3]float64 {
	return averageTensor(p.Facts, p.measuredF[t])
}

// AverageVirtualF returns virtual field v's element-averaged
// deformation gradient at measured/load frame t, after resolving the
// "1 or T" frame rule.
func (p *VFMProblem) AverageVirtualF(v, t int) ([][3][3]float64, error) {
	tp, err := vwork.ResolveFrame(len(p.virtualF[v]), p.T, t)
	if err != nil {
		return nil, err
	}
	return averageTensor(p.Facts, p.virtualF[v][tp]), nil
}

// AverageStress returns the element-averaged Cauchy and first Piola
// stress at frame t from an already-evaluated StressStore (spec.md §6).
func (p *VFMProblem) AverageStress(store *StressStore, t int) (sigma, piola [][3][3]float64, err error) {
	frame := store.Frames[t]
	sigma = make([][3][3]float64, p.Facts.NElems)
	piola = make([][3][3]float64, p.Facts.NElems)
	for e := 0; e < p.Facts.NElems; e++ {
		n := p.Facts.GPPerElem[e]
		var sSum, pSum [3][3]float64
		for g := 0; g < n; g++ {
			idx := p.Facts.Offset[e] + g
			addMat3(&sSum, frame[idx].Sigma)
			addMat3(&pSum, frame[idx].P)
		}
		scaleMat3(&sSum, 1.0/float64(n))
		scaleMat3(&pSum, 1.0/float64(n))
		sigma[e] = sSum
		piola[e] = pSum
	}
	return sigma, piola, nil
}

// averageTensor returns the element-averaged deformation gradient of tf,
// the arithmetic mean over each element's integration points (spec.md
// §6's element-averaging rule).
func averageTensor(facts *mesh.Facts, tf *kinematics.Tensor) [][3][3]float64 {
	out := make([][3][3]float64, facts.NElems)
	for e := 0; e < facts.NElems; e++ {
		n := facts.GPPerElem[e]
		var sum [3][3]float64
		for g := 0; g < n; g++ {
			F, _ := tf.At(e, g)
			addMat3(&sum, F)
		}
		scaleMat3(&sum, 1.0/float64(n))
		out[e] = sum
	}
	return out
}

func toVec3Array3(u []float64) [][3]float64 {
	n := len(u) / 3
	out := make([][3]float64, n)
	for i := 0; i < n; i++ {
		out[i] = [3]float64{u[3*i], u[3*i+1], u[3*i+2]}
	}
	return out
}

func addMat3(dst *[3][3]float64, m [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i][j] += m[i][j]
		}
	}
}

func scaleMat3(dst *[3][3]float64, s float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i][j] *= s
		}
	}
}
