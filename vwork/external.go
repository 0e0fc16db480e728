package vwork

import (
	"github.com/cpmech/gosl/chk"

	"github.com/andresutrera/vfmident/mesh"
)

// LoadFrame is one time frame of resultant surface forces (spec.md
// §3's LoadFrame, the scalar time field dropped since ordering alone
// carries the time index per spec.md's DisplacementSeries convention).
type LoadFrame struct {
	Loads []SurfaceLoad
}

// SurfaceLoad is one named-surface resultant force within a LoadFrame.
type SurfaceLoad struct {
	Surface string
	Force   [3]float64
}

// VirtualNodalField is one virtual-field frame's per-node displacement,
// addressed by dense node index (the same indexing as mesh.Facts).
type VirtualNodalField [][3]float64

// External computes W_ext[v*T+t] = Σ force · u*(v,t',node*), where
// node* is the surface's single representative node, per spec.md
// §4.4's documented single-representative-node convention (mesh.
// SurfaceMap.RepresentativeNode; see also spec.md §9, Open Question 1).
//
// virtualU[v] holds one VirtualNodalField per virtual frame, under the
// same "1 or T frames" rule as Internal. T = len(loads).
func External(surfaces *mesh.SurfaceMap, loads []LoadFrame, virtualU [][]VirtualNodalField) ([]float64, error) {
	T := len(loads)
	nVF := len(virtualU)
	if T == 0 || nVF == 0 {
		return []float64{}, nil
	}

	out := make([]float64, nVF*T)
	for v := 0; v < nVF; v++ {
		nFrames := len(virtualU[v])
		for t := 0; t < T; t++ {
			tp, err := resolveFrame(nFrames, T, t)
			if err != nil {
				return nil, err
			}
			uStar := virtualU[v][tp]
			sum := 0.0
			for _, load := range loads[t].Loads {
				node, err := surfaces.RepresentativeNode(load.Surface)
				if err != nil {
					return nil, chk.Err("vwork: external work v=%d t=%d: %v", v, t, err)
				}
				if node < 0 || node >= len(uStar) {
					return nil, chk.Err("vwork: external work v=%d t=%d: surface %q representative node %d out of range", v, t, load.Surface, node)
				}
				u := uStar[node]
				sum += load.Force[0]*u[0] + load.Force[1]*u[1] + load.Force[2]*u[2]
			}
			out[v*T+t] = sum
		}
	}
	return out, nil
}
