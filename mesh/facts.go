package mesh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Facts is the frozen, read-only mesh topology and quadrature data this
// system reconstructs kinematics and stresses from. It is built once
// from a raw Mesh restricted to solid-domain cells, and never mutated
// afterwards (spec.md §3's MeshFacts). All indices are dense, zero-based
// and contiguous; node/element identifiers supplied by the mesh
// collaborator are opaque and are translated through NodeId2idx/
// ElemId2idx exactly once, at Build time.
type Facts struct {
	NNodes int
	NElems int

	NodeId2idx map[int]int
	ElemId2idx map[int]int

	ElemNodes [][]int // [e] -> ordered node indices
	GPPerElem []int   // [e] -> integration-point count
	Offset    []int   // [nElems+1], prefix sum of GPPerElem

	JW []float64 // [offset[e]+g] = det(J0(e,g)) * w(g), always > 0

	gradN [][][]float64 // [offset[e]+g][nEn(e)] -> reference gradient of Na, 3-vector
	ndim  int
}

// NDim is the mesh's geometric dimension (2 or 3), derived from the
// cell shapes used.
func (f *Facts) NDim() int { return f.ndim }

// GradNAt returns ∇ₓNₐ(e,g) for local node a, a 3-vector with a zero
// z-component in 2D. The slice is owned by Facts and must not be
// mutated by callers.
func (f *Facts) GradNAt(e, g, a int) []float64 {
	idx := f.Offset[e] + g
	return f.gradN[idx][a]
}

// Build assembles Facts from a raw Mesh, keeping only cells whose Tag is
// in solidDomainTags (an empty/nil slice means "all cells are solid",
// matching a single-domain experiment). Build fails fatally (returns a
// non-nil error) if any reference Jacobian is non-positive anywhere,
// per spec.md §3's jw>0 invariant.
func Build(m *Mesh, solidDomainTags []int) (*Facts, error) {
	allowed := func(tag int) bool { return true }
	if len(solidDomainTags) > 0 {
		set := make(map[int]bool, len(solidDomainTags))
		for _, t := range solidDomainTags {
			set[t] = true
		}
		allowed = func(tag int) bool { return set[tag] }
	}

	var cells []*Cell
	for _, c := range m.Cells {
		if allowed(c.Tag) {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return nil, chk.Err("mesh: no solid-domain cells found (check domain tags)")
	}

	f := &Facts{}

	// node id -> idx, restricted to nodes actually referenced by solid cells
	f.NodeId2idx = make(map[int]int)
	nodeOrder := []int{}
	for _, c := range cells {
		for _, vid := range c.Verts {
			if _, ok := f.NodeId2idx[vid]; !ok {
				f.NodeId2idx[vid] = -1
				nodeOrder = append(nodeOrder, vid)
			}
		}
	}
	sort.Ints(nodeOrder)
	for i, vid := range nodeOrder {
		f.NodeId2idx[vid] = i
	}
	f.NNodes = len(nodeOrder)

	vertById := make(map[int]*Vert, len(m.Verts))
	for _, v := range m.Verts {
		vertById[v.Id] = v
	}

	f.NElems = len(cells)
	f.ElemId2idx = make(map[int]int, f.NElems)
	f.ElemNodes = make([][]int, f.NElems)
	f.GPPerElem = make([]int, f.NElems)
	f.Offset = make([]int, f.NElems+1)

	type elemGeom struct {
		shp *Shape
		x   [][]float64 // [ndim][nverts]
		ips []GaussPoint
	}
	geoms := make([]elemGeom, f.NElems)

	total := 0
	for e, c := range cells {
		f.ElemId2idx[c.Id] = e
		nodes := make([]int, len(c.Verts))
		for a, vid := range c.Verts {
			nodes[a] = f.NodeId2idx[vid]
		}
		f.ElemNodes[e] = nodes

		shp := Get(c.Type)
		if shp == nil {
			return nil, chk.Err("mesh: unknown cell type %q for element id=%d", c.Type, c.Id)
		}
		if f.ndim == 0 {
			f.ndim = shp.Gndim
		}

		ips, err := GaussPoints(c.Type)
		if err != nil {
			return nil, err
		}

		x := make([][]float64, shp.Gndim)
		for i := range x {
			x[i] = make([]float64, shp.Nverts)
		}
		for a, vid := range c.Verts {
			v, ok := vertById[vid]
			if !ok {
				return nil, chk.Err("mesh: unknown node id=%d referenced by element id=%d", vid, c.Id)
			}
			for i := 0; i < shp.Gndim; i++ {
				x[i][a] = v.C[i]
			}
		}

		geoms[e] = elemGeom{shp: shp, x: x, ips: ips}
		f.GPPerElem[e] = len(ips)
		f.Offset[e] = total
		total += len(ips)
	}
	f.Offset[f.NElems] = total

	f.JW = make([]float64, total)
	f.gradN = make([][][]float64, total)

	for e := 0; e < f.NElems; e++ {
		g3 := geoms[e]
		for g, ip := range g3.ips {
			r := []float64{ip[0], ip[1], ip[2]}
			if err := g3.shp.CalcAtIp(g3.x, r); err != nil {
				return nil, chk.Err("mesh: element id=%d gauss pt %d: %v", cells[e].Id, g, err)
			}
			if g3.shp.J <= 0 {
				return nil, chk.Err("mesh: non-positive reference Jacobian (J=%g) at element id=%d, gauss pt %d", g3.shp.J, cells[e].Id, g)
			}
			idx := f.Offset[e] + g
			f.JW[idx] = g3.shp.J * ip[3]

			grads := make([][]float64, g3.shp.Nverts)
			for a := 0; a < g3.shp.Nverts; a++ {
				gr := make([]float64, 3)
				for i := 0; i < g3.shp.Gndim; i++ {
					gr[i] = g3.shp.G[a][i]
				}
				grads[a] = gr
			}
			f.gradN[idx] = grads
		}
	}
	return f, nil
}

// ReferenceVolume returns the sum of jw over element e's integration
// points, used by the integration-consistency testable property
// (spec.md §8, property 5).
func (f *Facts) ReferenceVolume(e int) float64 {
	v := 0.0
	for g := f.Offset[e]; g < f.Offset[e+1]; g++ {
		v += f.JW[g]
	}
	return v
}
