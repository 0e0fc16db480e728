// Package mesh adapts the mesh/shape-function half of the gofem
// ecosystem (shp.Shape, inp.Mesh/Cell/Vert) into the read-only mesh
// collaborator this system consumes: it never solves equilibrium, it
// only hands out node coordinates, shape-function gradients and
// reference-Jacobian weights.
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// MinDet is the smallest admissible |det(dx/dR)| before a cell is
// considered degenerate.
const MinDet = 1.0e-14

// ShapeFunc evaluates shape functions S and, if derivs, their natural
// derivatives dSdR at natural coordinates r.
type ShapeFunc func(S []float64, dSdR [][]float64, r []float64)

// Shape holds the geometry/interpolation data for one cell type; e.g.
// "hex8", "qua4", "tet4". Mirrors shp.Shape, trimmed to the volume
// (no face/NURBS) scratchpad this system needs.
type Shape struct {
	Type   string
	Func   ShapeFunc
	Gndim  int // geometric dimension (2 or 3)
	Nverts int

	// scratchpad, valid after CalcAtIp
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] = dS/dx, gradient in real coords
	J    float64     // det(dx/dR)
	DSdR [][]float64 // [nverts][gndim]
	DxdR [][]float64 // [gndim][gndim]
	DRdx [][]float64 // [gndim][gndim] = inverse(DxdR)

	// FaceLocalVerts[i] lists the local vertex indices lying on local
	// face i, mirroring shp.Shape.FaceLocalVerts. Used by
	// ResolveSurfaces to restrict a tagged face's node set to the
	// vertices actually on that face, instead of the whole cell.
	FaceLocalVerts [][]int
}

func newShape(typ string, gndim, nverts int, f ShapeFunc, faceLocalVerts [][]int) *Shape {
	return &Shape{
		Type:           typ,
		Func:           f,
		Gndim:          gndim,
		Nverts:         nverts,
		S:              make([]float64, nverts),
		G:              la.MatAlloc(nverts, gndim),
		DSdR:           la.MatAlloc(nverts, gndim),
		DxdR:           la.MatAlloc(gndim, gndim),
		DRdx:           la.MatAlloc(gndim, gndim),
		FaceLocalVerts: faceLocalVerts,
	}
}

// GetCopy returns an independent copy with its own scratchpad, so
// concurrent evaluation of two cells of the same type never interferes
// (mirrors shp.Shape.GetCopy's goroutine-safety contract).
func (o *Shape) GetCopy() *Shape {
	p := newShape(o.Type, o.Gndim, o.Nverts, o.Func, o.FaceLocalVerts)
	return p
}

// Face-local-vertex tables, mirroring shp.FaceLocalV for the cell types
// this system supports (gofem/shp/{hexs,tets,quads,tris}.go).
var (
	hex8FaceLocalVerts = [][]int{{0, 4, 7, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {2, 3, 7, 6}, {0, 3, 2, 1}, {4, 5, 6, 7}}
	tet4FaceLocalVerts = [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}}
	qua4FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	tri3FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 0}}
)

var factory = map[string]func() *Shape{
	"hex8": func() *Shape { return newShape("hex8", 3, 8, hex8Func, hex8FaceLocalVerts) },
	"tet4": func() *Shape { return newShape("tet4", 3, 4, tet4Func, tet4FaceLocalVerts) },
	"qua4": func() *Shape { return newShape("qua4", 2, 4, qua4Func, qua4FaceLocalVerts) },
	"tri3": func() *Shape { return newShape("tri3", 2, 3, tri3Func, tri3FaceLocalVerts) },
}

// Get allocates a new Shape of the given cell type, or nil if unknown.
func Get(cellType string) *Shape {
	alloc, ok := factory[cellType]
	if !ok {
		return nil
	}
	return alloc()
}

// CalcAtIp computes S, G=dS/dx and J=det(dx/dR) at integration point r,
// given the element's nodal coordinates x[ndim][nverts].
func (o *Shape) CalcAtIp(x [][]float64, r []float64) (err error) {
	o.Func(o.S, o.DSdR, r)

	// dx/dR := sum_n x[i][n] * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	o.J, err = la.MatInv(o.DRdx, o.DxdR, MinDet)
	if err != nil {
		return chk.Err("mesh: reference Jacobian inversion failed for cell type %q: %v", o.Type, err)
	}

	// G == dS/dx := dS/dR * dR/dx
	la.MatMul(o.G, 1, o.DSdR, o.DRdx)
	return nil
}
