package mesh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// SurfaceMap resolves named boundary surfaces to the set of node
// indices (into [0, NNodes)) that belong to them, computed once at
// setup time. Adapted from inp.FaceCond/FaceTag2verts, generalized from
// tag-numbered faces to named surfaces.
type SurfaceMap struct {
	byName map[string][]int // node indices, sorted ascending
}

// SurfaceNames is the convention used to name surfaces in the mesh
// file: a face tag's name is recorded alongside the mesh as a small
// side table (tag -> name), since the mesh collaborator's native
// indexing is by integer face tag (inp.Cell.FTags) but the XML load
// configuration addresses surfaces by name (spec.md §6).
type SurfaceNames map[int]string

// ResolveSurfaces builds a SurfaceMap: for every (cell, local face i)
// pair whose face tag has a name in `names`, only the vertices local to
// that face (Shape.FaceLocalVerts[i]) are added to the surface's node
// set — never the cell's whole vertex list, which would also pull in
// opposite-face or interior nodes. Mirrors inp.Mesh's FaceTag2verts
// construction (gofem/inp/msh.go).
func ResolveSurfaces(m *Mesh, f *Facts, names SurfaceNames) (*SurfaceMap, error) {
	faceTag2verts := make(map[int][]int)
	for _, c := range m.Cells {
		if _, ok := f.ElemId2idx[c.Id]; !ok {
			continue // not a solid-domain cell
		}
		shp := Get(c.Type)
		if shp == nil {
			return nil, chk.Err("mesh: unknown cell type %q", c.Type)
		}
		for i, ftag := range c.FaceTags {
			if ftag == 0 {
				continue
			}
			if _, ok := names[ftag]; !ok {
				continue
			}
			if i >= len(shp.FaceLocalVerts) {
				return nil, chk.Err("mesh: cell type %q has no local face %d", c.Type, i)
			}
			for _, l := range shp.FaceLocalVerts[i] {
				utl.IntIntsMapAppend(&faceTag2verts, ftag, c.Verts[l])
			}
		}
	}
	for ftag, verts := range faceTag2verts {
		faceTag2verts[ftag] = utl.IntUnique(verts)
	}

	byName := make(map[string]map[int]bool)
	for ftag, verts := range faceTag2verts {
		name := names[ftag]
		set, ok := byName[name]
		if !ok {
			set = make(map[int]bool)
			byName[name] = set
		}
		for _, vid := range verts {
			if nidx, ok := f.NodeId2idx[vid]; ok {
				set[nidx] = true
			}
		}
	}

	sm := &SurfaceMap{byName: make(map[string][]int)}
	for name, set := range byName {
		nodes := make([]int, 0, len(set))
		for n := range set {
			nodes = append(nodes, n)
		}
		sort.Ints(nodes)
		sm.byName[name] = nodes
	}
	return sm, nil
}

// Nodes returns the node-index set for a named surface, or a
// validation error if the surface is unknown or empty (spec.md §4.4,
// §7: "An unknown surface name, a surface with no resolved nodes...
// is a fatal validation failure").
func (o *SurfaceMap) Nodes(name string) ([]int, error) {
	nodes, ok := o.byName[name]
	if !ok {
		return nil, chk.Err("mesh: unknown surface %q", name)
	}
	if len(nodes) == 0 {
		return nil, chk.Err("mesh: surface %q resolved to zero nodes", name)
	}
	return nodes, nil
}

// RepresentativeNode returns the first node index (ascending) of a
// named surface — the single representative node §4.4 uses to read a
// surface's virtual displacement. Documented contract: this system
// assumes the virtual field is constant over every load-carrying
// surface (spec.md §9, Open Question 1); it is the caller's
// responsibility to validate that assumption if stricter behaviour is
// required.
func (o *SurfaceMap) RepresentativeNode(name string) (int, error) {
	nodes, err := o.Nodes(name)
	if err != nil {
		return 0, err
	}
	return nodes[0], nil
}
