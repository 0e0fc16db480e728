package mesh

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds one mesh vertex: an external id and its reference-
// configuration coordinates. Adapted from inp.Vert.
type Vert struct {
	Id int       `json:"id"`
	C  []float64 `json:"c"`
}

// Cell holds one solid element: its external id, cell type, the
// external ids of its nodes in the element's fixed local order, the
// domain tag it belongs to, and the surface (face) tags attached to
// each of its local faces. Adapted from inp.Cell, trimmed to the
// solid-mechanics fields this system needs.
type Cell struct {
	Id       int    `json:"id"`
	Tag      int    `json:"tag"`
	Type     string `json:"type"`
	Verts    []int  `json:"verts"`
	FaceTags []int  `json:"facetags"`
}

// Mesh is the raw, on-disk mesh representation: vertices and cells. It
// carries no derived indices; those live in Facts, built once by
// Build (facts.go). Adapted from inp.Mesh, with the JSON-decode/derived-maps
// split collapsed since this system never mutates the mesh after load.
type Mesh struct {
	Verts []*Vert `json:"verts"`
	Cells []*Cell `json:"cells"`
}

// Read decodes a mesh from a JSON file. The mesh format itself is part
// of the external mesh-collaborator contract (spec.md §6) and is kept
// as JSON, matching the teacher's inp.ReadMsh convention, since nothing
// in the spec requires it to be XML (only the solver configuration DTO
// is XML).
func Read(path string) (*Mesh, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("mesh: cannot read %q: %v", path, err)
	}
	var m Mesh
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, chk.Err("mesh: cannot parse %q: %v", path, err)
	}
	if len(m.Verts) < 2 {
		return nil, chk.Err("mesh: at least 2 vertices are required")
	}
	if len(m.Cells) < 1 {
		return nil, chk.Err("mesh: at least 1 cell is required")
	}
	return &m, nil
}

// ReadDir is a convenience wrapper mirroring inp.ReadMsh(dir, fn, ...).
func ReadDir(dir, fn string) (*Mesh, error) {
	return Read(filepath.Join(dir, fn))
}
