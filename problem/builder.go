package problem

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/andresutrera/vfmident/constitutive"
	"github.com/andresutrera/vfmident/identify"
	"github.com/andresutrera/vfmident/kinematics"
	"github.com/andresutrera/vfmident/material"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/param"
	"github.com/andresutrera/vfmident/vwork"
)

// Config is the builder's input: everything the XML configuration
// parser (package inp) resolves into plain Go values before handing
// off to this package, keeping problem free of any XML/encoding
// concern (spec.md §6's configuration-input contract belongs to inp,
// not here).
type Config struct {
	Mesh            *mesh.Mesh
	SolidDomainTags []int // empty/nil: every cell is solid
	SurfaceNames    mesh.SurfaceNames

	ModelName string
	Params    []param.Spec

	Measured []Frame
	Virtual  []VirtualField
	Loads    []LoadFrame

	PlaneDeformation bool
	Options          identify.Options
	SaveVirtualWork  string // must end in ".txt" if non-empty
}

// VFMProblem is the fully assembled, ready-to-solve problem (spec.md
// §3's Lifecycle: everything here except StressStore and the
// parameter values is read-only after Build).
type VFMProblem struct {
	Facts    *mesh.Facts
	Surfaces *mesh.SurfaceMap
	Material material.Collaborator
	Applier  *param.Applier
	Driver   *constitutive.Driver

	measuredU [][]float64                 // [t][3*NNodes], dense
	measuredF []*kinematics.Tensor        // [t]
	virtualF  [][]*kinematics.Tensor      // [v][frame]
	loads     []vwork.LoadFrame
	virtualU  [][]vwork.VirtualNodalField // [v][frame]

	T   int // measured/load frame count
	NVF int

	EVW []float64 // theta-independent, precomputed once

	PlaneDeformation bool
	Options          identify.Options
	SaveVirtualWork  string
}

// NFrames returns the measured/load frame count T.
func (p *VFMProblem) NFrames() int { return p.T }

// NVirtualFields returns nVF.
func (p *VFMProblem) NVirtualFields() int { return p.NVF }

// Build runs the end-to-end setup pipeline of spec.md §4.7. A single
// failure anywhere aborts with a descriptive error and no partially
// built VFMProblem is returned.
func Build(cfg Config) (*VFMProblem, error) {
	if cfg.SaveVirtualWork != "" && !strings.HasSuffix(cfg.SaveVirtualWork, ".txt") {
		return nil, chk.Err("problem: save_virtual_work path %q must end in .txt", cfg.SaveVirtualWork)
	}

	facts, err := mesh.Build(cfg.Mesh, cfg.SolidDomainTags)
	if err != nil {
		return nil, err
	}

	surfaces, err := mesh.ResolveSurfaces(cfg.Mesh, facts, cfg.SurfaceNames)
	if err != nil {
		return nil, err
	}

	prms := make(fun.Prms, len(cfg.Params))
	for i, s := range cfg.Params {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		prms[i] = &fun.Prm{N: s.Name, V: s.Init}
	}
	mat, err := material.New(cfg.ModelName, prms)
	if err != nil {
		return nil, err
	}

	applier, err := param.NewApplier(cfg.Params, mat.Params())
	if err != nil {
		return nil, err
	}

	T := len(cfg.Measured)
	if T == 0 {
		return nil, chk.Err("problem: at least one measured displacement frame is required")
	}
	if len(cfg.Loads) != T {
		return nil, chk.Err("problem: %d measured frames but %d load frames; expected equal counts", T, len(cfg.Loads))
	}

	measuredU := make([][]float64, T)
	for t, frame := range cfg.Measured {
		u, err := densify(facts, frame)
		if err != nil {
			return nil, chk.Err("problem: measured frame %d: %v", t, err)
		}
		measuredU[t] = u
	}

	measuredF := make([]*kinematics.Tensor, T)
	for t, u := range measuredU {
		tf, err := kinematics.Reconstruct(facts, toVec3(u), cfg.PlaneDeformation, true)
		if err != nil {
			return nil, chk.Err("problem: measured frame %d: %v", t, err)
		}
		measuredF[t] = tf
	}

	nVF := len(cfg.Virtual)
	virtualF := make([][]*kinematics.Tensor, nVF)
	virtualUDense := make([][]vwork.VirtualNodalField, nVF)
	for v, vf := range cfg.Virtual {
		nFrames := len(vf.Frames)
		if nFrames != 1 && nFrames != T {
			return nil, chk.Err("problem: virtual field %q has %d frames, expected 1 or T=%d", vf.Name, nFrames, T)
		}
		virtualF[v] = make([]*kinematics.Tensor, nFrames)
		virtualUDense[v] = make([]vwork.VirtualNodalField, nFrames)
		for f, frame := range vf.Frames {
			u, err := densify(facts, frame)
			if err != nil {
				return nil, chk.Err("problem: virtual field %q frame %d: %v", vf.Name, f, err)
			}
			tf, err := kinematics.Reconstruct(facts, toVec3(u), false, true)
			if err != nil {
				return nil, chk.Err("problem: virtual field %q frame %d: %v", vf.Name, f, err)
			}
			virtualF[v][f] = tf
			virtualUDense[v][f] = toVec3Array(u)
		}
	}

	loads := make([]vwork.LoadFrame, T)
	for t, lf := range cfg.Loads {
		entries := make([]vwork.SurfaceLoad, len(lf.Entries))
		for i, e := range lf.Entries {
			entries[i] = vwork.SurfaceLoad{Surface: e.Surface, Force: [3]float64{e.Fx, e.Fy, e.Fz}}
		}
		loads[t] = vwork.LoadFrame{Loads: entries}
	}

	evw, err := vwork.External(surfaces, loads, virtualUDense)
	if err != nil {
		return nil, err
	}

	return &VFMProblem{
		Facts:            facts,
		Surfaces:         surfaces,
		Material:         mat,
		Applier:          applier,
		Driver:           constitutive.New(mat),
		measuredU:        measuredU,
		measuredF:        measuredF,
		virtualF:         virtualF,
		loads:            loads,
		virtualU:         virtualUDense,
		T:                T,
		NVF:              nVF,
		EVW:              evw,
		PlaneDeformation: cfg.PlaneDeformation,
		Options:          cfg.Options,
		SaveVirtualWork:  cfg.SaveVirtualWork,
	}, nil
}

// densify expands a sparse {node_id,...} frame into a dense per-node
// displacement array of length facts.NNodes (zero where unmentioned).
// An unknown node id is a fatal validation failure (spec.md §7).
func densify(facts *mesh.Facts, frame Frame) ([]float64, error) {
	u := make([]float64, 3*facts.NNodes)
	for _, e := range frame.Entries {
		idx, ok := facts.NodeId2idx[e.NodeID]
		if !ok {
			return nil, chk.Err("unknown node id=%d", e.NodeID)
		}
		u[3*idx+0] = e.Ux
		u[3*idx+1] = e.Uy
		u[3*idx+2] = e.Uz
	}
	return u, nil
}

func toVec3(u []float64) [][]float64 {
	n := len(u) / 3
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = []float64{u[3*i], u[3*i+1], u[3*i+2]}
	}
	return out
}

func toVec3Array(u []float64) vwork.VirtualNodalField {
	n := len(u) / 3
	out := make(vwork.VirtualNodalField, n)
	for i := 0; i < n; i++ {
		out[i] = [3]float64{u[3*i], u[3*i+1], u[3*i+2]}
	}
	return out
}
