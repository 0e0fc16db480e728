// Package inp parses the XML configuration DTO (spec.md §6) into the
// plain Go values package problem's Builder consumes. No XML parsing
// precedent exists anywhere in the example corpus (gofem's own inp
// package reads JSON simulation decks via inp/sim.go, msh.go, mat.go),
// so this package is built directly on the standard library's
// encoding/xml — named and justified in DESIGN.md rather than grounded
// on pack source. Everything else about this package (the Config
// struct's shape, its Load function, its error reporting) follows
// inp.ReadMsh/inp.ReadSim's "read file, unmarshal, validate" idiom.
package inp

import (
	"encoding/xml"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/andresutrera/vfmident/identify"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/param"
	"github.com/andresutrera/vfmident/problem"
)

// Config is the root XML element, matching spec.md §6's recognized
// top-level sections.
type Config struct {
	XMLName               xml.Name               `xml:"VFMIdent"`
	MeshFile              string                 `xml:"mesh_file,attr"`
	SolidDomainTags       []int                  `xml:"solid_domain_tags>tag"`
	Surfaces              []surfaceXML           `xml:"surfaces>surface"`
	Model                 modelXML               `xml:"Model"`
	Parameters            []parameterXML         `xml:"Parameters>param"`
	MeasuredDisplacements []timeBlockXML         `xml:"MeasuredDisplacements>time"`
	VirtualDisplacements  virtualDisplacementsXML `xml:"VirtualDisplacements"`
	MeasuredLoads         []loadBlockXML         `xml:"MeasuredLoads>time"`
	Options               optionsXML             `xml:"Options"`
}

type surfaceXML struct {
	Tag  int    `xml:"tag,attr"`
	Name string `xml:"name,attr"`
}

type modelXML struct {
	Name string `xml:"name,attr"`
}

type parameterXML struct {
	Name  string  `xml:"name,attr"`
	Init  float64 `xml:"init,attr"`
	Lo    float64 `xml:"lo,attr"`
	Hi    float64 `xml:"hi,attr"`
	Scale float64 `xml:"scale,attr"`
}

type nodeEntryXML struct {
	NodeID int     `xml:"node_id,attr"`
	Ux     float64 `xml:"ux,attr"`
	Uy     float64 `xml:"uy,attr"`
	Uz     float64 `xml:"uz,attr"`
}

type timeBlockXML struct {
	T     int            `xml:"t,attr"`
	Nodes []nodeEntryXML `xml:"node"`
}

// virtualDisplacementsXML handles both recognized forms (spec.md §6):
// (a) one or more named <field> blocks, each with <time> children, or
// (b) a legacy form where <time> blocks appear directly under
// <VirtualDisplacements>, interpreted as a single anonymous field.
type virtualDisplacementsXML struct {
	Fields []fieldXML     `xml:"field"`
	Times  []timeBlockXML `xml:"time"`
}

type fieldXML struct {
	Name  string         `xml:"name,attr"`
	Times []timeBlockXML `xml:"time"`
}

type loadEntryXML struct {
	Surface string  `xml:"surface_name,attr"`
	Fx      float64 `xml:"Fx,attr"`
	Fy      float64 `xml:"Fy,attr"`
	Fz      float64 `xml:"Fz,attr"`
}

type loadBlockXML struct {
	T     int            `xml:"t,attr"`
	Loads []loadEntryXML `xml:"load"`
}

type optionsXML struct {
	Solver           string  `xml:"solver,attr"`           // "Levmar" or "ConstrainedLevmar"
	Tau              float64 `xml:"tau,attr"`
	GradTol          float64 `xml:"grad_tol,attr"`
	StepTol          float64 `xml:"step_tol,attr"`
	ObjTol           float64 `xml:"obj_tol,attr"`
	FDScale          float64 `xml:"fd_scale,attr"`
	MaxIterations    int     `xml:"max_iterations,attr"`
	PlaneDeformation bool    `xml:"plane_deformation,attr"`
	SaveVirtualWork  string  `xml:"save_virtual_work,attr"`
}

// Load reads and parses an XML configuration file from path.
func Load(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("inp: cannot read %q: %v", path, err)
	}
	var cfg Config
	if err := xml.Unmarshal(b, &cfg); err != nil {
		return nil, chk.Err("inp: cannot parse %q: %v", path, err)
	}
	return &cfg, nil
}

// ToBuilderConfig converts a parsed XML Config plus an already-loaded
// mesh into a problem.Config, ready for problem.Build. Mesh loading is
// left to the caller (mesh.ReadDir) since the mesh file path is
// relative to the configuration file's directory, which only the
// caller (cmd/vfmident) knows.
func (c *Config) ToBuilderConfig(m *mesh.Mesh) (problem.Config, error) {
	surfaceNames := mesh.SurfaceNames{}
	for _, s := range c.Surfaces {
		surfaceNames[s.Tag] = s.Name
	}

	specs := make([]param.Spec, len(c.Parameters))
	for i, p := range c.Parameters {
		specs[i] = param.Spec{Name: p.Name, Init: p.Init, Lo: p.Lo, Hi: p.Hi, Scale: p.Scale}
	}

	measured := make([]problem.Frame, len(c.MeasuredDisplacements))
	for i, tb := range c.MeasuredDisplacements {
		measured[i] = toFrame(tb)
	}

	var virtual []problem.VirtualField
	if len(c.VirtualDisplacements.Fields) > 0 {
		virtual = make([]problem.VirtualField, len(c.VirtualDisplacements.Fields))
		for i, f := range c.VirtualDisplacements.Fields {
			frames := make([]problem.Frame, len(f.Times))
			for j, tb := range f.Times {
				frames[j] = toFrame(tb)
			}
			virtual[i] = problem.VirtualField{Name: f.Name, Frames: frames}
		}
	} else if len(c.VirtualDisplacements.Times) > 0 {
		frames := make([]problem.Frame, len(c.VirtualDisplacements.Times))
		for j, tb := range c.VirtualDisplacements.Times {
			frames[j] = toFrame(tb)
		}
		virtual = []problem.VirtualField{{Name: "", Frames: frames}}
	}

	loads := make([]problem.LoadFrame, len(c.MeasuredLoads))
	for i, lb := range c.MeasuredLoads {
		entries := make([]problem.LoadEntry, len(lb.Loads))
		for j, l := range lb.Loads {
			entries[j] = problem.LoadEntry{Surface: l.Surface, Fx: l.Fx, Fy: l.Fy, Fz: l.Fz}
		}
		loads[i] = problem.LoadFrame{Entries: entries}
	}

	opts, err := c.Options.toIdentifyOptions()
	if err != nil {
		return problem.Config{}, err
	}

	if c.Options.SaveVirtualWork != "" && !strings.HasSuffix(c.Options.SaveVirtualWork, ".txt") {
		return problem.Config{}, chk.Err("inp: save_virtual_work path %q must end in .txt", c.Options.SaveVirtualWork)
	}

	return problem.Config{
		Mesh:             m,
		SolidDomainTags:  c.SolidDomainTags,
		SurfaceNames:     surfaceNames,
		ModelName:        c.Model.Name,
		Params:           specs,
		Measured:         measured,
		Virtual:          virtual,
		Loads:            loads,
		PlaneDeformation: c.Options.PlaneDeformation,
		Options:          opts,
		SaveVirtualWork:  c.Options.SaveVirtualWork,
	}, nil
}

func toFrame(tb timeBlockXML) problem.Frame {
	entries := make([]problem.NodalDisplacement, len(tb.Nodes))
	for i, n := range tb.Nodes {
		entries[i] = problem.NodalDisplacement{NodeID: n.NodeID, Ux: n.Ux, Uy: n.Uy, Uz: n.Uz}
	}
	return problem.Frame{Entries: entries}
}

func (o optionsXML) toIdentifyOptions() (identify.Options, error) {
	opts := identify.DefaultOptions()
	switch o.Solver {
	case "", "Levmar":
		opts.Mode = identify.ModeUnconstrained
	case "ConstrainedLevmar":
		opts.Mode = identify.ModeBounded
	default:
		return opts, chk.Err("inp: unknown solver %q (expected Levmar or ConstrainedLevmar)", o.Solver)
	}
	opts.Tau = o.Tau
	opts.GradTol = o.GradTol
	opts.StepTol = o.StepTol
	opts.ObjTol = o.ObjTol
	opts.FDScale = o.FDScale
	if o.MaxIterations > 0 {
		opts.MaxIterations = o.MaxIterations
	}
	opts.SaveVirtualWork = o.SaveVirtualWork
	return opts, nil
}
