// Package problem assembles MeshFacts, the displacement/virtual/load
// stores, the tensor stores, and the parameter applier into one
// coherent VFMProblem (spec.md §3's Lifecycle, §4.7's Problem Builder).
// Grounded on inp.Simulation's role in gofem: the single object that
// setup builds once and run reads from repeatedly (fem/fem.go's
// Start/Run/End sequencing, generalized from "solve an FE equilibrium
// problem" to "assemble and re-evaluate a VFM residual").
package problem

// NodalDisplacement is one {node_id, ux, uy, uz} entry from the XML
// configuration's MeasuredDisplacements/VirtualDisplacements blocks
// (spec.md §6).
type NodalDisplacement struct {
	NodeID int
	Ux     float64
	Uy     float64
	Uz     float64
}

// Frame is one per-time block of nodal displacement entries.
type Frame struct {
	Entries []NodalDisplacement
}

// VirtualField is one named (or anonymous, for the legacy XML form)
// virtual displacement field: either exactly one frame (time-invariant)
// or exactly T frames (spec.md §3's VirtualFieldSet).
type VirtualField struct {
	Name   string
	Frames []Frame
}

// LoadEntry is one {surface_name, Fx, Fy, Fz} resultant-force entry.
type LoadEntry struct {
	Surface string
	Fx, Fy, Fz float64
}

// LoadFrame is one per-time block of load entries (spec.md §3's
// LoadFrame, time field dropped: ordinal position is the time index).
type LoadFrame struct {
	Entries []LoadEntry
}
