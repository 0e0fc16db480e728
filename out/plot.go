// Package out exports the plot artifact (spec.md §6's "Exported
// artifact (plot file)") and the optional virtual-work CSV. No binary
// serialization precedent exists in the example corpus for this exact
// shape (gofem's own out package reads back FE summary/ipdata files
// through fem's own JSON/gob-backed readers, not a fixed binary
// layout), so the plot file is written directly with the standard
// library's encoding/binary — named and justified in DESIGN.md. The
// CSV virtual-work exporter follows out/results.go's tabular-output
// idiom (a fixed header row, one row per time index).
package out

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/cpmech/gosl/chk"
)

// magic/version identify the fixed binary layout (spec.md §6: "a fixed
// binary layout specified by the collaborator's plot library;
// compatibility with that format is bit-exact").
const (
	magic   uint32 = 0x56464d31 // "VFM1"
	version uint32 = 1
)

// Frame is one time index's worth of registered plot variables (spec.md
// §6): measured nodal displacement, element-averaged measured F, σ, P,
// and per-virtual-field virtual nodal displacement and element-averaged
// virtual F. Missing data at a time index is represented by the
// identity matrix (for gradients) or the zero vector (for
// displacements/stresses) by the caller before WritePlotFile is invoked; this
// package never substitutes defaults itself.
type Frame struct {
	MeasuredU [][3]float64      // [nNodes]
	MeasuredF [][3][3]float64   // [nElems], element-averaged
	Sigma     [][3][3]float64   // [nElems], element-averaged
	P         [][3][3]float64   // [nElems], element-averaged
	VirtualU  [][][3]float64    // [nVF][nNodes]
	VirtualF  [][][3][3]float64 // [nVF][nElems], element-averaged
}

// WritePlotFile serializes one or more frames to path in the fixed
// binary layout: a header (magic, version, nFrames, nNodes, nElems,
// nVF) followed, per frame, by MeasuredU, MeasuredF, Sigma and P, then
// VirtualU[v] and VirtualF[v] for each virtual field v in turn, every
// float64 written little-endian.
func WritePlotFile(path string, nNodes, nElems, nVF int, frames []Frame) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, magic); err != nil {
		return chk.Err("out: %v", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, version); err != nil {
		return chk.Err("out: %v", err)
	}
	header := [4]uint32{uint32(len(frames)), uint32(nNodes), uint32(nElems), uint32(nVF)}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return chk.Err("out: %v", err)
	}
	for fi, f := range frames {
		if len(f.MeasuredU) != nNodes {
			return chk.Err("out: frame %d: MeasuredU has %d nodes, expected %d", fi, len(f.MeasuredU), nNodes)
		}
		if len(f.MeasuredF) != nElems || len(f.Sigma) != nElems || len(f.P) != nElems {
			return chk.Err("out: frame %d: element-averaged fields must have %d entries", fi, nElems)
		}
		if len(f.VirtualU) != nVF || len(f.VirtualF) != nVF {
			return chk.Err("out: frame %d: expected %d virtual fields", fi, nVF)
		}
		if err := writeVec3Slice(&buf, f.MeasuredU); err != nil {
			return err
		}
		if err := writeMat3Slice(&buf, f.MeasuredF); err != nil {
			return err
		}
		if err := writeMat3Slice(&buf, f.Sigma); err != nil {
			return err
		}
		if err := writeMat3Slice(&buf, f.P); err != nil {
			return err
		}
		for v := 0; v < nVF; v++ {
			if len(f.VirtualU[v]) != nNodes || len(f.VirtualF[v]) != nElems {
				return chk.Err("out: frame %d: virtual field %d has wrong shape", fi, v)
			}
			if err := writeVec3Slice(&buf, f.VirtualU[v]); err != nil {
				return err
			}
			if err := writeMat3Slice(&buf, f.VirtualF[v]); err != nil {
				return err
			}
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return chk.Err("out: cannot write %q: %v", path, err)
	}
	return nil
}

func writeVec3Slice(buf *bytes.Buffer, v [][3]float64) error {
	for _, e := range v {
		if err := binary.Write(buf, binary.LittleEndian, e); err != nil {
			return chk.Err("out: %v", err)
		}
	}
	return nil
}

func writeMat3Slice(buf *bytes.Buffer, v [][3][3]float64) error {
	for _, e := range v {
		if err := binary.Write(buf, binary.LittleEndian, e); err != nil {
			return chk.Err("out: %v", err)
		}
	}
	return nil
}

// Identity3 returns the 3x3 identity, the element-averaged gradient
// value that stands for "no deformation data" in a plot frame (spec.md
// §6). Assemble never needs it, since every time index it builds has
// resolved data.
func Identity3() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}
