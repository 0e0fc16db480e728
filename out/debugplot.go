// +build vfmdebug

// Package out's debug plot is excluded from ordinary builds (spec.md's
// plot artifact is the fixed binary layout in plot.go, not a rendered
// figure); this file exists only for interactive debugging of a run,
// built with `-tags vfmdebug`. Grounded on mreten/plot.go's Plot/PlotEnd
// idiom: gosl/plt series plus gosl/utl.LinSpace for the x-axis.
package out

import (
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// DebugPlotVirtualWork renders one internal-vs-external work curve per
// virtual field across the nFrames measured time indices, saving a
// single figure to dir/base.png. internal and external are both laid
// out [v*nFrames+t], the same layout problem.InternalWork/ExternalWork
// use (spec.md §4.6).
func DebugPlotVirtualWork(dir, base string, nVF, nFrames int, internal, external []float64) error {
	t := utl.LinSpace(0, float64(nFrames-1), nFrames)
	plt.Reset()
	for v := 0; v < nVF; v++ {
		iw := internal[v*nFrames : (v+1)*nFrames]
		ew := external[v*nFrames : (v+1)*nFrames]
		plt.Plot(t, iw, io.Sf("'b.-', clip_on=0, label='W_int v=%d'", v))
		plt.Plot(t, ew, io.Sf("'r.--', clip_on=0, label='W_ext v=%d'", v))
	}
	plt.Gll("$t$", "$W$", "leg_out=1, leg_ncol=2")
	plt.Save(dir, filepath.Base(base))
	return nil
}
