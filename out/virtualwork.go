package out

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// WriteVirtualWorkCSV writes the optional save_virtual_work report
// (spec.md §6): one row per measured/load time frame, columns #Step,
// IVW1..IVW_nVF, EVW1..EVW_nVF, each value in 6-significant-figure
// scientific notation. ivw and evw are both laid out [v*T+t], matching
// vwork.Internal/External's convention.
func WriteVirtualWorkCSV(path string, nVF, T int, ivw, evw []float64) error {
	if len(ivw) != nVF*T || len(evw) != nVF*T {
		return chk.Err("out: virtual-work vectors must have length nVF*T=%d, got ivw=%d evw=%d", nVF*T, len(ivw), len(evw))
	}

	header := "#Step"
	for v := 1; v <= nVF; v++ {
		header += io.Sf(", IVW%d", v)
	}
	for v := 1; v <= nVF; v++ {
		header += io.Sf(", EVW%d", v)
	}

	lines := header + "\n"
	for t := 0; t < T; t++ {
		row := io.Sf("%d", t)
		for v := 0; v < nVF; v++ {
			row += io.Sf(", %.5e", ivw[v*T+t])
		}
		for v := 0; v < nVF; v++ {
			row += io.Sf(", %.5e", evw[v*T+t])
		}
		lines += row + "\n"
	}

	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		return chk.Err("out: cannot write %q: %v", path, err)
	}
	return nil
}
