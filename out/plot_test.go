package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func oneFrame(nNodes, nElems, nVF int) Frame {
	u := make([][3]float64, nNodes)
	mF := make([][3][3]float64, nElems)
	sigma := make([][3][3]float64, nElems)
	p := make([][3][3]float64, nElems)
	for e := range mF {
		mF[e] = Identity3()
	}
	vu := make([][][3]float64, nVF)
	vF := make([][][3][3]float64, nVF)
	for v := 0; v < nVF; v++ {
		vu[v] = make([][3]float64, nNodes)
		vF[v] = make([][3][3]float64, nElems)
		for e := range vF[v] {
			vF[v][e] = Identity3()
		}
	}
	return Frame{MeasuredU: u, MeasuredF: mF, Sigma: sigma, P: p, VirtualU: vu, VirtualF: vF}
}

func Test_writePlotFileRoundtripsShape(tst *testing.T) {
	chk.PrintTitle("writePlotFileRoundtripsShape")
	dir := tst.TempDir()
	path := filepath.Join(dir, "out.bin")
	frames := []Frame{oneFrame(8, 1, 1), oneFrame(8, 1, 1)}
	if err := WritePlotFile(path, 8, 1, 1, frames); err != nil {
		tst.Fatalf("WritePlotFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		tst.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		tst.Fatalf("expected a non-empty plot file")
	}
}

func Test_writePlotFileRejectsWrongShape(tst *testing.T) {
	chk.PrintTitle("writePlotFileRejectsWrongShape")
	dir := tst.TempDir()
	path := filepath.Join(dir, "out.bin")
	bad := oneFrame(8, 1, 1)
	bad.MeasuredU = bad.MeasuredU[:7]
	if err := WritePlotFile(path, 8, 1, 1, []Frame{bad}); err == nil {
		tst.Fatalf("expected WritePlotFile to reject a short MeasuredU")
	}
}

func Test_identity3IsIdentity(tst *testing.T) {
	chk.PrintTitle("identity3IsIdentity")
	id := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			chk.Scalar(tst, "I[i][j]", 1e-15, id[i][j], want)
		}
	}
}
