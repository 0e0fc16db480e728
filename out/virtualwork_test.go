package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_writeVirtualWorkCSVHeaderAndRows(tst *testing.T) {
	chk.PrintTitle("writeVirtualWorkCSVHeaderAndRows")
	dir := tst.TempDir()
	path := filepath.Join(dir, "vw.txt")
	nVF, T := 2, 3
	ivw := []float64{1, 2, 3, 4, 5, 6}
	evw := []float64{1, 2, 3, 4, 5, 6}
	if err := WriteVirtualWorkCSV(path, nVF, T, ivw, evw); err != nil {
		tst.Fatalf("WriteVirtualWorkCSV: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != T+1 {
		tst.Fatalf("expected %d lines, got %d", T+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "#Step, IVW1, IVW2, EVW1, EVW2") {
		tst.Fatalf("unexpected header: %q", lines[0])
	}
}

func Test_writeVirtualWorkCSVRejectsMismatchedLength(tst *testing.T) {
	chk.PrintTitle("writeVirtualWorkCSVRejectsMismatchedLength")
	dir := tst.TempDir()
	path := filepath.Join(dir, "vw.txt")
	if err := WriteVirtualWorkCSV(path, 2, 3, []float64{1, 2}, []float64{1, 2}); err == nil {
		tst.Fatalf("expected WriteVirtualWorkCSV to reject a mismatched-length vector")
	}
}
