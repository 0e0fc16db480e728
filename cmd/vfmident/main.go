// Package main implements vfmident's command-line entry point: parse an
// XML configuration, build a VFM problem, run the bounded LM
// identification, and export the plot/virtual-work artifacts (spec.md
// §6). Grounded on the teacher's main.go (defer/recover error reporting
// via chk/io, io.ArgToFilename/ArgToBool argument parsing, io.PfWhite
// banner), dropping mpi.Start/Stop since this tool has no parallel
// execution mode.
package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/andresutrera/vfmident/cancel"
	"github.com/andresutrera/vfmident/identify"
	"github.com/andresutrera/vfmident/inp"
	"github.com/andresutrera/vfmident/mesh"
	"github.com/andresutrera/vfmident/out"
	"github.com/andresutrera/vfmident/problem"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	cfgPath, _ := io.ArgToFilename(0, "", ".xml", true)
	plotPath := io.ArgToString(1, "")
	verbose := io.ArgToBool(2, true)

	if verbose {
		io.PfWhite("\nvfmident -- Virtual Fields Method parameter identification\n\n")
		io.Pf("%v\n", io.ArgsTable(
			"configuration file", "cfgPath", cfgPath,
			"plot output file", "plotPath", plotPath,
			"show messages", "verbose", verbose,
		))
	}

	if err := run(cfgPath, plotPath, verbose); err != nil {
		chk.Panic("vfmident failed:\n%v", err)
	}
}

func run(cfgPath, plotPath string, verbose bool) error {
	cfg, err := inp.Load(cfgPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cfgPath)
	m, err := mesh.ReadDir(dir, cfg.MeshFile)
	if err != nil {
		return err
	}

	bcfg, err := cfg.ToBuilderConfig(m)
	if err != nil {
		return err
	}

	p, err := problem.Build(bcfg)
	if err != nil {
		return err
	}

	lo := make([]float64, len(bcfg.Params))
	hi := make([]float64, len(bcfg.Params))
	for i, s := range bcfg.Params {
		lo[i] = s.Lo
		hi[i] = s.Hi
	}
	theta0 := p.Applier.Values()

	scope := cancel.NewScope()
	release := scope.Bind()
	defer release()

	driver, err := identify.New(p.Applier, lo, hi, p.NResiduals(), p.Options, scope)
	if err != nil {
		return err
	}

	store := &problem.StressStore{}
	residual := p.Residual(store)

	result, err := driver.Run(theta0, residual)
	if result.Cancelled {
		io.PfRed("vfmident: interrupted\n")
		return nil
	}
	if err != nil {
		return err
	}

	if verbose {
		io.Pf("\nresult: success=%v theta=%v stopReason=%q\n", result.Success, result.Theta, result.StopReason)
	}

	if result.Success {
		if p.SaveVirtualWork != "" {
			ivw, iwErr := p.InternalWork(store)
			if iwErr != nil {
				return iwErr
			}
			if err := out.WriteVirtualWorkCSV(p.SaveVirtualWork, p.NVirtualFields(), p.NFrames(), ivw, p.ExternalWork()); err != nil {
				return err
			}
		}
		if plotPath != "" {
			frames, err := out.Assemble(p, store)
			if err != nil {
				return err
			}
			if err := out.WritePlotFile(plotPath, p.NNodes(), p.NElems(), p.NVirtualFields(), frames); err != nil {
				return err
			}
		}
	}

	return err
}
