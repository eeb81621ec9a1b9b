// Command nescore runs an NES ROM on the CPU core and prints a nestest style
// trace, optionally checking it against a reference log.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/jyane/nescore/nes"
)

var (
	path       = flag.String("path", "./testdata/other/nestest.nes", "path to NES ROM file")
	start      = flag.String("start", "", "start address in hex, e.g. c000 (default: reset vector)")
	golden     = flag.String("log", "", "reference trace log to verify against")
	steps      = flag.Int("steps", 0, "instructions to run without -log, 0 means until the CPU jams")
	maxSteps   = flag.Int("max-steps", 1000000, "upper bound on executed instructions")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	color      = flag.String("color", "auto", "highlight mismatches: auto, always or never")
)

// readFile reads file as bytes
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// useColor decides whether to print ANSI colours on stdout.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// run prints up to n trace lines.
func run(cpu *nes.CPU, out *bufio.Writer, n int) error {
	for i := 0; i < n && !cpu.Jammed(); i++ {
		fmt.Fprintln(out, cpu.Trace())
		if _, err := cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// verify runs cpu along the reference log and reports the first divergence.
func verify(cpu *nes.CPU, out *bufio.Writer, logPath string, colored bool) error {
	f, err := os.Open(logPath)
	if err != nil {
		return errors.Wrap(err, "failed to open reference log")
	}
	defer f.Close()
	matched, err := nes.VerifyTrace(cpu, f)
	if mismatch, ok := errors.Cause(err).(*nes.TraceMismatchError); ok {
		red, reset := "", ""
		if colored {
			red, reset = "\x1b[31m", "\x1b[0m"
		}
		fmt.Fprintf(out, "%smismatch at line %d\n  got:  %s\n  want: %s%s\n", red, mismatch.Line, mismatch.Got, mismatch.Want, reset)
		fmt.Fprintf(out, "  next: %s\n", cpu.Trace())
	}
	fmt.Fprintf(out, "%d lines matched\n", matched)
	return err
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	buf, err := readFile(*path)
	if err != nil {
		glog.Exitf("Failed to read %s: %v", *path, err)
	}
	console, err := nes.NewConsole(buf)
	if err != nil {
		glog.Exitf("Failed to initiate Console: %v", err)
	}
	if *start != "" {
		pc, err := strconv.ParseUint(*start, 16, 16)
		if err != nil {
			glog.Exitf("Bad -start %q: %v", *start, err)
		}
		console.CPU.SetPC(uint16(pc))
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if *golden != "" {
		if err := verify(console.CPU, out, *golden, useColor(*color)); err != nil {
			out.Flush()
			glog.Errorf("Trace verification failed: %v", err)
			glog.Flush()
			os.Exit(1)
		}
		return
	}
	n := *steps
	if n == 0 || n > *maxSteps {
		n = *maxSteps
	}
	if err := run(console.CPU, out, n); err != nil {
		out.Flush()
		glog.Exitf("CPU stopped: %v", err)
	}
}
