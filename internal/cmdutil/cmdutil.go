// Package cmdutil holds the flag parsing and exit-code plumbing for
// cmd/dbgassemble, in the shape internal/cli uses: a plain flag.FlagSet with
// ContinueOnError and a custom Usage, an Options struct ParseArgs fills in,
// and a small set of named exit codes the command line returns.
package cmdutil

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"dbgassembler/internal/assembly"
	"dbgassembler/internal/graphio"
)

// Exit codes returned by cmd/dbgassemble's main.
const (
	ExitOK           = 0
	ExitUsageError   = 2
	ExitRuntimeError = 3
)

// Options holds every flag the demonstration command accepts.
type Options struct {
	K           int
	MaxLength   int
	MaxCoverage float64
	MaxOverlap  int
	Version     bool
}

// NewFlagSet returns a FlagSet with ContinueOnError and a usage banner for
// name.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: paired de Bruijn graph cleanup demo

Usage of %s:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers every flag on fs and parses argv into an Options.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.IntVar(&opt.K, "k", 4, "k-mer size [4]")
	fs.IntVar(&opt.MaxLength, "max-length", 10, "max length (bp) an edge may have and still be considered erroneous [10]")
	fs.Float64Var(&opt.MaxCoverage, "max-coverage", 1.0, "max coverage an edge may have and still be considered erroneous [1.0]")
	fs.IntVar(&opt.MaxOverlap, "max-overlap", 2, "how much shorter than k a chimeric bridge may be [2]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.K < 2 {
		return opt, errors.New("-k must be >= 2")
	}
	if opt.MaxLength < 0 {
		return opt, errors.New("-max-length must be >= 0")
	}
	if opt.MaxCoverage < 0 {
		return opt, errors.New("-max-coverage must be >= 0")
	}
	if opt.MaxOverlap < 0 {
		return opt, errors.New("-max-overlap must be >= 0")
	}
	return opt, nil
}

// Version is the demonstration command's reported version.
const Version = "0.1.0"

// Run is cmd/dbgassemble's entire body: parse argv, build the bundled demo
// fixture, run the default erroneous-edge cleanup cascade over it, and
// print a plain-text summary to stdout. ctx is accepted to match
// appshell.Main's signature; this command does no blocking work and never
// observes cancellation.
func Run(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := NewFlagSet("dbgassemble")
	opt, err := ParseArgs(fs, argv)
	if err != nil {
		if err == flag.ErrHelp {
			return ExitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsageError
	}
	if opt.Version {
		fmt.Fprintln(stdout, Version)
		return ExitOK
	}

	builder, desc, err := graphio.DemoFixture(opt.K)
	if err != nil {
		fmt.Fprintf(stderr, "error: building demo fixture: %v\n", err)
		return ExitRuntimeError
	}
	fmt.Fprintln(stdout, desc)

	view := builder.View()
	result, err := assembly.Run(view, assembly.DefaultStages(opt.MaxLength, opt.MaxCoverage, opt.MaxOverlap))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitRuntimeError
	}

	fmt.Fprint(stdout, assembly.Summary(result, view))
	return ExitOK
}
