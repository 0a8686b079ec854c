// Command livenessview prints the result of backward liveness analysis
// over a textual CFG.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/nk-go/liveness"
	"github.com/nk-go/liveness/debug"
	"github.com/nk-go/liveness/textcfg"
	"github.com/nk-go/liveness/varset"
)

const (
	Usage = `livenessview is a tool for printing backward liveness analysis
results over a textual CFG (see package textcfg for the format).

Usage:

  livenessview [options] file.cfg

Options:

`
)

var (
	outPath  string
	exitVars string
	verbose  bool
	maxLive  bool

	out io.Writer
)

func init() {
	flag.StringVar(&outPath, "out", "", "Specify output file (default: stdout)")
	flag.StringVar(&exitVars, "exit-live", "", "Comma-separated variables live at procedure exit")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging to stderr")
	flag.BoolVar(&maxLive, "max-live", false, "Report the peak live-in set size across all blocks")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, Usage)
		flag.PrintDefaults()
		os.Exit(0)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Cannot open %s: %v", flag.Arg(0), err)
	}
	defer f.Close()

	g, err := textcfg.Parse(f)
	if err != nil {
		log.Fatalf("Cannot parse CFG: %v", err)
	}

	switch outPath {
	case "":
		out = os.Stdout
	default:
		o, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("Cannot create output file %s: %v", outPath, err)
		}
		defer o.Close()
		out = o
	}

	opts := []liveness.Option[textcfg.Var]{}
	if exitVars != "" {
		opts = append(opts, liveness.WithExitLive(exitLiveFromFlag(exitVars)))
	}
	if verbose {
		logger, _ := zap.NewDevelopment()
		opts = append(opts, liveness.WithLogger[textcfg.Var](logger.Sugar()))
	}
	if maxLive {
		opts = append(opts, liveness.WithMaxLiveSetTracking[textcfg.Var]())
	}

	result, err := liveness.Analyze[string, textcfg.Var](g, opts...)
	if err != nil {
		log.Fatalf("Liveness analysis failed: %v", err)
	}

	if err := debug.PrettyPrint[string, textcfg.Var](out, g, result, textcfg.CodePrinter{}); err != nil {
		log.Fatalf("Cannot print result: %v", err)
	}

	if maxLive {
		if n, ok := result.MaxLiveSetSize(); ok {
			fmt.Fprintf(out, "peak live-in set size: %d\n", n)
		}
	}
}

// exitLiveFromFlag builds a sorted-slice VarSet from a comma-separated
// -exit-live flag value.
func exitLiveFromFlag(s string) varset.Set[textcfg.Var] {
	parts := strings.Split(s, ",")
	vars := make([]textcfg.Var, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		vars = append(vars, textcfg.Var(p))
	}
	return varset.FromSlice(vars)
}
