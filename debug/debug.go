// Package debug provides the optional pretty-printing and
// source-annotation operations from the liveness engine's external
// interface. Neither is required by Analyze itself; both are thin
// consumers of a finished liveness.Result and do not check
// Config.DebugAnnotate.
package debug

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nk-go/liveness"
	"github.com/nk-go/liveness/cfg"
	"github.com/nk-go/liveness/varset"
)

// CodePrinter renders a block's instructions to w. The liveness engine
// has no notion of instruction text, so pretty-printing delegates this
// to the host, exactly as block-code access itself is delegated via
// cfg.Graph.
type CodePrinter[V varset.Variable[V]] interface {
	PrintCode(w io.Writer, instrs []cfg.Instruction[V]) error
}

var (
	liveInColor  = color.New(color.FgGreen)
	liveOutColor = color.New(color.FgYellow)
)

// PrettyPrint dumps one block per entry to w: label, live-in set, block
// code (delegated to printer), live-out set. Labels are printed in the
// order recorded by the result (the CFG adapter's postorder).
func PrettyPrint[L comparable, V varset.Variable[V]](w io.Writer, g cfg.Graph[L, V], result *liveness.Result[L, V], printer CodePrinter[V]) error {
	for _, label := range result.Labels() {
		in, err := result.LiveIn(label)
		if err != nil {
			return err
		}
		out, err := result.LiveOut(label)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "block %v:\n", label)
		liveInColor.Fprintf(w, "  live-in:  %v\n", in.Slice())
		if err := printer.PrintCode(w, g.BlockCode(label)); err != nil {
			return err
		}
		liveOutColor.Fprintf(w, "  live-out: %v\n", out.Slice())
	}
	return nil
}
