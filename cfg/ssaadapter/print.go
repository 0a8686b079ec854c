package ssaadapter

import (
	"fmt"
	"io"

	"github.com/nk-go/liveness/cfg"
)

// CodePrinter implements debug.CodePrinter[Var], rendering each
// instruction the way *ssa.Function.WriteTo does: one line per
// instruction, register assignments spelled out.
type CodePrinter struct{}

// PrintCode writes each instruction's String() form to w.
func (CodePrinter) PrintCode(w io.Writer, instrs []cfg.Instruction[Var]) error {
	for _, in := range instrs {
		if _, err := fmt.Fprintf(w, "\t%s\n", in.(wrapInstr).String()); err != nil {
			return err
		}
	}
	return nil
}
