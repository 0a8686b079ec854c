package debug

import (
	"fmt"

	"github.com/nk-go/liveness"
	"github.com/nk-go/liveness/cfg"
	"github.com/nk-go/liveness/varset"
)

// CommentMaker builds a host pseudo-instruction carrying a debug
// comment term, used by Annotate to prefix block code with live-in/
// live-out annotations without the liveness engine knowing anything
// about the host's concrete instruction type.
type CommentMaker[V varset.Variable[V]] interface {
	MakeComment(term string) cfg.Instruction[V]
}

// CodeSetter lets Annotate write the annotated instruction sequence back
// into the host's own CFG representation for label.
type CodeSetter[L comparable, V varset.Variable[V]] interface {
	SetBlockCode(label L, instrs []cfg.Instruction[V])
}

// Annotate prefixes every block's code with two pseudo-comments carrying
// its live-in and live-out sets, via the host-provided maker and setter
// hooks. It mutates the host CFG in place through setter. It does not
// check Config.DebugAnnotate; it runs on any result.
func Annotate[L comparable, V varset.Variable[V]](g cfg.Graph[L, V], result *liveness.Result[L, V], maker CommentMaker[V], setter CodeSetter[L, V]) error {
	for _, label := range result.Labels() {
		in, err := result.LiveIn(label)
		if err != nil {
			return err
		}
		out, err := result.LiveOut(label)
		if err != nil {
			return err
		}

		annotated := make([]cfg.Instruction[V], 0, len(g.BlockCode(label))+2)
		annotated = append(annotated,
			maker.MakeComment(fmt.Sprintf("live-in:  %v", in.Slice())),
			maker.MakeComment(fmt.Sprintf("live-out: %v", out.Slice())),
		)
		annotated = append(annotated, g.BlockCode(label)...)
		setter.SetBlockCode(label, annotated)
	}
	return nil
}
