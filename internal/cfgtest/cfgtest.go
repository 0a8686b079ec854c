// Package cfgtest is a minimal, in-memory cfg.Graph implementation used
// only by this module's test suites. It lets tests describe a tiny
// textual CFG (blocks, instructions, successors) without depending on a
// real compiler's representation.
package cfgtest

import (
	"fmt"
	"io"

	"github.com/nk-go/liveness/cfg"
)

// Var is the Variable implementation used by every test in this module:
// a plain string ordered lexicographically.
type Var string

// Less orders variables lexicographically.
func (v Var) Less(o Var) bool { return v < o }

// Instr is a minimal instruction: the variables it uses (before any of
// its own writes take effect) and the variables it defines. A comment
// pseudo-instruction (built via Comment) uses and defines nothing and
// only carries display text, for debug.Annotate tests.
type Instr struct {
	uses []Var
	defs []Var
	text string
}

// Uses returns the variables read by the instruction.
func (i Instr) Uses() []Var { return i.uses }

// Defines returns the variables written by the instruction.
func (i Instr) Defines() []Var { return i.defs }

// String renders the instruction for debug.PrettyPrint tests.
func (i Instr) String() string {
	if i.text != "" {
		return i.text
	}
	return fmt.Sprintf("use=%v def=%v", i.uses, i.defs)
}

// Use builds an instruction that only reads vars, e.g. `return y`.
func Use(vars ...string) Instr { return Instr{uses: toVars(vars)} }

// Def builds an instruction that only writes vars, e.g. `x := 1`.
func Def(vars ...string) Instr { return Instr{defs: toVars(vars)} }

// UseDef builds an instruction reading uses and then writing defs, e.g.
// `y := x + 1` is UseDef([]string{"x"}, []string{"y"}).
func UseDef(uses, defs []string) Instr {
	return Instr{uses: toVars(uses), defs: toVars(defs)}
}

// Comment builds a pseudo-instruction carrying only display text, used
// by debug.Annotate's host hooks.
func Comment(term string) Instr { return Instr{text: term} }

func toVars(ss []string) []Var {
	if len(ss) == 0 {
		return nil
	}
	vs := make([]Var, len(ss))
	for i, s := range ss {
		vs[i] = Var(s)
	}
	return vs
}

// Block is one basic block in a Graph: its code and its successor
// labels (possibly empty, possibly with duplicates).
type Block struct {
	Label  string
	Instrs []Instr
	Succs  []string
}

// Graph is a small hand-built cfg.Graph[string, Var] for tests.
type Graph struct {
	entry  string
	blocks map[string]*Block
}

// NewGraph builds a Graph rooted at entry from the given blocks.
func NewGraph(entry string, blocks ...*Block) *Graph {
	g := &Graph{entry: entry, blocks: make(map[string]*Block, len(blocks))}
	for _, b := range blocks {
		g.blocks[b.Label] = b
	}
	return g
}

// Postorder returns a depth-first postorder traversal from entry. Each
// reachable label appears exactly once; unreachable blocks are omitted.
func (g *Graph) Postorder() []string {
	var order []string
	visited := make(map[string]bool)
	var visit func(label string)
	visit = func(label string) {
		if visited[label] {
			return
		}
		visited[label] = true
		block, ok := g.blocks[label]
		if !ok {
			return
		}
		for _, succ := range block.Succs {
			visit(succ)
		}
		order = append(order, label)
	}
	if _, ok := g.blocks[g.entry]; ok {
		visit(g.entry)
	}
	return order
}

// Successors returns the raw successor list recorded for label.
func (g *Graph) Successors(label string) []string {
	b, ok := g.blocks[label]
	if !ok {
		return nil
	}
	return b.Succs
}

// BlockCode returns the instructions of label as abstract
// cfg.Instruction values.
func (g *Graph) BlockCode(label string) []cfg.Instruction[Var] {
	b, ok := g.blocks[label]
	if !ok {
		return nil
	}
	instrs := make([]cfg.Instruction[Var], len(b.Instrs))
	for i, in := range b.Instrs {
		instrs[i] = in
	}
	return instrs
}

// SetBlockCode replaces the instructions of label, implementing
// debug.CodeSetter for tests of debug.Annotate.
func (g *Graph) SetBlockCode(label string, instrs []cfg.Instruction[Var]) {
	b, ok := g.blocks[label]
	if !ok {
		return
	}
	b.Instrs = make([]Instr, len(instrs))
	for i, in := range instrs {
		b.Instrs[i] = in.(Instr)
	}
}

// CommentMaker implements debug.CommentMaker for tests of debug.Annotate.
type CommentMaker struct{}

// MakeComment builds a comment pseudo-instruction.
func (CommentMaker) MakeComment(term string) cfg.Instruction[Var] { return Comment(term) }

// CodePrinter implements debug.CodePrinter for tests of
// debug.PrettyPrint, rendering each instruction's String() on its own
// line.
type CodePrinter struct{}

// PrintCode writes each instruction's String() form to w.
func (CodePrinter) PrintCode(w io.Writer, instrs []cfg.Instruction[Var]) error {
	for _, in := range instrs {
		if _, err := fmt.Fprintf(w, "  %s\n", in.(Instr).String()); err != nil {
			return err
		}
	}
	return nil
}
