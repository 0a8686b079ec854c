// Package textcfg implements a tiny human-writable control-flow graph
// text format and a cfg.Graph adapter over it, used by
// cmd/livenessview to demonstrate the liveness engine without requiring
// a real compiler front-end.
//
// Format, one block per "block ... end" section:
//
//	block L0
//	  use x
//	  def y
//	  succ L1
//	end
//	block L1
//	  use y
//	end
//
// Each instruction line is either "use v1 v2 ..." or "def v1 v2 ...",
// read in order; "succ" lines list the block's successor labels
// (repeatable or space-separated, duplicates allowed). Blank lines and
// lines starting with "#" are ignored. The first block line encountered
// is the entry.
package textcfg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nk-go/liveness/cfg"
)

// Var is the Variable implementation for the text format: a plain
// string ordered lexicographically.
type Var string

// Less orders variables lexicographically.
func (v Var) Less(o Var) bool { return v < o }

type instr struct {
	uses []Var
	defs []Var
}

func (i instr) Uses() []Var    { return i.uses }
func (i instr) Defines() []Var { return i.defs }

func (i instr) String() string {
	switch {
	case len(i.defs) > 0 && len(i.uses) > 0:
		return fmt.Sprintf("def %v (use %v)", i.defs, i.uses)
	case len(i.defs) > 0:
		return fmt.Sprintf("def %v", i.defs)
	default:
		return fmt.Sprintf("use %v", i.uses)
	}
}

type block struct {
	label  string
	instrs []instr
	succs  []string
}

// Graph is a parsed textual CFG, implementing cfg.Graph[string, Var].
type Graph struct {
	entry  string
	blocks map[string]*block
	order  []string // block declaration order
}

// Parse reads a textual CFG from r.
func Parse(r io.Reader) (*Graph, error) {
	g := &Graph{blocks: make(map[string]*block)}
	scanner := bufio.NewScanner(r)
	var cur *block
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "block":
			if len(fields) != 2 {
				return nil, fmt.Errorf("textcfg: line %d: expected 'block <label>'", lineNo)
			}
			if cur != nil {
				return nil, fmt.Errorf("textcfg: line %d: nested block before 'end'", lineNo)
			}
			cur = &block{label: fields[1]}
			if g.entry == "" {
				g.entry = cur.label
			}
		case "end":
			if cur == nil {
				return nil, fmt.Errorf("textcfg: line %d: 'end' without matching 'block'", lineNo)
			}
			if _, exists := g.blocks[cur.label]; exists {
				return nil, fmt.Errorf("textcfg: line %d: duplicate block %q", lineNo, cur.label)
			}
			g.blocks[cur.label] = cur
			g.order = append(g.order, cur.label)
			cur = nil
		case "use":
			if cur == nil {
				return nil, fmt.Errorf("textcfg: line %d: 'use' outside a block", lineNo)
			}
			cur.instrs = append(cur.instrs, instr{uses: toVars(fields[1:])})
		case "def":
			if cur == nil {
				return nil, fmt.Errorf("textcfg: line %d: 'def' outside a block", lineNo)
			}
			cur.instrs = append(cur.instrs, instr{defs: toVars(fields[1:])})
		case "succ":
			if cur == nil {
				return nil, fmt.Errorf("textcfg: line %d: 'succ' outside a block", lineNo)
			}
			cur.succs = append(cur.succs, fields[1:]...)
		default:
			return nil, fmt.Errorf("textcfg: line %d: unrecognised directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("textcfg: unterminated block %q", cur.label)
	}
	return g, nil
}

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

// Postorder returns a depth-first postorder traversal from the entry
// block (the first "block" directive parsed).
func (g *Graph) Postorder() []string {
	var order []string
	visited := make(map[string]bool)
	var visit func(label string)
	visit = func(label string) {
		if visited[label] {
			return
		}
		visited[label] = true
		b, ok := g.blocks[label]
		if !ok {
			return
		}
		for _, succ := range b.succs {
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
	return b.succs
}

// BlockCode returns the instructions of label as abstract
// cfg.Instruction values.
func (g *Graph) BlockCode(label string) []cfg.Instruction[Var] {
	b, ok := g.blocks[label]
	if !ok {
		return nil
	}
	instrs := make([]cfg.Instruction[Var], len(b.instrs))
	for i, in := range b.instrs {
		instrs[i] = in
	}
	return instrs
}

// CodePrinter implements debug.CodePrinter, rendering each instruction's
// String() form on its own line.
type CodePrinter struct{}

// PrintCode writes each instruction's String() form to w.
func (CodePrinter) PrintCode(w io.Writer, instrs []cfg.Instruction[Var]) error {
	for _, in := range instrs {
		if _, err := fmt.Fprintf(w, "  %s\n", in.(instr).String()); err != nil {
			return err
		}
	}
	return nil
}
