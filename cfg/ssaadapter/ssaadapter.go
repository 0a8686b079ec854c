// Package ssaadapter binds the engine's abstract cfg.Graph contract to
// real Go SSA IR from golang.org/x/tools/go/ssa, so the liveness engine
// can run over actual compiled Go functions instead of synthetic
// fixtures.
//
// Phi instructions are treated like any other instruction: their
// operands (the incoming-edge values) are all counted as uses. This is
// a deliberate approximation of per-predecessor phi semantics, which
// are explicitly out of scope for the engine; it stays safe because
// the resulting live-in sets are always a superset of the precise
// per-edge answer.
package ssaadapter

import (
	"fmt"

	"golang.org/x/tools/go/ssa"

	"github.com/nk-go/liveness/cfg"
)

// Var wraps an ssa.Value to satisfy varset.Variable, ordering
// lexicographically by the value's register name. Names are unique
// within the function body a Function adapts.
type Var struct {
	val ssa.Value
}

// Wrap returns the Var for v.
func Wrap(v ssa.Value) Var { return Var{val: v} }

// Value returns the wrapped ssa.Value.
func (v Var) Value() ssa.Value { return v.val }

// Less orders by the underlying SSA register name.
func (v Var) Less(o Var) bool { return v.val.Name() < o.val.Name() }

func (v Var) String() string { return v.val.Name() }

// Function adapts an *ssa.Function to cfg.Graph[int, Var], one label
// per basic-block index.
type Function struct {
	fn *ssa.Function
}

// WrapFunction returns the Function adapter for fn. fn.Blocks must
// already be built, e.g. via ssautil.BuildPackage or Program.Build.
func WrapFunction(fn *ssa.Function) *Function {
	return &Function{fn: fn}
}

// Postorder returns block indices in depth-first postorder from the
// entry block (block 0). A function with no built blocks (an external
// declaration) yields an empty order.
func (f *Function) Postorder() []int {
	if len(f.fn.Blocks) == 0 {
		return nil
	}
	var order []int
	visited := make(map[int]bool)
	var visit func(b *ssa.BasicBlock)
	visit = func(b *ssa.BasicBlock) {
		if b == nil || visited[b.Index] {
			return
		}
		visited[b.Index] = true
		for _, succ := range b.Succs {
			visit(succ)
		}
		order = append(order, b.Index)
	}
	visit(f.fn.Blocks[0])
	return order
}

// Successors returns the successor block indices of label.
func (f *Function) Successors(label int) []int {
	b := f.block(label)
	if b == nil {
		return nil
	}
	succs := make([]int, len(b.Succs))
	for i, s := range b.Succs {
		succs[i] = s.Index
	}
	return succs
}

// BlockCode returns the instructions of label as abstract
// cfg.Instruction values.
func (f *Function) BlockCode(label int) []cfg.Instruction[Var] {
	b := f.block(label)
	if b == nil {
		return nil
	}
	instrs := make([]cfg.Instruction[Var], len(b.Instrs))
	for i, in := range b.Instrs {
		instrs[i] = wrapInstr{instr: in}
	}
	return instrs
}

func (f *Function) block(label int) *ssa.BasicBlock {
	if label < 0 || label >= len(f.fn.Blocks) {
		return nil
	}
	return f.fn.Blocks[label]
}

// wrapInstr adapts a single ssa.Instruction to cfg.Instruction[Var].
type wrapInstr struct {
	instr ssa.Instruction
}

// Uses returns the operand values that are themselves tracked
// registers, skipping constants, globals, functions and builtins,
// whose lifetime is not governed by block flow.
func (w wrapInstr) Uses() []Var {
	var rands []*ssa.Value
	rands = w.instr.Operands(rands)
	var vars []Var
	for _, r := range rands {
		if r == nil || *r == nil {
			continue
		}
		if isTracked(*r) {
			vars = append(vars, Wrap(*r))
		}
	}
	return vars
}

// Defines returns the single value the instruction produces, if any.
// Not every ssa.Instruction is a Value (*ssa.Jump, *ssa.Store, *ssa.If
// and others produce nothing).
func (w wrapInstr) Defines() []Var {
	if v, ok := w.instr.(ssa.Value); ok && isTracked(v) {
		return []Var{Wrap(v)}
	}
	return nil
}

func (w wrapInstr) String() string {
	if v, ok := w.instr.(ssa.Value); ok && v.Name() != "" {
		return fmt.Sprintf("%s = %s", v.Name(), v.String())
	}
	return w.instr.String()
}

// isTracked reports whether v is a value the liveness engine should
// track as a variable: instruction-produced registers, parameters and
// free variables, not constants, globals or callees.
func isTracked(v ssa.Value) bool {
	switch v.(type) {
	case *ssa.Const, *ssa.Global, *ssa.Function, *ssa.Builtin:
		return false
	default:
		return true
	}
}
