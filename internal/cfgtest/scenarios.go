package cfgtest

// The constructors below build the six end-to-end scenarios from the
// liveness engine's specification (single block, straight-line,
// diamond, self-loop, non-empty exit-live, reuse-then-redefine), reused
// by every package's test suite that needs a concrete fixture instead
// of hand-rolling one.

// SingleBlockNoSuccessors builds:
//
//	L0: x := 1; y := x + 1; return y
func SingleBlockNoSuccessors() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0", Instrs: []Instr{
			Def("x"),
			UseDef([]string{"x"}, []string{"y"}),
			Use("y"),
		}},
	)
}

// StraightLineTwoBlocks builds:
//
//	L0: a := 1; b := 2; goto L1
//	L1: c := a + b; return c
func StraightLineTwoBlocks() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0", Succs: []string{"L1"}, Instrs: []Instr{
			Def("a"),
			Def("b"),
		}},
		&Block{Label: "L1", Instrs: []Instr{
			UseDef([]string{"a", "b"}, []string{"c"}),
			Use("c"),
		}},
	)
}

// Diamond builds:
//
//	L0: t := x; branch t, L1, L2
//	L1: y := 1; goto L3
//	L2: y := 2; goto L3
//	L3: return y
func Diamond() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0", Succs: []string{"L1", "L2"}, Instrs: []Instr{
			UseDef([]string{"x"}, []string{"t"}),
			Use("t"),
		}},
		&Block{Label: "L1", Succs: []string{"L3"}, Instrs: []Instr{
			Def("y"),
		}},
		&Block{Label: "L2", Succs: []string{"L3"}, Instrs: []Instr{
			Def("y"),
		}},
		&Block{Label: "L3", Instrs: []Instr{
			Use("y"),
		}},
	)
}

// SelfLoop builds:
//
//	L0: i := i - 1; branch i, L0, L1
//	L1: return
func SelfLoop() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0", Succs: []string{"L0", "L1"}, Instrs: []Instr{
			UseDef([]string{"i"}, []string{"i"}),
			Use("i"),
		}},
		&Block{Label: "L1"},
	)
}

// ExitLiveSingleBlock builds:
//
//	L0: return
//
// intended to be analyzed with ExitLive = {r0}.
func ExitLiveSingleBlock() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0"},
	)
}

// ReuseThenRedefine builds:
//
//	L0: t := a + b; a := t; return a
func ReuseThenRedefine() *Graph {
	return NewGraph("L0",
		&Block{Label: "L0", Instrs: []Instr{
			UseDef([]string{"a", "b"}, []string{"t"}),
			UseDef([]string{"t"}, []string{"a"}),
			Use("a"),
		}},
	)
}
