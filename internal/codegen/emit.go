package codegen

import "tacc/internal/ir"

// Small emit helpers, one per ir.Kind shape actually used by this
// package, so the statement/expression walkers read as a sequence of
// named operations rather than raw struct literals.

func (g *generator) emitAssign(dst, src *ir.Location) {
	g.prog.Emit(&ir.Instr{Kind: ir.Assign, Dst: dst, Src1: src})
}

func (g *generator) emitLoadConst(dst *ir.Location, v int) {
	g.prog.Emit(&ir.Instr{Kind: ir.LoadConst, Dst: dst, IntValue: v})
}

func (g *generator) emitLoadBool(dst *ir.Location, v bool) {
	n := 0
	if v {
		n = 1
	}
	g.emitLoadConst(dst, n)
}

func (g *generator) emitLoadString(dst *ir.Location, v string) {
	g.prog.Emit(&ir.Instr{Kind: ir.LoadString, Dst: dst, StringValue: v})
}

func (g *generator) emitLoadLabel(dst *ir.Location, label string) {
	g.prog.Emit(&ir.Instr{Kind: ir.LoadLabel, Dst: dst, Label: label})
}

func (g *generator) emitLoad(dst, base *ir.Location, off int32) {
	g.prog.Emit(&ir.Instr{Kind: ir.Load, Dst: dst, Src1: base, Off: off})
}

func (g *generator) emitStore(base *ir.Location, off int32, value *ir.Location) {
	g.prog.Emit(&ir.Instr{Kind: ir.Store, Src1: base, Off: off, Src2: value})
}

func (g *generator) emitBinary(dst, l, r *ir.Location, op string) {
	g.prog.Emit(&ir.Instr{Kind: ir.BinaryOp, Dst: dst, Src1: l, Src2: r, Op: op})
}

func (g *generator) emitLabel(label string) {
	g.prog.Emit(&ir.Instr{Kind: ir.Label, Label: label})
}

func (g *generator) emitGoto(label string) {
	g.prog.Emit(&ir.Instr{Kind: ir.Goto, Label: label})
}

func (g *generator) emitIfZ(cond *ir.Location, label string) {
	g.prog.Emit(&ir.Instr{Kind: ir.IfZ, Src1: cond, Label: label})
}

func (g *generator) emitPushParam(v *ir.Location) {
	g.prog.Emit(&ir.Instr{Kind: ir.PushParam, PushValue: v})
}

func (g *generator) emitPopParams(bytes int32) {
	g.prog.Emit(&ir.Instr{Kind: ir.PopParams, PopCount: bytes})
}

func (g *generator) emitLCall(dst *ir.Location, target string) {
	g.prog.Emit(&ir.Instr{Kind: ir.LCall, Dst: dst, CallTarget: target})
}

func (g *generator) emitACall(dst *ir.Location, target *ir.Location) {
	g.prog.Emit(&ir.Instr{Kind: ir.ACall, Dst: dst, CallTargetLoc: target})
}

// emitReturnInstr moves value (if any) into the return register and
// jumps to the function's single epilogue, so a return anywhere but
// the last statement still leaves the function instead of falling
// through to whatever program-order statement follows it.
func (g *generator) emitReturnInstr(value *ir.Location) {
	g.prog.Emit(&ir.Instr{Kind: ir.Return, Src1: value})
	g.emitGoto(g.epilogue)
}
