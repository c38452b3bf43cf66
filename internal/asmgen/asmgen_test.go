package asmgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/ir"
)

func TestEmit_WritesPreambleBeforeInstructions(t *testing.T) {
	out := Emit(ir.NewProgram())
	assert.True(t, strings.HasPrefix(out, ".text\n.align 2\n.globl main\n"))
}

func TestEmit_BeginFuncEndFuncPrologueEpilogue(t *testing.T) {
	prog := ir.NewProgram()
	begin := prog.Emit(&ir.Instr{Kind: ir.BeginFunc, Label: "main"})
	begin.SetFrameSize(16)
	prog.Emit(&ir.Instr{Kind: ir.EndFunc})

	out := Emit(prog)
	assert.Contains(t, out, "main:")
	assert.Contains(t, out, "subu $sp, $sp, 8")
	assert.Contains(t, out, "sw $fp, 8($sp)")
	assert.Contains(t, out, "sw $ra, 4($sp)")
	assert.Contains(t, out, "addiu $fp, $sp, 8")
	assert.Contains(t, out, "subu $sp, $sp, 16")
	assert.Contains(t, out, "lw $ra, -4($fp)")
	assert.Contains(t, out, "lw $fp, 0($fp)")
	assert.Contains(t, out, "jr $ra")
}

func TestEmit_LoadStringProducesAsciizBlock(t *testing.T) {
	dst := &ir.Location{Segment: ir.FP, Offset: -8, Name: "_tmp0"}
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.LoadString, Dst: dst, StringValue: "hello"})

	out := Emit(prog)
	assert.Contains(t, out, ".asciiz \"hello\"")
	assert.Contains(t, out, "la $t2, _string1")
}

func TestEmit_VTableProducesWordList(t *testing.T) {
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.VTable, Label: "_Animal_vtable", Methods: []string{"_Animal.Speak"}})

	out := Emit(prog)
	assert.Contains(t, out, "_Animal_vtable:")
	assert.Contains(t, out, ".word _Animal.Speak")
}

func TestEmit_BinaryOpUsesComparisonMnemonics(t *testing.T) {
	a := &ir.Location{Segment: ir.FP, Offset: -8, Name: "a"}
	b := &ir.Location{Segment: ir.FP, Offset: -12, Name: "b"}
	dst := &ir.Location{Segment: ir.FP, Offset: -16, Name: "c"}
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.BinaryOp, Op: "slt", Src1: a, Src2: b, Dst: dst})

	out := Emit(prog)
	assert.Contains(t, out, "slt $t2, $t0, $t1")
}

func TestEmit_GlobalLocationUsesGP(t *testing.T) {
	dst := &ir.Location{Segment: ir.GP, Offset: 4, Name: "counter"}
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.LoadConst, Dst: dst, IntValue: 1})

	out := Emit(prog)
	assert.Contains(t, out, "sw $t2, 4($gp)")
}

func TestEmit_IndirectLocationFollowsBase(t *testing.T) {
	base := &ir.Location{Segment: ir.FP, Offset: -8, Name: "obj"}
	field := &ir.Location{Offset: 4, Name: "age", Base: base}
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.Load, Src1: field, Off: 0, Dst: base})

	out := Emit(prog)
	assert.Contains(t, out, "lw $t0, -8($fp)")
	assert.Contains(t, out, "lw $t0, 4($t0)")
	assert.Contains(t, out, "lw $t2, 0($t0)")
}

func TestEmit_AppendsRuntimeRoutines(t *testing.T) {
	out := Emit(ir.NewProgram())
	for _, label := range []string{"_Alloc:", "_PrintInt:", "_PrintString:", "_PrintBool:", "_ReadInteger:", "_ReadLine:", "_StringEqual:", "_Halt:"} {
		assert.True(t, strings.Contains(out, label), "missing runtime label %s", label)
	}
}

func TestEmit_MultipleStringLiteralsGetDistinctLabels(t *testing.T) {
	dst1 := &ir.Location{Segment: ir.FP, Offset: -8, Name: "_tmp0"}
	dst2 := &ir.Location{Segment: ir.FP, Offset: -12, Name: "_tmp1"}
	prog := ir.NewProgram()
	prog.Emit(&ir.Instr{Kind: ir.LoadString, Dst: dst1, StringValue: "a"})
	prog.Emit(&ir.Instr{Kind: ir.LoadString, Dst: dst2, StringValue: "b"})

	out := Emit(prog)
	assert.Contains(t, out, "_string1: .asciiz \"a\"")
	assert.Contains(t, out, "_string2: .asciiz \"b\"")
}
