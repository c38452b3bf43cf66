// Package asmgen lowers an ir.Program into target assembly text. Each
// ir.Instr kind gets its own emitXxx method appending fixed templates
// to a bytes.Buffer, in the style of the teacher's vm_translator.go
// (parsePush/parseAdd/parseEq/...) — generalized from the teacher's
// stack-machine VM instructions to a three-address register machine
// using three fixed temporaries and a naive load-before/store-after
// discipline around every instruction that touches memory.
package asmgen

import (
	"bytes"
	"fmt"
	"strings"

	"tacc/internal/ir"
)

// the three fixed general-purpose temporaries every non-trivial
// instruction lowers through: rs and rt hold operands, rd holds the
// result before it is spilled back to its Location's slot.
const (
	rs = "$t0"
	rt = "$t1"
	rd = "$t2"
)

// Emitter accumulates assembly text for one ir.Program. Its counters
// are instance state rather than package globals, matching the
// explicit-session-object style ir.Program itself uses instead of the
// teacher's package-level counters.
type Emitter struct {
	out       bytes.Buffer
	stringSeq int
}

// Emit lowers every instruction in prog and returns the finished
// assembly text, with the runtime support routines appended verbatim.
func Emit(prog *ir.Program) string {
	e := &Emitter{}
	e.line(".text")
	e.line(".align 2")
	e.line(".globl main")
	for _, instr := range prog.Instrs {
		e.emitInstr(instr)
	}
	e.out.WriteString(runtimeAsm)
	return e.out.String()
}

func (e *Emitter) line(format string, args ...interface{}) {
	fmt.Fprintf(&e.out, format+"\n", args...)
}

func (e *Emitter) emitInstr(in *ir.Instr) {
	if in.Comment != "" {
		e.line("  # %s", in.Comment)
	}
	switch in.Kind {
	case ir.BeginFunc:
		e.line("%s:", in.Label)
		e.line("  subu $sp, $sp, 8")
		e.line("  sw $fp, 8($sp)")
		e.line("  sw $ra, 4($sp)")
		e.line("  addiu $fp, $sp, 8")
		if in.FrameSize != 0 {
			e.line("  subu $sp, $sp, %d", in.FrameSize)
		}
	case ir.EndFunc:
		e.line("  move $sp, $fp")
		e.line("  lw $ra, -4($fp)")
		e.line("  lw $fp, 0($fp)")
		e.line("  jr $ra")
	case ir.LoadConst:
		e.line("  li %s, %d", rd, in.IntValue)
		e.spill(in.Dst, rd)
	case ir.LoadString:
		lbl := e.internString(in.StringValue)
		e.line("  la %s, %s", rd, lbl)
		e.spill(in.Dst, rd)
	case ir.LoadLabel:
		e.line("  la %s, %s", rd, in.Label)
		e.spill(in.Dst, rd)
	case ir.Assign:
		e.fill(rs, in.Src1)
		e.spill(in.Dst, rs)
	case ir.Load:
		e.fill(rs, in.Src1)
		e.line("  lw %s, %d(%s)", rd, in.Off, rs)
		e.spill(in.Dst, rd)
	case ir.Store:
		e.fill(rs, in.Src1)
		e.fill(rt, in.Src2)
		e.line("  sw %s, %d(%s)", rt, in.Off, rs)
	case ir.BinaryOp:
		e.emitBinaryOp(in)
	case ir.Label:
		e.line("%s:", in.Label)
	case ir.Goto:
		e.line("  j %s", in.Label)
	case ir.IfZ:
		e.fill(rs, in.Src1)
		e.line("  beqz %s, %s", rs, in.Label)
	case ir.PushParam:
		e.fill(rs, in.PushValue)
		e.line("  subu $sp, $sp, 4")
		e.line("  sw %s, 4($sp)", rs)
	case ir.PopParams:
		e.line("  addu $sp, $sp, %d", in.PopCount)
	case ir.LCall:
		e.line("  jal %s", in.CallTarget)
		if in.Dst != nil {
			e.spill(in.Dst, "$v0")
		}
	case ir.ACall:
		e.fill(rs, in.CallTargetLoc)
		e.line("  jalr %s", rs)
		if in.Dst != nil {
			e.spill(in.Dst, "$v0")
		}
	case ir.Return:
		if in.Src1 != nil {
			e.fill("$v0", in.Src1)
		}
	case ir.VTable:
		e.line(".data")
		e.line("%s:", in.Label)
		for _, m := range in.Methods {
			e.line("  .word %s", m)
		}
		e.line(".text")
	}
}

// segmentReg maps a Location's Segment to the base register that
// addresses it: locals and parameters hang off the frame pointer,
// globals off the fixed global pointer.
func segmentReg(seg ir.Segment) string {
	if seg == ir.GP {
		return "$gp"
	}
	return "$fp"
}

// fill loads loc's value into register reg, following an indirect
// (field/array-element) Location's base pointer if it has one.
func (e *Emitter) fill(reg string, loc *ir.Location) {
	if loc == nil {
		return
	}
	if loc.IsIndirect() {
		e.fill(rs, loc.Base)
		e.line("  lw %s, %d(%s)", reg, loc.Offset, rs)
		return
	}
	e.line("  lw %s, %d(%s)", reg, loc.Offset, segmentReg(loc.Segment))
}

// spill stores register reg's value into loc's slot.
func (e *Emitter) spill(loc *ir.Location, reg string) {
	if loc == nil {
		return
	}
	if loc.IsIndirect() {
		e.fill(rt, loc.Base)
		e.line("  sw %s, %d(%s)", reg, loc.Offset, rt)
		return
	}
	e.line("  sw %s, %d(%s)", reg, loc.Offset, segmentReg(loc.Segment))
}

var opMnemonic = map[string]string{
	"add": "add", "sub": "sub", "mul": "mul", "div": "div", "rem": "rem",
	"and": "and", "or": "or",
}

func (e *Emitter) emitBinaryOp(in *ir.Instr) {
	e.fill(rs, in.Src1)
	e.fill(rt, in.Src2)
	switch in.Op {
	case "seq":
		e.line("  seq %s, %s, %s", rd, rs, rt)
	case "sne":
		e.line("  sne %s, %s, %s", rd, rs, rt)
	case "slt":
		e.line("  slt %s, %s, %s", rd, rs, rt)
	case "sle":
		e.line("  sle %s, %s, %s", rd, rs, rt)
	case "sgt":
		e.line("  sgt %s, %s, %s", rd, rs, rt)
	case "sge":
		e.line("  sge %s, %s, %s", rd, rs, rt)
	default:
		e.line("  %s %s, %s, %s", opMnemonic[in.Op], rd, rs, rt)
	}
	e.spill(in.Dst, rd)
}

// internString allocates a fresh .asciiz label for a string literal
// and emits it in place with a .data/.text bracket, the same
// immediate-emission approach VTable directives use.
func (e *Emitter) internString(value string) string {
	e.stringSeq++
	label := fmt.Sprintf("_string%d", e.stringSeq)
	e.line(".data")
	e.line("%s: .asciiz \"%s\"", label, escapeString(value))
	e.line(".text")
	return label
}

// escapeString re-escapes a string literal's raw runtime value back
// into .asciiz source form, so a value already unescaped by the lexer
// round-trips through an assembler instead of embedding a literal
// newline or unbalanced quote in the .data segment.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
