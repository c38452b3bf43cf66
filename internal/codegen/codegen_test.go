package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/ir"
	"tacc/internal/layout"
	"tacc/internal/lexer"
	"tacc/internal/parser"
	"tacc/internal/sema"
)

func mustGenerate(t *testing.T, src string) *ir.Program {
	toks, err := lexer.TokenizeAll("t", src)
	assert.Nil(t, err)
	prog, err := parser.ParseProgram("t", toks)
	assert.Nil(t, err)
	diags := sema.Check(prog)
	assert.False(t, diags.HasErrors())
	layout.Plan(prog)
	return Generate(prog)
}

func kinds(p *ir.Program) []ir.Kind {
	var ks []ir.Kind
	for _, in := range p.Instrs {
		ks = append(ks, in.Kind)
	}
	return ks
}

func TestGenerate_SimpleAssignAndPrint(t *testing.T) {
	p := mustGenerate(t, `
		int counter;
		void main() {
			counter = 1;
			Print("value", counter);
		}
	`)
	ks := kinds(p)
	assert.Contains(t, ks, ir.BeginFunc)
	assert.Contains(t, ks, ir.EndFunc)
	assert.Contains(t, ks, ir.LoadConst)
	assert.Contains(t, ks, ir.LCall)
}

func TestGenerate_WhileLoopEmitsLabelsAndIfZ(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			int i;
			i = 0;
			while (i < 10) {
				i = i + 1;
			}
		}
	`)
	ks := kinds(p)
	assert.Contains(t, ks, ir.Label)
	assert.Contains(t, ks, ir.IfZ)
	assert.Contains(t, ks, ir.Goto)
}

func TestGenerate_BreakJumpsToLoopEnd(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			while (true) {
				break;
			}
		}
	`)
	ks := kinds(p)
	assert.Contains(t, ks, ir.Goto)
}

func TestGenerate_NewEmitsAllocAndVTableStore(t *testing.T) {
	p := mustGenerate(t, `
		class Animal {
			int age;
		}
		void main() {
			Animal a;
			a = New(Animal);
		}
	`)
	found := false
	for _, in := range p.Instrs {
		if in.Kind == ir.LCall && in.CallTarget == "_Alloc" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenerate_VTableInstrEmittedPerClass(t *testing.T) {
	p := mustGenerate(t, `
		class Animal {
			int Speak() {
				return 0;
			}
		}
	`)
	found := false
	for _, in := range p.Instrs {
		if in.Kind == ir.VTable {
			found = true
			assert.Equal(t, []string{"_Animal.Speak"}, in.Methods)
		}
	}
	assert.True(t, found)
}

func TestGenerate_VTableLabelIsPlainClassName(t *testing.T) {
	p := mustGenerate(t, `
		class Animal {
			int Speak() {
				return 0;
			}
		}
	`)
	found := false
	for _, in := range p.Instrs {
		if in.Kind == ir.VTable {
			found = true
			assert.Equal(t, "Animal", in.Label)
		}
	}
	assert.True(t, found)
}

// TestGenerate_ReturnJumpsToSharedEpilogue guards against an early
// return falling through to statements that follow it in program
// order instead of leaving the function.
func TestGenerate_ReturnJumpsToSharedEpilogue(t *testing.T) {
	p := mustGenerate(t, `
		int f(int x) {
			if (x > 0) {
				return 1;
			}
			return 0;
		}
	`)
	var gotos, returns, endFuncIdx int
	endFuncIdx = -1
	for i, in := range p.Instrs {
		switch in.Kind {
		case ir.Goto:
			gotos++
		case ir.Return:
			returns++
		case ir.EndFunc:
			if endFuncIdx == -1 {
				endFuncIdx = i
			}
		}
	}
	assert.Equal(t, 2, returns)
	// one goto for the if's else-skip, two more so each return reaches
	// the shared epilogue instead of falling into the other branch.
	assert.GreaterOrEqual(t, gotos, 3)
	assert.Greater(t, endFuncIdx, -1)
	assert.Equal(t, ir.Label, p.Instrs[endFuncIdx-1].Kind)
}

func TestGenerate_ArrayIndexEmitsBoundsCheck(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			int[] a;
			a = NewArray(3, int);
			a[0] = 10;
		}
	`)
	foundMsg := false
	for _, in := range p.Instrs {
		if in.Kind == ir.LoadString && in.StringValue == "subscript out of bound\n" {
			foundMsg = true
		}
	}
	assert.True(t, foundMsg)
}

func TestGenerate_NewArrayEmitsSizeCheck(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			int[] a;
			a = NewArray(3, int);
		}
	`)
	foundMsg := false
	for _, in := range p.Instrs {
		if in.Kind == ir.LoadString && in.StringValue == "Array size is <= 0\n" {
			foundMsg = true
		}
	}
	assert.True(t, foundMsg)
}

func TestGenerate_PrintEmitsTrailingNewline(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			Print("hi");
		}
	`)
	foundNewline := false
	for _, in := range p.Instrs {
		if in.Kind == ir.LoadString && in.StringValue == "\n" {
			foundNewline = true
		}
	}
	assert.True(t, foundNewline)
}

func TestGenerate_ArrayLengthLoadsHeaderWordNotVTable(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			int[] a;
			int n;
			a = NewArray(3, int);
			n = a.length();
		}
	`)
	ks := kinds(p)
	assert.NotContains(t, ks, ir.ACall)
	loadCount := 0
	for _, in := range p.Instrs {
		if in.Kind == ir.Load {
			loadCount++
		}
	}
	assert.Greater(t, loadCount, 0)
}

// TestGenerate_FormalsUseFramePointerOffsetsMatchingCallerPushes guards
// the frame-pointer convention the asmgen prologue must honor: a
// formal's Location.Offset is fixed by layout.planFormals at +4, +8,
// ... which is only correct once the new $fp equals the caller's $sp
// at call time (see asmgen.Emit's BeginFunc lowering).
func TestGenerate_FormalsUseFramePointerOffsetsMatchingCallerPushes(t *testing.T) {
	p := mustGenerate(t, `
		int add(int a, int b) {
			return a + b;
		}
	`)
	var offsets []int32
	for _, in := range p.Instrs {
		if in.Kind == ir.Load || in.Kind == ir.Assign || in.Kind == ir.BinaryOp {
			for _, loc := range []*ir.Location{in.Src1, in.Src2} {
				if loc != nil && loc.Segment == ir.FP && loc.Offset > 0 {
					offsets = append(offsets, loc.Offset)
				}
			}
		}
	}
	assert.Contains(t, offsets, int32(4))
	assert.Contains(t, offsets, int32(8))
}

func TestGenerate_FrameSizeBackpatchedAfterLocals(t *testing.T) {
	p := mustGenerate(t, `
		void main() {
			int a;
			int b;
			a = 1;
			b = 2;
		}
	`)
	var begin *ir.Instr
	for _, in := range p.Instrs {
		if in.Kind == ir.BeginFunc {
			begin = in
			break
		}
	}
	assert.NotNil(t, begin)
	assert.Greater(t, begin.FrameSize, int32(0))
}
