package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/lexer"
	"tacc/internal/parser"
	"tacc/internal/sema"
)

func TestPlan_GlobalsAndFunctionLabels(t *testing.T) {
	toks, err := lexer.TokenizeAll("t", `
		int a;
		int b;
		void main() {
		}
		void helper() {
		}
	`)
	assert.Nil(t, err)
	prog, err := parser.ParseProgram("t", toks)
	assert.Nil(t, err)
	diags := sema.Check(prog)
	assert.False(t, diags.HasErrors())

	Plan(prog)
	assert.Equal(t, int32(0), prog.Globals[0].Variable.EmitLoc.Offset)
	assert.Equal(t, int32(4), prog.Globals[1].Variable.EmitLoc.Offset)
	assert.Equal(t, "main", prog.Functions[0].Function.Label)
	assert.Equal(t, "_helper", prog.Functions[1].Function.Label)
}

func TestPlan_ClassInheritanceFlattensAndCollapsesOverrides(t *testing.T) {
	toks, err := lexer.TokenizeAll("t", `
		class Animal {
			int age;
			int Speak() {
				return 0;
			}
		}
		class Dog extends Animal {
			int Speak() {
				return 1;
			}
			int breed;
		}
	`)
	assert.Nil(t, err)
	prog, err := parser.ParseProgram("t", toks)
	assert.Nil(t, err)
	diags := sema.Check(prog)
	assert.False(t, diags.HasErrors())

	Plan(prog)
	dog := prog.FindClass("Dog")
	assert.Len(t, dog.FlattenedVars, 2)
	assert.Len(t, dog.FlattenedMethods, 1)
	assert.Equal(t, "_Dog.Speak", dog.FlattenedMethods[0].Function.Label)
	assert.Equal(t, int32(0), *dog.FlattenedMethods[0].Function.VTableOffset)
	assert.Equal(t, int32(12), dog.InstanceSize) // vtable ptr + age + breed
}

func TestPlan_MethodFormalsShiftedForThis(t *testing.T) {
	toks, err := lexer.TokenizeAll("t", `
		class C {
			int Add(int x, int y) {
				return x + y;
			}
		}
	`)
	assert.Nil(t, err)
	prog, err := parser.ParseProgram("t", toks)
	assert.Nil(t, err)
	sema.Check(prog)
	Plan(prog)

	add := prog.FindClass("C").Members[0].Function
	assert.Equal(t, int32(8), add.Formals[0].Variable.EmitLoc.Offset)
	assert.Equal(t, int32(12), add.Formals[1].Variable.EmitLoc.Offset)
}
