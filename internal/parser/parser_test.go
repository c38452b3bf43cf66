package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/ast"
	"tacc/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	toks, err := lexer.TokenizeAll("test.dcl", src)
	assert.Nil(t, err)
	prog, err := ParseProgram("test.dcl", toks)
	assert.Nil(t, err)
	assert.NotNil(t, prog)
	return prog
}

func TestParseProgram_GlobalAndFunction(t *testing.T) {
	prog := mustParse(t, `
		int counter;
		void main() {
			counter = 1;
			Print("value", counter);
		}
	`)
	assert.Len(t, prog.Globals, 1)
	assert.Len(t, prog.Functions, 1)
	assert.Equal(t, "main", prog.Functions[0].Name.Name)
	assert.Len(t, prog.Functions[0].Function.Body, 2)
}

func TestParseProgram_ClassWithExtendsAndImplements(t *testing.T) {
	prog := mustParse(t, `
		interface Shape {
			int Area();
		}
		class Animal {
			int age;
		}
		class Dog extends Animal implements Shape {
			int Area() {
				return 1;
			}
		}
	`)
	assert.Len(t, prog.Interfaces, 1)
	assert.Len(t, prog.Classes, 2)
	dog := prog.FindClass("Dog")
	assert.NotNil(t, dog)
	assert.Equal(t, "Animal", dog.Extends.Name)
	assert.Len(t, dog.Implements, 1)
	assert.Equal(t, "Shape", dog.Implements[0].Name)
}

func TestParseProgram_ControlFlowAndSwitch(t *testing.T) {
	prog := mustParse(t, `
		void main() {
			int i;
			for (i = 0; i < 10; i = i + 1) {
				if (i == 5) {
					break;
				}
			}
			switch (i) {
				case 1:
					Print("one");
				default:
					Print("other");
			}
		}
	`)
	fn := prog.FindFunction("main")
	assert.NotNil(t, fn)
	assert.Equal(t, ast.StmtFor, fn.Body[1].Kind)
	assert.Equal(t, ast.StmtSwitch, fn.Body[2].Kind)
	assert.Len(t, fn.Body[2].Cases, 2)
	assert.Nil(t, fn.Body[2].Cases[1].Label)
}

func TestParseProgram_ExpressionPrecedence(t *testing.T) {
	prog := mustParse(t, `
		bool ok;
		void main() {
			ok = 1 + 2 * 3 == 7 && !false;
		}
	`)
	fn := prog.FindFunction("main")
	assign := fn.Body[0].Expr
	assert.Equal(t, ast.ExprAssign, assign.Kind)
	assert.Equal(t, ast.ExprBinary, assign.Right.Kind)
	assert.Equal(t, "&&", assign.Right.Op)
}

func TestParseProgram_NewAndNewArray(t *testing.T) {
	prog := mustParse(t, `
		class A {}
		void main() {
			int[] xs;
			A a;
			xs = NewArray(10, int);
			a = New(A);
		}
	`)
	fn := prog.FindFunction("main")
	assign := fn.Body[2].Expr
	assert.Equal(t, ast.ExprAssign, assign.Kind)
	assert.Equal(t, ast.ExprNewArr, assign.Right.Kind)
	newAssign := fn.Body[3].Expr
	assert.Equal(t, ast.ExprAssign, newAssign.Kind)
	assert.Equal(t, ast.ExprNew, newAssign.Right.Kind)
}

func TestParseProgram_SyntaxError(t *testing.T) {
	toks, err := lexer.TokenizeAll("t", "void main( { }")
	assert.Nil(t, err)
	_, perr := ParseProgram("t", toks)
	assert.NotNil(t, perr)
}
