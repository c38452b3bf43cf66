package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/lexer"
	"tacc/internal/parser"
)

func mustCheck(t *testing.T, src string) *Diagnostics {
	toks, err := lexer.TokenizeAll("t.dcl", src)
	assert.Nil(t, err)
	prog, err := parser.ParseProgram("t.dcl", toks)
	assert.Nil(t, err)
	return Check(prog)
}

func TestCheck_CleanProgramHasNoErrors(t *testing.T) {
	diags := mustCheck(t, `
		int counter;
		void main() {
			counter = 1;
			while (counter < 10) {
				counter = counter + 1;
			}
			Print("done", counter);
		}
	`)
	assert.False(t, diags.HasErrors(), diagString(diags))
}

func TestCheck_UndeclaredIdentifier(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			x = 1;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_TypeMismatchOnAssignment(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			bool b;
			b = 5;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_BreakOutsideLoop(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			break;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_ExtendsUnknownClass(t *testing.T) {
	diags := mustCheck(t, `
		class Dog extends Nonexistent {
			int age;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_OverrideSignatureMismatch(t *testing.T) {
	diags := mustCheck(t, `
		class Animal {
			int Speak() {
				return 0;
			}
		}
		class Dog extends Animal {
			bool Speak() {
				return true;
			}
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_InterfaceConformance(t *testing.T) {
	diags := mustCheck(t, `
		interface Shape {
			int Area();
		}
		class Square implements Shape {
			int side;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_ValidSubclassAssignment(t *testing.T) {
	diags := mustCheck(t, `
		class Animal {
			int age;
		}
		class Dog extends Animal {
		}
		void main() {
			Animal a;
			a = New(Dog);
		}
	`)
	assert.False(t, diags.HasErrors(), diagString(diags))
}

func TestCheck_SwitchDuplicateCase(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			int x;
			x = 1;
			switch (x) {
				case 1:
					Print("one");
				case 1:
					Print("still one");
			}
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_DoubleValueReportsUnsupportedFeature(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			double d;
			d = 3.5;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_VariableShadowsInheritedMethodIsAnError(t *testing.T) {
	diags := mustCheck(t, `
		class A {
			int f() {
				return 0;
			}
		}
		class B extends A {
			int f;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_MethodCollidesWithInheritedFieldIsAnError(t *testing.T) {
	diags := mustCheck(t, `
		class A {
			int f;
		}
		class B extends A {
			int f() {
				return 0;
			}
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_VariableCollidesWithInterfaceMethodNameIsAnError(t *testing.T) {
	diags := mustCheck(t, `
		interface Shape {
			int area();
		}
		class Square implements Shape {
			int area;
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_FieldAccessRequiresEnclosingClassToShareField(t *testing.T) {
	diags := mustCheck(t, `
		class A {
			int x;
		}
		class Unrelated {
			int peek(A a) {
				return a.x;
			}
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_FieldAccessAllowedWithinSubtypeRelation(t *testing.T) {
	diags := mustCheck(t, `
		class A {
			int x;
		}
		class B extends A {
			int peek(A other) {
				return other.x;
			}
		}
	`)
	assert.False(t, diags.HasErrors(), diagString(diags))
}

func TestCheck_ArrayLengthReturnsInt(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			int[] a;
			int n;
			a = NewArray(3, int);
			n = a.length();
		}
	`)
	assert.False(t, diags.HasErrors(), diagString(diags))
}

func TestCheck_ArrayOtherMethodIsAnError(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			int[] a;
			a = NewArray(3, int);
			a.size();
		}
	`)
	assert.True(t, diags.HasErrors())
}

func TestCheck_DefaultNotLast(t *testing.T) {
	diags := mustCheck(t, `
		void main() {
			int x;
			x = 1;
			switch (x) {
				default:
					Print("default");
				case 1:
					Print("one");
			}
		}
	`)
	assert.True(t, diags.HasErrors())
}

func diagString(d *Diagnostics) string {
	s := ""
	for _, item := range d.All() {
		s += item.String() + "\n"
	}
	return s
}
