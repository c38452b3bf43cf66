package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_CleanProgramProducesAssembly(t *testing.T) {
	src := `
		int counter;
		void main() {
			counter = 0;
			while (counter < 3) {
				Print(counter);
				counter = counter + 1;
			}
		}
	`
	res, err := Compile("t.decaf", src, Options{})
	assert.Nil(t, err)
	assert.False(t, res.Diagnostics.HasErrors())
	assert.NotNil(t, res.IR)
	assert.Contains(t, res.Assembly, "main:")
	assert.Contains(t, res.Assembly, "_Alloc:")
}

func TestCompile_SemanticErrorsSkipCodegen(t *testing.T) {
	src := `
		void main() {
			x = 1;
		}
	`
	res, err := Compile("t.decaf", src, Options{})
	assert.Nil(t, err)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Nil(t, res.IR)
	assert.Empty(t, res.Assembly)
}

func TestCompile_SyntaxErrorReturnsError(t *testing.T) {
	src := `void main() { ??? }`
	_, err := Compile("t.decaf", src, Options{})
	assert.NotNil(t, err)
}

func TestCompile_VerboseLoggingDoesNotPanic(t *testing.T) {
	src := `void main() {}`
	_, err := Compile("t.decaf", src, Options{Verbose: true})
	assert.Nil(t, err)
}
