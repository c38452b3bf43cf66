package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacc/internal/driver"
)

func TestNegative_DuplicateDeclarationInOneBlock(t *testing.T) {
	res, err := driver.Compile("t.decaf", `
		void main() {
			int a;
			int a;
		}
	`, driver.Options{})
	require.NoError(t, err)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Empty(t, res.Assembly)
}

func TestNegative_SubclassShadowsParentVariableAsField(t *testing.T) {
	res, err := driver.Compile("t.decaf", `
		class A {
			int x;
		}
		class B extends A {
			int x;
		}
		void main() {}
	`, driver.Options{})
	require.NoError(t, err)
	assert.True(t, res.Diagnostics.HasErrors())
}

func TestNegative_ReturnTypeMismatch(t *testing.T) {
	res, err := driver.Compile("t.decaf", `
		int f(int x) {
			return "s";
		}
		void main() {}
	`, driver.Options{})
	require.NoError(t, err)
	assert.True(t, res.Diagnostics.HasErrors())
}
