// Package e2e drives the whole compiler pipeline against literal
// source snippets loaded from testdata/scenarios.yaml, in the same
// data-driven shape as the teacher's borrowed pack-mate
// raymyers-ralph-cc-go's e2e_asm.yaml-driven TestE2EAsmYAML: Expect,
// ExpectOrder, ExpectUnique, and ExpectNot assertions against one
// rendered assembly listing per scenario.
package e2e

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tacc/internal/driver"
)

// Scenario is one literal-source case: the assembly produced for
// Input must contain every string in Expect, contain ExpectOrder's
// strings in that relative order, contain each ExpectUnique string
// exactly once, and contain none of ExpectNot.
type Scenario struct {
	Name         string   `yaml:"name"`
	Input        string   `yaml:"input"`
	Expect       []string `yaml:"expect"`
	ExpectOrder  []string `yaml:"expect_order"`
	ExpectUnique []string `yaml:"expect_unique"`
	ExpectNot    []string `yaml:"expect_not"`
	Skip         string   `yaml:"skip,omitempty"`
}

type scenarioFile struct {
	Tests []Scenario `yaml:"tests"`
}

func loadScenarios(t *testing.T) []Scenario {
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var f scenarioFile
	require.NoError(t, yaml.Unmarshal(data, &f))
	return f.Tests
}

func TestScenarios(t *testing.T) {
	for _, tc := range loadScenarios(t) {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			res, err := driver.Compile(tc.Name+".decaf", tc.Input, driver.Options{})
			require.NoError(t, err)
			require.False(t, res.Diagnostics.HasErrors(), "unexpected diagnostics: %v", res.Diagnostics.All())

			out := res.Assembly

			for _, exp := range tc.Expect {
				assert.Contains(t, out, exp)
			}

			lastIdx := -1
			for _, exp := range tc.ExpectOrder {
				idx := strings.Index(out, exp)
				if assert.NotEqual(t, -1, idx, "expected %q to appear", exp) {
					assert.Greater(t, idx, lastIdx, "expected %q to appear after the previous ordered match", exp)
					lastIdx = idx
				}
			}

			for _, exp := range tc.ExpectUnique {
				assert.Equal(t, 1, strings.Count(out, exp), "expected %q exactly once", exp)
			}

			for _, exp := range tc.ExpectNot {
				assert.NotContains(t, out, exp)
			}
		})
	}
}
