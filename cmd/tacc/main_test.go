package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, src string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.decaf")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestCLI_CompilesToAssemblyOnStdout(t *testing.T) {
	path := writeTempSource(t, `void main() { Print("hi"); }`)
	outFile, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer outFile.Close()

	rootCmd := newRootCmd(outFile, outFile)
	rootCmd.SetArgs([]string{path})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outFile.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "main:")
}

func TestCLI_SemanticErrorReturnsNonNilError(t *testing.T) {
	dumpAST, dumpIR, dumpAsm, verbose, outPath, emitDiagnostics = false, false, false, false, "", ""
	path := writeTempSource(t, `void main() { x = 1; }`)
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()

	rootCmd := newRootCmd(devNull, devNull)
	rootCmd.SetArgs([]string{path})
	assert.Error(t, rootCmd.Execute())
}

func TestCLI_DastFlagDumpsProgramInsteadOfAssembly(t *testing.T) {
	dumpAST, dumpIR, dumpAsm, verbose, outPath, emitDiagnostics = false, false, false, false, "", ""
	path := writeTempSource(t, `void main() {}`)
	outFile, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer outFile.Close()

	rootCmd := newRootCmd(outFile, outFile)
	rootCmd.SetArgs([]string{"--dast", path})
	require.NoError(t, rootCmd.Execute())
	dumpAST = false

	data, err := os.ReadFile(outFile.Name())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
