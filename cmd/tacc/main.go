// Command tacc compiles a source file straight through to target
// assembly, with --dast/--dir flags to dump an intermediate artifact
// instead, in the style of the ralph-cc CLI's -dparse/-drtl/
// -dasm dump flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tacc/internal/driver"
)

var version = "0.1.0"

var (
	dumpAST         bool
	dumpIR          bool
	dumpAsm         bool
	verbose         bool
	outPath         string
	emitDiagnostics string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut *os.File) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tacc [file]",
		Short:         "tacc compiles a class-based source file to target assembly",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileFile(args[0], out, errOut)
		},
	}

	rootCmd.Flags().BoolVar(&dumpAST, "dast", false, "dump the parsed program instead of compiling")
	rootCmd.Flags().BoolVar(&dumpIR, "dir", false, "dump three-address code instead of assembly")
	rootCmd.Flags().BoolVar(&dumpAsm, "dasm", false, "dump generated assembly (default output)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each compiler phase as it starts")
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "write assembly to this path instead of stdout")
	rootCmd.Flags().StringVar(&emitDiagnostics, "emit-diagnostics", "", `diagnostic report format: "" for plain text, "yaml" for a structured report`)

	return rootCmd
}

// diagnosticReport is the --emit-diagnostics=yaml shape: one entry per
// accumulated diagnostic, machine-readable for editor integrations
// that would otherwise have to scrape plain-text compiler output.
type diagnosticReport struct {
	File        string   `yaml:"file"`
	Diagnostics []string `yaml:"diagnostics"`
}

func printDiagnostics(path string, diags []string, errOut *os.File) error {
	if emitDiagnostics != "yaml" {
		for _, d := range diags {
			fmt.Fprintln(errOut, d)
		}
		return nil
	}
	out, err := yaml.Marshal(diagnosticReport{File: path, Diagnostics: diags})
	if err != nil {
		return err
	}
	_, err = errOut.Write(out)
	return err
}

func compileFile(path string, out, errOut *os.File) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tacc: cannot read %s: %w", path, err)
	}

	res, err := driver.Compile(path, string(src), driver.Options{Verbose: verbose})
	if err != nil {
		fmt.Fprintf(errOut, "tacc: %v\n", err)
		return err
	}

	if res.Diagnostics.HasErrors() {
		var msgs []string
		for _, d := range res.Diagnostics.All() {
			msgs = append(msgs, d.String())
		}
		if err := printDiagnostics(path, msgs, errOut); err != nil {
			return err
		}
		return fmt.Errorf("tacc: %s failed semantic analysis", path)
	}

	if dumpAST {
		fmt.Fprintf(out, "%+v\n", res.Program)
		return nil
	}
	if dumpIR {
		for _, in := range res.IR.Instrs {
			fmt.Fprintln(out, in.Kind)
		}
		return nil
	}

	if outPath != "" {
		return os.WriteFile(outPath, []byte(res.Assembly), 0644)
	}
	fmt.Fprint(out, res.Assembly)
	return nil
}
