// Package driver wires the lexer, parser, semantic checker, layout
// planner, code generator, and assembly emitter into the single
// pipeline the driver.Compile function drives, in the same
// straight-line, error-returning shape the teacher's
// compiler/internal/compiler.go Compile function uses.
package driver

import (
	"fmt"
	"log"

	"tacc/internal/ast"
	"tacc/internal/asmgen"
	"tacc/internal/codegen"
	"tacc/internal/ir"
	"tacc/internal/layout"
	"tacc/internal/lexer"
	"tacc/internal/parser"
	"tacc/internal/sema"
)

// Result carries every intermediate artifact a caller might want to
// inspect (cmd/tacc's --dast/--dir dump flags read directly off this),
// alongside the final assembly text.
type Result struct {
	Program     *ast.Program
	Diagnostics *sema.Diagnostics
	IR          *ir.Program
	Assembly    string
}

// Options toggles per-phase progress logging, mirroring the teacher's
// compiler/internal/compiler.go's println calls before each phase.
type Options struct {
	Verbose bool
}

func (o Options) log(format string, args ...interface{}) {
	if !o.Verbose {
		return
	}
	log.Printf(format, args...)
}

// Compile runs every phase over src in order. A lex/parse syntax error
// is returned as a Go error. Semantic errors are not a Go error: they
// are returned inside Result.Diagnostics so a caller can print every
// one of them. Any diagnostic, ordinary or internal, ends the run after
// semantic analysis: layout, code generation and assembly emission are
// then skipped.
func Compile(file string, src string, opts Options) (*Result, error) {
	opts.log("driver: start lexer on %s", file)
	toks, err := lexer.TokenizeAll(file, src)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}

	opts.log("driver: start parser")
	prog, err := parser.ParseProgram(file, toks)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	opts.log("driver: start semantic analysis")
	diags := sema.Check(prog)
	result := &Result{Program: prog, Diagnostics: diags}
	if diags.HasErrors() {
		return result, nil
	}

	opts.log("driver: start layout planning")
	layout.Plan(prog)

	opts.log("driver: start code generation")
	irProg := codegen.Generate(prog)
	result.IR = irProg

	opts.log("driver: start assembly emission")
	result.Assembly = asmgen.Emit(irProg)

	return result, nil
}
