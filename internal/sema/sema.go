package sema

import "tacc/internal/ast"

// Check runs bind, then inherit, then type in sequence and returns the
// accumulated diagnostics. Later passes still run even if an earlier
// one reported errors, so a single invocation surfaces as many
// independent problems as possible — the driver decides whether
// diagnostics gate code generation, not this function.
func Check(prog *ast.Program) *Diagnostics {
	diags := &Diagnostics{}
	bind(prog, diags)
	inherit(prog, diags)
	typeCheck(prog, diags)
	return diags
}
