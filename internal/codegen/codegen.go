// Package codegen walks a checked, laid-out ast.Program and emits
// three-address code into an ir.Program. Its dispatch shape — one
// generateXxxCode method per statement/expression kind, threading the
// enclosing function through every call — follows the teacher's
// code_generator.go (generateStatementCode/generateExpressionCode),
// generalized from the teacher's flat Hack-VM opcodes to the richer
// TAC instruction set ir.Instr defines.
package codegen

import (
	"tacc/internal/ast"
	"tacc/internal/ir"
)

// Generate emits TAC for every free function and class method in prog,
// into an ir.Program constructed fresh for the call. prog must already
// be checked (internal/sema) and laid out (internal/layout).
func Generate(prog *ast.Program) *ir.Program {
	g := &generator{prog: ir.NewProgram()}
	for _, class := range prog.Classes {
		g.emitVTable(class.Class)
	}
	for _, d := range prog.Functions {
		g.emitFunction(d.Function, nil)
	}
	for _, d := range prog.Classes {
		for _, m := range d.Class.Members {
			if m.Kind == ast.DeclFunction {
				g.emitFunction(m.Function, d.Class)
			}
		}
	}
	return g.prog
}

type generator struct {
	prog   *ir.Program
	fn     *ast.FunctionDecl
	locals map[string]*ir.Location
	// loopEnd maps an enclosing StmtWhile/StmtFor/StmtSwitch to the
	// label a StmtBreak targeting it should jump to.
	loopEnd map[*ast.Stmt]string
	// epilogue is the current function's single exit label — every
	// Return statement jumps here instead of falling through to
	// whatever statement follows it in program order.
	epilogue string
}

func (g *generator) emitVTable(class *ast.ClassDecl) {
	labels := make([]string, len(class.FlattenedMethods))
	for i, m := range class.FlattenedMethods {
		labels[i] = m.Function.Label
	}
	g.prog.Emit(&ir.Instr{Kind: ir.VTable, Label: vtableLabel(class), Methods: labels})
}

// vtableLabel uses the class name verbatim, matching
// original_source/src/ast_decl.cc's GenVTable(id->GetIdName(), ...).
func vtableLabel(class *ast.ClassDecl) string {
	return class.Name.Name
}

func (g *generator) emitFunction(fn *ast.FunctionDecl, owner *ast.ClassDecl) {
	prevFn, prevLocals, prevLoopEnd, prevEpilogue := g.fn, g.locals, g.loopEnd, g.epilogue
	g.fn = fn
	g.locals = map[string]*ir.Location{}
	g.loopEnd = map[*ast.Stmt]string{}

	begin := g.prog.Emit(&ir.Instr{Kind: ir.BeginFunc, Label: fn.Label})
	fn.SetFrameSizeInstr(begin)
	g.epilogue = g.prog.NewLabel()
	for _, s := range fn.Body {
		g.emitStmt(s)
	}
	g.emitLabel(g.epilogue)
	g.prog.Emit(&ir.Instr{Kind: ir.EndFunc})
	fn.BackpatchFrameSize()

	g.fn, g.locals, g.loopEnd, g.epilogue = prevFn, prevLocals, prevLoopEnd, prevEpilogue
}

// localLoc returns the Location for a local variable, allocating its
// frame slot lazily on first reference (spec.md §4.E.4: a slot is
// handed out the first time codegen touches the name, not at
// declaration time).
func (g *generator) localLoc(name string, decl *ast.Decl) *ir.Location {
	if decl.Variable.EmitLoc != nil {
		return decl.Variable.EmitLoc
	}
	if loc, ok := g.locals[name]; ok {
		return loc
	}
	off := g.fn.NextLocalOffset()
	loc := &ir.Location{Segment: ir.FP, Offset: off, Name: name}
	decl.Variable.EmitLoc = loc
	g.locals[name] = loc
	return loc
}

// tmp allocates a fresh compiler-introduced temporary, backed by its
// own local frame slot exactly like a user local.
func (g *generator) tmp() *ir.Location {
	name := g.prog.NewTmp()
	off := g.fn.NextLocalOffset()
	return &ir.Location{Segment: ir.FP, Offset: off, Name: name}
}
