package sema

import (
	"tacc/internal/ast"
	"tacc/internal/loc"
)

// bind resolves every named-type reference (class/interface names
// appearing in `extends`, `implements`, field types, parameter types,
// and return types) to its declaration, and reports references to
// undeclared class/interface names. This mirrors the teacher's
// SymbolExistenceChecker pass — check that every name used actually
// exists — generalized from variable existence to type existence,
// since type names are the identifiers our binder needs to settle
// before the later passes can reason about subtyping at all.
func bind(prog *ast.Program, diags *Diagnostics) {
	for _, d := range prog.Classes {
		bindClassHeader(prog, d.Class, diags)
	}
	for _, d := range prog.Classes {
		bindMembers(prog, d.Class.Members, diags)
	}
	for _, d := range prog.Interfaces {
		bindMembers(prog, d.Interface.Members, diags)
	}
	for _, d := range prog.Functions {
		bindFunctionSignature(prog, d.Function, diags)
	}
	for _, d := range prog.Globals {
		bindType(prog, d.Variable.Type, d.Name.Span, diags)
	}
}

func bindClassHeader(prog *ast.Program, class *ast.ClassDecl, diags *Diagnostics) {
	if class.Extends != nil {
		if !bindType(prog, class.Extends, class.Name.Span, diags) {
			return
		}
		if class.Extends.Decl == nil || class.Extends.Decl.Class == nil {
			diags.Report(class.Name.Span, "class %s extends %s, which is not a class", class.Name.Name, class.Extends.Name)
		}
	}
	for _, iface := range class.Implements {
		if !bindType(prog, iface, class.Name.Span, diags) {
			continue
		}
		if iface.Decl == nil || iface.Decl.Interface == nil {
			diags.Report(class.Name.Span, "class %s implements %s, which is not an interface", class.Name.Name, iface.Name)
		}
	}
}

func bindMembers(prog *ast.Program, members []*ast.Decl, diags *Diagnostics) {
	for _, m := range members {
		switch m.Kind {
		case ast.DeclVariable:
			bindType(prog, m.Variable.Type, m.Name.Span, diags)
		case ast.DeclFunction:
			bindFunctionSignature(prog, m.Function, diags)
		}
	}
}

func bindFunctionSignature(prog *ast.Program, fn *ast.FunctionDecl, diags *Diagnostics) {
	bindType(prog, fn.ReturnType, fn.Name.Span, diags)
	for _, formal := range fn.Formals {
		bindType(prog, formal.Variable.Type, formal.Name.Span, diags)
	}
}

// bindType resolves t (and, recursively, an array's element type) in
// place, returning false if a Named type could not be found at all —
// callers use the return value to decide whether further checks
// against that type would just cascade a bogus diagnostic.
func bindType(prog *ast.Program, t *ast.Type, span loc.Span, diags *Diagnostics) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case ast.KindArray:
		return bindType(prog, t.Elem, span, diags)
	case ast.KindNamed:
		if class := prog.FindClass(t.Name); class != nil {
			t.Decl = &ast.Decl{Kind: ast.DeclClass, Name: class.Name, Class: class}
			t.Validity = ast.Valid
			return true
		}
		if iface := prog.FindInterface(t.Name); iface != nil {
			t.Decl = &ast.Decl{Kind: ast.DeclInterface, Name: iface.Name, Interface: iface}
			t.Validity = ast.Valid
			return true
		}
		diags.Report(span, "undeclared type %s", t.Name)
		t.Validity = ast.Invalid
		return false
	default:
		return true
	}
}
