// Package layout assigns storage locations and decorated emit-time
// names before code generation runs: global/parameter/local offsets,
// class instance layout (field offsets and instance size), and vtable
// construction with override collapsing. It corresponds to the
// teacher's generateCodeForClassVariable-style up-front offset
// bookkeeping, pulled out into its own pass since our target has a
// richer object model (inheritance, vtables) than the teacher's flat
// Hack classes.
package layout

import (
	"fmt"

	"tacc/internal/ast"
	"tacc/internal/ir"
)

const wordSize = int32(4)

// Plan assigns every storage location and decorated label in prog. It
// assumes sema.Check has already run and reported no errors — Plan
// itself does not validate, it only lays out.
func Plan(prog *ast.Program) {
	planGlobals(prog)
	for _, d := range prog.Classes {
		planClass(d.Class)
	}
	for _, d := range prog.Functions {
		fn := d.Function
		fn.Label = decoratedFreeFunctionLabel(fn.Name.Name)
		planFormals(fn, false)
	}
	for _, d := range prog.Classes {
		for _, m := range d.Class.Members {
			if m.Kind != ast.DeclFunction {
				continue
			}
			m.Function.Label = decoratedMethodLabel(d.Class.Name.Name, m.Name.Name)
			planFormals(m.Function, true)
		}
	}
}

func decoratedFreeFunctionLabel(name string) string {
	if name == "main" {
		return "main"
	}
	return "_" + name
}

func decoratedMethodLabel(class, method string) string {
	return fmt.Sprintf("_%s.%s", class, method)
}

// planGlobals assigns each top-level variable a GP-relative slot,
// +4*n in declaration order.
func planGlobals(prog *ast.Program) {
	var offset int32
	for _, d := range prog.Globals {
		d.Variable.EmitLoc = &ir.Location{Segment: ir.GP, Offset: offset, Name: d.Name.Name}
		offset += wordSize
	}
}

// planFormals assigns each parameter an FP-relative slot: +4, +8, ...
// A method's formals are shifted one slot to make room for the
// implicit `this` at +4 (ir.ThisPtr).
func planFormals(fn *ast.FunctionDecl, isMethod bool) {
	offset := int32(4)
	if isMethod {
		offset = int32(8)
	}
	for _, formal := range fn.Formals {
		formal.Variable.EmitLoc = &ir.Location{Segment: ir.FP, Offset: offset, Name: formal.Name.Name}
		offset += wordSize
	}
}

// planClass computes a class's flattened field/method lists (following
// the superclass chain, collapsing method overrides in place at the
// position the superclass first declared them), the resulting instance
// size, and vtable offsets.
func planClass(class *ast.ClassDecl) {
	if class.FlattenedVars != nil || class.FlattenedMethods != nil {
		return // already planned via an earlier subclass's recursive walk
	}
	if super := superOf(class); super != nil {
		planClass(super)
		class.FlattenedVars = append([]*ast.Decl{}, super.FlattenedVars...)
		class.FlattenedMethods = append([]*ast.Decl{}, super.FlattenedMethods...)
	}
	for _, m := range class.Members {
		switch m.Kind {
		case ast.DeclVariable:
			class.FlattenedVars = append(class.FlattenedVars, m)
		case ast.DeclFunction:
			if idx := indexOfMethod(class.FlattenedMethods, m.Name.Name); idx >= 0 {
				class.FlattenedMethods[idx] = m // override collapses in place
			} else {
				class.FlattenedMethods = append(class.FlattenedMethods, m)
			}
		}
	}

	// Instance layout: word 0 is the vtable pointer, fields follow in
	// flattened order.
	var fieldOffset int32 = wordSize
	for _, v := range class.FlattenedVars {
		off := fieldOffset
		v.Variable.EmitLoc = &ir.Location{Segment: ir.FP, Offset: off, Name: v.Name.Name, Base: ir.ThisPtr}
		v.Variable.ClassMemberOffset = &off
		fieldOffset += wordSize
	}
	class.InstanceSize = fieldOffset

	for i, m := range class.FlattenedMethods {
		off := int32(i) * wordSize
		m.Function.VTableOffset = &off
	}
	class.VTableSize = int32(len(class.FlattenedMethods)) * wordSize
}

func indexOfMethod(methods []*ast.Decl, name string) int {
	for i, m := range methods {
		if m.Name.Name == name {
			return i
		}
	}
	return -1
}

func superOf(c *ast.ClassDecl) *ast.ClassDecl {
	if c.Extends == nil || c.Extends.Decl == nil {
		return nil
	}
	return c.Extends.Decl.Class
}
