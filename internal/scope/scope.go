// Package scope implements the lexical scope stack used by
// internal/sema's binder and type-checker passes: a chain of maps from
// name to *ast.Decl, entered per block/function/class and exited on
// leaving it, plus the inheritance- and interface-aware lookups a
// class-based language needs on top of plain lexical scoping. The
// chained-map shape follows the teacher's SymbolTableMap/
// ClassSymbolTable, generalized from the teacher's single flat
// class-and-function-scoped table to arbitrary block nesting, and
// enriched with the parent-link walk pattern of
// AminIdr-COOL-compiler's SymbolTable.
package scope

import "tacc/internal/ast"

// Scope is one lexical level: a name-to-declaration map plus a link to
// its enclosing scope.
type Scope struct {
	parent *Scope
	names  map[string]*ast.Decl
}

// Stack is the scope stack in effect while walking a function body or
// class member list. The zero value is not usable; use NewStack.
type Stack struct {
	top          *Scope
	currentClass *ast.ClassDecl
	program      *ast.Program
}

// NewStack returns a scope stack seeded with a single global scope.
func NewStack(program *ast.Program) *Stack {
	return &Stack{top: &Scope{names: map[string]*ast.Decl{}}, program: program}
}

// Enter pushes a fresh, empty scope.
func (s *Stack) Enter() {
	s.top = &Scope{parent: s.top, names: map[string]*ast.Decl{}}
}

// Exit pops the innermost scope. Calling Exit on the outermost (global)
// scope is a programming error in the caller and panics, mirroring the
// teacher's ResetSymbolTable-style invariant that scope push/pop always
// balance.
func (s *Stack) Exit() {
	if s.top.parent == nil {
		panic("scope: Exit called with no enclosing scope")
	}
	s.top = s.top.parent
}

// Declare binds name in the innermost scope. It reports false if name
// is already bound in that same scope (a redeclaration error, per
// spec.md §4.C); shadowing an outer scope's binding is allowed and
// returns true.
func (s *Stack) Declare(name string, decl *ast.Decl) bool {
	if _, exists := s.top.names[name]; exists {
		return false
	}
	s.top.names[name] = decl
	return true
}

// Lookup searches the scope chain from innermost to outermost and
// returns the first binding found, or nil.
func (s *Stack) Lookup(name string) *ast.Decl {
	for sc := s.top; sc != nil; sc = sc.parent {
		if d, ok := sc.names[name]; ok {
			return d
		}
	}
	return nil
}

// LookupParent searches only enclosing scopes, skipping the innermost
// one — used to detect whether a new declaration would merely shadow
// (allowed) versus collide (rejected) at the very same level; callers
// use Declare for the latter and LookupParent when they need to warn
// about shadowing without rejecting it.
func (s *Stack) LookupParent(name string) *ast.Decl {
	if s.top.parent == nil {
		return nil
	}
	for sc := s.top.parent; sc != nil; sc = sc.parent {
		if d, ok := sc.names[name]; ok {
			return d
		}
	}
	return nil
}

// EnterClass records the class whose members are in scope, so
// LookupField and LookupThis can resolve implicit `this.field`
// accesses inside method bodies.
func (s *Stack) EnterClass(class *ast.ClassDecl) { s.currentClass = class }

// ExitClass clears the current class.
func (s *Stack) ExitClass() { s.currentClass = nil }

// CurrentClass returns the class whose method body is presently being
// walked, or nil at top level.
func (s *Stack) CurrentClass() *ast.ClassDecl { return s.currentClass }

// LookupField walks the current class's superclass chain looking for a
// field or method named name, honoring override shadowing (a subclass
// member with the same name replaces the superclass one it is not
// otherwise found via lexical Lookup).
func (s *Stack) LookupField(name string) *ast.Decl {
	return LookupField(s.currentClass, name)
}

// LookupField is the standalone form used by callers, such as the
// checker resolving `base.field` on an explicit receiver, that already
// hold the class to search rather than relying on the current stack
// state.
func LookupField(class *ast.ClassDecl, name string) *ast.Decl {
	for c := class; c != nil; c = superOf(c) {
		for _, m := range c.Members {
			if m.Name.Name == name {
				return m
			}
		}
	}
	return nil
}

// LookupInterface looks up a method signature by name on an interface.
func LookupInterface(iface *ast.InterfaceDecl, name string) *ast.Decl {
	if iface == nil {
		return nil
	}
	for _, m := range iface.Members {
		if m.Name.Name == name {
			return m
		}
	}
	return nil
}

// LookupThis returns the field or method a bare identifier resolves to
// via the implicit `this` receiver when it isn't found lexically —
// i.e. the same fallback resolveIdentifier applies before deciding an
// unqualified name is undefined.
func (s *Stack) LookupThis(name string) *ast.Decl {
	if s.currentClass == nil {
		return nil
	}
	return LookupField(s.currentClass, name)
}

func superOf(c *ast.ClassDecl) *ast.ClassDecl {
	if c.Extends == nil || c.Extends.Decl == nil {
		return nil
	}
	return c.Extends.Decl.Class
}

// Program returns the top-level program the stack was built over, so
// checker code can resolve global class/interface/function names
// without threading a second parameter everywhere.
func (s *Stack) Program() *ast.Program { return s.program }
