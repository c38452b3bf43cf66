package sema

import "tacc/internal/ast"

// inherit validates the extends/implements graph after bind has
// resolved every name: no cyclic extends chain, and every overriding
// method's signature is compatible with the method it overrides.
// Interface conformance (every interface method actually implemented)
// is checked here too, since it needs the fully resolved class
// hierarchy bind produced.
func inherit(prog *ast.Program, diags *Diagnostics) {
	for _, d := range prog.Classes {
		checkNoExtendsCycle(d.Class, diags)
	}
	for _, d := range prog.Classes {
		checkOverrides(d.Class, diags)
		checkVariableShadow(d.Class, diags)
		checkVariableInterfaceCollision(d.Class, diags)
		checkInterfaceConformance(prog, d.Class, diags)
	}
}

// checkVariableShadow reports a class field that reuses the name of
// any member — variable or method — already declared on a superclass:
// a subclass never overrides an inherited variable, per
// original_source/src/ast_decl.cc's CheckInherit ("subclass cannot
// override inherited variables").
func checkVariableShadow(class *ast.ClassDecl, diags *Diagnostics) {
	if class.Extends == nil || class.Extends.Decl == nil || class.Extends.Decl.Class == nil {
		return
	}
	super := class.Extends.Decl.Class
	for _, m := range class.Members {
		if m.Kind != ast.DeclVariable {
			continue
		}
		if superMember := findMember(super, m.Name.Name); superMember != nil {
			diags.Report(m.Name.Span, "field %s.%s shadows a member already declared on %s", class.Name.Name, m.Name.Name, super.Name.Name)
		}
	}
}

// checkVariableInterfaceCollision reports a class field whose name
// matches a method required by an interface the class implements,
// mirroring CheckInherit's LookupInterface check on variable decls
// ("variable names conflict with interface method names").
func checkVariableInterfaceCollision(class *ast.ClassDecl, diags *Diagnostics) {
	for _, m := range class.Members {
		if m.Kind != ast.DeclVariable {
			continue
		}
		for _, ifaceType := range class.Implements {
			if ifaceType.Decl == nil || ifaceType.Decl.Interface == nil {
				continue
			}
			if ifaceLookup(ifaceType.Decl.Interface, m.Name.Name) != nil {
				diags.Report(m.Name.Span, "field %s.%s conflicts with a method required by interface %s", class.Name.Name, m.Name.Name, ifaceType.Decl.Interface.Name.Name)
			}
		}
	}
}

func checkNoExtendsCycle(class *ast.ClassDecl, diags *Diagnostics) {
	seen := map[string]bool{class.Name.Name: true}
	for c := class; c.Extends != nil && c.Extends.Decl != nil && c.Extends.Decl.Class != nil; c = c.Extends.Decl.Class {
		next := c.Extends.Decl.Class
		if seen[next.Name.Name] {
			diags.Report(class.Name.Span, "class %s has a cyclic extends chain through %s", class.Name.Name, next.Name.Name)
			return
		}
		seen[next.Name.Name] = true
	}
}

// checkOverrides reports a class method that collides with a
// superclass member of the same name: an inherited variable can never
// be turned into a method, and an inherited method's signature must
// match exactly (spec.md §4.D: an override must agree on parameter
// types and return type).
func checkOverrides(class *ast.ClassDecl, diags *Diagnostics) {
	if class.Extends == nil || class.Extends.Decl == nil || class.Extends.Decl.Class == nil {
		return
	}
	super := class.Extends.Decl.Class
	for _, m := range class.Members {
		if m.Kind != ast.DeclFunction {
			continue
		}
		superMember := findMember(super, m.Name.Name)
		if superMember == nil {
			continue
		}
		if superMember.Kind != ast.DeclFunction {
			diags.Report(m.Name.Span, "method %s.%s collides with a field already declared on %s", class.Name.Name, m.Name.Name, super.Name.Name)
			continue
		}
		if !signaturesMatch(m.Function, superMember.Function) {
			diags.Report(m.Name.Span, "method %s.%s does not match the signature of %s.%s", class.Name.Name, m.Name.Name, super.Name.Name, m.Name.Name)
		}
	}
}

func findMember(class *ast.ClassDecl, name string) *ast.Decl {
	for c := class; c != nil; {
		for _, m := range c.Members {
			if m.Name.Name == name {
				return m
			}
		}
		if c.Extends == nil || c.Extends.Decl == nil {
			return nil
		}
		c = c.Extends.Decl.Class
	}
	return nil
}

func signaturesMatch(a, b *ast.FunctionDecl) bool {
	if !ast.Equivalent(a.ReturnType, b.ReturnType) {
		return false
	}
	if len(a.Formals) != len(b.Formals) {
		return false
	}
	for i := range a.Formals {
		if !ast.Equivalent(a.Formals[i].Variable.Type, b.Formals[i].Variable.Type) {
			return false
		}
	}
	return true
}

// checkInterfaceConformance reports a class that claims to implement
// an interface but is missing one of its methods (or provides an
// incompatible signature for it).
func checkInterfaceConformance(prog *ast.Program, class *ast.ClassDecl, diags *Diagnostics) {
	for _, ifaceType := range class.Implements {
		if ifaceType.Decl == nil || ifaceType.Decl.Interface == nil {
			continue
		}
		iface := ifaceType.Decl.Interface
		for _, sig := range iface.Members {
			impl := findMember(class, sig.Name.Name)
			if impl == nil || impl.Kind != ast.DeclFunction {
				diags.Report(class.Name.Span, "class %s does not implement %s.%s", class.Name.Name, iface.Name.Name, sig.Name.Name)
				continue
			}
			if !signaturesMatch(impl.Function, sig.Function) {
				diags.Report(impl.Name.Span, "class %s's %s does not match interface %s's signature", class.Name.Name, sig.Name.Name, iface.Name.Name)
			}
		}
	}
}
