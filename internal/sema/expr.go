package sema

import "tacc/internal/ast"

// checkExpr type-checks e, records its Type, and reports any mismatch
// found within it. It always returns a non-nil *ast.Type — ast.ErrT on
// any failure — so callers never need a nil check before comparing
// against the result (spec.md §4.D: "error types are sinks").
func (c *checker) checkExpr(e *ast.Expr) *ast.Type {
	if e == nil {
		return ast.ErrT
	}
	t := c.checkExpr0(e)
	if t == nil {
		t = ast.ErrT
	}
	e.Type = t
	if e.Kind == ast.ExprDoubleLit {
		c.diags.Report(e.Span, "unsupported feature: double values cannot be code-generated")
	}
	return t
}

func (c *checker) checkExpr0(e *ast.Expr) *ast.Type {
	switch e.Kind {
	case ast.ExprIntLit:
		return ast.Int
	case ast.ExprDoubleLit:
		return ast.Double
	case ast.ExprBoolLit:
		return ast.Bool
	case ast.ExprStringLit:
		return ast.Str
	case ast.ExprNullLit:
		return ast.Null
	case ast.ExprReadInt:
		return ast.Int
	case ast.ExprThis:
		if c.stack.CurrentClass() == nil {
			c.diags.Report(e.Span, "'this' used outside of a method body")
			return ast.ErrT
		}
		named := ast.NewNamed(c.stack.CurrentClass().Name.Name)
		named.Decl = &ast.Decl{Kind: ast.DeclClass, Name: c.stack.CurrentClass().Name, Class: c.stack.CurrentClass()}
		named.Validity = ast.Valid
		return named
	case ast.ExprIdent:
		return c.checkIdent(e)
	case ast.ExprField:
		return c.checkField(e)
	case ast.ExprIndex:
		return c.checkIndex(e)
	case ast.ExprAssign:
		return c.checkAssign(e)
	case ast.ExprCall:
		return c.checkCall(e)
	case ast.ExprNew:
		return c.checkNew(e)
	case ast.ExprNewArr:
		return c.checkNewArr(e)
	case ast.ExprUnary:
		return c.checkUnary(e)
	case ast.ExprBinary:
		return c.checkBinary(e)
	default:
		c.diags.Internal(e.Span, "unhandled expression kind %d", e.Kind)
		return ast.ErrT
	}
}

func (c *checker) checkIdent(e *ast.Expr) *ast.Type {
	decl := c.stack.Lookup(e.Name)
	if decl == nil {
		decl = c.stack.LookupThis(e.Name)
	}
	if decl == nil || decl.Kind != ast.DeclVariable {
		c.diags.Report(e.Span, "undeclared identifier %s", e.Name)
		return ast.ErrT
	}
	decl.Name.Decl = decl
	e.Ident = decl.Name
	return decl.Variable.Type
}

// checkField implements spec.md §4.D's `base.field` access rule: the
// field must exist as a variable on base's class *and* on the
// enclosing method's own class, and the two classes must be in a
// subtype relation either way — a variable member is visible only to
// the class that declares it and its subclasses, per
// original_source/src/ast_expr.cc's FieldAccess::CheckType.
func (c *checker) checkField(e *ast.Expr) *ast.Type {
	baseT := c.checkExpr(e.Base)
	if baseT.Kind == ast.KindError {
		return ast.ErrT
	}
	if baseT.Kind != ast.KindNamed || baseT.Decl == nil || baseT.Decl.Class == nil {
		c.diags.Report(e.Span, "%s is not a field of a class type", e.Name)
		return ast.ErrT
	}
	field := findMember(baseT.Decl.Class, e.Name)
	if field == nil || field.Kind != ast.DeclVariable {
		c.diags.Report(e.Span, "%s has no field named %s", baseT, e.Name)
		return ast.ErrT
	}
	curClass := c.stack.CurrentClass()
	if curClass == nil {
		c.diags.Report(e.Span, "field %s is not accessible outside of a class method", e.Name)
		return ast.ErrT
	}
	curField := findMember(curClass, e.Name)
	if curField == nil || curField.Kind != ast.DeclVariable {
		c.diags.Report(e.Span, "field %s is not accessible from %s", e.Name, curClass.Name.Name)
		return ast.ErrT
	}
	curT := ast.NewNamed(curClass.Name.Name)
	curT.Decl = &ast.Decl{Kind: ast.DeclClass, Name: curClass.Name, Class: curClass}
	curT.Validity = ast.Valid
	if !ast.IsCompatible(curT, baseT) && !ast.IsCompatible(baseT, curT) {
		c.diags.Report(e.Span, "field %s of %s is not accessible from %s", e.Name, baseT, curClass.Name.Name)
		return ast.ErrT
	}
	return field.Variable.Type
}

func (c *checker) checkIndex(e *ast.Expr) *ast.Type {
	baseT := c.checkExpr(e.Base)
	idxT := c.checkExpr(e.Index)
	if idxT.Kind != ast.KindInt && idxT.Kind != ast.KindError {
		c.diags.Report(e.Index.Span, "array index must be int, found %s", idxT)
	}
	if baseT.Kind == ast.KindError {
		return ast.ErrT
	}
	if baseT.Kind != ast.KindArray {
		c.diags.Report(e.Span, "cannot index into non-array type %s", baseT)
		return ast.ErrT
	}
	return baseT.Elem
}

func (c *checker) checkAssign(e *ast.Expr) *ast.Type {
	targetT := c.checkExpr(e.Left)
	valueT := c.checkExpr(e.Right)
	if !ast.IsCompatible(targetT, valueT) {
		c.diags.Report(e.Span, "cannot assign a value of type %s to a target of type %s", valueT, targetT)
	}
	return targetT
}

func (c *checker) checkCall(e *ast.Expr) *ast.Type {
	if e.Base != nil {
		return c.checkMethodCall(e)
	}
	fn := c.prog.FindFunction(e.Name)
	if fn == nil {
		if cls := c.stack.CurrentClass(); cls != nil {
			if m := findMember(cls, e.Name); m != nil && m.Kind == ast.DeclFunction {
				e.Base = &ast.Expr{Kind: ast.ExprThis, Span: e.Span}
				e.IsMethodCall = true
				return c.checkMethodCall(e)
			}
		}
		c.diags.Report(e.Span, "call to undeclared function %s", e.Name)
		for _, a := range e.Args {
			c.checkExpr(a)
		}
		return ast.ErrT
	}
	e.ResolvedFunc = fn
	return c.checkArgs(e, fn)
}

func (c *checker) checkMethodCall(e *ast.Expr) *ast.Type {
	baseT := c.checkExpr(e.Base)
	if baseT.Kind == ast.KindError {
		for _, a := range e.Args {
			c.checkExpr(a)
		}
		return ast.ErrT
	}
	if baseT.Kind == ast.KindArray {
		if e.Name != "length" {
			c.diags.Report(e.Span, "array has no method named %s", e.Name)
			return ast.ErrT
		}
		return ast.Int
	}
	if baseT.Kind != ast.KindNamed || baseT.Decl == nil {
		c.diags.Report(e.Span, "%s is not a method of a class or interface type", e.Name)
		return ast.ErrT
	}
	var member *ast.Decl
	if baseT.Decl.Class != nil {
		member = findMember(baseT.Decl.Class, e.Name)
	} else if baseT.Decl.Interface != nil {
		member = ifaceLookup(baseT.Decl.Interface, e.Name)
	}
	if member == nil || member.Kind != ast.DeclFunction {
		c.diags.Report(e.Span, "%s has no method named %s", baseT, e.Name)
		return ast.ErrT
	}
	e.ResolvedFunc = member.Function
	return c.checkArgs(e, member.Function)
}

func ifaceLookup(iface *ast.InterfaceDecl, name string) *ast.Decl {
	for _, m := range iface.Members {
		if m.Name.Name == name {
			return m
		}
	}
	return nil
}

func (c *checker) checkArgs(e *ast.Expr, fn *ast.FunctionDecl) *ast.Type {
	if len(e.Args) != len(fn.Formals) {
		c.diags.Report(e.Span, "%s expects %d argument(s), found %d", e.Name, len(fn.Formals), len(e.Args))
	}
	for i, a := range e.Args {
		at := c.checkExpr(a)
		if i < len(fn.Formals) {
			want := fn.Formals[i].Variable.Type
			if !ast.IsCompatible(want, at) {
				c.diags.Report(a.Span, "argument %d to %s expects %s, found %s", i+1, e.Name, want, at)
			}
		}
	}
	return fn.ReturnType
}

func (c *checker) checkNew(e *ast.Expr) *ast.Type {
	class := c.prog.FindClass(e.ClassRef.Name)
	if class == nil {
		c.diags.Report(e.Span, "new used with undeclared class %s", e.ClassRef.Name)
		return ast.ErrT
	}
	named := ast.NewNamed(class.Name.Name)
	named.Decl = &ast.Decl{Kind: ast.DeclClass, Name: class.Name, Class: class}
	named.Validity = ast.Valid
	e.ClassRef = named
	return named
}

func (c *checker) checkNewArr(e *ast.Expr) *ast.Type {
	sizeT := c.checkExpr(e.Size)
	if sizeT.Kind != ast.KindInt && sizeT.Kind != ast.KindError {
		c.diags.Report(e.Size.Span, "array size must be int, found %s", sizeT)
	}
	return ast.NewArray(e.ElemType)
}

func (c *checker) checkUnary(e *ast.Expr) *ast.Type {
	t := c.checkExpr(e.Operand)
	switch e.Op {
	case "-":
		if t.Kind != ast.KindInt && t.Kind != ast.KindDouble && t.Kind != ast.KindError {
			c.diags.Report(e.Span, "unary - requires int or double, found %s", t)
			return ast.ErrT
		}
		return t
	case "!":
		if t.Kind != ast.KindBool && t.Kind != ast.KindError {
			c.diags.Report(e.Span, "unary ! requires bool, found %s", t)
			return ast.ErrT
		}
		return ast.Bool
	default:
		c.diags.Internal(e.Span, "unhandled unary operator %s", e.Op)
		return ast.ErrT
	}
}

func (c *checker) checkBinary(e *ast.Expr) *ast.Type {
	l := c.checkExpr(e.Left)
	r := c.checkExpr(e.Right)
	if l.Kind == ast.KindError || r.Kind == ast.KindError {
		return ast.ErrT
	}
	switch e.Op {
	case "+", "-", "*", "/", "%":
		if !isNumeric(l) || !isNumeric(r) || l.Kind != r.Kind {
			c.diags.Report(e.Span, "operator %s requires matching numeric operands, found %s and %s", e.Op, l, r)
			return ast.ErrT
		}
		return l
	case "<", "<=", ">", ">=":
		if !isNumeric(l) || !isNumeric(r) || l.Kind != r.Kind {
			c.diags.Report(e.Span, "operator %s requires matching numeric operands, found %s and %s", e.Op, l, r)
			return ast.ErrT
		}
		return ast.Bool
	case "==", "!=":
		if !ast.IsCompatible(l, r) && !ast.IsCompatible(r, l) {
			c.diags.Report(e.Span, "operator %s requires compatible operands, found %s and %s", e.Op, l, r)
		}
		return ast.Bool
	case "&&", "||":
		if l.Kind != ast.KindBool || r.Kind != ast.KindBool {
			c.diags.Report(e.Span, "operator %s requires bool operands, found %s and %s", e.Op, l, r)
			return ast.ErrT
		}
		return ast.Bool
	default:
		c.diags.Internal(e.Span, "unhandled binary operator %s", e.Op)
		return ast.ErrT
	}
}

func isNumeric(t *ast.Type) bool {
	return t.Kind == ast.KindInt || t.Kind == ast.KindDouble
}
