package sema

import (
	"tacc/internal/ast"
	"tacc/internal/scope"
)

// checker carries the state threaded through statement/expression type
// checking: the scope stack, the diagnostics sink, and the enclosing
// loop/switch stack break statements resolve against.
type checker struct {
	prog    *ast.Program
	diags   *Diagnostics
	stack   *scope.Stack
	loops   []*ast.Stmt
	fn      *ast.FunctionDecl
}

// typeCheck walks every free function and class method body, in the
// style of the teacher's typeChecker/typeCheckerSingleClassAst pass,
// generalized from the teacher's single-class-scope model to full
// lexical block scoping via internal/scope.
func typeCheck(prog *ast.Program, diags *Diagnostics) {
	stack := scope.NewStack(prog)
	for _, d := range prog.Globals {
		stack.Declare(d.Name.Name, d)
	}
	for _, d := range prog.Functions {
		stack.Declare(d.Name.Name, d)
	}

	c := &checker{prog: prog, diags: diags, stack: stack}
	for _, d := range prog.Functions {
		c.checkFunction(d.Function, nil)
	}
	for _, d := range prog.Classes {
		for _, m := range d.Class.Members {
			if m.Kind == ast.DeclFunction {
				c.checkFunction(m.Function, d.Class)
			}
		}
	}
}

func (c *checker) checkFunction(fn *ast.FunctionDecl, owner *ast.ClassDecl) {
	prevFn := c.fn
	c.fn = fn
	c.stack.Enter()
	c.stack.EnterClass(owner)
	for _, formal := range fn.Formals {
		c.stack.Declare(formal.Name.Name, formal)
	}
	for _, s := range fn.Body {
		c.checkStmt(s)
	}
	c.stack.ExitClass()
	c.stack.Exit()
	c.fn = prevFn
}

func (c *checker) checkStmt(s *ast.Stmt) {
	switch s.Kind {
	case ast.StmtExpr:
		c.checkExpr(s.Expr)
	case ast.StmtVarDecl:
		bindType(c.prog, s.Decl.Variable.Type, s.Decl.Name.Span, c.diags)
		if !c.stack.Declare(s.Decl.Name.Name, s.Decl) {
			c.diags.Report(s.Decl.Name.Span, "%s is already declared in this scope", s.Decl.Name.Name)
		}
		if s.Init != nil {
			initT := c.checkExpr(s.Init)
			declT := s.Decl.Variable.Type
			if !ast.IsCompatible(declT, initT) {
				c.diags.Report(s.Init.Span, "cannot initialize %s of type %s with a value of type %s", s.Decl.Name.Name, declT, initT)
			}
		}
	case ast.StmtIf:
		c.checkCondition(s.Cond)
		c.checkBlock(s.Then)
		c.checkBlock(s.Else)
	case ast.StmtWhile:
		c.checkCondition(s.Cond)
		c.loops = append(c.loops, s)
		c.checkBlock(s.Then)
		c.loops = c.loops[:len(c.loops)-1]
	case ast.StmtFor:
		c.stack.Enter()
		if s.ForInit != nil {
			c.checkStmt(s.ForInit)
		}
		if s.Cond != nil {
			c.checkCondition(s.Cond)
		}
		if s.ForPost != nil {
			c.checkExpr(s.ForPost)
		}
		c.loops = append(c.loops, s)
		for _, st := range s.Then {
			c.checkStmt(st)
		}
		c.loops = c.loops[:len(c.loops)-1]
		c.stack.Exit()
	case ast.StmtBreak:
		if len(c.loops) == 0 {
			c.diags.Report(s.Span, "break statement not inside a loop or switch")
		} else {
			s.Target = c.loops[len(c.loops)-1]
		}
	case ast.StmtReturn:
		c.checkReturn(s)
	case ast.StmtPrint:
		for _, a := range s.Args {
			t := c.checkExpr(a)
			if t != nil && t.Kind != ast.KindInt && t.Kind != ast.KindString && t.Kind != ast.KindBool && t.Kind != ast.KindError {
				c.diags.Report(a.Span, "Print arguments must be int, string, or bool, found %s", t)
			}
		}
	case ast.StmtBlock:
		c.checkBlock(s.Body)
	case ast.StmtSwitch:
		c.checkSwitch(s)
	}
}

func (c *checker) checkBlock(stmts []*ast.Stmt) {
	c.stack.Enter()
	for _, s := range stmts {
		c.checkStmt(s)
	}
	c.stack.Exit()
}

func (c *checker) checkCondition(cond *ast.Expr) {
	t := c.checkExpr(cond)
	if t != nil && t.Kind != ast.KindBool && t.Kind != ast.KindError {
		c.diags.Report(cond.Span, "condition must be bool, found %s", t)
	}
}

func (c *checker) checkReturn(s *ast.Stmt) {
	want := c.fn.ReturnType
	if s.Value == nil {
		if want.Kind != ast.KindVoid {
			c.diags.Report(s.Span, "missing return value, function %s returns %s", c.fn.Name.Name, want)
		}
		return
	}
	got := c.checkExpr(s.Value)
	if !ast.IsCompatible(want, got) {
		c.diags.Report(s.Value.Span, "cannot return a value of type %s from function %s returning %s", got, c.fn.Name.Name, want)
	}
}

// checkSwitch enforces spec.md §4.C's switch rules that depend on
// evaluated case labels — pairwise distinctness and a `default` arm,
// if present, ordered last — which is why they belong to the type
// pass rather than bind or inherit: the labels need to be fully
// checked expressions before they can be compared.
func (c *checker) checkSwitch(s *ast.Stmt) {
	onT := c.checkExpr(s.SwitchOn)
	seenDefault := false
	seenLabels := map[interface{}]bool{}
	c.loops = append(c.loops, s)
	for i, cs := range s.Cases {
		if cs.Label == nil {
			seenDefault = true
			if i != len(s.Cases)-1 {
				c.diags.Report(cs.Span, "default case must be the last case in a switch")
			}
		} else {
			if seenDefault {
				c.diags.Report(cs.Span, "case found after default")
			}
			labelT := c.checkExpr(cs.Label)
			if labelT != nil && onT != nil && !ast.IsCompatible(onT, labelT) {
				c.diags.Report(cs.Label.Span, "case label type %s does not match switch expression type %s", labelT, onT)
			}
			key, ok := constKey(cs.Label)
			if ok {
				if seenLabels[key] {
					c.diags.Report(cs.Label.Span, "duplicate case label")
				}
				seenLabels[key] = true
			}
		}
		c.checkBlock(cs.Body)
	}
	c.loops = c.loops[:len(c.loops)-1]
}

// constKey returns a comparable representation of a literal case
// label, used only for duplicate detection; non-literal labels (which
// the grammar does not currently produce, since case labels are always
// literals) report ok=false and skip the distinctness check.
func constKey(e *ast.Expr) (interface{}, bool) {
	switch e.Kind {
	case ast.ExprIntLit:
		return e.IntValue, true
	case ast.ExprStringLit:
		return e.StringValue, true
	case ast.ExprBoolLit:
		return e.BoolValue, true
	default:
		return nil, false
	}
}
