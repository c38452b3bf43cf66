package codegen

import "tacc/internal/ast"

func (g *generator) emitStmt(s *ast.Stmt) {
	switch s.Kind {
	case ast.StmtExpr:
		g.emitExpr(s.Expr)
	case ast.StmtVarDecl:
		loc := g.localLoc(s.Decl.Name.Name, s.Decl)
		if s.Init != nil {
			val := g.emitExpr(s.Init)
			g.emitAssign(loc, val)
		}
	case ast.StmtBlock:
		for _, sub := range s.Body {
			g.emitStmt(sub)
		}
	case ast.StmtIf:
		g.emitIf(s)
	case ast.StmtWhile:
		g.emitWhile(s)
	case ast.StmtFor:
		g.emitFor(s)
	case ast.StmtBreak:
		g.emitGoto(g.loopEnd[s.Target])
	case ast.StmtReturn:
		g.emitReturn(s)
	case ast.StmtPrint:
		g.emitPrint(s)
	case ast.StmtSwitch:
		g.emitSwitch(s)
	}
}

func (g *generator) emitIf(s *ast.Stmt) {
	cond := g.emitExpr(s.Cond)
	elseLabel := g.prog.NewLabel()
	endLabel := g.prog.NewLabel()
	g.emitIfZ(cond, elseLabel)
	for _, st := range s.Then {
		g.emitStmt(st)
	}
	g.emitGoto(endLabel)
	g.emitLabel(elseLabel)
	for _, st := range s.Else {
		g.emitStmt(st)
	}
	g.emitLabel(endLabel)
}

func (g *generator) emitWhile(s *ast.Stmt) {
	top := g.prog.NewLabel()
	end := g.prog.NewLabel()
	g.loopEnd[s] = end
	g.emitLabel(top)
	cond := g.emitExpr(s.Cond)
	g.emitIfZ(cond, end)
	for _, st := range s.Then {
		g.emitStmt(st)
	}
	g.emitGoto(top)
	g.emitLabel(end)
	delete(g.loopEnd, s)
}

func (g *generator) emitFor(s *ast.Stmt) {
	if s.ForInit != nil {
		g.emitStmt(s.ForInit)
	}
	top := g.prog.NewLabel()
	end := g.prog.NewLabel()
	g.loopEnd[s] = end
	g.emitLabel(top)
	if s.Cond != nil {
		cond := g.emitExpr(s.Cond)
		g.emitIfZ(cond, end)
	}
	for _, st := range s.Then {
		g.emitStmt(st)
	}
	if s.ForPost != nil {
		g.emitExpr(s.ForPost)
	}
	g.emitGoto(top)
	g.emitLabel(end)
	delete(g.loopEnd, s)
}

func (g *generator) emitReturn(s *ast.Stmt) {
	if s.Value == nil {
		g.emitReturnInstr(nil)
		return
	}
	v := g.emitExpr(s.Value)
	g.emitReturnInstr(v)
}

func (g *generator) emitPrint(s *ast.Stmt) {
	for _, a := range s.Args {
		v := g.emitExpr(a)
		var target string
		switch a.Type.Kind {
		case ast.KindString:
			target = "_PrintString"
		case ast.KindBool:
			target = "_PrintBool"
		default:
			target = "_PrintInt"
		}
		g.emitPushParam(v)
		g.emitLCall(nil, target)
		g.emitPopParams(4)
	}
	nl := g.tmp()
	g.emitLoadString(nl, "\n")
	g.emitPushParam(nl)
	g.emitLCall(nil, "_PrintString")
	g.emitPopParams(4)
}

// emitSwitch lowers `switch (e) { case c1: ...; case c2: ...; default: ... }`
// into a chain of equality tests against a single evaluated switch
// value, matching the straightforward if/else-chain lowering the
// grammar's lack of a jump-table requirement calls for.
func (g *generator) emitSwitch(s *ast.Stmt) {
	on := g.emitExpr(s.SwitchOn)
	end := g.prog.NewLabel()
	g.loopEnd[s] = end

	var defaultCase *ast.SwitchCase
	for _, cs := range s.Cases {
		if cs.Label == nil {
			defaultCase = cs
			continue
		}
		next := g.prog.NewLabel()
		labelVal := g.emitExpr(cs.Label)
		eq := g.tmp()
		g.emitBinary(eq, on, labelVal, "seq")
		g.emitIfZ(eq, next)
		for _, st := range cs.Body {
			g.emitStmt(st)
		}
		g.emitGoto(end)
		g.emitLabel(next)
	}
	if defaultCase != nil {
		for _, st := range defaultCase.Body {
			g.emitStmt(st)
		}
	}
	g.emitLabel(end)
	delete(g.loopEnd, s)
}
