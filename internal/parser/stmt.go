package parser

import (
	"tacc/internal/ast"
	"tacc/internal/token"
)

func (p *Parser) parseStatement() (*ast.Stmt, error) {
	switch p.cur().Type {
	case token.LBrace:
		body, err := p.parseBlockStmts()
		if err != nil {
			return nil, err
		}
		return &ast.Stmt{Kind: ast.StmtBlock, Body: body}, nil
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwBreak:
		start := p.cur().Span
		p.advance()
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		return &ast.Stmt{Kind: ast.StmtBreak, Span: start}, nil
	case token.KwReturn:
		return p.parseReturn()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwInt, token.KwDouble, token.KwBool, token.KwString:
		return p.parseVarDecl()
	case token.Ident:
		if p.isVarDeclAhead() {
			return p.parseVarDecl()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// isVarDeclAhead reports whether the upcoming `Ident Ident` (or
// `Ident [] ... Ident`) shape is a local variable declaration rather
// than an expression statement. It parses a type speculatively, checks
// that an identifier follows, and then rewinds to where it started.
func (p *Parser) isVarDeclAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()
	if _, err := p.parseType(); err != nil {
		return false
	}
	return p.at(token.Ident)
}

func (p *Parser) parseVarDecl() (*ast.Stmt, error) {
	start := p.cur().Span.First
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	decl := ast.NewVariable(name, typ)
	var init *ast.Expr
	if p.at(token.Assign) {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtVarDecl, Decl: decl, Init: init, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseExprStatement() (*ast.Stmt, error) {
	start := p.cur().Span.First
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Expr: e, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseIf() (*ast.Stmt, error) {
	p.advance() // 'if'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseBraceOrSingle()
	if err != nil {
		return nil, err
	}
	var els []*ast.Stmt
	if p.at(token.KwElse) {
		p.advance()
		els, err = p.parseBraceOrSingle()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Stmt{Kind: ast.StmtIf, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseBraceOrSingle() ([]*ast.Stmt, error) {
	if p.at(token.LBrace) {
		return p.parseBlockStmts()
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []*ast.Stmt{s}, nil
}

func (p *Parser) parseWhile() (*ast.Stmt, error) {
	p.advance() // 'while'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBraceOrSingle()
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtWhile, Cond: cond, Then: body}, nil
}

func (p *Parser) parseFor() (*ast.Stmt, error) {
	p.advance() // 'for'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var init *ast.Stmt
	if !p.at(token.Semi) {
		var err error
		init, err = p.parseForInit()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}
	var cond *ast.Expr
	if !p.at(token.Semi) {
		var err error
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	var post *ast.Expr
	if !p.at(token.RParen) {
		var err error
		post, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBraceOrSingle()
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtFor, ForInit: init, Cond: cond, ForPost: post, Then: body}, nil
}

// parseForInit parses either a var-decl or an expression, followed by
// its own trailing semicolon (the var-decl case consumes it itself; the
// expression case must consume it here).
func (p *Parser) parseForInit() (*ast.Stmt, error) {
	if p.at(token.KwInt) || p.at(token.KwDouble) || p.at(token.KwBool) || p.at(token.KwString) || (p.at(token.Ident) && p.isVarDeclAhead()) {
		return p.parseVarDecl()
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Expr: e}, nil
}

func (p *Parser) parseReturn() (*ast.Stmt, error) {
	p.advance() // 'return'
	var value *ast.Expr
	if !p.at(token.Semi) {
		var err error
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtReturn, Value: value}, nil
}

func (p *Parser) parsePrint() (*ast.Stmt, error) {
	p.advance() // 'Print'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var args []*ast.Expr
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtPrint, Args: args}, nil
}

func (p *Parser) parseSwitch() (*ast.Stmt, error) {
	p.advance() // 'switch'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	on, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var cases []*ast.SwitchCase
	for p.at(token.KwCase) || p.at(token.KwDefault) {
		var label *ast.Expr
		start := p.cur().Span
		if p.at(token.KwCase) {
			p.advance()
			label, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		} else {
			p.advance()
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		var body []*ast.Stmt
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
		cases = append(cases, &ast.SwitchCase{Label: label, Body: body, Span: start})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtSwitch, SwitchOn: on, Cases: cases}, nil
}
