package parser

import (
	"strconv"

	"tacc/internal/ast"
	"tacc/internal/loc"
	"tacc/internal/token"
)

// precedence tables, lowest to highest: || , && , equality , relational ,
// additive , multiplicative , unary , postfix/primary.
var binaryPrec = map[token.Type]int{
	token.Or:      1,
	token.And:     2,
	token.Eq:      3,
	token.Ne:      3,
	token.Lt:      4,
	token.Le:      4,
	token.Gt:      4,
	token.Ge:      4,
	token.Plus:    5,
	token.Minus:   5,
	token.Star:    6,
	token.Slash:   6,
	token.Percent: 6,
}

var opText = map[token.Type]string{
	token.Or: "||", token.And: "&&",
	token.Eq: "==", token.Ne: "!=",
	token.Lt: "<", token.Le: "<=", token.Gt: ">", token.Ge: ">=",
	token.Plus: "+", token.Minus: "-",
	token.Star: "*", token.Slash: "/", token.Percent: "%",
}

// parseExpr parses an assignment expression: `lvalue = expr` is
// right-associative and binds looser than every operator in
// binaryPrec, so it is handled as its own top level above parseBinary.
func (p *Parser) parseExpr() (*ast.Expr, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.at(token.Assign) {
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprAssign, Left: left, Right: value, Span: loc.Join(left.Span, value.Span)}, nil
	}
	return left, nil
}

func (p *Parser) parseBinary(minPrec int) (*ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrec[p.cur().Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Expr{Kind: ast.ExprBinary, Op: opText[opTok.Type], Left: left, Right: right,
			Span: loc.Join(left.Span, right.Span)}
	}
}

func (p *Parser) parseUnary() (*ast.Expr, error) {
	switch p.cur().Type {
	case token.Minus:
		start := p.cur().Span
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprUnary, Op: "-", Operand: operand, Span: loc.Join(start, operand.Span)}, nil
	case token.Not:
		start := p.cur().Span
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprUnary, Op: "!", Operand: operand, Span: loc.Join(start, operand.Span)}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (*ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.Dot:
			p.advance()
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if p.at(token.LParen) {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				e = &ast.Expr{Kind: ast.ExprCall, Base: e, Name: name.Name, Args: args, IsMethodCall: true,
					Span: loc.Join(e.Span, name.Span)}
			} else {
				e = &ast.Expr{Kind: ast.ExprField, Base: e, Name: name.Name, Span: loc.Join(e.Span, name.Span)}
			}
		case token.LBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBracket)
			if err != nil {
				return nil, err
			}
			e = &ast.Expr{Kind: ast.ExprIndex, Base: e, Index: idx, Span: loc.Join(e.Span, end.Span)}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseArgList() ([]*ast.Expr, error) {
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
	return args, nil
}

func (p *Parser) parsePrimary() (*ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.IntLit:
		p.advance()
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.makeError("malformed integer literal " + tok.Text)
		}
		return &ast.Expr{Kind: ast.ExprIntLit, IntValue: n, Span: tok.Span}, nil
	case token.DoubleLit:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.makeError("malformed double literal " + tok.Text)
		}
		return &ast.Expr{Kind: ast.ExprDoubleLit, DoubleValue: f, Span: tok.Span}, nil
	case token.KwTrue:
		p.advance()
		return &ast.Expr{Kind: ast.ExprBoolLit, BoolValue: true, Span: tok.Span}, nil
	case token.KwFalse:
		p.advance()
		return &ast.Expr{Kind: ast.ExprBoolLit, BoolValue: false, Span: tok.Span}, nil
	case token.StringLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprStringLit, StringValue: tok.Text, Span: tok.Span}, nil
	case token.KwNull:
		p.advance()
		return &ast.Expr{Kind: ast.ExprNullLit, Span: tok.Span}, nil
	case token.KwThis:
		p.advance()
		return &ast.Expr{Kind: ast.ExprThis, Span: tok.Span}, nil
	case token.KwReadInteger:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		end, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprReadInt, Name: "ReadInteger", Span: loc.Join(tok.Span, end.Span)}, nil
	case token.KwReadLine:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		end, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}
		return &ast.Expr{Kind: ast.ExprCall, Name: "ReadLine", Span: loc.Join(tok.Span, end.Span)}, nil
	case token.KwNew:
		return p.parseNew()
	case token.KwNewArray:
		return p.parseNewArray()
	case token.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case token.Ident:
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.at(token.LParen) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Expr{Kind: ast.ExprCall, Name: id.Name, Args: args, Span: id.Span}, nil
		}
		return &ast.Expr{Kind: ast.ExprIdent, Name: id.Name, Span: id.Span}, nil
	default:
		return nil, p.makeError("unexpected token in expression: " + tok.Type.String())
	}
}

func (p *Parser) parseNew() (*ast.Expr, error) {
	start := p.cur().Span
	p.advance() // 'New'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Expr{Kind: ast.ExprNew, ClassRef: ast.NewNamed(id.Name), Span: loc.Join(start, end.Span)}, nil
}

func (p *Parser) parseNewArray() (*ast.Expr, error) {
	start := p.cur().Span
	p.advance() // 'NewArray'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	size, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Expr{Kind: ast.ExprNewArr, Size: size, ElemType: elem, Span: loc.Join(start, end.Span)}, nil
}
