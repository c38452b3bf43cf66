// Package parser turns a token.Token stream into an ast.Program by
// recursive descent, one parseXxx method per grammar production, in
// the style of the teacher's parser.go (ParseClassDeclaration,
// parseFuncBody, parseStatement, ...).
package parser

import (
	"fmt"

	"tacc/internal/ast"
	"tacc/internal/loc"
	"tacc/internal/token"
)

// Parser holds the token stream and current position. It stops and
// returns the first syntax error encountered, mirroring the teacher's
// fail-fast parser rather than sema's diagnostics-accumulator model.
type Parser struct {
	toks []token.Token
	pos  int
	file string
}

// New returns a Parser over an already-lexed token stream.
func New(file string, toks []token.Token) *Parser {
	return &Parser{toks: toks, file: file}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) at(tp token.Type) bool { return p.cur().Type == tp }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tp token.Type) (token.Token, error) {
	if !p.at(tp) {
		return token.Token{}, p.makeError(fmt.Sprintf("expected %s, found %s %q", tp, p.cur().Type, p.cur().Text))
	}
	return p.advance(), nil
}

func (p *Parser) spanFrom(start loc.Pos) loc.Span {
	return loc.Span{First: start, Last: p.toks[p.pos-1].Span.Last}
}

func (p *Parser) makeError(msg string) error {
	return fmt.Errorf("%s:%s: syntax error: %s", p.file, p.cur().Span.First, msg)
}

// ParseProgram parses an entire compilation unit: a sequence of
// top-level variable, function, class, and interface declarations.
func ParseProgram(file string, toks []token.Token) (*ast.Program, error) {
	p := New(file, toks)
	prog := ast.NewProgram()
	for !p.at(token.EOF) {
		switch {
		case p.at(token.KwClass):
			decl, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			prog.Classes = append(prog.Classes, decl)
		case p.at(token.KwInterface):
			decl, err := p.parseInterface()
			if err != nil {
				return nil, err
			}
			prog.Interfaces = append(prog.Interfaces, decl)
		default:
			decl, isFunc, err := p.parseGlobalVarOrFunc()
			if err != nil {
				return nil, err
			}
			if isFunc {
				prog.Functions = append(prog.Functions, decl)
			} else {
				prog.Globals = append(prog.Globals, decl)
			}
		}
	}
	return prog, nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: tok.Text, Span: tok.Span}, nil
}

// parseType parses a type name: a basic keyword, a class/interface
// name, or either followed by one or more `[]` array suffixes.
func (p *Parser) parseType() (*ast.Type, error) {
	var base *ast.Type
	switch {
	case p.at(token.KwInt):
		p.advance()
		base = ast.Int
	case p.at(token.KwDouble):
		p.advance()
		base = ast.Double
	case p.at(token.KwBool):
		p.advance()
		base = ast.Bool
	case p.at(token.KwString):
		p.advance()
		base = ast.Str
	case p.at(token.KwVoid):
		p.advance()
		base = ast.Void
	case p.at(token.Ident):
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		base = ast.NewNamed(id.Name)
	default:
		return nil, p.makeError("expected a type")
	}
	for p.at(token.LBracket) {
		p.advance()
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		base = ast.NewArray(base)
	}
	return base, nil
}

// parseGlobalVarOrFunc parses `type name ;` (a global) or
// `type name ( formals ) { body }` (a free function), disambiguating
// by whether a `(` follows the name.
func (p *Parser) parseGlobalVarOrFunc() (*ast.Decl, bool, error) {
	start := p.cur().Span.First
	typ, err := p.parseType()
	if err != nil {
		return nil, false, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, false, err
	}
	if p.at(token.LParen) {
		fn, err := p.parseFunctionRest(name, typ, nil)
		if err != nil {
			return nil, false, err
		}
		fn.Name.Span = loc.Join(loc.Span{First: start}, fn.Name.Span)
		return fn, true, nil
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, false, err
	}
	return ast.NewVariable(name, typ), false, nil
}

// parseFunctionRest parses `( formals ) { body }` given the return
// type and name already consumed; ownerClass is set on the resulting
// FunctionDecl when parsing a class method.
func (p *Parser) parseFunctionRest(name *ast.Identifier, ret *ast.Type, owner *ast.ClassDecl) (*ast.Decl, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var formals []*ast.Decl
	for !p.at(token.RParen) {
		if len(formals) > 0 {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fname, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		formals = append(formals, ast.NewVariable(fname, ftype))
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStmts()
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunction(name, ret, formals, body)
	decl.Function.OwnerClass = owner
	return decl, nil
}

func (p *Parser) parseBlockStmts() ([]*ast.Stmt, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var stmts []*ast.Stmt
	for !p.at(token.RBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseClass parses `class Name [extends Base] [implements I, ...] { members }`.
func (p *Parser) parseClass() (*ast.Decl, error) {
	start := p.cur().Span.First
	p.advance() // 'class'
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	var extends *ast.Type
	if p.at(token.KwExtends) {
		p.advance()
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		extends = ast.NewNamed(id.Name)
	}
	var implements []*ast.Type
	if p.at(token.KwImplements) {
		p.advance()
		for {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			implements = append(implements, ast.NewNamed(id.Name))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	decl := ast.NewClass(name, extends, implements, nil)
	for !p.at(token.RBrace) {
		member, err := p.parseClassMember(decl.Class)
		if err != nil {
			return nil, err
		}
		decl.Class.Members = append(decl.Class.Members, member)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	name.Span = loc.Join(loc.Span{First: start}, name.Span)
	return decl, nil
}

func (p *Parser) parseClassMember(owner *ast.ClassDecl) (*ast.Decl, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if p.at(token.LParen) {
		return p.parseFunctionRest(name, typ, owner)
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return ast.NewVariable(name, typ), nil
}

// parseInterface parses `interface Name { sig ; sig ; ... }`.
func (p *Parser) parseInterface() (*ast.Decl, error) {
	p.advance() // 'interface'
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var members []*ast.Decl
	for !p.at(token.RBrace) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		mname, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		var formals []*ast.Decl
		for !p.at(token.RParen) {
			if len(formals) > 0 {
				if _, err := p.expect(token.Comma); err != nil {
					return nil, err
				}
			}
			ftype, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fname, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			formals = append(formals, ast.NewVariable(fname, ftype))
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return nil, err
		}
		members = append(members, ast.NewFunction(mname, typ, formals, nil))
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return ast.NewInterface(name, members), nil
}
