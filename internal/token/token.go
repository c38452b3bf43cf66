// Package token defines the lexical tokens produced by internal/lexer
// and consumed by internal/parser, in the style of the teacher's
// tokenizer.go's TokenType/Token shapes.
package token

import "tacc/internal/loc"

// Type enumerates every lexeme class the source grammar needs.
type Type int

const (
	EOF Type = iota
	Ident
	IntLit
	DoubleLit
	StringLit

	// Keywords
	KwVoid
	KwInt
	KwDouble
	KwBool
	KwString
	KwClass
	KwInterface
	KwExtends
	KwImplements
	KwWhile
	KwFor
	KwIf
	KwElse
	KwReturn
	KwBreak
	KwNew
	KwNewArray
	KwPrint
	KwReadInteger
	KwReadLine
	KwThis
	KwTrue
	KwFalse
	KwNull
	KwSwitch
	KwCase
	KwDefault

	// Punctuation
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Semi
	Comma
	Dot
	Colon

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Not
)

var keywords = map[string]Type{
	"void":        KwVoid,
	"int":         KwInt,
	"double":      KwDouble,
	"bool":        KwBool,
	"string":      KwString,
	"class":       KwClass,
	"interface":   KwInterface,
	"extends":     KwExtends,
	"implements":  KwImplements,
	"while":       KwWhile,
	"for":         KwFor,
	"if":          KwIf,
	"else":        KwElse,
	"return":      KwReturn,
	"break":       KwBreak,
	"New":         KwNew,
	"NewArray":    KwNewArray,
	"Print":       KwPrint,
	"ReadInteger": KwReadInteger,
	"ReadLine":    KwReadLine,
	"this":        KwThis,
	"true":        KwTrue,
	"false":       KwFalse,
	"null":        KwNull,
	"switch":      KwSwitch,
	"case":        KwCase,
	"default":     KwDefault,
}

// Lookup returns the keyword Type for name, or (Ident, false) if name
// is an ordinary identifier.
func Lookup(name string) (Type, bool) {
	tp, ok := keywords[name]
	if !ok {
		return Ident, false
	}
	return tp, ok
}

func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLit:
		return "int literal"
	case DoubleLit:
		return "double literal"
	case StringLit:
		return "string literal"
	default:
		for name, tp := range keywords {
			if tp == t {
				return name
			}
		}
		return "symbol"
	}
}

// Token is one lexed unit: its class, its exact source text, and the
// span it occupies.
type Token struct {
	Type Type
	Text string
	Span loc.Span
}
