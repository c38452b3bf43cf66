package ast

import (
	"tacc/internal/ir"
	"tacc/internal/loc"
)

// ExprKind tags an Expr's variant.
type ExprKind int

const (
	ExprIntLit ExprKind = iota
	ExprDoubleLit
	ExprBoolLit
	ExprStringLit
	ExprNullLit
	ExprIdent   // bare name: local, param, global, or implicit field
	ExprThis    // "this"
	ExprField   // base.name
	ExprIndex   // base[index]
	ExprCall    // name(args) or base.name(args)
	ExprNew     // new ClassName
	ExprNewArr  // new Type[size]
	ExprUnary   // op operand
	ExprBinary  // left op right
	ExprAssign  // target = value
	ExprReadInt // ReadInteger()
)

// Expr is a flat tagged variant over every expression shape spec.md §3
// names. As with ir.Instr, only the fields relevant to Kind are
// populated; Type and Loc are filled in by the checker and code
// generator respectively.
type Expr struct {
	Kind ExprKind
	Span loc.Span

	// Type is set by the checker (sema pass 3); nil until then.
	Type *Type
	// Loc is the code-gen Location holding this expression's value,
	// set by the code generator as it emits.
	Loc *ir.Location

	IntValue    int
	DoubleValue float64
	BoolValue   bool
	StringValue string

	Name  string      // ExprIdent/ExprField/ExprCall: the referenced/called name
	Ident *Identifier // resolved binding for ExprIdent, set by the type checker

	Base  *Expr   // ExprField/ExprIndex/ExprCall (method form)
	Index *Expr   // ExprIndex
	Args  []*Expr // ExprCall

	ElemType *Type // ExprNewArr
	Size     *Expr // ExprNewArr
	ClassRef *Type // ExprNew: resolved by the type checker to a KindNamed

	Op       string // ExprUnary/ExprBinary mnemonic: - ! + - * / % == != < <= > >= && ||
	Operand  *Expr  // ExprUnary
	Left     *Expr  // ExprBinary
	Right    *Expr  // ExprBinary

	// IsMethodCall marks a call lowered as a virtual dispatch rather
	// than a free-function call; set by the parser for base.name(...),
	// and by the checker when a bare name(...) resolves to a method of
	// the current class (it then also sets Base to an ExprThis).
	IsMethodCall bool
	// ResolvedFunc is the FunctionDecl this call statically resolves to
	// (used for arity/type checking and, for non-virtual calls, direct
	// LCall emission).
	ResolvedFunc *FunctionDecl
}
