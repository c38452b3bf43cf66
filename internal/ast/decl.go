package ast

import (
	"tacc/internal/ir"
	"tacc/internal/loc"
)

// Identifier is a name plus the declaration it resolves to. Two
// identifiers are equivalent iff their names are byte-equal (spec.md
// §3); Decl is nil until the type checker (sema pass 3) resolves it.
type Identifier struct {
	Name string
	Decl *Decl
	Span loc.Span
}

// DeclKind tags a Decl's variant.
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclFunction
	DeclClass
	DeclInterface
)

// Decl is a tagged union over the four declaration shapes spec.md §3
// names. Exactly one of Variable/Function/Class/Interface is non-nil,
// selected by Kind — the same "Kind + payload fields" shape the AST's
// Stmt/Expr variants use, and the shape the teacher uses for
// StatementAst/ExpressionTerm.
type Decl struct {
	Kind DeclKind
	Name *Identifier

	Variable  *VariableDecl
	Function  *FunctionDecl
	Class     *ClassDecl
	Interface *InterfaceDecl
}

// VariableDecl is a global, a parameter, a local, or a class field.
type VariableDecl struct {
	Name *Identifier
	Type *Type

	// EmitLoc is set exactly once by the layout planner: GP-relative
	// for globals, FP-relative for parameters/locals, or FP-relative
	// with Base=ir.ThisPtr for instance fields.
	EmitLoc *ir.Location

	// ClassMemberOffset is the field's byte offset within an instance,
	// duplicated out of EmitLoc.Offset for callers that only care about
	// the instance layout and not the emitted access form (see
	// spec.md §3's VariableDecl shape).
	ClassMemberOffset *int32
}

// FunctionDecl is a free function or a class method/constructor-style
// method. The source language has no explicit constructors; "new C"
// simply allocates and stores the vtable pointer (spec.md §4.F).
type FunctionDecl struct {
	Name       *Identifier
	ReturnType *Type
	Formals    []*Decl // each wraps a *VariableDecl
	Body       []*Stmt // nil for interface method signatures

	// VTableOffset is this method's byte offset within its class's
	// vtable; nil for free functions and interface signatures.
	VTableOffset *int32

	// OwnerClass is non-nil when this FunctionDecl is a method; the
	// binder sets it while walking class members.
	OwnerClass *ClassDecl

	// Label is the decorated emit-time symbol: "main", "_name" for
	// other free functions, "_Class.method" for methods. Set once by
	// the layout planner's name-decoration pass.
	Label string

	// nextLocalOffset is the running FP-relative local-slot counter
	// used by codegen to hand out fresh local slots lazily on first
	// emit, and frameSizeInstr is the BeginFunc instruction whose frame
	// size is backpatched once the body has been generated (spec.md §4.E.4).
	nextLocalOffset int32
	frameSizeInstr  *ir.Instr
}

// NextLocalOffset hands out the next FP-relative local slot,
// -8, -12, -16, …, and advances the counter. Locals are created lazily
// on first emit, per spec.md §4.E.4.
func (f *FunctionDecl) NextLocalOffset() int32 {
	if f.nextLocalOffset == 0 {
		f.nextLocalOffset = -8
	}
	off := f.nextLocalOffset
	f.nextLocalOffset -= 4
	return off
}

// FrameSize returns the bytes reserved for locals: four per local slot
// handed out so far plus one extra word (12 after two slots), or 0 when
// no slot has been handed out.
func (f *FunctionDecl) FrameSize() int32 {
	if f.nextLocalOffset == 0 {
		return 0
	}
	return -f.nextLocalOffset - 8 + 4
}

// SetFrameSizeInstr / BackpatchFrameSize let codegen record the
// BeginFunc handle when the function starts and fill it in once the
// body is fully emitted, per spec.md §3's Lifecycle invariant ("never
// revisits prior [instructions] except to backpatch a single
// BeginFunc.frame_size per function").
func (f *FunctionDecl) SetFrameSizeInstr(instr *ir.Instr) { f.frameSizeInstr = instr }

func (f *FunctionDecl) BackpatchFrameSize() {
	if f.frameSizeInstr != nil {
		f.frameSizeInstr.SetFrameSize(f.FrameSize())
	}
}

// ClassDecl is a class: single inheritance (Extends), multiple
// interface implementation (Implements).
type ClassDecl struct {
	Name       *Identifier
	Extends    *Type   // KindNamed or nil
	Implements []*Type // KindNamed, declaration order

	Members []*Decl // DeclVariable | DeclFunction, declaration order

	InstanceSize int32
	VTableSize   int32

	// FlattenedVars/FlattenedMethods are built by the layout planner
	// (spec.md §4.E.2): the full member list after walking the
	// superclass chain and, for methods, collapsing overrides in
	// place.
	FlattenedVars    []*Decl
	FlattenedMethods []*Decl
}

// InterfaceDecl is a set of method signatures with no bodies.
type InterfaceDecl struct {
	Name    *Identifier
	Members []*Decl // DeclFunction, Body == nil
}

// NewVariable builds a variable Decl.
func NewVariable(name *Identifier, typ *Type) *Decl {
	return &Decl{Kind: DeclVariable, Name: name, Variable: &VariableDecl{Name: name, Type: typ}}
}

// NewFunction builds a function Decl.
func NewFunction(name *Identifier, ret *Type, formals []*Decl, body []*Stmt) *Decl {
	return &Decl{Kind: DeclFunction, Name: name, Function: &FunctionDecl{
		Name: name, ReturnType: ret, Formals: formals, Body: body,
	}}
}

// NewClass builds a class Decl.
func NewClass(name *Identifier, extends *Type, implements []*Type, members []*Decl) *Decl {
	return &Decl{Kind: DeclClass, Name: name, Class: &ClassDecl{
		Name: name, Extends: extends, Implements: implements, Members: members,
	}}
}

// NewInterface builds an interface Decl.
func NewInterface(name *Identifier, members []*Decl) *Decl {
	return &Decl{Kind: DeclInterface, Name: name, Interface: &InterfaceDecl{Name: name, Members: members}}
}
