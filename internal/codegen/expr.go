package codegen

import (
	"tacc/internal/ast"
	"tacc/internal/ir"
)

// emitExpr generates code for e and returns the Location holding its
// value, recording it on e.Loc as well so a later pass (or a test)
// can inspect exactly where a given expression's value ended up.
func (g *generator) emitExpr(e *ast.Expr) *ir.Location {
	loc := g.emitExpr0(e)
	e.Loc = loc
	return loc
}

func (g *generator) emitExpr0(e *ast.Expr) *ir.Location {
	switch e.Kind {
	case ast.ExprIntLit:
		t := g.tmp()
		g.emitLoadConst(t, e.IntValue)
		return t
	case ast.ExprBoolLit:
		t := g.tmp()
		g.emitLoadBool(t, e.BoolValue)
		return t
	case ast.ExprStringLit:
		t := g.tmp()
		g.emitLoadString(t, e.StringValue)
		return t
	case ast.ExprNullLit:
		t := g.tmp()
		g.emitLoadConst(t, 0)
		return t
	case ast.ExprThis:
		return ir.ThisPtr
	case ast.ExprIdent:
		return g.localLoc(e.Name, e.Ident.Decl)
	case ast.ExprField:
		return g.emitFieldLoad(e)
	case ast.ExprIndex:
		return g.emitIndexLoad(e)
	case ast.ExprAssign:
		return g.emitAssignExpr(e)
	case ast.ExprUnary:
		return g.emitUnary(e)
	case ast.ExprBinary:
		return g.emitBinaryExpr(e)
	case ast.ExprCall:
		return g.emitCallExpr(e)
	case ast.ExprNew:
		return g.emitNew(e)
	case ast.ExprNewArr:
		return g.emitNewArray(e)
	case ast.ExprReadInt:
		t := g.tmp()
		g.emitLCall(t, "_ReadInteger")
		return t
	default:
		return g.tmp()
	}
}

// fieldOffsetOf reports the field offset for a class member access,
// consulting the flattened layout rather than the Decl's own
// ClassMemberOffset directly so a field inherited through a subclass
// resolves to the same slot as it does on the declaring superclass.
func fieldOffsetOf(class *ast.ClassDecl, name string) int32 {
	for _, v := range class.FlattenedVars {
		if v.Name.Name == name {
			return *v.Variable.ClassMemberOffset
		}
	}
	return 0
}

func (g *generator) emitFieldLoad(e *ast.Expr) *ir.Location {
	base := g.emitExpr(e.Base)
	off := fieldOffsetOf(e.Base.Type.Decl.Class, e.Name)
	dst := g.tmp()
	g.emitLoad(dst, base, off)
	return dst
}

func (g *generator) emitFieldStore(e *ast.Expr, value *ir.Location) {
	base := g.emitExpr(e.Base)
	off := fieldOffsetOf(e.Base.Type.Decl.Class, e.Name)
	g.emitStore(base, off, value)
}

// arrayHeaderSize and the header-word convention (one word for length at
// offset 0, elements starting at offset 4) match spec.md §4.F's array
// object layout.
const arrayHeaderSize = int32(4)

func (g *generator) emitIndexLoad(e *ast.Expr) *ir.Location {
	base := g.emitExpr(e.Base)
	idx := g.emitExpr(e.Index)
	addr := g.arrayElementAddr(base, idx)
	dst := g.tmp()
	g.emitLoad(dst, addr, 0)
	return dst
}

// arrayElementAddr computes &base[4 + idx*4] into a fresh temporary,
// since Load/Store only support a base-plus-constant-offset addressing
// mode and an indexed element needs a variable offset. It checks the
// index against the array's length header first, on both the load and
// the store path, per spec.md §4.F.
func (g *generator) arrayElementAddr(base, idx *ir.Location) *ir.Location {
	g.emitArrayBoundsCheck(base, idx)
	four := g.tmp()
	g.emitLoadConst(four, 4)
	scaled := g.tmp()
	g.emitBinary(scaled, idx, four, "mul")
	withHeader := g.tmp()
	headerConst := g.tmp()
	g.emitLoadConst(headerConst, int(arrayHeaderSize))
	g.emitBinary(withHeader, scaled, headerConst, "add")
	addr := g.tmp()
	g.emitBinary(addr, base, withHeader, "add")
	return addr
}

// emitArrayBoundsCheck aborts with the runtime's out-of-bound message
// when idx is negative or at least the array's length (stored at
// offset 0 of base), matching original_source/src/ast_expr.cc's
// ArrayAccess::Emit sequence.
func (g *generator) emitArrayBoundsCheck(base, idx *ir.Location) {
	zero := g.tmp()
	g.emitLoadConst(zero, 0)
	tooLow := g.tmp()
	g.emitBinary(tooLow, idx, zero, "slt")
	length := g.tmp()
	g.emitLoad(length, base, 0)
	tooHigh := g.tmp()
	g.emitBinary(tooHigh, idx, length, "sge")
	outOfBounds := g.tmp()
	g.emitBinary(outOfBounds, tooLow, tooHigh, "or")
	ok := g.prog.NewLabel()
	g.emitIfZ(outOfBounds, ok)
	g.emitRuntimeAbort("subscript out of bound\n")
	g.emitLabel(ok)
}

// emitRuntimeAbort prints msg and halts, without returning control to
// the caller — used by the array bounds and NewArray size checks.
func (g *generator) emitRuntimeAbort(msg string) {
	m := g.tmp()
	g.emitLoadString(m, msg)
	g.emitPushParam(m)
	g.emitLCall(nil, "_PrintString")
	g.emitPopParams(4)
	g.emitLCall(nil, "_Halt")
}

func (g *generator) emitAssignExpr(e *ast.Expr) *ir.Location {
	value := g.emitExpr(e.Right)
	switch e.Left.Kind {
	case ast.ExprIdent:
		dst := g.localLoc(e.Left.Name, e.Left.Ident.Decl)
		g.emitAssign(dst, value)
	case ast.ExprField:
		g.emitFieldStore(e.Left, value)
	case ast.ExprIndex:
		base := g.emitExpr(e.Left.Base)
		idx := g.emitExpr(e.Left.Index)
		addr := g.arrayElementAddr(base, idx)
		g.emitStore(addr, 0, value)
	}
	return value
}

func (g *generator) emitUnary(e *ast.Expr) *ir.Location {
	v := g.emitExpr(e.Operand)
	dst := g.tmp()
	switch e.Op {
	case "-":
		zero := g.tmp()
		g.emitLoadConst(zero, 0)
		g.emitBinary(dst, zero, v, "sub")
	case "!":
		one := g.tmp()
		g.emitLoadConst(one, 1)
		g.emitBinary(dst, one, v, "sub")
	}
	return dst
}

var binOpMnemonic = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "rem",
	"==": "seq", "!=": "sne",
	"<": "slt", "<=": "sle", ">": "sgt", ">=": "sge",
	"&&": "and", "||": "or",
}

func (g *generator) emitBinaryExpr(e *ast.Expr) *ir.Location {
	l := g.emitExpr(e.Left)
	r := g.emitExpr(e.Right)
	dst := g.tmp()
	if (e.Op == "==" || e.Op == "!=") && e.Left.Type != nil && e.Left.Type.Kind == ast.KindString {
		g.emitPushParam(r)
		g.emitPushParam(l)
		g.emitLCall(dst, "_StringEqual")
		g.emitPopParams(8)
		if e.Op == "!=" {
			zero := g.tmp()
			g.emitLoadConst(zero, 0)
			g.emitBinary(dst, dst, zero, "seq")
		}
		return dst
	}
	g.emitBinary(dst, l, r, binOpMnemonic[e.Op])
	return dst
}

func (g *generator) emitCallExpr(e *ast.Expr) *ir.Location {
	if e.Name == "ReadLine" {
		t := g.tmp()
		g.emitLCall(t, "_ReadLine")
		return t
	}
	if e.IsMethodCall && e.Name == "length" && e.Base.Type != nil && e.Base.Type.Kind == ast.KindArray {
		return g.emitArrayLength(e)
	}
	if e.IsMethodCall {
		return g.emitVirtualCall(e)
	}
	var dst *ir.Location
	if e.ResolvedFunc.ReturnType.Kind != ast.KindVoid {
		dst = g.tmp()
	}
	var pushed []*ir.Location
	for _, a := range e.Args {
		pushed = append(pushed, g.emitExpr(a))
	}
	for i := len(pushed) - 1; i >= 0; i-- {
		g.emitPushParam(pushed[i])
	}
	g.emitLCall(dst, e.ResolvedFunc.Label)
	g.emitPopParams(int32(len(pushed)) * 4)
	return dst
}

// emitArrayLength reads the length word stored in an array's header,
// the same word emitArrayBoundsCheck consults, rather than dispatching
// through a vtable — arrays carry no vtable pointer.
func (g *generator) emitArrayLength(e *ast.Expr) *ir.Location {
	base := g.emitExpr(e.Base)
	dst := g.tmp()
	g.emitLoad(dst, base, 0)
	return dst
}

// emitVirtualCall dispatches through the receiver's vtable slot rather
// than calling the statically resolved label directly, so an
// overriding subclass's implementation runs even when the receiver's
// declared type only names the base class.
func (g *generator) emitVirtualCall(e *ast.Expr) *ir.Location {
	receiver := g.emitExpr(e.Base)
	var dst *ir.Location
	if e.ResolvedFunc.ReturnType.Kind != ast.KindVoid {
		dst = g.tmp()
	}
	var pushed []*ir.Location
	for _, a := range e.Args {
		pushed = append(pushed, g.emitExpr(a))
	}
	for i := len(pushed) - 1; i >= 0; i-- {
		g.emitPushParam(pushed[i])
	}
	g.emitPushParam(receiver)
	vtable := g.tmp()
	g.emitLoad(vtable, receiver, 0)
	methodPtr := g.tmp()
	g.emitLoad(methodPtr, vtable, *e.ResolvedFunc.VTableOffset)
	g.emitACall(dst, methodPtr)
	g.emitPopParams((int32(len(pushed))+1)*4)
	return dst
}

func (g *generator) emitNew(e *ast.Expr) *ir.Location {
	class := e.ClassRef.Decl.Class
	sizeConst := g.tmp()
	g.emitLoadConst(sizeConst, int(class.InstanceSize))
	g.emitPushParam(sizeConst)
	obj := g.tmp()
	g.emitLCall(obj, "_Alloc")
	g.emitPopParams(4)
	vtableLoc := g.tmp()
	g.emitLoadLabel(vtableLoc, vtableLabel(class))
	g.emitStore(obj, 0, vtableLoc)
	return obj
}

func (g *generator) emitNewArray(e *ast.Expr) *ir.Location {
	size := g.emitExpr(e.Size)
	g.emitArraySizeCheck(size)
	four := g.tmp()
	g.emitLoadConst(four, 4)
	bytes := g.tmp()
	g.emitBinary(bytes, size, four, "mul")
	withHeader := g.tmp()
	g.emitBinary(withHeader, bytes, four, "add")
	g.emitPushParam(withHeader)
	arr := g.tmp()
	g.emitLCall(arr, "_Alloc")
	g.emitPopParams(4)
	g.emitStore(arr, 0, size)
	return arr
}

// emitArraySizeCheck aborts with the runtime's negative-size message
// when size is not a positive count, matching the "Array size is <= 0"
// message original_source/src/globals.h defines.
func (g *generator) emitArraySizeCheck(size *ir.Location) {
	zero := g.tmp()
	g.emitLoadConst(zero, 0)
	bad := g.tmp()
	g.emitBinary(bad, size, zero, "sle")
	ok := g.prog.NewLabel()
	g.emitIfZ(bad, ok)
	g.emitRuntimeAbort("Array size is <= 0\n")
	g.emitLabel(ok)
}
