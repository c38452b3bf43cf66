// Package ast holds the parsed-and-annotated representation of a source
// program: identifiers, types, declarations, statements and
// expressions. The multi-pass checker (internal/sema) enriches nodes
// created here in place; the layout planner (internal/layout) and code
// generator (internal/codegen) consume the enriched tree.
package ast

import "fmt"

// Kind tags a Type's variant, per spec.md §3.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindVoid
	KindBool
	KindNull
	KindString
	KindError
	KindNamed
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindError:
		return "error"
	case KindNamed:
		return "named"
	case KindArray:
		return "array"
	}
	return "?"
}

// Validity is the semantic-resolution state of a non-basic type, per
// spec.md §3 ("Every non-basic type carries a semantic validation
// result").
type Validity int

const (
	Valid Validity = iota
	Unresolved
	Invalid
)

// Type is a tagged variant over the source language's basic kinds,
// class/interface references, and array types. Basic kinds are
// singletons (see the package-level vars below) so they can be compared
// by pointer identity, as spec.md §3 requires.
type Type struct {
	Kind     Kind
	Name     string // KindNamed: the class/interface name
	Elem     *Type  // KindArray: element type
	Decl     *Decl  // KindNamed: resolved class/interface decl, set by the binder
	Validity Validity
}

// The basic-type singletons. Every basic Type value in a checked
// program is one of these pointers; never allocate a second copy.
var (
	Int    = &Type{Kind: KindInt, Validity: Valid}
	Double = &Type{Kind: KindDouble, Validity: Valid}
	Void   = &Type{Kind: KindVoid, Validity: Valid}
	Bool   = &Type{Kind: KindBool, Validity: Valid}
	Null   = &Type{Kind: KindNull, Validity: Valid}
	Str    = &Type{Kind: KindString, Validity: Valid}
	// ErrT is the sink type: any node whose type could not be computed
	// carries ErrT so later passes do not cascade a second diagnostic
	// from the same subtree (spec.md §4.D, "error types are sinks").
	ErrT = &Type{Kind: KindError, Validity: Invalid}
)

// NewNamed constructs an unresolved reference to a class or interface
// name; the binder (sema pass 1) fills in Decl and Validity.
func NewNamed(name string) *Type {
	return &Type{Kind: KindNamed, Name: name, Validity: Unresolved}
}

// NewArray constructs an array-of-elem type. Its validity follows the
// element's (a basic element is always Valid).
func NewArray(elem *Type) *Type {
	v := Valid
	if elem != nil {
		v = elem.Validity
	}
	return &Type{Kind: KindArray, Elem: elem, Validity: v}
}

func (t *Type) String() string {
	if t == nil {
		return "<untyped>"
	}
	switch t.Kind {
	case KindNamed:
		return t.Name
	case KindArray:
		return fmt.Sprintf("%s[]", t.Elem)
	default:
		return t.Kind.String()
	}
}

// IsBasic reports whether t is one of the Basic(kind) singletons.
func (t *Type) IsBasic() bool {
	return t != nil && t.Kind != KindNamed && t.Kind != KindArray
}

// Equivalent implements spec.md §4.D's type-equivalence relation:
// Basic by identity, Named by identifier equivalence, Array by
// recursive element equivalence.
func Equivalent(a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNamed:
		return a.Name == b.Name
	case KindArray:
		return Equivalent(a.Elem, b.Elem)
	default:
		return a == b
	}
}

// IsCompatible implements spec.md §4.D's `t.is_compatible_with(other)`:
// whether a value of type `other` may be used where `t` is expected.
func IsCompatible(t, other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	if t.Kind == KindError || other.Kind == KindError {
		return true
	}
	switch t.Kind {
	case KindNamed:
		if other.Kind == KindNull {
			return true
		}
		if other.Kind != KindNamed {
			return false
		}
		if t.Name == other.Name {
			return true
		}
		return isSubtypeOf(other, t)
	case KindArray:
		if other.Kind == KindNull {
			return IsCompatible(t.Elem, Null) || t.Elem.Kind == KindNamed || t.Elem.Kind == KindArray
		}
		if other.Kind != KindArray {
			return false
		}
		return Equivalent(t.Elem, other.Elem)
	default:
		return t == other
	}
}

// isSubtypeOf reports whether `sub` names a class that transitively
// extends, or transitively implements, the class/interface named by
// `sup`. Both must already carry a resolved Decl link (set by the
// binder); an unresolved name is never a subtype of anything.
func isSubtypeOf(sub, sup *Type) bool {
	if sub == nil || sup == nil || sub.Decl == nil {
		return false
	}
	class := sub.Decl.Class
	if class == nil {
		return false
	}
	return classIsSubtype(class, sup.Name, map[string]bool{})
}

func classIsSubtype(class *ClassDecl, target string, seen map[string]bool) bool {
	if class == nil || seen[class.Name.Name] {
		return false
	}
	seen[class.Name.Name] = true
	for _, iface := range class.Implements {
		if iface.Name == target {
			return true
		}
		if iface.Decl != nil && iface.Decl.Interface != nil && interfaceExtends(iface.Decl.Interface, target, seen) {
			return true
		}
	}
	if class.Extends == nil {
		return false
	}
	if class.Extends.Name == target {
		return true
	}
	if class.Extends.Decl == nil || class.Extends.Decl.Class == nil {
		return false
	}
	return classIsSubtype(class.Extends.Decl.Class, target, seen)
}

// interfaceExtends checks direct identity only: the grammar has no
// `interface extends interface` production.
func interfaceExtends(i *InterfaceDecl, target string, seen map[string]bool) bool {
	return i.Name.Name == target
}
