package ir

import "fmt"

// Segment identifies which base register a Location is relative to.
type Segment int

const (
	// FP is the frame-pointer-relative segment: parameters (positive
	// offsets), locals and temporaries (negative offsets).
	FP Segment = iota
	// GP is the global-pointer-relative segment used for top-level
	// variables.
	GP
)

func (s Segment) String() string {
	if s == GP {
		return "gp"
	}
	return "fp"
}

// Location is a code-generation value: either segment+offset (a stack
// slot or a global slot) or, when Base is non-nil, *(Base+Offset) — the
// shape produced by field-access codegen. Locations compare by value:
// two Locations naming the same slot are equal.
type Location struct {
	Segment Segment
	Offset  int32
	Name    string
	Base    *Location
}

// IsIndirect reports whether this location denotes *(Base+Offset)
// rather than segment_register+Offset.
func (l *Location) IsIndirect() bool {
	return l != nil && l.Base != nil
}

func (l *Location) String() string {
	if l == nil {
		return "<nil-loc>"
	}
	if l.Base != nil {
		return fmt.Sprintf("%s[*(%s+%d)]", l.Name, l.Base, l.Offset)
	}
	return fmt.Sprintf("%s[%d(%s)]", l.Name, l.Offset, l.Segment)
}

// Equal reports structural equality, per spec.md §4.A ("Locations are
// value objects with structural equality").
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Name != other.Name || l.Segment != other.Segment || l.Offset != other.Offset {
		return false
	}
	return l.Base.Equal(other.Base)
}

// ThisPtr is the canonical FP-relative location of the implicit "this"
// parameter: offset +4, one slot past the saved fp/ra pair.
var ThisPtr = &Location{Segment: FP, Offset: 4, Name: "this"}
