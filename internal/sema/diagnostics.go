// Package sema implements the three-pass semantic checker: bind
// (resolve named types and build the global/class symbol picture),
// inherit (validate the extends/implements graph and override
// compatibility), and type (full expression and statement type
// checking). Diagnostics accumulate in a Diagnostics value rather than
// aborting on the first error, replacing the teacher's single global
// boolean error flag with an accumulator, per spec.md §9's design
// notes.
package sema

import (
	"fmt"

	"tacc/internal/loc"
)

// Kind distinguishes a normal semantic error, reported against user
// source, from an internal error: a checker invariant violated by a
// bug in an earlier pass rather than by the input program.
type Kind int

const (
	Error Kind = iota
	Internal
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind    Kind
	Span    loc.Span
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == Internal {
		return fmt.Sprintf("%s: internal error: %s", d.Span, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Diagnostics accumulates every problem found across all three passes.
// Code generation is gated on Diagnostics.HasErrors(), never on a
// single pass's return value, so a program with several unrelated
// mistakes gets several reports in one run instead of one-at-a-time.
type Diagnostics struct {
	items []Diagnostic
}

// Report records a normal semantic error against span.
func (d *Diagnostics) Report(span loc.Span, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{Kind: Error, Span: span, Message: fmt.Sprintf(format, args...)})
}

// Internal records a checker-invariant violation. Passes call this
// instead of panicking so a bug in the checker itself still produces a
// diagnosable report rather than crashing the driver.
func (d *Diagnostics) Internal(span loc.Span, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{Kind: Internal, Span: span, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic — of either Kind — was
// recorded. Code generation must not run if this is true.
func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// All returns every recorded diagnostic in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}
