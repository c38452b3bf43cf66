package ir

import "fmt"

// Program is the session-owned sink the code generator appends
// instructions to. spec.md §9's design notes call for the code-gen
// state (instruction list, label counter, temp counter) to be an
// explicit session object rather than module-level globals, so unlike
// the teacher's package-level `conditionLabel` counter this is a value
// threaded through the generator.
type Program struct {
	Instrs   []*Instr
	tmpCount int
	lblCount int
}

// NewProgram returns an empty instruction sink.
func NewProgram() *Program {
	return &Program{}
}

// NewTmp allocates a fresh temporary name of the form "_tmpN". Its
// stack slot is assigned later by the frame layout in effect when it is
// first spilled; NewTmp itself only reserves the name.
func (p *Program) NewTmp() string {
	name := fmt.Sprintf("_tmp%d", p.tmpCount)
	p.tmpCount++
	return name
}

// NewLabel allocates a fresh label of the form "_L<counter>".
func (p *Program) NewLabel() string {
	name := fmt.Sprintf("_L%d", p.lblCount)
	p.lblCount++
	return name
}

// Emit appends an instruction and returns it so callers can retain a
// handle for later backpatching (only BeginFunc.FrameSize is ever
// backpatched, per spec.md §3's Lifecycle invariant).
func (p *Program) Emit(instr *Instr) *Instr {
	p.Instrs = append(p.Instrs, instr)
	return instr
}

// SetFrameSize backpatches a previously emitted BeginFunc instruction
// once its function body's local-offset counter is final.
func (instr *Instr) SetFrameSize(n int32) {
	instr.FrameSize = n
}
