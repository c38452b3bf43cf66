package ast

// Program is the root of a parsed compilation unit: top-level
// variables, free functions, classes, and interfaces, in declaration
// order (declaration order matters for spec.md §4.D's
// multi-interface resolution and for emission order of globals).
type Program struct {
	Globals    []*Decl // DeclVariable
	Functions  []*Decl // DeclFunction
	Classes    []*Decl // DeclClass
	Interfaces []*Decl // DeclInterface
}

// NewProgram returns an empty top-level program ready for the parser
// to populate.
func NewProgram() *Program {
	return &Program{}
}

// AllDecls returns every top-level declaration as one list: globals,
// then functions, then classes, then interfaces, each kind in its own
// declaration order. The kinds are not interleaved back into source
// order.
func AllDecls(p *Program) []*Decl {
	all := make([]*Decl, 0, len(p.Globals)+len(p.Functions)+len(p.Classes)+len(p.Interfaces))
	all = append(all, p.Globals...)
	all = append(all, p.Functions...)
	all = append(all, p.Classes...)
	all = append(all, p.Interfaces...)
	return all
}

// FindClass looks up a top-level class by name.
func (p *Program) FindClass(name string) *ClassDecl {
	for _, d := range p.Classes {
		if d.Name.Name == name {
			return d.Class
		}
	}
	return nil
}

// FindInterface looks up a top-level interface by name.
func (p *Program) FindInterface(name string) *InterfaceDecl {
	for _, d := range p.Interfaces {
		if d.Name.Name == name {
			return d.Interface
		}
	}
	return nil
}

// FindFunction looks up a top-level free function by name.
func (p *Program) FindFunction(name string) *FunctionDecl {
	for _, d := range p.Functions {
		if d.Name.Name == name {
			return d.Function
		}
	}
	return nil
}
