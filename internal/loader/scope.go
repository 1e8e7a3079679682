package loader

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/modelir/internal/ast"
)

type symbolKind int

const (
	symConstant symbolKind = iota
	symFormula
	symVar
	symObservable
)

func (k symbolKind) String() string {
	switch k {
	case symConstant:
		return "constant"
	case symFormula:
		return "formula"
	case symVar:
		return "variable"
	default:
		return "observable"
	}
}

type symbol struct {
	kind  symbolKind
	typ   ast.Type
	index int // Variables and observables
	pos   ast.Position
}

// scope holds the names an expression may refer to. Labels, properties and
// reward structures live in their own namespaces because they are referenced
// with dedicated syntax.
type scope struct {
	names   map[string]*symbol
	labels  map[string]bool
	props   map[string]bool
	rewards map[string]bool
}

func newScope() *scope {
	return &scope{
		names:   make(map[string]*symbol),
		labels:  map[string]bool{"init": true, "deadlock": true},
		props:   make(map[string]bool),
		rewards: make(map[string]bool),
	}
}

func (s *scope) declare(name string, sym *symbol) error {
	if prev, ok := s.names[name]; ok {
		return errorf(ErrCodeDuplicate, sym.pos, "%s %q already declared as a %s at %s", sym.kind, name, prev.kind, prev.pos)
	}
	s.names[name] = sym
	return nil
}

func (s *scope) declareIn(set map[string]bool, what, name string, pos ast.Position) error {
	if set[name] {
		return errorf(ErrCodeDuplicate, pos, "%s %q already declared", what, name)
	}
	set[name] = true
	return nil
}

// ident normalizes an identifier read from a document.
func ident(s string) string {
	return norm.NFC.String(s)
}

// varSlot is one entry of the state vector.
type varSlot struct {
	name string
	typ  ast.Type
	pos  ast.Position
}

// stateVars lists the state variables in index order: globals first, then
// the variables of each module in declaration order. A renamed module
// contributes the renamed variables of its base module.
func stateVars(globals []*ast.Declaration, modules []ast.ModuleDefn) ([]varSlot, error) {
	var slots []varSlot
	for _, d := range globals {
		slots = append(slots, varSlot{name: d.Name, typ: d.VarType(), pos: d.Pos})
	}
	for _, m := range modules {
		switch m := m.(type) {
		case *ast.Module:
			for _, d := range m.Decls {
				slots = append(slots, varSlot{name: d.Name, typ: d.VarType(), pos: d.Pos})
			}
		case *ast.RenamedModule:
			base := findModule(modules, m.Base)
			if base == nil {
				return nil, errorf(ErrCodeUndefined, m.Pos, "module %q renames unknown module %q", m.Name, m.Base)
			}
			for _, d := range base.Decls {
				renamed, ok := lookupRename(m, d.Name)
				if !ok {
					return nil, errorf(ErrCodeSchema, m.Pos, "module %q must rename variable %q of %q", m.Name, d.Name, m.Base)
				}
				slots = append(slots, varSlot{name: renamed, typ: d.VarType(), pos: m.Pos})
			}
		}
	}
	return slots, nil
}

func findModule(modules []ast.ModuleDefn, name string) *ast.Module {
	for _, m := range modules {
		if mod, ok := m.(*ast.Module); ok && mod.Name == name {
			return mod
		}
	}
	return nil
}

func lookupRename(m *ast.RenamedModule, old string) (string, bool) {
	for i, n := range m.OldNames {
		if n == old && i < len(m.NewNames) {
			return m.NewNames[i], true
		}
	}
	return "", false
}

// modelScope rebuilds the scope a model's own expressions were resolved in,
// for use by property documents.
func modelScope(mf *ast.ModulesFile) (*scope, error) {
	s := newScope()
	if mf == nil {
		return s, nil
	}
	if cl := mf.Constants; cl != nil {
		for i, name := range cl.Names {
			t := ast.TypeUnknown
			if i < len(cl.Types) {
				t = cl.Types[i]
			}
			if err := s.declare(name, &symbol{kind: symConstant, typ: t, pos: cl.Pos}); err != nil {
				return nil, err
			}
		}
	}
	slots, err := stateVars(mf.Globals, mf.Modules)
	if err != nil {
		return nil, err
	}
	for i, v := range slots {
		if err := s.declare(v.name, &symbol{kind: symVar, typ: v.typ, index: i, pos: v.pos}); err != nil {
			return nil, err
		}
	}
	if fl := mf.Formulas; fl != nil {
		for i, name := range fl.Names {
			sym := &symbol{kind: symFormula, pos: fl.Pos}
			if i < len(fl.Formulas) && !ast.IsNil(fl.Formulas[i]) {
				sym.typ = fl.Formulas[i].ExprType()
			}
			if err := s.declare(name, sym); err != nil {
				return nil, err
			}
		}
	}
	if ll := mf.Labels; ll != nil {
		for _, name := range ll.Names {
			s.labels[name] = true
		}
	}
	for i, o := range mf.Observables {
		sym := &symbol{kind: symObservable, index: i, pos: o.Pos}
		if !ast.IsNil(o.Definition) {
			sym.typ = o.Definition.ExprType()
		}
		if err := s.declare(o.Name, sym); err != nil {
			return nil, err
		}
	}
	for _, r := range mf.Rewards {
		if r.Name != "" {
			s.rewards[r.Name] = true
		}
	}
	return s, nil
}

// StateVariables returns the names of the state variables of mf in index
// order, the order Var.Index refers to.
func StateVariables(mf *ast.ModulesFile) ([]string, error) {
	slots, err := stateVars(mf.Globals, mf.Modules)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.name
	}
	return names, nil
}
