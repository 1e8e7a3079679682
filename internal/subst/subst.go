// Package subst rewrites formula references.
//
// ExpandFormulas replaces every reference by the expansion of its
// definition. The expansion of a definition is built once and shared by all
// of its references, which is how a tree becomes a DAG. AttachFormulas keeps
// the references and attaches the shared expansion as their Definition.
//
// Both produce a new graph through deepcopy; the input is never modified.
package subst

import (
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/deepcopy"
	"github.com/roach88/modelir/internal/traverse"
)

type mode int

const (
	modeExpand mode = iota
	modeAttach
)

// rewriter copies everything and rewrites formula references on the way.
type rewriter struct {
	deepcopy.Handlers
	mode      mode
	formulas  []*ast.FormulaList
	expanding map[string]bool
}

func (r *rewriter) definition(e *ast.FormulaRef) (ast.Expression, bool) {
	if e.Definition != nil {
		return e.Definition, true
	}
	for _, list := range r.formulas {
		if def, ok := list.Lookup(e.Name); ok && def != nil {
			return def, true
		}
	}
	return nil, false
}

func (r *rewriter) VisitFormulaRef(e *ast.FormulaRef) (ast.Node, error) {
	def, ok := r.definition(e)
	if !ok {
		return e.CopyWith(r.Copier)
	}
	if r.expanding[e.Name] {
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "formula %q is defined in terms of itself", e.Name)
	}

	r.expanding[e.Name] = true
	out, err := r.Copier.Copy(def)
	delete(r.expanding, e.Name)
	if err != nil {
		return nil, err
	}
	expansion, ok := out.(ast.Expression)
	if !ok {
		return nil, ast.Errorf(ast.CodeCopyFailed, e.Pos, "expansion of formula %q produced %T", e.Name, out)
	}

	if r.mode == modeExpand {
		return expansion, nil
	}
	ref := ast.NewFormulaRef(e.Name, expansion)
	ref.Pos = e.Pos
	return ref, nil
}

func run(m mode, root ast.Node, formulas []*ast.FormulaList, opts []traverse.Option) (ast.Node, error) {
	name := "expand"
	if m == modeAttach {
		name = "attach"
	}
	c := deepcopy.NewWith(func(cp ast.Copier) ast.Handler[ast.Node] {
		return &rewriter{
			Handlers:  deepcopy.Handlers{Copier: cp},
			mode:      m,
			formulas:  formulas,
			expanding: make(map[string]bool),
		}
	}, append([]traverse.Option{traverse.WithName(name)}, opts...)...)

	out, err := c.Copy(root)
	if err != nil {
		return nil, err
	}
	c.Report()
	return out, nil
}

// ExpandFormulas returns a copy of root in which every formula reference is
// replaced by its definition. A reference's attached definition takes
// precedence; otherwise the lists are searched in order. References to
// unknown formulas are kept. Formulas defined in terms of themselves are
// rejected with INVALID_NODE.
func ExpandFormulas(root ast.Node, formulas []*ast.FormulaList, opts ...traverse.Option) (ast.Node, error) {
	return run(modeExpand, root, formulas, opts)
}

// AttachFormulas returns a copy of root in which every formula reference
// carries its expanded definition.
func AttachFormulas(root ast.Node, formulas []*ast.FormulaList, opts ...traverse.Option) (ast.Node, error) {
	return run(modeAttach, root, formulas, opts)
}

// ExpandModel expands the formulas of a model everywhere in the model.
func ExpandModel(mf *ast.ModulesFile, opts ...traverse.Option) (*ast.ModulesFile, error) {
	out, err := ExpandFormulas(mf, []*ast.FormulaList{mf.Formulas}, opts...)
	if err != nil {
		return nil, err
	}
	return out.(*ast.ModulesFile), nil
}
