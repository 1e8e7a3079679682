package harness

import (
	"fmt"
	"strconv"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/eval"
	"github.com/roach88/modelir/internal/loader"
	"github.com/roach88/modelir/internal/subst"
	"github.com/roach88/modelir/internal/traverse"
	"github.com/roach88/modelir/internal/value"
)

// Environment is a loaded model, and optionally properties, ready to be
// evaluated in concrete states. Formulas are expanded, so every formula
// body is one shared subgraph.
type Environment struct {
	Model      *ast.ModulesFile
	Properties *ast.PropertiesFile // nil without a properties document
	Constants  *eval.Values        // Model and property constants
	Labels     *ast.LabelList      // Model labels, then property labels
	Variables  []string            // State variables in index order

	vars  map[string]int
	props map[string]ast.Expression
	names []string // Property names in document order
}

// Target is one evaluable item of an environment.
type Target struct {
	Kind string // TargetLabel, TargetFormula or TargetProperty
	Name string
}

func (t Target) String() string { return t.Kind + " " + t.Name }

// LoadEnvironment loads the documents, evaluates constants (undefined ones
// come from given) and expands formulas. propsPath may be empty. The
// options configure the expansion passes.
func LoadEnvironment(modelPath, propsPath string, given *eval.Values, opts ...traverse.Option) (*Environment, error) {
	mf, err := loader.LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	var pf *ast.PropertiesFile
	if propsPath != "" {
		if pf, err = loader.LoadProperties(propsPath, mf); err != nil {
			return nil, fmt.Errorf("failed to load properties: %w", err)
		}
	}
	return NewEnvironment(mf, pf, given, opts...)
}

// NewEnvironment builds an environment from loaded documents. pf may be nil.
// The documents are not modified.
func NewEnvironment(mf *ast.ModulesFile, pf *ast.PropertiesFile, given *eval.Values, opts ...traverse.Option) (*Environment, error) {
	constants, err := eval.EvaluateConstants(mf.Constants, given)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate model constants: %w", err)
	}
	names, err := loader.StateVariables(mf)
	if err != nil {
		return nil, err
	}

	model, err := subst.ExpandModel(mf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand formulas: %w", err)
	}

	env := &Environment{
		Model:     model,
		Constants: constants,
		Labels:    mergeLabels(model.Labels),
		Variables: names,
		vars:      make(map[string]int, len(names)),
		props:     make(map[string]ast.Expression),
	}
	for i, name := range names {
		env.vars[name] = i
	}

	if pf == nil {
		return env, nil
	}

	scope := eval.NewValues()
	scope.Merge(given)
	scope.Merge(constants)
	pc, err := eval.EvaluateConstants(pf.Constants, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate property constants: %w", err)
	}
	env.Constants.Merge(pc)

	out, err := subst.ExpandFormulas(pf, []*ast.FormulaList{pf.Formulas, mf.Formulas}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand formulas: %w", err)
	}
	env.Properties = out.(*ast.PropertiesFile)
	env.Labels = mergeLabels(model.Labels, env.Properties.Labels)

	// Every property is reachable as "#n" (1-based); named ones also by name.
	for i, p := range env.Properties.Properties {
		key := "#" + strconv.Itoa(i+1)
		if p.Name != "" {
			key = p.Name
			env.props["#"+strconv.Itoa(i+1)] = p.Expr
		}
		env.props[key] = p.Expr
		env.names = append(env.names, key)
	}
	return env, nil
}

// mergeLabels concatenates label lists. Earlier lists win on duplicate
// names since Lookup returns the first match.
func mergeLabels(lists ...*ast.LabelList) *ast.LabelList {
	out := &ast.LabelList{}
	for _, l := range lists {
		if l == nil {
			continue
		}
		out.Names = append(out.Names, l.Names...)
		out.Labels = append(out.Labels, l.Labels...)
	}
	return out
}

// State builds the state assigning vals by variable name. Variables not in
// vals have no value.
func (env *Environment) State(vals map[string]value.Value) (*eval.State, error) {
	state := eval.NewState(make([]value.Value, len(env.Variables))...)
	for name, v := range vals {
		i, ok := env.vars[name]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", name)
		}
		state.Vars[i] = v
	}
	return state, nil
}

// Context returns a fresh cached evaluation context for state.
func (env *Environment) Context(state *eval.State) *eval.CachedStateContext {
	return eval.NewCachedStateContext(state, env.Constants, env.Labels, nil)
}

// Expression returns the expression evaluated for t. Labels and formulas
// are wrapped in a reference so built-in labels and unknown names are
// reported by the evaluator. Unknown properties are an error.
func (env *Environment) Expression(t Target) (ast.Expression, error) {
	switch t.Kind {
	case TargetLabel:
		return ast.NewLabelRef(t.Name), nil
	case TargetFormula:
		def, _ := env.Model.Formulas.Lookup(t.Name)
		return ast.NewFormulaRef(t.Name, def), nil
	case TargetProperty:
		expr, ok := env.props[t.Name]
		if !ok {
			return nil, fmt.Errorf("unknown property %q", t.Name)
		}
		return expr, nil
	default:
		return nil, fmt.Errorf("unknown target kind %q", t.Kind)
	}
}

// Targets lists every label, formula and property, in that order.
func (env *Environment) Targets() []Target {
	var out []Target
	for _, name := range env.Labels.Names {
		out = append(out, Target{Kind: TargetLabel, Name: name})
	}
	if env.Model.Formulas != nil {
		for _, name := range env.Model.Formulas.Names {
			out = append(out, Target{Kind: TargetFormula, Name: name})
		}
	}
	for _, name := range env.names {
		out = append(out, Target{Kind: TargetProperty, Name: name})
	}
	return out
}
