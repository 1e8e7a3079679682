package ast

// ModelType identifies the kind of probabilistic model a file describes.
type ModelType string

const (
	ModelDTMC  ModelType = "dtmc"
	ModelCTMC  ModelType = "ctmc"
	ModelMDP   ModelType = "mdp"
	ModelPTA   ModelType = "pta"
	ModelPOMDP ModelType = "pomdp"
	ModelPOPTA ModelType = "popta"
	ModelLTS   ModelType = "lts"
	ModelSMG   ModelType = "smg"
)

// ModulesFile is the root of a model description.
//
// Children order: Formulas, Labels, Constants, Globals..., Modules...,
// System, Rewards..., Init, ObservableVars..., Observables...
type ModulesFile struct {
	base
	ModelType      ModelType
	Formulas       *FormulaList
	Labels         *LabelList
	Constants      *ConstantList
	Globals        []*Declaration
	Modules        []ModuleDefn
	System         SystemDefn // nil = implicit full parallel composition
	Rewards        []*RewardStruct
	Init           Expression // nil = initial values from declarations
	ObservableVars []*ObservableVars
	Observables    []*Observable
}

func (*ModulesFile) Kind() Kind { return KindModulesFile }

func (e *ModulesFile) Children() []Node {
	out := []Node{child(e.Formulas), child(e.Labels), child(e.Constants)}
	out = appendNodes(out, e.Globals)
	out = appendNodes(out, e.Modules)
	out = append(out, e.System)
	out = appendNodes(out, e.Rewards)
	out = append(out, e.Init)
	out = appendNodes(out, e.ObservableVars)
	return appendNodes(out, e.Observables)
}

func (e *ModulesFile) appendAttrs(b []byte) []byte {
	b = appendString(b, string(e.ModelType))
	b = appendLen(b, len(e.Globals))
	b = appendLen(b, len(e.Modules))
	b = appendLen(b, len(e.Rewards))
	b = appendLen(b, len(e.ObservableVars))
	return appendLen(b, len(e.Observables))
}

func (e *ModulesFile) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Formulas, err = copyChild(cp, e.Formulas); err != nil {
		return nil, err
	}
	if c.Labels, err = copyChild(cp, e.Labels); err != nil {
		return nil, err
	}
	if c.Constants, err = copyChild(cp, e.Constants); err != nil {
		return nil, err
	}
	if c.Globals, err = copyChildren(cp, e.Globals); err != nil {
		return nil, err
	}
	if c.Modules, err = copyChildren(cp, e.Modules); err != nil {
		return nil, err
	}
	if c.System, err = copyChild(cp, e.System); err != nil {
		return nil, err
	}
	if c.Rewards, err = copyChildren(cp, e.Rewards); err != nil {
		return nil, err
	}
	if c.Init, err = copyChild(cp, e.Init); err != nil {
		return nil, err
	}
	if c.ObservableVars, err = copyChildren(cp, e.ObservableVars); err != nil {
		return nil, err
	}
	if c.Observables, err = copyChildren(cp, e.Observables); err != nil {
		return nil, err
	}
	return &c, nil
}

// Module returns the module definition with the given name, or nil.
func (e *ModulesFile) Module(name string) ModuleDefn {
	for _, m := range e.Modules {
		if m.ModuleName() == name {
			return m
		}
	}
	return nil
}

// PropertiesFile is the root of a properties document.
//
// Children order: Formulas, Labels, Constants, Properties...
type PropertiesFile struct {
	base
	Formulas   *FormulaList
	Labels     *LabelList
	Constants  *ConstantList
	Properties []*Property
}

func (*PropertiesFile) Kind() Kind { return KindPropertiesFile }

func (e *PropertiesFile) Children() []Node {
	out := []Node{child(e.Formulas), child(e.Labels), child(e.Constants)}
	return appendNodes(out, e.Properties)
}

func (e *PropertiesFile) appendAttrs(b []byte) []byte {
	return appendLen(b, len(e.Properties))
}

func (e *PropertiesFile) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Formulas, err = copyChild(cp, e.Formulas); err != nil {
		return nil, err
	}
	if c.Labels, err = copyChild(cp, e.Labels); err != nil {
		return nil, err
	}
	if c.Constants, err = copyChild(cp, e.Constants); err != nil {
		return nil, err
	}
	if c.Properties, err = copyChildren(cp, e.Properties); err != nil {
		return nil, err
	}
	return &c, nil
}

// Property returns the property with the given name, or nil.
func (e *PropertiesFile) Property(name string) *Property {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Property is a single, optionally named, property expression.
type Property struct {
	base
	Name    string // Empty for anonymous properties
	Expr    Expression
	Comment string
}

func (*Property) Kind() Kind { return KindProperty }

func (e *Property) Children() []Node { return []Node{e.Expr} }

func (e *Property) appendAttrs(b []byte) []byte {
	b = appendString(b, e.Name)
	return appendString(b, e.Comment)
}

func (e *Property) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Expr, err = copyChild(cp, e.Expr); err != nil {
		return nil, err
	}
	return &c, nil
}

// FormulaList holds named formula definitions in declaration order.
// Names[i] is defined by Formulas[i].
type FormulaList struct {
	base
	Names    []string
	Formulas []Expression
}

func (*FormulaList) Kind() Kind { return KindFormulaList }

func (e *FormulaList) Children() []Node { return appendNodes(nil, e.Formulas) }

func (e *FormulaList) appendAttrs(b []byte) []byte { return appendStrings(b, e.Names) }

func (e *FormulaList) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Names = cloneStrings(e.Names)
	var err error
	if c.Formulas, err = copyChildren(cp, e.Formulas); err != nil {
		return nil, err
	}
	return &c, nil
}

// Lookup returns the definition of the named formula.
func (e *FormulaList) Lookup(name string) (Expression, bool) {
	if e == nil {
		return nil, false
	}
	for i, n := range e.Names {
		if n == name {
			return e.Formulas[i], true
		}
	}
	return nil, false
}

// LabelList holds named label definitions in declaration order.
type LabelList struct {
	base
	Names  []string
	Labels []Expression
}

func (*LabelList) Kind() Kind { return KindLabelList }

func (e *LabelList) Children() []Node { return appendNodes(nil, e.Labels) }

func (e *LabelList) appendAttrs(b []byte) []byte { return appendStrings(b, e.Names) }

func (e *LabelList) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Names = cloneStrings(e.Names)
	var err error
	if c.Labels, err = copyChildren(cp, e.Labels); err != nil {
		return nil, err
	}
	return &c, nil
}

// Lookup returns the definition of the named label.
func (e *LabelList) Lookup(name string) (Expression, bool) {
	if e == nil {
		return nil, false
	}
	for i, n := range e.Names {
		if n == name {
			return e.Labels[i], true
		}
	}
	return nil, false
}

// ConstantList holds constant declarations. A nil entry in Constants marks
// an undefined constant whose value must be supplied externally.
type ConstantList struct {
	base
	Names     []string
	Types     []Type
	Constants []Expression
}

func (*ConstantList) Kind() Kind { return KindConstantList }

func (e *ConstantList) Children() []Node { return appendNodes(nil, e.Constants) }

func (e *ConstantList) appendAttrs(b []byte) []byte {
	b = appendStrings(b, e.Names)
	b = appendLen(b, len(e.Types))
	for _, t := range e.Types {
		b = appendType(b, t)
	}
	return b
}

func (e *ConstantList) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Names = cloneStrings(e.Names)
	if e.Types != nil {
		c.Types = append([]Type(nil), e.Types...)
	}
	var err error
	if c.Constants, err = copyChildren(cp, e.Constants); err != nil {
		return nil, err
	}
	return &c, nil
}
