package ast

// Module is a named component with local variables and guarded commands.
//
// Children order: Decls..., Commands..., Invariant
type Module struct {
	base
	Name      string
	Decls     []*Declaration
	Commands  []*Command
	Invariant Expression // nil = no invariant (only meaningful for PTAs)
}

func (*Module) Kind() Kind           { return KindModule }
func (*Module) moduleDefn()          {}
func (e *Module) ModuleName() string { return e.Name }

func (e *Module) Children() []Node {
	out := appendNodes(nil, e.Decls)
	out = appendNodes(out, e.Commands)
	return append(out, e.Invariant)
}

func (e *Module) appendAttrs(b []byte) []byte {
	b = appendString(b, e.Name)
	b = appendLen(b, len(e.Decls))
	return appendLen(b, len(e.Commands))
}

func (e *Module) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Decls, err = copyChildren(cp, e.Decls); err != nil {
		return nil, err
	}
	if c.Commands, err = copyChildren(cp, e.Commands); err != nil {
		return nil, err
	}
	if c.Invariant, err = copyChild(cp, e.Invariant); err != nil {
		return nil, err
	}
	return &c, nil
}

// Command is "[action] guard -> updates;".
type Command struct {
	base
	Action  string // Empty for unlabelled commands
	Guard   Expression
	Updates *Updates
}

func (*Command) Kind() Kind { return KindCommand }

func (e *Command) Children() []Node { return []Node{e.Guard, child(e.Updates)} }

func (e *Command) appendAttrs(b []byte) []byte { return appendString(b, e.Action) }

func (e *Command) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Guard, err = copyChild(cp, e.Guard); err != nil {
		return nil, err
	}
	if c.Updates, err = copyChild(cp, e.Updates); err != nil {
		return nil, err
	}
	return &c, nil
}

// Updates is the probabilistic choice "p1:u1 + p2:u2 + ...".
// Probs[i] weighs Items[i]; a nil probability stands for an implicit 1.
//
// Children order: Probs..., Items...
type Updates struct {
	base
	Probs []Expression
	Items []*Update
}

func (*Updates) Kind() Kind { return KindUpdates }

func (e *Updates) Children() []Node {
	out := appendNodes(nil, e.Probs)
	return appendNodes(out, e.Items)
}

func (e *Updates) appendAttrs(b []byte) []byte {
	b = appendLen(b, len(e.Probs))
	return appendLen(b, len(e.Items))
}

func (e *Updates) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Probs, err = copyChildren(cp, e.Probs); err != nil {
		return nil, err
	}
	if c.Items, err = copyChildren(cp, e.Items); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update is a conjunction of assignments "(x'=e1) & (y'=e2)".
type Update struct {
	base
	Elements []*UpdateElement
}

func (*Update) Kind() Kind { return KindUpdate }

func (e *Update) Children() []Node { return appendNodes(nil, e.Elements) }

func (e *Update) appendAttrs(b []byte) []byte { return appendLen(b, len(e.Elements)) }

func (e *Update) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Elements, err = copyChildren(cp, e.Elements); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateElement is a single assignment "(Var'=Expr)".
type UpdateElement struct {
	base
	Var  *Ident
	Expr Expression
}

func (*UpdateElement) Kind() Kind { return KindUpdateElement }

func (e *UpdateElement) Children() []Node { return []Node{child(e.Var), e.Expr} }

func (*UpdateElement) appendAttrs(b []byte) []byte { return b }

func (e *UpdateElement) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Var, err = copyChild(cp, e.Var); err != nil {
		return nil, err
	}
	if c.Expr, err = copyChild(cp, e.Expr); err != nil {
		return nil, err
	}
	return &c, nil
}

// RenamedModule defines a module by renaming the identifiers of Base.
// OldNames[i] is renamed to NewNames[i].
type RenamedModule struct {
	base
	Name     string
	Base     string
	OldNames []string
	NewNames []string
}

func (*RenamedModule) Kind() Kind           { return KindRenamedModule }
func (*RenamedModule) moduleDefn()          {}
func (e *RenamedModule) ModuleName() string { return e.Name }
func (*RenamedModule) Children() []Node     { return nil }

func (e *RenamedModule) appendAttrs(b []byte) []byte {
	b = appendString(b, e.Name)
	b = appendString(b, e.Base)
	b = appendStrings(b, e.OldNames)
	return appendStrings(b, e.NewNames)
}

func (e *RenamedModule) CopyWith(Copier) (Node, error) {
	c := *e
	c.OldNames = cloneStrings(e.OldNames)
	c.NewNames = cloneStrings(e.NewNames)
	return &c, nil
}

// RewardStruct is a named collection of reward items.
type RewardStruct struct {
	base
	Name  string // Empty for the default structure
	Items []*RewardStructItem
}

func (*RewardStruct) Kind() Kind { return KindRewardStruct }

func (e *RewardStruct) Children() []Node { return appendNodes(nil, e.Items) }

func (e *RewardStruct) appendAttrs(b []byte) []byte {
	b = appendString(b, e.Name)
	return appendLen(b, len(e.Items))
}

func (e *RewardStruct) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Items, err = copyChildren(cp, e.Items); err != nil {
		return nil, err
	}
	return &c, nil
}

// RewardStructItem is "[action] states : reward;". Transition is true when
// the item is written with an action label (possibly empty).
type RewardStructItem struct {
	base
	Action     string
	Transition bool
	States     Expression
	Reward     Expression
}

func (*RewardStructItem) Kind() Kind { return KindRewardStructItem }

func (e *RewardStructItem) Children() []Node { return []Node{e.States, e.Reward} }

func (e *RewardStructItem) appendAttrs(b []byte) []byte {
	b = appendString(b, e.Action)
	return appendBool(b, e.Transition)
}

func (e *RewardStructItem) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.States, err = copyChild(cp, e.States); err != nil {
		return nil, err
	}
	if c.Reward, err = copyChild(cp, e.Reward); err != nil {
		return nil, err
	}
	return &c, nil
}

// ObservableVars lists the variables observable in a partially observable
// model.
type ObservableVars struct {
	base
	Vars []Expression
}

func (*ObservableVars) Kind() Kind { return KindObservableVars }

func (e *ObservableVars) Children() []Node { return appendNodes(nil, e.Vars) }

func (e *ObservableVars) appendAttrs(b []byte) []byte { return appendLen(b, len(e.Vars)) }

func (e *ObservableVars) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Vars, err = copyChildren(cp, e.Vars); err != nil {
		return nil, err
	}
	return &c, nil
}

// Observable is a named observation "observable name = definition;".
type Observable struct {
	base
	Name       string
	Definition Expression
}

func (*Observable) Kind() Kind { return KindObservable }

func (e *Observable) Children() []Node { return []Node{e.Definition} }

func (e *Observable) appendAttrs(b []byte) []byte { return appendString(b, e.Name) }

func (e *Observable) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Definition, err = copyChild(cp, e.Definition); err != nil {
		return nil, err
	}
	return &c, nil
}
