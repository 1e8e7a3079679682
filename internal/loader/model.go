package loader

import (
	"github.com/roach88/modelir/internal/ast"
)

var modelTypes = map[string]ast.ModelType{
	"dtmc":  ast.ModelDTMC,
	"ctmc":  ast.ModelCTMC,
	"mdp":   ast.ModelMDP,
	"pta":   ast.ModelPTA,
	"pomdp": ast.ModelPOMDP,
	"popta": ast.ModelPOPTA,
	"lts":   ast.ModelLTS,
	"smg":   ast.ModelSMG,
}

// buildModel builds a ModulesFile from a model document.
//
// Names are declared before any expression is built: constants first, then
// formulas, labels and observables, then the state variables in index
// order. Declaration types and initial values are built before the state
// variables exist and so may only use constants.
func (b *builder) buildModel(root *doc) (*ast.ModulesFile, error) {
	if err := b.fields(root, "type", "constants", "formulas", "labels", "globals",
		"modules", "system", "rewards", "init", "observables", "observe"); err != nil {
		return nil, err
	}
	mf := &ast.ModulesFile{}
	mf.Pos = root.pos

	td := root.field("type")
	if td == nil || td.kind != docString {
		return nil, errorf(ErrCodeSchema, b.pos(td), "missing model type")
	}
	mt, ok := modelTypes[td.str]
	if !ok {
		return nil, errorf(ErrCodeSchema, b.pos(td), "model type must be one of dtmc, ctmc, mdp, pta, pomdp, popta, lts, smg")
	}
	mf.ModelType = mt

	var err error
	if mf.Constants, err = b.constants(root.field("constants")); err != nil {
		return nil, err
	}

	moduleDocs, err := b.seq(root.field("modules"), "modules")
	if err != nil {
		return nil, err
	}
	if mf.Globals, err = b.declarations(root.field("globals")); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, md := range moduleDocs {
		m, err := b.moduleHeader(md)
		if err != nil {
			return nil, err
		}
		if seen[m.ModuleName()] {
			return nil, errorf(ErrCodeDuplicate, md.pos, "module %q already declared", m.ModuleName())
		}
		seen[m.ModuleName()] = true
		mf.Modules = append(mf.Modules, m)
	}
	slots, err := stateVars(mf.Globals, mf.Modules)
	if err != nil {
		return nil, err
	}
	for i, v := range slots {
		if err := b.scope.declare(v.name, &symbol{kind: symVar, typ: v.typ, index: i, pos: v.pos}); err != nil {
			return nil, err
		}
	}

	obsNames, obsDefs, err := b.namedExprs(root.field("observables"), "observables")
	if err != nil {
		return nil, err
	}
	obsSyms := make([]*symbol, len(obsNames))
	for i, name := range obsNames {
		obsSyms[i] = &symbol{kind: symObservable, index: i, pos: b.pos(obsDefs[i])}
		if err := b.scope.declare(name, obsSyms[i]); err != nil {
			return nil, err
		}
	}
	labelNames, labelDefs, err := b.declareLabels(root.field("labels"))
	if err != nil {
		return nil, err
	}
	if mf.Formulas, err = b.formulas(root.field("formulas")); err != nil {
		return nil, err
	}
	if mf.Labels, err = b.labels(root.field("labels"), labelNames, labelDefs); err != nil {
		return nil, err
	}
	for i, name := range obsNames {
		def, err := b.expr(obsDefs[i])
		if err != nil {
			return nil, err
		}
		obsSyms[i].typ = def.ExprType()
		o := &ast.Observable{Name: name, Definition: def}
		o.Pos = b.pos(obsDefs[i])
		mf.Observables = append(mf.Observables, o)
	}

	for i, md := range moduleDocs {
		if m, ok := mf.Modules[i].(*ast.Module); ok {
			if err := b.moduleBody(md, m); err != nil {
				return nil, err
			}
		}
	}

	if sd := root.field("system"); !sd.isNull() {
		if mf.System, err = b.system(sd, seen); err != nil {
			return nil, err
		}
	}
	if mf.Rewards, err = b.rewards(root.field("rewards")); err != nil {
		return nil, err
	}
	if init := root.field("init"); !init.isNull() {
		if mf.Init, err = b.typed(init, ast.TypeBool); err != nil {
			return nil, err
		}
	}
	if od := root.field("observe"); !od.isNull() {
		ov := &ast.ObservableVars{}
		ov.Pos = od.pos
		for _, it := range od.list() {
			v, err := b.expr(it)
			if err != nil {
				return nil, err
			}
			if _, ok := v.(*ast.Var); !ok {
				return nil, errorf(ErrCodeType, it.pos, "only state variables can be observed")
			}
			ov.Vars = append(ov.Vars, v)
		}
		mf.ObservableVars = []*ast.ObservableVars{ov}
	}
	return mf, nil
}

// moduleHeader reads a module's name and variables, or a renamed module.
func (b *builder) moduleHeader(d *doc) (ast.ModuleDefn, error) {
	if rd := d.field("rename"); rd != nil {
		if err := b.fields(d, "name", "rename", "map"); err != nil {
			return nil, err
		}
		name, err := b.name(d.field("name"), "module")
		if err != nil {
			return nil, err
		}
		base, err := b.name(rd, "module")
		if err != nil {
			return nil, err
		}
		m := &ast.RenamedModule{Name: name, Base: base}
		m.Pos = d.pos
		md := d.field("map")
		if md == nil || md.kind != docMap {
			return nil, errorf(ErrCodeSchema, b.pos(d), "renamed module %q needs a map of renamings", name)
		}
		for i, old := range md.keys {
			renamed, err := b.name(md.items[i], "renamed")
			if err != nil {
				return nil, err
			}
			m.OldNames = append(m.OldNames, ident(old))
			m.NewNames = append(m.NewNames, renamed)
		}
		return m, nil
	}

	if err := b.fields(d, "name", "variables", "commands", "invariant"); err != nil {
		return nil, err
	}
	name, err := b.name(d.field("name"), "module")
	if err != nil {
		return nil, err
	}
	m := &ast.Module{Name: name}
	m.Pos = d.pos
	if m.Decls, err = b.declarations(d.field("variables")); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *builder) moduleBody(d *doc, m *ast.Module) error {
	items, err := b.seq(d.field("commands"), "commands")
	if err != nil {
		return err
	}
	for _, it := range items {
		c, err := b.command(it)
		if err != nil {
			return err
		}
		m.Commands = append(m.Commands, c)
	}
	if inv := d.field("invariant"); !inv.isNull() {
		if m.Invariant, err = b.typed(inv, ast.TypeBool); err != nil {
			return err
		}
	}
	return nil
}

// command reads {action, guard, updates}. Without updates the command
// leaves the state unchanged.
func (b *builder) command(d *doc) (*ast.Command, error) {
	if err := b.fields(d, "action", "guard", "updates"); err != nil {
		return nil, err
	}
	c := &ast.Command{}
	c.Pos = d.pos
	var err error
	if c.Action, err = b.text(d.field("action")); err != nil {
		return nil, err
	}
	c.Action = ident(c.Action)
	if c.Guard, err = b.typed(d.field("guard"), ast.TypeBool); err != nil {
		return nil, err
	}

	ups := &ast.Updates{}
	ups.Pos = b.pos(d.field("updates"))
	items, err := b.seq(d.field("updates"), "updates")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		ups.Probs = []ast.Expression{nil}
		ups.Items = []*ast.Update{{}}
	}
	for _, it := range items {
		if err := b.fields(it, "prob", "assign"); err != nil {
			return nil, err
		}
		prob, err := b.optExpr(it.field("prob"))
		if err != nil {
			return nil, err
		}
		u, err := b.update(it.field("assign"))
		if err != nil {
			return nil, err
		}
		u.Pos = it.pos
		ups.Probs = append(ups.Probs, prob)
		ups.Items = append(ups.Items, u)
	}
	c.Updates = ups
	return c, nil
}

// update reads {var: expr, ...}. An absent or empty map is the "true"
// update.
func (b *builder) update(d *doc) (*ast.Update, error) {
	u := &ast.Update{}
	if d.isNull() {
		return u, nil
	}
	if d.kind != docMap {
		return nil, errorf(ErrCodeSchema, d.pos, "assign must map variables to expressions")
	}
	for i, key := range d.keys {
		name := ident(key)
		sym, ok := b.scope.names[name]
		if !ok || sym.kind != symVar {
			return nil, errorf(ErrCodeUndefined, d.items[i].pos, "assignment to unknown variable %q", name)
		}
		e, err := b.expr(d.items[i])
		if err != nil {
			return nil, err
		}
		target := ast.NewIdent(name)
		target.Pos = d.items[i].pos
		el := &ast.UpdateElement{Var: target, Expr: e}
		el.Pos = d.items[i].pos
		u.Elements = append(u.Elements, el)
	}
	return u, nil
}

// system reads a composition:
//
//	counter                                module name
//	{interleave: [a, b]}                   a ||| b
//	{full: [a, b]}                         a || b
//	{sync: [a, b], on: [x, y]}             a |[x,y]| b
//	{hide: a, actions: [x]}                a / {x}
//	{rename: a, map: {x: y}}               a {x<-y}
//	{group: a}                             (a)
//	{ref: name}                            reference to a named system
func (b *builder) system(d *doc, modules map[string]bool) (ast.SystemDefn, error) {
	if d.isNull() {
		return nil, errorf(ErrCodeSchema, b.pos(d), "missing system operand")
	}
	if d.kind == docString {
		name := ident(d.str)
		if !modules[name] {
			return nil, errorf(ErrCodeUndefined, d.pos, "system refers to unknown module %q", name)
		}
		s := &ast.SystemModule{Name: name}
		s.Pos = d.pos
		return s, nil
	}
	if d.kind != docMap || len(d.keys) == 0 {
		return nil, errorf(ErrCodeSchema, b.pos(d), "expected a system composition")
	}

	operands := func(od *doc) ([]ast.SystemDefn, error) {
		var out []ast.SystemDefn
		for _, it := range od.list() {
			s, err := b.system(it, modules)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	actions := func(ad *doc) ([]string, error) {
		var out []string
		for _, it := range ad.list() {
			a, err := b.name(it, "action")
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	}

	switch d.keys[0] {
	case "interleave", "full":
		if err := b.fields(d, d.keys[0]); err != nil {
			return nil, err
		}
		ops, err := operands(d.items[0])
		if err != nil {
			return nil, err
		}
		if d.keys[0] == "full" {
			s := &ast.SystemFullParallel{Operands: ops}
			s.Pos = d.pos
			return s, nil
		}
		s := &ast.SystemInterleaved{Operands: ops}
		s.Pos = d.pos
		return s, nil
	case "sync":
		if err := b.fields(d, "sync", "on"); err != nil {
			return nil, err
		}
		ops, err := operands(d.field("sync"))
		if err != nil {
			return nil, err
		}
		if len(ops) != 2 {
			return nil, errorf(ErrCodeSchema, d.pos, "sync composes exactly two systems")
		}
		acts, err := actions(d.field("on"))
		if err != nil {
			return nil, err
		}
		s := &ast.SystemParallel{Left: ops[0], Right: ops[1], Actions: acts}
		s.Pos = d.pos
		return s, nil
	case "hide":
		if err := b.fields(d, "hide", "actions"); err != nil {
			return nil, err
		}
		op, err := b.system(d.field("hide"), modules)
		if err != nil {
			return nil, err
		}
		acts, err := actions(d.field("actions"))
		if err != nil {
			return nil, err
		}
		s := &ast.SystemHide{Operand: op, Actions: acts}
		s.Pos = d.pos
		return s, nil
	case "rename":
		if err := b.fields(d, "rename", "map"); err != nil {
			return nil, err
		}
		op, err := b.system(d.field("rename"), modules)
		if err != nil {
			return nil, err
		}
		s := &ast.SystemRename{Operand: op}
		s.Pos = d.pos
		md := d.field("map")
		if md == nil || md.kind != docMap {
			return nil, errorf(ErrCodeSchema, d.pos, "rename needs a map of actions")
		}
		for i, from := range md.keys {
			to, err := b.name(md.items[i], "action")
			if err != nil {
				return nil, err
			}
			s.From = append(s.From, ident(from))
			s.To = append(s.To, to)
		}
		return s, nil
	case "group":
		if err := b.fields(d, "group"); err != nil {
			return nil, err
		}
		op, err := b.system(d.items[0], modules)
		if err != nil {
			return nil, err
		}
		s := &ast.SystemBrackets{Operand: op}
		s.Pos = d.pos
		return s, nil
	case "ref":
		if err := b.fields(d, "ref"); err != nil {
			return nil, err
		}
		name, err := b.name(d.items[0], "system")
		if err != nil {
			return nil, err
		}
		s := &ast.SystemReference{Name: name}
		s.Pos = d.pos
		return s, nil
	default:
		return nil, errorf(ErrCodeSchema, d.pos, "unknown system operator %q", d.keys[0])
	}
}

// rewards reads [{name, items: [{action, states, reward}]}]. An item with
// an "action" key, even an empty one, is a transition reward.
func (b *builder) rewards(d *doc) ([]*ast.RewardStruct, error) {
	items, err := b.seq(d, "rewards")
	if err != nil {
		return nil, err
	}
	var out []*ast.RewardStruct
	for _, it := range items {
		if err := b.fields(it, "name", "items"); err != nil {
			return nil, err
		}
		rs := &ast.RewardStruct{}
		rs.Pos = it.pos
		if nd := it.field("name"); !nd.isNull() {
			if rs.Name, err = b.name(nd, "reward structure"); err != nil {
				return nil, err
			}
			if err := b.scope.declareIn(b.scope.rewards, "reward structure", rs.Name, nd.pos); err != nil {
				return nil, err
			}
		}
		entries, err := b.seq(it.field("items"), "reward items")
		if err != nil {
			return nil, err
		}
		for _, en := range entries {
			item, err := b.rewardItem(en)
			if err != nil {
				return nil, err
			}
			rs.Items = append(rs.Items, item)
		}
		out = append(out, rs)
	}
	return out, nil
}

func (b *builder) rewardItem(d *doc) (*ast.RewardStructItem, error) {
	if err := b.fields(d, "action", "states", "reward"); err != nil {
		return nil, err
	}
	item := &ast.RewardStructItem{}
	item.Pos = d.pos
	var err error
	if ad := d.field("action"); ad != nil {
		item.Transition = true
		if item.Action, err = b.text(ad); err != nil {
			return nil, err
		}
		item.Action = ident(item.Action)
	}
	if item.States, err = b.typed(d.field("states"), ast.TypeBool); err != nil {
		return nil, err
	}
	if item.Reward, err = b.numeric(d.field("reward")); err != nil {
		return nil, err
	}
	return item, nil
}

// buildProperties builds a PropertiesFile. Property names are declared
// before any property is built so properties may refer to each other.
func (b *builder) buildProperties(root *doc) (*ast.PropertiesFile, error) {
	if err := b.fields(root, "constants", "formulas", "labels", "properties"); err != nil {
		return nil, err
	}
	pf := &ast.PropertiesFile{}
	pf.Pos = root.pos

	var err error
	if pf.Constants, err = b.constants(root.field("constants")); err != nil {
		return nil, err
	}
	labelNames, labelDefs, err := b.declareLabels(root.field("labels"))
	if err != nil {
		return nil, err
	}
	if pf.Formulas, err = b.formulas(root.field("formulas")); err != nil {
		return nil, err
	}
	if pf.Labels, err = b.labels(root.field("labels"), labelNames, labelDefs); err != nil {
		return nil, err
	}

	items, err := b.seq(root.field("properties"), "properties")
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := b.fields(it, "name", "expr", "comment"); err != nil {
			return nil, err
		}
		if nd := it.field("name"); !nd.isNull() {
			name, err := b.name(nd, "property")
			if err != nil {
				return nil, err
			}
			if err := b.scope.declareIn(b.scope.props, "property", name, nd.pos); err != nil {
				return nil, err
			}
		}
	}
	for _, it := range items {
		p := &ast.Property{}
		p.Pos = it.pos
		if nd := it.field("name"); !nd.isNull() {
			p.Name = ident(nd.str)
		}
		if p.Comment, err = b.text(it.field("comment")); err != nil {
			return nil, err
		}
		if p.Expr, err = b.expr(it.field("expr")); err != nil {
			return nil, err
		}
		pf.Properties = append(pf.Properties, p)
	}
	return pf, nil
}
