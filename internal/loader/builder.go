package loader

import (
	"sort"
	"strings"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

type builder struct {
	file  string
	scope *scope
}

func (b *builder) pos(d *doc) ast.Position {
	if d == nil {
		return ast.Position{File: b.file}
	}
	return d.pos
}

// fields rejects keys of d outside allowed.
func (b *builder) fields(d *doc, allowed ...string) error {
	if d.isNull() {
		return errorf(ErrCodeSchema, b.pos(d), "expected a map")
	}
	if d.kind != docMap {
		return errorf(ErrCodeSchema, d.pos, "expected a map, got a %s", d.kind)
	}
	for i, k := range d.keys {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			sorted := append([]string(nil), allowed...)
			sort.Strings(sorted)
			return errorf(ErrCodeSchema, d.items[i].pos, "unknown key %q (expected one of %s)", k, strings.Join(sorted, ", "))
		}
	}
	return nil
}

func (b *builder) name(d *doc, what string) (string, error) {
	if d == nil || d.kind != docString || d.str == "" {
		return "", errorf(ErrCodeSchema, b.pos(d), "%s name must be a non-empty string", what)
	}
	return ident(d.str), nil
}

func (b *builder) text(d *doc) (string, error) {
	if d.isNull() {
		return "", nil
	}
	if d.kind != docString {
		return "", errorf(ErrCodeSchema, d.pos, "expected a string, got a %s", d.kind)
	}
	return d.str, nil
}

func (b *builder) flag(d *doc) (bool, error) {
	if d.isNull() {
		return false, nil
	}
	if v, ok := d.val.(value.Bool); ok && d.kind == docScalar {
		return bool(v), nil
	}
	return false, errorf(ErrCodeSchema, d.pos, "expected true or false")
}

func (b *builder) seq(d *doc, what string) ([]*doc, error) {
	if d.isNull() {
		return nil, nil
	}
	if d.kind != docList {
		return nil, errorf(ErrCodeSchema, d.pos, "%s must be a list", what)
	}
	return d.items, nil
}

var typeNames = map[string]ast.Type{
	"bool":   ast.TypeBool,
	"int":    ast.TypeInt,
	"double": ast.TypeDouble,
}

// constants declares every constant of the list before building any value,
// so definitions may refer to each other in any order.
func (b *builder) constants(d *doc) (*ast.ConstantList, error) {
	items, err := b.seq(d, "constants")
	if err != nil || items == nil {
		return nil, err
	}
	cl := &ast.ConstantList{}
	cl.Pos = d.pos
	for _, it := range items {
		if err := b.fields(it, "name", "type", "value"); err != nil {
			return nil, err
		}
		name, err := b.name(it.field("name"), "constant")
		if err != nil {
			return nil, err
		}
		t := ast.TypeInt
		if td := it.field("type"); !td.isNull() {
			var ok bool
			if t, ok = typeNames[td.str]; !ok || td.kind != docString {
				return nil, errorf(ErrCodeType, td.pos, "unknown constant type for %q", name)
			}
		}
		if err := b.scope.declare(name, &symbol{kind: symConstant, typ: t, pos: it.pos}); err != nil {
			return nil, err
		}
		cl.Names = append(cl.Names, name)
		cl.Types = append(cl.Types, t)
	}
	for _, it := range items {
		v := it.field("value")
		if v.isNull() {
			cl.Constants = append(cl.Constants, nil)
			continue
		}
		e, err := b.expr(v)
		if err != nil {
			return nil, err
		}
		cl.Constants = append(cl.Constants, e)
	}
	return cl, nil
}

// declType reads "bool", "clock", "int" (unbounded) or one of
//
//	{int: [low, high]}
//	{array: [low, high], of: <type>}
func (b *builder) declType(d *doc) (ast.DeclType, error) {
	if d.isNull() {
		return nil, errorf(ErrCodeSchema, b.pos(d), "missing variable type")
	}
	if d.kind == docString {
		var t ast.DeclType
		switch d.str {
		case "bool":
			dt := &ast.DeclBool{}
			dt.Pos = d.pos
			t = dt
		case "clock":
			dt := &ast.DeclClock{}
			dt.Pos = d.pos
			t = dt
		case "int":
			dt := &ast.DeclIntUnbounded{}
			dt.Pos = d.pos
			t = dt
		default:
			return nil, errorf(ErrCodeType, d.pos, "unknown variable type %q", d.str)
		}
		return t, nil
	}

	if r := d.field("int"); r != nil {
		if err := b.fields(d, "int"); err != nil {
			return nil, err
		}
		lo, hi, err := b.bounds(r)
		if err != nil {
			return nil, err
		}
		dt := &ast.DeclInt{Low: lo, High: hi}
		dt.Pos = d.pos
		return dt, nil
	}
	if err := b.fields(d, "array", "of"); err != nil {
		return nil, err
	}
	lo, hi, err := b.bounds(d.field("array"))
	if err != nil {
		return nil, err
	}
	sub, err := b.declType(d.field("of"))
	if err != nil {
		return nil, err
	}
	dt := &ast.DeclArray{Low: lo, High: hi, Sub: sub}
	dt.Pos = d.pos
	return dt, nil
}

func (b *builder) bounds(d *doc) (ast.Expression, ast.Expression, error) {
	items, err := b.operands(d, 2, 2)
	if err != nil {
		return nil, nil, err
	}
	lo, err := b.typed(items[0], ast.TypeInt)
	if err != nil {
		return nil, nil, err
	}
	hi, err := b.typed(items[1], ast.TypeInt)
	if err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

// declarations reads variable declarations. Their types and initial values
// may only refer to constants.
func (b *builder) declarations(d *doc) ([]*ast.Declaration, error) {
	items, err := b.seq(d, "variables")
	if err != nil {
		return nil, err
	}
	var decls []*ast.Declaration
	for _, it := range items {
		if err := b.fields(it, "name", "type", "init"); err != nil {
			return nil, err
		}
		name, err := b.name(it.field("name"), "variable")
		if err != nil {
			return nil, err
		}
		dt, err := b.declType(it.field("type"))
		if err != nil {
			return nil, err
		}
		decl := &ast.Declaration{Name: name, DeclType: dt}
		decl.Pos = it.pos
		if init := it.field("init"); !init.isNull() {
			if decl.Start, err = b.expr(init); err != nil {
				return nil, err
			}
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// namedExprs reads a list of {name, expr} entries.
func (b *builder) namedExprs(d *doc, what string) ([]string, []*doc, error) {
	items, err := b.seq(d, what)
	if err != nil {
		return nil, nil, err
	}
	var names []string
	var defs []*doc
	for _, it := range items {
		if err := b.fields(it, "name", "expr"); err != nil {
			return nil, nil, err
		}
		name, err := b.name(it.field("name"), what)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		defs = append(defs, it.field("expr"))
	}
	return names, defs, nil
}

// formulas declares every formula first; a formula's type is known to
// references built after its definition.
func (b *builder) formulas(d *doc) (*ast.FormulaList, error) {
	names, defs, err := b.namedExprs(d, "formulas")
	if err != nil || names == nil {
		return nil, err
	}
	syms := make([]*symbol, len(names))
	for i, name := range names {
		syms[i] = &symbol{kind: symFormula, pos: b.pos(defs[i])}
		if err := b.scope.declare(name, syms[i]); err != nil {
			return nil, err
		}
	}
	fl := &ast.FormulaList{Names: names}
	fl.Pos = d.pos
	for i, def := range defs {
		e, err := b.expr(def)
		if err != nil {
			return nil, err
		}
		syms[i].typ = e.ExprType()
		fl.Formulas = append(fl.Formulas, e)
	}
	return fl, nil
}

func (b *builder) declareLabels(d *doc) ([]string, []*doc, error) {
	names, defs, err := b.namedExprs(d, "labels")
	if err != nil {
		return nil, nil, err
	}
	for i, name := range names {
		if err := b.scope.declareIn(b.scope.labels, "label", name, b.pos(defs[i])); err != nil {
			return nil, nil, err
		}
	}
	return names, defs, nil
}

func (b *builder) labels(d *doc, names []string, defs []*doc) (*ast.LabelList, error) {
	if names == nil {
		return nil, nil
	}
	ll := &ast.LabelList{Names: names}
	ll.Pos = d.pos
	for _, def := range defs {
		e, err := b.typed(def, ast.TypeBool)
		if err != nil {
			return nil, err
		}
		ll.Labels = append(ll.Labels, e)
	}
	return ll, nil
}
