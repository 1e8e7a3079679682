package loader

import (
	"github.com/roach88/modelir/internal/ast"
)

var binaryOps = map[string]ast.BinOp{
	"=>":  ast.OpImplies,
	"<=>": ast.OpIff,
	"|":   ast.OpOr,
	"&":   ast.OpAnd,
	"=":   ast.OpEq,
	"!=":  ast.OpNe,
	">":   ast.OpGt,
	">=":  ast.OpGe,
	"<":   ast.OpLt,
	"<=":  ast.OpLe,
	"+":   ast.OpPlus,
	"-":   ast.OpMinus,
	"*":   ast.OpTimes,
	"/":   ast.OpDivide,
}

var temporalOps = map[string]ast.TemporalOp{
	"X": ast.TemporalNext,
	"U": ast.TemporalUntil,
	"F": ast.TemporalFinally,
	"G": ast.TemporalGlobally,
	"W": ast.TemporalWeakUntil,
	"R": ast.TemporalRelease,
	"C": ast.TemporalCumulative,
	"I": ast.TemporalInstant,
}

var relOps = map[string]ast.RelOp{
	"=?":    ast.RelQuery,
	"min=?": ast.RelMinQuery,
	"max=?": ast.RelMaxQuery,
	">":     ast.RelGt,
	">=":    ast.RelGe,
	"<":     ast.RelLt,
	"<=":    ast.RelLe,
}

var filterOps = map[string]ast.FilterOp{}

func init() {
	for _, op := range []ast.FilterOp{
		ast.FilterMin, ast.FilterMax, ast.FilterArgMin, ast.FilterArgMax,
		ast.FilterCount, ast.FilterSum, ast.FilterAvg, ast.FilterFirst,
		ast.FilterRange, ast.FilterForAll, ast.FilterExists, ast.FilterPrint,
		ast.FilterPrintAll, ast.FilterState,
	} {
		filterOps[string(op)] = op
	}
}

// expr builds the expression encoded by d.
func (b *builder) expr(d *doc) (ast.Expression, error) {
	switch {
	case d.isNull():
		return nil, errorf(ErrCodeSchema, b.pos(d), "missing expression")
	case d.kind == docScalar:
		lit := ast.NewLiteral(d.val)
		lit.Pos = d.pos
		return lit, nil
	case d.kind == docString:
		return b.ref(d)
	case d.kind == docList:
		return nil, errorf(ErrCodeSchema, d.pos, "expected an expression, got a list")
	}

	for i, k := range d.keys {
		// "R" with a map of options is the reward operator, not release.
		if k == "R" && d.items[i].kind == docMap {
			continue
		}
		if _, ok := temporalOps[k]; ok {
			return b.temporal(d, k)
		}
	}
	if len(d.keys) != 1 {
		return nil, errorf(ErrCodeSchema, d.pos, "operator maps must have exactly one key, got %d", len(d.keys))
	}
	key, arg := d.keys[0], d.items[0]

	if op, ok := binaryOps[key]; ok {
		return b.binary(d, op, arg)
	}
	if lo, _ := ast.FuncName(key).Arity(); lo > 0 {
		return b.function(d, ast.FuncName(key), arg)
	}

	switch key {
	case "!":
		operand, err := b.typed(arg, ast.TypeBool)
		if err != nil {
			return nil, err
		}
		e := ast.NewUnaryOp(ast.OpNot, operand)
		e.Pos = d.pos
		return e, nil
	case "neg":
		operand, err := b.numeric(arg)
		if err != nil {
			return nil, err
		}
		e := ast.NewUnaryOp(ast.OpNeg, operand)
		e.Pos = d.pos
		return e, nil
	case "ite":
		return b.ite(d, arg)
	case "label":
		return b.label(arg)
	case "prop":
		return b.prop(arg)
	case "P":
		return b.prob(arg)
	case "R":
		return b.reward(arg)
	case "S":
		return b.steady(arg)
	case "E", "A":
		return b.quantifier(d, key, arg)
	case "filter":
		return b.filterExpr(arg)
	case "strategy":
		return b.strategy(arg)
	default:
		return nil, errorf(ErrCodeSchema, d.pos, "unknown operator %q", key)
	}
}

func (b *builder) ref(d *doc) (ast.Expression, error) {
	name := ident(d.str)
	sym, ok := b.scope.names[name]
	if !ok {
		return nil, errorf(ErrCodeUndefined, d.pos, "undefined identifier %q", name)
	}
	var e ast.Expression
	switch sym.kind {
	case symVar:
		v := ast.NewVar(name, sym.index, sym.typ)
		v.Pos = d.pos
		e = v
	case symConstant:
		c := ast.NewConstantRef(name, sym.typ)
		c.Pos = d.pos
		e = c
	case symObservable:
		o := ast.NewObsRef(name, sym.index, sym.typ)
		o.Pos = d.pos
		e = o
	default:
		f := ast.NewFormulaRef(name, nil)
		f.Type = sym.typ
		f.Pos = d.pos
		e = f
	}
	return e, nil
}

// typed builds d and checks that its type, when known, is want.
func (b *builder) typed(d *doc, want ast.Type) (ast.Expression, error) {
	e, err := b.expr(d)
	if err != nil {
		return nil, err
	}
	if t := e.ExprType(); t != ast.TypeUnknown && t != want {
		return nil, errorf(ErrCodeType, b.pos(d), "expected %s expression, got %s", want, t)
	}
	return e, nil
}

// numeric builds d and checks that its type, when known, is a number.
func (b *builder) numeric(d *doc) (ast.Expression, error) {
	e, err := b.expr(d)
	if err != nil {
		return nil, err
	}
	if t := e.ExprType(); t != ast.TypeUnknown && !t.IsNumeric() {
		return nil, errorf(ErrCodeType, b.pos(d), "expected numeric expression, got %s", t)
	}
	return e, nil
}

func (b *builder) operands(d *doc, lo, hi int) ([]*doc, error) {
	items := d.list()
	if len(items) < lo || (hi >= 0 && len(items) > hi) {
		return nil, errorf(ErrCodeSchema, b.pos(d), "wrong number of operands: %d", len(items))
	}
	return items, nil
}

// binary folds the operand list to the left.
func (b *builder) binary(d *doc, op ast.BinOp, arg *doc) (ast.Expression, error) {
	items, err := b.operands(arg, 2, -1)
	if err != nil {
		return nil, err
	}
	check := b.numeric
	switch {
	case op.IsLogical():
		check = func(d *doc) (ast.Expression, error) { return b.typed(d, ast.TypeBool) }
	case op == ast.OpEq || op == ast.OpNe:
		check = b.expr
	}

	acc, err := check(items[0])
	if err != nil {
		return nil, err
	}
	for _, it := range items[1:] {
		r, err := check(it)
		if err != nil {
			return nil, err
		}
		e := ast.NewBinaryOp(op, acc, r)
		e.Pos = d.pos
		acc = e
	}
	return acc, nil
}

func (b *builder) function(d *doc, name ast.FuncName, arg *doc) (ast.Expression, error) {
	lo, hi := name.Arity()
	items, err := b.operands(arg, lo, hi)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expression, len(items))
	for i, it := range items {
		if args[i], err = b.numeric(it); err != nil {
			return nil, err
		}
	}
	e := ast.NewFunc(name, args...)
	e.Pos = d.pos
	return e, nil
}

func (b *builder) ite(d *doc, arg *doc) (ast.Expression, error) {
	items, err := b.operands(arg, 3, 3)
	if err != nil {
		return nil, err
	}
	cond, err := b.typed(items[0], ast.TypeBool)
	if err != nil {
		return nil, err
	}
	then, err := b.expr(items[1])
	if err != nil {
		return nil, err
	}
	els, err := b.expr(items[2])
	if err != nil {
		return nil, err
	}
	e := ast.NewITE(cond, then, els)
	e.Pos = d.pos
	return e, nil
}

func (b *builder) label(d *doc) (ast.Expression, error) {
	name, err := b.name(d, "label")
	if err != nil {
		return nil, err
	}
	if !b.scope.labels[name] {
		return nil, errorf(ErrCodeUndefined, d.pos, "undefined label %q", name)
	}
	e := ast.NewLabelRef(name)
	e.Pos = d.pos
	return e, nil
}

func (b *builder) prop(d *doc) (ast.Expression, error) {
	name, err := b.name(d, "property")
	if err != nil {
		return nil, err
	}
	if !b.scope.props[name] {
		return nil, errorf(ErrCodeUndefined, d.pos, "undefined property %q", name)
	}
	e := ast.NewPropRef(name)
	e.Pos = d.pos
	return e, nil
}

func (b *builder) optExpr(d *doc) (ast.Expression, error) {
	if d.isNull() {
		return nil, nil
	}
	return b.expr(d)
}

func (b *builder) temporal(d *doc, key string) (ast.Expression, error) {
	if err := b.fields(d, key, "lower", "upper", "lower_strict", "upper_strict"); err != nil {
		return nil, err
	}
	op := temporalOps[key]
	arg := d.field(key)
	e := &ast.Temporal{Op: op}
	e.Type = ast.TypeBool
	e.Pos = d.pos

	var err error
	switch {
	case op.IsBinary():
		items, err := b.operands(arg, 2, 2)
		if err != nil {
			return nil, err
		}
		if e.Left, err = b.expr(items[0]); err != nil {
			return nil, err
		}
		if e.Right, err = b.expr(items[1]); err != nil {
			return nil, err
		}
	case op == ast.TemporalCumulative || op == ast.TemporalInstant:
		// The operand, if any, is the time bound.
		if e.Upper, err = b.optExpr(arg); err != nil {
			return nil, err
		}
	default:
		if e.Right, err = b.expr(arg); err != nil {
			return nil, err
		}
	}

	if lower := d.field("lower"); !lower.isNull() {
		if e.Lower, err = b.numeric(lower); err != nil {
			return nil, err
		}
	}
	if upper := d.field("upper"); !upper.isNull() {
		if e.Upper, err = b.numeric(upper); err != nil {
			return nil, err
		}
	}
	if e.LowerStrict, err = b.flag(d.field("lower_strict")); err != nil {
		return nil, err
	}
	if e.UpperStrict, err = b.flag(d.field("upper_strict")); err != nil {
		return nil, err
	}
	return e, nil
}

// relation reads "op" and "bound". Comparisons need a bound and queries
// must not have one.
func (b *builder) relation(d *doc) (ast.RelOp, ast.Expression, error) {
	raw := d.field("op")
	if raw == nil || raw.kind != docString {
		return "", nil, errorf(ErrCodeSchema, d.pos, "missing relational operator \"op\"")
	}
	op, ok := relOps[raw.str]
	if !ok {
		return "", nil, errorf(ErrCodeSchema, raw.pos, "unknown relational operator %q", raw.str)
	}
	boundDoc := d.field("bound")
	if op.IsQuery() {
		if !boundDoc.isNull() {
			return "", nil, errorf(ErrCodeSchema, boundDoc.pos, "query %q takes no bound", op)
		}
		return op, nil, nil
	}
	if boundDoc.isNull() {
		return "", nil, errorf(ErrCodeSchema, d.pos, "operator %q needs a bound", op)
	}
	bound, err := b.numeric(boundDoc)
	if err != nil {
		return "", nil, err
	}
	return op, bound, nil
}

func resultType(op ast.RelOp) ast.Type {
	if op.IsQuery() {
		return ast.TypeDouble
	}
	return ast.TypeBool
}

func (b *builder) prob(d *doc) (ast.Expression, error) {
	if err := b.fields(d, "op", "bound", "path", "filter"); err != nil {
		return nil, err
	}
	op, bound, err := b.relation(d)
	if err != nil {
		return nil, err
	}
	path, err := b.expr(d.field("path"))
	if err != nil {
		return nil, err
	}
	e := ast.NewProb(op, bound, path)
	e.Pos = d.pos
	if e.Filter, err = b.filter(d.field("filter")); err != nil {
		return nil, err
	}
	return e, nil
}

func (b *builder) reward(d *doc) (ast.Expression, error) {
	if err := b.fields(d, "struct", "op", "bound", "path", "filter"); err != nil {
		return nil, err
	}
	op, bound, err := b.relation(d)
	if err != nil {
		return nil, err
	}
	e := &ast.Reward{RelOp: op, Bound: bound}
	e.Type = resultType(op)
	e.Pos = d.pos

	switch s := d.field("struct"); {
	case s.isNull():
	case s.kind == docString:
		name := ident(s.str)
		if !b.scope.rewards[name] {
			return nil, errorf(ErrCodeUndefined, s.pos, "undefined reward structure %q", name)
		}
		e.StructName = name
	default:
		if e.StructIndex, err = b.typed(s, ast.TypeInt); err != nil {
			return nil, err
		}
	}

	if e.Path, err = b.expr(d.field("path")); err != nil {
		return nil, err
	}
	if e.Filter, err = b.filter(d.field("filter")); err != nil {
		return nil, err
	}
	return e, nil
}

func (b *builder) steady(d *doc) (ast.Expression, error) {
	if err := b.fields(d, "op", "bound", "expr", "filter"); err != nil {
		return nil, err
	}
	op, bound, err := b.relation(d)
	if err != nil {
		return nil, err
	}
	e := &ast.SteadyState{RelOp: op, Bound: bound}
	e.Type = resultType(op)
	e.Pos = d.pos
	if e.Expr, err = b.expr(d.field("expr")); err != nil {
		return nil, err
	}
	if e.Filter, err = b.filter(d.field("filter")); err != nil {
		return nil, err
	}
	return e, nil
}

// filter reads the "{expr}", "{expr}{min}" style state filter of P, R and S.
func (b *builder) filter(d *doc) (*ast.Filter, error) {
	if d.isNull() {
		return nil, nil
	}
	if err := b.fields(d, "expr", "min", "max"); err != nil {
		return nil, err
	}
	f := &ast.Filter{}
	f.Pos = d.pos
	var err error
	if f.Expr, err = b.typed(d.field("expr"), ast.TypeBool); err != nil {
		return nil, err
	}
	if f.MinReq, err = b.flag(d.field("min")); err != nil {
		return nil, err
	}
	if f.MaxReq, err = b.flag(d.field("max")); err != nil {
		return nil, err
	}
	return f, nil
}

func (b *builder) quantifier(d *doc, key string, arg *doc) (ast.Expression, error) {
	path, err := b.expr(arg)
	if err != nil {
		return nil, err
	}
	if key == "E" {
		e := &ast.Exists{Path: path}
		e.Type = ast.TypeBool
		e.Pos = d.pos
		return e, nil
	}
	e := &ast.ForAll{Path: path}
	e.Type = ast.TypeBool
	e.Pos = d.pos
	return e, nil
}

func (b *builder) filterExpr(d *doc) (ast.Expression, error) {
	if err := b.fields(d, "op", "of", "states"); err != nil {
		return nil, err
	}
	raw := d.field("op")
	if raw == nil || raw.kind != docString {
		return nil, errorf(ErrCodeSchema, d.pos, "missing filter operator \"op\"")
	}
	op, ok := filterOps[raw.str]
	if !ok {
		return nil, errorf(ErrCodeSchema, raw.pos, "unknown filter operator %q", raw.str)
	}
	operand, err := b.expr(d.field("of"))
	if err != nil {
		return nil, err
	}
	e := &ast.FilterExpr{Op: op, Operand: operand}
	e.Pos = d.pos
	e.Type = filterType(op, operand)
	if states := d.field("states"); !states.isNull() {
		if e.States, err = b.typed(states, ast.TypeBool); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func filterType(op ast.FilterOp, operand ast.Expression) ast.Type {
	switch op {
	case ast.FilterForAll, ast.FilterExists, ast.FilterArgMin, ast.FilterArgMax:
		return ast.TypeBool
	case ast.FilterCount:
		return ast.TypeInt
	case ast.FilterAvg:
		return ast.TypeDouble
	default:
		return operand.ExprType()
	}
}

func (b *builder) strategy(d *doc) (ast.Expression, error) {
	if err := b.fields(d, "players", "universal", "of"); err != nil {
		return nil, err
	}
	e := &ast.Strategy{}
	e.Type = ast.TypeBool
	e.Pos = d.pos
	for _, p := range d.field("players").list() {
		name, err := b.name(p, "player")
		if err != nil {
			return nil, err
		}
		e.Coalition = append(e.Coalition, name)
	}
	var err error
	if e.Universal, err = b.flag(d.field("universal")); err != nil {
		return nil, err
	}
	for _, o := range d.field("of").list() {
		operand, err := b.expr(o)
		if err != nil {
			return nil, err
		}
		e.Operands = append(e.Operands, operand)
	}
	if len(e.Operands) == 0 {
		return nil, errorf(ErrCodeSchema, d.pos, "strategy operator needs an operand")
	}
	return e, nil
}
