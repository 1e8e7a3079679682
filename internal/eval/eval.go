package eval

import (
	"math"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/traverse"
	"github.com/roach88/modelir/internal/value"
)

// Evaluate computes the value of e in ctx. If ctx also implements Cache,
// every sub-expression result is fetched from and stored into it.
func Evaluate(e ast.Expression, ctx Context) (value.Value, error) {
	ev := &evaluator{ctx: ctx}
	ev.Uniform = notEvaluable
	if c, ok := ctx.(Cache); ok {
		ev.cache = c
	}
	return ev.eval(e)
}

// EvaluateBool evaluates e and requires a boolean result.
func EvaluateBool(e ast.Expression, ctx Context) (bool, error) {
	v, err := Evaluate(e, ctx)
	if err != nil {
		return false, err
	}
	b, err := value.AsBool(v)
	if err != nil {
		return false, ast.Errorf(ast.CodeTypeMismatch, e.Position(), "%v", err)
	}
	return b, nil
}

// EvaluateInt evaluates e and requires an integer result.
func EvaluateInt(e ast.Expression, ctx Context) (int64, error) {
	v, err := Evaluate(e, ctx)
	if err != nil {
		return 0, err
	}
	i, err := value.AsInt(v)
	if err != nil {
		return 0, ast.Errorf(ast.CodeTypeMismatch, e.Position(), "%v", err)
	}
	return i, nil
}

// EvaluateDouble evaluates e and requires a numeric result.
func EvaluateDouble(e ast.Expression, ctx Context) (float64, error) {
	v, err := Evaluate(e, ctx)
	if err != nil {
		return 0, err
	}
	d, err := value.AsDouble(v)
	if err != nil {
		return 0, ast.Errorf(ast.CodeTypeMismatch, e.Position(), "%v", err)
	}
	return d, nil
}

func notEvaluable(n ast.Node) (value.Value, error) {
	return nil, ast.Errorf(ast.CodeNotEvaluable, n.Position(), "%s cannot be evaluated in a single state", n.Kind())
}

// evaluator handles the state-determined expression kinds; every other kind
// falls through to the embedded default.
type evaluator struct {
	traverse.Uniform[value.Value]
	ctx   Context
	cache Cache
}

func (ev *evaluator) eval(e ast.Expression) (value.Value, error) {
	if ast.IsNil(e) {
		return nil, ast.Errorf(ast.CodeInvalidNode, ast.Position{}, "missing operand")
	}
	if ev.cache != nil {
		if v, ok := ev.cache.FetchResult(e); ok {
			return v, nil
		}
	}
	v, err := ast.Dispatch[value.Value](e, ev)
	if err != nil {
		return nil, err
	}
	if ev.cache != nil {
		ev.cache.StoreResult(e, v)
	}
	return v, nil
}

func (ev *evaluator) bool(e ast.Expression) (bool, error) {
	v, err := ev.eval(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, ast.Errorf(ast.CodeTypeMismatch, e.Position(), "expected bool, got %s", value.TypeName(v))
	}
	return bool(b), nil
}

func (ev *evaluator) number(e ast.Expression) (value.Value, error) {
	v, err := ev.eval(e)
	if err != nil {
		return nil, err
	}
	if !value.IsNumeric(v) {
		return nil, ast.Errorf(ast.CodeTypeMismatch, e.Position(), "expected number, got %s", value.TypeName(v))
	}
	return v, nil
}

func (ev *evaluator) VisitLiteral(e *ast.Literal) (value.Value, error) {
	if e.Value == nil {
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "literal without value")
	}
	return e.Value, nil
}

func (ev *evaluator) VisitConstantRef(e *ast.ConstantRef) (value.Value, error) {
	v, ok := ev.ctx.ConstantValue(e.Name)
	if !ok {
		return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "constant %q is undefined", e.Name)
	}
	return v, nil
}

func (ev *evaluator) VisitVar(e *ast.Var) (value.Value, error) {
	v, ok := ev.ctx.VarValue(e.Name, e.Index)
	if !ok {
		return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "variable %q (index %d) has no value", e.Name, e.Index)
	}
	return v, nil
}

func (ev *evaluator) VisitObsRef(e *ast.ObsRef) (value.Value, error) {
	v, ok := ev.ctx.ObservableValue(e.Name, e.Index)
	if !ok {
		return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "observable %q (index %d) has no value", e.Name, e.Index)
	}
	return v, nil
}

func (ev *evaluator) VisitLabelRef(e *ast.LabelRef) (value.Value, error) {
	if in, ok := ev.ctx.LabelValue(e.Name); ok {
		return value.Bool(in), nil
	}
	switch e.Name {
	case "init", "deadlock":
		return nil, ast.Errorf(ast.CodeNotEvaluable, e.Pos, "built-in label %q depends on the state space", e.Name)
	}
	def, ok := ev.ctx.LabelExpr(e.Name)
	if !ok || def == nil {
		return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "label %q is undefined", e.Name)
	}
	return ev.eval(def)
}

func (ev *evaluator) VisitFormulaRef(e *ast.FormulaRef) (value.Value, error) {
	if e.Definition == nil {
		return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "formula %q has not been expanded", e.Name)
	}
	return ev.eval(e.Definition)
}

func (ev *evaluator) VisitIdent(e *ast.Ident) (value.Value, error) {
	return nil, ast.Errorf(ast.CodeUndefined, e.Pos, "unresolved identifier %q", e.Name)
}

func (ev *evaluator) VisitUnaryOp(e *ast.UnaryOp) (value.Value, error) {
	switch e.Op {
	case ast.OpNot:
		b, err := ev.bool(e.Operand)
		if err != nil {
			return nil, err
		}
		return value.Bool(!b), nil
	case ast.OpNeg:
		v, err := ev.number(e.Operand)
		if err != nil {
			return nil, err
		}
		if i, ok := v.(value.Int); ok {
			if i == math.MinInt64 {
				return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "integer overflow")
			}
			return -i, nil
		}
		return -v.(value.Double), nil
	case ast.OpParenth:
		return ev.eval(e.Operand)
	default:
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "unknown unary operator %q", e.Op)
	}
}

func (ev *evaluator) VisitITE(e *ast.ITE) (value.Value, error) {
	c, err := ev.bool(e.Cond)
	if err != nil {
		return nil, err
	}
	if c {
		return ev.eval(e.Then)
	}
	return ev.eval(e.Else)
}

func (ev *evaluator) VisitBinaryOp(e *ast.BinaryOp) (value.Value, error) {
	switch {
	case e.Op.IsLogical():
		return ev.logical(e)
	case e.Op == ast.OpEq || e.Op == ast.OpNe:
		l, err := ev.eval(e.Left)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(e.Right)
		if err != nil {
			return nil, err
		}
		if _, lb := l.(value.Bool); lb != isBool(r) {
			return nil, ast.Errorf(ast.CodeTypeMismatch, e.Pos, "cannot compare %s with %s", value.TypeName(l), value.TypeName(r))
		}
		eq := value.Equal(l, r)
		return value.Bool(eq == (e.Op == ast.OpEq)), nil
	case e.Op.IsRelational():
		l, r, err := ev.operands(e)
		if err != nil {
			return nil, err
		}
		return compare(e.Op, l, r), nil
	case e.Op.IsArithmetic():
		l, r, err := ev.operands(e)
		if err != nil {
			return nil, err
		}
		return arithmetic(e, l, r)
	default:
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "unknown binary operator %q", e.Op)
	}
}

func isBool(v value.Value) bool {
	_, ok := v.(value.Bool)
	return ok
}

func (ev *evaluator) operands(e *ast.BinaryOp) (value.Value, value.Value, error) {
	l, err := ev.number(e.Left)
	if err != nil {
		return nil, nil, err
	}
	r, err := ev.number(e.Right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// logical short-circuits: the right operand is only evaluated when needed.
func (ev *evaluator) logical(e *ast.BinaryOp) (value.Value, error) {
	l, err := ev.bool(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpOr:
		if l {
			return value.Bool(true), nil
		}
	case ast.OpAnd:
		if !l {
			return value.Bool(false), nil
		}
	case ast.OpImplies:
		if !l {
			return value.Bool(true), nil
		}
	}
	r, err := ev.bool(e.Right)
	if err != nil {
		return nil, err
	}
	if e.Op == ast.OpIff {
		return value.Bool(l == r), nil
	}
	return value.Bool(r), nil
}

func compare(op ast.BinOp, l, r value.Value) value.Value {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if lok && rok {
		switch op {
		case ast.OpGt:
			return value.Bool(li > ri)
		case ast.OpGe:
			return value.Bool(li >= ri)
		case ast.OpLt:
			return value.Bool(li < ri)
		default:
			return value.Bool(li <= ri)
		}
	}
	ld, _ := value.AsDouble(l)
	rd, _ := value.AsDouble(r)
	switch op {
	case ast.OpGt:
		return value.Bool(ld > rd)
	case ast.OpGe:
		return value.Bool(ld >= rd)
	case ast.OpLt:
		return value.Bool(ld < rd)
	default:
		return value.Bool(ld <= rd)
	}
}

// arithmetic keeps integer operands integral except for division, which
// always produces a double.
func arithmetic(e *ast.BinaryOp, l, r value.Value) (value.Value, error) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if lok && rok && e.Op != ast.OpDivide {
		a, b := int64(li), int64(ri)
		var s int64
		overflow := false
		switch e.Op {
		case ast.OpPlus:
			s = a + b
			overflow = (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0)
		case ast.OpMinus:
			s = a - b
			overflow = (a >= 0 && b < 0 && s < 0) || (a < 0 && b > 0 && s >= 0)
		case ast.OpTimes:
			s = a * b
			overflow = a != 0 && (s/a != b || (a == -1 && b == math.MinInt64))
		}
		if overflow {
			return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "integer overflow in %d%s%d", a, e.Op, b)
		}
		return value.Int(s), nil
	}

	a, _ := value.AsDouble(l)
	b, _ := value.AsDouble(r)
	switch e.Op {
	case ast.OpPlus:
		return value.Double(a + b), nil
	case ast.OpMinus:
		return value.Double(a - b), nil
	case ast.OpTimes:
		return value.Double(a * b), nil
	default:
		return value.Double(a / b), nil
	}
}
