package eval

import (
	"math"
	"strconv"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

func (ev *evaluator) VisitFunc(e *ast.Func) (value.Value, error) {
	lo, hi := e.Name.Arity()
	if lo == 0 && hi == 0 {
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "unknown function %q", e.Name)
	}
	if len(e.Args) < lo || (hi >= 0 && len(e.Args) > hi) {
		return nil, ast.Errorf(ast.CodeInvalidNode, e.Pos, "%s takes %s arguments, got %d", e.Name, arity(lo, hi), len(e.Args))
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ev.number(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch e.Name {
	case ast.FuncMin, ast.FuncMax:
		return extremum(e.Name == ast.FuncMax, args), nil
	case ast.FuncFloor, ast.FuncCeil, ast.FuncRound:
		return rounding(e, args[0])
	case ast.FuncPow:
		return pow(e, args[0], args[1])
	case ast.FuncMod:
		return mod(e, args[0], args[1])
	default:
		x, _ := value.AsDouble(args[0])
		b, _ := value.AsDouble(args[1])
		return value.Double(math.Log(x) / math.Log(b)), nil
	}
}

func arity(lo, hi int) string {
	switch {
	case hi < 0:
		return "at least " + strconv.Itoa(lo)
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + " to " + strconv.Itoa(hi)
	}
}

// extremum stays integral when every argument is an integer.
func extremum(isMax bool, args []value.Value) value.Value {
	allInt := true
	for _, a := range args {
		if _, ok := a.(value.Int); !ok {
			allInt = false
		}
	}
	if allInt {
		best := args[0].(value.Int)
		for _, a := range args[1:] {
			i := a.(value.Int)
			if (isMax && i > best) || (!isMax && i < best) {
				best = i
			}
		}
		return best
	}
	best, _ := value.AsDouble(args[0])
	for _, a := range args[1:] {
		d, _ := value.AsDouble(a)
		if (isMax && d > best) || (!isMax && d < best) {
			best = d
		}
	}
	return value.Double(best)
}

func rounding(e *ast.Func, v value.Value) (value.Value, error) {
	if i, ok := v.(value.Int); ok {
		return i, nil
	}
	d, _ := value.AsDouble(v)
	var r float64
	switch e.Name {
	case ast.FuncFloor:
		r = math.Floor(d)
	case ast.FuncCeil:
		r = math.Ceil(d)
	default:
		r = math.Floor(d + 0.5)
	}
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "%s(%v) is not representable as an integer", e.Name, d)
	}
	return value.Int(int64(r)), nil
}

func pow(e *ast.Func, base, exp value.Value) (value.Value, error) {
	bi, bok := base.(value.Int)
	ei, eok := exp.(value.Int)
	if !bok || !eok {
		b, _ := value.AsDouble(base)
		x, _ := value.AsDouble(exp)
		return value.Double(math.Pow(b, x)), nil
	}
	if ei < 0 {
		return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "negative exponent %d in integer pow", ei)
	}
	switch {
	case ei == 0 || bi == 1:
		return value.Int(1), nil
	case bi == 0:
		return value.Int(0), nil
	case bi == -1:
		if ei%2 == 0 {
			return value.Int(1), nil
		}
		return value.Int(-1), nil
	}
	result := int64(1)
	b := int64(bi)
	for n := int64(ei); n > 0; n-- {
		next := result * b
		if next/b != result {
			return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "integer overflow in pow(%d,%d)", bi, ei)
		}
		result = next
	}
	return value.Int(result), nil
}

// mod returns a non-negative remainder for a positive divisor.
func mod(e *ast.Func, a, b value.Value) (value.Value, error) {
	ai, aok := a.(value.Int)
	bi, bok := b.(value.Int)
	if !aok || !bok {
		return nil, ast.Errorf(ast.CodeTypeMismatch, e.Pos, "mod requires integer arguments, got %s and %s", value.TypeName(a), value.TypeName(b))
	}
	if bi == 0 {
		return nil, ast.Errorf(ast.CodeArithmetic, e.Pos, "modulo by zero")
	}
	r := ai % bi
	if r < 0 {
		if bi > 0 {
			r += bi
		} else {
			r -= bi
		}
	}
	return r, nil
}
