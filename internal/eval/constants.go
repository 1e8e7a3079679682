package eval

import (
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

// EvaluateConstants computes the value of every constant in cl. Undefined
// constants take their value from given; definitions may refer to other
// constants in any order, and to given constants cl does not declare.
// Integer values are widened for double constants.
func EvaluateConstants(cl *ast.ConstantList, given *Values) (*Values, error) {
	result := NewValues()
	if cl == nil {
		return result, nil
	}

	declared := make(map[string]bool, len(cl.Names))
	for _, name := range cl.Names {
		declared[name] = true
	}
	env := NewValues()
	for _, name := range given.Names() {
		if !declared[name] {
			v, _ := given.Get(name)
			env.Set(name, v)
		}
	}

	pending := make([]int, 0, len(cl.Names))
	for i, name := range cl.Names {
		if i < len(cl.Constants) && !ast.IsNil(cl.Constants[i]) {
			pending = append(pending, i)
			continue
		}
		v, ok := given.Get(name)
		if !ok {
			return nil, ast.Errorf(ast.CodeUndefined, cl.Pos, "constant %q has no value", name)
		}
		cv, err := coerce(cl, i, v, cl.Pos)
		if err != nil {
			return nil, err
		}
		result.Set(name, cv)
		env.Set(name, cv)
	}

	ctx := NewConstantContext(env)
	for len(pending) > 0 {
		var (
			next    []int
			lastErr error
		)
		for _, i := range pending {
			def := cl.Constants[i]
			v, err := Evaluate(def, ctx)
			if ast.ErrorCodeOf(err) == ast.CodeUndefined {
				next = append(next, i)
				lastErr = err
				continue
			}
			if err != nil {
				return nil, err
			}
			cv, err := coerce(cl, i, v, def.Position())
			if err != nil {
				return nil, err
			}
			result.Set(cl.Names[i], cv)
			env.Set(cl.Names[i], cv)
		}
		if len(next) == len(pending) {
			return nil, lastErr
		}
		pending = next
	}

	ordered := NewValues()
	for _, name := range cl.Names {
		v, _ := result.Get(name)
		ordered.Set(name, v)
	}
	return ordered, nil
}

func coerce(cl *ast.ConstantList, i int, v value.Value, pos ast.Position) (value.Value, error) {
	t := ast.TypeUnknown
	if i < len(cl.Types) {
		t = cl.Types[i]
	}
	name := cl.Names[i]
	switch t {
	case ast.TypeBool:
		if _, ok := v.(value.Bool); !ok {
			return nil, ast.Errorf(ast.CodeTypeMismatch, pos, "constant %q is bool, got %s", name, value.TypeName(v))
		}
	case ast.TypeInt:
		if _, ok := v.(value.Int); !ok {
			return nil, ast.Errorf(ast.CodeTypeMismatch, pos, "constant %q is int, got %s", name, value.TypeName(v))
		}
	case ast.TypeDouble:
		d, err := value.AsDouble(v)
		if err != nil {
			return nil, ast.Errorf(ast.CodeTypeMismatch, pos, "constant %q is double, got %s", name, value.TypeName(v))
		}
		return value.Double(d), nil
	}
	return v, nil
}
