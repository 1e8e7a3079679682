package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/testutil"
	"github.com/roach88/modelir/internal/value"
)

func TestEvaluateConstantsCounterModel(t *testing.T) {
	mf := testutil.CounterModel()
	given, err := ParseValues("p=1")
	require.NoError(t, err)

	vs, err := EvaluateConstants(mf.Constants, given)
	require.NoError(t, err)

	assert.Equal(t, []string{"N", "p"}, vs.Names())
	n, _ := vs.Get("N")
	assert.Equal(t, value.Int(3), n)
	p, _ := vs.Get("p")
	assert.Equal(t, value.Double(1), p, "int widened for a double constant")
}

func TestEvaluateConstantsOutOfOrder(t *testing.T) {
	cl := &ast.ConstantList{
		Names: []string{"total", "half", "base"},
		Types: []ast.Type{ast.TypeInt, ast.TypeDouble, ast.TypeInt},
		Constants: []ast.Expression{
			ast.NewBinaryOp(ast.OpTimes, ast.NewConstantRef("base", ast.TypeInt), ast.NewLiteralInt(2)),
			ast.NewBinaryOp(ast.OpDivide, ast.NewConstantRef("total", ast.TypeInt), ast.NewLiteralInt(4)),
			nil,
		},
	}
	given := NewValues()
	given.Set("base", value.Int(5))

	vs, err := EvaluateConstants(cl, given)
	require.NoError(t, err)
	assert.Equal(t, "total=10,half=2.5,base=5", vs.String())
}

func TestEvaluateConstantsSeeUndeclaredGivenConstants(t *testing.T) {
	cl := &ast.ConstantList{
		Names:     []string{"twice"},
		Types:     []ast.Type{ast.TypeInt},
		Constants: []ast.Expression{ast.NewBinaryOp(ast.OpTimes, ast.NewConstantRef("N", ast.TypeInt), ast.NewLiteralInt(2))},
	}
	given, err := ParseValues("N=3,twice=100")
	require.NoError(t, err)

	vs, err := EvaluateConstants(cl, given)
	require.NoError(t, err)
	assert.Equal(t, "twice=6", vs.String(), "a defined constant ignores its given value")
}

func TestEvaluateConstantsErrors(t *testing.T) {
	tests := []struct {
		name  string
		cl    *ast.ConstantList
		given string
		code  ast.ErrorCode
	}{
		{
			name:  "missing value",
			cl:    &ast.ConstantList{Names: []string{"N"}, Types: []ast.Type{ast.TypeInt}, Constants: []ast.Expression{nil}},
			given: "",
			code:  ast.CodeUndefined,
		},
		{
			name:  "double for int",
			cl:    &ast.ConstantList{Names: []string{"N"}, Types: []ast.Type{ast.TypeInt}, Constants: []ast.Expression{nil}},
			given: "N=0.5",
			code:  ast.CodeTypeMismatch,
		},
		{
			name: "cyclic definitions",
			cl: &ast.ConstantList{
				Names: []string{"a", "b"},
				Types: []ast.Type{ast.TypeInt, ast.TypeInt},
				Constants: []ast.Expression{
					ast.NewConstantRef("b", ast.TypeInt),
					ast.NewConstantRef("a", ast.TypeInt),
				},
			},
			code: ast.CodeUndefined,
		},
		{
			name: "state variable in definition",
			cl: &ast.ConstantList{
				Names:     []string{"a"},
				Types:     []ast.Type{ast.TypeInt},
				Constants: []ast.Expression{ast.NewVar("x", 0, ast.TypeInt)},
			},
			code: ast.CodeUndefined,
		},
		{
			name: "bool for int",
			cl: &ast.ConstantList{
				Names:     []string{"a"},
				Types:     []ast.Type{ast.TypeInt},
				Constants: []ast.Expression{ast.NewLiteralBool(true)},
			},
			code: ast.CodeTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			given, err := ParseValues(tt.given)
			require.NoError(t, err)
			_, err = EvaluateConstants(tt.cl, given)
			require.Error(t, err)
			assert.Equal(t, tt.code, ast.ErrorCodeOf(err))
		})
	}
}

func TestEvaluateConstantsNilList(t *testing.T) {
	vs, err := EvaluateConstants(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, vs.Len())
}
