package eval

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/metrics"
	"github.com/roach88/modelir/internal/value"
)

func intLit(i int64) *ast.Literal   { return ast.NewLiteralInt(i) }
func dblLit(f float64) *ast.Literal { return ast.NewLiteralDouble(f) }
func boolLit(b bool) *ast.Literal   { return ast.NewLiteralBool(b) }
func xVar() *ast.Var                { return ast.NewVar("x", 0, ast.TypeInt) }
func nConst() *ast.ConstantRef      { return ast.NewConstantRef("N", ast.TypeInt) }
func stateX(x int64) *State         { return NewState(value.Int(x)) }
func plain(x int64) *StateContext   { return NewStateContext(stateX(x), constants(3), nil, nil) }

func constants(n int64) *Values {
	vs := NewValues()
	vs.Set("N", value.Int(n))
	return vs
}

// shared returns (x < N) & !(x < N) with the comparison shared.
func shared() (root, cmp ast.Expression) {
	cmp = ast.NewBinaryOp(ast.OpLt, xVar(), nConst())
	root = ast.NewBinaryOp(ast.OpAnd, cmp, ast.NewUnaryOp(ast.OpNot, cmp))
	return root, cmp
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want value.Value
	}{
		{"int plus", ast.NewBinaryOp(ast.OpPlus, xVar(), intLit(1)), value.Int(2)},
		{"int times", ast.NewBinaryOp(ast.OpTimes, nConst(), intLit(4)), value.Int(12)},
		{"mixed minus", ast.NewBinaryOp(ast.OpMinus, dblLit(1.5), xVar()), value.Double(0.5)},
		{"int divide is double", ast.NewBinaryOp(ast.OpDivide, intLit(1), intLit(2)), value.Double(0.5)},
		{"negation", ast.NewUnaryOp(ast.OpNeg, xVar()), value.Int(-1)},
		{"parentheses", ast.NewUnaryOp(ast.OpParenth, nConst()), value.Int(3)},
		{"ite", ast.NewITE(ast.NewBinaryOp(ast.OpGt, xVar(), intLit(0)), intLit(10), intLit(20)), value.Int(10)},
		{"min ints", ast.NewFunc(ast.FuncMin, intLit(4), xVar(), nConst()), value.Int(1)},
		{"max mixed", ast.NewFunc(ast.FuncMax, intLit(4), dblLit(4.5)), value.Double(4.5)},
		{"floor", ast.NewFunc(ast.FuncFloor, dblLit(2.7)), value.Int(2)},
		{"ceil", ast.NewFunc(ast.FuncCeil, dblLit(2.1)), value.Int(3)},
		{"round half up", ast.NewFunc(ast.FuncRound, dblLit(-2.5)), value.Int(-2)},
		{"pow ints", ast.NewFunc(ast.FuncPow, intLit(2), intLit(10)), value.Int(1024)},
		{"pow double", ast.NewFunc(ast.FuncPow, intLit(4), dblLit(0.5)), value.Double(2)},
		{"mod negative", ast.NewFunc(ast.FuncMod, intLit(-7), intLit(3)), value.Int(2)},
		{"log", ast.NewFunc(ast.FuncLog, intLit(8), intLit(2)), value.Double(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, plain(1))
			require.NoError(t, err)
			if d, ok := tt.want.(value.Double); ok {
				require.IsType(t, value.Double(0), got)
				assert.InDelta(t, float64(d), float64(got.(value.Double)), 1e-12)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateLogic(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want bool
	}{
		{"lt", ast.NewBinaryOp(ast.OpLt, xVar(), nConst()), true},
		{"ge mixed", ast.NewBinaryOp(ast.OpGe, xVar(), dblLit(1.0)), true},
		{"eq int double", ast.NewBinaryOp(ast.OpEq, xVar(), dblLit(1.0)), true},
		{"ne bools", ast.NewBinaryOp(ast.OpNe, boolLit(true), boolLit(false)), true},
		{"and", ast.NewBinaryOp(ast.OpAnd, boolLit(true), boolLit(false)), false},
		{"or", ast.NewBinaryOp(ast.OpOr, boolLit(false), boolLit(true)), true},
		{"implies", ast.NewBinaryOp(ast.OpImplies, boolLit(false), boolLit(false)), true},
		{"iff", ast.NewBinaryOp(ast.OpIff, boolLit(false), boolLit(false)), true},
		{"not", ast.NewUnaryOp(ast.OpNot, boolLit(true)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateBool(tt.expr, plain(1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	// The right operand would fail with UNDEFINED if it were evaluated.
	undefined := ast.NewConstantRef("missing", ast.TypeBool)

	got, err := EvaluateBool(ast.NewBinaryOp(ast.OpAnd, boolLit(false), undefined), plain(0))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = EvaluateBool(ast.NewBinaryOp(ast.OpOr, boolLit(true), undefined), plain(0))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = EvaluateBool(ast.NewBinaryOp(ast.OpImplies, boolLit(false), undefined), plain(0))
	require.NoError(t, err)
	assert.True(t, got)

	_, err = EvaluateBool(ast.NewBinaryOp(ast.OpAnd, boolLit(true), undefined), plain(0))
	assert.Equal(t, ast.CodeUndefined, ast.ErrorCodeOf(err))
}

func TestEvaluateReferences(t *testing.T) {
	labels := &ast.LabelList{
		Names:  []string{"done"},
		Labels: []ast.Expression{ast.NewBinaryOp(ast.OpEq, xVar(), nConst())},
	}
	ctx := NewStateContext(stateX(3), constants(3), labels, nil)
	ctx.Observables = []value.Value{value.Bool(true)}

	done, err := EvaluateBool(ast.NewLabelRef("done"), ctx)
	require.NoError(t, err)
	assert.True(t, done)

	obs, err := EvaluateBool(ast.NewObsRef("seen", 0, ast.TypeBool), ctx)
	require.NoError(t, err)
	assert.True(t, obs)

	def := ast.NewBinaryOp(ast.OpMinus, nConst(), xVar())
	n, err := EvaluateInt(ast.NewFormulaRef("left", def), ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	d, err := EvaluateDouble(nConst(), ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)
}

func TestLabelPredicateAnswersBeforeDefinitions(t *testing.T) {
	labels := &ast.LabelList{
		Names:  []string{"done"},
		Labels: []ast.Expression{ast.NewBinaryOp(ast.OpEq, xVar(), nConst())},
	}
	known := map[string]bool{"init": true, "done": false}
	pred := func(name string) (bool, bool) {
		in, ok := known[name]
		return in, ok
	}
	ctx := NewCachedStateContext(stateX(3), constants(3), labels, pred)

	initial := ast.NewLabelRef("init")
	got, err := EvaluateBool(ast.NewBinaryOp(ast.OpAnd, initial, ast.NewBinaryOp(ast.OpEq, xVar(), nConst())), ctx)
	require.NoError(t, err)
	assert.True(t, got)

	v, ok := ctx.FetchResult(initial)
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), v)

	// The definition of done holds in x=3, but the predicate decides.
	done, err := EvaluateBool(ast.NewLabelRef("done"), ctx)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = Evaluate(ast.NewLabelRef("deadlock"), ctx)
	assert.Equal(t, ast.CodeNotEvaluable, ast.ErrorCodeOf(err))
	_, err = Evaluate(ast.NewLabelRef("goal"), ctx)
	assert.Equal(t, ast.CodeUndefined, ast.ErrorCodeOf(err))
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		code ast.ErrorCode
	}{
		{"unknown constant", ast.NewConstantRef("K", ast.TypeInt), ast.CodeUndefined},
		{"variable out of range", ast.NewVar("z", 5, ast.TypeInt), ast.CodeUndefined},
		{"unknown label", ast.NewLabelRef("goal"), ast.CodeUndefined},
		{"built-in label", ast.NewLabelRef("deadlock"), ast.CodeNotEvaluable},
		{"unexpanded formula", ast.NewFormulaRef("f", nil), ast.CodeUndefined},
		{"unresolved identifier", ast.NewIdent("x"), ast.CodeUndefined},
		{"observable missing", ast.NewObsRef("o", 0, ast.TypeBool), ast.CodeUndefined},
		{"not on int", ast.NewUnaryOp(ast.OpNot, intLit(1)), ast.CodeTypeMismatch},
		{"plus on bool", ast.NewBinaryOp(ast.OpPlus, boolLit(true), intLit(1)), ast.CodeTypeMismatch},
		{"compare bool with int", ast.NewBinaryOp(ast.OpEq, boolLit(true), intLit(1)), ast.CodeTypeMismatch},
		{"ite on int", ast.NewITE(intLit(1), intLit(2), intLit(3)), ast.CodeTypeMismatch},
		{"mod double", ast.NewFunc(ast.FuncMod, dblLit(1.5), intLit(2)), ast.CodeTypeMismatch},
		{"mod zero", ast.NewFunc(ast.FuncMod, intLit(1), intLit(0)), ast.CodeArithmetic},
		{"negative int exponent", ast.NewFunc(ast.FuncPow, intLit(2), intLit(-1)), ast.CodeArithmetic},
		{"pow overflow", ast.NewFunc(ast.FuncPow, intLit(10), intLit(40)), ast.CodeArithmetic},
		{"plus overflow", ast.NewBinaryOp(ast.OpPlus, intLit(math.MaxInt64), intLit(1)), ast.CodeArithmetic},
		{"times overflow", ast.NewBinaryOp(ast.OpTimes, intLit(math.MaxInt64), intLit(2)), ast.CodeArithmetic},
		{"floor of infinity", ast.NewFunc(ast.FuncFloor, ast.NewBinaryOp(ast.OpDivide, intLit(1), intLit(0))), ast.CodeArithmetic},
		{"wrong arity", &ast.Func{Name: ast.FuncFloor}, ast.CodeInvalidNode},
		{"unknown function", &ast.Func{Name: "sqrt", Args: []ast.Expression{intLit(4)}}, ast.CodeInvalidNode},
		{"missing operand", &ast.BinaryOp{Op: ast.OpAnd, Left: boolLit(true)}, ast.CodeInvalidNode},
		{"literal without value", &ast.Literal{}, ast.CodeInvalidNode},
		{"probability", ast.NewProb(ast.RelQuery, nil, ast.NewTemporal(ast.TemporalFinally, nil, boolLit(true))), ast.CodeNotEvaluable},
		{"temporal", ast.NewTemporal(ast.TemporalGlobally, nil, boolLit(true)), ast.CodeNotEvaluable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr, plain(0))
			require.Error(t, err)
			assert.True(t, ast.IsLangError(err))
			assert.Equal(t, tt.code, ast.ErrorCodeOf(err))
		})
	}
}

func TestTypedEvaluateRejectsOtherTypes(t *testing.T) {
	_, err := EvaluateBool(intLit(1), plain(0))
	assert.Equal(t, ast.CodeTypeMismatch, ast.ErrorCodeOf(err))

	_, err = EvaluateInt(dblLit(1), plain(0))
	assert.Equal(t, ast.CodeTypeMismatch, ast.ErrorCodeOf(err))

	_, err = EvaluateDouble(boolLit(true), plain(0))
	assert.Equal(t, ast.CodeTypeMismatch, ast.ErrorCodeOf(err))
}

func TestCachedContextEvaluatesSharedNodeOnce(t *testing.T) {
	root, cmp := shared()
	ctx := NewCachedStateContext(stateX(1), constants(3), nil, nil)

	got, err := EvaluateBool(root, ctx)
	require.NoError(t, err)
	assert.False(t, got)

	// root, cmp, x, N and the negation miss once; the second reference to
	// cmp is served from the cache.
	hits, misses := ctx.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 5, misses)

	v, ok := ctx.FetchResult(cmp)
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), v)
}

func TestCachedContextReturnsStoredResult(t *testing.T) {
	e := ast.NewBinaryOp(ast.OpPlus, xVar(), intLit(1))
	ctx := NewCachedStateContext(stateX(1), nil, nil, nil)

	_, ok := ctx.FetchResult(e)
	assert.False(t, ok)

	assert.Equal(t, value.Int(42), ctx.StoreResult(e, value.Int(42)))

	// The stored result wins over recomputation.
	got, err := Evaluate(e, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), got)
}

func TestCachesAreIsolatedPerContext(t *testing.T) {
	root, cmp := shared()
	first := NewCachedStateContext(stateX(1), constants(3), nil, nil)
	second := NewCachedStateContext(stateX(5), constants(3), nil, nil)

	_, err := Evaluate(root, first)
	require.NoError(t, err)

	_, ok := second.FetchResult(cmp)
	assert.False(t, ok, "a fresh context must not see results from another context")

	v, err := Evaluate(cmp, second)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), v)

	v, ok = first.FetchResult(cmp)
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), v)
}

func TestConcurrentEvaluationWithOwnContexts(t *testing.T) {
	root, _ := shared()
	sum := ast.NewBinaryOp(ast.OpPlus, ast.NewITE(root, intLit(100), xVar()), nConst())

	const workers = 16
	results := make([]int64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := NewCachedStateContext(stateX(int64(i)), constants(3), nil, nil)
			results[i], errs[i] = EvaluateInt(sum, ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(i)+3, results[i])
	}
}

func TestCachedContextReport(t *testing.T) {
	root, _ := shared()
	ctx := NewCachedStateContext(stateX(1), constants(3), nil, nil)
	_, err := Evaluate(root, ctx)
	require.NoError(t, err)

	rec := &cacheRecorder{}
	ctx.Report(rec)
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 5, rec.misses)
}

type cacheRecorder struct {
	metrics.Noop
	hits, misses int
}

func (r *cacheRecorder) ObserveEvalCache(hits, misses int) {
	r.hits += hits
	r.misses += misses
}
