package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/printer"
	"github.com/roach88/modelir/internal/testutil"
)

func requireLoadError(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "expected *LoadError, got %T: %v", err, err)
	assert.Equal(t, code, le.Code, le.Error())
	return le
}

func TestLoadModelMatchesCounterModel(t *testing.T) {
	want, err := printer.String(testutil.CounterModel())
	require.NoError(t, err)

	for _, path := range []string{"testdata/counter.yaml", "testdata/counter.cue"} {
		t.Run(path, func(t *testing.T) {
			mf, err := LoadModel(path)
			require.NoError(t, err)

			got, err := printer.String(mf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestYAMLAndCUEBuildEqualModels(t *testing.T) {
	fromYAML, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)
	fromCUE, err := LoadModel("testdata/counter.cue")
	require.NoError(t, err)

	assert.True(t, ast.Equal(fromYAML, fromCUE))
}

func TestLoadModelResolvesReferences(t *testing.T) {
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)

	below := mf.Formulas.Formulas[0].(*ast.BinaryOp)
	x := below.Left.(*ast.Var)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, 0, x.Index)
	assert.Equal(t, ast.TypeInt, x.Type)

	n := below.Right.(*ast.ConstantRef)
	assert.Equal(t, ast.TypeInt, n.Type)
	assert.Equal(t, ast.TypeBool, below.Type)

	step := mf.Modules[0].(*ast.Module).Commands[0]
	guard := step.Guard.(*ast.FormulaRef)
	assert.Equal(t, "below", guard.Name)
	assert.Nil(t, guard.Definition)
	assert.Equal(t, ast.TypeBool, guard.Type, "formula references carry the definition type")

	p := step.Updates.Probs[0].(*ast.ConstantRef)
	assert.Equal(t, ast.TypeDouble, p.Type)
}

func TestLoadModelPositions(t *testing.T) {
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)

	below := mf.Formulas.Formulas[0].(*ast.BinaryOp)
	assert.Equal(t, ast.Position{File: "testdata/counter.yaml", Line: 13, Column: 11}, below.Pos)
	assert.Equal(t, ast.Position{File: "testdata/counter.yaml", Line: 13, Column: 18}, below.Left.Position())

	mf, err = LoadModel("testdata/counter.cue")
	require.NoError(t, err)
	assert.Equal(t, "testdata/counter.cue", mf.Formulas.Formulas[0].Position().File)
	assert.Equal(t, 9, mf.Formulas.Formulas[0].Position().Line)
}

func TestLoadProperties(t *testing.T) {
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)
	pf, err := LoadProperties("testdata/counter_props.yaml", mf)
	require.NoError(t, err)

	fixture, err := printer.String(testutil.CounterProperties())
	require.NoError(t, err)
	// The last property refers to "reach" by name instead of repeating it.
	want := strings.Replace(fixture, `filter(max, Pmax=? [ F "done" ], x=0)`, `filter(max, "reach", x=0)`, 1)

	got, err := printer.String(pf)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, ast.TypeDouble, pf.Properties[0].Expr.ExprType())
	assert.Equal(t, ast.TypeBool, pf.Properties[1].Expr.ExprType())
	assert.Equal(t, "long run", pf.Properties[3].Comment)
}

func TestPropertiesSeeRenamedVariables(t *testing.T) {
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)

	pf, err := ParseProperties([]byte(`properties: [{expr: {"=": [y, 0]}}]`), FormatYAML, "inline.yaml", mf)
	require.NoError(t, err)

	y := pf.Properties[0].Expr.(*ast.BinaryOp).Left.(*ast.Var)
	assert.Equal(t, 1, y.Index)
	assert.Equal(t, ast.TypeInt, y.Type)
}

func TestStateVariables(t *testing.T) {
	names, err := StateVariables(testutil.CounterModel())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names)

	_, err = StateVariables(&ast.ModulesFile{Modules: []ast.ModuleDefn{
		&ast.RenamedModule{Name: "b", Base: "a"},
	}})
	requireLoadError(t, err, ErrCodeUndefined)
}

func TestIdentifiersAreNFCNormalized(t *testing.T) {
	data := "type: dtmc\n" +
		"constants:\n" +
		"  - {name: \"caf\u00e9\", value: 1}\n" +
		"modules:\n" +
		"  - name: m\n" +
		"    variables: [{name: s, type: bool}]\n" +
		"    commands:\n" +
		"      - guard: {\">\": [\"cafe\u0301\", 0]}\n"

	mf, err := ParseModel([]byte(data), FormatYAML, "nfc.yaml")
	require.NoError(t, err)

	guard := mf.Modules[0].(*ast.Module).Commands[0].Guard.(*ast.BinaryOp)
	c := guard.Left.(*ast.ConstantRef)
	assert.Equal(t, "caf\u00e9", c.Name)
}

func TestCommandWithoutUpdatesIsIdentity(t *testing.T) {
	data := `
type: dtmc
modules:
  - name: m
    variables: [{name: s, type: bool, init: false}]
    commands: [{guard: s}]
`
	mf, err := ParseModel([]byte(data), FormatYAML, "loop.yaml")
	require.NoError(t, err)

	ups := mf.Modules[0].(*ast.Module).Commands[0].Updates
	require.Len(t, ups.Items, 1)
	assert.Nil(t, ups.Probs[0])
	assert.Empty(t, ups.Items[0].Elements)
}

func TestLoadErrors(t *testing.T) {
	le := requireLoadError(t, errorOf(LoadModel("testdata/bad_undefined.yaml")), ErrCodeUndefined)
	assert.Equal(t, 8, le.Pos.Line)
	assert.Contains(t, le.Error(), "testdata/bad_undefined.yaml:8:")

	requireLoadError(t, errorOf(LoadModel("testdata/bad_key.yaml")), ErrCodeSchema)
	requireLoadError(t, errorOf(LoadModel("testdata/missing.yaml")), ErrCodeRead)
	requireLoadError(t, errorOf(LoadModel("testdata/counter.json")), ErrCodeFormat)
}

func errorOf(_ *ast.ModulesFile, err error) error { return err }

func TestParseModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		code   string
	}{
		{"yaml syntax", FormatYAML, "type: [", ErrCodeSyntax},
		{"cue syntax", FormatCUE, "type: {", ErrCodeSyntax},
		{"cue incomplete", FormatCUE, "type: string", ErrCodeSyntax},
		{"missing type", FormatYAML, "modules: []", ErrCodeSchema},
		{"unknown model type", FormatYAML, "type: hybrid", ErrCodeSchema},
		{"not a map", FormatYAML, "- a", ErrCodeSchema},
		{"unknown operator", FormatYAML, "type: dtmc\ninit: {\"xor\": [true, false]}", ErrCodeSchema},
		{"two keys", FormatYAML, "type: dtmc\ninit: {\"&\": [true, true], \"|\": [true, true]}", ErrCodeSchema},
		{"ill-typed and", FormatYAML, "type: dtmc\ninit: {\"&\": [1, true]}", ErrCodeType},
		{"ill-typed init", FormatYAML, "type: dtmc\ninit: 3", ErrCodeType},
		{"duplicate constant", FormatYAML, "type: dtmc\nconstants: [{name: a}, {name: a}]", ErrCodeDuplicate},
		{
			"variable named like a constant", FormatYAML,
			"type: dtmc\nconstants: [{name: a, value: 1}]\nmodules: [{name: m, variables: [{name: a, type: bool}]}]",
			ErrCodeDuplicate,
		},
		{
			"rename misses a variable", FormatYAML,
			"type: dtmc\nmodules:\n  - {name: m, variables: [{name: a, type: bool}]}\n  - {name: n, rename: m, map: {b: c}}",
			ErrCodeSchema,
		},
		{
			"rename of unknown module", FormatYAML,
			"type: dtmc\nmodules: [{name: n, rename: zz, map: {b: c}}]",
			ErrCodeUndefined,
		},
		{
			"variable in bounds", FormatYAML,
			"type: dtmc\nmodules: [{name: m, variables: [{name: a, type: {int: [0, a]}}]}]",
			ErrCodeUndefined,
		},
		{
			"assignment to constant", FormatYAML,
			"type: dtmc\nconstants: [{name: k, value: 1}]\nmodules: [{name: m, commands: [{guard: true, updates: [{assign: {k: 2}}]}]}]",
			ErrCodeUndefined,
		},
		{"unknown system module", FormatYAML, "type: dtmc\nsystem: {interleave: [a, b]}", ErrCodeUndefined},
		{"query with bound", FormatYAML, "type: dtmc\ninit: {P: {op: \"=?\", bound: 1, path: {F: true}}}", ErrCodeSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.data), tt.format, "inline")
			requireLoadError(t, err, tt.code)
		})
	}
}

func TestParsePropertiesErrors(t *testing.T) {
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
		code string
	}{
		{"unknown label", `properties: [{expr: {label: goal}}]`, ErrCodeUndefined},
		{"unknown property", `properties: [{expr: {prop: other}}]`, ErrCodeUndefined},
		{"unknown reward", `properties: [{expr: {R: {struct: cost, op: "=?", path: {F: true}}}}]`, ErrCodeUndefined},
		{"duplicate property", `properties: [{name: a, expr: true}, {name: a, expr: false}]`, ErrCodeDuplicate},
		{"comparison without bound", `properties: [{expr: {P: {op: ">", path: {F: true}}}}]`, ErrCodeSchema},
		{"unknown filter", `properties: [{expr: {filter: {op: median, of: x}}}]`, ErrCodeSchema},
		{"unknown key", `properties: [{expr: true, weight: 2}]`, ErrCodeSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProperties([]byte(tt.data), FormatYAML, "props.yaml", mf)
			requireLoadError(t, err, tt.code)
		})
	}
}

func TestPropertiesWithoutModel(t *testing.T) {
	data := `
constants: [{name: k, type: double, value: 0.5}]
properties:
  - {name: half, expr: {"*": [k, 2]}}
  - {expr: {"=": [{prop: half}, 1]}}
`
	pf, err := ParseProperties([]byte(data), FormatYAML, "props.yaml", nil)
	require.NoError(t, err)
	require.Len(t, pf.Properties, 2)
	assert.Equal(t, ast.TypeDouble, pf.Properties[0].Expr.ExprType())
	assert.IsType(t, &ast.PropRef{}, pf.Properties[1].Expr.(*ast.BinaryOp).Left)
}

func TestTemporalOptions(t *testing.T) {
	data := `properties: [{expr: {U: [true, {label: done}], lower: 1, upper: 5, upper_strict: true}}]`
	mf, err := LoadModel("testdata/counter.yaml")
	require.NoError(t, err)

	pf, err := ParseProperties([]byte(data), FormatYAML, "props.yaml", mf)
	require.NoError(t, err)

	u := pf.Properties[0].Expr.(*ast.Temporal)
	assert.Equal(t, ast.TemporalUntil, u.Op)
	assert.NotNil(t, u.Lower)
	assert.NotNil(t, u.Upper)
	assert.False(t, u.LowerStrict)
	assert.True(t, u.UpperStrict)
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("model.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatOf("dir/model.cue")
	require.NoError(t, err)
	assert.Equal(t, FormatCUE, f)

	_, err = FormatOf("model.prism")
	requireLoadError(t, err, ErrCodeFormat)
}
