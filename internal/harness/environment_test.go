package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/eval"
	"github.com/roach88/modelir/internal/value"
)

func loadCounter(t *testing.T) *Environment {
	t.Helper()
	given, err := eval.ParseValues("p=0.5")
	require.NoError(t, err)
	env, err := LoadEnvironment("testdata/models/counter.yaml", "testdata/models/counter_props.yaml", given)
	require.NoError(t, err)
	return env
}

func TestLoadEnvironment(t *testing.T) {
	env := loadCounter(t)

	assert.Equal(t, []string{"x", "y"}, env.Variables)
	assert.Equal(t, "N=3,p=0.5,twice=6", env.Constants.String())
	assert.Equal(t, []string{"done"}, env.Labels.Names)
	require.NotNil(t, env.Properties)
}

func TestEnvironmentSharesFormulaExpansion(t *testing.T) {
	env := loadCounter(t)

	counter := env.Model.Modules[0].(*ast.Module)
	step, reset := counter.Commands[0], counter.Commands[1]
	def, ok := env.Model.Formulas.Lookup("below")
	require.True(t, ok)

	assert.Same(t, def, step.Guard)
	assert.Same(t, def, reset.Guard.(*ast.UnaryOp).Operand)
}

func TestEnvironmentTargets(t *testing.T) {
	env := loadCounter(t)

	var names []string
	for _, target := range env.Targets() {
		names = append(names, target.String())
	}
	assert.Equal(t, []string{
		"label done",
		"formula below",
		"property reach",
		"property small",
		"property finished",
	}, names)
}

func TestEnvironmentExpression(t *testing.T) {
	env := loadCounter(t)

	byName, err := env.Expression(Target{Kind: TargetProperty, Name: "small"})
	require.NoError(t, err)
	byIndex, err := env.Expression(Target{Kind: TargetProperty, Name: "#2"})
	require.NoError(t, err)
	assert.Same(t, byName, byIndex)

	label, err := env.Expression(Target{Kind: TargetLabel, Name: "done"})
	require.NoError(t, err)
	assert.Equal(t, ast.KindLabelRef, label.Kind())

	_, err = env.Expression(Target{Kind: TargetProperty, Name: "nope"})
	assert.ErrorContains(t, err, `unknown property "nope"`)

	_, err = env.Expression(Target{Kind: "reward", Name: "steps"})
	assert.ErrorContains(t, err, `unknown target kind "reward"`)
}

func TestEnvironmentState(t *testing.T) {
	env := loadCounter(t)

	state, err := env.State(map[string]value.Value{"y": value.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, "(?,2)", state.String())

	_, err = env.State(map[string]value.Value{"z": value.Int(0)})
	assert.ErrorContains(t, err, `unknown variable "z"`)

	ctx := env.Context(state)
	_, err = eval.Evaluate(ast.NewLabelRef("done"), ctx)
	assert.Equal(t, ast.CodeUndefined, ast.ErrorCodeOf(err))
}

func TestLoadEnvironmentWithoutProperties(t *testing.T) {
	given, err := eval.ParseValues("p=1")
	require.NoError(t, err)
	env, err := LoadEnvironment("testdata/models/counter.yaml", "", given)
	require.NoError(t, err)

	assert.Nil(t, env.Properties)
	assert.Len(t, env.Targets(), 2)
}
