package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario over the counter model to a temporary
// directory and returns its path.
func writeScenario(t *testing.T, body string) string {
	t.Helper()
	model, err := filepath.Abs("testdata/models/counter.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := "model: " + model + "\n" + body
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)

	assert.Equal(t, "counter_states", scenario.Name)
	assert.Equal(t, filepath.Join("testdata", "models", "counter.yaml"), scenario.Model)
	assert.Equal(t, filepath.Join("testdata", "models", "counter_props.yaml"), scenario.Properties)
	assert.Equal(t, 0.5, scenario.Constants["p"])
	require.Len(t, scenario.States, 3)
	assert.Equal(t, 0, scenario.States[0].Vars["x"])
	require.Len(t, scenario.States[0].Expect, 4)

	assert.Equal(t, Target{Kind: TargetLabel, Name: "done"}, scenario.States[0].Expect[0].Target())
	assert.Equal(t, false, scenario.States[0].Expect[0].Value)
	assert.Equal(t, "NOT_EVALUABLE", scenario.States[0].Expect[3].Error)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "missing name",
			body: `
description: "d"
states:
  - vars: {x: 0}
    expect: [{label: done, value: false}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			body: `
name: s
states:
  - vars: {x: 0}
    expect: [{label: done, value: false}]
`,
			wantErr: "description is required",
		},
		{
			name: "no states",
			body: `
name: s
description: "d"
`,
			wantErr: "states list is required",
		},
		{
			name: "empty expect",
			body: `
name: s
description: "d"
states:
  - vars: {x: 0}
`,
			wantErr: "states[0]: expect list is required",
		},
		{
			name: "two targets",
			body: `
name: s
description: "d"
states:
  - vars: {x: 0}
    expect: [{label: done, formula: below, value: false}]
`,
			wantErr: "states[0].expect[0]: exactly one of label, formula or property",
		},
		{
			name: "value and error",
			body: `
name: s
description: "d"
states:
  - vars: {x: 0}
    expect: [{label: done, value: false, error: UNDEFINED}]
`,
			wantErr: "exactly one of value or error",
		},
		{
			name: "property without document",
			body: `
name: s
description: "d"
states:
  - vars: {x: 0}
    expect: [{property: reach, error: NOT_EVALUABLE}]
`,
			wantErr: "property checks need a properties document",
		},
		{
			name: "missing properties document",
			body: `
name: s
description: "d"
properties: nowhere.yaml
states:
  - vars: {x: 0}
    expect: [{label: done, value: false}]
`,
			wantErr: "document not found",
		},
		{
			name: "unknown field",
			body: `
name: s
description: "d"
state:
  - vars: {x: 0}
`,
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_MissingModel(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: s
description: "d"
states:
  - vars: {x: 0}
    expect: [{label: done, value: false}]
`), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestIsScenario(t *testing.T) {
	for _, path := range []string{"testdata/models/counter.yaml", "testdata/models/counter_props.yaml"} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.False(t, IsScenario(data), path)
	}

	data, err := os.ReadFile("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)
	assert.True(t, IsScenario(data))

	// Broken documents are left for LoadScenario to report.
	assert.True(t, IsScenario(nil))
	assert.True(t, IsScenario([]byte("- just\n- a list\n")))
	assert.True(t, IsScenario([]byte("name: [unterminated\n")))
}
