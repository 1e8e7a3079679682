package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/metrics"
)

func counterScenario(states ...StateStep) *Scenario {
	return &Scenario{
		Name:        "inline",
		Description: "inline scenario",
		Model:       filepath.Join("testdata", "models", "counter.yaml"),
		Properties:  filepath.Join("testdata", "models", "counter_props.yaml"),
		Constants:   map[string]any{"p": 0.5},
		States:      states,
	}
}

func TestRunWithGolden_CounterStates(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Trace, 11)
}

func TestRun_Mismatch(t *testing.T) {
	result, err := Run(counterScenario(StateStep{
		Vars: map[string]any{"x": 0, "y": 0},
		Expect: []Check{
			{Label: "done", Value: true},
			{Formula: "below", Error: "UNDEFINED"},
			{Property: "reach", Value: 1},
		},
	}))
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "(0,0) label done: got false, want true")
	assert.Contains(t, result.Errors[1], "formula below: got true, want error UNDEFINED")
	assert.Contains(t, result.Errors[2], "property reach: got error")
	assert.Len(t, result.Trace, 3)
}

func TestRun_NumbersCompareByMagnitude(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "magnitude",
		Description: "int and double",
		Model:       filepath.Join("testdata", "models", "counter.yaml"),
		Constants:   map[string]any{"p": 1},
		States: []StateStep{{
			Vars:   map[string]any{"x": 1},
			Expect: []Check{{Label: "done", Value: false}},
		}},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_UnknownNames(t *testing.T) {
	result, err := Run(counterScenario(StateStep{
		Vars: map[string]any{"x": 0},
		Expect: []Check{
			{Formula: "nope", Error: "UNDEFINED"},
			{Label: "nope", Error: "UNDEFINED"},
			{Property: "nope", Value: true},
		},
	}))
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `unknown property "nope"`)
	assert.Len(t, result.Trace, 2)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scenario *Scenario
		wantErr  string
	}{
		{
			name: "unknown variable",
			scenario: counterScenario(StateStep{
				Vars:   map[string]any{"z": 0},
				Expect: []Check{{Label: "done", Value: false}},
			}),
			wantErr: `states[0]: unknown variable "z"`,
		},
		{
			name: "missing constant",
			scenario: func() *Scenario {
				s := counterScenario(StateStep{Expect: []Check{{Label: "done", Value: false}}})
				s.Constants = nil
				return s
			}(),
			wantErr: "failed to evaluate model constants",
		},
		{
			name: "bad constant value",
			scenario: func() *Scenario {
				s := counterScenario(StateStep{Expect: []Check{{Label: "done", Value: false}}})
				s.Constants = map[string]any{"p": []any{1}}
				return s
			}(),
			wantErr: "constants.p",
		},
		{
			name: "missing model",
			scenario: func() *Scenario {
				s := counterScenario()
				s.Model = filepath.Join("testdata", "models", "missing.yaml")
				return s
			}(),
			wantErr: "failed to load model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_CacheCountersAndMetrics(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)

	rec := metrics.NewPrometheus("test", nil)
	result, err := Run(scenario, WithRecorder(rec))
	require.NoError(t, err)
	assert.Positive(t, result.CacheMisses)

	var buf bytes.Buffer
	require.NoError(t, rec.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `test_traverse_passes_total{pass="expand",status="ok"} 2`)
	assert.Contains(t, out, `test_eval_cache_lookups_total{result="miss"}`)
}

func TestRun_Logging(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err = Run(scenario, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "scenario loaded")
	assert.Contains(t, out, "scenario=counter_states")
	assert.Contains(t, out, `state evaluated`)
	assert.Contains(t, out, "state=(3,3)")
}

func TestRun_NilOptionsKeepDefaults(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/counter_states.yaml")
	require.NoError(t, err)

	var result *Result
	require.NotPanics(t, func() {
		result, err = Run(scenario, WithLogger(nil), WithRecorder(nil))
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
