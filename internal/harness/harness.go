package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/eval"
	"github.com/roach88/modelir/internal/metrics"
	"github.com/roach88/modelir/internal/traverse"
	"github.com/roach88/modelir/internal/value"
)

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRecorder collects pass and evaluation cache metrics.
func WithRecorder(r metrics.Recorder) Option {
	return func(h *Harness) {
		if r != nil {
			h.recorder = r
		}
	}
}

// Harness runs scenarios.
type Harness struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	return New(opts...).Run(scenario)
}

// Run loads the scenario's documents, then evaluates every check of every
// state. Load failures are returned as errors; mismatches are recorded in
// the result.
//
// Each state gets a fresh cached evaluation context, so a formula shared by
// several labels is evaluated once per state.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	given, err := givenConstants(scenario.Constants)
	if err != nil {
		return nil, err
	}
	env, err := LoadEnvironment(scenario.Model, scenario.Properties, given,
		traverse.WithLogger(h.logger), traverse.WithRecorder(h.recorder))
	if err != nil {
		return nil, err
	}
	h.logger.Debug("scenario loaded",
		"scenario", scenario.Name,
		"variables", len(env.Variables),
		"constants", env.Constants.String(),
	)

	result := NewResult()
	for i, step := range scenario.States {
		vals, err := stateValues(step.Vars)
		if err != nil {
			return nil, fmt.Errorf("states[%d]: %w", i, err)
		}
		state, err := env.State(vals)
		if err != nil {
			return nil, fmt.Errorf("states[%d]: %w", i, err)
		}

		ctx := env.Context(state)
		for j := range step.Expect {
			h.check(env, ctx, state, &step.Expect[j], result)
		}

		hits, misses := ctx.CacheStats()
		result.CacheHits += hits
		result.CacheMisses += misses
		ctx.Report(h.recorder)

		h.logger.Debug("state evaluated",
			"step", i,
			"state", state.String(),
			"checks", len(step.Expect),
			"cache_hits", hits,
			"cache_misses", misses,
		)
	}
	return result, nil
}

// givenConstants converts the scenario's constants, in name order.
func givenConstants(m map[string]any) (*eval.Values, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	vs := eval.NewValues()
	for _, name := range names {
		v, err := value.FromAny(m[name])
		if err != nil {
			return nil, fmt.Errorf("constants.%s: %w", name, err)
		}
		vs.Set(name, v)
	}
	return vs, nil
}

func stateValues(vars map[string]any) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(vars))
	for name, raw := range vars {
		v, err := value.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func (h *Harness) check(env *Environment, ctx *eval.CachedStateContext, state *eval.State, c *Check, result *Result) {
	target := c.Target()

	expr, err := env.Expression(target)
	if err != nil {
		result.AddError(fmt.Sprintf("%s %s: %v", state, target, err))
		return
	}

	got, err := eval.Evaluate(expr, ctx)
	if err != nil {
		code := string(ast.ErrorCodeOf(err))
		if code == "" {
			code = "ERROR"
		}
		result.AddTrace(state.String(), target.String(), "", code)
		if c.Error != code {
			result.AddError(fmt.Sprintf("%s %s: got error %v, want %s", state, target, err, expectation(c)))
		}
		return
	}

	result.AddTrace(state.String(), target.String(), got.String(), "")
	if c.Error != "" {
		result.AddError(fmt.Sprintf("%s %s: got %s, want error %s", state, target, got, c.Error))
		return
	}
	want, err := value.FromAny(c.Value)
	if err != nil {
		result.AddError(fmt.Sprintf("%s %s: expected value: %v", state, target, err))
		return
	}
	if !value.Equal(want, got) {
		result.AddError(fmt.Sprintf("%s %s: got %s, want %s", state, target, got, want))
	}
}

func expectation(c *Check) string {
	if c.Error != "" {
		return "error " + c.Error
	}
	return fmt.Sprint(c.Value)
}
