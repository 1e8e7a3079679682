package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/eval"
	"github.com/roach88/modelir/internal/harness"
	"github.com/roach88/modelir/internal/value"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Props     string
	State     string   // "x=1,y=0"
	Constants string   // "p=0.5"
	Targets   []string // "label:done", "property:#2"; empty = everything
	NoCache   bool
}

// EvalRow is the value (or error code) of one label, formula or property.
type EvalRow struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// EvalResult is the output of the eval command.
type EvalResult struct {
	State       string    `json:"state"`
	Constants   string    `json:"constants"`
	Rows        []EvalRow `json:"rows"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <model>",
		Short: "Evaluate labels, formulas and properties in one state",
		Long: `Evaluate the labels, formulas and properties of a model in a concrete
state.

Variables are assigned by name with --state; constants the model leaves
undefined are given with --const. Items that cannot be evaluated in a single
state (probabilistic and temporal operators, filters) report NOT_EVALUABLE.
Results are cached per state unless --no-cache is set.`,
		Example: `  modelir eval counter.yaml --const p=0.5 --state x=1,y=0
  modelir eval counter.yaml -p props.yaml --const p=0.5 --state x=3 --target property:#2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "properties document")
	cmd.Flags().StringVarP(&opts.State, "state", "s", "", "variable values (name=value,...)")
	cmd.Flags().StringVarP(&opts.Constants, "const", "c", "", "constant values (name=value,...)")
	cmd.Flags().StringArrayVarP(&opts.Targets, "target", "t", nil, "evaluate only kind:name (repeatable)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "evaluate without the expression cache")

	return cmd
}

func runEval(opts *EvalOptions, modelPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	given, err := eval.ParseValues(opts.Constants)
	if err != nil {
		return usageError(formatter, "--const", err)
	}
	assigned, err := eval.ParseValues(opts.State)
	if err != nil {
		return usageError(formatter, "--state", err)
	}
	targets, err := parseTargets(opts.Targets)
	if err != nil {
		return usageError(formatter, "--target", err)
	}

	docs, err := loadDocuments(modelPath, opts.Props)
	if err != nil {
		return fail(formatter, err)
	}
	env, err := harness.NewEnvironment(docs.Model, docs.Properties, given, opts.traverseOptions()...)
	if err != nil {
		return fail(formatter, err)
	}

	vals := make(map[string]value.Value, assigned.Len())
	for _, name := range assigned.Names() {
		vals[name], _ = assigned.Get(name)
	}
	state, err := env.State(vals)
	if err != nil {
		return usageError(formatter, "--state", err)
	}
	if len(targets) == 0 {
		targets = env.Targets()
	}

	cached := env.Context(state)
	var ctx eval.Context = cached
	if opts.NoCache {
		ctx = cached.StateContext
	}

	result := EvalResult{State: state.String(), Constants: env.Constants.String()}
	for _, t := range targets {
		row := EvalRow{Kind: t.Kind, Name: t.Name}
		expr, err := env.Expression(t)
		if err != nil {
			return usageError(formatter, "--target", err)
		}
		v, err := eval.Evaluate(expr, ctx)
		if err != nil {
			row.Error = errorCode(err)
			logger.Debug("evaluation failed", "target", t.String(), "error", err)
		} else {
			row.Value = v.String()
		}
		result.Rows = append(result.Rows, row)
	}

	result.CacheHits, result.CacheMisses = cached.CacheStats()
	cached.Report(opts.recorder())

	return formatter.Emit(result, func(w io.Writer) error {
		return writeEvalText(w, &result)
	})
}

func parseTargets(args []string) ([]harness.Target, error) {
	var out []harness.Target
	for _, arg := range args {
		kind, name, _ := strings.Cut(arg, ":")
		switch kind {
		case harness.TargetLabel, harness.TargetFormula, harness.TargetProperty:
		default:
			return nil, fmt.Errorf("invalid target %q: expected label:, formula: or property: prefix", arg)
		}
		if name == "" {
			return nil, fmt.Errorf("invalid target %q: missing name", arg)
		}
		out = append(out, harness.Target{Kind: kind, Name: name})
	}
	return out, nil
}

func errorCode(err error) string {
	if code := ast.ErrorCodeOf(err); code != "" {
		return string(code)
	}
	return ErrCodeGeneric
}

func usageError(f *OutputFormatter, flag string, err error) error {
	msg := fmt.Sprintf("%s: %v", flag, err)
	_ = f.Error(ErrCodeUsage, msg, nil)
	return WrapExitError(ExitCommandError, ErrCodeUsage, err)
}

func writeEvalText(w io.Writer, r *EvalResult) error {
	fmt.Fprintf(w, "state %s", r.State)
	if r.Constants != "" {
		fmt.Fprintf(w, " with %s", r.Constants)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range r.Rows {
		out := row.Value
		if row.Error != "" {
			out = "error " + row.Error
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Kind, row.Name, out)
	}
	return tw.Flush()
}
