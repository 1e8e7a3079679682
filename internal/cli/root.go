package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/modelir/internal/metrics"
	"github.com/roach88/modelir/internal/traverse"
)

// RootOptions holds global flags for all commands, and the logger and
// recorder built from them before a command runs.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Metrics bool   // Dump Prometheus metrics to stderr after the command

	RunID    string
	Logger   *slog.Logger
	Recorder metrics.Recorder

	prom *metrics.Prometheus
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the modelir CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "modelir",
		Short: "modelir - model IR toolkit",
		Long: `Load, copy, expand, evaluate and inspect probabilistic model documents.

Models and properties are structured YAML or CUE documents. Every command
works on the loaded IR, which becomes a DAG once formulas are expanded.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.dumpMetrics(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print traversal and cache metrics to stderr")

	cmd.AddCommand(NewCopyCommand(opts))
	cmd.AddCommand(NewExpandCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup builds the logger and recorder. Every log record carries the run
// id so the output of concurrent invocations can be told apart.
func (o *RootOptions) setup(stderr io.Writer) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}
	o.RunID = id.String()

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", o.RunID)

	if o.Metrics {
		o.prom = metrics.NewPrometheus("modelir", nil)
		o.Recorder = o.prom
	}
	return nil
}

func (o *RootOptions) dumpMetrics(w io.Writer) error {
	if o.prom == nil {
		return nil
	}
	return o.prom.WriteText(w)
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *RootOptions) recorder() metrics.Recorder {
	if o.Recorder == nil {
		return metrics.Noop{}
	}
	return o.Recorder
}

// traverseOptions returns the pass options every command uses.
func (o *RootOptions) traverseOptions() []traverse.Option {
	return []traverse.Option{traverse.WithLogger(o.logger()), traverse.WithRecorder(o.recorder())}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		RunID:     o.RunID,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
