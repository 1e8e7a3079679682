package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/modelir/internal/analysis"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Props  string
	Expand bool
}

// StatsDocument is the shape report of one document.
type StatsDocument struct {
	Kind   string           `json:"kind"`
	Report *analysis.Report `json:"report"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats <model>",
		Short: "Report node counts and sharing of a model",
		Long: `Report the shape of a model (and optional properties): distinct nodes,
nodes per kind, shared nodes, propositions, depth, and the size the graph
would have as a tree. Use --expand to see the sharing formula expansion
introduces.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "properties document")
	cmd.Flags().BoolVar(&opts.Expand, "expand", false, "expand formulas first")

	return cmd
}

func runStats(opts *StatsOptions, modelPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	docs, err := loadDocuments(modelPath, opts.Props)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.Expand {
		if docs, err = expandDocuments(docs, false, opts.traverseOptions()); err != nil {
			return fail(formatter, err)
		}
	}

	var result []StatsDocument
	for _, root := range docs.roots() {
		report, err := analysis.Analyze(root, opts.traverseOptions()...)
		if err != nil {
			return fail(formatter, err)
		}
		result = append(result, StatsDocument{Kind: documentKind(root), Report: report})
	}

	return formatter.Emit(result, func(w io.Writer) error {
		for i, d := range result {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s\n", d.Kind)
			if err := d.Report.Write(w); err != nil {
				return err
			}
		}
		return nil
	})
}
