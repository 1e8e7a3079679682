package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/modelir/internal/analysis"
	"github.com/roach88/modelir/internal/printer"
)

// ExpandOptions holds flags for the expand command.
type ExpandOptions struct {
	*RootOptions
	Props  string
	Attach bool // keep references, attach definitions
}

// ExpandResult is the output of the expand command.
type ExpandResult struct {
	Model      string           `json:"model"`
	Properties string           `json:"properties,omitempty"`
	Report     *analysis.Report `json:"report"` // Shape of the expanded model
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "expand <model>",
		Short: "Substitute formula definitions for formula references",
		Long: `Replace every formula reference by its definition and print the result.

The definition of each formula is expanded once and shared by all of its
references, so the expanded model is a DAG. With --attach the references are
kept and carry the shared definition instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "properties document")
	cmd.Flags().BoolVar(&opts.Attach, "attach", false, "keep references and attach their definitions")

	return cmd
}

func runExpand(opts *ExpandOptions, modelPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	docs, err := loadDocuments(modelPath, opts.Props)
	if err != nil {
		return fail(formatter, err)
	}
	expanded, err := expandDocuments(docs, opts.Attach, opts.traverseOptions())
	if err != nil {
		return fail(formatter, err)
	}

	result := ExpandResult{}
	if result.Model, err = printer.String(expanded.Model); err != nil {
		return fail(formatter, err)
	}
	if expanded.Properties != nil {
		if result.Properties, err = printer.String(expanded.Properties); err != nil {
			return fail(formatter, err)
		}
	}
	if result.Report, err = analysis.Analyze(expanded.Model, opts.traverseOptions()...); err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("expanded model: %d node(s), %d shared", result.Report.Nodes, result.Report.Shared)

	return formatter.Emit(result, func(w io.Writer) error {
		fmt.Fprint(w, result.Model)
		if result.Properties != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, result.Properties)
		}
		return nil
	})
}
