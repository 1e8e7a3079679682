package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/modelir/internal/analysis"
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/deepcopy"
	"github.com/roach88/modelir/internal/printer"
	"github.com/roach88/modelir/internal/subst"
	"github.com/roach88/modelir/internal/traverse"
)

// CopyOptions holds flags for the copy command.
type CopyOptions struct {
	*RootOptions
	Props  string // properties document
	Expand bool   // expand formulas before copying
	NoMemo bool   // copy without the identity memo
	Print  bool   // print the copied documents
}

// CopyDocument compares one source document with its copy.
type CopyDocument struct {
	Kind   string           `json:"kind"` // "model" or "properties"
	Source *analysis.Report `json:"source"`
	Copy   *analysis.Report `json:"copy"`
	Text   string           `json:"text,omitempty"`
}

// CopyResult is the output of the copy command.
type CopyResult struct {
	Documents      []CopyDocument `json:"documents"`
	HandlerCalls   int            `json:"handler_calls"`
	IdentityHits   int            `json:"identity_hits"`
	StructuralHits int            `json:"structural_hits"`
}

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CopyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "copy <model>",
		Short: "Deep-copy a model and compare the copy's shape",
		Long: `Deep-copy a model (and optional properties) and report the shape of
source and copy side by side.

A copy has fresh identity but the same sharing as its source: a node
reachable along several paths is cloned once. With --no-memo every path is
cloned separately, which shows what the identity memo saves.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "properties document")
	cmd.Flags().BoolVar(&opts.Expand, "expand", false, "expand formulas before copying")
	cmd.Flags().BoolVar(&opts.NoMemo, "no-memo", false, "disable the identity memo")
	cmd.Flags().BoolVar(&opts.Print, "print", false, "print the copied documents")

	return cmd
}

func runCopy(opts *CopyOptions, modelPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	docs, err := loadDocuments(modelPath, opts.Props)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.Expand {
		if docs, err = expandDocuments(docs, false, opts.traverseOptions()); err != nil {
			return fail(formatter, err)
		}
	}

	copyOpts := append(opts.traverseOptions(), traverse.WithName("copy"))
	if opts.NoMemo {
		copyOpts = append(copyOpts, traverse.WithoutMemo())
	}
	copier := deepcopy.New(copyOpts...)

	result := CopyResult{}
	for _, root := range docs.roots() {
		clone, err := copier.Copy(root)
		if err != nil {
			return fail(formatter, err)
		}
		doc, err := compareCopy(root, clone, opts)
		if err != nil {
			return fail(formatter, err)
		}
		result.Documents = append(result.Documents, doc)
	}
	copier.Report()

	stats := copier.Stats()
	result.HandlerCalls = stats.HandlerCalls
	result.IdentityHits = stats.IdentityHits
	result.StructuralHits = stats.StructuralHits
	logger.Debug("copy finished",
		"documents", len(result.Documents),
		"handler_calls", stats.HandlerCalls,
		"identity_hits", stats.IdentityHits,
	)

	return formatter.Emit(result, func(w io.Writer) error {
		return writeCopyText(w, &result)
	})
}

func compareCopy(root, clone ast.Node, opts *CopyOptions) (CopyDocument, error) {
	doc := CopyDocument{Kind: documentKind(root)}
	var err error
	if doc.Source, err = analysis.Analyze(root, opts.traverseOptions()...); err != nil {
		return doc, err
	}
	if doc.Copy, err = analysis.Analyze(clone, opts.traverseOptions()...); err != nil {
		return doc, err
	}
	if opts.Print {
		if doc.Text, err = printer.String(clone); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

func documentKind(n ast.Node) string {
	if _, ok := n.(*ast.PropertiesFile); ok {
		return "properties"
	}
	return "model"
}

func writeCopyText(w io.Writer, r *CopyResult) error {
	for _, d := range r.Documents {
		if d.Text != "" {
			fmt.Fprintln(w, d.Text)
		}
		fmt.Fprintf(w, "%s: %d node(s), %d shared -> copy: %d node(s), %d shared\n",
			d.Kind, d.Source.Nodes, d.Source.Shared, d.Copy.Nodes, d.Copy.Shared)
	}
	_, err := fmt.Fprintf(w, "handler calls: %d, identity hits: %d, structural hits: %d\n",
		r.HandlerCalls, r.IdentityHits, r.StructuralHits)
	return err
}

// expandDocuments expands formulas in the model and the properties. With
// attach the references stay and carry their definitions.
func expandDocuments(docs *documents, attach bool, opts []traverse.Option) (*documents, error) {
	rewrite := subst.ExpandFormulas
	if attach {
		rewrite = subst.AttachFormulas
	}

	modelFormulas := docs.Model.Formulas
	out, err := rewrite(docs.Model, []*ast.FormulaList{modelFormulas}, opts...)
	if err != nil {
		return nil, err
	}
	expanded := &documents{Model: out.(*ast.ModulesFile)}

	if docs.Properties != nil {
		out, err := rewrite(docs.Properties, []*ast.FormulaList{docs.Properties.Formulas, modelFormulas}, opts...)
		if err != nil {
			return nil, err
		}
		expanded.Properties = out.(*ast.PropertiesFile)
	}
	return expanded, nil
}
