package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/loader"
)

func TestCopyCommandKeepsTreeShape(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "copy", counterModel, "-p", counterProps, "--expand")
	require.NoError(t, err)

	var result CopyResult
	resp := decode(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, "model", result.Documents[0].Kind)
	assert.Equal(t, "properties", result.Documents[1].Kind)

	// Structurally equal propositions may merge in the copy, so it never
	// has more distinct nodes than its source.
	for _, d := range result.Documents {
		assert.Equal(t, d.Source.TreeSize, d.Copy.TreeSize, d.Kind)
		assert.Equal(t, d.Source.Depth, d.Copy.Depth, d.Kind)
		assert.LessOrEqual(t, d.Copy.Nodes, d.Source.Nodes, d.Kind)
	}
	assert.Positive(t, result.Documents[0].Source.Shared)
	assert.Positive(t, result.IdentityHits+result.StructuralHits)
}

func TestCopyCommandWithoutMemo(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "copy", counterModel, "--expand", "--no-memo")
	require.NoError(t, err)

	var result CopyResult
	decode(t, out, &result)
	require.Len(t, result.Documents, 1)

	d := result.Documents[0]
	assert.Positive(t, d.Source.Shared)
	assert.Zero(t, d.Copy.Shared)
	assert.Equal(t, d.Copy.TreeSize, int64(d.Copy.Nodes))
	assert.Equal(t, d.Source.TreeSize, d.Copy.TreeSize)
	assert.Zero(t, result.IdentityHits)
	assert.Zero(t, result.StructuralHits)
}

func TestCopyCommandText(t *testing.T) {
	out, _, err := execute(t, "copy", counterModel, "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "formula below = x<N;")
	assert.Contains(t, out, "model: ")
	assert.Contains(t, out, "handler calls: ")
}

func TestExpandCommand(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "expand", counterModel, "-p", counterProps)
	require.NoError(t, err)

	var result ExpandResult
	decode(t, out, &result)
	assert.Contains(t, result.Model, "formula below = x<N;")
	assert.NotEmpty(t, result.Properties)
	require.NotNil(t, result.Report)
	assert.Positive(t, result.Report.Shared)
}

func TestExpandCommandText(t *testing.T) {
	out, _, err := execute(t, "expand", counterModel)
	require.NoError(t, err)
	assert.Contains(t, out, "formula below = x<N;")
}

func TestEvalCommand(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "eval", counterModel, "-p", counterProps,
		"--const", "p=0.5", "--state", "x=0,y=0")
	require.NoError(t, err)

	var result EvalResult
	decode(t, out, &result)
	assert.Equal(t, "(0,0)", result.State)
	assert.Contains(t, result.Constants, "twice=6")

	byTarget := map[string]EvalRow{}
	for _, row := range result.Rows {
		byTarget[row.Kind+" "+row.Name] = row
	}
	assert.Equal(t, "false", byTarget["label done"].Value)
	assert.Equal(t, "true", byTarget["formula below"].Value)
	assert.Equal(t, "true", byTarget["property small"].Value)
	assert.Equal(t, "NOT_EVALUABLE", byTarget["property reach"].Error)
	assert.Empty(t, byTarget["property reach"].Value)
}

func TestEvalCommandTargets(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "eval", counterModel, "-p", counterProps,
		"-c", "p=0.5", "-s", "x=3,y=3", "-t", "property:#3", "-t", "label:done")
	require.NoError(t, err)

	var result EvalResult
	decode(t, out, &result)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, EvalRow{Kind: "property", Name: "#3", Value: "true"}, result.Rows[0])
	assert.Equal(t, EvalRow{Kind: "label", Name: "done", Value: "true"}, result.Rows[1])
}

func TestEvalCommandCache(t *testing.T) {
	args := []string{"--format", "json", "eval", counterModel, "-c", "p=0.5", "-s", "x=0,y=0",
		"-t", "formula:below", "-t", "formula:below"}

	out, _, err := execute(t, args...)
	require.NoError(t, err)
	var cached EvalResult
	decode(t, out, &cached)
	assert.Positive(t, cached.CacheHits)

	out, _, err = execute(t, append(args, "--no-cache")...)
	require.NoError(t, err)
	var uncached EvalResult
	decode(t, out, &uncached)
	assert.Zero(t, uncached.CacheHits)
	assert.Zero(t, uncached.CacheMisses)
	assert.Equal(t, cached.Rows, uncached.Rows)
}

func TestEvalCommandText(t *testing.T) {
	out, _, err := execute(t, "eval", counterModel, "-c", "p=0.5", "-s", "y=3")
	require.NoError(t, err)
	assert.Contains(t, out, "state (?,3) with N=3,p=0.5")
	assert.Contains(t, out, "label")
	assert.Contains(t, out, "error UNDEFINED")
}

func TestEvalCommandUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad state", []string{"-s", "x"}, "--state"},
		{"unknown variable", []string{"-s", "z=1"}, "unknown variable"},
		{"bad const", []string{"-c", "p"}, "--const"},
		{"bad target kind", []string{"-t", "reward:steps"}, "invalid target"},
		{"missing target name", []string{"-t", "label:"}, "missing name"},
		{"unknown property", []string{"-t", "property:nope"}, "unknown property"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--format", "json", "eval", counterModel, "-c", "p=0.5"}, tt.args...)
			out, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decode(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeUsage, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.want)
		})
	}
}

func TestCommandLoadErrors(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "stats", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decode(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, loader.ErrCodeRead, resp.Error.Code)
}

func TestStatsCommand(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "stats", counterModel, "-p", counterProps)
	require.NoError(t, err)

	var docs []StatsDocument
	decode(t, out, &docs)
	require.Len(t, docs, 2)
	assert.Equal(t, "model", docs[0].Kind)
	assert.Equal(t, "properties", docs[1].Kind)
	assert.Positive(t, docs[0].Report.Nodes)
	assert.GreaterOrEqual(t, docs[0].Report.TreeSize, int64(docs[0].Report.Nodes))
}

func TestStatsCommandExpandAddsSharing(t *testing.T) {
	var plain, expanded []StatsDocument

	out, _, err := execute(t, "--format", "json", "stats", counterModel)
	require.NoError(t, err)
	decode(t, out, &plain)

	out, _, err = execute(t, "--format", "json", "stats", counterModel, "--expand")
	require.NoError(t, err)
	decode(t, out, &expanded)

	require.Len(t, plain, 1)
	require.Len(t, expanded, 1)
	assert.Greater(t, expanded[0].Report.Shared, plain[0].Report.Shared)
}

func TestStatsCommandText(t *testing.T) {
	out, _, err := execute(t, "stats", counterModel)
	require.NoError(t, err)
	assert.Contains(t, out, "model\n")
	assert.Contains(t, out, "tree size")
	assert.Contains(t, out, "depth")
}
