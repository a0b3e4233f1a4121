package github_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/textmerge/internal/github"
	"github.com/speakeasy-api/textmerge/internal/markers"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortConflicts(t *testing.T) {
	t.Parallel()

	errs := []*merging.ConflictError{
		{Path: "b.txt", Line: 3},
		{Path: "a.txt", Line: 10},
		{Path: "b.txt", Line: 1},
		{Path: "a.txt", Line: 2},
	}

	github.SortConflicts(errs)

	assert.Equal(t, []*merging.ConflictError{
		{Path: "a.txt", Line: 2},
		{Path: "a.txt", Line: 10},
		{Path: "b.txt", Line: 1},
		{Path: "b.txt", Line: 3},
	}, errs)
}

func testResults() []merging.MergeResult {
	return []merging.MergeResult{
		{Path: "clean.txt", Status: merging.MergeStatusClean, Content: []byte("a\n")},
		{
			Path:      "conflict.txt",
			Status:    merging.MergeStatusConflict,
			Content:   []byte("x\n"),
			Conflicts: make([]merge.MergeConflict, 2),
			Regions:   []markers.Region{{StartLine: 9}, {StartLine: 1}},
		},
		{Path: "broken.txt", Error: errors.New("permission denied")},
	}
}

func TestMergeSummaryMarkdown(t *testing.T) {
	t.Parallel()

	md := github.MergeSummaryMarkdown(testResults())

	assert.Contains(t, md, "# Merge Summary")
	assert.Contains(t, md, "3 files merged (4 B)")
	assert.Contains(t, md, "| `conflict.txt` | CONFLICT")
	assert.Contains(t, md, "| 1, 9 ")
	assert.Contains(t, md, "ERROR: permission denied")
}

func TestGenerateMergeSummary(t *testing.T) {
	dir := t.TempDir()
	summaryFile := filepath.Join(dir, "summary.md")
	outputFile := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(summaryFile, nil, 0o644))
	require.NoError(t, os.WriteFile(outputFile, nil, 0o644))

	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_STEP_SUMMARY", summaryFile)
	t.Setenv("GITHUB_OUTPUT", outputFile)

	github.GenerateMergeSummary(context.Background(), testResults())

	summary, err := os.ReadFile(summaryFile)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "# Merge Summary")

	output, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(output), "conflicts")
}

func TestGenerateMergeSummary_OutsideActions(t *testing.T) {
	summaryFile := filepath.Join(t.TempDir(), "summary.md")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITHUB_STEP_SUMMARY", summaryFile)

	github.GenerateMergeSummary(context.Background(), testResults())

	assert.NoFileExists(t, summaryFile)
}
