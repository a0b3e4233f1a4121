package github

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"github.com/speakeasy-api/textmerge/internal/env"
	"github.com/speakeasy-api/textmerge/internal/markdown"
	"github.com/speakeasy-api/textmerge/internal/merging"
)

// GenerateMergeSummary adds a table of merged files to the job summary and
// exposes the conflict count as the "conflicts" step output.
func GenerateMergeSummary(ctx context.Context, results []merging.MergeResult) {
	defer func() {
		if r := recover(); r != nil {
			if env.IsGithubDebugMode() {
				fmt.Printf("::debug::%v\n", r)
			}
		}
	}()

	if !env.IsGithubAction() {
		return
	}

	summary := merging.Summarize(results)

	githubactions.AddStepSummary(MergeSummaryMarkdown(results))
	githubactions.SetOutput("conflicts", strconv.Itoa(summary.Conflicts))
	githubactions.SetOutput("files", strconv.Itoa(summary.Files))
}

func MergeSummaryMarkdown(results []merging.MergeResult) string {
	contents := [][]string{{"File", "Status", "Conflicts", "Lines"}}

	for _, r := range results {
		status := string(r.Status)
		if r.Error != nil {
			status = "ERROR: " + r.Error.Error()
		}

		errs := r.ConflictErrors()
		SortConflicts(errs)
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = strconv.Itoa(e.LineNumber())
		}

		contents = append(contents, []string{markdown.CodeSpan(r.Path), status, strconv.Itoa(len(r.Conflicts)), strings.Join(lines, ", ")})
	}

	return fmt.Sprintf("# Merge Summary\n\n%s\n\n%s", merging.Summarize(results), markdown.CreateMarkdownTable(contents))
}

// SortConflicts orders conflicts by file, then by line.
func SortConflicts(errs []*merging.ConflictError) {
	slices.SortStableFunc(errs, func(i, j *merging.ConflictError) int {
		if c := strings.Compare(i.Path, j.Path); c != 0 {
			return c
		}
		return i.Line - j.Line
	})
}
