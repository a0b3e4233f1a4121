package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"github.com/speakeasy-api/textmerge/internal/config"
	"github.com/speakeasy-api/textmerge/internal/diff"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/reports"
)

// newMerger builds a line merger for the named differ, falling back to the configured one.
func newMerger(differ string) (*merge.Merger, error) {
	if differ == "" {
		differ = config.GetDiffer()
	}

	d, err := diff.Named(differ)
	if err != nil {
		return nil, err
	}

	return merge.NewMerger(merge.WithDiffer(d)), nil
}

func reportFormat(format string) (reports.Format, error) {
	if format == "" {
		format = config.GetFormat()
	}
	if !slices.Contains(reports.Formats, format) {
		return "", fmt.Errorf("invalid format %q, expected one of [%s]", format, strings.Join(reports.Formats, ", "))
	}
	return reports.Format(format), nil
}

func writeReport(w io.Writer, format reports.Format, results []merging.MergeResult) error {
	if err := reports.Encode(w, format, reports.New(results)); err != nil {
		return errors.Wrapf(err, "failed to encode %s report", format)
	}
	return nil
}

// conflictsErr returns ErrConflicts when any result still carries conflicts.
func conflictsErr(results []merging.MergeResult) error {
	summary := merging.Summarize(results)
	if summary.Conflicts == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s in %s", ErrConflicts, pluralConflicts(summary.Conflicts), english.Plural(summary.Counts[merging.MergeStatusConflict], "file", ""))
}

func lineCount(content []byte) string {
	return english.Plural(len(diff.SplitLines(string(content))), "line", "")
}

func pluralConflicts(n int) string {
	return english.Plural(n, "conflict", "")
}
