// Package resolve turns a conflicted merge outcome into plain text by picking a side for every conflict.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/textmerge/internal/diff"
	"github.com/speakeasy-api/textmerge/internal/merge"
)

type Choice string

const (
	ChoiceRemote Choice = "remote"
	ChoiceLocal  Choice = "local"
	ChoiceBase   Choice = "base"
	// ChoiceBoth keeps the local lines followed by the remote lines.
	ChoiceBoth Choice = "both"
)

var Choices = []Choice{ChoiceRemote, ChoiceLocal, ChoiceBase, ChoiceBoth}

var ErrChoiceCount = errors.New("number of choices does not match number of conflicts")

func ParseChoice(s string) (Choice, error) {
	for _, c := range Choices {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q (available options: [remote, local, base, both])", s)
}

// Lines returns the lines c selects from a conflict.
func (c Choice) Lines(conflict merge.MergeConflict) []string {
	switch c {
	case ChoiceLocal:
		return conflict.Local
	case ChoiceBase:
		return conflict.Base
	case ChoiceBoth:
		lines := append([]string{}, conflict.Local...)
		return append(lines, conflict.Remote...)
	default:
		return conflict.Remote
	}
}

// Apply resolves every conflict of o with the matching choice.
func Apply(o merge.Outcome, choices []Choice) (string, error) {
	if len(choices) != len(o.Conflicts) {
		return "", fmt.Errorf("%w: %d choices for %d conflicts", ErrChoiceCount, len(choices), len(o.Conflicts))
	}

	merged := diff.SplitLines(o.Text)
	var out []string
	pos := 0
	for i, c := range o.Conflicts {
		start, end := c.MergedSpan()
		start = min(max(start, pos), len(merged))
		end = min(max(end, start), len(merged))

		out = append(out, merged[pos:start]...)
		out = append(out, choices[i].Lines(c)...)
		pos = end
	}
	out = append(out, merged[pos:]...)

	return strings.Join(terminate(out), ""), nil
}

// All resolves every conflict of o the same way.
func All(o merge.Outcome, choice Choice) string {
	choices := make([]Choice, len(o.Conflicts))
	for i := range choices {
		choices[i] = choice
	}
	resolved, _ := Apply(o, choices)
	return resolved
}

// terminate adds a newline to every line but the last that lacks one.
func terminate(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if i < len(lines)-1 && !strings.HasSuffix(l, "\n") {
			l += "\n"
		}
		out[i] = l
	}
	return out
}
