// Package markers renders merge conflicts as diff3-style marked-up text and parses such text back.
package markers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/textmerge/internal/diff"
	"github.com/speakeasy-api/textmerge/internal/merge"
)

const (
	Start     = "<<<<<<< HEAD"
	Ancestor  = "||||||| merged common ancestors"
	Separator = "======="
	End       = ">>>>>>> original"
)

var ErrMalformedMarkers = errors.New("malformed conflict markers")

// Render replaces the remote lines of every conflict in the merged text with a
// marked-up block holding the local, base and remote versions, in that order.
func Render(o merge.Outcome) string {
	merged := diff.SplitLines(o.Text)

	var sb strings.Builder
	pos := 0
	for _, c := range o.Conflicts {
		start, end := c.MergedSpan()
		start = min(max(start, pos), len(merged))
		end = min(max(end, start), len(merged))

		writeLines(&sb, merged[pos:start])
		writeMarker(&sb, Start)
		writeLines(&sb, c.Local)
		writeMarker(&sb, Ancestor)
		writeLines(&sb, c.Base)
		writeMarker(&sb, Separator)
		writeLines(&sb, c.Remote)
		writeMarker(&sb, End)

		pos = end
	}
	writeLines(&sb, merged[pos:])

	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l)
	}
}

func writeMarker(sb *strings.Builder, marker string) {
	if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(marker)
	sb.WriteByte('\n')
}

type section int

const (
	outside section = iota
	inLocal
	inBase
	inRemote
)

func markerOf(line string) (string, bool) {
	trimmed := strings.TrimRight(line, "\r\n")
	switch trimmed {
	case Start, Ancestor, Separator, End:
		return trimmed, true
	}
	return "", false
}

// Parse reads marked-up text back into a merge outcome. The outcome's text
// resolves every conflict in favor of remote. Base is the common ancestor the
// markup was produced from; it is used to place each conflict in base
// coordinates.
//
// The markup does not record whether a region at the very start of the text
// began with an insertion ahead of its first base line, so MergedLine for such
// a region is taken to be its RemoteStart.
func Parse(markup, base string) (merge.Outcome, error) {
	var (
		merged     []string
		projection []string
		conflicts  []merge.MergeConflict
		starts     []int
		current    merge.MergeConflict
		state      = outside
	)

	for n, line := range diff.SplitLines(markup) {
		marker, isMarker := markerOf(line)

		switch state {
		case outside:
			if marker == Start {
				current = merge.MergeConflict{
					Base:        []string{},
					Remote:      []string{},
					Local:       []string{},
					MergedLine:  len(merged),
					RemoteStart: len(merged),
				}
				starts = append(starts, len(projection))
				state = inLocal
				continue
			}
			merged = append(merged, line)
			projection = append(projection, line)
		case inLocal:
			if isMarker {
				if marker != Ancestor {
					return merge.Outcome{}, unexpected(n, marker, Ancestor)
				}
				state = inBase
				continue
			}
			current.Local = append(current.Local, line)
		case inBase:
			if isMarker {
				if marker != Separator {
					return merge.Outcome{}, unexpected(n, marker, Separator)
				}
				state = inRemote
				continue
			}
			current.Base = append(current.Base, line)
			projection = append(projection, line)
		case inRemote:
			if isMarker {
				if marker != End {
					return merge.Outcome{}, unexpected(n, marker, End)
				}
				merged = append(merged, current.Remote...)
				conflicts = append(conflicts, current)
				state = outside
				continue
			}
			current.Remote = append(current.Remote, line)
		}
	}

	if state != outside {
		return merge.Outcome{}, fmt.Errorf("%w: conflict opened but never closed", ErrMalformedMarkers)
	}

	index := baseIndexer(projection, diff.SplitLines(base))
	for i := range conflicts {
		c := &conflicts[i]
		if len(c.Base) > 0 {
			c.BaseLine = index(starts[i])
			continue
		}
		c.BaseLine = index(starts[i]) - 1
		if c.BaseLine >= 0 && c.MergedLine > 0 {
			c.MergedLine--
		}
	}

	return merge.Outcome{Text: strings.Join(merged, ""), Conflicts: conflicts}, nil
}

func unexpected(n int, got, want string) error {
	return fmt.Errorf("%w: line %d: found %q, expected %q", ErrMalformedMarkers, n+1, got, want)
}

// baseIndexer maps projection positions to base indices. Positions that did not
// match a base line map just past the closest matched position before them.
func baseIndexer(projection, base []string) func(int) int {
	mapped := make(map[int]int, len(projection))
	pi, bi := 0, 0
	for _, e := range diff.Default().Diff(terminated(projection), terminated(base)) {
		switch e.Op {
		case diff.OpEqual:
			mapped[pi] = bi
			pi++
			bi++
		case diff.OpDelete:
			pi++
		case diff.OpInsert:
			bi++
		}
	}

	return func(p int) int {
		if b, ok := mapped[p]; ok {
			return b
		}
		for q := p - 1; q >= 0; q-- {
			if b, ok := mapped[q]; ok {
				return b + 1
			}
		}
		return 0
	}
}

func terminated(lines []string) []string {
	if len(lines) == 0 || strings.HasSuffix(lines[len(lines)-1], "\n") {
		return lines
	}
	out := append([]string{}, lines...)
	out[len(out)-1] += "\n"
	return out
}

// Has reports whether text contains an opening conflict marker.
func Has(text string) bool {
	for _, line := range diff.SplitLines(text) {
		if m, ok := markerOf(line); ok && m == Start {
			return true
		}
	}
	return false
}
