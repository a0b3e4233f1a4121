package merge

import (
	"strings"

	"github.com/speakeasy-api/textmerge/internal/diff"
)

// text is a normalized input: every line carries its terminator and eol records
// whether the original ended with one. An empty text counts as terminated.
type text struct {
	lines []string
	eol   bool
}

func normalize(s string) text {
	t := text{lines: diff.SplitLines(s), eol: s == "" || strings.HasSuffix(s, "\n")}
	if !t.eol {
		t.lines[len(t.lines)-1] += "\n"
	}
	return t
}

// lastLine returns the final line as it appears in the original text.
func (t text) lastLine() (string, bool) {
	if len(t.lines) == 0 {
		return "", false
	}
	last := t.lines[len(t.lines)-1]
	if !t.eol {
		last = strings.TrimSuffix(last, "\n")
	}
	return last, true
}

func (t text) String() string {
	return join(t.lines, t.eol)
}

func join(lines []string, eol bool) string {
	s := strings.Join(lines, "")
	if !eol {
		s = strings.TrimSuffix(s, "\n")
	}
	return s
}

// mergeEOL decides whether the merged text ends with a newline. A conflict
// reaching the end of base takes remote's ending, otherwise whichever side
// changed it wins, remote first.
func mergeEOL(base, remote, local text, conflicts []MergeConflict) bool {
	if n := len(conflicts); n > 0 && conflicts[n-1].TouchesEnd(len(base.lines)) {
		return remote.eol
	}
	if remote.eol != base.eol {
		return remote.eol
	}
	return local.eol
}

// restoreLastLines strips the normalizing terminator from the final entry of
// each side of a conflict that reaches the end of base.
func restoreLastLines(c *MergeConflict, base, remote, local text) {
	c.Base = fixLastLine(c.Base, base)
	c.Remote = fixLastLine(c.Remote, remote)
	c.Local = fixLastLine(c.Local, local)
}

func fixLastLine(lines []string, t text) []string {
	final, ok := t.lastLine()
	if !ok || len(lines) == 0 {
		return lines
	}
	last := lines[len(lines)-1]
	if last != final && strings.TrimSuffix(last, "\n") == final {
		lines[len(lines)-1] = final
	}
	return lines
}

// simpleMerge resolves the trivial cases without diffing.
func simpleMerge(base, remote, local string) (string, bool) {
	switch {
	case remote == local:
		return remote, true
	case base == remote:
		return local, true
	case base == local:
		return remote, true
	default:
		return "", false
	}
}
