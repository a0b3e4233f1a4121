// Package diff adapts line-level diff libraries to the edit script consumed by the merge engine.
//
// An edit script is an ordered list of lines, each tagged Equal, Insert or Delete. Equal and
// Delete entries consume one line of the old text, Insert entries consume one line of the new
// text. Within a run of changes, deletions are always reported before insertions.
package diff

import (
	"fmt"
	"strings"
)

// Op is the operation tag of a single edit.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Edit is one line of an edit script.
type Edit struct {
	Content string
	Op      Op
}

// Differ computes a line-level edit script turning old into new.
type Differ interface {
	Diff(old, new []string) []Edit
}

const (
	NameLCS   = "lcs"
	NameMyers = "myers"
)

// Names lists the differs available through Named.
var Names = []string{NameLCS, NameMyers}

// Default returns the differ used when none is configured.
func Default() Differ {
	return LCS{}
}

// Named resolves a differ by its configuration name.
func Named(name string) (Differ, error) {
	switch strings.ToLower(name) {
	case "", NameLCS:
		return LCS{}, nil
	case NameMyers:
		return Myers{}, nil
	}
	return nil, fmt.Errorf("unknown differ %q (available options: [%s])", name, strings.Join(Names, ", "))
}

// SplitLines splits text into lines, keeping each line's "\n" terminator.
// The last line has no terminator when the text does not end with one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// appendLines tags every line with op.
func appendLines(edits []Edit, lines []string, op Op) []Edit {
	for _, l := range lines {
		edits = append(edits, Edit{Content: l, Op: op})
	}
	return edits
}

// commonAffixes returns the length of the common prefix and the common suffix of a and b.
// The suffix never overlaps the prefix.
func commonAffixes(a, b []string) (prefix, suffix int) {
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}
