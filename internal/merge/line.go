package merge

import (
	"github.com/speakeasy-api/textmerge/internal/diff"
)

// LineKind classifies a line of a diff against the base text.
type LineKind int

const (
	LineUnchanged LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) String() string {
	switch k {
	case LineUnchanged:
		return "unchanged"
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Line is a single diff line positioned against the base text.
//
// Index is the position of the line in the base for unchanged and removed lines.
// For added lines it is the index of the base line the insertion follows, so -1
// means "before the first line".
type Line struct {
	Kind    LineKind
	Content string
	Index   int
}

// TagLines assigns base indices to a diff of base against another text.
func TagLines(edits []diff.Edit) ([]Line, error) {
	lines := make([]Line, 0, len(edits))
	index := -1

	for pos, e := range edits {
		switch e.Op {
		case diff.OpEqual:
			index++
			lines = append(lines, Line{Kind: LineUnchanged, Content: e.Content, Index: index})
		case diff.OpDelete:
			index++
			lines = append(lines, Line{Kind: LineRemoved, Content: e.Content, Index: index})
		case diff.OpInsert:
			lines = append(lines, Line{Kind: LineAdded, Content: e.Content, Index: index})
		default:
			return nil, &UnsupportedOpError{Op: e.Op, Position: pos}
		}
	}

	return lines, nil
}
