package merge

import (
	"github.com/samber/lo"
)

// HunkKind describes what a hunk does to the base text.
type HunkKind int

const (
	HunkAdded HunkKind = iota
	HunkRemoved
	HunkReplaced
)

func (k HunkKind) String() string {
	switch k {
	case HunkAdded:
		return "added"
	case HunkRemoved:
		return "removed"
	case HunkReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Hunk is a maximal run of changed lines.
//
// For removed and replaced hunks, Start and End are the first and last removed
// base indices. An added hunk sits between base lines: Start and End both equal
// the index of the base line its content follows.
type Hunk struct {
	Kind  HunkKind
	Start int
	End   int
	Lines []Line
}

func newHunk(l Line) *Hunk {
	kind := HunkRemoved
	if l.Kind == LineAdded {
		kind = HunkAdded
	}
	return &Hunk{Kind: kind, Start: l.Index, End: l.Index, Lines: []Line{l}}
}

func (h *Hunk) add(l Line) {
	h.Lines = append(h.Lines, l)
	h.End = l.Index
}

// RemovedLines returns the base lines the hunk deletes.
func (h Hunk) RemovedLines() []Line {
	return lo.Filter(h.Lines, func(l Line, _ int) bool {
		return l.Kind == LineRemoved
	})
}

// AddedLines returns the lines the hunk inserts.
func (h Hunk) AddedLines() []Line {
	return lo.Filter(h.Lines, func(l Line, _ int) bool {
		return l.Kind == LineAdded
	})
}

// AddedContents returns the content of the inserted lines.
func (h Hunk) AddedContents() []string {
	return lo.Map(h.AddedLines(), func(l Line, _ int) string {
		return l.Content
	})
}

// AffectsLine reports whether the hunk touches base line index.
// An added hunk also touches the line right after its insertion point.
func (h Hunk) AffectsLine(index int) bool {
	bleed := 0
	if h.Kind == HunkAdded {
		bleed = 1
	}
	return index >= h.Start && index <= h.End+bleed
}

// Intersects reports whether two hunks overlap. Two added hunks only overlap
// when they insert at the same point.
func (h Hunk) Intersects(other *Hunk) bool {
	if other == nil {
		return false
	}
	if h.Kind == HunkAdded && other.Kind == HunkAdded {
		return h.Start == other.Start
	}
	return h.AffectsLine(other.Start) ||
		h.AffectsLine(other.End) ||
		other.AffectsLine(h.Start) ||
		other.AffectsLine(h.End)
}

// Equal compares hunks structurally.
func (h Hunk) Equal(other Hunk) bool {
	if h.Kind != other.Kind || h.Start != other.Start || h.End != other.End || len(h.Lines) != len(other.Lines) {
		return false
	}
	for i, l := range h.Lines {
		o := other.Lines[i]
		if l.Kind != o.Kind || l.Content != o.Content {
			return false
		}
	}
	return true
}

// BuildHunks groups tagged lines into hunks, ordered by start.
//
// A run of removed lines followed by added lines becomes a single replaced
// hunk. Unchanged lines close the open hunk, as does a removal following an
// insertion.
func BuildHunks(lines []Line) []Hunk {
	var (
		hunks   []Hunk
		current *Hunk
	)
	flush := func() {
		if current != nil {
			hunks = append(hunks, *current)
			current = nil
		}
	}

	prev := LineUnchanged
	for _, l := range lines {
		switch l.Kind {
		case LineRemoved:
			if prev == LineRemoved && current != nil {
				current.add(l)
			} else {
				flush()
				current = newHunk(l)
			}
		case LineAdded:
			switch {
			case current == nil:
				current = newHunk(l)
			case prev == LineRemoved:
				current.Kind = HunkReplaced
				current.Lines = append(current.Lines, l)
			default:
				current.Lines = append(current.Lines, l)
			}
		default:
			flush()
		}
		prev = l.Kind
	}
	flush()

	return hunks
}
