package diff

import (
	"github.com/pmezard/go-difflib/difflib"
)

// LCS is a longest-common-subsequence differ. The common prefix and suffix are matched first,
// so repeated lines at the edges of a change are always paired by position, and the remaining
// middle is matched with difflib's SequenceMatcher (autojunk disabled).
type LCS struct{}

var _ Differ = LCS{}

func (LCS) Diff(old, new []string) []Edit {
	prefix, suffix := commonAffixes(old, new)

	edits := make([]Edit, 0, len(old)+len(new)-prefix-suffix)
	edits = appendLines(edits, old[:prefix], OpEqual)

	a := old[prefix : len(old)-suffix]
	b := new[prefix : len(new)-suffix]

	switch {
	case len(a) == 0:
		edits = appendLines(edits, b, OpInsert)
	case len(b) == 0:
		edits = appendLines(edits, a, OpDelete)
	default:
		m := difflib.NewMatcherWithJunk(a, b, false, nil)
		for _, op := range m.GetOpCodes() {
			switch op.Tag {
			case 'e':
				edits = appendLines(edits, a[op.I1:op.I2], OpEqual)
			case 'd':
				edits = appendLines(edits, a[op.I1:op.I2], OpDelete)
			case 'i':
				edits = appendLines(edits, b[op.J1:op.J2], OpInsert)
			case 'r':
				edits = appendLines(edits, a[op.I1:op.I2], OpDelete)
				edits = appendLines(edits, b[op.J1:op.J2], OpInsert)
			}
		}
	}

	return appendLines(edits, old[len(old)-suffix:], OpEqual)
}
