package diff

import (
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Myers diffs lines with diff-match-patch (Myers' O(ND) algorithm). Every distinct line is
// hashed to a single rune so the character diff is a line diff. Inputs with more distinct
// lines than there are runes to hash them to are diffed with LCS instead.
type Myers struct{}

var _ Differ = Myers{}

func (Myers) Diff(old, new []string) []Edit {
	h := lineHasher{index: map[string]rune{}}
	a, b := h.encode(old), h.encode(new)
	if len(h.lines) > maxDistinctLines {
		return LCS{}.Diff(old, new)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	edits := make([]Edit, 0, len(old)+len(new))
	var deletes, inserts []string
	flush := func() {
		edits = appendLines(edits, deletes, OpDelete)
		edits = appendLines(edits, inserts, OpInsert)
		deletes, inserts = nil, nil
	}

	for _, d := range dmp.DiffMainRunes(a, b, false) {
		lines := h.decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			edits = appendLines(edits, lines, OpEqual)
		case diffmatchpatch.DiffDelete:
			deletes = append(deletes, lines...)
		case diffmatchpatch.DiffInsert:
			inserts = append(inserts, lines...)
		}
	}
	flush()

	return edits
}

type lineHasher struct {
	index map[string]rune
	lines []string
}

// maxDistinctLines is the number of valid runes runeFor can hand out.
const maxDistinctLines = unicode.MaxRune - surrogates

const surrogates = 0x800

// runeFor maps the n-th distinct line to a valid, non-zero rune outside the surrogate range.
func runeFor(n int) rune {
	r := rune(n + 1)
	if r >= 0xD800 {
		r += surrogates
	}
	return r
}

func (h *lineHasher) encode(lines []string) []rune {
	out := make([]rune, len(lines))
	for i, l := range lines {
		r, ok := h.index[l]
		if !ok {
			r = runeFor(len(h.lines))
			h.index[l] = r
			h.lines = append(h.lines, l)
		}
		out[i] = r
	}
	return out
}

func (h *lineHasher) decode(text string) []string {
	var out []string
	for _, r := range text {
		n := int(r) - 1
		if r >= 0xD800+surrogates {
			n -= surrogates
		}
		out = append(out, h.lines[n])
	}
	return out
}
