package merge

import (
	"fmt"
)

type cursor struct {
	hunks []Hunk
	pos   int
}

func (c *cursor) valid() bool {
	return c.pos < len(c.hunks)
}

func (c *cursor) current() *Hunk {
	if !c.valid() {
		return nil
	}
	return &c.hunks[c.pos]
}

func (c *cursor) next() {
	c.pos++
}

// cursorPair walks the remote and local hunk streams together. The stream whose
// next hunk starts first plays "a", the other plays "b"; first records which
// slot currently holds "a".
type cursorPair struct {
	slots [2]cursor
	first int
}

const (
	remoteSlot = 0
	localSlot  = 1
)

func newCursorPair(remote, local []Hunk) *cursorPair {
	return &cursorPair{slots: [2]cursor{{hunks: remote}, {hunks: local}}}
}

func (p *cursorPair) a() *cursor {
	return &p.slots[p.first]
}

func (p *cursorPair) b() *cursor {
	return &p.slots[1-p.first]
}

func (p *cursorPair) swap() {
	p.first = 1 - p.first
}

func (p *cursorPair) flipped() bool {
	return p.first != remoteSlot
}

// order puts the stream with the earliest pending hunk in front. Ties keep the
// current order.
func (p *cursorPair) order() {
	a, b := p.a(), p.b()
	if (a.valid() && b.valid() && a.current().Start > b.current().Start) || (!a.valid() && b.valid()) {
		p.swap()
	}
}

type mergeOutput struct {
	lines     []string
	conflicts []MergeConflict
}

// mergeHunks applies the remote and local hunks to base. Overlapping hunks that
// differ are recorded as conflicts and resolved in favor of remote.
func mergeHunks(base []string, remote, local []Hunk) (*mergeOutput, error) {
	if err := validateHunks("remote", remote, len(base)); err != nil {
		return nil, err
	}
	if err := validateHunks("local", local, len(base)); err != nil {
		return nil, err
	}

	out := &mergeOutput{lines: make([]string, 0, len(base))}
	p := newCursorPair(remote, local)

	for i := -1; i < len(base) || p.a().valid() || p.b().valid(); i++ {
		p.order()
		aa, bb := p.a().current(), p.b().current()
		if aa != nil && aa.Start < i {
			return nil, fmt.Errorf("%w: hunk starting at base line %d left behind at line %d", ErrInconsistentHunks, aa.Start, i)
		}

		if aa != nil && aa.Start == i {
			switch {
			case bb != nil && bb.Start == i && aa.Equal(*bb):
				p.b().next()
			case bb != nil && bb.Start == i, aa.Intersects(bb):
				out.conflicts = append(out.conflicts, p.recordConflict(base, len(out.lines)))
				aa = p.a().current()
			}
		}

		if aa != nil && aa.Start == i {
			if aa.Kind == HunkAdded && i >= 0 {
				out.lines = append(out.lines, base[i])
			}
			if aa.Kind != HunkRemoved {
				out.lines = append(out.lines, aa.AddedContents()...)
			}
			i = aa.End
			p.a().next()
		} else if i >= 0 && i < len(base) {
			out.lines = append(out.lines, base[i])
		}
	}

	return out, nil
}

func validateHunks(side string, hunks []Hunk, baseLen int) error {
	prevEnd := -2
	for _, h := range hunks {
		minStart := 0
		if h.Kind == HunkAdded {
			minStart = -1
		}
		if h.Start < minStart || h.End < h.Start || h.End >= baseLen {
			return fmt.Errorf("%w: %s %s hunk spans [%d, %d] over %d base lines", ErrInconsistentHunks, side, h.Kind, h.Start, h.End, baseLen)
		}
		if h.Start <= prevEnd {
			return fmt.Errorf("%w: %s hunks overlap at base line %d", ErrInconsistentHunks, side, h.Start)
		}
		prevEnd = h.End
	}
	return nil
}

// recordConflict captures the conflicting region around the pending hunks and
// moves the local stream past every hunk the region swallowed. Remote hunks are
// left in place so the engine applies them afterwards. On return "a" is remote.
//
// The region grows until no further hunk of either side intersects it. A local
// hunk is only swallowed when advancing past the pending one alone would leave
// it starting behind the engine's cursor, a state mergeHunks rejects as
// inconsistent. Swallowed remote hunks are still applied by the engine; they
// only extend the conflict's remote lines to the same base range.
func (p *cursorPair) recordConflict(base []string, mergedLen int) MergeConflict {
	if p.flipped() {
		p.swap()
	}
	remote, local := p.a(), p.b()
	rh, lh := *remote.current(), *local.current()

	var start, end int
	switch {
	case rh.Kind == HunkAdded && lh.Kind != HunkAdded:
		start, end = lh.Start, lh.End
	case rh.Kind != HunkAdded && lh.Kind == HunkAdded:
		start, end = rh.Start, rh.End
	default:
		start, end = min(rh.Start, lh.Start), max(rh.End, lh.End)
	}

	// The engine copies base lines from the earliest hunk up to the region
	// unchanged, and there is no base line before index 0.
	first := min(rh.Start, lh.Start)
	c := MergeConflict{
		BaseLine:    start,
		MergedLine:  mergedLen + start - first,
		RemoteStart: mergedLen + start - max(first, 0),
	}

	if rh.Kind == HunkAdded && lh.Kind == HunkAdded {
		c.RemoteStart = mergedLen
		if start >= 0 {
			c.RemoteStart++
		}
		c.Base = []string{}
		c.Remote = rh.AddedContents()
		c.Local = lh.AddedContents()
		local.next()
		return c
	}

	remoteGroup, localGroup := []Hunk{rh}, []Hunk{lh}
	rn, ln := remote.pos+1, local.pos+1
	for grown := true; grown; {
		grown = false
		for rn < len(remote.hunks) && remote.hunks[rn].Intersects(&Hunk{Kind: HunkRemoved, Start: start, End: end}) {
			remoteGroup = append(remoteGroup, remote.hunks[rn])
			end = max(end, remote.hunks[rn].End)
			rn++
			grown = true
		}
		for ln < len(local.hunks) && local.hunks[ln].Intersects(&Hunk{Kind: HunkRemoved, Start: start, End: end}) {
			localGroup = append(localGroup, local.hunks[ln])
			end = max(end, local.hunks[ln].End)
			ln++
			grown = true
		}
	}

	c.Base = append([]string{}, base[start:end+1]...)
	c.Remote = sideLines(base, remoteGroup, start, end)
	c.Local = sideLines(base, localGroup, start, end)
	local.pos = ln

	return c
}

// sideLines renders base[start:end+1] as seen by one side, given the side's
// hunks that fall in that range. A leading added hunk inserting just before
// start contributes its lines first.
func sideLines(base []string, hunks []Hunk, start, end int) []string {
	lines := []string{}
	if hunks[0].Start < start {
		lines = append(lines, hunks[0].AddedContents()...)
	}

	for i := start; i <= end; i++ {
		h := coveringHunk(hunks, i)
		switch {
		case h == nil:
			lines = append(lines, base[i])
		case h.Start == i:
			if h.Kind == HunkAdded {
				lines = append(lines, base[i])
			}
			lines = append(lines, h.AddedContents()...)
		}
	}

	return lines
}

func coveringHunk(hunks []Hunk, index int) *Hunk {
	for i := range hunks {
		if hunks[i].Start <= index && index <= hunks[i].End {
			return &hunks[i]
		}
	}
	return nil
}
