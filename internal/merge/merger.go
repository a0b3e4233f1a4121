package merge

import (
	"fmt"

	"github.com/speakeasy-api/textmerge/internal/diff"
)

// Merger performs three-way merges with a configurable line differ.
// The zero value is not usable; construct one with NewMerger.
type Merger struct {
	differ diff.Differ
}

type Option func(*Merger)

// WithDiffer sets the line differ used to compare each side against base.
func WithDiffer(d diff.Differ) Option {
	return func(m *Merger) {
		if d != nil {
			m.differ = d
		}
	}
}

func NewMerger(opts ...Option) *Merger {
	m := &Merger{differ: diff.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMerger = NewMerger()

// Merge merges remote and local against their common ancestor base using the
// default differ.
//
// If the sides conflict the error is a *MergeConflictError and the returned text
// is the remote-wins fallback it also carries.
func Merge(base, remote, local string) (string, error) {
	return defaultMerger.Merge(base, remote, local)
}

// Merge merges remote and local against their common ancestor base.
//
// If the sides conflict the error is a *MergeConflictError and the returned text
// is the remote-wins fallback it also carries. Any other error means the merge
// could not be computed.
func (m *Merger) Merge(base, remote, local string) (string, error) {
	out, err := m.Outcome(base, remote, local)
	if err != nil {
		return "", err
	}
	if out.HasConflicts() {
		return out.Text, &MergeConflictError{Conflicts: out.Conflicts, Merged: out.Text}
	}
	return out.Text, nil
}

// Outcome runs the merge and reports conflicts as data rather than as an error.
func (m *Merger) Outcome(base, remote, local string) (Outcome, error) {
	if merged, ok := simpleMerge(base, remote, local); ok {
		return Outcome{Text: merged}, nil
	}

	b, r, l := normalize(base), normalize(remote), normalize(local)

	remoteHunks, err := m.hunks(b, r)
	if err != nil {
		return Outcome{}, fmt.Errorf("diffing remote against base: %w", err)
	}
	localHunks, err := m.hunks(b, l)
	if err != nil {
		return Outcome{}, fmt.Errorf("diffing local against base: %w", err)
	}

	out, err := mergeHunks(b.lines, remoteHunks, localHunks)
	if err != nil {
		return Outcome{}, err
	}

	if n := len(out.conflicts); n > 0 && out.conflicts[n-1].TouchesEnd(len(b.lines)) {
		restoreLastLines(&out.conflicts[n-1], b, r, l)
	}

	return Outcome{
		Text:      join(out.lines, mergeEOL(b, r, l, out.conflicts)),
		Conflicts: out.conflicts,
	}, nil
}

// Hunks returns the hunks turning base into variant.
func (m *Merger) Hunks(base, variant string) ([]Hunk, error) {
	return m.hunks(normalize(base), normalize(variant))
}

func (m *Merger) hunks(base, variant text) ([]Hunk, error) {
	lines, err := TagLines(m.differ.Diff(base.lines, variant.lines))
	if err != nil {
		return nil, err
	}
	return BuildHunks(lines), nil
}
