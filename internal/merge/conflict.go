package merge

import (
	"fmt"
)

// MergeConflict describes a region where remote and local made differing changes.
//
// Base, Remote and Local hold the region's lines as they appear in each text,
// terminators included. BaseLine is the base index the region starts at, or,
// when Base is empty, the index of the base line the insertions follow (-1 for
// the start of the text). MergedLine is the merged line count before the
// region plus the distance from the earliest conflicting hunk to BaseLine.
// RemoteStart is the index in the merged output of the first Remote line.
type MergeConflict struct {
	Base        []string `json:"base" yaml:"base" toml:"base"`
	Remote      []string `json:"remote" yaml:"remote" toml:"remote"`
	Local       []string `json:"local" yaml:"local" toml:"local"`
	BaseLine    int      `json:"baseLine" yaml:"baseLine" toml:"baseLine"`
	MergedLine  int      `json:"mergedLine" yaml:"mergedLine" toml:"mergedLine"`
	RemoteStart int      `json:"remoteStart" yaml:"remoteStart" toml:"remoteStart"`
}

// MergedSpan returns the half-open range of merged lines occupied by the remote
// side of the conflict.
func (c MergeConflict) MergedSpan() (start, end int) {
	return c.RemoteStart, c.RemoteStart + len(c.Remote)
}

// TouchesEnd reports whether the conflict region reaches the last of baseLen base lines.
func (c MergeConflict) TouchesEnd(baseLen int) bool {
	last := baseLen - 1
	if len(c.Base) > 0 {
		return c.BaseLine+len(c.Base)-1 == last
	}
	return c.BaseLine == last
}

func (c MergeConflict) String() string {
	return fmt.Sprintf("conflict at base line %d (merged line %d): base=%q remote=%q local=%q", c.BaseLine, c.MergedLine, c.Base, c.Remote, c.Local)
}

// Outcome is the result of a merge that may contain conflicts.
type Outcome struct {
	Text      string
	Conflicts []MergeConflict
}

func (o Outcome) HasConflicts() bool {
	return len(o.Conflicts) > 0
}
