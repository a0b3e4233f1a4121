// Package merge implements a line-oriented three-way merge.
//
// A merge takes a common ancestor (base) and two descendants (remote and local),
// diffs each descendant against the base, groups the per-line differences into
// hunks and walks both hunk streams over the base lines. Non-overlapping hunks
// are applied from either side. Overlapping hunks that disagree are recorded as
// conflicts and resolved in favor of remote, so the merged text returned next to
// a *MergeConflictError is always a usable fallback.
//
// Line endings are normalized before diffing: every line is handled with its
// terminator, and whether each text ends with a newline is tracked separately
// and merged like any other change.
package merge
