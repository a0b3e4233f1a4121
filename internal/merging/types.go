package merging

import (
	"fmt"

	"github.com/speakeasy-api/textmerge/internal/markers"
	"github.com/speakeasy-api/textmerge/internal/merge"
)

// MergeStatus represents the outcome of a file merge operation.
type MergeStatus string

const (
	MergeStatusClean       MergeStatus = "CLEAN"
	MergeStatusConflict    MergeStatus = "CONFLICT"
	MergeStatusBinary      MergeStatus = "BINARY"
	MergeStatusFastForward MergeStatus = "FAST_FORWARD" // Used when one side matches base or both sides agree
	MergeStatusCreated     MergeStatus = "CREATED"      // Only remote has the file
	MergeStatusDeleted     MergeStatus = "DELETED"      // Remote deleted a file local left untouched
	MergeStatusSkipped     MergeStatus = "SKIPPED"
)

var Statuses = []MergeStatus{
	MergeStatusClean,
	MergeStatusConflict,
	MergeStatusBinary,
	MergeStatusFastForward,
	MergeStatusCreated,
	MergeStatusDeleted,
	MergeStatusSkipped,
}

// FileSet names the three versions of one file. References are read through a
// Source: plain paths for the file system, "rev:path" for git.
type FileSet struct {
	Path   string `yaml:"path"`
	Base   string `yaml:"base"`
	Remote string `yaml:"remote"`
	Local  string `yaml:"local"`
	// Output is where the merged file is written. Defaults to Local.
	Output string `yaml:"output,omitempty"`
}

func (s FileSet) OutputPath() string {
	if s.Output != "" {
		return s.Output
	}
	return s.Local
}

// Versions holds the contents of a FileSet. A nil slice means the version does not exist.
type Versions struct {
	Base, Remote, Local []byte
}

// MergeResult holds the result of merging a single file.
type MergeResult struct {
	Path      string                `json:"path" yaml:"path" toml:"path"`
	Output    string                `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Status    MergeStatus           `json:"status" yaml:"status" toml:"status"`
	Content   []byte                `json:"-" yaml:"-" toml:"-"`
	Conflicts []merge.MergeConflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Regions   []markers.Region      `json:"regions,omitempty" yaml:"regions,omitempty" toml:"regions,omitempty"`
	Error     error                 `json:"-" yaml:"-" toml:"-"`
}

func (r MergeResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// ConflictError points at one conflict of a merged file. Line is 1-based in the written output.
type ConflictError struct {
	Path string
	Line int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict in %s at line %d", e.Path, e.Line)
}

func (e *ConflictError) LineNumber() int {
	return e.Line
}

// ConflictErrors returns one ConflictError per conflict, located by marker
// region when markers were written and by merged line otherwise.
func (r MergeResult) ConflictErrors() []*ConflictError {
	if len(r.Regions) > 0 {
		errs := make([]*ConflictError, len(r.Regions))
		for i, region := range r.Regions {
			errs[i] = &ConflictError{Path: r.Path, Line: region.StartLine}
		}
		return errs
	}

	errs := make([]*ConflictError, len(r.Conflicts))
	for i, c := range r.Conflicts {
		start, _ := c.MergedSpan()
		errs[i] = &ConflictError{Path: r.Path, Line: start + 1}
	}
	return errs
}
