package merge

import (
	"errors"
	"fmt"

	"github.com/speakeasy-api/textmerge/internal/diff"
)

var (
	// ErrUnsupportedDiffOp is returned when a differ emits an operation the tagger does not know.
	ErrUnsupportedDiffOp = errors.New("unsupported diff operation")
	// ErrInconsistentHunks is returned when the hunk streams violate the engine's ordering invariants.
	ErrInconsistentHunks = errors.New("inconsistent hunks")
)

// UnsupportedOpError reports the first edit the line tagger could not classify.
type UnsupportedOpError struct {
	Op       diff.Op
	Position int
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("unsupported diff operation %s at edit %d", e.Op, e.Position)
}

func (e *UnsupportedOpError) Unwrap() error {
	return ErrUnsupportedDiffOp
}

// MergeConflictError is returned when remote and local made overlapping, differing changes.
// Merged holds the remote-wins fallback text.
type MergeConflictError struct {
	Conflicts []MergeConflict
	Merged    string
}

func (e *MergeConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "a merge conflict has occurred"
	}
	return fmt.Sprintf("%d merge conflicts have occurred", len(e.Conflicts))
}

// AsConflict unwraps err into a *MergeConflictError.
func AsConflict(err error) (*MergeConflictError, bool) {
	var conflictErr *MergeConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}
