package merging

import (
	"bytes"

	"github.com/go-git/go-git/v5/utils/binary"
	"github.com/speakeasy-api/textmerge/internal/markers"
	"github.com/speakeasy-api/textmerge/internal/merge"
)

// TextMerger merges one file's versions with the line merger. Overlapping
// changes are either written as conflict markers or resolved in favor of remote.
type TextMerger struct {
	merger  *merge.Merger
	markers bool
}

func NewTextMerger(m *merge.Merger, withMarkers bool) *TextMerger {
	if m == nil {
		m = merge.NewMerger()
	}
	return &TextMerger{merger: m, markers: withMarkers}
}

// Merge performs a 3-way merge of v.
//
// Returns:
// - MergeStatusFastForward: both sides agree, or one side is unchanged from base
// - MergeStatusCreated: only remote has the file
// - MergeStatusDeleted: remote removed a file local did not touch
// - MergeStatusSkipped: neither side has the file
// - MergeStatusBinary: a version is binary; local is kept
// - MergeStatusClean: all changes merged successfully
// - MergeStatusConflict: overlapping changes
func (m *TextMerger) Merge(v Versions) (*MergeResult, error) {
	res := &MergeResult{Status: MergeStatusClean}

	switch {
	case v.Remote == nil && v.Local == nil:
		res.Status = MergeStatusSkipped
		return res, nil
	case v.Base == nil && v.Local == nil:
		res.Content = v.Remote
		res.Status = MergeStatusCreated
		return res, nil
	case v.Remote == nil && v.Base != nil && bytes.Equal(v.Local, v.Base):
		res.Status = MergeStatusDeleted
		return res, nil
	}

	if isBinary(v.Base) || isBinary(v.Remote) || isBinary(v.Local) {
		res.Content = v.Local
		res.Status = MergeStatusBinary
		return res, nil
	}

	switch {
	case bytes.Equal(v.Local, v.Remote):
		res.Content = v.Local
		res.Status = MergeStatusFastForward
		return res, nil
	case v.Base != nil && bytes.Equal(v.Local, v.Base):
		res.Content = v.Remote
		res.Status = MergeStatusFastForward
		return res, nil
	case v.Base != nil && bytes.Equal(v.Remote, v.Base):
		res.Content = v.Local
		res.Status = MergeStatusFastForward
		return res, nil
	}

	out, err := m.merger.Outcome(string(v.Base), string(v.Remote), string(v.Local))
	if err != nil {
		return nil, err
	}

	if !out.HasConflicts() {
		res.Content = []byte(out.Text)
		return res, nil
	}

	res.Status = MergeStatusConflict
	res.Conflicts = out.Conflicts
	if m.markers {
		rendered := markers.Render(out)
		res.Content = []byte(rendered)
		res.Regions = markers.Regions(rendered)
	} else {
		res.Content = []byte(out.Text)
	}

	return res, nil
}

func isBinary(content []byte) bool {
	if content == nil {
		return false
	}
	ok, err := binary.IsBinary(bytes.NewReader(content))
	return err == nil && ok
}
