package merge

import (
	"testing"

	"github.com/speakeasy-api/textmerge/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLines(t *testing.T) {
	t.Parallel()

	edits := []diff.Edit{
		{Content: "added", Op: diff.OpInsert},
		{Content: "unchanged", Op: diff.OpEqual},
		{Content: "replaced", Op: diff.OpDelete},
		{Content: "replacement", Op: diff.OpInsert},
		{Content: "unchanged", Op: diff.OpEqual},
		{Content: "removed", Op: diff.OpDelete},
	}

	got, err := TagLines(edits)
	require.NoError(t, err)
	assert.Equal(t, []Line{
		{Kind: LineAdded, Content: "added", Index: -1},
		{Kind: LineUnchanged, Content: "unchanged", Index: 0},
		{Kind: LineRemoved, Content: "replaced", Index: 1},
		{Kind: LineAdded, Content: "replacement", Index: 1},
		{Kind: LineUnchanged, Content: "unchanged", Index: 2},
		{Kind: LineRemoved, Content: "removed", Index: 3},
	}, got)
}

func TestTagLines_UnsupportedOp(t *testing.T) {
	t.Parallel()

	_, err := TagLines([]diff.Edit{
		{Content: "a", Op: diff.OpEqual},
		{Content: "b", Op: diff.Op(7)},
	})

	var opErr *UnsupportedOpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, diff.Op(7), opErr.Op)
	assert.Equal(t, 1, opErr.Position)
	assert.ErrorIs(t, err, ErrUnsupportedDiffOp)
}

func TestBuildHunks(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Kind: LineAdded, Content: "added", Index: -1},
		{Kind: LineUnchanged, Content: "unchanged", Index: 0},
		{Kind: LineRemoved, Content: "replaced", Index: 1},
		{Kind: LineAdded, Content: "replacement", Index: 1},
		{Kind: LineUnchanged, Content: "unchanged", Index: 2},
		{Kind: LineRemoved, Content: "removed", Index: 3},
	}

	hunks := BuildHunks(lines)
	assert.Equal(t, []Hunk{
		{Kind: HunkAdded, Start: -1, End: -1, Lines: []Line{lines[0]}},
		{Kind: HunkReplaced, Start: 1, End: 1, Lines: []Line{lines[2], lines[3]}},
		{Kind: HunkRemoved, Start: 3, End: 3, Lines: []Line{lines[5]}},
	}, hunks)

	assert.Equal(t, []Line{lines[2]}, hunks[1].RemovedLines())
	assert.Equal(t, []Line{lines[3]}, hunks[1].AddedLines())
	assert.Equal(t, []string{"replacement"}, hunks[1].AddedContents())
}

func TestBuildHunks_Runs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []Line
		want  []Hunk
	}{
		{
			name:  "empty",
			lines: nil,
			want:  nil,
		},
		{
			name: "removal run",
			lines: []Line{
				{Kind: LineRemoved, Content: "a", Index: 0},
				{Kind: LineRemoved, Content: "b", Index: 1},
				{Kind: LineUnchanged, Content: "c", Index: 2},
			},
			want: []Hunk{
				{Kind: HunkRemoved, Start: 0, End: 1, Lines: []Line{
					{Kind: LineRemoved, Content: "a", Index: 0},
					{Kind: LineRemoved, Content: "b", Index: 1},
				}},
			},
		},
		{
			name: "insertion run",
			lines: []Line{
				{Kind: LineUnchanged, Content: "a", Index: 0},
				{Kind: LineAdded, Content: "x", Index: 0},
				{Kind: LineAdded, Content: "y", Index: 0},
			},
			want: []Hunk{
				{Kind: HunkAdded, Start: 0, End: 0, Lines: []Line{
					{Kind: LineAdded, Content: "x", Index: 0},
					{Kind: LineAdded, Content: "y", Index: 0},
				}},
			},
		},
		{
			name: "removal after insertion opens a new hunk",
			lines: []Line{
				{Kind: LineAdded, Content: "x", Index: -1},
				{Kind: LineRemoved, Content: "a", Index: 0},
			},
			want: []Hunk{
				{Kind: HunkAdded, Start: -1, End: -1, Lines: []Line{{Kind: LineAdded, Content: "x", Index: -1}}},
				{Kind: HunkRemoved, Start: 0, End: 0, Lines: []Line{{Kind: LineRemoved, Content: "a", Index: 0}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildHunks(tt.lines))
		})
	}
}

func TestHunk_Intersects(t *testing.T) {
	t.Parallel()

	added := func(at int) *Hunk { return &Hunk{Kind: HunkAdded, Start: at, End: at} }
	removed := func(start, end int) *Hunk { return &Hunk{Kind: HunkRemoved, Start: start, End: end} }

	tests := []struct {
		name string
		a, b *Hunk
		want bool
	}{
		{"added at same point", added(2), added(2), true},
		{"added at neighbouring points", added(2), added(3), false},
		{"added right before removal", added(3), removed(4, 4), true},
		{"added right after removal", removed(4, 4), added(4), true},
		{"added two before removal", added(2), removed(4, 4), false},
		{"overlapping removals", removed(1, 3), removed(3, 5), true},
		{"adjacent removals", removed(1, 2), removed(3, 4), false},
		{"removal containing another", removed(1, 5), removed(2, 3), true},
		{"nil other", removed(1, 2), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			if tt.b != nil {
				assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
			}
		})
	}
}

func TestHunk_Equal(t *testing.T) {
	t.Parallel()

	h := Hunk{Kind: HunkReplaced, Start: 1, End: 1, Lines: []Line{
		{Kind: LineRemoved, Content: "a", Index: 1},
		{Kind: LineAdded, Content: "b", Index: 1},
	}}
	same := Hunk{Kind: HunkReplaced, Start: 1, End: 1, Lines: []Line{
		{Kind: LineRemoved, Content: "a", Index: 1},
		{Kind: LineAdded, Content: "b", Index: 1},
	}}
	other := Hunk{Kind: HunkReplaced, Start: 1, End: 1, Lines: []Line{
		{Kind: LineRemoved, Content: "a", Index: 1},
		{Kind: LineAdded, Content: "c", Index: 1},
	}}

	assert.True(t, h.Equal(same))
	assert.False(t, h.Equal(other))
	assert.False(t, h.Equal(Hunk{Kind: HunkRemoved, Start: 1, End: 1, Lines: h.Lines[:1]}))
}

func TestMergeHunks_RejectsInconsistentHunks(t *testing.T) {
	t.Parallel()

	base := []string{"a\n", "b\n"}

	tests := []struct {
		name   string
		remote []Hunk
	}{
		{"past the end", []Hunk{{Kind: HunkRemoved, Start: 2, End: 2}}},
		{"removal before start", []Hunk{{Kind: HunkRemoved, Start: -1, End: 0}}},
		{"inverted range", []Hunk{{Kind: HunkRemoved, Start: 1, End: 0}}},
		{"overlapping", []Hunk{{Kind: HunkRemoved, Start: 0, End: 1}, {Kind: HunkRemoved, Start: 1, End: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mergeHunks(base, tt.remote, nil)
			assert.ErrorIs(t, err, ErrInconsistentHunks)
		})
	}
}

func TestMergeHunks_AppliesBothSides(t *testing.T) {
	t.Parallel()

	base := []string{"a\n", "b\n", "c\n"}
	remote := []Hunk{{Kind: HunkAdded, Start: -1, End: -1, Lines: []Line{{Kind: LineAdded, Content: "x\n", Index: -1}}}}
	local := []Hunk{{Kind: HunkRemoved, Start: 2, End: 2, Lines: []Line{{Kind: LineRemoved, Content: "c\n", Index: 2}}}}

	out, err := mergeHunks(base, remote, local)
	require.NoError(t, err)
	assert.Equal(t, []string{"x\n", "a\n", "b\n"}, out.lines)
	assert.Empty(t, out.conflicts)
}
