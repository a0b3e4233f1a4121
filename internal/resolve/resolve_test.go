package resolve

import (
	"testing"

	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflicted(t *testing.T, base, remote, local string) merge.Outcome {
	t.Helper()
	o, err := merge.NewMerger().Outcome(base, remote, local)
	require.NoError(t, err)
	require.True(t, o.HasConflicts())
	return o
}

func TestAll(t *testing.T) {
	t.Parallel()

	o := conflicted(t, "1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n")

	tests := []struct {
		choice Choice
		want   string
	}{
		{ChoiceRemote, "A\n2\nC\n4\nC\n"},
		{ChoiceLocal, "A\n2\nB\n4\nC\n"},
		{ChoiceBase, "A\n2\n3\n4\nC\n"},
		{ChoiceBoth, "A\n2\nB\nC\n4\nC\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.choice), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, All(o, tt.choice))
		})
	}
}

func TestApply_PerConflictChoices(t *testing.T) {
	t.Parallel()

	o := conflicted(t, "0\n1\n2\n3\n4\n5\n", "0\n1\n4\n5\n6\n", "0\n1\nB\nB\nB\n4\n5\n!\n6\n")
	require.Len(t, o.Conflicts, 2)

	got, err := Apply(o, []Choice{ChoiceLocal, ChoiceRemote})
	require.NoError(t, err)
	assert.Equal(t, "0\n1\nB\nB\nB\n4\n5\n6\n", got)

	got, err = Apply(o, []Choice{ChoiceBase, ChoiceLocal})
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n3\n4\n5\n!\n6\n", got)
}

func TestApply_RemoteMatchesFallback(t *testing.T) {
	t.Parallel()

	inputs := [][3]string{
		{"1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n"},
		{"0\n1\n2\n3\n4\n5\n", "A\n0\n1\n2\n3\nA\n4\n5\n", "B\n0\n1\n2\n3\nB\n5\n"},
		{"a\nb", "a\nb\nc", "a\nB"},
		{"0\n1\n2\n", "A\n0\n1\n2\n", "X\n1\n2\n"},
		{"0\n1\n2\n", "X\n1\n2\n", "A\n0\n1\n2\n"},
	}
	for _, in := range inputs {
		o := conflicted(t, in[0], in[1], in[2])
		assert.Equal(t, o.Text, All(o, ChoiceRemote))
	}
}

func TestAll_LocalMatchesSwappedFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		base, remote, local string
	}{
		{"replacement against replacement", "1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n"},
		{"separate conflicts", "0\n1\n2\n3\n4\n5\n", "0\n1\n4\n5\n6\n", "0\n1\nB\nB\nB\n4\n5\n!\n6\n"},
		{"insertion next to replacement", "0\n1\n2\n3\n4\n5\n", "A\n0\n1\n2\n3\nA\n4\n5\n", "B\n0\n1\n2\n3\nB\n5\n"},
		{"insertion at the start against first line edit", "0\n1\n2\n", "A\n0\n1\n2\n", "X\n1\n2\n"},
		{"first line edit against insertion at the start", "0\n1\n2\n", "A\n1\n2\n", "B\n0\n1\n2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			forward := conflicted(t, tt.base, tt.remote, tt.local)
			backward := conflicted(t, tt.base, tt.local, tt.remote)

			assert.Equal(t, backward.Text, All(forward, ChoiceLocal))
			assert.Equal(t, forward.Text, All(backward, ChoiceLocal))
		})
	}
}

func TestAll_InsertionAtStartAgainstFirstLineEdit(t *testing.T) {
	t.Parallel()

	o := conflicted(t, "0\n1\n2\n", "A\n0\n1\n2\n", "X\n1\n2\n")

	assert.Equal(t, "A\n0\n1\n2\n", All(o, ChoiceRemote))
	assert.Equal(t, "X\n1\n2\n", All(o, ChoiceLocal))
	assert.Equal(t, "0\n1\n2\n", All(o, ChoiceBase))
	assert.Equal(t, "X\nA\n0\n1\n2\n", All(o, ChoiceBoth))
}

func TestApply_UnterminatedTail(t *testing.T) {
	t.Parallel()

	o := conflicted(t, "a\nb", "a\nb\nc", "a\nB")

	assert.Equal(t, "a\nB", All(o, ChoiceLocal))
	assert.Equal(t, "a\nB\nb\nc", All(o, ChoiceBoth))
}

func TestApply_ChoiceCount(t *testing.T) {
	t.Parallel()

	o := conflicted(t, "1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n")
	_, err := Apply(o, nil)
	assert.ErrorIs(t, err, ErrChoiceCount)
}

func TestParseChoice(t *testing.T) {
	t.Parallel()

	c, err := ParseChoice("LOCAL")
	require.NoError(t, err)
	assert.Equal(t, ChoiceLocal, c)

	_, err = ParseChoice("mine")
	assert.Error(t, err)
}
