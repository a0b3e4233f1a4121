package markers

import (
	"testing"

	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(t *testing.T, base, remote, local string) merge.Outcome {
	t.Helper()
	o, err := merge.NewMerger().Outcome(base, remote, local)
	require.NoError(t, err)
	return o
}

func TestRender(t *testing.T) {
	t.Parallel()

	o := outcome(t, "1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n")

	want := "A\n2\n" +
		Start + "\n" +
		"B\n" +
		Ancestor + "\n" +
		"3\n" +
		Separator + "\n" +
		"C\n" +
		End + "\n" +
		"4\nC\n"
	assert.Equal(t, want, Render(o))
}

func TestRender_InsertionAtStartAgainstFirstLineEdit(t *testing.T) {
	t.Parallel()

	o := outcome(t, "0\n1\n2\n", "A\n0\n1\n2\n", "X\n1\n2\n")

	want := Start + "\n" +
		"X\n" +
		Ancestor + "\n" +
		"0\n" +
		Separator + "\n" +
		"A\n0\n" +
		End + "\n" +
		"1\n2\n"
	rendered := Render(o)
	assert.Equal(t, want, rendered)

	parsed, err := Parse(rendered, "0\n1\n2\n")
	require.NoError(t, err)
	assert.Equal(t, o.Text, parsed.Text)
	require.Len(t, parsed.Conflicts, 1)
	got, expected := parsed.Conflicts[0], o.Conflicts[0]
	assert.Equal(t, expected.Base, got.Base)
	assert.Equal(t, expected.Remote, got.Remote)
	assert.Equal(t, expected.Local, got.Local)
	assert.Equal(t, expected.BaseLine, got.BaseLine)
	assert.Equal(t, expected.RemoteStart, got.RemoteStart)
}

func TestRender_NoConflicts(t *testing.T) {
	t.Parallel()

	o := outcome(t, "1\n2\n3\n", "A\n2\n3\n", "1\n2\nC")
	assert.Equal(t, "A\n2\nC", Render(o))
}

func TestRender_TerminatesUnterminatedSections(t *testing.T) {
	t.Parallel()

	o := outcome(t, "a\nb", "a\nb\nc", "a\nB")
	rendered := Render(o)

	assert.Equal(t, "a\n"+Start+"\nB\n"+Ancestor+"\nb\n"+Separator+"\nb\nc\n"+End+"\n", rendered)
	assert.Len(t, Regions(rendered), 1)
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		remote string
		local  string
	}{
		{"single conflict", "1\n2\n3\n4\n5\n", "A\n2\nC\n4\n5\n", "1\n2\nB\n4\nC\n"},
		{"separate conflicts", "0\n1\n2\n3\n4\n5\n", "0\n1\n4\n5\n6\n", "0\n1\nB\nB\nB\n4\n5\n!\n6\n"},
		{"insertion next to replacement", "0\n1\n2\n3\n4\n5\n", "A\n0\n1\n2\n3\nA\n4\n5\n", "B\n0\n1\n2\n3\nB\n5\n"},
		{"insertions at the same points", "0\n1\n2\n3\n4\n5\n", "A\n0\n1\n2\n3\nA\n4\n5\n", "B\n0\n1\n2\n3\nB\n4\n5\n"},
		{"duplicated lines", "A\na\na\na\nB", "A\na\na\nB", "A\na\na\na\na\nB"},
		{"conflict after clean hunks", "1\n2\n3\n4\n5\n6\n7\n8\n9\n0\n", "A\n3\n4\n5\n6\n7\n8\nA\n0\n", "1\n2\n3\n4\nB\n6\n7\n8\nB\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := outcome(t, tt.base, tt.remote, tt.local)
			require.True(t, o.HasConflicts())

			parsed, err := Parse(Render(o), tt.base)
			require.NoError(t, err)
			assert.Equal(t, o, parsed)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
	}{
		{"separator before ancestor", Start + "\na\n" + Separator + "\nb\n" + End + "\n"},
		{"end inside base", Start + "\na\n" + Ancestor + "\nb\n" + End + "\n"},
		{"nested start", Start + "\na\n" + Ancestor + "\nb\n" + Separator + "\n" + Start + "\n"},
		{"never closed", Start + "\na\n" + Ancestor + "\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.markup, "b\n")
			assert.ErrorIs(t, err, ErrMalformedMarkers)
		})
	}
}

func TestParse_StrayMarkersOutsideConflictsAreContent(t *testing.T) {
	t.Parallel()

	text := "Title\n" + Separator + "\nbody\n" + End + "\n"
	o, err := Parse(text, text)
	require.NoError(t, err)
	assert.Equal(t, text, o.Text)
	assert.False(t, o.HasConflicts())
}

func TestHas(t *testing.T) {
	t.Parallel()

	assert.True(t, Has("a\n"+Start+"\n"))
	assert.True(t, Has(Start+"\r\n"))
	assert.False(t, Has("a\n"+Separator+"\n"))
	assert.False(t, Has(""))
}
