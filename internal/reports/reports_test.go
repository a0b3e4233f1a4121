package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/speakeasy-api/textmerge/internal/merge"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testReport() Report {
	return New([]merging.MergeResult{
		{Path: "clean.txt", Status: merging.MergeStatusClean, Content: []byte("a\n")},
		{
			Path:    "conflict.txt",
			Status:  merging.MergeStatusConflict,
			Content: []byte("a\nremote\n"),
			Conflicts: []merge.MergeConflict{{
				Base:        []string{"b\n"},
				Remote:      []string{"remote\n"},
				Local:       []string{"local\n"},
				BaseLine:    1,
				MergedLine:  1,
				RemoteStart: 1,
			}},
		},
		{Path: "broken.txt", Error: errors.New("permission denied")},
	})
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, testReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	summary := got["summary"].(map[string]any)
	assert.EqualValues(t, 3, summary["files"])
	assert.EqualValues(t, 1, summary["conflicts"])

	files := got["files"].([]any)
	require.Len(t, files, 3)
	conflict := files[1].(map[string]any)
	assert.Equal(t, "CONFLICT", conflict["status"])
	assert.NotContains(t, conflict, "Content")

	c := conflict["conflicts"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 1, c["baseLine"])
	assert.Equal(t, []any{"remote\n"}, c["remote"])
}

func TestEncode_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, testReport()))

	var got struct {
		Files []struct {
			Path      string `yaml:"path"`
			Status    string `yaml:"status"`
			Conflicts []struct {
				Local      []string `yaml:"local"`
				MergedLine int      `yaml:"mergedLine"`
			} `yaml:"conflicts"`
		} `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Files, 3)
	assert.Equal(t, "conflict.txt", got.Files[1].Path)
	require.Len(t, got.Files[1].Conflicts, 1)
	assert.Equal(t, []string{"local\n"}, got.Files[1].Conflicts[0].Local)
	assert.Equal(t, 1, got.Files[1].Conflicts[0].MergedLine)
}

func TestEncode_TOML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatTOML, testReport()))

	var got struct {
		Summary struct {
			Files int `toml:"files"`
		} `toml:"summary"`
		Files []struct {
			Path   string `toml:"path"`
			Status string `toml:"status"`
		} `toml:"files"`
	}
	_, err := toml.Decode(buf.String(), &got)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Summary.Files)
	require.Len(t, got.Files, 3)
	assert.Equal(t, "CLEAN", got.Files[0].Status)
}

func TestEncode_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, testReport()))

	out := buf.String()
	assert.Contains(t, out, "clean.txt")
	assert.Contains(t, out, "(conflict)")
	assert.Contains(t, out, "conflict 1: base line 2, merged lines 2-2, remote 1 / local 1 lines")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "3 files merged")
}

func TestEncode_UnknownFormat(t *testing.T) {
	t.Parallel()

	assert.ErrorContains(t, Encode(&bytes.Buffer{}, Format("xml"), testReport()), "unsupported report format")
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	res, err := Save(dir, FormatJSON, testReport())
	require.NoError(t, err)
	assert.FileExists(t, res.LocalPath)
	assert.Contains(t, res.LocalPath, res.Digest)
	assert.Contains(t, res.Message, res.LocalPath)

	again, err := Save(dir, FormatJSON, testReport())
	require.NoError(t, err)
	assert.Equal(t, res.LocalPath, again.LocalPath)

	content, err := os.ReadFile(res.LocalPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(content))
}
