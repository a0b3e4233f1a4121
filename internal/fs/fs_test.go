package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fsys := NewFileSystem(root)

	require.NoError(t, fsys.WriteFile("nested/dir/out.txt", []byte("merged\n"), 0o600))

	got, err := fsys.ReadFile("nested/dir/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "merged\n", string(got))

	got, err = os.ReadFile(filepath.Join(root, "nested", "dir", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "merged\n", string(got))

	mode, err := fsys.Mode("nested/dir/out.txt")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), mode)

	mode, err = fsys.Mode("missing.txt")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), mode)

	require.NoError(t, fsys.Remove("nested/dir/out.txt"))
	require.NoError(t, fsys.Remove("nested/dir/out.txt"))

	_, err = fsys.ReadFile("nested/dir/out.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSystem_AbsolutePath(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "abs.txt")
	fsys := NewFileSystem("/does/not/matter")

	require.NoError(t, fsys.WriteFile(abs, []byte("x"), 0o644))
	got, err := fsys.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}
