package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem reads merge inputs from and writes merge outputs to the local disk.
type FileSystem struct {
	root string
}

// NewFileSystem resolves relative paths against root. An empty root means the working directory.
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

func (f *FileSystem) resolve(path string) string {
	if f.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.root, path)
}

func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.resolve(path))
}

// WriteFile writes data to path, creating parent directories as needed.
func (f *FileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	path = f.resolve(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// Mode returns the permission bits of path, or 0o644 when it does not exist.
func (f *FileSystem) Mode(path string) (os.FileMode, error) {
	info, err := os.Stat(f.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return 0o644, nil
	} else if err != nil {
		return 0, err
	}
	return info.Mode().Perm(), nil
}

// Remove deletes path. A missing file is not an error.
func (f *FileSystem) Remove(path string) error {
	if err := os.Remove(f.resolve(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
