package merging

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"strings"

	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/git"
)

// Source reads one version of a file. A missing version yields (nil, nil).
type Source interface {
	Read(ref string) ([]byte, error)
}

// FileSource reads versions from the local file system; references are paths.
type FileSource struct {
	fsys *fs.FileSystem
}

func NewFileSource(fsys *fs.FileSystem) *FileSource {
	return &FileSource{fsys: fsys}
}

func (s *FileSource) Read(ref string) ([]byte, error) {
	if ref == "" {
		return nil, nil
	}

	content, err := s.fsys.ReadFile(ref)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}

	if content == nil {
		content = []byte{}
	}
	return content, nil
}

// GitSource reads versions from a git repository. References take the
// "revision:path" form git show accepts.
type GitSource struct {
	repo *git.Repository
}

func NewGitSource(repo *git.Repository) *GitSource {
	return &GitSource{repo: repo}
}

func (s *GitSource) Read(ref string) ([]byte, error) {
	if ref == "" {
		return nil, nil
	}

	revision, path, ok := strings.Cut(ref, ":")
	if !ok || revision == "" || path == "" {
		return nil, fmt.Errorf("invalid git reference %q, expected revision:path", ref)
	}

	content, err := s.repo.ReadFile(revision, path)
	if errors.Is(err, git.ErrFileNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if content == nil {
		content = []byte{}
	}
	return content, nil
}

// GitRef builds a GitSource reference.
func GitRef(revision, path string) string {
	return revision + ":" + path
}

func readVersions(src Source, set FileSet) (Versions, error) {
	var (
		v   Versions
		err error
	)
	if v.Base, err = src.Read(set.Base); err != nil {
		return v, err
	}
	if v.Remote, err = src.Read(set.Remote); err != nil {
		return v, err
	}
	if v.Local, err = src.Read(set.Local); err != nil {
		return v, err
	}
	return v, nil
}
