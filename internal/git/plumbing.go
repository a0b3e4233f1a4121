package git

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// WriteBlob writes content to the git object database and returns the SHA-1 hash.
func (r *Repository) WriteBlob(content []byte) (string, error) {
	if r.IsNil() {
		return "", ErrNoRepository
	}

	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))

	writer, err := obj.Writer()
	if err != nil {
		return "", fmt.Errorf("failed to create object writer: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write blob content: %w", err)
	}
	writer.Close()

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}

	return hash.String(), nil
}

// GetBlob returns the content of the blob with the given hash. A "sha1:" prefix is accepted.
func (r *Repository) GetBlob(hash string) ([]byte, error) {
	if r.IsNil() {
		return nil, ErrNoRepository
	}

	hash = strings.TrimPrefix(hash, "sha1:")
	blob, err := r.repo.BlobObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to find blob %s: %w", hash, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open blob reader: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", hash, err)
	}

	return content, nil
}

// SetConflictState records path as unmerged in the index: base at stage 1,
// local ("ours") at stage 2 and remote ("theirs") at stage 3. After this git
// status reports the file as both modified and git mergetool can pick it up.
//
// If base is nil, only stages 2 and 3 are written (new file conflict).
func (r *Repository) SetConflictState(path string, base, local, remote []byte, isExecutable bool) error {
	if r.repo == nil {
		return ErrNoRepository
	}

	// Read the current index
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	// Determine file mode
	mode := filemode.Regular
	if isExecutable {
		mode = filemode.Executable
	}

	// Remove any existing stage-0 entry for this path
	newEntries := make([]*index.Entry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if e.Name != path {
			newEntries = append(newEntries, e)
		}
	}
	idx.Entries = newEntries

	now := time.Now()

	if base != nil {
		baseHash, err := r.WriteBlob(base)
		if err != nil {
			return fmt.Errorf("failed to write base blob: %w", err)
		}
		idx.Entries = append(idx.Entries, &index.Entry{
			Name:       path,
			Hash:       plumbing.NewHash(baseHash),
			Mode:       mode,
			Stage:      index.AncestorMode,
			CreatedAt:  now,
			ModifiedAt: now,
			Size:       uint32(len(base)),
		})
	}

	localHash, err := r.WriteBlob(local)
	if err != nil {
		return fmt.Errorf("failed to write local blob: %w", err)
	}
	idx.Entries = append(idx.Entries, &index.Entry{
		Name:       path,
		Hash:       plumbing.NewHash(localHash),
		Mode:       mode,
		Stage:      index.OurMode,
		CreatedAt:  now,
		ModifiedAt: now,
		Size:       uint32(len(local)),
	})

	remoteHash, err := r.WriteBlob(remote)
	if err != nil {
		return fmt.Errorf("failed to write remote blob: %w", err)
	}
	idx.Entries = append(idx.Entries, &index.Entry{
		Name:       path,
		Hash:       plumbing.NewHash(remoteHash),
		Mode:       mode,
		Stage:      index.TheirMode,
		CreatedAt:  now,
		ModifiedAt: now,
		Size:       uint32(len(remote)),
	})

	// Sort entries by (Name, Stage) as required by git index format
	sort.Slice(idx.Entries, func(i, j int) bool {
		if idx.Entries[i].Name != idx.Entries[j].Name {
			return idx.Entries[i].Name < idx.Entries[j].Name
		}
		return idx.Entries[i].Stage < idx.Entries[j].Stage
	})

	// Write the index back
	if err := r.repo.Storer.SetIndex(idx); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	return nil
}

// ConflictBase returns the common ancestor recorded for an unmerged path (index stage 1).
func (r *Repository) ConflictBase(path string) ([]byte, error) {
	if r.IsNil() {
		return nil, ErrNoRepository
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	for _, e := range idx.Entries {
		if e.Name == path && e.Stage == index.AncestorMode {
			return r.GetBlob(e.Hash.String())
		}
	}

	return nil, ErrFileNotFound
}
