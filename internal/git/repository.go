package git

import (
	"errors"
	"fmt"
	"sort"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samber/lo"
)

var (
	ErrNoRepository = errors.New("git: not a git repository")
	ErrNoMergeBase  = errors.New("git: revisions have no common ancestor")
	ErrFileNotFound = errors.New("git: file not found at revision")
)

type Repository struct {
	repo *gitc.Repository
}

// NewLocalRepository will attempt to open a pre-existing git repository in the given directory
// If no repository is found, it will return an empty Repository
func NewLocalRepository(dir string) (*Repository, error) {
	repo, err := gitc.PlainOpenWithOptions(dir, &gitc.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, gitc.ErrRepositoryNotExists) {
		return &Repository{}, nil
	} else if err != nil {
		return &Repository{}, fmt.Errorf("git: %w", err)
	}

	return &Repository{repo: repo}, nil
}

func (r *Repository) IsNil() bool {
	return r.repo == nil
}

// Root returns the worktree directory, or "" for bare or missing repositories.
func (r *Repository) Root() string {
	if r.IsNil() {
		return ""
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	return wt.Filesystem.Root()
}

func (r *Repository) HeadHash() (string, error) {
	if r.IsNil() {
		return "", nil
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}

	return head.Hash().String(), nil
}

// ResolveRevision resolves a revision (like "HEAD", "branchname") to a hash.
func (r *Repository) ResolveRevision(revision string) (string, error) {
	c, err := r.commit(revision)
	if err != nil {
		return "", err
	}
	return c.Hash.String(), nil
}

// MergeBase returns the best common ancestor of two revisions.
func (r *Repository) MergeBase(a, b string) (string, error) {
	ca, err := r.commit(a)
	if err != nil {
		return "", err
	}
	cb, err := r.commit(b)
	if err != nil {
		return "", err
	}

	bases, err := ca.MergeBase(cb)
	if err != nil {
		return "", fmt.Errorf("git: finding merge base of %s and %s: %w", a, b, err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("%w: %s and %s", ErrNoMergeBase, a, b)
	}

	return bases[0].Hash.String(), nil
}

// ReadFile returns the content of path at revision. A path absent from the
// revision's tree yields ErrFileNotFound.
func (r *Repository) ReadFile(revision, path string) ([]byte, error) {
	tree, err := r.tree(revision)
	if err != nil {
		return nil, err
	}

	f, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %s@%s", ErrFileNotFound, path, revision)
	} else if err != nil {
		return nil, fmt.Errorf("git: %w", err)
	}

	contents, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("git: reading %s@%s: %w", path, revision, err)
	}

	return []byte(contents), nil
}

// ChangedFiles lists the paths that differ between two revisions, sorted.
func (r *Repository) ChangedFiles(from, to string) ([]string, error) {
	fromTree, err := r.tree(from)
	if err != nil {
		return nil, err
	}
	toTree, err := r.tree(to)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("git: diffing %s..%s: %w", from, to, err)
	}

	paths := lo.Uniq(lo.FlatMap(changes, func(c *object.Change, _ int) []string {
		return lo.Compact([]string{c.From.Name, c.To.Name})
	}))
	sort.Strings(paths)

	return paths, nil
}

func (r *Repository) commit(revision string) (*object.Commit, error) {
	if r.IsNil() {
		return nil, ErrNoRepository
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("git: resolving %s: %w", revision, err)
	}

	c, err := r.repo.CommitObject(*h)
	if err != nil {
		return nil, fmt.Errorf("git: %w", err)
	}

	return c, nil
}

func (r *Repository) tree(revision string) (*object.Tree, error) {
	c, err := r.commit(revision)
	if err != nil {
		return nil, err
	}

	t, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("git: %w", err)
	}

	return t, nil
}
