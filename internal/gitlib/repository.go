// Package gitlib wraps the libgit2 repository access codeheat needs.
package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNotRepository indicates the given path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// shortHashLen truncates hashes for display.
const shortHashLen = 7

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the git repository at path. Failing to open is a
// configuration error: the caller must abort before any processing begins.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}

	if repo.IsBare() {
		repo.Free()

		return nil, fmt.Errorf("%w: %s is bare, a work tree is required", ErrNotRepository, path)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Workdir returns the repository's work tree root.
func (r *Repository) Workdir() string {
	return r.repo.Workdir()
}

// Head returns the full hex hash of the HEAD commit, or an empty string for
// a repository with no commits yet.
func (r *Repository) Head() string {
	ref, err := r.repo.Head()
	if err != nil {
		return ""
	}
	defer ref.Free()

	return ref.Target().String()
}

// ShortHead returns the abbreviated HEAD hash for display.
func (r *Repository) ShortHead() string {
	head := r.Head()
	if len(head) > shortHashLen {
		return head[:shortHashLen]
	}

	return head
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}
