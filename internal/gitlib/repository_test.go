package gitlib_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codeheat/internal/gitlib"
)

// initTestRepo creates a repository with one commit and returns its path.
func initTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(native.Free)

	err = os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content\n"), 0o644)
	require.NoError(t, err)

	index, err := native.Index()
	require.NoError(t, err)

	defer index.Free()

	require.NoError(t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(t, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(t, err)

	tree, err := native.LookupTree(treeID)
	require.NoError(t, err)

	defer tree.Free()

	sig := &git2go.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()}

	_, err = native.CreateCommit("HEAD", sig, sig, "initial", tree)
	require.NoError(t, err)

	return dir
}

func TestOpenRepository(t *testing.T) {
	path := initTestRepo(t)

	repo, err := gitlib.OpenRepository(path)
	require.NoError(t, err)

	defer repo.Free()

	assert.Equal(t, path, repo.Path())
	assert.Len(t, repo.Head(), 40)
	assert.Len(t, repo.ShortHead(), 7)
}

func TestOpenRepositoryNotARepo(t *testing.T) {
	_, err := gitlib.OpenRepository(t.TempDir())
	require.ErrorIs(t, err, gitlib.ErrNotRepository)
}

func TestOpenRepositoryMissingPath(t *testing.T) {
	_, err := gitlib.OpenRepository("/nonexistent/path/to/repo")
	require.ErrorIs(t, err, gitlib.ErrNotRepository)
}
