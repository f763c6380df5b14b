package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codeheat/internal/gitlib"
	"github.com/Sumatoshi-tech/codeheat/internal/pipeline"
)

func TestNewRunCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRunCommand()

	for _, name := range []string{
		"out", "config", "skip-existing", "max-lines", "max-file-size",
		"workers", "summary-format", "verbose", "no-color",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	skip, err := cmd.Flags().GetBool("skip-existing")
	require.NoError(t, err)
	assert.True(t, skip)

	maxLines, err := cmd.Flags().GetInt("max-lines")
	require.NoError(t, err)
	assert.Zero(t, maxLines)
}

func TestRunRequiresOutDir(t *testing.T) {
	t.Parallel()

	cmd := NewRunCommand()
	cmd.SetArgs([]string{t.TempDir()})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrMissingOutDir)
}

func TestRunRejectsNonRepository(t *testing.T) {
	t.Parallel()

	cmd := NewRunCommand()
	cmd.SetArgs([]string{"-o", t.TempDir(), t.TempDir()})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	require.ErrorIs(t, err, gitlib.ErrNotRepository)
}

// initCommitRepo creates a work tree with one committed file.
func initCommitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(native.Free)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))

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

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	repo := initCommitRepo(t)
	out := t.TempDir()

	cmd := NewRunCommand()
	cmd.SetArgs([]string{"-o", out, "--summary-format", "yaml", repo})

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(out, "main.go.html"))
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.Contains(t, stdout.String(), "processed: 1")
}

func TestPrintSummaryYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	summary := &pipeline.Summary{Processed: 3, TotalEdits: 55, TopFile: "hot.go", TopFileEdits: 40}
	require.NoError(t, printSummary(&buf, "yaml", summary))

	out := buf.String()
	assert.Contains(t, out, "processed: 3")
	assert.Contains(t, out, "total_edits: 55")
	assert.Contains(t, out, "top_file: hot.go")
}

func TestPrintSummaryTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	summary := &pipeline.Summary{Processed: 1200, SkippedExisting: 2}
	require.NoError(t, printSummary(&buf, "table", summary))

	out := buf.String()
	assert.Contains(t, out, "Files processed")
	assert.Contains(t, out, "1,200")
}
