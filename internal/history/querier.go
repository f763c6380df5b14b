// Package history extracts per-line edit frequencies from git history.
package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Querier answers how many distinct commits touched one line of one file.
// Implementations must be safe for concurrent use.
type Querier interface {
	CountLineCommits(ctx context.Context, relPath string, line int) (int, error)
}

// GitLogQuerier counts line-touching commits by shelling out to git's line
// log. Each call spawns one git process scoped to a single-line range; this
// is the dominant cost of a run.
type GitLogQuerier struct {
	root   string
	logger *slog.Logger
}

// NewGitLogQuerier creates a querier for the repository rooted at root.
// A nil logger disables failure logging.
func NewGitLogQuerier(root string, logger *slog.Logger) *GitLogQuerier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &GitLogQuerier{root: root, logger: logger}
}

// CountLineCommits runs `git log -L line,line:relPath` and counts the commit
// records in the output. A failed invocation or unusable output degrades to a
// count of 0 so one unreadable line never aborts the rest of the file.
func (q *GitLogQuerier) CountLineCommits(ctx context.Context, relPath string, line int) (int, error) {
	rangeArg := fmt.Sprintf("-L%d,%d:%s", line, line, relPath)

	cmd := exec.CommandContext(ctx, "git", "-C", q.root, "log", "--format=%H", "--no-patch", rangeArg)

	out, err := cmd.Output()
	if err != nil {
		q.logger.DebugContext(ctx, "line history query failed",
			"file", relPath, "line", line, "err", err)

		return 0, nil
	}

	return countRecords(out), nil
}

// countRecords counts commit hash records, not raw output length.
func countRecords(out []byte) int {
	count := 0

	for _, rec := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(rec) != "" {
			count++
		}
	}

	return count
}
