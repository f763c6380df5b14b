package history

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// progressStride is how many completed lines separate progress notifications.
const progressStride = 100

// LineCount records the number of distinct commits that touched one line.
type LineCount struct {
	// Line is the 1-based line number.
	Line int

	// Commits is the non-negative edit count for the line.
	Commits int
}

// Total sums the commit counts of a sequence of line records.
func Total(counts []LineCount) int {
	total := 0
	for _, c := range counts {
		total += c.Commits
	}

	return total
}

// Counts flattens line records into their raw commit counts, in line order.
func Counts(counts []LineCount) []int {
	raw := make([]int, len(counts))
	for i, c := range counts {
		raw[i] = c.Commits
	}

	return raw
}

// Extractor produces the ordered per-line edit counts of a file by driving a
// Querier over every line. Lines are queried independently; nothing is cached
// across lines or files.
type Extractor struct {
	// Querier answers single-line history queries.
	Querier Querier

	// Workers bounds concurrent line queries. Zero or negative uses
	// the CPU count; 1 queries strictly sequentially.
	Workers int

	// Progress, when set, is invoked after every 100th completed line with
	// the number of completed lines and the line total. It may be called
	// from multiple goroutines.
	Progress func(done, total int)
}

// FileCounts queries lines 1..lineCount of relPath and returns one LineCount
// per line, in line order. Query results arriving out of order are assembled
// back into line order before returning.
func (e *Extractor) FileCounts(ctx context.Context, relPath string, lineCount int) ([]LineCount, error) {
	if lineCount == 0 {
		return nil, nil
	}

	counts := make([]LineCount, lineCount)

	var done atomic.Int64

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.workers())

	for i := 0; i < lineCount; i++ {
		i := i

		grp.Go(func() error {
			line := i + 1

			commits, err := e.Querier.CountLineCommits(ctx, relPath, line)
			if err != nil {
				return fmt.Errorf("count commits for %s:%d: %w", relPath, line, err)
			}

			counts[i] = LineCount{Line: line, Commits: commits}

			completed := int(done.Add(1))
			if e.Progress != nil && completed%progressStride == 0 {
				e.Progress(completed, lineCount)
			}

			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (e *Extractor) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}

	return runtime.GOMAXPROCS(0)
}
