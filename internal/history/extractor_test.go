package history_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codeheat/internal/history"
)

// stubQuerier returns fixed counts keyed by line number.
type stubQuerier struct {
	counts map[int]int
	err    error

	mu    sync.Mutex
	calls []int
}

func (s *stubQuerier) CountLineCommits(_ context.Context, _ string, line int) (int, error) {
	s.mu.Lock()
	s.calls = append(s.calls, line)
	s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}

	return s.counts[line], nil
}

func TestFileCountsOrder(t *testing.T) {
	t.Parallel()

	q := &stubQuerier{counts: map[int]int{1: 2, 2: 5, 3: 2}}
	ex := &history.Extractor{Querier: q, Workers: 4}

	counts, err := ex.FileCounts(context.Background(), "a.go", 3)
	require.NoError(t, err)

	expected := []history.LineCount{
		{Line: 1, Commits: 2},
		{Line: 2, Commits: 5},
		{Line: 3, Commits: 2},
	}
	assert.Equal(t, expected, counts)
	assert.Equal(t, 9, history.Total(counts))
	assert.Equal(t, []int{2, 5, 2}, history.Counts(counts))
}

func TestFileCountsEveryLineQueried(t *testing.T) {
	t.Parallel()

	q := &stubQuerier{counts: map[int]int{}}
	ex := &history.Extractor{Querier: q, Workers: 1}

	_, err := ex.FileCounts(context.Background(), "b.go", 250)
	require.NoError(t, err)

	require.Len(t, q.calls, 250)

	// Sequential extraction preserves increasing line order.
	for i, line := range q.calls {
		assert.Equal(t, i+1, line)
	}
}

func TestFileCountsEmptyFile(t *testing.T) {
	t.Parallel()

	ex := &history.Extractor{Querier: &stubQuerier{}}

	counts, err := ex.FileCounts(context.Background(), "empty.go", 0)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFileCountsQuerierError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ex := &history.Extractor{Querier: &stubQuerier{err: boom}, Workers: 1}

	_, err := ex.FileCounts(context.Background(), "c.go", 2)
	require.ErrorIs(t, err, boom)
}

func TestFileCountsProgress(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		ticks []int
	)

	ex := &history.Extractor{
		Querier: &stubQuerier{counts: map[int]int{}},
		Workers: 1,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()

			ticks = append(ticks, done)
			assert.Equal(t, 230, total)
		},
	}

	_, err := ex.FileCounts(context.Background(), "d.go", 230)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 200}, ticks)
}
