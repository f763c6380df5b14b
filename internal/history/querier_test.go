package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  string
		want int
	}{
		{name: "empty", out: "", want: 0},
		{name: "single hash", out: "a1b2c3\n", want: 1},
		{name: "three hashes", out: "a1\nb2\nc3\n", want: 3},
		{name: "blank records ignored", out: "a1\n\n\nb2\n", want: 2},
		{name: "no trailing newline", out: "a1\nb2", want: 2},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, countRecords([]byte(tt.out)))
		})
	}
}

func TestGitLogQuerierDegradesToZero(t *testing.T) {
	t.Parallel()

	// Not a git repository: the invocation fails and the count degrades to 0.
	q := NewGitLogQuerier(t.TempDir(), nil)

	count, err := q.CountLineCommits(context.Background(), "nope.go", 1)
	assert.NoError(t, err)
	assert.Zero(t, count)
}
