package heatmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codeheat/internal/heatmap"
)

func TestScaleSpread(t *testing.T) {
	t.Parallel()

	s := heatmap.NewScale([]int{2, 5, 2})

	assert.Equal(t, 2, s.Min())
	assert.Equal(t, 5, s.Max())

	assert.InDelta(t, 0.0, s.Intensity(2), 1e-9)
	assert.InDelta(t, 1.0, s.Intensity(5), 1e-9)
	assert.InDelta(t, 1.0/3.0, s.Intensity(3), 1e-9)
}

func TestScaleUniform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts []int
	}{
		{name: "single line", counts: []int{7}},
		{name: "all equal", counts: []int{4, 4, 4}},
		{name: "all zero", counts: []int{0, 0, 0}},
		{name: "empty", counts: nil},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := heatmap.NewScale(tt.counts)

			for _, c := range tt.counts {
				assert.Zero(t, s.Intensity(c))
			}

			assert.Zero(t, s.Intensity(0))
		})
	}
}

func TestScaleBounds(t *testing.T) {
	t.Parallel()

	s := heatmap.NewScale([]int{1, 3, 9})

	// Counts outside the observed range stay clamped to [0, 1].
	assert.InDelta(t, 0.0, s.Intensity(0), 1e-9)
	assert.InDelta(t, 1.0, s.Intensity(100), 1e-9)

	for c := 0; c < 12; c++ {
		v := s.Intensity(c)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestScaleMonotone(t *testing.T) {
	t.Parallel()

	s := heatmap.NewScale([]int{0, 2, 8, 13})

	prev := -1.0

	for c := 0; c < 15; c++ {
		v := s.Intensity(c)
		assert.GreaterOrEqual(t, v, prev)

		prev = v
	}
}
