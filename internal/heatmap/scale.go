// Package heatmap normalizes per-line edit counts into bounded visual intensities.
package heatmap

// Scale maps raw edit counts onto the [0, 1] intensity range used by the
// report renderer. It is immutable after construction.
type Scale struct {
	min int
	max int
}

// NewScale computes the min/max bounds over the given counts.
// An empty sequence yields a degenerate scale where every intensity is 0.
func NewScale(counts []int) Scale {
	if len(counts) == 0 {
		return Scale{}
	}

	s := Scale{min: counts[0], max: counts[0]}

	for _, c := range counts[1:] {
		if c < s.min {
			s.min = c
		}

		if c > s.max {
			s.max = c
		}
	}

	return s
}

// Min returns the smallest count observed.
func (s Scale) Min() int {
	return s.min
}

// Max returns the largest count observed.
func (s Scale) Max() int {
	return s.max
}

// Intensity maps a count to [0, 1]. When every observed count is identical
// (including the all-zero case) the divisor would be zero, so the intensity
// is defined as 0 instead of dividing.
func (s Scale) Intensity(count int) float64 {
	divisor := s.max - s.min
	if divisor == 0 {
		return 0
	}

	v := float64(count-s.min) / float64(divisor)
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
