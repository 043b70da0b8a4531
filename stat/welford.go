// Package stat accumulates per-snippet cycle statistics: Welford online
// mean/variance with a 95% confidence interval, and a bounded-memory
// t-digest for quantile and CDF queries (spec.md §4.6).
package stat

import "math"

// Stat holds running Welford moments for one snippet's samples.
type Stat struct {
	mean float64
	m2   float64
	n    uint64
	min  float64
	max  float64
}

// Update folds one more sample into the running mean/variance.
func (s *Stat) Update(v float64) {
	if s.n == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.n++
	delta := v - s.mean
	s.mean += delta / float64(s.n)
	delta2 := v - s.mean
	s.m2 += delta * delta2
}

// N returns the number of samples folded in so far.
func (s *Stat) N() uint64 { return s.n }

// Mean returns the running arithmetic mean.
func (s *Stat) Mean() float64 { return s.mean }

// Variance returns the sample variance (Bessel-corrected). Zero for n<2.
func (s *Stat) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

// Min returns the smallest sample seen, or NaN if none have.
func (s *Stat) Min() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.min
}

// Max returns the largest sample seen, or NaN if none have.
func (s *Stat) Max() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.max
}

// ConfidenceInterval is a [Lower, Upper] pair. Both bounds are NaN when the
// interval is undefined.
type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// Undefined reports whether the interval has no meaningful bounds.
func (ci ConfidenceInterval) Undefined() bool {
	return math.IsNaN(ci.Lower) || math.IsNaN(ci.Upper)
}

// ConfidenceInterval returns the 95% CI via the normal approximation,
// mean ± 1.96·σ/√n. Undefined (NaN, NaN) for n ≤ 30 — too few samples for
// the approximation to be trustworthy.
func (s *Stat) ConfidenceInterval() ConfidenceInterval {
	if s.n <= 30 {
		return ConfidenceInterval{Lower: math.NaN(), Upper: math.NaN()}
	}
	stddev := math.Sqrt(s.Variance())
	margin := 1.96 * stddev / math.Sqrt(float64(s.n))
	return ConfidenceInterval{Lower: s.mean - margin, Upper: s.mean + margin}
}
