package stat

import "math"

// DefaultCompression is the documented compression policy this package
// commits to: maxWeight for any centroid is totalWeight/compression, so the
// number of distinct centroids stays roughly bounded as more samples
// arrive, rather than growing without limit (spec.md §9).
const DefaultCompression = 100

// Centroid is one cluster of merged samples: a running mean and the total
// sample weight folded into it.
type Centroid struct {
	Mean   float64
	Weight float64
}

// TDigest is a bounded-memory quantile sketch: a centroid list kept in
// mean-sorted order, used for quantile estimates and CDF queries that back
// the dashboard histogram.
type TDigest struct {
	compression float64
	centroids   []Centroid
	totalWeight float64
}

// NewTDigest constructs an empty digest with the given compression factor.
func NewTDigest(compression float64) *TDigest {
	return &TDigest{compression: compression}
}

// Insert folds one sample into the nearest centroid, or creates a new
// singleton centroid if that nearest one is already at its weight cap for
// the current total weight. Other centroids are not considered.
func (t *TDigest) Insert(value float64) {
	t.totalWeight++

	if len(t.centroids) == 0 {
		t.centroids = append(t.centroids, Centroid{Mean: value, Weight: 1})
		return
	}

	idx := t.nearest(value)
	maxWeight := t.totalWeight / t.compression
	c := &t.centroids[idx]
	if c.Weight+1 <= maxWeight {
		newWeight := c.Weight + 1
		c.Mean += (value - c.Mean) / newWeight
		c.Weight = newWeight
		t.reseat(idx)
		return
	}

	t.insertSorted(Centroid{Mean: value, Weight: 1})
}

// nearest returns the index of the centroid whose mean is closest to value,
// via binary search over the sorted mean list.
func (t *TDigest) nearest(value float64) int {
	lo, hi := 0, len(t.centroids)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.centroids[mid].Mean < value {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo > 0 && math.Abs(t.centroids[lo-1].Mean-value) <= math.Abs(t.centroids[lo].Mean-value) {
		return lo - 1
	}
	return lo
}

// reseat restores sort order after a merge nudges a centroid's mean past an
// immediate neighbor.
func (t *TDigest) reseat(idx int) {
	for idx > 0 && t.centroids[idx-1].Mean > t.centroids[idx].Mean {
		t.centroids[idx-1], t.centroids[idx] = t.centroids[idx], t.centroids[idx-1]
		idx--
	}
	for idx < len(t.centroids)-1 && t.centroids[idx].Mean > t.centroids[idx+1].Mean {
		t.centroids[idx+1], t.centroids[idx] = t.centroids[idx], t.centroids[idx+1]
		idx++
	}
}

func (t *TDigest) insertSorted(c Centroid) {
	idx := t.nearest(c.Mean)
	if idx < len(t.centroids) && t.centroids[idx].Mean < c.Mean {
		idx++
	}
	t.centroids = append(t.centroids, Centroid{})
	copy(t.centroids[idx+1:], t.centroids[idx:])
	t.centroids[idx] = c
}

// Count returns the total sample weight absorbed by the digest.
func (t *TDigest) Count() float64 { return t.totalWeight }

// NumCentroids returns how many distinct centroids the digest currently
// holds, for tests asserting the compression policy keeps it bounded.
func (t *TDigest) NumCentroids() int { return len(t.centroids) }

// CDF returns the estimated fraction of inserted samples strictly below x:
// the weight of centroids whose mean is less than x, over the total weight.
func (t *TDigest) CDF(x float64) float64 {
	if len(t.centroids) == 0 {
		return math.NaN()
	}
	var cumulative float64
	for _, c := range t.centroids {
		if x <= c.Mean {
			break
		}
		cumulative += c.Weight
	}
	return cumulative / t.totalWeight
}

// Quantile returns an estimate of the value at quantile q (q in [0,1]), via
// linear interpolation between the centroids straddling the target weight.
// Quantile is non-decreasing in q by construction: the centroid list is
// mean-sorted and cumulative weight only grows as the walk proceeds.
func (t *TDigest) Quantile(q float64) float64 {
	if len(t.centroids) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return t.centroids[0].Mean
	}
	if q >= 1 {
		return t.centroids[len(t.centroids)-1].Mean
	}

	target := q * t.totalWeight
	var cumulative float64
	for i, c := range t.centroids {
		next := cumulative + c.Weight
		if target <= next {
			if i == 0 {
				return c.Mean
			}
			prev := t.centroids[i-1]
			frac := (target - cumulative) / c.Weight
			return prev.Mean + frac*(c.Mean-prev.Mean)
		}
		cumulative = next
	}
	return t.centroids[len(t.centroids)-1].Mean
}
