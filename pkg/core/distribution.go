package core

import (
	"math"
	"sort"
)

// Distribution1D is a piecewise-constant discrete distribution sampled by inverting its CDF
type Distribution1D struct {
	cdf []float64
	sum float64
}

// NewDistribution1D builds a normalized distribution from weights
func NewDistribution1D(weights ...float64) *Distribution1D {
	d := &Distribution1D{}
	for _, w := range weights {
		d.Add(w)
	}
	d.Normalize()
	return d
}

// Clear removes all entries
func (d *Distribution1D) Clear() {
	d.cdf = d.cdf[:0]
	d.sum = 0
}

// Add appends a non-negative weight
func (d *Distribution1D) Add(w float64) {
	if len(d.cdf) == 0 {
		d.cdf = append(d.cdf, 0)
	}
	d.cdf = append(d.cdf, d.cdf[len(d.cdf)-1]+w)
}

// Normalize rescales the CDF to end at one. The unnormalized total stays available through Sum.
func (d *Distribution1D) Normalize() {
	if len(d.cdf) == 0 {
		return
	}
	d.sum = d.cdf[len(d.cdf)-1]
	if d.sum <= 0 {
		return
	}
	inv := 1 / d.sum
	for i := 1; i < len(d.cdf); i++ {
		d.cdf[i] *= inv
	}
	d.cdf[len(d.cdf)-1] = 1
}

// Sum returns the total weight recorded by the last Normalize
func (d *Distribution1D) Sum() float64 {
	return d.sum
}

// Len returns the number of entries
func (d *Distribution1D) Len() int {
	if len(d.cdf) == 0 {
		return 0
	}
	return len(d.cdf) - 1
}

// Empty reports whether the distribution has no entries
func (d *Distribution1D) Empty() bool {
	return d.Len() == 0
}

// Sample maps a uniform number in [0,1) to an index. Zero-weight entries are never returned.
func (d *Distribution1D) Sample(u float64) int {
	n := d.Len()
	if n == 0 {
		return -1
	}
	// First CDF entry strictly greater than u, minus the leading zero
	i := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u }) - 1
	return max(0, min(n-1, i))
}

// EvaluatePDF returns the probability of index i
func (d *Distribution1D) EvaluatePDF(i int) float64 {
	if i < 0 || i >= d.Len() {
		return 0
	}
	return d.cdf[i+1] - d.cdf[i]
}

// TwoTailedGeometric is a discrete geometric distribution decaying on both sides of a center,
// truncated to [Min, Max]
type TwoTailedGeometric struct {
	base     float64
	center   int
	min, max int
	dist     *Distribution1D
}

// NewTwoTailedGeometric configures the distribution. The weight of i is base^-|i-center|.
func NewTwoTailedGeometric(base float64, center, minValue, maxValue int) *TwoTailedGeometric {
	g := &TwoTailedGeometric{base: base, center: center, min: minValue, max: maxValue, dist: &Distribution1D{}}
	for i := minValue; i <= maxValue; i++ {
		g.dist.Add(math.Pow(base, -math.Abs(float64(i-center))))
	}
	g.dist.Normalize()
	return g
}

// Sample returns a value in [Min, Max]
func (g *TwoTailedGeometric) Sample(u float64) int {
	return g.min + g.dist.Sample(u)
}

// EvaluatePDF returns the probability of i
func (g *TwoTailedGeometric) EvaluatePDF(i int) float64 {
	if i < g.min || i > g.max {
		return 0
	}
	return g.dist.EvaluatePDF(i - g.min)
}
