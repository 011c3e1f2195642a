// Package stats holds the statistical kernels behind the analysis
// engine: entropy measures, distribution averaging and the agreement
// coefficients reported per question.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Entropy returns the natural-log Shannon entropy of a discrete
// distribution. Zero and negative mass entries are skipped.
func Entropy(dist map[string]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	return h
}

// BinaryEntropy returns the natural-log entropy of a Bernoulli(p)
// variable. Degenerate p (at or beyond 0 or 1) has zero entropy.
func BinaryEntropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -p*math.Log(p) - (1-p)*math.Log(1-p)
}

// AverageDistributions returns the element-wise mean of a set of
// distributions over the same label space. Labels missing from a
// distribution contribute zero mass.
func AverageDistributions(dists []map[string]float64) map[string]float64 {
	avg := make(map[string]float64)
	if len(dists) == 0 {
		return avg
	}
	n := float64(len(dists))
	for _, d := range dists {
		for k, v := range d {
			avg[k] += v / n
		}
	}
	return avg
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	m, err := mstats.Mean(mstats.Float64Data(xs))
	if err != nil {
		return 0
	}
	return m
}

// Constant reports whether xs has fewer than two distinct values.
func Constant(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[0] {
			return false
		}
	}
	return true
}

// Pearson returns the correlation coefficient between x and y and its
// two-sided p-value under the t distribution with n-2 degrees of
// freedom. ok is false when either input is constant, the inputs are
// mismatched, or fewer than three pairs are available.
func Pearson(x, y []float64) (r, p float64, ok bool) {
	if len(x) != len(y) || len(x) < 3 {
		return 0, 0, false
	}
	if Constant(x) || Constant(y) {
		return 0, 0, false
	}
	r, err := mstats.Pearson(mstats.Float64Data(x), mstats.Float64Data(y))
	if err != nil || math.IsNaN(r) {
		return 0, 0, false
	}
	n := float64(len(x))
	if r >= 1 || r <= -1 {
		return r, 0, true
	}
	t := r * math.Sqrt((n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
	p = 2 * dist.CDF(-math.Abs(t))
	return r, p, true
}

// CohenKappa returns Cohen's kappa for two aligned binary label
// slices. ok is false when a slice is constant or empty, which leaves
// the chance-agreement denominator undefined.
func CohenKappa(a, b []int) (float64, bool) {
	n := len(a)
	if n == 0 || len(b) != n {
		return 0, false
	}
	if constantInts(a) || constantInts(b) {
		return 0, false
	}
	var agree int
	var aPos, bPos int
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			agree++
		}
		if a[i] == 1 {
			aPos++
		}
		if b[i] == 1 {
			bPos++
		}
	}
	fn := float64(n)
	po := float64(agree) / fn
	pe := (float64(aPos)/fn)*(float64(bPos)/fn) +
		(float64(n-aPos)/fn)*(float64(n-bPos)/fn)
	if pe == 1 {
		return 0, false
	}
	return (po - pe) / (1 - pe), true
}

// MatthewsCorr returns the Matthews correlation coefficient for two
// aligned binary label slices. ok is false when either slice is
// constant, which zeroes the denominator.
func MatthewsCorr(a, b []int) (float64, bool) {
	n := len(a)
	if n == 0 || len(b) != n {
		return 0, false
	}
	if constantInts(a) || constantInts(b) {
		return 0, false
	}
	var tp, tn, fp, fn float64
	for i := 0; i < n; i++ {
		switch {
		case a[i] == 1 && b[i] == 1:
			tp++
		case a[i] == 0 && b[i] == 0:
			tn++
		case a[i] == 0 && b[i] == 1:
			fp++
		default:
			fn++
		}
	}
	denom := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	if denom == 0 {
		return 0, false
	}
	return (tp*tn - fp*fn) / denom, true
}

func constantInts(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[0] {
			return false
		}
	}
	return true
}
