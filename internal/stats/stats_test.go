package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	assert.InDelta(t, math.Log(2), Entropy(map[string]float64{"a": 0.5, "b": 0.5}), 1e-12)
	assert.Equal(t, 0.0, Entropy(map[string]float64{"a": 1.0}))
	assert.Equal(t, 0.0, Entropy(map[string]float64{}))

	// Zero-mass entries do not contribute.
	withZero := Entropy(map[string]float64{"a": 0.5, "b": 0.5, "c": 0})
	assert.InDelta(t, math.Log(2), withZero, 1e-12)
}

func TestBinaryEntropy(t *testing.T) {
	assert.InDelta(t, math.Log(2), BinaryEntropy(0.5), 1e-12)
	assert.Equal(t, 0.0, BinaryEntropy(0))
	assert.Equal(t, 0.0, BinaryEntropy(1))
	assert.Equal(t, 0.0, BinaryEntropy(-0.1))
	assert.Equal(t, 0.0, BinaryEntropy(1.1))
	assert.True(t, BinaryEntropy(0.9) > 0)
}

func TestAverageDistributions(t *testing.T) {
	avg := AverageDistributions([]map[string]float64{
		{"a": 0.8, "b": 0.2},
		{"a": 0.2, "b": 0.8},
	})
	assert.InDelta(t, 0.5, avg["a"], 1e-12)
	assert.InDelta(t, 0.5, avg["b"], 1e-12)

	// Missing labels count as zero mass.
	avg = AverageDistributions([]map[string]float64{
		{"a": 1.0},
		{"b": 1.0},
	})
	assert.InDelta(t, 0.5, avg["a"], 1e-12)
	assert.InDelta(t, 0.5, avg["b"], 1e-12)

	assert.Empty(t, AverageDistributions(nil))
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	r, p, ok := Pearson(x, y)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)
	assert.InDelta(t, 0.0, p, 1e-12)

	// Noisy but positively correlated data has r in (0, 1) and a
	// p-value in (0, 1).
	x = []float64{1, 2, 3, 4, 5, 6}
	y = []float64{1.1, 2.3, 2.7, 4.4, 4.6, 6.5}
	r, p, ok = Pearson(x, y)
	assert.True(t, ok)
	assert.Greater(t, r, 0.9)
	assert.Less(t, r, 1.0)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 0.05)
}

func TestPearsonDegenerate(t *testing.T) {
	_, _, ok := Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.False(t, ok)

	_, _, ok = Pearson([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.False(t, ok)

	_, _, ok = Pearson([]float64{1, 2}, []float64{1, 2})
	assert.False(t, ok)

	_, _, ok = Pearson([]float64{1, 2, 3}, []float64{1, 2})
	assert.False(t, ok)
}

func TestCohenKappa(t *testing.T) {
	// Perfect agreement.
	k, ok := CohenKappa([]int{0, 1, 0, 1}, []int{0, 1, 0, 1})
	assert.True(t, ok)
	assert.InDelta(t, 1.0, k, 1e-12)

	// Perfect disagreement.
	k, ok = CohenKappa([]int{0, 1, 0, 1}, []int{1, 0, 1, 0})
	assert.True(t, ok)
	assert.InDelta(t, -1.0, k, 1e-12)

	// Constant raters are degenerate.
	_, ok = CohenKappa([]int{1, 1, 1}, []int{0, 1, 0})
	assert.False(t, ok)
	_, ok = CohenKappa(nil, nil)
	assert.False(t, ok)
}

func TestMatthewsCorr(t *testing.T) {
	m, ok := MatthewsCorr([]int{0, 1, 0, 1}, []int{0, 1, 0, 1})
	assert.True(t, ok)
	assert.InDelta(t, 1.0, m, 1e-12)

	m, ok = MatthewsCorr([]int{0, 1, 0, 1}, []int{1, 0, 1, 0})
	assert.True(t, ok)
	assert.InDelta(t, -1.0, m, 1e-12)

	_, ok = MatthewsCorr([]int{1, 1}, []int{0, 1})
	assert.False(t, ok)
}

func TestConstant(t *testing.T) {
	assert.True(t, Constant([]float64{3, 3, 3}))
	assert.True(t, Constant(nil))
	assert.False(t, Constant([]float64{3, 3, 4}))
}
