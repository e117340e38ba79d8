package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 7.0, Median([]float64{7}))
	assert.Equal(t, 5.0, Median([]float64{9, 5, 1}))
	// Even count averages the central pair.
	assert.Equal(t, 4.5, Median([]float64{4, 5}))
	assert.Equal(t, 4.5, Median([]float64{5, 2, 4, 8}))
}

func TestWeightedAverage(t *testing.T) {
	assert.Equal(t, 0.0, WeightedAverage(nil, nil))

	// Weights renormalize over the sources actually present.
	got := WeightedAverage([]float64{50, 60}, []float64{1, 3})
	assert.InDelta(t, 57.5, got, 1e-9)

	// Missing or non-positive weights fall back to 1.
	got = WeightedAverage([]float64{10, 20}, []float64{0})
	assert.InDelta(t, 15, got, 1e-9)
}

func TestLowest(t *testing.T) {
	assert.Equal(t, 0.0, Lowest(nil))
	assert.Equal(t, 2.0, Lowest([]float64{5, 2, 9}))
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Equal(t, 0.0, CoefficientOfVariation([]float64{100}))
	// Identical values agree perfectly.
	assert.Equal(t, 0.0, CoefficientOfVariation([]float64{100, 100, 100}))
	// Wider disagreement raises the coefficient.
	tight := CoefficientOfVariation([]float64{100, 102, 98})
	wide := CoefficientOfVariation([]float64{100, 150, 50})
	assert.Greater(t, wide, tight)
}

func TestSpread(t *testing.T) {
	assert.Equal(t, 0.0, Spread([]float64{10}))
	assert.InDelta(t, 0.2, Spread([]float64{9, 10, 11}), 1e-9)
	// Zero median falls back to the absolute range.
	assert.InDelta(t, 20, Spread([]float64{-10, 0, 10}), 1e-9)
}

func TestProjectionConfidence(t *testing.T) {
	// No sources bottoms out at the floor.
	assert.Equal(t, 0.3, ProjectionConfidence(0, 0))

	// Three agreeing sources approach the ceiling.
	high := ProjectionConfidence(3, 0.0)
	assert.InDelta(t, 0.95, high, 1e-9)

	// Disagreement lowers confidence at the same source count.
	assert.Less(t, ProjectionConfidence(3, 0.4), high)

	// More sources raise confidence at the same agreement.
	assert.Less(t, ProjectionConfidence(1, 0.1), ProjectionConfidence(3, 0.1))

	// Clamped to [0.3, 0.95].
	assert.GreaterOrEqual(t, ProjectionConfidence(1, 2.0), 0.3)
	assert.LessOrEqual(t, ProjectionConfidence(5, 0.0), 0.95)
}
