package reconcile

import (
	"math"
	"sort"
)

// Strategy names recorded on conflict records.
const (
	StrategyMedian          = "median"
	StrategyWeightedAverage = "weighted_average"
	StrategyLowest          = "lowest"
)

// Median returns the middle value of vs, averaging the central pair for an
// even count. An empty slice returns 0.
func Median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// WeightedAverage combines values with their source weights, renormalizing
// over the sources actually present so absent sources do not skew the
// denominator. Zero or negative weights fall back to 1.
func WeightedAverage(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum, totalWeight float64
	for i, v := range values {
		w := 1.0
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		sum += v * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}

// Lowest returns the minimum value, used for conservative fields.
func Lowest(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	min := vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Mean returns the arithmetic mean of vs.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// CoefficientOfVariation is stddev/mean of vs, the agreement measure used
// for projection confidence. A zero mean returns 0.
func CoefficientOfVariation(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	mean := Mean(vs)
	if mean == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range vs {
		d := v - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(vs)))
	return math.Abs(stddev / mean)
}

// Spread is the relative disagreement (max-min)/|median| of vs, used to
// decide whether a conflict record is warranted.
func Spread(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	min, max := vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	med := Median(vs)
	if med == 0 {
		return max - min
	}
	return (max - min) / math.Abs(med)
}
