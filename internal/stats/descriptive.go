// Package stats implements the statistical tests the analyses run:
// Wilcoxon rank-sum, Shapiro-Wilk normality and chi-squared goodness of fit.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Mean averages a sample. An empty sample yields NaN rather than an error;
// callers treat NaN means the same way they treat NaN p-values.
func Mean(data []float64) float64 {
	m, err := mstats.Mean(mstats.Float64Data(data))
	if err != nil {
		return math.NaN()
	}
	return m
}

// allEqual reports whether every value of a sample is identical.
func allEqual(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}
