package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"setlstat/internal/errors"
)

// ChiSquaredGoodnessOfFit tests observed category counts against expected
// null probabilities. observed and probabilities must be aligned per
// category and the probabilities must sum to 1; a nil probabilities slice
// means the uniform distribution. It returns the X-squared statistic, the
// p-value, the degrees of freedom and the expected frequency per category,
// so callers can flag results where any expected count falls below 5.
func ChiSquaredGoodnessOfFit(observed []int, probabilities []float64) (chi2, p float64, df int, expected []float64, err error) {
	if len(observed) < 2 {
		return 0, 0, 0, nil, errors.StatTestError("goodness of fit needs at least 2 categories")
	}
	if probabilities == nil {
		probabilities = make([]float64, len(observed))
		for i := range probabilities {
			probabilities[i] = 1 / float64(len(observed))
		}
	}
	if len(observed) != len(probabilities) {
		return 0, 0, 0, nil, errors.StatTestError("observed counts and probabilities differ in length")
	}
	sum := 0.0
	for _, prob := range probabilities {
		sum += prob
	}
	if math.Abs(sum-1) > 1e-9 {
		return 0, 0, 0, nil, errors.StatTestError("probabilities must sum to 1")
	}

	total := 0
	for _, o := range observed {
		total += o
	}
	if total == 0 {
		return 0, 0, 0, nil, errors.StatTestError("goodness of fit needs a nonempty sample")
	}

	expected = make([]float64, len(observed))
	for i, o := range observed {
		expected[i] = probabilities[i] * float64(total)
		if expected[i] <= 0 {
			return 0, 0, 0, nil, errors.StatTestError("every category needs a positive expected count")
		}
		d := float64(o) - expected[i]
		chi2 += d * d / expected[i]
	}

	df = len(observed) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	p = dist.Survival(chi2)
	return chi2, p, df, expected, nil
}
