package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// WilcoxonRankSum performs a two-sided Wilcoxon rank-sum (Mann-Whitney)
// test of x against y using the normal approximation with continuity and
// tie correction. It returns the rank-sum statistic W of x and the
// two-sided p-value.
//
// When every value of both samples is identical the rank variance is zero
// and the p-value is NaN. Callers must treat a NaN p-value as not
// significant instead of comparing it against alpha.
func WilcoxonRankSum(x, y []float64) (w, p float64) {
	n1 := len(x)
	n2 := len(y)
	if n1 == 0 || n2 == 0 {
		return 0, math.NaN()
	}

	type obs struct {
		value float64
		fromX bool
	}
	pooled := make([]obs, 0, n1+n2)
	for _, v := range x {
		pooled = append(pooled, obs{value: v, fromX: true})
	}
	for _, v := range y {
		pooled = append(pooled, obs{value: v})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	// Midranks for ties, and the tie term sum(t^3 - t) for the variance
	// correction.
	ranks := make([]float64, len(pooled))
	tieTerm := 0.0
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].value == pooled[i].value {
			j++
		}
		mid := float64(i+j+1) / 2 // average of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		t := float64(j - i)
		tieTerm += t*t*t - t
		i = j
	}

	rankSumX := 0.0
	for i, o := range pooled {
		if o.fromX {
			rankSumX += ranks[i]
		}
	}

	fn1 := float64(n1)
	fn2 := float64(n2)
	n := fn1 + fn2

	// Mann-Whitney U of x, with its normal approximation.
	w = rankSumX - fn1*(fn1+1)/2
	mu := fn1 * fn2 / 2
	sigma2 := fn1 * fn2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if sigma2 <= 0 {
		return w, math.NaN()
	}
	sigma := math.Sqrt(sigma2)

	// Continuity correction toward the mean.
	d := w - mu
	switch {
	case d > 0:
		d -= 0.5
	case d < 0:
		d += 0.5
	}
	z := d / sigma

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	p = 2 * normal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return w, p
}
