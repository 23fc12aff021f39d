package stats

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"setlstat/domain/core"
	"setlstat/internal/errors"
)

// maxShapiroSample caps the sample size the normality test runs on. The
// p-value approximation degrades above this size, so larger samples are
// reduced to a uniform random subsample first.
const maxShapiroSample = 5000

// ShapiroWilk performs the Shapiro-Wilk normality test (Royston's
// approximation) and returns the W statistic and p-value. At least three
// values are required and the sample must not be constant. Samples above
// maxShapiroSample values are subsampled without replacement from rng;
// rng is unused, and may be nil, for samples within the cap.
func ShapiroWilk(rng *rand.Rand, data []float64) (w, p float64, err error) {
	n := len(data)
	if n < 3 {
		return 0, 0, errors.Wrapf(core.ErrInsufficientData, "normality test needs at least 3 values, got %d", n)
	}
	if allEqual(data) {
		return 0, 0, errors.StatTestError("normality test is undefined for a constant sample")
	}

	var x []float64
	if n > maxShapiroSample {
		if rng == nil {
			return 0, 0, errors.StatTestError("subsampling an oversized sample needs a random source")
		}
		x = make([]float64, 0, maxShapiroSample)
		for _, i := range rng.Perm(n)[:maxShapiroSample] {
			x = append(x, data[i])
		}
		n = maxShapiroSample
	} else {
		x = make([]float64, n)
		copy(x, data)
	}
	sort.Float64s(x)

	normal := distuv.Normal{Mu: 0, Sigma: 1}

	// Expected values of standard normal order statistics via the
	// Blom approximation, then normalized into the coefficient vector.
	m := make([]float64, n)
	mSumSq := 0.0
	for i := 0; i < n; i++ {
		m[i] = normal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mSumSq += m[i] * m[i]
	}

	a := make([]float64, n)
	fn := float64(n)
	switch {
	case n == 3:
		a[0] = math.Sqrt(0.5)
		a[2] = -a[0]
	case n <= 5:
		u := 1 / math.Sqrt(fn)
		cn := m[n-1] / math.Sqrt(mSumSq)
		an := cn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))
		phi := (mSumSq - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	default:
		u := 1 / math.Sqrt(fn)
		cn := m[n-1] / math.Sqrt(mSumSq)
		cn1 := m[n-2] / math.Sqrt(mSumSq)
		an := cn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))
		an1 := cn1 + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*(-3.582633)))))
		phi := (mSumSq - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := Mean(x)
	num := 0.0
	den := 0.0
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		den += d * d
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	// Royston's p-value transforms, one regime per sample-size band.
	switch {
	case n == 3:
		p = 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
	case n <= 11:
		g := -2.273 + 0.459*fn
		wt := -math.Log(g - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		p = normal.Survival((wt - mu) / sigma)
	default:
		ln := math.Log(fn)
		wt := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		p = normal.Survival((wt - mu) / sigma)
	}
	return w, p, nil
}
