package stats

import (
	"fmt"

	"setlstat/domain/core"
)

// The 5x5 grid admits exactly 14 distinct spot distances between two
// different spots; pairing a spot with itself (inter-specific only) adds
// distance 0. These values are the rounded outputs of the grid distance
// function and double as frequency-bucket keys, so they must match that
// rounding exactly.
var (
	// IntraDistances are the possible distances between two distinct spots.
	IntraDistances = []float64{
		1, 1.41, 2, 2.24, 2.83, 3, 3.16, 3.61, 4, 4.12, 4.24, 4.47, 5, 5.66,
	}

	// InterDistances adds the zero distance of two species sharing a spot.
	InterDistances = []float64{
		0, 1, 1.41, 2, 2.24, 2.83, 3, 3.16, 3.61, 4, 4.12, 4.24, 4.47, 5, 5.66,
	}
)

// IntraProbabilities is the analytic null distribution of spot distances
// for pairs of distinct spots: of the 300 unordered pairs of 25 spots,
// how many realize each distance.
var IntraProbabilities = map[float64]float64{
	1:    40.0 / 300,
	1.41: 32.0 / 300,
	2:    30.0 / 300,
	2.24: 48.0 / 300,
	2.83: 18.0 / 300,
	3:    20.0 / 300,
	3.16: 32.0 / 300,
	3.61: 24.0 / 300,
	4:    10.0 / 300,
	4.12: 16.0 / 300,
	4.24: 8.0 / 300,
	4.47: 12.0 / 300,
	5:    8.0 / 300,
	5.66: 2.0 / 300,
}

// InterProbabilities is the analytic null distribution for ordered spot
// pairs across two plates records: all 625 combinations, including the 25
// zero-distance ones.
var InterProbabilities = map[float64]float64{
	0:    25.0 / 625,
	1:    80.0 / 625,
	1.41: 64.0 / 625,
	2:    60.0 / 625,
	2.24: 96.0 / 625,
	2.83: 36.0 / 625,
	3:    40.0 / 625,
	3.16: 64.0 / 625,
	3.61: 48.0 / 625,
	4:    20.0 / 625,
	4.12: 32.0 / 625,
	4.24: 16.0 / 625,
	4.47: 24.0 / 625,
	5:    16.0 / 625,
	5.66: 4.0 / 625,
}

// DistanceFrequencies buckets a distance sample into counts per possible
// distance value. Every possible value gets a bucket, zero-count ones
// included, so chi-squared inputs line up with the probability tables.
// A distance outside the value set means corrupted input and is an error.
func DistanceFrequencies(distances []float64, values []float64) (map[float64]int, error) {
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		freq[v] = 0
	}
	for _, d := range distances {
		if _, ok := freq[d]; !ok {
			return nil, fmt.Errorf("%w: unexpected spot distance %v", core.ErrOutOfRange, d)
		}
		freq[d]++
	}
	return freq, nil
}
