// Package analysis implements the settlement analyses: spot preference,
// intra-specific attraction and inter-specific attraction. Each analysis
// accumulates a spatial sample from plate records, draws a matching sample
// from randomly generated plates and compares the two.
package analysis

import (
	"math/rand"

	"setlstat/domain/plate"
	"setlstat/domain/stats"
)

// IntraDistances accumulates the pairwise spot distances of every record
// whose positive-spot count falls in the group. Plates outside the group,
// and plates with fewer than two positive spots, contribute nothing.
// It also reports how many plates contributed.
func IntraDistances(records []plate.Record, g stats.SpotGroup) ([]float64, int, error) {
	var distances []float64
	nPlates := 0
	for _, rec := range records {
		n := rec.PositiveCount()
		if n < 2 || !g.Matches(n) {
			continue
		}
		d, err := plate.PairDistances(plate.SpotPairs(rec))
		if err != nil {
			return nil, 0, err
		}
		distances = append(distances, d...)
		nPlates++
	}
	return distances, nPlates, nil
}

// ExpectedIntraDistances accumulates distances from one random plate per
// matching record, each with the same positive-spot count as the original.
// The result has exactly as many values as IntraDistances yields for the
// same records and group.
func ExpectedIntraDistances(rng *rand.Rand, records []plate.Record, g stats.SpotGroup) ([]float64, error) {
	var distances []float64
	for _, rec := range records {
		n := rec.PositiveCount()
		if n < 2 || !g.Matches(n) {
			continue
		}
		random, err := plate.RandomRecord(rng, rec.PlateID, n)
		if err != nil {
			return nil, err
		}
		d, err := plate.PairDistances(plate.SpotPairs(random))
		if err != nil {
			return nil, err
		}
		distances = append(distances, d...)
	}
	return distances, nil
}

// RecordPair is the two same-plate records of an inter-specific analysis,
// one per species selection.
type RecordPair struct {
	PlateID int64
	A       plate.Record
	B       plate.Record
}

// MatchPlates pairs the records of two selections by plate ID. Only plates
// where both species have at least one positive spot form a pair. Inputs
// must already be combined per plate.
func MatchPlates(a, b []plate.Record) []RecordPair {
	byPlate := make(map[int64]plate.Record, len(b))
	for _, rec := range b {
		byPlate[rec.PlateID] = rec
	}

	var pairs []RecordPair
	for _, recA := range a {
		recB, ok := byPlate[recA.PlateID]
		if !ok {
			continue
		}
		if recA.PositiveCount() == 0 || recB.PositiveCount() == 0 {
			continue
		}
		pairs = append(pairs, RecordPair{PlateID: recA.PlateID, A: recA, B: recB})
	}
	return pairs
}

// RatioBand assigns a plate pair to a ratio band 1..5 by the larger of the
// two positive-spot counts: counts up to 5 are band 1, 6..10 band 2 and so
// on. The fully saturated pair (25, 25) carries no signal and gets band 0.
func RatioBand(na, nb int) int {
	if na == plate.SpotCount && nb == plate.SpotCount {
		return 0
	}
	max := na
	if nb > max {
		max = nb
	}
	return (max-1)/plate.GridSize + 1
}

// matchesRatioGroup reports whether a pair with counts (na, nb) belongs to
// a ratio group.
func matchesRatioGroup(g stats.RatioGroup, na, nb int) bool {
	band := RatioBand(na, nb)
	if band == 0 {
		return false
	}
	if g.All {
		return band <= g.Band
	}
	return band == g.Band
}

// InterDistances accumulates the cross-species spot distances of every
// plate pair in a ratio group: the full Cartesian product of species A and
// species B positive spots per plate.
func InterDistances(pairs []RecordPair, g stats.RatioGroup) ([]float64, int, error) {
	var distances []float64
	nPlates := 0
	for _, pair := range pairs {
		if !matchesRatioGroup(g, pair.A.PositiveCount(), pair.B.PositiveCount()) {
			continue
		}
		d, err := plate.PairDistances(plate.SpotPairsBetween(pair.A, pair.B))
		if err != nil {
			return nil, 0, err
		}
		distances = append(distances, d...)
		nPlates++
	}
	return distances, nPlates, nil
}

// ExpectedInterDistances draws two random plates per matching pair, one per
// species with the observed positive-spot counts, and accumulates their
// cross distances.
func ExpectedInterDistances(rng *rand.Rand, pairs []RecordPair, g stats.RatioGroup) ([]float64, error) {
	var distances []float64
	for _, pair := range pairs {
		na := pair.A.PositiveCount()
		nb := pair.B.PositiveCount()
		if !matchesRatioGroup(g, na, nb) {
			continue
		}
		randomA, err := plate.RandomRecord(rng, pair.PlateID, na)
		if err != nil {
			return nil, err
		}
		randomB, err := plate.RandomRecord(rng, pair.PlateID, nb)
		if err != nil {
			return nil, err
		}
		d, err := plate.PairDistances(plate.SpotPairsBetween(randomA, randomB))
		if err != nil {
			return nil, err
		}
		distances = append(distances, d...)
	}
	return distances, nil
}
