package analysis

import (
	"math/rand"

	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/internal/errors"
)

// ObservedAreaTotals returns, per plate, how many positive spots fall in an
// area group. The slice is ordered like the input records so repeated runs
// line observed and expected values up plate by plate.
func ObservedAreaTotals(records []plate.Record, g plate.AreaGroup) []float64 {
	totals := make([]float64, len(records))
	for i, rec := range records {
		totals[i] = float64(plate.RecordAreaTotals(rec).GroupTotal(g))
	}
	return totals
}

// ExpectedAreaTotals draws one random plate per record, preserving each
// record's positive-spot count, and returns the area-group totals of the
// random plates.
func ExpectedAreaTotals(rng *rand.Rand, records []plate.Record, g plate.AreaGroup) ([]float64, error) {
	totals := make([]float64, len(records))
	for i, rec := range records {
		random, err := plate.RandomRecord(rng, rec.PlateID, rec.PositiveCount())
		if err != nil {
			return nil, err
		}
		totals[i] = float64(plate.RecordAreaTotals(random).GroupTotal(g))
	}
	return totals, nil
}

// AnalyticAreaTotals is the deterministic alternative to the randomized
// expectation: under uniform settlement a plate with k positive spots puts
// k*slots/25 of them in an area group on average.
func AnalyticAreaTotals(records []plate.Record, g plate.AreaGroup) []float64 {
	slots := 0
	for _, area := range g {
		slots += plate.AreaSlotCount(area)
	}
	totals := make([]float64, len(records))
	for i, rec := range records {
		totals[i] = float64(rec.PositiveCount()) * float64(slots) / float64(plate.SpotCount)
	}
	return totals
}

// AreaGroupCounts sums the positive spots over all plates per user-defined
// area group, together with each group's analytic null probability (its
// share of the 25 spots). An all-zero count vector means the selection has
// no positive spots at all and the analysis cannot proceed.
func AreaGroupCounts(records []plate.Record, def plate.AreasDefinition) (counts []int, probabilities []float64, names []string, err error) {
	names = def.GroupNames()
	counts = make([]int, len(names))
	probabilities = make([]float64, len(names))

	totals := make([]plate.AreaTotals, len(records))
	for i, rec := range records {
		totals[i] = plate.RecordAreaTotals(rec)
	}

	total := 0
	for i, name := range names {
		group := plate.AreaGroup(def[name])
		for _, t := range totals {
			counts[i] += t.GroupTotal(group)
		}
		total += counts[i]
		probabilities[i] = float64(def.SlotCount(name)) / float64(plate.SpotCount)
	}
	if total == 0 {
		return nil, nil, nil, errors.Wrap(core.ErrNoData, "selection has no positive spots in any plate area")
	}
	return counts, probabilities, names, nil
}
