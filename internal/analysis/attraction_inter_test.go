package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/domain/report"
	"setlstat/internal/testkit"
)

func interRequest() AttractionInterRequest {
	return AttractionInterRequest{
		LocalityIDs: []int64{testkit.LocalityID},
		SpeciesA:    []int64{testkit.SpeciesA},
		SpeciesB:    []int64{testkit.SpeciesB},
	}
}

func TestAttractionInter_CohabitingSpecies(t *testing.T) {
	// Both species on the same two spots of every plate: cross distances
	// are {0, 1, 1, 0}, far below the random expectation.
	var a, b []plate.Record
	for i := 1; i <= 12; i++ {
		a = append(a, testkit.RecordWithSpots(int64(i), 1, 2))
		b = append(b, testkit.RecordWithSpots(int64(i), 1, 2))
	}
	p := testPipeline(testkit.Store(a, b))

	rep, err := p.AttractionInter(context.Background(), interRequest())
	require.NoError(t, err)
	assert.Equal(t, "attraction_inter", rep.Analysis)

	byGroup := make(map[string]report.Statistic)
	for _, s := range rep.Statistics[report.KeyWilcoxonRatios] {
		byGroup[s.Group] = s
	}

	// Two positives per species per plate: every pair sits in band 1.
	g1, ok := byGroup["1"]
	require.True(t, ok)
	assert.Equal(t, 12*4, g1.Wilcoxon.NObserved)
	assert.Less(t, g1.Wilcoxon.P, 0.05)
	assert.Less(t, g1.Wilcoxon.MeanObserved, g1.Wilcoxon.MeanExpected)

	pooled, ok := byGroup["1-5"]
	require.True(t, ok)
	assert.Equal(t, g1.Wilcoxon.NObserved, pooled.Wilcoxon.NObserved)

	for _, s := range rep.Statistics[report.KeyWilcoxonRatiosRepeats] {
		if s.Group != "1" {
			continue
		}
		assert.Equal(t, 5, s.Repeats.NSignificant)
		assert.Equal(t, 5, s.Repeats.NAttraction)
	}

	chiByGroup := make(map[string]report.Statistic)
	for _, s := range rep.Statistics[report.KeyChiSquaredRatios] {
		chiByGroup[s.Group] = s
	}
	chi1, ok := chiByGroup["1"]
	require.True(t, ok)
	assert.Equal(t, 14, chi1.ChiSquared.Df, "inter buckets include the zero distance")
	assert.Less(t, chi1.ChiSquared.P, 0.001)

	require.Contains(t, rep.Samples, "1")
	assert.Len(t, rep.Samples["1"].Observed, 12*4)
	assert.Len(t, rep.Samples["1"].Expected, 12*4)
}

func TestAttractionInter_NoSharedPlates(t *testing.T) {
	a := []plate.Record{testkit.RecordWithSpots(1, 1, 2)}
	b := []plate.Record{testkit.RecordWithSpots(2, 3, 4)}
	p := testPipeline(testkit.Store(a, b))

	_, err := p.AttractionInter(context.Background(), interRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoData))
}

func TestAttractionInter_EmptyPartnerIgnored(t *testing.T) {
	// Species B present in the store but without positive spots on the
	// shared plate: the plate cannot pair.
	a := []plate.Record{testkit.RecordWithSpots(1, 1, 2)}
	b := []plate.Record{{PlateID: 1}}
	p := testPipeline(testkit.Store(a, b))

	_, err := p.AttractionInter(context.Background(), interRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoData))
}

func TestAttractionInter_RatioBandsSeparated(t *testing.T) {
	// One plate pair in band 1 (2 vs 2 positives), one in band 3 (12 vs 2).
	a := []plate.Record{
		testkit.RecordWithSpots(1, 1, 2),
		testkit.RecordWithSpots(2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
	}
	b := []plate.Record{
		testkit.RecordWithSpots(1, 6, 7),
		testkit.RecordWithSpots(2, 24, 25),
	}
	p := testPipeline(testkit.Store(a, b))

	rep, err := p.AttractionInter(context.Background(), interRequest())
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, s := range rep.Statistics[report.KeyWilcoxonRatios] {
		counts[s.Group] = s.Wilcoxon.NObserved
	}
	assert.Equal(t, 4, counts["1"], "band 1 holds the 2x2 plate")
	assert.Equal(t, 24, counts["3"], "band 3 holds the 12x2 plate")
	assert.Equal(t, 28, counts["1-5"], "the pooled band holds both")
	_, band2Tested := counts["2"]
	assert.False(t, band2Tested, "empty bands are skipped")
}
