package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlstat/adapters/rng"
	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/domain/report"
	"setlstat/internal/config"
	"setlstat/internal/testkit"
	"setlstat/ports"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		AlphaLevel:     0.05,
		TestRepeats:    5,
		NormalityAlpha: 0.05,
		RandomSeed:     42,
		MaxParallel:    2,
	}
}

func testPipeline(store ports.RecordRepository) *Pipeline {
	return NewPipeline(store, rng.NewSeededAdapter(42), nil, testConfig())
}

func testSelection() ports.Selection {
	return ports.Selection{
		LocalityIDs: []int64{testkit.LocalityID},
		SpeciesIDs:  []int64{testkit.SpeciesA},
	}
}

func TestSpotPreference_CornerLovingSpecies(t *testing.T) {
	var records []plate.Record
	for i := 1; i <= 20; i++ {
		records = append(records, testkit.CornerRecord(int64(i)))
	}
	p := testPipeline(testkit.Store(records, nil))

	rep, err := p.SpotPreference(context.Background(), SpotPreferenceRequest{Selection: testSelection()})
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, "spot_preference", rep.Analysis)

	wilcoxon := rep.Statistics[report.KeyWilcoxonAreas]
	require.NotEmpty(t, wilcoxon)
	byGroup := make(map[string]report.Statistic)
	for _, s := range wilcoxon {
		byGroup[s.Group] = s
	}

	// Every corner spot occupied, nothing else: group A must come out as a
	// strong preference.
	a, ok := byGroup["A"]
	require.True(t, ok)
	assert.Equal(t, 4.0, a.Wilcoxon.MeanObserved)
	assert.Less(t, a.Wilcoxon.P, 0.05)
	assert.Greater(t, a.Wilcoxon.MeanObserved, a.Wilcoxon.MeanExpected)

	repeats := rep.Statistics[report.KeyWilcoxonAreasRepeats]
	require.Len(t, repeats, len(plate.CanonicalAreaGroups))
	for _, s := range repeats {
		if s.Group != "A" {
			continue
		}
		assert.Equal(t, 5, s.Repeats.NSignificant)
		assert.Equal(t, 5, s.Repeats.NPreference)
		assert.Equal(t, 0, s.Repeats.NRejection)
	}

	chi := rep.Statistics[report.KeyChiSquaredAreas]
	require.Len(t, chi, 1)
	assert.Less(t, chi[0].ChiSquared.P, 0.001)
	assert.Equal(t, 3, chi[0].ChiSquared.Df)

	// The report echoes the area definition and carries the raw data the
	// tests ran on: per-plate samples and pooled totals with the analytic
	// expectation (4 positives put 4*4/25 corner spots per plate on average).
	assert.Len(t, rep.Areas, 4)
	require.Contains(t, rep.AreaTotals, "A")
	assert.Equal(t, 80.0, rep.AreaTotals["A"].Observed)
	assert.InDelta(t, 20*4.0*4/25, rep.AreaTotals["A"].Expected, 1e-9)
	require.Contains(t, rep.Samples, "A")
	assert.Len(t, rep.Samples["A"].Observed, 20)
	assert.Len(t, rep.Samples["A"].Expected, 20)
}

func TestSpotPreference_NoData(t *testing.T) {
	p := testPipeline(testkit.Store(nil, nil))
	_, err := p.SpotPreference(context.Background(), SpotPreferenceRequest{Selection: testSelection()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoData))
}

func TestSpotPreference_InvalidAreas(t *testing.T) {
	p := testPipeline(testkit.Store([]plate.Record{testkit.CornerRecord(1)}, nil))
	req := SpotPreferenceRequest{
		Selection: testSelection(),
		Areas: plate.AreasDefinition{
			"area1": {plate.AreaCorners, plate.AreaEdges, plate.AreaInner, plate.AreaCenter},
		},
	}
	_, err := p.SpotPreference(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidAreasDefinition))
}

func TestSpotPreference_CancellationDiscardsRun(t *testing.T) {
	var records []plate.Record
	for i := 1; i <= 10; i++ {
		records = append(records, testkit.CornerRecord(int64(i)))
	}
	p := testPipeline(testkit.Store(records, nil))

	ctx, cancel := context.WithCancel(context.Background())
	req := SpotPreferenceRequest{
		Selection: testSelection(),
		Progress: func(done, total int) {
			if done == 1 {
				cancel()
			}
		},
	}
	rep, err := p.SpotPreference(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAnalysisCanceled))
	assert.Nil(t, rep)
}
