package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlstat/domain/core"
)

func constantSampler(expected map[string][]float64) ExpectedSampler {
	return func(ctx context.Context, iteration int, group string) ([]float64, error) {
		return expected[group], nil
	}
}

func TestRepeatWilcoxon_TalliesDirections(t *testing.T) {
	// "near" sits far below its expectation, "far" far above it.
	observed := map[string][]float64{
		"near": {1, 1, 1.41, 1, 2, 1.41, 1, 1, 2, 1.41},
		"far":  {5, 5.66, 5, 4.47, 5, 5.66, 4.47, 5, 5, 5.66},
	}
	expected := map[string][]float64{
		"near": {3, 3.16, 2.83, 3, 3.61, 3.16, 2.83, 3, 3.61, 3},
		"far":  {3, 3.16, 2.83, 3, 3.61, 3.16, 2.83, 3, 3.61, 3},
	}

	cfg := RepeatConfig{Repeats: 5, Alpha: 0.05, Mode: TallyDistances}
	tallies, err := RepeatWilcoxon(context.Background(), cfg, []string{"near", "far"}, observed, constantSampler(expected), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, tallies["near"].NSignificant)
	assert.Equal(t, 5, tallies["near"].NAttraction)
	assert.Equal(t, 0, tallies["near"].NRepulsion)

	assert.Equal(t, 5, tallies["far"].NSignificant)
	assert.Equal(t, 5, tallies["far"].NRepulsion)
	assert.Equal(t, 0, tallies["far"].NAttraction)
}

func TestRepeatWilcoxon_AreaMode(t *testing.T) {
	observed := map[string][]float64{
		"A": {4, 4, 3, 4, 4, 3, 4, 4, 3, 4},
	}
	expected := map[string][]float64{
		"A": {0, 1, 0, 1, 0, 0, 1, 0, 1, 0},
	}

	cfg := RepeatConfig{Repeats: 3, Alpha: 0.05, Mode: TallyAreas}
	tallies, err := RepeatWilcoxon(context.Background(), cfg, []string{"A"}, observed, constantSampler(expected), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tallies["A"].NSignificant)
	assert.Equal(t, 3, tallies["A"].NPreference)
	assert.Equal(t, 0, tallies["A"].NRejection)
}

func TestRepeatWilcoxon_SkipsTinyGroups(t *testing.T) {
	observed := map[string][]float64{
		"tiny": {1.41},
		"ok":   {1, 1, 1, 1.41, 1, 1, 1.41, 1},
	}
	expected := map[string][]float64{
		"tiny": {5},
		"ok":   {4, 5, 4.47, 5, 4, 5.66, 4.47, 5},
	}

	cfg := RepeatConfig{Repeats: 20, Alpha: 0.05, Mode: TallyDistances}
	tallies, err := RepeatWilcoxon(context.Background(), cfg, []string{"tiny", "ok"}, observed, constantSampler(expected), nil)
	require.NoError(t, err)

	// A one-observation group is skipped every iteration but still reported.
	assert.Equal(t, 0, tallies["tiny"].NSignificant)
	assert.Equal(t, 0, tallies["tiny"].NAttraction)
	assert.Equal(t, 20, tallies["ok"].NSignificant)
}

func TestRepeatWilcoxon_NaNNeverSignificant(t *testing.T) {
	observed := map[string][]float64{"flat": {2, 2, 2, 2}}
	expected := map[string][]float64{"flat": {2, 2, 2, 2}}

	cfg := RepeatConfig{Repeats: 4, Alpha: 0.05, Mode: TallyDistances}
	tallies, err := RepeatWilcoxon(context.Background(), cfg, []string{"flat"}, observed, constantSampler(expected), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tallies["flat"].NSignificant)
}

func TestRepeatWilcoxon_CountMismatchIsFatal(t *testing.T) {
	observed := map[string][]float64{"g": {1, 2, 3}}
	sampler := func(ctx context.Context, iteration int, group string) ([]float64, error) {
		return []float64{1, 2}, nil
	}

	cfg := RepeatConfig{Repeats: 2, Alpha: 0.05, Mode: TallyDistances}
	_, err := RepeatWilcoxon(context.Background(), cfg, []string{"g"}, observed, sampler, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrCountMismatch))
}

func TestRepeatWilcoxon_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	observed := map[string][]float64{"g": {1, 2, 3, 4}}
	iterations := 0
	sampler := func(ctx context.Context, iteration int, group string) ([]float64, error) {
		iterations++
		return []float64{5, 6, 7, 8}, nil
	}
	progress := func(done, total int) {
		if done == 2 {
			cancel()
		}
	}

	cfg := RepeatConfig{Repeats: 50, Alpha: 0.05, Mode: TallyDistances}
	tallies, err := RepeatWilcoxon(ctx, cfg, []string{"g"}, observed, sampler, progress)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAnalysisCanceled))
	assert.Nil(t, tallies, "partial tallies must be discarded")
	assert.Less(t, iterations, 50)
}

func TestRepeatWilcoxon_ProgressReported(t *testing.T) {
	observed := map[string][]float64{"g": {1, 2, 3, 4}}
	var calls []int
	progress := func(done, total int) {
		require.Equal(t, 7, total)
		calls = append(calls, done)
	}

	cfg := RepeatConfig{Repeats: 7, Alpha: 0.05, Mode: TallyDistances}
	_, err := RepeatWilcoxon(context.Background(), cfg, []string{"g"}, observed, constantSampler(map[string][]float64{"g": {1, 2, 3, 4}}), progress)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, calls)
}
