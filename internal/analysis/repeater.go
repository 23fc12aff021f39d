package analysis

import (
	"context"
	"math"

	"setlstat/domain/core"
	"setlstat/domain/stats"
	"setlstat/internal/errors"
	istats "setlstat/internal/stats"
)

// TallyMode decides how a significant repeat run is classified.
type TallyMode int

const (
	// TallyDistances counts attraction when the observed distances are
	// smaller than expected and repulsion when they are larger.
	TallyDistances TallyMode = iota
	// TallyAreas counts preference when the observed area totals exceed
	// expectation and rejection when they fall below it.
	TallyAreas
)

// ExpectedSampler regenerates the expected sample of a group for one
// repeat iteration.
type ExpectedSampler func(ctx context.Context, iteration int, group string) ([]float64, error)

// ProgressFunc reports completed repeat iterations.
type ProgressFunc func(done, total int)

// RepeatConfig parameterizes a repeated Wilcoxon run.
type RepeatConfig struct {
	Repeats int
	Alpha   float64
	Mode    TallyMode
}

// RepeatWilcoxon runs the Wilcoxon test of every group's observed sample
// against freshly generated expected samples, cfg.Repeats times, and
// tallies how often each group came out significant and in which
// direction.
//
// Groups with fewer than two observed values are skipped: their tally
// stays zero for every counter. A NaN p-value (constant pooled sample)
// never counts as significant. An expected sample whose size differs from
// the observed one indicates a generator defect and aborts the run.
// Cancellation between iterations abandons the whole run; partial tallies
// are never returned.
func RepeatWilcoxon(ctx context.Context, cfg RepeatConfig, groups []string, observed map[string][]float64, expected ExpectedSampler, progress ProgressFunc) (map[string]stats.RepeatStats, error) {
	tallies := make(map[string]stats.RepeatStats, len(groups))
	for _, g := range groups {
		tallies[g] = stats.RepeatStats{}
	}

	for i := 0; i < cfg.Repeats; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(core.ErrAnalysisCanceled, "analysis canceled during repeated testing")
		}

		for _, g := range groups {
			obs := observed[g]
			if len(obs) < 2 {
				continue
			}

			exp, err := expected(ctx, i, g)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to generate expected data for group %s", g)
			}
			if len(exp) != len(obs) {
				return nil, errors.Wrapf(core.ErrCountMismatch,
					"group %s: %d observed values but %d expected values", g, len(obs), len(exp))
			}

			_, p := istats.WilcoxonRankSum(obs, exp)
			if math.IsNaN(p) || p >= cfg.Alpha {
				continue
			}

			tally := tallies[g]
			tally.NSignificant++
			meanObs := istats.Mean(obs)
			meanExp := istats.Mean(exp)
			switch cfg.Mode {
			case TallyDistances:
				if meanObs < meanExp {
					tally.NAttraction++
				} else {
					tally.NRepulsion++
				}
			case TallyAreas:
				if meanObs > meanExp {
					tally.NPreference++
				} else {
					tally.NRejection++
				}
			}
			tallies[g] = tally
		}

		if progress != nil {
			progress(i+1, cfg.Repeats)
		}
	}
	return tallies, nil
}
