package analysis

import (
	"context"
	"errors"
	"math"

	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/domain/report"
	"setlstat/domain/stats"
	apperrors "setlstat/internal/errors"
	istats "setlstat/internal/stats"
	"setlstat/ports"
)

// AttractionIntraRequest selects the records of an intra-specific
// attraction analysis.
type AttractionIntraRequest struct {
	Selection ports.Selection
	Progress  ProgressFunc
}

// AttractionIntra tests whether individuals of one species settle closer
// to (or farther from) each other than chance predicts. Plates are grouped
// by positive-spot count; per group the observed pairwise spot distances
// are compared against distances from randomly generated plates (Wilcoxon,
// single run plus repeats) and against the analytic null distance
// distribution (chi-squared). A normality check on the pooled distances
// documents why the nonparametric test is used.
func (p *Pipeline) AttractionIntra(ctx context.Context, req AttractionIntraRequest) (*report.Report, error) {
	records, err := p.records.SpotRecords(ctx, req.Selection)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load spot records")
	}
	if len(records) == 0 {
		return nil, apperrors.Wrap(core.ErrNoData, "selection matched no plate records")
	}
	combined := plate.CombineByPlate(records)
	p.logger.Info("attraction intra: %d records on %d plates", len(records), len(combined))

	rep := report.New("attraction_intra")
	rep.Localities, rep.Species = p.selectionLabels(ctx, req.Selection.LocalityIDs, req.Selection.SpeciesIDs)
	groups := stats.DefaultSpotGroups()
	groupNames := spotGroupNames(groups)

	observed := make(map[string][]float64, len(groups))
	plateCounts := make(map[string]int, len(groups))
	for _, g := range groups {
		distances, nPlates, err := IntraDistances(combined, g)
		if err != nil {
			return nil, err
		}
		observed[g.String()] = distances
		plateCounts[g.String()] = nPlates
	}

	// Single Wilcoxon and chi-squared run per spot-count group.
	rng, err := p.stream(ctx, string(rep.AnalysisID), "spots_wilcoxon", 0)
	if err != nil {
		return nil, err
	}
	probabilities := probabilityVector(stats.IntraDistances, stats.IntraProbabilities)
	nullMean := expectedDistanceMean(stats.IntraProbabilities)
	for _, g := range groups {
		name := g.String()
		obs := observed[name]
		if len(obs) < 2 {
			p.logger.Debug("attraction intra: group %s has %d distances, skipping", name, len(obs))
			continue
		}

		exp, err := ExpectedIntraDistances(rng, combined, g)
		if err != nil {
			return nil, err
		}
		rep.AddSamples(name, obs, exp)
		w, pValue := istats.WilcoxonRankSum(obs, exp)
		if math.IsNaN(pValue) {
			p.logger.Debug("attraction intra: group %s has constant distances, no test result", name)
			continue
		}
		attrs := stats.TestAttributes{
			NPlates: plateCounts[name],
			N:       len(obs),
			Alpha:   p.cfg.AlphaLevel,
			Groups:  name,
		}
		rep.Add(report.KeyWilcoxonSpots, report.Statistic{
			Group:      name,
			Attributes: attrs,
			Wilcoxon: &stats.WilcoxonResult{
				NObserved:    len(obs),
				MeanObserved: istats.Mean(obs),
				MeanExpected: istats.Mean(exp),
				W:            w,
				P:            pValue,
			},
		})

		freq, err := stats.DistanceFrequencies(obs, stats.IntraDistances)
		if err != nil {
			return nil, err
		}
		chi2, chiP, df, expectedFreq, err := istats.ChiSquaredGoodnessOfFit(frequencyVector(stats.IntraDistances, freq), probabilities)
		if err != nil {
			return nil, err
		}
		if lowExpectedFrequency(expectedFreq) {
			p.logger.Debug("attraction intra: group %s has a chi-squared expected frequency below 5", name)
		}
		rep.Add(report.KeyChiSquaredSpots, report.Statistic{
			Group:      name,
			Attributes: attrs,
			ChiSquared: &stats.ChiSquaredResult{
				ChiSquared:   chi2,
				P:            chiP,
				Df:           df,
				MeanObserved: istats.Mean(obs),
				MeanExpected: nullMean,
			},
		})
	}

	// Normality of the pooled distances. Insufficient or constant data
	// only drops this section, it does not fail the analysis.
	pooled := observed[stats.SpotGroup{N: 24, AtMost: true}.String()]
	nrng, err := p.stream(ctx, string(rep.AnalysisID), "normality", 0)
	if err != nil {
		return nil, err
	}
	if w, pValue, err := istats.ShapiroWilk(nrng, pooled); err == nil {
		rep.Add(report.KeyNormalitySpots, report.Statistic{
			Group: "2-24",
			Attributes: stats.TestAttributes{
				N:     len(pooled),
				Alpha: p.cfg.NormalityAlpha,
			},
			Normality: &stats.NormalityResult{
				N:      len(pooled),
				W:      w,
				P:      pValue,
				Normal: pValue >= p.cfg.NormalityAlpha,
			},
		})
	} else if !errors.Is(err, core.ErrInsufficientData) {
		p.logger.Warn("attraction intra: normality test skipped: %v", err)
	}

	// Repeated Wilcoxon runs against freshly drawn random plates.
	groupByName := make(map[string]stats.SpotGroup, len(groups))
	for _, g := range groups {
		groupByName[g.String()] = g
	}
	sampler := func(ctx context.Context, iteration int, group string) ([]float64, error) {
		rng, err := p.stream(ctx, string(rep.AnalysisID), "spots_repeats", iteration)
		if err != nil {
			return nil, err
		}
		return ExpectedIntraDistances(rng, combined, groupByName[group])
	}
	tallies, err := RepeatWilcoxon(ctx, RepeatConfig{
		Repeats: p.cfg.TestRepeats,
		Alpha:   p.cfg.AlphaLevel,
		Mode:    TallyDistances,
	}, groupNames, observed, sampler, req.Progress)
	if err != nil {
		return nil, err
	}
	for _, name := range groupNames {
		tally := tallies[name]
		rep.Add(report.KeyWilcoxonSpotsRepeats, report.Statistic{
			Group: name,
			Attributes: stats.TestAttributes{
				NPlates: plateCounts[name],
				N:       len(observed[name]),
				Alpha:   p.cfg.AlphaLevel,
				Repeats: p.cfg.TestRepeats,
				Groups:  name,
			},
			Repeats: &tally,
		})
	}

	rep.Finish()
	return rep, nil
}
