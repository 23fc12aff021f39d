package analysis

import (
	"context"
	"math"

	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/domain/report"
	"setlstat/domain/stats"
	"setlstat/internal/errors"
	istats "setlstat/internal/stats"
	"setlstat/ports"
)

// AttractionInterRequest selects the two species of an inter-specific
// attraction analysis. Both selections share the locality filter.
type AttractionInterRequest struct {
	LocalityIDs []int64
	SpeciesA    []int64
	SpeciesB    []int64
	Progress    ProgressFunc
}

// ratioGroups are the bands the inter-specific analysis iterates: each of
// the five positive-spot ratio bands plus the pooled band.
func ratioGroups() []stats.RatioGroup {
	return []stats.RatioGroup{
		{Band: 1}, {Band: 2}, {Band: 3}, {Band: 4}, {Band: 5},
		{Band: 5, All: true},
	}
}

// AttractionInter tests whether two species settle closer to (or farther
// from) each other than chance predicts. Plates carrying both species are
// paired, grouped into positive-spot ratio bands, and per band the
// observed cross-species spot distances are compared against distances
// from randomly generated plate pairs (Wilcoxon, single run plus repeats)
// and against the analytic null distribution including the shared-spot
// zero distance (chi-squared).
func (p *Pipeline) AttractionInter(ctx context.Context, req AttractionInterRequest) (*report.Report, error) {
	recordsA, err := p.records.SpotRecords(ctx, ports.Selection{LocalityIDs: req.LocalityIDs, SpeciesIDs: req.SpeciesA})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load species A records")
	}
	recordsB, err := p.records.SpotRecords(ctx, ports.Selection{LocalityIDs: req.LocalityIDs, SpeciesIDs: req.SpeciesB})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load species B records")
	}

	pairs := MatchPlates(plate.CombineByPlate(recordsA), plate.CombineByPlate(recordsB))
	if len(pairs) == 0 {
		return nil, errors.Wrap(core.ErrNoData, "no plate carries both species")
	}
	p.logger.Info("attraction inter: %d plates carry both species", len(pairs))

	rep := report.New("attraction_inter")
	rep.Localities, rep.Species = p.selectionLabels(ctx, req.LocalityIDs, append(append([]int64{}, req.SpeciesA...), req.SpeciesB...))
	groups := ratioGroups()
	groupNames := make([]string, len(groups))
	observed := make(map[string][]float64, len(groups))
	plateCounts := make(map[string]int, len(groups))
	for i, g := range groups {
		groupNames[i] = g.String()
		distances, nPlates, err := InterDistances(pairs, g)
		if err != nil {
			return nil, err
		}
		observed[g.String()] = distances
		plateCounts[g.String()] = nPlates
	}

	rng, err := p.stream(ctx, string(rep.AnalysisID), "ratios_wilcoxon", 0)
	if err != nil {
		return nil, err
	}
	probabilities := probabilityVector(stats.InterDistances, stats.InterProbabilities)
	nullMean := expectedDistanceMean(stats.InterProbabilities)
	for _, g := range groups {
		name := g.String()
		obs := observed[name]
		if len(obs) < 2 {
			p.logger.Debug("attraction inter: ratio group %s has %d distances, skipping", name, len(obs))
			continue
		}

		exp, err := ExpectedInterDistances(rng, pairs, g)
		if err != nil {
			return nil, err
		}
		rep.AddSamples(name, obs, exp)
		w, pValue := istats.WilcoxonRankSum(obs, exp)
		if math.IsNaN(pValue) {
			p.logger.Debug("attraction inter: ratio group %s has constant distances, no test result", name)
			continue
		}
		attrs := stats.TestAttributes{
			NPlates: plateCounts[name],
			N:       len(obs),
			Alpha:   p.cfg.AlphaLevel,
			Groups:  name,
		}
		rep.Add(report.KeyWilcoxonRatios, report.Statistic{
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

		freq, err := stats.DistanceFrequencies(obs, stats.InterDistances)
		if err != nil {
			return nil, err
		}
		chi2, chiP, df, expectedFreq, err := istats.ChiSquaredGoodnessOfFit(frequencyVector(stats.InterDistances, freq), probabilities)
		if err != nil {
			return nil, err
		}
		if lowExpectedFrequency(expectedFreq) {
			p.logger.Debug("attraction inter: ratio group %s has a chi-squared expected frequency below 5", name)
		}
		rep.Add(report.KeyChiSquaredRatios, report.Statistic{
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

	groupByName := make(map[string]stats.RatioGroup, len(groups))
	for _, g := range groups {
		groupByName[g.String()] = g
	}
	sampler := func(ctx context.Context, iteration int, group string) ([]float64, error) {
		rng, err := p.stream(ctx, string(rep.AnalysisID), "ratios_repeats", iteration)
		if err != nil {
			return nil, err
		}
		return ExpectedInterDistances(rng, pairs, groupByName[group])
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
		rep.Add(report.KeyWilcoxonRatiosRepeats, report.Statistic{
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
