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

// SpotPreferenceRequest selects the records of a spot preference analysis.
type SpotPreferenceRequest struct {
	Selection ports.Selection
	// Areas is the user-defined grouping for the chi-squared test. Nil
	// means each canonical area is its own group.
	Areas    plate.AreasDefinition
	Progress ProgressFunc
}

// DefaultAreasDefinition maps each canonical plate area to its own group.
func DefaultAreasDefinition() plate.AreasDefinition {
	return plate.AreasDefinition{
		"area1": {plate.AreaCorners},
		"area2": {plate.AreaEdges},
		"area3": {plate.AreaInner},
		"area4": {plate.AreaCenter},
	}
}

// SpotPreference tests whether a species settles on some plate areas more
// than chance predicts. Per area group it compares the observed per-plate
// positive-spot totals against totals from randomly generated plates
// (Wilcoxon, single run plus repeats) and tests the pooled area counts
// against the areas' share of the plate (chi-squared).
func (p *Pipeline) SpotPreference(ctx context.Context, req SpotPreferenceRequest) (*report.Report, error) {
	def := req.Areas
	if def == nil {
		def = DefaultAreasDefinition()
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	records, err := p.records.SpotRecords(ctx, req.Selection)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load spot records")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(core.ErrNoData, "selection matched no plate records")
	}
	combined := plate.CombineByPlate(records)
	p.logger.Info("spot preference: %d records on %d plates", len(records), len(combined))

	rep := report.New("spot_preference")
	rep.Localities, rep.Species = p.selectionLabels(ctx, req.Selection.LocalityIDs, req.Selection.SpeciesIDs)
	rep.Areas = def
	groups := plate.CanonicalAreaGroups
	groupNames := make([]string, len(groups))
	observed := make(map[string][]float64, len(groups))
	rep.AreaTotals = make(map[string]report.AreaTotals, len(groups))
	for i, g := range groups {
		name := g.String()
		groupNames[i] = name
		observed[name] = ObservedAreaTotals(combined, g)
		rep.AreaTotals[name] = report.AreaTotals{
			Observed: sum(observed[name]),
			Expected: sum(AnalyticAreaTotals(combined, g)),
		}
	}

	// Single Wilcoxon run per area group against one random expectation.
	rng, err := p.stream(ctx, string(rep.AnalysisID), "areas_wilcoxon", 0)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		obs := observed[g.String()]
		if len(obs) < 2 {
			p.logger.Debug("spot preference: group %s has %d plates, skipping", g, len(obs))
			continue
		}
		exp, err := ExpectedAreaTotals(rng, combined, g)
		if err != nil {
			return nil, err
		}
		rep.AddSamples(g.String(), obs, exp)
		w, pValue := istats.WilcoxonRankSum(obs, exp)
		if math.IsNaN(pValue) {
			p.logger.Debug("spot preference: group %s has constant totals, no test result", g)
			continue
		}
		rep.Add(report.KeyWilcoxonAreas, report.Statistic{
			Group: g.String(),
			Attributes: stats.TestAttributes{
				NPlates: len(combined),
				N:       len(obs),
				Alpha:   p.cfg.AlphaLevel,
				Groups:  g.String(),
			},
			Wilcoxon: &stats.WilcoxonResult{
				NObserved:    len(obs),
				MeanObserved: istats.Mean(obs),
				MeanExpected: istats.Mean(exp),
				W:            w,
				P:            pValue,
			},
		})
	}

	// Repeated runs, each against freshly drawn random plates.
	groupByName := make(map[string]plate.AreaGroup, len(groups))
	for _, g := range groups {
		groupByName[g.String()] = g
	}
	sampler := func(ctx context.Context, iteration int, group string) ([]float64, error) {
		rng, err := p.stream(ctx, string(rep.AnalysisID), "areas_repeats", iteration)
		if err != nil {
			return nil, err
		}
		return ExpectedAreaTotals(rng, combined, groupByName[group])
	}
	tallies, err := RepeatWilcoxon(ctx, RepeatConfig{
		Repeats: p.cfg.TestRepeats,
		Alpha:   p.cfg.AlphaLevel,
		Mode:    TallyAreas,
	}, groupNames, observed, sampler, req.Progress)
	if err != nil {
		return nil, err
	}
	for _, name := range groupNames {
		tally := tallies[name]
		rep.Add(report.KeyWilcoxonAreasRepeats, report.Statistic{
			Group: name,
			Attributes: stats.TestAttributes{
				NPlates: len(combined),
				N:       len(observed[name]),
				Alpha:   p.cfg.AlphaLevel,
				Repeats: p.cfg.TestRepeats,
				Groups:  name,
			},
			Repeats: &tally,
		})
	}

	// Chi-squared of pooled area counts against the areas' plate share.
	counts, probabilities, names, err := AreaGroupCounts(combined, def)
	if err != nil {
		return nil, err
	}
	chi2, pValue, df, expectedFreq, err := istats.ChiSquaredGoodnessOfFit(counts, probabilities)
	if err != nil {
		return nil, err
	}
	if lowExpectedFrequency(expectedFreq) {
		p.logger.Warn("spot preference: a chi-squared expected frequency is below 5, interpret with care")
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	rep.Add(report.KeyChiSquaredAreas, report.Statistic{
		Group: groupsKey(names),
		Attributes: stats.TestAttributes{
			NPlates:   len(combined),
			NPositive: total,
			N:         len(counts),
			Alpha:     p.cfg.AlphaLevel,
			Groups:    groupsKey(names),
		},
		ChiSquared: &stats.ChiSquaredResult{
			ChiSquared: chi2,
			P:          pValue,
			Df:         df,
		},
	})

	rep.Finish()
	return rep, nil
}

func groupsKey(names []string) string {
	key := ""
	for i, name := range names {
		if i > 0 {
			key += ","
		}
		key += name
	}
	return key
}
