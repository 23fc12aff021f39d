// Package report defines the result object an analysis run produces.
package report

import (
	"encoding/json"
	"time"

	"setlstat/domain/core"
	"setlstat/domain/plate"
	"setlstat/domain/stats"
)

// Statistic keys of the report sections. Each analysis fills the subset
// that applies to it.
const (
	KeyWilcoxonSpots         = "wilcoxon_spots"
	KeyWilcoxonSpotsRepeats  = "wilcoxon_spots_repeats"
	KeyChiSquaredSpots       = "chi_squared_spots"
	KeyWilcoxonAreas         = "wilcoxon_areas"
	KeyWilcoxonAreasRepeats  = "wilcoxon_areas_repeats"
	KeyChiSquaredAreas       = "chi_squared_areas"
	KeyWilcoxonRatios        = "wilcoxon_ratios"
	KeyWilcoxonRatiosRepeats = "wilcoxon_ratios_repeats"
	KeyChiSquaredRatios      = "chi_squared_ratios"
	KeyNormalitySpots        = "normality_spots"
)

// Statistic is one test outcome for one group within a report section.
// Exactly one of the result pointers is set, matching the section key.
type Statistic struct {
	Group      string                  `json:"group"`
	Attributes stats.TestAttributes    `json:"attributes"`
	Wilcoxon   *stats.WilcoxonResult   `json:"wilcoxon,omitempty"`
	ChiSquared *stats.ChiSquaredResult `json:"chi_squared,omitempty"`
	Normality  *stats.NormalityResult  `json:"normality,omitempty"`
	Repeats    *stats.RepeatStats      `json:"repeats,omitempty"`
}

// SampleSet carries the raw observed and expected values one group's
// single-run test compared: pairwise spot distances for the attraction
// analyses, per-plate area totals for spot preference.
type SampleSet struct {
	Observed []float64 `json:"observed"`
	Expected []float64 `json:"expected"`
}

// AreaTotals summarizes one plate area group: positive spots observed over
// all plates against the analytic expectation under uniform settlement.
type AreaTotals struct {
	Observed float64 `json:"observed"`
	Expected float64 `json:"expected"`
}

// Report is the complete outcome of one analysis run.
type Report struct {
	AnalysisID core.AnalysisID        `json:"analysis_id"`
	Analysis   string                 `json:"analysis"`
	Localities []string               `json:"localities,omitempty"`
	Species    []string               `json:"species,omitempty"`
	Areas      plate.AreasDefinition  `json:"areas_definition,omitempty"`
	AreaTotals map[string]AreaTotals  `json:"area_totals,omitempty"`
	Samples    map[string]SampleSet   `json:"samples,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	Statistics map[string][]Statistic `json:"statistics"`
}

// New creates an empty report for a named analysis.
func New(analysis string) *Report {
	return &Report{
		AnalysisID: core.NewAnalysisID(),
		Analysis:   analysis,
		StartedAt:  time.Now().UTC(),
		Statistics: make(map[string][]Statistic),
	}
}

// Add appends statistics under a section key.
func (r *Report) Add(key string, entries ...Statistic) {
	r.Statistics[key] = append(r.Statistics[key], entries...)
}

// AddSamples records the raw observed and expected value lists of a group.
func (r *Report) AddSamples(group string, observed, expected []float64) {
	if r.Samples == nil {
		r.Samples = make(map[string]SampleSet)
	}
	r.Samples[group] = SampleSet{Observed: observed, Expected: expected}
}

// Finish stamps the completion time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// JSON renders the report in its persistence format.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
