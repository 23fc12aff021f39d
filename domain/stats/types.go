package stats

import "strconv"

// SpotGroup selects plates by their positive-spot count for grouped
// testing. N is the exact count; when AtMost is set the group instead
// covers every plate with 2..N positive spots.
type SpotGroup struct {
	N      int
	AtMost bool
}

// DefaultSpotGroups are the groups the attraction analyses iterate:
// every exact count 2..24 plus the pooled 2..24 group. Count 25 is
// excluded because a fully covered plate carries no spatial signal.
func DefaultSpotGroups() []SpotGroup {
	groups := make([]SpotGroup, 0, 24)
	for n := 2; n <= 24; n++ {
		groups = append(groups, SpotGroup{N: n})
	}
	groups = append(groups, SpotGroup{N: 24, AtMost: true})
	return groups
}

// Matches reports whether a plate with the given positive-spot count
// belongs to this group.
func (g SpotGroup) Matches(positives int) bool {
	if g.AtMost {
		return positives >= 2 && positives <= g.N
	}
	return positives == g.N
}

// String renders "7" for an exact group and "2-24" for a pooled one.
func (g SpotGroup) String() string {
	if g.AtMost {
		return "2-" + strconv.Itoa(g.N)
	}
	return strconv.Itoa(g.N)
}

// RatioGroup selects plate pairs in the inter-specific analysis by the
// ratio of the two plates' positive-spot counts. Band is the 1-based
// ratio band index; when All is set the group pools every band.
type RatioGroup struct {
	Band int
	All  bool
}

// String renders "3" for a single band and "1-5" for the pooled group.
func (g RatioGroup) String() string {
	if g.All {
		return "1-" + strconv.Itoa(g.Band)
	}
	return strconv.Itoa(g.Band)
}

// TestAttributes records the inputs a single test ran with, so a report
// line can be reproduced.
type TestAttributes struct {
	NPlates   int     `json:"n_plates"`
	NPositive int     `json:"n_positive,omitempty"`
	N         int     `json:"n"`
	Alpha     float64 `json:"alpha"`
	Repeats   int     `json:"repeats,omitempty"`
	Groups    string  `json:"groups,omitempty"`
}

// WilcoxonResult is the outcome of one Wilcoxon rank-sum test between an
// observed sample and its randomly generated expectation.
type WilcoxonResult struct {
	NObserved    int     `json:"n"`
	MeanObserved float64 `json:"mean_observed"`
	MeanExpected float64 `json:"mean_expected"`
	W            float64 `json:"w"`
	P            float64 `json:"p_value"`
}

// ChiSquaredResult is the outcome of a chi-squared goodness-of-fit test of
// observed frequencies against the analytic null probabilities.
type ChiSquaredResult struct {
	ChiSquared   float64 `json:"chi_squared"`
	P            float64 `json:"p_value"`
	Df           int     `json:"df"`
	MeanObserved float64 `json:"mean_observed"`
	MeanExpected float64 `json:"mean_expected"`
}

// NormalityResult is the outcome of a Shapiro-Wilk normality test.
type NormalityResult struct {
	N      int     `json:"n"`
	W      float64 `json:"w"`
	P      float64 `json:"p_value"`
	Normal bool    `json:"normal"`
}

// RepeatStats tallies how a test group behaved over the repeated runs of
// an analysis. Attraction/Repulsion apply to distance-based analyses,
// Preference/Rejection to area-based ones; the unused pair stays zero.
type RepeatStats struct {
	NSignificant int `json:"n_significant"`
	NAttraction  int `json:"n_attraction,omitempty"`
	NRepulsion   int `json:"n_repulsion,omitempty"`
	NPreference  int `json:"n_preference,omitempty"`
	NRejection   int `json:"n_rejection,omitempty"`
}
