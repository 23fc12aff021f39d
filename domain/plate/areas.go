package plate

import (
	"fmt"
	"sort"

	"setlstat/domain/core"
)

// Area is one of the four canonical plate regions.
type Area string

const (
	AreaCorners Area = "A" // the 4 corner spots
	AreaEdges   Area = "B" // the 12 edge spots between corners
	AreaInner   Area = "C" // the 8 inner-ring spots
	AreaCenter  Area = "D" // the center spot
)

// DefaultAreas lists the canonical areas in their conventional order.
var DefaultAreas = []Area{AreaCorners, AreaEdges, AreaInner, AreaCenter}

// areaSpots is the fixed, total and disjoint partition of the 25 spots
// over the four canonical areas.
var areaSpots = map[Area][]int{
	AreaCorners: {1, 5, 21, 25},
	AreaEdges:   {2, 3, 4, 6, 10, 11, 15, 16, 20, 22, 23, 24},
	AreaInner:   {7, 8, 9, 12, 14, 17, 18, 19},
	AreaCenter:  {13},
}

// spotToArea is the inverse lookup, built once from areaSpots.
var spotToArea = func() [SpotCount + 1]Area {
	var m [SpotCount + 1]Area
	for area, spots := range areaSpots {
		for _, s := range spots {
			m[s] = area
		}
	}
	return m
}()

// DefaultAreaOf returns the canonical area a spot belongs to.
func DefaultAreaOf(spotNum int) (Area, error) {
	if spotNum < 1 || spotNum > SpotCount {
		return "", core.NewOutOfRangeError("spot number", spotNum, 1, SpotCount)
	}
	return spotToArea[spotNum], nil
}

// AreaSpots returns the spot numbers belonging to a canonical area.
func AreaSpots(area Area) []int {
	spots := areaSpots[area]
	out := make([]int, len(spots))
	copy(out, spots)
	return out
}

// AreaSlotCount returns how many of the 25 spots belong to a canonical area.
func AreaSlotCount(area Area) int {
	return len(areaSpots[area])
}

// AreaGroup is a combination of canonical areas tested together,
// e.g. {A} or {A,B,C}.
type AreaGroup []Area

// String renders a group the way reports key it: "A", "A+B", "B+C+D".
func (g AreaGroup) String() string {
	s := ""
	for i, area := range g {
		if i > 0 {
			s += "+"
		}
		s += string(area)
	}
	return s
}

// CanonicalAreaGroups are the eight area combinations the preference
// analysis tests. A strong corner preference shows up as a low p-value for
// group A (preference) and low p-values for C, D, C+D and B+C+D (rejection).
var CanonicalAreaGroups = []AreaGroup{
	{AreaCorners},
	{AreaEdges},
	{AreaInner},
	{AreaCenter},
	{AreaCorners, AreaEdges},
	{AreaInner, AreaCenter},
	{AreaCorners, AreaEdges, AreaInner},
	{AreaEdges, AreaInner, AreaCenter},
}

// AreasDefinition assigns each canonical area to one of up to four
// user-defined groups ("area1".."area4"). Groups may merge canonical areas;
// unused group names are simply absent.
type AreasDefinition map[string][]Area

// Validate checks a plate areas definition before any analysis work starts.
// Every canonical area must be assigned to exactly one group, and merging
// all four canonical areas into a single group is rejected: a one-group
// plate has no variance to test.
func (d AreasDefinition) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: no area groups defined", core.ErrInvalidAreasDefinition)
	}

	assigned := make(map[Area]string)
	for name, areas := range d {
		if len(areas) == 0 {
			return fmt.Errorf("%w: group %q is empty", core.ErrInvalidAreasDefinition, name)
		}
		if len(areas) == len(DefaultAreas) {
			return fmt.Errorf("%w: group %q merges all four plate areas", core.ErrInvalidAreasDefinition, name)
		}
		for _, area := range areas {
			if _, known := areaSpots[area]; !known {
				return fmt.Errorf("%w: unknown plate area %q", core.ErrInvalidAreasDefinition, area)
			}
			if prev, dup := assigned[area]; dup {
				return fmt.Errorf("%w: area %q assigned to both %q and %q", core.ErrInvalidAreasDefinition, area, prev, name)
			}
			assigned[area] = name
		}
	}
	for _, area := range DefaultAreas {
		if _, ok := assigned[area]; !ok {
			return fmt.Errorf("%w: area %q not assigned to any group", core.ErrInvalidAreasDefinition, area)
		}
	}
	return nil
}

// GroupNames returns the defined group names in sorted order.
func (d AreasDefinition) GroupNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlotCount returns how many of the 25 spots fall in a user-defined group.
func (d AreasDefinition) SlotCount(name string) int {
	n := 0
	for _, area := range d[name] {
		n += AreaSlotCount(area)
	}
	return n
}

// AreaTotals counts the positive spots of a record per canonical area.
type AreaTotals map[Area]int

// RecordAreaTotals classifies every positive spot of a record into its
// canonical area and sums the counts.
func RecordAreaTotals(r Record) AreaTotals {
	totals := AreaTotals{AreaCorners: 0, AreaEdges: 0, AreaInner: 0, AreaCenter: 0}
	for _, spot := range r.PositiveSpots() {
		totals[spotToArea[spot]]++
	}
	return totals
}

// GroupTotal sums the canonical-area totals belonging to an area group.
func (t AreaTotals) GroupTotal(g AreaGroup) int {
	n := 0
	for _, area := range g {
		n += t[area]
	}
	return n
}
