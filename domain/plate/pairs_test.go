package plate

import (
	"reflect"
	"testing"
)

func TestSpotPairs_Counts(t *testing.T) {
	cases := []struct {
		spots []int
		want  int
	}{
		{nil, 0},
		{[]int{13}, 0},
		{[]int{1, 2}, 1},
		{[]int{1, 2, 5, 15}, 6},
		{[]int{1, 2, 3, 4, 5, 6}, 15},
	}
	for _, c := range cases {
		rec := spotsRecord(1, c.spots...)
		if got := len(SpotPairs(rec)); got != c.want {
			t.Errorf("spots %v: expected %d pairs, got %d", c.spots, c.want, got)
		}
	}
}

func TestSpotPairsBetween_Cartesian(t *testing.T) {
	a := spotsRecord(1, 1, 2, 3)
	b := spotsRecord(1, 13, 25)
	pairs := SpotPairsBetween(a, b)
	if len(pairs) != 6 {
		t.Fatalf("expected 3x2 pairs, got %d", len(pairs))
	}
	if len(SpotPairsBetween(a, Record{PlateID: 1})) != 0 {
		t.Error("empty record should yield no pairs")
	}
}

func TestPairDistances_KnownScenario(t *testing.T) {
	rec := spotsRecord(1, 1, 2, 5, 15)
	distances, err := PairDistances(SpotPairs(rec))
	if err != nil {
		t.Fatalf("PairDistances failed: %v", err)
	}
	// Pairs in ascending spot order: (1,2) (1,5) (1,15) (2,5) (2,15) (5,15).
	want := []float64{1, 4, 4.47, 3, 3.61, 2}
	if !reflect.DeepEqual(distances, want) {
		t.Errorf("expected %v, got %v", want, distances)
	}
}
