package stats

import (
	"math"
	"testing"
)

func TestWilcoxonRankSum_KnownValue(t *testing.T) {
	// Separated samples of three: U = 0, z with continuity correction is
	// -4/sqrt(5.25), two-sided p about 0.081.
	w, p := WilcoxonRankSum([]float64{1, 2, 3}, []float64{4, 5, 6})
	if w != 0 {
		t.Errorf("expected U = 0, got %v", w)
	}
	if math.Abs(p-0.0809) > 0.005 {
		t.Errorf("expected p near 0.0809, got %v", p)
	}
}

func TestWilcoxonRankSum_Symmetry(t *testing.T) {
	x := []float64{1, 3, 5, 7, 9}
	y := []float64{2, 2, 6, 8}
	_, p1 := WilcoxonRankSum(x, y)
	_, p2 := WilcoxonRankSum(y, x)
	if math.Abs(p1-p2) > 1e-12 {
		t.Errorf("two-sided p must be symmetric: %v vs %v", p1, p2)
	}
}

func TestWilcoxonRankSum_IdenticalSamples(t *testing.T) {
	x := []float64{2, 4, 6, 8}
	_, p := WilcoxonRankSum(x, x)
	if math.IsNaN(p) {
		t.Fatalf("identical but non-constant samples should still have a p-value, got NaN")
	}
	if p < 0.9 {
		t.Errorf("identical samples should be far from significant, got p=%v", p)
	}
}

func TestWilcoxonRankSum_AllTiesYieldNaN(t *testing.T) {
	x := []float64{3, 3, 3}
	y := []float64{3, 3, 3, 3}
	_, p := WilcoxonRankSum(x, y)
	if !math.IsNaN(p) {
		t.Errorf("constant pooled sample has zero rank variance, expected NaN p, got %v", p)
	}
}

func TestWilcoxonRankSum_EmptySample(t *testing.T) {
	_, p := WilcoxonRankSum(nil, []float64{1, 2})
	if !math.IsNaN(p) {
		t.Errorf("expected NaN p for empty sample, got %v", p)
	}
}

func TestWilcoxonRankSum_ShiftDetected(t *testing.T) {
	x := make([]float64, 30)
	y := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) + 20
	}
	_, p := WilcoxonRankSum(x, y)
	if p > 1e-6 {
		t.Errorf("strong shift should be highly significant, got p=%v", p)
	}
}
