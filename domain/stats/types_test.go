package stats

import "testing"

func TestDefaultSpotGroups(t *testing.T) {
	groups := DefaultSpotGroups()
	if len(groups) != 24 {
		t.Fatalf("expected 24 groups, got %d", len(groups))
	}
	if groups[0].String() != "2" || groups[22].String() != "24" {
		t.Errorf("unexpected exact group names: %s .. %s", groups[0], groups[22])
	}
	last := groups[23]
	if !last.AtMost || last.String() != "2-24" {
		t.Errorf("expected pooled group 2-24 last, got %+v", last)
	}
}

func TestSpotGroup_Matches(t *testing.T) {
	exact := SpotGroup{N: 7}
	if !exact.Matches(7) || exact.Matches(6) || exact.Matches(8) {
		t.Error("exact group should match only its own count")
	}

	pooled := SpotGroup{N: 24, AtMost: true}
	if pooled.Matches(1) || pooled.Matches(25) {
		t.Error("pooled group must exclude counts below 2 and a full plate")
	}
	for n := 2; n <= 24; n++ {
		if !pooled.Matches(n) {
			t.Errorf("pooled group should match %d", n)
		}
	}
}

func TestRatioGroup_String(t *testing.T) {
	if s := (RatioGroup{Band: 3}).String(); s != "3" {
		t.Errorf("expected 3, got %s", s)
	}
	if s := (RatioGroup{Band: 5, All: true}).String(); s != "1-5" {
		t.Errorf("expected 1-5, got %s", s)
	}
}
