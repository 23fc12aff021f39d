package plate

import (
	"errors"
	"reflect"
	"testing"

	"setlstat/domain/core"
)

func spotsRecord(plateID int64, spots ...int) Record {
	rec := Record{PlateID: plateID}
	for _, s := range spots {
		rec.Spots[s-1] = true
	}
	return rec
}

func TestNewRecord_LengthChecked(t *testing.T) {
	if _, err := NewRecord(1, make([]bool, 24)); !errors.Is(err, core.ErrOutOfRange) {
		t.Errorf("expected out-of-range error for short vector, got %v", err)
	}
	rec, err := NewRecord(1, make([]bool, SpotCount))
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if rec.PositiveCount() != 0 {
		t.Errorf("empty vector should have 0 positives, got %d", rec.PositiveCount())
	}
}

func TestPositiveSpots_AscendingAndConsistent(t *testing.T) {
	rec := spotsRecord(7, 15, 1, 2, 5)
	got := rec.PositiveSpots()
	want := []int{1, 2, 5, 15}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if rec.PositiveCount() != len(got) {
		t.Errorf("PositiveCount %d disagrees with PositiveSpots length %d", rec.PositiveCount(), len(got))
	}
}

func TestCombineRecords_Union(t *testing.T) {
	a := spotsRecord(3, 1, 2)
	b := spotsRecord(3, 2, 13, 25)

	combined, err := CombineRecords([]Record{a, b})
	if err != nil {
		t.Fatalf("CombineRecords failed: %v", err)
	}
	want := []int{1, 2, 13, 25}
	if got := combined.PositiveSpots(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected union %v, got %v", want, got)
	}
	if combined.PlateID != 3 {
		t.Errorf("expected plate ID 3, got %d", combined.PlateID)
	}
}

func TestCombineRecords_Errors(t *testing.T) {
	if _, err := CombineRecords(nil); !errors.Is(err, core.ErrNoData) {
		t.Errorf("expected no-data error, got %v", err)
	}
	records := []Record{spotsRecord(1, 1), spotsRecord(2, 2)}
	if _, err := CombineRecords(records); !errors.Is(err, core.ErrPlateIDMismatch) {
		t.Errorf("expected plate mismatch error, got %v", err)
	}
}

func TestCombineByPlate_GroupsAndPreservesOrder(t *testing.T) {
	records := []Record{
		spotsRecord(10, 1),
		spotsRecord(20, 5),
		spotsRecord(10, 25),
	}
	combined := CombineByPlate(records)
	if len(combined) != 2 {
		t.Fatalf("expected 2 combined records, got %d", len(combined))
	}
	if combined[0].PlateID != 10 || combined[1].PlateID != 20 {
		t.Errorf("plate order not preserved: %d, %d", combined[0].PlateID, combined[1].PlateID)
	}
	if got := combined[0].PositiveSpots(); !reflect.DeepEqual(got, []int{1, 25}) {
		t.Errorf("expected plate 10 union {1,25}, got %v", got)
	}
}
