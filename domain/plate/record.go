package plate

import (
	"setlstat/domain/core"
)

// Record is one SETL plate observation: a plate identity plus the 25
// presence/absence spot booleans for a single species selection. Records
// are created from persisted storage and never mutated by the engine.
type Record struct {
	PlateID int64
	Spots   [SpotCount]bool
}

// NewRecord builds a record from a plate ID and a 25-value spot sequence.
func NewRecord(plateID int64, spots []bool) (Record, error) {
	if len(spots) != SpotCount {
		return Record{}, core.NewOutOfRangeError("spot vector length", len(spots), SpotCount, SpotCount)
	}
	r := Record{PlateID: plateID}
	copy(r.Spots[:], spots)
	return r, nil
}

// PositiveSpots returns the 1-based spot numbers that are positive,
// in ascending order.
func (r Record) PositiveSpots() []int {
	spots := make([]int, 0, SpotCount)
	for i, present := range r.Spots {
		if present {
			spots = append(spots, i+1)
		}
	}
	return spots
}

// PositiveCount returns the number of positive spots on the record.
func (r Record) PositiveCount() int {
	n := 0
	for _, present := range r.Spots {
		if present {
			n++
		}
	}
	return n
}

// CombineRecords merges multiple records for the same plate into one record
// whose positive-spot set is the union of all inputs. This is how records of
// different species selections found on the same plate are collapsed into a
// single plate observation. All records must carry the same plate ID.
func CombineRecords(records []Record) (Record, error) {
	if len(records) == 0 {
		return Record{}, core.ErrNoData
	}

	combined := Record{PlateID: records[0].PlateID}
	for _, rec := range records {
		if rec.PlateID != combined.PlateID {
			return Record{}, core.ErrPlateIDMismatch
		}
		for i, present := range rec.Spots {
			if present {
				combined.Spots[i] = true
			}
		}
	}
	return combined, nil
}

// CombineByPlate groups records by plate ID and combines each group with
// CombineRecords, making plate IDs unique. Order of the result follows the
// first appearance of each plate in the input.
func CombineByPlate(records []Record) []Record {
	byPlate := make(map[int64]int)
	combined := make([]Record, 0, len(records))

	for _, rec := range records {
		idx, seen := byPlate[rec.PlateID]
		if !seen {
			byPlate[rec.PlateID] = len(combined)
			combined = append(combined, rec)
			continue
		}
		for i, present := range rec.Spots {
			if present {
				combined[idx].Spots[i] = true
			}
		}
	}
	return combined
}
