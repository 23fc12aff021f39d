package ports

import (
	"context"

	"setlstat/domain/plate"
)

// Selection identifies one set of plate records: a species (or merged
// species group) within a set of localities.
type Selection struct {
	LocalityIDs []int64
	SpeciesIDs  []int64
}

// RecordRepository defines the interface for plate record storage
type RecordRepository interface {
	// SpotRecords loads the presence/absence records matching a selection,
	// one record per surface per plate
	SpotRecords(ctx context.Context, sel Selection) ([]plate.Record, error)

	// PlateIDs lists the distinct plate IDs matching a selection
	PlateIDs(ctx context.Context, sel Selection) ([]int64, error)

	// Localities lists the known locality IDs and names
	Localities(ctx context.Context) (map[int64]string, error)

	// Species lists the known species IDs and names
	Species(ctx context.Context) (map[int64]string, error)
}

// ReportRepository persists finished analysis reports
type ReportRepository interface {
	Save(ctx context.Context, reportJSON []byte, analysisName string) error
}
