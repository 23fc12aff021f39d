// Package postgres stores SETL monitoring data: localities, species, plates
// and the per-plate spot records the analyses consume.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"setlstat/domain/plate"
	"setlstat/ports"
)

// recordRepository implements the RecordRepository interface
type recordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new plate record repository
func NewRecordRepository(db *sqlx.DB) ports.RecordRepository {
	return &recordRepository{db: db}
}

// Connect opens the SETL database.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// recordRow mirrors one row of the records table: a plate reference, a
// species reference and the 25 surface booleans sur1..sur25.
type recordRow struct {
	PlateID int64 `db:"plate_id"`
	Sur     [plate.SpotCount]bool
}

// SpotRecords loads the presence/absence records matching a selection.
// Each row is one species observation on one plate; records of the same
// plate are not combined here, that is analysis-side policy.
func (r *recordRepository) SpotRecords(ctx context.Context, sel ports.Selection) ([]plate.Record, error) {
	query := `SELECT r.plate_id,
		r.sur1, r.sur2, r.sur3, r.sur4, r.sur5,
		r.sur6, r.sur7, r.sur8, r.sur9, r.sur10,
		r.sur11, r.sur12, r.sur13, r.sur14, r.sur15,
		r.sur16, r.sur17, r.sur18, r.sur19, r.sur20,
		r.sur21, r.sur22, r.sur23, r.sur24, r.sur25
	FROM records r
	JOIN plates p ON p.id = r.plate_id
	WHERE p.locality_id = ANY($1) AND r.species_id = ANY($2)
	ORDER BY r.plate_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(sel.LocalityIDs), pq.Array(sel.SpeciesIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query spot records: %w", err)
	}
	defer rows.Close()

	var records []plate.Record
	for rows.Next() {
		var row recordRow
		dest := make([]interface{}, 0, plate.SpotCount+1)
		dest = append(dest, &row.PlateID)
		for i := range row.Sur {
			dest = append(dest, &row.Sur[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan spot record: %w", err)
		}
		records = append(records, plate.Record{PlateID: row.PlateID, Spots: row.Sur})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spot records: %w", err)
	}
	return records, nil
}

// PlateIDs lists the distinct plate IDs matching a selection
func (r *recordRepository) PlateIDs(ctx context.Context, sel ports.Selection) ([]int64, error) {
	query := `SELECT DISTINCT r.plate_id
	FROM records r
	JOIN plates p ON p.id = r.plate_id
	WHERE p.locality_id = ANY($1) AND r.species_id = ANY($2)
	ORDER BY r.plate_id`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(sel.LocalityIDs), pq.Array(sel.SpeciesIDs)); err != nil {
		return nil, fmt.Errorf("failed to query plate ids: %w", err)
	}
	return ids, nil
}

// Localities lists the known locality IDs and names
func (r *recordRepository) Localities(ctx context.Context) (map[int64]string, error) {
	return r.nameMap(ctx, `SELECT id, name FROM localities ORDER BY id`)
}

// Species lists the known species IDs and names
func (r *recordRepository) Species(ctx context.Context) (map[int64]string, error) {
	return r.nameMap(ctx, `SELECT id, name_latin FROM species ORDER BY id`)
}

func (r *recordRepository) nameMap(ctx context.Context, query string) (map[int64]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan name row: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}
