package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"setlstat/domain/core"
	"setlstat/ports"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new analysis report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Save inserts a finished analysis report as JSON
func (r *reportRepository) Save(ctx context.Context, reportJSON []byte, analysisName string) error {
	query := `INSERT INTO analysis_reports (id, analysis_name, report, created_at)
	VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, core.NewID(), analysisName, reportJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save analysis report: %w", err)
	}
	return nil
}
