package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vitalconnect/scheduler/internal/models"
)

// ScheduleRunRepository persists the append-only history of
// GenerateSchedule invocations, queryable by month.
type ScheduleRunRepository struct {
	db *sql.DB
}

// NewScheduleRunRepository creates a new schedule run repository.
func NewScheduleRunRepository(db *sql.DB) *ScheduleRunRepository {
	return &ScheduleRunRepository{db: db}
}

// Create records one GenerateSchedule invocation.
func (r *ScheduleRunRepository) Create(ctx context.Context, run *models.ScheduleRun) error {
	query := `
		INSERT INTO schedule_runs (id, month, year, requested_by, conflict_count, warning_count, shift_count, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Month, run.Year, run.RequestedBy, run.ConflictCount, run.WarningCount, run.ShiftCount, run.GeneratedAt,
	)
	return err
}

// LatestForMonth retrieves the most recent run recorded for month/year.
func (r *ScheduleRunRepository) LatestForMonth(ctx context.Context, month, year int) (*models.ScheduleRun, error) {
	query := `
		SELECT id, month, year, requested_by, conflict_count, warning_count, shift_count, generated_at
		FROM schedule_runs
		WHERE month = $1 AND year = $2
		ORDER BY generated_at DESC
		LIMIT 1
	`
	var run models.ScheduleRun
	err := r.db.QueryRowContext(ctx, query, month, year).Scan(
		&run.ID, &run.Month, &run.Year, &run.RequestedBy, &run.ConflictCount, &run.WarningCount, &run.ShiftCount, &run.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrScheduleRunNotFound
		}
		return nil, err
	}
	return &run, nil
}
