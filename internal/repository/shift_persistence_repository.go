package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
)

// ShiftRepository persists the shifts emitted by a GenerateSchedule
// invocation. Per-month writes follow a delete-then-insert policy over
// the month's date range inside a single transaction, a caller-side
// concern rather than an engine contract.
type ShiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new shift repository.
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// ReplaceMonth deletes every persisted shift in [monthStart, monthEnd) and
// inserts the given shifts in its place, all within one transaction.
func (r *ShiftRepository) ReplaceMonth(ctx context.Context, monthStart, monthEnd time.Time, shifts []models.Shift) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shifts WHERE shift_date >= $1 AND shift_date < $2`,
		monthStart, monthEnd,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shifts (id, doctor_id, shift_date, shift_type, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range shifts {
		id := s.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := stmt.ExecContext(ctx, id, s.DoctorID, s.ShiftDate, s.ShiftType, s.StartTime, s.EndTime, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListForMonth retrieves every persisted shift in [monthStart, monthEnd).
func (r *ShiftRepository) ListForMonth(ctx context.Context, monthStart, monthEnd time.Time) ([]models.Shift, error) {
	query := `
		SELECT id, doctor_id, shift_date, shift_type, start_time, end_time, created_at
		FROM shifts
		WHERE shift_date >= $1 AND shift_date < $2
		ORDER BY shift_date, shift_type
	`
	rows, err := r.db.QueryContext(ctx, query, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		var s models.Shift
		if err := rows.Scan(&s.ID, &s.DoctorID, &s.ShiftDate, &s.ShiftType, &s.StartTime, &s.EndTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
