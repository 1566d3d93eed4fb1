package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
)

// LeaveDayRepository handles declared-leave-day data access.
type LeaveDayRepository struct {
	db *sql.DB
}

// NewLeaveDayRepository creates a new leave day repository.
func NewLeaveDayRepository(db *sql.DB) *LeaveDayRepository {
	return &LeaveDayRepository{db: db}
}

// Create declares a leave day for a doctor. Duplicates on the same
// (doctor, date) pair are idempotent: ON CONFLICT DO NOTHING mirrors the
// engine's own idempotent treatment of repeated leave dates.
func (r *LeaveDayRepository) Create(ctx context.Context, input *models.CreateLeaveDayInput) (*models.LeaveDay, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, models.ErrInvalidInput
	}

	leave := &models.LeaveDay{
		ID:        uuid.New(),
		DoctorID:  input.DoctorID,
		Date:      date,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO leave_days (id, doctor_id, date, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (doctor_id, date) DO NOTHING
	`
	_, err = r.db.ExecContext(ctx, query, leave.ID, leave.DoctorID, leave.Date, leave.CreatedAt)
	if err != nil {
		return nil, err
	}

	return r.getByDoctorAndDate(ctx, leave.DoctorID, leave.Date)
}

func (r *LeaveDayRepository) getByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*models.LeaveDay, error) {
	var l models.LeaveDay
	query := `SELECT id, doctor_id, date, created_at FROM leave_days WHERE doctor_id = $1 AND date = $2`
	err := r.db.QueryRowContext(ctx, query, doctorID, date).Scan(&l.ID, &l.DoctorID, &l.Date, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrLeaveDayNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Delete removes a leave day by ID.
func (r *LeaveDayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leave_days WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrLeaveDayNotFound
	}
	return nil
}

// ListForMonth retrieves every leave day whose date falls within the
// given 1-indexed month/year, across all doctors — the shape the
// scheduling service needs to build a GenerateSchedule Input.
func (r *LeaveDayRepository) ListForMonth(ctx context.Context, month, year int) ([]models.LeaveDay, error) {
	query := `
		SELECT id, doctor_id, date, created_at
		FROM leave_days
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveDays []models.LeaveDay
	for rows.Next() {
		var l models.LeaveDay
		if err := rows.Scan(&l.ID, &l.DoctorID, &l.Date, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaveDays = append(leaveDays, l)
	}
	return leaveDays, rows.Err()
}

// ListByDoctor retrieves every leave day declared for a single doctor.
func (r *LeaveDayRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.LeaveDay, error) {
	query := `SELECT id, doctor_id, date, created_at FROM leave_days WHERE doctor_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveDays []models.LeaveDay
	for rows.Next() {
		var l models.LeaveDay
		if err := rows.Scan(&l.ID, &l.DoctorID, &l.Date, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaveDays = append(leaveDays, l)
	}
	return leaveDays, rows.Err()
}
