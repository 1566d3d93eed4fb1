package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
)

// HolidayRepository handles store-wide national-holiday data access.
type HolidayRepository struct {
	db *sql.DB
}

// NewHolidayRepository creates a new holiday repository.
func NewHolidayRepository(db *sql.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Create registers a national holiday.
func (r *HolidayRepository) Create(ctx context.Context, input *models.CreateHolidayInput) (*models.NationalHoliday, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, models.ErrInvalidInput
	}

	holiday := &models.NationalHoliday{
		ID:          uuid.New(),
		Date:        date,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO national_holidays (id, date, description, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET description = EXCLUDED.description
	`
	if _, err := r.db.ExecContext(ctx, query, holiday.ID, holiday.Date, holiday.Description, holiday.CreatedAt); err != nil {
		return nil, err
	}

	return holiday, nil
}

// Delete removes a national holiday by ID.
func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM national_holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrHolidayNotFound
	}
	return nil
}

// ListForMonth retrieves every national holiday within the given
// 1-indexed month/year.
func (r *HolidayRepository) ListForMonth(ctx context.Context, month, year int) ([]models.NationalHoliday, error) {
	query := `
		SELECT id, date, description, created_at
		FROM national_holidays
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []models.NationalHoliday
	for rows.Next() {
		var h models.NationalHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// List retrieves every registered national holiday.
func (r *HolidayRepository) List(ctx context.Context) ([]models.NationalHoliday, error) {
	query := `SELECT id, date, description, created_at FROM national_holidays ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []models.NationalHoliday
	for rows.Next() {
		var h models.NationalHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
