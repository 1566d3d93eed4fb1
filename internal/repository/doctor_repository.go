package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
)

// DoctorRepository handles doctor roster data access.
type DoctorRepository struct {
	db *sql.DB
}

// NewDoctorRepository creates a new doctor repository.
func NewDoctorRepository(db *sql.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// Create registers a new doctor.
func (r *DoctorRepository) Create(ctx context.Context, input *models.CreateDoctorInput) (*models.Doctor, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		ID:          uuid.New(),
		Name:        input.Name,
		Email:       input.Email,
		MobilePhone: input.MobilePhone,
		TeamID:      input.TeamID,
		IsFloating:  input.IsFloating,
		Preferences: input.Preferences,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO doctors (id, name, email, mobile_phone, team_id, is_floating, preferences, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		doctor.ID, doctor.Name, doctor.Email, doctor.MobilePhone, doctor.TeamID,
		doctor.IsFloating, doctor.Preferences, doctor.Active, doctor.CreatedAt, doctor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrInvalidInput
		}
		return nil, err
	}

	return doctor, nil
}

// GetByID retrieves a doctor by ID, including its team when assigned.
func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	query := `
		SELECT d.id, d.name, d.email, d.mobile_phone, d.team_id, d.is_floating,
		       d.preferences, d.active, d.created_at, d.updated_at,
		       t.id, t.name, t.color, t.max_members, t.order_index, t.active, t.created_at, t.updated_at
		FROM doctors d
		LEFT JOIN teams t ON t.id = d.team_id
		WHERE d.id = $1
	`
	return r.scanDoctor(r.db.QueryRowContext(ctx, query, id))
}

func (r *DoctorRepository) scanDoctor(row *sql.Row) (*models.Doctor, error) {
	var d models.Doctor
	var t models.Team
	var teamID, teamName, teamColor sql.NullString
	var teamMax, teamOrder sql.NullInt64
	var teamActive sql.NullBool
	var teamCreated, teamUpdated sql.NullTime

	err := row.Scan(
		&d.ID, &d.Name, &d.Email, &d.MobilePhone, &d.TeamID, &d.IsFloating,
		&d.Preferences, &d.Active, &d.CreatedAt, &d.UpdatedAt,
		&teamID, &teamName, &teamColor, &teamMax, &teamOrder, &teamActive, &teamCreated, &teamUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDoctorNotFound
		}
		return nil, err
	}

	if teamID.Valid {
		tid, parseErr := uuid.Parse(teamID.String)
		if parseErr == nil {
			t.ID = tid
			t.Name = teamName.String
			t.Color = teamColor.String
			t.MaxMembers = int(teamMax.Int64)
			t.Order = int(teamOrder.Int64)
			t.Active = teamActive.Bool
			t.CreatedAt = teamCreated.Time
			t.UpdatedAt = teamUpdated.Time
			d.Team = &t
		}
	}

	return &d, nil
}

// Update applies a partial update to an existing doctor.
func (r *DoctorRepository) Update(ctx context.Context, id uuid.UUID, input *models.UpdateDoctorInput) (*models.Doctor, error) {
	doctor, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.MobilePhone != nil {
		doctor.MobilePhone = input.MobilePhone
	}
	if input.TeamID != nil {
		doctor.TeamID = input.TeamID
	}
	if input.IsFloating != nil {
		doctor.IsFloating = *input.IsFloating
	}
	if input.Preferences != nil {
		doctor.Preferences = input.Preferences
	}
	if input.Active != nil {
		doctor.Active = *input.Active
	}
	doctor.UpdatedAt = time.Now()

	query := `
		UPDATE doctors
		SET name = $1, mobile_phone = $2, team_id = $3, is_floating = $4, preferences = $5, active = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		doctor.Name, doctor.MobilePhone, doctor.TeamID, doctor.IsFloating,
		doctor.Preferences, doctor.Active, doctor.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrDoctorNotFound
	}

	return doctor, nil
}

// Delete removes a doctor by ID.
func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrDoctorNotFound
	}
	return nil
}

// List retrieves every active doctor ordered by name, for both the admin
// roster view and the scheduling service's engine-input construction.
func (r *DoctorRepository) List(ctx context.Context) ([]models.Doctor, error) {
	query := `
		SELECT id, name, email, mobile_phone, team_id, is_floating, preferences, active, created_at, updated_at
		FROM doctors
		WHERE active = true
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []models.Doctor
	for rows.Next() {
		var d models.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.MobilePhone, &d.TeamID,
			&d.IsFloating, &d.Preferences, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}
