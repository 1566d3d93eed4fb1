package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
)

// TeamRepository handles rotation-team data access.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create registers a new team.
func (r *TeamRepository) Create(ctx context.Context, input *models.CreateTeamInput) (*models.Team, error) {
	team := &models.Team{
		ID:         uuid.New(),
		Name:       input.Name,
		Color:      input.Color,
		MaxMembers: input.MaxMembers,
		Order:      input.Order,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
		INSERT INTO teams (id, name, color, max_members, order_index, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		team.ID, team.Name, team.Color, team.MaxMembers, team.Order, team.Active, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// GetByID retrieves a team by ID.
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `
		SELECT id, name, color, max_members, order_index, active, created_at, updated_at
		FROM teams WHERE id = $1
	`
	var t models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Color, &t.MaxMembers, &t.Order, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update applies a partial update to an existing team.
func (r *TeamRepository) Update(ctx context.Context, id uuid.UUID, input *models.UpdateTeamInput) (*models.Team, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Color != nil {
		team.Color = *input.Color
	}
	if input.MaxMembers != nil {
		team.MaxMembers = *input.MaxMembers
	}
	if input.Order != nil {
		team.Order = *input.Order
	}
	if input.Active != nil {
		team.Active = *input.Active
	}
	team.UpdatedAt = time.Now()

	query := `
		UPDATE teams SET name = $1, color = $2, max_members = $3, order_index = $4, active = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.Color, team.MaxMembers, team.Order, team.Active, team.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrTeamNotFound
	}
	return team, nil
}

// Delete removes a team by ID.
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTeamNotFound
	}
	return nil
}

// List retrieves every active team ordered by rotation Order, the same
// order the scheduling engine expects for deterministic rotation.
func (r *TeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, color, max_members, order_index, active, created_at, updated_at
		FROM teams
		WHERE active = true
		ORDER BY order_index, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.MaxMembers, &t.Order, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
