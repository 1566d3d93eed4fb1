package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/services/auth"
)

// UserRepository handles login-account data access for the auth service.
// A "user" is a login identity (email/password/role) and is distinct from
// a Doctor: not every doctor has a login, and a scheduler/admin login
// need not reference a doctor at all.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a login account by email for authentication.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, team_id, active
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a login account by ID for authentication.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, team_id, active
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	var teamID sql.NullString

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &teamID, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	if teamID.Valid {
		tid, err := uuid.Parse(teamID.String)
		if err == nil {
			u.TeamID = &tid
		}
	}

	return &u, nil
}
