package models

import (
	"time"

	"github.com/google/uuid"
)

// Team groups doctors that rotate together under a shared priority order.
type Team struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name" validate:"required"`
	Color      string    `json:"color" db:"color"`
	MaxMembers int       `json:"max_members" db:"max_members"`
	Order      int       `json:"order" db:"order_index"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTeamInput is the payload for registering a new team.
type CreateTeamInput struct {
	Name       string `json:"name" validate:"required"`
	Color      string `json:"color"`
	MaxMembers int    `json:"max_members" validate:"gte=0"`
	Order      int    `json:"order"`
}

// UpdateTeamInput is the payload for editing an existing team.
type UpdateTeamInput struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	MaxMembers *int    `json:"max_members,omitempty" validate:"omitempty,gte=0"`
	Order      *int    `json:"order,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// TeamResponse is the API-facing shape of Team.
type TeamResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	MaxMembers int       `json:"max_members"`
	Order      int       `json:"order"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToResponse converts Team to TeamResponse.
func (t *Team) ToResponse() TeamResponse {
	return TeamResponse{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		MaxMembers: t.MaxMembers,
		Order:      t.Order,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
