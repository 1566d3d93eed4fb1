package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Doctor is the persistence-layer record for a rotation-scheduled doctor.
// TeamID and IsFloating mirror scheduling.Affiliation's invariant: exactly
// one of TeamID (non-nil) or IsFloating (true) holds.
type Doctor struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name" validate:"required"`
	Email       string          `json:"email" db:"email" validate:"required,email"`
	MobilePhone *string         `json:"mobile_phone,omitempty" db:"mobile_phone"`
	TeamID      *uuid.UUID      `json:"team_id,omitempty" db:"team_id"`
	IsFloating  bool            `json:"is_floating" db:"is_floating"`
	Preferences json.RawMessage `json:"preferences,omitempty" db:"preferences"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// CreateDoctorInput is the payload for registering a new doctor.
type CreateDoctorInput struct {
	Name        string          `json:"name" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	MobilePhone *string         `json:"mobile_phone,omitempty"`
	TeamID      *uuid.UUID      `json:"team_id,omitempty"`
	IsFloating  bool            `json:"is_floating"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// Validate enforces the team/floating mutual exclusivity invariant.
func (i *CreateDoctorInput) Validate() error {
	if i.IsFloating && i.TeamID != nil {
		return ErrDoctorAlreadyOnTeam
	}
	if !i.IsFloating && i.TeamID == nil {
		return ErrInvalidInput
	}
	return nil
}

// UpdateDoctorInput is the payload for editing an existing doctor.
type UpdateDoctorInput struct {
	Name        *string         `json:"name,omitempty"`
	MobilePhone *string         `json:"mobile_phone,omitempty"`
	TeamID      *uuid.UUID      `json:"team_id,omitempty"`
	IsFloating  *bool           `json:"is_floating,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// DoctorResponse is the API-facing shape of Doctor.
type DoctorResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	MobilePhone *string         `json:"mobile_phone,omitempty"`
	TeamID      *uuid.UUID      `json:"team_id,omitempty"`
	IsFloating  bool            `json:"is_floating"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	Active      bool            `json:"active"`
	Team        *TeamResponse   `json:"team,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToResponse converts Doctor to DoctorResponse.
func (d *Doctor) ToResponse() DoctorResponse {
	resp := DoctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		MobilePhone: d.MobilePhone,
		TeamID:      d.TeamID,
		IsFloating:  d.IsFloating,
		Preferences: d.Preferences,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Team != nil {
		teamResp := d.Team.ToResponse()
		resp.Team = &teamResp
	}
	return resp
}
