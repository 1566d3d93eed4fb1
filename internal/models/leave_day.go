package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaveDay is a single declared day off for a doctor. Duplicates on the
// same (doctor, date) pair are idempotent at the repository layer.
type LeaveDay struct {
	ID        uuid.UUID `json:"id" db:"id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id" validate:"required"`
	Date      time.Time `json:"date" db:"date" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateLeaveDayInput is the payload for declaring a leave day.
type CreateLeaveDayInput struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"` // YYYY-MM-DD
}

// LeaveDayResponse is the API-facing shape of LeaveDay.
type LeaveDayResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts LeaveDay to LeaveDayResponse.
func (l *LeaveDay) ToResponse() LeaveDayResponse {
	return LeaveDayResponse{
		ID:        l.ID,
		DoctorID:  l.DoctorID,
		Date:      l.Date.Format("2006-01-02"),
		CreatedAt: l.CreatedAt,
	}
}
