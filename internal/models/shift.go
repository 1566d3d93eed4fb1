package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftType mirrors scheduling.ShiftType at the persistence/API boundary.
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)

// Shift is the persisted record of a single engine-assigned shift. The
// tuple (DoctorID, ShiftDate, ShiftType) is unique per row.
type Shift struct {
	ID        uuid.UUID `json:"id" db:"id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	ShiftDate time.Time `json:"shift_date" db:"shift_date"`
	ShiftType ShiftType `json:"shift_type" db:"shift_type"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ShiftResponse is the API-facing shape of Shift.
type ShiftResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	ShiftDate string    `json:"shift_date"`
	ShiftType ShiftType `json:"shift_type"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// ToResponse converts Shift to ShiftResponse.
func (s *Shift) ToResponse() ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		ShiftDate: s.ShiftDate.Format("2006-01-02"),
		ShiftType: s.ShiftType,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}
