package models

import (
	"time"

	"github.com/google/uuid"
)

// NationalHoliday is a store-wide non-working date, independent of any
// single doctor.
type NationalHoliday struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Date        time.Time `json:"date" db:"date" validate:"required"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateHolidayInput is the payload for registering a holiday.
type CreateHolidayInput struct {
	Date        string `json:"date" validate:"required"` // YYYY-MM-DD
	Description string `json:"description,omitempty"`
}

// HolidayResponse is the API-facing shape of NationalHoliday.
type HolidayResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
}

// ToResponse converts NationalHoliday to HolidayResponse.
func (h *NationalHoliday) ToResponse() HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
	}
}
