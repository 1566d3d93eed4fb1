package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleRun is an append-only record of one GenerateSchedule invocation,
// kept for operational history instead of discarding generation results
// after the HTTP response.
type ScheduleRun struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Month            int       `json:"month" db:"month"`
	Year             int       `json:"year" db:"year"`
	RequestedBy      uuid.UUID `json:"requested_by" db:"requested_by"`
	ConflictCount    int       `json:"conflict_count" db:"conflict_count"`
	WarningCount     int       `json:"warning_count" db:"warning_count"`
	ShiftCount       int       `json:"shift_count" db:"shift_count"`
	GeneratedAt      time.Time `json:"generated_at" db:"generated_at"`
}
