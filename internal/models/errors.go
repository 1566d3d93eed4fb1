package models

import "errors"

// Scheduling domain errors
var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrTeamNotFound          = errors.New("team not found")
	ErrLeaveDayNotFound      = errors.New("leave day not found")
	ErrHolidayNotFound       = errors.New("national holiday not found")
	ErrScheduleRunNotFound   = errors.New("schedule run not found")
	ErrInvalidMonth          = errors.New("month must be between 1 and 12")
	ErrInvalidYear           = errors.New("year must be a valid calendar year")
	ErrInvalidPhoneNumber    = errors.New("mobile phone must be in E.164 format")
	ErrDoctorAlreadyOnTeam   = errors.New("doctor is already assigned to a team")
	ErrScheduleAlreadyExists = errors.New("a schedule has already been generated for this month")
	ErrInvalidInput          = errors.New("invalid input")
)
