package scheduling

import (
	"fmt"
	"time"
)

// CivilDate is a timezone-free calendar date: a (year, month, day) triple
// with no wall-clock or location attached. All scheduling math goes
// through this type instead of time.Time so that shift boundaries never
// drift across daylight-saving transitions.
type CivilDate struct {
	Year  int
	Month int // 1-12
	Day   int
}

// NewCivilDate normalizes a (year, month, day) triple the way time.Date
// does (overflowing days roll into the next month, etc).
func NewCivilDate(year, month, day int) CivilDate {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	return civilDateFromTime(t)
}

func civilDateFromTime(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: int(m), Day: d}
}

func (d CivilDate) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d CivilDate) AddDays(n int) CivilDate {
	return civilDateFromTime(d.toTime().AddDate(0, 0, n))
}

// Weekday returns the day of week for d.
func (d CivilDate) Weekday() time.Weekday {
	return d.toTime().Weekday()
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func (d CivilDate) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Before reports whether d is strictly before other.
func (d CivilDate) Before(other CivilDate) bool {
	return compareCivilDate(d, other) < 0
}

// After reports whether d is strictly after other.
func (d CivilDate) After(other CivilDate) bool {
	return compareCivilDate(d, other) > 0
}

// Equal reports whether d and other denote the same calendar date.
func (d CivilDate) Equal(other CivilDate) bool {
	return d == other
}

func compareCivilDate(a, b CivilDate) int {
	switch {
	case a.Year != b.Year:
		return a.Year - b.Year
	case a.Month != b.Month:
		return a.Month - b.Month
	default:
		return a.Day - b.Day
	}
}

// DaysBetween returns the number of calendar days from a to b (b-a),
// positive when b is after a.
func DaysBetween(a, b CivilDate) int {
	hours := b.toTime().Sub(a.toTime()).Hours()
	return int(hours / 24)
}

// String renders the date as YYYY-MM-DD, the only point where the engine
// produces an ISO-8601 string (the HTTP/JSON boundary).
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseCivilDate parses a YYYY-MM-DD string into a CivilDate.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return civilDateFromTime(t), nil
}

// DaysInMonth returns the number of days in the given 0-indexed month/year.
func DaysInMonth(month, year int) int {
	// Day 0 of "next month" is the last day of this month.
	t := time.Date(year, time.Month(month+2), 0, 12, 0, 0, 0, time.UTC)
	return t.Day()
}

// ShiftEndpoints returns the start/end instants of a shift of the given
// type on date d, expressed as nominal (date, hour) pairs, suitable for
// feeding into elapsed-hours math.
//
// Day shifts run [08:00, 20:00) of d. Night shifts run [20:00 of d,
// 08:00 of d+1).
func ShiftEndpoints(d CivilDate, shiftType ShiftType) (start, end CivilDateTime) {
	switch shiftType {
	case ShiftDay:
		return CivilDateTime{Date: d, Hour: 8}, CivilDateTime{Date: d, Hour: 20}
	case ShiftNight:
		return CivilDateTime{Date: d, Hour: 20}, CivilDateTime{Date: d.AddDays(1), Hour: 8}
	default:
		return CivilDateTime{}, CivilDateTime{}
	}
}

// CivilDateTime is a nominal (date, hour) instant with no location —
// used only for elapsed-hours arithmetic between shift boundaries.
type CivilDateTime struct {
	Date CivilDate
	Hour int
}

// HoursUntil returns the number of hours from t to other (other-t).
func (t CivilDateTime) HoursUntil(other CivilDateTime) float64 {
	days := DaysBetween(t.Date, other.Date)
	return float64(days*24+other.Hour-t.Hour)
}
