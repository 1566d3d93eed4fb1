package scheduling

import "fmt"

// DetectConflicts is the standalone, idempotent post-hoc check that can
// be run over any shift list (not just one this engine generated) — for
// example after a caller has manually edited a generated schedule. It
// reports rest-constraint violations: for each doctor, shifts are sorted
// by date and each consecutive pair is re-checked against the same rest
// rule the assignment loop enforces prospectively.
func DetectConflicts(shifts []Shift, doctors []Doctor) []ScheduleConflict {
	byDoctor := make(map[string][]Shift)
	for _, s := range shifts {
		byDoctor[s.DoctorID] = append(byDoctor[s.DoctorID], s)
	}

	var conflicts []ScheduleConflict
	for _, doc := range doctors {
		doctorShifts := byDoctor[doc.ID]
		if len(doctorShifts) < 2 {
			continue
		}
		sortShiftsByDate(doctorShifts)

		for i := 1; i < len(doctorShifts); i++ {
			prev := doctorShifts[i-1]
			cur := doctorShifts[i]

			_, prevEnd := prev.StartEnd()
			curStart, _ := cur.StartEnd()
			elapsed := prevEnd.HoursUntil(curStart)

			var required float64
			switch prev.Type {
			case ShiftDay:
				required = Constants.DayShiftRest.Hours()
			case ShiftNight:
				required = Constants.NightShiftRest.Hours()
			}

			if elapsed < required {
				conflicts = append(conflicts, ScheduleConflict{
					Kind:       ConflictRestViolation,
					Date:       cur.Date,
					DoctorID:   doc.ID,
					MessageKey: MessageKeyRestViolation,
				})
			}
		}
	}
	return conflicts
}

func sortShiftsByDate(shifts []Shift) {
	for i := 1; i < len(shifts); i++ {
		for j := i; j > 0 && shifts[j].Date.Before(shifts[j-1].Date); j-- {
			shifts[j], shifts[j-1] = shifts[j-1], shifts[j]
		}
	}
}

// detectConflictsInternal combines understaffing (which needs this
// engine's shiftsPerDay/shiftsPerNight requirement, unavailable to the
// standalone DetectConflicts) with the standalone rest-violation check.
func (e *Engine) detectConflictsInternal(shifts []Shift) []ScheduleConflict {
	conflicts := DetectConflicts(shifts, e.input.Doctors)

	dayCounts := make(map[CivilDate]int)
	nightCounts := make(map[CivilDate]int)
	for _, s := range shifts {
		switch s.Type {
		case ShiftDay:
			dayCounts[s.Date]++
		case ShiftNight:
			nightCounts[s.Date]++
		}
	}

	for _, day := range e.monthDates {
		if dayCounts[day.Date] < e.input.ShiftsPerDay || nightCounts[day.Date] < e.input.ShiftsPerNight {
			conflicts = append(conflicts, ScheduleConflict{
				Kind:       ConflictUnderstaffed,
				Date:       day.Date,
				MessageKey: MessageKeyUnderstaffed,
			})
		}
	}

	return conflicts
}

// buildStatsAndWarnings aggregates per-doctor monthly statistics from the
// shift list and emits a norm warning for every doctor whose total
// assigned hours fall short of their base norm.
func (e *Engine) buildStatsAndWarnings(shifts []Shift, workingDays int, leaveCountByDoctor map[string]int) ([]string, []DoctorStats) {
	shiftHours := int(Constants.ShiftDuration.Hours())

	dayCount := make(map[string]int)
	nightCount := make(map[string]int)
	for _, s := range shifts {
		switch s.Type {
		case ShiftDay:
			dayCount[s.DoctorID]++
		case ShiftNight:
			nightCount[s.DoctorID]++
		}
	}

	var warnings []string
	stats := make([]DoctorStats, 0, len(e.input.Doctors))
	for _, doc := range e.input.Doctors {
		day := dayCount[doc.ID]
		night := nightCount[doc.ID]
		total := day + night
		baseNorm := BaseNormHours(workingDays, leaveCountByDoctor[doc.ID])
		totalHours := total * shiftHours
		meets := totalHours >= baseNorm

		stats = append(stats, DoctorStats{
			DoctorID:      doc.ID,
			TotalHours:    totalHours,
			TotalShifts:   total,
			DayShifts:     day,
			NightShifts:   night,
			LeaveDays:     leaveCountByDoctor[doc.ID],
			BaseNormHours: baseNorm,
			MeetsBaseNorm: meets,
		})

		if !meets {
			warnings = append(warnings, fmt.Sprintf("%s:%s", MessageKeyNormWarning, doc.ID))
		}
	}

	return warnings, stats
}
