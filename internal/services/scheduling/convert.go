package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
	"github.com/vitalconnect/scheduler/internal/scheduling"
)

func toEngineDoctors(doctors []models.Doctor) []scheduling.Doctor {
	out := make([]scheduling.Doctor, 0, len(doctors))
	for _, d := range doctors {
		affiliation := scheduling.Floating()
		if !d.IsFloating && d.TeamID != nil {
			affiliation = scheduling.InTeam(d.TeamID.String())
		}
		var prefs map[string]any
		if len(d.Preferences) > 0 {
			prefs = map[string]any{"raw": string(d.Preferences)}
		}
		out = append(out, scheduling.Doctor{
			ID:          d.ID.String(),
			Name:        d.Name,
			Affiliation: affiliation,
			Preferences: prefs,
		})
	}
	return out
}

func toEngineTeams(teams []models.Team) []scheduling.Team {
	out := make([]scheduling.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, scheduling.Team{
			ID:         t.ID.String(),
			Name:       t.Name,
			Color:      t.Color,
			MaxMembers: t.MaxMembers,
			Order:      t.Order,
		})
	}
	return out
}

func toEngineLeaveDays(leaveDays []models.LeaveDay) []scheduling.LeaveDay {
	out := make([]scheduling.LeaveDay, 0, len(leaveDays))
	for _, l := range leaveDays {
		out = append(out, scheduling.LeaveDay{
			DoctorID: l.DoctorID.String(),
			Date:     civilDateFromTime(l.Date),
		})
	}
	return out
}

func toEngineHolidays(holidays []models.NationalHoliday) []scheduling.NationalHoliday {
	out := make([]scheduling.NationalHoliday, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, scheduling.NationalHoliday{
			Date:        civilDateFromTime(h.Date),
			Description: h.Description,
		})
	}
	return out
}

func toEngineShifts(shifts []models.Shift) []scheduling.Shift {
	out := make([]scheduling.Shift, 0, len(shifts))
	for _, s := range shifts {
		shiftType := scheduling.ShiftDay
		if s.ShiftType == models.ShiftNight {
			shiftType = scheduling.ShiftNight
		}
		out = append(out, scheduling.Shift{
			DoctorID: s.DoctorID.String(),
			Date:     civilDateFromTime(s.ShiftDate),
			Type:     shiftType,
		})
	}
	return out
}

// toPersistedShifts converts engine-emitted shifts into persistence
// records. IDs are assigned here: the engine emits shifts without one
// and the persistence identity is generated at this boundary.
func toPersistedShifts(shifts []scheduling.Shift) []models.Shift {
	out := make([]models.Shift, 0, len(shifts))
	for _, s := range shifts {
		doctorID, err := uuid.Parse(s.DoctorID)
		if err != nil {
			continue
		}
		start, end := s.StartEnd()
		shiftType := models.ShiftDay
		if s.Type == scheduling.ShiftNight {
			shiftType = models.ShiftNight
		}
		out = append(out, models.Shift{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			ShiftDate: civilDateToTime(s.Date),
			ShiftType: shiftType,
			StartTime: formatHour(start.Hour),
			EndTime:   formatHour(end.Hour),
		})
	}
	return out
}

func civilDateFromTime(t time.Time) scheduling.CivilDate {
	return scheduling.NewCivilDate(t.Year(), int(t.Month()), t.Day())
}

func civilDateToTime(d scheduling.CivilDate) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour%24)
}
