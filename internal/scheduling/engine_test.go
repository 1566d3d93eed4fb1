package scheduling

import (
	"errors"
	"testing"
)

func newTestDoctor(id, teamID string) Doctor {
	affiliation := Floating()
	if teamID != "" {
		affiliation = InTeam(teamID)
	}
	return Doctor{ID: id, Name: id, Affiliation: affiliation}
}

func TestNewEngine_RejectsInvalidMonth(t *testing.T) {
	_, err := NewEngine(Input{Month: 12, Year: 2026})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for out-of-range month, got %v", err)
	}
}

func TestNewEngine_RejectsUnknownTeamReference(t *testing.T) {
	_, err := NewEngine(Input{
		Month:   0,
		Year:    2026,
		Doctors: []Doctor{newTestDoctor("d1", "ghost-team")},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a doctor referencing an unknown team, got %v", err)
	}
}

func TestNewEngine_RejectsNegativeShiftCounts(t *testing.T) {
	_, err := NewEngine(Input{Month: 0, Year: 2026, ShiftsPerDay: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a negative shift count, got %v", err)
	}
}

// buildTeamRoster builds a one-team roster of n doctors for use across
// the scenario tests below.
func buildTeamRoster(n int) ([]Doctor, []Team) {
	team := Team{ID: "team-a", Name: "Team A", Order: 0}
	doctors := make([]Doctor, 0, n)
	for i := 0; i < n; i++ {
		doctors = append(doctors, newTestDoctor(string(rune('a'+i)), team.ID))
	}
	return doctors, []Team{team}
}

func TestGenerateSchedule_NoDoctorDoubleBookedSameDate(t *testing.T) {
	doctors, teams := buildTeamRoster(6)
	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	seen := make(map[string]map[CivilDate]int)
	for _, s := range result.Shifts {
		if seen[s.DoctorID] == nil {
			seen[s.DoctorID] = make(map[CivilDate]int)
		}
		seen[s.DoctorID][s.Date]++
		if seen[s.DoctorID][s.Date] > 1 {
			t.Errorf("doctor %s double-booked on %s", s.DoctorID, s.Date)
		}
	}
}

func TestGenerateSchedule_RestConstraintsNeverViolatedByTheEngineItself(t *testing.T) {
	doctors, teams := buildTeamRoster(6)
	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	// The engine's own prospective rest check must never be violated by a
	// schedule it produced itself, independent of the post-hoc validator.
	conflicts := DetectConflicts(result.Shifts, doctors)
	for _, c := range conflicts {
		if c.Kind == ConflictRestViolation {
			t.Errorf("engine-generated schedule contains a rest violation for doctor %s on %s", c.DoctorID, c.Date)
		}
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	doctors, teams := buildTeamRoster(5)
	input := Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	}

	e1, err := NewEngine(input)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	r1, err := e1.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	e2, err := NewEngine(input)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	r2, err := e2.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	if len(r1.Shifts) != len(r2.Shifts) {
		t.Fatalf("non-deterministic shift count: %d vs %d", len(r1.Shifts), len(r2.Shifts))
	}
	for i := range r1.Shifts {
		if r1.Shifts[i] != r2.Shifts[i] {
			t.Errorf("non-deterministic shift at index %d: %+v vs %+v", i, r1.Shifts[i], r2.Shifts[i])
		}
	}
}

func TestGenerateSchedule_LeaveDatesNeverAssigned(t *testing.T) {
	doctors, teams := buildTeamRoster(5)
	leave := []LeaveDay{
		{DoctorID: "a", Date: NewCivilDate(2026, 1, 14)},
		{DoctorID: "a", Date: NewCivilDate(2026, 1, 15)},
	}

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
		LeaveDays:      leave,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	for _, s := range result.Shifts {
		if s.DoctorID != "a" {
			continue
		}
		if s.Date == NewCivilDate(2026, 1, 14) || s.Date == NewCivilDate(2026, 1, 15) {
			t.Errorf("doctor on declared leave was assigned a shift on %s", s.Date)
		}
	}
}

func TestGenerateSchedule_BridgeDayNeverAssigned(t *testing.T) {
	// Leave on Fri Jan 9 and Mon Jan 12 bridges Sat 10/Sun 11. Weekend
	// dates are staffed like any other date, and a two-doctor roster is
	// small enough that the bridged doctor would otherwise be needed.
	doctors, teams := buildTeamRoster(2)
	leave := []LeaveDay{
		{DoctorID: "a", Date: NewCivilDate(2026, 1, 9)},
		{DoctorID: "a", Date: NewCivilDate(2026, 1, 12)},
	}

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
		LeaveDays:      leave,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	bridged := []CivilDate{NewCivilDate(2026, 1, 10), NewCivilDate(2026, 1, 11)}
	for _, s := range result.Shifts {
		if s.DoctorID != "a" {
			continue
		}
		for _, b := range bridged {
			if s.Date == b {
				t.Errorf("doctor was assigned a shift on derived bridge day %s", b)
			}
		}
	}
}

func TestGenerateSchedule_UnderstaffedConflictReportedWhenRosterInsufficient(t *testing.T) {
	// A single doctor cannot cover both a day and a night slot every day
	// of the month under the rest constraints, so understaffed conflicts
	// are an expected, reported outcome rather than an error.
	doctors := []Doctor{newTestDoctor("solo", "")}

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule must never fail on understaffable input: %v", err)
	}

	found := false
	for _, c := range result.Conflicts {
		if c.Kind == ConflictUnderstaffed {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected at least one understaffed conflict for a single-doctor roster, got %+v", result.Conflicts)
	}
}

func TestGenerateSchedule_FloatingDoctorFillsGapWithNoEligibleTeamMember(t *testing.T) {
	team := Team{ID: "team-a", Order: 0}
	teamDoctor := newTestDoctor("teamed", team.ID)
	floater := newTestDoctor("floater", "")

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        []Doctor{teamDoctor, floater},
		Teams:          []Team{team},
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	floaterUsed := false
	for _, s := range result.Shifts {
		if s.DoctorID == "floater" {
			floaterUsed = true
			break
		}
	}
	if !floaterUsed {
		t.Errorf("expected the floating doctor to be used to fill slots the lone team member can't cover under rest constraints")
	}
}

func TestDetectConflicts_FlagsRestViolationOnManuallyEditedSchedule(t *testing.T) {
	doctors := []Doctor{newTestDoctor("d1", "")}
	shifts := []Shift{
		{DoctorID: "d1", Date: NewCivilDate(2026, 1, 5), Type: ShiftNight},
		// Starts the moment the night shift ends (0h rest): violates the
		// 48h night-rest rule.
		{DoctorID: "d1", Date: NewCivilDate(2026, 1, 6), Type: ShiftDay},
	}

	conflicts := DetectConflicts(shifts, doctors)
	if len(conflicts) == 0 {
		t.Fatalf("expected a rest violation conflict for a manually edited schedule")
	}
	if conflicts[0].Kind != ConflictRestViolation {
		t.Errorf("expected ConflictRestViolation, got %s", conflicts[0].Kind)
	}
}

func TestGenerateSchedule_WeeklyHoursCapNeverExceeded(t *testing.T) {
	// A lone doctor covering night shifts for a month: no rolling 7-day
	// window may exceed MaxWeeklyHours. With nights only, the 48h night
	// rest already limits the doctor to one night every third day (36h per
	// window), so this checks the window invariant rather than a case
	// where the cap itself turns an assignment away.
	doctors := []Doctor{newTestDoctor("solo", "")}

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	assigned := make(map[CivilDate]bool)
	for _, s := range result.Shifts {
		assigned[s.Date] = true
	}

	shiftHours := int(Constants.ShiftDuration.Hours())
	for _, day := range e.monthDates {
		windowStart := day.Date.AddDays(-6)
		total := 0
		for d := windowStart; !d.After(day.Date); d = d.AddDays(1) {
			if assigned[d] {
				total += shiftHours
			}
		}
		if total > Constants.MaxWeeklyHours {
			t.Fatalf("rolling 7-day window ending %s exceeds MaxWeeklyHours: %dh", day.Date, total)
		}
	}
}

// 15 doctors (3 equal teams), no leave, Jan 2026 (22 working days, 3
// shifts/day + 3/night => 31*6=186 monthly slots). Each doctor's target is
// ceil(7*22/12)=13 shifts, for 15*13=195 target shifts overall: 186 slots
// can only satisfy 6 doctors at the full 13, leaving 9 doctors capped at
// 12 shifts (144h < 154h base norm) once equalization spreads the
// shortfall evenly.
func TestGenerateSchedule_OversubscribedRosterWarnsExactlyTheShortfallCount(t *testing.T) {
	doctors := make([]Doctor, 0, 15)
	teams := []Team{
		{ID: "team-a", Order: 0},
		{ID: "team-b", Order: 1},
		{ID: "team-c", Order: 2},
	}
	for i, team := range teams {
		for j := 0; j < 5; j++ {
			doctors = append(doctors, newTestDoctor(string(rune('a'+i*5+j)), team.ID))
		}
	}

	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   3,
		ShiftsPerNight: 3,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	for _, w := range result.Warnings {
		if !errorsIsNormWarning(w) {
			t.Errorf("unexpected warning kind: %q", w)
		}
	}
	if len(result.Warnings) != 9 {
		t.Errorf("expected exactly 9 norm warnings for this roster, got %d: %v", len(result.Warnings), result.Warnings)
	}
}

func errorsIsNormWarning(key string) bool {
	return len(key) >= len(MessageKeyNormWarning) && key[:len(MessageKeyNormWarning)] == MessageKeyNormWarning
}

// A single 14-doctor team, Jan 2026 (22 working days), no leave. With
// shiftsPerDay=shiftsPerNight=3, monthly slots = 31*6=186 while the
// roster's summed target (14*ceil(154/12)=14*13=182) sits under that
// capacity, so equalization has slack to bring every doctor to their
// target with nothing left over to report as a norm warning.
func TestGenerateSchedule_NoLeaveSingleTeamMeetsNormWithoutWarnings(t *testing.T) {
	doctors, teams := buildTeamRoster(14)
	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   3,
		ShiftsPerNight: 3,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("expected zero norm warnings for an undersubscribed roster, got %d: %v", len(result.Warnings), result.Warnings)
	}
	for _, stat := range result.DoctorStats {
		if stat.TotalHours < 154 {
			t.Errorf("doctor %s: totalHours %d below the 154h base norm", stat.DoctorID, stat.TotalHours)
		}
	}
}

// Two weekday holidays (Jan 7, Jan 8) remove two working days from
// January 2026's 22, so every doctor's base norm drops from 154 to
// 7*20=140 regardless of team assignment. The matching
// CalculatePossibleLeaveDays direction is covered by
// TestCalculatePossibleLeaveDays_HolidaysLowerTheCeiling in norm_test.go.
func TestGenerateSchedule_WeekdayHolidaysLowerEveryDoctorsBaseNorm(t *testing.T) {
	teamA := Team{ID: "team-a", Order: 0}
	teamB := Team{ID: "team-b", Order: 1}
	doctors := make([]Doctor, 0, 14)
	for i := 0; i < 7; i++ {
		doctors = append(doctors, newTestDoctor(string(rune('a'+i)), teamA.ID))
	}
	for i := 0; i < 7; i++ {
		doctors = append(doctors, newTestDoctor(string(rune('h'+i)), teamB.ID))
	}
	holidays := []NationalHoliday{
		{Date: NewCivilDate(2026, 1, 7), Description: "weekday holiday"},
		{Date: NewCivilDate(2026, 1, 8), Description: "weekday holiday"},
	}

	e, err := NewEngine(Input{
		Month:            0,
		Year:             2026,
		Doctors:          doctors,
		Teams:            []Team{teamA, teamB},
		ShiftsPerDay:     2,
		ShiftsPerNight:   2,
		NationalHolidays: holidays,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	if len(result.DoctorStats) != len(doctors) {
		t.Fatalf("expected one stats entry per doctor, got %d", len(result.DoctorStats))
	}
	for _, stat := range result.DoctorStats {
		if stat.BaseNormHours != 140 {
			t.Errorf("doctor %s: baseNormHours = %d, want 140", stat.DoctorID, stat.BaseNormHours)
		}
	}
}

// Four 3-doctor teams plus two floating doctors (14 total). Two
// members of the same team each take a contiguous 7-day leave block,
// so their base norm drops by exactly one leave week's worth of hours
// relative to a doctor with no leave, and neither is ever scheduled
// inside that block.
func TestGenerateSchedule_ContiguousWeekLeaveLowersBaseNormAndBlocksAssignment(t *testing.T) {
	var teams []Team
	var doctors []Doctor
	for teamIdx := 0; teamIdx < 4; teamIdx++ {
		team := Team{ID: "team-" + string(rune('a'+teamIdx)), Order: teamIdx}
		teams = append(teams, team)
		for m := 0; m < 3; m++ {
			doctors = append(doctors, newTestDoctor(team.ID+"-d"+string(rune('1'+m)), team.ID))
		}
	}
	doctors = append(doctors, newTestDoctor("floater-1", ""), newTestDoctor("floater-2", ""))

	onLeave := []string{"team-b-d2", "team-b-d3"}
	leaveStart, leaveEnd := NewCivilDate(2026, 4, 12), NewCivilDate(2026, 4, 18)
	var leaveDays []LeaveDay
	for _, id := range onLeave {
		for d := leaveStart; !d.After(leaveEnd); d = d.AddDays(1) {
			leaveDays = append(leaveDays, LeaveDay{DoctorID: id, Date: d})
		}
	}

	e, err := NewEngine(Input{
		Month:          3,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   4,
		ShiftsPerNight: 4,
		LeaveDays:      leaveDays,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	workingDays := GetWorkingDaysInMonth(3, 2026, nil)
	wantBaseNorm := BaseNormHours(workingDays, 7)

	statsByDoctor := make(map[string]DoctorStats, len(result.DoctorStats))
	for _, stat := range result.DoctorStats {
		statsByDoctor[stat.DoctorID] = stat
	}
	for _, id := range onLeave {
		stat, ok := statsByDoctor[id]
		if !ok {
			t.Fatalf("missing stats entry for doctor %s", id)
		}
		if stat.LeaveDays != 7 {
			t.Errorf("doctor %s: leaveDays = %d, want 7", id, stat.LeaveDays)
		}
		if stat.BaseNormHours != wantBaseNorm {
			t.Errorf("doctor %s: baseNormHours = %d, want %d", id, stat.BaseNormHours, wantBaseNorm)
		}
	}
	if statsByDoctor[onLeave[0]].BaseNormHours != statsByDoctor[onLeave[1]].BaseNormHours {
		t.Errorf("the two doctors on identical leave blocks should share the same base norm")
	}

	for _, s := range result.Shifts {
		for _, id := range onLeave {
			if s.DoctorID != id {
				continue
			}
			if !s.Date.Before(leaveStart) && !s.Date.After(leaveEnd) {
				t.Errorf("doctor %s was assigned a shift on %s, inside their declared leave week", id, s.Date)
			}
		}
	}

	conflicts := DetectConflicts(result.Shifts, doctors)
	for _, c := range conflicts {
		if c.Kind == ConflictRestViolation {
			t.Errorf("engine-generated schedule contains a rest violation for doctor %s on %s", c.DoctorID, c.Date)
		}
	}
}

// A team doctor takes leave on Mar 9, 10, 12 and 13, skipping the
// Mar 11 holiday that falls between them; since every day strictly
// between the two leave halves is either a weekend or that holiday, Mar
// 11 derives as a bridge day. A separate floating doctor's plain Mar
// 16-20 leave block has no gaps to bridge.
func TestGenerateSchedule_HolidayBetweenLeaveDatesDerivesABridgeDay(t *testing.T) {
	var teams []Team
	var doctors []Doctor
	for teamIdx := 0; teamIdx < 4; teamIdx++ {
		team := Team{ID: "team-" + string(rune('a'+teamIdx)), Order: teamIdx}
		teams = append(teams, team)
		for m := 0; m < 3; m++ {
			doctors = append(doctors, newTestDoctor(team.ID+"-d"+string(rune('1'+m)), team.ID))
		}
	}
	doctors = append(doctors, newTestDoctor("floater-1", ""), newTestDoctor("floater-2", ""))

	holidays := []NationalHoliday{
		{Date: NewCivilDate(2026, 3, 5), Description: "holiday"},
		{Date: NewCivilDate(2026, 3, 11), Description: "holiday"},
	}

	teamDoctorID := "team-a-d1"
	teamLeave := []CivilDate{
		NewCivilDate(2026, 3, 9),
		NewCivilDate(2026, 3, 10),
		NewCivilDate(2026, 3, 12),
		NewCivilDate(2026, 3, 13),
	}

	floaterID := "floater-1"
	floaterLeaveStart, floaterLeaveEnd := NewCivilDate(2026, 3, 16), NewCivilDate(2026, 3, 20)

	var leaveDays []LeaveDay
	for _, d := range teamLeave {
		leaveDays = append(leaveDays, LeaveDay{DoctorID: teamDoctorID, Date: d})
	}
	for d := floaterLeaveStart; !d.After(floaterLeaveEnd); d = d.AddDays(1) {
		leaveDays = append(leaveDays, LeaveDay{DoctorID: floaterID, Date: d})
	}

	bridges := ComputeDoctorBridgeDays(teamDoctorID, leaveDays, 2, 2026, holidays)
	wantBridge := NewCivilDate(2026, 3, 11)
	if _, ok := bridges[wantBridge]; !ok || len(bridges) != 1 {
		t.Fatalf("expected bridge set {%s}, got %v", wantBridge, bridges)
	}

	e, err := NewEngine(Input{
		Month:            2,
		Year:             2026,
		Doctors:          doctors,
		Teams:            teams,
		ShiftsPerDay:     4,
		ShiftsPerNight:   4,
		LeaveDays:        leaveDays,
		NationalHolidays: holidays,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	blockedForTeamDoctor := append(append([]CivilDate{}, teamLeave...), wantBridge)
	for _, s := range result.Shifts {
		if s.DoctorID == teamDoctorID {
			for _, b := range blockedForTeamDoctor {
				if s.Date == b {
					t.Errorf("doctor %s was assigned a shift on blocked date %s", teamDoctorID, b)
				}
			}
		}
		if s.DoctorID == floaterID && !s.Date.Before(floaterLeaveStart) && !s.Date.After(floaterLeaveEnd) {
			t.Errorf("doctor %s was assigned a shift on %s, inside their declared leave block", floaterID, s.Date)
		}
	}

	conflicts := DetectConflicts(result.Shifts, doctors)
	for _, c := range conflicts {
		if c.Kind == ConflictRestViolation {
			t.Errorf("engine-generated schedule contains a rest violation for doctor %s on %s", c.DoctorID, c.Date)
		}
	}
}

func TestGenerateSchedule_DoctorStatsReflectAssignedShifts(t *testing.T) {
	doctors, teams := buildTeamRoster(6)
	e, err := NewEngine(Input{
		Month:          0,
		Year:           2026,
		Doctors:        doctors,
		Teams:          teams,
		ShiftsPerDay:   1,
		ShiftsPerNight: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := e.GenerateSchedule()
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	shiftsByDoctor := make(map[string]int)
	for _, s := range result.Shifts {
		shiftsByDoctor[s.DoctorID]++
	}

	if len(result.DoctorStats) != len(doctors) {
		t.Fatalf("expected one stats entry per doctor, got %d for %d doctors", len(result.DoctorStats), len(doctors))
	}
	for _, stat := range result.DoctorStats {
		if stat.TotalShifts != shiftsByDoctor[stat.DoctorID] {
			t.Errorf("doctor %s: stats report %d shifts but %d were assigned", stat.DoctorID, stat.TotalShifts, shiftsByDoctor[stat.DoctorID])
		}
		if stat.TotalHours != stat.TotalShifts*int(Constants.ShiftDuration.Hours()) {
			t.Errorf("doctor %s: TotalHours %d inconsistent with TotalShifts %d", stat.DoctorID, stat.TotalHours, stat.TotalShifts)
		}
	}
}
