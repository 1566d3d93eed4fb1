package scheduling

// engineState is the per-invocation mutable state the assignment loop
// carries. It is built fresh inside GenerateSchedule and discarded on
// return; the Engine and the static operations never touch it (Design
// Note: explicit per-invocation state struct, not instance fields).
type engineState struct {
	lastShift      map[string]Shift   // doctorID -> most recent assigned shift
	shiftCount     map[string]int     // doctorID -> shifts assigned so far
	assignedDates  map[string]map[CivilDate]struct{}
	recentShifts   map[string][]Shift // doctorID -> chronological assigned shifts, for weekly-hours window
	teamCursor     int                // rotates across teamOrder between slots
	bridgeDays     map[string]map[CivilDate]struct{} // doctorID -> bridge day set
	leaveDates     map[string]map[CivilDate]struct{} // doctorID -> declared leave dates (target month only)
	targetShifts   map[string]int
}

func newEngineState() *engineState {
	return &engineState{
		lastShift:     make(map[string]Shift),
		shiftCount:    make(map[string]int),
		assignedDates: make(map[string]map[CivilDate]struct{}),
		recentShifts:  make(map[string][]Shift),
	}
}

// GenerateSchedule runs the full Calendar -> Norm Calculator -> Bridge-day
// Deriver -> Assignment Loop -> Validator/Reporter pipeline for this
// engine's input and returns the result. It never fails on valid input:
// infeasible slots become understaffed conflicts and unmet norms become
// warnings in the returned result.
func (e *Engine) GenerateSchedule() (ScheduleGenerationResult, error) {
	state := newEngineState()

	workingDays := GetWorkingDaysInMonth(e.input.Month, e.input.Year, e.input.NationalHolidays)

	leaveCountByDoctor := make(map[string]int)
	state.leaveDates = make(map[string]map[CivilDate]struct{})
	for _, d := range e.input.Doctors {
		state.leaveDates[d.ID] = make(map[CivilDate]struct{})
	}
	if len(e.monthDates) > 0 {
		monthStart := e.monthDates[0].Date
		monthEnd := e.monthDates[len(e.monthDates)-1].Date
		for _, l := range e.input.LeaveDays {
			if _, known := state.leaveDates[l.DoctorID]; !known {
				continue
			}
			if l.Date.Before(monthStart) || l.Date.After(monthEnd) {
				continue
			}
			if _, already := state.leaveDates[l.DoctorID][l.Date]; already {
				continue // duplicates on the same date are idempotent
			}
			state.leaveDates[l.DoctorID][l.Date] = struct{}{}
			leaveCountByDoctor[l.DoctorID]++
		}
	}

	state.bridgeDays = make(map[string]map[CivilDate]struct{}, len(e.input.Doctors))
	state.targetShifts = make(map[string]int, len(e.input.Doctors))
	for _, d := range e.input.Doctors {
		state.bridgeDays[d.ID] = ComputeDoctorBridgeDays(d.ID, e.input.LeaveDays, e.input.Month, e.input.Year, e.input.NationalHolidays)
		baseNorm := BaseNormHours(workingDays, leaveCountByDoctor[d.ID])
		state.targetShifts[d.ID] = TargetShifts(baseNorm)
	}

	var shifts []Shift
	for _, day := range e.monthDates {
		for i := 0; i < e.input.ShiftsPerDay; i++ {
			if s, ok := e.assignSlot(state, day.Date, ShiftDay); ok {
				shifts = append(shifts, s)
			}
		}
		for i := 0; i < e.input.ShiftsPerNight; i++ {
			if s, ok := e.assignSlot(state, day.Date, ShiftNight); ok {
				shifts = append(shifts, s)
			}
		}
	}

	conflicts := e.detectConflictsInternal(shifts)
	warnings, stats := e.buildStatsAndWarnings(shifts, workingDays, leaveCountByDoctor)

	return ScheduleGenerationResult{
		Shifts:      shifts,
		Conflicts:   conflicts,
		Warnings:    warnings,
		DoctorStats: stats,
	}, nil
}

// assignSlot fills a single day/night slot on date d following the
// priority order: eligibility filter -> team rotation -> in-team
// equalization -> floating fallback -> failure to fill.
func (e *Engine) assignSlot(state *engineState, d CivilDate, shiftType ShiftType) (Shift, bool) {
	capLifted := e.allDoctorsReachedTarget(state)

	activeTeams := make([]Team, 0, len(e.teamOrder))
	for _, t := range e.teamOrder {
		if e.teamHasEligibleMember(state, t.ID, d, shiftType, capLifted) {
			activeTeams = append(activeTeams, t)
		}
	}

	if len(activeTeams) > 0 {
		team := e.nextActiveTeam(state, activeTeams)
		if candidate, ok := e.bestCandidateInTeam(state, team.ID, d, shiftType, capLifted); ok {
			return e.commitAssignment(state, candidate, d, shiftType), true
		}
	}

	if candidate, ok := e.bestFloatingCandidate(state, d, shiftType, capLifted); ok {
		return e.commitAssignment(state, candidate, d, shiftType), true
	}

	return Shift{}, false
}

// nextActiveTeam rotates a cursor across the active teams so successive
// slots prefer distinct teams when possible, instead of always picking
// the lowest-Order active team.
func (e *Engine) nextActiveTeam(state *engineState, activeTeams []Team) Team {
	if len(e.teamOrder) == 0 {
		return Team{}
	}
	for attempt := 0; attempt < len(e.teamOrder); attempt++ {
		idx := (state.teamCursor + attempt) % len(e.teamOrder)
		candidateID := e.teamOrder[idx].ID
		for _, t := range activeTeams {
			if t.ID == candidateID {
				state.teamCursor = (idx + 1) % len(e.teamOrder)
				return t
			}
		}
	}
	// Should not be reached given activeTeams is a subset of teamOrder.
	return activeTeams[0]
}

func (e *Engine) teamHasEligibleMember(state *engineState, teamID string, d CivilDate, shiftType ShiftType, capLifted bool) bool {
	for _, doc := range e.input.Doctors {
		tid, ok := doc.Affiliation.TeamID()
		if !ok || tid != teamID {
			continue
		}
		if e.isEligible(state, doc, d, shiftType, capLifted) {
			return true
		}
	}
	return false
}

// bestCandidateInTeam orders eligible team members by (fewest assigned
// shifts so far, then declared input order) and returns the first.
func (e *Engine) bestCandidateInTeam(state *engineState, teamID string, d CivilDate, shiftType ShiftType, capLifted bool) (Doctor, bool) {
	var best Doctor
	found := false
	for _, doc := range e.input.Doctors {
		tid, ok := doc.Affiliation.TeamID()
		if !ok || tid != teamID {
			continue
		}
		if !e.isEligible(state, doc, d, shiftType, capLifted) {
			continue
		}
		if !found || state.shiftCount[doc.ID] < state.shiftCount[best.ID] {
			best = doc
			found = true
		}
	}
	return best, found
}

// bestFloatingCandidate considers floating doctors in declared order with
// the same equalization tie-breaker, used when no team member anywhere is
// eligible.
func (e *Engine) bestFloatingCandidate(state *engineState, d CivilDate, shiftType ShiftType, capLifted bool) (Doctor, bool) {
	var best Doctor
	found := false
	for _, doc := range e.input.Doctors {
		if !doc.Affiliation.IsFloating() {
			continue
		}
		if !e.isEligible(state, doc, d, shiftType, capLifted) {
			continue
		}
		if !found || state.shiftCount[doc.ID] < state.shiftCount[best.ID] {
			best = doc
			found = true
		}
	}
	return best, found
}

func (e *Engine) allDoctorsReachedTarget(state *engineState) bool {
	for _, doc := range e.input.Doctors {
		if state.shiftCount[doc.ID] < state.targetShifts[doc.ID] {
			return false
		}
	}
	return true
}

// isEligible applies the full eligibility filter: not on leave, not a
// bridge day, rest constraint satisfied, not already assigned that date,
// fairness cap, and the weekly hour cap.
func (e *Engine) isEligible(state *engineState, doc Doctor, d CivilDate, shiftType ShiftType, capLifted bool) bool {
	if _, onLeave := state.leaveDates[doc.ID][d]; onLeave {
		return false
	}
	if _, bridged := state.bridgeDays[doc.ID][d]; bridged {
		return false
	}
	if dates, ok := state.assignedDates[doc.ID]; ok {
		if _, already := dates[d]; already {
			return false
		}
	}
	if !capLifted && state.shiftCount[doc.ID] >= state.targetShifts[doc.ID] {
		return false
	}
	if !e.restConstraintSatisfied(state, doc.ID, d, shiftType) {
		return false
	}
	if !e.weeklyHoursCapSatisfied(state, doc.ID, d) {
		return false
	}
	return true
}

// restConstraintSatisfied checks the candidate shift against the
// doctor's last assigned shift: >= DayShiftRest after a day shift, >=
// NightShiftRest after a night shift.
func (e *Engine) restConstraintSatisfied(state *engineState, doctorID string, d CivilDate, shiftType ShiftType) bool {
	prev, ok := state.lastShift[doctorID]
	if !ok {
		return true
	}

	_, prevEnd := prev.StartEnd()
	candidateStart, _ := ShiftEndpoints(d, shiftType)

	elapsed := prevEnd.HoursUntil(candidateStart)

	var required float64
	switch prev.Type {
	case ShiftDay:
		required = Constants.DayShiftRest.Hours()
	case ShiftNight:
		required = Constants.NightShiftRest.Hours()
	}

	return elapsed >= required
}

// weeklyHoursCapSatisfied reports whether adding the candidate shift on d
// would keep the doctor's total hours within MaxWeeklyHours over the
// rolling 7-day window ending on d. The cap is a hard constraint, not
// advisory.
func (e *Engine) weeklyHoursCapSatisfied(state *engineState, doctorID string, d CivilDate) bool {
	windowStart := d.AddDays(-6)
	shiftHours := int(Constants.ShiftDuration.Hours())
	total := shiftHours // the candidate shift itself

	for _, s := range state.recentShifts[doctorID] {
		if !s.Date.Before(windowStart) && !s.Date.After(d) {
			total += shiftHours
		}
	}

	return total <= Constants.MaxWeeklyHours
}

func (e *Engine) commitAssignment(state *engineState, doc Doctor, d CivilDate, shiftType ShiftType) Shift {
	s := Shift{DoctorID: doc.ID, Date: d, Type: shiftType}

	state.lastShift[doc.ID] = s
	state.shiftCount[doc.ID]++
	if state.assignedDates[doc.ID] == nil {
		state.assignedDates[doc.ID] = make(map[CivilDate]struct{})
	}
	state.assignedDates[doc.ID][d] = struct{}{}
	state.recentShifts[doc.ID] = append(state.recentShifts[doc.ID], s)

	return s
}
