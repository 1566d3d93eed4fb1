// Package scheduling orchestrates the dependency-free scheduling engine
// against the repository layer: it loads a roster snapshot, runs
// internal/scheduling.Engine, writes the result back with a
// delete-then-insert transaction, records a ScheduleRun, fires SMS alerts
// for norm warnings, and logs the number of understaffed days.
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vitalconnect/scheduler/internal/models"
	"github.com/vitalconnect/scheduler/internal/repository"
	"github.com/vitalconnect/scheduler/internal/scheduling"
	"github.com/vitalconnect/scheduler/internal/services/notification"
)

// CacheTTL is how long a generated result stays cached in Redis after
// generation. Nothing in this service reads the cached result back;
// GET /schedules/:month/:year loads the persisted shifts.
const CacheTTL = 10 * time.Minute

const cacheKeyPrefix = "schedule:result:"

// Service orchestrates the core engine for the HTTP layer.
type Service struct {
	doctorRepo     *repository.DoctorRepository
	teamRepo       *repository.TeamRepository
	leaveRepo      *repository.LeaveDayRepository
	holidayRepo    *repository.HolidayRepository
	shiftRepo      *repository.ShiftRepository
	scheduleRunRepo *repository.ScheduleRunRepository
	redis          *redis.Client
	sms            *notification.SMSService
}

// NewService builds a scheduling orchestration service from its
// repository and cross-cutting collaborators.
func NewService(
	doctorRepo *repository.DoctorRepository,
	teamRepo *repository.TeamRepository,
	leaveRepo *repository.LeaveDayRepository,
	holidayRepo *repository.HolidayRepository,
	shiftRepo *repository.ShiftRepository,
	scheduleRunRepo *repository.ScheduleRunRepository,
	redisClient *redis.Client,
	sms *notification.SMSService,
) *Service {
	return &Service{
		doctorRepo:      doctorRepo,
		teamRepo:        teamRepo,
		leaveRepo:       leaveRepo,
		holidayRepo:     holidayRepo,
		shiftRepo:       shiftRepo,
		scheduleRunRepo: scheduleRunRepo,
		redis:           redisClient,
		sms:             sms,
	}
}

// GenerateRequest is the input to GenerateForMonth.
type GenerateRequest struct {
	Month          int // 1-indexed at this boundary; converted to 0-indexed for the engine
	Year           int
	ShiftsPerDay   int
	ShiftsPerNight int
	RequestedBy    uuid.UUID
	// Force allows regenerating a month that already has a recorded run,
	// replacing its persisted shifts.
	Force bool
}

// GenerateForMonth loads the roster snapshot for the month, runs the
// engine, persists the result and notifies affected doctors. Mirrors the
// engine's own contract: it never returns an error for scheduling
// difficulty, only for malformed input, an already-generated month
// (unless Force is set), or a failed repository read or write.
func (s *Service) GenerateForMonth(ctx context.Context, req GenerateRequest) (scheduling.ScheduleGenerationResult, error) {
	if req.Month < 1 || req.Month > 12 {
		return scheduling.ScheduleGenerationResult{}, models.ErrInvalidMonth
	}
	if req.Year < 1970 || req.Year > 2200 {
		return scheduling.ScheduleGenerationResult{}, models.ErrInvalidYear
	}

	if !req.Force {
		if _, err := s.scheduleRunRepo.LatestForMonth(ctx, req.Month, req.Year); err == nil {
			return scheduling.ScheduleGenerationResult{}, models.ErrScheduleAlreadyExists
		} else if !errors.Is(err, models.ErrScheduleRunNotFound) {
			return scheduling.ScheduleGenerationResult{}, fmt.Errorf("checking for an existing schedule run: %w", err)
		}
	}

	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("loading doctors: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("loading teams: %w", err)
	}
	leaveDays, err := s.leaveRepo.ListForMonth(ctx, req.Month, req.Year)
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("loading leave days: %w", err)
	}
	holidays, err := s.holidayRepo.ListForMonth(ctx, req.Month, req.Year)
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("loading holidays: %w", err)
	}

	input := scheduling.Input{
		Month:            req.Month - 1,
		Year:             req.Year,
		Doctors:          toEngineDoctors(doctors),
		Teams:            toEngineTeams(teams),
		ShiftsPerDay:     req.ShiftsPerDay,
		ShiftsPerNight:   req.ShiftsPerNight,
		LeaveDays:        toEngineLeaveDays(leaveDays),
		NationalHolidays: toEngineHolidays(holidays),
	}

	engine, err := scheduling.NewEngine(input)
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, err
	}

	result, err := engine.GenerateSchedule()
	if err != nil {
		return scheduling.ScheduleGenerationResult{}, err
	}

	persisted := toPersistedShifts(result.Shifts)
	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	if err := s.shiftRepo.ReplaceMonth(ctx, monthStart, monthEnd, persisted); err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("persisting shifts: %w", err)
	}

	run := &models.ScheduleRun{
		ID:            uuid.New(),
		Month:         req.Month,
		Year:          req.Year,
		RequestedBy:   req.RequestedBy,
		ConflictCount: len(result.Conflicts),
		WarningCount:  len(result.Warnings),
		ShiftCount:    len(result.Shifts),
		GeneratedAt:   time.Now(),
	}
	if err := s.scheduleRunRepo.Create(ctx, run); err != nil {
		return scheduling.ScheduleGenerationResult{}, fmt.Errorf("recording schedule run: %w", err)
	}

	s.cacheResult(ctx, req.Month, req.Year, result)
	s.notifyAffectedDoctors(ctx, doctors, req.Month, req.Year, result)

	return result, nil
}

// notifyAffectedDoctors sends a best-effort norm-warning SMS to each
// doctor below their base norm who has a mobile phone on file, and logs
// the number of understaffed days; no SMS is sent for understaffed days.
// A failed send never fails the generation call.
func (s *Service) notifyAffectedDoctors(ctx context.Context, doctors []models.Doctor, month, year int, result scheduling.ScheduleGenerationResult) {
	if s.sms == nil || !s.sms.IsConfigured() {
		return
	}

	byID := make(map[string]models.Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID.String()] = d
	}

	for _, stat := range result.DoctorStats {
		if stat.MeetsBaseNorm {
			continue
		}
		doc, ok := byID[stat.DoctorID]
		if !ok || doc.MobilePhone == nil {
			continue
		}
		msg := notification.BuildSMSMessage(&notification.ScheduleNotificationData{
			Kind:         notification.AlertNormWarning,
			Month:        month,
			Year:         year,
			DoctorName:   doc.Name,
			ScheduledHrs: stat.TotalHours,
			NormHrs:      stat.BaseNormHours,
		})
		if err := s.sms.SendSMS(ctx, *doc.MobilePhone, msg); err != nil {
			log.Printf("[scheduling] failed to send norm warning SMS to %s: %v", notification.MaskPhoneForLog(*doc.MobilePhone), err)
		}
	}

	understaffedDays := make(map[string]bool)
	for _, c := range result.Conflicts {
		if c.Kind == scheduling.ConflictUnderstaffed {
			understaffedDays[c.Date.String()] = true
		}
	}
	if len(understaffedDays) == 0 {
		return
	}
	log.Printf("[scheduling] %d understaffed day(s) in %d/%d", len(understaffedDays), month, year)
}

func (s *Service) cacheResult(ctx context.Context, month, year int, result scheduling.ScheduleGenerationResult) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	key := fmt.Sprintf("%s%d:%d", cacheKeyPrefix, month, year)
	if err := s.redis.Set(ctx, key, data, CacheTTL).Err(); err != nil {
		log.Printf("[scheduling] failed to cache result for %d/%d: %v", month, year, err)
	}
}

// ValidateLeavePlan wraps scheduling.ValidateLeaveDays with the current
// doctor count.
func (s *Service) ValidateLeavePlan(ctx context.Context, month, year, shiftsPerDay, shiftsPerNight, totalLeaveDays int) (scheduling.LeaveValidation, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return scheduling.LeaveValidation{}, err
	}
	holidays, err := s.holidayRepo.ListForMonth(ctx, month, year)
	if err != nil {
		return scheduling.LeaveValidation{}, err
	}
	return scheduling.ValidateLeaveDays(month-1, year, len(doctors), shiftsPerDay, shiftsPerNight, totalLeaveDays, toEngineHolidays(holidays)), nil
}

// Conflicts re-runs DetectConflicts over the persisted shift list for a
// month, supporting post-edit re-validation.
func (s *Service) Conflicts(ctx context.Context, month, year int) ([]scheduling.ScheduleConflict, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	persisted, err := s.shiftRepo.ListForMonth(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return scheduling.DetectConflicts(toEngineShifts(persisted), toEngineDoctors(doctors)), nil
}
