package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/middleware"
	"github.com/vitalconnect/scheduler/internal/models"
	"github.com/vitalconnect/scheduler/internal/repository"
	"github.com/vitalconnect/scheduler/internal/scheduling"
	schedulingsvc "github.com/vitalconnect/scheduler/internal/services/scheduling"
)

// ScheduleHandler drives the scheduling engine from the HTTP layer:
// generation, retrieval of an already-generated month, and post-edit
// conflict re-validation.
type ScheduleHandler struct {
	service            *schedulingsvc.Service
	shiftRepo          *repository.ShiftRepository
	defaultShiftsDay   int
	defaultShiftsNight int
}

// NewScheduleHandler creates a new schedule handler. defaultShiftsPerDay
// and defaultShiftsPerNight fill in a generate request that omits them.
func NewScheduleHandler(service *schedulingsvc.Service, shiftRepo *repository.ShiftRepository, defaultShiftsPerDay, defaultShiftsPerNight int) *ScheduleHandler {
	return &ScheduleHandler{
		service:            service,
		shiftRepo:          shiftRepo,
		defaultShiftsDay:   defaultShiftsPerDay,
		defaultShiftsNight: defaultShiftsPerNight,
	}
}

// GenerateRequest is the body of POST /schedules/generate. ShiftsPerDay
// and ShiftsPerNight fall back to the configured default slot counts
// when omitted or zero, so a request cannot ask for zero slots of
// either kind.
type GenerateRequest struct {
	Month          int  `json:"month" binding:"required,min=1,max=12"`
	Year           int  `json:"year" binding:"required"`
	ShiftsPerDay   int  `json:"shifts_per_day" binding:"gte=0"`
	ShiftsPerNight int  `json:"shifts_per_night" binding:"gte=0"`
	Force          bool `json:"force"` // regenerate a month that already has a recorded run
}

// Generate runs the engine for a month and persists the result.
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var requestedBy uuid.UUID
	if claims, ok := middleware.GetUserClaims(c); ok {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			requestedBy = id
		}
	}

	shiftsPerDay := req.ShiftsPerDay
	if shiftsPerDay == 0 {
		shiftsPerDay = h.defaultShiftsDay
	}
	shiftsPerNight := req.ShiftsPerNight
	if shiftsPerNight == 0 {
		shiftsPerNight = h.defaultShiftsNight
	}

	result, err := h.service.GenerateForMonth(c.Request.Context(), schedulingsvc.GenerateRequest{
		Month:          req.Month,
		Year:           req.Year,
		ShiftsPerDay:   shiftsPerDay,
		ShiftsPerNight: shiftsPerNight,
		RequestedBy:    requestedBy,
		Force:          req.Force,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidMonth), errors.Is(err, models.ErrInvalidYear):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrScheduleAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, toGenerationResponse(result))
}

// GetForMonth returns the persisted shifts for an already-generated month.
// Conflicts come from GetConflicts; doctor stats are not returned.
// GET /api/v1/schedules/:month/:year
func (h *ScheduleHandler) GetForMonth(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	shifts, err := h.shiftRepo.ListForMonth(c.Request.Context(), monthStart, monthEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shifts"})
		return
	}

	resp := make([]models.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		resp = append(resp, shifts[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "shifts": resp})
}

// GetConflicts re-runs DetectConflicts over the persisted shift list.
// GET /api/v1/schedules/:month/:year/conflicts
func (h *ScheduleHandler) GetConflicts(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	conflicts, err := h.service.Conflicts(c.Request.Context(), month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to detect conflicts"})
		return
	}

	out := make([]gin.H, 0, len(conflicts))
	for _, cf := range conflicts {
		out = append(out, gin.H{
			"kind":        cf.Kind,
			"date":        cf.Date.String(),
			"doctor_id":   cf.DoctorID,
			"message_key": cf.MessageKey,
		})
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "conflicts": out})
}

func parseMonthYear(c *gin.Context) (month, year int, ok bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	year, err = strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	return month, year, true
}

// toGenerationResponse renders a ScheduleGenerationResult at the HTTP
// boundary. The engine's message keys are passed through opaque; it is
// the caller's job to translate them for display.
func toGenerationResponse(result scheduling.ScheduleGenerationResult) gin.H {
	shifts := make([]gin.H, 0, len(result.Shifts))
	for _, s := range result.Shifts {
		start, end := s.StartEnd()
		shifts = append(shifts, gin.H{
			"doctor_id":  s.DoctorID,
			"shift_date": s.Date.String(),
			"shift_type": s.Type,
			"start_time": fmt.Sprintf("%02d:00", start.Hour),
			"end_time":   fmt.Sprintf("%02d:00", end.Hour),
		})
	}

	conflicts := make([]gin.H, 0, len(result.Conflicts))
	for _, cf := range result.Conflicts {
		conflicts = append(conflicts, gin.H{
			"kind":        cf.Kind,
			"date":        cf.Date.String(),
			"doctor_id":   cf.DoctorID,
			"message_key": cf.MessageKey,
		})
	}

	stats := make([]gin.H, 0, len(result.DoctorStats))
	for _, st := range result.DoctorStats {
		stats = append(stats, gin.H{
			"doctor_id":       st.DoctorID,
			"total_hours":     st.TotalHours,
			"total_shifts":    st.TotalShifts,
			"day_shifts":      st.DayShifts,
			"night_shifts":    st.NightShifts,
			"leave_days":      st.LeaveDays,
			"base_norm_hours": st.BaseNormHours,
			"meets_base_norm": st.MeetsBaseNorm,
		})
	}

	return gin.H{
		"shifts":       shifts,
		"conflicts":    conflicts,
		"warnings":     result.Warnings,
		"doctor_stats": stats,
	}
}
