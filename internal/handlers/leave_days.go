package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
	"github.com/vitalconnect/scheduler/internal/repository"
	schedulingsvc "github.com/vitalconnect/scheduler/internal/services/scheduling"
)

// LeaveDayHandler exposes CRUD and feasibility-validation endpoints over
// declared leave days.
type LeaveDayHandler struct {
	repo    *repository.LeaveDayRepository
	service *schedulingsvc.Service
}

// NewLeaveDayHandler creates a new leave day handler.
func NewLeaveDayHandler(repo *repository.LeaveDayRepository, service *schedulingsvc.Service) *LeaveDayHandler {
	return &LeaveDayHandler{repo: repo, service: service}
}

// ListByDoctor returns every leave day declared for a doctor.
// GET /api/v1/leave-days?doctor_id=...
func (h *LeaveDayHandler) ListByDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor_id query parameter is required"})
		return
	}

	leaveDays, err := h.repo.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leave days"})
		return
	}

	resp := make([]models.LeaveDayResponse, 0, len(leaveDays))
	for i := range leaveDays {
		resp = append(resp, leaveDays[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"leave_days": resp})
}

// Create declares a leave day for a doctor.
// POST /api/v1/leave-days
func (h *LeaveDayHandler) Create(c *gin.Context) {
	var input models.CreateLeaveDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	leave, err := h.repo.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, leave.ToResponse())
}

// Delete removes a declared leave day.
// DELETE /api/v1/leave-days/:id
func (h *LeaveDayHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave day id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrLeaveDayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete leave day"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ValidateRequest is the body for POST /leave-days/validate.
type ValidateRequest struct {
	Month          int `json:"month" binding:"required,min=1,max=12"`
	Year           int `json:"year" binding:"required"`
	ShiftsPerDay   int `json:"shifts_per_day" binding:"gte=0"`
	ShiftsPerNight int `json:"shifts_per_night" binding:"gte=0"`
	TotalLeaveDays int `json:"total_leave_days" binding:"gte=0"`
}

// Validate wraps scheduling.ValidateLeaveDays to predict feasibility of a
// proposed leave plan before a schedule is generated.
// POST /api/v1/leave-days/validate
func (h *LeaveDayHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.ValidateLeavePlan(c.Request.Context(), req.Month, req.Year, req.ShiftsPerDay, req.ShiftsPerNight, req.TotalLeaveDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate leave plan"})
		return
	}

	c.JSON(http.StatusOK, result)
}
