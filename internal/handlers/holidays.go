package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vitalconnect/scheduler/internal/models"
	"github.com/vitalconnect/scheduler/internal/repository"
)

// HolidayHandler exposes CRUD endpoints over national holidays.
type HolidayHandler struct {
	repo *repository.HolidayRepository
}

// NewHolidayHandler creates a new holiday handler.
func NewHolidayHandler(repo *repository.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{repo: repo}
}

// List returns every registered national holiday.
// GET /api/v1/holidays
func (h *HolidayHandler) List(c *gin.Context) {
	holidays, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list holidays"})
		return
	}

	resp := make([]models.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		resp = append(resp, holidays[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"holidays": resp})
}

// Create registers a national holiday.
// POST /api/v1/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	var input models.CreateHolidayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	holiday, err := h.repo.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, holiday.ToResponse())
}

// Delete removes a national holiday.
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid holiday id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrHolidayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete holiday"})
		return
	}

	c.Status(http.StatusNoContent)
}
