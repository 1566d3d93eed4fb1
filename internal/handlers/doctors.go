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

// DoctorHandler exposes CRUD endpoints over the doctor roster.
type DoctorHandler struct {
	repo *repository.DoctorRepository
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(repo *repository.DoctorRepository) *DoctorHandler {
	return &DoctorHandler{repo: repo}
}

// List returns every active doctor.
// GET /api/v1/doctors
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list doctors"})
		return
	}

	resp := make([]models.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		resp = append(resp, doctors[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"doctors": resp})
}

// Create registers a new doctor.
// POST /api/v1/doctors
func (h *DoctorHandler) Create(c *gin.Context) {
	var input models.CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	if input.MobilePhone != nil && !models.ValidateMobilePhone(*input.MobilePhone) {
		writeDoctorError(c, models.ErrInvalidPhoneNumber)
		return
	}

	doctor, err := h.repo.Create(c.Request.Context(), &input)
	if err != nil {
		writeDoctorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doctor.ToResponse())
}

// GetByID returns a single doctor.
// GET /api/v1/doctors/:id
func (h *DoctorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}

	doctor, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeDoctorError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor.ToResponse())
}

// Update applies a partial update to a doctor.
// PATCH /api/v1/doctors/:id
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}

	var input models.UpdateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if input.MobilePhone != nil && !models.ValidateMobilePhone(*input.MobilePhone) {
		writeDoctorError(c, models.ErrInvalidPhoneNumber)
		return
	}

	doctor, err := h.repo.Update(c.Request.Context(), id, &input)
	if err != nil {
		writeDoctorError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor.ToResponse())
}

// Delete removes a doctor.
// DELETE /api/v1/doctors/:id
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeDoctorError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeDoctorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDoctorAlreadyOnTeam),
		errors.Is(err, models.ErrInvalidPhoneNumber),
		errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process doctor request"})
	}
}
