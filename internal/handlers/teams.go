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

// TeamHandler exposes CRUD endpoints over rotation teams.
type TeamHandler struct {
	repo *repository.TeamRepository
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(repo *repository.TeamRepository) *TeamHandler {
	return &TeamHandler{repo: repo}
}

// List returns every active team ordered by rotation Order.
// GET /api/v1/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list teams"})
		return
	}

	resp := make([]models.TeamResponse, 0, len(teams))
	for i := range teams {
		resp = append(resp, teams[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"teams": resp})
}

// Create registers a new team.
// POST /api/v1/teams
func (h *TeamHandler) Create(c *gin.Context) {
	var input models.CreateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	team, err := h.repo.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, team.ToResponse())
}

// Update applies a partial update to a team.
// PATCH /api/v1/teams/:id
func (h *TeamHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	var input models.UpdateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	team, err := h.repo.Update(c.Request.Context(), id, &input)
	if err != nil {
		writeTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, team.ToResponse())
}

// Delete removes a team.
// DELETE /api/v1/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeTeamError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeTeamError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrTeamNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process team request"})
}
