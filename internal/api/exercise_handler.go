package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlog/workout-app/internal/service"
)

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for creating a catalog entry.
type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateExercise godoc
// @Summary Create a catalog exercise
// @Description Adds an exercise to the shared catalog. If one with the same name already exists it is returned instead.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListExercises returns the whole catalog.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns a single catalog entry.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise removes a catalog entry; blocked with 409 while any workout
// still references it.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
