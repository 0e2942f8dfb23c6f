package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request DTOs ---

// AddExerciseRequest links a catalog exercise into a workout.
type AddExerciseRequest struct {
	ExerciseID uint   `json:"exerciseId" binding:"required"`
	Position   int    `json:"position"`
	Notes      string `json:"notes"`
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s in path", name))
		return 0, false
	}
	return uint(id), true
}

// --- Handler Methods ---

// GetWorkoutsByDate godoc
// @Summary List workouts for a date
// @Description Returns the caller's workouts on the given calendar date with exercises and sets nested, most recently created first.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {array} domain.WorkoutView
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /workouts [get]
func (h *WorkoutHandler) GetWorkoutsByDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	date, perr := domain.ParseCalDate(c.Query("date"))
	if perr != nil {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'date' must be a YYYY-MM-DD calendar date")
		return
	}

	views, err := h.workoutService.GetWorkoutsByDate(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetWorkoutDates godoc
// @Summary List active dates
// @Description Returns the distinct dates with at least one workout, either for a month (year + zero-based month) or for an inclusive from/to range.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, e.g. 2025"
// @Param month query int false "Zero-based month index (0 = January)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} string
// @Failure 400 {object} gin.H "Invalid parameters"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /workouts/dates [get]
func (h *WorkoutHandler) GetWorkoutDates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if from := c.Query("from"); from != "" {
		fromDate, perr := domain.ParseCalDate(from)
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'from' must be a YYYY-MM-DD calendar date")
			return
		}
		toDate, perr := domain.ParseCalDate(c.Query("to"))
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'to' must be a YYYY-MM-DD calendar date")
			return
		}
		dates, err := h.workoutService.GetWorkoutDatesInRange(c.Request.Context(), userID, fromDate, toDate)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dates)
		return
	}

	year, yerr := strconv.Atoi(c.Query("year"))
	month, merr := strconv.Atoi(c.Query("month"))
	if yerr != nil || merr != nil {
		abortWithError(c, http.StatusBadRequest, "Query parameters 'year' and 'month' are required (month is zero-based)")
		return
	}

	dates, err := h.workoutService.GetWorkoutDatesForMonth(c.Request.Context(), userID, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// CreateWorkout godoc
// @Summary Create a workout
// @Description Creates a workout owned by the authenticated user.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body service.CreateWorkoutInput true "Workout details"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var in service.CreateWorkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// UpdateWorkout godoc
// @Summary Update a workout
// @Description Applies a partial update to a workout the caller owns. A workout that does not exist and a workout owned by someone else produce the same 404.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Param workout body service.UpdateWorkoutInput true "Fields to change"
// @Success 200 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in service.UpdateWorkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, workoutID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Description Deletes a workout the caller owns together with all of its exercises and sets, and returns the deleted workout.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, ok := pathID(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// AddExercise links a catalog exercise into one of the caller's workouts.
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	we, err := h.workoutService.AddExerciseToWorkout(c.Request.Context(), userID, workoutID, req.ExerciseID, req.Position, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, we)
}

// RemoveExercise unlinks an exercise (and its sets) from a workout.
func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	weID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.RemoveExerciseFromWorkout(c.Request.Context(), userID, weID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSet records a set under a workout exercise.
func (h *WorkoutHandler) AddSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	weID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in service.SetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.workoutService.AddSet(c.Request.Context(), userID, weID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// UpdateSet replaces the recorded values of a set.
func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	setID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in service.SetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.workoutService.UpdateSet(c.Request.Context(), userID, setID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// DeleteSet removes a set.
func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	setID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteSet(c.Request.Context(), userID, setID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
