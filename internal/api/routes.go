package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlog/workout-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		// --- Exercise Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			// GET /api/v1/workouts?date=2025-09-01
			workoutGroup.GET("", workoutHandler.GetWorkoutsByDate)
			// GET /api/v1/workouts/dates?year=2025&month=8 (month zero-based)
			// or ?from=2025-08-01&to=2025-09-15
			workoutGroup.GET("/dates", workoutHandler.GetWorkoutDates)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.PATCH("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			// POST /api/v1/workouts/{id}/exercises
			workoutGroup.POST("/:id/exercises", workoutHandler.AddExercise)
		}

		// --- Workout Exercise / Set Routes ---
		weGroup := protected.Group("/workout-exercises")
		{
			weGroup.DELETE("/:id", workoutHandler.RemoveExercise)
			weGroup.POST("/:id/sets", workoutHandler.AddSet)
		}

		setGroup := protected.Group("/sets")
		{
			setGroup.PATCH("/:id", workoutHandler.UpdateSet)
			setGroup.DELETE("/:id", workoutHandler.DeleteSet)
		}
	}
}
