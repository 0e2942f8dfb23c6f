package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fitlog/workout-app/internal/api"
	"fitlog/workout-app/internal/config"
	"fitlog/workout-app/internal/repository/postgres"
	"fitlog/workout-app/internal/service"
)

// @title Workout Log API
// @version 1.0
// @description API for logging workouts, exercises and sets, browsable by calendar date.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Info("Starting workout log server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if level, perr := log.ParseLevel(cfg.Log.Level); perr == nil {
		log.SetLevel(level)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database Connection ---
	db, err := postgres.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	log.Info("Database connection established.")

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}
	log.Info("Database schema up to date.")

	// --- Initialize Repositories ---
	userRepo := postgres.NewUserRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, workoutService, exerciseService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Error("failed to close database connection")
		}
	}

	log.Info("Server exiting.")
}
