package postgres

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fitlog/workout-app/internal/domain"
)

// Connect opens the Postgres connection pool. Startup often races the
// database container coming up, so the dial is retried with backoff.
func Connect(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					return db, nil
				}
			}
		}
		log.WithError(err).Warnf("database connection attempt %d failed", attempt)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

// Migrate creates or updates the schema for all persistent entities. Order
// matters: parents before children so the foreign keys can be created.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Exercise{},
		&domain.Workout{},
		&domain.WorkoutExercise{},
		&domain.Set{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}
	return nil
}
