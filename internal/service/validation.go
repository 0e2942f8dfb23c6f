package service

import (
	"fmt"

	"fitlog/workout-app/internal/domain"
)

const (
	maxNameLength  = 100
	maxNotesLength = 1000
)

// ValidationError reports the first input rule a request violated. It is
// raised before any storage access and is distinct from the merged
// not-found/unauthorized errors and from authentication failures.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CreateWorkoutInput is the raw input for creating a workout. The owner is
// never part of it; it is taken from the authenticated caller.
type CreateWorkoutInput struct {
	Name            string `json:"name"`
	Date            string `json:"date" binding:"required"`
	DurationMinutes *int   `json:"durationMinutes"`
	Notes           string `json:"notes"`
}

// UpdateWorkoutInput is a partial update: nil fields are left unchanged.
type UpdateWorkoutInput struct {
	Name            *string `json:"name"`
	Date            *string `json:"date"`
	DurationMinutes *int    `json:"durationMinutes"`
	Notes           *string `json:"notes"`
}

// SetInput is the raw input for creating or updating a set.
type SetInput struct {
	SetNumber    int      `json:"setNumber" binding:"required"`
	IsBodyweight bool     `json:"isBodyweight"`
	Weight       *float64 `json:"weight"`
	Reps         int      `json:"reps" binding:"required"`
	RPE          *int     `json:"rpe"`
	Notes        string   `json:"notes"`
}

func validateName(name string) *ValidationError {
	if len(name) > maxNameLength {
		return invalidf("workout name must be at most %d characters", maxNameLength)
	}
	return nil
}

func validateNotes(notes string) *ValidationError {
	if len(notes) > maxNotesLength {
		return invalidf("notes must be at most %d characters", maxNotesLength)
	}
	return nil
}

func validateDuration(minutes *int) *ValidationError {
	if minutes != nil && *minutes <= 0 {
		return invalidf("duration must be a positive number of minutes")
	}
	return nil
}

func validateCreateWorkout(in CreateWorkoutInput) (domain.CalDate, *ValidationError) {
	if err := validateName(in.Name); err != nil {
		return domain.CalDate{}, err
	}
	if err := validateDuration(in.DurationMinutes); err != nil {
		return domain.CalDate{}, err
	}
	if err := validateNotes(in.Notes); err != nil {
		return domain.CalDate{}, err
	}
	date, err := domain.ParseCalDate(in.Date)
	if err != nil {
		return domain.CalDate{}, invalidf("date must be a valid YYYY-MM-DD calendar date")
	}
	return date, nil
}

func validateUpdateWorkout(in UpdateWorkoutInput) *ValidationError {
	if in.Name != nil {
		if *in.Name == "" {
			return invalidf("workout name cannot be empty")
		}
		if err := validateName(*in.Name); err != nil {
			return err
		}
	}
	if err := validateDuration(in.DurationMinutes); err != nil {
		return err
	}
	if in.Notes != nil {
		if err := validateNotes(*in.Notes); err != nil {
			return err
		}
	}
	if in.Date != nil {
		if _, err := domain.ParseCalDate(*in.Date); err != nil {
			return invalidf("date must be a valid YYYY-MM-DD calendar date")
		}
	}
	return nil
}

func validateSet(in SetInput) *ValidationError {
	if in.SetNumber <= 0 {
		return invalidf("set number must be positive")
	}
	if in.Reps <= 0 {
		return invalidf("reps must be positive")
	}
	if in.Weight != nil && *in.Weight < 0 {
		return invalidf("weight cannot be negative")
	}
	if in.RPE != nil && (*in.RPE < 1 || *in.RPE > 10) {
		return invalidf("rpe must be between 1 and 10")
	}
	if err := validateNotes(in.Notes); err != nil {
		return err
	}
	return nil
}
