package service

import (
	"context"
	"errors"
	"strings"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseAlreadyExists = errors.New("exercise with this name already exists")
	// ErrExerciseInUse is a referential-integrity rejection: the catalog
	// entry is still referenced by at least one workout.
	ErrExerciseInUse = errors.New("exercise is referenced by existing workouts")
)

// ExerciseService manages the global exercise catalog. Catalog entries are
// shared across users; workout flows only reference them and never mutate
// them.
type ExerciseService interface {
	CreateExercise(ctx context.Context, name, description string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID uint) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID uint) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// CreateExercise adds a catalog entry. If an entry with the same name
// already exists it is returned as-is, so callers may create exercises on
// first reference without checking beforehand.
func (s *exerciseService) CreateExercise(ctx context.Context, name, description string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("exercise name is required")
	}
	if len(name) > maxNameLength {
		return nil, invalidf("exercise name must be at most %d characters", maxNameLength)
	}

	exercise := &domain.Exercise{Name: name, Description: description}
	err := s.exerciseRepo.Create(ctx, exercise)
	if errors.Is(err, repository.ErrDuplicate) {
		return s.exerciseRepo.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

// GetExerciseByID retrieves a single catalog entry.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID uint) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises returns the whole catalog ordered by name.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// DeleteExercise removes a catalog entry. The delete is blocked while any
// workout still references the exercise.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID uint) error {
	err := s.exerciseRepo.Delete(ctx, exerciseID)
	switch {
	case errors.Is(err, repository.ErrRestricted):
		return ErrExerciseInUse
	case errors.Is(err, repository.ErrNotFound):
		return ErrExerciseNotFound
	}
	return err
}
