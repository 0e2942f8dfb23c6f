package repository

import (
	"context"

	"fitlog/workout-app/internal/domain"
)

// Error constants for the repository layer. Services translate these into
// their own error taxonomy; handlers never see them directly.
var (
	ErrNotFound   = RepositoryError("not found")
	ErrDuplicate  = RepositoryError("duplicate row")
	ErrRestricted = RepositoryError("row is still referenced")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ExerciseRepository defines the interface for the global exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uint) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	// Delete removes a catalog entry. Returns ErrRestricted while any
	// workout still references the exercise.
	Delete(ctx context.Context, id uint) error
}

// WorkoutRepository defines the interface for workouts and their children.
// Every method that touches existing rows takes the owner's user id and
// scopes the underlying query with it, so a caller can never read or mutate
// another user's rows; a miss for either reason is the same ErrNotFound.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	GetByID(ctx context.Context, ownerUserID string, id uint) (*domain.Workout, error)
	GetByDate(ctx context.Context, ownerUserID string, date domain.CalDate) ([]domain.Workout, error)
	// GetRows returns the flat joined rows (exercises left-joined to sets)
	// for the given workout ids, ordered by workout, position, set number.
	GetRows(ctx context.Context, workoutIDs []uint) ([]domain.WorkoutRow, error)
	// DatesInRange returns the distinct ascending dates in [from, to] on
	// which the owner has at least one workout.
	DatesInRange(ctx context.Context, ownerUserID string, from, to domain.CalDate) ([]domain.CalDate, error)
	Update(ctx context.Context, ownerUserID string, workout *domain.Workout) error
	// Delete removes the workout and, in the same transaction, all of its
	// workout-exercise rows and their sets.
	Delete(ctx context.Context, ownerUserID string, id uint) (*domain.Workout, error)

	AddExercise(ctx context.Context, ownerUserID string, we *domain.WorkoutExercise) error
	RemoveExercise(ctx context.Context, ownerUserID string, workoutExerciseID uint) error
	GetWorkoutExercise(ctx context.Context, ownerUserID string, workoutExerciseID uint) (*domain.WorkoutExercise, error)

	AddSet(ctx context.Context, ownerUserID string, set *domain.Set) error
	UpdateSet(ctx context.Context, ownerUserID string, set *domain.Set) error
	DeleteSet(ctx context.Context, ownerUserID string, setID uint) error
	GetSet(ctx context.Context, ownerUserID string, setID uint) (*domain.Set, error)
}
