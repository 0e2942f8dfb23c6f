package service

import (
	"context"
	"errors"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	// ErrUnauthenticated is returned when an operation is invoked without a
	// resolved caller identity. It is checked before any storage access.
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrWorkoutNotFound deliberately merges "does not exist" and "belongs
	// to another user": the two cases are externally indistinguishable so
	// the existence of other users' workouts is never revealed.
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrSetNotFound             = errors.New("set not found")

	ErrExerciseAlreadyInWorkout = errors.New("exercise is already part of this workout")
)

// WorkoutService is the ownership-scoped read and write layer over the
// workout hierarchy. Caller identity is an explicit parameter on every
// operation; it is resolved once at the request boundary and threaded
// through rather than read from ambient state.
type WorkoutService interface {
	GetWorkoutsByDate(ctx context.Context, userID string, date domain.CalDate) ([]domain.WorkoutView, error)
	GetWorkoutDatesForMonth(ctx context.Context, userID string, year, month0 int) ([]domain.CalDate, error)
	GetWorkoutDatesInRange(ctx context.Context, userID string, from, to domain.CalDate) ([]domain.CalDate, error)

	CreateWorkout(ctx context.Context, userID string, in CreateWorkoutInput) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, userID string, workoutID uint, in UpdateWorkoutInput) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID string, workoutID uint) (*domain.Workout, error)

	AddExerciseToWorkout(ctx context.Context, userID string, workoutID, exerciseID uint, position int, notes string) (*domain.WorkoutExercise, error)
	RemoveExerciseFromWorkout(ctx context.Context, userID string, workoutExerciseID uint) error

	AddSet(ctx context.Context, userID string, workoutExerciseID uint, in SetInput) (*domain.Set, error)
	UpdateSet(ctx context.Context, userID string, setID uint, in SetInput) (*domain.Set, error)
	DeleteSet(ctx context.Context, userID string, setID uint) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// GetWorkoutsByDate returns the caller's workouts on the given date, most
// recently created first, each with its exercises and sets nested. A date
// with no workouts yields an empty slice.
func (s *workoutService) GetWorkoutsByDate(ctx context.Context, userID string, date domain.CalDate) ([]domain.WorkoutView, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	workouts, err := s.workoutRepo.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	rows, err := s.workoutRepo.GetRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	return domain.GroupWorkoutRows(workouts, rows), nil
}

// GetWorkoutDatesForMonth returns the distinct dates in the given month on
// which the caller has at least one workout. month0 is zero-based. The month
// bounds are computed from calendar fields only, so the result never shifts
// across a month boundary for hosts away from UTC.
func (s *workoutService) GetWorkoutDatesForMonth(ctx context.Context, userID string, year, month0 int) ([]domain.CalDate, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if month0 < 0 || month0 > 11 {
		return nil, invalidf("month must be between 0 and 11")
	}
	first, last := domain.MonthRange(year, month0)
	return s.GetWorkoutDatesInRange(ctx, userID, first, last)
}

// GetWorkoutDatesInRange is the date-range generalization of
// GetWorkoutDatesForMonth; both bounds are inclusive.
func (s *workoutService) GetWorkoutDatesInRange(ctx context.Context, userID string, from, to domain.CalDate) ([]domain.CalDate, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if to.Before(from) {
		return nil, invalidf("range end cannot be before range start")
	}
	dates, err := s.workoutRepo.DatesInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []domain.CalDate{}
	}
	return dates, nil
}

// CreateWorkout inserts a new workout owned by the caller. The owner is
// always the authenticated user id, never client-supplied input.
func (s *workoutService) CreateWorkout(ctx context.Context, userID string, in CreateWorkoutInput) (*domain.Workout, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	date, verr := validateCreateWorkout(in)
	if verr != nil {
		return nil, verr
	}
	workout := &domain.Workout{
		OwnerUserID:     userID,
		Date:            date,
		Name:            in.Name,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// UpdateWorkout applies a partial update to a workout the caller owns.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID string, workoutID uint, in UpdateWorkoutInput) (*domain.Workout, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if verr := validateUpdateWorkout(in); verr != nil {
		return nil, verr
	}
	workout, err := s.workoutRepo.GetByID(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		workout.Name = *in.Name
	}
	if in.Date != nil {
		date, perr := domain.ParseCalDate(*in.Date)
		if perr != nil {
			return nil, invalidf("date must be a valid YYYY-MM-DD calendar date")
		}
		workout.Date = date
	}
	if in.DurationMinutes != nil {
		workout.DurationMinutes = in.DurationMinutes
	}
	if in.Notes != nil {
		workout.Notes = *in.Notes
	}
	if err := s.workoutRepo.Update(ctx, userID, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes a workout the caller owns together with all of its
// exercises and sets. The cascade is atomic: either the whole subtree goes
// or none of it does.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID string, workoutID uint) (*domain.Workout, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	workout, err := s.workoutRepo.Delete(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// AddExerciseToWorkout links a catalog exercise into a workout the caller
// owns. The same exercise cannot appear twice in one workout.
func (s *workoutService) AddExerciseToWorkout(ctx context.Context, userID string, workoutID, exerciseID uint, position int, notes string) (*domain.WorkoutExercise, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if verr := validateNotes(notes); verr != nil {
		return nil, verr
	}
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	we := &domain.WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Position:   position,
		Notes:      notes,
	}
	if err := s.workoutRepo.AddExercise(ctx, userID, we); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrExerciseAlreadyInWorkout
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return we, nil
}

// RemoveExerciseFromWorkout unlinks an exercise from a workout the caller
// owns, deleting its sets with it.
func (s *workoutService) RemoveExerciseFromWorkout(ctx context.Context, userID string, workoutExerciseID uint) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.workoutRepo.RemoveExercise(ctx, userID, workoutExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutExerciseNotFound
		}
		return err
	}
	return nil
}

// AddSet records a set under a workout exercise the caller owns through the
// Set -> WorkoutExercise -> Workout chain.
func (s *workoutService) AddSet(ctx context.Context, userID string, workoutExerciseID uint, in SetInput) (*domain.Set, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if verr := validateSet(in); verr != nil {
		return nil, verr
	}
	set := &domain.Set{
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         in.SetNumber,
		IsBodyweight:      in.IsBodyweight,
		Weight:            in.Weight,
		Reps:              in.Reps,
		RPE:               in.RPE,
		Notes:             in.Notes,
	}
	if err := s.workoutRepo.AddSet(ctx, userID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}
	return set, nil
}

// UpdateSet replaces the recorded values of a set the caller owns.
func (s *workoutService) UpdateSet(ctx context.Context, userID string, setID uint, in SetInput) (*domain.Set, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if verr := validateSet(in); verr != nil {
		return nil, verr
	}
	set, err := s.workoutRepo.GetSet(ctx, userID, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	set.SetNumber = in.SetNumber
	set.IsBodyweight = in.IsBodyweight
	set.Weight = in.Weight
	set.Reps = in.Reps
	set.RPE = in.RPE
	set.Notes = in.Notes
	if err := s.workoutRepo.UpdateSet(ctx, userID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return set, nil
}

// DeleteSet removes a set the caller owns.
func (s *workoutService) DeleteSet(ctx context.Context, userID string, setID uint) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.workoutRepo.DeleteSet(ctx, userID, setID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSetNotFound
		}
		return err
	}
	return nil
}
