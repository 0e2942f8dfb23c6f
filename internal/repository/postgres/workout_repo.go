package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

// gormWorkoutRepository implements repository.WorkoutRepository. Every query
// against existing rows carries the owner predicate; a row that exists but
// belongs to someone else is indistinguishable from one that does not exist.
type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new workout repository backed by Postgres.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *gormWorkoutRepository) GetByID(ctx context.Context, ownerUserID string, id uint) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).
		First(&workout, "id = ? AND owner_user_id = ?", id, ownerUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// GetByDate returns the owner's workouts on the given date, most recently
// created first. The id is a tie-break for rows created within the same
// timestamp granularity.
func (r *gormWorkoutRepository) GetByDate(ctx context.Context, ownerUserID string, date domain.CalDate) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ? AND date = ?", ownerUserID, date).
		Order("created_at DESC, id DESC").
		Find(&workouts).Error
	return workouts, err
}

func (r *gormWorkoutRepository) GetRows(ctx context.Context, workoutIDs []uint) ([]domain.WorkoutRow, error) {
	if len(workoutIDs) == 0 {
		return nil, nil
	}
	var rows []domain.WorkoutRow
	err := r.db.WithContext(ctx).
		Table("workout_exercises").
		Select(`workout_exercises.workout_id,
			workout_exercises.id AS workout_exercise_id,
			workout_exercises.position,
			workout_exercises.notes AS exercise_notes,
			exercises.id AS exercise_id,
			exercises.name AS exercise_name,
			sets.id AS set_id,
			sets.set_number,
			sets.is_bodyweight,
			sets.weight,
			sets.reps,
			sets.rpe,
			sets.notes AS set_notes`).
		Joins("JOIN exercises ON exercises.id = workout_exercises.exercise_id").
		Joins("LEFT JOIN sets ON sets.workout_exercise_id = workout_exercises.id").
		Where("workout_exercises.workout_id IN ?", workoutIDs).
		Order("workout_exercises.workout_id, workout_exercises.position, workout_exercises.id, sets.set_number").
		Scan(&rows).Error
	return rows, err
}

func (r *gormWorkoutRepository) DatesInRange(ctx context.Context, ownerUserID string, from, to domain.CalDate) ([]domain.CalDate, error) {
	var dates []domain.CalDate
	err := r.db.WithContext(ctx).
		Model(&domain.Workout{}).
		Distinct().
		Where("owner_user_id = ? AND date BETWEEN ? AND ?", ownerUserID, from, to).
		Order("date").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *gormWorkoutRepository) Update(ctx context.Context, ownerUserID string, workout *domain.Workout) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Workout{}).
		Where("id = ? AND owner_user_id = ?", workout.ID, ownerUserID).
		Select("name", "date", "duration_minutes", "notes").
		Updates(workout)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout with all of its workout-exercise rows and their
// sets in one transaction, children first. The foreign keys also carry
// CASCADE rules, but the explicit ordered deletes keep the all-or-nothing
// invariant independent of them.
func (r *gormWorkoutRepository) Delete(ctx context.Context, ownerUserID string, id uint) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&workout, "id = ? AND owner_user_id = ?", id, ownerUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}
		weIDs := tx.Model(&domain.WorkoutExercise{}).Select("id").Where("workout_id = ?", id)
		if err := tx.Where("workout_exercise_id IN (?)", weIDs).Delete(&domain.Set{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_id = ?", id).Delete(&domain.WorkoutExercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Workout{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) AddExercise(ctx context.Context, ownerUserID string, we *domain.WorkoutExercise) error {
	if err := r.ownedWorkout(ctx, ownerUserID, we.WorkoutID); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Create(we).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		// referenced catalog exercise does not exist
		return repository.ErrNotFound
	}
	return err
}

func (r *gormWorkoutRepository) GetWorkoutExercise(ctx context.Context, ownerUserID string, workoutExerciseID uint) (*domain.WorkoutExercise, error) {
	var we domain.WorkoutExercise
	err := r.db.WithContext(ctx).
		Joins("JOIN workouts ON workouts.id = workout_exercises.workout_id").
		Where("workout_exercises.id = ? AND workouts.owner_user_id = ?", workoutExerciseID, ownerUserID).
		First(&we).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &we, nil
}

func (r *gormWorkoutRepository) RemoveExercise(ctx context.Context, ownerUserID string, workoutExerciseID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var we domain.WorkoutExercise
		err := tx.Joins("JOIN workouts ON workouts.id = workout_exercises.workout_id").
			Where("workout_exercises.id = ? AND workouts.owner_user_id = ?", workoutExerciseID, ownerUserID).
			First(&we).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("workout_exercise_id = ?", we.ID).Delete(&domain.Set{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.WorkoutExercise{}, we.ID).Error
	})
}

func (r *gormWorkoutRepository) AddSet(ctx context.Context, ownerUserID string, set *domain.Set) error {
	if _, err := r.GetWorkoutExercise(ctx, ownerUserID, set.WorkoutExerciseID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *gormWorkoutRepository) GetSet(ctx context.Context, ownerUserID string, setID uint) (*domain.Set, error) {
	var set domain.Set
	err := r.db.WithContext(ctx).
		Joins("JOIN workout_exercises ON workout_exercises.id = sets.workout_exercise_id").
		Joins("JOIN workouts ON workouts.id = workout_exercises.workout_id").
		Where("sets.id = ? AND workouts.owner_user_id = ?", setID, ownerUserID).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *gormWorkoutRepository) UpdateSet(ctx context.Context, ownerUserID string, set *domain.Set) error {
	if _, err := r.GetSet(ctx, ownerUserID, set.ID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&domain.Set{}).
		Where("id = ?", set.ID).
		Select("set_number", "is_bodyweight", "weight", "reps", "rpe", "notes").
		Updates(set).Error
}

func (r *gormWorkoutRepository) DeleteSet(ctx context.Context, ownerUserID string, setID uint) error {
	if _, err := r.GetSet(ctx, ownerUserID, setID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&domain.Set{}, setID).Error
}

// ownedWorkout verifies that the workout exists and belongs to the owner.
func (r *gormWorkoutRepository) ownedWorkout(ctx context.Context, ownerUserID string, workoutID uint) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Workout{}).
		Where("id = ? AND owner_user_id = ?", workoutID, ownerUserID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}
