package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

// gormExerciseRepository implements repository.ExerciseRepository
type gormExerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new exercise catalog repository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	err := r.db.WithContext(ctx).Create(exercise).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *gormExerciseRepository) GetByID(ctx context.Context, id uint) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).First(&exercise, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).Order("name").Find(&exercises).Error
	return exercises, err
}

// Delete removes a catalog entry. The RESTRICT constraint on
// workout_exercises rejects the delete while any workout references the
// exercise; that rejection surfaces as ErrRestricted.
func (r *gormExerciseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Exercise{}, id)
	if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
		return repository.ErrRestricted
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
