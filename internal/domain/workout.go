package domain

import "time"

// Workout is a single logged session. Ownership is direct: OwnerUserID is
// checked on every read and write; WorkoutExercise and Set rows inherit it
// through their parent chain and carry no owner of their own.
type Workout struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OwnerUserID     string    `gorm:"type:uuid;index;not null" json:"ownerUserId"`
	Owner           User      `gorm:"foreignKey:OwnerUserID" json:"-"`
	Date            CalDate   `gorm:"type:date;index;not null" json:"date"`
	Name            string    `gorm:"type:varchar(100)" json:"name,omitempty"`
	DurationMinutes *int      `gorm:"check:duration_minutes IS NULL OR duration_minutes > 0" json:"durationMinutes,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WorkoutExercise links one catalog Exercise into one Workout. The composite
// unique index forbids the same exercise appearing twice in a workout;
// Position is the caller-assigned display order within the workout.
type WorkoutExercise struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	WorkoutID  uint     `gorm:"index:idx_workout_exercise,unique;not null" json:"workoutId"`
	Workout    Workout  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExerciseID uint     `gorm:"index:idx_workout_exercise,unique;not null" json:"exerciseId"`
	Exercise   Exercise `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Position   int      `gorm:"not null;default:0" json:"position"`
	Notes      string   `gorm:"type:text" json:"notes,omitempty"`
}

// Set is one recorded set of an exercise within a workout. Weight may be
// present on a bodyweight set (added external load), so IsBodyweight does not
// constrain Weight structurally; the numeric CHECKs are enforced by the store.
type Set struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	WorkoutExerciseID uint            `gorm:"index;not null" json:"workoutExerciseId"`
	WorkoutExercise   WorkoutExercise `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SetNumber         int             `gorm:"not null;check:set_number > 0" json:"setNumber"`
	IsBodyweight      bool            `gorm:"not null;default:false" json:"isBodyweight"`
	Weight            *float64        `gorm:"type:decimal(6,2);check:weight IS NULL OR weight >= 0" json:"weight,omitempty"`
	Reps              int             `gorm:"not null;check:reps > 0" json:"reps"`
	RPE               *int            `gorm:"column:rpe;check:rpe IS NULL OR rpe BETWEEN 1 AND 10" json:"rpe,omitempty"`
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`
}
