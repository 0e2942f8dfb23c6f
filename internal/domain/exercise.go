package domain

import "time"

// Exercise is a single entry in the global exercise catalog. Catalog entries
// are shared across users and are not owned by anyone; workout flows only
// ever reference them. Deleting an entry is blocked while any workout still
// references it (ON DELETE RESTRICT on WorkoutExercise).
type Exercise struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
