package domain

import "sort"

// WorkoutRow is one flat row of the workout hierarchy as produced by the
// read queries: workout exercises left-joined to their sets and joined to the
// catalog. A row with a nil SetID carries an exercise that has no sets yet.
type WorkoutRow struct {
	WorkoutID         uint
	WorkoutExerciseID uint
	Position          int
	ExerciseID        uint
	ExerciseName      string
	ExerciseNotes     string
	SetID             *uint
	SetNumber         *int
	IsBodyweight      *bool
	Weight            *float64
	Reps              *int
	RPE               *int
	SetNotes          *string
}

// SetView is one set as presented to clients.
type SetView struct {
	ID           uint     `json:"id"`
	SetNumber    int      `json:"setNumber"`
	IsBodyweight bool     `json:"isBodyweight"`
	Weight       *float64 `json:"weight,omitempty"`
	Reps         int      `json:"reps"`
	RPE          *int     `json:"rpe,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// ExerciseView is one exercise within a workout, with its sets ordered by
// set number. Sets is never nil: an exercise with no sets yet appears with an
// empty slice.
type ExerciseView struct {
	WorkoutExerciseID uint      `json:"workoutExerciseId"`
	ExerciseID        uint      `json:"exerciseId"`
	Name              string    `json:"name"`
	Position          int       `json:"position"`
	Notes             string    `json:"notes,omitempty"`
	Sets              []SetView `json:"sets"`
}

// WorkoutView is the hierarchical shape consumed by the presentation layer:
// a workout with its exercises nested, each with its sets nested.
type WorkoutView struct {
	Workout
	Exercises []ExerciseView `json:"exercises"`
}

// GroupWorkoutRows reassembles flat joined rows into the nested
// workout -> exercise -> set shape. It is the single reconstruction path
// behind every hierarchical read, so the two concerns it encodes hold
// everywhere:
//
//   - the first row seen for a workout exercise establishes its ExerciseView;
//     rows whose set columns are NULL (left-join misses) contribute nothing
//     beyond that, so zero-set exercises survive without phantom entries;
//   - exercises are ordered by their persisted Position (first-seen order
//     breaking ties) and sets by SetNumber ascending.
//
// Workouts appear in the same order as the workouts slice; rows referencing
// unknown workout ids are dropped. The pass over rows is linear, followed by
// the per-group sorts.
func GroupWorkoutRows(workouts []Workout, rows []WorkoutRow) []WorkoutView {
	views := make([]WorkoutView, len(workouts))
	byWorkout := make(map[uint]*WorkoutView, len(workouts))
	for i, w := range workouts {
		views[i] = WorkoutView{Workout: w, Exercises: []ExerciseView{}}
		byWorkout[w.ID] = &views[i]
	}

	exerciseIdx := make(map[uint]int, len(rows)) // WorkoutExerciseID -> index in its view
	for _, row := range rows {
		view, ok := byWorkout[row.WorkoutID]
		if !ok {
			continue
		}
		idx, seen := exerciseIdx[row.WorkoutExerciseID]
		if !seen {
			idx = len(view.Exercises)
			exerciseIdx[row.WorkoutExerciseID] = idx
			view.Exercises = append(view.Exercises, ExerciseView{
				WorkoutExerciseID: row.WorkoutExerciseID,
				ExerciseID:        row.ExerciseID,
				Name:              row.ExerciseName,
				Position:          row.Position,
				Notes:             row.ExerciseNotes,
				Sets:              []SetView{},
			})
		}
		if row.SetID == nil {
			continue
		}
		set := SetView{ID: *row.SetID}
		if row.SetNumber != nil {
			set.SetNumber = *row.SetNumber
		}
		if row.IsBodyweight != nil {
			set.IsBodyweight = *row.IsBodyweight
		}
		if row.Reps != nil {
			set.Reps = *row.Reps
		}
		if row.SetNotes != nil {
			set.Notes = *row.SetNotes
		}
		set.Weight = row.Weight
		set.RPE = row.RPE
		view.Exercises[idx].Sets = append(view.Exercises[idx].Sets, set)
	}

	for i := range views {
		exs := views[i].Exercises
		sort.SliceStable(exs, func(a, b int) bool {
			return exs[a].Position < exs[b].Position
		})
		for j := range exs {
			sets := exs[j].Sets
			sort.Slice(sets, func(a, b int) bool {
				return sets[a].SetNumber < sets[b].SetNumber
			})
		}
	}
	return views
}
