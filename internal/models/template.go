// ABOUTME: WorkoutTemplate model: a named, ordered list of exercise references.
// ABOUTME: Exercise IDs are bare references and may point at missing exercises.
package models

import "time"

// WorkoutTemplate pre-populates a workout session.
type WorkoutTemplate struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	ExerciseIDs []int64   `json:"exercises" yaml:"exercises"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

// NewTemplate creates an unsaved template stamped with the current time.
func NewTemplate(name string, exerciseIDs []int64) *WorkoutTemplate {
	ids := make([]int64, len(exerciseIDs))
	copy(ids, exerciseIDs)
	return &WorkoutTemplate{
		Name:        name,
		ExerciseIDs: ids,
		CreatedAt:   time.Now(),
	}
}
