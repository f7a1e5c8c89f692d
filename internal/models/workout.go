// ABOUTME: Workout, WorkoutExercise and WorkoutSet models for logged sessions.
// ABOUTME: Provides the total volume derivation used when a session is finished.
package models

import "time"

// WorkoutSet is one logged attempt at an exercise. Weight is in lbs.
type WorkoutSet struct {
	Weight    float64 `json:"weight" yaml:"weight"`
	Reps      int     `json:"reps" yaml:"reps"`
	Completed bool    `json:"completed" yaml:"completed"`
}

// Volume returns weight x reps for a completed set and zero otherwise.
func (s WorkoutSet) Volume() float64 {
	if !s.Completed {
		return 0
	}
	return s.Weight * float64(s.Reps)
}

// WorkoutExercise holds the sets logged against one exercise.
type WorkoutExercise struct {
	ExerciseID int64        `json:"exerciseId" yaml:"exercise_id"`
	Sets       []WorkoutSet `json:"sets" yaml:"sets"`
}

// CompletedSets returns only the sets marked completed, in order.
func (e WorkoutExercise) CompletedSets() []WorkoutSet {
	var out []WorkoutSet
	for _, s := range e.Sets {
		if s.Completed {
			out = append(out, s)
		}
	}
	return out
}

// Workout is a finished session. It is written once and never changed.
type Workout struct {
	ID          int64             `json:"id" yaml:"id"`
	TemplateID  *int64            `json:"templateId,omitempty" yaml:"template_id,omitempty"`
	Name        string            `json:"name" yaml:"name"`
	Date        time.Time         `json:"date" yaml:"date"`
	Duration    int               `json:"duration" yaml:"duration"` // seconds
	Exercises   []WorkoutExercise `json:"exercises" yaml:"exercises"`
	TotalVolume float64           `json:"totalVolume" yaml:"total_volume"`
}

// TotalVolume sums weight x reps over every completed set.
func TotalVolume(exercises []WorkoutExercise) float64 {
	var total float64
	for _, e := range exercises {
		for _, s := range e.Sets {
			total += s.Volume()
		}
	}
	return total
}

// CloneExercises deep-copies an exercise/set structure.
func CloneExercises(exercises []WorkoutExercise) []WorkoutExercise {
	out := make([]WorkoutExercise, len(exercises))
	for i, e := range exercises {
		sets := make([]WorkoutSet, len(e.Sets))
		copy(sets, e.Sets)
		out[i] = WorkoutExercise{ExerciseID: e.ExerciseID, Sets: sets}
	}
	return out
}
