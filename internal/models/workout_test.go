// ABOUTME: Tests for Workout, WorkoutExercise and WorkoutSet models.
// ABOUTME: Validates total volume derivation and structure cloning.
package models

import (
	"testing"
)

func TestTotalVolumeCompletedOnly(t *testing.T) {
	exercises := []WorkoutExercise{
		{ExerciseID: 1, Sets: []WorkoutSet{
			{Weight: 100, Reps: 5, Completed: true},
			{Weight: 80, Reps: 8, Completed: false},
		}},
	}

	if got := TotalVolume(exercises); got != 500 {
		t.Errorf("TotalVolume = %v, want 500", got)
	}
}

func TestTotalVolumeAcrossExercises(t *testing.T) {
	exercises := []WorkoutExercise{
		{ExerciseID: 1, Sets: []WorkoutSet{{Weight: 135, Reps: 10, Completed: true}}},
		{ExerciseID: 2, Sets: []WorkoutSet{
			{Weight: 20.5, Reps: 12, Completed: true},
			{Weight: 20.5, Reps: 10, Completed: true},
		}},
		{ExerciseID: 3, Sets: []WorkoutSet{{Weight: 0, Reps: 0, Completed: false}}},
	}

	want := 1350.0 + 246.0 + 205.0
	if got := TotalVolume(exercises); got != want {
		t.Errorf("TotalVolume = %v, want %v", got, want)
	}
}

func TestTotalVolumeEmpty(t *testing.T) {
	if got := TotalVolume(nil); got != 0 {
		t.Errorf("TotalVolume(nil) = %v, want 0", got)
	}
}

func TestCompletedSets(t *testing.T) {
	e := WorkoutExercise{Sets: []WorkoutSet{
		{Weight: 50, Reps: 10, Completed: true},
		{Weight: 55, Reps: 8, Completed: false},
		{Weight: 60, Reps: 6, Completed: true},
	}}

	got := e.CompletedSets()
	if len(got) != 2 {
		t.Fatalf("CompletedSets len = %d, want 2", len(got))
	}
	if got[1].Weight != 60 {
		t.Errorf("second completed set weight = %v, want 60", got[1].Weight)
	}
}

func TestCloneExercisesIsDeep(t *testing.T) {
	orig := []WorkoutExercise{{ExerciseID: 7, Sets: []WorkoutSet{{Weight: 10, Reps: 1}}}}
	clone := CloneExercises(orig)

	clone[0].Sets[0].Weight = 99
	if orig[0].Sets[0].Weight != 10 {
		t.Error("modifying clone changed the original")
	}
	if clone[0].ExerciseID != 7 {
		t.Errorf("ExerciseID = %d, want 7", clone[0].ExerciseID)
	}
}
