// ABOUTME: Tests for personal-record derivation.
// ABOUTME: Covers best-set selection and only-improvements-are-recorded behaviour.
package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "gym.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func set(weight float64, reps int, done bool) models.WorkoutSet {
	return models.WorkoutSet{Weight: weight, Reps: reps, Completed: done}
}

func TestBestSet(t *testing.T) {
	tests := []struct {
		name   string
		sets   []models.WorkoutSet
		want   models.WorkoutSet
		wantOK bool
	}{
		{"empty", nil, models.WorkoutSet{}, false},
		{"only incomplete", []models.WorkoutSet{set(200, 5, false)}, models.WorkoutSet{}, false},
		{"bodyweight ignored", []models.WorkoutSet{set(0, 12, true)}, models.WorkoutSet{}, false},
		{"heaviest wins", []models.WorkoutSet{set(100, 10, true), set(120, 3, true), set(140, 1, false)}, set(120, 3, true), true},
		{"tie on reps", []models.WorkoutSet{set(100, 5, true), set(100, 7, true)}, set(100, 7, true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestSet(models.WorkoutExercise{ExerciseID: 1, Sets: tt.sets})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveRecordsOnlyImprovements(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	day := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	_, err := db.CreatePersonalRecord(ctx, models.NewPersonalRecord(1, 200, 5).WithDate(day.AddDate(0, -1, 0)))
	require.NoError(t, err)

	w := &models.Workout{
		Date: day,
		Exercises: []models.WorkoutExercise{
			{ExerciseID: 1, Sets: []models.WorkoutSet{set(195, 8, true)}},
			{ExerciseID: 2, Sets: []models.WorkoutSet{set(60, 10, true), set(65, 8, true)}},
			{ExerciseID: 3, Sets: []models.WorkoutSet{set(50, 10, false)}},
		},
	}

	created, err := Derive(ctx, db, w)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(2), created[0].ExerciseID)
	assert.Equal(t, 65.0, created[0].Weight)
	assert.Equal(t, 8, created[0].Reps)
	assert.True(t, created[0].Date.Equal(day))

	again, err := Derive(ctx, db, w)
	require.NoError(t, err)
	assert.Empty(t, again, "repeating the same lifts sets no new record")
}

func TestBestPicksStrongestPerExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, pr := range []*models.PersonalRecord{
		models.NewPersonalRecord(1, 100, 5),
		models.NewPersonalRecord(1, 110, 2),
		models.NewPersonalRecord(1, 110, 1),
		models.NewPersonalRecord(2, 40, 12),
	} {
		_, err := db.CreatePersonalRecord(ctx, pr)
		require.NoError(t, err)
	}

	best, err := Best(ctx, db)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, 110.0, best[1].Weight)
	assert.Equal(t, 2, best[1].Reps)
	assert.Equal(t, 40.0, best[2].Weight)
}

func TestHook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	w := &models.Workout{
		Date:      time.Now(),
		Exercises: []models.WorkoutExercise{{ExerciseID: 7, Sets: []models.WorkoutSet{set(225, 3, true)}}},
	}
	require.NoError(t, Hook(db)(ctx, w))

	prs, err := db.ListPersonalRecords(ctx, storage.WhereEquals("exercise_id", int64(7)))
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 225.0, prs[0].Weight)
}
