// ABOUTME: Tests for the default-data seed routine.
// ABOUTME: Checks catalog contents, template composition, and idempotence.
package seed

import (
	"context"
	"path/filepath"
	"testing"

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

func TestRunSeedsEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := Run(ctx, db)
	require.NoError(t, err)
	assert.True(t, seeded)

	exercises, err := db.ListExercises(ctx, storage.All())
	require.NoError(t, err)
	require.Len(t, exercises, 20)

	counts := map[models.Category]int{}
	for _, e := range exercises {
		counts[e.Category]++
	}
	assert.Equal(t, 7, counts[models.CategoryPush])
	assert.Equal(t, 6, counts[models.CategoryPull])
	assert.Equal(t, 5, counts[models.CategoryLegs])
	assert.Equal(t, 2, counts[models.CategoryCore])

	assert.Equal(t, "Bench Press", exercises[0].Name)
	assert.Equal(t, "Cable Crunches", exercises[19].Name)
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db)
	require.NoError(t, err)
	seeded, err := Run(ctx, db)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := db.CountExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	tpls, err := db.ListTemplates(ctx, storage.All())
	require.NoError(t, err)
	assert.Len(t, tpls, 3)
}

func TestRunSkipsWhenExercisesExist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateExercise(ctx, models.NewExercise("Sled Push", models.CategoryLegs, "Quads", "Sled"))
	require.NoError(t, err)

	seeded, err := Run(ctx, db)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := db.CountExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tpls, err := db.ListTemplates(ctx, storage.All())
	require.NoError(t, err)
	assert.Empty(t, tpls)
}

func TestSeededTemplatesUseFirstFiveOfCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db)
	require.NoError(t, err)

	tpls, err := db.ListTemplates(ctx, storage.All())
	require.NoError(t, err)
	require.Len(t, tpls, 3)

	want := map[string][]string{
		"Push Day": {"Bench Press", "Incline Dumbbell Press", "Cable Flyes", "Overhead Press", "Lateral Raises"},
		"Pull Day": {"Pull Ups", "Barbell Rows", "Lat Pulldowns", "Face Pulls", "Barbell Curls"},
		"Leg Day":  {"Squat", "Romanian Deadlift", "Leg Press", "Leg Curls", "Calf Raises"},
	}

	assert.Equal(t, "Push Day", tpls[0].Name)
	assert.Equal(t, "Pull Day", tpls[1].Name)
	assert.Equal(t, "Leg Day", tpls[2].Name)

	for _, tpl := range tpls {
		var names []string
		for _, id := range tpl.ExerciseIDs {
			e, err := db.GetExercise(ctx, id)
			require.NoError(t, err)
			names = append(names, e.Name)
		}
		assert.Equal(t, want[tpl.Name], names, tpl.Name)
	}
}

func TestTemplatesWithShortCategory(t *testing.T) {
	exercises := []*models.Exercise{
		{ID: 1, Name: "Squat", Category: models.CategoryLegs},
		{ID: 2, Name: "Bench", Category: models.CategoryPush},
	}

	tpls := Templates(exercises)
	require.Len(t, tpls, 3)
	assert.Equal(t, []int64{2}, tpls[0].ExerciseIDs)
	assert.Empty(t, tpls[1].ExerciseIDs)
	assert.Equal(t, []int64{1}, tpls[2].ExerciseIDs)
}
