// ABOUTME: Tests for library filtering, history periods, and dashboard stats.
// ABOUTME: Dashboard tests run against a temp SQLite store.
package report

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

func catalog() []*models.Exercise {
	return []*models.Exercise{
		{ID: 1, Name: "Bench Press", Category: models.CategoryPush, MuscleGroup: "Chest"},
		{ID: 2, Name: "Barbell Rows", Category: models.CategoryPull, MuscleGroup: "Back"},
		{ID: 3, Name: "Squat", Category: models.CategoryLegs, MuscleGroup: "Quads"},
		{ID: 4, Name: "Leg Press", Category: models.CategoryLegs, MuscleGroup: "Quads"},
		{ID: 5, Name: "Plank", Category: models.CategoryCore, MuscleGroup: "Abs"},
	}
}

func ids(es []*models.Exercise) []int64 {
	out := []int64{}
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterExercises(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     []int64
	}{
		{"everything", "", "All", []int64{1, 2, 3, 4, 5}},
		{"empty category means all", "", "", []int64{1, 2, 3, 4, 5}},
		{"by name case-insensitive", "PRESS", "", []int64{1, 4}},
		{"by muscle group", "quad", "All", []int64{3, 4}},
		{"category only", "", "Legs", []int64{3, 4}},
		{"category and search", "squat", "Legs", []int64{3}},
		{"no match", "zzz", "Legs", []int64{}},
		{"category mismatch", "bench", "Legs", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterExercises(catalog(), tt.search, tt.category)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, in := range []string{"", "all", "Week", "month", "YEAR"} {
		_, err := ParsePeriod(in)
		assert.NoError(t, err, in)
	}
	_, err := ParsePeriod("decade")
	assert.Error(t, err)
}

func TestFilterWorkouts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	workouts := []*models.Workout{
		{ID: 1, Date: now.AddDate(0, 0, -1)},
		{ID: 2, Date: now.AddDate(0, 0, -7)},
		{ID: 3, Date: now.AddDate(0, 0, -20)},
		{ID: 4, Date: now.AddDate(0, -6, 0)},
		{ID: 5, Date: now.AddDate(-2, 0, 0)},
	}

	tests := []struct {
		period Period
		want   int
	}{
		{PeriodAll, 5},
		{PeriodWeek, 2},
		{PeriodMonth, 3},
		{PeriodYear, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Len(t, FilterWorkouts(workouts, tt.period, now), tt.want)
		})
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]*models.Workout{
		{Duration: 3000, TotalVolume: 1000},
		{Duration: 3300, TotalVolume: 2500.5},
	})
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 3500.5, stats.TotalVolume)
	assert.Equal(t, 53, stats.AvgDurationMinutes)

	assert.Equal(t, HistoryStats{}, Summarize(nil))
}

func TestDashboard(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "gym.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		_, err := db.CreateWorkout(ctx, &models.Workout{
			Name: "Push Day",
			Date: now.AddDate(0, 0, -2*i),
		})
		require.NoError(t, err)
	}
	for i := 0; i < 6; i++ {
		_, err := db.CreatePersonalRecord(ctx, models.NewPersonalRecord(1, float64(100+i), 5).WithDate(now.AddDate(0, 0, -i)))
		require.NoError(t, err)
	}
	_, err = db.CreateTemplate(ctx, models.NewTemplate("Push Day", []int64{1}))
	require.NoError(t, err)

	stats, err := Dashboard(ctx, db, now)
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalWorkouts)
	assert.Equal(t, 4, stats.ThisWeek)
	assert.Equal(t, 6, stats.PersonalRecords)
	require.Len(t, stats.RecentWorkouts, RecentLimit)
	assert.True(t, stats.RecentWorkouts[0].Date.Equal(now), "most recent first")
	require.Len(t, stats.RecentRecords, RecentLimit)
	assert.Equal(t, 100.0, stats.RecentRecords[0].Weight)
	assert.Len(t, stats.Templates, 1)
}

func TestExerciseNames(t *testing.T) {
	names := NewExerciseNames(catalog())
	assert.Equal(t, "Squat", names.Name(3))
	assert.Equal(t, "Unknown Exercise", names.Name(99))
}
