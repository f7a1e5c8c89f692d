// ABOUTME: Read-side views over stored data: library filtering, history periods, and stats.
// ABOUTME: Pure functions over record slices plus a dashboard summary read from the store.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// RecentLimit is how many workouts and records the dashboard shows.
const RecentLimit = 5

// FilterExercises keeps exercises whose name or muscle group contains search
// (case-insensitive) and whose category matches. An empty category or "All"
// matches every category. The result is never nil.
func FilterExercises(exercises []*models.Exercise, search, category string) []*models.Exercise {
	needle := strings.ToLower(strings.TrimSpace(search))
	anyCategory := category == "" || strings.EqualFold(category, "all")

	out := []*models.Exercise{}
	for _, e := range exercises {
		if !anyCategory && !strings.EqualFold(string(e.Category), category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.MuscleGroup), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Period is a history window ending now.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts all, week, month, or year; empty means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (use all, week, month, or year)", s)
	}
}

// Since returns the start of the window, or the zero time for PeriodAll.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// FilterWorkouts keeps workouts dated on or after the start of period.
func FilterWorkouts(workouts []*models.Workout, period Period, now time.Time) []*models.Workout {
	if period == PeriodAll || period == "" {
		return workouts
	}
	since := period.Since(now)
	out := []*models.Workout{}
	for _, w := range workouts {
		if !w.Date.Before(since) {
			out = append(out, w)
		}
	}
	return out
}

// HistoryStats summarizes a list of workouts.
type HistoryStats struct {
	Total              int     `json:"total"`
	TotalVolume        float64 `json:"totalVolume"`
	AvgDurationMinutes int     `json:"avgDurationMinutes"`
}

// Summarize totals the workouts; the average duration is rounded to whole minutes.
func Summarize(workouts []*models.Workout) HistoryStats {
	var stats HistoryStats
	var seconds int
	for _, w := range workouts {
		stats.Total++
		stats.TotalVolume += w.TotalVolume
		seconds += w.Duration
	}
	if stats.Total > 0 {
		stats.AvgDurationMinutes = int(math.Round(float64(seconds) / float64(stats.Total) / 60))
	}
	return stats
}

// Store is the subset of storage.Repository read by Dashboard.
type Store interface {
	ListWorkouts(ctx context.Context, q storage.Query) ([]*models.Workout, error)
	ListPersonalRecords(ctx context.Context, q storage.Query) ([]*models.PersonalRecord, error)
	ListTemplates(ctx context.Context, q storage.Query) ([]*models.WorkoutTemplate, error)
}

// DashboardStats is the landing summary.
type DashboardStats struct {
	TotalWorkouts   int                       `json:"totalWorkouts"`
	ThisWeek        int                       `json:"thisWeek"`
	PersonalRecords int                       `json:"personalRecords"`
	RecentWorkouts  []*models.Workout         `json:"recentWorkouts"`
	RecentRecords   []*models.PersonalRecord  `json:"recentRecords"`
	Templates       []*models.WorkoutTemplate `json:"templates"`
}

// Dashboard reads the summary shown on the landing screen. "This week"
// means the seven days before now.
func Dashboard(ctx context.Context, store Store, now time.Time) (*DashboardStats, error) {
	workouts, err := store.ListWorkouts(ctx, storage.OrderedBy("date", true, 0))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	prs, err := store.ListPersonalRecords(ctx, storage.OrderedBy("date", true, 0))
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	templates, err := store.ListTemplates(ctx, storage.All())
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	return &DashboardStats{
		TotalWorkouts:   len(workouts),
		ThisWeek:        len(FilterWorkouts(workouts, PeriodWeek, now)),
		PersonalRecords: len(prs),
		RecentWorkouts:  head(workouts, RecentLimit),
		RecentRecords:   head(prs, RecentLimit),
		Templates:       templates,
	}, nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ExerciseNames indexes exercise names by ID.
type ExerciseNames map[int64]string

// NewExerciseNames builds the index from a catalog listing.
func NewExerciseNames(exercises []*models.Exercise) ExerciseNames {
	names := make(ExerciseNames, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names
}

// Name returns the exercise name, or "Unknown Exercise" for a dangling ID.
func (n ExerciseNames) Name(id int64) string {
	if name, ok := n[id]; ok {
		return name
	}
	return storage.UnknownExercise
}
