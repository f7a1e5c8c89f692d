// ABOUTME: Formatting and parsing helpers shared by the gym commands.
// ABOUTME: Time parsing, column padding, and exercise name lookup.
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/storage"
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func exerciseNames(ctx context.Context) (report.ExerciseNames, error) {
	exercises, err := dbConn.ListExercises(ctx, storage.All())
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return report.NewExerciseNames(exercises), nil
}
