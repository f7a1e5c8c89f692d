// ABOUTME: Data copy between gym stores, used for backups.
// ABOUTME: Copies all five tables from source to an empty destination, keeping IDs.

package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrDestinationNotEmpty is returned when CopyData targets a store with exercises.
var ErrDestinationNotEmpty = errors.New("destination store is not empty")

// CopySummary holds counts of copied records.
type CopySummary struct {
	Exercises       int
	Templates       int
	Workouts        int
	PersonalRecords int
	BodyMetrics     int
}

// CopyData copies all data from src to dst. The destination must be empty
// because IDs are preserved; the copy is all-or-nothing.
func CopyData(ctx context.Context, src, dst Repository) (*CopySummary, error) {
	n, err := dst.CountExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("check destination: %w", err)
	}
	if n > 0 {
		return nil, ErrDestinationNotEmpty
	}

	data, err := src.GetAllData(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := dst.ImportData(ctx, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	return &CopySummary{
		Exercises:       len(data.Exercises),
		Templates:       len(data.Templates),
		Workouts:        len(data.Workouts),
		PersonalRecords: len(data.PersonalRecords),
		BodyMetrics:     len(data.BodyMetrics),
	}, nil
}
