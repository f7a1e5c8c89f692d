// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: A workout and its full exercise/set structure are written in a single row insert.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

const workoutColumns = "id, template_id, name, date, duration, exercises, total_volume"

// CreateWorkout stores a finished workout and sets its ID. The row insert
// is atomic, so a partially written workout is never visible.
func (d *DB) CreateWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	id, err := insertWorkout(ctx, d.db, w)
	if err != nil {
		return 0, err
	}
	d.notifier.Notify(TableWorkouts)
	return id, nil
}

// BulkCreateWorkouts stores all workouts in one transaction.
func (d *DB) BulkCreateWorkouts(ctx context.Context, ws []*models.Workout) ([]int64, error) {
	return d.bulkInsert(ctx, TableWorkouts, len(ws), func(ex execer, i int) (int64, error) {
		return insertWorkout(ctx, ex, ws[i])
	})
}

func insertWorkout(ctx context.Context, ex execer, w *models.Workout) (int64, error) {
	exercises := w.Exercises
	if exercises == nil {
		exercises = []models.WorkoutExercise{}
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return 0, fmt.Errorf("marshal workout exercises: %w", err)
	}

	var templateID sql.NullInt64
	if w.TemplateID != nil {
		templateID = sql.NullInt64{Int64: *w.TemplateID, Valid: true}
	}

	query := `
		INSERT INTO workouts (id, template_id, name, date, duration, exercises, total_volume)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?)
	`
	res, err := ex.ExecContext(ctx, query,
		w.ID,
		templateID,
		w.Name,
		formatTime(w.Date),
		w.Duration,
		string(data),
		w.TotalVolume,
	)
	if err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	w.ID = id
	return id, nil
}

// GetWorkout retrieves a workout with its exercises and sets.
func (d *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+workoutColumns+" FROM workouts WHERE id = ?", id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// ListWorkouts reads workouts matching q.
func (d *DB) ListWorkouts(ctx context.Context, q Query) ([]*models.Workout, error) {
	suffix, args, err := q.build(TableWorkouts)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT "+workoutColumns+" FROM workouts"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func scanWorkout(s scanner) (*models.Workout, error) {
	var w models.Workout
	var templateID sql.NullInt64
	var date, exercises string
	if err := s.Scan(&w.ID, &templateID, &w.Name, &date, &w.Duration, &exercises, &w.TotalVolume); err != nil {
		return nil, err
	}
	if templateID.Valid {
		id := templateID.Int64
		w.TemplateID = &id
	}
	w.Date = parseTime(date)
	if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
		return nil, fmt.Errorf("decode workout %d exercises: %w", w.ID, err)
	}
	return &w, nil
}
