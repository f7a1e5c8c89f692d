// ABOUTME: Exercise CRUD operations for SQLite storage.
// ABOUTME: Exercises are insert-only; there is no update or delete path.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

const exerciseColumns = "id, name, category, muscle_group, equipment"

// CreateExercise stores a new exercise and sets its ID.
func (d *DB) CreateExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	id, err := insertExercise(ctx, d.db, e)
	if err != nil {
		return 0, err
	}
	d.notifier.Notify(TableExercises)
	return id, nil
}

// BulkCreateExercises stores all exercises in one transaction.
func (d *DB) BulkCreateExercises(ctx context.Context, es []*models.Exercise) ([]int64, error) {
	return d.bulkInsert(ctx, TableExercises, len(es), func(ex execer, i int) (int64, error) {
		return insertExercise(ctx, ex, es[i])
	})
}

func insertExercise(ctx context.Context, ex execer, e *models.Exercise) (int64, error) {
	query := `
		INSERT INTO exercises (id, name, category, muscle_group, equipment)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?)
	`
	res, err := ex.ExecContext(ctx, query, e.ID, e.Name, string(e.Category), e.MuscleGroup, e.Equipment)
	if err != nil {
		return 0, fmt.Errorf("create exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create exercise: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetExercise retrieves an exercise by ID.
func (d *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+exerciseColumns+" FROM exercises WHERE id = ?", id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

// ListExercises reads exercises matching q.
func (d *DB) ListExercises(ctx context.Context, q Query) ([]*models.Exercise, error) {
	suffix, args, err := q.build(TableExercises)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT "+exerciseColumns+" FROM exercises"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// CountExercises returns the number of stored exercises.
func (d *DB) CountExercises(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&n); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

func scanExercise(s scanner) (*models.Exercise, error) {
	var e models.Exercise
	var category string
	if err := s.Scan(&e.ID, &e.Name, &category, &e.MuscleGroup, &e.Equipment); err != nil {
		return nil, err
	}
	e.Category = models.Category(category)
	return &e, nil
}
