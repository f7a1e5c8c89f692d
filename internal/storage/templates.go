// ABOUTME: WorkoutTemplate CRUD operations for SQLite storage.
// ABOUTME: The ordered exercise ID list is stored as a JSON array column.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

const templateColumns = "id, name, exercises, created_at"

// CreateTemplate stores a new template and sets its ID.
func (d *DB) CreateTemplate(ctx context.Context, t *models.WorkoutTemplate) (int64, error) {
	id, err := insertTemplate(ctx, d.db, t)
	if err != nil {
		return 0, err
	}
	d.notifier.Notify(TableTemplates)
	return id, nil
}

// BulkCreateTemplates stores all templates in one transaction.
func (d *DB) BulkCreateTemplates(ctx context.Context, ts []*models.WorkoutTemplate) ([]int64, error) {
	return d.bulkInsert(ctx, TableTemplates, len(ts), func(ex execer, i int) (int64, error) {
		return insertTemplate(ctx, ex, ts[i])
	})
}

func insertTemplate(ctx context.Context, ex execer, t *models.WorkoutTemplate) (int64, error) {
	ids := t.ExerciseIDs
	if ids == nil {
		ids = []int64{}
	}
	exercises, err := json.Marshal(ids)
	if err != nil {
		return 0, fmt.Errorf("marshal template exercises: %w", err)
	}

	query := `
		INSERT INTO workout_templates (id, name, exercises, created_at)
		VALUES (NULLIF(?, 0), ?, ?, ?)
	`
	res, err := ex.ExecContext(ctx, query, t.ID, t.Name, string(exercises), formatTime(t.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	t.ID = id
	return id, nil
}

// GetTemplate retrieves a template by ID.
func (d *DB) GetTemplate(ctx context.Context, id int64) (*models.WorkoutTemplate, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM workout_templates WHERE id = ?", id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// ListTemplates reads templates matching q.
func (d *DB) ListTemplates(ctx context.Context, q Query) ([]*models.WorkoutTemplate, error) {
	suffix, args, err := q.build(TableTemplates)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT "+templateColumns+" FROM workout_templates"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.WorkoutTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func scanTemplate(s scanner) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	var exercises, createdAt string
	if err := s.Scan(&t.ID, &t.Name, &exercises, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exercises), &t.ExerciseIDs); err != nil {
		return nil, fmt.Errorf("decode template %d exercises: %w", t.ID, err)
	}
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
