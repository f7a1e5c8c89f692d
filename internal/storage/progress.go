// ABOUTME: PersonalRecord and BodyMetric operations for SQLite storage.
// ABOUTME: Both tables are append-only dated samples.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// CreatePersonalRecord stores a new personal record and sets its ID.
func (d *DB) CreatePersonalRecord(ctx context.Context, pr *models.PersonalRecord) (int64, error) {
	id, err := insertPersonalRecord(ctx, d.db, pr)
	if err != nil {
		return 0, err
	}
	d.notifier.Notify(TablePersonalRecords)
	return id, nil
}

// BulkCreatePersonalRecords stores all records in one transaction.
func (d *DB) BulkCreatePersonalRecords(ctx context.Context, prs []*models.PersonalRecord) ([]int64, error) {
	return d.bulkInsert(ctx, TablePersonalRecords, len(prs), func(ex execer, i int) (int64, error) {
		return insertPersonalRecord(ctx, ex, prs[i])
	})
}

func insertPersonalRecord(ctx context.Context, ex execer, pr *models.PersonalRecord) (int64, error) {
	query := `
		INSERT INTO personal_records (id, exercise_id, weight, reps, date)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?)
	`
	res, err := ex.ExecContext(ctx, query, pr.ID, pr.ExerciseID, pr.Weight, pr.Reps, formatTime(pr.Date))
	if err != nil {
		return 0, fmt.Errorf("create personal record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create personal record: %w", err)
	}
	pr.ID = id
	return id, nil
}

// ListPersonalRecords reads personal records matching q.
func (d *DB) ListPersonalRecords(ctx context.Context, q Query) ([]*models.PersonalRecord, error) {
	suffix, args, err := q.build(TablePersonalRecords)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT id, exercise_id, weight, reps, date FROM personal_records"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	defer rows.Close()

	var records []*models.PersonalRecord
	for rows.Next() {
		var pr models.PersonalRecord
		var date string
		if err := rows.Scan(&pr.ID, &pr.ExerciseID, &pr.Weight, &pr.Reps, &date); err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		pr.Date = parseTime(date)
		records = append(records, &pr)
	}
	return records, rows.Err()
}

// CreateBodyMetric stores a new body metric and sets its ID.
func (d *DB) CreateBodyMetric(ctx context.Context, m *models.BodyMetric) (int64, error) {
	id, err := insertBodyMetric(ctx, d.db, m)
	if err != nil {
		return 0, err
	}
	d.notifier.Notify(TableBodyMetrics)
	return id, nil
}

// BulkCreateBodyMetrics stores all body metrics in one transaction.
func (d *DB) BulkCreateBodyMetrics(ctx context.Context, ms []*models.BodyMetric) ([]int64, error) {
	return d.bulkInsert(ctx, TableBodyMetrics, len(ms), func(ex execer, i int) (int64, error) {
		return insertBodyMetric(ctx, ex, ms[i])
	})
}

func insertBodyMetric(ctx context.Context, ex execer, m *models.BodyMetric) (int64, error) {
	var bodyFat sql.NullFloat64
	if m.BodyFat != nil {
		bodyFat = sql.NullFloat64{Float64: *m.BodyFat, Valid: true}
	}

	query := `
		INSERT INTO body_metrics (id, date, weight, body_fat)
		VALUES (NULLIF(?, 0), ?, ?, ?)
	`
	res, err := ex.ExecContext(ctx, query, m.ID, formatTime(m.Date), m.Weight, bodyFat)
	if err != nil {
		return 0, fmt.Errorf("create body metric: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create body metric: %w", err)
	}
	m.ID = id
	return id, nil
}

// ListBodyMetrics reads body metrics matching q.
func (d *DB) ListBodyMetrics(ctx context.Context, q Query) ([]*models.BodyMetric, error) {
	suffix, args, err := q.build(TableBodyMetrics)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT id, date, weight, body_fat FROM body_metrics"+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*models.BodyMetric
	for rows.Next() {
		var m models.BodyMetric
		var date string
		var bodyFat sql.NullFloat64
		if err := rows.Scan(&m.ID, &date, &m.Weight, &bodyFat); err != nil {
			return nil, fmt.Errorf("scan body metric: %w", err)
		}
		m.Date = parseTime(date)
		if bodyFat.Valid {
			m.BodyFat = &bodyFat.Float64
		}
		metrics = append(metrics, &m)
	}
	return metrics, rows.Err()
}
