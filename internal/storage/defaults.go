// ABOUTME: First-run default data insert for the gym store.
// ABOUTME: Catalog and templates land in one transaction or not at all.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// TemplateBuilder derives templates from exercises that already have IDs.
type TemplateBuilder func(exercises []*models.Exercise) ([]*models.WorkoutTemplate, error)

// SeedDefaults inserts exercises, then the templates built from them, in a
// single transaction. It writes nothing when the exercises table is not
// empty and reports whether it wrote.
func (d *DB) SeedDefaults(ctx context.Context, exercises []*models.Exercise, build TemplateBuilder) (bool, error) {
	seeded := false
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&n); err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}
		if n > 0 {
			return nil
		}

		for _, e := range exercises {
			if _, err := insertExercise(ctx, tx, e); err != nil {
				return err
			}
		}
		templates, err := build(exercises)
		if err != nil {
			return fmt.Errorf("build templates: %w", err)
		}
		for _, t := range templates {
			if _, err := insertTemplate(ctx, tx, t); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		d.notifier.Notify(TableExercises)
		d.notifier.Notify(TableTemplates)
	}
	return seeded, nil
}
