// ABOUTME: Repository interface for gym data storage.
// ABOUTME: Defines per-table insert, bulk insert, get, and query operations plus live subscriptions.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/gym/internal/models"
)

// ErrNotFound is returned (wrapped) when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for gym data.
// Writes never check references between tables: a template or workout may
// point at exercise IDs that do not exist.
type Repository interface {
	// Exercise operations
	CreateExercise(ctx context.Context, e *models.Exercise) (int64, error)
	BulkCreateExercises(ctx context.Context, es []*models.Exercise) ([]int64, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	ListExercises(ctx context.Context, q Query) ([]*models.Exercise, error)
	CountExercises(ctx context.Context) (int, error)
	SeedDefaults(ctx context.Context, exercises []*models.Exercise, build TemplateBuilder) (bool, error)

	// Template operations
	CreateTemplate(ctx context.Context, t *models.WorkoutTemplate) (int64, error)
	BulkCreateTemplates(ctx context.Context, ts []*models.WorkoutTemplate) ([]int64, error)
	GetTemplate(ctx context.Context, id int64) (*models.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, q Query) ([]*models.WorkoutTemplate, error)

	// Workout operations
	CreateWorkout(ctx context.Context, w *models.Workout) (int64, error)
	BulkCreateWorkouts(ctx context.Context, ws []*models.Workout) ([]int64, error)
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	ListWorkouts(ctx context.Context, q Query) ([]*models.Workout, error)

	// Progress operations
	CreatePersonalRecord(ctx context.Context, pr *models.PersonalRecord) (int64, error)
	BulkCreatePersonalRecords(ctx context.Context, prs []*models.PersonalRecord) ([]int64, error)
	ListPersonalRecords(ctx context.Context, q Query) ([]*models.PersonalRecord, error)
	CreateBodyMetric(ctx context.Context, m *models.BodyMetric) (int64, error)
	BulkCreateBodyMetrics(ctx context.Context, ms []*models.BodyMetric) ([]int64, error)
	ListBodyMetrics(ctx context.Context, q Query) ([]*models.BodyMetric, error)

	// Live queries
	Subscribe(tables ...Table) *Subscription

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}
