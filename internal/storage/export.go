// ABOUTME: Export and import functionality for gym data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; JSON import preserves IDs.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for gym data.
type ExportData struct {
	Version         string                    `json:"version" yaml:"version"`
	ExportedAt      time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool            string                    `json:"tool" yaml:"tool"`
	Exercises       []*models.Exercise        `json:"exercises" yaml:"exercises"`
	Templates       []*models.WorkoutTemplate `json:"workoutTemplates" yaml:"workout_templates"`
	Workouts        []*models.Workout         `json:"workouts" yaml:"workouts"`
	PersonalRecords []*models.PersonalRecord  `json:"personalRecords" yaml:"personal_records"`
	BodyMetrics     []*models.BodyMetric      `json:"bodyMetrics" yaml:"body_metrics"`
}

// GetAllData retrieves all data for export, each table in insertion order.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	exercises, err := d.ListExercises(ctx, All())
	if err != nil {
		return nil, err
	}
	templates, err := d.ListTemplates(ctx, All())
	if err != nil {
		return nil, err
	}
	workouts, err := d.ListWorkouts(ctx, All())
	if err != nil {
		return nil, err
	}
	records, err := d.ListPersonalRecords(ctx, All())
	if err != nil {
		return nil, err
	}
	metrics, err := d.ListBodyMetrics(ctx, All())
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:         "1.0",
		ExportedAt:      time.Now(),
		Tool:            "gym",
		Exercises:       exercises,
		Templates:       templates,
		Workouts:        workouts,
		PersonalRecords: records,
		BodyMetrics:     metrics,
	}, nil
}

// ImportData imports every table in one transaction. Records keep their
// IDs, so importing into a store that already holds those IDs fails and
// nothing is written. Exercises must pass models validation.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		for _, e := range data.Exercises {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("import exercise %d: %w", e.ID, err)
			}
			if _, err := insertExercise(ctx, tx, e); err != nil {
				return fmt.Errorf("import exercise %d: %w", e.ID, err)
			}
		}
		for _, t := range data.Templates {
			if _, err := insertTemplate(ctx, tx, t); err != nil {
				return fmt.Errorf("import template %d: %w", t.ID, err)
			}
		}
		for _, w := range data.Workouts {
			if _, err := insertWorkout(ctx, tx, w); err != nil {
				return fmt.Errorf("import workout %d: %w", w.ID, err)
			}
		}
		for _, pr := range data.PersonalRecords {
			if _, err := insertPersonalRecord(ctx, tx, pr); err != nil {
				return fmt.Errorf("import personal record %d: %w", pr.ID, err)
			}
		}
		for _, m := range data.BodyMetrics {
			if _, err := insertBodyMetric(ctx, tx, m); err != nil {
				return fmt.Errorf("import body metric %d: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, t := range AllTables {
		d.notifier.Notify(t)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}

// ExportYAML exports all data as YAML with workouts flattened for reading.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	names := exerciseNames(data.Exercises)

	yamlData := struct {
		Version         string                   `yaml:"version"`
		ExportedAt      string                   `yaml:"exported_at"`
		Tool            string                   `yaml:"tool"`
		Exercises       []*models.Exercise       `yaml:"exercises"`
		Templates       []yamlTemplate           `yaml:"workout_templates"`
		Workouts        []yamlWorkout            `yaml:"workouts"`
		PersonalRecords []*models.PersonalRecord `yaml:"personal_records"`
		BodyMetrics     []*models.BodyMetric     `yaml:"body_metrics"`
	}{
		Version:         data.Version,
		ExportedAt:      data.ExportedAt.Format(time.RFC3339),
		Tool:            data.Tool,
		Exercises:       data.Exercises,
		Templates:       make([]yamlTemplate, 0, len(data.Templates)),
		Workouts:        make([]yamlWorkout, 0, len(data.Workouts)),
		PersonalRecords: data.PersonalRecords,
		BodyMetrics:     data.BodyMetrics,
	}

	for _, t := range data.Templates {
		yt := yamlTemplate{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt.Format(time.RFC3339)}
		for _, id := range t.ExerciseIDs {
			yt.Exercises = append(yt.Exercises, nameOrUnknown(names, id))
		}
		yamlData.Templates = append(yamlData.Templates, yt)
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:          w.ID,
			Name:        w.Name,
			Date:        w.Date.Format(time.RFC3339),
			Duration:    w.Duration,
			TotalVolume: w.TotalVolume,
		}
		for _, e := range w.Exercises {
			ye := yamlWorkoutExercise{Exercise: nameOrUnknown(names, e.ExerciseID)}
			for _, s := range e.CompletedSets() {
				ye.Sets = append(ye.Sets, fmt.Sprintf("%g x %d", s.Weight, s.Reps))
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlTemplate struct {
	ID        int64    `yaml:"id"`
	Name      string   `yaml:"name"`
	Exercises []string `yaml:"exercises"`
	CreatedAt string   `yaml:"created_at"`
}

type yamlWorkout struct {
	ID          int64                 `yaml:"id"`
	Name        string                `yaml:"name"`
	Date        string                `yaml:"date"`
	Duration    int                   `yaml:"duration_seconds"`
	TotalVolume float64               `yaml:"total_volume"`
	Exercises   []yamlWorkoutExercise `yaml:"exercises,omitempty"`
}

type yamlWorkoutExercise struct {
	Exercise string   `yaml:"exercise"`
	Sets     []string `yaml:"sets,omitempty"`
}

// ExportMarkdown exports workout history (and personal records) as Markdown.
func (d *DB) ExportMarkdown(ctx context.Context, since *time.Time) (string, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return "", err
	}
	names := exerciseNames(data.Exercises)

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Gym Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	var workouts []*models.Workout
	for _, w := range data.Workouts {
		if since == nil || !w.Date.Before(*since) {
			workouts = append(workouts, w)
		}
	}

	sb.WriteString("## Workouts\n\n")
	if len(workouts) == 0 {
		sb.WriteString("No workouts.\n\n")
	} else {
		sb.WriteString("| Date | Name | Duration | Volume |\n")
		sb.WriteString("|------|------|----------|--------|\n")
		for i := len(workouts) - 1; i >= 0; i-- {
			w := workouts[i]
			sb.WriteString(fmt.Sprintf("| %s | %s | %dm %ds | %.0f lbs |\n",
				w.Date.Local().Format("2006-01-02 15:04"),
				w.Name, w.Duration/60, w.Duration%60, w.TotalVolume))
		}
		sb.WriteString("\n")

		for i := len(workouts) - 1; i >= 0; i-- {
			w := workouts[i]
			sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", w.Name, w.Date.Local().Format("2006-01-02")))
			for _, e := range w.Exercises {
				sets := e.CompletedSets()
				if len(sets) == 0 {
					continue
				}
				parts := make([]string, len(sets))
				for j, s := range sets {
					parts[j] = fmt.Sprintf("%g lbs x %d", s.Weight, s.Reps)
				}
				sb.WriteString(fmt.Sprintf("- %s: %s\n", nameOrUnknown(names, e.ExerciseID), strings.Join(parts, ", ")))
			}
			sb.WriteString("\n")
		}
	}

	if len(data.PersonalRecords) > 0 {
		sb.WriteString("## Personal Records\n\n")
		sb.WriteString("| Date | Exercise | Weight | Reps |\n")
		sb.WriteString("|------|----------|--------|------|\n")
		for _, pr := range data.PersonalRecords {
			if since != nil && pr.Date.Before(*since) {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %g lbs | %d |\n",
				pr.Date.Local().Format("2006-01-02"),
				nameOrUnknown(names, pr.ExerciseID), pr.Weight, pr.Reps))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// UnknownExercise is shown in place of a dangling exercise reference.
const UnknownExercise = "Unknown Exercise"

func exerciseNames(exercises []*models.Exercise) map[int64]string {
	names := make(map[int64]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names
}

func nameOrUnknown(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return UnknownExercise
}
