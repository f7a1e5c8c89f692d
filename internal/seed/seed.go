// ABOUTME: Populates an empty store with the default exercise catalog and templates.
// ABOUTME: Safe to run on every start; does nothing once any exercise exists.
package seed

import (
	"context"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// templateSize is how many exercises of a category each default template takes.
const templateSize = 5

type entry struct {
	name, muscle, equipment string
	category                models.Category
}

var catalog = []entry{
	// Push
	{"Bench Press", "Chest", "Barbell", models.CategoryPush},
	{"Incline Dumbbell Press", "Chest", "Dumbbell", models.CategoryPush},
	{"Cable Flyes", "Chest", "Cable", models.CategoryPush},
	{"Overhead Press", "Shoulders", "Barbell", models.CategoryPush},
	{"Lateral Raises", "Shoulders", "Dumbbell", models.CategoryPush},
	{"Tricep Pushdowns", "Triceps", "Cable", models.CategoryPush},
	{"Dips", "Triceps", "Bodyweight", models.CategoryPush},
	// Pull
	{"Pull Ups", "Back", "Bodyweight", models.CategoryPull},
	{"Barbell Rows", "Back", "Barbell", models.CategoryPull},
	{"Lat Pulldowns", "Back", "Cable", models.CategoryPull},
	{"Face Pulls", "Back", "Cable", models.CategoryPull},
	{"Barbell Curls", "Biceps", "Barbell", models.CategoryPull},
	{"Hammer Curls", "Biceps", "Dumbbell", models.CategoryPull},
	// Legs
	{"Squat", "Quads", "Barbell", models.CategoryLegs},
	{"Romanian Deadlift", "Hamstrings", "Barbell", models.CategoryLegs},
	{"Leg Press", "Quads", "Machine", models.CategoryLegs},
	{"Leg Curls", "Hamstrings", "Machine", models.CategoryLegs},
	{"Calf Raises", "Calves", "Machine", models.CategoryLegs},
	// Core
	{"Plank", "Abs", "Bodyweight", models.CategoryCore},
	{"Cable Crunches", "Abs", "Cable", models.CategoryCore},
}

var templates = []struct {
	name     string
	category models.Category
}{
	{"Push Day", models.CategoryPush},
	{"Pull Day", models.CategoryPull},
	{"Leg Day", models.CategoryLegs},
}

// Exercises returns fresh unsaved copies of the default catalog in order.
func Exercises() []*models.Exercise {
	out := make([]*models.Exercise, len(catalog))
	for i, c := range catalog {
		out[i] = models.NewExercise(c.name, c.category, c.muscle, c.equipment)
	}
	return out
}

// Run seeds repo when it has no exercises. It reports whether anything was
// written. The catalog and the templates are stored in one transaction.
func Run(ctx context.Context, repo storage.Repository) (bool, error) {
	seeded, err := repo.SeedDefaults(ctx, Exercises(), func(exercises []*models.Exercise) ([]*models.WorkoutTemplate, error) {
		return Templates(exercises), nil
	})
	if err != nil {
		return false, fmt.Errorf("seed defaults: %w", err)
	}
	return seeded, nil
}

// Templates builds the default Push/Pull/Leg day templates from stored
// exercises, taking the first few of each category in catalog order.
func Templates(exercises []*models.Exercise) []*models.WorkoutTemplate {
	out := make([]*models.WorkoutTemplate, 0, len(templates))
	for _, tpl := range templates {
		var ids []int64
		for _, e := range exercises {
			if e.Category == tpl.category && len(ids) < templateSize {
				ids = append(ids, e.ID)
			}
		}
		out = append(out, models.NewTemplate(tpl.name, ids))
	}
	return out
}
