// ABOUTME: Derives personal records from finished workouts.
// ABOUTME: A set becomes a record when it beats the stored best for its exercise.
package records

import (
	"context"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// Store is the subset of storage.Repository used for records.
type Store interface {
	ListPersonalRecords(ctx context.Context, q storage.Query) ([]*models.PersonalRecord, error)
	CreatePersonalRecord(ctx context.Context, pr *models.PersonalRecord) (int64, error)
}

// BestSet returns the strongest completed set of e: heaviest, then most
// reps. Sets with no weight never count. ok is false when nothing qualifies.
func BestSet(e models.WorkoutExercise) (best models.WorkoutSet, ok bool) {
	for _, s := range e.CompletedSets() {
		if s.Weight <= 0 {
			continue
		}
		if !ok || s.Weight > best.Weight || (s.Weight == best.Weight && s.Reps > best.Reps) {
			best, ok = s, true
		}
	}
	return best, ok
}

// Best returns the current best record per exercise ID.
func Best(ctx context.Context, store Store) (map[int64]*models.PersonalRecord, error) {
	prs, err := store.ListPersonalRecords(ctx, storage.OrderedBy("date", false, 0))
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}

	best := make(map[int64]*models.PersonalRecord)
	for _, pr := range prs {
		if pr.Beats(best[pr.ExerciseID]) {
			best[pr.ExerciseID] = pr
		}
	}
	return best, nil
}

// Derive stores a new PersonalRecord, dated at the workout, for every
// exercise in w whose best completed set beats the stored best. The new
// records are returned in workout order.
func Derive(ctx context.Context, store Store, w *models.Workout) ([]*models.PersonalRecord, error) {
	best, err := Best(ctx, store)
	if err != nil {
		return nil, err
	}

	var created []*models.PersonalRecord
	for _, e := range w.Exercises {
		set, ok := BestSet(e)
		if !ok {
			continue
		}
		pr := models.NewPersonalRecord(e.ExerciseID, set.Weight, set.Reps).WithDate(w.Date)
		if !pr.Beats(best[e.ExerciseID]) {
			continue
		}
		if _, err := store.CreatePersonalRecord(ctx, pr); err != nil {
			return created, fmt.Errorf("record personal best: %w", err)
		}
		best[e.ExerciseID] = pr
		created = append(created, pr)
	}
	return created, nil
}

// Hook adapts Derive for use after a session finishes.
func Hook(store Store) func(ctx context.Context, w *models.Workout) error {
	return func(ctx context.Context, w *models.Workout) error {
		_, err := Derive(ctx, store, w)
		return err
	}
}
