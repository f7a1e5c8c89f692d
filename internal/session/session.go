// ABOUTME: Workout session state machine: per-exercise sets edited in memory until finish.
// ABOUTME: Finish writes exactly one Workout; cancel writes nothing.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
)

var (
	// ErrIndexOutOfRange is returned for an exercise or set index that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotActive is returned when editing a finished or cancelled session.
	ErrNotActive = errors.New("session is not active")
	// ErrNegativeValue is returned for a negative weight or rep count.
	ErrNegativeValue = errors.New("value must not be negative")
	// ErrFractionalReps is returned when reps is not a whole number.
	ErrFractionalReps = errors.New("reps must be a whole number")
	// ErrInvalidValue is returned for NaN or infinite input.
	ErrInvalidValue = errors.New("value must be a finite number")
)

// State is the lifecycle position of a session.
type State int

const (
	StateIdle State = iota
	StateActive
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field selects which value UpdateSet changes.
type Field int

const (
	FieldWeight Field = iota
	FieldReps
)

// ParseField maps "weight" or "reps" to a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "weight":
		return FieldWeight, nil
	case "reps":
		return FieldReps, nil
	default:
		return 0, fmt.Errorf("unknown field %q (use weight or reps)", s)
	}
}

// Store is the subset of storage.Repository a session needs.
type Store interface {
	GetTemplate(ctx context.Context, id int64) (*models.WorkoutTemplate, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	CreateWorkout(ctx context.Context, w *models.Workout) (int64, error)
}

// FinalizeHook runs after the workout has been stored.
type FinalizeHook func(ctx context.Context, w *models.Workout) error

// Option configures a Session.
type Option func(*Session)

// WithTracker supplies the elapsed-time tracker, mainly for tests.
func WithTracker(t *timer.Tracker) Option {
	return func(s *Session) {
		s.tracker = t
	}
}

// WithClock overrides the clock used to date the finished workout.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithFinalizeHook adds a hook run after a successful finish.
func WithFinalizeHook(h FinalizeHook) Option {
	return func(s *Session) {
		s.hooks = append(s.hooks, h)
	}
}

// Session is one in-progress workout built from a template. Its methods
// are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	store     Store
	template  *models.WorkoutTemplate
	exercises []*models.Exercise
	missing   []int
	entries   []models.WorkoutExercise
	state     State
	tracker   *timer.Tracker
	now       func() time.Time
	hooks     []FinalizeHook
	startedAt time.Time
	workout   *models.Workout
}

// Start loads the template and its exercises and starts the timer. Exercise
// references that no longer resolve are kept as nil entries and listed by
// Missing. Every exercise begins with one empty set.
func Start(ctx context.Context, store Store, templateID int64, opts ...Option) (*Session, error) {
	tpl, err := store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	s := &Session{
		store:    store,
		template: tpl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracker == nil {
		s.tracker = timer.New()
	}

	s.exercises = make([]*models.Exercise, len(tpl.ExerciseIDs))
	s.entries = make([]models.WorkoutExercise, len(tpl.ExerciseIDs))
	for i, id := range tpl.ExerciseIDs {
		e, err := store.GetExercise(ctx, id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			s.missing = append(s.missing, i)
		case err != nil:
			return nil, fmt.Errorf("load exercise %d: %w", id, err)
		default:
			s.exercises[i] = e
		}
		s.entries[i] = models.WorkoutExercise{
			ExerciseID: id,
			Sets:       []models.WorkoutSet{{}},
		}
	}

	s.state = StateActive
	s.startedAt = s.now()
	s.tracker.Start()
	return s, nil
}

// Template returns the template the session was started from.
func (s *Session) Template() *models.WorkoutTemplate {
	return s.template
}

// Exercises returns the resolved exercises in template order; unresolved
// references are nil.
func (s *Session) Exercises() []*models.Exercise {
	out := make([]*models.Exercise, len(s.exercises))
	copy(out, s.exercises)
	return out
}

// Missing lists the indices of exercise references that did not resolve.
func (s *Session) Missing() []int {
	out := make([]int, len(s.missing))
	copy(out, s.missing)
	return out
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Elapsed returns the seconds the timer has run.
func (s *Session) Elapsed() int {
	return s.tracker.Seconds()
}

// Entries returns a copy of the logged exercises and sets.
func (s *Session) Entries() []models.WorkoutExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneExercises(s.entries)
}

// Volume returns the running total volume of completed sets.
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TotalVolume(s.entries)
}

// Workout returns the stored workout once the session has finished.
func (s *Session) Workout() *models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workout
}

// AddSet appends a set copying the last set's weight and reps, not completed.
func (s *Session) AddSet(exerciseIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkExercise(exerciseIndex); err != nil {
		return err
	}

	sets := s.entries[exerciseIndex].Sets
	next := models.WorkoutSet{}
	if len(sets) > 0 {
		last := sets[len(sets)-1]
		next.Weight = last.Weight
		next.Reps = last.Reps
	}
	s.entries[exerciseIndex].Sets = append(sets, next)
	return nil
}

// UpdateSet replaces the weight or reps of one set. Values must be finite
// and non-negative; reps must be whole.
func (s *Session) UpdateSet(exerciseIndex, setIndex int, field Field, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSet(exerciseIndex, setIndex); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidValue
	}
	if value < 0 {
		return ErrNegativeValue
	}

	set := &s.entries[exerciseIndex].Sets[setIndex]
	switch field {
	case FieldWeight:
		set.Weight = value
	case FieldReps:
		if value != math.Trunc(value) {
			return ErrFractionalReps
		}
		set.Reps = int(value)
	default:
		return fmt.Errorf("unknown field %d", field)
	}
	return nil
}

// ToggleSetComplete flips the completed flag of one set and returns the new value.
func (s *Session) ToggleSetComplete(exerciseIndex, setIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSet(exerciseIndex, setIndex); err != nil {
		return false, err
	}
	set := &s.entries[exerciseIndex].Sets[setIndex]
	set.Completed = !set.Completed
	return set.Completed, nil
}

// Pause stops the timer without ending the session.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	s.tracker.Stop()
	return nil
}

// Resume restarts a paused timer.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	s.tracker.Start()
	return nil
}

// Paused reports whether the timer is stopped while the session is active.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateActive && !s.tracker.Running()
}

// Finalize stops the timer and stores the session as a single Workout dated
// now, named after the template. If the store rejects the write the session
// stays active, the timer resumes, and the call may be retried. Hook errors
// are returned alongside the stored workout.
func (s *Session) Finalize(ctx context.Context) (*models.Workout, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil, ErrNotActive
	}

	wasRunning := s.tracker.Running()
	s.tracker.Stop()

	templateID := s.template.ID
	exercises := models.CloneExercises(s.entries)
	w := &models.Workout{
		TemplateID:  &templateID,
		Name:        s.template.Name,
		Date:        s.now(),
		Duration:    s.tracker.Seconds(),
		Exercises:   exercises,
		TotalVolume: models.TotalVolume(exercises),
	}

	if _, err := s.store.CreateWorkout(ctx, w); err != nil {
		if wasRunning {
			s.tracker.Start()
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("finish workout: %w", err)
	}

	s.state = StateFinished
	s.workout = w
	hooks := s.hooks
	s.mu.Unlock()

	var errs []error
	for _, h := range hooks {
		if err := h(ctx, w); err != nil {
			errs = append(errs, err)
		}
	}
	return w, errors.Join(errs...)
}

// Cancel stops the timer and discards the session without writing.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	s.tracker.Stop()
	s.entries = nil
	s.state = StateCancelled
	return nil
}

func (s *Session) checkExercise(exerciseIndex int) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.entries) {
		return fmt.Errorf("%w: exercise %d of %d", ErrIndexOutOfRange, exerciseIndex, len(s.entries))
	}
	return nil
}

func (s *Session) checkSet(exerciseIndex, setIndex int) error {
	if err := s.checkExercise(exerciseIndex); err != nil {
		return err
	}
	sets := s.entries[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return fmt.Errorf("%w: set %d of %d", ErrIndexOutOfRange, setIndex, len(sets))
	}
	return nil
}
