// ABOUTME: MCP tool implementations for the gym store.
// ABOUTME: Catalog and history reads, plus a full workout session driven by session ID.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
)

// ErrUnknownSession is returned for a session ID the server does not hold.
var ErrUnknownSession = errors.New("unknown session")

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog, optionally filtered by search text and category",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to the catalog",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List workout templates with their exercises",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a timed workout session from a template; returns a session ID",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add a set to an exercise in a session, copying the previous set's weight and reps",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Set the weight (lbs) or reps of one set in a session",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_set",
		Description: "Mark a set completed, or not completed if it already was",
	}, s.handleToggleSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish a session and save it as a workout",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cancel_workout",
		Description: "Discard a session without saving",
	}, s.handleCancelWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Show the current state of a session",
	}, s.handleGetSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List finished workouts, newest first, with summary stats",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a finished workout with every set",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_personal_records",
		Description: "List personal records, newest first",
	}, s.handleListPersonalRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_body_metric",
		Description: "Record body weight and optional body fat percentage",
	}, s.handleAddBodyMetric)
}

// Tool input/output types

type emptyInput struct{}

type listExercisesInput struct {
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against name or muscle group"`
	Category string `json:"category,omitempty" jsonschema:"Push, Pull, Legs, Core, or All"`
}

type exercisesOutput struct {
	Exercises []*models.Exercise `json:"exercises"`
	Count     int                `json:"count"`
}

type addExerciseInput struct {
	Name        string `json:"name" jsonschema:"Exercise name"`
	Category    string `json:"category" jsonschema:"Push, Pull, Legs, or Core"`
	MuscleGroup string `json:"muscle_group" jsonschema:"Primary muscle group"`
	Equipment   string `json:"equipment" jsonschema:"Equipment used"`
}

type exerciseOutput struct {
	Exercise *models.Exercise `json:"exercise"`
	Message  string           `json:"message"`
}

type templateView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ExerciseIDs []int64   `json:"exercise_ids"`
	Exercises   []string  `json:"exercises"`
	CreatedAt   time.Time `json:"created_at"`
}

type templatesOutput struct {
	Templates []templateView `json:"templates"`
}

type startWorkoutInput struct {
	TemplateID int64 `json:"template_id" jsonschema:"Template ID"`
}

type sessionInput struct {
	SessionID string `json:"session_id" jsonschema:"Session ID returned by start_workout"`
}

type addSetInput struct {
	SessionID     string `json:"session_id" jsonschema:"Session ID returned by start_workout"`
	ExerciseIndex int    `json:"exercise_index" jsonschema:"Zero-based exercise position in the session"`
}

type updateSetInput struct {
	SessionID     string  `json:"session_id" jsonschema:"Session ID returned by start_workout"`
	ExerciseIndex int     `json:"exercise_index" jsonschema:"Zero-based exercise position in the session"`
	SetIndex      int     `json:"set_index" jsonschema:"Zero-based set position"`
	Field         string  `json:"field" jsonschema:"weight or reps"`
	Value         float64 `json:"value" jsonschema:"New value; reps must be whole"`
}

type toggleSetInput struct {
	SessionID     string `json:"session_id" jsonschema:"Session ID returned by start_workout"`
	ExerciseIndex int    `json:"exercise_index" jsonschema:"Zero-based exercise position in the session"`
	SetIndex      int    `json:"set_index" jsonschema:"Zero-based set position"`
}

type sessionExercise struct {
	Index      int                 `json:"index"`
	ExerciseID int64               `json:"exercise_id"`
	Name       string              `json:"name"`
	Sets       []models.WorkoutSet `json:"sets"`
}

type sessionOutput struct {
	SessionID      string            `json:"session_id"`
	Template       string            `json:"template"`
	State          string            `json:"state"`
	StartedAt      time.Time         `json:"started_at"`
	Elapsed        string            `json:"elapsed"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
	Volume         float64           `json:"volume"`
	Exercises      []sessionExercise `json:"exercises"`
}

type finishOutput struct {
	Workout    *models.Workout          `json:"workout"`
	NewRecords []*models.PersonalRecord `json:"new_records,omitempty"`
	Message    string                   `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	Period string `json:"period,omitempty" jsonschema:"all, week, month, or year (default all)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutsOutput struct {
	Workouts []*models.Workout  `json:"workouts"`
	Stats    report.HistoryStats `json:"stats"`
}

type getWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type workoutDetail struct {
	Workout   *models.Workout   `json:"workout"`
	Duration  string            `json:"duration"`
	Exercises []sessionExercise `json:"exercises"`
}

type recordView struct {
	ID         int64     `json:"id"`
	ExerciseID int64     `json:"exercise_id"`
	Exercise   string    `json:"exercise"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Date       time.Time `json:"date"`
}

type recordsOutput struct {
	Records []recordView `json:"records"`
}

type addBodyMetricInput struct {
	Weight  float64  `json:"weight" jsonschema:"Body weight in lbs"`
	BodyFat *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	Date    string   `json:"date,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD), defaults to now"`
}

type bodyMetricOutput struct {
	Metric  *models.BodyMetric `json:"metric"`
	Message string             `json:"message"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	all, err := s.repo.ListExercises(ctx, storage.All())
	if err != nil {
		return nil, exercisesOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	filtered := report.FilterExercises(all, input.Search, input.Category)
	return nil, exercisesOutput{Exercises: filtered, Count: len(filtered)}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	e := models.NewExercise(input.Name, category, input.MuscleGroup, input.Equipment)
	if err := e.Validate(); err != nil {
		return nil, exerciseOutput{}, err
	}

	if _, err := s.repo.CreateExercise(ctx, e); err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, exerciseOutput{
		Exercise: e,
		Message:  fmt.Sprintf("Added %s (%s, ID: %d)", e.Name, e.Category, e.ID),
	}, nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, templatesOutput, error) {
	templates, err := s.repo.ListTemplates(ctx, storage.All())
	if err != nil {
		return nil, templatesOutput{}, fmt.Errorf("failed to list templates: %w", err)
	}
	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, templatesOutput{}, err
	}

	out := templatesOutput{Templates: []templateView{}}
	for _, t := range templates {
		v := templateView{ID: t.ID, Name: t.Name, ExerciseIDs: t.ExerciseIDs, CreatedAt: t.CreatedAt}
		for _, id := range t.ExerciseIDs {
			v.Exercises = append(v.Exercises, names.Name(id))
		}
		out.Templates = append(out.Templates, v)
	}
	return nil, out, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, sessionOutput, error) {
	// The session outlives this request.
	sess := &liveSession{}
	var err error
	sess.Session, err = session.Start(context.WithoutCancel(ctx), s.repo, input.TemplateID, s.newSessionOptions(sess)...)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{"session": id, "template": input.TemplateID}).Info("workout session started")
	if missing := sess.Missing(); len(missing) > 0 {
		logrus.WithField("indices", missing).Warn("template references unknown exercises")
	}

	return nil, sessionView(id, sess), nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, sessionOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	if err := sess.AddSet(input.ExerciseIndex); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to add set: %w", err)
	}
	return nil, sessionView(input.SessionID, sess), nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, sessionOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	field, err := session.ParseField(input.Field)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	if err := sess.UpdateSet(input.ExerciseIndex, input.SetIndex, field, input.Value); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to update set: %w", err)
	}
	return nil, sessionView(input.SessionID, sess), nil
}

func (s *Server) handleToggleSet(ctx context.Context, req *mcp.CallToolRequest, input toggleSetInput) (*mcp.CallToolResult, sessionOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	if _, err := sess.ToggleSetComplete(input.ExerciseIndex, input.SetIndex); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to toggle set: %w", err)
	}
	return nil, sessionView(input.SessionID, sess), nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input sessionInput) (*mcp.CallToolResult, finishOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, finishOutput{}, err
	}

	w, err := sess.Finalize(ctx)
	if w == nil {
		return nil, finishOutput{}, fmt.Errorf("failed to finish workout: %w", err)
	}
	s.forget(input.SessionID)
	if err != nil {
		logrus.WithError(err).Warn("workout saved but personal records were not updated")
	}

	return nil, finishOutput{
		Workout:    w,
		NewRecords: sess.derived,
		Message:    fmt.Sprintf("Saved %s: %s, %.0f lbs (ID: %d)", w.Name, timer.Format(w.Duration), w.TotalVolume, w.ID),
	}, nil
}

func (s *Server) handleCancelWorkout(ctx context.Context, req *mcp.CallToolRequest, input sessionInput) (*mcp.CallToolResult, simpleOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := sess.Cancel(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to cancel workout: %w", err)
	}
	s.forget(input.SessionID)

	return nil, simpleOutput{Message: fmt.Sprintf("Cancelled session %s", input.SessionID)}, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input sessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	sess, err := s.session(input.SessionID)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	return nil, sessionView(input.SessionID, sess), nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	period, err := report.ParsePeriod(input.Period)
	if err != nil {
		return nil, workoutsOutput{}, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	all, err := s.repo.ListWorkouts(ctx, storage.OrderedBy("date", true, 0))
	if err != nil {
		return nil, workoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}

	filtered := report.FilterWorkouts(all, period, time.Now())
	out := workoutsOutput{Workouts: filtered, Stats: report.Summarize(filtered)}
	if len(out.Workouts) > input.Limit {
		out.Workouts = out.Workouts[:input.Limit]
	}
	if out.Workouts == nil {
		out.Workouts = []*models.Workout{}
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, workoutDetail, error) {
	w, err := s.repo.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, workoutDetail{}, fmt.Errorf("failed to get workout: %w", err)
	}
	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, workoutDetail{}, err
	}

	return nil, workoutDetail{
		Workout:   w,
		Duration:  timer.Format(w.Duration),
		Exercises: exerciseViews(w.Exercises, names),
	}, nil
}

func (s *Server) handleListPersonalRecords(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, recordsOutput, error) {
	prs, err := s.repo.ListPersonalRecords(ctx, storage.OrderedBy("date", true, 0))
	if err != nil {
		return nil, recordsOutput{}, fmt.Errorf("failed to list personal records: %w", err)
	}
	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, recordsOutput{}, err
	}

	out := recordsOutput{Records: []recordView{}}
	for _, pr := range prs {
		out.Records = append(out.Records, recordView{
			ID:         pr.ID,
			ExerciseID: pr.ExerciseID,
			Exercise:   names.Name(pr.ExerciseID),
			Weight:     pr.Weight,
			Reps:       pr.Reps,
			Date:       pr.Date,
		})
	}
	return nil, out, nil
}

func (s *Server) handleAddBodyMetric(ctx context.Context, req *mcp.CallToolRequest, input addBodyMetricInput) (*mcp.CallToolResult, bodyMetricOutput, error) {
	if input.Weight <= 0 {
		return nil, bodyMetricOutput{}, fmt.Errorf("weight must be positive")
	}

	m := models.NewBodyMetric(input.Weight)
	if input.BodyFat != nil {
		m.WithBodyFat(*input.BodyFat)
	}
	if input.Date != "" {
		t, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02", input.Date, time.Local)
		}
		if err != nil {
			return nil, bodyMetricOutput{}, fmt.Errorf("invalid date %q", input.Date)
		}
		m.WithDate(t)
	}

	if _, err := s.repo.CreateBodyMetric(ctx, m); err != nil {
		return nil, bodyMetricOutput{}, fmt.Errorf("failed to add body metric: %w", err)
	}

	return nil, bodyMetricOutput{
		Metric:  m,
		Message: fmt.Sprintf("Recorded %.1f lbs (ID: %d)", m.Weight, m.ID),
	}, nil
}

// helpers

func (s *Server) session(id string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return sess, nil
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Server) exerciseNames(ctx context.Context) (report.ExerciseNames, error) {
	exercises, err := s.repo.ListExercises(ctx, storage.All())
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return report.NewExerciseNames(exercises), nil
}

func sessionView(id string, sess *liveSession) sessionOutput {
	names := report.ExerciseNames{}
	for _, e := range sess.Exercises() {
		if e != nil {
			names[e.ID] = e.Name
		}
	}

	return sessionOutput{
		SessionID:      id,
		Template:       sess.Template().Name,
		State:          sess.State().String(),
		StartedAt:      sess.StartedAt(),
		Elapsed:        timer.Format(sess.Elapsed()),
		ElapsedSeconds: sess.Elapsed(),
		Volume:         sess.Volume(),
		Exercises:      exerciseViews(sess.Entries(), names),
	}
}

func exerciseViews(entries []models.WorkoutExercise, names report.ExerciseNames) []sessionExercise {
	out := make([]sessionExercise, 0, len(entries))
	for i, e := range entries {
		out = append(out, sessionExercise{
			Index:      i,
			ExerciseID: e.ExerciseID,
			Name:       names.Name(e.ExerciseID),
			Sets:       e.Sets,
		})
	}
	return out
}
