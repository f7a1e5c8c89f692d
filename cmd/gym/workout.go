// ABOUTME: CLI commands for workout sessions and history.
// ABOUTME: Supports start (interactive screen), log (non-interactive), list, and show.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/records"
	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
	"github.com/harperreed/gym/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	workoutSets   []string
	workoutAt     string
	workoutPeriod string
	workoutLimit  int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Run and review workouts",
	Long: `Run workout sessions from templates and review past workouts.

WORKFLOW:

  1. Pick a template:      gym template list
  2. Start a session:      gym workout start 1
  3. Log sets, check them off, and press f to finish.

COMMANDS:

  start    Run a session on the interactive screen
  log      Record a session from the command line
  list     List finished workouts with totals
  show     View one workout set by set

Only completed sets count toward total volume (weight x reps).`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <template-id>",
	Short: "Start a workout session",
	Long: `Start a workout session from a template on the interactive screen.

Each exercise starts with one empty set. Press ? on the screen for keys.
Finishing saves the workout; cancelling saves nothing.

Examples:
  gym workout start 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sess, err := session.Start(cmd.Context(), dbConn, id, sessionOptions()...)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		w, err := tui.Run(cmd.Context(), sess)
		if errors.Is(err, tui.ErrCancelled) {
			color.Yellow("⚠ Workout cancelled, nothing saved")
			return nil
		}
		if w == nil {
			return err
		}
		if err != nil {
			color.Yellow("⚠ Workout saved, but personal records were not updated: %v", err)
		}

		printFinished(w)
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <template-id>",
	Short: "Log a workout without the interactive screen",
	Long: `Record a finished session from a template in one command.

Each --set is exercise:weight:reps, where exercise is the 1-based position
in the template (see 'gym template show'). Repeat --set for more sets; each
logged set is marked completed. Exercises without a --set keep one empty set.
Logged workouts have no duration.

Examples:
  gym workout log 3 --set 1:225:5 --set 1:225:5 --set 2:315:3
  gym workout log 1 --set 1:135:10 --at "2025-01-31 18:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		specs := make([]setSpec, 0, len(workoutSets))
		for _, s := range workoutSets {
			spec, err := parseSetSpec(s)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}

		opts := sessionOptions()
		if workoutAt != "" {
			at, err := parseTime(workoutAt)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
			opts = append(opts, session.WithClock(func() time.Time { return at }))
		}

		sess, err := session.Start(cmd.Context(), dbConn, id, opts...)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}
		if err := applySets(sess, specs); err != nil {
			_ = sess.Cancel()
			return err
		}

		w, err := sess.Finalize(cmd.Context())
		if w == nil {
			_ = sess.Cancel()
			return fmt.Errorf("failed to save workout: %w", err)
		}
		if err != nil {
			color.Yellow("⚠ Workout saved, but personal records were not updated: %v", err)
		}

		printFinished(w)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	Long: `List finished workouts, newest first, with totals for the period.

--period accepts all, week, month, or year.

Examples:
  gym workout list
  gym workout list --period month --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := report.ParsePeriod(workoutPeriod)
		if err != nil {
			return err
		}

		workouts, err := dbConn.ListWorkouts(cmd.Context(), storage.OrderedBy("date", true, 0))
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		workouts = report.FilterWorkouts(workouts, period, time.Now())

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		stats := report.Summarize(workouts)
		fmt.Printf("%d workouts · %s lbs total · %d min average\n\n",
			stats.Total, formatWeight(stats.TotalVolume), stats.AvgDurationMinutes)

		if workoutLimit > 0 && len(workouts) > workoutLimit {
			workouts = workouts[:workoutLimit]
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(w.ID), 4)),
				faint.Sprint(w.Date.Local().Format("2006-01-02 15:04")),
				padRight(truncate(w.Name, 20), 20),
				padRight(timer.Format(w.Duration), 8),
				formatWeight(w.TotalVolume)+" lbs")
		}

		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := dbConn.GetWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		names, err := exerciseNames(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Workout: %s\n", w.Name)
		fmt.Printf("Date: %s\n", w.Date.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Duration: %s\n", timer.Format(w.Duration))
		fmt.Printf("Total volume: %s lbs\n", formatWeight(w.TotalVolume))

		faint := color.New(color.Faint)
		for _, e := range w.Exercises {
			fmt.Printf("\n%s\n", names.Name(e.ExerciseID))
			for i, s := range e.Sets {
				line := fmt.Sprintf("  %d. %s lbs x %d", i+1, formatWeight(s.Weight), s.Reps)
				if s.Completed {
					fmt.Println(line + " ✓")
				} else {
					fmt.Println(faint.Sprint(line))
				}
			}
		}

		return nil
	},
}

// sessionOptions adds personal record derivation when it is enabled.
func sessionOptions() []session.Option {
	var opts []session.Option
	if cfg == nil || cfg.DeriveRecordsEnabled() {
		opts = append(opts, session.WithFinalizeHook(records.Hook(dbConn)))
	}
	return opts
}

type setSpec struct {
	exercise int
	weight   float64
	reps     float64
}

// parseSetSpec reads "exercise:weight:reps" with a 1-based exercise position.
func parseSetSpec(s string) (setSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return setSpec{}, fmt.Errorf("invalid set %q (use exercise:weight:reps)", s)
	}
	ex, err := strconv.Atoi(parts[0])
	if err != nil || ex < 1 {
		return setSpec{}, fmt.Errorf("invalid exercise position in %q", s)
	}
	weight, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return setSpec{}, fmt.Errorf("invalid weight in %q", s)
	}
	reps, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return setSpec{}, fmt.Errorf("invalid reps in %q", s)
	}
	return setSpec{exercise: ex - 1, weight: weight, reps: reps}, nil
}

// applySets fills the first set of each exercise, then appends.
func applySets(sess *session.Session, specs []setSpec) error {
	logged := make(map[int]int)
	for _, spec := range specs {
		idx := spec.exercise
		if logged[idx] > 0 {
			if err := sess.AddSet(idx); err != nil {
				return fmt.Errorf("exercise %d: %w", idx+1, err)
			}
		}
		setIdx := logged[idx]
		if err := sess.UpdateSet(idx, setIdx, session.FieldWeight, spec.weight); err != nil {
			return fmt.Errorf("exercise %d weight: %w", idx+1, err)
		}
		if err := sess.UpdateSet(idx, setIdx, session.FieldReps, spec.reps); err != nil {
			return fmt.Errorf("exercise %d reps: %w", idx+1, err)
		}
		if _, err := sess.ToggleSetComplete(idx, setIdx); err != nil {
			return fmt.Errorf("exercise %d: %w", idx+1, err)
		}
		logged[idx]++
	}
	logrus.WithField("sets", len(specs)).Debug("applied logged sets")
	return nil
}

func printFinished(w *models.Workout) {
	color.Green("✓ Finished %s", w.Name)
	fmt.Printf("  ID: %d\n", w.ID)
	fmt.Printf("  Duration: %s\n", timer.Format(w.Duration))
	fmt.Printf("  Total volume: %s lbs\n", formatWeight(w.TotalVolume))
}

func init() {
	workoutLogCmd.Flags().StringArrayVarP(&workoutSets, "set", "s", nil, "set as exercise:weight:reps (repeatable)")
	workoutLogCmd.Flags().StringVar(&workoutAt, "at", "", "workout date (YYYY-MM-DD HH:MM)")

	workoutListCmd.Flags().StringVarP(&workoutPeriod, "period", "p", "all", "all, week, month, or year")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	rootCmd.AddCommand(workoutCmd)
}
