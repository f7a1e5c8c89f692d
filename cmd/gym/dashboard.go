// ABOUTME: CLI command for the dashboard summary.
// ABOUTME: Shows workout counts, recent workouts, recent records, and templates.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/timer"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show a training summary",
	Long: `Show total workouts, workouts in the last seven days, personal record
count, and the most recent workouts and records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := report.Dashboard(cmd.Context(), dbConn, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		names, err := exerciseNames(cmd.Context())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		fmt.Printf("%s %d   %s %d   %s %d\n",
			bold.Sprint("Workouts:"), stats.TotalWorkouts,
			bold.Sprint("This week:"), stats.ThisWeek,
			bold.Sprint("PRs:"), stats.PersonalRecords)

		fmt.Println()
		bold.Println("Recent workouts")
		if len(stats.RecentWorkouts) == 0 {
			fmt.Println(faint.Sprint("  none yet, try 'gym workout start 1'"))
		}
		for _, w := range stats.RecentWorkouts {
			fmt.Printf("  %s %s %s %s lbs\n",
				faint.Sprint(w.Date.Local().Format("2006-01-02")),
				padRight(truncate(w.Name, 20), 20),
				padRight(timer.Format(w.Duration), 8),
				formatWeight(w.TotalVolume))
		}

		fmt.Println()
		bold.Println("Recent records")
		if len(stats.RecentRecords) == 0 {
			fmt.Println(faint.Sprint("  none yet"))
		}
		for _, pr := range stats.RecentRecords {
			fmt.Printf("  %s %s %s lbs x %d\n",
				faint.Sprint(pr.Date.Local().Format("2006-01-02")),
				padRight(truncate(names.Name(pr.ExerciseID), 28), 28),
				formatWeight(pr.Weight), pr.Reps)
		}

		fmt.Println()
		bold.Println("Templates")
		for _, t := range stats.Templates {
			fmt.Printf("  %s %s\n", faint.Sprint(padRight(fmt.Sprint(t.ID), 4)), t.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
