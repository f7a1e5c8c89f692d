// ABOUTME: CLI commands for progress tracking.
// ABOUTME: Personal records (pr list/add) and body metrics (body list/add).
package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var (
	prAt      string
	prLimit   int
	bodyAt    string
	bodyFat   float64
	bodyLimit int
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Personal records",
	Long: `View and add personal records.

Records are added automatically when a finished workout beats your best
completed set for an exercise (heavier wins, then more reps). Turn that off
with "derive_records": false in ~/.config/gym/config.json.`,
}

var prListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List personal records",
	RunE: func(cmd *cobra.Command, args []string) error {
		prs, err := dbConn.ListPersonalRecords(cmd.Context(), storage.OrderedBy("date", true, prLimit))
		if err != nil {
			return fmt.Errorf("failed to list personal records: %w", err)
		}

		if len(prs) == 0 {
			fmt.Println("No personal records yet.")
			return nil
		}

		names, err := exerciseNames(cmd.Context())
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, pr := range prs {
			fmt.Printf("%s %s %s %s lbs x %d\n",
				faint.Sprint(padRight(fmt.Sprint(pr.ID), 4)),
				faint.Sprint(pr.Date.Local().Format("2006-01-02")),
				padRight(truncate(names.Name(pr.ExerciseID), 28), 28),
				formatWeight(pr.Weight), pr.Reps)
		}

		return nil
	},
}

var prAddCmd = &cobra.Command{
	Use:   "add <exercise-id> <weight> <reps>",
	Short: "Add a personal record",
	Long: `Record a personal record by hand.

Examples:
  gym pr add 14 315 3
  gym pr add 1 225 5 --at 2025-01-15`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, err := parseID(args[0])
		if err != nil {
			return err
		}
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil || weight < 0 || math.IsInf(weight, 0) || math.IsNaN(weight) {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		reps, err := strconv.Atoi(args[2])
		if err != nil || reps < 0 {
			return fmt.Errorf("invalid reps: %s", args[2])
		}

		ex, err := dbConn.GetExercise(cmd.Context(), exID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("exercise not found: %d", exID)
			}
			return fmt.Errorf("failed to get exercise: %w", err)
		}

		pr := models.NewPersonalRecord(exID, weight, reps)
		if prAt != "" {
			at, err := parseTime(prAt)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
			pr.WithDate(at)
		}

		if _, err := dbConn.CreatePersonalRecord(cmd.Context(), pr); err != nil {
			return fmt.Errorf("failed to add personal record: %w", err)
		}

		color.Green("✓ Added personal record for %s", ex.Name)
		fmt.Printf("  %s lbs x %d\n", formatWeight(weight), reps)

		return nil
	},
}

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Body metrics",
	Long: `Track body weight and optional body fat percentage.

Examples:
  gym body add 182.4
  gym body add 181 --body-fat 17.5 --at 2025-02-01
  gym body list`,
}

var bodyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := dbConn.ListBodyMetrics(cmd.Context(), storage.OrderedBy("date", true, bodyLimit))
		if err != nil {
			return fmt.Errorf("failed to list body metrics: %w", err)
		}

		if len(metrics) == 0 {
			fmt.Println("No body metrics found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range metrics {
			fat := ""
			if m.BodyFat != nil {
				fat = fmt.Sprintf("%s%% fat", formatWeight(*m.BodyFat))
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(m.ID), 4)),
				faint.Sprint(m.Date.Local().Format("2006-01-02")),
				padRight(formatWeight(m.Weight)+" lbs", 12),
				fat)
		}

		return nil
	},
}

var bodyAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Add a body metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil || weight <= 0 || math.IsInf(weight, 0) || math.IsNaN(weight) {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		m := models.NewBodyMetric(weight)
		if cmd.Flags().Changed("body-fat") {
			if bodyFat < 0 || bodyFat > 100 {
				return fmt.Errorf("invalid body fat: %v (use 0-100)", bodyFat)
			}
			m.WithBodyFat(bodyFat)
		}
		if bodyAt != "" {
			at, err := parseTime(bodyAt)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
			m.WithDate(at)
		}

		if _, err := dbConn.CreateBodyMetric(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to add body metric: %w", err)
		}

		color.Green("✓ Added body weight %s lbs", formatWeight(weight))
		return nil
	},
}

func init() {
	prListCmd.Flags().IntVarP(&prLimit, "limit", "n", 20, "max number of results")
	prAddCmd.Flags().StringVar(&prAt, "at", "", "record date (YYYY-MM-DD HH:MM)")

	bodyListCmd.Flags().IntVarP(&bodyLimit, "limit", "n", 20, "max number of results")
	bodyAddCmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "body fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyAt, "at", "", "measurement date (YYYY-MM-DD HH:MM)")

	prCmd.AddCommand(prListCmd)
	prCmd.AddCommand(prAddCmd)
	bodyCmd.AddCommand(bodyListCmd)
	bodyCmd.AddCommand(bodyAddCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(bodyCmd)
}
