// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports list with search/category filters and add with validation.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exerciseSearch    string
	exerciseCategory  string
	exerciseAddCat    string
	exerciseMuscle    string
	exerciseEquipment string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse and add exercises",
	Long: `Browse the exercise catalog and add your own exercises.

Every exercise belongs to one category: Push, Pull, Legs, or Core.

COMMANDS:

  list     List exercises, optionally filtered
  add      Add a custom exercise`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List exercises in the catalog.

--search matches name or muscle group, case-insensitive.
--category accepts Push, Pull, Legs, Core, or All.

Examples:
  gym exercise list
  gym exercise list --category legs
  gym exercise list --search chest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := dbConn.ListExercises(cmd.Context(), storage.OrderedBy("name", false, 0))
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		category := exerciseCategory
		if category != "" && !strings.EqualFold(category, "all") {
			c, err := models.ParseCategory(category)
			if err != nil {
				return err
			}
			category = string(c)
		}

		exercises = report.FilterExercises(exercises, exerciseSearch, category)
		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range exercises {
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(e.ID), 4)),
				padRight(truncate(e.Name, 28), 28),
				padRight(string(e.Category), 5),
				padRight(truncate(e.MuscleGroup, 16), 16),
				faint.Sprint(e.Equipment))
		}

		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add an exercise to the catalog.

Examples:
  gym exercise add "Hip Thrust" --category legs --muscle Glutes --equipment Barbell
  gym exercise add "Dead Bug" -c core -m Abs -e Bodyweight`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(exerciseAddCat)
		if err != nil {
			return err
		}

		e := models.NewExercise(args[0], category, exerciseMuscle, exerciseEquipment)
		if err := e.Validate(); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				color.Yellow("⚠ %s", verr.Message)
			}
			return err
		}

		id, err := dbConn.CreateExercise(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", e.Name)
		fmt.Printf("  ID: %d\n", id)
		fmt.Printf("  %s · %s · %s\n", e.Category, e.MuscleGroup, e.Equipment)

		return nil
	},
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseSearch, "search", "s", "", "match name or muscle group")
	exerciseListCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "filter by category")

	exerciseAddCmd.Flags().StringVarP(&exerciseAddCat, "category", "c", "", "Push, Pull, Legs, or Core")
	exerciseAddCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "primary muscle group")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "equipment used")
	_ = exerciseAddCmd.MarkFlagRequired("category")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	rootCmd.AddCommand(exerciseCmd)
}
