// ABOUTME: CLI commands for workout templates.
// ABOUTME: Supports list, show, and create; unknown exercise ids are kept with a warning.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"t"},
	Short:   "Manage workout templates",
	Long: `Templates are named, ordered lists of exercises. Starting a workout
from a template gives each exercise one empty set.

COMMANDS:

  list     List templates
  show     Show a template's exercises
  create   Create a template from exercise ids`,
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := dbConn.ListTemplates(cmd.Context(), storage.All())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(t.ID), 4)),
				padRight(truncate(t.Name, 24), 24),
				faint.Sprintf("%d exercises", len(t.ExerciseIDs)))
		}

		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := dbConn.GetTemplate(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		names, err := exerciseNames(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Template: %s\n", t.Name)
		fmt.Printf("Created: %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Println("\nExercises:")
		for i, exID := range t.ExerciseIDs {
			fmt.Printf("  %d. %s\n", i+1, names.Name(exID))
		}

		return nil
	},
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name> <exercise-id>...",
	Short: "Create a template",
	Long: `Create a template from exercise ids, in the order given.

Examples:
  gym template create "Upper Body" 1 2 8 9
  gym template create "Core Finisher" 19 20`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return &models.ValidationError{Field: "name", Message: "Template name is required"}
		}

		ids := make([]int64, 0, len(args)-1)
		for _, a := range args[1:] {
			id, err := parseID(a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		for _, id := range ids {
			if _, err := dbConn.GetExercise(cmd.Context(), id); err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("failed to check exercise %d: %w", id, err)
				}
				color.Yellow("⚠ No exercise with id %d; it will show as %s", id, storage.UnknownExercise)
			}
		}

		t := models.NewTemplate(name, ids)
		id, err := dbConn.CreateTemplate(cmd.Context(), t)
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		color.Green("✓ Created template %s", name)
		fmt.Printf("  ID: %d\n", id)
		fmt.Printf("  Exercises: %d\n", len(ids))

		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateCreateCmd)
	rootCmd.AddCommand(templateCmd)
}
