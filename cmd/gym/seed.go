// ABOUTME: CLI command for seeding the starter catalog.
// ABOUTME: Inserts the default exercises and templates into an empty database.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the starter exercises and templates",
	Long: `Insert the starter catalog: 20 exercises (7 Push, 6 Pull, 5 Legs,
2 Core) and the templates Push Day, Pull Day, and Leg Day.

Seeding only happens when the database has no exercises, so running this
again is safe. Every other command seeds automatically on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeded, err := seed.Run(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		if !seeded {
			color.Yellow("⚠ Database already has exercises, nothing seeded")
			return nil
		}

		color.Green("✓ Seeded %d exercises and 3 templates", len(seed.Exercises()))
		fmt.Printf("  Database: %s\n", dbConn.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
