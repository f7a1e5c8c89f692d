// ABOUTME: CLI command for copying the database to a backup file.
// ABOUTME: Uses storage.CopyData so the backup keeps every ID.
package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Copy all data to a new database file",
	Long: `Copy every exercise, template, workout, personal record, and body
metric into a new SQLite file. The target must not already hold data.

To restore, point GYM_DATA_DIR (or data_dir in config) at the backup's
directory, or use 'gym export json' and 'gym import'.

EXAMPLES:

  gym backup ~/backups/gym-2025-02-01.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
		if live, _ := filepath.Abs(dbConn.Path()); path == live {
			return fmt.Errorf("backup path is the live database: %s", path)
		}

		dst, err := storage.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open backup: %w", err)
		}
		defer func() {
			if err := dst.Close(); err != nil {
				logrus.WithError(err).Warn("close backup database")
			}
		}()

		summary, err := storage.CopyData(cmd.Context(), dbConn, dst)
		if errors.Is(err, storage.ErrDestinationNotEmpty) {
			return fmt.Errorf("%s already holds gym data", path)
		}
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		color.Green("✓ Backed up to %s", path)
		fmt.Printf("  Exercises: %d\n", summary.Exercises)
		fmt.Printf("  Templates: %d\n", summary.Templates)
		fmt.Printf("  Workouts: %d\n", summary.Workouts)
		fmt.Printf("  Personal records: %d\n", summary.PersonalRecords)
		fmt.Printf("  Body metrics: %d\n", summary.BodyMetrics)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
