// ABOUTME: CLI commands for exporting and importing gym data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export gym data",
	Long: `Export gym data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown workout log (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include workouts since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  gym export json                          # Export all data as JSON
  gym export json -o backup.json           # Save to file
  gym export yaml                          # Export as YAML
  gym export markdown --since 2025-01-01   # Workouts from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := cmd.Context()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = dbConn.ExportJSON(ctx)
		case "yaml":
			data, err = dbConn.ExportYAML(ctx)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			md, err := dbConn.ExportMarkdown(ctx, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gym data from JSON",
	Long: `Import gym data from a JSON backup file.

This imports exercises, templates, workouts, personal records, and body
metrics from a previously exported JSON file. IDs are kept, so importing
into a database that already holds the same IDs fails and changes nothing.

EXAMPLES:

  gym import backup.json                   # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := dbConn.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
