// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gym/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to browse your exercises and run workout
sessions through a standardized protocol. The server communicates via
stdin/stdout; logs go to stderr or the configured log file.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gym": {
        "command": "gym",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  list_exercises         List exercises with search/category filters
  add_exercise           Add an exercise to the catalog
  list_templates         List templates with exercise names
  start_workout          Start a session from a template
  add_set                Add a set to an exercise in a session
  update_set             Change the weight or reps of a set
  toggle_set             Mark a set completed or not
  finish_workout         Save the session as a workout
  cancel_workout         Discard the session
  get_session            Show a session's sets and elapsed time
  list_workouts          List workouts with period totals
  get_workout            Get one workout set by set
  list_personal_records  List personal records
  add_body_metric        Record body weight and body fat

AVAILABLE RESOURCES:

  gym://dashboard          Summary counts, recent workouts and records
  gym://workouts/recent    Recent workouts
  gym://exercises          Exercise catalog by category

Clients may subscribe to a resource and are notified after it changes.

Sessions still open when the server stops are discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(dbConn, mcp.WithDeriveRecords(cfg.DeriveRecordsEnabled()))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
