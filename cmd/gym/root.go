// ABOUTME: Root Cobra command for gym CLI.
// ABOUTME: Loads config, sets up logging, opens and seeds the store in PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/logging"
	"github.com/harperreed/gym/internal/seed"
	"github.com/harperreed/gym/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	dbConn    *storage.DB
	logCloser io.Closer
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "gym",
	Short:         "Local gym workout tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Gym is a CLI tool for logging strength workouts on your own machine.

WHAT IT TRACKS:

  Exercises        a catalog grouped into Push, Pull, Legs, and Core
  Templates        named exercise lists that start a workout
  Workouts         finished sessions with sets, duration, and total volume
  Progress         personal records and body metrics

QUICK START:

  $ gym template list                     # See the starter templates
  $ gym workout start 1                   # Run a session from template 1
  $ gym workout log 3 --set 1:225:5       # Log a session without the screen
  $ gym workout list --period week        # This week's workouts
  $ gym dashboard                         # Summary and recent records

SESSIONS:

  A session keeps its sets in memory until you finish it. Only completed
  sets count toward total volume. Cancelling a session saves nothing.

MCP INTEGRATION:

  Run 'gym mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "gym": { "command": "gym", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/gym/gym.db.
  Set GYM_DATA_DIR or data_dir in ~/.config/gym/config.json to move it.
  A fresh database is seeded with 20 exercises and 3 templates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		opts := cfg.LogOptions()
		if verbose {
			opts.Level = "debug"
		}
		logCloser, err = logging.Setup(opts)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		dbConn, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logrus.WithField("path", dbConn.Path()).Debug("opened database")

		// seed reports the result itself; import needs the ids free
		if cmd.Name() == "seed" || cmd.Name() == "import" {
			return nil
		}
		seeded, err := seed.Run(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		logrus.WithField("seeded", seeded).Debug("seed check done")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

// closeAll releases the store and log writer opened by PersistentPreRunE.
func closeAll() error {
	var err error
	if dbConn != nil {
		err = dbConn.Close()
		dbConn = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}
