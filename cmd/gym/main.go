// ABOUTME: Entry point for gym CLI.
// ABOUTME: Invokes the root Cobra command.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
