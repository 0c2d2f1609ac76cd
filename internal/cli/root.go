// Package cli implements the edututor command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edututor",
	Short: "Educational tutoring assistant that never hands out code",
	Long:  "Classifies questions, applies a teach-don't-solve policy, and sanitizes\nevery generated answer so no runnable code reaches the learner.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
