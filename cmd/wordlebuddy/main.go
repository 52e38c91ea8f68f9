// Wordlebuddy is a terminal front end for a feedback-driven Wordle helper.
//
// The player types guesses into a grid, marks each letter gray, yellow or
// green with the feedback the real game gave, and submits rows to a solver
// service that suggests the next guess and reports how many words remain.
//
// Usage:
//
//	wordlebuddy [command] [flags]
//
// Running without arguments opens the interactive board.
// See 'wordlebuddy --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muurk/wordlebuddy/internal/logging"
	"github.com/muurk/wordlebuddy/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordlebuddy",
	Short: "Wordle helper backed by a solver service",
	Long: `A terminal Wordle helper.

Type each guess you made in the real game, colour every letter with the
feedback you got (gray, yellow or green) and press enter. The solver service
checks the word, narrows its candidate list and suggests the next guess.

If no command is specified, the interactive board opens automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the board when no subcommand is provided
		return runPlay(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wordlebuddy %s\n", version.Full())
	},
}
