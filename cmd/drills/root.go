// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"drills-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables diagnostic logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "drills",
		Short: "A trainer for hands-on learning exercises",
		Long: TitleStyle.Render("drills") + SubtitleStyle.Render(" - a trainer for hands-on learning exercises") + `

drills walks you through a catalog of small exercises: Rust sources
verified with cargo, circom circuits verified with the circuit
compiler, and Markdown quizzes answered interactively. Each exercise
is compiled, linted, tested and run; the first one that fails is
where you pick up.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into an exercise repository (it has an info.toml)
  2. drills run          Verify the current exercise
  3. drills watch        Re-verify automatically as you edit
  4. drills hint         Show the current exercise's hint`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/drills/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(listCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig reads the configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
	return config.Load()
}
