// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"drills-cli/internal/exercise"
	"drills-cli/internal/watch"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-verify the current exercise whenever its sources change",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "watch"})
	if verbose || a.cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	output := bytes.NewBuffer(make([]byte, 0, exercise.OutputCapacity))

	// verifyCurrent runs the current exercise once and reports the verdict.
	// All-done is a clean stop, not an error.
	verifyCurrent := func() (bool, error) {
		ex, err := a.currentExercise()
		if err != nil {
			if err == errAllDone {
				printFinalMessage(a)
				return true, nil
			}
			return false, err
		}

		ok, err := a.runner.Run(ex, output)
		os.Stdout.Write(output.Bytes())
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Println(ErrorStyle.Render("✗ " + ex.Path + " failed"))
			fmt.Println(SubtitleStyle.Render("Keep editing; drills re-verifies on save."))
			return false, nil
		}
		fmt.Println(SuccessStyle.Render("✓ " + ex.Path + " passed"))
		if err := a.markDone(ex); err != nil {
			return false, err
		}
		if next, nextErr := a.currentExercise(); nextErr == nil {
			fmt.Println(ExerciseStyle.Render("Next up: " + next.Path))
		} else {
			printFinalMessage(a)
		}
		return true, nil
	}

	// First pass before any file changes.
	if _, err := verifyCurrent(); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Debounce:    a.cfg.Debounce(),
		ClearScreen: a.cfg.ClearScreen,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Debug("sources changed", "files", changed)
			_, err := verifyCurrent()
			return err
		},
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes (ctrl-c to stop)")
	return w.Run(cmd.Context())
}
