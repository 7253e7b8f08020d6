// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"drills-cli/internal/exercise"
	"drills-cli/internal/tui"

	"github.com/spf13/cobra"
)

const hintWrapWidth = 80

var hintCmd = &cobra.Command{
	Use:   "hint [exercise]",
	Short: "Show the hint for an exercise (the current one when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHint,
}

func runHint(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var ex *exercise.Exercise
	if len(args) == 1 {
		ex, err = a.find(args[0])
	} else {
		ex, err = a.currentExercise()
	}
	if err != nil {
		if err == errAllDone {
			printFinalMessage(a)
			return nil
		}
		return err
	}

	fmt.Println(ExerciseStyle.Render(ex.Path))
	if ex.Hint == "" {
		fmt.Println(SubtitleStyle.Render("No hint for this one. You've got this."))
		return nil
	}

	rendered, err := tui.RenderMarkdown(ex.Hint, hintWrapWidth)
	if err != nil {
		return fmt.Errorf("render hint: %w", err)
	}
	fmt.Print(rendered)
	return nil
}
