// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"drills-cli/internal/tui"

	"github.com/spf13/cobra"
)

const progressBarWidth = 30

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every exercise with its completion status",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	current, currentErr := a.currentExercise()

	for _, ex := range a.exercises {
		marker := SubtitleStyle.Render("[ ]")
		if ex.Done {
			marker = SuccessStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %-12s %s", marker, ex.Kind(), ex.Path)
		if currentErr == nil && ex == current {
			line += WarningStyle.Render("  <- current")
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println(tui.ProgressBar(a.doneCount(), len(a.exercises), progressBarWidth))
	return nil
}
