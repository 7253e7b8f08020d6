// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"drills-cli/internal/exercise"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run every pending exercise in order, stopping at the first failure",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	output := bytes.NewBuffer(make([]byte, 0, exercise.OutputCapacity))
	for _, ex := range a.exercises {
		if ex.Done {
			continue
		}

		fmt.Println(ExerciseStyle.Render("Verifying " + ex.Path))
		ok, err := a.runner.Run(ex, output)
		if err != nil {
			return err
		}
		if !ok {
			os.Stdout.Write(output.Bytes())
			fmt.Println(ErrorStyle.Render("✗ " + ex.Path + " failed"))
			fmt.Println(SubtitleStyle.Render("Fix it, then re-run `drills verify`."))
			return &ExitError{Code: 1}
		}

		fmt.Println(SuccessStyle.Render("✓ " + ex.Path + " passed"))
		if err := a.markDone(ex); err != nil {
			return err
		}
	}

	printFinalMessage(a)
	return nil
}
