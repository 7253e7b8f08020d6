// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"drills-cli/internal/exercise"

	"github.com/spf13/cobra"
)

var (
	// runSolution verifies the reference solution instead of the
	// learner's attempt.
	runSolution bool

	runCmd = &cobra.Command{
		Use:   "run [exercise]",
		Short: "Verify one exercise (the current one when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRun,
	}
)

func init() {
	runCmd.Flags().BoolVar(&runSolution, "solution", false, "verify the reference solution instead")
}

func runRun(cmd *cobra.Command, args []string) error {
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

	output := bytes.NewBuffer(make([]byte, 0, exercise.OutputCapacity))
	var ok bool
	if runSolution {
		ok, err = a.runner.RunSolution(ex, output)
	} else {
		ok, err = a.runner.Run(ex, output)
	}
	os.Stdout.Write(output.Bytes())
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println(ErrorStyle.Render("✗ " + ex.Path + " failed"))
		fmt.Println(SubtitleStyle.Render("Try `drills hint " + ex.Name + "` if you are stuck."))
		return &ExitError{Code: 1}
	}

	fmt.Println(SuccessStyle.Render("✓ " + ex.Path + " passed"))
	if !runSolution {
		if err := a.markDone(ex); err != nil {
			return err
		}
		if a.doneCount() == len(a.exercises) {
			printFinalMessage(a)
		}
	}
	return nil
}

// printFinalMessage prints the manifest's final message once everything
// is done.
func printFinalMessage(a *app) {
	fmt.Println(SuccessStyle.Render("All exercises done!"))
	if a.manifest.FinalMessage != "" {
		fmt.Println(a.manifest.FinalMessage)
	}
}
