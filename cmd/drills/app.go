// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"drills-cli/internal/config"
	"drills-cli/internal/exercise"
	"drills-cli/internal/info"
	"drills-cli/internal/state"
)

// app bundles everything a command needs to operate on the exercise
// repository in the current working directory.
type app struct {
	cfg       *config.Config
	manifest  *info.File
	exercises []*exercise.Exercise
	state     *state.State
	runner    *exercise.Runner
}

// errAllDone is returned by currentExercise when nothing is pending.
var errAllDone = errors.New("all exercises are done")

// loadApp loads the manifest, completion state and configuration from the
// current working directory and wires up the pipeline runner.
func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	manifest, err := info.Load(info.DefaultFileName)
	if err != nil {
		return nil, fmt.Errorf("not an exercise repository? %w", err)
	}

	st, err := state.Load(".")
	if err != nil {
		return nil, err
	}

	exercises := manifest.ExerciseList()
	for _, ex := range exercises {
		ex.Done = st.IsDone(ex.Name)
	}

	runner := exercise.NewRunner(cfg.TargetDir, devMode())
	runner.CircuitDir = cfg.CircuitDir

	return &app{
		cfg:       cfg,
		manifest:  manifest,
		exercises: exercises,
		state:     st,
		runner:    runner,
	}, nil
}

// find returns the exercise with the given name.
func (a *app) find(name string) (*exercise.Exercise, error) {
	for _, ex := range a.exercises {
		if ex.Name == name {
			return ex, nil
		}
	}
	return nil, fmt.Errorf("no exercise named %q in the manifest", name)
}

// currentExercise returns the exercise the learner should work on: the
// one recorded in the state file if it is still pending, otherwise the
// first pending exercise in manifest order.
func (a *app) currentExercise() (*exercise.Exercise, error) {
	if a.state.Current != "" {
		if ex, err := a.find(a.state.Current); err == nil && !ex.Done {
			return ex, nil
		}
	}
	for _, ex := range a.exercises {
		if !ex.Done {
			return ex, nil
		}
	}
	return nil, errAllDone
}

// markDone records a passing exercise and advances the current pointer.
func (a *app) markDone(ex *exercise.Exercise) error {
	ex.Done = true
	a.state.MarkDone(ex.Name)
	a.state.Current = ""
	if next, err := a.currentExercise(); err == nil {
		a.state.Current = next.Name
	}
	return a.state.Save()
}

// doneCount returns how many exercises are completed.
func (a *app) doneCount() int {
	n := 0
	for _, ex := range a.exercises {
		if ex.Done {
			n++
		}
	}
	return n
}

// devMode reports whether the tool is a dev build running inside its own
// maintenance checkout. Production use of the tool never enables this; the
// flag is passed explicitly into the pipeline runner.
func devMode() bool {
	if Version != "dev" {
		return false
	}
	_, err := os.Stat(filepath.Join("dev", "Cargo.toml"))
	return err == nil
}
