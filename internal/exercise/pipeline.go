// SPDX-License-Identifier: MPL-2.0

package exercise

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"drills-cli/internal/quiz"
	"drills-cli/internal/toolchain"

	"github.com/charmbracelet/lipgloss"
)

var (
	// stageHeaderStyle marks the start of a named pipeline stage in the
	// transcript. Presentation only.
	stageHeaderStyle = lipgloss.NewStyle().Underline(true)

	// failureBannerStyle marks the explicit nonzero-exit banner. Without it,
	// an exercise that exits non-zero while printing nothing would leave the
	// operator with no visible signal of failure.
	failureBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

// failureBanner is appended to the transcript when the exercise binary
// exits with a nonzero code.
const failureBanner = "The exercise didn't run successfully (nonzero exit code)"

// Runner executes exercise pipelines. Construct one per session with
// NewRunner; dev mode is passed in explicitly so the pipeline stays testable
// without faking ambient process state.
type Runner struct {
	// TargetDir is cargo's target directory; built binaries live under
	// TargetDir/debug.
	TargetDir string
	// CircuitDir is the directory holding circom circuit sources.
	CircuitDir string
	// DevMode enables the stricter cargo flags used inside the tool's own
	// maintenance checkout.
	DevMode bool

	// Stdin is the interactive input channel for quiz exercises.
	// nil defaults to os.Stdin.
	Stdin io.Reader
	// Stdout is where the quiz prompt is written. nil defaults to os.Stdout.
	Stdout io.Writer

	// CargoProgram and CircomProgram override the toolchain executables.
	// Empty values use the real toolchains; tests substitute stubs.
	CargoProgram  string
	CircomProgram string
}

// NewRunner returns a Runner for the given target directory. The devMode
// flag must come from the caller's environment detection; the pipeline
// itself never inspects ambient process state.
func NewRunner(targetDir string, devMode bool) *Runner {
	return &Runner{TargetDir: targetDir, DevMode: devMode}
}

// Run executes the pipeline appropriate to the exercise's kind, clearing
// output first. It returns the verdict; the transcript of every stage that
// ran is left in output. An extension that maps to no kind is an
// operational error, distinguishable from a legitimately failing exercise.
func (r *Runner) Run(ex *Exercise, output *bytes.Buffer) (bool, error) {
	output.Reset()

	switch ex.Kind() {
	case KindRust:
		return r.runCargo(ex, ex.Name, output)
	case KindCircom:
		return r.runCircom(ex, output)
	case KindMarkdown:
		return r.runQuiz(ex, output)
	default:
		return false, &UnsupportedKindError{Ext: ex.Ext}
	}
}

// RunSolution executes the identical cargo pipeline against the exercise's
// reference solution binary (the exercise name with a _sol suffix).
func (r *Runner) RunSolution(ex *Exercise, output *bytes.Buffer) (bool, error) {
	output.Reset()
	return r.runCargo(ex, ex.Name+"_sol", output)
}

// runCargo is the compiled-source pipeline: build, clippy, then either a
// plain binary run or a test stage followed unconditionally by the binary
// run. Build and clippy short-circuit; test and run do not, so the operator
// always sees runtime behavior alongside a failing test transcript.
func (r *Runner) runCargo(ex *Exercise, binName string, output *bytes.Buffer) (bool, error) {
	buildOK, err := toolchain.CargoCmd{
		Subcommand:  "build",
		BinName:     binName,
		Description: "cargo build …",
		TargetDir:   r.TargetDir,
		Dev:         r.DevMode,
		Program:     r.CargoProgram,
	}.Run(output)
	if err != nil {
		return false, err
	}
	if !buildOK {
		return false, nil
	}

	// Discard the build output: clippy repeats the same diagnostics.
	output.Reset()

	// --profile test is required to also lint code behind #[cfg(test)].
	clippyArgs := []string{"--profile", "test"}
	if ex.StrictClippy {
		clippyArgs = append(clippyArgs, "--", "-D", "warnings")
	}
	clippyOK, err := toolchain.CargoCmd{
		Subcommand:  "clippy",
		Args:        clippyArgs,
		BinName:     binName,
		Description: "cargo clippy …",
		TargetDir:   r.TargetDir,
		Dev:         r.DevMode,
		Program:     r.CargoProgram,
	}.Run(output)
	if err != nil {
		return false, err
	}
	if !clippyOK {
		return false, nil
	}

	if !ex.Test {
		return r.runBin(binName, output)
	}

	testOK, err := toolchain.CargoCmd{
		Subcommand:  "test",
		Args:        []string{"--", "--color", "always", "--show-output"},
		BinName:     binName,
		Description: "cargo test …",
		// Clippy already surfaced the warnings.
		HideWarnings: true,
		TargetDir:    r.TargetDir,
		Dev:          r.DevMode,
		Program:      r.CargoProgram,
	}.Run(output)
	if err != nil {
		return false, err
	}

	runOK, err := r.runBin(binName, output)
	if err != nil {
		return false, err
	}

	return testOK && runOK, nil
}

// runBin executes the already-built exercise binary directly and appends
// its output under an "Output" header. Compilation must have happened
// before this is called.
func (r *Runner) runBin(binName string, output *bytes.Buffer) (bool, error) {
	fmt.Fprintln(output, stageHeaderStyle.Render("Output"))

	binPath := filepath.Join(r.TargetDir, "debug", binName)
	ok, err := toolchain.Run(toolchain.CommandSpec{
		Program:     binPath,
		Description: binPath,
	}, output)
	if err != nil {
		return false, err
	}

	if !ok {
		fmt.Fprintln(output, failureBannerStyle.Render(failureBanner))
	}
	return ok, nil
}

// runCircom is the circuit pipeline: compile, prove, verify. Proof
// generation and verification are named stages without a prover integration
// yet; they are kept as explicit extension points and currently always
// succeed, so the verdict reduces to the compile result.
func (r *Runner) runCircom(ex *Exercise, output *bytes.Buffer) (bool, error) {
	fmt.Fprintln(output, stageHeaderStyle.Render("Compiling Circom circuit..."))

	compileOK, err := toolchain.CircomCmd{
		Subcommand:  "compile",
		Args:        []string{"--r1cs", "--wasm", "--sym"},
		CircuitName: ex.Name,
		Description: "Compiling Circom circuit",
		CircuitDir:  r.CircuitDir,
		Program:     r.CircomProgram,
	}.Run(output)
	if err != nil {
		return false, err
	}
	if !compileOK {
		return false, nil
	}

	fmt.Fprintln(output, stageHeaderStyle.Render("Generating proof..."))
	// Extension point: no prover integration yet.
	proveOK := true

	fmt.Fprintln(output, stageHeaderStyle.Render("Verifying proof..."))
	// Extension point: no verifier integration yet.
	verifyOK := true

	return compileOK && proveOK && verifyOK, nil
}

// runQuiz is the question/answer pipeline: parse the document, extract the
// question and canonical answer, and compare against one line of operator
// input.
func (r *Runner) runQuiz(ex *Exercise, output *bytes.Buffer) (bool, error) {
	stdin := r.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return quiz.Run(ex.Path, stdin, stdout, output)
}
