// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandSpec describes one external program invocation.
type CommandSpec struct {
	// Program is the executable to run (name resolved via PATH, or a path).
	Program string
	// Args are the arguments passed to the program, in order.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Description is a human-readable label used in error messages.
	Description string
	// HideWarnings suppresses warning-level diagnostic lines from the
	// captured output. Non-warning lines are still appended unchanged.
	HideWarnings bool
}

// SpawnError is returned when a program could not be started at all, as
// opposed to running and exiting non-zero.
type SpawnError struct {
	Description string
	Err         error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("toolchain: failed to run %s: %v", e.Description, e.Err)
}

// Unwrap returns the underlying error.
func (e *SpawnError) Unwrap() error { return e.Err }

// Run executes spec to completion, appending the process's combined
// stdout/stderr to output in the order produced. It returns true iff the
// process exited with code zero. A non-zero exit is (false, nil); a process
// that could not be spawned is (false, *SpawnError). Run never clears output.
func Run(spec CommandSpec, output *bytes.Buffer) (bool, error) {
	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Dir = spec.Dir

	// Stdout and stderr share one writer so lines land in the buffer
	// interleaved as the process produces them.
	var w io.Writer = output
	var filter *warningFilter
	if spec.HideWarnings {
		filter = &warningFilter{out: output}
		w = filter
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	if filter != nil {
		filter.flush()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, &SpawnError{Description: spec.Description, Err: err}
	}
	return true, nil
}

// warningFilter is a line-buffering writer that drops warning-level
// diagnostic lines and passes everything else through.
type warningFilter struct {
	out     *bytes.Buffer
	partial []byte
}

// Write implements io.Writer. Complete lines are filtered immediately;
// a trailing partial line is held back until the next write or flush.
func (f *warningFilter) Write(p []byte) (int, error) {
	f.partial = append(f.partial, p...)
	for {
		idx := bytes.IndexByte(f.partial, '\n')
		if idx < 0 {
			break
		}
		line := f.partial[:idx+1]
		if !isWarningLine(line) {
			f.out.Write(line)
		}
		f.partial = f.partial[idx+1:]
	}
	return len(p), nil
}

// flush emits any buffered partial line. Called once after the process exits.
func (f *warningFilter) flush() {
	if len(f.partial) > 0 && !isWarningLine(f.partial) {
		f.out.Write(f.partial)
	}
	f.partial = nil
}

// isWarningLine reports whether a captured line is warning-level diagnostic
// output. Cargo emits these as "warning: ..." (including the per-crate
// "warning: `foo` generated N warnings" summary).
func isWarningLine(line []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(line)), "warning")
}
