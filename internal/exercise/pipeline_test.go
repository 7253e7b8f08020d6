// SPDX-License-Identifier: MPL-2.0

package exercise

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// skipOnWindows skips tests that spawn POSIX shell scripts.
func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test spawns /bin/sh scripts")
	}
}

// writeScript creates an executable shell script and returns its path.
func writeScript(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// cargoStub builds a fake cargo executable whose build/clippy/test
// subcommands exit with the given codes. Every invocation's argv is
// appended to the returned log file.
func cargoStub(t *testing.T, dir string, buildExit, clippyExit, testExit int) (program, logPath string) {
	t.Helper()
	logPath = filepath.Join(dir, "cargo.log")
	body := "printf '%s\\n' \"$*\" >> '" + logPath + "'\n" +
		"case \"$1\" in\n" +
		"  build) echo 'build diagnostics'; exit " + strconv.Itoa(buildExit) + ";;\n" +
		"  clippy) echo 'clippy diagnostics'; exit " + strconv.Itoa(clippyExit) + ";;\n" +
		"  test) echo 'test transcript'; exit " + strconv.Itoa(testExit) + ";;\n" +
		"esac\n" +
		"exit 0\n"
	program = writeScript(t, filepath.Join(dir, "cargo"), body)
	return program, logPath
}

// installBin places a fake built binary under targetDir/debug/name.
func installBin(t *testing.T, targetDir, name string, exitCode int) {
	t.Helper()
	writeScript(t, filepath.Join(targetDir, "debug", name),
		"echo 'binary ran'\nexit "+strconv.Itoa(exitCode)+"\n")
}

// invocations returns the logged cargo subcommands, one per invocation.
func invocations(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read invocation log: %v", err)
	}
	var subs []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			subs = append(subs, strings.Fields(line)[0])
		}
	}
	return subs
}

func TestRunClearsBufferFirst(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	r.CargoProgram, _ = cargoStub(t, dir, 1, 0, 0)

	var out bytes.Buffer
	out.WriteString("stale content from a previous run")
	ex := &Exercise{Name: "intro1", Ext: "rs"}
	if _, err := r.Run(ex, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "stale content") {
		t.Errorf("buffer not cleared before run:\n%s", out.String())
	}
}

func TestBuildFailureShortCircuits(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	var logPath string
	r.CargoProgram, logPath = cargoStub(t, dir, 1, 0, 0)

	var out bytes.Buffer
	ex := &Exercise{Name: "intro1", Ext: "rs", Test: true}
	ok, err := r.Run(ex, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Error("Run() = true with failing build")
	}

	if got := invocations(t, logPath); len(got) != 1 || got[0] != "build" {
		t.Errorf("invocations = %v, want [build]", got)
	}
	if !strings.Contains(out.String(), "cargo build …") {
		t.Errorf("buffer missing build header:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "build diagnostics") {
		t.Errorf("buffer missing build output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "clippy") {
		t.Errorf("buffer contains clippy output after build failure:\n%s", out.String())
	}
}

func TestBuildOutputDiscardedAfterSuccess(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	r.CargoProgram, _ = cargoStub(t, dir, 0, 1, 0)

	var out bytes.Buffer
	ex := &Exercise{Name: "intro1", Ext: "rs"}
	ok, err := r.Run(ex, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Error("Run() = true with failing clippy")
	}
	// Clippy reproduces the build diagnostics, so the build stage's output
	// is intentionally dropped before clippy writes.
	if strings.Contains(out.String(), "build diagnostics") {
		t.Errorf("buffer still contains build output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "clippy diagnostics") {
		t.Errorf("buffer missing clippy output:\n%s", out.String())
	}
}

func TestClippyArgs(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name   string
		strict bool
	}{
		{name: "strict escalates warnings", strict: true},
		{name: "non-strict keeps warnings soft", strict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			r := NewRunner(dir, false)
			var logPath string
			r.CargoProgram, logPath = cargoStub(t, dir, 0, 0, 0)
			installBin(t, dir, "intro1", 0)

			var out bytes.Buffer
			ex := &Exercise{Name: "intro1", Ext: "rs", StrictClippy: tt.strict}
			if _, err := r.Run(ex, &out); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("read invocation log: %v", err)
			}
			var clippyLine string
			for _, line := range strings.Split(string(data), "\n") {
				if strings.HasPrefix(line, "clippy") {
					clippyLine = line
				}
			}
			if clippyLine == "" {
				t.Fatal("clippy never invoked")
			}
			// Both modes lint test-configured code; strict mode's argument
			// set is a superset that adds the warnings-as-errors flag.
			if !strings.Contains(clippyLine, "--profile test") {
				t.Errorf("clippy args missing --profile test: %s", clippyLine)
			}
			if tt.strict != strings.Contains(clippyLine, "-D warnings") {
				t.Errorf("strict=%v but clippy args = %s", tt.strict, clippyLine)
			}
		})
	}
}

func TestNoTestStageRunsBinaryOnly(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	var logPath string
	r.CargoProgram, logPath = cargoStub(t, dir, 0, 0, 0)
	installBin(t, dir, "intro1", 0)

	var out bytes.Buffer
	ex := &Exercise{Name: "intro1", Ext: "rs", Test: false}
	ok, err := r.Run(ex, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Errorf("Run() = false:\n%s", out.String())
	}

	for _, sub := range invocations(t, logPath) {
		if sub == "test" {
			t.Error("test stage invoked for an exercise without one")
		}
	}
	if !strings.Contains(out.String(), "Output") {
		t.Errorf("buffer missing run-binary header:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "binary ran") {
		t.Errorf("buffer missing binary output:\n%s", out.String())
	}
}

func TestTestFailureStillRunsBinary(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	r.CargoProgram, _ = cargoStub(t, dir, 0, 0, 1)
	installBin(t, dir, "intro1", 0)

	var out bytes.Buffer
	ex := &Exercise{Name: "intro1", Ext: "rs", Test: true}
	ok, err := r.Run(ex, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Error("Run() = true with failing tests")
	}

	// The run-binary sub-step executes even though the test stage failed,
	// so the transcript holds both stages.
	got := out.String()
	if !strings.Contains(got, "test transcript") {
		t.Errorf("buffer missing test transcript:\n%s", got)
	}
	if !strings.Contains(got, "binary ran") {
		t.Errorf("buffer missing run transcript:\n%s", got)
	}
}

func TestRunBinaryFailureBanner(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name       string
		exitCode   int
		wantOK     bool
		wantBanner bool
	}{
		{name: "exit zero has no banner", exitCode: 0, wantOK: true},
		{name: "nonzero exit appends banner", exitCode: 1, wantBanner: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			r := NewRunner(dir, false)
			r.CargoProgram, _ = cargoStub(t, dir, 0, 0, 0)
			installBin(t, dir, "intro1", tt.exitCode)

			var out bytes.Buffer
			ex := &Exercise{Name: "intro1", Ext: "rs"}
			ok, err := r.Run(ex, &out)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("Run() = %v, want %v", ok, tt.wantOK)
			}
			if got := strings.Contains(out.String(), failureBanner); got != tt.wantBanner {
				t.Errorf("banner present = %v, want %v:\n%s", got, tt.wantBanner, out.String())
			}
		})
	}
}

func TestRunSolutionUsesSuffixedBinary(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	r := NewRunner(dir, false)
	var logPath string
	r.CargoProgram, logPath = cargoStub(t, dir, 0, 0, 0)
	installBin(t, dir, "intro1_sol", 0)

	var out bytes.Buffer
	ex := &Exercise{Name: "intro1", Ext: "rs"}
	ok, err := r.RunSolution(ex, &out)
	if err != nil {
		t.Fatalf("RunSolution() error = %v", err)
	}
	if !ok {
		t.Errorf("RunSolution() = false:\n%s", out.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read invocation log: %v", err)
	}
	if !strings.Contains(string(data), "--bin intro1_sol") {
		t.Errorf("solution pipeline not scoped to suffixed binary:\n%s", string(data))
	}
}

func TestRunUnsupportedKind(t *testing.T) {
	t.Parallel()

	r := NewRunner(t.TempDir(), false)
	var out bytes.Buffer
	ex := &Exercise{Name: "mystery", Ext: "txt"}
	ok, err := r.Run(ex, &out)
	if ok {
		t.Error("Run() = true for unsupported kind")
	}
	if err == nil {
		t.Fatal("Run() error = nil, want unsupported kind error")
	}
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("error does not wrap ErrUnsupportedKind: %v", err)
	}
	var unsupported *UnsupportedKindError
	if !errors.As(err, &unsupported) || unsupported.Ext != "txt" {
		t.Errorf("error is not *UnsupportedKindError for txt: %v", err)
	}
}

func TestCircomPipeline(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name        string
		compileExit int
		want        bool
		wantStages  []string
		skipStages  []string
	}{
		{
			name:       "compile success runs all three stages",
			want:       true,
			wantStages: []string{"Compiling Circom circuit...", "Generating proof...", "Verifying proof..."},
		},
		{
			name:        "compile failure short-circuits",
			compileExit: 1,
			wantStages:  []string{"Compiling Circom circuit..."},
			skipStages:  []string{"Generating proof...", "Verifying proof..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			r := NewRunner(dir, false)
			r.CircuitDir = dir
			r.CircomProgram = writeScript(t, filepath.Join(dir, "circom"),
				"exit "+strconv.Itoa(tt.compileExit)+"\n")

			var out bytes.Buffer
			ex := &Exercise{Name: "adder", Ext: "circom"}
			ok, err := r.Run(ex, &out)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Run() = %v, want %v", ok, tt.want)
			}
			for _, s := range tt.wantStages {
				if !strings.Contains(out.String(), s) {
					t.Errorf("buffer missing stage header %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.skipStages {
				if strings.Contains(out.String(), s) {
					t.Errorf("buffer contains stage header %q after short-circuit:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestQuizPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "correct answer", input: "42\n", want: true},
		{name: "wrong answer", input: "43\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "quiz1.md")
			if err := os.WriteFile(path, []byte("# What is 6*7?\n\n```\n42\n```\n"), 0o644); err != nil {
				t.Fatalf("write quiz: %v", err)
			}

			var prompt bytes.Buffer
			r := NewRunner(dir, false)
			r.Stdin = strings.NewReader(tt.input)
			r.Stdout = &prompt

			var out bytes.Buffer
			ex := &Exercise{Name: "quiz1", Ext: "md", Path: path}
			ok, err := r.Run(ex, &out)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Run() = %v, want %v", ok, tt.want)
			}
			if !strings.Contains(prompt.String(), "Your answer: ") {
				t.Errorf("prompt not written: %q", prompt.String())
			}
			if !strings.Contains(out.String(), "What is 6*7?") {
				t.Errorf("buffer missing question:\n%s", out.String())
			}
		})
	}
}

func TestQuizMalformedDocumentIsOperationalError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.md")
	if err := os.WriteFile(path, []byte("# A question with no answer\n"), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}

	r := NewRunner(dir, false)
	r.Stdin = strings.NewReader("anything\n")
	r.Stdout = &bytes.Buffer{}

	var out bytes.Buffer
	ex := &Exercise{Name: "broken", Ext: "md", Path: path}
	_, err := r.Run(ex, &out)
	if err == nil {
		t.Fatal("Run() error = nil for malformed quiz document")
	}
}
