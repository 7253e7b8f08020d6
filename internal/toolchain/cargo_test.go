// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// argvRecordingScript returns a stub executable that appends its argv to
// logPath (one invocation per line) and exits with code.
func argvRecordingScript(t *testing.T, dir, name, logPath string, code int) string {
	t.Helper()
	body := "printf '%s\\n' \"$*\" >> '" + logPath + "'\nexit " + strconv.Itoa(code) + "\n"
	return writeScript(t, dir, name, body)
}

func TestCargoCmdCommandLine(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name     string
		cmd      CargoCmd
		wantArgs []string
		skipArgs []string
	}{
		{
			name: "build scopes to bin and target dir",
			cmd: CargoCmd{
				Subcommand:  "build",
				BinName:     "intro1",
				Description: "cargo build …",
				TargetDir:   "/tmp/target",
			},
			wantArgs: []string{"build", "--bin intro1", "--target-dir /tmp/target"},
			skipArgs: []string{"--manifest-path"},
		},
		{
			name: "dev mode adds manifest path",
			cmd: CargoCmd{
				Subcommand:  "build",
				BinName:     "intro1",
				Description: "cargo build …",
				TargetDir:   "/tmp/target",
				Dev:         true,
			},
			wantArgs: []string{"--manifest-path dev/Cargo.toml"},
		},
		{
			name: "clippy args appended after scoping",
			cmd: CargoCmd{
				Subcommand:  "clippy",
				Args:        []string{"--profile", "test", "--", "-D", "warnings"},
				BinName:     "intro1",
				Description: "cargo clippy …",
				TargetDir:   "/tmp/target",
			},
			wantArgs: []string{"clippy", "--profile test -- -D warnings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			logPath := filepath.Join(dir, "argv.log")
			tt.cmd.Program = argvRecordingScript(t, dir, "cargo-stub", logPath, 0)

			var out bytes.Buffer
			ok, err := tt.cmd.Run(&out)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !ok {
				t.Fatal("Run() = false, want true")
			}

			argv, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("read argv log: %v", err)
			}
			got := string(argv)
			for _, w := range tt.wantArgs {
				if !strings.Contains(got, w) {
					t.Errorf("argv missing %q: %s", w, got)
				}
			}
			for _, s := range tt.skipArgs {
				if strings.Contains(got, s) {
					t.Errorf("argv contains %q: %s", s, got)
				}
			}
			if !strings.Contains(out.String(), tt.cmd.Description) {
				t.Errorf("output missing description header %q:\n%s", tt.cmd.Description, out.String())
			}
		})
	}
}

func TestCircomCmdCommandLine(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	logPath := filepath.Join(dir, "argv.log")
	cmd := CircomCmd{
		Subcommand:  "compile",
		Args:        []string{"--r1cs", "--wasm", "--sym"},
		CircuitName: "adder",
		Description: "Compiling Circom circuit",
		CircuitDir:  dir,
		Program:     argvRecordingScript(t, dir, "circom-stub", logPath, 0),
	}

	var out bytes.Buffer
	ok, err := cmd.Run(&out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Fatal("Run() = false, want true")
	}

	argv, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read argv log: %v", err)
	}
	want := "compile adder.circom --r1cs --wasm --sym"
	if !strings.Contains(string(argv), want) {
		t.Errorf("argv = %q, want containing %q", string(argv), want)
	}
}

func TestCircomCmdFailurePropagates(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()
	cmd := CircomCmd{
		Subcommand:  "compile",
		CircuitName: "adder",
		Description: "Compiling Circom circuit",
		Program:     writeScript(t, dir, "circom-fail", "echo 'error: parse error' >&2\nexit 1\n"),
	}

	var out bytes.Buffer
	ok, err := cmd.Run(&out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Error("Run() = true for failing compiler")
	}
	if !strings.Contains(out.String(), "parse error") {
		t.Errorf("compiler diagnostics not captured:\n%s", out.String())
	}
}
