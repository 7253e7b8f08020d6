// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	t.Run("bare code", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Code: 3}
		if got, want := err.Error(), "exit status 3"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if err.Unwrap() != nil {
			t.Error("Unwrap() should be nil without a wrapped error")
		}
	})

	t.Run("wrapped error surfaces through errors.As", func(t *testing.T) {
		t.Parallel()
		inner := errors.New("pipeline broke")
		var err error = &ExitError{Code: 1, Err: inner}

		if got := err.Error(); got != "pipeline broke" {
			t.Errorf("Error() = %q, want %q", got, "pipeline broke")
		}
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatal("errors.As should find *ExitError")
		}
		if exitErr.Code != 1 {
			t.Errorf("Code = %d, want 1", exitErr.Code)
		}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should reach the wrapped error")
		}
	})
}
