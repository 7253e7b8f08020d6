// SPDX-License-Identifier: MPL-2.0

package exercise

import (
	"errors"
	"fmt"
)

// OutputCapacity is the initial capacity of the shared output buffer. One
// pipeline run rarely produces more than this, so callers can preallocate
// once and reuse the buffer across runs.
const OutputCapacity = 1 << 14

// ErrUnsupportedKind is the sentinel error wrapped by UnsupportedKindError.
var ErrUnsupportedKind = errors.New("unsupported exercise type")

type (
	// Kind is the closed set of exercise kinds. Adding a kind requires
	// adding both a pipeline branch and a toolchain invoker.
	Kind int

	// Exercise describes one learning exercise. Descriptors are created at
	// catalog load time and read-only for the lifetime of a run.
	Exercise struct {
		// Name is the exercise's logical name, also its binary/circuit name.
		Name string
		// Dir is the subdirectory under exercises/ holding the source.
		Dir string
		// Ext is the file extension that determines the kind (rs, circom, md).
		Ext string
		// Path is the repository-relative path of the exercise file.
		Path string
		// Test indicates whether the exercise has a cargo test stage.
		Test bool
		// StrictClippy escalates all clippy warnings to hard failures.
		StrictClippy bool
		// Hint is free-form Markdown shown on request.
		Hint string
		// Done records whether the exercise has been completed.
		Done bool
	}

	// UnsupportedKindError is returned when an exercise's extension maps to
	// no known kind. This is a configuration error, not a failing exercise.
	UnsupportedKindError struct {
		Ext string
	}
)

const (
	// KindUnknown is the zero value for extensions that map to no pipeline.
	KindUnknown Kind = iota
	// KindRust is a compiled Rust source exercise (cargo pipeline).
	KindRust
	// KindCircom is a circuit-description exercise (circom pipeline).
	KindCircom
	// KindMarkdown is a question/answer document exercise (quiz pipeline).
	KindMarkdown
)

// KindForExt maps a file extension to an exercise kind.
func KindForExt(ext string) Kind {
	switch ext {
	case "rs":
		return KindRust
	case "circom":
		return KindCircom
	case "md":
		return KindMarkdown
	default:
		return KindUnknown
	}
}

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindRust:
		return "rust"
	case KindCircom:
		return "circom"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Kind derives the exercise kind from its file extension.
func (e *Exercise) Kind() Kind {
	return KindForExt(e.Ext)
}

// String returns the exercise's repository-relative path.
func (e *Exercise) String() string {
	return e.Path
}

// Error implements the error interface.
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported exercise type %q", e.Ext)
}

// Unwrap returns ErrUnsupportedKind so callers can use errors.Is.
func (e *UnsupportedKindError) Unwrap() error { return ErrUnsupportedKind }
