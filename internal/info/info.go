// SPDX-License-Identifier: MPL-2.0

package info

import (
	"errors"
	"fmt"
	"os"
	"path"

	"drills-cli/internal/exercise"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the manifest file name looked up in the exercise
// repository root.
const DefaultFileName = "info.toml"

// ErrInvalidManifest is the sentinel error wrapped by manifest validation
// errors.
var ErrInvalidManifest = errors.New("invalid exercise manifest")

type (
	// ExerciseInfo is one manifest entry.
	ExerciseInfo struct {
		// Name is the exercise's logical name (unique within the manifest).
		Name string `toml:"name"`
		// Dir is the subdirectory under exercises/ holding the source file.
		Dir string `toml:"dir"`
		// Ext is the extension/kind tag. Empty defaults to "rs".
		Ext string `toml:"ext"`
		// Test enables the cargo test stage. Absent defaults to true.
		Test *bool `toml:"test"`
		// StrictClippy escalates clippy warnings to hard failures.
		StrictClippy bool `toml:"strict_clippy"`
		// Hint is free-form Markdown shown on request.
		Hint string `toml:"hint"`
	}

	// File is the parsed manifest.
	File struct {
		// WelcomeMessage is printed when the trainer starts for the first time.
		WelcomeMessage string `toml:"welcome_message"`
		// FinalMessage is printed when every exercise is done.
		FinalMessage string `toml:"final_message"`
		// Exercises lists all exercises in their intended working order.
		Exercises []ExerciseInfo `toml:"exercises"`
	}

	// ValidationError describes a single invalid manifest entry.
	ValidationError struct {
		Index int
		Name  string
		Issue string
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("info: exercise %q (entry %d): %s", e.Name, e.Index, e.Issue)
	}
	return fmt.Sprintf("info: entry %d: %s", e.Index, e.Issue)
}

// Unwrap returns ErrInvalidManifest so callers can use errors.Is.
func (e *ValidationError) Unwrap() error { return ErrInvalidManifest }

// TestRequired reports whether the exercise has a test stage. The manifest
// default is true; authors opt out explicitly with test = false.
func (i *ExerciseInfo) TestRequired() bool {
	return i.Test == nil || *i.Test
}

// ExtOrDefault returns the entry's kind tag, defaulting to a Rust source.
func (i *ExerciseInfo) ExtOrDefault() string {
	if i.Ext == "" {
		return "rs"
	}
	return i.Ext
}

// Path returns the exercise file's repository-relative path.
func (i *ExerciseInfo) Path() string {
	name := i.Name + "." + i.ExtOrDefault()
	if i.Dir == "" {
		return path.Join("exercises", name)
	}
	return path.Join("exercises", i.Dir, name)
}

// Load reads and validates the manifest at the given path.
func Load(manifestPath string) (*File, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("info: read manifest: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("info: parse manifest: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate checks structural manifest invariants: every entry has a name
// and names are unique. Unknown extensions are deliberately not rejected
// here; they surface as unsupported-kind errors when the exercise runs.
func (f *File) validate() error {
	if len(f.Exercises) == 0 {
		return &ValidationError{Issue: "manifest lists no exercises"}
	}

	seen := make(map[string]struct{}, len(f.Exercises))
	for i := range f.Exercises {
		entry := &f.Exercises[i]
		if entry.Name == "" {
			return &ValidationError{Index: i, Issue: "missing name"}
		}
		if _, dup := seen[entry.Name]; dup {
			return &ValidationError{Index: i, Name: entry.Name, Issue: "duplicate name"}
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}

// ExerciseList converts manifest entries into exercise descriptors.
func (f *File) ExerciseList() []*exercise.Exercise {
	list := make([]*exercise.Exercise, 0, len(f.Exercises))
	for i := range f.Exercises {
		entry := &f.Exercises[i]
		list = append(list, &exercise.Exercise{
			Name:         entry.Name,
			Dir:          entry.Dir,
			Ext:          entry.ExtOrDefault(),
			Path:         entry.Path(),
			Test:         entry.TestRequired(),
			StrictClippy: entry.StrictClippy,
			Hint:         entry.Hint,
		})
	}
	return list
}
