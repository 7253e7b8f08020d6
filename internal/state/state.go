// SPDX-License-Identifier: MPL-2.0

package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the state file created in the exercise repository root.
const FileName = ".drills-state.txt"

// banner is the first line of the state file. It is informational only;
// parsing skips it.
const banner = "DON'T EDIT THIS FILE!"

// State tracks which exercise the learner is on and which are done.
type State struct {
	// Current is the name of the exercise the learner is working on.
	// Empty means the first pending exercise.
	Current string

	done map[string]struct{}
	path string
}

// Load reads the state file in dir. A missing file yields a fresh empty
// state; any other read problem is an error.
func Load(dir string) (*State, error) {
	s := &State{
		done: make(map[string]struct{}),
		path: filepath.Join(dir, FileName),
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", FileName, err)
	}

	// Format: banner line, blank, current exercise name, blank, done names.
	lines := strings.Split(string(data), "\n")
	fields := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == banner {
			continue
		}
		fields = append(fields, line)
	}
	if len(fields) > 0 {
		s.Current = fields[0]
		for _, name := range fields[1:] {
			s.done[name] = struct{}{}
		}
	}
	return s, nil
}

// IsDone reports whether the named exercise has been completed.
func (s *State) IsDone(name string) bool {
	_, ok := s.done[name]
	return ok
}

// MarkDone records the named exercise as completed.
func (s *State) MarkDone(name string) {
	s.done[name] = struct{}{}
}

// DoneCount returns the number of completed exercises.
func (s *State) DoneCount() int {
	return len(s.done)
}

// Save atomically rewrites the state file: the content is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash mid-write never leaves a truncated state file behind.
func (s *State) Save() error {
	var sb strings.Builder
	sb.WriteString(banner)
	sb.WriteString("\n\n")
	sb.WriteString(s.Current)
	sb.WriteString("\n\n")
	for name := range s.done {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("state: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: replace %s: %w", FileName, err)
	}
	return nil
}
