// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs the current exercise when its sources change.
//
// It monitors the exercise repository with fsnotify, filters events against
// doublestar glob patterns for exercise source files, and fires a debounced
// callback so editor write-then-rename sequences trigger one re-run instead
// of several.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last filesystem event
// before the callback fires.
const defaultDebounce = 500 * time.Millisecond

// defaultPatterns selects the exercise source kinds the verification
// pipeline knows how to run.
var defaultPatterns = []string{
	"exercises/**/*.rs",
	"exercises/**/*.circom",
	"exercises/**/*.md",
}

// defaultIgnores excludes build artifacts and VCS/editor noise. The cargo
// target directory matters most: every verification run writes there, and
// watching it would re-trigger the watcher from its own output.
var defaultIgnores = []string{
	"**/target/**",
	"**/.git/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the exercise repository root. Empty defaults to the
		// current working directory.
		BaseDir string

		// Patterns are doublestar globs selecting files that trigger a
		// re-run. Empty falls back to the exercise source defaults.
		Patterns []string

		// Debounce is the quiet period before OnChange fires. Zero or
		// negative falls back to defaultDebounce.
		Debounce time.Duration

		// ClearScreen clears the terminal before each callback by writing
		// ANSI escapes to Stdout.
		ClearScreen bool

		// OnChange is called after the debounce window closes with the
		// deduplicated changed paths (relative to BaseDir).
		OnChange func(ctx context.Context, changed []string) error

		// Stdout and Stderr receive informational and error messages.
		// nil values default to os.Stdout / os.Stderr.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Watcher monitors the exercise repository and fires a debounced
	// callback when exercise sources change. Run must be called exactly
	// once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		stdout   io.Writer
		stderr   io.Writer
		debounce time.Duration
		baseDir  string
		started  atomic.Bool
	}
)

// New creates a Watcher from cfg, registering every non-ignored directory
// under BaseDir with fsnotify.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}
	// Invalid globs fail at construction time rather than silently never
	// matching at runtime.
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		stdout:   stdout,
		stderr:   stderr,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks for
// matching filesystem events. It returns nil on clean cancellation and
// propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. The skip-if-busy
	// guard prevents overlapping verification runs when a pipeline takes
	// longer than the debounce period; the timer reset keeps the pending
	// events from being silently dropped.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := make([]string, 0, len(pending))
		for rel := range pending {
			changed = append(changed, rel)
		}
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			// ANSI: clear screen, cursor to top-left.
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: re-run failed: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if isIgnored(rel) {
				continue
			}

			// New directories (e.g. a freshly added exercise chapter) are
			// added so recursive watching extends past startup.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			if !matchesAny(w.patterns, rel) {
				continue
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// addDirectories registers every non-ignored directory under BaseDir.
// Pattern filtering happens per event, not here.
func (w *Watcher) addDirectories() error {
	return filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip inaccessible directories rather than aborting the walk.
			fmt.Fprintf(w.stderr, "watch: skipping inaccessible path %q: %v\n", path, walkErr)
			return nil //nolint:nilerr // intentional skip
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if isIgnored(rel) || isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
}

// maybeAddDir adds path to the watcher if it is a non-ignored directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || isIgnored(rel) || isIgnored(rel+"/") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", path, err)
	}
}

// isIgnored reports whether rel matches a built-in ignore pattern.
func isIgnored(rel string) bool {
	return matchesAny(defaultIgnores, rel)
}

// matchesAny reports whether rel matches at least one doublestar pattern.
func matchesAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid pattern %q: %w", pat, err)
		}
	}
	return nil
}

// DefaultPatterns returns a copy of the built-in exercise source patterns.
func DefaultPatterns() []string {
	out := make([]string, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}
