// Package watch reruns a function whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

type Options struct {
	// Files are the files to watch. Their directories are watched so that
	// editors replacing files atomically are picked up too.
	Files []string

	// Patterns are filepath.Match globs. Files created after Run started
	// that match a pattern are watched as well.
	Patterns []string

	Debounce time.Duration
	Logger   *slog.Logger
}

type matcher struct {
	files    map[string]bool
	patterns []string
}

func (m *matcher) match(name string) bool {
	name = filepath.Clean(name)
	if m.files[name] {
		return true
	}

	for _, p := range m.patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}

	return false
}

// Run calls fn once for every burst of changes to the watched files until
// ctx is done. Errors returned by fn are logged and don't stop watching.
func Run(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	m := &matcher{files: make(map[string]bool, len(opts.Files))}
	dirs := make(map[string]bool)
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}

		m.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for _, p := range opts.Patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}

		if _, err := filepath.Match(abs, ""); err != nil {
			return fmt.Errorf(`invalid watch pattern "%s": %w`, p, err)
		}

		m.patterns = append(m.patterns, abs)

		if err := patternDirs(abs, dirs); err != nil {
			return err
		}
	}

	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf(`failed to watch directory "%s": %w`, d, err)
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !m.match(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}

			logger.Debug("source file changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warn("file watcher error", "error", err)
		case <-timer.C:
			if err := fn(ctx); err != nil {
				logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// patternDirs adds the directories new matches of pattern can appear in.
// Only the last path element may contain glob characters for new files to
// be noticed; otherwise the directories of the current matches are used.
func patternDirs(pattern string, dirs map[string]bool) error {
	dir := filepath.Dir(pattern)
	if !strings.ContainsAny(dir, `*?[\`) {
		dirs[dir] = true
		return nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, f := range matches {
		dirs[filepath.Dir(f)] = true
	}

	return nil
}
