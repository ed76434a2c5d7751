// Package watcher re-converts payload files whenever they change on disk.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	figmaimporter "github.com/kataras/figma-importer"
)

// DefaultDebounce groups the bursts of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the outcome of every conversion. Calls are serialized.
type Handler func(path string, result *figmaimporter.Result, err error)

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period after the last event of a file before it
	// is converted, DefaultDebounce when zero.
	Debounce time.Duration
	// Convert is passed to every conversion.
	Convert figmaimporter.Options
	// IgnorePatterns are matched against file base names ("*.figma.json").
	// Matching files are never converted, even when a pattern selects them.
	IgnorePatterns []string
}

// Watcher converts the files matching a set of glob patterns once on Start
// and again after each write. Files created later that match a pattern are
// picked up if their directory is watched.
//
//	w, err := watcher.New([]string{"designs/**/*.json"}, handler, watcher.Options{}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	handler  Handler
	options  Options
	logger   *slog.Logger

	ctx context.Context

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	handleMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// New creates a Watcher for the given glob patterns. The patterns use the
// doublestar syntax, "**" matches any number of directories.
func New(patterns []string, handler Handler, options Options, logger *slog.Logger) (*Watcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("watcher: no patterns")
	}
	if handler == nil {
		return nil, fmt.Errorf("watcher: nil handler")
	}

	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.Clean(p)
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("watcher: invalid pattern %q", p)
		}
		cleaned = append(cleaned, p)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create: %w", err)
	}

	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		watcher:        fw,
		patterns:       cleaned,
		handler:        handler,
		options:        options,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start converts the files currently matching the patterns, then watches
// their directories in the background until Stop is called or ctx is done.
//
// A pattern matching no file is not an error, its base directory is
// watched for files created later. A failed Start leaves the watcher
// stopped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	switch {
	case w.stopped:
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	case w.started:
		w.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	w.started = true
	w.ctx = ctx
	w.mu.Unlock()

	dirs := make(map[string]bool)
	var files []string

	for _, p := range w.patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		dirs[filepath.FromSlash(base)] = true

		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			_ = w.Stop()
			return fmt.Errorf("watcher: expand %q: %w", p, err)
		}
		for _, m := range matches {
			dirs[filepath.Dir(m)] = true
			if !w.shouldIgnore(m) {
				files = append(files, m)
			}
		}
	}

	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			_ = w.Stop()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.logger.Info("File watcher started", "patterns", w.patterns, "directories", len(dirs), "files", len(files))

	for _, f := range files {
		w.convert(f)
	}

	go w.eventLoop(ctx)

	return nil
}

// Stop stops the watcher and cancels pending conversions. Safe to call
// multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("File watcher stopped")
	return err
}

// Pending returns the number of files waiting for their debounce period.
func (w *Watcher) Pending() int {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	return len(w.debounceTimers)
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-w.stopChan:
			return

		case <-ctx.Done():
			_ = w.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if w.shouldIgnore(path) || !w.matches(path) {
		return
	}

	w.logger.Debug("File event", "op", event.Op.String(), "file", path)

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.debounceConvert(path)

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.cancel(path)
	}
}

func (w *Watcher) matches(path string) bool {
	for _, p := range w.patterns {
		if ok, _ := doublestar.PathMatch(p, path); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldIgnore(path string) bool {
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

// debounceConvert schedules a conversion of path once no event arrived for
// the debounce period.
func (w *Watcher) debounceConvert(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.convert(path)
	})
}

func (w *Watcher) cancel(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
		delete(w.debounceTimers, path)
	}
	w.logger.Debug("File removed", "file", path)
}

func (w *Watcher) convert(path string) {
	w.handleMu.Lock()
	defer w.handleMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	result, err := figmaimporter.ConvertFile(w.ctx, path, w.options.Convert)
	if err != nil {
		w.logger.Warn("Conversion failed", "file", path, "error", err)
	} else {
		w.logger.Debug("File converted", "file", path, "nodes", result.Stats.Total())
	}

	w.handler(path, result, err)
}
