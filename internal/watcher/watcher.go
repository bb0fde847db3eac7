// Package watcher monitors an input directory and reports newly
// written documents so they can be processed as they arrive.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veldt-labs/ragprep-cli/internal/logger"
)

// DefaultSettle is how long a file must stay quiet after its last
// write before it is reported. Editors and download managers write
// files in bursts; reporting on the first event would hand the
// pipeline a half-written document.
const DefaultSettle = 500 * time.Millisecond

// Handler receives the path of a file that appeared or changed in the
// watched directory.
type Handler func(path string)

// Watcher watches a single directory, non-recursively, for files with
// a supported extension.
type Watcher struct {
	dir        string
	extensions map[string]bool
	handler    Handler
	settle     time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle overrides the quiet period before a changed file is
// reported.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// New creates a watcher over dir that invokes handler for files whose
// lower-cased extension appears in extensions.
func New(dir string, extensions []string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:        dir,
		extensions: make(map[string]bool, len(extensions)),
		handler:    handler,
		settle:     DefaultSettle,
		pending:    make(map[string]*time.Timer),
	}
	for _, ext := range extensions {
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until the context is cancelled. It returns nil on
// cancellation and an error if the watch cannot be established or the
// underlying notifier fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()
	defer w.drainPending()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// handleEvent schedules a report for create and write events on
// supported files, resetting the settle timer on repeated writes.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := event.Name
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		logger.Debug("file settled: %s", path)
		w.handler(path)
	})
}

// drainPending cancels timers that have not fired yet.
func (w *Watcher) drainPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
