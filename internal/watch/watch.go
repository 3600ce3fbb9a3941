// Package watch reruns a conversion whenever a document in a directory is
// created or rewritten.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"unify-data-model/internal/document"
)

// SettleDelay is how long a document must stay quiet after a change before
// its handler runs.
const SettleDelay = 100 * time.Millisecond

// Handler is called with the base name of a changed document.
type Handler func(ctx context.Context, name string)

// Watcher delivers document change events for one directory.
type Watcher struct {
	dir     string
	fs      *fsnotify.Watcher
	logger  *slog.Logger
	handler Handler
	delay   time.Duration

	pending map[string]*time.Timer
	settled chan string
}

// New starts watching dir. Subdirectories are not watched.
func New(dir string, logger *slog.Logger, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		fs:      fw,
		logger:  logger,
		handler: handler,
		delay:   SettleDelay,
		pending: make(map[string]*time.Timer),
		settled: make(chan string),
	}, nil
}

// Run dispatches events until ctx is done, then closes the watcher.
// Bursts of events for one document collapse into a single handler call once
// the document has been quiet for SettleDelay. Handlers run one at a time on
// the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	defer w.stopPending()

	w.logger.Info("watching for documents", slog.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if name, ok := w.relevant(ev); ok {
				w.logger.Debug("document changed", slog.String("document", name), slog.String("op", ev.Op.String()))
				w.schedule(ctx, name)
			}
		case name := <-w.settled:
			delete(w.pending, name)
			w.handler(ctx, name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watch error", slog.Any("error", err))
		}
	}
}

// schedule (re)starts the settle timer of name.
func (w *Watcher) schedule(ctx context.Context, name string) {
	if t, ok := w.pending[name]; ok {
		t.Reset(w.delay)
		return
	}

	w.pending[name] = time.AfterFunc(w.delay, func() {
		select {
		case w.settled <- name:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopPending() {
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}

	if filepath.Dir(ev.Name) != filepath.Clean(w.dir) {
		return "", false
	}

	name := filepath.Base(ev.Name)

	return name, document.IsDocument(name)
}
