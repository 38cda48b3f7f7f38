package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/diary/pkg/core"
)

const defaultDebounce = 50 * time.Millisecond

// Watch emits an event whenever the journal at path is created, rewritten or
// removed by someone else. The channel closes once ctx is cancelled.
//
// The parent directory is watched rather than the file itself: atomic saves
// replace the inode, which would silently end a per-file watch.
func (r *Repository) Watch(ctx context.Context, path string) (<-chan core.Event, error) {
	w, err := newWatchWorker(r, r.resolve(path))
	if err != nil {
		return nil, err
	}
	w.start(ctx)
	return w.out, nil
}

type watchWorker struct {
	repo      *Repository
	target    string
	exists    bool
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	out       chan core.Event
	done      chan struct{} // closed when run returns; unblocks pending sends
}

func newWatchWorker(repo *Repository, target string) (*watchWorker, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	delay := repo.config.Debounce
	if delay <= 0 {
		delay = defaultDebounce
	}

	_, statErr := os.Stat(target)
	return &watchWorker{
		repo:      repo,
		target:    target,
		exists:    statErr == nil,
		watcher:   watcher,
		debouncer: newDebouncer(delay),
		out:       make(chan core.Event),
		done:      make(chan struct{}),
	}, nil
}

func (w *watchWorker) start(ctx context.Context) {
	w.repo.setWatching(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.reportError(fmt.Errorf("watcher stopped: %w", err))
	}))
}

// run is the event loop. It owns the fsnotify watcher and the out channel.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.repo.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.repo.setWatching(-1)
	defer close(w.out)
	defer w.debouncer.stopAndWait()
	defer w.watcher.Close()
	defer close(w.done)

	logger.Debug("watching journal", "path", w.target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
			w.reportError(wErr)
		}
	}
}

// handle maps a raw notification on the target to a journal event.
func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target || strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return
	}
	w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		// A rename over an existing journal arrives as Create.
		eType = core.EventCreate
		if w.exists {
			eType = core.EventModify
		}
		w.exists = true
	case event.Has(fsnotify.Write):
		eType = core.EventModify
		w.exists = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
		w.exists = false
	default:
		return
	}

	w.debouncer.add(core.Event{
		Type:      eType,
		Path:      w.target,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		select {
		case w.out <- e:
		case <-ctx.Done():
		case <-w.done:
		}
	})
}

func (w *watchWorker) reportError(err error) {
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
		return
	}
	w.repo.config.Logger.Error("watcher error", "error", err)
}
