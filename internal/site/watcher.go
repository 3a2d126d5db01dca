package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Site when files under the content root change.
type Watcher struct {
	site     *Site
	root     string
	debounce time.Duration
	backoff  func(attempt int) time.Duration
	log      *slog.Logger

	fw     *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the root directory and its section
// directories. Bursts of events within debounce trigger one reload.
func NewWatcher(site *Site, root string, debounce time.Duration, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		site:     site,
		root:     root,
		debounce: debounce,
		backoff:  reloadBackoff,
		log:      log,
	}
}

// Start subscribes to file events and launches the reload loop.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.fw = fw
	if err := w.watchTree(); err != nil {
		fw.Close()
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(loopCtx)
	}()
	return nil
}

// Stop ends the reload loop and releases the watcher.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	if w.fw != nil {
		w.fw.Close()
	}
}

func (w *Watcher) run(ctx context.Context) {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			w.log.Debug("content event", "op", ev.Op.String(), "path", ev.Name)
			fire = time.After(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	// New section directories need their own subscription.
	if err := w.watchTree(); err != nil {
		w.log.Warn("rewatch failed", "error", err)
	}
	w.loadWithRetry(ctx)
}

// loadWithRetry reloads the site, retrying retryable failures up to
// maxReloadAttempts times. It reports whether a load succeeded.
func (w *Watcher) loadWithRetry(ctx context.Context) bool {
	for attempt := 0; ; attempt++ {
		changed, err := w.site.Load(ctx)
		if err == nil {
			if changed {
				w.log.Info("content reloaded")
			}
			return true
		}
		if !isRetryable(err) || attempt+1 >= maxReloadAttempts {
			w.log.Error("reload failed, keeping previous content", "error", err, "attempts", attempt+1)
			return false
		}
		wait := w.backoff(attempt)
		w.log.Warn("reload failed, retrying", "error", err, "attempt", attempt+1, "backoff", wait)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
	}
}

// watchTree adds the root and each immediate subdirectory.
func (w *Watcher) watchTree() error {
	if err := w.fw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("list %s: %w", w.root, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}
