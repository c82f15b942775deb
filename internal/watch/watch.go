package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// minGap is the shortest interval between two reactions to file events.
const minGap = time.Second

// File calls fn once immediately, again whenever the file at path is
// written, created or replaced, and at least once per interval, until ctx
// is done. The parent directory is watched rather than the file itself
// because saves replace the file via rename, and is created if missing.
// Events closer than minGap to the previous call are coalesced into one
// deferred call.
func File(ctx context.Context, path string, interval time.Duration, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watcher.Add %s: %w", dir, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		deferred *time.Timer
		pending  <-chan time.Time // nil unless a call is deferred
	)
	defer func() {
		if deferred != nil {
			deferred.Stop()
		}
	}()

	lastRun := time.Now()
	run := func() {
		fn()
		lastRun = time.Now()
		if deferred != nil {
			deferred.Stop()
		}
		pending = nil
	}

	run()
	name := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			run()

		case <-pending:
			run()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if wait := minGap - time.Since(lastRun); wait > 0 {
				if pending == nil {
					deferred = time.NewTimer(wait)
					pending = deferred.C
				}
				continue
			}
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "path", path, "error", err)
		}
	}
}
