package preset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the preset whenever its file is written, until ctx is done.
// Bursts of events within delay trigger a single reload.
func (s *Store) Watch(ctx context.Context, delay time.Duration, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often replace the file, so the directory is watched
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go s.watchLoop(ctx, watcher, delay, onReload)

	slog.Info("Watching preset file", "path", s.path)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, delay time.Duration, onReload func()) {
	defer watcher.Close()

	target := filepath.Clean(s.path)
	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Preset watcher error", "error", err)
		case <-timer.C:
			if _, err := s.Load(); err != nil {
				slog.Error("Failed to reload preset, keeping previous", "path", s.path, "error", err)
				continue
			}
			slog.Info("Preset reloaded", "path", s.path)
			if onReload != nil {
				onReload()
			}
		}
	}
}
