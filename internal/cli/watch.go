package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/neurocontainers/recipekit"
)

const debounce = 100 * time.Millisecond

// WatchFile reports changes to path on the returned channel until ctx is done.
// The parent directory is watched so that editors replacing the file are seen.
// Bursts of events are coalesced.
func WatchFile(ctx context.Context, path string, logger *slog.Logger) (<-chan string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				logger.Debug("File event", "path", ev.Name, "op", ev.Op.String())
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error", "err", err)
			case <-fire:
				fire = nil
				select {
				case out <- path:
				default:
				}
			}
		}
	}()
	return out, nil
}

// RunWatch validates the recipe at path, then again on every change, until ctx is done.
func RunWatch(ctx context.Context, w io.Writer, kit *recipekit.Kit, path string, logger *slog.Logger) error {
	changes, err := WatchFile(ctx, path, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting Watcher", "path", path)
	check := func() {
		if _, err := CheckRecipe(w, kit, path, nil); err != nil {
			fmt.Fprintf(w, "%v\n", err)
		}
		PrintSystemMessage(w, "Waiting for changes...")
	}

	check()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			PrintSystemMessage(w, "Change detected in '%s'.", path)
			check()
		}
	}
}
