package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joycelim/callheat/internal/util"
)

// debounceDelay coalesces the burst of writes an exporter produces when
// it rewrites a log file.
const debounceDelay = 500 * time.Millisecond

// WatchDataDir reloads the dataset whenever a call-log file under dataDir
// changes. Blocks until ctx is cancelled.
func WatchDataDir(ctx context.Context, dataDir string, dataset *Dataset) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dataDir, err)
	}
	util.LogInfo("Watching " + dataDir + " for call-log changes")

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".jsonl") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			util.LogDebug(fmt.Sprintf("Data change detected: %s (%s)", event.Name, event.Op))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := dataset.Reload(); err != nil {
				util.LogError(fmt.Sprintf("Dataset reload failed: %v", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogWarn(fmt.Sprintf("File watcher error: %v", err))
		}
	}
}
