package cellgrid

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit on a single save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the layout found at path every time the file changes and
// hands the result to fn. Decoding errors are passed to fn as well, so a
// broken intermediate save does not stop the watch. Watch blocks until ctx
// is done or the watcher fails.
func Watch(ctx context.Context, path string, fn func(*Layout, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create the file watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	// The parent directory is watched since many editors replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("unable to watch %q: %w", path, err)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		case <-timer.C:
			fn(LoadLayout(path))
		}
	}
}
