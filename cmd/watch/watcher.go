package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

func watchAndRewrite(ctx context.Context, r *rewriter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// The root itself is watched for config file edits only.
	if err := watcher.Add(r.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.root, err)
	}
	for _, dir := range r.watchRoots() {
		if err := addWatchDirs(watcher, dir, r.outDir); err != nil {
			return fmt.Errorf("failed to watch directories: %w", err)
		}
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, r.outDir) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				rebuildLogged(ctx, r)
			})

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name, r.outDir)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", map[string]any{"error": err})
		}
	}
}

// isRelevantChange reports whether event can change the rewritten output. Any
// file counts, since a new platform variant changes how its importers resolve.
func isRelevantChange(event fsnotify.Event, outDir string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return !isWithin(outDir, abs)
}

func addWatchDirs(watcher *fsnotify.Watcher, root, outDir string) error {
	return addWatchDirsWithAdder(root, outDir, watcher.Add)
}

func addWatchDirsWithAdder(root, outDir string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && cmdutil.SkippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if abs, err := filepath.Abs(path); err == nil && isWithin(outDir, abs) {
			return filepath.SkipDir
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path, outDir string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path, outDir)
	}
}
