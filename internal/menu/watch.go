package menu

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrFileRemoved is reported when the watched menu file disappears. The last
// valid registry stays in effect.
var ErrFileRemoved = errors.New("menu file was removed")

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the menu file at path each time it changes, until ctx is
// done. Valid configurations are handed to onReload; read, parse and
// validation failures go to onError. The directory is watched rather than the
// file so atomic renames are seen.
func Watch(ctx context.Context, path string, debounce time.Duration, onReload func(*Registry), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := time.NewTimer(debounce)
	pending.Stop()
	defer pending.Stop()
	target := filepath.Base(abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				onError(fmt.Errorf("%s: %w", path, ErrFileRemoved))
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				pending.Reset(debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			onError(fmt.Errorf("watch %s: %w", path, err))
		case <-pending.C:
			registry, err := Load(abs)
			if err != nil {
				onError(err)
				continue
			}
			onReload(registry)
		}
	}
}
