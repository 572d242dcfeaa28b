package actorfile

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// Watcher reloads an actor file each time it is written. It watches the real
// filesystem, so its loader should be backed by the OS filesystem too.
type Watcher struct {
	loader *Loader
	path   string
}

// NewWatcher creates a watcher for the actor file at path
func NewWatcher(loader *Loader, path string) *Watcher {
	return &Watcher{loader: loader, path: filepath.Clean(path)}
}

// Run blocks until ctx is done. After every write to the file it calls
// onChange with the freshly loaded actor or the load error.
func (w *Watcher) Run(ctx context.Context, onChange func(*bfrpg.Actor, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}

	slog.Debug("Watching actor file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Actor file watcher stopped", "path", w.path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			slog.Debug("Actor file changed", "path", event.Name, "event", event.Op.String())
			onChange(w.loader.Load(w.path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Actor file watcher error", "path", w.path, "error", err)
		}
	}
}
