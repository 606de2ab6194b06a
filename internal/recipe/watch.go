package recipe

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

// Watch monitors path and calls onChange with the freshly parsed presets
// each time the file is written. It runs until ctx is cancelled.
//
// If a reload fails (e.g. invalid YAML), the error is logged and onChange
// is not called, so the previous presets stay active.
func Watch(ctx context.Context, path string, log *logger.Logger, onChange func([]*domain.Preset)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	log.Info("watching preset file %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors that save atomically rename over the file, which
			// shows up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			presets, err := LoadFile(path)
			if err != nil {
				log.Error("preset reload failed, keeping previous presets: %v", err)
				continue
			}

			log.Info("reloaded %d presets from %s", len(presets), path)
			onChange(presets)

			// Re-add in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("preset watcher error: %v", err)
		}
	}
}
