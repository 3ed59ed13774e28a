package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// dirAdder registers directories with a watcher.
type dirAdder interface {
	Add(name string) error
}

// WatchService re-merges source decks when they are created or written.
type WatchService struct {
	merge    driving.MergeService
	prefixes domain.PrefixSettings
}

// NewWatchService creates a watch service.
func NewWatchService(merge driving.MergeService, settings domain.Settings) *WatchService {
	return &WatchService{merge: merge, prefixes: settings.Prefixes}
}

// Watch blocks until ctx is cancelled, merging every changed source deck under folder.
func (s *WatchService) Watch(ctx context.Context, folder string, onMerge func(*domain.MergeResult, error)) error {
	info, err := os.Stat(folder)
	if err != nil {
		return inputError(folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, folder)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, folder); err != nil {
		return fmt.Errorf("watch %s: %w", folder, err)
	}
	logger.Info("watch: watching %s", folder)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := s.handleEvent(watcher, event)
			if path == "" {
				continue
			}
			logger.Info("watch: %s changed", path)
			result, err := s.merge.MergeFile(ctx, path, "")
			if onMerge != nil {
				onMerge(result, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// handleEvent returns the deck to merge for event, or "" when the event is ignored.
// Newly created directories are added to w.
func (s *WatchService) handleEvent(w dirAdder, event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if isHidden(filepath.Base(event.Name)) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := addTree(w, event.Name); err != nil {
				logger.Warn("watch: %v", err)
			}
		}
		return ""
	}

	if !isMarkdown(event.Name) || IsIgnoredPage(event.Name) || variantOf(event.Name, s.prefixes) != "" {
		return ""
	}
	return event.Name
}

// addTree registers root and every non-hidden directory below it.
func addTree(w dirAdder, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
