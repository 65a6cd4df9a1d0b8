// Package payments serves the locally configured payment method list.
// The list lives in a JSON file next to the bot config and can be edited
// while the bot runs; a watcher picks up changes without a restart.
package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"lancabot/core/logger"
	"lancabot/internal/options"
)

// Source loads and caches the payment method list. A missing or malformed
// file degrades to an empty list so a config mistake never takes the bot
// down mid-flow.
type Source struct {
	path string

	mu   sync.RWMutex
	list []string
}

func NewSource(path string) *Source {
	s := &Source{path: path}
	s.Reload()
	return s
}

// List returns a copy of the current payment methods. Each call snapshots,
// so a reload between two flow steps is fine.
func (s *Source) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}

// Reload re-reads the file and swaps the cached list in.
func (s *Source) Reload() {
	list := loadFile(s.path)
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	logger.Debug(logger.Background(), "payments", "payments.reloaded",
		slog.String("path", s.path), slog.Int("options", len(list)))
}

// Watch reloads the list whenever the file is written or recreated, until
// ctx is cancelled. Errors setting up the watcher are returned; errors
// during watching are logged and swallowed.
func (s *Source) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, not the file: editors replace files by rename
	// and a file watch would die with the old inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn(logger.Background(), "payments", "payments.watch_error",
					slog.Any("err", err))
			}
		}
	}()
	return nil
}

func loadFile(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn(logger.Background(), "payments", "payments.read_failed",
			slog.String("path", path), slog.Any("err", err))
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn(logger.Background(), "payments", "payments.parse_failed",
			slog.String("path", path), slog.Any("err", err))
		return nil
	}
	return options.Clean(items)
}
