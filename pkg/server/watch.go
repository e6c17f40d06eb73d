package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchOps are the file events that trigger a reload.
const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch broadcasts a reload for every change to a document in the docs
// directory until ctx is done. Bursts of events within the debounce
// interval produce one reload naming the last changed file.
func (s *Server) Watch(ctx context.Context) error {
	w, err := s.openWatcher()
	if err != nil {
		return err
	}
	return s.watchLoop(ctx, w)
}

func (s *Server) openWatcher() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("server: watch: %w", err)
	}
	if err := w.Add(s.config.DocsDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("server: watch %s: %w", s.config.DocsDir, err)
	}
	return w, nil
}

func (s *Server) watchLoop(ctx context.Context, w *fsnotify.Watcher) error {
	defer w.Close()

	var (
		pending string
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&watchOps == 0 || !isDocument(ev.Name) {
				continue
			}
			pending = filepath.Base(ev.Name)
			fire = time.After(s.config.Debounce)
		case <-fire:
			fire = nil
			s.logger.Info("document changed", zap.String("file", pending))
			s.hub.NotifyReload(pending)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", zap.Error(err))
		}
	}
}
