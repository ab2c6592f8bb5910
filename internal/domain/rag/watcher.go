// Policy-directory watcher built on fsnotify. Publishes corpus-change events
// to the event bus; the Index subscribes and rebuilds. Only *.txt files are
// considered — everything else in the directory is ignored.
package rag

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/unhbank/banking-assistant/internal/infra/eventbus"
)

// Watcher monitors a policy directory for corpus changes.
type Watcher struct {
	watcher *fsnotify.Watcher
}

// NewWatcher creates an inactive watcher; call Watch to start it.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher: w}, nil
}

// Watch starts monitoring dir and publishes TopicCorpusChanged for every
// create/write/remove/rename of a *.txt file. The loop runs in its own
// goroutine and stops when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string, bus eventbus.EventBus) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != ".txt" {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				bus.Publish(TopicCorpusChanged, event.Name)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("corpus watcher error")
			}
		}
	}()

	log.WithField("dir", dir).Info("watching policy corpus for changes")
	return nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
