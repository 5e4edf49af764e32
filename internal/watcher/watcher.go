// Package watcher reloads the session catalog when its definition file
// changes on disk. Events are debounced because editors and DCC
// exporters typically emit several writes per save.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"uv-hotspotter/internal/logger"
	"uv-hotspotter/internal/session"
)

var log = logger.ForComponent("watcher")

// DefaultDebounce is the quiet window after the last write event before
// a reload fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches one catalog file.
type Watcher struct {
	fs       *fsnotify.Watcher
	sess     *session.Session
	file     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// Watch starts watching the session's current catalog file. The parent
// directory is watched because save-by-rename replaces the inode.
func Watch(sess *session.Session, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fs,
		sess:     sess,
		file:     filepath.Clean(sess.CatalogPath()),
		debounce: debounce,
		done:     make(chan struct{}),
	}
	if err := fs.Add(filepath.Dir(w.file)); err != nil {
		fs.Close()
		return nil, err
	}
	go w.run()
	log.Info("watching catalog", "path", w.file)
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload swaps the catalog; a broken definition keeps the old snapshot.
func (w *Watcher) reload() {
	if err := w.sess.Reload(); err != nil {
		log.Warn("catalog reload failed, keeping previous", "path", w.file, "error", err)
		return
	}
	log.Info("catalog reloaded", "path", w.file)
}

// Close stops watching. Pending debounced reloads are cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	close(w.done)
	return w.fs.Close()
}
