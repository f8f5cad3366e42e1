package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk and publishes its
// tunables. Only the latest unread update is kept.
type Watcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	updates chan Tunables
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
	hash    uint64
}

// NewWatcher watches the directory holding path, so editors that replace the
// file on save are still seen.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		logger:  logger,
		watcher: w,
		updates: make(chan Tunables, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		watcher.hash = xxhash.Sum64(data)
	}
	go watcher.run()
	return watcher, nil
}

// Updates delivers reloaded tunables.
func (w *Watcher) Updates() <-chan Tunables {
	return w.updates
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case <-timer.C:
			w.reload()
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	sum := xxhash.Sum64(data)
	if sum == w.hash {
		return
	}

	cfg, err := Parse(data)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.hash = sum
	w.publish(cfg.Tunables())
	w.logger.Info("config reloaded", zap.String("path", w.path), zap.Uint64("hash", sum))
}

func (w *Watcher) publish(t Tunables) {
	for {
		select {
		case w.updates <- t:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
