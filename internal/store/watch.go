package store

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce is how long the watcher waits after the last file event
// before comparing the stored value.
var watchDebounce = 100 * time.Millisecond

// Watcher signals when the stored collection changes. File events on the
// SQLite files (db, -wal, -shm) only trigger a comparison of the stored value
// against the last one seen, so opening, reading and closing the store does
// not signal. Bursts coalesce: C holds at most one pending signal.
type Watcher struct {
	fw     *fsnotify.Watcher
	kv     KV
	c      chan struct{}
	logger *zap.Logger

	// last is the stored value as of the previous signal (nil when unset).
	last []byte

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

func (s Store) Watch(logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// The watcher keeps its own connection open for its lifetime, so short
	// lived Load/Save connections never remove the -wal/-shm files.
	kv, err := s.OpenKV(context.Background())
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	if err := fw.Add(s.Dir); err != nil {
		_ = fw.Close()
		_ = kv.Close()
		return nil, err
	}
	w := &Watcher{
		fw:      fw,
		kv:      kv,
		c:       make(chan struct{}, 1),
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.last, _ = w.current()
	go w.loop()
	return w, nil
}

func (w *Watcher) C() <-chan struct{} { return w.c }

func (w *Watcher) current() ([]byte, error) {
	v, ok, err := w.kv.Get(context.Background(), IdeasKey)
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !isStoreFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			w.checkChanged()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) checkChanged() {
	v, err := w.current()
	if err != nil {
		w.logger.Warn("store watcher read", zap.Error(err))
		return
	}
	if bytes.Equal(v, w.last) {
		return
	}
	w.last = v
	w.logger.Debug("store changed", zap.Int("bytes", len(v)))
	select {
	case w.c <- struct{}{}:
	default:
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()
		<-w.stopped
		if kerr := w.kv.Close(); err == nil {
			err = kerr
		}
	})
	return err
}

func isStoreFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), sqliteFileName)
}
