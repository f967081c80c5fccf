package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher hot-reloads the config file so the scrape query list can change
// without a restart. Only scrape settings are re-read; everything else
// (listener address, store URI, credentials) keeps its startup value.
type Watcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu  sync.RWMutex
	cfg *Config
}

// Watch starts watching path and serving the current config. The initial
// config is used until the first successful reload.
func Watch(path string, initial *Config, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		logger:  logger.Named("config"),
		watcher: fw,
		done:    make(chan struct{}),
		cfg:     initial,
	}
	go w.loop()
	return w, nil
}

// Queries returns the current scrape query list.
func (w *Watcher) Queries() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]string, len(w.cfg.Scrape.Queries))
	copy(out, w.cfg.Scrape.Queries)
	return out
}

// Current returns the config snapshot.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep the last good config on a bad edit.
		w.logger.Warn("reload failed, keeping previous config", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
	w.logger.Info("config reloaded",
		zap.Int("scrape_queries", len(cfg.Scrape.Queries)))
}
