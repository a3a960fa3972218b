package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// defaultReloadInterval is the poll interval when server.reload_interval_seconds
// is unset.
const defaultReloadInterval = 5 * time.Second

// Watcher polls the config file so a director can tune matching and the name
// list while actors stay connected. Polling over fsnotify keeps dependencies
// minimal; for a file edited a few times per rehearsal the latency is fine.
//
// Reloads are generation-counted: generation 1 is the config the server
// started with, and each accepted change bumps it. An edit that fails
// validation is logged and the previous generation stays live.
type Watcher struct {
	path     string
	onChange func(old, new *Config)

	mu         sync.Mutex
	current    *Config
	generation int
	done       chan struct{}
	stopOnce   sync.Once

	// last known file state for change detection
	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// NewWatcher loads the config at path and starts polling it in a background
// goroutine. The poll interval comes from the loaded config's
// server.reload_interval_seconds; a negative value loads once and never polls.
// onChange runs outside the watcher's lock after every accepted reload.
func NewWatcher(path string, onChange func(old, new *Config)) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	cfg, hash, mtime, err := w.loadAndHash()
	if err != nil {
		return nil, fmt.Errorf("config: watcher initial load: %w", err)
	}
	w.current = cfg
	w.generation = 1
	w.lastHash = hash
	w.lastMtime = mtime

	if cfg.Server.ReloadIntervalSeconds < 0 {
		slog.Info("config hot reload disabled", "path", path)
		return w, nil
	}

	go w.poll()
	return w, nil
}

// Current returns the most recently accepted config.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Generation returns how many config generations have been accepted,
// starting at 1 for the initial load.
func (w *Watcher) Generation() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

// poll checks the file on the configured interval, re-reading the interval
// itself after every accepted reload so reload_interval_seconds is
// hot-reloadable like the rest of the file.
func (w *Watcher) poll() {
	for {
		timer := time.NewTimer(w.interval())
		select {
		case <-w.done:
			timer.Stop()
			return
		case <-timer.C:
			w.check()
		}
	}
}

// interval returns the poll interval from the current config generation.
func (w *Watcher) interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s := w.current.Server.ReloadIntervalSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return defaultReloadInterval
}

// check reads the config file and, if it has changed and is valid, calls
// onChange and updates the current config.
func (w *Watcher) check() {
	// Quick mtime check first to avoid hashing unchanged files.
	info, err := os.Stat(w.path)
	if err != nil {
		slog.Warn("config watcher: cannot stat file", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	mtime := w.lastMtime
	w.mu.Unlock()

	if info.ModTime().Equal(mtime) {
		return
	}

	cfg, hash, newMtime, err := w.loadAndHash()
	if err != nil {
		slog.Warn("config watcher: rejected config edit, keeping current generation",
			"path", w.path, "err", err)
		return
	}

	w.mu.Lock()

	if hash == w.lastHash {
		// File was touched but content is identical.
		w.lastMtime = newMtime
		w.mu.Unlock()
		return
	}

	old := w.current
	w.current = cfg
	w.generation++
	gen := w.generation
	w.lastHash = hash
	w.lastMtime = newMtime
	w.mu.Unlock()

	slog.Info("configuration reloaded", "path", w.path, "generation", gen)

	// Invoke the callback outside the lock so it can safely call Current().
	if w.onChange != nil {
		w.onChange(old, cfg)
	}
}

// loadAndHash reads, parses, and validates the config file, returning it
// alongside the file's SHA-256 hash and modification time.
func (w *Watcher) loadAndHash() (*Config, [sha256.Size]byte, time.Time, error) {
	var zeroHash [sha256.Size]byte

	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}
	info, err := os.Stat(w.path)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	cfg, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	return cfg, sha256.Sum256(data), info.ModTime(), nil
}
