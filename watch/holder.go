// Package watch keeps a compiled form validator in sync with its
// configuration file.
package watch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/schema"
)

// Load validates and compiles the configuration file at path.
func Load(path string, opts ...compiler.Option) (*compiler.SubmissionValidator, error) {
	cfg, err := schema.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(cfg, opts...)
}

// Holder provides thread-safe access to the current validator with hot
// reload support.
type Holder struct {
	mu        sync.RWMutex
	validator *compiler.SubmissionValidator
	path      string
	opts      []compiler.Option
	logger    zerolog.Logger
	watcher   *fsnotify.Watcher
	onChange  []func(*compiler.SubmissionValidator)
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewHolder loads the configuration at path and compiles it.
func NewHolder(path string, logger zerolog.Logger, opts ...compiler.Option) (*Holder, error) {
	v, err := Load(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("load form config: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Holder{
		validator: v,
		path:      absPath,
		opts:      opts,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}, nil
}

// Get returns the current validator.
func (h *Holder) Get() *compiler.SubmissionValidator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.validator
}

// Path is the absolute path of the watched file.
func (h *Holder) Path() string { return h.path }

// Reload re-validates and recompiles the file. On failure the previous
// validator stays active.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading form configuration")

	next, err := Load(h.path, h.opts...)
	if err != nil {
		h.logger.Error().Err(err).Msg("form reload failed, keeping old validator")
		return fmt.Errorf("reload form config: %w", err)
	}

	h.mu.Lock()
	prev := h.validator
	h.validator = next
	listeners := slices.Clone(h.onChange)
	h.mu.Unlock()

	h.logChanges(prev, next)
	for _, fn := range listeners {
		fn(next)
	}

	h.logger.Info().Msg("form configuration reloaded")
	return nil
}

// OnChange registers a callback run after every successful reload.
func (h *Holder) OnChange(fn func(*compiler.SubmissionValidator)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFile reloads whenever the file is written or replaced.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	// editors that save atomically replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching form configuration for changes")
	return nil
}

// WatchSignals reloads on SIGHUP until Stop is called.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading form configuration")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	h.logger.Info().Msg("listening for SIGHUP to reload form configuration")
}

// Stop ends file and signal watching. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("form configuration changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(prev, next *compiler.SubmissionValidator) {
	oldCfg, newCfg := prev.Config(), next.Config()
	if len(oldCfg.Fields) != len(newCfg.Fields) {
		h.logger.Info().
			Int("old", len(oldCfg.Fields)).
			Int("new", len(newCfg.Fields)).
			Msg("field count changed")
	}
	if len(oldCfg.Steps) != len(newCfg.Steps) {
		h.logger.Info().
			Int("old", len(oldCfg.Steps)).
			Int("new", len(newCfg.Steps)).
			Msg("step count changed")
	}
	if oldCfg.Endpoint != newCfg.Endpoint || oldCfg.Method != newCfg.Method {
		h.logger.Info().
			Str("old", oldCfg.Method+" "+oldCfg.Endpoint).
			Str("new", newCfg.Method+" "+newCfg.Endpoint).
			Msg("submission target changed")
	}
}
