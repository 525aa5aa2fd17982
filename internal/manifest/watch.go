package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher keeps a Set in sync with a manifest directory. Each reload builds a
// fresh Set and swaps it in; Sets already handed out are never modified.
type Watcher struct {
	dir      string
	opts     LoadOptions
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu  sync.RWMutex
	set *Set

	// OnReload, if set, is called after every reload attempt. On failure the
	// previous Set stays current and err is non-nil.
	OnReload func(set *Set, err error)
}

// NewWatcher loads dir once and starts watching it. Call Run to process
// change events and Close to release the watch.
func NewWatcher(dir string, opts LoadOptions) (*Watcher, error) {
	set, err := Load(dir, opts)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create manifest watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		dir:      dir,
		opts:     opts,
		log:      log,
		fsw:      fsw,
		debounce: defaultDebounce,
		set:      set,
	}, nil
}

// Current returns the most recently loaded Set.
func (w *Watcher) Current() *Set {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.set
}

// Run processes file events until ctx is done or the watcher is closed.
// Bursts of events are coalesced into one reload.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("manifest watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return w.opts.YAML != nil
	}
	return false
}

func (w *Watcher) reload() {
	set, err := Load(w.dir, w.opts)
	if err != nil {
		w.log.Warn("manifest reload failed, keeping previous set", zap.Error(err))
	} else {
		w.mu.Lock()
		w.set = set
		w.mu.Unlock()
		w.log.Info("manifests reloaded", zap.Int("count", set.Len()))
	}
	if w.OnReload != nil {
		w.OnReload(w.Current(), err)
	}
}
