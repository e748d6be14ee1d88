// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/trainrag/internal/logging"
)

// =============================================================================
// SNAPSHOT WATCHER
// =============================================================================

// Watcher observes a FileKV snapshot for external modification and invokes
// a callback when it changes. Editors and atomic renames produce bursts of
// events for a single logical change, so callbacks are throttled.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	onChange func()
	limiter  *rate.Limiter
	log      logging.Sink
	cancel   context.CancelFunc
}

// NewWatcher watches the snapshot file under kv for key. onChange runs on
// the watcher goroutine; it must hand off to the store rather than block.
func NewWatcher(kv *FileKV, key string, onChange func(), log logging.Sink) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	path := kv.Path(key)

	// Watch the directory, not the file: atomic rename-into-place
	// replaces the inode, which silently detaches a file-level watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	if log == nil {
		log = logging.NopSink{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fw:       fw,
		path:     path,
		onChange: onChange,
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		log:      log,
		cancel:   cancel,
	}

	go w.run(ctx)
	return w, nil
}

// run drains watcher events until the context is cancelled.
func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			w.log.Debug("snapshot cambiado en disco", logging.Fields{
				"path": w.path,
				"op":   ev.Op.String(),
			})
			w.onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("error del watcher de snapshots", logging.Fields{
				"error": err.Error(),
			})
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.cancel()
	return w.fw.Close()
}
