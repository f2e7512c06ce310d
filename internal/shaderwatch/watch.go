// Package shaderwatch reports edits to a directory of GLSL sources.
//
// The watcher never touches GL. It posts a signal on Changed, which the
// render thread drains between frames and answers with a reload.
package shaderwatch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the directory must stay quiet before a change is
// reported. Editors tend to write a file in several steps.
const DefaultDelay = 100 * time.Millisecond

type Watcher struct {
	dir     string
	delay   time.Duration
	log     *slog.Logger
	fsw     *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// New starts watching dir for writes to *.glsl files.
func New(dir string, delay time.Duration, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shaderwatch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("shaderwatch: watch %s: %w", dir, err)
	}
	w := &Watcher{
		dir:     dir,
		delay:   delay,
		log:     log,
		fsw:     fsw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) Dir() string { return w.dir }

// Changed receives one value per burst of edits. Pending signals coalesce,
// so a slow reader sees at most one.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Pending reports whether a change arrived since the last call, without
// blocking.
func (w *Watcher) Pending() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug("shader file changed", "file", ev.Name, "op", ev.Op.String())
			restart(timer, w.delay)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watch", "err", err)
		case <-timer.C:
			w.notify()
		}
	}
}

// restart rearms t for d, dropping a tick that fired but was not yet
// received so a burst of edits reports once, after the last one.
func restart(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func (w *Watcher) notify() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".glsl" {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
