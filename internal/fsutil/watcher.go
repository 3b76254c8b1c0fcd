package fsutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cajal/microns-kit/internal/logger"
)

// Event describes a filesystem change observed by a Watcher.
type Event struct {
	// Path is the affected file.
	Path string

	// Op is the fsnotify operation string, e.g. "CREATE" or "WRITE".
	Op string

	// ModTime is the file's modification time in the watcher's timezone.
	// Zero for removed files.
	ModTime time.Time
}

// Watcher reports changes under a directory with modification times rendered
// in a configured timezone.
type Watcher struct {
	fs     *fsnotify.Watcher
	loc    *time.Location
	events chan Event
}

// NewWatcher watches dir and reports events in the given IANA timezone.
func NewWatcher(dir, zone string) (*Watcher, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		fs:     fsw,
		loc:    loc,
		events: make(chan Event),
	}, nil
}

// Events returns the channel on which events are delivered while Run is
// active. The channel is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run delivers events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			out := Event{Path: ev.Name, Op: ev.Op.String()}
			if info, err := os.Stat(ev.Name); err == nil {
				out.ModTime = info.ModTime().In(w.loc)
			}
			select {
			case w.events <- out:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
