// Package notify delivers user-facing notifications and suppresses bursts of
// identical ones fired by racing callers.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultWindow is how long an identical notification stays suppressed.
const DefaultWindow = 100 * time.Millisecond

// Kind is the notification severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Sink presents notifications. Rendering is up to the implementation.
type Sink interface {
	Notify(kind Kind, message string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(kind Kind, message string)

func (f SinkFunc) Notify(kind Kind, message string) { f(kind, message) }

// Deduper forwards notifications to a sink, dropping a kind+message pair
// already shown within the window.
type Deduper struct {
	sink   Sink
	window time.Duration

	mu     sync.Mutex
	active map[string]struct{}
}

// NewDeduper wraps sink. A non-positive window uses DefaultWindow.
func NewDeduper(sink Sink, window time.Duration) *Deduper {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Deduper{
		sink:   sink,
		window: window,
		active: make(map[string]struct{}),
	}
}

// Show dispatches the notification unless it is a duplicate.
// It reports whether the sink was called.
func (d *Deduper) Show(kind Kind, message string) bool {
	key := string(kind) + message

	d.mu.Lock()
	if _, ok := d.active[key]; ok {
		d.mu.Unlock()
		return false
	}
	d.active[key] = struct{}{}
	d.mu.Unlock()

	time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.active, key)
		d.mu.Unlock()
	})

	d.sink.Notify(kind, message)
	return true
}

func (d *Deduper) Success(message string) bool { return d.Show(KindSuccess, message) }
func (d *Deduper) Error(message string) bool   { return d.Show(KindError, message) }
func (d *Deduper) Info(message string) bool    { return d.Show(KindInfo, message) }
func (d *Deduper) Warning(message string) bool { return d.Show(KindWarning, message) }

// LogSink writes notifications to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(kind Kind, message string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch kind {
	case KindError:
		logger.Error(message, "kind", kind)
	case KindWarning:
		logger.Warn(message, "kind", kind)
	default:
		logger.Info(message, "kind", kind)
	}
}

// WriterSink prints one line per notification.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Notify(kind Kind, message string) {
	var prefix string
	switch kind {
	case KindSuccess:
		prefix = "✓"
	case KindError:
		prefix = "✗"
	case KindWarning:
		prefix = "!"
	default:
		prefix = "-"
	}
	_, _ = fmt.Fprintf(s.W, "%s %s\n", prefix, message)
}

// Notification is one recorded dispatch.
type Notification struct {
	Kind    Kind
	Message string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Kind: kind, Message: message})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns how many notifications of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
