// Package apicall wraps one asynchronous operation with loading and error state,
// request deduplication and user feedback.
package apicall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/notify"
)

// Notifier shows user-facing notifications.
type Notifier interface {
	Show(kind notify.Kind, message string) bool
}

// Result is the tagged outcome of a Call. Err is set iff Success is false.
type Result[T any] struct {
	Success bool
	Data    T
	Err     *apperr.Error
}

// Ok builds a successful result.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed result.
func Fail[T any](err *apperr.Error) Result[T] {
	return Result[T]{Err: err}
}

// Options controls one Call.
type Options[T any] struct {
	// UseCache joins an identical in-flight call instead of issuing a new one.
	UseCache bool
	// ShowToast sends SuccessMessage on success. Failures always notify.
	ShowToast bool

	LoadingField string
	ErrorField   string

	// Op names the operation for error messages, e.g. "load favorites".
	Op             string
	SuccessMessage string
	// ErrorMessage replaces the classified message in the notification.
	ErrorMessage string

	OnSuccess func(T)
	OnError   func(*apperr.Error)
}

// Caller holds the collaborators shared by every Call.
type Caller struct {
	dedup    *cache.Dedup
	notifier Notifier
	ttl      time.Duration
	log      *slog.Logger
}

// CallerOption configures a Caller.
type CallerOption func(*Caller)

// WithDedupTTL sets how long an in-flight call stays joinable.
func WithDedupTTL(ttl time.Duration) CallerOption {
	return func(c *Caller) {
		c.ttl = ttl
	}
}

// NewCaller creates a Caller.
func NewCaller(dedup *cache.Dedup, notifier Notifier, logger *slog.Logger, opts ...CallerOption) *Caller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Caller{
		dedup:    dedup,
		notifier: notifier,
		ttl:      cache.DefaultDedupTTL,
		log:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify forwards to the Caller's notifier.
func (c *Caller) Notify(kind notify.Kind, message string) {
	if c.notifier != nil && message != "" {
		c.notifier.Show(kind, message)
	}
}

// ClearInFlight drops every joinable in-flight call, so later calls start fresh.
func (c *Caller) ClearInFlight() {
	c.dedup.Clear()
}

// Call runs op under key. Concurrent calls with the same key and UseCache set
// share one invocation; only the caller that ran op sends notifications.
// Call never returns a raw error.
func Call[T any](ctx context.Context, c *Caller, status Tracker, key string, op func(context.Context) (T, error), opts Options[T]) Result[T] {
	if opts.UseCache {
		if f, ok := c.dedup.Get(key); ok {
			c.log.Debug("joining in-flight request", "key", key)
			return await[T](ctx, f, opts.Op)
		}
	}

	f := cache.NewFuture[any]()
	if opts.UseCache {
		if existing, joined := c.dedup.Join(key, f, c.ttl); joined {
			c.log.Debug("joining in-flight request", "key", key)
			return await[T](ctx, existing, opts.Op)
		}
	}

	if status != nil {
		status.SetLoading(opts.LoadingField, true)
		status.SetError(opts.ErrorField, nil)
	}

	// Joiners must never be left waiting, even if op or a callback panics.
	var result Result[T]
	settled := false
	defer func() {
		if status != nil {
			status.SetLoading(opts.LoadingField, false)
		}
		if opts.UseCache {
			c.dedup.Release(key, f)
		}
		if !settled {
			f.Resolve(nil, apperr.New(apperr.KindUnknown, opts.Op, fmt.Sprintf("Failed to %s. Please try again", opts.Op)))
			return
		}
		if result.Err != nil {
			f.Resolve(nil, result.Err)
		} else {
			f.Resolve(result.Data, nil)
		}
	}()

	val, err := op(ctx)

	if err != nil {
		classified := apperr.Classify(err, opts.Op)
		c.log.Warn("operation failed", "key", key, "op", opts.Op, "kind", classified.Kind, "error", err)
		if status != nil {
			status.SetError(opts.ErrorField, classified)
		}
		if opts.OnError != nil {
			opts.OnError(classified)
		}
		msg := classified.Message
		if opts.ErrorMessage != "" {
			msg = opts.ErrorMessage
		}
		c.Notify(notify.KindError, msg)
		result = Fail[T](classified)
	} else {
		if opts.OnSuccess != nil {
			opts.OnSuccess(val)
		}
		if opts.ShowToast {
			c.Notify(notify.KindSuccess, opts.SuccessMessage)
		}
		result = Ok(val)
	}
	settled = true
	return result
}

func await[T any](ctx context.Context, f *cache.Future[any], op string) Result[T] {
	v, err := f.Wait(ctx)
	if err != nil {
		return Fail[T](apperr.Classify(err, op))
	}
	data, _ := v.(T)
	return Ok(data)
}
