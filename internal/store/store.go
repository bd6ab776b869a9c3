// Package store holds client-side state for movies, the user's library,
// watchlists, reviews, search and the profile. Stores are safe for concurrent
// use; no lock is held across a network call.
package store

import (
	"log/slog"
	"time"

	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
)

// MsgInProgress is returned when a second edit of the same item starts before the first finishes.
const MsgInProgress = "This change is already in progress"

// Deps are the collaborators every store shares.
type Deps struct {
	Caller  *apicall.Caller
	Results *cache.Results
	Auth    Authenticator
	Bus     *events.Bus // optional
	Logger  *slog.Logger
	Now     func() time.Time // defaults to time.Now
}

// base is embedded by every store.
type base struct {
	apicall.Status

	caller  *apicall.Caller
	results *cache.Results
	auth    Authenticator
	bus     *events.Bus
	log     *slog.Logger
	now     func() time.Time
}

func newBase(d Deps, component string) base {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	results := d.Results
	if results == nil {
		results = cache.NewResults()
	}
	return base{
		caller:  d.Caller,
		results: results,
		auth:    d.Auth,
		bus:     d.Bus,
		log:     logger.With("component", component),
		now:     now,
	}
}

// requireAuth returns an AuthRequired error, already notified, when nobody is signed in.
func (b *base) requireAuth(op string) *apperr.Error {
	if b.auth != nil && b.auth.IsAuthenticated() {
		return nil
	}
	err := apperr.New(apperr.KindAuthRequired, op, "Please sign in to "+op)
	b.caller.Notify(notify.KindError, err.Message)
	return err
}

// fail classifies a network failure, logs it and notifies once.
func (b *base) fail(err error, op string) *apperr.Error {
	classified := apperr.Classify(err, op)
	b.log.Warn("operation failed", "op", op, "kind", classified.Kind, "error", err)
	b.caller.Notify(notify.KindError, classified.Message)
	return classified
}

func (b *base) publish(eventType, entity, id string, phase events.Phase) {
	b.bus.Publish(events.NewStateChangedAt(eventType, entity, id, phase, b.now()))
}

func conflict(op, message string) *apperr.Error {
	return apperr.New(apperr.KindConflict, op, message)
}

func notFound(op string) *apperr.Error {
	return apperr.New(apperr.KindNotFound, op, apperr.MsgNotFound)
}

func invalid(op, message string) *apperr.Error {
	return apperr.New(apperr.KindValidation, op, message)
}

// pendingSet tracks items with a mutation in flight. Guarded by the owning store's mutex.
type pendingSet map[string]struct{}

// begin marks key pending and reports false if it already was.
func (p pendingSet) begin(key string) bool {
	if _, ok := p[key]; ok {
		return false
	}
	p[key] = struct{}{}
	return true
}

func (p pendingSet) end(key string) {
	delete(p, key)
}

// generation counts Resets. Work started before a Reset is not applied after
// it. Guarded by the owning store's mutex.
type generation uint64

func (g *generation) bump() { *g++ }

func (g generation) stale(started generation) bool { return g != started }

// settleAfterReset reports the outcome of a mutation whose store was reset
// while the request was in flight. Nothing is applied to the store and a
// failure is not notified, since it belongs to the previous session.
func settleAfterReset[T any](b *base, data *T, err error, op string) apicall.Result[T] {
	if err != nil {
		classified := apperr.Classify(err, op)
		b.log.Debug("store reset during request", "op", op, "error", err)
		return apicall.Fail[T](classified)
	}
	b.log.Debug("store reset during request, result not applied", "op", op)
	if data == nil {
		var zero T
		return apicall.Ok(zero)
	}
	return apicall.Ok(*data)
}
