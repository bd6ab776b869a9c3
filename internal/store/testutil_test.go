package store_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/notify"
	"github.com/vmunix/marquee/internal/store"
)

var (
	t0          = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	errServer   = &api.HTTPError{Status: http.StatusInternalServerError, Message: "boom"}
	errNetwork  = &api.NetworkError{Method: http.MethodPost, Err: errors.New("connection refused")}
	fightClub   = api.MovieRef{MovieID: 550, Title: "Fight Club", PosterPath: "/fc.jpg", ReleaseDate: "1999-10-15"}
	theMatrix   = api.MovieRef{MovieID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"}
	spiritedWay = api.MovieRef{MovieID: 129, Title: "Spirited Away", ReleaseDate: "2001-07-20"}
)

type signedIn bool

func (s signedIn) IsAuthenticated() bool { return bool(s) }

type harness struct {
	rec     *notify.Recorder
	results *cache.Results
	dedup   *cache.Dedup
	deps    store.Deps
}

// newHarness wires stores to an in-memory notification recorder and a fixed clock.
func newHarness(t *testing.T, authenticated bool) *harness {
	t.Helper()
	rec := &notify.Recorder{}
	dedup := cache.NewDedup()
	t.Cleanup(dedup.Clear)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	results := cache.NewResults()
	return &harness{
		rec:     rec,
		results: results,
		dedup:   dedup,
		deps: store.Deps{
			Caller:  apicall.NewCaller(dedup, notify.NewDeduper(rec, time.Millisecond), logger),
			Results: results,
			Auth:    signedIn(authenticated),
			Logger:  logger,
			Now:     func() time.Time { return t0 },
		},
	}
}

func (h *harness) messages(kind notify.Kind) []string {
	var out []string
	for _, n := range h.rec.All() {
		if n.Kind == kind {
			out = append(out, n.Message)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// gate holds a mocked backend call open until the test releases it.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

// enter is called from inside the mock.
func (g *gate) enter() {
	close(g.started)
	<-g.release
}

// run starts fn in the background, waits until the mock is entered and
// returns a function that releases it and waits for fn to finish.
func (g *gate) run(fn func()) (finish func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-g.started
	return func() {
		close(g.release)
		<-done
	}
}
