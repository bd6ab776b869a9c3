package apicall

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/notify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type statusError struct{ code int }

func (e statusError) Error() string   { return http.StatusText(e.code) }
func (e statusError) StatusCode() int { return e.code }

func newTestCaller(t *testing.T) (*Caller, *cache.Dedup, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	dedup := cache.NewDedup()
	return NewCaller(dedup, notify.NewDeduper(rec, time.Hour), testLogger()), dedup, rec
}

func TestCall_ConcurrentSameKeyRunsOnce(t *testing.T) {
	caller, dedup, rec := newTestCaller(t)

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	op := func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"fight club"}, nil
	}
	opts := Options[[]string]{UseCache: true, Op: "load favorites"}

	var wg sync.WaitGroup
	results := make([]Result[[]string], 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = Call(context.Background(), caller, nil, "favorites", op, opts)
	}()
	<-started
	require.True(t, dedup.Has("favorites"))

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = Call(context.Background(), caller, nil, "favorites", op, opts)
	}()

	// Give the second caller time to join before releasing
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "exactly one underlying invocation")
	for _, r := range results {
		assert.True(t, r.Success)
		assert.Equal(t, []string{"fight club"}, r.Data)
	}
	assert.False(t, dedup.Has("favorites"), "entry released after completion")
	assert.Empty(t, rec.All())
}

func TestCall_SequentialCallsBothRun(t *testing.T) {
	caller, _, _ := newTestCaller(t)

	var calls atomic.Int32
	op := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}
	opts := Options[int]{UseCache: true}

	r1 := Call(context.Background(), caller, nil, "k", op, opts)
	r2 := Call(context.Background(), caller, nil, "k", op, opts)

	assert.Equal(t, 1, r1.Data)
	assert.Equal(t, 2, r2.Data)
	assert.Equal(t, int32(2), calls.Load(), "dedup is not a result cache")
}

func TestCall_WithoutCacheDoesNotRegister(t *testing.T) {
	caller, dedup, _ := newTestCaller(t)
	seen := false

	Call(context.Background(), caller, nil, "k", func(ctx context.Context) (int, error) {
		seen = dedup.Has("k")
		return 1, nil
	}, Options[int]{})

	assert.False(t, seen)
}

func TestCall_SuccessStateAndToast(t *testing.T) {
	caller, _, rec := newTestCaller(t)
	var status Status
	var gotLoading bool
	var onSuccess []string

	res := Call(context.Background(), caller, &status, "watchlists", func(ctx context.Context) ([]string, error) {
		gotLoading = status.Loading("loadingWatchlists")
		return []string{"weekend"}, nil
	}, Options[[]string]{
		ShowToast:      true,
		LoadingField:   "loadingWatchlists",
		ErrorField:     "watchlistsError",
		SuccessMessage: "Watchlists loaded",
		OnSuccess:      func(v []string) { onSuccess = v },
	})

	require.True(t, res.Success)
	assert.Nil(t, res.Err)
	assert.True(t, gotLoading, "loading set while op runs")
	assert.False(t, status.Loading("loadingWatchlists"), "loading cleared afterwards")
	assert.Nil(t, status.Err("watchlistsError"))
	assert.Equal(t, []string{"weekend"}, onSuccess)
	assert.Equal(t, []notify.Notification{{Kind: notify.KindSuccess, Message: "Watchlists loaded"}}, rec.All())
}

func TestCall_FailureClassifiesAndNotifiesOnce(t *testing.T) {
	caller, dedup, rec := newTestCaller(t)
	var status Status
	status.SetError("favoritesError", apperr.New(apperr.KindUnknown, "old", "stale"))
	var onError *apperr.Error

	res := Call(context.Background(), caller, &status, "favorites", func(ctx context.Context) (int, error) {
		assert.Nil(t, status.Err("favoritesError"), "error cleared when call starts")
		return 0, statusError{code: http.StatusUnauthorized}
	}, Options[int]{
		UseCache:     true,
		LoadingField: "loadingFavorites",
		ErrorField:   "favoritesError",
		Op:           "add to favorites",
		OnError:      func(e *apperr.Error) { onError = e },
	})

	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, apperr.KindAuthRequired, res.Err.Kind)
	assert.Equal(t, "Please sign in to add to favorites", res.Err.Message)
	assert.Same(t, res.Err, onError)
	assert.Same(t, res.Err, status.Err("favoritesError"))
	assert.False(t, status.Loading("loadingFavorites"))
	assert.False(t, dedup.Has("favorites"))
	assert.Equal(t, 1, rec.Count(notify.KindError))
}

func TestCall_ErrorMessageOverride(t *testing.T) {
	caller, _, rec := newTestCaller(t)

	Call(context.Background(), caller, nil, "k", func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	}, Options[int]{Op: "load genres", ErrorMessage: "Could not load genres"})

	assert.Equal(t, []notify.Notification{{Kind: notify.KindError, Message: "Could not load genres"}}, rec.All())
}

func TestCall_JoinerSeesLeaderError(t *testing.T) {
	caller, _, rec := newTestCaller(t)
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	var leader, joiner Result[int]
	wg.Add(1)
	go func() {
		defer wg.Done()
		leader = Call(context.Background(), caller, nil, "k", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 0, statusError{code: http.StatusInternalServerError}
		}, Options[int]{UseCache: true, Op: "load movie"})
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		joiner = Call(context.Background(), caller, nil, "k", func(ctx context.Context) (int, error) {
			t.Error("joiner must not run the operation")
			return 0, nil
		}, Options[int]{UseCache: true, Op: "load movie"})
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NotNil(t, leader.Err)
	require.NotNil(t, joiner.Err)
	assert.Equal(t, apperr.KindServerError, joiner.Err.Kind)
	assert.Equal(t, 1, rec.Count(notify.KindError), "one notification per failed operation")
}

func TestCall_PanicReleasesEntryAndJoiners(t *testing.T) {
	caller, dedup, _ := newTestCaller(t)
	status := &Status{}
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	var recovered any
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { recovered = recover() }()
		Call(context.Background(), caller, status, "movie:550", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 550, nil
		}, Options[int]{UseCache: true, Op: "load movie", LoadingField: "movie", OnSuccess: func(int) {
			panic("render failed")
		}})
	}()
	<-started

	var joiner Result[int]
	wg.Add(1)
	go func() {
		defer wg.Done()
		joiner = Call(context.Background(), caller, nil, "movie:550", func(ctx context.Context) (int, error) {
			t.Error("joiner must not run the operation")
			return 0, nil
		}, Options[int]{UseCache: true, Op: "load movie"})
	}()
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		close(release)
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("joiner still waiting after the leader panicked")
	}

	assert.Equal(t, "render failed", recovered)
	assert.False(t, dedup.Has("movie:550"))
	assert.False(t, status.Loading("movie"))
	require.NotNil(t, joiner.Err)
	assert.Equal(t, apperr.KindUnknown, joiner.Err.Kind)
}

func TestCaller_ClearInFlight(t *testing.T) {
	caller, dedup, _ := newTestCaller(t)
	dedup.Set("favorites:list", cache.NewFuture[any](), time.Minute)

	caller.ClearInFlight()

	assert.Zero(t, dedup.Len())
}

func TestStatus_ZeroValue(t *testing.T) {
	var s Status
	assert.False(t, s.Loading("x"))
	assert.Nil(t, s.Err("x"))

	s.SetLoading("", true)
	s.SetLoading("x", true)
	assert.True(t, s.Loading("x"))

	s.Reset()
	assert.False(t, s.Loading("x"))
}
