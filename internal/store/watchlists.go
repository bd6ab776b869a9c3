package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
)

const FieldWatchlists = "watchlists"

// tempIDPrefix marks watchlists created locally and not yet confirmed.
const tempIDPrefix = "temp-"

// WatchlistStore holds the user's watchlists, newest first. Every list keeps
// MovieCount equal to len(Movies) and movies newest first.
type WatchlistStore struct {
	base
	api WatchlistAPI

	mu      sync.Mutex
	lists   []api.Watchlist
	pending pendingSet
	gen     generation
	seq     atomic.Int64
}

// NewWatchlistStore creates an empty watchlist store.
func NewWatchlistStore(client WatchlistAPI, d Deps) *WatchlistStore {
	return &WatchlistStore{
		base:    newBase(d, "watchlists"),
		api:     client,
		pending: make(pendingSet),
	}
}

// IsTemporaryID reports whether id belongs to a watchlist still being created.
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// Load replaces the watchlists with the server's.
func (s *WatchlistStore) Load(ctx context.Context) apicall.Result[[]api.Watchlist] {
	if err := s.requireAuth("load watchlists"); err != nil {
		return apicall.Fail[[]api.Watchlist](err)
	}
	gen := s.currentGen()
	return apicall.Call(ctx, s.caller, &s.Status, "watchlists:list", s.api.Watchlists, apicall.Options[[]api.Watchlist]{
		UseCache:     true,
		LoadingField: FieldWatchlists,
		ErrorField:   FieldWatchlists,
		Op:           "load watchlists",
		OnSuccess: func(lists []api.Watchlist) {
			s.mu.Lock()
			if s.gen.stale(gen) {
				s.mu.Unlock()
				return
			}
			s.lists = make([]api.Watchlist, len(lists))
			for i, wl := range lists {
				s.lists[i] = normalizeWatchlist(wl, nil)
			}
			sortWatchlists(s.lists)
			s.mu.Unlock()
			s.publish(events.EventWatchlistsChanged, "watchlist", "", events.PhaseLoaded)
		},
	})
}

// Create adds a watchlist under a temporary id, replaced by the server's id on success.
func (s *WatchlistStore) Create(ctx context.Context, in api.WatchlistInput) apicall.Result[api.Watchlist] {
	const op = "create watchlist"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Watchlist](err)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		err := invalid(op, "Watchlist name is required")
		s.caller.Notify(notify.KindError, err.Message)
		return apicall.Fail[api.Watchlist](err)
	}

	tempID := tempIDPrefix + strconv.FormatInt(s.seq.Add(1), 10)
	key := "watchlist:" + tempID
	now := s.now()

	s.mu.Lock()
	if s.indexByNameLocked(in.Name, "") >= 0 {
		s.mu.Unlock()
		s.caller.Notify(notify.KindInfo, fmt.Sprintf("A watchlist named %q already exists", in.Name))
		return apicall.Fail[api.Watchlist](conflict(op, apperr.MsgExists))
	}
	s.pending.begin(key)
	gen := s.gen
	s.lists = append([]api.Watchlist{{
		ID:          tempID,
		Name:        in.Name,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		Movies:      []api.WatchlistMovie{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}}, s.lists...)
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", tempID, events.PhaseOptimistic)

	created, err := s.api.CreateWatchlist(ctx, in)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, created, err, op)
	}
	s.pending.end(key)
	i := s.indexLocked(tempID)
	if err != nil {
		if i >= 0 {
			s.lists = slices.Delete(s.lists, i, i+1)
		}
		s.mu.Unlock()
		s.publish(events.EventWatchlistsChanged, "watchlist", tempID, events.PhaseRolledBack)
		return apicall.Fail[api.Watchlist](s.fail(err, op))
	}
	wl := normalizeWatchlist(*created, []api.WatchlistMovie{})
	if i >= 0 {
		s.lists[i] = wl
	}
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", wl.ID, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, fmt.Sprintf("Created %q", wl.Name))
	return apicall.Ok(cloneWatchlist(wl))
}

// Update edits a watchlist's name, description and visibility.
func (s *WatchlistStore) Update(ctx context.Context, id string, in api.WatchlistInput) apicall.Result[api.Watchlist] {
	const op = "update watchlist"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Watchlist](err)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		err := invalid(op, "Watchlist name is required")
		s.caller.Notify(notify.KindError, err.Message)
		return apicall.Fail[api.Watchlist](err)
	}
	key := "watchlist:" + id

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[api.Watchlist](notFound(op))
	}
	if s.indexByNameLocked(in.Name, id) >= 0 {
		s.mu.Unlock()
		s.caller.Notify(notify.KindInfo, fmt.Sprintf("A watchlist named %q already exists", in.Name))
		return apicall.Fail[api.Watchlist](conflict(op, apperr.MsgExists))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[api.Watchlist](conflict(op, MsgInProgress))
	}
	gen := s.gen
	previous := cloneWatchlist(s.lists[i])
	s.lists[i].Name = in.Name
	s.lists[i].Description = in.Description
	s.lists[i].IsPublic = in.IsPublic
	s.lists[i].UpdatedAt = s.now()
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseOptimistic)

	updated, err := s.api.UpdateWatchlist(ctx, id, in)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, updated, err, op)
	}
	s.pending.end(key)
	i = s.indexLocked(id)
	if err != nil {
		if i >= 0 {
			s.lists[i] = previous
		}
		s.mu.Unlock()
		s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseRolledBack)
		return apicall.Fail[api.Watchlist](s.fail(err, op))
	}
	var wl api.Watchlist
	if i >= 0 {
		wl = normalizeWatchlist(*updated, s.lists[i].Movies)
		s.lists[i] = wl
	} else {
		wl = normalizeWatchlist(*updated, nil)
	}
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Watchlist updated")
	return apicall.Ok(cloneWatchlist(wl))
}

// Delete removes a watchlist. On failure it is restored in recency order.
func (s *WatchlistStore) Delete(ctx context.Context, id string) apicall.Result[struct{}] {
	const op = "delete watchlist"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[struct{}](err)
	}
	key := "watchlist:" + id

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[struct{}](conflict(op, MsgInProgress))
	}
	gen := s.gen
	removed := s.lists[i]
	s.lists = slices.Delete(s.lists, i, i+1)
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseOptimistic)

	err := s.api.DeleteWatchlist(ctx, id)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, &struct{}{}, err, op)
	}
	s.pending.end(key)
	if err != nil {
		// A reload while the request was in flight may already have restored it.
		if s.indexLocked(id) < 0 {
			s.lists = append(s.lists, removed)
			sortWatchlists(s.lists)
		}
		s.mu.Unlock()
		s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseRolledBack)
		return apicall.Fail[struct{}](s.fail(err, op))
	}
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, fmt.Sprintf("Deleted %q", removed.Name))
	return apicall.Ok(struct{}{})
}

// AddMovie adds movie to a watchlist. MovieCount moves with Movies in the same step.
func (s *WatchlistStore) AddMovie(ctx context.Context, watchlistID string, movie api.MovieRef) apicall.Result[api.Watchlist] {
	const op = "add to watchlist"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Watchlist](err)
	}
	key := membershipKey(watchlistID, movie.MovieID)

	s.mu.Lock()
	i := s.indexLocked(watchlistID)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[api.Watchlist](notFound(op))
	}
	if IsTemporaryID(watchlistID) {
		s.mu.Unlock()
		return apicall.Fail[api.Watchlist](conflict(op, MsgInProgress))
	}
	if indexMovie(s.lists[i].Movies, movie.MovieID) >= 0 {
		name := s.lists[i].Name
		s.mu.Unlock()
		s.caller.Notify(notify.KindInfo, fmt.Sprintf("%s is already in %s", displayTitle(movie.Title), name))
		return apicall.Fail[api.Watchlist](conflict(op, apperr.MsgExists))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[api.Watchlist](conflict(op, MsgInProgress))
	}
	gen := s.gen
	entry := api.WatchlistMovie{
		MovieID:    movie.MovieID,
		Title:      movie.Title,
		PosterPath: movie.PosterPath,
		AddedAt:    s.now(),
	}
	s.lists[i].Movies = append([]api.WatchlistMovie{entry}, s.lists[i].Movies...)
	s.lists[i].MovieCount = len(s.lists[i].Movies)
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseOptimistic)

	updated, err := s.api.AddToWatchlist(ctx, watchlistID, movie)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, updated, err, op)
	}
	s.pending.end(key)
	i = s.indexLocked(watchlistID)
	if err != nil {
		if i >= 0 {
			if j := indexMovie(s.lists[i].Movies, movie.MovieID); j >= 0 {
				s.lists[i].Movies = slices.Delete(s.lists[i].Movies, j, j+1)
			}
			s.lists[i].MovieCount = len(s.lists[i].Movies)
		}
		s.mu.Unlock()
		s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseRolledBack)
		return apicall.Fail[api.Watchlist](s.fail(err, op))
	}
	var wl api.Watchlist
	if i >= 0 {
		wl = normalizeWatchlist(*updated, s.lists[i].Movies)
		s.lists[i] = wl
	} else {
		wl = normalizeWatchlist(*updated, nil)
	}
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, fmt.Sprintf("Added to %s", wl.Name))
	return apicall.Ok(cloneWatchlist(wl))
}

// RemoveMovie removes a movie from a watchlist. On failure the membership is
// restored in recency order.
func (s *WatchlistStore) RemoveMovie(ctx context.Context, watchlistID string, movieID int64) apicall.Result[struct{}] {
	const op = "remove from watchlist"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[struct{}](err)
	}
	key := membershipKey(watchlistID, movieID)

	s.mu.Lock()
	i := s.indexLocked(watchlistID)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	j := indexMovie(s.lists[i].Movies, movieID)
	if j < 0 {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[struct{}](conflict(op, MsgInProgress))
	}
	gen := s.gen
	removed := s.lists[i].Movies[j]
	s.lists[i].Movies = slices.Delete(slices.Clone(s.lists[i].Movies), j, j+1)
	s.lists[i].MovieCount = len(s.lists[i].Movies)
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseOptimistic)

	err := s.api.RemoveFromWatchlist(ctx, watchlistID, movieID)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, &struct{}{}, err, op)
	}
	s.pending.end(key)
	if err != nil {
		if i = s.indexLocked(watchlistID); i >= 0 && indexMovie(s.lists[i].Movies, movieID) < 0 {
			s.lists[i].Movies = append(s.lists[i].Movies, removed)
			sortMovies(s.lists[i].Movies)
			s.lists[i].MovieCount = len(s.lists[i].Movies)
		}
		s.mu.Unlock()
		s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseRolledBack)
		return apicall.Fail[struct{}](s.fail(err, op))
	}
	s.mu.Unlock()
	s.publish(events.EventWatchlistsChanged, "watchlist", watchlistID, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Removed from watchlist")
	return apicall.Ok(struct{}{})
}

// IsMovieInWatchlist reports whether movieID is in the watchlist.
func (s *WatchlistStore) IsMovieInWatchlist(watchlistID string, movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(watchlistID)
	return i >= 0 && indexMovie(s.lists[i].Movies, movieID) >= 0
}

// Containing returns the watchlists that hold movieID.
func (s *WatchlistStore) Containing(movieID int64) []api.Watchlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []api.Watchlist
	for _, wl := range s.lists {
		if indexMovie(wl.Movies, movieID) >= 0 {
			out = append(out, cloneWatchlist(wl))
		}
	}
	return out
}

// Watchlists returns a copy of every watchlist.
func (s *WatchlistStore) Watchlists() []api.Watchlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Watchlist, len(s.lists))
	for i, wl := range s.lists {
		out[i] = cloneWatchlist(wl)
	}
	return out
}

// Get returns the watchlist with id.
func (s *WatchlistStore) Get(id string) (api.Watchlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return api.Watchlist{}, false
	}
	return cloneWatchlist(s.lists[i]), true
}

// Reset drops all watchlists.
func (s *WatchlistStore) Reset() {
	s.mu.Lock()
	s.lists = nil
	s.pending = make(pendingSet)
	s.gen.bump()
	s.mu.Unlock()
	s.Status.Reset()
	s.publish(events.EventWatchlistsChanged, "watchlist", "", events.PhaseCleared)
}

func (s *WatchlistStore) currentGen() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *WatchlistStore) indexLocked(id string) int {
	return slices.IndexFunc(s.lists, func(wl api.Watchlist) bool { return wl.ID == id })
}

// indexByNameLocked finds a list named name (case-insensitive), ignoring exceptID.
func (s *WatchlistStore) indexByNameLocked(name, exceptID string) int {
	return slices.IndexFunc(s.lists, func(wl api.Watchlist) bool {
		return wl.ID != exceptID && strings.EqualFold(wl.Name, name)
	})
}

// normalizeWatchlist enforces MovieCount == len(Movies). When the server omits
// the movie list, fallback is used instead.
func normalizeWatchlist(wl api.Watchlist, fallback []api.WatchlistMovie) api.Watchlist {
	switch {
	case wl.Movies != nil:
		wl.Movies = slices.Clone(wl.Movies)
	case fallback != nil:
		wl.Movies = slices.Clone(fallback)
	default:
		wl.Movies = []api.WatchlistMovie{}
	}
	sortMovies(wl.Movies)
	wl.MovieCount = len(wl.Movies)
	return wl
}

func cloneWatchlist(wl api.Watchlist) api.Watchlist {
	wl.Movies = slices.Clone(wl.Movies)
	return wl
}

func indexMovie(movies []api.WatchlistMovie, movieID int64) int {
	return slices.IndexFunc(movies, func(m api.WatchlistMovie) bool { return m.MovieID == movieID })
}

func sortWatchlists(lists []api.Watchlist) {
	sort.SliceStable(lists, func(i, j int) bool { return lists[i].CreatedAt.After(lists[j].CreatedAt) })
}

func sortMovies(movies []api.WatchlistMovie) {
	sort.SliceStable(movies, func(i, j int) bool { return movies[i].AddedAt.After(movies[j].AddedAt) })
}

func membershipKey(watchlistID string, movieID int64) string {
	return "membership:" + watchlistID + ":" + strconv.FormatInt(movieID, 10)
}
