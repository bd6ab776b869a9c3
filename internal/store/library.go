package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
)

// Status fields.
const (
	FieldFavorites = "favorites"
	FieldWatched   = "watched"
)

// MaxRating is the highest rating a watched movie or review can carry.
const MaxRating = 10.0

// LibraryStore holds the user's favorites and watched movies together with the
// Stats derived from them. Both collections are ordered newest first.
type LibraryStore struct {
	base
	api LibraryAPI

	mu        sync.Mutex
	favorites []api.Favorite
	watched   []api.WatchedMovie
	stats     Stats
	pending   pendingSet
	gen       generation
}

// NewLibraryStore creates an empty library store.
func NewLibraryStore(client LibraryAPI, d Deps) *LibraryStore {
	return &LibraryStore{
		base:    newBase(d, "library"),
		api:     client,
		pending: make(pendingSet),
	}
}

// Load fetches favorites and watched movies concurrently.
func (s *LibraryStore) Load(ctx context.Context) apicall.Result[Stats] {
	if err := s.requireAuth("load your library"); err != nil {
		return apicall.Fail[Stats](err)
	}

	var favs apicall.Result[[]api.Favorite]
	var watched apicall.Result[[]api.WatchedMovie]

	var g errgroup.Group
	g.Go(func() error {
		favs = s.LoadFavorites(ctx)
		return nil
	})
	g.Go(func() error {
		watched = s.LoadWatched(ctx)
		return nil
	})
	_ = g.Wait()

	if !favs.Success {
		return apicall.Fail[Stats](favs.Err)
	}
	if !watched.Success {
		return apicall.Fail[Stats](watched.Err)
	}
	return apicall.Ok(s.Stats())
}

// LoadFavorites replaces favorites with the server's list.
func (s *LibraryStore) LoadFavorites(ctx context.Context) apicall.Result[[]api.Favorite] {
	gen := s.currentGen()
	return apicall.Call(ctx, s.caller, &s.Status, "favorites:list", s.api.Favorites, apicall.Options[[]api.Favorite]{
		UseCache:     true,
		LoadingField: FieldFavorites,
		ErrorField:   FieldFavorites,
		Op:           "load favorites",
		OnSuccess: func(favs []api.Favorite) {
			s.mu.Lock()
			if s.gen.stale(gen) {
				s.mu.Unlock()
				return
			}
			s.favorites = slices.Clone(favs)
			sortFavorites(s.favorites)
			s.recomputeLocked()
			s.mu.Unlock()
			s.publish(events.EventFavoritesChanged, "movie", "", events.PhaseLoaded)
		},
	})
}

// LoadWatched replaces watched movies with the server's list.
func (s *LibraryStore) LoadWatched(ctx context.Context) apicall.Result[[]api.WatchedMovie] {
	gen := s.currentGen()
	return apicall.Call(ctx, s.caller, &s.Status, "watched:list", s.api.Watched, apicall.Options[[]api.WatchedMovie]{
		UseCache:     true,
		LoadingField: FieldWatched,
		ErrorField:   FieldWatched,
		Op:           "load watched movies",
		OnSuccess: func(list []api.WatchedMovie) {
			s.mu.Lock()
			if s.gen.stale(gen) {
				s.mu.Unlock()
				return
			}
			s.watched = slices.Clone(list)
			sortWatched(s.watched)
			s.recomputeLocked()
			s.mu.Unlock()
			s.publish(events.EventWatchedChanged, "movie", "", events.PhaseLoaded)
		},
	})
}

// AddFavorite adds movie to favorites optimistically.
func (s *LibraryStore) AddFavorite(ctx context.Context, movie api.MovieRef) apicall.Result[api.Favorite] {
	const op = "add to favorites"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Favorite](err)
	}
	key := pendingKey("favorite", movie.MovieID)
	id := movieKey(movie.MovieID)

	s.mu.Lock()
	if indexFavorite(s.favorites, movie.MovieID) >= 0 {
		s.mu.Unlock()
		s.caller.Notify(notify.KindInfo, fmt.Sprintf("%s is already in your favorites", displayTitle(movie.Title)))
		return apicall.Fail[api.Favorite](conflict(op, apperr.MsgExists))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[api.Favorite](conflict(op, MsgInProgress))
	}
	gen := s.gen
	optimistic := api.Favorite{
		MovieID:     movie.MovieID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		CreatedAt:   s.now(),
	}
	s.favorites = append([]api.Favorite{optimistic}, s.favorites...)
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseOptimistic)

	created, err := s.api.AddFavorite(ctx, movie)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, created, err, op)
	}
	s.pending.end(key)
	if err != nil {
		if i := indexFavorite(s.favorites, movie.MovieID); i >= 0 {
			s.favorites = slices.Delete(s.favorites, i, i+1)
		}
		s.recomputeLocked()
		s.mu.Unlock()
		s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseRolledBack)
		return apicall.Fail[api.Favorite](s.fail(err, op))
	}
	if i := indexFavorite(s.favorites, movie.MovieID); i >= 0 {
		s.favorites[i] = *created
	}
	s.mu.Unlock()
	s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Added to favorites")
	return apicall.Ok(*created)
}

// RemoveFavorite removes a movie from favorites optimistically. On failure the
// favorite is restored in recency order.
func (s *LibraryStore) RemoveFavorite(ctx context.Context, movieID int64) apicall.Result[struct{}] {
	const op = "remove from favorites"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[struct{}](err)
	}
	key := pendingKey("favorite", movieID)
	id := movieKey(movieID)

	s.mu.Lock()
	i := indexFavorite(s.favorites, movieID)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[struct{}](conflict(op, MsgInProgress))
	}
	gen := s.gen
	removed := s.favorites[i]
	s.favorites = slices.Delete(s.favorites, i, i+1)
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseOptimistic)

	err := s.api.RemoveFavorite(ctx, movieID)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, &struct{}{}, err, op)
	}
	s.pending.end(key)
	if err != nil {
		// A reload while the request was in flight may already have restored it.
		if indexFavorite(s.favorites, movieID) < 0 {
			s.favorites = append(s.favorites, removed)
			sortFavorites(s.favorites)
		}
		s.recomputeLocked()
		s.mu.Unlock()
		s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseRolledBack)
		return apicall.Fail[struct{}](s.fail(err, op))
	}
	s.mu.Unlock()
	s.publish(events.EventFavoritesChanged, "movie", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Removed from favorites")
	return apicall.Ok(struct{}{})
}

// AddWatched marks movie watched with an optional rating.
func (s *LibraryStore) AddWatched(ctx context.Context, movie api.MovieRef, rating *float64) apicall.Result[api.WatchedMovie] {
	const op = "mark as watched"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.WatchedMovie](err)
	}
	if err := s.checkRating(op, rating); err != nil {
		return apicall.Fail[api.WatchedMovie](err)
	}
	key := pendingKey("watched", movie.MovieID)
	id := movieKey(movie.MovieID)

	s.mu.Lock()
	if indexWatched(s.watched, movie.MovieID) >= 0 {
		s.mu.Unlock()
		s.caller.Notify(notify.KindInfo, fmt.Sprintf("%s is already marked as watched", displayTitle(movie.Title)))
		return apicall.Fail[api.WatchedMovie](conflict(op, apperr.MsgExists))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[api.WatchedMovie](conflict(op, MsgInProgress))
	}
	gen := s.gen
	optimistic := api.WatchedMovie{
		MovieID:     movie.MovieID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		Rating:      cloneRating(rating),
		WatchedAt:   s.now(),
	}
	s.watched = append([]api.WatchedMovie{optimistic}, s.watched...)
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseOptimistic)

	created, err := s.api.AddWatched(ctx, api.WatchedInput{MovieRef: movie, Rating: rating})

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, created, err, op)
	}
	s.pending.end(key)
	if err != nil {
		if i := indexWatched(s.watched, movie.MovieID); i >= 0 {
			s.watched = slices.Delete(s.watched, i, i+1)
		}
		s.recomputeLocked()
		s.mu.Unlock()
		s.publish(events.EventWatchedChanged, "movie", id, events.PhaseRolledBack)
		return apicall.Fail[api.WatchedMovie](s.fail(err, op))
	}
	if i := indexWatched(s.watched, movie.MovieID); i >= 0 {
		s.watched[i] = *created
	}
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Marked as watched")
	return apicall.Ok(*created)
}

// RemoveWatched unmarks a watched movie. On failure it is restored in recency order.
func (s *LibraryStore) RemoveWatched(ctx context.Context, movieID int64) apicall.Result[struct{}] {
	const op = "remove from watched"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[struct{}](err)
	}
	key := pendingKey("watched", movieID)
	id := movieKey(movieID)

	s.mu.Lock()
	i := indexWatched(s.watched, movieID)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[struct{}](conflict(op, MsgInProgress))
	}
	gen := s.gen
	removed := s.watched[i]
	s.watched = slices.Delete(s.watched, i, i+1)
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseOptimistic)

	err := s.api.RemoveWatched(ctx, movieID)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, &struct{}{}, err, op)
	}
	s.pending.end(key)
	if err != nil {
		if indexWatched(s.watched, movieID) < 0 {
			s.watched = append(s.watched, removed)
			sortWatched(s.watched)
		}
		s.recomputeLocked()
		s.mu.Unlock()
		s.publish(events.EventWatchedChanged, "movie", id, events.PhaseRolledBack)
		return apicall.Fail[struct{}](s.fail(err, op))
	}
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Removed from watched")
	return apicall.Ok(struct{}{})
}

// RateWatched sets (or with nil clears) the rating of a watched movie.
func (s *LibraryStore) RateWatched(ctx context.Context, movieID int64, rating *float64) apicall.Result[api.WatchedMovie] {
	const op = "rate this movie"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.WatchedMovie](err)
	}
	if err := s.checkRating(op, rating); err != nil {
		return apicall.Fail[api.WatchedMovie](err)
	}
	key := pendingKey("watched", movieID)
	id := movieKey(movieID)

	s.mu.Lock()
	i := indexWatched(s.watched, movieID)
	if i < 0 {
		s.mu.Unlock()
		return apicall.Fail[api.WatchedMovie](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[api.WatchedMovie](conflict(op, MsgInProgress))
	}
	gen := s.gen
	previous := s.watched[i].Rating
	s.watched[i].Rating = cloneRating(rating)
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseOptimistic)

	updated, err := s.api.RateWatched(ctx, movieID, rating)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, updated, err, op)
	}
	s.pending.end(key)
	i = indexWatched(s.watched, movieID)
	if err != nil {
		if i >= 0 {
			s.watched[i].Rating = previous
		}
		s.recomputeLocked()
		s.mu.Unlock()
		s.publish(events.EventWatchedChanged, "movie", id, events.PhaseRolledBack)
		return apicall.Fail[api.WatchedMovie](s.fail(err, op))
	}
	if i >= 0 {
		s.watched[i] = *updated
	}
	s.recomputeLocked()
	s.mu.Unlock()
	s.publish(events.EventWatchedChanged, "movie", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Rating saved")
	return apicall.Ok(*updated)
}

// IsFavorite reports whether movieID is a favorite.
func (s *LibraryStore) IsFavorite(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexFavorite(s.favorites, movieID) >= 0
}

// IsWatched reports whether movieID is marked watched.
func (s *LibraryStore) IsWatched(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexWatched(s.watched, movieID) >= 0
}

// IsPending reports whether a favorite or watched edit of movieID is in flight.
func (s *LibraryStore) IsPending(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, fav := s.pending[pendingKey("favorite", movieID)]
	_, w := s.pending[pendingKey("watched", movieID)]
	return fav || w
}

// Favorites returns a copy of the favorites, newest first.
func (s *LibraryStore) Favorites() []api.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

// Watched returns a copy of the watched movies, newest first.
func (s *LibraryStore) Watched() []api.WatchedMovie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.watched)
	for i := range out {
		out[i].Rating = cloneRating(out[i].Rating)
	}
	return out
}

// Stats returns the current aggregates.
func (s *LibraryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// FilterFavorites returns the favorites whose title fuzzily matches query,
// best match first. An empty query returns every favorite.
func (s *LibraryStore) FilterFavorites(query string) []api.Favorite {
	favs := s.Favorites()
	titles := make([]string, len(favs))
	for i, f := range favs {
		titles[i] = f.Title
	}
	return pick(favs, rankTitles(query, titles))
}

// FilterWatched returns the watched movies whose title fuzzily matches query.
func (s *LibraryStore) FilterWatched(query string) []api.WatchedMovie {
	watched := s.Watched()
	titles := make([]string, len(watched))
	for i, w := range watched {
		titles[i] = w.Title
	}
	return pick(watched, rankTitles(query, titles))
}

// Reset drops all library state, e.g. on sign out.
func (s *LibraryStore) Reset() {
	s.mu.Lock()
	s.favorites = nil
	s.watched = nil
	s.pending = make(pendingSet)
	s.gen.bump()
	s.recomputeLocked()
	s.mu.Unlock()
	s.Status.Reset()
	s.publish(events.EventFavoritesChanged, "movie", "", events.PhaseCleared)
	s.publish(events.EventWatchedChanged, "movie", "", events.PhaseCleared)
}

func (s *LibraryStore) currentGen() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// recomputeLocked must be called with s.mu held.
func (s *LibraryStore) recomputeLocked() {
	s.stats = ComputeStats(s.favorites, s.watched)
}

// rankTitles returns indexes into titles matching query, best first.
// A nil result for an empty query means "everything, in order".
func rankTitles(query string, titles []string) []int {
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})
	idx := make([]int, len(ranks))
	for i, r := range ranks {
		idx[i] = r.OriginalIndex
	}
	return idx
}

func pick[T any](items []T, idx []int) []T {
	if idx == nil {
		return items
	}
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}

func indexFavorite(favs []api.Favorite, movieID int64) int {
	return slices.IndexFunc(favs, func(f api.Favorite) bool { return f.MovieID == movieID })
}

func indexWatched(list []api.WatchedMovie, movieID int64) int {
	return slices.IndexFunc(list, func(w api.WatchedMovie) bool { return w.MovieID == movieID })
}

func sortFavorites(favs []api.Favorite) {
	sort.SliceStable(favs, func(i, j int) bool { return favs[i].CreatedAt.After(favs[j].CreatedAt) })
}

func sortWatched(list []api.WatchedMovie) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].WatchedAt.After(list[j].WatchedAt) })
}

func (b *base) checkRating(op string, rating *float64) *apperr.Error {
	if rating == nil || (*rating >= 0 && *rating <= MaxRating) {
		return nil
	}
	err := invalid(op, fmt.Sprintf("Rating must be between 0 and %g", MaxRating))
	b.caller.Notify(notify.KindError, err.Message)
	return err
}

func cloneRating(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

func pendingKey(entity string, movieID int64) string {
	return entity + ":" + strconv.FormatInt(movieID, 10)
}

func movieKey(movieID int64) string {
	return strconv.FormatInt(movieID, 10)
}

func displayTitle(title string) string {
	if title == "" {
		return "This movie"
	}
	return title
}
