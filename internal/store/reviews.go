package store

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
)

const (
	FieldMovieReviews = "movieReviews"
	FieldMyReviews    = "myReviews"
	FieldReviewSubmit = "reviewSubmit"
)

// ReviewStore holds reviews per movie and the signed-in user's own reviews, newest first.
type ReviewStore struct {
	base
	api ReviewAPI

	mu      sync.Mutex
	byMovie map[int64][]api.Review
	mine    []api.Review
	pending pendingSet
	gen     generation
}

// NewReviewStore creates an empty review store.
func NewReviewStore(client ReviewAPI, d Deps) *ReviewStore {
	return &ReviewStore{
		base:    newBase(d, "reviews"),
		api:     client,
		byMovie: make(map[int64][]api.Review),
		pending: make(pendingSet),
	}
}

func movieReviewsKey(movieID int64) string {
	return "reviews:movie:" + movieKey(movieID)
}

// LoadForMovie fetches every review of movieID, served from cache for 60s.
func (s *ReviewStore) LoadForMovie(ctx context.Context, movieID int64) apicall.Result[[]api.Review] {
	key := movieReviewsKey(movieID)
	if cached, ok := cache.Lookup[[]api.Review](s.results, key); ok {
		s.log.Debug("cache hit", "key", key)
		s.setMovieReviews(s.currentGen(), movieID, cached)
		return apicall.Ok(slices.Clone(cached))
	}

	gen := s.currentGen()
	op := func(ctx context.Context) ([]api.Review, error) {
		return s.api.MovieReviews(ctx, movieID)
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, op, apicall.Options[[]api.Review]{
		UseCache:     true,
		LoadingField: FieldMovieReviews,
		ErrorField:   FieldMovieReviews,
		Op:           "load reviews",
		OnSuccess: func(reviews []api.Review) {
			if s.setMovieReviews(gen, movieID, reviews) {
				s.results.Set(key, slices.Clone(reviews), cache.TTLReviews)
			}
		},
	})
}

// LoadMine fetches the signed-in user's reviews.
func (s *ReviewStore) LoadMine(ctx context.Context) apicall.Result[[]api.Review] {
	if err := s.requireAuth("load your reviews"); err != nil {
		return apicall.Fail[[]api.Review](err)
	}
	gen := s.currentGen()
	return apicall.Call(ctx, s.caller, &s.Status, "reviews:mine", s.api.MyReviews, apicall.Options[[]api.Review]{
		UseCache:     true,
		LoadingField: FieldMyReviews,
		ErrorField:   FieldMyReviews,
		Op:           "load your reviews",
		OnSuccess: func(reviews []api.Review) {
			s.mu.Lock()
			if s.gen.stale(gen) {
				s.mu.Unlock()
				return
			}
			s.mine = slices.Clone(reviews)
			sortReviews(s.mine)
			s.mu.Unlock()
			s.publish(events.EventReviewsChanged, "review", "", events.PhaseLoaded)
		},
	})
}

// Create posts a review. The movie's cached reviews are invalidated.
func (s *ReviewStore) Create(ctx context.Context, in api.ReviewInput) apicall.Result[api.Review] {
	const op = "post your review"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Review](err)
	}
	if err := s.validate(op, &in); err != nil {
		return apicall.Fail[api.Review](err)
	}

	s.mu.Lock()
	exists := slices.ContainsFunc(s.mine, func(r api.Review) bool { return r.MovieID == in.MovieID })
	s.mu.Unlock()
	if exists {
		s.caller.Notify(notify.KindInfo, "You have already reviewed this movie")
		return apicall.Fail[api.Review](conflict(op, apperr.MsgExists))
	}

	key := "reviews:create:" + movieKey(in.MovieID)
	gen := s.currentGen()
	submit := func(ctx context.Context) (*api.Review, error) {
		return s.api.CreateReview(ctx, in)
	}
	res := apicall.Call(ctx, s.caller, &s.Status, key, submit, apicall.Options[*api.Review]{
		UseCache:       true,
		ShowToast:      true,
		LoadingField:   FieldReviewSubmit,
		ErrorField:     FieldReviewSubmit,
		Op:             op,
		SuccessMessage: "Review posted",
		OnSuccess: func(r *api.Review) {
			if !s.upsert(gen, *r) {
				return
			}
			s.results.Delete(movieReviewsKey(r.MovieID))
			s.publish(events.EventReviewsChanged, "review", r.ID, events.PhaseConfirmed)
		},
	})
	return derefResult(res)
}

// Update edits a review. The movie's cached reviews are invalidated.
func (s *ReviewStore) Update(ctx context.Context, id string, in api.ReviewInput) apicall.Result[api.Review] {
	const op = "update your review"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.Review](err)
	}
	if err := s.validate(op, &in); err != nil {
		return apicall.Fail[api.Review](err)
	}

	gen := s.currentGen()
	submit := func(ctx context.Context) (*api.Review, error) {
		return s.api.UpdateReview(ctx, id, in)
	}
	res := apicall.Call(ctx, s.caller, &s.Status, "reviews:update:"+id, submit, apicall.Options[*api.Review]{
		UseCache:       true,
		ShowToast:      true,
		LoadingField:   FieldReviewSubmit,
		ErrorField:     FieldReviewSubmit,
		Op:             op,
		SuccessMessage: "Review updated",
		OnSuccess: func(r *api.Review) {
			if !s.upsert(gen, *r) {
				return
			}
			s.results.Delete(movieReviewsKey(r.MovieID))
			s.publish(events.EventReviewsChanged, "review", r.ID, events.PhaseConfirmed)
		},
	})
	return derefResult(res)
}

// Delete removes a review optimistically. On failure the review is restored in recency order.
func (s *ReviewStore) Delete(ctx context.Context, id string) apicall.Result[struct{}] {
	const op = "delete your review"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[struct{}](err)
	}
	key := "review:" + id

	s.mu.Lock()
	removed, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		return apicall.Fail[struct{}](notFound(op))
	}
	if !s.pending.begin(key) {
		s.mu.Unlock()
		return apicall.Fail[struct{}](conflict(op, MsgInProgress))
	}
	gen := s.gen
	inMine, inMovie := s.removeLocked(id, removed.MovieID)
	s.mu.Unlock()
	s.publish(events.EventReviewsChanged, "review", id, events.PhaseOptimistic)

	err := s.api.DeleteReview(ctx, id)

	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return settleAfterReset(&s.base, &struct{}{}, err, op)
	}
	s.pending.end(key)
	if err != nil {
		// A reload while the request was in flight may already have restored it.
		hasMine, hasMovie := s.containsLocked(id, removed.MovieID)
		s.insertLocked(removed, inMine && !hasMine, inMovie && !hasMovie)
		s.mu.Unlock()
		s.publish(events.EventReviewsChanged, "review", id, events.PhaseRolledBack)
		return apicall.Fail[struct{}](s.fail(err, op))
	}
	s.mu.Unlock()
	s.results.Delete(movieReviewsKey(removed.MovieID))
	s.publish(events.EventReviewsChanged, "review", id, events.PhaseConfirmed)
	s.caller.Notify(notify.KindSuccess, "Review deleted")
	return apicall.Ok(struct{}{})
}

// ForMovie returns the loaded reviews of movieID, newest first.
func (s *ReviewStore) ForMovie(movieID int64) []api.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.byMovie[movieID])
}

// Mine returns the signed-in user's reviews, newest first.
func (s *ReviewStore) Mine() []api.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mine)
}

// AverageRating returns the mean rating of the loaded reviews of movieID and how many there are.
func (s *ReviewStore) AverageRating(movieID int64) (float64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := s.byMovie[movieID]
	if len(reviews) == 0 {
		return 0, 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews)), len(reviews)
}

// Reset drops all review state and cached movie reviews.
func (s *ReviewStore) Reset() {
	s.mu.Lock()
	s.byMovie = make(map[int64][]api.Review)
	s.mine = nil
	s.pending = make(pendingSet)
	s.gen.bump()
	s.mu.Unlock()
	s.results.DeletePrefix("reviews:")
	s.Status.Reset()
	s.publish(events.EventReviewsChanged, "review", "", events.PhaseCleared)
}

func (s *ReviewStore) validate(op string, in *api.ReviewInput) *apperr.Error {
	in.Content = strings.TrimSpace(in.Content)
	rating := in.Rating
	if err := s.checkRating(op, &rating); err != nil {
		return err
	}
	if in.Content == "" {
		err := invalid(op, "Review text is required")
		s.caller.Notify(notify.KindError, err.Message)
		return err
	}
	return nil
}

func (s *ReviewStore) currentGen() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// setMovieReviews stores the reviews of movieID unless the store was reset since gen.
func (s *ReviewStore) setMovieReviews(gen generation, movieID int64, reviews []api.Review) bool {
	s.mu.Lock()
	if s.gen.stale(gen) {
		s.mu.Unlock()
		return false
	}
	list := slices.Clone(reviews)
	sortReviews(list)
	s.byMovie[movieID] = list
	s.mu.Unlock()
	s.publish(events.EventReviewsChanged, "movie", movieKey(movieID), events.PhaseLoaded)
	return true
}

// upsert replaces or inserts r in both views unless the store was reset since gen.
func (s *ReviewStore) upsert(gen generation, r api.Review) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.stale(gen) {
		return false
	}
	s.removeLocked(r.ID, r.MovieID)
	_, loaded := s.byMovie[r.MovieID]
	s.insertLocked(r, true, loaded)
	return true
}

func (s *ReviewStore) findLocked(id string) (api.Review, bool) {
	if i := slices.IndexFunc(s.mine, func(r api.Review) bool { return r.ID == id }); i >= 0 {
		return s.mine[i], true
	}
	for _, reviews := range s.byMovie {
		if i := slices.IndexFunc(reviews, func(r api.Review) bool { return r.ID == id }); i >= 0 {
			return reviews[i], true
		}
	}
	return api.Review{}, false
}

// removeLocked drops review id from both views and reports which ones held it.
func (s *ReviewStore) removeLocked(id string, movieID int64) (inMine, inMovie bool) {
	match := func(r api.Review) bool { return r.ID == id }
	if slices.ContainsFunc(s.mine, match) {
		s.mine = slices.DeleteFunc(slices.Clone(s.mine), match)
		inMine = true
	}
	if reviews, ok := s.byMovie[movieID]; ok && slices.ContainsFunc(reviews, match) {
		s.byMovie[movieID] = slices.DeleteFunc(slices.Clone(reviews), match)
		inMovie = true
	}
	return inMine, inMovie
}

func (s *ReviewStore) containsLocked(id string, movieID int64) (inMine, inMovie bool) {
	match := func(r api.Review) bool { return r.ID == id }
	return slices.ContainsFunc(s.mine, match), slices.ContainsFunc(s.byMovie[movieID], match)
}

func (s *ReviewStore) insertLocked(r api.Review, toMine, toMovie bool) {
	if toMine {
		s.mine = append(s.mine, r)
		sortReviews(s.mine)
	}
	if toMovie {
		reviews := append(slices.Clone(s.byMovie[r.MovieID]), r)
		sortReviews(reviews)
		s.byMovie[r.MovieID] = reviews
	}
}

func sortReviews(reviews []api.Review) {
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
}

func derefResult[T any](r apicall.Result[*T]) apicall.Result[T] {
	if !r.Success {
		return apicall.Fail[T](r.Err)
	}
	if r.Data == nil {
		var zero T
		return apicall.Ok(zero)
	}
	return apicall.Ok(*r.Data)
}
