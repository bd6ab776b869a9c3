package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/debounce"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
	"github.com/vmunix/marquee/internal/tmdb"
	"github.com/vmunix/marquee/pkg/titles"
)

const (
	FieldSearch      = "search"
	FieldSuggestions = "suggestions"
	FieldAdvanced    = "advanced"
)

// Search defaults.
const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultHistorySize = 10
	MaxSuggestions     = 5

	// suggestions scoring below this are noise
	minSuggestionScore = 0.7
)

// Sort orders for AdvancedQuery.SortBy.
const (
	SortPopularity  = "popularity"
	SortRating      = "rating"
	SortReleaseDate = "release_date"
	SortTitle       = "title"
)

// AdvancedQuery combines a text query with discover-style filters.
// Zero values are ignored.
type AdvancedQuery struct {
	Query     string
	GenreIDs  []int
	YearFrom  int
	YearTo    int
	MinRating float64
	SortBy    string
	Page      int
}

// SearchStore runs movie searches and keeps the recent query history.
type SearchStore struct {
	base
	meta        MetadataAPI
	debouncer   *debounce.Debouncer
	historySize int

	mu      sync.Mutex
	query   string
	page    tmdb.Page
	history []string
	// latest is the key of the most recent Search or Advanced request.
	// Responses for any other key arrive too late to be shown.
	latest string
}

// SearchOption configures a SearchStore.
type SearchOption func(*SearchStore)

// WithDebounce sets the SearchDebounced quiet period.
func WithDebounce(delay time.Duration) SearchOption {
	return func(s *SearchStore) {
		if delay > 0 {
			s.debouncer = debounce.New(delay)
		}
	}
}

// WithHistorySize sets how many distinct queries History keeps.
func WithHistorySize(n int) SearchOption {
	return func(s *SearchStore) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// NewSearchStore creates a search store.
func NewSearchStore(meta MetadataAPI, d Deps, opts ...SearchOption) *SearchStore {
	s := &SearchStore{
		base:        newBase(d, "search"),
		meta:        meta,
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.debouncer == nil {
		s.debouncer = debounce.New(DefaultDebounce)
	}
	return s
}

// Search finds movies by title. Results are cached for 3 minutes per
// normalized query and page. An empty query clears the results.
func (s *SearchStore) Search(ctx context.Context, query string, page int) apicall.Result[tmdb.Page] {
	norm := titles.NormalizeQuery(query)
	if norm == "" {
		s.Clear()
		return apicall.Ok(tmdb.Page{Page: 1})
	}
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("search:%s:%d", norm, page)

	s.request(key)
	store := func(p tmdb.Page) {
		s.mu.Lock()
		if s.latest != key {
			s.mu.Unlock()
			s.log.Debug("dropping superseded search", "key", key)
			return
		}
		s.query = query
		s.page = p
		s.recordLocked(norm)
		s.mu.Unlock()
		s.publish(events.EventSearchChanged, "search", norm, events.PhaseLoaded)
	}
	if cached, ok := cache.Lookup[tmdb.Page](s.results, key); ok {
		s.log.Debug("cache hit", "key", key)
		store(cached)
		return apicall.Ok(clonePage(cached))
	}

	fetch := func(ctx context.Context) (tmdb.Page, error) {
		p, err := s.meta.Search(ctx, norm, page)
		if err != nil {
			return tmdb.Page{}, err
		}
		return *p, nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[tmdb.Page]{
		UseCache:     true,
		LoadingField: FieldSearch,
		ErrorField:   FieldSearch,
		Op:           "search movies",
		OnSuccess: func(p tmdb.Page) {
			s.results.Set(key, clonePage(p), cache.TTLSearch)
			store(p)
		},
	})
}

// SearchDebounced schedules Search after the quiet period, cancelling any
// search scheduled earlier. done, if set, receives the result of the search
// that ran. It reports whether the search was scheduled.
func (s *SearchStore) SearchDebounced(ctx context.Context, query string, done func(apicall.Result[tmdb.Page])) bool {
	return s.debouncer.Schedule(func() {
		if ctx.Err() != nil {
			return
		}
		r := s.Search(ctx, query, 1)
		if done != nil {
			done(r)
		}
	})
}

// Suggestions returns up to five titles matching prefix, best first.
func (s *SearchStore) Suggestions(ctx context.Context, prefix string) apicall.Result[[]tmdb.MovieSummary] {
	norm := titles.NormalizeQuery(prefix)
	if norm == "" {
		return apicall.Ok([]tmdb.MovieSummary{})
	}
	key := "suggest:" + norm
	if cached, ok := cache.Lookup[[]tmdb.MovieSummary](s.results, key); ok {
		return apicall.Ok(slices.Clone(cached))
	}

	fetch := func(ctx context.Context) ([]tmdb.MovieSummary, error) {
		p, err := s.meta.Search(ctx, norm, 1)
		if err != nil {
			return nil, err
		}
		return rankSuggestions(norm, p.Results), nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[[]tmdb.MovieSummary]{
		UseCache:     true,
		LoadingField: FieldSuggestions,
		ErrorField:   FieldSuggestions,
		Op:           "load suggestions",
		OnSuccess: func(list []tmdb.MovieSummary) {
			s.results.Set(key, slices.Clone(list), cache.TTLSuggestions)
		},
	})
}

// Advanced runs a filtered search, cached for 5 minutes. With a text query it
// searches by title and filters locally; without one it uses discover.
func (s *SearchStore) Advanced(ctx context.Context, q AdvancedQuery) apicall.Result[tmdb.Page] {
	const op = "search movies"
	if q.YearFrom > 0 && q.YearTo > 0 && q.YearFrom > q.YearTo {
		r := apicall.Fail[tmdb.Page](invalid(op, "Year range is empty"))
		s.caller.Notify(notify.KindError, r.Err.Message)
		return r
	}
	if q.MinRating < 0 || q.MinRating > MaxRating {
		r := apicall.Fail[tmdb.Page](invalid(op, fmt.Sprintf("Minimum rating must be between 0 and %g", MaxRating)))
		s.caller.Notify(notify.KindError, r.Err.Message)
		return r
	}
	if q.Page < 1 {
		q.Page = 1
	}
	q.Query = titles.NormalizeQuery(q.Query)
	key := "search:advanced:" + advancedKey(q)

	s.request(key)
	store := func(p tmdb.Page) {
		s.mu.Lock()
		if s.latest != key {
			s.mu.Unlock()
			s.log.Debug("dropping superseded search", "key", key)
			return
		}
		s.query = q.Query
		s.page = p
		if q.Query != "" {
			s.recordLocked(q.Query)
		}
		s.mu.Unlock()
		s.publish(events.EventSearchChanged, "search", q.Query, events.PhaseLoaded)
	}
	if cached, ok := cache.Lookup[tmdb.Page](s.results, key); ok {
		store(cached)
		return apicall.Ok(clonePage(cached))
	}

	fetch := func(ctx context.Context) (tmdb.Page, error) {
		var (
			p   *tmdb.Page
			err error
		)
		if q.Query != "" {
			p, err = s.meta.Search(ctx, q.Query, q.Page)
		} else {
			p, err = s.meta.Discover(ctx, discoverParams(q))
		}
		if err != nil {
			return tmdb.Page{}, err
		}
		out := *p
		out.Results = filterResults(p.Results, q)
		sortResults(out.Results, q.SortBy)
		return out, nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[tmdb.Page]{
		UseCache:     true,
		LoadingField: FieldAdvanced,
		ErrorField:   FieldAdvanced,
		Op:           op,
		OnSuccess: func(p tmdb.Page) {
			s.results.Set(key, clonePage(p), cache.TTLAdvancedSearch)
			store(p)
		},
	})
}

// Results returns the last search results.
func (s *SearchStore) Results() tmdb.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePage(s.page)
}

// Query returns the query that produced Results.
func (s *SearchStore) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// History returns recent distinct queries, most recent first.
func (s *SearchStore) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// ClearHistory forgets every recorded query.
func (s *SearchStore) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// Clear drops the current query and results and cancels a pending debounced search.
func (s *SearchStore) Clear() {
	s.debouncer.Cancel()
	s.mu.Lock()
	s.query = ""
	s.page = tmdb.Page{}
	s.latest = ""
	s.mu.Unlock()
	s.Status.Reset()
	s.publish(events.EventSearchChanged, "search", "", events.PhaseCleared)
}

// Reset clears results and history.
func (s *SearchStore) Reset() {
	s.Clear()
	s.ClearHistory()
}

// Close stops the debouncer. Later SearchDebounced calls return false.
func (s *SearchStore) Close() {
	s.debouncer.Stop()
}

func (s *SearchStore) request(key string) {
	s.mu.Lock()
	s.latest = key
	s.mu.Unlock()
}

// recordLocked must be called with s.mu held.
func (s *SearchStore) recordLocked(query string) {
	s.history = slices.DeleteFunc(s.history, func(h string) bool { return h == query })
	s.history = append([]string{query}, s.history...)
	if len(s.history) > s.historySize {
		s.history = s.history[:s.historySize]
	}
}

func rankSuggestions(query string, results []tmdb.MovieSummary) []tmdb.MovieSummary {
	names := make([]string, len(results))
	for i, m := range results {
		names[i] = m.Title
	}
	matches := titles.Rank(query, names, MaxSuggestions, minSuggestionScore)
	out := make([]tmdb.MovieSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, results[m.Index])
	}
	return out
}

func discoverParams(q AdvancedQuery) tmdb.DiscoverParams {
	p := tmdb.DiscoverParams{
		GenreIDs:  q.GenreIDs,
		MinRating: q.MinRating,
		Page:      q.Page,
	}
	if q.YearFrom > 0 && q.YearFrom == q.YearTo {
		p.Year = q.YearFrom
	}
	switch q.SortBy {
	case SortRating:
		p.SortBy = "vote_average.desc"
	case SortReleaseDate:
		p.SortBy = "primary_release_date.desc"
	case SortPopularity:
		p.SortBy = "popularity.desc"
	}
	return p
}

func filterResults(results []tmdb.MovieSummary, q AdvancedQuery) []tmdb.MovieSummary {
	out := make([]tmdb.MovieSummary, 0, len(results))
	for _, m := range results {
		if !hasAllGenres(m.GenreIDs, q.GenreIDs) {
			continue
		}
		year := m.Year()
		if q.YearFrom > 0 && (year == 0 || year < q.YearFrom) {
			continue
		}
		if q.YearTo > 0 && (year == 0 || year > q.YearTo) {
			continue
		}
		if m.VoteAverage < q.MinRating {
			continue
		}
		out = append(out, m)
	}
	return out
}

func hasAllGenres(have, want []int) bool {
	for _, id := range want {
		if !slices.Contains(have, id) {
			return false
		}
	}
	return true
}

// sortResults orders in place. Unknown orders keep the service's order.
func sortResults(results []tmdb.MovieSummary, by string) {
	var less func(a, b tmdb.MovieSummary) int
	switch by {
	case SortPopularity:
		less = func(a, b tmdb.MovieSummary) int { return cmp.Compare(b.Popularity, a.Popularity) }
	case SortRating:
		less = func(a, b tmdb.MovieSummary) int { return cmp.Compare(b.VoteAverage, a.VoteAverage) }
	case SortReleaseDate:
		less = func(a, b tmdb.MovieSummary) int { return strings.Compare(b.ReleaseDate, a.ReleaseDate) }
	case SortTitle:
		less = func(a, b tmdb.MovieSummary) int {
			return strings.Compare(titles.CleanTitle(a.Title), titles.CleanTitle(b.Title))
		}
	default:
		return
	}
	slices.SortStableFunc(results, less)
}

func advancedKey(q AdvancedQuery) string {
	ids := slices.Clone(q.GenreIDs)
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("q=%s;g=%s;y=%d-%d;r=%g;s=%s;p=%d",
		q.Query, strings.Join(parts, ","), q.YearFrom, q.YearTo, q.MinRating, q.SortBy, q.Page)
}
