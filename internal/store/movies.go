package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/tmdb"
)

const (
	FieldCategory = "category"
	FieldDetails  = "details"
	FieldDiscover = "discover"
)

// MovieStore holds browse listings and movie details from the metadata service.
type MovieStore struct {
	base
	meta MetadataAPI

	mu         sync.Mutex
	categories map[tmdb.Category]tmdb.Page
	details    map[int64]tmdb.Movie
	current    int64
	discover   tmdb.Page
}

// NewMovieStore creates an empty movie store.
func NewMovieStore(meta MetadataAPI, d Deps) *MovieStore {
	return &MovieStore{
		base:       newBase(d, "movies"),
		meta:       meta,
		categories: make(map[tmdb.Category]tmdb.Page),
		details:    make(map[int64]tmdb.Movie),
	}
}

// LoadCategory fetches one page of a curated listing, cached for 10 minutes.
func (s *MovieStore) LoadCategory(ctx context.Context, cat tmdb.Category, page int) apicall.Result[tmdb.Page] {
	const op = "load movies"
	if !cat.Valid() {
		return apicall.Fail[tmdb.Page](invalid(op, fmt.Sprintf("Unknown category %q", cat)))
	}
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("movies:category:%s:%d", cat, page)

	store := func(p tmdb.Page) {
		s.mu.Lock()
		s.categories[cat] = p
		s.mu.Unlock()
		s.publish(events.EventMoviesChanged, "category", string(cat), events.PhaseLoaded)
	}
	if cached, ok := cache.Lookup[tmdb.Page](s.results, key); ok {
		s.log.Debug("cache hit", "key", key)
		store(cached)
		return apicall.Ok(clonePage(cached))
	}

	fetch := func(ctx context.Context) (tmdb.Page, error) {
		p, err := s.meta.Category(ctx, cat, page)
		if err != nil {
			return tmdb.Page{}, err
		}
		return *p, nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[tmdb.Page]{
		UseCache:     true,
		LoadingField: FieldCategory,
		ErrorField:   FieldCategory,
		Op:           op,
		OnSuccess: func(p tmdb.Page) {
			s.results.Set(key, clonePage(p), cache.TTLCategory)
			store(p)
		},
	})
}

// LoadDetails fetches a movie's details, cached for 30 minutes, and makes it current.
func (s *MovieStore) LoadDetails(ctx context.Context, id int64) apicall.Result[tmdb.Movie] {
	key := "movies:details:" + movieKey(id)

	store := func(m tmdb.Movie) {
		s.mu.Lock()
		s.details[id] = m
		s.current = id
		s.mu.Unlock()
		s.publish(events.EventMoviesChanged, "movie", movieKey(id), events.PhaseLoaded)
	}
	if cached, ok := cache.Lookup[tmdb.Movie](s.results, key); ok {
		s.log.Debug("cache hit", "key", key)
		store(cached)
		return apicall.Ok(cached)
	}

	fetch := func(ctx context.Context) (tmdb.Movie, error) {
		m, err := s.meta.GetMovie(ctx, id)
		if err != nil {
			return tmdb.Movie{}, err
		}
		return *m, nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[tmdb.Movie]{
		UseCache:     true,
		LoadingField: FieldDetails,
		ErrorField:   FieldDetails,
		Op:           "load movie details",
		OnSuccess: func(m tmdb.Movie) {
			s.results.Set(key, m, cache.TTLDetails)
			store(m)
		},
	})
}

// Discover lists movies matching params, cached like category listings.
func (s *MovieStore) Discover(ctx context.Context, params tmdb.DiscoverParams) apicall.Result[tmdb.Page] {
	key := "movies:discover:" + discoverKey(params)

	store := func(p tmdb.Page) {
		s.mu.Lock()
		s.discover = p
		s.mu.Unlock()
		s.publish(events.EventMoviesChanged, "discover", "", events.PhaseLoaded)
	}
	if cached, ok := cache.Lookup[tmdb.Page](s.results, key); ok {
		store(cached)
		return apicall.Ok(clonePage(cached))
	}

	fetch := func(ctx context.Context) (tmdb.Page, error) {
		p, err := s.meta.Discover(ctx, params)
		if err != nil {
			return tmdb.Page{}, err
		}
		return *p, nil
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, fetch, apicall.Options[tmdb.Page]{
		UseCache:     true,
		LoadingField: FieldDiscover,
		ErrorField:   FieldDiscover,
		Op:           "discover movies",
		OnSuccess: func(p tmdb.Page) {
			s.results.Set(key, clonePage(p), cache.TTLCategory)
			store(p)
		},
	})
}

// Category returns the last loaded page of cat.
func (s *MovieStore) Category(cat tmdb.Category) (tmdb.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.categories[cat]
	return clonePage(p), ok
}

// Details returns the loaded details of movie id.
func (s *MovieStore) Details(id int64) (tmdb.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.details[id]
	return m, ok
}

// Current returns the movie whose details were loaded last.
func (s *MovieStore) Current() (tmdb.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.details[s.current]
	return m, ok
}

// DiscoverResults returns the last Discover page.
func (s *MovieStore) DiscoverResults() tmdb.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePage(s.discover)
}

func discoverKey(p tmdb.DiscoverParams) string {
	ids := slices.Clone(p.GenreIDs)
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("g=%s;y=%d;r=%g;s=%s;p=%d", strings.Join(parts, ","), p.Year, p.MinRating, p.SortBy, page)
}

func clonePage(p tmdb.Page) tmdb.Page {
	p.Results = slices.Clone(p.Results)
	return p
}
