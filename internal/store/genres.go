package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/tmdb"
)

const FieldGenres = "genres"

// GenreStore maps genre ids to names.
type GenreStore struct {
	base
	meta MetadataAPI

	mu     sync.Mutex
	genres []tmdb.Genre
	byID   map[int]string
}

// NewGenreStore creates an empty genre store.
func NewGenreStore(meta MetadataAPI, d Deps) *GenreStore {
	return &GenreStore{
		base: newBase(d, "genres"),
		meta: meta,
		byID: make(map[int]string),
	}
}

// Load fetches the genre list, cached for 24 hours.
func (s *GenreStore) Load(ctx context.Context) apicall.Result[[]tmdb.Genre] {
	const key = "genres:list"
	if cached, ok := cache.Lookup[[]tmdb.Genre](s.results, key); ok {
		s.set(cached)
		return apicall.Ok(slices.Clone(cached))
	}
	return apicall.Call(ctx, s.caller, &s.Status, key, s.meta.Genres, apicall.Options[[]tmdb.Genre]{
		UseCache:     true,
		LoadingField: FieldGenres,
		ErrorField:   FieldGenres,
		Op:           "load genres",
		OnSuccess: func(genres []tmdb.Genre) {
			s.results.Set(key, slices.Clone(genres), cache.TTLGenres)
			s.set(genres)
		},
	})
}

// Name returns the name of genre id, or "" if unknown.
func (s *GenreStore) Name(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}

// Names maps ids to names, skipping unknown ids.
func (s *GenreStore) Names(ids []int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := s.byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// IDByName finds a genre id by case-insensitive name.
func (s *GenreStore) IDByName(name string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, true
		}
	}
	return 0, false
}

// All returns every genre sorted by name.
func (s *GenreStore) All() []tmdb.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.genres)
}

func (s *GenreStore) set(genres []tmdb.Genre) {
	sorted := slices.Clone(genres)
	slices.SortFunc(sorted, func(a, b tmdb.Genre) int { return strings.Compare(a.Name, b.Name) })
	byID := make(map[int]string, len(sorted))
	for _, g := range sorted {
		byID[g.ID] = g.Name
	}

	s.mu.Lock()
	s.genres = sorted
	s.byID = byID
	s.mu.Unlock()
	s.publish(events.EventGenresChanged, "genre", "", events.PhaseLoaded)
}
