package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/marquee/internal/apperr"
)

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		resp := Movie{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "An insomniac office worker...",
			ReleaseDate: "1999-10-15",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			VoteAverage: 8.4,
			Runtime:     139,
			Genres:      []Genre{{ID: 18, Name: "Drama"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 1999, movie.Year())
	assert.Equal(t, 139, movie.Runtime)
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", movie.PosterURL("w342"))
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "The resource you requested could not be found.", se.BackendMessage())
}

func TestClient_ServerErrorClassifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient("k", WithBaseURL(server.URL)).Category(context.Background(), CategoryPopular, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindServerError, apperr.Classify(err, "load movies").Kind)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"page":2,"total_pages":3,"total_results":41,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-31","genre_ids":[28,878]}]}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL), WithLanguage("en-US"))
	page, err := client.Search(context.Background(), "matrix", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 41, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, []int{28, 878}, page.Results[0].GenreIDs)
	assert.Equal(t, 1999, page.Results[0].Year())
}

func TestClient_Discover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/3/discover/movie", r.URL.Path)
		assert.Equal(t, "28,12", q.Get("with_genres"))
		assert.Equal(t, "2010", q.Get("primary_release_year"))
		assert.Equal(t, "7.5", q.Get("vote_average.gte"))
		assert.Equal(t, "vote_average.desc", q.Get("sort_by"))
		assert.Empty(t, q.Get("page"))
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))
	_, err := client.Discover(context.Background(), DiscoverParams{
		GenreIDs:  []int{28, 12},
		Year:      2010,
		MinRating: 7.5,
		SortBy:    "vote_average.desc",
		Page:      1,
	})
	require.NoError(t, err)
}

func TestClient_Category(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/top_rated", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":238,"title":"The Godfather"}]}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))
	page, err := client.Category(context.Background(), CategoryTopRated, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Godfather", page.Results[0].Title)

	_, err = client.Category(context.Background(), Category("trending"), 1)
	assert.Error(t, err)
}

func TestClient_Genres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/genre/movie/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}]}`))
	}))
	defer server.Close()

	genres, err := NewClient("k", WithBaseURL(server.URL)).Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, genres)
}

func TestClient_ConcurrentRequestsShareRoundTrip(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"id":550,"title":"Fight Club"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			movie, err := client.GetMovie(context.Background(), 550)
			assert.NoError(t, err)
			assert.Equal(t, "Fight Club", movie.Title)
		}()
	}

	// Let every goroutine reach the in-flight request before responding.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

type memPersister struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemPersister() *memPersister {
	return &memPersister{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memPersister) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memPersister) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestClient_Persister(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"id":550,"title":"Fight Club"}`))
	}))
	defer server.Close()

	p := newMemPersister()
	client := NewClient("k", WithBaseURL(server.URL), WithPersister(p, time.Hour))

	_, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, time.Hour, p.ttls["/3/movie/550"])

	// Second call is served from the persistent tier
	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, int32(1), calls.Load(), "should use persister, not call API again")

	// Listings are never persisted
	_, _ = client.Search(context.Background(), "fight", 1)
	_, ok := p.Get(context.Background(), "/3/search/movie?query=fight")
	assert.False(t, ok)
}

func TestClient_NetworkErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient("super-secret", WithBaseURL(addr)).Genres(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
	assert.Equal(t, apperr.KindNetworkUnavailable, apperr.Classify(err, "load genres").Kind)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL(DefaultImageBaseURL, "w500", ""))
	assert.Equal(t, "https://cdn.example/t/p/w500/x.jpg", ImageURL("https://cdn.example/t/p", "w500", "/x.jpg"))

	c := NewClient("k", WithImageBaseURL("https://cdn.example/"))
	assert.Equal(t, "https://cdn.example/original/y.jpg", c.ImageURL("original", "/y.jpg"))
}
