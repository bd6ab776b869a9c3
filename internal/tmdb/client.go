package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultPersistTTL = 24 * time.Hour

// ErrNotFound is returned when a movie doesn't exist in TMDB.
var ErrNotFound = errors.New("movie not found")

// StatusError is a non-200 response from TMDB.
type StatusError struct {
	Status  int
	Message string // TMDB status_message
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDB API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("TMDB API error %d", e.Status)
}

// Is matches ErrNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

func (e *StatusError) StatusCode() int        { return e.Status }
func (e *StatusError) BackendMessage() string { return e.Message }

// Persister stores raw responses across restarts. *diskcache.Cache implements it.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	group        singleflight.Group
	persist      Persister
	persistTTL   time.Duration
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithImageBaseURL sets the image CDN base.
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithLanguage sets the response language, e.g. "en-US".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPersister keeps movie details and the genre list in p for ttl.
// A ttl <= 0 uses 24h.
func WithPersister(p Persister, ttl time.Duration) Option {
	return func(c *Client) {
		c.persist = p
		if ttl > 0 {
			c.persistTTL = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		persistTTL: defaultPersistTTL,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "tmdb")
	return c
}

// ImageURL returns the full image URL for a poster or backdrop path.
func (c *Client) ImageURL(size, path string) string {
	return ImageURL(c.imageBaseURL, size, path)
}

// Search finds movies by title.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	q := url.Values{}
	q.Set("query", query)
	setPage(q, page)
	var out Page
	if err := c.get(ctx, "/3/search/movie", q, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Discover lists movies matching params.
func (c *Client) Discover(ctx context.Context, params DiscoverParams) (*Page, error) {
	q := url.Values{}
	if len(params.GenreIDs) > 0 {
		ids := make([]string, len(params.GenreIDs))
		for i, id := range params.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("with_genres", strings.Join(ids, ","))
	}
	if params.Year > 0 {
		q.Set("primary_release_year", strconv.Itoa(params.Year))
	}
	if params.MinRating > 0 {
		q.Set("vote_average.gte", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}
	if params.SortBy != "" {
		q.Set("sort_by", params.SortBy)
	}
	setPage(q, params.Page)

	var out Page
	if err := c.get(ctx, "/3/discover/movie", q, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Category fetches one page of a curated listing.
func (c *Client) Category(ctx context.Context, cat Category, page int) (*Page, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category %q", cat)
	}
	q := url.Values{}
	setPage(q, page)
	var out Page
	if err := c.get(ctx, "/3/movie/"+string(cat), q, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, true, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Genres fetches the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, "/3/genre/movie/list", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func setPage(q url.Values, page int) {
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
}

// get fetches path and decodes it into out. Concurrent identical requests
// share one HTTP round trip. Persistent responses go through the Persister.
func (c *Client) get(ctx context.Context, path string, query url.Values, persistent bool, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.language != "" {
		query.Set("language", c.language)
	}
	key := path
	if enc := query.Encode(); enc != "" {
		key += "?" + enc
	}

	if persistent && c.persist != nil {
		if data, ok := c.persist.Get(ctx, key); ok {
			c.log.Debug("persistent cache hit", "key", key)
			return decode(data, out)
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, path, query)
	})
	if err != nil {
		return err
	}
	data := v.([]byte)
	if shared {
		c.log.Debug("shared in-flight request", "key", key)
	}

	if persistent && c.persist != nil && !shared {
		if err := c.persist.Set(ctx, key, data, c.persistTTL); err != nil {
			c.log.Warn("failed to persist response", "key", key, "error", err)
		}
	}
	return decode(data, out)
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Drop the URL so the api key never reaches logs or notifications.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Status: resp.StatusCode}
		var payload struct {
			StatusMessage string `json:"status_message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			se.Message = payload.StatusMessage
		}
		return nil, se
	}
	return body, nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
