// Package app assembles one client session: configuration, credentials,
// HTTP clients, caches and every domain store, built once and shared.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/config"
	"github.com/vmunix/marquee/internal/credentials"
	"github.com/vmunix/marquee/internal/diskcache"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
	"github.com/vmunix/marquee/internal/store"
	"github.com/vmunix/marquee/internal/tmdb"
)

// Session owns every long-lived component. Close releases the databases.
type Session struct {
	Config      *config.Config
	Credentials *credentials.Store
	DiskCache   *diskcache.Cache // nil when cache.path is empty
	API         *api.Client
	TMDB        *tmdb.Client
	Dedup       *cache.Dedup
	Results     *cache.Results
	Notifier    *notify.Deduper
	Bus         *events.Bus

	Movies     *store.MovieStore
	Library    *store.LibraryStore
	Watchlists *store.WatchlistStore
	Reviews    *store.ReviewStore
	Search     *store.SearchStore
	Genres     *store.GenreStore
	Profile    *store.ProfileStore

	log *slog.Logger
}

type options struct {
	sink       notify.Sink
	logger     *slog.Logger
	httpClient *http.Client
}

// Option configures New.
type Option func(*options)

// WithSink sets where notifications are shown. Defaults to the logger.
func WithSink(sink notify.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient sets the HTTP client used for the backend and TMDB.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New builds a session from cfg.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.sink == nil {
		o.sink = notify.LogSink{Logger: o.logger.With("component", "notify")}
	}

	creds, err := credentials.Open(cfg.Credentials.Path)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	s := &Session{
		Config:      cfg,
		Credentials: creds,
		Dedup:       cache.NewDedup(),
		Results:     cache.NewResults(),
		Bus:         events.NewBus(o.logger),
		log:         o.logger.With("component", "session"),
	}

	tmdbOpts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithLogger(o.logger.With("component", "tmdb")),
	}
	apiOpts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(creds),
		api.WithLogger(o.logger.With("component", "api")),
	}
	if o.httpClient != nil {
		tmdbOpts = append(tmdbOpts, tmdb.WithHTTPClient(o.httpClient))
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	if cfg.Cache.Path != "" {
		dc, err := diskcache.Open(cfg.Cache.Path)
		if err != nil {
			_ = creds.Close()
			return nil, fmt.Errorf("disk cache: %w", err)
		}
		s.DiskCache = dc
		tmdbOpts = append(tmdbOpts, tmdb.WithPersister(dc, cfg.Cache.PersistTTL))
	}
	s.TMDB = tmdb.NewClient(cfg.TMDB.APIKey, tmdbOpts...)
	s.API = api.New(cfg.API.BaseURL, apiOpts...)

	s.Notifier = notify.NewDeduper(o.sink, cfg.Notifications.Window)
	caller := apicall.NewCaller(s.Dedup, s.Notifier, o.logger.With("component", "apicall"),
		apicall.WithDedupTTL(cfg.Cache.DedupTTL))

	deps := store.Deps{
		Caller:  caller,
		Results: s.Results,
		Auth:    creds,
		Bus:     s.Bus,
		Logger:  o.logger,
	}
	s.Movies = store.NewMovieStore(s.TMDB, deps)
	s.Genres = store.NewGenreStore(s.TMDB, deps)
	s.Search = store.NewSearchStore(s.TMDB, deps,
		store.WithDebounce(cfg.Search.Debounce),
		store.WithHistorySize(cfg.Search.HistorySize))
	s.Library = store.NewLibraryStore(s.API, deps)
	s.Watchlists = store.NewWatchlistStore(s.API, deps)
	s.Reviews = store.NewReviewStore(s.API, deps)
	s.Profile = store.NewProfileStore(s.API, creds, s.Library, deps, s.Watchlists, s.Reviews, s.Search)
	return s, nil
}

// Bootstrap loads what every screen needs: the genre list and, when signed
// in, the current user followed by the library, watchlists and own reviews.
// Failures are already notified; the joined error is for the caller's logs.
func (s *Session) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	var genresErr error
	g.Go(func() error {
		genresErr = errOf(s.Genres.Load(ctx))
		return nil
	})

	var userErrs []error
	if s.Credentials.IsAuthenticated() {
		// A rejected token is cleared by LoadCurrentUser, so the rest is skipped.
		if err := errOf(s.Profile.LoadCurrentUser(ctx)); err != nil {
			userErrs = append(userErrs, err)
		} else {
			var ug errgroup.Group
			results := make([]error, 3)
			ug.Go(func() error { results[0] = errOf(s.Library.Load(ctx)); return nil })
			ug.Go(func() error { results[1] = errOf(s.Watchlists.Load(ctx)); return nil })
			ug.Go(func() error { results[2] = errOf(s.Reviews.LoadMine(ctx)); return nil })
			_ = ug.Wait()
			userErrs = append(userErrs, results...)
		}
	}
	_ = g.Wait()

	err := errors.Join(append([]error{genresErr}, userErrs...)...)
	if err != nil {
		s.log.Warn("bootstrap incomplete", "error", err)
	}
	return err
}

// PruneCache removes expired entries from the persistent TMDB tier.
func (s *Session) PruneCache(ctx context.Context) (int64, error) {
	if s.DiskCache == nil {
		return 0, nil
	}
	return s.DiskCache.Prune(ctx)
}

// Close stops background work and closes the databases.
func (s *Session) Close() error {
	s.Search.Close()
	s.Dedup.Clear()
	errs := []error{s.Bus.Close(), s.Credentials.Close()}
	if s.DiskCache != nil {
		errs = append(errs, s.DiskCache.Close())
	}
	return errors.Join(errs...)
}

func errOf[T any](r apicall.Result[T]) error {
	if r.Success {
		return nil
	}
	return r.Err
}
