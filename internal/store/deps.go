package store

import (
	"context"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/vmunix/marquee/internal/store AuthAPI,LibraryAPI,WatchlistAPI,ReviewAPI,MetadataAPI,TokenStore

// AuthAPI is the account half of the backend. *api.Client implements it.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error)
	CurrentUser(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error)
}

// LibraryAPI covers favorites and watched movies.
type LibraryAPI interface {
	Favorites(ctx context.Context) ([]api.Favorite, error)
	AddFavorite(ctx context.Context, movie api.MovieRef) (*api.Favorite, error)
	RemoveFavorite(ctx context.Context, movieID int64) error
	Watched(ctx context.Context) ([]api.WatchedMovie, error)
	AddWatched(ctx context.Context, in api.WatchedInput) (*api.WatchedMovie, error)
	RateWatched(ctx context.Context, movieID int64, rating *float64) (*api.WatchedMovie, error)
	RemoveWatched(ctx context.Context, movieID int64) error
}

// WatchlistAPI covers watchlists and their memberships.
type WatchlistAPI interface {
	Watchlists(ctx context.Context) ([]api.Watchlist, error)
	CreateWatchlist(ctx context.Context, in api.WatchlistInput) (*api.Watchlist, error)
	UpdateWatchlist(ctx context.Context, id string, in api.WatchlistInput) (*api.Watchlist, error)
	DeleteWatchlist(ctx context.Context, id string) error
	AddToWatchlist(ctx context.Context, id string, movie api.MovieRef) (*api.Watchlist, error)
	RemoveFromWatchlist(ctx context.Context, id string, movieID int64) error
}

// ReviewAPI covers reviews.
type ReviewAPI interface {
	MovieReviews(ctx context.Context, movieID int64) ([]api.Review, error)
	MyReviews(ctx context.Context) ([]api.Review, error)
	CreateReview(ctx context.Context, in api.ReviewInput) (*api.Review, error)
	UpdateReview(ctx context.Context, id string, in api.ReviewInput) (*api.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// MetadataAPI is the movie metadata service. *tmdb.Client implements it.
type MetadataAPI interface {
	Search(ctx context.Context, query string, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, params tmdb.DiscoverParams) (*tmdb.Page, error)
	Category(ctx context.Context, cat tmdb.Category, page int) (*tmdb.Page, error)
	GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

// Authenticator reports whether a user is signed in.
type Authenticator interface {
	IsAuthenticated() bool
}

// TokenStore persists the auth token. *credentials.Store implements it.
type TokenStore interface {
	Authenticator
	SetToken(token string) error
	Clear() error
}
