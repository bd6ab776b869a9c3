package api

import "time"

// User is the signed-in account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate holds the editable profile fields. Empty fields are left unchanged.
type ProfileUpdate struct {
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// MovieRef identifies a movie together with the metadata the backend stores alongside it.
type MovieRef struct {
	MovieID     int64  `json:"movieId"`
	Title       string `json:"title"`
	PosterPath  string `json:"posterPath,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// Favorite is a movie in the user's favorites.
type Favorite struct {
	ID          string    `json:"id"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"posterPath,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WatchedMovie is a movie the user has seen, optionally rated.
type WatchedMovie struct {
	ID          string    `json:"id"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"posterPath,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	WatchedAt   time.Time `json:"watchedAt"`
}

// WatchedInput is the body for marking a movie watched.
type WatchedInput struct {
	MovieRef
	Rating *float64 `json:"rating,omitempty"`
}

// WatchlistMovie is one membership of a movie in a watchlist.
type WatchlistMovie struct {
	MovieID    int64     `json:"movieId"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Watchlist is a named, user-owned list of movies.
type Watchlist struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	IsPublic    bool             `json:"isPublic"`
	Movies      []WatchlistMovie `json:"movies"`
	MovieCount  int              `json:"movieCount"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// WatchlistInput is the body for creating or updating a watchlist.
type WatchlistInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"isPublic"`
}

// Review is a user's written review of a movie.
type Review struct {
	ID        string    `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Rating    float64   `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewInput is the body for creating or updating a review.
type ReviewInput struct {
	MovieID int64   `json:"movieId"`
	Rating  float64 `json:"rating"`
	Content string  `json:"content"`
}
