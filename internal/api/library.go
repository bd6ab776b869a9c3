package api

import (
	"context"
	"fmt"
	"net/http"
)

// Favorites lists the user's favorites.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/favorites", nil)
	if err != nil {
		return nil, err
	}
	return dataEnvelope[[]Favorite](body)
}

// AddFavorite adds a movie to favorites and returns the stored record.
func (c *Client) AddFavorite(ctx context.Context, movie MovieRef) (*Favorite, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/favorites", movie)
	if err != nil {
		return nil, err
	}
	fav, err := dataEnvelope[Favorite](body)
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// RemoveFavorite removes a movie from favorites.
func (c *Client) RemoveFavorite(ctx context.Context, movieID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", movieID), nil)
	return err
}

// Watched lists the user's watched movies.
func (c *Client) Watched(ctx context.Context) ([]WatchedMovie, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/watched", nil)
	if err != nil {
		return nil, err
	}
	return dataEnvelope[[]WatchedMovie](body)
}

// AddWatched marks a movie watched.
func (c *Client) AddWatched(ctx context.Context, in WatchedInput) (*WatchedMovie, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/watched", in)
	if err != nil {
		return nil, err
	}
	w, err := dataEnvelope[WatchedMovie](body)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// RateWatched sets or clears the rating of a watched movie.
func (c *Client) RateWatched(ctx context.Context, movieID int64, rating *float64) (*WatchedMovie, error) {
	payload := struct {
		Rating *float64 `json:"rating"`
	}{rating}
	body, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/watched/%d", movieID), payload)
	if err != nil {
		return nil, err
	}
	w, err := dataEnvelope[WatchedMovie](body)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// RemoveWatched unmarks a watched movie.
func (c *Client) RemoveWatched(ctx context.Context, movieID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/watched/%d", movieID), nil)
	return err
}
