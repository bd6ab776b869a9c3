package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Watchlists lists the user's watchlists. This endpoint uses a
// {"watchlists": [...]} envelope instead of {"data": ...}.
func (c *Client) Watchlists(ctx context.Context) ([]Watchlist, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/watchlists", nil)
	if err != nil {
		return nil, err
	}
	return watchlistsEnvelope(body)
}

// CreateWatchlist creates an empty watchlist.
func (c *Client) CreateWatchlist(ctx context.Context, in WatchlistInput) (*Watchlist, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/watchlists", in)
	if err != nil {
		return nil, err
	}
	return decodeWatchlist(body)
}

// UpdateWatchlist edits a watchlist's name, description and visibility.
func (c *Client) UpdateWatchlist(ctx context.Context, id string, in WatchlistInput) (*Watchlist, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/watchlists/"+url.PathEscape(id), in)
	if err != nil {
		return nil, err
	}
	return decodeWatchlist(body)
}

// DeleteWatchlist deletes a watchlist.
func (c *Client) DeleteWatchlist(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/watchlists/"+url.PathEscape(id), nil)
	return err
}

// AddToWatchlist adds a movie and returns the updated watchlist.
func (c *Client) AddToWatchlist(ctx context.Context, id string, movie MovieRef) (*Watchlist, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/watchlists/"+url.PathEscape(id)+"/movies", movie)
	if err != nil {
		return nil, err
	}
	return decodeWatchlist(body)
}

// RemoveFromWatchlist removes a movie from a watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, id string, movieID int64) error {
	path := fmt.Sprintf("/api/watchlists/%s/movies/%d", url.PathEscape(id), movieID)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func decodeWatchlist(body []byte) (*Watchlist, error) {
	wl, err := dataEnvelope[Watchlist](body)
	if err != nil {
		return nil, err
	}
	if wl.ID == "" {
		return nil, shapeError("watchlist without id")
	}
	return &wl, nil
}
