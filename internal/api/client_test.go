package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/marquee/internal/apperr"
)

func TestClient_Login(t *testing.T) {
	srv := newMockServer(t).
		ExpectPOST().
		ExpectPath("/api/auth/login").
		ExpectBody(map[string]any{"email": "ana@example.com", "password": "hunter2"}).
		RespondJSON(map[string]any{
			"data": map[string]any{
				"token": "tok-123",
				"user":  map[string]any{"id": "u1", "email": "ana@example.com", "username": "ana"},
			},
		}).
		Build()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := newMockServer(t).
		ExpectGET().
		ExpectPath("/api/auth/me").
		ExpectBearer("secret").
		RespondJSON(map[string]any{"data": map[string]any{"id": "u1", "username": "ana"}}).
		Build()

	c := New(srv.URL, WithTokenSource(staticToken("secret")))
	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestClient_Favorites(t *testing.T) {
	srv := newMockServer(t).
		ExpectGET().
		ExpectPath("/api/favorites").
		RespondRaw(`{"data":[{"id":"f1","movieId":550,"title":"Fight Club","createdAt":"2024-01-02T03:04:05Z"}]}`).
		Build()

	favs, err := New(srv.URL).Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, int64(550), favs[0].MovieID)
	assert.Equal(t, 2024, favs[0].CreatedAt.Year())
}

func TestClient_UnexpectedShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":"f1"}]`},
		{"missing data", `{"favorites":[]}`},
		{"null data", `{"data":null}`},
		{"wrong type", `{"data":{"id":"f1"}}`},
		{"not json", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMockServer(t).RespondRaw(tt.body).Build()
			_, err := New(srv.URL).Favorites(context.Background())
			assert.ErrorIs(t, err, ErrUnexpectedResponse)

			classified := apperr.Classify(err, "load favorites")
			assert.Equal(t, apperr.KindUnknown, classified.Kind, "a response did arrive")
			assert.Equal(t, "Failed to load favorites. Please try again", classified.Message)
		})
	}
}

func TestClient_WatchlistsEnvelope(t *testing.T) {
	srv := newMockServer(t).
		ExpectGET().
		ExpectPath("/api/watchlists").
		RespondRaw(`{"watchlists":[{"id":"w1","name":"Noir","movies":[{"movieId":1}],"movieCount":1}]}`).
		Build()

	lists, err := New(srv.URL).Watchlists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Noir", lists[0].Name)
	assert.Equal(t, 1, lists[0].MovieCount)
}

func TestClient_WatchlistsRejectsDataEnvelope(t *testing.T) {
	srv := newMockServer(t).RespondRaw(`{"data":[]}`).Build()

	_, err := New(srv.URL).Watchlists(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestClient_CreateWatchlistRequiresID(t *testing.T) {
	srv := newMockServer(t).
		ExpectPOST().
		RespondRaw(`{"data":{"name":"Noir"}}`).
		Build()

	_, err := New(srv.URL).CreateWatchlist(context.Background(), WatchlistInput{Name: "Noir"})
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestClient_Paths(t *testing.T) {
	ctx := context.Background()
	rating := 4.5

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		call   func(c *Client) error
	}{
		{"remove favorite", http.MethodDelete, "/api/favorites/550", "", func(c *Client) error {
			return c.RemoveFavorite(ctx, 550)
		}},
		{"rate watched", http.MethodPatch, "/api/watched/13", `{"data":{"id":"w","movieId":13,"rating":4.5}}`, func(c *Client) error {
			w, err := c.RateWatched(ctx, 13, &rating)
			if err == nil && (w.Rating == nil || *w.Rating != 4.5) {
				return errors.New("rating not decoded")
			}
			return err
		}},
		{"remove watched", http.MethodDelete, "/api/watched/13", "", func(c *Client) error {
			return c.RemoveWatched(ctx, 13)
		}},
		{"update watchlist", http.MethodPut, "/api/watchlists/w1", `{"data":{"id":"w1"}}`, func(c *Client) error {
			_, err := c.UpdateWatchlist(ctx, "w1", WatchlistInput{Name: "x"})
			return err
		}},
		{"add to watchlist", http.MethodPost, "/api/watchlists/w1/movies", `{"data":{"id":"w1"}}`, func(c *Client) error {
			_, err := c.AddToWatchlist(ctx, "w1", MovieRef{MovieID: 9})
			return err
		}},
		{"remove from watchlist", http.MethodDelete, "/api/watchlists/w1/movies/9", "", func(c *Client) error {
			return c.RemoveFromWatchlist(ctx, "w1", 9)
		}},
		{"movie reviews", http.MethodGet, "/api/reviews/movie/9", `{"data":[]}`, func(c *Client) error {
			_, err := c.MovieReviews(ctx, 9)
			return err
		}},
		{"my reviews", http.MethodGet, "/api/reviews/me", `{"data":[]}`, func(c *Client) error {
			_, err := c.MyReviews(ctx)
			return err
		}},
		{"delete review", http.MethodDelete, "/api/reviews/r1", "", func(c *Client) error {
			return c.DeleteReview(ctx, "r1")
		}},
		{"update profile", http.MethodPut, "/api/users/profile", `{"data":{"id":"u1"}}`, func(c *Client) error {
			_, err := c.UpdateProfile(ctx, ProfileUpdate{Bio: "hi"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockServer(t).ExpectMethod(tt.method).ExpectPath(tt.path)
			if tt.body != "" {
				m = m.RespondRaw(tt.body)
			} else {
				m = m.RespondStatus(http.StatusNoContent)
			}
			srv := m.Build()
			assert.NoError(t, tt.call(New(srv.URL)))
		})
	}
}

func TestClient_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusConflict, `{"message":"Duplicate entry"}`, "Duplicate entry"},
		{"error field", http.StatusBadRequest, `{"error":"validation failed"}`, "validation failed"},
		{"plain text", http.StatusBadGateway, `bad gateway`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMockServer(t).RespondError(tt.status, tt.body).Build()

			_, err := New(srv.URL).Favorites(context.Background())

			var herr *HTTPError
			require.ErrorAs(t, err, &herr)
			assert.Equal(t, tt.status, herr.StatusCode())
			assert.Equal(t, tt.message, herr.BackendMessage())
			assert.Equal(t, tt.body, herr.Body)
		})
	}
}

func TestClient_ErrorsClassify(t *testing.T) {
	srv := newMockServer(t).RespondError(http.StatusConflict, `{"message":"Duplicate entry"}`).Build()
	_, err := New(srv.URL).AddFavorite(context.Background(), MovieRef{MovieID: 1})
	assert.Equal(t, apperr.MsgExists, apperr.Classify(err, "add to favorites").Message)

	srv = newMockServer(t).RespondStatus(http.StatusUnauthorized).Build()
	_, err = New(srv.URL).AddFavorite(context.Background(), MovieRef{MovieID: 1})
	assert.Equal(t, "Please sign in to add to favorites", apperr.Classify(err, "add to favorites").Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := newMockServer(t).Build()
	url := srv.URL
	srv.Close()

	_, err := New(url).Login(context.Background(), Credentials{})

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.NotContains(t, err.Error(), "/api/auth")
	assert.Equal(t, apperr.KindNetworkUnavailable, apperr.Classify(err, "sign in").Kind)
}
