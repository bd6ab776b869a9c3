package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// MovieReviews lists every review of a movie.
func (c *Client) MovieReviews(ctx context.Context, movieID int64) ([]Review, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/movie/%d", movieID), nil)
	if err != nil {
		return nil, err
	}
	return dataEnvelope[[]Review](body)
}

// MyReviews lists the signed-in user's reviews.
func (c *Client) MyReviews(ctx context.Context) ([]Review, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/reviews/me", nil)
	if err != nil {
		return nil, err
	}
	return dataEnvelope[[]Review](body)
}

// CreateReview posts a review.
func (c *Client) CreateReview(ctx context.Context, in ReviewInput) (*Review, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/reviews", in)
	if err != nil {
		return nil, err
	}
	r, err := dataEnvelope[Review](body)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReview edits a review.
func (c *Client) UpdateReview(ctx context.Context, id string, in ReviewInput) (*Review, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id), in)
	if err != nil {
		return nil, err
	}
	r, err := dataEnvelope[Review](body)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReview deletes a review.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), nil)
	return err
}
