package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

type ReviewInput struct {
	RoomID  domain.ID `json:"roomId"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
}

func (c *Client) AddReview(ctx context.Context, input ReviewInput) error {
	return c.http.JSON(ctx, http.MethodPost, "/Reviews", nil, input, nil)
}

func (c *Client) Reviews(ctx context.Context, roomID domain.ID) ([]domain.Review, error) {
	var raw []domain.RawReview
	if err := c.http.JSON(ctx, http.MethodGet, "/Reviews/"+url.PathEscape(roomID.String()), nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeReviews(raw), nil
}
