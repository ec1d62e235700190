package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

type ServiceInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	var raw []domain.RawService
	if err := c.http.JSON(ctx, http.MethodGet, "/Services", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeServices(raw), nil
}

func (c *Client) CreateService(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	var raw domain.RawService
	if err := c.http.JSON(ctx, http.MethodPost, "/Services", nil, input, &raw); err != nil {
		return nil, err
	}
	svc := raw.Normalize()
	return &svc, nil
}

func (c *Client) UpdateService(ctx context.Context, id domain.ID, input ServiceInput) error {
	return c.http.JSON(ctx, http.MethodPut, "/Services/"+url.PathEscape(id.String()), nil, input, nil)
}

func (c *Client) DeleteService(ctx context.Context, id domain.ID) error {
	return c.http.JSON(ctx, http.MethodDelete, "/Services/"+url.PathEscape(id.String()), nil, nil, nil)
}
