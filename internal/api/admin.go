package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var raw []domain.RawUser
	if err := c.http.JSON(ctx, http.MethodGet, "/Admin/users", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeUsers(raw), nil
}

func (c *Client) User(ctx context.Context, id domain.ID) (*domain.User, error) {
	var raw domain.RawUser
	if err := c.http.JSON(ctx, http.MethodGet, "/Admin/users/"+url.PathEscape(id.String()), nil, nil, &raw); err != nil {
		return nil, err
	}
	user := raw.Normalize()
	return &user, nil
}

// AssignRole promotes a user. The backend expects the role capitalized.
func (c *Client) AssignRole(ctx context.Context, id domain.ID, role string) error {
	path := "/Admin/users/" + url.PathEscape(id.String()) + "/assign-role"
	body := map[string]string{"role": role}
	return c.http.JSON(ctx, http.MethodPost, path, nil, body, nil)
}

func (c *Client) RemoveRole(ctx context.Context, id domain.ID) error {
	path := "/Admin/users/" + url.PathEscape(id.String()) + "/remove-role"
	return c.http.JSON(ctx, http.MethodPost, path, nil, map[string]string{}, nil)
}

func (c *Client) AdminBookings(ctx context.Context) ([]domain.Booking, error) {
	var raw []domain.RawBooking
	if err := c.http.JSON(ctx, http.MethodGet, "/Admin/bookings", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeBookings(raw), nil
}

func (c *Client) ApproveBooking(ctx context.Context, id domain.ID) error {
	path := "/Admin/bookings/" + url.PathEscape(id.String()) + "/approve"
	return c.http.JSON(ctx, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) RejectBooking(ctx context.Context, id domain.ID) error {
	path := "/Admin/bookings/" + url.PathEscape(id.String()) + "/reject"
	return c.http.JSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) CompleteBooking(ctx context.Context, id domain.ID) error {
	path := "/Admin/bookings/" + url.PathEscape(id.String()) + "/complete"
	return c.http.JSON(ctx, http.MethodPut, path, nil, nil, nil)
}
