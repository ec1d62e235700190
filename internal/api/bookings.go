package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

type BookingInput struct {
	RoomID     domain.ID
	StartDate  time.Time
	EndDate    time.Time
	ServiceIDs []domain.ID
}

type createBookingRequest struct {
	RoomID     domain.ID   `json:"roomId"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	ServiceIDs []domain.ID `json:"serviceIds"`
}

// CreateBookingResponse carries the ids needed to continue into checkout.
type CreateBookingResponse struct {
	BookingID       domain.ID `json:"bookingId"`
	PaymentIntentID string    `json:"paymentIntentId"`
}

func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*CreateBookingResponse, error) {
	req := createBookingRequest{
		RoomID:     input.RoomID,
		StartDate:  input.StartDate.UTC().Format(time.RFC3339),
		EndDate:    input.EndDate.UTC().Format(time.RFC3339),
		ServiceIDs: input.ServiceIDs,
	}
	if req.ServiceIDs == nil {
		req.ServiceIDs = []domain.ID{}
	}

	var out CreateBookingResponse
	if err := c.http.JSON(ctx, http.MethodPost, "/Bookings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var raw []domain.RawBooking
	if err := c.http.JSON(ctx, http.MethodGet, "/Bookings/my-bookings", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeBookings(raw), nil
}

func (c *Client) Booking(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	var raw domain.RawBooking
	if err := c.http.JSON(ctx, http.MethodGet, "/Bookings/"+url.PathEscape(id.String()), nil, nil, &raw); err != nil {
		return nil, err
	}
	booking := raw.Normalize()
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, id domain.ID) error {
	path := "/Bookings/" + url.PathEscape(id.String()) + "/cancel"
	return c.http.JSON(ctx, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, id domain.ID) error {
	return c.http.JSON(ctx, http.MethodDelete, "/Bookings/"+url.PathEscape(id.String()), nil, nil, nil)
}
