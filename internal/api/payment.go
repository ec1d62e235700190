package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

func (c *Client) PaymentStatus(ctx context.Context, paymentIntentID string) (*domain.PaymentStatus, error) {
	var out domain.PaymentStatus
	path := "/Payment/status/" + url.PathEscape(paymentIntentID)
	if err := c.http.JSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, bookingID domain.ID) (*domain.PaymentIntent, error) {
	body := map[string]domain.ID{"bookingId": bookingID}
	var out domain.PaymentIntent
	if err := c.http.JSON(ctx, http.MethodPost, "/Payment/create-payment-intent", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment reconciles the backend's booking status after the processor
// reported a successful charge.
func (c *Client) ConfirmPayment(ctx context.Context, bookingID domain.ID) error {
	body := map[string]domain.ID{"bookingId": bookingID}
	return c.http.JSON(ctx, http.MethodPost, "/Payment/confirm-payment", nil, body, nil)
}
