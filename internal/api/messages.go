package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) SendMessage(ctx context.Context, input ContactInput) error {
	return c.http.JSON(ctx, http.MethodPost, "/Contact/send-message", nil, input, nil)
}

func (c *Client) Messages(ctx context.Context) ([]domain.ContactMessage, error) {
	var raw []domain.RawContactMessage
	if err := c.http.JSON(ctx, http.MethodGet, "/Admin/messages", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeContactMessages(raw), nil
}

func (c *Client) Message(ctx context.Context, id domain.ID) (*domain.ContactMessage, error) {
	var raw domain.RawContactMessage
	if err := c.http.JSON(ctx, http.MethodGet, "/Admin/messages/"+url.PathEscape(id.String()), nil, nil, &raw); err != nil {
		return nil, err
	}
	msg := raw.Normalize()
	return &msg, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id domain.ID) error {
	path := "/Admin/messages/" + url.PathEscape(id.String()) + "/mark-read"
	return c.http.JSON(ctx, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, id domain.ID) error {
	return c.http.JSON(ctx, http.MethodDelete, "/Admin/messages/"+url.PathEscape(id.String()), nil, nil, nil)
}
