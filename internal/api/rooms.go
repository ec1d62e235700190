package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/httpx"
)

func (c *Client) Rooms(ctx context.Context) ([]domain.Room, error) {
	var raw []domain.RawRoom
	if err := c.http.JSON(ctx, http.MethodGet, "/Rooms", nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeRooms(raw), nil
}

func (c *Client) Room(ctx context.Context, id domain.ID) (*domain.Room, error) {
	var raw domain.RawRoom
	if err := c.http.JSON(ctx, http.MethodGet, "/Rooms/"+url.PathEscape(id.String()), nil, nil, &raw); err != nil {
		return nil, err
	}
	room := raw.Normalize()
	return &room, nil
}

type RoomSearch struct {
	Type     string
	MinPrice float64
	MaxPrice float64
	CheckIn  *time.Time
	CheckOut *time.Time
}

func (s RoomSearch) values() url.Values {
	q := url.Values{}
	if s.Type != "" {
		q.Set("type", s.Type)
	}
	if s.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(s.MinPrice, 'f', -1, 64))
	}
	if s.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(s.MaxPrice, 'f', -1, 64))
	}
	if s.CheckIn != nil {
		q.Set("checkIn", s.CheckIn.UTC().Format(time.RFC3339))
	}
	if s.CheckOut != nil {
		q.Set("checkOut", s.CheckOut.UTC().Format(time.RFC3339))
	}
	return q
}

func (c *Client) SearchRooms(ctx context.Context, search RoomSearch) ([]domain.Room, error) {
	var raw []domain.RawRoom
	if err := c.http.JSON(ctx, http.MethodGet, "/Rooms/search", search.values(), nil, &raw); err != nil {
		return nil, err
	}
	return domain.NormalizeRooms(raw), nil
}

// BookedRange is a date interval during which a room is unavailable.
type BookedRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (c *Client) BookedDates(ctx context.Context, roomID domain.ID) ([]BookedRange, error) {
	var out []BookedRange
	path := "/Rooms/" + url.PathEscape(roomID.String()) + "/booked-dates"
	if err := c.http.JSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RoomInput is the admin-side create/update payload. Images replace the
// room's existing image set entirely when present.
type RoomInput struct {
	Number        string
	Type          string
	PricePerNight float64
	Description   string
	ServiceIDs    []domain.ID
}

type ImageFile struct {
	Name   string
	Reader io.Reader
}

func roomForm(input RoomInput, images []ImageFile) *httpx.Form {
	form := (&httpx.Form{}).
		AddField("Number", input.Number).
		AddField("Type", input.Type).
		AddField("PricePerNight", fmt.Sprintf("%g", input.PricePerNight)).
		AddField("Description", input.Description)
	for _, id := range input.ServiceIDs {
		form.AddField("ServiceIds", id.String())
	}
	for _, img := range images {
		form.AddFile("Images", img.Name, img.Reader)
	}
	return form
}

func (c *Client) CreateRoom(ctx context.Context, input RoomInput, images []ImageFile) (*domain.Room, error) {
	var raw domain.RawRoom
	if err := c.http.Multipart(ctx, http.MethodPost, "/Rooms", roomForm(input, images), &raw); err != nil {
		return nil, err
	}
	room := raw.Normalize()
	return &room, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id domain.ID, input RoomInput, images []ImageFile) (*domain.Room, error) {
	var raw domain.RawRoom
	path := "/Rooms/" + url.PathEscape(id.String())
	if err := c.http.Multipart(ctx, http.MethodPut, path, roomForm(input, images), &raw); err != nil {
		return nil, err
	}
	room := raw.Normalize()
	return &room, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id domain.ID) error {
	return c.http.JSON(ctx, http.MethodDelete, "/Rooms/"+url.PathEscape(id.String()), nil, nil, nil)
}
