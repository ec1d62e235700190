package controller

import (
	"context"
	"time"

	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/derived"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/validate"
)

type BookingFormAPI interface {
	Room(ctx context.Context, id domain.ID) (*domain.Room, error)
	Services(ctx context.Context) ([]domain.Service, error)
	CreateBooking(ctx context.Context, input api.BookingInput) (*api.CreateBookingResponse, error)
}

// BookingFormController backs the booking page for one room: date selection,
// optional services, a live price quote, and submission.
type BookingFormController struct {
	guard
	api BookingFormAPI

	room     *domain.Room
	services []domain.Service
	start    *time.Time
	end      *time.Time
	selected []domain.ID
}

func NewBookingFormController(a BookingFormAPI) *BookingFormController {
	return &BookingFormController{api: a}
}

// Load fetches the room and resolves its attachable services against the full
// catalog, keeping catalog prices authoritative over whatever the room embeds.
func (c *BookingFormController) Load(ctx context.Context, roomID domain.ID) error {
	room, err := c.api.Room(ctx, roomID)
	if err != nil {
		return err
	}
	catalog, err := c.api.Services(ctx)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}

	c.room = room
	c.services = resolveServices(room.Services, catalog)
	return nil
}

// resolveServices maps the room's attached services onto the catalog entries
// with the same id; services missing from the catalog are kept as-is.
func resolveServices(attached, catalog []domain.Service) []domain.Service {
	byID := make(map[string]domain.Service, len(catalog))
	for _, s := range catalog {
		byID[s.ID.Key()] = s
	}
	out := make([]domain.Service, 0, len(attached))
	for _, s := range attached {
		if full, ok := byID[s.ID.Key()]; ok {
			out = append(out, full)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func (c *BookingFormController) Room() *domain.Room         { return c.room }
func (c *BookingFormController) Services() []domain.Service { return c.services }
func (c *BookingFormController) Selected() []domain.ID      { return c.selected }

func (c *BookingFormController) SetDates(start, end *time.Time) {
	if !c.open() {
		return
	}
	c.start, c.end = start, end
}

func (c *BookingFormController) ToggleService(id domain.ID) {
	if !c.open() {
		return
	}
	for i, sel := range c.selected {
		if sel.Key() == id.Key() {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return
		}
	}
	c.selected = append(c.selected, id)
}

// Quote returns the current display total. With dates missing it still quotes
// a single night; submission stays blocked until both dates are valid.
func (c *BookingFormController) Quote() derived.Quote {
	var rate float64
	if c.room != nil {
		rate = c.room.PricePerNight
	}
	return derived.PriceQuote(rate, c.start, c.end, c.services, c.selected)
}

// Submit validates the dates and creates the booking. Validation failure
// returns before any network call is made.
func (c *BookingFormController) Submit(ctx context.Context) (*api.CreateBookingResponse, error) {
	if err := validate.BookingDates(c.start, c.end); err != nil {
		return nil, err
	}
	resp, err := c.api.CreateBooking(ctx, api.BookingInput{
		RoomID:     c.room.ID,
		StartDate:  *c.start,
		EndDate:    *c.end,
		ServiceIDs: c.selected,
	})
	if err != nil {
		return nil, err
	}
	if !c.open() {
		return nil, ErrClosed
	}
	return resp, nil
}
