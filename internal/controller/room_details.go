package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/derived"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/session"
	"github.com/moharam-dev/hotelbook/internal/validate"
)

type RoomDetailsAPI interface {
	Room(ctx context.Context, id domain.ID) (*domain.Room, error)
	Reviews(ctx context.Context, roomID domain.ID) ([]domain.Review, error)
	AddReview(ctx context.Context, input api.ReviewInput) error
}

// RoomDetailsController backs the room page: gallery, rating summary, and
// review submission with an optimistic local insert.
type RoomDetailsController struct {
	guard
	api   RoomDetailsAPI
	store session.Store

	roomID  domain.ID
	room    *domain.Room
	reviews []domain.Review
	pending []domain.Review
}

func NewRoomDetailsController(a RoomDetailsAPI, store session.Store) *RoomDetailsController {
	return &RoomDetailsController{api: a, store: store}
}

func (c *RoomDetailsController) Load(ctx context.Context, roomID domain.ID) error {
	room, err := c.api.Room(ctx, roomID)
	if err != nil {
		return err
	}
	reviews, err := c.api.Reviews(ctx, roomID)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}

	c.roomID = roomID
	c.room = room
	c.reviews = reviews
	return nil
}

func (c *RoomDetailsController) Room() *domain.Room { return c.room }

// Reviews returns the authoritative list with any still-unconfirmed local
// submissions merged in ahead of it.
func (c *RoomDetailsController) Reviews() []domain.Review {
	return derived.MergeReviews(c.reviews, c.pending)
}

func (c *RoomDetailsController) Rating() (average float64, count int) {
	return derived.DisplayRating(c.room, c.Reviews())
}

// SubmitReview validates, posts the review, and inserts a pending copy into
// local state so the page shows it before the next fetch confirms it.
func (c *RoomDetailsController) SubmitReview(ctx context.Context, rating float64, comment string) error {
	if err := validate.Review(rating, comment); err != nil {
		return err
	}

	err := c.api.AddReview(ctx, api.ReviewInput{RoomID: c.roomID, Rating: int(rating), Comment: comment})
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}

	name := "Guest"
	if user, uerr := c.store.User(); uerr == nil && user != nil && user.FullName != "" {
		name = user.FullName
	}
	c.pending = append(c.pending, domain.Review{
		ID:       domain.ID(uuid.NewString()),
		RoomID:   c.roomID,
		UserName: name,
		Rating:   rating,
		Comment:  comment,
		Pending:  true,
	})
	return nil
}

// ReloadReviews refreshes the authoritative list. Pending entries the server
// now echoes back are dropped by the merge.
func (c *RoomDetailsController) ReloadReviews(ctx context.Context) error {
	reviews, err := c.api.Reviews(ctx, c.roomID)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	c.reviews = reviews
	c.pending = derived.UnconfirmedPending(reviews, c.pending)
	return nil
}
