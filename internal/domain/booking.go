package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusRefunded  BookingStatus = "refunded"
)

func NormalizeBookingStatus(raw string) BookingStatus {
	return BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
}

// IsFinal reports whether no further admin transition applies.
func (s BookingStatus) IsFinal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted, BookingStatusRefunded:
		return true
	}
	return false
}

type Booking struct {
	ID              ID
	RoomID          ID
	UserID          ID
	RoomNumber      string
	Room            *Room
	User            *User
	StartDate       *time.Time
	EndDate         *time.Time
	Status          BookingStatus
	ServiceIDs      []ID
	TotalAmount     float64
	PaymentIntentID string
}

// Active reports whether the stay still blocks the room: the end date is
// today or later and the booking was not cancelled or rejected.
func (b Booking) Active(now time.Time) bool {
	if b.EndDate == nil {
		return false
	}
	if b.EndDate.Before(now) {
		return false
	}
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusRejected
}

// OwnerKey resolves the booking owner's identity for counting distinct
// guests. Empty when the backend gave no resolvable owner id.
func (b Booking) OwnerKey() string {
	if b.User != nil && !b.User.ID.IsZero() {
		return b.User.ID.Key()
	}
	return b.UserID.Key()
}

type RawBooking struct {
	ID              ID       `json:"id"`
	BookingID       ID       `json:"bookingId"`
	RoomID          ID       `json:"roomId"`
	UserID          ID       `json:"userId"`
	Number          string   `json:"number"`
	RoomNumber      string   `json:"roomNumber"`
	Room            *RawRoom `json:"room"`
	User            *RawUser `json:"user"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Status          string   `json:"status"`
	IsApproved      bool     `json:"isApproved"`
	ServiceIDs      []ID     `json:"serviceIds"`
	TotalAmount     Amount   `json:"totalAmount"`
	PaymentIntentID string   `json:"paymentIntentId"`
}

func (r RawBooking) Normalize() Booking {
	b := Booking{
		ID:              firstID(r.ID, r.BookingID),
		RoomID:          r.RoomID,
		UserID:          r.UserID,
		StartDate:       parseTime(r.StartDate),
		EndDate:         parseTime(r.EndDate),
		ServiceIDs:      r.ServiceIDs,
		TotalAmount:     float64(r.TotalAmount),
		PaymentIntentID: r.PaymentIntentID,
	}
	if r.Room != nil {
		room := r.Room.Normalize()
		b.Room = &room
		if b.RoomID.IsZero() {
			b.RoomID = room.ID
		}
	}
	if r.User != nil {
		user := r.User.Normalize()
		b.User = &user
		if b.UserID.IsZero() {
			b.UserID = user.ID
		}
	}
	b.RoomNumber = firstNonEmpty(r.Number, r.RoomNumber)
	if b.RoomNumber == "" && b.Room != nil {
		b.RoomNumber = b.Room.Number
	}
	switch {
	case r.Status != "":
		b.Status = NormalizeBookingStatus(r.Status)
	case r.IsApproved:
		b.Status = BookingStatusApproved
	default:
		b.Status = BookingStatusPending
	}
	return b
}

func NormalizeBookings(raw []RawBooking) []Booking {
	bookings := make([]Booking, 0, len(raw))
	for _, r := range raw {
		bookings = append(bookings, r.Normalize())
	}
	return bookings
}
