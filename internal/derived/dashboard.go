package derived

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

// NextVacancy names the room freeing up soonest among the active bookings.
type NextVacancy struct {
	RoomNumber string
	Date       time.Time
}

type DashboardStats struct {
	Accounts       int
	TotalBookings  int
	ActiveBookings int

	// UsersWithBookings counts distinct booking owners. A booking whose
	// owner cannot be resolved contributes a synthetic key, so ambiguous
	// data over-counts rather than collapsing unknown guests into one.
	UsersWithBookings int

	RoomsBookedNow int
	RoomsFreeNow   int
	NextVacancy    *NextVacancy
}

// ComputeDashboard derives the admin statistics from fresh snapshots of the
// three collections. It is recomputed on every load, never maintained
// incrementally.
func ComputeDashboard(users []domain.User, bookings []domain.Booking, rooms []domain.Room, now time.Time) DashboardStats {
	stats := DashboardStats{
		Accounts:      len(users),
		TotalBookings: len(bookings),
	}

	owners := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		key := b.OwnerKey()
		if key == "" {
			key = "booking:" + uuid.NewString()
		}
		owners[key] = true
	}
	stats.UsersWithBookings = len(owners)

	activeRooms := make(map[string]bool)
	var next *NextVacancy
	for _, b := range bookings {
		if !b.Active(now) {
			continue
		}
		stats.ActiveBookings++
		if !b.RoomID.IsZero() {
			activeRooms[b.RoomID.Key()] = true
		}
		// Earliest end wins; ties keep the first booking in list order.
		if b.EndDate != nil && (next == nil || b.EndDate.Before(next.Date)) {
			number := b.RoomNumber
			if number == "" {
				number = "Unknown"
			}
			next = &NextVacancy{RoomNumber: number, Date: *b.EndDate}
		}
	}

	stats.RoomsBookedNow = len(activeRooms)
	stats.RoomsFreeNow = len(rooms) - stats.RoomsBookedNow
	if stats.RoomsFreeNow < 0 {
		stats.RoomsFreeNow = 0
	}
	stats.NextVacancy = next
	return stats
}

// SortBookings orders a snapshot ascending by start date. Bookings without a
// start date go last, matching the user list's unknown-date policy.
func SortBookings(bookings []domain.Booking) []domain.Booking {
	sorted := make([]domain.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].StartDate, sorted[j].StartDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return sorted
}

// SortUsers orders a snapshot ascending by account creation date, unknown
// dates last.
func SortUsers(users []domain.User) []domain.User {
	sorted := make([]domain.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return sorted
}
