package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/derived"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/session"
)

var ErrAdminOnly = errors.New("the dashboard requires an admin account")

type DashboardAPI interface {
	Users(ctx context.Context) ([]domain.User, error)
	AdminBookings(ctx context.Context) ([]domain.Booking, error)
	Rooms(ctx context.Context) ([]domain.Room, error)
	Services(ctx context.Context) ([]domain.Service, error)

	AssignRole(ctx context.Context, id domain.ID, role string) error
	RemoveRole(ctx context.Context, id domain.ID) error

	CreateRoom(ctx context.Context, input api.RoomInput, images []api.ImageFile) (*domain.Room, error)
	UpdateRoom(ctx context.Context, id domain.ID, input api.RoomInput, images []api.ImageFile) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id domain.ID) error

	CreateService(ctx context.Context, input api.ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id domain.ID, input api.ServiceInput) error
	DeleteService(ctx context.Context, id domain.ID) error

	ApproveBooking(ctx context.Context, id domain.ID) error
	RejectBooking(ctx context.Context, id domain.ID) error
	CompleteBooking(ctx context.Context, id domain.ID) error
	DeleteBooking(ctx context.Context, id domain.ID) error
}

// DashboardController backs the admin dashboard. Statistics are recomputed
// from full fetches on every load; nothing is maintained incrementally.
type DashboardController struct {
	guard
	api   DashboardAPI
	store session.Store
	log   *logrus.Logger
	now   func() time.Time

	users    []domain.User
	bookings []domain.Booking
	rooms    []domain.Room
	services []domain.Service
	stats    derived.DashboardStats

	userFilter   derived.UserFilter
	usersPage    int
	bookingsPage int
	roomsPage    int
	servicesPage int
}

type DashboardOption func(*DashboardController)

// WithClock overrides the time source used for activity cutoffs.
func WithClock(now func() time.Time) DashboardOption {
	return func(c *DashboardController) { c.now = now }
}

func NewDashboardController(a DashboardAPI, store session.Store, log *logrus.Logger, opts ...DashboardOption) *DashboardController {
	c := &DashboardController{
		api:          a,
		store:        store,
		log:          log,
		now:          time.Now,
		userFilter:   derived.UserFilterAll,
		usersPage:    1,
		bookingsPage: 1,
		roomsPage:    1,
		servicesPage: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load checks the viewer's role, then fetches users, bookings, rooms and
// services concurrently and joins them. A failure in any fetch fails the
// whole load with a single error.
func (c *DashboardController) Load(ctx context.Context) error {
	viewer, err := c.store.User()
	if err != nil {
		return err
	}
	if viewer == nil || !viewer.IsAdmin() {
		return ErrAdminOnly
	}

	var (
		wg       sync.WaitGroup
		users    []domain.User
		bookings []domain.Booking
		rooms    []domain.Room
		services []domain.Service
		errs     [4]error
	)

	wg.Add(4)
	go func() { defer wg.Done(); users, errs[0] = c.api.Users(ctx) }()
	go func() { defer wg.Done(); bookings, errs[1] = c.api.AdminBookings(ctx) }()
	go func() { defer wg.Done(); rooms, errs[2] = c.api.Rooms(ctx) }()
	go func() { defer wg.Done(); services, errs[3] = c.api.Services(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if !c.open() {
		return ErrClosed
	}

	c.users = derived.SortUsers(users)
	c.bookings = derived.SortBookings(bookings)
	c.rooms = rooms
	c.services = services
	c.recompute()
	return nil
}

func (c *DashboardController) recompute() {
	c.stats = derived.ComputeDashboard(c.users, c.bookings, c.rooms, c.now())
}

func (c *DashboardController) Stats() derived.DashboardStats { return c.stats }

// ReloadUsers refreshes the user list after a role mutation and resets its
// page to 1.
func (c *DashboardController) ReloadUsers(ctx context.Context) error {
	users, err := c.api.Users(ctx)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	c.users = derived.SortUsers(users)
	c.usersPage = 1
	c.recompute()
	return nil
}

func (c *DashboardController) ReloadBookings(ctx context.Context) error {
	bookings, err := c.api.AdminBookings(ctx)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	c.bookings = derived.SortBookings(bookings)
	c.bookingsPage = 1
	c.recompute()
	return nil
}

func (c *DashboardController) ReloadRooms(ctx context.Context) error {
	rooms, err := c.api.Rooms(ctx)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	c.rooms = rooms
	c.roomsPage = 1
	c.recompute()
	return nil
}

func (c *DashboardController) ReloadServices(ctx context.Context) error {
	services, err := c.api.Services(ctx)
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	c.services = services
	c.servicesPage = 1
	return nil
}

// SetUserFilter switches the three-way tab. The underlying list order is
// untouched; only the current page is re-validated against the new filtered
// length.
func (c *DashboardController) SetUserFilter(filter derived.UserFilter) {
	if !c.open() {
		return
	}
	c.userFilter = filter
	c.usersPage = derived.ValidPage(derived.FilterUsers(c.users, filter), c.usersPage)
}

func (c *DashboardController) UserFilter() derived.UserFilter { return c.userFilter }

func (c *DashboardController) SetUsersPage(page int) {
	if !c.open() {
		return
	}
	c.usersPage = derived.ValidPage(derived.FilterUsers(c.users, c.userFilter), page)
}

func (c *DashboardController) SetBookingsPage(page int) {
	if !c.open() {
		return
	}
	c.bookingsPage = derived.ValidPage(c.bookings, page)
}

func (c *DashboardController) SetRoomsPage(page int) {
	if !c.open() {
		return
	}
	c.roomsPage = derived.ValidPage(c.rooms, page)
}

func (c *DashboardController) SetServicesPage(page int) {
	if !c.open() {
		return
	}
	c.servicesPage = derived.ValidPage(c.services, page)
}

// VisibleUsers is the filtered user list sliced to the current page.
func (c *DashboardController) VisibleUsers() []domain.User {
	return derived.Paginate(derived.FilterUsers(c.users, c.userFilter), c.usersPage)
}

func (c *DashboardController) VisibleBookings() []domain.Booking {
	return derived.Paginate(c.bookings, c.bookingsPage)
}

func (c *DashboardController) VisibleRooms() []domain.Room {
	return derived.Paginate(c.rooms, c.roomsPage)
}

func (c *DashboardController) VisibleServices() []domain.Service {
	return derived.Paginate(c.services, c.servicesPage)
}

func (c *DashboardController) Users() []domain.User       { return c.users }
func (c *DashboardController) Bookings() []domain.Booking { return c.bookings }
func (c *DashboardController) Rooms() []domain.Room       { return c.rooms }
func (c *DashboardController) Services() []domain.Service { return c.services }

// PromoteUser grants the admin role and reloads the list.
func (c *DashboardController) PromoteUser(ctx context.Context, id domain.ID) error {
	if err := c.api.AssignRole(ctx, id, "Admin"); err != nil {
		return err
	}
	return c.ReloadUsers(ctx)
}

// DemoteUser removes the admin role and reloads the list.
func (c *DashboardController) DemoteUser(ctx context.Context, id domain.ID) error {
	if err := c.api.RemoveRole(ctx, id); err != nil {
		return err
	}
	return c.ReloadUsers(ctx)
}

func (c *DashboardController) CreateRoom(ctx context.Context, input api.RoomInput, images []api.ImageFile) error {
	if _, err := c.api.CreateRoom(ctx, input, images); err != nil {
		return err
	}
	return c.ReloadRooms(ctx)
}

func (c *DashboardController) UpdateRoom(ctx context.Context, id domain.ID, input api.RoomInput, images []api.ImageFile) error {
	if _, err := c.api.UpdateRoom(ctx, id, input, images); err != nil {
		return err
	}
	return c.ReloadRooms(ctx)
}

func (c *DashboardController) DeleteRoom(ctx context.Context, id domain.ID) error {
	if err := c.api.DeleteRoom(ctx, id); err != nil {
		return err
	}
	return c.ReloadRooms(ctx)
}

func (c *DashboardController) CreateService(ctx context.Context, input api.ServiceInput) error {
	if _, err := c.api.CreateService(ctx, input); err != nil {
		return err
	}
	return c.ReloadServices(ctx)
}

func (c *DashboardController) UpdateService(ctx context.Context, id domain.ID, input api.ServiceInput) error {
	if err := c.api.UpdateService(ctx, id, input); err != nil {
		return err
	}
	return c.ReloadServices(ctx)
}

func (c *DashboardController) DeleteService(ctx context.Context, id domain.ID) error {
	if err := c.api.DeleteService(ctx, id); err != nil {
		return err
	}
	return c.ReloadServices(ctx)
}

func (c *DashboardController) ApproveBooking(ctx context.Context, id domain.ID) error {
	if err := c.api.ApproveBooking(ctx, id); err != nil {
		return err
	}
	return c.ReloadBookings(ctx)
}

func (c *DashboardController) RejectBooking(ctx context.Context, id domain.ID) error {
	if err := c.api.RejectBooking(ctx, id); err != nil {
		return err
	}
	return c.ReloadBookings(ctx)
}

func (c *DashboardController) CompleteBooking(ctx context.Context, id domain.ID) error {
	if err := c.api.CompleteBooking(ctx, id); err != nil {
		return err
	}
	return c.ReloadBookings(ctx)
}

func (c *DashboardController) DeleteBooking(ctx context.Context, id domain.ID) error {
	if err := c.api.DeleteBooking(ctx, id); err != nil {
		return err
	}
	return c.ReloadBookings(ctx)
}
