package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/httpx"
)

type stubStore struct {
	token   string
	cleared bool
}

func (s *stubStore) Token() (string, error)         { return s.token, nil }
func (s *stubStore) User() (*domain.User, error)    { return nil, nil }
func (s *stubStore) Set(string, *domain.User) error { return nil }
func (s *stubStore) SetRefreshToken(string) error   { return nil }
func (s *stubStore) Clear() error                   { s.cleared = true; s.token = ""; return nil }

type stubNav struct{ navigated bool }

func (n *stubNav) OnSignIn() bool { return false }
func (n *stubNav) ToSignIn()      { n.navigated = true }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *stubStore, *stubNav, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	store := &stubStore{token: "tok"}
	nav := &stubNav{}
	client := NewClient(httpx.New(server.URL, time.Second, store, httpx.WithNavigator(nav)))
	return client, store, nav, server.Close
}

// One authenticated call per resource group: a 401 from any of them must
// clear the session and force navigation to sign-in.
func TestClient_UnauthorizedInterceptedAcrossResources(t *testing.T) {
	calls := map[string]func(ctx context.Context, c *Client) error{
		"Auth": func(ctx context.Context, c *Client) error {
			_, err := c.Me(ctx)
			return err
		},
		"Rooms": func(ctx context.Context, c *Client) error {
			_, err := c.Rooms(ctx)
			return err
		},
		"Reviews": func(ctx context.Context, c *Client) error {
			_, err := c.Reviews(ctx, "r1")
			return err
		},
		"Bookings": func(ctx context.Context, c *Client) error {
			_, err := c.MyBookings(ctx)
			return err
		},
		"Payment": func(ctx context.Context, c *Client) error {
			_, err := c.CreatePaymentIntent(ctx, "b1")
			return err
		},
		"Messages": func(ctx context.Context, c *Client) error {
			_, err := c.Messages(ctx)
			return err
		},
		"AdminUsers": func(ctx context.Context, c *Client) error {
			_, err := c.Users(ctx)
			return err
		},
		"AdminBookings": func(ctx context.Context, c *Client) error {
			_, err := c.AdminBookings(ctx)
			return err
		},
		"Services": func(ctx context.Context, c *Client) error {
			_, err := c.Services(ctx)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			client, store, nav, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			defer done()

			err := call(context.Background(), client)

			assert.ErrorIs(t, err, httpx.ErrUnauthorized)
			assert.True(t, store.cleared)
			assert.True(t, nav.navigated)
		})
	}
}

func TestClient_RoomsNormalization(t *testing.T) {
	client, _, _, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Rooms", r.URL.Path)
		// Numeric id, alternative price spelling, single cover image.
		w.Write([]byte(`[
			{"id": 7, "number": "101", "type": "suite", "pricePerNight": "1200.50", "imageUrl": "a.jpg"},
			{"roomId": "r2", "number": "102", "type": "double", "price": 800, "galleryImages": ["b.jpg","c.jpg"]}
		]`))
	})
	defer done()

	rooms, err := client.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, domain.ID("7"), rooms[0].ID)
	assert.Equal(t, 1200.50, rooms[0].PricePerNight)
	assert.Equal(t, []string{"a.jpg"}, rooms[0].Images)

	assert.Equal(t, 800.0, rooms[1].PricePerNight)
	assert.Equal(t, []string{"b.jpg", "c.jpg"}, rooms[1].Images)
}

func TestClient_MyBookingsNormalization(t *testing.T) {
	client, _, _, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"bookingId": 3, "roomId": 7, "startDate": "2025-06-01T00:00:00Z",
			 "endDate": "2025-06-04T00:00:00Z", "isApproved": true, "totalAmount": "3150"},
			{"id": "b9", "room": {"id": "r2", "number": "102"}, "status": "Cancelled"}
		]`))
	})
	defer done()

	bookings, err := client.MyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, domain.ID("3"), bookings[0].ID)
	assert.Equal(t, domain.BookingStatusApproved, bookings[0].Status)
	assert.Equal(t, 3150.0, bookings[0].TotalAmount)

	assert.Equal(t, domain.BookingStatusCancelled, bookings[1].Status)
	assert.Equal(t, "102", bookings[1].RoomNumber, "room number resolved from the nested room")
	assert.Equal(t, domain.ID("r2"), bookings[1].RoomID)
}

func TestClient_CreateBookingPayload(t *testing.T) {
	var gotBody string
	client, _, _, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"bookingId": "b1", "paymentIntentId": "pi_1"}`))
	})
	defer done()

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)

	resp, err := client.CreateBooking(context.Background(), BookingInput{
		RoomID:    "r1",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ID("b1"), resp.BookingID)
	assert.Contains(t, gotBody, `"startDate":"2025-06-01T00:00:00Z"`)
	// Omitted services still serialize as an empty array, not null.
	assert.Contains(t, gotBody, `"serviceIds":[]`)
}

func TestClient_MeNormalizesUser(t *testing.T) {
	client, _, _, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id": "u1", "name": "Ann", "email": "ann@example.com", "role": "Admin"}`))
	})
	defer done()

	user, err := client.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ID("u1"), user.ID)
	assert.Equal(t, "Ann", user.FullName)
	assert.True(t, user.IsAdmin())
}
