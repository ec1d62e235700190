package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/validate"
)

type MockBookingFormAPI struct {
	mock.Mock
}

func (m *MockBookingFormAPI) Room(ctx context.Context, id domain.ID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockBookingFormAPI) Services(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockBookingFormAPI) CreateBooking(ctx context.Context, input api.BookingInput) (*api.CreateBookingResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CreateBookingResponse), args.Error(1)
}

func testDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func loadedBookingForm(t *testing.T, mockAPI *MockBookingFormAPI) *BookingFormController {
	t.Helper()
	ctx := context.Background()

	room := &domain.Room{ID: "r1", Number: "101", PricePerNight: 1000,
		Services: []domain.Service{{ID: "s1"}}}
	catalog := []domain.Service{
		{ID: "s1", Name: "Breakfast", Price: 150},
		{ID: "s2", Name: "Spa", Price: 400},
	}
	mockAPI.On("Room", ctx, domain.ID("r1")).Return(room, nil).Once()
	mockAPI.On("Services", ctx).Return(catalog, nil).Once()

	ctl := NewBookingFormController(mockAPI)
	require.NoError(t, ctl.Load(ctx, "r1"))
	return ctl
}

func TestBookingFormController_QuoteAndSubmit(t *testing.T) {
	mockAPI := &MockBookingFormAPI{}
	ctl := loadedBookingForm(t, mockAPI)
	ctx := context.Background()

	// The room's attached service picks up the catalog price.
	require.Len(t, ctl.Services(), 1)
	assert.Equal(t, 150.0, ctl.Services()[0].Price)

	ctl.SetDates(testDate(2025, time.June, 1), testDate(2025, time.June, 4))
	ctl.ToggleService("s1")

	quote := ctl.Quote()
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 3150.0, quote.Total)

	mockAPI.On("CreateBooking", ctx, mock.MatchedBy(func(input api.BookingInput) bool {
		return input.RoomID == "r1" && len(input.ServiceIDs) == 1
	})).Return(&api.CreateBookingResponse{BookingID: "b1"}, nil).Once()

	resp, err := ctl.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ID("b1"), resp.BookingID)
	mockAPI.AssertExpectations(t)
}

func TestBookingFormController_BlockedSubmissionIssuesNoCall(t *testing.T) {
	mockAPI := &MockBookingFormAPI{}
	ctl := loadedBookingForm(t, mockAPI)
	ctx := context.Background()

	// Only a start date: display still quotes one night, submission is blocked.
	ctl.SetDates(testDate(2025, time.June, 1), nil)
	assert.Equal(t, 1, ctl.Quote().Nights)

	resp, err := ctl.Submit(ctx)
	assert.ErrorIs(t, err, validate.ErrDatesRequired)
	assert.Nil(t, resp)
	mockAPI.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingFormController_CheckoutMustFollowCheckIn(t *testing.T) {
	mockAPI := &MockBookingFormAPI{}
	ctl := loadedBookingForm(t, mockAPI)

	ctl.SetDates(testDate(2025, time.June, 4), testDate(2025, time.June, 1))

	_, err := ctl.Submit(context.Background())
	assert.ErrorIs(t, err, validate.ErrDatesOrder)
	mockAPI.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingFormController_ToggleService(t *testing.T) {
	ctl := loadedBookingForm(t, &MockBookingFormAPI{})

	ctl.ToggleService("s1")
	assert.Len(t, ctl.Selected(), 1)

	ctl.ToggleService("s1")
	assert.Empty(t, ctl.Selected())
}

func TestBookingFormController_ClosedDropsWrites(t *testing.T) {
	ctl := loadedBookingForm(t, &MockBookingFormAPI{})

	ctl.Close()
	ctl.SetDates(testDate(2025, time.June, 1), testDate(2025, time.June, 4))

	assert.Equal(t, 1, ctl.Quote().Nights, "dates set after close are discarded")
}
