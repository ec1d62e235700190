package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/payment"
)

type MockPaymentAPI struct {
	mock.Mock
}

func (m *MockPaymentAPI) Booking(ctx context.Context, id domain.ID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockPaymentAPI) CreatePaymentIntent(ctx context.Context, bookingID domain.ID) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}

func (m *MockPaymentAPI) ConfirmPayment(ctx context.Context, bookingID domain.ID) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) ConfirmCardPayment(ctx context.Context, clientSecret string, card payment.Card) error {
	args := m.Called(ctx, clientSecret, card)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

var testCard = payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

func TestFlow_HappyPath(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	mockProc := &MockProcessor{}
	flow := NewFlow(mockAPI, mockProc, testLogger())

	ctx := context.Background()
	booking := &domain.Booking{ID: "b1", TotalAmount: 3150}
	intent := &domain.PaymentIntent{ClientSecret: "pi_1_secret_abc", BookingID: "b1"}

	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(booking, nil).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(intent, nil).Once()
	mockProc.On("ConfirmCardPayment", ctx, "pi_1_secret_abc", testCard).Return(nil).Once()
	mockAPI.On("ConfirmPayment", ctx, domain.ID("b1")).Return(nil).Once()

	assert.NoError(t, flow.Load(ctx, "b1"))
	assert.Equal(t, StateReady, flow.State())
	assert.Equal(t, booking, flow.Booking())

	assert.NoError(t, flow.Submit(ctx, testCard))
	assert.Equal(t, StateSucceeded, flow.State())

	mockAPI.AssertExpectations(t)
	mockProc.AssertExpectations(t)
}

func TestFlow_BookingFetchFailureDegrades(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	flow := NewFlow(mockAPI, &MockProcessor{}, testLogger())

	ctx := context.Background()
	intent := &domain.PaymentIntent{ClientSecret: "pi_1_secret_abc"}

	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(nil, errors.New("boom")).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(intent, nil).Once()

	assert.NoError(t, flow.Load(ctx, "b1"))
	assert.Equal(t, StateReady, flow.State())
	assert.Nil(t, flow.Booking())
}

func TestFlow_MissingIntentSecretIsFatal(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	flow := NewFlow(mockAPI, &MockProcessor{}, testLogger())

	ctx := context.Background()
	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(&domain.Booking{ID: "b1"}, nil).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(&domain.PaymentIntent{}, nil).Once()

	assert.Error(t, flow.Load(ctx, "b1"))
	assert.Equal(t, StateError, flow.State())
}

func TestFlow_IntentCreationFailureIsFatal(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	flow := NewFlow(mockAPI, &MockProcessor{}, testLogger())

	ctx := context.Background()
	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(&domain.Booking{ID: "b1"}, nil).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(nil, errors.New("server down")).Once()

	assert.Error(t, flow.Load(ctx, "b1"))
	assert.Equal(t, StateError, flow.State())
}

func TestFlow_ChargeFailure(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	mockProc := &MockProcessor{}
	flow := NewFlow(mockAPI, mockProc, testLogger())

	ctx := context.Background()
	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(&domain.Booking{ID: "b1"}, nil).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(&domain.PaymentIntent{ClientSecret: "pi_1_secret_abc"}, nil).Once()
	mockProc.On("ConfirmCardPayment", ctx, "pi_1_secret_abc", testCard).Return(payment.ErrChargeDeclined).Once()

	assert.NoError(t, flow.Load(ctx, "b1"))

	err := flow.Submit(ctx, testCard)
	assert.ErrorIs(t, err, payment.ErrChargeDeclined)
	assert.NotErrorIs(t, err, ErrConfirmFailed)
	assert.Equal(t, StateError, flow.State())

	// The backend is never told a charge happened.
	mockAPI.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
}

func TestFlow_ConfirmFailureIsDistinctFromChargeFailure(t *testing.T) {
	mockAPI := &MockPaymentAPI{}
	mockProc := &MockProcessor{}
	flow := NewFlow(mockAPI, mockProc, testLogger())

	ctx := context.Background()
	mockAPI.On("Booking", ctx, domain.ID("b1")).Return(&domain.Booking{ID: "b1"}, nil).Once()
	mockAPI.On("CreatePaymentIntent", ctx, domain.ID("b1")).Return(&domain.PaymentIntent{ClientSecret: "pi_1_secret_abc"}, nil).Once()
	mockProc.On("ConfirmCardPayment", ctx, "pi_1_secret_abc", testCard).Return(nil).Once()
	mockAPI.On("ConfirmPayment", ctx, domain.ID("b1")).Return(errors.New("reconcile failed")).Once()

	assert.NoError(t, flow.Load(ctx, "b1"))

	err := flow.Submit(ctx, testCard)
	assert.ErrorIs(t, err, ErrConfirmFailed)
	assert.Equal(t, StateError, flow.State())
	assert.NotEqual(t, StateSucceeded, flow.State())
}

func TestFlow_SubmitBeforeLoad(t *testing.T) {
	flow := NewFlow(&MockPaymentAPI{}, &MockProcessor{}, testLogger())

	assert.ErrorIs(t, flow.Submit(context.Background(), testCard), ErrNotReady)
}
