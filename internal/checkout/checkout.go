// Package checkout drives the payment page: load the booking and a payment
// intent, collect a card through the processor, then reconcile the booking
// status with the backend.
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/payment"
)

type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateError      State = "error"
)

var (
	ErrNotReady = errors.New("checkout is not ready for submission")

	// ErrConfirmFailed means the card was charged but the backend could not
	// be told about it. Deliberately distinct from a charge failure so the
	// user is never asked to pay again.
	ErrConfirmFailed = errors.New("payment succeeded but booking confirmation failed; do not retry the charge")
)

type PaymentAPI interface {
	Booking(ctx context.Context, id domain.ID) (*domain.Booking, error)
	CreatePaymentIntent(ctx context.Context, bookingID domain.ID) (*domain.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, bookingID domain.ID) error
}

// Flow is the checkout state machine for a single booking. Not safe for
// concurrent use; a page drives it sequentially.
type Flow struct {
	api       PaymentAPI
	processor payment.Processor
	log       *logrus.Logger

	state     State
	bookingID domain.ID
	booking   *domain.Booking
	secret    string
	err       error
}

func NewFlow(api PaymentAPI, processor payment.Processor, log *logrus.Logger) *Flow {
	return &Flow{api: api, processor: processor, log: log, state: StateIdle}
}

func (f *Flow) State() State { return f.state }

// Booking returns the fetched booking detail, which may be nil even in the
// ready state when the detail fetch failed and the flow degraded.
func (f *Flow) Booking() *domain.Booking { return f.booking }

func (f *Flow) Err() error { return f.err }

// Load fetches the booking detail and creates a payment intent concurrently.
// A failed booking fetch only degrades the display; a missing intent secret
// is fatal for the attempt.
func (f *Flow) Load(ctx context.Context, bookingID domain.ID) error {
	f.state = StateLoading
	f.bookingID = bookingID

	var (
		wg         sync.WaitGroup
		booking    *domain.Booking
		bookingErr error
		intent     *domain.PaymentIntent
		intentErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		booking, bookingErr = f.api.Booking(ctx, bookingID)
	}()
	go func() {
		defer wg.Done()
		intent, intentErr = f.api.CreatePaymentIntent(ctx, bookingID)
	}()
	wg.Wait()

	if bookingErr != nil {
		f.log.WithField("booking", bookingID).WithError(bookingErr).Warn("booking detail unavailable, continuing")
	} else {
		f.booking = booking
	}

	if intentErr != nil {
		return f.fail(intentErr)
	}
	if intent == nil || intent.ClientSecret == "" {
		return f.fail(errors.New("payment intent has no client secret"))
	}

	f.secret = intent.ClientSecret
	f.state = StateReady
	return nil
}

// Submit charges the card and then confirms the payment server-side. Only
// after both steps succeed does the flow reach the succeeded state.
func (f *Flow) Submit(ctx context.Context, card payment.Card) error {
	if f.state != StateReady {
		return ErrNotReady
	}
	f.state = StateSubmitting

	if err := f.processor.ConfirmCardPayment(ctx, f.secret, card); err != nil {
		return f.fail(err)
	}

	if err := f.api.ConfirmPayment(ctx, f.bookingID); err != nil {
		f.log.WithField("booking", f.bookingID).WithError(err).Error("charge captured but confirmation failed")
		return f.fail(ErrConfirmFailed)
	}

	f.state = StateSucceeded
	return nil
}

func (f *Flow) fail(err error) error {
	f.state = StateError
	f.err = err
	return err
}
