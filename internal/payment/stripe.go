package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const stripeAPIBase = "https://api.stripe.com/v1"

var ErrChargeDeclined = errors.New("card charge declined")

// Stripe confirms payment intents directly against the Stripe REST API using
// the publishable key, the same way the hosted card-collection widget does.
type Stripe struct {
	key    string
	base   string
	client *http.Client
	log    *logrus.Logger
}

var _ Processor = (*Stripe)(nil)

func NewStripe(publishableKey string, log *logrus.Logger) *Stripe {
	return &Stripe{
		key:    publishableKey,
		base:   stripeAPIBase,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// NewStripeWithBase is used by tests to point the processor at a local server.
func NewStripeWithBase(publishableKey, base string, log *logrus.Logger) *Stripe {
	s := NewStripe(publishableKey, log)
	s.base = base
	return s
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (s *Stripe) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card) error {
	intentID, err := IntentID(clientSecret)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)

	endpoint := fmt.Sprintf("%s/payment_intents/%s/confirm", s.base, url.PathEscape(intentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.key, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("payment processor unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var se stripeError
		if json.Unmarshal(body, &se) == nil && se.Error.Message != "" {
			s.log.WithFields(logrus.Fields{"intent": intentID, "code": se.Error.Code}).Warn("charge declined")
			return fmt.Errorf("%w: %s", ErrChargeDeclined, se.Error.Message)
		}
		return fmt.Errorf("%w: processor returned status %d", ErrChargeDeclined, resp.StatusCode)
	}

	var intent struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &intent); err != nil {
		return fmt.Errorf("decode processor response: %w", err)
	}
	switch intent.Status {
	case "succeeded", "processing", "requires_capture":
		return nil
	default:
		return fmt.Errorf("%w: intent status %q", ErrChargeDeclined, intent.Status)
	}
}
