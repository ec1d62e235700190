// Package payment wraps the card-charging side of checkout behind a small
// interface. The backend owns intent creation and confirmation bookkeeping;
// this package only collects the card and confirms the intent with the
// processor.
package payment

import (
	"context"
	"fmt"
	"strings"
)

// Card carries the details collected from the user for a single charge.
// Never persisted.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type Processor interface {
	// ConfirmCardPayment charges the card against the intent identified by
	// clientSecret. A nil return means the processor accepted the charge;
	// server-side reconciliation still has to follow.
	ConfirmCardPayment(ctx context.Context, clientSecret string, card Card) error
}

// IntentID extracts the payment intent id from a client secret of the form
// "pi_xxx_secret_yyy".
func IntentID(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
