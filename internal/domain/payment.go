package domain

// PaymentIntent is the ephemeral handle the backend returns for checkout.
// It is handed to the payment processor and never persisted.
type PaymentIntent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	BookingID       ID     `json:"bookingId"`
}

type PaymentStatus struct {
	Status string `json:"status"`
}
