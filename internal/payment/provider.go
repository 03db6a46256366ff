package payment

import "context"

// IntentRequest captures the information required to open a payment intent with a provider.
type IntentRequest struct {
	BookingRef      string
	AmountCents     int64
	Currency        string
	ExpiresAtSec    int
	CallbackBaseURL string
}

// IntentResponse represents the minimal information returned by a provider when creating an intent.
type IntentResponse struct {
	Provider     string
	IntentID     string
	ClientSecret string
	RedirectURL  string
	ExpiresAt    int64
}

// Provider abstracts the operations required from an upstream payment provider.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error)
}
