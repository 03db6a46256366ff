package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mock is the default provider for local development. It never touches the
// network and always succeeds.
type Mock struct{}

// CreateIntent synthesises an intent for the booking.
func (Mock) CreateIntent(_ context.Context, req IntentRequest) (IntentResponse, error) {
	if strings.TrimSpace(req.BookingRef) == "" {
		return IntentResponse{}, errors.New("booking ref is required")
	}
	intentID := "mock_" + sanitizeRef(req.BookingRef)
	return IntentResponse{
		Provider:     "mock",
		IntentID:     intentID,
		ClientSecret: intentID + "_secret",
		RedirectURL:  fmt.Sprintf("https://payments.invalid/pay/%s", intentID),
		ExpiresAt:    time.Now().Add(time.Duration(req.ExpiresAtSec) * time.Second).Unix(),
	}, nil
}
