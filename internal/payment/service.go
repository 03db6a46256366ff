package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harbourline/backend-rentals/internal/obs"
)

// Intent is the service-level view of a created payment intent.
type Intent struct {
	Provider     string    `json:"provider"`
	IntentID     string    `json:"intentId"`
	ClientSecret string    `json:"clientSecret,omitempty"`
	RedirectURL  string    `json:"redirectUrl,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	BookingRef   string    `json:"bookingRef"`
	AmountCents  int64     `json:"amountCents"`
	Currency     string    `json:"currency"`
}

// Service coordinates payment intent creation. The charge amount always
// comes from the pricing engine upstream; this service never accepts a
// client-supplied figure.
type Service struct {
	Provider        Provider
	IntentTTL       time.Duration
	CallbackBaseURL string
	Currency        string
}

// CreateIntent opens an intent for the booking at the given engine-computed total.
func (s *Service) CreateIntent(ctx context.Context, bookingRef string, amountCents int64) (Intent, error) {
	if s == nil || s.Provider == nil {
		return Intent{}, errors.New("payment service not configured")
	}
	ctx, span := otel.Tracer("payment.Service").Start(ctx, "PaymentService.CreateIntent")
	defer span.End()

	start := time.Now()
	providerName := "unknown"
	result := "error"
	defer func() {
		span.SetAttributes(
			attribute.String("payment.provider", providerName),
			attribute.Float64("payment.intent.duration_ms", obs.DurationMillis(time.Since(start))),
			attribute.String("payment.intent.result", result),
		)
		if obs.PaymentIntentTotal != nil {
			obs.PaymentIntentTotal.WithLabelValues(providerName, result).Inc()
		}
	}()

	bookingRef = strings.TrimSpace(bookingRef)
	if bookingRef == "" {
		return Intent{}, errors.New("booking ref is required")
	}
	if amountCents <= 0 {
		return Intent{}, errors.New("amount must be positive")
	}
	span.SetAttributes(attribute.String("booking.ref", bookingRef))

	ttl := s.IntentTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	currency := s.Currency
	if currency == "" {
		currency = "CAD"
	}

	resp, err := s.Provider.CreateIntent(ctx, IntentRequest{
		BookingRef:      bookingRef,
		AmountCents:     amountCents,
		Currency:        currency,
		ExpiresAtSec:    int(ttl.Seconds()),
		CallbackBaseURL: s.CallbackBaseURL,
	})
	if err != nil {
		span.RecordError(err)
		return Intent{}, err
	}
	if resp.Provider != "" {
		providerName = normaliseLabel(resp.Provider)
	}
	result = "success"

	expiresAt := time.Unix(resp.ExpiresAt, 0)
	if resp.ExpiresAt <= 0 {
		expiresAt = time.Now().Add(ttl)
	}
	return Intent{
		Provider:     providerName,
		IntentID:     resp.IntentID,
		ClientSecret: resp.ClientSecret,
		RedirectURL:  resp.RedirectURL,
		ExpiresAt:    expiresAt,
		BookingRef:   bookingRef,
		AmountCents:  amountCents,
		Currency:     currency,
	}, nil
}

func normaliseLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
