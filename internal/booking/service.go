package booking

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/harbourline/backend-rentals/internal/obs"
	"github.com/harbourline/backend-rentals/internal/pricing"
)

// Service wraps the pricing engine with telemetry and audit logging. The
// engine itself stays pure; everything observable happens here.
type Service struct {
	Engine pricing.Engine
	Logger zerolog.Logger
}

// Quote prices the snapshot and records the outcome. A reconciliation
// failure is logged at error level with an alert marker because it means the
// engine produced an internally inconsistent invoice.
func (s *Service) Quote(ctx context.Context, snapshot pricing.BookingSnapshot) (pricing.Invoice, error) {
	ctx, span := otel.Tracer("booking.Service").Start(ctx, "BookingService.Quote")
	defer span.End()

	if snapshot.Coupon != nil && !snapshot.Coupon.Usable() {
		if obs.CouponFallbackTotal != nil {
			obs.CouponFallbackTotal.Inc()
		}
		s.Logger.Warn().
			Str("coupon_code", snapshot.Coupon.Code).
			Str("coupon_kind", string(snapshot.Coupon.Kind)).
			Int64("coupon_value", snapshot.Coupon.Value).
			Msg("coupon unusable, degrading to zero discount")
	}

	invoice, err := s.Engine.Quote(snapshot)
	if err != nil {
		if errors.Is(err, pricing.ErrReconciliation) {
			if obs.ReconciliationAlarms != nil {
				obs.ReconciliationAlarms.Inc()
			}
			countQuote("reconciliation_failed")
			s.Logger.Error().
				Err(err).
				Bool("alert", true).
				Msg("invoice failed reconciliation")
			return pricing.Invoice{}, err
		}
		countQuote("invalid_input")
		return pricing.Invoice{}, err
	}

	span.SetAttributes(
		attribute.Int("booking.rental_days", invoice.RentalDays),
		attribute.Int64("booking.total_cents", int64(invoice.TotalCents)),
	)
	countQuote("ok")
	return invoice, nil
}

func countQuote(result string) {
	if obs.QuoteTotal == nil {
		return
	}
	obs.QuoteTotal.WithLabelValues(result).Inc()
}
