package pricing

import (
	"fmt"

	"github.com/harbourline/backend-rentals/internal/money"
)

// Tariff holds the transport pricing constants. The defaults mirror the
// published rate card: $150 per direction covering the first 30 km, then
// $3.00 per additional kilometre.
type Tariff struct {
	IncludedKm      float64
	BaseFeeCents    money.Money
	AdditionalPerKm money.Money
}

// DefaultTariff returns the standard rate card.
func DefaultTariff() Tariff {
	return Tariff{
		IncludedKm:      30,
		BaseFeeCents:    15000,
		AdditionalPerKm: 300,
	}
}

func (t Tariff) normalised() Tariff {
	out := t
	if out.IncludedKm <= 0 {
		out.IncludedKm = 30
	}
	if out.BaseFeeCents <= 0 {
		out.BaseFeeCents = 15000
	}
	if out.AdditionalPerKm <= 0 {
		out.AdditionalPerKm = 300
	}
	return out
}

// TransportQuote carries the per-direction fee and the derived round trip.
// The per-direction figure is computed exactly once; both legs of the round
// trip reuse it so the delivery and pickup lines can never disagree.
type TransportQuote struct {
	PerDirectionCents money.Money
	RoundTripCents    money.Money
	ExtraKm           float64
}

// ComputeTransport prices a one-way distance against the tariff. Distances
// within the included range pay the flat base fee; beyond it each extra
// kilometre is charged at the additional rate, rounded once.
func ComputeTransport(oneWayDistanceKm float64, tariff Tariff) (TransportQuote, error) {
	if oneWayDistanceKm < 0 {
		return TransportQuote{}, fmt.Errorf("%w: one-way distance %.2f km", ErrNegativeInput, oneWayDistanceKm)
	}
	t := tariff.normalised()

	perDirection := t.BaseFeeCents
	extraKm := 0.0
	if oneWayDistanceKm > t.IncludedKm {
		extraKm = oneWayDistanceKm - t.IncludedKm
		perDirection = perDirection.Add(money.ScaleKm(t.AdditionalPerKm, extraKm))
	}
	return TransportQuote{
		PerDirectionCents: perDirection,
		RoundTripCents:    perDirection.MulInt(2),
		ExtraKm:           extraKm,
	}, nil
}
