package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/harbourline/backend-rentals/internal/common"
	"github.com/harbourline/backend-rentals/internal/money"
	"github.com/harbourline/backend-rentals/internal/pricing"
)

// CouponPayload is the wire form of a discount code.
type CouponPayload struct {
	Code  string `json:"code"`
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

// SnapshotPayload is the wire form of a booking snapshot. The payment
// handler reuses it so both surfaces price identical input identically.
type SnapshotPayload struct {
	StartDate             time.Time      `json:"startDate"`
	EndDate               time.Time      `json:"endDate"`
	DailyRateCents        int64          `json:"dailyRateCents"`
	OneWayDistanceKm      float64        `json:"oneWayDistanceKm"`
	WaiverSelected        bool           `json:"waiverSelected"`
	WaiverRateCentsPerDay *int64         `json:"waiverRateCentsPerDay,omitempty"`
	Coupon                *CouponPayload `json:"coupon,omitempty"`
	TaxRateBasisPoints    *int           `json:"taxRateBasisPoints,omitempty"`
}

// Snapshot converts the payload into the engine's input type.
func (p SnapshotPayload) Snapshot() pricing.BookingSnapshot {
	snapshot := pricing.BookingSnapshot{
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		DailyRateCents:     money.Money(p.DailyRateCents),
		OneWayDistanceKm:   p.OneWayDistanceKm,
		WaiverSelected:     p.WaiverSelected,
		TaxRateBasisPoints: p.TaxRateBasisPoints,
	}
	if p.WaiverRateCentsPerDay != nil {
		rate := money.Money(*p.WaiverRateCentsPerDay)
		snapshot.WaiverRateCentsPerDay = &rate
	}
	if p.Coupon != nil {
		snapshot.Coupon = &pricing.Coupon{
			Code:  p.Coupon.Code,
			Kind:  pricing.ParseCouponKind(p.Coupon.Kind),
			Value: p.Coupon.Value,
		}
	}
	return snapshot
}

// Handler wires the booking service to HTTP.
type Handler struct {
	Svc *Service
}

// Quote prices a booking snapshot and returns the invoice summary.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	var payload SnapshotPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	invoice, err := h.Svc.Quote(r.Context(), payload.Snapshot())
	if err != nil {
		writePricingError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, invoice)
}

// Invoice prices a booking snapshot and returns the printable document.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	var payload struct {
		SnapshotPayload
		BookingRef      string `json:"bookingRef"`
		CustomerName    string `json:"customerName"`
		DeliveryAddress string `json:"deliveryAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	meta := DocumentMeta{
		BookingRef:      payload.BookingRef,
		CustomerName:    payload.CustomerName,
		DeliveryAddress: payload.DeliveryAddress,
	}
	document, err := h.Svc.BuildDocument(r.Context(), payload.Snapshot(), meta)
	if err != nil {
		writePricingError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, document)
}

func writePricingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidPeriod):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_PERIOD", "rental period must end after it starts", nil)
	case errors.Is(err, pricing.ErrInvalidWaiverRate):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_WAIVER_RATE", "selected waiver requires a non-negative daily rate", nil)
	case errors.Is(err, pricing.ErrNegativeInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "NEGATIVE_INPUT", "monetary and distance inputs must be non-negative", nil)
	case errors.Is(err, pricing.ErrReconciliation):
		common.JSONError(w, http.StatusInternalServerError, "RECONCILIATION", "pricing produced an inconsistent invoice", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to price booking", nil)
	}
}
