package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harbourline/backend-rentals/internal/booking"
	"github.com/harbourline/backend-rentals/internal/common"
	"github.com/harbourline/backend-rentals/internal/pricing"
)

// Handler exposes HTTP endpoints for payment intents. The booking service
// reprices the snapshot server-side so the charged amount is always the
// engine's total, never a figure the client sent.
type Handler struct {
	Booking *booking.Service
	Svc     *Service
}

type intentReq struct {
	booking.SnapshotPayload
	BookingRef string `json:"bookingRef"`
}

// Intent prices the booking snapshot and opens a payment intent for its total.
func (h *Handler) Intent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil || h.Booking == nil {
		common.JSONError(w, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED", "payment handler unavailable", nil)
		return
	}
	var req intentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body", nil)
		return
	}
	req.BookingRef = strings.TrimSpace(req.BookingRef)
	if req.BookingRef == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "bookingRef is required", nil)
		return
	}

	invoice, err := h.Booking.Quote(r.Context(), req.Snapshot())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrReconciliation):
			common.JSONError(w, http.StatusInternalServerError, "RECONCILIATION", "pricing produced an inconsistent invoice", nil)
		default:
			common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_BOOKING", "booking snapshot cannot be priced", nil)
		}
		return
	}

	intent, err := h.Svc.CreateIntent(r.Context(), req.BookingRef, int64(invoice.TotalCents))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			status = http.StatusGatewayTimeout
		}
		common.JSONError(w, status, "INTENT_FAILED", "unable to open payment intent", nil)
		return
	}
	common.JSONData(w, http.StatusCreated, intent)
}
