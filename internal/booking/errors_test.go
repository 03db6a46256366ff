package booking

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harbourline/backend-rentals/internal/pricing"
)

func TestWritePricingErrorCodes(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{pricing.ErrInvalidPeriod, http.StatusUnprocessableEntity, "INVALID_PERIOD"},
		{pricing.ErrInvalidWaiverRate, http.StatusUnprocessableEntity, "INVALID_WAIVER_RATE"},
		{pricing.ErrNegativeInput, http.StatusUnprocessableEntity, "NEGATIVE_INPUT"},
		{fmt.Errorf("%w: total off by one", pricing.ErrReconciliation), http.StatusInternalServerError, "RECONCILIATION"},
		{fmt.Errorf("something else"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		writePricingError(rr, tc.err)
		if rr.Code != tc.wantStatus {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.wantStatus, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), tc.wantCode) {
			t.Fatalf("%v: expected code %s in %s", tc.err, tc.wantCode, rr.Body.String())
		}
	}
}
