package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harbourline/backend-rentals/internal/resilience"
)

// Stripe implements the Provider interface for Stripe payment intents.
type Stripe struct {
	SecretKey string
	BaseURL   string
	Sandbox   bool
	HTTP      *resilience.HTTPClient
}

// CreateIntent opens a payment intent. In sandbox mode the response is
// synthesised deterministically so integration tests can drive the rest of
// the flow without network access.
func (s Stripe) CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error) {
	if strings.TrimSpace(req.BookingRef) == "" {
		return IntentResponse{}, errors.New("booking ref is required")
	}
	if req.AmountCents <= 0 {
		return IntentResponse{}, fmt.Errorf("amount %d must be positive", req.AmountCents)
	}
	if s.Sandbox {
		return s.sandboxIntent(req), nil
	}
	return s.liveIntent(ctx, req)
}

func (s Stripe) sandboxIntent(req IntentRequest) IntentResponse {
	intentID := "pi_" + sanitizeRef(req.BookingRef)
	secret := intentID + "_secret_" + s.signature(req)
	expiresAt := time.Now().Add(time.Duration(req.ExpiresAtSec) * time.Second)
	return IntentResponse{
		Provider:     "stripe",
		IntentID:     intentID,
		ClientSecret: secret,
		RedirectURL:  fmt.Sprintf("%s/pay/%s", strings.TrimRight(s.checkoutHost(), "/"), secret),
		ExpiresAt:    expiresAt.Unix(),
	}
}

func (s Stripe) liveIntent(ctx context.Context, req IntentRequest) (IntentResponse, error) {
	if strings.TrimSpace(s.SecretKey) == "" {
		return IntentResponse{}, errors.New("stripe secret key not configured")
	}
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("metadata[booking_ref]", req.BookingRef)
	if req.CallbackBaseURL != "" {
		form.Set("metadata[callback_base_url]", req.CallbackBaseURL)
	}

	endpoint := strings.TrimRight(s.apiHost(), "/") + "/v1/payment_intents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return IntentResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(s.SecretKey, "")

	resp, err := s.do(ctx, httpReq)
	if err != nil {
		return IntentResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return IntentResponse{}, err
	}
	if resp.StatusCode >= 400 {
		return IntentResponse{}, fmt.Errorf("stripe returned %s", resp.Status)
	}

	var payload struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return IntentResponse{}, err
	}
	if payload.ID == "" || payload.ClientSecret == "" {
		return IntentResponse{}, errors.New("stripe response missing intent fields")
	}
	expiresAt := time.Now().Add(time.Duration(req.ExpiresAtSec) * time.Second)
	return IntentResponse{
		Provider:     "stripe",
		IntentID:     payload.ID,
		ClientSecret: payload.ClientSecret,
		RedirectURL:  fmt.Sprintf("%s/pay/%s", strings.TrimRight(s.checkoutHost(), "/"), payload.ClientSecret),
		ExpiresAt:    expiresAt.Unix(),
	}, nil
}

func (s Stripe) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if s.HTTP != nil {
		return s.HTTP.Do(ctx, req)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func (s Stripe) apiHost() string {
	host := strings.TrimSpace(s.BaseURL)
	if host == "" {
		return "https://api.stripe.com"
	}
	return host
}

func (s Stripe) checkoutHost() string {
	if s.Sandbox {
		return "https://checkout.sandbox.stripe.com"
	}
	return "https://checkout.stripe.com"
}

// signature produces a stable fragment tied to the booking and amount so
// repeated sandbox calls for the same booking return the same secret.
func (s Stripe) signature(req IntentRequest) string {
	mac := hmac.New(sha256.New, []byte(s.SecretKey))
	mac.Write([]byte(req.BookingRef))
	mac.Write([]byte(strconv.FormatInt(req.AmountCents, 10)))
	mac.Write([]byte(strings.ToLower(req.Currency)))
	return hex.EncodeToString(mac.Sum(nil))[:16]
}

func sanitizeRef(ref string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(ref) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
