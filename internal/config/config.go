package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string
	LogFormat          string
	LogLevel           string

	CurrencyCode      string
	TaxLabel          string
	PricingTaxRateBPS int

	TransportBaseFeeCents int64
	TransportIncludedKm   float64
	TransportPerKmCents   int64

	PaymentProvider        string
	StripeSecretKey        string
	StripeBaseURL          string
	PaymentSandbox         bool
	PaymentIntentTTL       time.Duration
	PaymentCallbackBaseURL string

	RateLimitMax    int
	RateLimitWindow time.Duration
	MaxBodyBytes    int64
	ShutdownGrace   time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		LogFormat:          valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:           valueOrDefault(k.String("LOG_LEVEL"), "info"),

		CurrencyCode:      valueOrDefault(k.String("CURRENCY_CODE"), "CAD"),
		TaxLabel:          valueOrDefault(k.String("PRICING_TAX_LABEL"), "HST"),
		PricingTaxRateBPS: parseInt(k.String("PRICING_TAX_RATE_BPS"), 1500),

		TransportBaseFeeCents: parseInt64(k.String("TRANSPORT_BASE_FEE_CENTS"), 15000),
		TransportIncludedKm:   parseFloat(k.String("TRANSPORT_INCLUDED_KM"), 30),
		TransportPerKmCents:   parseInt64(k.String("TRANSPORT_PER_KM_CENTS"), 300),

		PaymentProvider:        valueOrDefault(k.String("PAYMENT_PROVIDER"), "mock"),
		StripeSecretKey:        k.String("STRIPE_SECRET_KEY"),
		StripeBaseURL:          k.String("STRIPE_BASE_URL"),
		PaymentSandbox:         parseBool(k.String("PAYMENT_SANDBOX")),
		PaymentIntentTTL:       parseDuration(k.String("PAYMENT_INTENT_TTL"), "15m"),
		PaymentCallbackBaseURL: strings.TrimSpace(k.String("PAYMENT_CALLBACK_BASE_URL")),

		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 60),
		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		MaxBodyBytes:    parseInt64(k.String("MAX_BODY_BYTES"), 1<<20),
		ShutdownGrace:   parseDuration(k.String("SHUTDOWN_GRACE"), "10s"),
	}

	if cfg.PricingTaxRateBPS < 0 {
		return nil, errors.New("PRICING_TAX_RATE_BPS must not be negative")
	}
	if cfg.TransportBaseFeeCents < 0 || cfg.TransportPerKmCents < 0 {
		return nil, errors.New("transport fee configuration must not be negative")
	}
	if cfg.TransportIncludedKm < 0 {
		return nil, errors.New("TRANSPORT_INCLUDED_KM must not be negative")
	}
	if cfg.PaymentProvider == "stripe" && strings.TrimSpace(cfg.StripeSecretKey) == "" && !cfg.PaymentSandbox {
		return nil, errors.New("STRIPE_SECRET_KEY is required outside sandbox mode")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return parsed
	}
	return fallback
}

func parseInt64(value string, fallback int64) int64 {
	if parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
		return parsed
	}
	return fallback
}

func parseFloat(value string, fallback float64) float64 {
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return parsed
	}
	return fallback
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
