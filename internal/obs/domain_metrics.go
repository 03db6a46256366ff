package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts invoice quote outcomes by result label.
	QuoteTotal *prometheus.CounterVec
	// ReconciliationAlarms counts invoices that failed post-hoc invariant checks.
	// Any increment here is an engine defect and should page.
	ReconciliationAlarms prometheus.Counter
	// CouponFallbackTotal counts coupons that degraded to zero discount.
	CouponFallbackTotal prometheus.Counter
	// PaymentIntentTotal counts payment intent creation attempts.
	PaymentIntentTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of invoice quote computations by outcome.",
		}, []string{"result"})
		ReconciliationAlarms = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_reconciliation_alarms_total",
			Help:      "Number of invoices that failed reconciliation checks.",
		})
		CouponFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_fallback_total",
			Help:      "Number of coupons that silently degraded to zero discount.",
		})
		PaymentIntentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_intent_total",
			Help:      "Count of payment intent processing outcomes.",
		}, []string{"provider", "result"})

		QuoteTotal = registerCounterVec(reg, QuoteTotal)
		ReconciliationAlarms = registerCounter(reg, ReconciliationAlarms)
		CouponFallbackTotal = registerCounter(reg, CouponFallbackTotal)
		PaymentIntentTotal = registerCounterVec(reg, PaymentIntentTotal)
	})
}
