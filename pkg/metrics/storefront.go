package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics counts cart and checkout activity. All methods are safe on
// a nil receiver so callers can run without a registry.
type StorefrontMetrics struct {
	cartMutations      *prometheus.CounterVec
	cartLoads          *prometheus.CounterVec
	checkoutLinks      prometheus.Counter
	checkoutRejections *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Cart mutations by operation and outcome.",
	}, []string{"op", "outcome"})
	cartLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_loads_total",
		Help: "Persisted cart loads by status.",
	}, []string{"status"})
	checkoutLinks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_links_total",
		Help: "Checkout links composed.",
	})
	checkoutRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_rejections_total",
		Help: "Checkout attempts blocked by the eligibility gate.",
	}, []string{"reason"})
	reg.MustRegister(cartMutations, cartLoads, checkoutLinks, checkoutRejections)
	return &StorefrontMetrics{
		cartMutations:      cartMutations,
		cartLoads:          cartLoads,
		checkoutLinks:      checkoutLinks,
		checkoutRejections: checkoutRejections,
	}
}

// ObserveCartMutation counts a reducer operation and its outcome.
func (m *StorefrontMetrics) ObserveCartMutation(op, outcome string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// ObserveCartLoad counts a persisted cart load by status.
func (m *StorefrontMetrics) ObserveCartLoad(status string) {
	if m == nil || m.cartLoads == nil {
		return
	}
	m.cartLoads.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncCheckoutLink counts a composed checkout link.
func (m *StorefrontMetrics) IncCheckoutLink() {
	if m == nil || m.checkoutLinks == nil {
		return
	}
	m.checkoutLinks.Inc()
}

// IncCheckoutRejection counts a gate rejection.
func (m *StorefrontMetrics) IncCheckoutRejection(reason string) {
	if m == nil || m.checkoutRejections == nil {
		return
	}
	m.checkoutRejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
