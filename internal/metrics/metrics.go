// Package metrics exposes Prometheus counters for platform activity.  The
// counters are registered through promauto on the default registry and
// served by the /metrics endpoint in main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PlatformMetrics bundles the counters incremented by handlers and the
// visit consumer.
type PlatformMetrics struct {
	StoresCreatedTotal      prometheus.Counter
	ProductsCreatedTotal    prometheus.Counter
	ProductsDeletedTotal    prometheus.Counter
	StorefrontViewsTotal    prometheus.Counter
	VerificationCodesTotal  prometheus.Counter
	VisitEventsPersisted    prometheus.Counter
	VisitEventsDropped      prometheus.Counter
	StoreToggleTotal        *prometheus.CounterVec
}

// NewPlatformMetrics registers and returns the platform counters.
func NewPlatformMetrics() *PlatformMetrics {
	return &PlatformMetrics{
		StoresCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_stores_created_total",
			Help: "Number of stores created through onboarding",
		}),
		ProductsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_products_created_total",
			Help: "Number of products added by sellers",
		}),
		ProductsDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_products_deleted_total",
			Help: "Number of products deleted by sellers",
		}),
		StorefrontViewsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_storefront_views_total",
			Help: "Number of successful public storefront resolutions",
		}),
		VerificationCodesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_verification_codes_issued_total",
			Help: "Number of phone verification codes issued",
		}),
		VisitEventsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_visit_events_persisted_total",
			Help: "Visit events written to the database by the consumer",
		}),
		VisitEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sellerapp_visit_events_dropped_total",
			Help: "Visit events rejected by the consumer (bad payload or DB error)",
		}),
		StoreToggleTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerapp_store_toggles_total",
			Help: "Store activation toggles performed by admins",
		}, []string{"to"}),
	}
}
