package handler // public storefront: the page behind the shared link

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/queue"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/utils"
)

// PublicHandler serves the unauthenticated storefront lookup.
type PublicHandler struct {
	Stores   StoreRegistry
	Products ProductCatalog
	Events   VisitPublisher
	Metrics  *metrics.PlatformMetrics
}

// NewPublicHandler wires the resolver.  Events may be nil, in which case
// storefronts render without emitting visit events.
func NewPublicHandler(stores StoreRegistry, products ProductCatalog, events VisitPublisher, m *metrics.PlatformMetrics) *PublicHandler {
	if stores == nil || products == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Stores: stores, Products: products, Events: events, Metrics: m}
}

// GetStorefront handles GET /v1/stores/:slug.  Deactivated stores answer
// exactly like unknown slugs so the response never reveals whether a store
// exists behind a hidden slug.  Each successful render publishes a visit
// event off the request path; a dead broker never delays the page.
func (h *PublicHandler) GetStorefront(c echo.Context) error {
	slug := utils.Slugify(c.Param("slug"))
	if slug == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetActiveBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	products, err := h.Products.ListByStore(ctx, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if h.Metrics != nil {
		h.Metrics.StorefrontViewsTotal.Inc()
	}
	if h.Events != nil {
		go func(storeID uint64, slug string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.Events.StoreVisited(ctx, queue.StoreVisitedEvent{
				StoreID:   storeID,
				Slug:      slug,
				VisitedAt: time.Now().UTC().Format(time.RFC3339),
			})
		}(store.ID, store.Slug)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"store": echo.Map{
			"name":          store.Name,
			"slug":          store.Slug,
			"contact_phone": store.ContactPhone,
			"whatsapp_url":  utils.WhatsAppLink(store.ContactPhone),
		},
		"products":      toProductViews(products),
		"product_count": len(products),
	})
}
