package handler // seller-facing store handlers: onboarding and dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/config"
	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/storage"
	"github.com/sellerapp/storefront-api/internal/utils"
)

// SellerHandler bundles everything the seller console needs: the store
// registry, the product catalog, the image store and the config carrying
// the public base URL for shareable links.
type SellerHandler struct {
	Cfg      config.Config
	Stores   StoreRegistry
	Products ProductCatalog
	Images   *storage.ImageStore
	Metrics  *metrics.PlatformMetrics
}

func NewSellerHandler(cfg config.Config, stores StoreRegistry, products ProductCatalog, images *storage.ImageStore, m *metrics.PlatformMetrics) *SellerHandler {
	if stores == nil || products == nil || images == nil {
		panic("nil dependency passed to NewSellerHandler")
	}
	return &SellerHandler{Cfg: cfg, Stores: stores, Products: products, Images: images, Metrics: m}
}

// storeView is the store shape returned to its owner.
type storeView struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ContactPhone string    `json:"contact_phone"`
	IsActive     bool      `json:"is_active"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *SellerHandler) toStoreView(s *model.Store) storeView {
	return storeView{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		ContactPhone: s.ContactPhone,
		IsActive:     s.IsActive,
		URL:          h.storeURL(s.Slug),
		CreatedAt:    s.CreatedAt,
	}
}

func (h *SellerHandler) storeURL(slug string) string {
	return h.Cfg.PublicBaseURL + "/store/" + slug
}

// CreateStore handles POST /v1/seller/store, the onboarding operation.
// Validation happens before any database write: name trimmed to at least
// 3 characters, phone at least 10 digits after stripping formatting, and
// an explicit terms acceptance.  A seller who already owns a store gets a
// 409 pointing at the dashboard, which also covers direct navigation that
// bypasses the client-side check.
func (h *SellerHandler) CreateStore(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		StoreName     string `json:"store_name"`
		ContactPhone  string `json:"contact_phone"`
		TermsAccepted bool   `json:"terms_accepted"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !body.TermsAccepted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "terms must be accepted"})
	}
	name := collapseSpaces(body.StoreName)
	if len(name) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "store name must be at least 3 characters"})
	}
	if len(utils.DigitsOnly(body.ContactPhone)) < 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid contact phone required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Stores.GetBySeller(ctx, sellerID); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "store already exists", "redirect": "/seller/dashboard"})
	} else if err != repository.ErrStoreNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	store := &model.Store{
		SellerID:     sellerID,
		Name:         name,
		Slug:         utils.Slugify(name),
		ContactPhone: body.ContactPhone,
	}
	if err := h.Stores.Create(ctx, store); err != nil {
		switch err {
		case repository.ErrStoreExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "store already exists", "redirect": "/seller/dashboard"})
		case repository.ErrSlugTaken:
			return c.JSON(http.StatusConflict, echo.Map{"error": "store name already taken, choose another"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create store"})
		}
	}
	if h.Metrics != nil {
		h.Metrics.StoresCreatedTotal.Inc()
	}
	return c.JSON(http.StatusCreated, h.toStoreView(store))
}

// GetDashboard handles GET /v1/seller/store.  A seller without a store
// gets a 404 pointing at onboarding; otherwise the store is returned with
// its full catalog newest-first and the product count against the cap.
func (h *SellerHandler) GetDashboard(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetBySeller(ctx, sellerID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no store yet", "redirect": "/seller/onboarding"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	products, err := h.Products.ListByStore(ctx, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"store":         h.toStoreView(store),
		"products":      toProductViews(products),
		"product_count": len(products),
		"max_products":  model.MaxProductsPerStore,
	})
}

// GetStoreURL handles GET /v1/seller/store/url and returns the shareable
// public link; placing it on the clipboard is the client's job.
func (h *SellerHandler) GetStoreURL(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	store, err := h.Stores.GetBySeller(c.Request().Context(), sellerID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no store yet", "redirect": "/seller/onboarding"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": h.storeURL(store.Slug)})
}
