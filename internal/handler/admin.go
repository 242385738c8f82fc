package handler // admin console: platform-wide listing and store toggles

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/repository"
)

// AdminHandler serves the operator console.
type AdminHandler struct {
	Stores  StoreRegistry
	Metrics *metrics.PlatformMetrics
}

func NewAdminHandler(stores StoreRegistry, m *metrics.PlatformMetrics) *AdminHandler {
	if stores == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Stores: stores, Metrics: m}
}

// adminStoreView is one row of the console listing.
type adminStoreView struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	OwnerPhone    string    `json:"owner_phone"`
	IsActive      bool      `json:"is_active"`
	ProductCount  int       `json:"product_count"`
	WeeklyVisits  int       `json:"weekly_visits"`
	MonthlyVisits int       `json:"monthly_visits"`
	TotalVisits   int       `json:"total_visits"`
	JoinedAt      time.Time `json:"joined_at"`
}

// platformStats are aggregates over the full store population, computed
// before any search filter is applied.
type platformStats struct {
	TotalSellers        int     `json:"total_sellers"`
	ActiveSellers       int     `json:"active_sellers"`
	TotalProducts       int     `json:"total_products"`
	TotalVisits         int     `json:"total_visits"`
	AvgProductsPerStore float64 `json:"avg_products_per_store"`
}

func computeStats(rows []repository.AdminStoreRow) platformStats {
	st := platformStats{TotalSellers: len(rows)}
	for _, r := range rows {
		if r.Store.IsActive {
			st.ActiveSellers++
		}
		st.TotalProducts += r.ProductCount
		st.TotalVisits += r.TotalVisits
	}
	if len(rows) > 0 {
		st.AvgProductsPerStore = float64(st.TotalProducts) / float64(len(rows))
	}
	return st
}

// filterStores keeps rows whose store name or owner phone contains q,
// case-insensitively.  An empty q keeps everything.
func filterStores(rows []repository.AdminStoreRow, q string) []repository.AdminStoreRow {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := []repository.AdminStoreRow{}
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Store.Name), q) || strings.Contains(r.OwnerPhone, q) {
			out = append(out, r)
		}
	}
	return out
}

// ListStores handles GET /v1/admin/stores.  Stats cover the whole
// platform; the optional ?q= search narrows only the listed rows.
func (h *AdminHandler) ListStores(c echo.Context) error {
	rows, err := h.Stores.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	stats := computeStats(rows)
	filtered := filterStores(rows, c.QueryParam("q"))

	views := make([]adminStoreView, 0, len(filtered))
	for _, r := range filtered {
		views = append(views, adminStoreView{
			ID:            r.Store.ID,
			Name:          r.Store.Name,
			Slug:          r.Store.Slug,
			OwnerPhone:    r.OwnerPhone,
			IsActive:      r.Store.IsActive,
			ProductCount:  r.ProductCount,
			WeeklyVisits:  r.WeeklyVisits,
			MonthlyVisits: r.MonthlyVisits,
			TotalVisits:   r.TotalVisits,
			JoinedAt:      r.Store.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":  stats,
		"stores": views,
	})
}

// ToggleStore handles POST /v1/admin/stores/:id/toggle and flips the
// store's public visibility.
func (h *AdminHandler) ToggleStore(c echo.Context) error {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetByID(ctx, storeID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	next := !store.IsActive
	if err := h.Stores.UpdateActive(ctx, storeID, next); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
	}
	if h.Metrics != nil {
		label := "inactive"
		if next {
			label = "active"
		}
		h.Metrics.StoreToggleTotal.WithLabelValues(label).Inc()
	}
	store.IsActive = next
	return c.JSON(http.StatusOK, echo.Map{
		"id":        store.ID,
		"name":      store.Name,
		"slug":      store.Slug,
		"is_active": store.IsActive,
	})
}
