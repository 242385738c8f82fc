package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/queue"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/utils"
)

// StoreRegistry is the store persistence surface handlers depend on.  The
// MySQL-backed repository.StoreRepo implements it in production; tests
// substitute in-memory fakes.
type StoreRegistry interface {
	Create(ctx context.Context, s *model.Store) error
	GetBySeller(ctx context.Context, sellerID uint64) (*model.Store, error)
	GetByID(ctx context.Context, id uint64) (*model.Store, error)
	GetActiveBySlug(ctx context.Context, slug string) (*model.Store, error)
	UpdateActive(ctx context.Context, storeID uint64, active bool) error
	ListAll(ctx context.Context) ([]repository.AdminStoreRow, error)
}

// ProductCatalog is the product persistence surface handlers depend on.
type ProductCatalog interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, productID, storeID uint64, name, description string, priceCents uint64, imageURLs []string) error
	Delete(ctx context.Context, productID, storeID uint64) error
	GetByIDAndStore(ctx context.Context, productID, storeID uint64) (*model.Product, error)
	ListByStore(ctx context.Context, storeID uint64) ([]model.Product, error)
	CountByStore(ctx context.Context, storeID uint64) (int, error)
}

// VisitPublisher emits storefront visit events toward the broker.
type VisitPublisher interface {
	StoreVisited(ctx context.Context, event queue.StoreVisitedEvent) error
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims arrive as float64; other shapes are tolerated for
// tests that seed the context directly.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// collapseSpaces trims a name and collapses interior whitespace runs to a
// single space, so the stored display name round-trips cleanly through the
// slug transform.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// productView is the product shape shared by seller and public responses.
type productView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	PriceCents  uint64    `json:"price_cents"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProductView(p model.Product) productView {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       utils.FormatPriceCents(p.PriceCents),
		PriceCents:  p.PriceCents,
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductViews(products []model.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}
