package handler

import (
	"context"

	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/queue"
	"github.com/sellerapp/storefront-api/internal/repository"
)

// fakeStores is an in-memory StoreRegistry for handler tests.
type fakeStores struct {
	bySeller map[uint64]*model.Store
	bySlug   map[string]*model.Store
}

func newFakeStores(stores ...*model.Store) *fakeStores {
	f := &fakeStores{
		bySeller: map[uint64]*model.Store{},
		bySlug:   map[string]*model.Store{},
	}
	for _, s := range stores {
		f.bySeller[s.SellerID] = s
		f.bySlug[s.Slug] = s
	}
	return f
}

func (f *fakeStores) Create(_ context.Context, s *model.Store) error {
	if _, ok := f.bySeller[s.SellerID]; ok {
		return repository.ErrStoreExists
	}
	if _, ok := f.bySlug[s.Slug]; ok {
		return repository.ErrSlugTaken
	}
	s.ID = uint64(len(f.bySlug) + 1)
	s.IsActive = true
	f.bySeller[s.SellerID] = s
	f.bySlug[s.Slug] = s
	return nil
}

func (f *fakeStores) GetBySeller(_ context.Context, sellerID uint64) (*model.Store, error) {
	if s, ok := f.bySeller[sellerID]; ok {
		return s, nil
	}
	return nil, repository.ErrStoreNotFound
}

func (f *fakeStores) GetByID(_ context.Context, id uint64) (*model.Store, error) {
	for _, s := range f.bySlug {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrStoreNotFound
}

// GetActiveBySlug mirrors the production query's WHERE is_active clause:
// a deactivated store is indistinguishable from an absent one.
func (f *fakeStores) GetActiveBySlug(_ context.Context, slug string) (*model.Store, error) {
	if s, ok := f.bySlug[slug]; ok && s.IsActive {
		return s, nil
	}
	return nil, repository.ErrStoreNotFound
}

func (f *fakeStores) UpdateActive(ctx context.Context, storeID uint64, active bool) error {
	s, err := f.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	s.IsActive = active
	return nil
}

func (f *fakeStores) ListAll(_ context.Context) ([]repository.AdminStoreRow, error) {
	out := []repository.AdminStoreRow{}
	for _, s := range f.bySlug {
		out = append(out, repository.AdminStoreRow{Store: *s})
	}
	return out, nil
}

// fakeCatalog is an in-memory ProductCatalog.  The count field stands in
// for CountByStore so tests can place a store right at the cap without
// materializing twelve products.
type fakeCatalog struct {
	count     int
	createErr error
	created   []*model.Product
	products  map[uint64]*model.Product
}

func newFakeCatalog(count int) *fakeCatalog {
	return &fakeCatalog{count: count, products: map[uint64]*model.Product{}}
}

func (f *fakeCatalog) Create(_ context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = uint64(len(f.products) + 1)
	f.created = append(f.created, p)
	f.products[p.ID] = p
	f.count++
	return nil
}

func (f *fakeCatalog) Update(_ context.Context, productID, storeID uint64, name, description string, priceCents uint64, imageURLs []string) error {
	p, ok := f.products[productID]
	if !ok || p.StoreID != storeID {
		return repository.ErrProductNotFound
	}
	p.Name, p.Description, p.PriceCents, p.Images = name, description, priceCents, imageURLs
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, productID, storeID uint64) error {
	p, ok := f.products[productID]
	if !ok || p.StoreID != storeID {
		return repository.ErrProductNotFound
	}
	delete(f.products, productID)
	f.count--
	return nil
}

func (f *fakeCatalog) GetByIDAndStore(_ context.Context, productID, storeID uint64) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok || p.StoreID != storeID {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) ListByStore(_ context.Context, storeID uint64) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountByStore(_ context.Context, _ uint64) (int, error) {
	return f.count, nil
}

// fakeEvents captures published visit events on a channel so tests can
// wait for the resolver's publish goroutine.
type fakeEvents struct {
	events chan queue.StoreVisitedEvent
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: make(chan queue.StoreVisitedEvent, 4)}
}

func (f *fakeEvents) StoreVisited(_ context.Context, event queue.StoreVisitedEvent) error {
	f.events <- event
	return nil
}
