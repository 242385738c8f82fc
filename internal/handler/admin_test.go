package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/repository"
)

func adminRow(name, phone string, active bool, products int) repository.AdminStoreRow {
	return repository.AdminStoreRow{
		Store:        model.Store{Name: name, IsActive: active},
		OwnerPhone:   phone,
		ProductCount: products,
	}
}

func TestComputeStats(t *testing.T) {
	rows := []repository.AdminStoreRow{
		adminRow("Tea House", "15550000001", true, 4),
		adminRow("Closed Corner", "15550000002", false, 2),
		adminRow("Fresh Produce", "15550000003", true, 0),
	}
	rows[0].TotalVisits = 120
	rows[1].TotalVisits = 5

	st := computeStats(rows)
	assert.Equal(t, 3, st.TotalSellers)
	assert.Equal(t, 2, st.ActiveSellers)
	assert.Equal(t, 6, st.TotalProducts)
	assert.Equal(t, 125, st.TotalVisits, "total visits sum over every store, active or not")
	assert.InDelta(t, 2.0, st.AvgProductsPerStore, 1e-9)
}

func TestComputeStatsEmpty(t *testing.T) {
	st := computeStats(nil)
	assert.Zero(t, st.TotalSellers)
	assert.Zero(t, st.AvgProductsPerStore, "no stores must not divide by zero")
}

func TestFilterStores(t *testing.T) {
	rows := []repository.AdminStoreRow{
		adminRow("Tea House", "15550000001", true, 0),
		adminRow("Fresh Produce", "15550000002", true, 0),
	}

	assert.Len(t, filterStores(rows, ""), 2, "empty query keeps everything")
	assert.Len(t, filterStores(rows, "  "), 2)

	byName := filterStores(rows, "tea")
	if assert.Len(t, byName, 1) {
		assert.Equal(t, "Tea House", byName[0].Store.Name)
	}

	byPhone := filterStores(rows, "0000002")
	if assert.Len(t, byPhone, 1) {
		assert.Equal(t, "Fresh Produce", byPhone[0].Store.Name)
	}

	assert.Empty(t, filterStores(rows, "nonexistent"))
	assert.Len(t, filterStores(rows, "HOUSE"), 1, "search is case-insensitive")
}
