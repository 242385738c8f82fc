package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerapp/storefront-api/internal/config"
	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/storage"
)

func TestMergeImageURLs(t *testing.T) {
	kept := []string{"a", "b"}
	uploaded := []string{"c", "d"}

	merged := mergeImageURLs(kept, uploaded)
	assert.Equal(t, []string{"a", "b", "c"}, merged, "kept images come first, cap at 3")

	assert.Equal(t, []string{"x"}, mergeImageURLs(nil, []string{"x"}))
	assert.Empty(t, mergeImageURLs(nil, nil))
	assert.Equal(t, []string{"a", "b", "c"}, mergeImageURLs([]string{"a", "b", "c"}, nil))
}

// newProductContext builds a multipart create-product request carrying
// one image file and an authenticated seller principal.
func newProductContext(t *testing.T, sellerID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Ceramic Mug"))
	require.NoError(t, w.WriteField("description", "Hand made"))
	require.NoError(t, w.WriteField("price", "12.50"))
	fw, err := w.CreateFormFile("images", "mug.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/seller/products", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", sellerID)
	return c, rec
}

func countStoredObjects(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

// The thirteenth product is refused before any byte reaches storage.
func TestCreateProductRejectsFullStore(t *testing.T) {
	stores := newFakeStores(&model.Store{ID: 5, SellerID: 7, Name: "Tea House", Slug: "tea-house", IsActive: true})
	catalog := newFakeCatalog(model.MaxProductsPerStore)
	images, err := storage.NewImageStore(t.TempDir(), "https://sellerapp.example")
	require.NoError(t, err)
	h := NewSellerHandler(config.Config{PublicBaseURL: "https://sellerapp.example"}, stores, catalog, images, nil)

	c, rec := newProductContext(t, 7)
	require.NoError(t, h.CreateProduct(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product limit")
	assert.Empty(t, catalog.created, "no row may be written for a full store")
	assert.Zero(t, countStoredObjects(t, images.Dir), "no upload may happen for a full store")
}

// Uploads preceding a failed row write are compensated with deletes.
func TestCreateProductCompensatesFailedWrite(t *testing.T) {
	stores := newFakeStores(&model.Store{ID: 5, SellerID: 7, Name: "Tea House", Slug: "tea-house", IsActive: true})
	catalog := newFakeCatalog(0)
	catalog.createErr = errors.New("insert failed")
	images, err := storage.NewImageStore(t.TempDir(), "https://sellerapp.example")
	require.NoError(t, err)
	h := NewSellerHandler(config.Config{PublicBaseURL: "https://sellerapp.example"}, stores, catalog, images, nil)

	c, rec := newProductContext(t, 7)
	require.NoError(t, h.CreateProduct(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, countStoredObjects(t, images.Dir), "uploaded objects must be removed after a failed insert")
}

func TestCreateProductStoresImageAndRow(t *testing.T) {
	stores := newFakeStores(&model.Store{ID: 5, SellerID: 7, Name: "Tea House", Slug: "tea-house", IsActive: true})
	catalog := newFakeCatalog(0)
	images, err := storage.NewImageStore(t.TempDir(), "https://sellerapp.example")
	require.NoError(t, err)
	h := NewSellerHandler(config.Config{PublicBaseURL: "https://sellerapp.example"}, stores, catalog, images, nil)

	c, rec := newProductContext(t, 7)
	require.NoError(t, h.CreateProduct(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, catalog.created, 1)
	p := catalog.created[0]
	assert.Equal(t, uint64(5), p.StoreID)
	assert.Equal(t, uint64(1250), p.PriceCents)
	require.Len(t, p.Images, 1)
	assert.Contains(t, p.Images[0], "https://sellerapp.example/uploads/7/")
	assert.Equal(t, 1, countStoredObjects(t, images.Dir))
}

func TestDroppedImageURLs(t *testing.T) {
	before := []string{"a", "b", "c"}

	assert.Equal(t, []string{"b"}, droppedImageURLs(before, []string{"a", "c", "d"}))
	assert.Equal(t, before, droppedImageURLs(before, nil), "clearing drops everything")
	assert.Nil(t, droppedImageURLs(before, before), "no change drops nothing")
	assert.Nil(t, droppedImageURLs(nil, []string{"a"}))
}
