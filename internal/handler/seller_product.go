package handler // seller-facing product lifecycle handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/utils"
)

// productForm carries the validated multipart fields shared by create and
// edit.  KeepImages holds already-persisted URLs the seller retained (edit
// only); Files holds the pending uploads.
type productForm struct {
	Name        string
	Description string
	PriceCents  uint64
	KeepImages  []string
	Files       []*multipart.FileHeader
}

// parseProductForm binds and validates the multipart product form.  All
// validation failures happen here, before any upload or database write, so
// a rejected request costs no storage traffic.
func parseProductForm(c echo.Context) (*productForm, string) {
	name := collapseSpaces(c.FormValue("name"))
	if name == "" {
		return nil, "name is required"
	}
	description := strings.TrimSpace(c.FormValue("description"))
	if description == "" {
		return nil, "description is required"
	}
	priceCents, err := utils.ParsePriceCents(c.FormValue("price"))
	if err != nil {
		return nil, "price must be a non-negative amount"
	}

	f := &productForm{Name: name, Description: description, PriceCents: priceCents}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		f.Files = mf.File["images"]
		for _, u := range mf.Value["keep_images"] {
			if u = strings.TrimSpace(u); u != "" {
				f.KeepImages = append(f.KeepImages, u)
			}
		}
	}
	if len(f.Files) > model.MaxImagesPerProduct {
		return nil, "a product can have at most 3 images"
	}
	return f, ""
}

// mergeImageURLs concatenates newly uploaded URLs after the retained ones
// and truncates to the image cap, preserving order.
func mergeImageURLs(kept, uploaded []string) []string {
	merged := make([]string, 0, len(kept)+len(uploaded))
	merged = append(merged, kept...)
	merged = append(merged, uploaded...)
	if len(merged) > model.MaxImagesPerProduct {
		merged = merged[:model.MaxImagesPerProduct]
	}
	return merged
}

// droppedImageURLs returns the URLs present in before but absent from
// after, i.e. the images an edit removed from the product.
func droppedImageURLs(before, after []string) []string {
	kept := make(map[string]struct{}, len(after))
	for _, u := range after {
		kept[u] = struct{}{}
	}
	var dropped []string
	for _, u := range before {
		if _, ok := kept[u]; !ok {
			dropped = append(dropped, u)
		}
	}
	return dropped
}

// uploadImages streams each pending file into the image store under the
// seller's namespace and returns the storage keys and public URLs in
// upload order.
func (h *SellerHandler) uploadImages(sellerID uint64, files []*multipart.FileHeader) (keys, urls []string, err error) {
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return keys, urls, err
		}
		key, err := h.Images.Save(sellerID, fh.Filename, src)
		_ = src.Close()
		if err != nil {
			return keys, urls, err
		}
		keys = append(keys, key)
		urls = append(urls, h.Images.PublicURL(key))
	}
	return keys, urls, nil
}

// removeUploaded deletes objects uploaded in this request.  Used when the
// catalog write fails after uploads succeeded, so failed requests do not
// leak storage objects.  Removal failures only log; the row write error is
// what the user sees.
func (h *SellerHandler) removeUploaded(keys []string) {
	for _, key := range keys {
		if err := h.Images.Remove(key); err != nil {
			log.Printf("compensating delete failed for %s: %v", key, err)
		}
	}
}

// CreateProduct handles POST /v1/seller/products.  Preconditions checked
// before any upload: the caller owns a store, the store is below the
// 12-product cap, and at least one image is attached.
func (h *SellerHandler) CreateProduct(c echo.Context) error {
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

	form, msg := parseProductForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if len(form.Files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one image is required"})
	}
	count, err := h.Products.CountByStore(ctx, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if count >= model.MaxProductsPerStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product limit reached (12 per store)"})
	}

	keys, urls, err := h.uploadImages(sellerID, form.Files)
	if err != nil {
		h.removeUploaded(keys)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	product := &model.Product{
		StoreID:     store.ID,
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  form.PriceCents,
		Images:      mergeImageURLs(nil, urls),
	}
	if err := h.Products.Create(ctx, product); err != nil {
		h.removeUploaded(keys)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if h.Metrics != nil {
		h.Metrics.ProductsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusCreated, toProductView(*product))
}

// UpdateProduct handles PUT /v1/seller/products/:id.  Retained URLs come
// in keep_images, new files in images; uploads happen first, then the
// merged list is truncated to the cap and written.  Uploads that fell past
// the cap or preceded a failed write are compensated with deletes.
func (h *SellerHandler) UpdateProduct(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetBySeller(ctx, sellerID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no store yet", "redirect": "/seller/onboarding"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	existing, err := h.Products.GetByIDAndStore(ctx, productID, store.ID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	form, msg := parseProductForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if len(form.KeepImages) > model.MaxImagesPerProduct {
		form.KeepImages = form.KeepImages[:model.MaxImagesPerProduct]
	}

	keys, urls, err := h.uploadImages(sellerID, form.Files)
	if err != nil {
		h.removeUploaded(keys)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	merged := mergeImageURLs(form.KeepImages, urls)

	// Uploads that did not make the cap are dead on arrival; reclaim them.
	if surplus := len(form.KeepImages) + len(urls) - len(merged); surplus > 0 {
		h.removeUploaded(keys[len(keys)-surplus:])
		keys = keys[:len(keys)-surplus]
	}

	if err := h.Products.Update(ctx, productID, store.ID, form.Name, form.Description, form.PriceCents, merged); err != nil {
		h.removeUploaded(keys)
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	// Objects the seller dropped from the product are no longer referenced
	// by any row; reclaim them now that the write is committed.
	for _, url := range droppedImageURLs(existing.Images, merged) {
		if key, ok := h.Images.KeyFromURL(url); ok {
			if err := h.Images.Remove(key); err != nil {
				log.Printf("removing dropped image %s: %v", key, err)
			}
		}
	}

	updated, err := h.Products.GetByIDAndStore(ctx, productID, store.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toProductView(*updated))
}

// DeleteProduct handles DELETE /v1/seller/products/:id.  Image objects are
// intentionally left in storage; see the catalog design notes.
func (h *SellerHandler) DeleteProduct(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetBySeller(ctx, sellerID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no store yet", "redirect": "/seller/onboarding"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Products.Delete(ctx, productID, store.ID); err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if h.Metrics != nil {
		h.Metrics.ProductsDeletedTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}
