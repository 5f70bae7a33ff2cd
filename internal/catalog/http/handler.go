// Package http exposes the catalog as a JSON API. Hot, slow-changing
// reads (category tree, featured products, brand list) go through the
// caller-side cache; everything else hits the service directly.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shyngys777/temporun/internal/catalog"
	"github.com/Shyngys777/temporun/internal/platform/httpx"
)

// Handler serves the catalog routes.
type Handler struct {
	logger  *slog.Logger
	service *catalog.Service
	cache   *catalog.Cache
}

// NewHandler wires the catalog service and its read cache. The cache
// may be nil, in which case every request loads fresh.
func NewHandler(logger *slog.Logger, service *catalog.Service, cache *catalog.Cache) *Handler {
	return &Handler{logger: logger, service: service, cache: cache}
}

// MountRoutes attaches the catalog API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/featured", h.featuredProducts)
	r.Get("/products/new", h.newArrivals)
	r.Get("/products/sale", h.saleProducts)
	r.Get("/products/search", h.searchProducts)
	r.Get("/products/{slug}", h.getProduct)

	r.Get("/brands", h.listBrands)
	r.Get("/brands/counts", h.brandCounts)
	r.Get("/brands/{slug}", h.getBrand)
	r.Get("/brands/{slug}/products", h.brandProducts)

	r.Get("/categories", h.listCategories)
	r.Get("/categories/tree", h.categoryTree)
	r.Get("/categories/top", h.topLevelCategories)
	r.Get("/categories/{slug}", h.getCategory)
	r.Get("/categories/{slug}/products", h.categoryProducts)

	r.Get("/collections", h.listCollections)
	r.Get("/collections/{slug}", h.getCollection)
}

type listResponse struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := parseProductFilter(r)
	sort := catalog.ProductSort{
		Field:     r.URL.Query().Get("sort"),
		Direction: r.URL.Query().Get("dir"),
	}
	page := parsePage(r)

	views, total, err := h.service.ListProducts(r.Context(), filter, sort, page)
	if err != nil {
		h.unavailable(w, "list products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Items: views, Total: total, Limit: page.Normalize().Limit, Offset: page.Normalize().Offset})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	view, found := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 8)
	var views []catalog.ProductView
	err := h.cached(r.Context(), catalog.KeyFeaturedProducts(limit), &views, func(ctx context.Context) (interface{}, error) {
		return h.service.FeaturedProducts(ctx, limit)
	})
	if err != nil {
		h.unavailable(w, "featured products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) newArrivals(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 8)
	var views []catalog.ProductView
	err := h.cached(r.Context(), catalog.KeyNewArrivals(limit), &views, func(ctx context.Context) (interface{}, error) {
		return h.service.NewArrivals(ctx, limit)
	})
	if err != nil {
		h.unavailable(w, "new arrivals", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) saleProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.SaleProducts(r.Context(), parseLimit(r, catalog.DefaultPageLimit))
	if err != nil {
		h.unavailable(w, "sale products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "query parameter q is required")
		return
	}
	views, err := h.service.SearchProducts(r.Context(), query, parseLimit(r, 20))
	if err != nil {
		h.unavailable(w, "search products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"
	if featuredOnly {
		brands, err := h.service.FeaturedBrands(r.Context())
		if err != nil {
			h.unavailable(w, "featured brands", err)
			return
		}
		httpx.JSON(w, http.StatusOK, brands)
		return
	}
	var brands []catalog.Brand
	err := h.cached(r.Context(), catalog.KeyBrands(), &brands, func(ctx context.Context) (interface{}, error) {
		return h.service.Brands(ctx, false)
	})
	if err != nil {
		h.unavailable(w, "list brands", err)
		return
	}
	httpx.JSON(w, http.StatusOK, brands)
}

func (h *Handler) brandCounts(w http.ResponseWriter, r *http.Request) {
	var brands []catalog.BrandWithCount
	err := h.cached(r.Context(), catalog.KeyBrandCounts(), &brands, func(ctx context.Context) (interface{}, error) {
		return h.service.BrandsWithProductCount(ctx)
	})
	if err != nil {
		h.unavailable(w, "brand counts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, brands)
}

func (h *Handler) getBrand(w http.ResponseWriter, r *http.Request) {
	brand, found := h.service.BrandBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "brand not found")
		return
	}
	httpx.JSON(w, http.StatusOK, brand)
}

func (h *Handler) brandProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ProductsByBrand(r.Context(), chi.URLParam(r, "slug"), parseLimit(r, catalog.DefaultPageLimit))
	if err != nil {
		h.unavailable(w, "brand products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) categoryProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ProductsByCategory(r.Context(), chi.URLParam(r, "slug"), parseLimit(r, catalog.DefaultPageLimit))
	if err != nil {
		h.unavailable(w, "category products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		categories, err := h.service.FeaturedCategories(r.Context())
		if err != nil {
			h.unavailable(w, "featured categories", err)
			return
		}
		httpx.JSON(w, http.StatusOK, categories)
		return
	}
	categories, err := h.service.Categories(r.Context(), false)
	if err != nil {
		h.unavailable(w, "list categories", err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) categoryTree(w http.ResponseWriter, r *http.Request) {
	var tree []*catalog.CategoryNode
	err := h.cachedSingleflight(r.Context(), catalog.KeyCategoryTree(), &tree, func(ctx context.Context) (interface{}, error) {
		return h.service.CategoryTree(ctx)
	})
	if err != nil {
		h.unavailable(w, "category tree", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tree)
}

func (h *Handler) topLevelCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.TopLevelCategories(r.Context())
	if err != nil {
		h.unavailable(w, "top-level categories", err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	category, found := h.service.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "category not found")
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		collections, err := h.service.FeaturedCollections(r.Context())
		if err != nil {
			h.unavailable(w, "featured collections", err)
			return
		}
		httpx.JSON(w, http.StatusOK, collections)
		return
	}
	collections, err := h.service.Collections(r.Context(), true)
	if err != nil {
		h.unavailable(w, "list collections", err)
		return
	}
	httpx.JSON(w, http.StatusOK, collections)
}

func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	view, found := h.service.CollectionBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "collection not found")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// unavailable renders the generic retryable failure state. Raw store
// errors never reach the response body.
func (h *Handler) unavailable(w http.ResponseWriter, op string, err error) {
	h.logger.Error("catalog request failed", slog.String("op", op), slog.Any("error", err))
	w.Header().Set("Retry-After", "5")
	httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "unable to load, please retry")
}

func parseProductFilter(r *http.Request) catalog.ProductFilter {
	q := r.URL.Query()
	filter := catalog.ProductFilter{
		BrandSlug:    q.Get("brand"),
		CategorySlug: q.Get("category"),
		Search:       q.Get("q"),
	}
	switch g := catalog.Gender(q.Get("gender")); g {
	case catalog.GenderMen, catalog.GenderWomen, catalog.GenderUnisex:
		filter.Gender = &g
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}
	if q.Get("new") != "" {
		isNew := q.Get("new") == "true"
		filter.IsNew = &isNew
	}
	if q.Get("featured") != "" {
		featured := q.Get("featured") == "true"
		filter.IsFeatured = &featured
	}
	if q.Get("sale") == "true" {
		filter.OnSale = true
	}
	if tags := q["tag"]; len(tags) > 0 {
		filter = filter.WithTagSet(tags...)
	}
	return filter
}

func parsePage(r *http.Request) catalog.Page {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return catalog.Page{Limit: limit, Offset: offset}
}

func parseLimit(r *http.Request, fallback int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
