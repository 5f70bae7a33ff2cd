package catalog

import "context"

// ListProducts applies the filter, normalized sort and page window,
// and maps every matching record through the derived-field computer.
// The returned total counts all matching rows before pagination.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter, sort ProductSort, page Page) ([]ProductView, int, error) {
	records, total, err := s.repo.ListProducts(ctx, filter, sort.Normalize(), page.Normalize())
	if err != nil {
		return nil, 0, listErr("list products", err)
	}
	return BuildProductViews(records), total, nil
}

// GetProductBySlug resolves one active product. A missing row and a
// store failure both yield found=false.
func (s *Service) GetProductBySlug(ctx context.Context, slug string) (ProductView, bool) {
	record, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		s.lookupFailed("get product by slug", err)
		return ProductView{}, false
	}
	return BuildProductView(record), true
}

// FeaturedProducts lists featured products, newest first.
func (s *Service) FeaturedProducts(ctx context.Context, limit int) ([]ProductView, error) {
	featured := true
	views, _, err := s.ListProducts(ctx, ProductFilter{IsFeatured: &featured}, DefaultSort(), Page{Limit: limit})
	return views, err
}

// NewArrivals lists products flagged new, newest first.
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]ProductView, error) {
	isNew := true
	views, _, err := s.ListProducts(ctx, ProductFilter{IsNew: &isNew}, DefaultSort(), Page{Limit: limit})
	return views, err
}

// ProductsByBrand lists a brand's products, newest first.
func (s *Service) ProductsByBrand(ctx context.Context, brandSlug string, limit int) ([]ProductView, error) {
	views, _, err := s.ListProducts(ctx, ProductFilter{BrandSlug: brandSlug}, DefaultSort(), Page{Limit: limit})
	return views, err
}

// ProductsByCategory lists a category's products, newest first.
func (s *Service) ProductsByCategory(ctx context.Context, categorySlug string, limit int) ([]ProductView, error) {
	views, _, err := s.ListProducts(ctx, ProductFilter{CategorySlug: categorySlug}, DefaultSort(), Page{Limit: limit})
	return views, err
}

// SaleProducts lists products carrying a compare-at price. The presence
// of that strike-through price is the sole sale criterion; no price
// comparison is performed.
func (s *Service) SaleProducts(ctx context.Context, limit int) ([]ProductView, error) {
	views, _, err := s.ListProducts(ctx, ProductFilter{OnSale: true}, DefaultSort(), Page{Limit: limit})
	return views, err
}

// SearchProducts matches the query case-insensitively against product
// names and descriptions, ordered by name.
func (s *Service) SearchProducts(ctx context.Context, query string, limit int) ([]ProductView, error) {
	sort := ProductSort{Field: SortByName, Direction: SortAsc}
	views, _, err := s.ListProducts(ctx, ProductFilter{Search: query}, sort, Page{Limit: limit})
	return views, err
}
