package catalog

import "context"

// Brands lists brands in sort order, optionally restricted to featured
// ones.
func (s *Service) Brands(ctx context.Context, featuredOnly bool) ([]Brand, error) {
	brands, err := s.repo.ListBrands(ctx, featuredOnly)
	if err != nil {
		return nil, listErr("list brands", err)
	}
	return brands, nil
}

// FeaturedBrands lists brands flagged featured.
func (s *Service) FeaturedBrands(ctx context.Context) ([]Brand, error) {
	return s.Brands(ctx, true)
}

// BrandBySlug resolves a single brand; missing rows and store failures
// both yield found=false.
func (s *Service) BrandBySlug(ctx context.Context, slug string) (Brand, bool) {
	brand, err := s.repo.GetBrandBySlug(ctx, slug)
	if err != nil {
		s.lookupFailed("get brand by slug", err)
		return Brand{}, false
	}
	return brand, true
}

// BrandsWithProductCount lists brands with their active-product counts,
// in sort order.
func (s *Service) BrandsWithProductCount(ctx context.Context) ([]BrandWithCount, error) {
	brands, err := s.repo.ListBrandsWithCount(ctx)
	if err != nil {
		return nil, listErr("list brands with count", err)
	}
	return brands, nil
}
