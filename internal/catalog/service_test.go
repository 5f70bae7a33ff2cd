package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	products    []Product
	total       int
	brands      []Brand
	brandCounts []BrandWithCount
	categories  []Category
	catCounts   []CategoryWithCount
	collections []Collection
	collection  Collection
	members     []Product

	// Captured arguments from the last ListProducts call.
	lastFilter ProductFilter
	lastSort   ProductSort
	lastPage   Page

	// Error injection
	listError   error
	lookupError error
}

func (m *mockRepository) ListProducts(ctx context.Context, filter ProductFilter, sort ProductSort, page Page) ([]Product, int, error) {
	m.lastFilter, m.lastSort, m.lastPage = filter, sort, page
	if m.listError != nil {
		return nil, 0, m.listError
	}
	return m.products, m.total, nil
}

func (m *mockRepository) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	if m.lookupError != nil {
		return Product{}, m.lookupError
	}
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (m *mockRepository) ListBrands(ctx context.Context, featuredOnly bool) ([]Brand, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	if !featuredOnly {
		return m.brands, nil
	}
	out := []Brand{}
	for _, b := range m.brands {
		if b.IsFeatured {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockRepository) GetBrandBySlug(ctx context.Context, slug string) (Brand, error) {
	if m.lookupError != nil {
		return Brand{}, m.lookupError
	}
	for _, b := range m.brands {
		if b.Slug == slug {
			return b, nil
		}
	}
	return Brand{}, ErrNotFound
}

func (m *mockRepository) ListBrandsWithCount(ctx context.Context) ([]BrandWithCount, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.brandCounts, nil
}

func (m *mockRepository) ListCategories(ctx context.Context, featuredOnly bool) ([]Category, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.categories, nil
}

func (m *mockRepository) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	if m.lookupError != nil {
		return Category{}, m.lookupError
	}
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (m *mockRepository) ListCategoriesWithCount(ctx context.Context) ([]CategoryWithCount, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.catCounts, nil
}

func (m *mockRepository) ListCollections(ctx context.Context, activeOnly bool) ([]Collection, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.collections, nil
}

func (m *mockRepository) ListFeaturedCollections(ctx context.Context) ([]Collection, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := []Collection{}
	for _, c := range m.collections {
		if c.IsFeatured {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) GetCollectionBySlug(ctx context.Context, slug string) (Collection, []Product, error) {
	if m.lookupError != nil {
		return Collection{}, nil, m.lookupError
	}
	if m.collection.Slug != slug {
		return Collection{}, nil, ErrNotFound
	}
	return m.collection, m.members, nil
}

func newTestService(repo *mockRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ============================================================================
// PRODUCTS
// ============================================================================

func TestListProductsMapsViewsAndTotal(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{Slug: "pegasus-41", BasePrice: 139.99, Images: []ProductImage{{URL: "p.jpg", IsPrimary: true}}},
		},
		total: 37,
	}
	svc := newTestService(repo)

	views, total, err := svc.ListProducts(context.Background(), ProductFilter{}, ProductSort{}, Page{})
	require.NoError(t, err)
	assert.Equal(t, 37, total)
	require.Len(t, views, 1)
	assert.Equal(t, "p.jpg", views[0].PrimaryImage)

	// Listing normalizes sort and page before the store sees them.
	assert.Equal(t, DefaultSort(), repo.lastSort)
	assert.Equal(t, Page{Limit: DefaultPageLimit}, repo.lastPage)
}

func TestListProductsPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(&mockRepository{listError: storeErr})

	_, _, err := svc.ListProducts(context.Background(), ProductFilter{}, ProductSort{}, Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestGetProductBySlugDegradesToNotFound(t *testing.T) {
	// Missing row.
	svc := newTestService(&mockRepository{})
	_, found := svc.GetProductBySlug(context.Background(), "nope")
	assert.False(t, found)

	// Store failure looks the same to the caller.
	svc = newTestService(&mockRepository{lookupError: errors.New("connection refused")})
	_, found = svc.GetProductBySlug(context.Background(), "pegasus-41")
	assert.False(t, found)
}

func TestGetProductBySlugFound(t *testing.T) {
	repo := &mockRepository{products: []Product{{Slug: "pegasus-41", BasePrice: 139.99}}}
	svc := newTestService(repo)

	view, found := svc.GetProductBySlug(context.Background(), "pegasus-41")
	require.True(t, found)
	assert.Equal(t, 139.99, view.MinPrice)
}

func TestSaleProductsFiltersOnCompareAtPrice(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	_, err := svc.SaleProducts(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.OnSale)
	assert.Equal(t, 10, repo.lastPage.Limit)
}

func TestSearchProductsSortsByNameAscending(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	_, err := svc.SearchProducts(context.Background(), "pegasus", 20)
	require.NoError(t, err)
	assert.Equal(t, "pegasus", repo.lastFilter.Search)
	assert.Equal(t, ProductSort{Field: SortByName, Direction: SortAsc}, repo.lastSort)
}

func TestFeaturedAndNewFilters(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	_, err := svc.FeaturedProducts(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.IsFeatured)
	assert.True(t, *repo.lastFilter.IsFeatured)

	_, err = svc.NewArrivals(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.IsNew)
	assert.True(t, *repo.lastFilter.IsNew)
}

// ============================================================================
// BRANDS
// ============================================================================

func TestBrandLookupAsymmetry(t *testing.T) {
	storeErr := errors.New("connection refused")

	// Listing surfaces the failure.
	svc := newTestService(&mockRepository{listError: storeErr})
	_, err := svc.Brands(context.Background(), false)
	assert.ErrorIs(t, err, storeErr)

	// Lookup hides it behind not-found.
	svc = newTestService(&mockRepository{lookupError: storeErr})
	_, found := svc.BrandBySlug(context.Background(), "nike")
	assert.False(t, found)
}

func TestFeaturedBrands(t *testing.T) {
	repo := &mockRepository{brands: []Brand{
		{Slug: "nike", IsFeatured: true},
		{Slug: "hoka"},
	}}
	svc := newTestService(repo)

	brands, err := svc.FeaturedBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "nike", brands[0].Slug)
}
