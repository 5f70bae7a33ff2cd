package finder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shyngys777/temporun/internal/catalog"
)

func TestBuildFilterEmptyAnswers(t *testing.T) {
	f := BuildFilter(Answers{})
	assert.Empty(t, f.Genders)
	assert.Empty(t, f.TagSets)
}

func TestBuildFilterGenderIncludesUnisex(t *testing.T) {
	f := BuildFilter(Answers{Gender: "women"})
	assert.Equal(t, []catalog.Gender{catalog.GenderWomen, catalog.GenderUnisex}, f.Genders)
}

func TestBuildFilterFullQuestionnaire(t *testing.T) {
	f := BuildFilter(Answers{
		Gender:     "men",
		Discipline: "trail",
		Purpose:    PurposeRacing,
		Stability:  StabilityLight,
		Cushioning: CushioningHigh,
	})

	require.Len(t, f.TagSets, 4)
	assert.Equal(t, []string{"trail"}, f.TagSets[0])
	assert.Equal(t, []string{"racing", "speed", "responsive", "tempo", "lightweight"}, f.TagSets[1])
	assert.Equal(t, []string{"neutral", "support"}, f.TagSets[2])
	assert.Equal(t, []string{"cushioned"}, f.TagSets[3])
}

func TestBuildFilterMaxStabilityMatchesModerate(t *testing.T) {
	moderate := BuildFilter(Answers{Stability: StabilityModerate})
	max := BuildFilter(Answers{Stability: StabilityMax})
	assert.Equal(t, moderate.TagSets, max.TagSets)
}

// ============================================================================
// HANDLER
// ============================================================================

type stubCatalogRepo struct {
	lastFilter catalog.ProductFilter
	lastPage   catalog.Page
}

func (s *stubCatalogRepo) ListProducts(ctx context.Context, filter catalog.ProductFilter, sort catalog.ProductSort, page catalog.Page) ([]catalog.Product, int, error) {
	s.lastFilter, s.lastPage = filter, page
	return []catalog.Product{{Slug: "speedgoat-6"}}, 1, nil
}

func (s *stubCatalogRepo) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	return catalog.Product{}, catalog.ErrNotFound
}

func (s *stubCatalogRepo) ListBrands(ctx context.Context, featuredOnly bool) ([]catalog.Brand, error) {
	return nil, nil
}

func (s *stubCatalogRepo) GetBrandBySlug(ctx context.Context, slug string) (catalog.Brand, error) {
	return catalog.Brand{}, catalog.ErrNotFound
}

func (s *stubCatalogRepo) ListBrandsWithCount(ctx context.Context) ([]catalog.BrandWithCount, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListCategories(ctx context.Context, featuredOnly bool) ([]catalog.Category, error) {
	return nil, nil
}

func (s *stubCatalogRepo) GetCategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	return catalog.Category{}, catalog.ErrNotFound
}

func (s *stubCatalogRepo) ListCategoriesWithCount(ctx context.Context) ([]catalog.CategoryWithCount, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListCollections(ctx context.Context, activeOnly bool) ([]catalog.Collection, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListFeaturedCollections(ctx context.Context) ([]catalog.Collection, error) {
	return nil, nil
}

func (s *stubCatalogRepo) GetCollectionBySlug(ctx context.Context, slug string) (catalog.Collection, []catalog.Product, error) {
	return catalog.Collection{}, nil, catalog.ErrNotFound
}

func newTestHandler(repo *stubCatalogRepo) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(catalog.NewService(repo, logger))
	r := chi.NewRouter()
	NewHandler(logger, service).MountRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRecommendEndpoint(t *testing.T) {
	repo := &stubCatalogRepo{}
	r := newTestHandler(repo)

	rr := postJSON(t, r, "/finder/recommendations", Answers{Gender: "men", Purpose: PurposeDaily})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp recommendResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "speedgoat-6", resp.Products[0].Slug)
	assert.Equal(t, 1, resp.Total)

	assert.Equal(t, RecommendationLimit, repo.lastPage.Limit)
	assert.Equal(t, []catalog.Gender{catalog.GenderMen, catalog.GenderUnisex}, repo.lastFilter.Genders)
	require.Len(t, repo.lastFilter.TagSets, 1)
}

func TestRecommendRejectsUnknownAnswer(t *testing.T) {
	r := newTestHandler(&stubCatalogRepo{})

	rr := postJSON(t, r, "/finder/recommendations", map[string]string{"gender": "kids"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "gender")
}

func TestRecommendRejectsMalformedBody(t *testing.T) {
	r := newTestHandler(&stubCatalogRepo{})

	req := httptest.NewRequest(http.MethodPost, "/finder/recommendations", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
