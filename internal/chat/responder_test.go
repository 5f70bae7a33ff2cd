package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

type stubCatalogRepo struct {
	brands   []catalog.Brand
	products []catalog.Product
	failAll  bool
}

func (s *stubCatalogRepo) ListProducts(ctx context.Context, filter catalog.ProductFilter, sort catalog.ProductSort, page catalog.Page) ([]catalog.Product, int, error) {
	if s.failAll {
		return nil, 0, errors.New("connection refused")
	}
	return s.products, len(s.products), nil
}

func (s *stubCatalogRepo) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	return catalog.Product{}, catalog.ErrNotFound
}

func (s *stubCatalogRepo) ListBrands(ctx context.Context, featuredOnly bool) ([]catalog.Brand, error) {
	if s.failAll {
		return nil, errors.New("connection refused")
	}
	return s.brands, nil
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

func newTestResponder(repo *stubCatalogRepo) *Responder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResponder(catalog.NewService(repo, logger))
}

func TestReplyKeywordTable(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{})
	ctx := context.Background()

	assert.Contains(t, r.Reply(ctx, "Hello"), "running journey")
	assert.Contains(t, r.Reply(ctx, "how do returns work?"), "30-day return policy")
	assert.Contains(t, r.Reply(ctx, "tell me about Hoka"), "maximum cushioning")
	assert.Contains(t, r.Reply(ctx, "Рахмет"), "Рахмет")
}

func TestReplyShortGreetingNeedsOwnWord(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{})
	ctx := context.Background()

	// "shipping" contains "hi" but must hit the shipping answer.
	assert.Contains(t, r.Reply(ctx, "What are your shipping options and times?"), "free standard shipping")
	assert.Contains(t, r.Reply(ctx, "hi there"), "running assistant")
}

func TestReplyFallback(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{})
	reply := r.Reply(context.Background(), "what is the meaning of life")
	assert.Equal(t, fallbackReply, reply)
}

func TestBrandsReplyUsesLiveCatalog(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{brands: []catalog.Brand{
		{Name: "nike"},
		{Name: "hoka"},
		{Name: "saucony"},
	}})

	reply := r.Reply(context.Background(), "which brands do you carry?")
	assert.Contains(t, reply, "Nike, Hoka and Saucony")
}

func TestBrandsReplyFallsBackOnStoreFailure(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{failAll: true})

	reply := r.Reply(context.Background(), "which brands do you carry?")
	assert.Contains(t, reply, "New Balance")
}

func TestSearchIntent(t *testing.T) {
	r := newTestResponder(&stubCatalogRepo{products: []catalog.Product{
		{Name: "Pegasus 41"},
		{Name: "Pegasus Plus"},
	}})

	reply := r.Reply(context.Background(), "find pegasus")
	assert.Contains(t, reply, "Pegasus 41 and Pegasus Plus")

	empty := newTestResponder(&stubCatalogRepo{})
	assert.Contains(t, empty.Reply(context.Background(), "find unobtainium"), "couldn't find")
}

// ============================================================================
// HANDLER
// ============================================================================

func newTestRouter(repo *stubCatalogRepo) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewHandler(logger, newTestResponder(repo), NewStore()).MountRoutes(r)
	return r
}

func TestConversationFlow(t *testing.T) {
	r := newTestRouter(&stubCatalogRepo{})

	// Start.
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat/conversations", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	var conv Conversation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &conv))
	require.NotEmpty(t, conv.ID)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, Greeting, conv.Messages[0].Content)

	// Send a message.
	body, _ := json.Marshal(sendMessageRequest{Message: "hello"})
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat/conversations/"+conv.ID+"/messages", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &conv))
	require.Len(t, conv.Messages, 3)
	assert.False(t, conv.Messages[1].IsBot)
	assert.True(t, conv.Messages[2].IsBot)

	// Fetch the transcript.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/chat/conversations/"+conv.ID, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSendMessageValidation(t *testing.T) {
	r := newTestRouter(&stubCatalogRepo{})

	body, _ := json.Marshal(sendMessageRequest{Message: "  "})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat/conversations/some-id/messages", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body, _ = json.Marshal(sendMessageRequest{Message: "hello"})
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat/conversations/unknown/messages", bytes.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
