// Package catalog implements the read-side catalog aggregation layer:
// it composes filter, sort and pagination constraints against the
// relational store and maps raw records into the view models the
// storefront consumes. The package never mutates state and keeps no
// state of its own; every operation is safe for concurrent use.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound indicates a single-entity lookup matched nothing, or the
// entity failed an activity predicate.
var ErrNotFound = errors.New("catalog: not found")

// Repository is the store contract the service composes queries
// against. Implementations must report totals before pagination is
// applied and return ErrNotFound for missing single rows.
type Repository interface {
	ListProducts(ctx context.Context, filter ProductFilter, sort ProductSort, page Page) ([]Product, int, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)

	ListBrands(ctx context.Context, featuredOnly bool) ([]Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (Brand, error)
	ListBrandsWithCount(ctx context.Context) ([]BrandWithCount, error)

	ListCategories(ctx context.Context, featuredOnly bool) ([]Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
	ListCategoriesWithCount(ctx context.Context) ([]CategoryWithCount, error)

	ListCollections(ctx context.Context, activeOnly bool) ([]Collection, error)
	ListFeaturedCollections(ctx context.Context) ([]Collection, error)
	GetCollectionBySlug(ctx context.Context, slug string) (Collection, []Product, error)
}

// Service is the catalog query boundary. Listing failures propagate to
// the caller; single-entity lookups degrade to not-found, so callers
// cannot distinguish a missing row from a store failure on those paths.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires a Repository behind the catalog boundary.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// lookupFailed logs a store failure on a single-entity path before it
// is normalized into a not-found result.
func (s *Service) lookupFailed(op string, err error) {
	if errors.Is(err, ErrNotFound) {
		return
	}
	s.logger.Warn("catalog lookup degraded to not-found", slog.String("op", op), slog.Any("error", err))
}

func listErr(op string, err error) error {
	return fmt.Errorf("catalog: %s: %w", op, err)
}
