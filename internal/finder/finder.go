// Package finder implements the guided shoe finder: a fixed
// questionnaire whose answers translate into catalog tag predicates.
// The finder owns no matching logic of its own; every dimension becomes
// one filter constraint and the catalog does the rest.
package finder

import (
	"context"

	"github.com/Shyngys777/temporun/internal/catalog"
)

// Answer values per questionnaire dimension. Every dimension is
// optional; an empty value adds no constraint.
const (
	PurposeDaily  = "daily"
	PurposeRacing = "racing"

	StabilityNone     = "none"
	StabilityLight    = "light"
	StabilityModerate = "moderate"
	StabilityMax      = "max"

	CushioningLow      = "low"
	CushioningModerate = "moderate"
	CushioningHigh     = "high"
)

// Answers holds one completed questionnaire. Zero values mean the
// shopper skipped that step.
type Answers struct {
	Gender     string `json:"gender" validate:"omitempty,oneof=men women"`
	Discipline string `json:"discipline" validate:"omitempty,oneof=road trail cross-country track"`
	Purpose    string `json:"purpose" validate:"omitempty,oneof=daily racing"`
	Stability  string `json:"stability" validate:"omitempty,oneof=none light moderate max"`
	Cushioning string `json:"cushioning" validate:"omitempty,oneof=low moderate high"`
}

// Tag vocabularies per answer. Each set is satisfied by carrying any
// one of its tags; the sets of different dimensions compose with AND.
var (
	purposeTags = map[string][]string{
		PurposeDaily:  {"daily-trainer", "cushioned", "comfort", "neutral", "stability"},
		PurposeRacing: {"racing", "speed", "responsive", "tempo", "lightweight"},
	}
	stabilityTags = map[string][]string{
		StabilityNone:     {"neutral"},
		StabilityLight:    {"neutral", "support"},
		StabilityModerate: {"stability", "support", "overpronation"},
		StabilityMax:      {"stability", "support", "overpronation"},
	}
	cushioningTags = map[string][]string{
		CushioningLow:      {"lightweight", "responsive"},
		CushioningModerate: {"balanced", "versatile"},
		CushioningHigh:     {"cushioned"},
	}
)

// BuildFilter translates answers into a product filter. A gendered
// answer also matches unisex shoes; discipline and the remaining
// dimensions each contribute one tag set.
func BuildFilter(a Answers) catalog.ProductFilter {
	f := catalog.ProductFilter{}
	if a.Gender != "" {
		f.Genders = []catalog.Gender{catalog.Gender(a.Gender), catalog.GenderUnisex}
	}
	if a.Discipline != "" {
		f = f.WithTagSet(a.Discipline)
	}
	if tags, ok := purposeTags[a.Purpose]; ok {
		f = f.WithTagSet(tags...)
	}
	if tags, ok := stabilityTags[a.Stability]; ok {
		f = f.WithTagSet(tags...)
	}
	if tags, ok := cushioningTags[a.Cushioning]; ok {
		f = f.WithTagSet(tags...)
	}
	return f
}

// RecommendationLimit caps a result page at the storefront's quiz grid size.
const RecommendationLimit = 12

// Service resolves questionnaire answers to concrete products.
type Service struct {
	catalog *catalog.Service
}

// NewService wires the finder onto the catalog boundary.
func NewService(catalogService *catalog.Service) *Service {
	return &Service{catalog: catalogService}
}

// Recommend lists the products matching the answers, newest first,
// together with the total match count before the page cut.
func (s *Service) Recommend(ctx context.Context, a Answers) ([]catalog.ProductView, int, error) {
	return s.catalog.ListProducts(ctx, BuildFilter(a), catalog.DefaultSort(), catalog.Page{Limit: RecommendationLimit})
}
