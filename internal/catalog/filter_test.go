package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortNormalizeWhitelist(t *testing.T) {
	got := ProductSort{Field: "base_price", Direction: "asc"}.Normalize()
	assert.Equal(t, ProductSort{Field: SortByBasePrice, Direction: SortAsc}, got)

	got = ProductSort{Field: " Name ", Direction: "DESC"}.Normalize()
	assert.Equal(t, ProductSort{Field: SortByName, Direction: SortDesc}, got)
}

func TestSortNormalizeRejectsUnknownField(t *testing.T) {
	for _, field := range []string{"", "price; DROP TABLE products", "sku", "relevance"} {
		assert.Equal(t, DefaultSort(), ProductSort{Field: field, Direction: "asc"}.Normalize(), field)
	}
}

func TestSortNormalizeDefaultsDirection(t *testing.T) {
	got := ProductSort{Field: "name", Direction: "sideways"}.Normalize()
	assert.Equal(t, SortDesc, got.Direction)
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultPageLimit, Offset: 0}, Page{}.Normalize())
	assert.Equal(t, Page{Limit: DefaultPageLimit, Offset: 0}, Page{Limit: -5, Offset: -1}.Normalize())
	assert.Equal(t, Page{Limit: 12, Offset: 24}, Page{Limit: 12, Offset: 24}.Normalize())
}

func TestWithTagSet(t *testing.T) {
	f := ProductFilter{}.
		WithTagSet("racing", "speed").
		WithTagSet("road").
		WithTagSet()

	assert.Equal(t, [][]string{{"racing", "speed"}, {"road"}}, f.TagSets)
}
