package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sptr(s string) *string { return &s }

func TestCategoryTreeAssembly(t *testing.T) {
	repo := &mockRepository{catCounts: []CategoryWithCount{
		{Category: Category{ID: "road", Name: "Road", SortOrder: 0}, ProductCount: 12},
		{Category: Category{ID: "trail", Name: "Trail", SortOrder: 1}, ProductCount: 4},
		{Category: Category{ID: "racing", Name: "Racing", ParentID: sptr("road")}, ProductCount: 3},
		{Category: Category{ID: "daily", Name: "Daily Trainers", ParentID: sptr("road")}, ProductCount: 9},
	}}
	svc := newTestService(repo)

	tree, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	road := tree[0]
	assert.Equal(t, "Road", road.Name)
	assert.Equal(t, 12, road.ProductCount)
	require.Len(t, road.Children, 2)
	// Children keep fetch order.
	assert.Equal(t, "Racing", road.Children[0].Name)
	assert.Equal(t, "Daily Trainers", road.Children[1].Name)

	assert.Equal(t, "Trail", tree[1].Name)
	assert.Empty(t, tree[1].Children)
}

func TestCategoryTreeDropsOrphans(t *testing.T) {
	repo := &mockRepository{catCounts: []CategoryWithCount{
		{Category: Category{ID: "road", Name: "Road"}},
		{Category: Category{ID: "lost", Name: "Lost", ParentID: sptr("missing")}},
	}}
	svc := newTestService(repo)

	tree, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Road", tree[0].Name)
	assert.Empty(t, tree[0].Children)
}

func TestCategoryTreePropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(&mockRepository{listError: storeErr})

	_, err := svc.CategoryTree(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestTopLevelCategories(t *testing.T) {
	repo := &mockRepository{catCounts: []CategoryWithCount{
		{Category: Category{ID: "road", Name: "Road"}, ProductCount: 12},
		{Category: Category{ID: "racing", Name: "Racing", ParentID: sptr("road")}, ProductCount: 3},
		{Category: Category{ID: "trail", Name: "Trail"}, ProductCount: 4},
	}}
	svc := newTestService(repo)

	roots, err := svc.TopLevelCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Road", roots[0].Name)
	assert.Equal(t, "Trail", roots[1].Name)
}

func TestCategoryBySlugDegradesToNotFound(t *testing.T) {
	svc := newTestService(&mockRepository{lookupError: errors.New("connection refused")})
	_, found := svc.CategoryBySlug(context.Background(), "road")
	assert.False(t, found)
}
