package catalog

import "context"

// Categories lists categories in sort order, optionally restricted to
// featured ones.
func (s *Service) Categories(ctx context.Context, featuredOnly bool) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx, featuredOnly)
	if err != nil {
		return nil, listErr("list categories", err)
	}
	return categories, nil
}

// FeaturedCategories lists categories flagged featured.
func (s *Service) FeaturedCategories(ctx context.Context) ([]Category, error) {
	return s.Categories(ctx, true)
}

// CategoryBySlug resolves a single category; missing rows and store
// failures both yield found=false.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (Category, bool) {
	category, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		s.lookupFailed("get category by slug", err)
		return Category{}, false
	}
	return category, true
}

// TopLevelCategories lists root categories with their active-product
// counts, in sort order.
func (s *Service) TopLevelCategories(ctx context.Context) ([]CategoryWithCount, error) {
	all, err := s.repo.ListCategoriesWithCount(ctx)
	if err != nil {
		return nil, listErr("list top-level categories", err)
	}
	roots := make([]CategoryWithCount, 0, len(all))
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

// CategoryTree assembles the category forest. Every fetched category
// becomes a node carrying its active-product count; children attach to
// their parents in fetch order, and roots keep that order too. A node
// whose parent is absent from the fetched set is dropped from the tree
// rather than promoted to root.
func (s *Service) CategoryTree(ctx context.Context) ([]*CategoryNode, error) {
	all, err := s.repo.ListCategoriesWithCount(ctx)
	if err != nil {
		return nil, listErr("category tree", err)
	}
	return assembleTree(all), nil
}

func assembleTree(categories []CategoryWithCount) []*CategoryNode {
	nodes := make(map[string]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{
			Category:     c.Category,
			ProductCount: c.ProductCount,
			Children:     []*CategoryNode{},
		}
	}

	roots := make([]*CategoryNode, 0, len(categories))
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// Orphaned subtree: parent not in the fetched set.
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
