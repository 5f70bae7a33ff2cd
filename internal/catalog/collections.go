package catalog

import "context"

// Collections lists collections in sort order. With activeOnly set,
// inactive collections are excluded.
func (s *Service) Collections(ctx context.Context, activeOnly bool) ([]Collection, error) {
	collections, err := s.repo.ListCollections(ctx, activeOnly)
	if err != nil {
		return nil, listErr("list collections", err)
	}
	return collections, nil
}

// FeaturedCollections lists active collections flagged featured.
func (s *Service) FeaturedCollections(ctx context.Context) ([]Collection, error) {
	collections, err := s.repo.ListFeaturedCollections(ctx)
	if err != nil {
		return nil, listErr("list featured collections", err)
	}
	return collections, nil
}

// CollectionBySlug resolves an active collection together with its
// member products in join order, each mapped through the derived-field
// computer. Missing or inactive collections, and store failures, all
// yield found=false.
func (s *Service) CollectionBySlug(ctx context.Context, slug string) (CollectionView, bool) {
	collection, members, err := s.repo.GetCollectionBySlug(ctx, slug)
	if err != nil {
		s.lookupFailed("get collection by slug", err)
		return CollectionView{}, false
	}
	views := BuildProductViews(members)
	return CollectionView{
		Collection:   collection,
		Products:     views,
		ProductCount: len(views),
	}, true
}
