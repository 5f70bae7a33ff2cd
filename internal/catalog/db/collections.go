package catalogdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Shyngys777/temporun/internal/catalog"
)

const collectionColumns = `
	col.id, col.name, col.slug, COALESCE(col.description, ''), COALESCE(col.image_url, ''),
	col.is_active, col.is_featured, col.sort_order, col.created_at, col.updated_at`

// ListCollections returns collections in sort order; with activeOnly,
// inactive collections are excluded.
func (r *Repository) ListCollections(ctx context.Context, activeOnly bool) ([]catalog.Collection, error) {
	query := "SELECT" + collectionColumns + " FROM collections col"
	if activeOnly {
		query += " WHERE col.is_active = TRUE"
	}
	query += " ORDER BY col.sort_order ASC, col.name ASC"
	return r.queryCollections(ctx, "list collections", query)
}

// ListFeaturedCollections returns active featured collections in sort
// order.
func (r *Repository) ListFeaturedCollections(ctx context.Context) ([]catalog.Collection, error) {
	query := "SELECT" + collectionColumns +
		" FROM collections col WHERE col.is_active = TRUE AND col.is_featured = TRUE" +
		" ORDER BY col.sort_order ASC, col.name ASC"
	return r.queryCollections(ctx, "list featured collections", query)
}

// GetCollectionBySlug returns one active collection and its member
// products ordered by the join's sort order. Missing and inactive
// collections both map to catalog.ErrNotFound.
func (r *Repository) GetCollectionBySlug(ctx context.Context, slug string) (catalog.Collection, []catalog.Product, error) {
	query := "SELECT" + collectionColumns + " FROM collections col WHERE col.slug = $1 AND col.is_active = TRUE"
	var col catalog.Collection
	err := scanCollection(r.pool.QueryRow(ctx, query, slug), &col)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Collection{}, nil, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Collection{}, nil, wrapErr("get collection by slug", err)
	}

	members, err := r.collectionMembers(ctx, col.ID)
	if err != nil {
		return catalog.Collection{}, nil, err
	}
	return col, members, nil
}

// collectionMembers selects the member products in join order with
// their children attached. Member order comes from the join row, never
// from product attributes.
func (r *Repository) collectionMembers(ctx context.Context, collectionID string) ([]catalog.Product, error) {
	query := "SELECT" + productColumns + `
		FROM product_collections pc
		JOIN products p ON p.id = pc.product_id
		JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE pc.collection_id = $1
		ORDER BY pc.sort_order ASC`

	rows, err := r.pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, wrapErr("list collection members", err)
	}
	defer rows.Close()

	members, err := scanProducts(rows)
	if err != nil {
		return nil, wrapErr("scan collection members", err)
	}
	if err := r.loadChildren(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) queryCollections(ctx context.Context, op, query string) ([]catalog.Collection, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	collections := []catalog.Collection{}
	for rows.Next() {
		var col catalog.Collection
		if err := scanCollection(rows, &col); err != nil {
			return nil, wrapErr(op, err)
		}
		collections = append(collections, col)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return collections, nil
}

func scanCollection(row pgx.Row, col *catalog.Collection) error {
	return row.Scan(
		&col.ID, &col.Name, &col.Slug, &col.Description, &col.ImageURL,
		&col.IsActive, &col.IsFeatured, &col.SortOrder, &col.CreatedAt, &col.UpdatedAt,
	)
}
