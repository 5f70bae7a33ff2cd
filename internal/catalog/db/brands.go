package catalogdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Shyngys777/temporun/internal/catalog"
)

const brandColumns = `
	b.id, b.name, b.slug, COALESCE(b.description, ''), COALESCE(b.logo_url, ''),
	COALESCE(b.website_url, ''), b.is_featured, b.sort_order, b.created_at, b.updated_at`

// ListBrands returns brands in sort order, optionally featured only.
func (r *Repository) ListBrands(ctx context.Context, featuredOnly bool) ([]catalog.Brand, error) {
	query := "SELECT" + brandColumns + " FROM brands b"
	if featuredOnly {
		query += " WHERE b.is_featured = TRUE"
	}
	query += " ORDER BY b.sort_order ASC, b.name ASC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list brands", err)
	}
	defer rows.Close()

	brands := []catalog.Brand{}
	for rows.Next() {
		var b catalog.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, wrapErr("scan brand", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list brands", err)
	}
	return brands, nil
}

// GetBrandBySlug returns one brand, or catalog.ErrNotFound.
func (r *Repository) GetBrandBySlug(ctx context.Context, slug string) (catalog.Brand, error) {
	query := "SELECT" + brandColumns + " FROM brands b WHERE b.slug = $1"
	var b catalog.Brand
	err := scanBrand(r.pool.QueryRow(ctx, query, slug), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Brand{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Brand{}, wrapErr("get brand by slug", err)
	}
	return b, nil
}

// ListBrandsWithCount returns every brand with its active-product count.
func (r *Repository) ListBrandsWithCount(ctx context.Context) ([]catalog.BrandWithCount, error) {
	query := "SELECT" + brandColumns + `,
		COUNT(p.id) FILTER (WHERE p.is_active) AS product_count
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.id
		ORDER BY b.sort_order ASC, b.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list brands with count", err)
	}
	defer rows.Close()

	brands := []catalog.BrandWithCount{}
	for rows.Next() {
		var b catalog.BrandWithCount
		err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Description, &b.LogoURL,
			&b.WebsiteURL, &b.IsFeatured, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt,
			&b.ProductCount,
		)
		if err != nil {
			return nil, wrapErr("scan brand with count", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list brands with count", err)
	}
	return brands, nil
}

func scanBrand(row pgx.Row, b *catalog.Brand) error {
	return row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Description, &b.LogoURL,
		&b.WebsiteURL, &b.IsFeatured, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt,
	)
}
