package catalogdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Shyngys777/temporun/internal/catalog"
)

const categoryColumns = `
	c.id, c.name, c.slug, COALESCE(c.description, ''), c.parent_id,
	COALESCE(c.image_url, ''), c.is_featured, c.sort_order, c.created_at, c.updated_at`

// ListCategories returns categories in sort order, optionally featured
// only.
func (r *Repository) ListCategories(ctx context.Context, featuredOnly bool) ([]catalog.Category, error) {
	query := "SELECT" + categoryColumns + " FROM categories c"
	if featuredOnly {
		query += " WHERE c.is_featured = TRUE"
	}
	query += " ORDER BY c.sort_order ASC, c.name ASC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	defer rows.Close()

	categories := []catalog.Category{}
	for rows.Next() {
		var c catalog.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, wrapErr("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list categories", err)
	}
	return categories, nil
}

// GetCategoryBySlug returns one category, or catalog.ErrNotFound.
func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	query := "SELECT" + categoryColumns + " FROM categories c WHERE c.slug = $1"
	var c catalog.Category
	err := scanCategory(r.pool.QueryRow(ctx, query, slug), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Category{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Category{}, wrapErr("get category by slug", err)
	}
	return c, nil
}

// ListCategoriesWithCount returns every category with its active-product
// count, in the sort order the hierarchy assembler expects.
func (r *Repository) ListCategoriesWithCount(ctx context.Context) ([]catalog.CategoryWithCount, error) {
	query := "SELECT" + categoryColumns + `,
		COUNT(p.id) FILTER (WHERE p.is_active) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order ASC, c.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list categories with count", err)
	}
	defer rows.Close()

	categories := []catalog.CategoryWithCount{}
	for rows.Next() {
		var c catalog.CategoryWithCount
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
			&c.ImageURL, &c.IsFeatured, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		)
		if err != nil {
			return nil, wrapErr("scan category with count", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list categories with count", err)
	}
	return categories, nil
}

func scanCategory(row pgx.Row, c *catalog.Category) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
		&c.ImageURL, &c.IsFeatured, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
}
