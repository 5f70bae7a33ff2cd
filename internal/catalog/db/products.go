package catalogdb

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Shyngys777/temporun/internal/catalog"
	"github.com/Shyngys777/temporun/internal/platform/db"
)

const productColumns = `
	p.id, p.name, p.slug, COALESCE(p.description, ''), COALESCE(p.short_description, ''),
	COALESCE(p.sku, ''), p.brand_id, p.category_id, p.base_price, p.compare_at_price,
	p.gender, p.is_active, p.is_featured, p.is_new, p.created_at, p.updated_at,
	b.name, b.slug, c.id, c.name, c.slug`

const productFrom = `
	FROM products p
	JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id`

// ListProducts selects a page of matching product records with their
// child record sets attached. Count and page run inside one read-only
// snapshot so the total always matches the window it describes.
func (r *Repository) ListProducts(ctx context.Context, filter catalog.ProductFilter, sort catalog.ProductSort, page catalog.Page) ([]catalog.Product, int, error) {
	b := productWhere(filter)

	var (
		total    int
		products []catalog.Product
	)
	err := db.WithReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		countQuery := "SELECT COUNT(*)" + productFrom + b.where()
		if err := tx.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
			return wrapErr("count products", err)
		}
		if total == 0 {
			products = []catalog.Product{}
			return nil
		}

		args := b.args
		query := "SELECT" + productColumns + productFrom + b.where() + orderBy(sort)
		args = append(args, page.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
		args = append(args, page.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return wrapErr("list products", err)
		}
		defer rows.Close()

		products, err = scanProducts(rows)
		if err != nil {
			return wrapErr("scan products", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadChildren(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetProductBySlug selects one active product by slug with children
// attached, returning catalog.ErrNotFound when no row matches.
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	query := "SELECT" + productColumns + productFrom + " WHERE p.slug = $1 AND p.is_active = TRUE"
	rows, err := r.pool.Query(ctx, query, slug)
	if err != nil {
		return catalog.Product{}, wrapErr("get product by slug", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return catalog.Product{}, wrapErr("get product by slug", err)
	}
	if len(products) == 0 {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err := r.loadChildren(ctx, products); err != nil {
		return catalog.Product{}, err
	}
	return products[0], nil
}

func scanProducts(rows pgx.Rows) ([]catalog.Product, error) {
	products := []catalog.Product{}
	for rows.Next() {
		var (
			p       catalog.Product
			gender  string
			catID   *string
			catName *string
			catSlug *string
		)
		err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
			&p.SKU, &p.BrandID, &p.CategoryID, &p.BasePrice, &p.CompareAtPrice,
			&gender, &p.IsActive, &p.IsFeatured, &p.IsNew, &p.CreatedAt, &p.UpdatedAt,
			&p.Brand.Name, &p.Brand.Slug, &catID, &catName, &catSlug,
		)
		if err != nil {
			return nil, err
		}
		p.Gender = catalog.Gender(gender)
		p.Brand.ID = p.BrandID
		if catID != nil {
			ref := catalog.CategoryRef{ID: *catID}
			if catName != nil {
				ref.Name = *catName
			}
			if catSlug != nil {
				ref.Slug = *catSlug
			}
			p.Category = &ref
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// loadChildren eager-loads variants (with inventory), images and tags
// for the given records in one round trip per child set, run
// concurrently, then attaches them in place.
func (r *Repository) loadChildren(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	var (
		variants map[string][]catalog.ProductVariant
		images   map[string][]catalog.ProductImage
		tags     map[string][]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		variants, err = r.variantsByProduct(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = r.imagesByProduct(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = r.tagsByProduct(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range products {
		id := products[i].ID
		products[i].Variants = variants[id]
		products[i].Images = images[id]
		products[i].Tags = tags[id]
		if products[i].Variants == nil {
			products[i].Variants = []catalog.ProductVariant{}
		}
		if products[i].Images == nil {
			products[i].Images = []catalog.ProductImage{}
		}
		if products[i].Tags == nil {
			products[i].Tags = []string{}
		}
	}
	return nil
}

func (r *Repository) variantsByProduct(ctx context.Context, ids []string) (map[string][]catalog.ProductVariant, error) {
	query := `
		SELECT v.id, v.product_id, v.name, COALESCE(v.sku, ''), v.price,
		       COALESCE(v.size, ''), COALESCE(v.color, ''), COALESCE(v.colorway, ''),
		       v.is_active, v.sort_order,
		       i.variant_id, i.quantity, i.reserved_quantity, i.low_stock_threshold,
		       i.track_inventory, i.allow_backorder
		FROM product_variants v
		LEFT JOIN inventory i ON i.variant_id = v.id
		WHERE v.product_id = ANY($1)
		ORDER BY v.product_id, v.sort_order ASC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("load variants", err)
	}
	defer rows.Close()

	result := make(map[string][]catalog.ProductVariant)
	for rows.Next() {
		var (
			v         catalog.ProductVariant
			invID     *string
			qty       *int
			reserved  *int
			threshold *int
			track     *bool
			backorder *bool
		)
		err := rows.Scan(
			&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.Price,
			&v.Size, &v.Color, &v.Colorway, &v.IsActive, &v.SortOrder,
			&invID, &qty, &reserved, &threshold, &track, &backorder,
		)
		if err != nil {
			return nil, wrapErr("scan variant", err)
		}
		if invID != nil {
			v.Inventory = &catalog.Inventory{
				VariantID:         *invID,
				Quantity:          deref(qty),
				ReservedQuantity:  deref(reserved),
				LowStockThreshold: deref(threshold),
				TrackInventory:    derefBool(track),
				AllowBackorder:    derefBool(backorder),
			}
		}
		result[v.ProductID] = append(result[v.ProductID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load variants", err)
	}
	return result, nil
}

func (r *Repository) imagesByProduct(ctx context.Context, ids []string) (map[string][]catalog.ProductImage, error) {
	query := `
		SELECT id, product_id, variant_id, url, COALESCE(alt_text, ''), is_primary, sort_order
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, sort_order ASC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("load images", err)
	}
	defer rows.Close()

	result := make(map[string][]catalog.ProductImage)
	for rows.Next() {
		var img catalog.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.VariantID, &img.URL, &img.AltText, &img.IsPrimary, &img.SortOrder); err != nil {
			return nil, wrapErr("scan image", err)
		}
		result[img.ProductID] = append(result[img.ProductID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load images", err)
	}
	return result, nil
}

func (r *Repository) tagsByProduct(ctx context.Context, ids []string) (map[string][]string, error) {
	query := `
		SELECT product_id, tag
		FROM product_tags
		WHERE product_id = ANY($1)
		ORDER BY product_id, tag ASC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("load tags", err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var productID, tag string
		if err := rows.Scan(&productID, &tag); err != nil {
			return nil, wrapErr("scan tag", err)
		}
		result[productID] = append(result[productID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load tags", err)
	}
	return result, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
