package catalogdb

import (
	"strconv"
	"strings"

	"github.com/Shyngys777/temporun/internal/catalog"
)

// whereBuilder accumulates AND-composed predicates with positional
// arguments. Each # marker in an expression is replaced, left to
// right, with the placeholder of the corresponding argument.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) add(expr string, args ...any) {
	for _, arg := range args {
		b.args = append(b.args, arg)
		n := "$" + strconv.Itoa(len(b.args))
		expr = strings.Replace(expr, "#", n, 1)
	}
	b.clauses = append(b.clauses, expr)
}

func (b *whereBuilder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// productWhere translates a filter into store predicates. Only active
// products are ever eligible; every present filter field contributes
// exactly one additional constraint.
func productWhere(f catalog.ProductFilter) *whereBuilder {
	b := &whereBuilder{}
	b.add("p.is_active = TRUE")

	if f.BrandSlug != "" {
		b.add("b.slug = #", f.BrandSlug)
	}
	if f.CategorySlug != "" {
		b.add("c.slug = #", f.CategorySlug)
	}
	if f.Gender != nil {
		b.add("p.gender = #", string(*f.Gender))
	}
	if len(f.Genders) > 0 {
		genders := make([]string, len(f.Genders))
		for i, g := range f.Genders {
			genders[i] = string(g)
		}
		b.add("p.gender = ANY(#)", genders)
	}
	if f.MinPrice != nil {
		b.add("p.base_price >= #", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("p.base_price <= #", *f.MaxPrice)
	}
	if f.IsNew != nil {
		b.add("p.is_new = #", *f.IsNew)
	}
	if f.IsFeatured != nil {
		b.add("p.is_featured = #", *f.IsFeatured)
	}
	if f.OnSale {
		b.add("p.compare_at_price IS NOT NULL")
	}
	if f.Search != "" {
		b.add("(p.name ILIKE # OR p.description ILIKE #)", "%"+f.Search+"%", "%"+f.Search+"%")
	}
	for _, set := range f.TagSets {
		if len(set) == 0 {
			continue
		}
		b.add("EXISTS (SELECT 1 FROM product_tags pt WHERE pt.product_id = p.id AND pt.tag = ANY(#))", set)
	}
	return b
}

var sortColumns = map[string]string{
	catalog.SortByName:      "p.name",
	catalog.SortByBasePrice: "p.base_price",
	catalog.SortByCreatedAt: "p.created_at",
	catalog.SortByUpdatedAt: "p.updated_at",
}

// orderBy maps a normalized sort onto qualified columns. Anything
// outside the whitelist falls back to newest-first.
func orderBy(sort catalog.ProductSort) string {
	col, ok := sortColumns[sort.Field]
	if !ok {
		col = "p.created_at"
	}
	dir := "DESC"
	if sort.Direction == catalog.SortAsc {
		dir = "ASC"
	}
	return " ORDER BY " + col + " " + dir
}
