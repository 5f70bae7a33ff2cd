package catalog

import "strings"

// ProductFilter collects the optional constraints of a product listing.
// Absent fields add no constraint; present fields compose with AND.
// Inactive products are excluded unconditionally, regardless of any
// field here. Price bounds apply to the stored base price, not to the
// derived min/max prices; filtering happens at the store before
// variant-level aggregation.
type ProductFilter struct {
	BrandSlug    string
	CategorySlug string
	Gender       *Gender
	Genders      []Gender
	MinPrice     *float64
	MaxPrice     *float64
	IsNew        *bool
	IsFeatured   *bool
	OnSale       bool
	Search       string
	TagSets      [][]string
}

// WithTagSet adds one tag-membership constraint: the product must carry
// at least one tag from the set. Separate sets compose with AND, which
// lets callers such as the shoe finder express per-dimension tag
// predicates without duplicating filter logic.
func (f ProductFilter) WithTagSet(tags ...string) ProductFilter {
	if len(tags) == 0 {
		return f
	}
	f.TagSets = append(f.TagSets, tags)
	return f
}

// Sort field whitelist for product listings.
const (
	SortByName      = "name"
	SortByBasePrice = "base_price"
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ProductSort names a sort field and direction.
type ProductSort struct {
	Field     string
	Direction string
}

// DefaultSort is newest-first, applied when the caller specifies nothing.
func DefaultSort() ProductSort {
	return ProductSort{Field: SortByCreatedAt, Direction: SortDesc}
}

var sortFields = map[string]struct{}{
	SortByName:      {},
	SortByBasePrice: {},
	SortByCreatedAt: {},
	SortByUpdatedAt: {},
}

// Normalize clamps the sort to the field whitelist and a valid
// direction, substituting the default for anything unrecognized.
func (s ProductSort) Normalize() ProductSort {
	field := strings.ToLower(strings.TrimSpace(s.Field))
	if _, ok := sortFields[field]; !ok {
		return DefaultSort()
	}
	dir := strings.ToLower(strings.TrimSpace(s.Direction))
	if dir != SortAsc && dir != SortDesc {
		dir = SortDesc
	}
	return ProductSort{Field: field, Direction: dir}
}

// Page is an offset/limit window. Neither value is bounded here;
// request sizing is the caller's responsibility.
type Page struct {
	Limit  int
	Offset int
}

// Normalize substitutes the default limit and floors a negative offset.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// DefaultPageLimit matches the storefront's default listing size.
const DefaultPageLimit = 50
