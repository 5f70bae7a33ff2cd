package catalog

import "time"

// Gender classifies a product line.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// Brand represents a shoe manufacturer carried by the store.
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	WebsiteURL  string    `json:"website_url"`
	IsFeatured  bool      `json:"is_featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category represents a node in the category forest. ParentID is nil for
// root categories. Cycle-freedom is a store invariant, not checked here.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parent_id"`
	ImageURL    string    `json:"image_url"`
	IsFeatured  bool      `json:"is_featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrandRef is the non-owning brand summary embedded in product records.
type BrandRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRef is the non-owning category summary embedded in product records.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a raw catalog record with its owned child records attached.
// Brand and Category are carried as key references plus slim summaries;
// the full entities live behind their own lookups.
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	SKU              string           `json:"sku"`
	BrandID          string           `json:"brand_id"`
	CategoryID       *string          `json:"category_id"`
	BasePrice        float64          `json:"base_price"`
	CompareAtPrice   *float64         `json:"compare_at_price"`
	Gender           Gender           `json:"gender"`
	IsActive         bool             `json:"is_active"`
	IsFeatured       bool             `json:"is_featured"`
	IsNew            bool             `json:"is_new"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Brand            BrandRef         `json:"brand"`
	Category         *CategoryRef     `json:"category"`
	Variants         []ProductVariant `json:"variants"`
	Images           []ProductImage   `json:"images"`
	Tags             []string         `json:"tags"`
}

// ProductVariant is a sellable configuration of a product. Price, when
// set, overrides the product base price. Inventory is nil when the store
// has no inventory row for the variant.
type ProductVariant struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Name      string     `json:"name"`
	SKU       string     `json:"sku"`
	Price     *float64   `json:"price"`
	Size      string     `json:"size"`
	Color     string     `json:"color"`
	Colorway  string     `json:"colorway"`
	IsActive  bool       `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	Inventory *Inventory `json:"inventory"`
}

// Inventory tracks stock for a single variant.
type Inventory struct {
	VariantID         string `json:"variant_id"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	TrackInventory    bool   `json:"track_inventory"`
	AllowBackorder    bool   `json:"allow_backorder"`
}

// Available reports the sellable quantity (on hand minus reserved).
func (i *Inventory) Available() int {
	if i == nil {
		return 0
	}
	return i.Quantity - i.ReservedQuantity
}

// ProductImage is one image of a product, optionally tied to a variant.
type ProductImage struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id"`
	URL       string  `json:"url"`
	AltText   string  `json:"alt_text"`
	IsPrimary bool    `json:"is_primary"`
	SortOrder int     `json:"sort_order"`
}

// Collection is a curated, ordered grouping of products.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductView is a product record augmented with the derived fields the
// storefront renders. Derived fields are recomputed on every read and
// never persisted.
type ProductView struct {
	Product
	PrimaryImage   string   `json:"primary_image"`
	AvailableSizes []string `json:"available_sizes"`
	InStock        bool     `json:"in_stock"`
	MinPrice       float64  `json:"min_price"`
	MaxPrice       float64  `json:"max_price"`
}

// CollectionView is a collection with its resolved member products.
type CollectionView struct {
	Collection
	Products     []ProductView `json:"products"`
	ProductCount int           `json:"product_count"`
}

// CategoryNode is a category carrying its active-product count and its
// ordered child subtrees.
type CategoryNode struct {
	Category
	ProductCount int             `json:"product_count"`
	Children     []*CategoryNode `json:"subcategories"`
}

// BrandWithCount pairs a brand with its active-product count.
type BrandWithCount struct {
	Brand
	ProductCount int `json:"product_count"`
}

// CategoryWithCount pairs a category with its active-product count.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}
