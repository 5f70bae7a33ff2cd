package catalog

import "sort"

// BuildProductView computes the derived presentation fields for a raw
// product record. It is pure: identical input yields identical output,
// and no input shape (zero images, zero variants, missing inventory)
// produces an error.
func BuildProductView(p Product) ProductView {
	minPrice, maxPrice := priceRange(p.BasePrice, p.Variants)
	return ProductView{
		Product:        p,
		PrimaryImage:   primaryImageURL(p.Images),
		AvailableSizes: availableSizes(p.Variants),
		InStock:        anyInStock(p.Variants),
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
	}
}

// BuildProductViews maps a page of records through BuildProductView.
func BuildProductViews(records []Product) []ProductView {
	views := make([]ProductView, len(records))
	for i, p := range records {
		views[i] = BuildProductView(p)
	}
	return views
}

// primaryImageURL picks the image flagged primary, falling back to the
// first image in list order, then to the empty string. When several
// images are flagged primary the first one in list order wins.
func primaryImageURL(images []ProductImage) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

// availableSizes returns the sorted, de-duplicated sizes of active
// variants with positive available quantity. A variant without an
// inventory row counts as zero. Backorder allowance widens in-stock
// status but never this list.
func availableSizes(variants []ProductVariant) []string {
	seen := make(map[string]struct{})
	sizes := make([]string, 0, len(variants))
	for _, v := range variants {
		if !v.IsActive || v.Inventory.Available() <= 0 {
			continue
		}
		if v.Size == "" {
			continue
		}
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		sizes = append(sizes, v.Size)
	}
	sort.Strings(sizes)
	return sizes
}

// anyInStock reports whether any active variant is sellable: positive
// available quantity, or backorder allowed regardless of quantity.
func anyInStock(variants []ProductVariant) bool {
	for _, v := range variants {
		if !v.IsActive {
			continue
		}
		if v.Inventory.Available() > 0 {
			return true
		}
		if v.Inventory != nil && v.Inventory.AllowBackorder {
			return true
		}
	}
	return false
}

// priceRange aggregates min/max over the active variants' prices, using
// the base price for variants without an override. With no active
// variants the set degenerates to {basePrice}, so the result is always
// defined.
func priceRange(basePrice float64, variants []ProductVariant) (float64, float64) {
	min, max := 0.0, 0.0
	found := false
	for _, v := range variants {
		if !v.IsActive {
			continue
		}
		price := basePrice
		if v.Price != nil {
			price = *v.Price
		}
		if !found {
			min, max = price, price
			found = true
			continue
		}
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	if !found {
		return basePrice, basePrice
	}
	return min, max
}
