package models

import "strings"

// Gender values used by the catalog
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderUnisex = "unisex"
)

// Product represents a catalog product. Products are read-only snapshots;
// the cart and wishlist keep a full copy so persisted state survives a
// catalog change.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"originalPrice,omitempty"` // pre-discount price for sale items
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Gender        string   `json:"gender"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors,omitempty"`
	Stock         int      `json:"stock"`
	SKU           string   `json:"sku"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewCount   *int     `json:"reviewCount,omitempty"`
}

// HasTag reports whether the product carries the given tag
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first image or an empty string
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// RatingValue returns the rating, treating a missing rating as 0
func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// OnSale reports whether the product has a pre-discount price above its price
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// InStock reports whether any stock is left
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a deep copy so callers can't alias slices owned by the catalog
// or the store.
func (p Product) Clone() Product {
	out := p
	out.Tags = cloneStrings(p.Tags)
	out.Images = cloneStrings(p.Images)
	out.Sizes = cloneStrings(p.Sizes)
	out.Colors = cloneStrings(p.Colors)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		out.Rating = &v
	}
	if p.ReviewCount != nil {
		v := *p.ReviewCount
		out.ReviewCount = &v
	}
	return out
}

// matchesFold compares two labels case-insensitively
func matchesFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
