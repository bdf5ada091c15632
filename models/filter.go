package models

// FilterMetadata represents the filter data for a listing page
type FilterMetadata struct {
	Availability AvailabilityData `json:"availability"`
	Categories   []FacetCount     `json:"categories"`
	Genders      []FacetCount     `json:"genders"`
	Tags         []FacetCount     `json:"tags"`
	PriceRange   *PriceRangeData  `json:"priceRange"`
}

// FacetCount is a filter value with the number of matching products
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// PriceRangeData represents the minimum and maximum price; nil when there
// are no products.
type PriceRangeData struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}
