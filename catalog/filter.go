package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Phirakan/go-storefront/models"
)

// DefaultPageSize is the listing page size used when none is configured
const DefaultPageSize = 16

// SortKey selects the listing order
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// ParseSort maps a query value to a sort key; anything unknown is "newest"
func ParseSort(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLow, SortPriceHigh, SortRating:
		return k
	default:
		return SortNewest
	}
}

// Criteria are the listing filters. Zero values mean "no filter"; all
// present filters must match.
type Criteria struct {
	Category string
	Gender   string
	Tag      string
	Query    string
	MinPrice *int64
	MaxPrice *int64
}

// Query is a full listing request
type Query struct {
	Criteria
	Sort     SortKey
	Page     int
	PageSize int
}

// Result is one page of a listing
type Result struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// Empty reports whether nothing matched the filters
func (r Result) Empty() bool {
	return r.Total == 0
}

// Match reports whether a product satisfies every present criterion
func (c Criteria) Match(p models.Product) bool {
	if c.Category != "" && !strings.EqualFold(p.Category, c.Category) {
		return false
	}
	if c.Gender != "" && !strings.EqualFold(p.Gender, c.Gender) {
		return false
	}
	if c.Tag != "" && !p.HasTag(c.Tag) {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// Filter returns the products matching c, in input order
func Filter(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders products in place. Every order is stable, so ties keep
// their catalog order.
func Sort(products []models.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.RatingValue(), a.RatingValue())
		})
	}
}

// TotalPages is ceil(total/pageSize), 0 when there is nothing to show
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Paginate returns the 1-indexed page of products. A page past the end is
// empty.
func Paginate(products []models.Product, page, pageSize int) []models.Product {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	// Compare page counts rather than offsets so huge pages can't overflow
	if page-1 >= TotalPages(len(products), pageSize) {
		return []models.Product{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(products))
	return products[start:end]
}

// Search filters, sorts and paginates products. The input slice is not
// modified.
func Search(products []models.Product, q Query) Result {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	matched := Filter(products, q.Criteria)
	Sort(matched, q.Sort)

	return Result{
		Items:      Paginate(matched, q.Page, q.PageSize),
		Total:      len(matched),
		TotalPages: TotalPages(len(matched), q.PageSize),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// Search runs a listing query over the whole catalog
func (c *Catalog) Search(q Query) Result {
	return Search(c.All(), q)
}
