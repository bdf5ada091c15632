// Package catalog holds the read-only product catalog and the listing
// pipeline (filter, sort, paginate) that product pages are rendered from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/utils"
)

//go:embed seed.json
var seedJSON []byte

// DefaultRelatedLimit is how many related products a detail page shows
const DefaultRelatedLimit = 4

// Catalog is an immutable, ordered product list with lookup indexes.
// Catalog order is the "newest" order used by listings.
type Catalog struct {
	products []models.Product
	byID     map[string]int
	bySlug   map[string]int
}

// New validates products and builds a catalog over a private copy of them
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}

	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, &utils.ErrValidation{Message: fmt.Sprintf("duplicate product id %q", p.ID)}
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, &utils.ErrValidation{Message: fmt.Sprintf("duplicate product slug %q", p.Slug)}
		}
		c.byID[p.ID] = len(c.products)
		c.bySlug[p.Slug] = len(c.products)
		c.products = append(c.products, p.Clone())
	}

	return c, nil
}

// Default returns the built-in apparel catalog
func Default() (*Catalog, error) {
	return Parse(seedJSON)
}

// LoadFile reads a JSON array of products from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of products
func Parse(data []byte) (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(products)
}

func validate(p models.Product) error {
	invalid := func(format string, args ...any) error {
		return &utils.ErrValidation{
			Message: fmt.Sprintf("product %q: %s", p.ID, fmt.Sprintf(format, args...)),
		}
	}

	switch {
	case p.ID == "":
		return &utils.ErrValidation{Message: "product id is required"}
	case p.Slug == "":
		return invalid("slug is required")
	case p.Price <= 0:
		return invalid("price must be positive, got %d", p.Price)
	case p.OriginalPrice != nil && *p.OriginalPrice < p.Price:
		return invalid("original price %d is below price %d", *p.OriginalPrice, p.Price)
	case p.Stock < 0:
		return invalid("stock cannot be negative")
	case p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5):
		return invalid("rating %.1f out of range 0-5", *p.Rating)
	case p.ReviewCount != nil && *p.ReviewCount < 0:
		return invalid("review count cannot be negative")
	}
	return nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns every product in catalog order
func (c *Catalog) All() []models.Product {
	return c.collect(func(models.Product) bool { return true }, 0)
}

// ByID looks a product up by id
func (c *Catalog) ByID(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i].Clone(), true
}

// BySlug looks a product up by slug
func (c *Catalog) BySlug(slug string) (models.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i].Clone(), true
}

// ByCategory returns products of a category; limit <= 0 means no limit
func (c *Catalog) ByCategory(category string, limit int) []models.Product {
	return c.collect(func(p models.Product) bool {
		return strings.EqualFold(p.Category, category)
	}, limit)
}

// ByGender returns products for a gender; limit <= 0 means no limit
func (c *Catalog) ByGender(gender string, limit int) []models.Product {
	return c.collect(func(p models.Product) bool {
		return strings.EqualFold(p.Gender, gender)
	}, limit)
}

// ByTag returns products carrying tag; limit <= 0 means no limit
func (c *Catalog) ByTag(tag string, limit int) []models.Product {
	return c.collect(func(p models.Product) bool {
		return p.HasTag(tag)
	}, limit)
}

// Related returns other products from the same category
func (c *Catalog) Related(product models.Product, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return c.collect(func(p models.Product) bool {
		return p.ID != product.ID && strings.EqualFold(p.Category, product.Category)
	}, limit)
}

func (c *Catalog) collect(keep func(models.Product) bool, limit int) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range c.products {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
