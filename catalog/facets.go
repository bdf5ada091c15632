package catalog

import "github.com/Phirakan/go-storefront/models"

// Facets summarises products for the filter bar. Counts keep the order in
// which values first appear.
func Facets(products []models.Product) models.FilterMetadata {
	meta := models.FilterMetadata{
		Categories: []models.FacetCount{},
		Genders:    []models.FacetCount{},
		Tags:       []models.FacetCount{},
	}

	categories := newCounter()
	genders := newCounter()
	tags := newCounter()

	for _, p := range products {
		if p.InStock() {
			meta.Availability.InStock++
		} else {
			meta.Availability.OutOfStock++
		}

		categories.add(p.Category)
		genders.add(p.Gender)
		for _, t := range p.Tags {
			tags.add(t)
		}

		if meta.PriceRange == nil {
			meta.PriceRange = &models.PriceRangeData{Min: p.Price, Max: p.Price}
			continue
		}
		meta.PriceRange.Min = min(meta.PriceRange.Min, p.Price)
		meta.PriceRange.Max = max(meta.PriceRange.Max, p.Price)
	}

	meta.Categories = categories.counts()
	meta.Genders = genders.counts()
	meta.Tags = tags.counts()
	return meta
}

type counter struct {
	order []string
	n     map[string]int
}

func newCounter() *counter {
	return &counter{n: make(map[string]int)}
}

func (c *counter) add(v string) {
	if v == "" {
		return
	}
	if _, seen := c.n[v]; !seen {
		c.order = append(c.order, v)
	}
	c.n[v]++
}

func (c *counter) counts() []models.FacetCount {
	out := make([]models.FacetCount, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, models.FacetCount{Value: v, Count: c.n[v]})
	}
	return out
}
