package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Phirakan/go-storefront/catalog"
	"github.com/Phirakan/go-storefront/utils"
)

// GetAllProducts returns one filtered, sorted page of the catalog
func (h *Handler) GetAllProducts(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := intQuery(c, "page", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := intQuery(c, "page_size", h.opts.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize = min(pageSize, maxPageSize)

	result := h.catalog.Search(catalog.Query{
		Criteria: criteria,
		Sort:     catalog.ParseSort(c.Query("sort")),
		Page:     page,
		PageSize: pageSize,
	})

	c.JSON(http.StatusOK, gin.H{
		"products":   result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"pageSize":   result.PageSize,
		"empty":      result.Empty(),
	})
}

// GetProductFacets returns filter metadata for the products matching the
// current filters
func (h *Handler) GetProductFacets(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	matched := catalog.Filter(h.catalog.All(), criteria)
	c.JSON(http.StatusOK, gin.H{"facets": catalog.Facets(matched)})
}

// GetProduct retrieves a product by slug together with related products
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, ok := h.catalog.BySlug(slug)
	if !ok {
		respondError(c, &utils.ErrNotFound{Resource: "product", ID: slug})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"related": h.catalog.Related(product, h.opts.RelatedLimit),
	})
}

// GetCollection returns the products carrying a tag such as "bestseller"
func (h *Handler) GetCollection(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	tag := c.Param("tag")
	c.JSON(http.StatusOK, gin.H{
		"tag":      tag,
		"products": h.catalog.ByTag(tag, limit),
	})
}

func parseCriteria(c *gin.Context) (catalog.Criteria, error) {
	criteria := catalog.Criteria{
		Category: strings.TrimSpace(c.Query("category")),
		Gender:   strings.TrimSpace(c.Query("gender")),
		Tag:      strings.TrimSpace(c.Query("tag")),
		Query:    strings.TrimSpace(c.Query("q")),
	}

	var err error
	if criteria.MinPrice, err = priceQuery(c, "min_price"); err != nil {
		return catalog.Criteria{}, err
	}
	if criteria.MaxPrice, err = priceQuery(c, "max_price"); err != nil {
		return catalog.Criteria{}, err
	}
	return criteria, nil
}

// priceQuery returns nil when the parameter is absent or blank
func priceQuery(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &utils.ErrValidation{
			Message: fmt.Sprintf("invalid %s", name),
			Fields:  map[string]string{name: "must be a whole number"},
		}
	}
	return &v, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &utils.ErrValidation{
			Message: fmt.Sprintf("invalid %s", name),
			Fields:  map[string]string{name: "must be a non-negative whole number"},
		}
	}
	return v, nil
}
