package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phirakan/go-storefront/models"
)

func ids(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func prices(ps []models.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Price)
	}
	return out
}

func seed(t *testing.T) []models.Product {
	t.Helper()
	cat, err := Default()
	require.NoError(t, err)
	return cat.All()
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSort("price-low"))
	assert.Equal(t, SortPriceHigh, ParseSort(" PRICE-HIGH "))
	assert.Equal(t, SortRating, ParseSort("rating"))
	assert.Equal(t, SortNewest, ParseSort("newest"))
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("featured"))
}

func TestFilterCriteria(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Linen Shirt", Description: "light", Price: 1000, Category: "shirt", Gender: "men", Tags: []string{"new-arrival"}},
		{ID: "2", Name: "Chino", Description: "Slim LINEN blend", Price: 2000, Category: "pant", Gender: "women", Tags: []string{"trending"}},
		{ID: "3", Name: "Polo", Description: "pique", Price: 3000, Category: "Shirt", Gender: "unisex", Tags: []string{"trending", "bestseller"}},
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no filters", Criteria{}, []string{"1", "2", "3"}},
		{"category case-insensitive", Criteria{Category: "SHIRT"}, []string{"1", "3"}},
		{"gender", Criteria{Gender: "Women"}, []string{"2"}},
		{"tag", Criteria{Tag: "trending"}, []string{"2", "3"}},
		{"tag is case-sensitive", Criteria{Tag: "Trending"}, []string{}},
		{"max price inclusive", Criteria{MaxPrice: ptr(int64(2000))}, []string{"1", "2"}},
		{"min price inclusive", Criteria{MinPrice: ptr(int64(2000))}, []string{"2", "3"}},
		{"zero max price filters", Criteria{MaxPrice: ptr(int64(0))}, []string{}},
		{"min above max", Criteria{MinPrice: ptr(int64(2500)), MaxPrice: ptr(int64(1500))}, []string{}},
		{"query matches name", Criteria{Query: "polo"}, []string{"3"}},
		{"query matches name or description", Criteria{Query: "linen"}, []string{"1", "2"}},
		{"combined", Criteria{Category: "shirt", Tag: "bestseller"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(products, tt.criteria)))
		})
	}
}

func TestCategoryFiltersPartitionCatalog(t *testing.T) {
	products := seed(t)

	shirts := Filter(products, Criteria{Category: "shirt"})
	pants := Filter(products, Criteria{Category: "pant"})

	seen := map[string]bool{}
	for _, p := range shirts {
		seen[p.ID] = true
	}
	for _, p := range pants {
		assert.False(t, seen[p.ID], "product %s is both shirt and pant", p.ID)
		seen[p.ID] = true
	}
	for _, p := range products {
		if p.Category != "shirt" && p.Category != "pant" {
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, len(products))
}

func TestSortIsStable(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 2000, Rating: ptr(4.5)},
		{ID: "b", Price: 1000},
		{ID: "c", Price: 2000, Rating: ptr(4.5)},
		{ID: "d", Price: 1000, Rating: ptr(4.9)},
		{ID: "e", Price: 3000, Rating: ptr(0.0)},
	}

	sorted := func(key SortKey) []string {
		cp := append([]models.Product(nil), products...)
		Sort(cp, key)
		return ids(cp)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, sorted(SortNewest))
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, sorted(SortPriceLow))
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, sorted(SortPriceHigh))
	// missing rating counts as 0 and ties with "e"
	assert.Equal(t, []string{"d", "a", "c", "b", "e"}, sorted(SortRating))
}

func TestSearchSortsBeforePaginating(t *testing.T) {
	products := seed(t)

	var all []models.Product
	for page := 1; ; page++ {
		res := Search(products, Query{Sort: SortPriceLow, Page: page, PageSize: 5})
		if len(res.Items) == 0 {
			break
		}
		all = append(all, res.Items...)
	}

	require.Len(t, all, len(products))
	got := prices(all)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1], got[i])
	}
	assert.Equal(t, int64(1299), got[0])
	assert.Equal(t, int64(2799), got[len(got)-1])
}

func TestPaginationReconstructsList(t *testing.T) {
	products := make([]models.Product, 0, 23)
	for i := 0; i < 23; i++ {
		products = append(products, models.Product{ID: fmt.Sprint(i), Price: int64(100 + i%4)})
	}

	for _, size := range []int{1, 3, 5, 16, 23, 40} {
		t.Run(fmt.Sprintf("page size %d", size), func(t *testing.T) {
			first := Search(products, Query{Sort: SortPriceHigh, PageSize: size})
			wantPages := (23 + size - 1) / size
			assert.Equal(t, wantPages, first.TotalPages)
			assert.Equal(t, 23, first.Total)

			full := Search(products, Query{Sort: SortPriceHigh, PageSize: 1000}).Items

			var joined []models.Product
			for page := 1; page <= first.TotalPages; page++ {
				res := Search(products, Query{Sort: SortPriceHigh, Page: page, PageSize: size})
				joined = append(joined, res.Items...)
			}
			assert.Equal(t, ids(full), ids(joined))

			past := Search(products, Query{Sort: SortPriceHigh, Page: first.TotalPages + 1, PageSize: size})
			assert.Empty(t, past.Items)
			assert.Equal(t, 23, past.Total)
		})
	}
}

func TestSearchEdgeCases(t *testing.T) {
	empty := Search(nil, Query{Criteria: Criteria{Category: "shirt"}})
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.Empty())

	products := seed(t)
	res := Search(products, Query{Page: 0, PageSize: 0})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, DefaultPageSize, res.PageSize)
	assert.Len(t, res.Items, 12)
	assert.Equal(t, 1, res.TotalPages)

	none := Search(products, Query{Criteria: Criteria{MinPrice: ptr(int64(3000)), MaxPrice: ptr(int64(1000))}})
	assert.True(t, none.Empty())
	assert.Equal(t, 0, none.TotalPages)
}

func TestSearchHugePages(t *testing.T) {
	products := seed(t)

	res := Search(products, Query{Page: math.MaxInt, PageSize: DefaultPageSize})
	assert.Empty(t, res.Items)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, math.MaxInt, res.Page)

	res = Search(products, Query{Page: math.MaxInt / 2, PageSize: 5})
	assert.Empty(t, res.Items)

	res = Search(products, Query{Page: 1, PageSize: math.MaxInt})
	assert.Len(t, res.Items, 12)
	assert.Equal(t, 1, res.TotalPages)

	assert.Empty(t, Paginate(products, math.MaxInt, math.MaxInt))
}

func TestSearchDoesNotReorderInput(t *testing.T) {
	products := []models.Product{{ID: "1", Price: 3}, {ID: "2", Price: 1}, {ID: "3", Price: 2}}
	Search(products, Query{Sort: SortPriceLow})
	assert.Equal(t, []string{"1", "2", "3"}, ids(products))
}

func TestCategoryAndTagScenario(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 1000, Category: "shirt"},
		{ID: "b", Price: 2000, Category: "shirt", Tags: []string{"bestseller"}},
		{ID: "c", Price: 3000, Category: "shirt"},
	}

	res := Search(products, Query{Criteria: Criteria{Category: "shirt", Tag: "bestseller"}})
	assert.Equal(t, []string{"b"}, ids(res.Items))

	res = Search(products, Query{Sort: SortPriceHigh})
	assert.Equal(t, []int64{3000, 2000, 1000}, prices(res.Items))
}

func TestFacets(t *testing.T) {
	products := []models.Product{
		{ID: "1", Price: 1500, Category: "shirt", Gender: "men", Tags: []string{"new-arrival"}, Stock: 3},
		{ID: "2", Price: 900, Category: "pant", Gender: "men", Tags: []string{"new-arrival", "trending"}, Stock: 0},
		{ID: "3", Price: 2500, Category: "shirt", Gender: "women", Stock: 1},
	}

	meta := Facets(products)
	assert.Equal(t, models.AvailabilityData{InStock: 2, OutOfStock: 1}, meta.Availability)
	assert.Equal(t, []models.FacetCount{{Value: "shirt", Count: 2}, {Value: "pant", Count: 1}}, meta.Categories)
	assert.Equal(t, []models.FacetCount{{Value: "men", Count: 2}, {Value: "women", Count: 1}}, meta.Genders)
	assert.Equal(t, []models.FacetCount{{Value: "new-arrival", Count: 2}, {Value: "trending", Count: 1}}, meta.Tags)
	require.NotNil(t, meta.PriceRange)
	assert.Equal(t, models.PriceRangeData{Min: 900, Max: 2500}, *meta.PriceRange)

	empty := Facets(nil)
	assert.Nil(t, empty.PriceRange)
	assert.Empty(t, empty.Categories)
}
