package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{ID: "p1", Name: "Organic Tomatoes", Category: "Vegetables", Price: decimal.NewFromInt(40), InStock: true, CreatedAt: base, Popularity: 80},
		{ID: "p2", Name: "Alphonso Mangoes", Category: "Fruits", Price: decimal.NewFromInt(350), InStock: true, CreatedAt: base.AddDate(0, 0, 3), Popularity: 95},
		{ID: "p3", Name: "Cold-Pressed Coconut Oil", Category: "Pantry", Price: decimal.NewFromInt(420), InStock: false, CreatedAt: base.AddDate(0, 0, 1), Popularity: 60},
		{ID: "p4", Name: "Organic Spinach", Category: "Vegetables", Price: decimal.NewFromInt(30), InStock: true, CreatedAt: base.AddDate(0, 0, 2), Popularity: 70},
		{ID: "p5", Name: "Millet Cookies", Category: "Snacks", Price: decimal.NewFromInt(120), InStock: false, CreatedAt: base.AddDate(0, 0, 4), Popularity: 50},
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSearchMatchesNameOrCategory(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"p1", "p4"}, ids(Search(products, "organic")))
	assert.Equal(t, []string{"p2"}, ids(Search(products, "FRUITS")), "category match, case-insensitive")
	assert.Equal(t, products, Search(products, "  "), "blank query passes through")
	assert.Empty(t, Search(products, "quinoa"))
}

func TestFilterByCategory(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"p1", "p4"}, ids(FilterByCategory(products, []string{"Vegetables"})))
	assert.Equal(t, []string{"p1", "p4", "p5"}, ids(FilterByCategory(products, []string{"vegetables", "Snacks"})))
	assert.Equal(t, products, FilterByCategory(products, nil), "no categories passes through")
}

func TestFilterByPriceInclusiveBounds(t *testing.T) {
	products := sampleProducts()
	r := &PriceRange{Min: decimal.NewFromInt(40), Max: decimal.NewFromInt(350)}

	assert.Equal(t, []string{"p1", "p2", "p5"}, ids(FilterByPrice(products, r)), "bounds are inclusive")
	assert.Equal(t, products, FilterByPrice(products, nil))
}

func TestFilterByAvailability(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"p1", "p2", "p4"}, ids(FilterByAvailability(products, true)))
	assert.Equal(t, products, FilterByAvailability(products, false))
}

func TestSortProducts(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"p4", "p1", "p5", "p2", "p3"}, ids(SortProducts(products, SortPriceLowToHigh)))
	assert.Equal(t, []string{"p3", "p2", "p5", "p1", "p4"}, ids(SortProducts(products, SortPriceHighToLow)))
	assert.Equal(t, []string{"p5", "p2", "p4", "p3", "p1"}, ids(SortProducts(products, SortNewest)))
	assert.Equal(t, []string{"p2", "p1", "p4", "p3", "p5"}, ids(SortProducts(products, SortPopular)))
	assert.Equal(t, ids(products), ids(SortProducts(products, SortRelevance)), "relevance keeps input order")
}

func TestSortDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := ids(products)

	SortProducts(products, SortPriceHighToLow)

	assert.Equal(t, before, ids(products))
}

func TestApplyFiltersPipelineOrder(t *testing.T) {
	products := sampleProducts()

	filters := Filters{
		SearchQuery:  "o",
		Categories:   []string{"Vegetables", "Pantry"},
		Availability: true,
		PriceRange:   &PriceRange{Min: decimal.NewFromInt(35), Max: decimal.NewFromInt(500)},
		SortBy:       SortPriceLowToHigh,
	}

	// "o" matches all five; category keeps p1/p3/p4; availability drops p3;
	// price drops p4; sort is a no-op on the single survivor.
	assert.Equal(t, []string{"p1"}, ids(ApplyFilters(products, filters)))
}

func TestApplyFiltersDefaultsSortToRelevance(t *testing.T) {
	products := sampleProducts()

	result := ApplyFilters(products, Filters{})

	assert.Equal(t, ids(products), ids(result))
}

func TestPaginate(t *testing.T) {
	products := sampleProducts()

	page := Paginate(products, 1, 2)
	assert.Equal(t, []string{"p1", "p2"}, ids(page.Products))
	assert.Equal(t, 5, page.TotalProducts)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)

	page = Paginate(products, 3, 2)
	assert.Equal(t, []string{"p5"}, ids(page.Products))

	// Out-of-range pages clamp.
	page = Paginate(products, 99, 2)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, []string{"p5"}, ids(page.Products))

	page = Paginate(products, 0, 2)
	assert.Equal(t, 1, page.CurrentPage)

	page = Paginate(nil, 5, 10)
	assert.Empty(t, page.Products)
	assert.Equal(t, 0, page.TotalProducts)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestCountActiveFilters(t *testing.T) {
	assert.Equal(t, 0, CountActiveFilters(Filters{SearchQuery: "mango", SortBy: SortPopular}))
	assert.Equal(t, 3, CountActiveFilters(Filters{
		Categories:   []string{"Fruits"},
		PriceRange:   &PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(100)},
		Availability: true,
	}))
}

func TestFilterPaginateRoundTrip(t *testing.T) {
	products := sampleProducts()
	filters := Filters{Availability: true, SortBy: SortPriceLowToHigh}

	filtered := ApplyFilters(products, filters)
	page := Paginate(filtered, 1, len(products))

	require.Equal(t, len(filtered), page.TotalProducts)
	assert.Equal(t, ids(filtered), ids(page.Products), "page one at full size returns every match once, in order")
	assert.Equal(t, 1, page.TotalPages)
}
