package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one storefront catalog entry.
type Product struct {
	ID         string          `json:"id" bson:"_id"`
	Name       string          `json:"name" bson:"name"`
	Category   string          `json:"category" bson:"category"`
	Price      decimal.Decimal `json:"price" bson:"price"`
	InStock    bool            `json:"inStock" bson:"in_stock"`
	CreatedAt  time.Time       `json:"createdAt" bson:"created_at"`
	Popularity int             `json:"popularity" bson:"popularity"`
	ImageURL   string          `json:"imageUrl" bson:"image_url"`
}

// SortCriteria enumerates the supported sort orders.
type SortCriteria string

const (
	SortRelevance      SortCriteria = "relevance"
	SortPriceLowToHigh SortCriteria = "price-low-to-high"
	SortPriceHighToLow SortCriteria = "price-high-to-low"
	SortNewest         SortCriteria = "newest"
	SortPopular        SortCriteria = "popular"
)

// PriceRange is an inclusive [Min, Max] bound.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Filters is the ephemeral filter/sort/search state. Absent constraints are
// pass-throughs.
type Filters struct {
	SearchQuery  string       `json:"searchQuery,omitempty"`
	Categories   []string     `json:"categories,omitempty"`
	PriceRange   *PriceRange  `json:"priceRange,omitempty"`
	Availability bool         `json:"availability,omitempty"`
	SortBy       SortCriteria `json:"sortBy"`
}

// InitialFilters is the default filter state.
func InitialFilters() Filters {
	return Filters{SortBy: SortRelevance}
}

// Page is the result of paginating a filtered product list.
type Page struct {
	Products      []Product `json:"products"`
	TotalProducts int       `json:"totalProducts"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
}
