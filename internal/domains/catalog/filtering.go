package catalog

import (
	"sort"
	"strings"
)

// Search keeps products whose name or category contains query,
// case-insensitively. A blank query returns the input unchanged.
func Search(products []Product, query string) []Product {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterByCategory keeps products in any of the given categories. An empty
// category list is a pass-through.
func FilterByCategory(products []Product, categories []string) []Product {
	if len(categories) == 0 {
		return products
	}

	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(c)] = struct{}{}
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if _, ok := wanted[strings.ToLower(p.Category)]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterByPrice keeps products whose price falls inside the inclusive
// [Min, Max] range. A nil range is a pass-through.
func FilterByPrice(products []Product, priceRange *PriceRange) []Product {
	if priceRange == nil {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(priceRange.Min) && p.Price.LessThanOrEqual(priceRange.Max) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterByAvailability keeps only in-stock products when inStockOnly is set.
func FilterByAvailability(products []Product, inStockOnly bool) []Product {
	if !inStockOnly {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if p.InStock {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortProducts returns a sorted copy; the input slice is never mutated.
// Relevance preserves input order.
func SortProducts(products []Product, criteria SortCriteria) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)

	switch criteria {
	case SortPriceLowToHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})
	case SortPriceHighToLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.GreaterThan(sorted[j].Price)
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Popularity > sorted[j].Popularity
		})
	}
	return sorted
}

// ApplyFilters runs the fixed pipeline: search, category, availability, price
// range, then sort. Each stage is skipped when its constraint is absent; sort
// always runs last.
func ApplyFilters(products []Product, filters Filters) []Product {
	result := Search(products, filters.SearchQuery)
	result = FilterByCategory(result, filters.Categories)
	result = FilterByAvailability(result, filters.Availability)
	result = FilterByPrice(result, filters.PriceRange)

	criteria := filters.SortBy
	if criteria == "" {
		criteria = SortRelevance
	}
	return SortProducts(result, criteria)
}

// Paginate slices products into the requested page. The page number is
// clamped into [1, totalPages], or 1 when the list is empty.
func Paginate(products []Product, page, pageSize int) Page {
	total := len(products)
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Products:      products[start:end],
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
	}
}

// CountActiveFilters counts the applied constraints shown in the filter
// badge. Search text and sort order are not counted.
func CountActiveFilters(filters Filters) int {
	count := 0
	if len(filters.Categories) > 0 {
		count++
	}
	if filters.PriceRange != nil {
		count++
	}
	if filters.Availability {
		count++
	}
	return count
}
