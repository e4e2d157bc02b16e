package listing

import (
	"sort"
	"strings"

	"github.com/dkrasnov/go_storefront/internal/domain"
)

// SortKey selects one of the four catalog orderings. Anything else leaves
// the original order.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Filter returns products whose name or description contains the query as a
// case-insensitive substring. An empty query matches everything. The input
// slice is never mutated.
func Filter(products []domain.Product, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]domain.Product(nil), products...)
	}

	var matched []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matched = append(matched, p)
		}
	}

	return matched
}

// Sort returns a stably sorted copy: ties keep their original order.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	sorted := append([]domain.Product(nil), products...)

	switch key {
	case SortNameAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	case SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name > sorted[j].Name })
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	}

	return sorted
}
