package repo

import (
	"strings"

	"github.com/rogerio-castellano/ges-stock/internal/models"
)

type ProductFilter struct {
	Name       string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	MinQty     *int
	MaxQty     *int
	Offset     *int
	Limit      *int
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.CategoryID != "" && p.CategoryID != pf.CategoryID {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinQty != nil && p.Quantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.Quantity > *pf.MaxQty {
		return false
	}
	return true
}

// FilterProducts returns the page of products matching pf and the total
// number of matches before pagination.
func FilterProducts(products []models.Product, pf ProductFilter) ([]models.Product, int) {
	filtered := []models.Product{}
	for _, p := range products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	start, end := Page(len(filtered), pf.Offset, pf.Limit)
	return filtered[start:end], len(filtered)
}

// Page turns optional offset/limit into slice bounds for n items.
func Page(n int, offset, limit *int) (start, end int) {
	if offset != nil {
		start = clamp(*offset, 0, n)
	}
	end = n
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, n)
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
