package product

import (
	"math"
	"slices"
	"sort"
	"strings"
)

type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNewest     SortKey = "newest"
)

// Criteria is the transient filter/sort/page selection owned by the rendering
// layer. A zero MaxPrice means no upper price bound.
type Criteria struct {
	Search     string
	Categories []string
	Brands     []string
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
	Sort       SortKey
	Page       int
}

type PageResult struct {
	Items         []Product `json:"items"`
	TotalPages    int       `json:"totalPages"`
	TotalMatching int       `json:"totalMatching"`
}

// ApplyCriteria runs the filter, sort and paginate pipeline over a product
// collection. Stages narrow in fixed order: search, category, brand, price
// range, rating, sort, paginate. Pure and idempotent; the caller resets
// Criteria.Page to 1 whenever any other criterion changes.
func ApplyCriteria(products []Product, c Criteria, pageSize int) PageResult {
	filtered := make([]Product, 0, len(products))

	query := strings.ToLower(strings.TrimSpace(c.Search))
	maxPrice := c.MaxPrice
	if maxPrice <= 0 {
		maxPrice = math.MaxFloat64
	}

	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(c.Categories) > 0 && !slices.Contains(c.Categories, p.Category) {
			continue
		}
		if len(c.Brands) > 0 && !slices.Contains(c.Brands, p.Brand) {
			continue
		}
		if p.Price < c.MinPrice || p.Price > maxPrice {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, c.Sort)

	if pageSize <= 0 {
		pageSize = 12
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	page := c.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= len(filtered) {
		// Out-of-range page yields an empty page; the caller clamps.
		return PageResult{Items: []Product{}, TotalPages: totalPages, TotalMatching: len(filtered)}
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Items:         filtered[start:end],
		TotalPages:    totalPages,
		TotalMatching: len(filtered),
	}
}

func matchesQuery(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// sortProducts reorders in place. Relevance keeps the pipeline input order.
func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}
