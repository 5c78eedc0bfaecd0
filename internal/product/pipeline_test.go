package product

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureProducts() []Product {
	return []Product{
		{ID: 1, Title: "iPhone 9", Description: "An apple mobile", Brand: "Apple", Category: "smartphones", Price: 10, Rating: 4.7},
		{ID: 2, Title: "Galaxy S10", Description: "Samsung flagship", Brand: "Samsung", Category: "smartphones", Price: 20, Rating: 4.4},
		{ID: 3, Title: "Perfume Oil", Description: "Mega discount fragrance", Brand: "Impression", Category: "fragrances", Price: 30, Rating: 4.3},
		{ID: 4, Title: "Leather Wallet", Description: "Brown wallet", Brand: "Urbano", Category: "accessories", Price: 40, Rating: 3.8},
		{ID: 5, Title: "Running Shoes", Description: "Sporty sneakers", Brand: "Sportive", Category: "shoes", Price: 50, Rating: 4.9},
	}
}

func TestApplyCriteria_PriceRangeAndSortDesc(t *testing.T) {
	result := ApplyCriteria(fixtureProducts(), Criteria{
		MinPrice: 15,
		MaxPrice: 45,
		Sort:     SortPriceDesc,
	}, 12)

	assert.Equal(t, 3, result.TotalMatching)
	prices := make([]float64, 0, len(result.Items))
	for _, p := range result.Items {
		prices = append(prices, p.Price)
	}
	assert.Equal(t, []float64{40, 30, 20}, prices)
}

func TestApplyCriteria_Search(t *testing.T) {
	t.Run("matches title, description, brand and category", func(t *testing.T) {
		for _, query := range []string{"iphone", "APPLE", "mega discount", "shoes"} {
			result := ApplyCriteria(fixtureProducts(), Criteria{Search: query}, 12)
			assert.GreaterOrEqual(t, result.TotalMatching, 1, "query %q", query)
		}
	})

	t.Run("empty query keeps everything", func(t *testing.T) {
		result := ApplyCriteria(fixtureProducts(), Criteria{}, 12)
		assert.Equal(t, 5, result.TotalMatching)
	})
}

func TestApplyCriteria_CategoryAndBrand(t *testing.T) {
	result := ApplyCriteria(fixtureProducts(), Criteria{
		Categories: []string{"smartphones"},
		Brands:     []string{"Samsung"},
	}, 12)

	assert.Equal(t, 1, result.TotalMatching)
	assert.Equal(t, "Galaxy S10", result.Items[0].Title)
}

func TestApplyCriteria_RatingThreshold(t *testing.T) {
	t.Run("zero threshold disables the filter", func(t *testing.T) {
		result := ApplyCriteria(fixtureProducts(), Criteria{MinRating: 0}, 12)
		assert.Equal(t, 5, result.TotalMatching)
	})

	t.Run("threshold keeps ratings at or above", func(t *testing.T) {
		result := ApplyCriteria(fixtureProducts(), Criteria{MinRating: 4.4}, 12)
		assert.Equal(t, 3, result.TotalMatching)
	})
}

func TestApplyCriteria_SortKeys(t *testing.T) {
	products := fixtureProducts()

	t.Run("relevance preserves input order", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{Sort: SortRelevance}, 12)
		for i, p := range result.Items {
			assert.Equal(t, products[i].ID, p.ID)
		}
	})

	t.Run("price ascending", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{Sort: SortPriceAsc}, 12)
		for i := 1; i < len(result.Items); i++ {
			assert.LessOrEqual(t, result.Items[i-1].Price, result.Items[i].Price)
		}
	})

	t.Run("rating descending", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{Sort: SortRatingDesc}, 12)
		for i := 1; i < len(result.Items); i++ {
			assert.GreaterOrEqual(t, result.Items[i-1].Rating, result.Items[i].Rating)
		}
	})

	t.Run("newest first by id descending", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{Sort: SortNewest}, 12)
		assert.Equal(t, 5, result.Items[0].ID)
		assert.Equal(t, 1, result.Items[len(result.Items)-1].ID)
	})
}

func TestApplyCriteria_Pagination(t *testing.T) {
	products := make([]Product, 14)
	for i := range products {
		products[i] = Product{ID: i + 1, Title: fmt.Sprintf("Item %d", i+1), Price: float64(i + 1)}
	}

	t.Run("fourteen matches split into two pages", func(t *testing.T) {
		page1 := ApplyCriteria(products, Criteria{Page: 1}, 12)
		assert.Equal(t, 2, page1.TotalPages)
		assert.Len(t, page1.Items, 12)

		page2 := ApplyCriteria(products, Criteria{Page: 2}, 12)
		assert.Len(t, page2.Items, 2)
		assert.Equal(t, 13, page2.Items[0].ID)
		assert.Equal(t, 14, page2.Items[1].ID)
	})

	t.Run("page beyond range is empty", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{Page: 5}, 12)
		assert.Empty(t, result.Items)
		assert.Equal(t, 14, result.TotalMatching)
	})

	t.Run("page zero defaults to first page", func(t *testing.T) {
		result := ApplyCriteria(products, Criteria{}, 12)
		assert.Len(t, result.Items, 12)
	})
}

func TestApplyCriteria_Idempotent(t *testing.T) {
	products := fixtureProducts()
	criteria := Criteria{Search: "a", MinPrice: 5, MaxPrice: 45, Sort: SortPriceDesc, Page: 1}

	first := ApplyCriteria(products, criteria, 2)
	second := ApplyCriteria(products, criteria, 2)

	assert.Equal(t, first, second)
}

func TestApplyCriteria_DoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	ApplyCriteria(products, Criteria{Sort: SortPriceDesc}, 12)

	for i, p := range fixtureProducts() {
		assert.Equal(t, p.ID, products[i].ID)
	}
}
