package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

// Source is the catalog data source consumed by the rendering-layer
// endpoints. Every operation fails closed: transport or decode errors yield
// an empty or absent result, never a propagated error.
type Source interface {
	ListProducts(ctx context.Context, limit, skip int) product.ListResponse
	GetProduct(ctx context.Context, id int) *product.Product
	SearchProducts(ctx context.Context, query string) product.ListResponse
	ListByCategory(ctx context.Context, category string) product.ListResponse
	ListCategories(ctx context.Context) []string
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Source {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) ListProducts(ctx context.Context, limit, skip int) product.ListResponse {
	var out product.ListResponse
	path := fmt.Sprintf("/products?limit=%d&skip=%d", limit, skip)
	if err := c.getJSON(ctx, path, &out); err != nil {
		logger.FromCtx(ctx).Warn("failed to fetch products", zap.Error(err))
		return product.ListResponse{}
	}
	return out
}

func (c *client) GetProduct(ctx context.Context, id int) *product.Product {
	var out product.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		logger.FromCtx(ctx).Warn("failed to fetch product",
			zap.Int("product_id", id),
			zap.Error(err),
		)
		return nil
	}
	return &out
}

func (c *client) SearchProducts(ctx context.Context, query string) product.ListResponse {
	var out product.ListResponse
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &out); err != nil {
		logger.FromCtx(ctx).Warn("failed to search products",
			zap.String("query", query),
			zap.Error(err),
		)
		return product.ListResponse{}
	}
	return out
}

func (c *client) ListByCategory(ctx context.Context, category string) product.ListResponse {
	var out product.ListResponse
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &out); err != nil {
		logger.FromCtx(ctx).Warn("failed to fetch category products",
			zap.String("category", category),
			zap.Error(err),
		)
		return product.ListResponse{}
	}
	return out
}

func (c *client) ListCategories(ctx context.Context) []string {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		logger.FromCtx(ctx).Warn("failed to fetch categories", zap.Error(err))
		return []string{}
	}
	return out
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
