// Package catalog is the client for the external product catalog API. The
// catalog is read-only; products are never created or mutated locally.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: http.DefaultClient}
}

// ListProducts fetches the full catalog, or one category when category is
// non-empty. One attempt per call; the caller surfaces failures.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	u := c.BaseURL + "/products"
	if category != "" {
		u = c.BaseURL + "/products/category/" + url.PathEscape(category)
	}
	var out []Product
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var p Product
	err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.BaseURL, id), &p)
	return p, err
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog fetch: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog decode: %w", err)
	}
	return nil
}
