// Package ordersclient is the HTTP client for the backend orders API. It is
// shared by the checkout flow and the order admin screen.
package ordersclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lojinha/storefront/internal/orders"
)

// CreateOrder is the POST body. The backend assigns id and created_at.
type CreateOrder struct {
	CustomerEmail string        `json:"customer_email"`
	Status        orders.Status `json:"status"`
	Total         float64       `json:"total"`
	Items         []orders.Item `json:"items"`
}

// UpdateOrder is the PUT body. Status must arrive upper-cased.
type UpdateOrder struct {
	CustomerEmail string        `json:"customer_email"`
	Status        orders.Status `json:"status"`
	Total         float64       `json:"total"`
	Items         []orders.Item `json:"items"`
}

// APIError is a non-2xx backend response. Detail carries the body's
// "detail" field when the backend sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("orders api: unexpected status %d", e.StatusCode)
}

type Client struct {
	BaseURL string // e.g. http://backend:8000/api/v1/orders
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: http.DefaultClient}
}

func (c *Client) List(ctx context.Context) ([]orders.Order, error) {
	var out []orders.Order
	if err := c.do(ctx, http.MethodGet, c.BaseURL, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", c.BaseURL, id), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, req CreateOrder) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodPost, c.BaseURL, req, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateOrder) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.BaseURL, id), req, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", c.BaseURL, id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("orders api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("orders api decode: %w", err)
		}
	}
	return nil
}

// apiError extracts the "detail" field of an error body. Bodies that are not
// JSON, or carry no detail, fall back to a generic status message.
func apiError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &APIError{StatusCode: resp.StatusCode, Detail: body.Detail}
}
