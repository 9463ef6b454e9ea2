// Package catalog is the HTTP adapter for the upstream ECCBC catalog/order
// API. Endpoints used:
//   - GET  /api/products/search/{term} — product search
//   - GET  /api/stock/check/{id}       — stock availability
//   - GET  /api/products               — product listing
//   - POST /api/orders                 — order creation
//   - GET  /api/orders/{phone}         — customer order history
//
// Each call is a single attempt. Failures never escape as Go errors: they
// come back on the Err branch of a Result.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"

	defaultOrderStatus  = "pending"
	defaultOrderMessage = "Commande créée avec succès"
)

// Client calls the ECCBC catalog/order API at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client with a 30s default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ─── upstream JSON types ─────────────────────────────────────────────────────

type stockResponse struct {
	Available        bool   `json:"available"`
	Quantity         int    `json:"quantity"`
	ProductName      string `json:"product_name"`
	ProductNameLocal string `json:"product_name_local"`
}

// ─── operations ──────────────────────────────────────────────────────────────

// SearchProducts looks up products matching term in the given language.
func (c *Client) SearchProducts(ctx context.Context, term, language string) Result {
	fields := map[string]any{"search_term": term}
	endpoint := fmt.Sprintf("%s/api/products/search/%s?language=%s",
		c.baseURL, url.PathEscape(term), url.QueryEscape(language))

	var products any
	if msg, ok := c.getJSON(ctx, "search products", endpoint, &products); !ok {
		return Err(msg, fields)
	}
	if products == nil {
		products = []any{}
	}
	return Ok(map[string]any{
		"products":    products,
		"search_term": term,
		"language":    language,
	})
}

// CheckStock reports availability for one product.
func (c *Client) CheckStock(ctx context.Context, productID int, language string) Result {
	fields := map[string]any{"product_id": productID}
	endpoint := fmt.Sprintf("%s/api/stock/check/%d?language=%s",
		c.baseURL, productID, url.QueryEscape(language))

	var raw stockResponse
	if msg, ok := c.getJSON(ctx, "check stock", endpoint, &raw); !ok {
		return Err(msg, fields)
	}
	return Ok(map[string]any{
		"is_available":       raw.Available,
		"quantity_available": raw.Quantity,
		"product_name":       raw.ProductName,
		"product_name_local": raw.ProductNameLocal,
	})
}

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context, activeOnly bool) Result {
	endpoint := fmt.Sprintf("%s/api/products?active_only=%s",
		c.baseURL, strconv.FormatBool(activeOnly))

	var products any
	if msg, ok := c.getJSON(ctx, "list products", endpoint, &products); !ok {
		return Err(msg, nil)
	}
	if products == nil {
		products = []any{}
	}
	return Ok(map[string]any{"products": products})
}

// OrderItem is one product line in an order.
type OrderItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderRequest is the POST /api/orders body.
type OrderRequest struct {
	CustomerPhone string      `json:"customer_phone"`
	Items         []OrderItem `json:"items"`
	CustomerName  string      `json:"customer_name,omitempty"`
	Language      string      `json:"language,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

// CreateOrder submits a new customer order.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) Result {
	fields := map[string]any{"customer_phone": order.CustomerPhone}

	body, err := json.Marshal(order)
	if err != nil {
		return Err(fmt.Sprintf("create order: encode request: %v", err), fields)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return Err(fmt.Sprintf("create order: build request: %v", err), fields)
	}
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Err(fmt.Sprintf("create order: %v", err), fields)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Err(fmt.Sprintf("create order: upstream status %d", resp.StatusCode), fields)
	}

	var raw map[string]any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&raw); decodeErr != nil {
		return Err(fmt.Sprintf("create order: decode response: %v", decodeErr), fields)
	}
	return Ok(map[string]any{
		"order_id":       raw["order_id"],
		"order_number":   raw["order_number"],
		"total_amount":   raw["total_amount"],
		"status":         stringOr(raw["status"], defaultOrderStatus),
		"message":        stringOr(raw["message"], defaultOrderMessage),
		"customer_phone": order.CustomerPhone,
	})
}

// OrderHistory fetches the most recent orders for a customer phone number.
func (c *Client) OrderHistory(ctx context.Context, phone string, limit int) Result {
	fields := map[string]any{"customer_phone": phone}
	endpoint := fmt.Sprintf("%s/api/orders/%s?limit=%d",
		c.baseURL, url.PathEscape(phone), limit)

	var orders any
	if msg, ok := c.getJSON(ctx, "order history", endpoint, &orders); !ok {
		return Err(msg, fields)
	}
	if orders == nil {
		orders = []any{}
	}
	return Ok(map[string]any{
		"orders":         orders,
		"customer_phone": phone,
	})
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// getJSON issues one GET and decodes the body into v. On failure it returns
// the error message and false; there is no retry.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, v any) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Sprintf("%s: build request: %v", op, err), false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("%s: %v", op, err), false
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Sprintf("%s: upstream status %d", op, resp.StatusCode), false
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(v); decodeErr != nil {
		return fmt.Sprintf("%s: decode response: %v", op, decodeErr), false
	}
	return "", true
}

// stringOr returns v when it is a non-empty string, fallback otherwise.
func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
