package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"table-order-backend/internal/wire"
)

// StatusError is returned for any non-2xx response. Body holds the service's
// plain-text error message.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order service returned %d: %s", e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client talks to the order service over HTTP+JSON.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout time.Duration
	proxy   string
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithProxy routes requests through an HTTP proxy.
func WithProxy(proxyURL string) Option {
	return func(o *clientOptions) { o.proxy = proxyURL }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	o := clientOptions{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if o.proxy != "" {
		proxyURL, err := url.Parse(o.proxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Client will not use a proxy.", o.proxy, err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
		},
	}
}

// Menu fetches the catalog.
func (c *Client) Menu(ctx context.Context) (*wire.Menu, error) {
	var menu wire.Menu
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// Table fetches every order of a table.
func (c *Client) Table(ctx context.Context, tableID int64) (*wire.Table, error) {
	var table wire.Table
	if err := c.do(ctx, http.MethodGet, tablePath(tableID), nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// PlaceOrder submits items for a table and returns the table's orders.
func (c *Client) PlaceOrder(ctx context.Context, tableID int64, items []int64) (*wire.Table, error) {
	var table wire.Table
	req := wire.PlaceOrderRequest{Items: items}
	if err := c.do(ctx, http.MethodPost, tablePath(tableID), req, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// Order fetches a single order of a table.
func (c *Client) Order(ctx context.Context, tableID, orderID int64) (*wire.Order, error) {
	var order wire.Order
	if err := c.do(ctx, http.MethodGet, orderPath(tableID, orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// RemoveOrder deletes one order and returns what is left for the table.
func (c *Client) RemoveOrder(ctx context.Context, tableID, orderID int64) (*wire.Table, error) {
	var table wire.Table
	if err := c.do(ctx, http.MethodDelete, orderPath(tableID, orderID), nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func tablePath(tableID int64) string {
	return fmt.Sprintf("/tables/%d", tableID)
}

func orderPath(tableID, orderID int64) string {
	return fmt.Sprintf("/tables/%d/%d", tableID, orderID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
