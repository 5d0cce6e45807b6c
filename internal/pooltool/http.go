package pooltool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const adminKeyHeader = "X-Admin-Key"

// Client wraps http.Client with the base URL and admin key.
type Client struct {
	client   *http.Client
	baseURL  string
	adminKey string
}

func newClient(baseURL, adminKey string, timeout time.Duration) *Client {
	return &Client{
		client:   &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		adminKey: adminKey,
	}
}

// Get performs a GET request against path. admin attaches the admin key.
func (c *Client) Get(ctx context.Context, path string, admin bool) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if admin {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}
	return c.do(req)
}

// Post performs a POST request with a JSON body. admin attaches the admin key.
func (c *Client) Post(ctx context.Context, path string, body interface{}, admin bool) ([]byte, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
