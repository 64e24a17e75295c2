package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultBaseURL is the base URL for the Data API.
	DefaultBaseURL = "https://data-api.polymarket.com"
)

// Client is an HTTP client for the Data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Data API client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
}

// WithBaseURL sets a custom base URL for the client.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Filter contains query parameters for the positions endpoint.
type Filter struct {
	// Minimum position size to include. Zero means no threshold.
	SizeThreshold float64

	// Maximum number of positions to return. Zero means server default.
	Limit int
}

// FetchPositions fetches all positions held by the given wallet address.
func (c *Client) FetchPositions(ctx context.Context, wallet string, filter *Filter) ([]RawPosition, error) {
	if wallet == "" {
		return nil, fmt.Errorf("wallet address is required")
	}

	q := url.Values{}
	q.Set("user", wallet)
	if filter != nil {
		if filter.SizeThreshold > 0 {
			q.Set("sizeThreshold", strconv.FormatFloat(filter.SizeThreshold, 'f', -1, 64))
		}
		if filter.Limit > 0 {
			q.Set("limit", strconv.Itoa(filter.Limit))
		}
	}

	u := c.baseURL + "/positions?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var positions []RawPosition
	if err := json.NewDecoder(resp.Body).Decode(&positions); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return positions, nil
}
