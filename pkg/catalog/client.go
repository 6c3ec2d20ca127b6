package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// fetchLimit is the maximum number of products requested in the single
// bulk call. The endpoint caps pages at 100 entries.
const fetchLimit = 100

// ClientConfig represents the configuration for the catalog API client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30 seconds
}

// Client is a product catalog API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new catalog API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: config.BaseURL,
	}
}

// FetchProducts fetches the product catalog in one bulk call.
func (c *Client) FetchProducts() ([]Product, error) {
	endpoint := fmt.Sprintf("%s/products", c.baseURL)

	queryParams := url.Values{}
	queryParams.Set("limit", fmt.Sprintf("%d", fetchLimit))

	req, err := http.NewRequest("GET", fmt.Sprintf("%s?%s", endpoint, queryParams.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var productsResp ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&productsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return productsResp.Products, nil
}

// parseError parses an error response from the catalog API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("catalog API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return fmt.Errorf("catalog API error (status %d): %s", resp.StatusCode, string(body))
	}

	return fmt.Errorf("catalog API error: %s", errResp.Message)
}
