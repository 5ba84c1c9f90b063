// Package mfds is a minimal client for the MFDS pill identification
// service (의약품 낱알식별정보), used to look up product images on demand.
package mfds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the identification list endpoint.
	DefaultBaseURL = "https://apis.data.go.kr/1471000/MdcinGrnIdntfcInfoService03/getMdcinGrnIdntfcInfoList01"

	DefaultTimeout = 10 * time.Second
)

// Config holds MFDS API configuration.
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// Client is an HTTP client for the identification API.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient constructs a new MFDS client with sane defaults.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}
}

// LookupImage returns the image URL for the best match on a product
// name, or "" when the service has none. Packaging details after the
// first parenthesis are dropped from the query, matching how the list
// names and the identification names differ.
func (c *Client) LookupImage(ctx context.Context, itemName string) (string, error) {
	query := strings.TrimSpace(strings.SplitN(itemName, "(", 2)[0])
	if query == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("serviceKey", c.config.ServiceKey)
	params.Set("item_name", query)
	params.Set("pageNo", "1")
	params.Set("numOfRows", "1")
	params.Set("type", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mfds: http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed struct {
		Body struct {
			Items []struct {
				ItemImage string `json:"item_image"`
			} `json:"items"`
		} `json:"body"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("mfds: response is not JSON: %w", err)
	}

	if len(parsed.Body.Items) == 0 {
		return "", nil
	}
	return parsed.Body.Items[0].ItemImage, nil
}
