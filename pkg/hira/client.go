// Package hira is a minimal client for the HIRA drug reimbursement list
// service (건강보험심사평가원 약제급여목록정보) on apis.data.go.kr.
package hira

import (
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultBaseURL is the list-info endpoint. The upstream gateway has
	// intermittent TLS issues, so plain http is used for compatibility.
	DefaultBaseURL = "http://apis.data.go.kr/1640000/HiraMedcinListInfoService/getHiraMedcinListInfo"

	// DefaultTimeout keeps an unresponsive or blocked connection from
	// hanging a whole collection run.
	DefaultTimeout = 15 * time.Second
)

// Config holds HIRA API configuration.
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// Client is an HTTP client for the HIRA list-info API.
type Client struct {
	httpClient *http.Client
	config     Config
	serviceKey string
	debug      bool
}

// NewClient constructs a new HIRA client with sane defaults. The service
// key is stored in decoded form; query encoding is applied exactly once
// when the request URL is built.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	// PathUnescape decodes %XX without treating + as a space: keys issued
	// in decoded form may contain literal + and = characters.
	key := config.ServiceKey
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		serviceKey: key,
		debug:      os.Getenv("ENV") == "development",
	}
}
