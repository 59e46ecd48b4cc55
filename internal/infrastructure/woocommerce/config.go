package woocommerce

import (
	"errors"
	"strings"
	"time"
)

// Configuration errors
var (
	ErrConfigMissingBaseURL        = errors.New("woocommerce: missing base URL")
	ErrConfigMissingConsumerKey    = errors.New("woocommerce: missing consumer key")
	ErrConfigMissingConsumerSecret = errors.New("woocommerce: missing consumer secret")
)

// Config holds the connection settings for one WooCommerce store.
type Config struct {
	// BaseURL is the store root, e.g. "https://shop.example.com".
	BaseURL string
	// ConsumerKey and ConsumerSecret are the REST API credentials.
	ConsumerKey    string
	ConsumerSecret string
	// PageSize is the number of recent orders fetched per run. Defaults to 20.
	PageSize int
	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrConfigMissingBaseURL
	}
	if strings.TrimSpace(c.ConsumerKey) == "" {
		return ErrConfigMissingConsumerKey
	}
	if strings.TrimSpace(c.ConsumerSecret) == "" {
		return ErrConfigMissingConsumerSecret
	}
	if c.PageSize <= 0 {
		c.PageSize = 20
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}
