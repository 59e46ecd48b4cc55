package odoo

import (
	"errors"
	"strings"
	"time"
)

// Configuration errors
var (
	ErrConfigMissingURL      = errors.New("odoo: missing endpoint URL")
	ErrConfigMissingDatabase = errors.New("odoo: missing database name")
	ErrConfigMissingLogin    = errors.New("odoo: missing login")
	ErrConfigMissingPassword = errors.New("odoo: missing password")
)

// Config holds the connection settings for one Odoo deployment.
type Config struct {
	// URL is the base URL of the Odoo instance, e.g. "https://erp.example.com".
	URL string
	// Database is the Odoo database name.
	Database string
	// Login is the RPC user login.
	Login string
	// Password is the RPC user password.
	Password string
	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return ErrConfigMissingURL
	}
	if strings.TrimSpace(c.Database) == "" {
		return ErrConfigMissingDatabase
	}
	if strings.TrimSpace(c.Login) == "" {
		return ErrConfigMissingLogin
	}
	if strings.TrimSpace(c.Password) == "" {
		return ErrConfigMissingPassword
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	c.URL = strings.TrimRight(c.URL, "/")
	return nil
}
