package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	ordersPath = "/wp-json/wc/v3/orders"
)

// Client reads recent orders from a WooCommerce store's REST API. The
// listing is treated as a read-only paginated source; the client only
// ever requests the first page.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a WooCommerce client for the given configuration.
// The configuration is validated on first fetch so that missing settings
// surface as a run-fatal precondition instead of a startup crash.
func NewClient(config *Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{},
	}
}

// FetchRecent returns up to limit most recent orders. A limit of zero or
// less falls back to the configured page size.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]domainsync.Order, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	c.httpClient.Timeout = c.config.Timeout
	if limit <= 0 {
		limit = c.config.PageSize
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(limit))
	query.Set("orderby", "date")
	query.Set("order", "desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+ordersPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.ConsumerKey, c.config.ConsumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainsync.ErrSourceFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", domainsync.ErrSourceFetchFailed, resp.StatusCode)
	}

	var docs []wooOrder
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("woocommerce: failed to parse order listing: %w", err)
	}

	orders := make([]domainsync.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, convertOrder(&docs[i]))
	}
	return orders, nil
}

// convertOrder maps a WooCommerce order document to the domain model.
// Price and quantity stay raw; sanitization belongs to the import.
func convertOrder(doc *wooOrder) domainsync.Order {
	order := domainsync.Order{
		ExternalID: doc.externalID(),
		CreatedAt:  doc.DateCreated,
		Billing: domainsync.Billing{
			Email:      doc.Billing.Email,
			FirstName:  doc.Billing.FirstName,
			LastName:   doc.Billing.LastName,
			Phone:      doc.Billing.Phone,
			Street:     doc.Billing.Address1,
			City:       doc.Billing.City,
			PostalCode: doc.Billing.Postcode,
		},
		Lines: make([]domainsync.LineItem, 0, len(doc.LineItems)),
	}

	for _, item := range doc.LineItems {
		order.Lines = append(order.Lines, domainsync.LineItem{
			SKU:        item.SKU,
			Name:       item.Name,
			ProductRef: item.ProductID,
			UnitPrice:  string(item.Price),
			Quantity:   string(item.Quantity),
		})
	}
	return order
}

// Ensure Client implements the domain port
var _ domainsync.OrderSource = (*Client)(nil)
