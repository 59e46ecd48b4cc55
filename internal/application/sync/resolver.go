package sync

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

// ERP object models the core touches. Found records are never modified;
// the resolver only ever finds or creates.
const (
	modelPartner   = "res.partner"
	modelProduct   = "product.product"
	modelSaleOrder = "sale.order"
)

// senegalCountryID is the ERP's res.country id for Senegal. The store
// ships domestically only, so the country reference is a compiled-in
// constant rather than derived from input.
const senegalCountryID = 204

// absentValue marks a missing optional field on a created ERP record.
// The ERP expects an explicit false, not an empty string.
const absentValue = false

// Resolver performs idempotent get-or-create resolution of source-owned
// objects against ERP records. Its methods return tagged Resolutions and
// never log; the orchestration layer decides what to log and count.
type Resolver struct {
	erp      domainsync.ERPClient
	validate *validator.Validate
}

// NewResolver creates a resolver on top of an ERP client.
func NewResolver(erp domainsync.ERPClient) *Resolver {
	return &Resolver{
		erp:      erp,
		validate: validator.New(),
	}
}

// ResolveCustomer returns the ERP partner id matching the order's
// billing contact, creating the partner if absent. Missing or invalid
// email and empty names are replaced by deterministic placeholders so
// the dedup key stays stable across repeated runs.
func (r *Resolver) ResolveCustomer(ctx context.Context, order domainsync.Order) domainsync.Resolution {
	var substituted []string

	email := strings.ToLower(strings.TrimSpace(order.Billing.Email))
	if email == "" || r.validate.Var(email, "email") != nil {
		email = PlaceholderEmail(order.ExternalID)
		substituted = append(substituted, "email")
	}

	id, found, err := r.erp.SearchFirst(ctx, modelPartner, []domainsync.Filter{domainsync.Eq("email", email)})
	if err != nil {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFailedRemote, Substituted: substituted, Err: err}
	}
	if found {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFound, ID: id, Substituted: substituted}
	}

	name := strings.TrimSpace(strings.TrimSpace(order.Billing.FirstName) + " " + strings.TrimSpace(order.Billing.LastName))
	if name == "" {
		name = PlaceholderName(order.ExternalID)
		substituted = append(substituted, "name")
	}

	id, err = r.erp.Create(ctx, modelPartner, map[string]any{
		"name":          name,
		"email":         email,
		"phone":         valueOrAbsent(order.Billing.Phone),
		"street":        valueOrAbsent(order.Billing.Street),
		"city":          valueOrAbsent(order.Billing.City),
		"zip":           valueOrAbsent(order.Billing.PostalCode),
		"country_id":    senegalCountryID,
		"customer_rank": 1,
	})
	if err != nil {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFailedRemote, Substituted: substituted, Err: err}
	}
	return domainsync.Resolution{Outcome: domainsync.OutcomeCreated, ID: id, Substituted: substituted}
}

// ResolveProduct returns the ERP product id matching the line item's
// stock-keeping code, creating the product if absent. A missing code
// falls back to a deterministic composite; existing products are never
// repriced or renamed from new orders.
func (r *Resolver) ResolveProduct(ctx context.Context, li domainsync.LineItem) domainsync.Resolution {
	var substituted []string

	code := strings.TrimSpace(li.SKU)
	if code == "" {
		code = fallbackCode(li)
		substituted = append(substituted, "sku")
	}

	id, found, err := r.erp.SearchFirst(ctx, modelProduct, []domainsync.Filter{domainsync.Eq("default_code", code)})
	if err != nil {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFailedRemote, Substituted: substituted, Err: err}
	}
	if found {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFound, ID: id, Substituted: substituted}
	}

	price, defaulted := SanitizePrice(li.UnitPrice)
	if defaulted {
		substituted = append(substituted, "price")
	}

	name := strings.TrimSpace(li.Name)
	if name == "" {
		name = "unnamed product"
		substituted = append(substituted, "name")
	}

	id, err = r.erp.Create(ctx, modelProduct, map[string]any{
		"name":         name,
		"list_price":   price.InexactFloat64(),
		"default_code": code,
		"type":         "service",
		"sale_ok":      true,
	})
	if err != nil {
		return domainsync.Resolution{Outcome: domainsync.OutcomeFailedRemote, Substituted: substituted, Err: err}
	}
	return domainsync.Resolution{Outcome: domainsync.OutcomeCreated, ID: id, Substituted: substituted}
}

// valueOrAbsent maps an empty optional field to the ERP's explicit
// absent marker.
func valueOrAbsent(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return absentValue
	}
	return s
}
