package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

const (
	// placeholderEmailDomain hosts the deterministic substitute addresses.
	// Using a reserved TLD keeps accidental mail delivery impossible.
	placeholderEmailDomain = "woosync.invalid"

	// fallbackCodeMaxLen truncates name-derived stock codes.
	fallbackCodeMaxLen = 24

	// odooDateTimeLayout is the ERP's expected date-time text format:
	// no sub-second fraction, no timezone marker.
	odooDateTimeLayout = "2006-01-02 15:04:05"
)

// sourceDateLayouts are the timestamp shapes the storefront emits.
var sourceDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// PlaceholderEmail derives a stable substitute address from the order's
// external id, so a malformed order dedups to the same customer across
// repeated runs.
func PlaceholderEmail(externalID string) string {
	return fmt.Sprintf("no-email-%s@%s", externalID, placeholderEmailDomain)
}

// PlaceholderName derives a stable substitute display name from the
// order's external id.
func PlaceholderName(externalID string) string {
	return "Guest " + domainsync.SourcePrefix + "-" + externalID
}

// SanitizePrice parses a declared price. Non-numeric or negative values
// resolve to zero; the second return reports the substitution.
func SanitizePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		return decimal.Zero, true
	}
	return price, false
}

// SanitizeQuantity parses an ordered quantity. Non-numeric, zero or
// negative values resolve to one; the second return reports the
// substitution.
func SanitizeQuantity(raw string) (decimal.Decimal, bool) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || quantity.Sign() <= 0 {
		return decimal.NewFromInt(1), true
	}
	return quantity, false
}

// NormalizeOrderDate renders a source timestamp in the ERP's date-time
// text format, stripping the sub-second fraction and timezone marker.
func NormalizeOrderDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(odooDateTimeLayout)
		}
	}
	// Unparseable shapes degrade to a textual strip.
	if len(raw) >= len(odooDateTimeLayout) {
		return strings.Replace(raw[:len(odooDateTimeLayout)], "T", " ", 1)
	}
	return raw
}

// fallbackCode composes a deterministic stock-keeping code for a line
// item without one, preferring the source product reference over a
// truncated prefix of the display name. Two differently-priced unnamed
// items must not collide by accident.
func fallbackCode(li domainsync.LineItem) string {
	if li.ProductRef > 0 {
		return fmt.Sprintf("%s-PROD-%d", domainsync.SourcePrefix, li.ProductRef)
	}
	return domainsync.SourcePrefix + "-" + codeFromName(li.Name)
}

// codeFromName reduces a display name to an uppercase alphanumeric code.
func codeFromName(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	code := strings.TrimRight(b.String(), "-")
	if len(code) > fallbackCodeMaxLen {
		code = strings.TrimRight(code[:fallbackCodeMaxLen], "-")
	}
	if code == "" {
		return "UNNAMED"
	}
	return code
}
