package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

func TestSanitizePrice(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		want          string
		wantDefaulted bool
	}{
		{"valid decimal", "10.50", "10.5", false},
		{"valid integer", "3", "3", false},
		{"zero is kept", "0", "0", false},
		{"padded input", " 7.25 ", "7.25", false},
		{"negative defaults to zero", "-3", "0", true},
		{"non-numeric defaults to zero", "free", "0", true},
		{"empty defaults to zero", "", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, defaulted := SanitizePrice(tt.raw)
			assert.Equal(t, tt.want, price.String())
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

func TestSanitizeQuantity(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		want          string
		wantDefaulted bool
	}{
		{"valid integer", "2", "2", false},
		{"valid decimal", "2.5", "2.5", false},
		{"zero defaults to one", "0", "1", true},
		{"negative defaults to one", "-4", "1", true},
		{"non-numeric defaults to one", "two", "1", true},
		{"empty defaults to one", "", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quantity, defaulted := SanitizeQuantity(tt.raw)
			assert.Equal(t, tt.want, quantity.String())
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

func TestNormalizeOrderDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare source timestamp", "2026-08-20T10:15:30", "2026-08-20 10:15:30"},
		{"UTC marker stripped", "2026-08-20T10:15:30Z", "2026-08-20 10:15:30"},
		{"fraction stripped", "2026-08-20T10:15:30.123456Z", "2026-08-20 10:15:30"},
		{"offset keeps wall time", "2026-08-20T10:15:30+02:00", "2026-08-20 10:15:30"},
		{"already normalized", "2026-08-20 10:15:30", "2026-08-20 10:15:30"},
		{"unparseable long shape degrades textually", "2026-08-20T10:15:30GARBAGE", "2026-08-20 10:15:30"},
		{"short garbage passes through", "yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOrderDate(tt.raw))
		})
	}
}

func TestPlaceholderEmail_Deterministic(t *testing.T) {
	first := PlaceholderEmail("501")
	second := PlaceholderEmail("501")
	assert.Equal(t, first, second, "same id must yield the same placeholder across runs")
	assert.Equal(t, "no-email-501@woosync.invalid", first)
	assert.NotEqual(t, first, PlaceholderEmail("502"))
}

func TestPlaceholderName(t *testing.T) {
	assert.Equal(t, "Guest WC-501", PlaceholderName("501"))
}

func TestFallbackCode(t *testing.T) {
	tests := []struct {
		name string
		li   domainsync.LineItem
		want string
	}{
		{"product reference preferred", domainsync.LineItem{ProductRef: 88, Name: "Cool Shirt"}, "WC-PROD-88"},
		{"name derived", domainsync.LineItem{Name: "Cool Shirt"}, "WC-COOL-SHIRT"},
		{"name trimmed and collapsed", domainsync.LineItem{Name: "  un café -- très chaud "}, "WC-UN-CAF-TR-S-CHAUD"},
		{"long name truncated", domainsync.LineItem{Name: "A very long product name indeed"}, "WC-A-VERY-LONG-PRODUCT-NAME"},
		{"nameless item", domainsync.LineItem{}, "WC-UNNAMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackCode(tt.li))
		})
	}
}
