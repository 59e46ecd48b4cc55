package woocommerce

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// flexString decodes a JSON field that the storefront sends as either a
// string or a number. WooCommerce is inconsistent about price and
// quantity across versions and plugins.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// wooBilling is the billing block of a WooCommerce order document.
type wooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
}

// wooLineItem is one product line of a WooCommerce order document.
type wooLineItem struct {
	Name      string     `json:"name"`
	ProductID int64      `json:"product_id"`
	SKU       string     `json:"sku"`
	Price     flexString `json:"price"`
	Quantity  flexString `json:"quantity"`
}

// wooOrder is a WooCommerce order document, limited to the fields the
// import needs.
type wooOrder struct {
	ID          int64         `json:"id"`
	DateCreated string        `json:"date_created"`
	Billing     wooBilling    `json:"billing"`
	LineItems   []wooLineItem `json:"line_items"`
}

// externalID renders the storefront's numeric order id as the stable
// external identity used for idempotency.
func (o *wooOrder) externalID() string {
	return strconv.FormatInt(o.ID, 10)
}
