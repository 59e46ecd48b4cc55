package sync

// SourcePrefix tags every imported order with its storefront of origin.
// It is the first half of the idempotency key stored on the ERP order.
const SourcePrefix = "WC"

// Billing holds the billing contact of a storefront order. All fields are
// optional on the source side; resolution substitutes deterministic
// placeholders where required.
type Billing struct {
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	Street     string
	City       string
	PostalCode string
}

// LineItem is one product line of a storefront order. UnitPrice and
// Quantity keep the raw source form (the storefront sends them as either
// strings or numbers); sanitization happens during import.
type LineItem struct {
	// SKU is the storefront stock-keeping code, may be empty.
	SKU string
	// Name is the display name of the product.
	Name string
	// ProductRef is the storefront's numeric product id, 0 when absent.
	ProductRef int64
	// UnitPrice is the declared unit price, raw.
	UnitPrice string
	// Quantity is the ordered quantity, raw.
	Quantity string
}

// Order is a read-only storefront order document. Its identity for
// idempotency purposes is ExternalID.
type Order struct {
	ExternalID string
	Billing    Billing
	// CreatedAt is the raw source timestamp; normalized at import time.
	CreatedAt string
	Lines     []LineItem
}

// IdempotencyKey returns the provenance tag stored on the created ERP
// order. For a given external order id at most one ERP order carries it.
func (o Order) IdempotencyKey() string {
	return SourcePrefix + "-" + o.ExternalID
}

// RunResult summarizes one import run. It is constructed fresh per
// invocation and never persisted.
type RunResult struct {
	// Total is the number of source orders seen.
	Total int
	// Processed counts orders created or already present in the ERP.
	Processed int
	// Errors counts orders that failed entirely.
	Errors int
	// DroppedLines counts individual lines, customers and products that
	// failed resolution without taking their order down.
	DroppedLines int
}
