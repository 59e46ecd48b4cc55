package sync

import "errors"

var (
	// Session errors
	ErrNotAuthenticated   = errors.New("sync: session not authenticated")
	ErrInvalidCredentials = errors.New("sync: ERP rejected credentials")

	// Import errors, all order-fatal and run-continuing
	ErrCustomerUnresolved = errors.New("sync: customer could not be resolved")
	ErrNoLines            = errors.New("sync: order has no line items")
	ErrNoUsableLines      = errors.New("sync: no line item survived product resolution")
	ErrCreateFailed       = errors.New("sync: ERP create returned no id")

	// Run errors
	ErrSourceFetchFailed = errors.New("sync: source order fetch failed")
	ErrOrderLocked       = errors.New("sync: order is locked by a concurrent run")
)
