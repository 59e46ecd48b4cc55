package sync

import "context"

// Filter is one condition of an ERP search expression, rendered by the
// adapter into the ERP's native filter tuple.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Eq builds an exact-match filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: "=", Value: value}
}

// ERPClient is the port for the ERP's remote-procedure surface. The core
// only ever needs existence-and-id searches and creates; found records
// are never modified and nothing is ever deleted.
type ERPClient interface {
	// SearchFirst returns the id of the first record of model matching
	// all filters. found is false when nothing matches.
	SearchFirst(ctx context.Context, model string, filters []Filter) (id int64, found bool, err error)
	// Create inserts a new record and returns its id.
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
}

// ERPSession extends ERPClient with the login handshake. The session
// credential is owned per-run instance state, acquired once and never
// refreshed mid-run.
type ERPSession interface {
	ERPClient
	Authenticate(ctx context.Context) error
}

// OrderSource is the port for the storefront's read-only paginated order
// listing. One fetch of the most recent page is treated as the full
// batch for a run.
type OrderSource interface {
	FetchRecent(ctx context.Context, limit int) ([]Order, error)
}

// OrderLocker guards one order's import against concurrent runs. A nil
// locker preserves the plain search-then-create behavior.
type OrderLocker interface {
	// Acquire takes the lock for key; ok is false when another run holds it.
	Acquire(ctx context.Context, key string) (ok bool, err error)
	Release(ctx context.Context, key string) error
}
