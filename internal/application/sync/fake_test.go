package sync

import (
	"context"
	"fmt"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

type searchCall struct {
	model   string
	filters []domainsync.Filter
}

type createCall struct {
	model  string
	values map[string]any
}

// fakeERP is an in-memory double for the ERP session port. Existing
// records are keyed by "<model>/<first filter value>".
type fakeERP struct {
	existing  map[string]int64
	searchErr error
	createErr map[string]error
	authErr   error

	nextID        int64
	authenticated bool
	searches      []searchCall
	creates       []createCall
}

func newFakeERP() *fakeERP {
	return &fakeERP{
		existing:  make(map[string]int64),
		createErr: make(map[string]error),
		nextID:    100,
	}
}

func (f *fakeERP) recordKey(model string, filters []domainsync.Filter) string {
	if len(filters) == 0 {
		return model
	}
	return model + "/" + fmt.Sprintf("%v", filters[0].Value)
}

func (f *fakeERP) Authenticate(_ context.Context) error {
	if f.authErr != nil {
		return f.authErr
	}
	f.authenticated = true
	return nil
}

func (f *fakeERP) SearchFirst(_ context.Context, model string, filters []domainsync.Filter) (int64, bool, error) {
	f.searches = append(f.searches, searchCall{model: model, filters: filters})
	if f.searchErr != nil {
		return 0, false, f.searchErr
	}
	id, ok := f.existing[f.recordKey(model, filters)]
	return id, ok, nil
}

func (f *fakeERP) Create(_ context.Context, model string, values map[string]any) (int64, error) {
	f.creates = append(f.creates, createCall{model: model, values: values})
	if err := f.createErr[model]; err != nil {
		return 0, err
	}
	f.nextID++
	return f.nextID, nil
}

// createsFor returns the create calls issued against one model.
func (f *fakeERP) createsFor(model string) []createCall {
	var out []createCall
	for _, c := range f.creates {
		if c.model == model {
			out = append(out, c)
		}
	}
	return out
}

// fakeSource is an in-memory double for the storefront listing port.
type fakeSource struct {
	orders     []domainsync.Order
	err        error
	fetchCalls int
	lastLimit  int
}

func (f *fakeSource) FetchRecent(_ context.Context, limit int) ([]domainsync.Order, error) {
	f.fetchCalls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

// fakeLocker is an in-memory double for the order locker port.
type fakeLocker struct {
	held     map[string]bool
	acquires []string
	releases []string
	panicOn  bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (bool, error) {
	if f.panicOn {
		panic("locker exploded")
	}
	f.acquires = append(f.acquires, key)
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, key string) error {
	f.releases = append(f.releases, key)
	delete(f.held, key)
	return nil
}

var _ domainsync.ERPSession = (*fakeERP)(nil)
var _ domainsync.OrderSource = (*fakeSource)(nil)
var _ domainsync.OrderLocker = (*fakeLocker)(nil)
