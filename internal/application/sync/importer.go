package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

// ImportStatus is the terminal state of one order's import.
type ImportStatus int

const (
	// ImportCreated means a new ERP sales order was created.
	ImportCreated ImportStatus = iota + 1
	// ImportAlreadyImported means the idempotency check found a previous
	// import; no side effects were produced.
	ImportAlreadyImported
	// ImportFailed means the order was abandoned at some gate.
	ImportFailed
)

// String returns the status name for logging.
func (s ImportStatus) String() string {
	switch s {
	case ImportCreated:
		return "created"
	case ImportAlreadyImported:
		return "already_imported"
	case ImportFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ImportReport is the outcome of one order's import protocol.
type ImportReport struct {
	Status ImportStatus
	// ERPOrderID is set when Status is ImportCreated.
	ERPOrderID int64
	// DroppedLines counts line items abandoned during resolution.
	DroppedLines int
	// Err carries the failure for ImportFailed.
	Err error
}

// Importer runs the per-order import protocol: idempotency check,
// customer resolution, per-line product resolution, order creation.
// Each gate's failure is terminal for that order only.
type Importer struct {
	erp      domainsync.ERPClient
	resolver *Resolver
	logger   *zap.Logger
}

// NewImporter creates an importer. A nil logger is replaced by a no-op.
func NewImporter(erp domainsync.ERPClient, resolver *Resolver, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		erp:      erp,
		resolver: resolver,
		logger:   logger,
	}
}

// ImportOrder imports one storefront order into the ERP exactly once.
func (i *Importer) ImportOrder(ctx context.Context, order domainsync.Order) ImportReport {
	log := i.logger.With(zap.String("order", order.ExternalID))
	key := order.IdempotencyKey()

	// Gate 1: idempotency. A matching provenance tag means a previous
	// run already imported this order.
	_, found, err := i.erp.SearchFirst(ctx, modelSaleOrder, []domainsync.Filter{domainsync.Eq("origin", key)})
	if err != nil {
		return ImportReport{Status: ImportFailed, Err: fmt.Errorf("idempotency check: %w", err)}
	}
	if found {
		log.Info("order already imported, skipping", zap.String("origin", key))
		return ImportReport{Status: ImportAlreadyImported}
	}

	// Gate 2: customer resolution.
	customer := i.resolver.ResolveCustomer(ctx, order)
	i.logResolution(log, "customer", customer)
	if !customer.OK() {
		return ImportReport{Status: ImportFailed, Err: fmt.Errorf("%w: %v", domainsync.ErrCustomerUnresolved, customer.Err)}
	}

	// Gate 3: an order with no lines is not a valid sales object.
	if len(order.Lines) == 0 {
		return ImportReport{Status: ImportFailed, Err: domainsync.ErrNoLines}
	}

	// Gate 4: per-line product resolution. A failed line is dropped,
	// not fatal; partial orders are acceptable.
	rows := make([]any, 0, len(order.Lines))
	dropped := 0
	for idx, li := range order.Lines {
		lineLog := log.With(zap.Int("line", idx))

		product := i.resolver.ResolveProduct(ctx, li)
		i.logResolution(lineLog, "product", product)
		if !product.OK() {
			dropped++
			lineLog.Warn("dropping line, product unresolved", zap.Error(product.Err))
			continue
		}

		quantity, qtyDefaulted := SanitizeQuantity(li.Quantity)
		if qtyDefaulted {
			lineLog.Warn("quantity defaulted to 1", zap.String("raw", li.Quantity))
		}
		price, priceDefaulted := SanitizePrice(li.UnitPrice)
		if priceDefaulted {
			lineLog.Warn("price defaulted to 0", zap.String("raw", li.UnitPrice))
		}
		name := li.Name
		if name == "" {
			name = "unnamed product"
		}

		rows = append(rows, []any{0, 0, map[string]any{
			"product_id":      product.ID,
			"name":            name,
			"product_uom_qty": quantity.InexactFloat64(),
			"price_unit":      price.InexactFloat64(),
		}})
	}

	// Gate 5: do not create an order with no lines.
	if len(rows) == 0 {
		return ImportReport{Status: ImportFailed, DroppedLines: dropped, Err: domainsync.ErrNoUsableLines}
	}

	// Gate 6: order creation, always in draft state.
	id, err := i.erp.Create(ctx, modelSaleOrder, map[string]any{
		"partner_id":       customer.ID,
		"origin":           key,
		"client_order_ref": order.ExternalID,
		"state":            "draft",
		"order_line":       rows,
		"date_order":       NormalizeOrderDate(order.CreatedAt),
	})
	if err != nil {
		return ImportReport{Status: ImportFailed, DroppedLines: dropped, Err: fmt.Errorf("order create: %w", err)}
	}

	log.Info("order imported",
		zap.Int64("erp_order_id", id),
		zap.String("origin", key),
		zap.Int("lines", len(rows)),
		zap.Int("dropped_lines", dropped),
	)
	return ImportReport{Status: ImportCreated, ERPOrderID: id, DroppedLines: dropped}
}

// logResolution surfaces a leaf resolution's outcome and substitutions.
func (i *Importer) logResolution(log *zap.Logger, entity string, res domainsync.Resolution) {
	for _, field := range res.Substituted {
		log.Warn("field substituted with deterministic default",
			zap.String("entity", entity),
			zap.String("field", field),
		)
	}
	if res.OK() {
		log.Debug("resolved",
			zap.String("entity", entity),
			zap.String("outcome", res.Outcome.String()),
			zap.Int64("id", res.ID),
		)
	}
}
