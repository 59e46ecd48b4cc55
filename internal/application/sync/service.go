package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/telemetry"
)

// Service drives one full sync run: authenticate once, fetch one page of
// recent orders, import each sequentially with per-order isolation, and
// summarize. Authentication failure is the one run-fatal condition after
// startup; everything later degrades to per-order errors.
type Service struct {
	session  domainsync.ERPSession
	source   domainsync.OrderSource
	importer *Importer
	locker   domainsync.OrderLocker
	pageSize int
	logger   *zap.Logger
}

// Option configures optional service behavior.
type Option func(*Service)

// WithLocker guards each order's import with a distributed lock,
// closing the search-then-create race between overlapping runs.
func WithLocker(locker domainsync.OrderLocker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithPageSize overrides the source fetch size for a run.
func WithPageSize(n int) Option {
	return func(s *Service) {
		s.pageSize = n
	}
}

// NewService wires a sync service. A nil logger is replaced by a no-op.
func NewService(session domainsync.ERPSession, source domainsync.OrderSource, importer *Importer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		session:  session,
		source:   source,
		importer: importer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one import run and returns its summary. A non-nil error
// means a run-fatal precondition failed and no summary exists.
func (s *Service) Run(ctx context.Context) (*domainsync.RunResult, error) {
	start := time.Now()

	if err := s.session.Authenticate(ctx); err != nil {
		telemetry.SyncRuns.WithLabelValues("auth_failed").Inc()
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	orders, err := s.source.FetchRecent(ctx, s.pageSize)
	if err != nil {
		telemetry.SyncRuns.WithLabelValues("fetch_failed").Inc()
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	result := &domainsync.RunResult{Total: len(orders)}
	for _, order := range orders {
		report := s.importOne(ctx, order)
		result.DroppedLines += report.DroppedLines
		telemetry.OrdersProcessed.WithLabelValues(report.Status.String()).Inc()

		switch report.Status {
		case ImportCreated, ImportAlreadyImported:
			result.Processed++
		default:
			result.Errors++
			s.logger.Error("order import failed",
				zap.String("order", order.ExternalID),
				zap.Error(report.Err),
			)
		}
	}

	telemetry.SyncRuns.WithLabelValues("ok").Inc()
	telemetry.RunDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("sync run finished",
		zap.Int("total", result.Total),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors),
		zap.Int("dropped_lines", result.DroppedLines),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// importOne runs one order's import inside an isolating boundary: a
// panic is converted to a per-order failure so the run continues with
// the next order.
func (s *Service) importOne(ctx context.Context, order domainsync.Order) (report ImportReport) {
	defer func() {
		if p := recover(); p != nil {
			report = ImportReport{
				Status: ImportFailed,
				Err:    fmt.Errorf("panic while importing order %s: %v", order.ExternalID, p),
			}
		}
	}()

	if s.locker != nil {
		key := order.IdempotencyKey()
		ok, err := s.locker.Acquire(ctx, key)
		if err != nil {
			return ImportReport{Status: ImportFailed, Err: fmt.Errorf("order lock: %w", err)}
		}
		if !ok {
			return ImportReport{Status: ImportFailed, Err: domainsync.ErrOrderLocked}
		}
		defer func() {
			if err := s.locker.Release(ctx, key); err != nil {
				s.logger.Warn("failed to release order lock",
					zap.String("order", order.ExternalID),
					zap.Error(err),
				)
			}
		}()
	}

	return s.importer.ImportOrder(ctx, order)
}
