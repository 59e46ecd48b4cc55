// Package telemetry exposes Prometheus metrics for the sync service.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// SyncRuns counts import runs by final status (ok, auth_failed, fetch_failed)
	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sync_runs_total", Help: "Import runs by final status."},
		[]string{"status"},
	)
	// OrdersProcessed counts per-order outcomes (created, already_imported, failed)
	OrdersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sync_orders_total", Help: "Orders by import outcome."},
		[]string{"outcome"},
	)
	// RemoteCalls counts ERP remote procedure calls by model, method and status
	RemoteCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "erp_remote_calls_total", Help: "ERP RPC invocations."},
		[]string{"model", "method", "status"},
	)
	// RunDuration records wall-clock duration of full runs in seconds
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "sync_run_duration_seconds", Help: "Import run duration in seconds.", Buckets: prometheus.DefBuckets},
	)
)

var regOnce sync.Once

// Register registers all collectors on the service registry.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(SyncRuns)
		Registry.MustRegister(OrdersProcessed)
		Registry.MustRegister(RemoteCalls)
		Registry.MustRegister(RunDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
