package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/logger"
)

// SyncRunner triggers one synchronization pass and reports its outcome.
type SyncRunner interface {
	Run(ctx context.Context) (*domainsync.RunResult, error)
}

// SyncHandler exposes the synchronization trigger endpoint
type SyncHandler struct {
	runner SyncRunner
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(runner SyncRunner) *SyncHandler {
	return &SyncHandler{runner: runner}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync/orders", h.TriggerSync)
}

// TriggerSync runs one full synchronization pass. The run happens
// synchronously inside the request; the response carries the summary.
// A run-fatal precondition (bad credentials, unreachable source) yields
// a plain-text error body instead of a summary.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	result, err := h.runner.Run(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("sync run aborted", zap.Error(err))
		c.String(statusForRunError(err), "%s", err.Error())
		return
	}

	c.JSON(http.StatusOK, SyncRunResponse{
		Status:    "completed",
		Total:     result.Total,
		Processed: result.Processed,
		Errors:    result.Errors,
	})
}

// statusForRunError maps a run-fatal error to an HTTP status. Upstream
// system failures are gateway errors; anything else (typically missing
// configuration) is our own fault.
func statusForRunError(err error) int {
	switch {
	case errors.Is(err, domainsync.ErrInvalidCredentials),
		errors.Is(err, domainsync.ErrNotAuthenticated),
		errors.Is(err, domainsync.ErrSourceFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
