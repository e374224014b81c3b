package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orderpulse.app/pulse/internal/http/dto"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/validator"
)

// ReportRunner is the subset of the validator the monitor API needs.
type ReportRunner interface {
	Report(ctx context.Context) (*validator.Report, error)
}

type MonitorHandler struct {
	monitor   service.MonitorService
	validator ReportRunner
}

func NewMonitorHandler(monitor service.MonitorService, v ReportRunner) *MonitorHandler {
	return &MonitorHandler{monitor: monitor, validator: v}
}

func (h *MonitorHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.monitor.Summary(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build monitor summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *MonitorHandler) Distribution(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.monitor.Distribution(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read status distribution", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read distribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"distribution": dto.NewStatusCountResponses(counts)})
}

func (h *MonitorHandler) RecentOrders(c *gin.Context) {
	ctx := c.Request.Context()

	limit := int64(100)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	records, err := h.monitor.RecentOrders(ctx, int32(limit))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list recent orders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recent orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": dto.NewOrderStatusResponses(records)})
}

// Validate runs a full consistency check on demand. Can be slow on a
// large log; the scheduled validator is the usual path.
func (h *MonitorHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.validator.Report(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "validation pass failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}
