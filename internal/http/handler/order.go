package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderpulse.app/pulse/internal/http/dto"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/store"
)

type OrderHandler struct {
	ingest  service.IngestService
	monitor service.MonitorService
}

func NewOrderHandler(ingest service.IngestService, monitor service.MonitorService) *OrderHandler {
	return &OrderHandler{ingest: ingest, monitor: monitor}
}

func (h *OrderHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.ingest.RegisterOrder(ctx, req.OrderID, req.CustomerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidKey) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to register order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register order"})
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

func (h *OrderHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID := c.Param("order_id")
	record, err := h.monitor.OrderStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order status not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to read order status", "error", err, "order_id", orderID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read order status"})
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderStatusResponse(record))
}
