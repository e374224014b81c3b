package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"orderpulse.app/pulse/internal/http/dto"
	"orderpulse.app/pulse/internal/service"
)

type EventIngestHandler struct {
	service     service.IngestService
	traceHeader string
}

func NewEventIngestHandler(service service.IngestService, traceHeader string) *EventIngestHandler {
	return &EventIngestHandler{
		service:     service,
		traceHeader: traceHeader,
	}
}

func (h *EventIngestHandler) Ingest(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IngestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid ingest request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	traceID := c.GetHeader(h.traceHeader)
	if traceID == "" {
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			traceID = spanCtx.TraceID().String()
		}
	}
	params := service.IngestParams{
		OrderID:    req.OrderID,
		NewStatus:  req.NewStatus,
		EventTS:    req.EventTS,
		CustomerID: req.CustomerID,
	}
	if traceID != "" {
		params.TraceID = &traceID
	}

	result, err := h.service.Ingest(ctx, params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidKey) || errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to ingest event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest event"})
		return
	}

	c.JSON(http.StatusAccepted, dto.IngestEventResponse{
		EventID: result.EventID,
		Lane:    result.Lane,
	})
}
