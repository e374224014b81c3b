package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderpulse.app/pulse/internal/http/handler"
	"orderpulse.app/pulse/internal/service"
)

type RouterConfig struct {
	TraceHeaderName string
}

func SetupRoutes(router *gin.Engine, services *service.Services, reports handler.ReportRunner, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		eventHandler := handler.NewEventIngestHandler(services.Ingest(), cfg.TraceHeaderName)
		EventRouter(v1.Group("/events"), eventHandler)

		orderHandler := handler.NewOrderHandler(services.Ingest(), services.Monitor())
		OrderRouter(v1.Group("/orders"), orderHandler)

		monitorHandler := handler.NewMonitorHandler(services.Monitor(), reports)
		MonitorRouter(v1.Group("/monitor"), monitorHandler)
	}
}
