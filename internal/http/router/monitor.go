package router

import (
	"github.com/gin-gonic/gin"

	"orderpulse.app/pulse/internal/http/handler"
)

func MonitorRouter(router *gin.RouterGroup, handler *handler.MonitorHandler) {
	router.GET("/summary", handler.Summary)
	router.GET("/distribution", handler.Distribution)
	router.GET("/orders", handler.RecentOrders)
	router.GET("/validation", handler.Validate)
}
