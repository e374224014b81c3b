package router

import (
	"github.com/gin-gonic/gin"

	"orderpulse.app/pulse/internal/http/handler"
)

func OrderRouter(router *gin.RouterGroup, handler *handler.OrderHandler) {
	router.POST("", handler.Register)
	router.GET("/:order_id/status", handler.GetStatus)
}
