package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Detail)
		tasks.PUT("/:id", h.Update)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.DELETE("/:id", h.Delete)
	}
}
