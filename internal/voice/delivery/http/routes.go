package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the voice endpoints. The limiter, when set, guards the upload route only.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, limiter gin.HandlerFunc) {
	v := rg.Group("/voice")
	{
		if limiter != nil {
			v.POST("/transcribe", limiter, h.Transcribe)
		} else {
			v.POST("/transcribe", h.Transcribe)
		}
		v.POST("/parse", h.Parse)
	}
}
