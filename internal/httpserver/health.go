package httpserver

import (
	"voice-task-board/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Voice Task Board API"
	HealthVersion = "1.0.0"
	ServiceName   = "voice-task-board"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck reports ready once the server is up.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, srv.status("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}

func (srv HTTPServer) status(s string) gin.H {
	return gin.H{
		"status":   s,
		"message":  HealthMessage,
		"version":  HealthVersion,
		"service":  ServiceName,
		"telegram": srv.telegramHandler != nil,
	}
}
