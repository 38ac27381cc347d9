package httpserver

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voice-task-board/internal/model"
	taskHTTP "voice-task-board/internal/task/delivery/http"
	voiceHTTP "voice-task-board/internal/voice/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	return srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())
	srv.gin.Use(srv.mw.AccessLog())
	srv.gin.Use(srv.mw.CORS())

	ctx := context.Background()
	allowAll := len(srv.allowOrigins) == 0 || slices.Contains(srv.allowOrigins, "*")
	switch {
	case allowAll && srv.environment == string(model.EnvironmentProduction):
		srv.l.Warnf(ctx, "CORS allows every origin in production; set http_server.allow_origins")
	case allowAll:
		srv.l.Infof(ctx, "CORS allows every origin (%s)", srv.environment)
	default:
		srv.l.Infof(ctx, "CORS origins: %s", strings.Join(srv.allowOrigins, ", "))
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes mounts the task board and voice APIs under /api/v1.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	taskHTTP.RegisterRoutes(api, taskHTTP.New(srv.l, srv.taskUC))
	srv.l.Infof(ctx, "Task routes registered under /api/v1/tasks")

	voiceHTTP.RegisterRoutes(api, voiceHTTP.New(srv.l, srv.voiceUC, srv.voiceCfg), srv.mw.RateLimit())
	srv.l.Infof(ctx, "Voice routes registered under /api/v1/voice")

	if srv.telegramHandler != nil {
		srv.gin.POST("/webhook/telegram", srv.telegramHandler.HandleWebhook)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}

	return nil
}
