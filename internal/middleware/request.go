package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voice-task-board/pkg/log"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates or creates a request ID and stores it in the request
// context, where the logger picks it up.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.RequestIDKey, id))
		c.Next()
	}
}

// AccessLog writes one line per request.
func (mw Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		line := "%s %s %d %s"
		args := []any{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond)}
		switch {
		case status >= 500:
			mw.l.Errorf(ctx, line, args...)
		case status >= 400:
			mw.l.Warnf(ctx, line, args...)
		default:
			mw.l.Infof(ctx, line, args...)
		}
	}
}
