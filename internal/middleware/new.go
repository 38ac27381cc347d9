package middleware

import (
	"voice-task-board/pkg/log"
)

// Config holds the knobs the HTTP middlewares read.
type Config struct {
	AllowOrigins    []string // "*" or empty allows any origin
	RateLimitPerMin int      // per client IP, voice routes only
}

type Middleware struct {
	l            log.Logger
	allowOrigins map[string]bool
	allowAll     bool
	limiter      *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:            l,
		allowOrigins: make(map[string]bool, len(cfg.AllowOrigins)),
		limiter:      newRateLimiter(cfg.RateLimitPerMin),
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			mw.allowAll = true
		}
		mw.allowOrigins[o] = true
	}
	if len(cfg.AllowOrigins) == 0 {
		mw.allowAll = true
	}
	return mw
}
