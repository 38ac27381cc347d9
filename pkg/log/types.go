package log

import "go.uber.org/zap"

// ZapConfig configures the zap-backed Logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // production or development
	Encoding     string // console or json
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

type ctxKey string

const (
	// RequestIDKey is the context key carrying the per-request correlation ID.
	RequestIDKey ctxKey = "request_id"

	ModeProduction  = "production"
	EncodingJSON    = "json"
	EncodingConsole = "console"
)
