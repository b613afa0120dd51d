package common

import (
	"context"
	"errors"
)

// Log levels understood by every RunLogger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// RunLogger provides logging functionality for a single command run
type RunLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger RunLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) RunLogger {
	if logger, ok := ctx.Value(loggerKey).(RunLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// metadataError is satisfied by errors that carry structured detail,
// such as the API adapter's APIError.
type metadataError interface {
	error
	Metadata() map[string]interface{}
}

// ErrorMetadata merges the structured detail of err (if any) into base.
// The "error" key always holds err's message.
func ErrorMetadata(err error, base map[string]interface{}) map[string]interface{} {
	metadata := make(map[string]interface{}, len(base)+4)
	for k, v := range base {
		metadata[k] = v
	}
	if err == nil {
		return metadata
	}

	metadata["error"] = err.Error()

	var detailed metadataError
	if errors.As(err, &detailed) {
		for k, v := range detailed.Metadata() {
			metadata[k] = v
		}
	}
	return metadata
}

// LoggingMiddleware logs the start and final outcome of every request
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		logger.Log(LevelDebug, "Handling request", map[string]interface{}{
			"request": name,
		})

		response, err := next(ctx, request)
		if err != nil {
			logger.Log(LevelError, "Request failed", ErrorMetadata(err, map[string]interface{}{
				"request": name,
			}))
			return response, err
		}

		logger.Log(LevelInfo, "Request completed", map[string]interface{}{
			"request": name,
		})
		return response, nil
	}
}
