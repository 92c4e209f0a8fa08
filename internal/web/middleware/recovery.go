package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// RecoveryConfig holds configuration for the recovery middleware
type RecoveryConfig struct {
	// Logger receives the recovered panic and stack trace
	Logger *zap.Logger
	// EnableStackTrace determines whether to capture stack traces
	EnableStackTrace bool
}

// Recovery creates a middleware that recovers from handler panics and
// responds with the standard error envelope
func Recovery(logger *zap.Logger) Middleware {
	return RecoveryWithConfig(RecoveryConfig{
		Logger:           logger,
		EnableStackTrace: true,
	})
}

// RecoveryWithConfig creates a recovery middleware with custom configuration
func RecoveryWithConfig(config RecoveryConfig) Middleware {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					fields := []zap.Field{
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.Any("panic", recovered),
					}
					if config.EnableStackTrace {
						fields = append(fields, zap.ByteString("stack", debug.Stack()))
					}
					logger.Error("panic recovered", fields...)

					writeRecoveryResponse(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// writeRecoveryResponse sends the internal_error envelope without exposing
// the panic value to the client
func writeRecoveryResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprint(w, `{"error":{"code":"internal_error","message":"Internal error: unexpected server error"}}`)
}
