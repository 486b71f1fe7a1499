package mcp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// TokenAuthMiddleware checks the bearer token on every call. Protocol
// methods stay open so clients can complete the handshake.
func TokenAuthMiddleware(token string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}
			header := extra.Header.Get("Authorization")
			presented := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if presented == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}
			return next(ctx, method, req)
		}
	}
}

// LoggingMiddleware logs every request and its outcome at debug level.
func LoggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}
			logger.Debug("mcp request", "method", method)
			result, err := next(ctx, method, req)
			if err != nil && !strings.HasPrefix(method, "notifications/") {
				logger.Debug("mcp request failed", "method", method, "error", err)
			}
			return result, err
		}
	}
}
