package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
	"github.com/rajkumarmali01/Employee-Analysis/internal/logging"
)

// clientIP returns the client address without port. TrustedRealIP has
// already replaced RemoteAddr when the request came through a trusted proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// requestLogger returns a request-scoped logger carrying client metadata.
func requestLogger(r *http.Request) *slog.Logger {
	return logging.WithFields(r.Context(),
		"ip", clientIP(r),
		"user_agent", r.UserAgent(),
	)
}

// runContext tags the request context with client details for the pipeline logs.
func runContext(r *http.Request) context.Context {
	ctx := core.ContextWithIPAddress(r.Context(), clientIP(r))
	return core.ContextWithUserAgent(ctx, r.UserAgent())
}
