package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/observability"
)

// Logger logs every request and records it in the HTTP metrics. Requests are
// labelled by chi route pattern; requests no route matched share one label.
func Logger(next http.Handler) http.Handler {
	log := logger.GetLogger().WithComponent("http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		observability.RecordHTTPRequest(r.Method, route, sw.statusCode, duration)

		entry := log.WithFields(logger.Fields{
			"method":      r.Method,
			"route":       route,
			"path":        r.URL.Path,
			"status":      sw.statusCode,
			"duration_ms": duration.Milliseconds(),
		})
		switch {
		case sw.statusCode >= 500:
			entry.Error("request failed")
		case route == "/health" || route == "/metrics":
			entry.Debug("request served")
		default:
			entry.Info("request served")
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}
