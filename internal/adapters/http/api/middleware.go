package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fairway/pickem/pkg/logger"
	"github.com/fairway/pickem/pkg/metrics"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records request counts and latency per endpoint.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next(rw, r)

		duration := float64(time.Since(start).Milliseconds())
		status := strconv.Itoa(rw.statusCode)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, duration)
	}
}

// RequestIDMiddleware assigns each request an identifier, echoed in the
// X-Request-Id response header and attached to handler log lines.
func RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next(w, r)
	}
}

// AutoRevealMiddleware runs the scheduled reveal check before the wrapped
// handler. A storage failure here aborts the request; serving stale hidden
// picks is preferable to serving state we could not verify.
func AutoRevealMiddleware(deps Dependencies, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.CheckAutoReveal(r.Context()); err != nil {
			logger.Get().Error(r.Context(), "auto reveal check failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap("api.autoReveal", err))
			return
		}
		next(w, r)
	}
}
