package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (n int, err error) {
	n, err = w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// LoggingMiddleware logs each request with method, path, status, and duration.
// It does not log request or response bodies; paths can carry admin secrets,
// so the manage path is reduced to its route shape.
func LoggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)
		logger.Info("request",
			"method", r.Method,
			"path", redactPath(r.URL.Path),
			"status", wrapped.status,
			"duration_ms", duration.Milliseconds(),
		)
	})
}

// redactPath masks the secret segment of manage URLs so capability tokens
// never reach the logs.
func redactPath(path string) string {
	const prefix = "/manage/"
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	parts := strings.SplitN(strings.TrimPrefix(path, prefix), "/", 2)
	parts[0] = "{adminSecret}"
	return prefix + strings.Join(parts, "/")
}
