package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-Id"

type ctxKey int

const corrIDKey ctxKey = iota

// Correlate tags each request with the caller's correlation id, or a fresh
// one, and echoes it back.
func Correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get(correlationHeader)
		if corrID == "" {
			corrID = uuid.NewString()
		}
		w.Header().Set(correlationHeader, corrID)
		ctx := context.WithValue(r.Context(), corrIDKey, corrID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CorrIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(corrIDKey).(string)
	return id
}

// CorrelationLogger returns a logger that carries the correlation id.
func CorrelationLogger(logger *slog.Logger, corrID string) *slog.Logger {
	return logger.With("corrId", corrID)
}

// RequestLogger logs one line per request once it completes.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			CorrelationLogger(logger, CorrIDFromContext(r.Context())).Log(r.Context(), level, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"remote", r.RemoteAddr,
				"duration", time.Since(start),
			)
		})
	}
}
