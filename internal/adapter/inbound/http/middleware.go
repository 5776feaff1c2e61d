package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gqlgate/gqlgate/internal/ctxkey"
	"github.com/gqlgate/gqlgate/internal/domain/auth"
)

// RequestIDMiddleware extracts or generates a request ID and enriches the
// logger with it. Both land in the request context; the ID is echoed back
// in the X-Request-ID response header for correlation.
func RequestIDMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			enriched := logger.With("request_id", requestID)

			ctx := context.WithValue(r.Context(), ctxkey.RequestIDKey{}, requestID)
			ctx = context.WithValue(ctx, ctxkey.LoggerKey{}, enriched)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerFromContext retrieves the enriched logger from context.
// Returns slog.Default() if no logger is in context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.LoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// RequestIDFromContext retrieves the request ID from context, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.RequestIDKey{}).(string)
	return id
}

// RealIPMiddleware stores the client's real IP address in the context.
// It checks X-Forwarded-For and X-Real-IP (for reverse proxy setups),
// falling back to r.RemoteAddr. Only the first X-Forwarded-For entry is
// trusted to avoid spoofing.
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractRealIP(r)
		ctx := context.WithValue(r.Context(), ctxkey.ClientIPKey{}, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP returns the real client IP resolved by RealIPMiddleware, or the
// raw RemoteAddr when the middleware did not run.
func clientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ctxkey.ClientIPKey{}).(string); ok {
		return ip
	}
	return r.RemoteAddr
}

// extractRealIP extracts the client's real IP address from the request.
func extractRealIP(r *http.Request) string {
	// X-Forwarded-For holds "client, proxy1, proxy2"; only the first entry matters.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// APIKeyMiddleware enforces bearer-token auth against the verifier. When
// the verifier has no keys configured, requests pass through untouched.
// On success the key's fingerprint goes into the context so downstream
// logging can correlate without ever seeing the raw key.
func APIKeyMiddleware(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil || !verifier.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			rawKey, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || rawKey == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !verifier.Verify(rawKey) {
				LoggerFromContext(r.Context()).Warn("api key rejected",
					"key_fingerprint", auth.Fingerprint(rawKey))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxkey.APIKeyFingerprintKey{}, auth.Fingerprint(rawKey))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
