package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gqlgate/gqlgate/internal/domain/auth"
)

func TestRequestIDMiddleware_Generates(t *testing.T) {
	var gotID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	RequestIDMiddleware(slog.Default())(inner).ServeHTTP(rec, r)

	if gotID == "" {
		t.Fatal("no request ID in context")
	}
	if echo := rec.Header().Get("X-Request-ID"); echo != gotID {
		t.Errorf("X-Request-ID header = %q, want %q", echo, gotID)
	}
}

func TestRequestIDMiddleware_PreservesIncoming(t *testing.T) {
	var gotID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "client-chosen-id")
	RequestIDMiddleware(slog.Default())(inner).ServeHTTP(httptest.NewRecorder(), r)

	if gotID != "client-chosen-id" {
		t.Errorf("request ID = %q, want the client's value", gotID)
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if LoggerFromContext(r.Context()) == nil {
		t.Error("LoggerFromContext returned nil outside middleware")
	}
}

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"x-forwarded-for single", "203.0.113.5", "", "10.0.0.1:1234", "203.0.113.5"},
		{"x-forwarded-for chain", "203.0.113.5, 10.0.0.2", "", "10.0.0.1:1234", "203.0.113.5"},
		{"x-real-ip", "", "203.0.113.9", "10.0.0.1:1234", "203.0.113.9"},
		{"remote addr fallback", "", "", "192.0.2.7:5555", "192.0.2.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = clientIP(r)
			})

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}

			RealIPMiddleware(inner).ServeHTTP(httptest.NewRecorder(), r)

			if got != tt.want {
				t.Errorf("client IP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIKeyMiddleware_DisabledPassesThrough(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	APIKeyMiddleware(auth.NewVerifier(nil))(inner).ServeHTTP(httptest.NewRecorder(), r)

	if !called {
		t.Error("handler not reached with auth disabled")
	}
}

func TestAPIKeyMiddleware_MissingKey(t *testing.T) {
	verifier := auth.NewVerifier([]string{"sha256:" + auth.HashKey("secret")})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	APIKeyMiddleware(verifier)(inner).ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyMiddleware_WrongKey(t *testing.T) {
	verifier := auth.NewVerifier([]string{"sha256:" + auth.HashKey("secret")})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a wrong key")
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-the-secret")
	APIKeyMiddleware(verifier)(inner).ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyMiddleware_ValidKey(t *testing.T) {
	verifier := auth.NewVerifier([]string{"sha256:" + auth.HashKey("secret")})
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer secret")
	APIKeyMiddleware(verifier)(inner).ServeHTTP(rec, r)

	if !called {
		t.Fatalf("handler not reached with a valid key (status %d)", rec.Code)
	}
}
