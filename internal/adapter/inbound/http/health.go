package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/gqlgate/gqlgate/internal/domain/auth"
)

// HealthResponse is the JSON response from the /health endpoint.
type HealthResponse struct {
	Status  string            `json:"status"` // "healthy" or "unhealthy"
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}

// HealthChecker reports gateway health. The gateway itself is stateless, so
// the checks are configuration and runtime facts rather than liveness
// probes of stateful components.
type HealthChecker struct {
	upstream string
	verifier *auth.Verifier
	version  string
}

// NewHealthChecker creates a HealthChecker. The verifier may be nil.
func NewHealthChecker(upstream string, verifier *auth.Verifier, version string) *HealthChecker {
	return &HealthChecker{
		upstream: upstream,
		verifier: verifier,
		version:  version,
	}
}

// Check reports the current health snapshot.
func (h *HealthChecker) Check() HealthResponse {
	checks := make(map[string]string)
	healthy := true

	if h.upstream != "" {
		checks["engine"] = "configured"
	} else {
		checks["engine"] = "not configured"
		healthy = false
	}

	if h.verifier != nil && h.verifier.Enabled() {
		checks["auth"] = "enabled"
	} else {
		checks["auth"] = "disabled"
	}

	checks["goroutines"] = fmt.Sprintf("%d", runtime.NumGoroutine())

	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	return HealthResponse{
		Status:  status,
		Checks:  checks,
		Version: h.version,
	}
}

// Handler returns an HTTP handler for the health endpoint.
func (h *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		health := h.Check()

		w.Header().Set("Content-Type", "application/json")
		if health.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(health)
	})
}

// healthHandler is the fallback when no HealthChecker is configured.
func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
}
