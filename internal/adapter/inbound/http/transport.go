package http

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/gqlgate/gqlgate/internal/domain/auth"
	"github.com/gqlgate/gqlgate/internal/port/inbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrorHandler is the next error-handling stage. It receives every error
// the query handler did not recognize; at that point nothing has been
// written and the response belongs to the ErrorHandler.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Transport is the inbound adapter that serves the gateway over HTTP.
type Transport struct {
	handler       *Handler
	server        *http.Server
	addr          string
	certFile      string
	keyFile       string
	logger        *slog.Logger
	errorHandler  ErrorHandler
	verifier      *auth.Verifier
	healthChecker *HealthChecker
	metrics       *Metrics
}

// Option is a functional option for configuring Transport.
type Option func(*Transport)

// WithAddr sets the listen address for the HTTP server.
// Default is "127.0.0.1:8080" (localhost only).
func WithAddr(addr string) Option {
	return func(t *Transport) {
		t.addr = addr
	}
}

// WithTLS enables TLS with the provided certificate and key files.
// If not set, the server runs without TLS (plain HTTP).
func WithTLS(certFile, keyFile string) Option {
	return func(t *Transport) {
		t.certFile = certFile
		t.keyFile = keyFile
	}
}

// WithLogger sets the logger for the transport.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithErrorHandler sets the stage that handles unrecognized query errors.
// The default logs the error and responds 500.
func WithErrorHandler(eh ErrorHandler) Option {
	return func(t *Transport) {
		t.errorHandler = eh
	}
}

// WithAPIKeyVerifier enables inbound API key auth on the query routes.
func WithAPIKeyVerifier(v *auth.Verifier) Option {
	return func(t *Transport) {
		t.verifier = v
	}
}

// WithHealthChecker sets the health checker for the /health endpoint.
func WithHealthChecker(hc *HealthChecker) Option {
	return func(t *Transport) {
		t.healthChecker = hc
	}
}

// NewTransport creates an HTTP transport serving the given query handler.
func NewTransport(handler *Handler, opts ...Option) *Transport {
	t := &Transport{
		handler: handler,
		addr:    "127.0.0.1:8080",
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.errorHandler == nil {
		t.errorHandler = defaultErrorHandler
	}

	return t
}

// defaultErrorHandler logs unrecognized errors and responds 500 without
// leaking the error text to the client.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	LoggerFromContext(r.Context()).Error("unhandled query error",
		"path", r.URL.Path,
		"error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// errorBoundary adapts the error-returning query handler to http.Handler,
// routing unrecognized errors to the configured next stage.
func errorBoundary(handle func(http.ResponseWriter, *http.Request) error, onError ErrorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := handle(w, r); err != nil {
			onError(w, r, err)
		}
	})
}

// Start begins accepting HTTP connections.
// It blocks until the context is cancelled or an error occurs.
func (t *Transport) Start(ctx context.Context) error {
	// Create Prometheus registry and metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	t.metrics = NewMetrics(reg)
	t.handler.metrics = t.metrics

	// Middleware chain (outermost first):
	// 1. MetricsMiddleware - outermost to capture full duration
	// 2. RequestID - generate/extract request ID and enrich logger
	// 3. RealIP - resolve client IP from proxy headers
	// 4. APIKey - bearer-token auth (no-op when no keys configured)
	// 5. Handler - query normalization, execution, dispatch
	queryHandler := errorBoundary(t.handler.Handle, t.errorHandler)
	queryHandler = APIKeyMiddleware(t.verifier)(queryHandler)
	queryHandler = RealIPMiddleware(queryHandler)
	queryHandler = RequestIDMiddleware(t.logger)(queryHandler)
	queryHandler = MetricsMiddleware(t.metrics)(queryHandler)

	mux := http.NewServeMux()
	if t.healthChecker != nil {
		mux.Handle("/health", t.healthChecker.Handler())
	} else {
		mux.Handle("/health", healthHandler())
	}
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry: reg,
	}))
	// Favicon handler to prevent browser 500 errors
	mux.Handle("/favicon.ico", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	// Query endpoint on the conventional path plus catch-all, so clients
	// that post to the bare origin still reach the gateway.
	mux.Handle("/graphql", queryHandler)
	mux.Handle("/graphql/", queryHandler)
	mux.Handle("/", queryHandler)

	t.server = &http.Server{
		Addr:    t.addr,
		Handler: mux,
	}

	if t.certFile != "" && t.keyFile != "" {
		t.server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	errCh := make(chan error, 1)

	go func() {
		var err error
		if t.certFile != "" && t.keyFile != "" {
			t.logger.Info("starting HTTPS server", "addr", t.addr)
			err = t.server.ListenAndServeTLS(t.certFile, t.keyFile)
		} else {
			t.logger.Info("starting HTTP server", "addr", t.addr)
			err = t.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("context cancelled, shutting down HTTP server")
		return t.shutdown()
	case err := <-errCh:
		return err
	}
}

// shutdown performs graceful shutdown of the HTTP server.
func (t *Transport) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.server.Shutdown(ctx); err != nil {
		t.logger.Error("error during server shutdown", "error", err)
		return err
	}

	t.logger.Info("HTTP server shutdown complete")
	return nil
}

// Close gracefully shuts down the transport.
func (t *Transport) Close() error {
	if t.server == nil {
		return nil
	}
	return t.shutdown()
}

// Compile-time check that Transport implements the inbound port.
var _ inbound.Transport = (*Transport)(nil)
