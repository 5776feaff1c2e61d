package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gqlgate/gqlgate/internal/adapter/inbound/http"
	"github.com/gqlgate/gqlgate/internal/adapter/outbound/graphqlhttp"
	"github.com/gqlgate/gqlgate/internal/config"
	"github.com/gqlgate/gqlgate/internal/domain/auth"
	"github.com/gqlgate/gqlgate/internal/domain/query"
	"github.com/gqlgate/gqlgate/internal/service"
	"github.com/gqlgate/gqlgate/internal/telemetry"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway server",
	Long: `Start the gqlgate gateway server.

The gateway listens for HTTP query requests and forwards them to the
configured upstream engine.

Examples:
  # Start with config file settings
  gqlgate start

  # Start with a specific config file
  gqlgate --config /path/to/config.yaml start

  # Point at an engine without any config file
  GQLGATE_ENGINE_UPSTREAM=http://localhost:4000/graphql gqlgate start`,
	RunE: runStart,
}

var devMode bool

func init() {
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable development mode (debug logging, stdout tracing)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	// Load configuration (without validation, so CLI flags can override first)
	cfg, err := config.LoadConfigRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if devMode {
		cfg.DevMode = true
	}

	cfg.SetDevDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Signal context for graceful shutdown.
	// stop() restores default signal handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	logLevel := parseLogLevel(cfg.Server.LogLevel)
	if cfg.DevMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	logger.Debug("log level configured", "level", cfg.Server.LogLevel, "effective", logLevel.String())

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	if err := run(ctx, cfg, logger); err != nil {
		return err
	}

	logger.Info("gqlgate stopped")
	return nil
}

// run wires all components together and starts the transport.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.TraceStdout, Version)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("trace provider shutdown failed", "error", err)
		}
	}()

	engineTimeout, err := time.ParseDuration(cfg.Engine.Timeout)
	if err != nil {
		engineTimeout = 30 * time.Second
		logger.Warn("invalid engine.timeout, using default",
			"value", cfg.Engine.Timeout, "default", "30s")
	}

	engine := graphqlhttp.New(cfg.Engine.Upstream,
		graphqlhttp.WithTimeout(engineTimeout))
	logger.Info("engine configured", "upstream", cfg.Engine.Upstream, "timeout", engineTimeout)

	execService := service.NewExecutionService(engine,
		service.WithExecutionLogger(logger))

	// Static options: engine headers from config plus an empty context map
	// for engines that expect one.
	options := &query.Options{
		Context: map[string]any{},
		Headers: cfg.Engine.Headers,
	}

	handler, err := http.NewHandler(execService, query.Static(options))
	if err != nil {
		return fmt.Errorf("failed to create query handler: %w", err)
	}

	verifier := auth.NewVerifier(cfg.Auth.APIKeyHashes)
	if verifier.Enabled() {
		logger.Info("api key auth enabled", "keys", len(cfg.Auth.APIKeyHashes))
	} else {
		logger.Info("api key auth disabled")
	}

	healthChecker := http.NewHealthChecker(cfg.Engine.Upstream, verifier, Version)

	transportOpts := []http.Option{
		http.WithAddr(cfg.Server.HTTPAddr),
		http.WithLogger(logger),
		http.WithAPIKeyVerifier(verifier),
		http.WithHealthChecker(healthChecker),
	}
	if cfg.Server.TLSCertFile != "" && cfg.Server.TLSKeyFile != "" {
		transportOpts = append(transportOpts, http.WithTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile))
	}

	logger.Info("gqlgate starting",
		"version", Version,
		"dev_mode", cfg.DevMode,
		"http_addr", cfg.Server.HTTPAddr,
		"upstream", cfg.Engine.Upstream,
		"auth", verifier.Enabled(),
		"trace_stdout", cfg.Telemetry.TraceStdout,
	)

	transport := http.NewTransport(handler, transportOpts...)
	return transport.Start(ctx)
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
