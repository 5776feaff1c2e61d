// Package config provides configuration types for the query gateway.
//
// Configuration is file-based (YAML) with environment variable overrides.
// The gateway is deliberately small: an HTTP listener, one upstream engine,
// optional API key auth, and optional tracing.
package config

import "github.com/spf13/viper"

// Config is the top-level configuration for the gateway.
type Config struct {
	// Server configures the HTTP server listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Engine configures the upstream query engine. The upstream URL is
	// required; a gateway with no engine cannot serve anything.
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`

	// Auth configures optional inbound API key authentication.
	// When no keys are configured, auth is disabled.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Telemetry configures tracing output.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// DevMode enables development features (verbose logging, etc).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ServerConfig configures the HTTP server.
// Only plain HTTP and file-based TLS are supported; anything fancier
// belongs in a reverse proxy.
type ServerConfig struct {
	// HTTPAddr is the address to listen on (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Defaults to "127.0.0.1:8080" (localhost only) if empty.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr" validate:"omitempty,hostname_port"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty. DevMode=true overrides to "debug".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// TLSCertFile and TLSKeyFile enable TLS when both are set.
	TLSCertFile string `yaml:"tls_cert_file" mapstructure:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file" mapstructure:"tls_key_file"`
}

// EngineConfig configures the upstream query engine.
type EngineConfig struct {
	// Upstream is the URL of the engine's HTTP endpoint
	// (e.g., "http://localhost:4000/graphql").
	Upstream string `yaml:"upstream" mapstructure:"upstream" validate:"required,url"`

	// Timeout is the per-request timeout for upstream calls (e.g., "30s", "1m").
	// "0" disables the timeout, which streaming upstreams need.
	// Defaults to "30s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`

	// Headers are injected into every upstream request, under any headers
	// the per-request execution options set.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// AuthConfig configures inbound API key authentication.
type AuthConfig struct {
	// APIKeyHashes are the stored hashes of accepted API keys.
	// Supported formats: Argon2id PHC ("$argon2id$..."), "sha256:"-prefixed
	// hex, or bare SHA-256 hex. Empty disables auth.
	APIKeyHashes []string `yaml:"api_key_hashes" mapstructure:"api_key_hashes"`
}

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	// TraceStdout enables span export to stdout.
	// Default: false.
	TraceStdout bool `yaml:"trace_stdout" mapstructure:"trace_stdout"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	// Bind to localhost unless configured otherwise.
	// Users who need network access must explicitly set http_addr.
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "127.0.0.1:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Engine.Timeout == "" {
		c.Engine.Timeout = "30s"
	}
}

// SetDevDefaults applies permissive defaults for development mode.
// Applied BEFORE validation so a bare --dev run with just an upstream works.
func (c *Config) SetDevDefaults() {
	if !c.DevMode {
		return
	}

	c.Server.LogLevel = "debug"

	// Trace to stdout in dev unless explicitly turned off.
	if !viper.IsSet("telemetry.trace_stdout") {
		c.Telemetry.TraceStdout = true
	}
}
