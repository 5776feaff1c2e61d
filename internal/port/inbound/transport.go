// Package inbound defines the inbound port interfaces for the gateway core.
// Inbound adapters (HTTP) implement these interfaces.
package inbound

import (
	"context"
)

// Transport is the inbound port for the gateway.
type Transport interface {
	// Start begins accepting inbound requests.
	// Blocks until context is cancelled or an error occurs.
	// Returns nil on graceful shutdown, error on failure.
	Start(ctx context.Context) error

	// Close gracefully shuts down the transport and cleans up resources.
	Close() error
}
