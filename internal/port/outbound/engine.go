// Package outbound defines the outbound port interfaces for the gateway core.
// The engine behind this port is an opaque collaborator: the gateway never
// inspects how a query is interpreted, only the shape of its outcome.
package outbound

import (
	"context"

	"github.com/gqlgate/gqlgate/internal/domain/query"
)

// Engine executes a query request and settles on exactly one outcome:
// a single result, a streamed result, or a recognized failure.
//
// A non-nil error return is a raw rejection. If it unwraps to a
// *query.RequestError the caller treats it as a recognized failure;
// anything else is forwarded to the next error-handling stage untouched.
type Engine interface {
	Execute(ctx context.Context, req *query.Request) (*query.Outcome, error)
}
