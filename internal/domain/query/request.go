// Package query defines the execution data model shared by the HTTP
// transport adapter and the engine port: the execution request, the
// three-way execution outcome, the recognized request error, and the
// pull-based result stream used for deferred responses.
package query

// Options is the execution configuration handed opaquely to the engine.
// It is resolved exactly once per inbound call, before the engine runs.
type Options struct {
	// Context carries engine-specific values for this execution.
	Context map[string]any

	// Headers are extra headers the engine may forward to its backend.
	Headers map[string]string
}

// RequestInfo is a protocol-neutral descriptor of the inbound request.
// It carries only what the engine may legitimately inspect; the transport
// request itself never crosses the engine port.
type RequestInfo struct {
	Path       string
	RemoteAddr string
	Header     map[string][]string
}

// Request is the execution request handed to the engine. It is built once
// per inbound call and never mutated afterwards.
type Request struct {
	// Method is the inbound transport method (e.g. "POST", "GET").
	Method string

	// Payload is the query payload: the parsed JSON body for POST,
	// the query-string parameters for every other method.
	Payload map[string]any

	// Options is the resolved execution configuration. Never nil.
	Options *Options

	// Info describes the inbound request in protocol-neutral terms.
	Info RequestInfo
}
