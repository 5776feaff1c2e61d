package query

// ResponseInit carries the transport-level response parameters attached to
// a successful outcome: optional headers and an optional status code.
type ResponseInit struct {
	// StatusCode overrides the default 200 when non-zero.
	StatusCode int

	// Headers are replayed onto the response before any body byte is written.
	Headers map[string]string
}

// SingleResult is a complete serialized result delivered as one body.
type SingleResult struct {
	Body string
	Init ResponseInit
}

// StreamResult is a progressively produced result delivered as a sequence
// of parts. The stream is lazy, finite, and single-pass.
type StreamResult struct {
	Init   ResponseInit
	Stream ResultStream
}

type outcomeKind int

const (
	kindSingle outcomeKind = iota + 1
	kindStream
	kindFailure
)

// Outcome is the engine's settled result: exactly one of a single result,
// a streamed result, or a recognized failure. The variant is fixed at
// construction; there is no way to populate two at once.
type Outcome struct {
	kind    outcomeKind
	single  *SingleResult
	stream  *StreamResult
	failure *RequestError
}

// SingleOutcome wraps a complete result body.
func SingleOutcome(body string, init ResponseInit) *Outcome {
	return &Outcome{kind: kindSingle, single: &SingleResult{Body: body, Init: init}}
}

// StreamOutcome wraps a lazy result stream.
func StreamOutcome(init ResponseInit, stream ResultStream) *Outcome {
	return &Outcome{kind: kindStream, stream: &StreamResult{Init: init, Stream: stream}}
}

// FailureOutcome wraps a recognized request error.
func FailureOutcome(err *RequestError) *Outcome {
	return &Outcome{kind: kindFailure, failure: err}
}

// Single returns the single-result variant, if populated.
func (o *Outcome) Single() (*SingleResult, bool) {
	return o.single, o.kind == kindSingle
}

// Stream returns the streamed-result variant, if populated.
func (o *Outcome) Stream() (*StreamResult, bool) {
	return o.stream, o.kind == kindStream
}

// Failure returns the failure variant, if populated.
func (o *Outcome) Failure() (*RequestError, bool) {
	return o.failure, o.kind == kindFailure
}

// Kind names the populated variant. Used for logging and metrics labels.
func (o *Outcome) Kind() string {
	switch o.kind {
	case kindSingle:
		return "single"
	case kindStream:
		return "stream"
	case kindFailure:
		return "failure"
	default:
		return "unknown"
	}
}
