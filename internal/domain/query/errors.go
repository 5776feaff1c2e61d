package query

import "fmt"

// RequestError is a recognized execution error: a structured failure the
// engine signals with an HTTP status code, a message, and optional headers.
// The dispatcher converts it into a well-formed error response. Any error
// that does not unwrap to a *RequestError is forwarded to the next
// error-handling stage untouched.
type RequestError struct {
	// StatusCode is the HTTP status for the error response.
	// Zero defaults to 500 at dispatch time.
	StatusCode int

	// Message is written as the response body, as plain text.
	Message string

	// Headers are replayed onto the error response.
	Headers map[string]string
}

// NewRequestError creates a recognized error with the given status and message.
func NewRequestError(statusCode int, message string) *RequestError {
	return &RequestError{StatusCode: statusCode, Message: message}
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}
