// Package http is the inbound HTTP adapter for the query gateway.
//
// The adapter has two halves. The request side normalizes an inbound HTTP
// request into an execution request: POST bodies are parsed as JSON, every
// other method takes its payload from the query string, and the configured
// options resolver supplies the execution options. The response side takes
// the engine's outcome and writes exactly one of three response shapes: a
// plain single-result response, a multipart/mixed stream of incremental
// chunks, or an error response for recognized failures. Errors the adapter
// does not recognize are handed to the next error-handling stage with the
// response still untouched.
package http
