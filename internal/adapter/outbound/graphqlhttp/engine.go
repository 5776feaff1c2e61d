// Package graphqlhttp is the outbound adapter that executes queries against
// an upstream GraphQL server over HTTP.
package graphqlhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gqlgate/gqlgate/internal/domain/query"
	"github.com/gqlgate/gqlgate/internal/port/outbound"
)

// maxSingleResponseSize caps buffered single-result bodies at 8 MiB.
// Streamed responses are not buffered and carry no such cap.
const maxSingleResponseSize = 8 << 20

const defaultTimeout = 30 * time.Second

// Engine forwards execution requests to an upstream GraphQL HTTP endpoint.
// Upstream JSON responses become single outcomes; multipart/mixed responses
// become streamed outcomes, parsed incrementally so chunks flow through as
// the upstream produces them.
type Engine struct {
	endpoint   string
	httpClient *http.Client
}

// EngineOption is a functional option for configuring Engine.
type EngineOption func(*Engine)

// WithHTTPClient sets a custom HTTP client. Streaming responses outlive any
// client timeout, so the client's Timeout should be zero when deferred
// results are expected; use context deadlines instead.
func WithHTTPClient(c *http.Client) EngineOption {
	return func(e *Engine) {
		e.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout. A zero duration disables the
// timeout, which is what streaming upstreams need.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.httpClient.Timeout = d
	}
}

// New creates an Engine targeting the given upstream endpoint URL.
func New(endpoint string, opts ...EngineOption) *Engine {
	e := &Engine{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute posts the request payload to the upstream and maps the response
// to an outcome. Upstream 4xx/5xx responses come back as recognized
// *query.RequestError values; transport failures are returned raw.
func (e *Engine) Execute(ctx context.Context, req *query.Request) (*query.Outcome, error) {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "multipart/mixed, application/json")
	if req.Options != nil {
		for k, v := range req.Options.Headers {
			httpReq.Header.Set(k, v)
		}
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	mediaType, params, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "multipart/mixed" {
		boundary := params["boundary"]
		if boundary == "" {
			resp.Body.Close()
			return nil, errors.New("upstream multipart response missing boundary")
		}
		stream := &multipartStream{
			reader: multipart.NewReader(resp.Body, boundary),
			body:   resp.Body,
		}
		return query.StreamOutcome(query.ResponseInit{StatusCode: resp.StatusCode}, stream), nil
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSingleResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &query.RequestError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
		}
	}

	init := query.ResponseInit{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": resp.Header.Get("Content-Type")},
	}
	return query.SingleOutcome(string(data), init), nil
}

// multipartStream adapts an upstream multipart body to a ResultStream,
// yielding one part per Next call. The body is closed when the stream ends
// or fails; abandoning the stream mid-way leaks the body until the request
// context is cancelled, which the transport guarantees on disconnect.
type multipartStream struct {
	reader *multipart.Reader
	body   io.Closer
}

func (s *multipartStream) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		s.body.Close()
		return "", err
	}

	part, err := s.reader.NextPart()
	if err != nil {
		s.body.Close()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("read upstream part: %w", err)
	}

	data, err := io.ReadAll(part)
	if err != nil {
		s.body.Close()
		return "", fmt.Errorf("read upstream part body: %w", err)
	}
	return string(data), nil
}

// Compile-time check that Engine implements the outbound port.
var _ outbound.Engine = (*Engine)(nil)
